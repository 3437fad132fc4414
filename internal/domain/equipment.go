package domain

// Specification is one label/value line of an equipment or service spec sheet.
type Specification struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Equipment is a rentable catalog item.
// Category holds the id of the category it belongs to.
type Equipment struct {
	ID             string          `json:"id" yaml:"id"`
	Name           string          `json:"name" yaml:"name"`
	Slug           string          `json:"slug" yaml:"slug"`
	Category       string          `json:"category" yaml:"category"`
	Description    string          `json:"description" yaml:"description"`
	Specifications []Specification `json:"specifications" yaml:"specifications"`
	Images         []string        `json:"images" yaml:"images"`
	Available      bool            `json:"available" yaml:"available"`
	Featured       *bool           `json:"featured,omitempty" yaml:"featured,omitempty"`
	RelatedIDs     []string        `json:"relatedIds,omitempty" yaml:"relatedIds,omitempty"`
}

// IsFeatured reports whether the item is flagged for the front page.
func (e *Equipment) IsFeatured() bool {
	return e.Featured != nil && *e.Featured
}

// MainImage returns the first image path or "" when there are none.
func (e *Equipment) MainImage() string {
	if len(e.Images) == 0 {
		return ""
	}
	return e.Images[0]
}
