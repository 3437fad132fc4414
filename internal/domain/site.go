package domain

// Service is a rental service offered by the company (lighting, transport...).
type Service struct {
	ID               string          `json:"id" yaml:"id"`
	Name             string          `json:"name" yaml:"name"`
	Slug             string          `json:"slug" yaml:"slug"`
	ShortDescription string          `json:"shortDescription" yaml:"shortDescription"`
	LongDescription  string          `json:"longDescription" yaml:"longDescription"`
	Image            string          `json:"image" yaml:"image"`
	Icon             string          `json:"icon,omitempty" yaml:"icon,omitempty"`
	Specifications   []Specification `json:"specifications,omitempty" yaml:"specifications,omitempty"`
	EquipmentIDs     []string        `json:"equipmentIds,omitempty" yaml:"equipmentIds,omitempty"`
}

type CompanyInfo struct {
	Name         string `json:"name" yaml:"name"`
	OGRN         string `json:"ogrn" yaml:"ogrn"`
	LegalAddress string `json:"legalAddress" yaml:"legalAddress"`
	Website      string `json:"website" yaml:"website"`
	Email        string `json:"email" yaml:"email"`
	Description  string `json:"description" yaml:"description"`
}

// SiteData is the read-only marketing content of the site.
type SiteData struct {
	Company  CompanyInfo `json:"company" yaml:"company"`
	Services []Service   `json:"services" yaml:"services"`
}
