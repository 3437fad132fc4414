package upload

// Result describes a stored upload.
type Result struct {
	FileURL  string `json:"fileUrl"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
}

// File tags as reported by the listing.
const (
	TagMain    = "main"
	TagGallery = "gallery"
	TagOther   = "other"
)

// File is one image in an equipment directory.
type File struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	IsMain    bool   `json:"isMain"`
	IsGallery bool   `json:"isGallery"`
	Tag       string `json:"tag"`
	Size      int64  `json:"size"`
}

type FileList struct {
	EquipmentSlug string `json:"equipmentSlug"`
	Files         []File `json:"files"`
	Total         int    `json:"total"`
}

type DeleteResult struct {
	Message     string `json:"message"`
	DeletedPath string `json:"deletedPath"`
}

// Orphan is an image file no equipment record points at.
type Orphan struct {
	Path string // absolute path on disk
	URL  string
	Size int64
}
