package upload

import "errors"

var (
	ErrEmptyFile            = errors.New("file is empty")
	ErrFileTooLarge         = errors.New("file exceeds maximum allowed size")
	ErrUnsupportedMediaType = errors.New("file type is not allowed")
	ErrInvalidImage         = errors.New("file could not be decoded as an image")
	ErrInvalidSlug          = errors.New("invalid equipment slug")
	ErrInvalidType          = errors.New(`type must be either "main" or "gallery"`)
	ErrDirNotFound          = errors.New("equipment directory not found")
	ErrFileNotFound         = errors.New("file not found")
	ErrNotAFile             = errors.New("path is not a file")
	ErrPathTraversal        = errors.New("path traversal detected")
	ErrInvalidPath          = errors.New("invalid path")
)
