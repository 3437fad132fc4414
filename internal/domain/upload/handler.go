package upload

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rentcatalog/internal/pkg/response"
)

// multipart framing and the text fields on top of the file itself
const formOverhead = 1 << 20

// Handler serves image upload and management for the admin panel.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Upload godoc
// @Summary Upload an equipment image
// @Description The image is resized to the configured width and stored as JPEG.
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image"
// @Param equipmentSlug formData string true "Equipment slug"
// @Param type formData string true "main or gallery"
// @Success 201 {object} response.Response{data=Result}
// @Failure 400,403,413,415,500 {object} response.Response
// @Router /upload [post]
func (h *Handler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.service.MaxBytes()+formOverhead)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.tooLarge(c)
			return
		}
		response.Error(c, http.StatusBadRequest, "NO_FILE", "No file provided")
		return
	}

	equipmentSlug := c.PostForm("equipmentSlug")
	if equipmentSlug == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "equipmentSlug is required")
		return
	}

	result, err := h.service.Upload(c.Request.Context(), equipmentSlug, c.PostForm("type"), fileHeader)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidType), errors.Is(err, ErrInvalidSlug), errors.Is(err, ErrEmptyFile):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, ErrPathTraversal):
			response.Error(c, http.StatusForbidden, "FORBIDDEN_PATH", "Invalid equipment slug")
		case errors.Is(err, ErrFileTooLarge):
			h.tooLarge(c)
		case errors.Is(err, ErrUnsupportedMediaType):
			response.ErrorWithDetails(c, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "Invalid file type", gin.H{
				"allowedTypes": AllowedMimeTypes(),
			})
		case errors.Is(err, ErrInvalidImage):
			response.Error(c, http.StatusBadRequest, "INVALID_IMAGE", "File could not be decoded as an image")
		default:
			response.Internal(c, err, "Failed to process image")
		}
		return
	}

	response.Success(c, http.StatusCreated, result)
}

func (h *Handler) tooLarge(c *gin.Context) {
	response.ErrorWithDetails(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "File size exceeds limit", gin.H{
		"maxSize": h.service.MaxBytes(),
	})
}

// ListFiles godoc
// @Summary List images stored for an equipment item
// @Tags Uploads
// @Produce json
// @Param equipmentSlug path string true "Equipment slug"
// @Success 200 {object} response.Response{data=FileList}
// @Failure 400,403,404,500 {object} response.Response
// @Router /files/{equipmentSlug} [get]
func (h *Handler) ListFiles(c *gin.Context) {
	list, err := h.service.ListFiles(c.Request.Context(), c.Param("equipmentSlug"))
	if err != nil {
		h.fileError(c, err, "Failed to list files")
		return
	}
	response.Success(c, http.StatusOK, list)
}

// DeleteFile godoc
// @Summary Delete one stored image
// @Tags Uploads
// @Produce json
// @Param path path string true "slug/filename"
// @Success 200 {object} response.Response{data=DeleteResult}
// @Failure 400,403,404,500 {object} response.Response
// @Router /files/{path} [delete]
func (h *Handler) DeleteFile(c *gin.Context) {
	result, err := h.service.DeleteFile(c.Request.Context(), c.Param("path"))
	if err != nil {
		h.fileError(c, err, "Failed to delete file")
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *Handler) fileError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrPathTraversal):
		response.Error(c, http.StatusForbidden, "FORBIDDEN_PATH", "Invalid path")
	case errors.Is(err, ErrInvalidSlug), errors.Is(err, ErrInvalidPath):
		response.Error(c, http.StatusBadRequest, "INVALID_PATH", err.Error())
	case errors.Is(err, ErrNotAFile):
		response.Error(c, http.StatusBadRequest, "NOT_A_FILE", "Path is not a file")
	case errors.Is(err, ErrDirNotFound):
		response.Error(c, http.StatusNotFound, "DIRECTORY_NOT_FOUND", "Equipment directory not found")
	case errors.Is(err, ErrFileNotFound):
		response.Error(c, http.StatusNotFound, "FILE_NOT_FOUND", "File not found")
	default:
		response.Internal(c, err, fallback)
	}
}
