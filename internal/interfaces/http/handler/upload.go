package handler

import (
	"io"

	mediaapp "github.com/eventhub/backend/internal/application/media"
	"github.com/eventhub/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// UploadHandler handles media upload endpoints
type UploadHandler struct {
	BaseHandler
	service *mediaapp.UploadService
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(service *mediaapp.UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

// RegisterRoutes registers upload routes on the given group
func (h *UploadHandler) RegisterRoutes(rg *gin.RouterGroup) {
	uploads := rg.Group("/uploads")
	{
		uploads.POST("/images", h.UploadImage)
	}
}

// UploadImage handles POST /uploads/images as a multipart form with a
// single "file" part.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "A 'file' form field is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Uploaded file cannot be read")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, mediaapp.MaxImageSize+1))
	if err != nil {
		h.InternalError(c, "Failed to read uploaded file")
		return
	}

	resp, err := h.service.UploadImage(c.Request.Context(), mediaapp.UploadImageInput{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
		UploadedBy:  middleware.GetJWTEmail(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}
