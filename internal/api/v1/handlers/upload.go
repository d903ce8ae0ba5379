package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "complaintbox/internal/api/errors"
	"complaintbox/internal/api/middleware"
	"complaintbox/internal/api/v1/dto"
	"complaintbox/internal/api/v1/services"
)

// UploadHandler handles the transcription upload endpoint.
type UploadHandler struct {
	service services.TranscriptionService
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(service services.TranscriptionService) *UploadHandler {
	return &UploadHandler{service: service}
}

// Upload handles POST /upload. The request must carry exactly one
// multipart file field named "audio"; without it the engine is never
// called. Engine failures surface as 500 with the message verbatim.
func (h *UploadHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		middleware.HandleError(c, apierrors.NewBadRequestError("No audio file uploaded"))
		return
	}
	defer file.Close()

	text, err := h.service.TranscribeUpload(c.Request.Context(), file, header.Filename)
	if err != nil {
		if apiErr, ok := err.(*apierrors.APIError); ok && apiErr.Kind == apierrors.KindUpstream {
			c.JSON(http.StatusInternalServerError, dto.UploadErrorResponse{Error: apiErr.Message})
			return
		}
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TranscriptionResponse{Transcription: text})
}
