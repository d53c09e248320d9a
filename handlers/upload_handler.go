package handlers

import (
	"io"

	"docpress/services"

	"github.com/gin-gonic/gin"
)

const maxUploadBytes = 5 << 20

type UploadHandler struct {
	uploadService services.UploadService
}

func NewUploadHandler(uploadService services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// Upload renders an editor file (.md or .html) into ready-to-store HTML.
// Rendering happens here, at the edge; the coordinator only ever sees the
// finished payload.
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		httpHelper.SendBadRequest(c, "no file uploaded", httpHelper.EmptyJsonMap())
		return
	}

	if fileHeader.Size > maxUploadBytes {
		httpHelper.SendBadRequest(c, "file too large", httpHelper.EmptyJsonMap())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httpHelper.SendBadRequest(c, "invalid file upload", httpHelper.EmptyJsonMap())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		httpHelper.SendBadRequest(c, "failed to read file", httpHelper.EmptyJsonMap())
		return
	}

	result, err := h.uploadService.RenderFile(fileHeader.Filename, data)
	if err != nil {
		httpHelper.SendServiceError(c, err, nil)
		return
	}

	httpHelper.SendSuccess(c, "file processed", result)
}
