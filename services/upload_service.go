package services

import (
	"bytes"
	"strings"

	"docpress/models"

	"github.com/yuin/goldmark"
)

// UploadResult is a rendered payload ready for the coordinator: markdown has
// already been turned into HTML here, at the edge. The coordinator itself
// never renders anything.
type UploadResult struct {
	Content     string             `json:"content"`
	ContentType models.ContentType `json:"content_type"`
}

type UploadService interface {
	RenderFile(filename string, data []byte) (*UploadResult, error)
}

type uploadService struct {
	markdown goldmark.Markdown
}

func NewUploadService() UploadService {
	return &uploadService{markdown: goldmark.New()}
}

func (s *uploadService) RenderFile(filename string, data []byte) (*UploadResult, error) {
	name := strings.ToLower(filename)

	switch {
	case strings.HasSuffix(name, ".md") || strings.HasSuffix(name, ".markdown"):
		var buf bytes.Buffer
		if err := s.markdown.Convert(data, &buf); err != nil {
			return nil, models.ErrorValidation{Message: "failed to render markdown: " + err.Error()}
		}
		return &UploadResult{Content: buf.String(), ContentType: models.ContentTypeMarkdown}, nil
	case strings.HasSuffix(name, ".html") || strings.HasSuffix(name, ".htm"):
		return &UploadResult{Content: string(data), ContentType: models.ContentTypeHTML}, nil
	default:
		return nil, models.ErrorValidation{Message: "unsupported file type, expected .md or .html"}
	}
}
