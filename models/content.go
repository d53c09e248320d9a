package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContentType string

const (
	ContentTypeHTML     ContentType = "html"
	ContentTypeMarkdown ContentType = "markdown"
	ContentTypeQuill    ContentType = "quill"
)

// Revision is an immutable snapshot of the raw content as it was immediately
// before an update overwrote it.
type Revision struct {
	Content   string    `bson:"content" json:"content"`
	RevisedBy string    `bson:"revisedBy" json:"revised_by"`
	RevisedAt time.Time `bson:"revisedAt" json:"revised_at"`
}

// Content is the document-store half of a documentation page. ConceptID is
// the back-reference to the owning Concept and carries a unique index, so at
// most one document exists per concept. The collection has no knowledge of
// the relational store beyond that string.
type Content struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ConceptID      string             `bson:"conceptId" json:"concept_id"`
	HTMLContent    string             `bson:"htmlContent" json:"html_content"`
	RawContent     string             `bson:"rawContent" json:"raw_content"`
	ContentType    ContentType        `bson:"contentType" json:"content_type"`
	Revisions      []Revision         `bson:"revisions" json:"revisions"`
	CreatedBy      string             `bson:"createdBy" json:"created_by"`
	LastModifiedBy string             `bson:"lastModifiedBy" json:"last_modified_by"`
	CreatedAt      time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updated_at"`
}

// SearchHit is one ranked result from the content store's text index. The
// concept id still has to be re-validated against the hierarchy store before
// it is shown to anyone.
type SearchHit struct {
	ConceptID string  `bson:"conceptId"`
	Score     float64 `bson:"score"`
}
