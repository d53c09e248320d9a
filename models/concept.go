package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Concept is the structured half of a documentation page. The body lives in
// the content store; ContentID is the only pointer to it, and it is nil until
// the content document has been created and linked. A nil ContentID is a
// legal state ("structurally present, content-empty"), not an error.
type Concept struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primarykey"`
	Title         string     `json:"title" gorm:"size:200;not null"`
	Slug          string     `json:"slug" gorm:"uniqueIndex;size:250;not null"`
	CoverImage    *string    `json:"cover_image,omitempty" gorm:"size:500"`
	TopicID       uuid.UUID  `json:"topic_id" gorm:"type:uuid;not null"`
	Topic         *Topic     `json:"topic,omitempty" gorm:"foreignKey:TopicID"`
	ContentID     *string    `json:"content_id" gorm:"size:100"`
	DisplayOrder  int        `json:"display_order" gorm:"default:0"`
	IsPublished   bool       `json:"is_published" gorm:"default:false"`
	LastRevisedOn *time.Time `json:"last_revised_on"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (c *Concept) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
