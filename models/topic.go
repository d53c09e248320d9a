package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Topic struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primarykey"`
	Title        string    `json:"title" gorm:"size:200;not null"`
	Slug         string    `json:"slug" gorm:"uniqueIndex;size:250;not null"`
	Description  string    `json:"description" gorm:"type:text"`
	CoverImage   *string   `json:"cover_image,omitempty" gorm:"size:500"`
	SubjectID    uuid.UUID `json:"subject_id" gorm:"type:uuid;not null"`
	Subject      *Subject  `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	DisplayOrder int       `json:"display_order" gorm:"default:0"`
	IsPublished  bool      `json:"is_published" gorm:"default:false"`
	Concepts     []Concept `json:"concepts,omitempty" gorm:"foreignKey:TopicID"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (t *Topic) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
