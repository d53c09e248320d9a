package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Subject struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primarykey"`
	Title        string    `json:"title" gorm:"size:200;not null"`
	Slug         string    `json:"slug" gorm:"uniqueIndex;size:250;not null"`
	Description  string    `json:"description" gorm:"type:text"`
	CoverImage   *string   `json:"cover_image,omitempty" gorm:"size:500"`
	AuthorID     uuid.UUID `json:"author_id" gorm:"type:uuid;not null"`
	Author       *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	DisplayOrder int       `json:"display_order" gorm:"default:0"`
	IsPublished  bool      `json:"is_published" gorm:"default:false"`
	Topics       []Topic   `json:"topics,omitempty" gorm:"foreignKey:SubjectID"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (s *Subject) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
