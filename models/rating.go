package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RatingTarget string

const (
	TargetConcept RatingTarget = "concept"
	TargetTopic   RatingTarget = "topic"
)

// Rating targets exactly one of Concept or Topic; the other foreign key stays
// nil. Uniqueness is per (user, concept) and per (user, topic) separately, so
// a second rating by the same user is an update, never a second row.
type Rating struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primarykey"`
	UserID    uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_concept;uniqueIndex:idx_user_topic"`
	User      *User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ConceptID *uuid.UUID `json:"concept_id,omitempty" gorm:"type:uuid;uniqueIndex:idx_user_concept"`
	TopicID   *uuid.UUID `json:"topic_id,omitempty" gorm:"type:uuid;uniqueIndex:idx_user_topic"`
	Score     int        `json:"score" gorm:"not null"`
	Comment   string     `json:"comment" gorm:"type:text"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (r *Rating) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
