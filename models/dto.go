package models

import "github.com/google/uuid"

type RegisterRequest struct {
	Username string   `json:"username" binding:"required,min=3,max=50"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=6"`
	Role     UserRole `json:"role,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type CreateSubjectRequest struct {
	Title        string  `json:"title" binding:"required,min=1,max=200"`
	Description  string  `json:"description"`
	CoverImage   *string `json:"cover_image"`
	DisplayOrder int     `json:"display_order"`
	IsPublished  bool    `json:"is_published"`
}

type UpdateSubjectRequest struct {
	Title        string  `json:"title" binding:"required,min=1,max=200"`
	Description  string  `json:"description"`
	CoverImage   *string `json:"cover_image"`
	DisplayOrder int     `json:"display_order"`
	IsPublished  bool    `json:"is_published"`
}

type CreateTopicRequest struct {
	Title        string    `json:"title" binding:"required,min=1,max=200"`
	Description  string    `json:"description"`
	CoverImage   *string   `json:"cover_image"`
	SubjectID    uuid.UUID `json:"subject_id" binding:"required"`
	DisplayOrder int       `json:"display_order"`
	IsPublished  bool      `json:"is_published"`
}

type UpdateTopicRequest struct {
	Title        string    `json:"title" binding:"required,min=1,max=200"`
	Description  string    `json:"description"`
	CoverImage   *string   `json:"cover_image"`
	SubjectID    uuid.UUID `json:"subject_id" binding:"required"`
	DisplayOrder int       `json:"display_order"`
	IsPublished  bool      `json:"is_published"`
}

type CreateConceptRequest struct {
	Title        string      `json:"title" binding:"required,min=1,max=200"`
	TopicID      uuid.UUID   `json:"topic_id" binding:"required"`
	CoverImage   *string     `json:"cover_image"`
	DisplayOrder int         `json:"display_order"`
	IsPublished  bool        `json:"is_published"`
	Content      string      `json:"content"`
	ContentType  ContentType `json:"content_type,omitempty"`
}

type UpdateConceptRequest struct {
	Title        string    `json:"title" binding:"required,min=1,max=200"`
	TopicID      uuid.UUID `json:"topic_id" binding:"required"`
	CoverImage   *string   `json:"cover_image"`
	DisplayOrder int       `json:"display_order"`
	IsPublished  bool      `json:"is_published"`
	// Content is optional: nil leaves the content document untouched.
	Content *string `json:"content"`
}

type MoveConceptRequest struct {
	NewTopicID uuid.UUID `json:"new_topic_id" binding:"required"`
}

type RateRequest struct {
	Score   int    `json:"score" binding:"required"`
	Comment string `json:"comment"`
}

// ConceptResult is what the coordinator's write operations hand back: the
// structured record plus whether a content document is actually linked.
// ContentAttached false after a "successful" update means the concept is in
// the orphan-create state and needs its attach step retried.
type ConceptResult struct {
	Concept         *Concept `json:"concept"`
	ContentAttached bool     `json:"content_attached"`
}

// ConceptPage is the composed public read: structure from the hierarchy
// store, body from the content store, navigation and ratings around it.
type ConceptPage struct {
	Concept         *Concept  `json:"concept"`
	HTMLContent     string    `json:"html_content"`
	PreviousConcept *Concept  `json:"previous_concept,omitempty"`
	NextConcept     *Concept  `json:"next_concept,omitempty"`
	SidebarTopics   []Topic   `json:"sidebar_topics"`
	AverageRating   float64   `json:"average_rating"`
	RatingsCount    int64     `json:"ratings_count"`
	RatingComments  []Rating  `json:"rating_comments"`
}

type QuickSearchResult struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Subject string `json:"subject,omitempty"`
	Topic   string `json:"topic,omitempty"`
	URL     string `json:"url"`
}
