package repositories

import (
	"docpress/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConceptRepository interface {
	Create(concept *models.Concept) error
	GetByID(id uuid.UUID) (*models.Concept, error)
	GetBySlugPublished(slug string) (*models.Concept, error)
	GetList() ([]models.Concept, error)
	GetByTopic(topicID uuid.UUID, publishedOnly bool) ([]models.Concept, error)
	GetPublishedByIDs(ids []uuid.UUID) ([]models.Concept, error)
	GetRecentPublished(limit int) ([]models.Concept, error)
	Update(concept *models.Concept) error
	UpdateContentID(id uuid.UUID, contentID *string) error
	Delete(id uuid.UUID) error
	SearchPublishedByTitle(title string, limit int) ([]models.Concept, error)
}

type conceptRepository struct {
	db *gorm.DB
}

func NewConceptRepository(db *gorm.DB) ConceptRepository {
	return &conceptRepository{db: db}
}

func (r *conceptRepository) Create(concept *models.Concept) error {
	return r.db.Create(concept).Error
}

func (r *conceptRepository) GetByID(id uuid.UUID) (*models.Concept, error) {
	var concept models.Concept
	err := r.db.Preload("Topic").Preload("Topic.Subject").First(&concept, "id = ?", id).Error
	return &concept, err
}

// GetBySlugPublished resolves a concept on the public surface. Both ancestors
// must be published; direct-by-id lookup (GetByID) has no such filter.
func (r *conceptRepository) GetBySlugPublished(slug string) (*models.Concept, error) {
	var concept models.Concept
	err := r.db.
		Joins("JOIN topics ON topics.id = concepts.topic_id AND topics.is_published = ?", true).
		Joins("JOIN subjects ON subjects.id = topics.subject_id AND subjects.is_published = ?", true).
		Where("concepts.slug = ? AND concepts.is_published = ?", slug, true).
		Preload("Topic").
		Preload("Topic.Subject").
		First(&concept).Error
	return &concept, err
}

func (r *conceptRepository) GetList() ([]models.Concept, error) {
	var concepts []models.Concept
	err := r.db.Preload("Topic").Preload("Topic.Subject").
		Order("display_order ASC, created_at DESC").
		Find(&concepts).Error
	return concepts, err
}

func (r *conceptRepository) GetByTopic(topicID uuid.UUID, publishedOnly bool) ([]models.Concept, error) {
	var concepts []models.Concept
	query := r.db.Where("topic_id = ?", topicID).Order("display_order ASC")
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	err := query.Find(&concepts).Error
	return concepts, err
}

func (r *conceptRepository) GetPublishedByIDs(ids []uuid.UUID) ([]models.Concept, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var concepts []models.Concept
	err := r.db.Where("id IN ? AND is_published = ?", ids, true).
		Preload("Topic").
		Preload("Topic.Subject").
		Find(&concepts).Error
	return concepts, err
}

func (r *conceptRepository) GetRecentPublished(limit int) ([]models.Concept, error) {
	var concepts []models.Concept
	err := r.db.Where("is_published = ?", true).
		Preload("Topic").
		Preload("Topic.Subject").
		Order("last_revised_on DESC").
		Limit(limit).
		Find(&concepts).Error
	return concepts, err
}

func (r *conceptRepository) Update(concept *models.Concept) error {
	return r.db.Save(concept).Error
}

func (r *conceptRepository) UpdateContentID(id uuid.UUID, contentID *string) error {
	return r.db.Model(&models.Concept{}).Where("id = ?", id).Update("content_id", contentID).Error
}

func (r *conceptRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Concept{}, "id = ?", id).Error
}

func (r *conceptRepository) SearchPublishedByTitle(title string, limit int) ([]models.Concept, error) {
	var concepts []models.Concept
	err := r.db.
		Joins("JOIN topics ON topics.id = concepts.topic_id AND topics.is_published = ?", true).
		Joins("JOIN subjects ON subjects.id = topics.subject_id AND subjects.is_published = ?", true).
		Where("LOWER(concepts.title) LIKE LOWER(?) AND concepts.is_published = ?", "%"+title+"%", true).
		Preload("Topic").
		Preload("Topic.Subject").
		Order("concepts.title ASC").
		Limit(limit).
		Find(&concepts).Error
	return concepts, err
}
