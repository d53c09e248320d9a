package repositories

import (
	"docpress/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TopicRepository interface {
	Create(topic *models.Topic) error
	GetByID(id uuid.UUID) (*models.Topic, error)
	GetBySlugPublished(slug string) (*models.Topic, error)
	GetList(publishedOnly bool) ([]models.Topic, error)
	GetBySubject(subjectID uuid.UUID, publishedOnly bool) ([]models.Topic, error)
	Update(topic *models.Topic) error
	Delete(id uuid.UUID) error
	SearchPublishedByTitle(title string, limit int) ([]models.Topic, error)
}

type topicRepository struct {
	db *gorm.DB
}

func NewTopicRepository(db *gorm.DB) TopicRepository {
	return &topicRepository{db: db}
}

func (r *topicRepository) Create(topic *models.Topic) error {
	return r.db.Create(topic).Error
}

func (r *topicRepository) GetByID(id uuid.UUID) (*models.Topic, error) {
	var topic models.Topic
	err := r.db.Preload("Subject").First(&topic, "id = ?", id).Error
	return &topic, err
}

// GetBySlugPublished resolves a topic on the public surface. The parent
// subject must be published too; an unpublished ancestor makes the topic
// unreachable here even when the topic itself is flagged published.
func (r *topicRepository) GetBySlugPublished(slug string) (*models.Topic, error) {
	var topic models.Topic
	err := r.db.
		Joins("JOIN subjects ON subjects.id = topics.subject_id AND subjects.is_published = ?", true).
		Where("topics.slug = ? AND topics.is_published = ?", slug, true).
		Preload("Subject").
		Preload("Concepts", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_published = ?", true).Order("display_order ASC")
		}).
		First(&topic).Error
	return &topic, err
}

func (r *topicRepository) GetList(publishedOnly bool) ([]models.Topic, error) {
	var topics []models.Topic
	query := r.db.Preload("Subject").Order("display_order ASC, created_at DESC")
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	err := query.Find(&topics).Error
	return topics, err
}

func (r *topicRepository) GetBySubject(subjectID uuid.UUID, publishedOnly bool) ([]models.Topic, error) {
	var topics []models.Topic
	query := r.db.Where("subject_id = ?", subjectID).Order("display_order ASC")
	if publishedOnly {
		query = query.Where("is_published = ?", true).
			Preload("Concepts", func(db *gorm.DB) *gorm.DB {
				return db.Where("is_published = ?", true).Order("display_order ASC")
			})
	}
	err := query.Find(&topics).Error
	return topics, err
}

func (r *topicRepository) Update(topic *models.Topic) error {
	return r.db.Save(topic).Error
}

func (r *topicRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Topic{}, "id = ?", id).Error
}

func (r *topicRepository) SearchPublishedByTitle(title string, limit int) ([]models.Topic, error) {
	var topics []models.Topic
	err := r.db.
		Joins("JOIN subjects ON subjects.id = topics.subject_id AND subjects.is_published = ?", true).
		Where("LOWER(topics.title) LIKE LOWER(?) AND topics.is_published = ?", "%"+title+"%", true).
		Preload("Subject").
		Order("topics.title ASC").
		Limit(limit).
		Find(&topics).Error
	return topics, err
}
