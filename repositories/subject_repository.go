package repositories

import (
	"docpress/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubjectRepository interface {
	Create(subject *models.Subject) error
	GetByID(id uuid.UUID) (*models.Subject, error)
	GetBySlugPublished(slug string) (*models.Subject, error)
	GetList(publishedOnly bool) ([]models.Subject, error)
	Update(subject *models.Subject) error
	Delete(id uuid.UUID) error
	SearchByAuthorName(name string) ([]models.Subject, error)
}

type subjectRepository struct {
	db *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) SubjectRepository {
	return &subjectRepository{db: db}
}

func (r *subjectRepository) Create(subject *models.Subject) error {
	return r.db.Create(subject).Error
}

func (r *subjectRepository) GetByID(id uuid.UUID) (*models.Subject, error) {
	var subject models.Subject
	err := r.db.Preload("Author").First(&subject, "id = ?", id).Error
	return &subject, err
}

func (r *subjectRepository) GetBySlugPublished(slug string) (*models.Subject, error) {
	var subject models.Subject
	err := r.db.Preload("Author").
		Preload("Topics", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_published = ?", true).Order("display_order ASC")
		}).
		Where("slug = ? AND is_published = ?", slug, true).
		First(&subject).Error
	return &subject, err
}

func (r *subjectRepository) GetList(publishedOnly bool) ([]models.Subject, error) {
	var subjects []models.Subject
	query := r.db.Preload("Author").Order("display_order ASC, created_at DESC")
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	err := query.Find(&subjects).Error
	return subjects, err
}

func (r *subjectRepository) Update(subject *models.Subject) error {
	return r.db.Save(subject).Error
}

func (r *subjectRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Subject{}, "id = ?", id).Error
}

func (r *subjectRepository) SearchByAuthorName(name string) ([]models.Subject, error) {
	var subjects []models.Subject
	err := r.db.
		Joins("JOIN users ON users.id = subjects.author_id").
		Where("LOWER(users.username) LIKE LOWER(?) AND subjects.is_published = ?", "%"+name+"%", true).
		Preload("Author").
		Preload("Topics", "is_published = ?", true).
		Preload("Topics.Concepts", "is_published = ?", true).
		Find(&subjects).Error
	return subjects, err
}
