package repositories

import (
	"docpress/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RatingAggregate struct {
	Average float64
	Count   int64
}

type RatingRepository interface {
	Create(rating *models.Rating) error
	Update(rating *models.Rating) error
	GetByUserAndConcept(userID, conceptID uuid.UUID) (*models.Rating, error)
	GetByUserAndTopic(userID, topicID uuid.UUID) (*models.Rating, error)
	AggregateForConcept(conceptID uuid.UUID) (*RatingAggregate, error)
	AggregateForTopic(topicID uuid.UUID) (*RatingAggregate, error)
	GetCommentsForConcept(conceptID uuid.UUID) ([]models.Rating, error)
	GetByUser(userID uuid.UUID) ([]models.Rating, error)
	DeleteForConcept(conceptID uuid.UUID) error
	DeleteForTopic(topicID uuid.UUID) error
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(rating *models.Rating) error {
	return r.db.Create(rating).Error
}

func (r *ratingRepository) Update(rating *models.Rating) error {
	return r.db.Save(rating).Error
}

func (r *ratingRepository) GetByUserAndConcept(userID, conceptID uuid.UUID) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.Where("user_id = ? AND concept_id = ?", userID, conceptID).First(&rating).Error
	return &rating, err
}

func (r *ratingRepository) GetByUserAndTopic(userID, topicID uuid.UUID) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.Where("user_id = ? AND topic_id = ?", userID, topicID).First(&rating).Error
	return &rating, err
}

// Aggregates are computed on read. Rating volume per target is small and the
// read path is rare relative to page views, so nothing is maintained
// incrementally.
func (r *ratingRepository) AggregateForConcept(conceptID uuid.UUID) (*RatingAggregate, error) {
	return r.aggregate("concept_id = ?", conceptID)
}

func (r *ratingRepository) AggregateForTopic(topicID uuid.UUID) (*RatingAggregate, error) {
	return r.aggregate("topic_id = ?", topicID)
}

func (r *ratingRepository) aggregate(cond string, id uuid.UUID) (*RatingAggregate, error) {
	var result struct {
		Total int64
		Count int64
	}
	err := r.db.Model(&models.Rating{}).
		Select("COALESCE(SUM(score), 0) AS total, COUNT(*) AS count").
		Where(cond, id).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	agg := &RatingAggregate{Count: result.Count}
	if result.Count > 0 {
		agg.Average = float64(result.Total) / float64(result.Count)
	}
	return agg, nil
}

func (r *ratingRepository) GetCommentsForConcept(conceptID uuid.UUID) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.Where("concept_id = ? AND comment <> ''", conceptID).
		Preload("User").
		Order("created_at DESC").
		Find(&ratings).Error
	return ratings, err
}

// DeleteForConcept and DeleteForTopic clear ratings when their target goes
// away; nothing at the schema level cascades for us.
func (r *ratingRepository) DeleteForConcept(conceptID uuid.UUID) error {
	return r.db.Where("concept_id = ?", conceptID).Delete(&models.Rating{}).Error
}

func (r *ratingRepository) DeleteForTopic(topicID uuid.UUID) error {
	return r.db.Where("topic_id = ?", topicID).Delete(&models.Rating{}).Error
}

func (r *ratingRepository) GetByUser(userID uuid.UUID) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ratings).Error
	return ratings, err
}
