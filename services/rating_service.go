package services

import (
	"errors"

	"docpress/models"
	"docpress/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RatingService interface {
	Rate(target models.RatingTarget, targetID, userID uuid.UUID, score int, comment string) (*models.Rating, error)
	AverageForConcept(conceptID uuid.UUID) (*repositories.RatingAggregate, error)
	AverageForTopic(topicID uuid.UUID) (*repositories.RatingAggregate, error)
	GetByUser(userID uuid.UUID) ([]models.Rating, error)
}

type ratingService struct {
	ratingRepo  repositories.RatingRepository
	conceptRepo repositories.ConceptRepository
	topicRepo   repositories.TopicRepository
}

func NewRatingService(
	ratingRepo repositories.RatingRepository,
	conceptRepo repositories.ConceptRepository,
	topicRepo repositories.TopicRepository,
) RatingService {
	return &ratingService{
		ratingRepo:  ratingRepo,
		conceptRepo: conceptRepo,
		topicRepo:   topicRepo,
	}
}

// Rate upserts keyed on (user, target). The check-then-write is best effort;
// the partial unique index is the real arbiter. When two requests from the
// same user race past the check, the loser's insert hits the constraint and
// is retried as an update instead of surfacing to the caller.
func (s *ratingService) Rate(target models.RatingTarget, targetID, userID uuid.UUID, score int, comment string) (*models.Rating, error) {
	if score < 1 || score > 5 {
		return nil, models.ErrorValidation{Message: "score must be between 1 and 5"}
	}

	var (
		existing *models.Rating
		lookup   func() (*models.Rating, error)
		err      error
	)

	switch target {
	case models.TargetConcept:
		if _, err := s.conceptRepo.GetByID(targetID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.ErrorNotFound{Message: "concept not found"}
			}
			return nil, err
		}
		lookup = func() (*models.Rating, error) {
			return s.ratingRepo.GetByUserAndConcept(userID, targetID)
		}
	case models.TargetTopic:
		if _, err := s.topicRepo.GetByID(targetID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.ErrorNotFound{Message: "topic not found"}
			}
			return nil, err
		}
		lookup = func() (*models.Rating, error) {
			return s.ratingRepo.GetByUserAndTopic(userID, targetID)
		}
	default:
		return nil, models.ErrorValidation{Message: "rating target must be concept or topic"}
	}

	existing, err = lookup()
	if err == nil {
		existing.Score = score
		existing.Comment = comment
		if err := s.ratingRepo.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	rating := &models.Rating{
		UserID:  userID,
		Score:   score,
		Comment: comment,
	}
	if target == models.TargetConcept {
		rating.ConceptID = &targetID
	} else {
		rating.TopicID = &targetID
	}

	if err := s.ratingRepo.Create(rating); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race to a concurrent insert by the same user.
			existing, err = lookup()
			if err != nil {
				return nil, err
			}
			existing.Score = score
			existing.Comment = comment
			if err := s.ratingRepo.Update(existing); err != nil {
				return nil, err
			}
			return existing, nil
		}
		return nil, err
	}
	return rating, nil
}

func (s *ratingService) AverageForConcept(conceptID uuid.UUID) (*repositories.RatingAggregate, error) {
	return s.ratingRepo.AggregateForConcept(conceptID)
}

func (s *ratingService) AverageForTopic(topicID uuid.UUID) (*repositories.RatingAggregate, error) {
	return s.ratingRepo.AggregateForTopic(topicID)
}

func (s *ratingService) GetByUser(userID uuid.UUID) ([]models.Rating, error) {
	return s.ratingRepo.GetByUser(userID)
}
