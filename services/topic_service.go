package services

import (
	"context"
	"errors"

	"docpress/models"
	"docpress/repositories"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TopicService interface {
	Create(req models.CreateTopicRequest) (*models.Topic, error)
	Get(id uuid.UUID) (*models.Topic, error)
	GetList() ([]models.Topic, error)
	Update(id uuid.UUID, req models.UpdateTopicRequest) (*models.Topic, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type topicService struct {
	topicRepo      repositories.TopicRepository
	subjectRepo    repositories.SubjectRepository
	conceptRepo    repositories.ConceptRepository
	ratingRepo     repositories.RatingRepository
	conceptService ConceptService
	logger         *zap.Logger
}

func NewTopicService(
	topicRepo repositories.TopicRepository,
	subjectRepo repositories.SubjectRepository,
	conceptRepo repositories.ConceptRepository,
	ratingRepo repositories.RatingRepository,
	conceptService ConceptService,
	logger *zap.Logger,
) TopicService {
	return &topicService{
		topicRepo:      topicRepo,
		subjectRepo:    subjectRepo,
		conceptRepo:    conceptRepo,
		ratingRepo:     ratingRepo,
		conceptService: conceptService,
		logger:         logger,
	}
}

func (s *topicService) Create(req models.CreateTopicRequest) (*models.Topic, error) {
	if _, err := s.subjectRepo.GetByID(req.SubjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "subject not found"}
		}
		return nil, err
	}

	topic := &models.Topic{
		Title:        req.Title,
		Slug:         slug.Make(req.Title),
		Description:  req.Description,
		CoverImage:   req.CoverImage,
		SubjectID:    req.SubjectID,
		DisplayOrder: req.DisplayOrder,
		IsPublished:  req.IsPublished,
	}

	if err := s.topicRepo.Create(topic); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorConflict{Message: "a topic with this slug already exists"}
		}
		return nil, err
	}
	return topic, nil
}

func (s *topicService) Get(id uuid.UUID) (*models.Topic, error) {
	topic, err := s.topicRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "topic not found"}
		}
		return nil, err
	}
	return topic, nil
}

func (s *topicService) GetList() ([]models.Topic, error) {
	return s.topicRepo.GetList(false)
}

func (s *topicService) Update(id uuid.UUID, req models.UpdateTopicRequest) (*models.Topic, error) {
	topic, err := s.topicRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "topic not found"}
		}
		return nil, err
	}

	if req.SubjectID != topic.SubjectID {
		if _, err := s.subjectRepo.GetByID(req.SubjectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.ErrorNotFound{Message: "subject not found"}
			}
			return nil, err
		}
	}

	topic.Title = req.Title
	topic.Slug = slug.Make(req.Title)
	topic.Description = req.Description
	topic.SubjectID = req.SubjectID
	if req.CoverImage != nil {
		topic.CoverImage = req.CoverImage
	}
	topic.DisplayOrder = req.DisplayOrder
	topic.IsPublished = req.IsPublished
	topic.Subject = nil

	if err := s.topicRepo.Update(topic); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorConflict{Message: "a topic with this slug already exists"}
		}
		return nil, err
	}
	return topic, nil
}

// Delete cascades through the coordinator: every concept under the topic goes
// through the content-first delete sequence before the topic row is removed.
// The stores enforce nothing across the boundary, so the cascade lives here.
func (s *topicService) Delete(ctx context.Context, id uuid.UUID) error {
	topic, err := s.topicRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrorNotFound{Message: "topic not found"}
		}
		return err
	}

	concepts, err := s.conceptRepo.GetByTopic(topic.ID, false)
	if err != nil {
		return err
	}
	for _, concept := range concepts {
		if err := s.conceptService.Delete(ctx, concept.ID); err != nil {
			return err
		}
	}

	if err := s.ratingRepo.DeleteForTopic(topic.ID); err != nil {
		return err
	}

	s.logger.Info("topic deleted",
		zap.String("topic_id", topic.ID.String()),
		zap.Int("concepts_removed", len(concepts)))

	return s.topicRepo.Delete(topic.ID)
}
