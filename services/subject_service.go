package services

import (
	"context"
	"errors"

	"docpress/models"
	"docpress/repositories"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type SubjectService interface {
	Create(req models.CreateSubjectRequest, authorID uuid.UUID) (*models.Subject, error)
	Get(id uuid.UUID) (*models.Subject, error)
	GetList() ([]models.Subject, error)
	Update(id uuid.UUID, req models.UpdateSubjectRequest) (*models.Subject, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type subjectService struct {
	subjectRepo  repositories.SubjectRepository
	topicRepo    repositories.TopicRepository
	topicService TopicService
}

func NewSubjectService(
	subjectRepo repositories.SubjectRepository,
	topicRepo repositories.TopicRepository,
	topicService TopicService,
) SubjectService {
	return &subjectService{
		subjectRepo:  subjectRepo,
		topicRepo:    topicRepo,
		topicService: topicService,
	}
}

func (s *subjectService) Create(req models.CreateSubjectRequest, authorID uuid.UUID) (*models.Subject, error) {
	subject := &models.Subject{
		Title:        req.Title,
		Slug:         slug.Make(req.Title),
		Description:  req.Description,
		CoverImage:   req.CoverImage,
		AuthorID:     authorID,
		DisplayOrder: req.DisplayOrder,
		IsPublished:  req.IsPublished,
	}

	if err := s.subjectRepo.Create(subject); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorConflict{Message: "a subject with this slug already exists"}
		}
		return nil, err
	}
	return subject, nil
}

func (s *subjectService) Get(id uuid.UUID) (*models.Subject, error) {
	subject, err := s.subjectRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "subject not found"}
		}
		return nil, err
	}
	return subject, nil
}

func (s *subjectService) GetList() ([]models.Subject, error) {
	return s.subjectRepo.GetList(false)
}

func (s *subjectService) Update(id uuid.UUID, req models.UpdateSubjectRequest) (*models.Subject, error) {
	subject, err := s.subjectRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "subject not found"}
		}
		return nil, err
	}

	// Slug regenerates with the title; the old public URL stops resolving.
	subject.Title = req.Title
	subject.Slug = slug.Make(req.Title)
	subject.Description = req.Description
	if req.CoverImage != nil {
		subject.CoverImage = req.CoverImage
	}
	subject.DisplayOrder = req.DisplayOrder
	subject.IsPublished = req.IsPublished
	subject.Author = nil

	if err := s.subjectRepo.Update(subject); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorConflict{Message: "a subject with this slug already exists"}
		}
		return nil, err
	}
	return subject, nil
}

func (s *subjectService) Delete(ctx context.Context, id uuid.UUID) error {
	subject, err := s.subjectRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrorNotFound{Message: "subject not found"}
		}
		return err
	}

	topics, err := s.topicRepo.GetBySubject(subject.ID, false)
	if err != nil {
		return err
	}
	for _, topic := range topics {
		if err := s.topicService.Delete(ctx, topic.ID); err != nil {
			return err
		}
	}

	return s.subjectRepo.Delete(subject.ID)
}
