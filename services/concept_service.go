package services

import (
	"context"
	"errors"
	"time"

	"docpress/models"
	"docpress/repositories"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ConceptService coordinates a concept's structured record (Postgres) and its
// content document (Mongo). The two stores commit independently; every
// multi-step operation here is a sequence of single-store writes ordered so
// that each intermediate state is either fully usable or retriable. Nothing
// is rolled back on partial failure: the error names the failed stage and the
// caller retries that stage.
type ConceptService interface {
	Create(ctx context.Context, req models.CreateConceptRequest, actorID uuid.UUID) (*models.ConceptResult, error)
	AttachContent(ctx context.Context, conceptID uuid.UUID, content string, contentType models.ContentType, actorID uuid.UUID) (*models.ConceptResult, error)
	Update(ctx context.Context, conceptID uuid.UUID, req models.UpdateConceptRequest, actorID uuid.UUID) (*models.ConceptResult, error)
	Move(ctx context.Context, conceptID, newTopicID uuid.UUID) (*models.Concept, error)
	Delete(ctx context.Context, conceptID uuid.UUID) error
	Get(conceptID uuid.UUID) (*models.Concept, error)
	GetContent(ctx context.Context, conceptID uuid.UUID) (*models.Content, error)
	GetList() ([]models.Concept, error)
	Search(ctx context.Context, query string) ([]models.Concept, error)
	SearchByAuthor(name string) ([]models.Concept, error)
	SearchByTopic(title string) ([]models.Concept, error)
}

const searchHitCap = 50

type conceptService struct {
	conceptRepo repositories.ConceptRepository
	topicRepo   repositories.TopicRepository
	subjectRepo repositories.SubjectRepository
	contentRepo repositories.ContentRepository
	ratingRepo  repositories.RatingRepository
	cache       repositories.ContentCache
	logger      *zap.Logger
}

func NewConceptService(
	conceptRepo repositories.ConceptRepository,
	topicRepo repositories.TopicRepository,
	subjectRepo repositories.SubjectRepository,
	contentRepo repositories.ContentRepository,
	ratingRepo repositories.RatingRepository,
	cache repositories.ContentCache,
	logger *zap.Logger,
) ConceptService {
	return &conceptService{
		conceptRepo: conceptRepo,
		topicRepo:   topicRepo,
		subjectRepo: subjectRepo,
		contentRepo: contentRepo,
		ratingRepo:  ratingRepo,
		cache:       cache,
		logger:      logger,
	}
}

// Create inserts the structured record first, then the content document, then
// backfills the content reference. A failure after the first step leaves a
// content-empty concept that AttachContent can repair; a failure after the
// second leaves an orphan document reachable by back-reference, which the
// same repair finds and links instead of duplicating.
func (s *conceptService) Create(ctx context.Context, req models.CreateConceptRequest, actorID uuid.UUID) (*models.ConceptResult, error) {
	if _, err := s.topicRepo.GetByID(req.TopicID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "topic not found"}
		}
		return nil, err
	}

	now := time.Now()
	concept := &models.Concept{
		Title:         req.Title,
		Slug:          slug.Make(req.Title),
		TopicID:       req.TopicID,
		CoverImage:    req.CoverImage,
		DisplayOrder:  req.DisplayOrder,
		IsPublished:   req.IsPublished,
		LastRevisedOn: &now,
	}

	if err := s.conceptRepo.Create(concept); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorConflict{Message: "a concept with this slug already exists"}
		}
		return nil, err
	}

	s.logger.Info("concept created",
		zap.String("concept_id", concept.ID.String()),
		zap.String("slug", concept.Slug))

	contentType := req.ContentType
	if contentType == "" {
		contentType = models.ContentTypeQuill
	}

	return s.attachContent(ctx, concept, req.Content, contentType, actorID)
}

// AttachContent is the idempotent repair for a create that failed between
// stores. It links an existing back-referenced document before it ever
// creates a new one, so running it twice against the same concept yields
// exactly one document. A concept that already holds a reference is left
// alone.
func (s *conceptService) AttachContent(ctx context.Context, conceptID uuid.UUID, content string, contentType models.ContentType, actorID uuid.UUID) (*models.ConceptResult, error) {
	concept, err := s.conceptRepo.GetByID(conceptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "concept not found"}
		}
		return nil, err
	}

	if concept.ContentID != nil {
		return &models.ConceptResult{Concept: concept, ContentAttached: true}, nil
	}

	if contentType == "" {
		contentType = models.ContentTypeQuill
	}
	return s.attachContent(ctx, concept, content, contentType, actorID)
}

func (s *conceptService) attachContent(ctx context.Context, concept *models.Concept, content string, contentType models.ContentType, actorID uuid.UUID) (*models.ConceptResult, error) {
	conceptKey := concept.ID.String()

	var contentID string
	existing, err := s.contentRepo.GetByConceptID(ctx, conceptKey)
	switch {
	case err == nil:
		// Orphan from an earlier partial create; link it rather than
		// inserting a duplicate.
		contentID = existing.ID.Hex()
		s.logger.Warn("linking orphaned content document",
			zap.String("concept_id", conceptKey),
			zap.String("content_id", contentID))
	case errors.As(err, &models.ErrorNotFound{}):
		doc := &models.Content{
			ConceptID:      conceptKey,
			HTMLContent:    content,
			RawContent:     content,
			ContentType:    contentType,
			Revisions:      []models.Revision{},
			CreatedBy:      actorID.String(),
			LastModifiedBy: actorID.String(),
		}
		contentID, err = s.contentRepo.Create(ctx, doc)
		if err != nil {
			return &models.ConceptResult{Concept: concept, ContentAttached: false},
				models.ErrorPartialWrite{Stage: "content-create", Err: err}
		}
	default:
		return &models.ConceptResult{Concept: concept, ContentAttached: false},
			models.ErrorPartialWrite{Stage: "content-create", Err: err}
	}

	if err := s.conceptRepo.UpdateContentID(concept.ID, &contentID); err != nil {
		// The document exists but nothing points at it yet. It stays
		// reachable by back-reference; retrying this operation links it.
		return &models.ConceptResult{Concept: concept, ContentAttached: false},
			models.ErrorPartialWrite{Stage: "content-link", Err: err}
	}
	concept.ContentID = &contentID

	return &models.ConceptResult{Concept: concept, ContentAttached: true}, nil
}

// Update always applies the structured changes. The content document is only
// touched when new content is supplied and a reference exists; the pre-update
// raw content is appended to the revision log before being overwritten.
func (s *conceptService) Update(ctx context.Context, conceptID uuid.UUID, req models.UpdateConceptRequest, actorID uuid.UUID) (*models.ConceptResult, error) {
	concept, err := s.conceptRepo.GetByID(conceptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "concept not found"}
		}
		return nil, err
	}

	if req.TopicID != concept.TopicID {
		if _, err := s.topicRepo.GetByID(req.TopicID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.ErrorNotFound{Message: "topic not found"}
			}
			return nil, err
		}
	}

	now := time.Now()
	concept.Title = req.Title
	concept.Slug = slug.Make(req.Title)
	concept.TopicID = req.TopicID
	if req.CoverImage != nil {
		concept.CoverImage = req.CoverImage
	}
	concept.DisplayOrder = req.DisplayOrder
	concept.IsPublished = req.IsPublished
	concept.LastRevisedOn = &now
	concept.Topic = nil

	if err := s.conceptRepo.Update(concept); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorConflict{Message: "a concept with this slug already exists"}
		}
		return nil, err
	}

	if req.Content == nil {
		return &models.ConceptResult{Concept: concept, ContentAttached: concept.ContentID != nil}, nil
	}

	if concept.ContentID == nil {
		// Orphan-create state: the structured update went through but there
		// is no document to revise. Reported, not hidden, so the attach step
		// can be retried.
		s.logger.Warn("content update skipped, concept has no content reference",
			zap.String("concept_id", concept.ID.String()))
		return &models.ConceptResult{Concept: concept, ContentAttached: false}, nil
	}

	doc, err := s.contentRepo.GetByConceptID(ctx, concept.ID.String())
	if err != nil {
		if errors.As(err, &models.ErrorNotFound{}) {
			s.logger.Warn("content reference does not resolve, update skipped",
				zap.String("concept_id", concept.ID.String()),
				zap.String("content_id", *concept.ContentID))
			return &models.ConceptResult{Concept: concept, ContentAttached: false}, nil
		}
		return &models.ConceptResult{Concept: concept, ContentAttached: true},
			models.ErrorPartialWrite{Stage: "content-update", Err: err}
	}

	doc.Revisions = append(doc.Revisions, models.Revision{
		Content:   doc.RawContent,
		RevisedBy: actorID.String(),
		RevisedAt: now,
	})
	doc.RawContent = *req.Content
	doc.HTMLContent = *req.Content
	doc.LastModifiedBy = actorID.String()
	if doc.CreatedBy == "" {
		doc.CreatedBy = actorID.String()
	}

	if err := s.contentRepo.Save(ctx, doc); err != nil {
		return &models.ConceptResult{Concept: concept, ContentAttached: true},
			models.ErrorPartialWrite{Stage: "content-update", Err: err}
	}

	s.cache.Invalidate(ctx, concept.ID.String())

	return &models.ConceptResult{Concept: concept, ContentAttached: true}, nil
}

// Move is hierarchy-only. The content document is keyed by concept identity,
// not by topic, so no cross-store action is needed.
func (s *conceptService) Move(ctx context.Context, conceptID, newTopicID uuid.UUID) (*models.Concept, error) {
	concept, err := s.conceptRepo.GetByID(conceptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "concept not found"}
		}
		return nil, err
	}

	newTopic, err := s.topicRepo.GetByID(newTopicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "target topic not found"}
		}
		return nil, err
	}

	now := time.Now()
	concept.TopicID = newTopic.ID
	concept.LastRevisedOn = &now
	concept.Topic = nil

	if err := s.conceptRepo.Update(concept); err != nil {
		return nil, err
	}

	s.logger.Info("concept moved",
		zap.String("concept_id", concept.ID.String()),
		zap.String("topic", newTopic.Title))

	return concept, nil
}

// Delete removes the content document before the row. If the content delete
// fails the row survives and the whole operation can be retried; the reverse
// order would strand an unreachable document behind a deleted row.
func (s *conceptService) Delete(ctx context.Context, conceptID uuid.UUID) error {
	concept, err := s.conceptRepo.GetByID(conceptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrorNotFound{Message: "concept not found"}
		}
		return err
	}

	if concept.ContentID != nil {
		if err := s.contentRepo.DeleteByConceptID(ctx, concept.ID.String()); err != nil {
			return models.ErrorPartialWrite{Stage: "content-delete", Err: err}
		}
		s.cache.Invalidate(ctx, concept.ID.String())
	}

	if err := s.ratingRepo.DeleteForConcept(concept.ID); err != nil {
		return err
	}

	return s.conceptRepo.Delete(concept.ID)
}

func (s *conceptService) Get(conceptID uuid.UUID) (*models.Concept, error) {
	concept, err := s.conceptRepo.GetByID(conceptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "concept not found"}
		}
		return nil, err
	}
	return concept, nil
}

// GetContent fetches the raw document for the editor. A nil reference is a
// NotFound here; readers of the public surface treat that as an empty body
// instead.
func (s *conceptService) GetContent(ctx context.Context, conceptID uuid.UUID) (*models.Content, error) {
	concept, err := s.conceptRepo.GetByID(conceptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "concept not found"}
		}
		return nil, err
	}
	if concept.ContentID == nil {
		return nil, models.ErrorNotFound{Message: "concept has no content"}
	}
	return s.contentRepo.GetByConceptID(ctx, concept.ID.String())
}

func (s *conceptService) GetList() ([]models.Concept, error) {
	return s.conceptRepo.GetList()
}

// Search delegates free-text matching to the content store's text index, then
// re-validates every hit against the hierarchy store. Hits whose concept is
// unpublished or gone since indexing are dropped silently, so the result may
// be shorter than the raw hit count. Mongo's relevance order is preserved.
func (s *conceptService) Search(ctx context.Context, query string) ([]models.Concept, error) {
	hits, err := s.contentRepo.Search(ctx, query, searchHitCap)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(hits))
	for _, hit := range hits {
		id, err := uuid.Parse(hit.ConceptID)
		if err != nil {
			s.logger.Warn("search hit with malformed concept id", zap.String("concept_id", hit.ConceptID))
			continue
		}
		ids = append(ids, id)
	}

	concepts, err := s.conceptRepo.GetPublishedByIDs(ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.Concept, len(concepts))
	for _, c := range concepts {
		byID[c.ID.String()] = c
	}

	ordered := make([]models.Concept, 0, len(concepts))
	for _, hit := range hits {
		if c, ok := byID[hit.ConceptID]; ok {
			ordered = append(ordered, c)
		}
	}
	return ordered, nil
}

// SearchByAuthor and SearchByTopic query the hierarchy store alone; the
// content store is not involved.
func (s *conceptService) SearchByAuthor(name string) ([]models.Concept, error) {
	subjects, err := s.subjectRepo.SearchByAuthorName(name)
	if err != nil {
		return nil, err
	}

	var concepts []models.Concept
	for _, subject := range subjects {
		for _, topic := range subject.Topics {
			concepts = append(concepts, topic.Concepts...)
		}
	}
	return concepts, nil
}

func (s *conceptService) SearchByTopic(title string) ([]models.Concept, error) {
	topics, err := s.topicRepo.SearchPublishedByTitle(title, searchHitCap)
	if err != nil {
		return nil, err
	}

	var concepts []models.Concept
	for _, topic := range topics {
		matched, err := s.conceptRepo.GetByTopic(topic.ID, true)
		if err != nil {
			return nil, err
		}
		concepts = append(concepts, matched...)
	}
	return concepts, nil
}
