package services

import (
	"context"
	"errors"

	"docpress/models"
	"docpress/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	quickSearchConceptLimit = 8
	quickSearchTopicLimit   = 5
	quickSearchTotalLimit   = 10
	recentConceptsLimit     = 5
)

// BrowseService is the public read surface. Every slug lookup validates the
// full published ancestor chain; an unpublished subject hides all its topics
// and concepts no matter what their own flags say.
type BrowseService interface {
	Home() ([]models.Subject, []models.Concept, error)
	SubjectBySlug(slug string) (*models.Subject, error)
	TopicBySlug(slug string) (*models.Topic, *repositories.RatingAggregate, error)
	ConceptPage(ctx context.Context, slug string) (*models.ConceptPage, error)
	QuickSearch(query string) ([]models.QuickSearchResult, error)
}

type browseService struct {
	subjectRepo repositories.SubjectRepository
	topicRepo   repositories.TopicRepository
	conceptRepo repositories.ConceptRepository
	ratingRepo  repositories.RatingRepository
	contentRepo repositories.ContentRepository
	cache       repositories.ContentCache
	logger      *zap.Logger
}

func NewBrowseService(
	subjectRepo repositories.SubjectRepository,
	topicRepo repositories.TopicRepository,
	conceptRepo repositories.ConceptRepository,
	ratingRepo repositories.RatingRepository,
	contentRepo repositories.ContentRepository,
	cache repositories.ContentCache,
	logger *zap.Logger,
) BrowseService {
	return &browseService{
		subjectRepo: subjectRepo,
		topicRepo:   topicRepo,
		conceptRepo: conceptRepo,
		ratingRepo:  ratingRepo,
		contentRepo: contentRepo,
		cache:       cache,
		logger:      logger,
	}
}

func (s *browseService) Home() ([]models.Subject, []models.Concept, error) {
	subjects, err := s.subjectRepo.GetList(true)
	if err != nil {
		return nil, nil, err
	}

	recent, err := s.conceptRepo.GetRecentPublished(recentConceptsLimit)
	if err != nil {
		return nil, nil, err
	}
	return subjects, recent, nil
}

func (s *browseService) SubjectBySlug(slug string) (*models.Subject, error) {
	subject, err := s.subjectRepo.GetBySlugPublished(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "subject not found"}
		}
		return nil, err
	}
	return subject, nil
}

func (s *browseService) TopicBySlug(slug string) (*models.Topic, *repositories.RatingAggregate, error) {
	topic, err := s.topicRepo.GetBySlugPublished(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, models.ErrorNotFound{Message: "topic not found"}
		}
		return nil, nil, err
	}

	agg, err := s.ratingRepo.AggregateForTopic(topic.ID)
	if err != nil {
		return nil, nil, err
	}
	return topic, agg, nil
}

// ConceptPage composes a documentation page: structure from the hierarchy
// store, body from the content store, navigation and ratings around it. A
// nil or unresolvable content reference renders as an empty body, never as a
// failure; the page is still worth serving.
func (s *browseService) ConceptPage(ctx context.Context, slug string) (*models.ConceptPage, error) {
	concept, err := s.conceptRepo.GetBySlugPublished(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "concept not found"}
		}
		return nil, err
	}

	page := &models.ConceptPage{Concept: concept}
	page.HTMLContent = s.resolveContent(ctx, concept)

	siblings, err := s.conceptRepo.GetByTopic(concept.TopicID, true)
	if err != nil {
		return nil, err
	}
	for i := range siblings {
		if siblings[i].ID == concept.ID {
			if i > 0 {
				page.PreviousConcept = &siblings[i-1]
			}
			if i < len(siblings)-1 {
				page.NextConcept = &siblings[i+1]
			}
			break
		}
	}

	if concept.Topic != nil {
		sidebar, err := s.topicRepo.GetBySubject(concept.Topic.SubjectID, true)
		if err != nil {
			return nil, err
		}
		page.SidebarTopics = sidebar
	}

	agg, err := s.ratingRepo.AggregateForConcept(concept.ID)
	if err != nil {
		return nil, err
	}
	page.AverageRating = agg.Average
	page.RatingsCount = agg.Count

	comments, err := s.ratingRepo.GetCommentsForConcept(concept.ID)
	if err != nil {
		return nil, err
	}
	page.RatingComments = comments

	return page, nil
}

func (s *browseService) resolveContent(ctx context.Context, concept *models.Concept) string {
	if concept.ContentID == nil {
		return ""
	}

	key := concept.ID.String()
	if html, ok := s.cache.GetHTML(ctx, key); ok {
		return html
	}

	content, err := s.contentRepo.GetByConceptID(ctx, key)
	if err != nil {
		// Dangling reference or a content-store hiccup; serve the page with
		// an empty body rather than failing it.
		s.logger.Warn("content reference did not resolve",
			zap.String("concept_id", key),
			zap.Error(err))
		return ""
	}

	s.cache.SetHTML(ctx, key, content.HTMLContent)
	return content.HTMLContent
}

// QuickSearch is the typeahead: title substring match over published
// concepts and topics, hierarchy store only.
func (s *browseService) QuickSearch(query string) ([]models.QuickSearchResult, error) {
	if len(query) < 2 {
		return nil, nil
	}

	concepts, err := s.conceptRepo.SearchPublishedByTitle(query, quickSearchConceptLimit)
	if err != nil {
		return nil, err
	}
	topics, err := s.topicRepo.SearchPublishedByTitle(query, quickSearchTopicLimit)
	if err != nil {
		return nil, err
	}

	results := make([]models.QuickSearchResult, 0, len(concepts)+len(topics))
	for _, topic := range topics {
		r := models.QuickSearchResult{
			Type:  "topic",
			Title: topic.Title,
			URL:   "/topic/" + topic.Slug,
		}
		if topic.Subject != nil {
			r.Subject = topic.Subject.Title
		}
		results = append(results, r)
	}
	for _, concept := range concepts {
		r := models.QuickSearchResult{
			Type:  "concept",
			Title: concept.Title,
		}
		if concept.Topic != nil {
			r.Topic = concept.Topic.Title
			if concept.Topic.Subject != nil {
				r.Subject = concept.Topic.Subject.Title
				r.URL = "/docs/" + concept.Topic.Subject.Slug + "/" + concept.Topic.Slug + "/" + concept.Slug
			}
		}
		results = append(results, r)
	}

	if len(results) > quickSearchTotalLimit {
		results = results[:quickSearchTotalLimit]
	}
	return results, nil
}
