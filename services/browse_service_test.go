package services

import (
	"context"
	"testing"

	"docpress/models"
	"docpress/repositories"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type BrowseServiceTestSuite struct {
	suite.Suite
	db          *gorm.DB
	contentRepo *fakeContentRepo
	cache       *fakeContentCache
	service     BrowseService

	conceptService ConceptService
	ratingService  RatingService
	author         models.User
	subject        *models.Subject
	topic          *models.Topic
}

func (suite *BrowseServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())

	subjectRepo := repositories.NewSubjectRepository(suite.db)
	topicRepo := repositories.NewTopicRepository(suite.db)
	conceptRepo := repositories.NewConceptRepository(suite.db)
	ratingRepo := repositories.NewRatingRepository(suite.db)
	suite.contentRepo = newFakeContentRepo()
	suite.cache = newFakeContentCache()
	logger := zap.NewNop()

	suite.conceptService = NewConceptService(conceptRepo, topicRepo, subjectRepo, suite.contentRepo, ratingRepo, suite.cache, logger)
	suite.ratingService = NewRatingService(ratingRepo, conceptRepo, topicRepo)
	suite.service = NewBrowseService(subjectRepo, topicRepo, conceptRepo, ratingRepo, suite.contentRepo, suite.cache, logger)

	author := &models.User{Username: "author", Email: "author@example.com", Role: models.RoleAdmin}
	suite.Require().NoError(suite.db.Create(author).Error)
	suite.author = *author

	suite.subject = &models.Subject{Title: "Chemistry", Slug: "chemistry", AuthorID: author.ID, IsPublished: true}
	suite.Require().NoError(suite.db.Create(suite.subject).Error)

	suite.topic = &models.Topic{Title: "Matter", Slug: "matter", SubjectID: suite.subject.ID, IsPublished: true}
	suite.Require().NoError(suite.db.Create(suite.topic).Error)
}

func (suite *BrowseServiceTestSuite) createConcept(title string, order int, published bool, body string) *models.Concept {
	result, err := suite.conceptService.Create(context.Background(), models.CreateConceptRequest{
		Title:        title,
		TopicID:      suite.topic.ID,
		DisplayOrder: order,
		IsPublished:  published,
		Content:      body,
	}, suite.author.ID)
	suite.Require().NoError(err)
	return result.Concept
}

func (suite *BrowseServiceTestSuite) TestConceptPageComposition() {
	suite.createConcept("Solids", 1, true, "solid body")
	middle := suite.createConcept("Liquids", 2, true, "liquid body")
	suite.createConcept("Gases", 3, true, "gas body")
	suite.createConcept("Drafts", 4, false, "draft body")

	_, err := suite.ratingService.Rate(models.TargetConcept, middle.ID, suite.author.ID, 4, "clear explanation")
	suite.Require().NoError(err)

	page, err := suite.service.ConceptPage(context.Background(), "liquids")
	suite.Require().NoError(err)

	suite.Equal(middle.ID, page.Concept.ID)
	suite.Equal("liquid body", page.HTMLContent)

	// Prev/next walk published siblings in display order.
	suite.Require().NotNil(page.PreviousConcept)
	suite.Equal("solids", page.PreviousConcept.Slug)
	suite.Require().NotNil(page.NextConcept)
	suite.Equal("gases", page.NextConcept.Slug)

	suite.Equal(4.0, page.AverageRating)
	suite.Equal(int64(1), page.RatingsCount)
	suite.Require().Len(page.RatingComments, 1)
	suite.Equal("clear explanation", page.RatingComments[0].Comment)
	suite.Require().Len(page.SidebarTopics, 1)
	suite.Equal("matter", page.SidebarTopics[0].Slug)
}

func (suite *BrowseServiceTestSuite) TestConceptPagePopulatesCache() {
	concept := suite.createConcept("Solids", 1, true, "solid body")

	_, err := suite.service.ConceptPage(context.Background(), "solids")
	suite.Require().NoError(err)

	// The second read never reaches the content store.
	suite.Require().NoError(suite.contentRepo.DeleteByConceptID(context.Background(), concept.ID.String()))

	page, err := suite.service.ConceptPage(context.Background(), "solids")
	suite.Require().NoError(err)
	suite.Equal("solid body", page.HTMLContent)
}

func (suite *BrowseServiceTestSuite) TestContentUpdateInvalidatesCachedBody() {
	ctx := context.Background()
	concept := suite.createConcept("Solids", 1, true, "old body")

	page, err := suite.service.ConceptPage(ctx, "solids")
	suite.Require().NoError(err)
	suite.Equal("old body", page.HTMLContent)

	body := "new body"
	_, err = suite.conceptService.Update(ctx, concept.ID, models.UpdateConceptRequest{
		Title:       "Solids",
		TopicID:     suite.topic.ID,
		IsPublished: true,
		Content:     &body,
	}, suite.author.ID)
	suite.Require().NoError(err)

	// The write path dropped the cached copy; the next read sees the update.
	page, err = suite.service.ConceptPage(ctx, "solids")
	suite.Require().NoError(err)
	suite.Equal("new body", page.HTMLContent)
}

func (suite *BrowseServiceTestSuite) TestConceptPageDanglingReferenceServesEmptyBody() {
	concept := suite.createConcept("Solids", 1, true, "solid body")

	// Simulate a content document lost behind a live reference.
	suite.Require().NoError(suite.contentRepo.DeleteByConceptID(context.Background(), concept.ID.String()))

	page, err := suite.service.ConceptPage(context.Background(), "solids")
	suite.Require().NoError(err)
	suite.Equal("", page.HTMLContent)
}

func (suite *BrowseServiceTestSuite) TestUnpublishedConceptInvisibleBySlug() {
	suite.createConcept("Drafts", 1, false, "draft body")

	_, err := suite.service.ConceptPage(context.Background(), "drafts")
	suite.ErrorAs(err, &models.ErrorNotFound{})
}

func (suite *BrowseServiceTestSuite) TestUnpublishedAncestorHidesDescendants() {
	suite.createConcept("Solids", 1, true, "solid body")

	// Unpublishing the subject takes the whole chain off the public surface,
	// whatever the descendants' own flags say.
	suite.Require().NoError(suite.db.Model(suite.subject).Update("is_published", false).Error)

	_, err := suite.service.SubjectBySlug("chemistry")
	suite.ErrorAs(err, &models.ErrorNotFound{})

	_, _, err = suite.service.TopicBySlug("matter")
	suite.ErrorAs(err, &models.ErrorNotFound{})

	_, err = suite.service.ConceptPage(context.Background(), "solids")
	suite.ErrorAs(err, &models.ErrorNotFound{})

	// Direct-by-id admin reads keep working.
	_, err = suite.conceptService.GetList()
	suite.NoError(err)
}

func (suite *BrowseServiceTestSuite) TestTopicBySlugListsOnlyPublishedConcepts() {
	suite.createConcept("Solids", 1, true, "solid body")
	suite.createConcept("Drafts", 2, false, "draft body")

	topic, agg, err := suite.service.TopicBySlug("matter")
	suite.Require().NoError(err)
	suite.Require().NotNil(agg)
	suite.Require().Len(topic.Concepts, 1)
	suite.Equal("solids", topic.Concepts[0].Slug)
}

func (suite *BrowseServiceTestSuite) TestHomeListsPublishedSubjectsAndRecentConcepts() {
	suite.createConcept("Solids", 1, true, "solid body")

	hidden := &models.Subject{Title: "Secret", Slug: "secret", AuthorID: suite.author.ID, IsPublished: false}
	suite.Require().NoError(suite.db.Create(hidden).Error)

	subjects, recent, err := suite.service.Home()
	suite.Require().NoError(err)
	suite.Require().Len(subjects, 1)
	suite.Equal("chemistry", subjects[0].Slug)
	suite.Require().Len(recent, 1)
	suite.Equal("solids", recent[0].Slug)
}

func (suite *BrowseServiceTestSuite) TestQuickSearchLimitsAndURLs() {
	suite.createConcept("Atomic Models", 1, true, "body")
	suite.createConcept("Atomic Drafts", 2, false, "body")

	results, err := suite.service.QuickSearch("ATOMIC")
	suite.Require().NoError(err)
	suite.Require().Len(results, 1)
	suite.Equal("concept", results[0].Type)
	suite.Equal("Atomic Models", results[0].Title)
	suite.Equal("Matter", results[0].Topic)
	suite.Equal("Chemistry", results[0].Subject)
	suite.Equal("/docs/chemistry/matter/atomic-models", results[0].URL)

	// A single character never hits the stores.
	short, err := suite.service.QuickSearch("a")
	suite.Require().NoError(err)
	suite.Nil(short)
}

func (suite *BrowseServiceTestSuite) TestQuickSearchCapsPerTypeAndTotal() {
	titles := []string{
		"Atom One", "Atom Two", "Atom Three", "Atom Four", "Atom Five",
		"Atom Six", "Atom Seven", "Atom Eight", "Atom Nine", "Atom Ten",
	}
	for i, title := range titles {
		suite.createConcept(title, i+1, true, "body")
	}
	for i, title := range []string{
		"Atomic A", "Atomic B", "Atomic C", "Atomic D", "Atomic E", "Atomic F",
	} {
		topic := &models.Topic{
			Title:        title,
			Slug:         "atomic-" + string(rune('a'+i)),
			SubjectID:    suite.subject.ID,
			DisplayOrder: i,
			IsPublished:  true,
		}
		suite.Require().NoError(suite.db.Create(topic).Error)
	}

	results, err := suite.service.QuickSearch("atom")
	suite.Require().NoError(err)
	suite.Require().Len(results, quickSearchTotalLimit)

	var topicCount, conceptCount int
	for _, r := range results {
		switch r.Type {
		case "topic":
			topicCount++
		case "concept":
			conceptCount++
		}
	}
	// Topics come first, capped per type, and the merge is capped overall.
	suite.Equal(quickSearchTopicLimit, topicCount)
	suite.Equal(quickSearchTotalLimit-quickSearchTopicLimit, conceptCount)
	suite.Equal("topic", results[0].Type)
	suite.Equal("concept", results[quickSearchTopicLimit].Type)
}

func TestBrowseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BrowseServiceTestSuite))
}
