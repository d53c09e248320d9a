package repositories

import (
	"testing"
	"time"

	"docpress/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal("failed to open test database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Subject{},
		&models.Topic{},
		&models.Concept{},
		&models.Rating{},
	); err != nil {
		t.Fatal("failed to migrate test database:", err)
	}
	return db
}

type ConceptRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo ConceptRepository

	subject *models.Subject
	topic   *models.Topic
}

func (suite *ConceptRepositoryTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.repo = NewConceptRepository(suite.db)

	author := &models.User{Username: "author", Email: "author@example.com"}
	suite.Require().NoError(suite.db.Create(author).Error)

	suite.subject = &models.Subject{Title: "Chemistry", Slug: "chemistry", AuthorID: author.ID, IsPublished: true}
	suite.Require().NoError(suite.db.Create(suite.subject).Error)

	suite.topic = &models.Topic{Title: "Matter", Slug: "matter", SubjectID: suite.subject.ID, IsPublished: true}
	suite.Require().NoError(suite.db.Create(suite.topic).Error)
}

func (suite *ConceptRepositoryTestSuite) seedConcept(title, slug string, published bool, revised time.Time) *models.Concept {
	concept := &models.Concept{
		Title:         title,
		Slug:          slug,
		TopicID:       suite.topic.ID,
		IsPublished:   published,
		LastRevisedOn: &revised,
	}
	suite.Require().NoError(suite.repo.Create(concept))
	return concept
}

func (suite *ConceptRepositoryTestSuite) TestSlugUniqueness() {
	now := time.Now()
	suite.seedConcept("Atoms", "atoms", true, now)

	err := suite.repo.Create(&models.Concept{Title: "Atoms Again", Slug: "atoms", TopicID: suite.topic.ID})
	suite.ErrorIs(err, gorm.ErrDuplicatedKey)
}

func (suite *ConceptRepositoryTestSuite) TestGetBySlugPublishedChecksAncestors() {
	now := time.Now()
	concept := suite.seedConcept("Atoms", "atoms", true, now)

	found, err := suite.repo.GetBySlugPublished("atoms")
	suite.Require().NoError(err)
	suite.Equal(concept.ID, found.ID)
	suite.Require().NotNil(found.Topic)
	suite.Require().NotNil(found.Topic.Subject)

	// Flip the parent topic; the concept drops off the public surface but
	// stays reachable by id.
	suite.Require().NoError(suite.db.Model(suite.topic).Update("is_published", false).Error)

	_, err = suite.repo.GetBySlugPublished("atoms")
	suite.ErrorIs(err, gorm.ErrRecordNotFound)

	_, err = suite.repo.GetByID(concept.ID)
	suite.NoError(err)
}

func (suite *ConceptRepositoryTestSuite) TestGetPublishedByIDs() {
	now := time.Now()
	published := suite.seedConcept("Atoms", "atoms", true, now)
	draft := suite.seedConcept("Draft", "draft", false, now)

	found, err := suite.repo.GetPublishedByIDs([]uuid.UUID{published.ID, draft.ID, uuid.New()})
	suite.Require().NoError(err)
	suite.Require().Len(found, 1)
	suite.Equal(published.ID, found[0].ID)

	found, err = suite.repo.GetPublishedByIDs(nil)
	suite.NoError(err)
	suite.Empty(found)
}

func (suite *ConceptRepositoryTestSuite) TestGetRecentPublishedOrder() {
	base := time.Now()
	old := suite.seedConcept("Old", "old", true, base.Add(-48*time.Hour))
	fresh := suite.seedConcept("Fresh", "fresh", true, base)
	suite.seedConcept("Draft", "draft", false, base.Add(time.Hour))

	recent, err := suite.repo.GetRecentPublished(5)
	suite.Require().NoError(err)
	suite.Require().Len(recent, 2)
	suite.Equal(fresh.ID, recent[0].ID)
	suite.Equal(old.ID, recent[1].ID)
}

func (suite *ConceptRepositoryTestSuite) TestUpdateContentID() {
	now := time.Now()
	concept := suite.seedConcept("Atoms", "atoms", true, now)
	suite.Require().Nil(concept.ContentID)

	contentID := "64f1a2b3c4d5e6f7a8b9c0d1"
	suite.Require().NoError(suite.repo.UpdateContentID(concept.ID, &contentID))

	stored, err := suite.repo.GetByID(concept.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(stored.ContentID)
	suite.Equal(contentID, *stored.ContentID)

	// Clearing the reference is the reverse direction of the same backfill.
	suite.Require().NoError(suite.repo.UpdateContentID(concept.ID, nil))
	stored, err = suite.repo.GetByID(concept.ID)
	suite.Require().NoError(err)
	suite.Nil(stored.ContentID)
}

func (suite *ConceptRepositoryTestSuite) TestGetByTopicOrdering() {
	now := time.Now()
	second := suite.seedConcept("Second", "second", true, now)
	second.DisplayOrder = 2
	suite.Require().NoError(suite.repo.Update(second))

	first := suite.seedConcept("First", "first", true, now)
	first.DisplayOrder = 1
	suite.Require().NoError(suite.repo.Update(first))

	suite.seedConcept("Draft", "draft", false, now)

	all, err := suite.repo.GetByTopic(suite.topic.ID, false)
	suite.Require().NoError(err)
	suite.Len(all, 3)

	published, err := suite.repo.GetByTopic(suite.topic.ID, true)
	suite.Require().NoError(err)
	suite.Require().Len(published, 2)
	suite.Equal("first", published[0].Slug)
	suite.Equal("second", published[1].Slug)
}

func (suite *ConceptRepositoryTestSuite) TestSearchPublishedByTitle() {
	now := time.Now()
	suite.seedConcept("Introduction to Atoms", "introduction-to-atoms", true, now)
	suite.seedConcept("Atomic Structure", "atomic-structure", true, now)
	suite.seedConcept("Atomic Drafts", "atomic-drafts", false, now)
	suite.seedConcept("Molecules", "molecules", true, now)

	// Case-insensitive substring match over published concepts only.
	found, err := suite.repo.SearchPublishedByTitle("ATOM", 10)
	suite.Require().NoError(err)
	suite.Require().Len(found, 2)
	suite.Equal("Atomic Structure", found[0].Title)
	suite.Equal("Introduction to Atoms", found[1].Title)

	limited, err := suite.repo.SearchPublishedByTitle("atom", 1)
	suite.Require().NoError(err)
	suite.Len(limited, 1)

	// An unpublished ancestor takes matches off the surface entirely.
	suite.Require().NoError(suite.db.Model(suite.subject).Update("is_published", false).Error)
	found, err = suite.repo.SearchPublishedByTitle("atom", 10)
	suite.Require().NoError(err)
	suite.Empty(found)
}

func TestConceptRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(ConceptRepositoryTestSuite))
}
