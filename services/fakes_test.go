package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"docpress/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
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
	// A second connection would see an empty :memory: database.
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

// fakeContentRepo is an in-memory stand-in for the Mongo-backed content
// store, keyed by concept back-reference like the real one. failCreate and
// failSave simulate the content store going away mid-operation.
type fakeContentRepo struct {
	mu         sync.Mutex
	docs       map[string]*models.Content
	hits       []models.SearchHit
	failCreate bool
	failSave   bool
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{docs: map[string]*models.Content{}}
}

func (f *fakeContentRepo) Create(_ context.Context, content *models.Content) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failCreate {
		return "", errors.New("content store unavailable")
	}
	if _, exists := f.docs[content.ConceptID]; exists {
		return "", models.ErrorConflict{Message: "content document already exists for concept"}
	}

	content.ID = primitive.NewObjectID()
	now := time.Now()
	content.CreatedAt = now
	content.UpdatedAt = now
	clone := *content
	f.docs[content.ConceptID] = &clone
	return content.ID.Hex(), nil
}

func (f *fakeContentRepo) GetByConceptID(_ context.Context, conceptID string) (*models.Content, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, ok := f.docs[conceptID]
	if !ok {
		return nil, models.ErrorNotFound{Message: "content not found"}
	}
	clone := *doc
	clone.Revisions = append([]models.Revision(nil), doc.Revisions...)
	return &clone, nil
}

func (f *fakeContentRepo) Save(_ context.Context, content *models.Content) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failSave {
		return errors.New("content store unavailable")
	}
	if _, ok := f.docs[content.ConceptID]; !ok {
		return models.ErrorNotFound{Message: "content not found"}
	}
	content.UpdatedAt = time.Now()
	clone := *content
	f.docs[content.ConceptID] = &clone
	return nil
}

func (f *fakeContentRepo) DeleteByConceptID(_ context.Context, conceptID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.docs, conceptID)
	return nil
}

func (f *fakeContentRepo) Search(_ context.Context, query string, limit int) ([]models.SearchHit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.hits != nil {
		hits := f.hits
		if len(hits) > limit {
			hits = hits[:limit]
		}
		return hits, nil
	}

	var hits []models.SearchHit
	for id, doc := range f.docs {
		if strings.Contains(doc.RawContent, query) || strings.Contains(doc.HTMLContent, query) {
			hits = append(hits, models.SearchHit{ConceptID: id, Score: 1})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].ConceptID < hits[j].ConceptID })
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

func (f *fakeContentRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.docs)
}

// fakeContentCache records lookups and invalidations.
type fakeContentCache struct {
	mu          sync.Mutex
	entries     map[string]string
	invalidated []string
}

func newFakeContentCache() *fakeContentCache {
	return &fakeContentCache{entries: map[string]string{}}
}

func (f *fakeContentCache) GetHTML(_ context.Context, conceptID string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	html, ok := f.entries[conceptID]
	return html, ok
}

func (f *fakeContentCache) SetHTML(_ context.Context, conceptID, html string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[conceptID] = html
}

func (f *fakeContentCache) Invalidate(_ context.Context, conceptID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, conceptID)
	f.invalidated = append(f.invalidated, conceptID)
}
