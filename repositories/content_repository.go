package repositories

import (
	"context"
	"errors"
	"time"

	"docpress/config"
	"docpress/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ContentRepository is the coordinator's view of the content store: get and
// delete are keyed by the concept back-reference, never by the document's own
// id, so an orphaned document stays reachable even when no concept points at
// it.
type ContentRepository interface {
	Create(ctx context.Context, content *models.Content) (string, error)
	GetByConceptID(ctx context.Context, conceptID string) (*models.Content, error)
	Save(ctx context.Context, content *models.Content) error
	DeleteByConceptID(ctx context.Context, conceptID string) error
	Search(ctx context.Context, query string, limit int) ([]models.SearchHit, error)
}

type contentRepository struct {
	collection *mongo.Collection
}

func NewContentRepository(db *mongo.Database) ContentRepository {
	return &contentRepository{collection: db.Collection(config.ContentCollection)}
}

func (r *contentRepository) Create(ctx context.Context, content *models.Content) (string, error) {
	now := time.Now()
	content.CreatedAt = now
	content.UpdatedAt = now
	if content.Revisions == nil {
		content.Revisions = []models.Revision{}
	}

	result, err := r.collection.InsertOne(ctx, content)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", models.ErrorConflict{Message: "content document already exists for concept"}
		}
		return "", err
	}

	oid := result.InsertedID.(primitive.ObjectID)
	content.ID = oid
	return oid.Hex(), nil
}

func (r *contentRepository) GetByConceptID(ctx context.Context, conceptID string) (*models.Content, error) {
	var content models.Content
	err := r.collection.FindOne(ctx, bson.M{"conceptId": conceptID}).Decode(&content)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrorNotFound{Message: "content not found"}
		}
		return nil, err
	}
	return &content, nil
}

func (r *contentRepository) Save(ctx context.Context, content *models.Content) error {
	content.UpdatedAt = time.Now()
	result, err := r.collection.ReplaceOne(ctx, bson.M{"conceptId": content.ConceptID}, content)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrorNotFound{Message: "content not found"}
	}
	return nil
}

func (r *contentRepository) DeleteByConceptID(ctx context.Context, conceptID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"conceptId": conceptID})
	return err
}

// Search runs the text index over both body fields, ranked by relevance.
// Results are raw hits; publication filtering happens against the hierarchy
// store afterwards.
func (r *contentRepository) Search(ctx context.Context, query string, limit int) ([]models.SearchHit, error) {
	opts := options.Find().
		SetProjection(bson.M{"conceptId": 1, "score": bson.M{"$meta": "textScore"}}).
		SetSort(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"$text": bson.M{"$search": query}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var hits []models.SearchHit
	if err := cursor.All(ctx, &hits); err != nil {
		return nil, err
	}
	return hits, nil
}
