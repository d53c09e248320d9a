package config

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ContentCollection = "contents"

// InitMongo connects to the content store and ensures the two indexes the
// coordinator depends on: the unique index on conceptId (arbiter for the
// at-most-one-document-per-concept rule) and the text index search runs over.
func InitMongo(ctx context.Context, uri, dbName string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(dbName)

	_, err = db.Collection(ContentCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "conceptId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "htmlContent", Value: "text"},
				{Key: "rawContent", Value: "text"},
			},
		},
	})
	if err != nil {
		return nil, err
	}

	return db, nil
}
