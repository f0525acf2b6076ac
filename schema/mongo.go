package schema

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDBIndexer creates the indexes the rating engine relies on. Deployments
// run it once at startup; the store test suites run it against their test
// database.
type MongoDBIndexer struct {
	connURI  string
	database string
}

func NewMongoDBIndexer(connURI, database string) *MongoDBIndexer {
	return &MongoDBIndexer{
		connURI:  connURI,
		database: database,
	}
}

func (i *MongoDBIndexer) IndexAll() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(i.connURI))
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx)

	db := client.Database(i.database)

	// one finalized rating per visit
	if _, err := db.Collection(VisitRatingCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "input.visit_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "church_id", Value: 1}, {Key: "visit_date", Value: 1}},
		},
	}); err != nil {
		return err
	}

	if _, err := db.Collection(ChurchSummaryCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "church_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "average_stars", Value: -1}, {Key: "total_visits", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "last_visit_at", Value: -1}},
		},
	}); err != nil {
		return err
	}

	if _, err := db.Collection(ActivityLogCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "church_id", Value: 1}, {Key: "created_at", Value: -1}},
	}); err != nil {
		return err
	}

	return nil
}
