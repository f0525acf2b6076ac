package store

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/misioncampo/visitas-api/schema"
)

var (
	ErrVisitNotFound  = fmt.Errorf("visit not found")
	ErrRatingNotFound = fmt.Errorf("visit rating not found")
	ErrRatingExists   = fmt.Errorf("visit has already been rated")
)

type VisitRating interface {
	GetVisit(visitID string) (*schema.Visit, error)
	CreateVisitRating(record schema.VisitRatingRecord) (*schema.VisitRatingRecord, error)
	GetRatingByVisit(visitID string) (*schema.VisitRatingRecord, error)
	FetchRatingsForChurch(churchID string) ([]schema.VisitRatingRecord, error)
}

func (m *mongoDB) GetVisit(visitID string) (*schema.Visit, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	c := m.client.Database(m.database).Collection(schema.VisitCollection)

	id, err := primitive.ObjectIDFromHex(visitID)
	if err != nil {
		return nil, ErrVisitNotFound
	}

	var visit schema.Visit
	if err := c.FindOne(ctx, bson.M{"_id": id}).Decode(&visit); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrVisitNotFound
		}
		return nil, wrapPersistence("GetVisit", err)
	}

	return &visit, nil
}

// CreateVisitRating persists a finalized rating. Ratings are append-only and
// a visit may carry at most one; the unique index on visit_id backs up the
// pre-insert check against concurrent writers.
func (m *mongoDB) CreateVisitRating(record schema.VisitRatingRecord) (*schema.VisitRatingRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	c := m.client.Database(m.database).Collection(schema.VisitRatingCollection)

	count, err := c.CountDocuments(ctx, bson.M{"input.visit_id": record.Input.VisitID})
	if err != nil {
		return nil, wrapPersistence("CreateVisitRating", err)
	}
	if count > 0 {
		return nil, ErrRatingExists
	}

	record.ID = primitive.NewObjectID()
	record.CreatedAt = time.Now().UTC()

	if _, err := c.InsertOne(ctx, &record); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrRatingExists
		}
		log.WithFields(log.Fields{
			"prefix":   mongoLogPrefix,
			"visit ID": record.Input.VisitID,
			"error":    err,
		}).Error("insert visit rating fail")
		return nil, wrapPersistence("CreateVisitRating", err)
	}

	return &record, nil
}

func (m *mongoDB) GetRatingByVisit(visitID string) (*schema.VisitRatingRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	c := m.client.Database(m.database).Collection(schema.VisitRatingCollection)

	var record schema.VisitRatingRecord
	if err := c.FindOne(ctx, bson.M{"input.visit_id": visitID}).Decode(&record); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrRatingNotFound
		}
		return nil, wrapPersistence("GetRatingByVisit", err)
	}

	return &record, nil
}

// FetchRatingsForChurch returns every finalized rating for the church in
// visit-date order. The aggregator reads this full set on every
// recalculation.
func (m *mongoDB) FetchRatingsForChurch(churchID string) ([]schema.VisitRatingRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	c := m.client.Database(m.database).Collection(schema.VisitRatingCollection)

	opts := options.Find().SetSort(bson.D{{Key: "visit_date", Value: 1}})
	cursor, err := c.Find(ctx, bson.M{"church_id": churchID}, opts)
	if err != nil {
		log.WithFields(log.Fields{
			"prefix":    mongoLogPrefix,
			"church ID": churchID,
			"error":     err,
		}).Error("query visit ratings fail")
		return nil, wrapPersistence("FetchRatingsForChurch", err)
	}
	defer cursor.Close(ctx)

	records := make([]schema.VisitRatingRecord, 0)
	for cursor.Next(ctx) {
		var record schema.VisitRatingRecord
		if err := cursor.Decode(&record); err != nil {
			return nil, wrapPersistence("FetchRatingsForChurch", err)
		}
		records = append(records, record)
	}
	if err := cursor.Err(); err != nil {
		return nil, wrapPersistence("FetchRatingsForChurch", err)
	}

	return records, nil
}
