package store

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/misioncampo/visitas-api/consts"
	"github.com/misioncampo/visitas-api/schema"
)

type ChurchSummary interface {
	UpsertChurchSummary(summary schema.ChurchRatingSummary) error
	GetChurchSummary(churchID string) (*schema.ChurchRatingSummary, error)
	QueryTopRated(limit, offset int64) ([]schema.ChurchRatingSummary, error)
	QueryRecentlyActive(limit int64) ([]schema.ChurchRatingSummary, error)
	QueryGlobalRatingStats() (*schema.GlobalRatingStats, error)
}

// UpsertChurchSummary replaces the whole summary row. Partial updates are
// forbidden: the summary is derived data and every write is a full
// recomputation, so last-write-wins replacement needs no locking.
func (m *mongoDB) UpsertChurchSummary(summary schema.ChurchRatingSummary) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	c := m.client.Database(m.database).Collection(schema.ChurchSummaryCollection)

	query := bson.M{"church_id": summary.ChurchID}
	opts := options.Replace().SetUpsert(true)
	if _, err := c.ReplaceOne(ctx, query, &summary, opts); err != nil {
		log.WithFields(log.Fields{
			"prefix":    mongoLogPrefix,
			"church ID": summary.ChurchID,
			"error":     err,
		}).Error("upsert church summary fail")
		return wrapPersistence("UpsertChurchSummary", err)
	}

	return nil
}

// GetChurchSummary returns the current summary row, or nil when the church
// has no ratings and has never been recalculated.
func (m *mongoDB) GetChurchSummary(churchID string) (*schema.ChurchRatingSummary, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	c := m.client.Database(m.database).Collection(schema.ChurchSummaryCollection)

	var summary schema.ChurchRatingSummary
	if err := c.FindOne(ctx, bson.M{"church_id": churchID}).Decode(&summary); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, wrapPersistence("GetChurchSummary", err)
	}

	return &summary, nil
}

func (m *mongoDB) QueryTopRated(limit, offset int64) ([]schema.ChurchRatingSummary, error) {
	pipeline := []bson.D{
		AggregationMatch(bson.M{"total_visits": bson.M{"$gt": 0}}),
		AggregationSort(bson.D{
			{Key: "average_stars", Value: -1},
			{Key: "total_visits", Value: -1},
		}),
		AggregationSkip(offset),
		AggregationLimit(limit),
	}

	return m.querySummaries(pipeline, "QueryTopRated")
}

func (m *mongoDB) QueryRecentlyActive(limit int64) ([]schema.ChurchRatingSummary, error) {
	cutoff := time.Now().UTC().Add(-consts.RecentActivityWindow)
	pipeline := []bson.D{
		AggregationMatch(bson.M{"last_visit_at": bson.M{"$gte": cutoff}}),
		AggregationSort(bson.D{{Key: "last_visit_at", Value: -1}}),
		AggregationLimit(limit),
	}

	return m.querySummaries(pipeline, "QueryRecentlyActive")
}

func (m *mongoDB) querySummaries(pipeline []bson.D, op string) ([]schema.ChurchRatingSummary, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	c := m.client.Database(m.database).Collection(schema.ChurchSummaryCollection)

	cursor, err := c.Aggregate(ctx, pipeline)
	if err != nil {
		log.WithFields(log.Fields{
			"prefix": mongoLogPrefix,
			"op":     op,
			"error":  err,
		}).Error("query church summaries fail")
		return nil, wrapPersistence(op, err)
	}
	defer cursor.Close(ctx)

	summaries := make([]schema.ChurchRatingSummary, 0)
	for cursor.Next(ctx) {
		var summary schema.ChurchRatingSummary
		if err := cursor.Decode(&summary); err != nil {
			return nil, wrapPersistence(op, err)
		}
		summaries = append(summaries, summary)
	}
	if err := cursor.Err(); err != nil {
		return nil, wrapPersistence(op, err)
	}

	return summaries, nil
}

// QueryGlobalRatingStats aggregates every church summary into the dashboard
// statistics row: totals, mean rating and a histogram over rounded stars.
func (m *mongoDB) QueryGlobalRatingStats() (*schema.GlobalRatingStats, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	c := m.client.Database(m.database).Collection(schema.ChurchSummaryCollection)

	rated := bson.M{"total_visits": bson.M{"$gt": 0}}

	pipeline := []bson.D{
		AggregationMatch(rated),
		AggregationGroup(nil, bson.D{
			{Key: "church_count", Value: bson.M{"$sum": 1}},
			{Key: "mean_rating", Value: bson.M{"$avg": "$average_stars"}},
			{Key: "total_visits", Value: bson.M{"$sum": "$total_visits"}},
			{Key: "total_offerings", Value: bson.M{"$sum": "$total_offerings"}},
		}),
	}

	cursor, err := c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, wrapPersistence("QueryGlobalRatingStats", err)
	}
	defer cursor.Close(ctx)

	stats := schema.GlobalRatingStats{RatingHistogram: map[int]int64{}}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&stats); err != nil {
			return nil, wrapPersistence("QueryGlobalRatingStats", err)
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, wrapPersistence("QueryGlobalRatingStats", err)
	}
	stats.RatingHistogram = map[int]int64{}

	histogramPipeline := []bson.D{
		AggregationMatch(rated),
		AggregationGroup(bson.M{"$round": bson.A{"$average_stars", 0}}, bson.D{
			{Key: "count", Value: bson.M{"$sum": 1}},
		}),
	}

	histCursor, err := c.Aggregate(ctx, histogramPipeline)
	if err != nil {
		return nil, wrapPersistence("QueryGlobalRatingStats", err)
	}
	defer histCursor.Close(ctx)

	for histCursor.Next(ctx) {
		var bucket struct {
			Stars float64 `bson:"_id"`
			Count int64   `bson:"count"`
		}
		if err := histCursor.Decode(&bucket); err != nil {
			return nil, wrapPersistence("QueryGlobalRatingStats", err)
		}
		stats.RatingHistogram[int(bucket.Stars)] = bucket.Count
	}
	if err := histCursor.Err(); err != nil {
		return nil, wrapPersistence("QueryGlobalRatingStats", err)
	}

	return &stats, nil
}
