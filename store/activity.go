package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/misioncampo/visitas-api/schema"
)

type Activity interface {
	AppendActivityEntry(churchID, actorID, text string) error
	ListActivityEntries(churchID string, limit int64) ([]schema.ActivityLogEntry, error)
}

func (m *mongoDB) AppendActivityEntry(churchID, actorID, text string) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	c := m.client.Database(m.database).Collection(schema.ActivityLogCollection)

	entry := schema.ActivityLogEntry{
		ID:        uuid.New().String(),
		ChurchID:  churchID,
		ActorID:   actorID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := c.InsertOne(ctx, &entry); err != nil {
		return wrapPersistence("AppendActivityEntry", err)
	}
	return nil
}

func (m *mongoDB) ListActivityEntries(churchID string, limit int64) ([]schema.ActivityLogEntry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	c := m.client.Database(m.database).Collection(schema.ActivityLogCollection)

	if limit < 1 {
		limit = 20
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)

	cursor, err := c.Find(ctx, bson.M{"church_id": churchID}, opts)
	if err != nil {
		return nil, wrapPersistence("ListActivityEntries", err)
	}
	defer cursor.Close(ctx)

	entries := make([]schema.ActivityLogEntry, 0)
	for cursor.Next(ctx) {
		var entry schema.ActivityLogEntry
		if err := cursor.Decode(&entry); err != nil {
			return nil, wrapPersistence("ListActivityEntries", err)
		}
		entries = append(entries, entry)
	}
	if err := cursor.Err(); err != nil {
		return nil, wrapPersistence("ListActivityEntries", err)
	}

	return entries, nil
}
