package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	mongoLogPrefix = "mongo"
	defaultTimeout = 10 * time.Second
)

// VisitasStore is the storage surface consumed by the rating engine and the
// API layer.
type VisitasStore interface {
	VisitRating
	ChurchSummary
	Activity

	Ping() error
	Close()
}

type mongoDB struct {
	client   *mongo.Client
	database string
}

// NewMongoStore returns a VisitasStore backed by the given mongo client.
func NewMongoStore(client *mongo.Client, database string) VisitasStore {
	return &mongoDB{
		client:   client,
		database: database,
	}
}

func (m *mongoDB) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return m.client.Ping(ctx, nil)
}

func (m *mongoDB) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	m.client.Disconnect(ctx)
}

// PersistenceError wraps a storage failure with the attempted operation name
// so callers can log and retry with context.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("storage operation %s failed: %s", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func wrapPersistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}

func isDuplicateKeyError(err error) bool {
	writeErr, ok := err.(mongo.WriteException)
	if !ok {
		return false
	}
	for _, we := range writeErr.WriteErrors {
		if we.Code == 11000 {
			return true
		}
	}
	return false
}
