package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"snaphistory/models"
)

// HistoryService keeps an audit trail of identifications in MongoDB. A nil
// collection disables the trail; writes are soft failures either way.
type HistoryService struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewHistoryService(collection *mongo.Collection, logger *zap.Logger) *HistoryService {
	return &HistoryService{collection: collection, logger: logger}
}

// Enabled reports whether a history store is configured.
func (s *HistoryService) Enabled() bool {
	return s.collection != nil
}

// Record appends an identification to the trail. Failures are logged and
// swallowed: the response to the caller never depends on the store.
func (s *HistoryService) Record(ctx context.Context, entry models.Identification) {
	if !s.Enabled() {
		return
	}
	if _, err := s.collection.InsertOne(ctx, entry); err != nil {
		s.logger.Warn("history insert failed", zap.String("id", entry.ID), zap.Error(err))
	}
}

// Recent returns the newest identifications, newest first.
func (s *HistoryService) Recent(ctx context.Context, limit int64) ([]models.Identification, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.Identification
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
