package repository

import (
	"context"
	"time"

	"arrivals-board/internal/domain/entity"
	"arrivals-board/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoJournalRepository implements NotificationJournalRepository
type MongoJournalRepository struct {
	collection *mongo.Collection
}

// NewMongoJournalRepository creates a new notification journal repository
func NewMongoJournalRepository(db *mongo.Database) repository.NotificationJournalRepository {
	collection := db.Collection("delay_notifications")

	// Index on flightId for lookups
	ctx := context.Background()
	flightIndex := mongo.IndexModel{
		Keys: bson.M{"flightId": 1},
	}
	collection.Indexes().CreateOne(ctx, flightIndex)

	// Index on sentAt for recency queries
	sentIndex := mongo.IndexModel{
		Keys: bson.M{"sentAt": -1},
	}
	collection.Indexes().CreateOne(ctx, sentIndex)

	return &MongoJournalRepository{
		collection: collection,
	}
}

// Insert appends one journal entry
func (r *MongoJournalRepository) Insert(ctx context.Context, record *entity.NotificationRecord) error {
	if record.ID == "" {
		record.ID = primitive.NewObjectID().Hex()
	}
	if record.SentAt.IsZero() {
		record.SentAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, record)
	return err
}

// FindRecent returns the most recently sent entries, newest first
func (r *MongoJournalRepository) FindRecent(ctx context.Context, limit int64) ([]entity.NotificationRecord, error) {
	opts := options.Find().
		SetSort(bson.M{"sentAt": -1}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []entity.NotificationRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
