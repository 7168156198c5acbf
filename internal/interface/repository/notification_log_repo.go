package repository

import (
	"context"
	"time"

	"github.com/fareyxcel-dev/arrivalive-sub001/internal/domain/entity"
	"github.com/fareyxcel-dev/arrivalive-sub001/internal/domain/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoNotificationLogRepository implements NotificationLogRepository
type MongoNotificationLogRepository struct {
	collection *mongo.Collection
}

// NewMongoNotificationLogRepository creates a new notification log repository
func NewMongoNotificationLogRepository(db *mongo.Database) repository.NotificationLogRepository {
	collection := db.Collection("notification_logs")

	ctx := context.Background()

	flightIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "flightId", Value: 1},
			{Key: "flightDate", Value: 1},
		},
	}

	sentAtIndex := mongo.IndexModel{
		Keys: bson.M{"sentAt": -1},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{flightIndex, sentAtIndex})

	return &MongoNotificationLogRepository{
		collection: collection,
	}
}

// Append writes one dispatch-attempt entry. The log is append-only;
// entries are never updated or deleted.
func (r *MongoNotificationLogRepository) Append(ctx context.Context, entry *entity.NotificationLogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.SentAt.IsZero() {
		entry.SentAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// FindByFlight returns dispatch entries for one flight, newest first
func (r *MongoNotificationLogRepository) FindByFlight(ctx context.Context, flightID, flightDate string, limit int) ([]*entity.NotificationLogEntry, error) {
	limit64 := int64(limit)
	cursor, err := r.collection.Find(ctx, bson.M{
		"flightId":   flightID,
		"flightDate": flightDate,
	}, &options.FindOptions{
		Limit: &limit64,
		Sort:  bson.D{{Key: "sentAt", Value: -1}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*entity.NotificationLogEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
