package repository

import (
	"context"
	"time"

	"github.com/fareyxcel-dev/arrivalive-sub001/internal/domain/entity"
	"github.com/fareyxcel-dev/arrivalive-sub001/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoFlightRecordRepository implements FlightRecordRepository
type MongoFlightRecordRepository struct {
	collection *mongo.Collection
}

// NewMongoFlightRecordRepository creates a new flight record repository
func NewMongoFlightRecordRepository(db *mongo.Database) repository.FlightRecordRepository {
	collection := db.Collection("flight_records")

	// Create unique index on flightKey
	ctx := context.Background()
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"flightKey": 1},
		Options: options.Index().SetUnique(true),
	}
	collection.Indexes().CreateOne(ctx, indexModel)

	// Create index on flightDate for the bulk date-set read
	dateIndex := mongo.IndexModel{
		Keys: bson.M{"flightDate": 1},
	}
	collection.Indexes().CreateOne(ctx, dateIndex)

	return &MongoFlightRecordRepository{
		collection: collection,
	}
}

// FindByDates loads every record whose flight date is in the given set
// with a single query.
func (r *MongoFlightRecordRepository) FindByDates(ctx context.Context, dates []string) ([]*entity.FlightRecord, error) {
	if len(dates) == 0 {
		return nil, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"flightDate": bson.M{"$in": dates}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*entity.FlightRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Upsert creates or fully replaces the record stored under the
// (flight identifier, flight date) key. Idempotent: re-upserting
// identical data leaves the stored state unchanged.
func (r *MongoFlightRecordRepository) Upsert(ctx context.Context, record *entity.FlightRecord) error {
	record.FlightKey = record.Key()
	record.UpdatedAt = time.Now()

	updateDoc := bson.M{
		"flightKey":     record.FlightKey,
		"flightId":      record.FlightID,
		"airlineCode":   record.AirlineCode,
		"origin":        record.Origin,
		"flightDate":    record.FlightDate,
		"scheduledTime": record.ScheduledTime,
		"estimatedTime": record.EstimatedTime,
		"actualTime":    record.ActualTime,
		"terminal":      record.Terminal,
		"status":        record.Status,
		"updatedAt":     record.UpdatedAt,
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"flightKey": record.FlightKey}

	result, err := r.collection.UpdateOne(
		ctx,
		filter,
		bson.M{
			"$set":         updateDoc,
			"$setOnInsert": bson.M{"createdAt": time.Now()},
		},
		opts,
	)
	if err != nil {
		return err
	}

	// If it was an insert, pick up the new ID
	if result.UpsertedCount > 0 && result.UpsertedID != nil {
		if oid, ok := result.UpsertedID.(primitive.ObjectID); ok {
			record.ID = oid.Hex()
		}
	}

	return nil
}
