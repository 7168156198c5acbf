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

// MongoSubscriptionRepository implements SubscriptionRepository
type MongoSubscriptionRepository struct {
	collection *mongo.Collection
}

// NewMongoSubscriptionRepository creates a new subscription repository
func NewMongoSubscriptionRepository(db *mongo.Database) repository.SubscriptionRepository {
	collection := db.Collection("subscriptions")

	ctx := context.Background()

	// Compound index for the dispatcher's per-flight lookup
	flightIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "flightId", Value: 1},
			{Key: "flightDate", Value: 1},
		},
	}

	// Index on userId for profile queries and token invalidation
	userIndex := mongo.IndexModel{
		Keys: bson.M{"userId": 1},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{flightIndex, userIndex})

	return &MongoSubscriptionRepository{
		collection: collection,
	}
}

// FindByFlight returns every subscription for one flight on one date
func (r *MongoSubscriptionRepository) FindByFlight(ctx context.Context, flightID, flightDate string) ([]*entity.Subscription, error) {
	cursor, err := r.collection.Find(ctx, bson.M{
		"flightId":   flightID,
		"flightDate": flightDate,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subs []*entity.Subscription
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// FindByUser returns a user's subscriptions, newest first
func (r *MongoSubscriptionRepository) FindByUser(ctx context.Context, userID string) ([]*entity.Subscription, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subs []*entity.Subscription
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// Save stores a new subscription
func (r *MongoSubscriptionRepository) Save(ctx context.Context, sub *entity.Subscription) error {
	if sub.ID == "" {
		sub.ID = primitive.NewObjectID().Hex()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, sub)
	return err
}

// ClearPushToken removes the stored push token from every subscription
// owned by the user, so an invalidated destination is never retried.
func (r *MongoSubscriptionRepository) ClearPushToken(ctx context.Context, userID string) error {
	_, err := r.collection.UpdateMany(
		ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{"pushToken": ""}},
	)
	return err
}
