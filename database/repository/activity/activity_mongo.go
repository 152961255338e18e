package activityRepo

import (
	"context"
	"fmt"
	"time"

	"riverwood/database"
	"riverwood/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ActivityRepository defines methods for activity data access.
type ActivityRepository interface {
	GetAll() ([]models.Activity, error)
	GetByID(id string) (*models.Activity, error)
	Create(a *models.Activity) error
	Update(a *models.Activity) error
	Delete(id string) error
}

// MongoActivityRepo implements ActivityRepository using MongoDB.
type MongoActivityRepo struct {
	coll *mongo.Collection
}

// NewMongoActivityRepo creates a new instance of ActivityRepository using MongoDB.
func NewMongoActivityRepo() ActivityRepository {
	coll := database.MongoClient.Database("riverwood").Collection("activities")
	repo := &MongoActivityRepo{coll: coll}

	ctx, cancel := newContext(10 * time.Second)
	defer cancel()
	if _, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true),
	}); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoActivityRepo) GetAll() ([]models.Activity, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activities: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.Activity
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode activities: %w", err)
	}
	return results, nil
}

func (r *MongoActivityRepo) GetByID(id string) (*models.Activity, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var a models.Activity
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&a); err != nil {
		return nil, fmt.Errorf("failed to fetch activity with id %s: %w", id, err)
	}
	return &a, nil
}

func (r *MongoActivityRepo) Create(a *models.Activity) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("failed to insert activity %s: %w", a.ID, err)
	}
	return nil
}

func (r *MongoActivityRepo) Update(a *models.Activity) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.ReplaceOne(ctx, bson.M{"id": a.ID}, a)
	if err != nil {
		return fmt.Errorf("failed to update activity %s: %w", a.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("activity %s not found", a.ID)
	}
	return nil
}

func (r *MongoActivityRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("failed to delete activity %s: %w", id, err)
	}
	return nil
}
