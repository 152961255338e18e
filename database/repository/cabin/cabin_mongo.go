package cabinRepo

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

// MongoCabinRepo implements CabinRepository using MongoDB.
type MongoCabinRepo struct {
	cabins *mongo.Collection
	types  *mongo.Collection
}

// NewMongoCabinRepo creates a new instance of CabinRepository using MongoDB.
func NewMongoCabinRepo() CabinRepository {
	db := database.MongoClient.Database("riverwood")
	repo := &MongoCabinRepo{
		cabins: db.Collection("cabins"),
		types:  db.Collection("cabin_types"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoCabinRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if _, err := r.cabins.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create cabin indexes: %w", err)
	}
	if _, err := r.types.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create cabin type indexes: %w", err)
	}
	return nil
}

// GetAll retrieves all cabins, sorted by name.
func (r *MongoCabinRepo) GetAll() ([]models.Cabin, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.cabins.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cabins: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.Cabin
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode cabins: %w", err)
	}
	return results, nil
}

// GetByID retrieves a cabin by its unique ID.
func (r *MongoCabinRepo) GetByID(id string) (*models.Cabin, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var cabin models.Cabin
	if err := r.cabins.FindOne(ctx, bson.M{"id": id}).Decode(&cabin); err != nil {
		return nil, fmt.Errorf("failed to fetch cabin with id %s: %w", id, err)
	}
	return &cabin, nil
}

// Create inserts a new cabin record.
func (r *MongoCabinRepo) Create(cabin *models.Cabin) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.cabins.InsertOne(ctx, cabin); err != nil {
		return fmt.Errorf("failed to insert cabin %s: %w", cabin.ID, err)
	}
	return nil
}

// Update modifies an existing cabin record.
func (r *MongoCabinRepo) Update(cabin *models.Cabin) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.cabins.ReplaceOne(ctx, bson.M{"id": cabin.ID}, cabin)
	if err != nil {
		return fmt.Errorf("failed to update cabin %s: %w", cabin.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("cabin %s not found", cabin.ID)
	}
	return nil
}

// Delete removes a cabin record by its ID.
func (r *MongoCabinRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.cabins.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("failed to delete cabin %s: %w", id, err)
	}
	return nil
}

// GetAllTypes retrieves all cabin types.
func (r *MongoCabinRepo) GetAllTypes() ([]models.CabinType, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.types.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cabin types: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.CabinType
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode cabin types: %w", err)
	}
	return results, nil
}

// GetTypeByID retrieves a cabin type by its unique ID.
func (r *MongoCabinRepo) GetTypeByID(id string) (*models.CabinType, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var ct models.CabinType
	if err := r.types.FindOne(ctx, bson.M{"id": id}).Decode(&ct); err != nil {
		return nil, fmt.Errorf("failed to fetch cabin type with id %s: %w", id, err)
	}
	return &ct, nil
}

// CreateType inserts a new cabin type record.
func (r *MongoCabinRepo) CreateType(ct *models.CabinType) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.types.InsertOne(ctx, ct); err != nil {
		return fmt.Errorf("failed to insert cabin type %s: %w", ct.ID, err)
	}
	return nil
}

// UpdateType modifies an existing cabin type record.
func (r *MongoCabinRepo) UpdateType(ct *models.CabinType) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.types.ReplaceOne(ctx, bson.M{"id": ct.ID}, ct)
	if err != nil {
		return fmt.Errorf("failed to update cabin type %s: %w", ct.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("cabin type %s not found", ct.ID)
	}
	return nil
}

// DeleteType removes a cabin type record by its ID.
func (r *MongoCabinRepo) DeleteType(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.types.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("failed to delete cabin type %s: %w", id, err)
	}
	return nil
}
