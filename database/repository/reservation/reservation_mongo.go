package reservationRepo

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

// MongoReservationRepo implements ReservationRepository using MongoDB.
type MongoReservationRepo struct {
	coll *mongo.Collection
}

// NewMongoReservationRepo creates a new instance of ReservationRepository using MongoDB.
func NewMongoReservationRepo() ReservationRepository {
	coll := database.MongoClient.Database("riverwood").Collection("reservations")
	repo := &MongoReservationRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoReservationRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "cabin_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "subject_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new reservation record.
func (r *MongoReservationRepo) Create(res *models.Reservation) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, res); err != nil {
		return fmt.Errorf("failed to insert reservation %s: %w", res.ID, err)
	}
	return nil
}

// GetByID retrieves a reservation by its unique ID.
func (r *MongoReservationRepo) GetByID(id string) (*models.Reservation, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var res models.Reservation
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&res); err != nil {
		return nil, fmt.Errorf("failed to fetch reservation with id %s: %w", id, err)
	}
	return &res, nil
}

// GetAll retrieves all reservations, newest first.
func (r *MongoReservationRepo) GetAll() ([]models.Reservation, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.Reservation
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}
	return results, nil
}

// GetActiveByCabin retrieves all non-cancelled reservations for a cabin.
func (r *MongoReservationRepo) GetActiveByCabin(cabinID string) ([]models.Reservation, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"cabin_id": cabinID,
		"status":   bson.M{"$ne": models.ReservationCancelled},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reservations for cabin %s: %w", cabinID, err)
	}
	defer cursor.Close(ctx)

	var results []models.Reservation
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode reservations for cabin %s: %w", cabinID, err)
	}
	return results, nil
}

// GetBySubject retrieves all reservations made by a chat subject, newest first.
func (r *MongoReservationRepo) GetBySubject(subjectID string) ([]models.Reservation, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"subject_id": subjectID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reservations for subject %s: %w", subjectID, err)
	}
	defer cursor.Close(ctx)

	var results []models.Reservation
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode reservations for subject %s: %w", subjectID, err)
	}
	return results, nil
}

// GetLatestPending retrieves the most recently created pending reservation.
func (r *MongoReservationRepo) GetLatestPending() (*models.Reservation, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var res models.Reservation
	err := r.coll.FindOne(ctx, bson.M{"status": models.ReservationPending}, opts).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest pending reservation: %w", err)
	}
	return &res, nil
}

// GetPendingCreatedBefore retrieves pending reservations created before the cutoff.
func (r *MongoReservationRepo) GetPendingCreatedBefore(cutoff time.Time) ([]models.Reservation, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"status":     models.ReservationPending,
		"created_at": bson.M{"$lt": cutoff},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch expired pending reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.Reservation
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode expired pending reservations: %w", err)
	}
	return results, nil
}

// UpdateStatus sets the status of a reservation and bumps its updated_at.
func (r *MongoReservationRepo) UpdateStatus(id, status string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update status for reservation %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("reservation %s not found", id)
	}
	return nil
}
