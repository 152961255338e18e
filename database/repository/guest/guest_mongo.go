package guestRepo

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

// GuestRepository defines methods for guest contact data access.
type GuestRepository interface {
	// Upsert inserts the guest or refreshes name/phone for an existing subject.
	Upsert(g *models.Guest) error
	GetBySubjectID(subjectID string) (*models.Guest, error)
	GetAll() ([]models.Guest, error)
	Delete(id string) error
}

// MongoGuestRepo implements GuestRepository using MongoDB.
type MongoGuestRepo struct {
	coll *mongo.Collection
}

// NewMongoGuestRepo creates a new instance of GuestRepository using MongoDB.
func NewMongoGuestRepo() GuestRepository {
	coll := database.MongoClient.Database("riverwood").Collection("guests")
	repo := &MongoGuestRepo{coll: coll}

	ctx, cancel := newContext(10 * time.Second)
	defer cancel()
	if _, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "subject_id", Value: 1}}, Options: options.Index().SetUnique(true),
	}); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Upsert inserts the guest or refreshes name/phone for an existing subject.
func (r *MongoGuestRepo) Upsert(g *models.Guest) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"subject_id": g.SubjectID}
	update := bson.M{
		"$set":         bson.M{"name": g.Name, "phone": g.Phone},
		"$setOnInsert": bson.M{"id": g.ID, "subject_id": g.SubjectID, "created_at": g.CreatedAt},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert guest for subject %s: %w", g.SubjectID, err)
	}
	return nil
}

func (r *MongoGuestRepo) GetBySubjectID(subjectID string) (*models.Guest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var g models.Guest
	err := r.coll.FindOne(ctx, bson.M{"subject_id": subjectID}).Decode(&g)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch guest for subject %s: %w", subjectID, err)
	}
	return &g, nil
}

func (r *MongoGuestRepo) GetAll() ([]models.Guest, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch guests: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.Guest
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode guests: %w", err)
	}
	return results, nil
}

func (r *MongoGuestRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("failed to delete guest %s: %w", id, err)
	}
	return nil
}
