// File: database/repository/property/property.go
package propertyRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nyumbani/database"
	"nyumbani/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PropertyRepository defines persistence operations for property listings.
type PropertyRepository interface {
	Create(p *models.Property) error
	Update(p *models.Property) error
	UpdateSetDocument(id string, updateDoc bson.M) error
	Delete(id string) error
	GetByID(id string) (*models.Property, error)
	List(filter bson.M) ([]models.Property, error)
}

// MongoPropertyRepo is the MongoDB-backed implementation.
type MongoPropertyRepo struct {
	coll *mongo.Collection
}

// NewMongoPropertyRepo returns a repo bound to the properties collection.
func NewMongoPropertyRepo() *MongoPropertyRepo {
	return &MongoPropertyRepo{coll: database.DB().Collection("properties")}
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

// Create inserts a new property document.
func (r *MongoPropertyRepo) Create(p *models.Property) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

// Update overwrites an existing property document.
func (r *MongoPropertyRepo) Update(p *models.Property) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	p.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": p.ID}, bson.M{"$set": p})
	if err != nil {
		return fmt.Errorf("failed to update property with id %s: %w", p.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("property with id %s not found", p.ID)
	}
	return nil
}

// UpdateSetDocument applies a partial $set update.
func (r *MongoPropertyRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	updateDoc["updatedAt"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": updateDoc})
	if err != nil {
		return fmt.Errorf("failed to update property with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("property with id %s not found", id)
	}
	return nil
}

// Delete removes a property document.
func (r *MongoPropertyRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete property with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("property with id %s not found", id)
	}
	return nil
}

// GetByID fetches a property; returns nil when absent.
func (r *MongoPropertyRepo) GetByID(id string) (*models.Property, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var p models.Property
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch property: %w", err)
	}
	return &p, nil
}

// List returns properties matching the filter, newest first.
func (r *MongoPropertyRepo) List(filter bson.M) ([]models.Property, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer cur.Close(ctx)

	var props []models.Property
	if err := cur.All(ctx, &props); err != nil {
		return nil, fmt.Errorf("failed to decode properties: %w", err)
	}
	return props, nil
}
