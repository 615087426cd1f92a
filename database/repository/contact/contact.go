// File: database/repository/contact/contact.go
package contactRepo

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

// ContactRepository defines persistence for contact-form messages.
type ContactRepository interface {
	Create(c *models.Contact) error
	UpdateSetDocument(id string, updateDoc bson.M) error
	Delete(id string) error
	GetByID(id string) (*models.Contact, error)
	List(filter bson.M) ([]models.Contact, error)
	Count(filter bson.M) (int64, error)
}

// MongoContactRepo is the MongoDB-backed implementation.
type MongoContactRepo struct {
	coll *mongo.Collection
}

// NewMongoContactRepo returns a repo bound to the contacts collection.
func NewMongoContactRepo() *MongoContactRepo {
	return &MongoContactRepo{coll: database.DB().Collection("contacts")}
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

// Create inserts a new contact message.
func (r *MongoContactRepo) Create(c *models.Contact) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}
	return nil
}

// UpdateSetDocument applies a partial $set update by message id.
func (r *MongoContactRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	updateDoc["updatedAt"] = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": updateDoc})
	if err != nil {
		return fmt.Errorf("failed to update contact message: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("contact message %s not found", id)
	}
	return nil
}

// Delete removes a contact message.
func (r *MongoContactRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("failed to delete contact message: %w", err)
	}
	return nil
}

// GetByID fetches one contact message; nil when absent.
func (r *MongoContactRepo) GetByID(id string) (*models.Contact, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var c models.Contact
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch contact message: %w", err)
	}
	return &c, nil
}

// List returns messages matching the filter, newest first.
func (r *MongoContactRepo) List(filter bson.M) ([]models.Contact, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Contact
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode contact messages: %w", err)
	}
	return out, nil
}

// Count returns the number of messages matching the filter.
func (r *MongoContactRepo) Count(filter bson.M) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count contact messages: %w", err)
	}
	return n, nil
}
