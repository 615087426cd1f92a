// File: database/repository/booking/booking.go
package bookingRepo

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

// BookingRepository defines persistence operations for viewing bookings.
type BookingRepository interface {
	Create(b *models.Booking) error
	Update(b *models.Booking) error
	UpdateSetDocument(id string, updateDoc bson.M) error
	GetByID(id string) (*models.Booking, error)
	List(filter bson.M) ([]models.Booking, error)
}

// MongoBookingRepo is the MongoDB-backed implementation.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a repo bound to the bookings collection.
func NewMongoBookingRepo() *MongoBookingRepo {
	return &MongoBookingRepo{coll: database.DB().Collection("bookings")}
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(b *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// Update overwrites an existing booking document.
func (r *MongoBookingRepo) Update(b *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	b.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": b.ID}, bson.M{"$set": b})
	if err != nil {
		return fmt.Errorf("failed to update booking with id %s: %w", b.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking with id %s not found", b.ID)
	}
	return nil
}

// UpdateSetDocument applies a partial $set update.
func (r *MongoBookingRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	updateDoc["updatedAt"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": updateDoc})
	if err != nil {
		return fmt.Errorf("failed to update booking with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking with id %s not found", id)
	}
	return nil
}

// GetByID fetches a booking; returns nil when absent.
func (r *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var b models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	return &b, nil
}

// List returns bookings matching the filter, newest first.
func (r *MongoBookingRepo) List(filter bson.M) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cur.Close(ctx)

	var bookings []models.Booking
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}
