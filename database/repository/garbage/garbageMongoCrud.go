// File: database/repository/garbage/garbageMongoCrud.go
package garbageRepo

import (
	"errors"
	"fmt"
	"time"

	"nyumbani/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new company document.
func (r *MongoCompanyRepo) Create(c *models.GarbageCompany) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("failed to create garbage company: %w", err)
	}
	return nil
}

// Update overwrites an existing company document.
func (r *MongoCompanyRepo) Update(c *models.GarbageCompany) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	c.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": c.ID}, bson.M{"$set": c})
	if err != nil {
		return fmt.Errorf("failed to update garbage company with id %s: %w", c.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("garbage company with id %s not found", c.ID)
	}
	return nil
}

// UpdateSetDocument applies a partial $set update to a company.
func (r *MongoCompanyRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	updateDoc["updatedAt"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": updateDoc})
	if err != nil {
		return fmt.Errorf("failed to update garbage company with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("garbage company with id %s not found", id)
	}
	return nil
}

// GetByID fetches a company; returns nil when absent.
func (r *MongoCompanyRepo) GetByID(id string) (*models.GarbageCompany, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var c models.GarbageCompany
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch garbage company: %w", err)
	}
	return &c, nil
}

// List returns companies matching the filter.
func (r *MongoCompanyRepo) List(filter bson.M) ([]models.GarbageCompany, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list garbage companies: %w", err)
	}
	defer cur.Close(ctx)

	var companies []models.GarbageCompany
	if err := cur.All(ctx, &companies); err != nil {
		return nil, fmt.Errorf("failed to decode garbage companies: %w", err)
	}
	return companies, nil
}

// Create inserts a new garbage booking document.
func (r *MongoBookingRepo) Create(b *models.GarbageBooking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("failed to create garbage booking: %w", err)
	}
	return nil
}

// UpdateSetDocument applies a partial $set update to a booking.
func (r *MongoBookingRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	updateDoc["updatedAt"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": updateDoc})
	if err != nil {
		return fmt.Errorf("failed to update garbage booking with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("garbage booking with id %s not found", id)
	}
	return nil
}

// GetByID fetches a booking; returns nil when absent.
func (r *MongoBookingRepo) GetByID(id string) (*models.GarbageBooking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var b models.GarbageBooking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch garbage booking: %w", err)
	}
	return &b, nil
}

// List returns bookings matching the filter, newest first.
func (r *MongoBookingRepo) List(filter bson.M) ([]models.GarbageBooking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list garbage bookings: %w", err)
	}
	defer cur.Close(ctx)

	var bookings []models.GarbageBooking
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode garbage bookings: %w", err)
	}
	return bookings, nil
}
