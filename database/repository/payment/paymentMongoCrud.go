// File: database/repository/payment/paymentMongoCrud.go
package paymentRepo

import (
	"errors"
	"fmt"
	"time"

	"nyumbani/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new payment document.
func (r *MongoPaymentRepo) Create(p *models.Payment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// UpdateSetDocument applies a partial $set update.
func (r *MongoPaymentRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	updateDoc["updatedAt"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": updateDoc})
	if err != nil {
		return fmt.Errorf("failed to update payment with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("payment with id %s not found", id)
	}
	return nil
}

// GetByID fetches a payment; returns nil when absent.
func (r *MongoPaymentRepo) GetByID(id string) (*models.Payment, error) {
	return r.FindOne(bson.M{"id": id})
}

// FindOne fetches the first payment matching the filter; nil when absent.
func (r *MongoPaymentRepo) FindOne(filter bson.M) (*models.Payment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var p models.Payment
	err := r.coll.FindOne(ctx, filter).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch payment: %w", err)
	}
	return &p, nil
}

// List returns payments matching the filter, newest first.
func (r *MongoPaymentRepo) List(filter bson.M) ([]models.Payment, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer cur.Close(ctx)

	var payments []models.Payment
	if err := cur.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("failed to decode payments: %w", err)
	}
	return payments, nil
}
