// File: database/repository/payment/payment.go
package paymentRepo

import (
	"context"
	"time"

	"nyumbani/database"
	"nyumbani/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SideWrite is a second document update applied together with a payment
// update (e.g. flipping the correlated booking to confirmed).
type SideWrite struct {
	Collection string
	Filter     bson.M
	Update     bson.M
}

// PaymentRepository defines persistence operations for payments.
type PaymentRepository interface {
	Create(p *models.Payment) error
	UpdateSetDocument(id string, updateDoc bson.M) error
	GetByID(id string) (*models.Payment, error)
	FindOne(filter bson.M) (*models.Payment, error)
	List(filter bson.M) ([]models.Payment, error)
	UpdateWithSideEffect(ctx context.Context, paymentID string, paymentSet bson.M, side *SideWrite) error
}

// MongoPaymentRepo is the MongoDB-backed implementation.
type MongoPaymentRepo struct {
	coll *mongo.Collection
	db   *mongo.Database
	// useTransactions requires a replica-set deployment; without it the
	// paired write degrades to sequential updates.
	useTransactions bool
}

// NewMongoPaymentRepo returns a repo bound to the payments collection.
func NewMongoPaymentRepo(useTransactions bool) *MongoPaymentRepo {
	db := database.DB()
	return &MongoPaymentRepo{
		coll:            db.Collection("payments"),
		db:              db,
		useTransactions: useTransactions,
	}
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}
