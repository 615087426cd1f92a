// File: database/repository/mover/mover.go
package moverRepo

import (
	"context"
	"time"

	"nyumbani/database"
	"nyumbani/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CompanyRepository defines persistence operations for mover companies.
type CompanyRepository interface {
	Create(c *models.MoverCompany) error
	Update(c *models.MoverCompany) error
	UpdateSetDocument(id string, updateDoc bson.M) error
	GetByID(id string) (*models.MoverCompany, error)
	List(filter bson.M) ([]models.MoverCompany, error)
}

// BookingRepository defines persistence operations for mover bookings.
type BookingRepository interface {
	Create(b *models.MoverBooking) error
	UpdateSetDocument(id string, updateDoc bson.M) error
	GetByID(id string) (*models.MoverBooking, error)
	List(filter bson.M) ([]models.MoverBooking, error)
}

// MongoCompanyRepo is the MongoDB-backed company repository.
type MongoCompanyRepo struct {
	coll *mongo.Collection
}

// MongoBookingRepo is the MongoDB-backed booking repository.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoCompanyRepo returns a repo bound to the mover_companies collection.
func NewMongoCompanyRepo() *MongoCompanyRepo {
	return &MongoCompanyRepo{coll: database.DB().Collection("mover_companies")}
}

// NewMongoBookingRepo returns a repo bound to the mover_bookings collection.
func NewMongoBookingRepo() *MongoBookingRepo {
	return &MongoBookingRepo{coll: database.DB().Collection("mover_bookings")}
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}
