// File: database/repository/garbage/garbage.go
package garbageRepo

import (
	"context"
	"time"

	"nyumbani/database"
	"nyumbani/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CompanyRepository defines persistence operations for garbage companies.
type CompanyRepository interface {
	Create(c *models.GarbageCompany) error
	Update(c *models.GarbageCompany) error
	UpdateSetDocument(id string, updateDoc bson.M) error
	GetByID(id string) (*models.GarbageCompany, error)
	List(filter bson.M) ([]models.GarbageCompany, error)
}

// BookingRepository defines persistence operations for garbage bookings.
type BookingRepository interface {
	Create(b *models.GarbageBooking) error
	UpdateSetDocument(id string, updateDoc bson.M) error
	GetByID(id string) (*models.GarbageBooking, error)
	List(filter bson.M) ([]models.GarbageBooking, error)
}

// MongoCompanyRepo is the MongoDB-backed company repository.
type MongoCompanyRepo struct {
	coll *mongo.Collection
}

// MongoBookingRepo is the MongoDB-backed booking repository.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoCompanyRepo returns a repo bound to the garbage_companies collection.
func NewMongoCompanyRepo() *MongoCompanyRepo {
	return &MongoCompanyRepo{coll: database.DB().Collection("garbage_companies")}
}

// NewMongoBookingRepo returns a repo bound to the garbage_bookings collection.
func NewMongoBookingRepo() *MongoBookingRepo {
	return &MongoBookingRepo{coll: database.DB().Collection("garbage_bookings")}
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}
