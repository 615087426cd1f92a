// File: database/repository/user/user.go
package userRepo

import (
	"context"
	"time"

	"nyumbani/database"
	"nyumbani/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(user *models.User) error
	Update(user *models.User) error
	UpdateSetDocument(id string, updateDoc bson.M) error
	Delete(id string) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByTokenHash(tokenHash string) (*models.User, error)
	GetAll() ([]models.User, error)
}

// MongoUserRepo is the MongoDB-backed implementation.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo returns a repo bound to the users collection.
func NewMongoUserRepo() *MongoUserRepo {
	return &MongoUserRepo{coll: database.DB().Collection("users")}
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}
