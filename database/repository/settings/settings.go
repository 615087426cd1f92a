// File: database/repository/settings/settings.go
package settingsRepo

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

// SettingsRepository defines persistence for the global settings document.
type SettingsRepository interface {
	GetGlobal() (*models.Settings, error)
	Upsert(s *models.Settings) error
}

// MongoSettingsRepo is the MongoDB-backed implementation.
type MongoSettingsRepo struct {
	coll *mongo.Collection
}

// NewMongoSettingsRepo returns a repo bound to the settings collection.
func NewMongoSettingsRepo() *MongoSettingsRepo {
	return &MongoSettingsRepo{coll: database.DB().Collection("settings")}
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

// GetGlobal fetches the single global settings document; nil when absent.
func (r *MongoSettingsRepo) GetGlobal() (*models.Settings, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var s models.Settings
	err := r.coll.FindOne(ctx, bson.M{"settingType": "global"}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch settings: %w", err)
	}
	return &s, nil
}

// Upsert writes the global settings document, creating it if missing.
func (r *MongoSettingsRepo) Upsert(s *models.Settings) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	s.SettingType = "global"
	s.UpdatedAt = time.Now()

	opts := options.Update().SetUpsert(true)
	_, err := r.coll.UpdateOne(ctx, bson.M{"settingType": "global"}, bson.M{"$set": s}, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert settings: %w", err)
	}
	return nil
}
