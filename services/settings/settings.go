// Package settings serves the global pricing/commission settings document.
// Callers get an explicit snapshot to hand to the pricing policy; the
// snapshot is cached in Redis and invalidated on every admin update.
package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	settingsRepo "nyumbani/database/repository/settings"
	"nyumbani/models"
	"nyumbani/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const cacheKey = "settings:global"
const cacheTTL = 5 * time.Minute

// SettingsService exposes the global settings document.
type SettingsService interface {
	Get() (*models.Settings, error)
	PricingSnapshot() (models.PricingSettings, error)
	Update(update models.SettingsUpdate) (*models.Settings, error)
}

// DefaultSettingsService is the production implementation.
type DefaultSettingsService struct {
	Repo  settingsRepo.SettingsRepository
	Cache *redis.Client
}

// Get returns the global settings, creating the defaults document on first
// access.
func (s *DefaultSettingsService) Get() (*models.Settings, error) {
	if cached := s.fromCache(); cached != nil {
		return cached, nil
	}

	doc, err := s.Repo.GetGlobal()
	if err != nil {
		return nil, err
	}
	if doc == nil {
		doc = &models.Settings{
			ID:      uuid.New().String(),
			Pricing: models.DefaultPricingSettings(),
		}
		if err := s.Repo.Upsert(doc); err != nil {
			return nil, fmt.Errorf("failed to seed default settings: %w", err)
		}
	}

	s.toCache(doc)
	return doc, nil
}

// PricingSnapshot returns the pricing settings for injection into the
// pricing policy.
func (s *DefaultSettingsService) PricingSnapshot() (models.PricingSettings, error) {
	doc, err := s.Get()
	if err != nil {
		return models.PricingSettings{}, err
	}
	return doc.Pricing, nil
}

// Update applies an admin patch, validating every changed field before any
// write.
func (s *DefaultSettingsService) Update(update models.SettingsUpdate) (*models.Settings, error) {
	doc, err := s.Get()
	if err != nil {
		return nil, err
	}

	p := doc.Pricing
	if update.ViewingFeeBase != nil {
		if *update.ViewingFeeBase < 0 {
			return nil, utils.InvalidArgumentError("viewingFeeBase must not be negative")
		}
		p.ViewingFeeBase = *update.ViewingFeeBase
	}
	if update.ViewingFeeAdditional != nil {
		if *update.ViewingFeeAdditional < 0 {
			return nil, utils.InvalidArgumentError("viewingFeeAdditional must not be negative")
		}
		p.ViewingFeeAdditional = *update.ViewingFeeAdditional
	}
	if update.ViewingFeeThreshold != nil {
		if *update.ViewingFeeThreshold < 1 {
			return nil, utils.InvalidArgumentError("viewingFeeThreshold must be at least 1")
		}
		p.ViewingFeeThreshold = *update.ViewingFeeThreshold
	}
	if update.ViewingFeeStrategy != nil {
		switch *update.ViewingFeeStrategy {
		case models.ViewingFeePerProperty, models.ViewingFeePerBlock:
			p.ViewingFeeStrategy = *update.ViewingFeeStrategy
		default:
			return nil, utils.InvalidArgumentError(fmt.Sprintf("unknown viewing fee strategy %q", *update.ViewingFeeStrategy))
		}
	}
	if update.DefaultCommissionPercentage != nil {
		if err := checkPercentage(*update.DefaultCommissionPercentage); err != nil {
			return nil, err
		}
		p.DefaultCommissionPercentage = *update.DefaultCommissionPercentage
	}
	if update.DownPaymentPercentage != nil {
		if err := checkPercentage(*update.DownPaymentPercentage); err != nil {
			return nil, err
		}
		p.DownPaymentPercentage = *update.DownPaymentPercentage
	}
	if update.ManagerCommissionEnabled != nil {
		p.ManagerCommissionEnabled = *update.ManagerCommissionEnabled
	}
	if update.ManagerCommissionPercentage != nil {
		if err := checkPercentage(*update.ManagerCommissionPercentage); err != nil {
			return nil, err
		}
		p.ManagerCommissionPercentage = *update.ManagerCommissionPercentage
	}

	doc.Pricing = p
	if err := s.Repo.Upsert(doc); err != nil {
		return nil, err
	}

	s.invalidate()
	return doc, nil
}

func checkPercentage(v float64) error {
	if v < 0 || v > 100 {
		return utils.InvalidArgumentError("percentage must be between 0 and 100")
	}
	return nil
}

func (s *DefaultSettingsService) fromCache() *models.Settings {
	if s.Cache == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := s.Cache.Get(ctx, cacheKey).Result()
	if err != nil {
		return nil
	}
	var doc models.Settings
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil
	}
	return &doc
}

func (s *DefaultSettingsService) toCache(doc *models.Settings) {
	if s.Cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := json.Marshal(doc)
	if err != nil {
		return
	}
	s.Cache.Set(ctx, cacheKey, data, cacheTTL)
}

func (s *DefaultSettingsService) invalidate() {
	if s.Cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s.Cache.Del(ctx, cacheKey)
}
