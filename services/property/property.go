// Package property manages property listings. Listings are plain CRUD data
// owned by a property manager; images live in Cloudinary and the listing
// keeps their public IDs.
package property

import (
	"context"
	"fmt"

	propertyRepo "nyumbani/database/repository/property"
	"nyumbani/models"
	"nyumbani/services/authz"
	"nyumbani/services/storage"
	"nyumbani/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// PropertyService manages property listings.
type PropertyService interface {
	CreateProperty(actor authz.Actor, p *models.Property) (*models.Property, error)
	GetProperty(id string) (*models.Property, error)
	ListProperties(filter bson.M) ([]models.Property, error)
	ListByManager(managerID string) ([]models.Property, error)
	UpdateProperty(actor authz.Actor, id string, patch *models.PropertyUpdate) (*models.Property, error)
	DeleteProperty(actor authz.Actor, id string) error
	AttachImage(actor authz.Actor, id, localFilePath string) (*models.Property, error)
}

// DefaultPropertyService is the production implementation.
type DefaultPropertyService struct {
	Repo    propertyRepo.PropertyRepository
	Storage storage.StorageService
}

var managerRoles = map[string]bool{
	models.RolePropertyManager: true,
	models.RoleAdmin:           true,
}

// CreateProperty creates a listing owned by the acting property manager.
func (svc *DefaultPropertyService) CreateProperty(actor authz.Actor, p *models.Property) (*models.Property, error) {
	if !managerRoles[actor.Role] {
		return nil, utils.NotAuthorizedError("only property managers can create listings")
	}
	if p.Title == "" || p.PropertyType == "" || p.ListingType == "" {
		return nil, utils.InvalidArgumentError("title, propertyType and listingType are required")
	}
	if p.Price < 0 {
		return nil, utils.InvalidArgumentError("price must not be negative")
	}

	p.ID = uuid.New().String()
	p.PropertyManagerID = actor.ID
	p.IsAvailable = true
	if err := svc.Repo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetProperty fetches a listing. Listings are public.
func (svc *DefaultPropertyService) GetProperty(id string) (*models.Property, error) {
	p, err := svc.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, utils.NotFoundError("property")
	}
	return p, nil
}

// ListProperties returns listings matching the filter.
func (svc *DefaultPropertyService) ListProperties(filter bson.M) ([]models.Property, error) {
	if filter == nil {
		filter = bson.M{}
	}
	return svc.Repo.List(filter)
}

// ListByManager returns a manager's own listings.
func (svc *DefaultPropertyService) ListByManager(managerID string) ([]models.Property, error) {
	return svc.Repo.List(bson.M{"propertyManagerId": managerID})
}

func (svc *DefaultPropertyService) authorize(actor authz.Actor, action authz.Action, id string) (*models.Property, error) {
	p, err := svc.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, utils.NotFoundError("property")
	}
	if err := authz.Decide(actor, action, authz.Resource{ProviderID: p.PropertyManagerID}); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProperty patches a listing's editable fields; absent fields keep
// their current values.
func (svc *DefaultPropertyService) UpdateProperty(actor authz.Actor, id string, patch *models.PropertyUpdate) (*models.Property, error) {
	p, err := svc.authorize(actor, authz.ActionUpdate, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != "" {
		p.Title = patch.Title
	}
	if patch.Description != "" {
		p.Description = patch.Description
	}
	if patch.PropertyType != "" {
		p.PropertyType = patch.PropertyType
	}
	if patch.ListingType != "" {
		p.ListingType = patch.ListingType
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			return nil, utils.InvalidArgumentError("price must not be negative")
		}
		p.Price = *patch.Price
	}
	if patch.Bedrooms != nil {
		p.Bedrooms = *patch.Bedrooms
	}
	if patch.Bathrooms != nil {
		p.Bathrooms = *patch.Bathrooms
	}
	if patch.Address != nil {
		p.Address = *patch.Address
	}
	if patch.IsAvailable != nil {
		p.IsAvailable = *patch.IsAvailable
	}

	if err := svc.Repo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteProperty removes a listing and its stored images.
func (svc *DefaultPropertyService) DeleteProperty(actor authz.Actor, id string) error {
	p, err := svc.authorize(actor, authz.ActionUpdate, id)
	if err != nil {
		return err
	}

	if svc.Storage != nil {
		ctx := context.Background()
		for _, publicID := range p.Images {
			if err := svc.Storage.DeleteFile(ctx, publicID); err != nil {
				utils.GetLogger().Warn(fmt.Sprintf("failed to delete image %s for property %s: %v", publicID, id, err))
			}
		}
	}
	return svc.Repo.Delete(id)
}

// AttachImage uploads a listing photo to Cloudinary and records its public ID.
func (svc *DefaultPropertyService) AttachImage(actor authz.Actor, id, localFilePath string) (*models.Property, error) {
	p, err := svc.authorize(actor, authz.ActionUpdate, id)
	if err != nil {
		return nil, err
	}
	if svc.Storage == nil {
		return nil, utils.InvalidArgumentError("image storage is not configured")
	}

	publicID, err := svc.Storage.UploadFile(context.Background(), localFilePath, "properties/"+p.ID)
	if err != nil {
		return nil, err
	}

	p.Images = append(p.Images, publicID)
	if err := svc.Repo.UpdateSetDocument(p.ID, bson.M{"images": p.Images}); err != nil {
		return nil, err
	}
	return p, nil
}
