package garbage

import (
	"context"
	"fmt"

	"nyumbani/models"
	"nyumbani/services/authz"
	"nyumbani/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func validWasteTypes(offered []string) error {
	known := map[string]bool{}
	for _, t := range models.WasteTypes {
		known[t] = true
	}
	for _, t := range offered {
		if !known[t] {
			return utils.InvalidArgumentError(fmt.Sprintf("unknown waste type %q", t))
		}
	}
	return nil
}

// RegisterCompany creates a provider profile and links it to the acting
// user's account. A fresh profile starts unverified and cannot take
// bookings until an admin verifies it.
func (svc *DefaultGarbageService) RegisterCompany(actor authz.Actor, c *models.GarbageCompany) (*models.GarbageCompany, error) {
	if actor.Role != models.RoleGarbageCompany && actor.Role != models.RoleAdmin {
		return nil, utils.NotAuthorizedError("only garbage collection accounts can register a company profile")
	}
	if actor.Role == models.RoleGarbageCompany && actor.ProfileID != "" {
		return nil, utils.InvalidArgumentError("account already has a company profile")
	}
	if c.CompanyName == "" || c.RegistrationNumber == "" || c.Email == "" {
		return nil, utils.InvalidArgumentError("companyName, registrationNumber and email are required")
	}
	if err := validWasteTypes(c.ServicesOffered); err != nil {
		return nil, err
	}
	if c.Pricing.BaseRate < 0 || c.Pricing.RatePerUnit < 0 || c.Pricing.MinimumCharge < 0 {
		return nil, utils.InvalidArgumentError("pricing rates must not be negative")
	}
	if c.PlatformCommissionPercentage < 0 || c.PlatformCommissionPercentage > 100 {
		return nil, utils.InvalidArgumentError("platformCommissionPercentage must be between 0 and 100")
	}
	if c.PlatformCommissionPercentage == 0 {
		snapshot, err := svc.Settings.PricingSnapshot()
		if err != nil {
			return nil, err
		}
		c.PlatformCommissionPercentage = snapshot.DefaultCommissionPercentage
	}

	c.ID = uuid.New().String()
	c.IsVerified = false
	c.IsActive = true
	if err := svc.Companies.Create(c); err != nil {
		return nil, err
	}

	if actor.Role == models.RoleGarbageCompany {
		if err := svc.Users.LinkProviderProfile(actor.ID, actor.Role, c.ID); err != nil {
			utils.GetLogger().Error("failed to link garbage profile to user",
				zap.String("userID", actor.ID), zap.String("companyID", c.ID), zap.Error(err))
		}
	}
	return c, nil
}

// GetCompany fetches a provider profile.
func (svc *DefaultGarbageService) GetCompany(id string) (*models.GarbageCompany, error) {
	c, err := svc.Companies.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, utils.NotFoundError("garbage company")
	}
	return c, nil
}

// ListCompanies returns provider profiles; onlyAvailable restricts to
// verified, active companies (the customer-facing listing).
func (svc *DefaultGarbageService) ListCompanies(onlyAvailable bool) ([]models.GarbageCompany, error) {
	filter := bson.M{}
	if onlyAvailable {
		filter["isVerified"] = true
		filter["isActive"] = true
	}
	return svc.Companies.List(filter)
}

// UpdateCompany patches a profile's editable fields. Verification state is
// not editable here; only VerifyCompany touches it.
func (svc *DefaultGarbageService) UpdateCompany(actor authz.Actor, id string, patch *models.GarbageCompanyUpdate) (*models.GarbageCompany, error) {
	c, err := svc.GetCompany(id)
	if err != nil {
		return nil, err
	}
	if err := authz.Decide(actor, authz.ActionUpdate, authz.Resource{ProviderID: c.ID}); err != nil {
		return nil, err
	}

	if patch.CompanyName != "" {
		c.CompanyName = patch.CompanyName
	}
	if patch.Phone != "" {
		c.Phone = patch.Phone
	}
	if patch.ContactPerson != nil {
		c.ContactPerson = *patch.ContactPerson
	}
	if patch.Address != nil {
		c.Address = *patch.Address
	}
	if patch.ServicesOffered != nil {
		if err := validWasteTypes(patch.ServicesOffered); err != nil {
			return nil, err
		}
		c.ServicesOffered = patch.ServicesOffered
	}
	if patch.Pricing != nil {
		if patch.Pricing.BaseRate < 0 || patch.Pricing.RatePerUnit < 0 || patch.Pricing.MinimumCharge < 0 {
			return nil, utils.InvalidArgumentError("pricing rates must not be negative")
		}
		c.Pricing = *patch.Pricing
	}
	if patch.BankDetails != nil {
		c.BankDetails = *patch.BankDetails
	}
	if patch.IsActive != nil {
		c.IsActive = *patch.IsActive
	}

	if err := svc.Companies.Update(c); err != nil {
		return nil, err
	}
	return c, nil
}

// VerifyCompany flips the admin verification flag.
func (svc *DefaultGarbageService) VerifyCompany(actor authz.Actor, id string, verified bool) (*models.GarbageCompany, error) {
	if err := authz.Decide(actor, authz.ActionVerifyCompany, authz.Resource{}); err != nil {
		return nil, err
	}
	c, err := svc.GetCompany(id)
	if err != nil {
		return nil, err
	}
	if err := svc.Companies.UpdateSetDocument(c.ID, bson.M{"isVerified": verified}); err != nil {
		return nil, err
	}
	c.IsVerified = verified
	return c, nil
}

// AttachDocument uploads a compliance document (licence, insurance, tax
// certificate) and records its Cloudinary public ID under docName.
func (svc *DefaultGarbageService) AttachDocument(actor authz.Actor, id, docName, localFilePath string) (*models.GarbageCompany, error) {
	c, err := svc.GetCompany(id)
	if err != nil {
		return nil, err
	}
	if err := authz.Decide(actor, authz.ActionUpdate, authz.Resource{ProviderID: c.ID}); err != nil {
		return nil, err
	}
	if docName == "" {
		return nil, utils.InvalidArgumentError("document name is required")
	}
	if svc.Storage == nil {
		return nil, utils.InvalidArgumentError("document storage is not configured")
	}

	publicID, err := svc.Storage.UploadFile(context.Background(), localFilePath, "garbage_companies/"+c.ID)
	if err != nil {
		return nil, err
	}

	if c.Documents == nil {
		c.Documents = map[string]string{}
	}
	c.Documents[docName] = publicID
	if err := svc.Companies.UpdateSetDocument(c.ID, bson.M{"documents": c.Documents}); err != nil {
		return nil, err
	}
	return c, nil
}
