package mover

import (
	"context"
	"testing"

	paymentRepo "nyumbani/database/repository/payment"
	"nyumbani/models"
	"nyumbani/services/authz"
	"nyumbani/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeCompanyRepo struct {
	companies map[string]*models.MoverCompany
}

func (r *fakeCompanyRepo) Create(c *models.MoverCompany) error { r.companies[c.ID] = c; return nil }
func (r *fakeCompanyRepo) Update(c *models.MoverCompany) error { r.companies[c.ID] = c; return nil }

func (r *fakeCompanyRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	if verified, ok := updateDoc["isVerified"].(bool); ok {
		r.companies[id].IsVerified = verified
	}
	return nil
}

func (r *fakeCompanyRepo) GetByID(id string) (*models.MoverCompany, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, nil
	}
	copy := *c
	return &copy, nil
}

func (r *fakeCompanyRepo) List(filter bson.M) ([]models.MoverCompany, error) {
	var out []models.MoverCompany
	for _, c := range r.companies {
		out = append(out, *c)
	}
	return out, nil
}

type fakeBookingRepo struct {
	bookings map[string]*models.MoverBooking
}

func (r *fakeBookingRepo) Create(b *models.MoverBooking) error {
	copy := *b
	r.bookings[b.ID] = &copy
	return nil
}

func (r *fakeBookingRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	if status, ok := updateDoc["status"].(string); ok {
		r.bookings[id].Status = status
	}
	return nil
}

func (r *fakeBookingRepo) GetByID(id string) (*models.MoverBooking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	copy := *b
	return &copy, nil
}

func (r *fakeBookingRepo) List(filter bson.M) ([]models.MoverBooking, error) {
	var out []models.MoverBooking
	for _, b := range r.bookings {
		out = append(out, *b)
	}
	return out, nil
}

type fakePaymentRepo struct {
	payments []*models.Payment
}

func (r *fakePaymentRepo) Create(p *models.Payment) error {
	r.payments = append(r.payments, p)
	return nil
}

func (r *fakePaymentRepo) UpdateSetDocument(id string, updateDoc bson.M) error { return nil }
func (r *fakePaymentRepo) GetByID(id string) (*models.Payment, error)          { return nil, nil }
func (r *fakePaymentRepo) FindOne(filter bson.M) (*models.Payment, error)      { return nil, nil }
func (r *fakePaymentRepo) List(filter bson.M) ([]models.Payment, error)        { return nil, nil }
func (r *fakePaymentRepo) UpdateWithSideEffect(ctx context.Context, paymentID string, paymentSet bson.M, side *paymentRepo.SideWrite) error {
	return nil
}

type fakeSettingsService struct{}

func (fakeSettingsService) Get() (*models.Settings, error) {
	return &models.Settings{ID: "settings", Pricing: models.DefaultPricingSettings()}, nil
}

func (fakeSettingsService) PricingSnapshot() (models.PricingSettings, error) {
	return models.DefaultPricingSettings(), nil
}

func (fakeSettingsService) Update(update models.SettingsUpdate) (*models.Settings, error) {
	return nil, nil
}

func newTestService() (*DefaultMoverService, *fakeCompanyRepo) {
	companies := &fakeCompanyRepo{companies: map[string]*models.MoverCompany{
		"mv-1": {
			ID:          "mv-1",
			CompanyName: "Swift Movers",
			Pricing: models.CompanyPricing{
				BaseRate:      2000,
				RatePerUnit:   100,
				MinimumCharge: 2500,
			},
			IsVerified: true,
			IsActive:   true,
		},
	}}
	svc := &DefaultMoverService{
		Companies: companies,
		Bookings:  &fakeBookingRepo{bookings: map[string]*models.MoverBooking{}},
		Payments:  &fakePaymentRepo{},
		Settings:  fakeSettingsService{},
	}
	return svc, companies
}

func TestCreateBookingQuotesDistanceAndExtras(t *testing.T) {
	svc, _ := newTestService()

	b, p, err := svc.CreateBooking(authz.Actor{ID: "cust-1", Role: models.RoleCustomer}, models.MoverBookingInput{
		CompanyID:  "mv-1",
		MovingDate: "2026-10-01",
		MovingTime: "07:00",
		Distance:   15,
		MoveType:   "residential",
		ExtraServices: []models.ExtraService{
			{Name: "packing", Price: 500},
		},
	})
	require.NoError(t, err)

	// 2000 base + 15km * 100 = 3500, plus 500 packing.
	assert.Equal(t, 4000.0, b.ServiceAmount)

	// No per-company override, so the platform default of 20% applies.
	require.NotNil(t, p.PlatformCommission)
	assert.Equal(t, 20.0, p.PlatformCommission.Percentage)
	assert.Equal(t, 800.0, p.PlatformCommission.Amount)
	assert.Equal(t, 3200.0, p.CompanyEarnings)
}

func TestCreateBookingShortMoveHitsMinimum(t *testing.T) {
	svc, _ := newTestService()

	b, _, err := svc.CreateBooking(authz.Actor{ID: "cust-1", Role: models.RoleCustomer}, models.MoverBookingInput{
		CompanyID:  "mv-1",
		MovingDate: "2026-10-01",
		MovingTime: "07:00",
		Distance:   2,
		MoveType:   "local",
	})
	require.NoError(t, err)
	// 2000 + 2*100 = 2200, floored at the 2500 minimum.
	assert.Equal(t, 2500.0, b.ServiceAmount)
}

func TestCreateBookingRejectsUnknownMoveType(t *testing.T) {
	svc, _ := newTestService()

	_, _, err := svc.CreateBooking(authz.Actor{ID: "cust-1", Role: models.RoleCustomer}, models.MoverBookingInput{
		CompanyID:  "mv-1",
		MovingDate: "2026-10-01",
		MovingTime: "07:00",
		MoveType:   "interplanetary",
	})
	serr, ok := utils.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeInvalidArgument, serr.Code)
}

func TestUpdateCompanyPartialPatchKeepsActive(t *testing.T) {
	svc, companies := newTestService()
	actor := authz.Actor{ID: "mv-user", Role: models.RoleMoverCompany, ProfileID: "mv-1"}

	c, err := svc.UpdateCompany(actor, "mv-1", &models.MoverCompanyUpdate{
		Phone:        "+254711000002",
		VehicleTypes: []string{"truck_3t"},
	})
	require.NoError(t, err)
	assert.Equal(t, "+254711000002", c.Phone)
	assert.Equal(t, []string{"truck_3t"}, c.VehicleTypes)
	assert.True(t, c.IsActive)
	assert.True(t, c.IsVerified)
	assert.Equal(t, 2500.0, c.Pricing.MinimumCharge)
	assert.True(t, companies.companies["mv-1"].IsActive)

	inactive := false
	c, err = svc.UpdateCompany(actor, "mv-1", &models.MoverCompanyUpdate{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, c.IsActive)
}

func TestCreateBookingRequiresActiveCompany(t *testing.T) {
	svc, companies := newTestService()
	companies.companies["mv-1"].IsActive = false

	_, _, err := svc.CreateBooking(authz.Actor{ID: "cust-1", Role: models.RoleCustomer}, models.MoverBookingInput{
		CompanyID:  "mv-1",
		MovingDate: "2026-10-01",
		MovingTime: "07:00",
	})
	serr, ok := utils.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeInvalidArgument, serr.Code)
}
