package booking

import (
	"testing"

	"nyumbani/models"
	"nyumbani/services/authz"
	"nyumbani/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeBookingRepo struct {
	bookings map[string]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[string]*models.Booking{}}
}

func (r *fakeBookingRepo) Create(b *models.Booking) error {
	copy := *b
	r.bookings[b.ID] = &copy
	return nil
}

func (r *fakeBookingRepo) Update(b *models.Booking) error {
	copy := *b
	r.bookings[b.ID] = &copy
	return nil
}

func (r *fakeBookingRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	b := r.bookings[id]
	if status, ok := updateDoc["status"].(string); ok {
		b.Status = status
	}
	return nil
}

func (r *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	copy := *b
	return &copy, nil
}

func (r *fakeBookingRepo) List(filter bson.M) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if id, ok := filter["customerId"].(string); ok && b.CustomerID != id {
			continue
		}
		if in, ok := filter["propertyId"].(bson.M); ok {
			match := false
			for _, pid := range in["$in"].([]string) {
				if pid == b.PropertyID {
					match = true
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, *b)
	}
	return out, nil
}

type fakePropertyRepo struct {
	properties map[string]*models.Property
}

func (r *fakePropertyRepo) Create(p *models.Property) error                    { r.properties[p.ID] = p; return nil }
func (r *fakePropertyRepo) Update(p *models.Property) error                    { r.properties[p.ID] = p; return nil }
func (r *fakePropertyRepo) UpdateSetDocument(id string, updateDoc bson.M) error { return nil }
func (r *fakePropertyRepo) Delete(id string) error                             { delete(r.properties, id); return nil }

func (r *fakePropertyRepo) GetByID(id string) (*models.Property, error) {
	p, ok := r.properties[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (r *fakePropertyRepo) List(filter bson.M) ([]models.Property, error) {
	var out []models.Property
	for _, p := range r.properties {
		if id, ok := filter["propertyManagerId"].(string); ok && p.PropertyManagerID != id {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

type fakeSettingsService struct {
	pricing models.PricingSettings
}

func (s *fakeSettingsService) Get() (*models.Settings, error) {
	return &models.Settings{ID: "settings", Pricing: s.pricing}, nil
}

func (s *fakeSettingsService) PricingSnapshot() (models.PricingSettings, error) {
	return s.pricing, nil
}

func (s *fakeSettingsService) Update(update models.SettingsUpdate) (*models.Settings, error) {
	return s.Get()
}

func newTestService() (*DefaultBookingService, *fakeBookingRepo, *fakePaymentRepo) {
	bookings := newFakeBookingRepo()
	payments := newFakePaymentRepo()
	properties := &fakePropertyRepo{properties: map[string]*models.Property{
		"prop-1": {ID: "prop-1", PropertyManagerID: "manager-1", Title: "Riverside Apartment"},
	}}
	svc := &DefaultBookingService{
		Bookings:   bookings,
		Properties: properties,
		Payments:   payments,
		Settings:   &fakeSettingsService{pricing: models.DefaultPricingSettings()},
	}
	return svc, bookings, payments
}

func customer(id string) authz.Actor {
	return authz.Actor{ID: id, Role: models.RoleCustomer}
}

func manager(id string) authz.Actor {
	return authz.Actor{ID: id, Role: models.RolePropertyManager}
}

func TestCreateBookingDerivesFeesAndPayment(t *testing.T) {
	svc, _, payments := newTestService()

	b, p, err := svc.CreateBooking(customer("cust-1"), models.BookingInput{
		PropertyID:         "prop-1",
		VisitDate:          "2026-09-10",
		VisitTime:          "10:00",
		NumberOfProperties: 5,
		CleaningService:    &models.AddOnService{Required: true, Fee: 800},
	})
	require.NoError(t, err)

	// 5 properties: base 1500 covers 3, one extra block of up to 3 adds 500.
	assert.Equal(t, 2000.0, b.ViewingFee)
	assert.Equal(t, 2800.0, b.TotalFee)
	assert.Equal(t, models.BookingStatusPending, b.Status)

	require.NotNil(t, p)
	assert.Equal(t, models.PaymentTypeViewingFee, p.PaymentType)
	assert.Equal(t, b.ID, p.BookingID)
	assert.Equal(t, b.TotalFee, p.TotalAmount)
	assert.Equal(t, "manager-1", p.PropertyManagerID)
	assert.Equal(t, models.PaymentStatusPending, p.PaymentStatus)
	assert.Len(t, payments.payments, 1)
}

func TestCreateBookingDefaultsToOneProperty(t *testing.T) {
	svc, _, _ := newTestService()

	b, _, err := svc.CreateBooking(customer("cust-1"), models.BookingInput{
		PropertyID: "prop-1",
		VisitDate:  "2026-09-10",
		VisitTime:  "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, b.NumberOfProperties)
	assert.Equal(t, 1500.0, b.TotalFee)
}

func TestCreateBookingUnknownProperty(t *testing.T) {
	svc, _, _ := newTestService()

	_, _, err := svc.CreateBooking(customer("cust-1"), models.BookingInput{
		PropertyID: "missing",
		VisitDate:  "2026-09-10",
		VisitTime:  "10:00",
	})
	serr, ok := utils.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeNotFound, serr.Code)
}

func TestGetBookingAuthorization(t *testing.T) {
	svc, _, _ := newTestService()
	b, _, err := svc.CreateBooking(customer("cust-1"), models.BookingInput{
		PropertyID: "prop-1", VisitDate: "2026-09-10", VisitTime: "10:00",
	})
	require.NoError(t, err)

	_, err = svc.GetBooking(customer("cust-1"), b.ID)
	assert.NoError(t, err)

	_, err = svc.GetBooking(manager("manager-1"), b.ID)
	assert.NoError(t, err)

	_, err = svc.GetBooking(customer("stranger"), b.ID)
	serr, ok := utils.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeNotAuthorized, serr.Code)
}

func TestUpdateBookingResyncsPendingPayment(t *testing.T) {
	svc, _, payments := newTestService()
	b, p, err := svc.CreateBooking(customer("cust-1"), models.BookingInput{
		PropertyID: "prop-1", VisitDate: "2026-09-10", VisitTime: "10:00",
		NumberOfProperties: 2,
	})
	require.NoError(t, err)
	require.Equal(t, 1500.0, p.TotalAmount)

	updated, err := svc.UpdateBooking(customer("cust-1"), b.ID, models.BookingInput{
		NumberOfProperties: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, 2500.0, updated.TotalFee)
	assert.Equal(t, 2500.0, payments.payments[p.ID].TotalAmount)
}

func TestUpdateBookingRejectedAfterPaymentPaid(t *testing.T) {
	svc, _, payments := newTestService()
	b, p, err := svc.CreateBooking(customer("cust-1"), models.BookingInput{
		PropertyID: "prop-1", VisitDate: "2026-09-10", VisitTime: "10:00",
	})
	require.NoError(t, err)

	payments.payments[p.ID].PaymentStatus = models.PaymentStatusPaid

	_, err = svc.UpdateBooking(customer("cust-1"), b.ID, models.BookingInput{
		NumberOfProperties: 7,
	})
	serr, ok := utils.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeInvalidTransition, serr.Code)

	// Reschedules that do not touch fee inputs are still fine.
	updated, err := svc.UpdateBooking(customer("cust-1"), b.ID, models.BookingInput{
		VisitDate: "2026-09-12",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-09-12", updated.VisitDate)
}

func TestSetStatusTransitions(t *testing.T) {
	svc, _, _ := newTestService()
	b, _, err := svc.CreateBooking(customer("cust-1"), models.BookingInput{
		PropertyID: "prop-1", VisitDate: "2026-09-10", VisitTime: "10:00",
	})
	require.NoError(t, err)

	// Manager confirms, then completes.
	updated, err := svc.SetStatus(manager("manager-1"), b.ID, models.BookingStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, updated.Status)

	updated, err = svc.SetStatus(manager("manager-1"), b.ID, models.BookingStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCompleted, updated.Status)

	// Terminal: no way back.
	_, err = svc.SetStatus(manager("manager-1"), b.ID, models.BookingStatusConfirmed)
	serr, ok := utils.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeInvalidTransition, serr.Code)
}

func TestSetStatusCustomerCanOnlyCancel(t *testing.T) {
	svc, _, _ := newTestService()
	b, _, err := svc.CreateBooking(customer("cust-1"), models.BookingInput{
		PropertyID: "prop-1", VisitDate: "2026-09-10", VisitTime: "10:00",
	})
	require.NoError(t, err)

	// Confirming your own booking is a transition violation, not a
	// permissions one.
	_, err = svc.SetStatus(customer("cust-1"), b.ID, models.BookingStatusConfirmed)
	serr, ok := utils.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeInvalidTransition, serr.Code)

	// A stranger cancelling is a permissions violation.
	_, err = svc.SetStatus(customer("stranger"), b.ID, models.BookingStatusCancelled)
	serr, ok = utils.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeNotAuthorized, serr.Code)

	updated, err := svc.SetStatus(customer("cust-1"), b.ID, models.BookingStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, updated.Status)
}

func TestListBookingsScopedByRole(t *testing.T) {
	svc, _, _ := newTestService()
	_, _, err := svc.CreateBooking(customer("cust-1"), models.BookingInput{
		PropertyID: "prop-1", VisitDate: "2026-09-10", VisitTime: "10:00",
	})
	require.NoError(t, err)
	_, _, err = svc.CreateBooking(customer("cust-2"), models.BookingInput{
		PropertyID: "prop-1", VisitDate: "2026-09-11", VisitTime: "11:00",
	})
	require.NoError(t, err)

	mine, err := svc.ListBookings(customer("cust-1"))
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	managed, err := svc.ListBookings(manager("manager-1"))
	require.NoError(t, err)
	assert.Len(t, managed, 2)

	all, err := svc.ListBookings(authz.Actor{ID: "admin-1", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
