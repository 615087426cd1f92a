package payment

import (
	"context"
	"errors"
	"strings"
	"testing"

	paymentRepo "nyumbani/database/repository/payment"
	"nyumbani/models"
	"nyumbani/services/authz"
	"nyumbani/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type fakePaymentRepo struct {
	payments map[string]*models.Payment
	// sideWrites records the paired booking updates applied alongside
	// payment updates.
	sideWrites []paymentRepo.SideWrite
	loseSide   bool
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: map[string]*models.Payment{}}
}

func (r *fakePaymentRepo) Create(p *models.Payment) error {
	copy := *p
	r.payments[p.ID] = &copy
	return nil
}

func (r *fakePaymentRepo) applySet(p *models.Payment, set bson.M) {
	if status, ok := set["paymentStatus"].(string); ok {
		p.PaymentStatus = status
	}
	if method, ok := set["paymentMethod"].(string); ok {
		p.PaymentMethod = method
	}
	if txn, ok := set["transactionId"].(string); ok {
		p.TransactionID = txn
	}
	if settled, ok := set["commissionPaidToCompany"].(bool); ok {
		p.CommissionPaidToCompany = settled
	}
}

func (r *fakePaymentRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	p, ok := r.payments[id]
	if !ok {
		return errors.New("payment not found")
	}
	r.applySet(p, updateDoc)
	return nil
}

func (r *fakePaymentRepo) GetByID(id string) (*models.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, nil
	}
	copy := *p
	return &copy, nil
}

func (r *fakePaymentRepo) FindOne(filter bson.M) (*models.Payment, error) {
	if id, ok := filter["id"].(string); ok {
		return r.GetByID(id)
	}
	return nil, nil
}

func (r *fakePaymentRepo) List(filter bson.M) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range r.payments {
		if id, ok := filter["customerId"].(string); ok && p.CustomerID != id {
			continue
		}
		if id, ok := filter["companyId"].(string); ok && p.CompanyID != id {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePaymentRepo) UpdateWithSideEffect(ctx context.Context, paymentID string, paymentSet bson.M, side *paymentRepo.SideWrite) error {
	p, ok := r.payments[paymentID]
	if !ok {
		return errors.New("payment not found")
	}
	r.applySet(p, paymentSet)
	if side == nil {
		return nil
	}
	if r.loseSide {
		return paymentRepo.ErrSideEffectLost
	}
	r.sideWrites = append(r.sideWrites, *side)
	return nil
}

type fakeGarbageBookingRepo struct {
	bookings map[string]*models.GarbageBooking
}

func (r *fakeGarbageBookingRepo) Create(b *models.GarbageBooking) error {
	r.bookings[b.ID] = b
	return nil
}

func (r *fakeGarbageBookingRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	if status, ok := updateDoc["status"].(string); ok {
		r.bookings[id].Status = status
	}
	return nil
}

func (r *fakeGarbageBookingRepo) GetByID(id string) (*models.GarbageBooking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	return b, nil
}

func (r *fakeGarbageBookingRepo) List(filter bson.M) ([]models.GarbageBooking, error) {
	return nil, nil
}

type fakeReconciler struct {
	enqueued []string
}

func (r *fakeReconciler) EnqueueReconcile(paymentID string) error {
	r.enqueued = append(r.enqueued, paymentID)
	return nil
}

type failingGateway struct{}

func (failingGateway) Charge(amount float64, currency, method, description string) (string, error) {
	return "", errors.New("card declined")
}

func newViewingFeePayment() *models.Payment {
	return &models.Payment{
		ID:            "pay-1",
		PaymentType:   models.PaymentTypeViewingFee,
		BookingID:     "book-1",
		CustomerID:    "cust-1",
		TotalAmount:   1500,
		PaymentStatus: models.PaymentStatusPending,
		PaymentMethod: models.PaymentMethodCard,
	}
}

func newGarbagePayment(status string) (*models.Payment, *fakeGarbageBookingRepo) {
	garbage := &fakeGarbageBookingRepo{bookings: map[string]*models.GarbageBooking{
		"gb-1": {ID: "gb-1", CompanyID: "co-1", CustomerID: "cust-1", Status: status},
	}}
	p := &models.Payment{
		ID:               "pay-g1",
		PaymentType:      models.PaymentTypeGarbage,
		GarbageBookingID: "gb-1",
		CompanyID:        "co-1",
		CustomerID:       "cust-1",
		TotalAmount:      1000,
		PlatformCommission: &models.PlatformCommission{
			Percentage: 20,
			Amount:     200,
		},
		CompanyEarnings: 800,
		PaymentStatus:   models.PaymentStatusPending,
		PaymentMethod:   models.PaymentMethodCard,
	}
	return p, garbage
}

func owner() authz.Actor {
	return authz.Actor{ID: "cust-1", Role: models.RoleCustomer}
}

func admin() authz.Actor {
	return authz.Actor{ID: "admin-1", Role: models.RoleAdmin}
}

func TestProcessPaymentConfirmsBooking(t *testing.T) {
	repo := newFakePaymentRepo()
	require.NoError(t, repo.Create(newViewingFeePayment()))
	svc := &DefaultPaymentService{Payments: repo}

	p, err := svc.ProcessPayment(owner(), "pay-1", models.ProcessPaymentInput{})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusPaid, p.PaymentStatus)
	assert.True(t, strings.HasPrefix(p.TransactionID, "TXN-"))
	require.NotNil(t, p.PaidAt)

	require.Len(t, repo.sideWrites, 1)
	side := repo.sideWrites[0]
	assert.Equal(t, "bookings", side.Collection)
	assert.Equal(t, "book-1", side.Filter["id"])
	assert.Equal(t, models.BookingStatusPending, side.Filter["status"])
}

func TestProcessPaymentIsNotRepeatable(t *testing.T) {
	repo := newFakePaymentRepo()
	require.NoError(t, repo.Create(newViewingFeePayment()))
	svc := &DefaultPaymentService{Payments: repo}

	_, err := svc.ProcessPayment(owner(), "pay-1", models.ProcessPaymentInput{})
	require.NoError(t, err)

	_, err = svc.ProcessPayment(owner(), "pay-1", models.ProcessPaymentInput{})
	serr, ok := utils.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeAlreadyPaid, serr.Code)
}

func TestProcessPaymentOnlyOwningCustomer(t *testing.T) {
	repo := newFakePaymentRepo()
	require.NoError(t, repo.Create(newViewingFeePayment()))
	svc := &DefaultPaymentService{Payments: repo}

	_, err := svc.ProcessPayment(authz.Actor{ID: "stranger", Role: models.RoleCustomer}, "pay-1", models.ProcessPaymentInput{})
	serr, ok := utils.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeNotAuthorized, serr.Code)

	// Even admins cannot pay on behalf of the customer.
	_, err = svc.ProcessPayment(admin(), "pay-1", models.ProcessPaymentInput{})
	serr, ok = utils.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeNotAuthorized, serr.Code)
}

func TestProcessPaymentGatewayFailure(t *testing.T) {
	repo := newFakePaymentRepo()
	require.NoError(t, repo.Create(newViewingFeePayment()))
	svc := &DefaultPaymentService{Payments: repo, Gateway: failingGateway{}}

	_, err := svc.ProcessPayment(owner(), "pay-1", models.ProcessPaymentInput{})
	require.Error(t, err)

	stored, _ := repo.GetByID("pay-1")
	assert.Equal(t, models.PaymentStatusFailed, stored.PaymentStatus)
}

func TestProcessPaymentQueuesRepairWhenSideWriteLost(t *testing.T) {
	repo := newFakePaymentRepo()
	repo.loseSide = true
	require.NoError(t, repo.Create(newViewingFeePayment()))
	rec := &fakeReconciler{}
	svc := &DefaultPaymentService{Payments: repo, Reconciler: rec}

	p, err := svc.ProcessPayment(owner(), "pay-1", models.ProcessPaymentInput{})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, p.PaymentStatus)
	assert.Equal(t, []string{"pay-1"}, rec.enqueued)
}

func TestPayCommissionSettlesOnce(t *testing.T) {
	p, garbage := newGarbagePayment(models.ServiceStatusCompleted)
	p.PaymentStatus = models.PaymentStatusPaid
	repo := newFakePaymentRepo()
	require.NoError(t, repo.Create(p))
	svc := &DefaultPaymentService{Payments: repo, GarbageBookings: garbage}

	settled, err := svc.PayCommission(admin(), p.ID)
	require.NoError(t, err)
	assert.True(t, settled.CommissionPaidToCompany)
	require.NotNil(t, settled.CommissionPaidAt)

	_, err = svc.PayCommission(admin(), p.ID)
	serr, ok := utils.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeAlreadySettled, serr.Code)
}

func TestPayCommissionRequiresCustomerPayment(t *testing.T) {
	p, garbage := newGarbagePayment(models.ServiceStatusCompleted)
	repo := newFakePaymentRepo()
	require.NoError(t, repo.Create(p))
	svc := &DefaultPaymentService{Payments: repo, GarbageBookings: garbage}

	_, err := svc.PayCommission(admin(), p.ID)
	serr, ok := utils.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodePrematurePayment, serr.Code)
}

func TestPayCommissionRequiresCompletedService(t *testing.T) {
	p, garbage := newGarbagePayment(models.ServiceStatusInProgress)
	p.PaymentStatus = models.PaymentStatusPaid
	repo := newFakePaymentRepo()
	require.NoError(t, repo.Create(p))
	svc := &DefaultPaymentService{Payments: repo, GarbageBookings: garbage}

	_, err := svc.PayCommission(admin(), p.ID)
	serr, ok := utils.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeServiceNotCompleted, serr.Code)
}

func TestPayCommissionAdminOnly(t *testing.T) {
	p, garbage := newGarbagePayment(models.ServiceStatusCompleted)
	p.PaymentStatus = models.PaymentStatusPaid
	repo := newFakePaymentRepo()
	require.NoError(t, repo.Create(p))
	svc := &DefaultPaymentService{Payments: repo, GarbageBookings: garbage}

	_, err := svc.PayCommission(authz.Actor{ID: "co-user", Role: models.RoleGarbageCompany, ProfileID: "co-1"}, p.ID)
	serr, ok := utils.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeNotAuthorized, serr.Code)
}

func TestPayCommissionRejectsViewingFeePayments(t *testing.T) {
	repo := newFakePaymentRepo()
	p := newViewingFeePayment()
	p.PaymentStatus = models.PaymentStatusPaid
	require.NoError(t, repo.Create(p))
	svc := &DefaultPaymentService{Payments: repo}

	_, err := svc.PayCommission(admin(), p.ID)
	serr, ok := utils.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeInvalidArgument, serr.Code)
}

func TestRefundPayment(t *testing.T) {
	repo := newFakePaymentRepo()
	p := newViewingFeePayment()
	p.PaymentStatus = models.PaymentStatusPaid
	require.NoError(t, repo.Create(p))
	svc := &DefaultPaymentService{Payments: repo}

	refunded, err := svc.RefundPayment(admin(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusRefunded, refunded.PaymentStatus)

	// Pending payments have nothing to refund.
	p2 := newViewingFeePayment()
	p2.ID = "pay-2"
	require.NoError(t, repo.Create(p2))
	_, err = svc.RefundPayment(admin(), "pay-2")
	serr, ok := utils.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeInvalidTransition, serr.Code)
}
