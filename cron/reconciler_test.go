package cron

import (
	"context"
	"testing"

	"nyumbani/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeBookingRepo struct {
	bookings map[string]*models.Booking
}

func (r *fakeBookingRepo) Create(b *models.Booking) error { r.bookings[b.ID] = b; return nil }
func (r *fakeBookingRepo) Update(b *models.Booking) error { r.bookings[b.ID] = b; return nil }

func (r *fakeBookingRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	if status, ok := updateDoc["status"].(string); ok {
		r.bookings[id].Status = status
	}
	return nil
}

func (r *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	return b, nil
}

func (r *fakeBookingRepo) List(filter bson.M) ([]models.Booking, error) { return nil, nil }

type fakeGarbageBookingRepo struct {
	bookings map[string]*models.GarbageBooking
}

func (r *fakeGarbageBookingRepo) Create(b *models.GarbageBooking) error {
	r.bookings[b.ID] = b
	return nil
}

func (r *fakeGarbageBookingRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	b := r.bookings[id]
	if status, ok := updateDoc["paymentStatus"].(string); ok {
		b.PaymentStatus = status
	}
	if txn, ok := updateDoc["transactionId"].(string); ok {
		b.TransactionID = txn
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

func TestRepairConfirmsPendingViewingBooking(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: map[string]*models.Booking{
		"book-1": {ID: "book-1", Status: models.BookingStatusPending},
	}}
	rec := &Reconciler{Bookings: bookings}

	p := &models.Payment{
		ID:            "pay-1",
		PaymentType:   models.PaymentTypeViewingFee,
		BookingID:     "book-1",
		PaymentStatus: models.PaymentStatusPaid,
	}

	repaired, err := rec.Repair(context.Background(), p)
	require.NoError(t, err)
	assert.True(t, repaired)
	assert.Equal(t, models.BookingStatusConfirmed, bookings.bookings["book-1"].Status)

	// Already consistent: nothing to do.
	repaired, err = rec.Repair(context.Background(), p)
	require.NoError(t, err)
	assert.False(t, repaired)
}

func TestRepairLeavesCancelledBookingsAlone(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: map[string]*models.Booking{
		"book-1": {ID: "book-1", Status: models.BookingStatusCancelled},
	}}
	rec := &Reconciler{Bookings: bookings}

	repaired, err := rec.Repair(context.Background(), &models.Payment{
		PaymentType:   models.PaymentTypeViewingFee,
		BookingID:     "book-1",
		PaymentStatus: models.PaymentStatusPaid,
	})
	require.NoError(t, err)
	assert.False(t, repaired)
	assert.Equal(t, models.BookingStatusCancelled, bookings.bookings["book-1"].Status)
}

func TestRepairSkipsUnpaidPayments(t *testing.T) {
	rec := &Reconciler{}

	repaired, err := rec.Repair(context.Background(), &models.Payment{
		PaymentType:   models.PaymentTypeViewingFee,
		BookingID:     "book-1",
		PaymentStatus: models.PaymentStatusPending,
	})
	require.NoError(t, err)
	assert.False(t, repaired)
}

func TestRepairMirrorsGarbagePaymentStatus(t *testing.T) {
	garbage := &fakeGarbageBookingRepo{bookings: map[string]*models.GarbageBooking{
		"gb-1": {ID: "gb-1", Status: models.ServiceStatusConfirmed, PaymentStatus: models.PaymentStatusPending},
	}}
	rec := &Reconciler{GarbageBookings: garbage}

	repaired, err := rec.Repair(context.Background(), &models.Payment{
		PaymentType:      models.PaymentTypeGarbage,
		GarbageBookingID: "gb-1",
		PaymentStatus:    models.PaymentStatusPaid,
		TransactionID:    "TXN-123",
	})
	require.NoError(t, err)
	assert.True(t, repaired)
	assert.Equal(t, models.PaymentStatusPaid, garbage.bookings["gb-1"].PaymentStatus)
	assert.Equal(t, "TXN-123", garbage.bookings["gb-1"].TransactionID)
}
