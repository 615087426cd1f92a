package cron

import (
	"context"

	bookingRepo "nyumbani/database/repository/booking"
	garbageRepo "nyumbani/database/repository/garbage"
	moverRepo "nyumbani/database/repository/mover"
	"nyumbani/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Reconciler re-applies the booking side of a paid payment when the paired
// write was lost. Repairs are idempotent: a booking that already reflects
// the payment is left untouched.
type Reconciler struct {
	Bookings        bookingRepo.BookingRepository
	GarbageBookings garbageRepo.BookingRepository
	MoverBookings   moverRepo.BookingRepository
}

// Repair checks the booking correlated with a paid payment and brings it in
// line. Returns true when a write was applied.
func (r *Reconciler) Repair(ctx context.Context, p *models.Payment) (bool, error) {
	if p.PaymentStatus != models.PaymentStatusPaid {
		return false, nil
	}

	switch p.PaymentType {
	case models.PaymentTypeViewingFee:
		return r.repairViewing(p)
	case models.PaymentTypeGarbage:
		return r.repairGarbage(p)
	case models.PaymentTypeMovingService:
		return r.repairMover(p)
	}
	return false, nil
}

func (r *Reconciler) repairViewing(p *models.Payment) (bool, error) {
	b, err := r.Bookings.GetByID(p.BookingID)
	if err != nil {
		return false, err
	}
	// A pending booking with a paid viewing fee missed its confirmation.
	// Cancelled/completed bookings are left alone.
	if b == nil || b.Status != models.BookingStatusPending {
		return false, nil
	}
	if err := r.Bookings.UpdateSetDocument(b.ID, bson.M{"status": models.BookingStatusConfirmed}); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Reconciler) repairGarbage(p *models.Payment) (bool, error) {
	b, err := r.GarbageBookings.GetByID(p.GarbageBookingID)
	if err != nil {
		return false, err
	}
	if b == nil || b.PaymentStatus == models.PaymentStatusPaid {
		return false, nil
	}
	if err := r.GarbageBookings.UpdateSetDocument(b.ID, bson.M{
		"paymentStatus": models.PaymentStatusPaid,
		"transactionId": p.TransactionID,
	}); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Reconciler) repairMover(p *models.Payment) (bool, error) {
	b, err := r.MoverBookings.GetByID(p.MoverBookingID)
	if err != nil {
		return false, err
	}
	if b == nil || b.PaymentStatus == models.PaymentStatusPaid {
		return false, nil
	}
	if err := r.MoverBookings.UpdateSetDocument(b.ID, bson.M{
		"paymentStatus": models.PaymentStatusPaid,
		"transactionId": p.TransactionID,
	}); err != nil {
		return false, err
	}
	return true, nil
}
