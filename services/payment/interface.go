package payment

import (
	bookingRepo "nyumbani/database/repository/booking"
	garbageRepo "nyumbani/database/repository/garbage"
	moverRepo "nyumbani/database/repository/mover"
	paymentRepo "nyumbani/database/repository/payment"
	"nyumbani/models"
	"nyumbani/services/authz"
	"nyumbani/services/notification"
)

// Gateway charges the customer through an external processor and returns
// the processor's transaction reference.
type Gateway interface {
	Charge(amount float64, currency, method, description string) (string, error)
}

// Reconciler queues a repair job for a payment whose paired booking write
// was lost. The background worker re-applies the booking side of the write.
type Reconciler interface {
	EnqueueReconcile(paymentID string) error
}

// PaymentService processes payments and settles provider commissions. A
// successful payment confirms the correlated booking in the same write; the
// commission-settled flag lives on the payment record only.
type PaymentService interface {
	ProcessPayment(actor authz.Actor, paymentID string, input models.ProcessPaymentInput) (*models.Payment, error)
	GetPayment(actor authz.Actor, id string) (*models.Payment, error)
	ListPayments(actor authz.Actor) ([]models.Payment, error)
	RefundPayment(actor authz.Actor, id string) (*models.Payment, error)
	PayCommission(actor authz.Actor, paymentID string) (*models.Payment, error)
}

// DefaultPaymentService is the production implementation.
type DefaultPaymentService struct {
	Payments        paymentRepo.PaymentRepository
	Bookings        bookingRepo.BookingRepository
	GarbageBookings garbageRepo.BookingRepository
	MoverBookings   moverRepo.BookingRepository
	Gateway         Gateway
	Reconciler      Reconciler
	Notifier        notification.NotificationService
}
