package booking

import (
	bookingRepo "nyumbani/database/repository/booking"
	paymentRepo "nyumbani/database/repository/payment"
	propertyRepo "nyumbani/database/repository/property"
	"nyumbani/models"
	"nyumbani/services/authz"
	"nyumbani/services/notification"
	"nyumbani/services/settings"
)

// BookingService owns the viewing-booking fee snapshot and status
// transitions. Creating a booking also creates its correlated viewing-fee
// payment.
type BookingService interface {
	CreateBooking(actor authz.Actor, input models.BookingInput) (*models.Booking, *models.Payment, error)
	GetBooking(actor authz.Actor, id string) (*models.Booking, error)
	ListBookings(actor authz.Actor) ([]models.Booking, error)
	UpdateBooking(actor authz.Actor, id string, input models.BookingInput) (*models.Booking, error)
	SetStatus(actor authz.Actor, id, newStatus string) (*models.Booking, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Bookings   bookingRepo.BookingRepository
	Properties propertyRepo.PropertyRepository
	Payments   paymentRepo.PaymentRepository
	Settings   settings.SettingsService
	Notifier   notification.NotificationService
}
