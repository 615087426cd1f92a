package mover

import (
	moverRepo "nyumbani/database/repository/mover"
	paymentRepo "nyumbani/database/repository/payment"
	"nyumbani/models"
	"nyumbani/services/authz"
	"nyumbani/services/notification"
	"nyumbani/services/settings"
	"nyumbani/services/storage"
	"nyumbani/services/user"
)

// Move types a mover company may offer.
var MoveTypes = []string{"residential", "commercial", "office", "furniture", "fragile_items", "long_distance", "local"}

// MoverService manages moving-service company profiles and their bookings.
// A booking's quote is base rate plus distance times the per-km rate plus
// any extra services, floored at the company's minimum charge.
type MoverService interface {
	RegisterCompany(actor authz.Actor, c *models.MoverCompany) (*models.MoverCompany, error)
	GetCompany(id string) (*models.MoverCompany, error)
	ListCompanies(onlyAvailable bool) ([]models.MoverCompany, error)
	UpdateCompany(actor authz.Actor, id string, patch *models.MoverCompanyUpdate) (*models.MoverCompany, error)
	VerifyCompany(actor authz.Actor, id string, verified bool) (*models.MoverCompany, error)
	AttachDocument(actor authz.Actor, id, docName, localFilePath string) (*models.MoverCompany, error)

	CreateBooking(actor authz.Actor, input models.MoverBookingInput) (*models.MoverBooking, *models.Payment, error)
	GetBooking(actor authz.Actor, id string) (*models.MoverBooking, error)
	ListBookings(actor authz.Actor) ([]models.MoverBooking, error)
	SetBookingStatus(actor authz.Actor, id, newStatus string) (*models.MoverBooking, error)
}

// DefaultMoverService is the production implementation.
type DefaultMoverService struct {
	Companies moverRepo.CompanyRepository
	Bookings  moverRepo.BookingRepository
	Payments  paymentRepo.PaymentRepository
	Users     user.UserService
	Settings  settings.SettingsService
	Notifier  notification.NotificationService
	Storage   storage.StorageService
}
