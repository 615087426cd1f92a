package garbage

import (
	garbageRepo "nyumbani/database/repository/garbage"
	paymentRepo "nyumbani/database/repository/payment"
	"nyumbani/models"
	"nyumbani/services/authz"
	"nyumbani/services/notification"
	"nyumbani/services/settings"
	"nyumbani/services/storage"
	"nyumbani/services/user"
)

// GarbageService manages garbage-collection company profiles and their
// bookings. Creating a booking quotes the service amount from the company
// rate card and creates the correlated revenue-split payment.
type GarbageService interface {
	RegisterCompany(actor authz.Actor, c *models.GarbageCompany) (*models.GarbageCompany, error)
	GetCompany(id string) (*models.GarbageCompany, error)
	ListCompanies(onlyAvailable bool) ([]models.GarbageCompany, error)
	UpdateCompany(actor authz.Actor, id string, patch *models.GarbageCompanyUpdate) (*models.GarbageCompany, error)
	VerifyCompany(actor authz.Actor, id string, verified bool) (*models.GarbageCompany, error)
	AttachDocument(actor authz.Actor, id, docName, localFilePath string) (*models.GarbageCompany, error)

	CreateBooking(actor authz.Actor, input models.GarbageBookingInput) (*models.GarbageBooking, *models.Payment, error)
	GetBooking(actor authz.Actor, id string) (*models.GarbageBooking, error)
	ListBookings(actor authz.Actor) ([]models.GarbageBooking, error)
	SetBookingStatus(actor authz.Actor, id, newStatus string) (*models.GarbageBooking, error)
}

// DefaultGarbageService is the production implementation.
type DefaultGarbageService struct {
	Companies garbageRepo.CompanyRepository
	Bookings  garbageRepo.BookingRepository
	Payments  paymentRepo.PaymentRepository
	Users     user.UserService
	Settings  settings.SettingsService
	Notifier  notification.NotificationService
	Storage   storage.StorageService
}
