package handlers

import (
	"nyumbani/services/booking"
	"nyumbani/services/contact"
	"nyumbani/services/garbage"
	"nyumbani/services/mover"
	"nyumbani/services/payment"
	"nyumbani/services/property"
	"nyumbani/services/settings"
	"nyumbani/services/user"
)

// HandlerBundle groups all endpoint handlers into one struct. Routes take
// the bundle; main wires the services in.
type HandlerBundle struct {
	UserService user.UserService

	User     *UserHandler
	Property *PropertyHandler
	Booking  *BookingHandler
	Garbage  *GarbageHandler
	Mover    *MoverHandler
	Payment  *PaymentHandler
	Settings *SettingsHandler
	Contact  *ContactHandler
	Admin    *AdminHandler
}

// NewHandlerBundle builds the bundle from the service layer.
func NewHandlerBundle(
	userSvc user.UserService,
	propertySvc property.PropertyService,
	bookingSvc booking.BookingService,
	garbageSvc garbage.GarbageService,
	moverSvc mover.MoverService,
	paymentSvc payment.PaymentService,
	settingsSvc settings.SettingsService,
	contactSvc contact.ContactService,
) *HandlerBundle {
	return &HandlerBundle{
		UserService: userSvc,
		User:        &UserHandler{UserService: userSvc},
		Property:    &PropertyHandler{PropertyService: propertySvc},
		Booking:     &BookingHandler{BookingService: bookingSvc},
		Garbage:     &GarbageHandler{GarbageService: garbageSvc},
		Mover:       &MoverHandler{MoverService: moverSvc},
		Payment:     &PaymentHandler{PaymentService: paymentSvc},
		Settings:    &SettingsHandler{SettingsService: settingsSvc},
		Contact:     &ContactHandler{ContactService: contactSvc},
		Admin:       &AdminHandler{UserService: userSvc},
	}
}
