package booking

import (
	"fmt"

	"nyumbani/models"
	"nyumbani/utils"
)

// viewingTransitions is the status machine for viewing bookings.
// cancelled and completed are terminal.
var viewingTransitions = map[string][]string{
	models.BookingStatusPending:   {models.BookingStatusConfirmed, models.BookingStatusCancelled},
	models.BookingStatusConfirmed: {models.BookingStatusCompleted, models.BookingStatusCancelled},
}

// serviceTransitions is the status machine for garbage and mover bookings,
// which add an in_progress step.
var serviceTransitions = map[string][]string{
	models.ServiceStatusPending:    {models.ServiceStatusConfirmed, models.ServiceStatusCancelled},
	models.ServiceStatusConfirmed:  {models.ServiceStatusInProgress, models.ServiceStatusCompleted, models.ServiceStatusCancelled},
	models.ServiceStatusInProgress: {models.ServiceStatusCompleted, models.ServiceStatusCancelled},
}

func allowed(transitions map[string][]string, from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateViewingTransition checks a viewing-booking status change.
func ValidateViewingTransition(from, to string) error {
	if !allowed(viewingTransitions, from, to) {
		return utils.InvalidTransitionError(fmt.Sprintf("cannot change booking from %s to %s", from, to))
	}
	return nil
}

// ValidateServiceTransition checks a garbage/mover booking status change.
func ValidateServiceTransition(from, to string) error {
	if !allowed(serviceTransitions, from, to) {
		return utils.InvalidTransitionError(fmt.Sprintf("cannot change booking from %s to %s", from, to))
	}
	return nil
}

// ValidateCustomerTarget enforces that customers only ever drive a booking
// to cancelled. Other targets are a transition violation, not a permissions
// one: the customer is allowed to act on their booking, just not like this.
func ValidateCustomerTarget(role, to string) error {
	if role != models.RoleCustomer {
		return nil
	}
	if to != models.BookingStatusCancelled {
		return utils.InvalidTransitionError("customers can only cancel bookings")
	}
	return nil
}
