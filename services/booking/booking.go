package booking

import (
	"context"
	"fmt"

	"nyumbani/models"
	"nyumbani/services/authz"
	"nyumbani/services/pricing"
	"nyumbani/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func (svc *DefaultBookingService) policy() (pricing.Policy, error) {
	snapshot, err := svc.Settings.PricingSnapshot()
	if err != nil {
		return pricing.Policy{}, fmt.Errorf("failed to load pricing settings: %w", err)
	}
	return pricing.NewPolicy(snapshot), nil
}

// resource builds the authz resource for a booking: the owning customer and
// the manager of the target property.
func (svc *DefaultBookingService) resource(b *models.Booking) (authz.Resource, error) {
	prop, err := svc.Properties.GetByID(b.PropertyID)
	if err != nil {
		return authz.Resource{}, err
	}
	res := authz.Resource{OwnerID: b.CustomerID}
	if prop != nil {
		res.ProviderID = prop.PropertyManagerID
	}
	return res, nil
}

// CreateBooking creates a viewing booking with derived fees and its
// correlated viewing-fee payment.
func (svc *DefaultBookingService) CreateBooking(actor authz.Actor, input models.BookingInput) (*models.Booking, *models.Payment, error) {
	if input.PropertyID == "" || input.VisitDate == "" || input.VisitTime == "" {
		return nil, nil, utils.InvalidArgumentError("propertyId, visitDate and visitTime are required")
	}

	prop, err := svc.Properties.GetByID(input.PropertyID)
	if err != nil {
		return nil, nil, err
	}
	if prop == nil {
		return nil, nil, utils.NotFoundError("property")
	}

	b := &models.Booking{
		ID:                 uuid.New().String(),
		PropertyID:         prop.ID,
		CustomerID:         actor.ID,
		VisitDate:          input.VisitDate,
		VisitTime:          input.VisitTime,
		NumberOfProperties: input.NumberOfProperties,
		Notes:              input.Notes,
		Status:             models.BookingStatusPending,
	}
	if b.NumberOfProperties == 0 {
		b.NumberOfProperties = 1
	}
	if input.CleaningService != nil {
		b.CleaningService = *input.CleaningService
	}
	if input.MovingService != nil {
		b.MovingService = *input.MovingService
	}

	policy, err := svc.policy()
	if err != nil {
		return nil, nil, err
	}
	if err := policy.BookingTotals(b); err != nil {
		return nil, nil, err
	}

	if err := svc.Bookings.Create(b); err != nil {
		return nil, nil, err
	}

	p := &models.Payment{
		ID:                uuid.New().String(),
		PaymentType:       models.PaymentTypeViewingFee,
		BookingID:         b.ID,
		PropertyID:        prop.ID,
		CustomerID:        actor.ID,
		PropertyManagerID: prop.PropertyManagerID,
		TotalAmount:       b.TotalFee,
		PaymentStatus:     models.PaymentStatusPending,
		PaymentMethod:     models.PaymentMethodCard,
	}
	if err := svc.Payments.Create(p); err != nil {
		return nil, nil, fmt.Errorf("booking %s created but payment record failed: %w", b.ID, err)
	}

	svc.notify(b.CustomerID, "Viewing booked",
		fmt.Sprintf("Your viewing on %s is pending. Viewing fee: %.2f", b.VisitDate, b.TotalFee),
		map[string]string{"bookingId": b.ID, "paymentId": p.ID})

	return b, p, nil
}

// GetBooking fetches a booking the actor may see.
func (svc *DefaultBookingService) GetBooking(actor authz.Actor, id string) (*models.Booking, error) {
	b, err := svc.Bookings.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, utils.NotFoundError("booking")
	}

	res, err := svc.resource(b)
	if err != nil {
		return nil, err
	}
	if err := authz.Decide(actor, authz.ActionView, res); err != nil {
		return nil, err
	}
	return b, nil
}

// ListBookings returns the bookings visible to the actor's role.
func (svc *DefaultBookingService) ListBookings(actor authz.Actor) ([]models.Booking, error) {
	filter := bson.M{}
	switch actor.Role {
	case models.RoleCustomer:
		filter["customerId"] = actor.ID
	case models.RolePropertyManager:
		props, err := svc.Properties.List(bson.M{"propertyManagerId": actor.ID})
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(props))
		for _, p := range props {
			ids = append(ids, p.ID)
		}
		filter["propertyId"] = bson.M{"$in": ids}
	case models.RoleAdmin:
		// Unfiltered.
	default:
		return nil, utils.NotAuthorizedError("not authorized")
	}
	return svc.Bookings.List(filter)
}

// UpdateBooking patches schedule, notes, numberOfProperties and add-on
// flags. Fee fields are always recomputed; a stale client-sent fee never
// survives. If fee inputs changed, the correlated pending payment is
// re-synced; once that payment is paid the change is rejected.
func (svc *DefaultBookingService) UpdateBooking(actor authz.Actor, id string, input models.BookingInput) (*models.Booking, error) {
	b, err := svc.Bookings.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, utils.NotFoundError("booking")
	}

	res, err := svc.resource(b)
	if err != nil {
		return nil, err
	}
	if err := authz.Decide(actor, authz.ActionUpdate, res); err != nil {
		return nil, err
	}
	if b.Status == models.BookingStatusCancelled || b.Status == models.BookingStatusCompleted {
		return nil, utils.InvalidTransitionError(fmt.Sprintf("cannot update a %s booking", b.Status))
	}

	feeInputsChanged := false
	if input.VisitDate != "" {
		b.VisitDate = input.VisitDate
	}
	if input.VisitTime != "" {
		b.VisitTime = input.VisitTime
	}
	if input.Notes != "" {
		b.Notes = input.Notes
	}
	if input.NumberOfProperties > 0 && input.NumberOfProperties != b.NumberOfProperties {
		b.NumberOfProperties = input.NumberOfProperties
		feeInputsChanged = true
	}
	if input.CleaningService != nil && *input.CleaningService != b.CleaningService {
		b.CleaningService = *input.CleaningService
		feeInputsChanged = true
	}
	if input.MovingService != nil && *input.MovingService != b.MovingService {
		b.MovingService = *input.MovingService
		feeInputsChanged = true
	}

	policy, err := svc.policy()
	if err != nil {
		return nil, err
	}
	if err := policy.BookingTotals(b); err != nil {
		return nil, err
	}

	if feeInputsChanged {
		p, err := svc.Payments.FindOne(bson.M{"bookingId": b.ID, "paymentType": models.PaymentTypeViewingFee})
		if err != nil {
			return nil, err
		}
		if p != nil {
			if p.PaymentStatus == models.PaymentStatusPaid {
				return nil, utils.InvalidTransitionError("booking fees cannot change after the viewing fee is paid")
			}
			if err := svc.Payments.UpdateSetDocument(p.ID, bson.M{"totalAmount": b.TotalFee}); err != nil {
				return nil, err
			}
		}
	}

	if err := svc.Bookings.Update(b); err != nil {
		return nil, err
	}
	return b, nil
}

// SetStatus drives the booking status machine.
func (svc *DefaultBookingService) SetStatus(actor authz.Actor, id, newStatus string) (*models.Booking, error) {
	b, err := svc.Bookings.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, utils.NotFoundError("booking")
	}

	res, err := svc.resource(b)
	if err != nil {
		return nil, err
	}

	if actor.Role == models.RoleCustomer {
		if err := authz.Decide(actor, authz.ActionCancel, res); err != nil {
			return nil, err
		}
		if err := ValidateCustomerTarget(actor.Role, newStatus); err != nil {
			return nil, err
		}
	} else {
		action := authz.ActionAdvance
		if newStatus == models.BookingStatusCancelled {
			action = authz.ActionCancel
		}
		if err := authz.Decide(actor, action, res); err != nil {
			return nil, err
		}
	}

	if err := ValidateViewingTransition(b.Status, newStatus); err != nil {
		return nil, err
	}

	if err := svc.Bookings.UpdateSetDocument(b.ID, bson.M{"status": newStatus}); err != nil {
		return nil, err
	}
	b.Status = newStatus

	switch newStatus {
	case models.BookingStatusConfirmed:
		svc.notify(b.CustomerID, "Viewing confirmed",
			fmt.Sprintf("Your viewing on %s at %s is confirmed.", b.VisitDate, b.VisitTime),
			map[string]string{"bookingId": b.ID})
	case models.BookingStatusCompleted:
		svc.notify(b.CustomerID, "Viewing completed",
			"Thanks for viewing with us. We'd love your feedback.",
			map[string]string{"bookingId": b.ID})
	}

	return b, nil
}

func (svc *DefaultBookingService) notify(userID, title, body string, data map[string]string) {
	if svc.Notifier == nil {
		return
	}
	if err := svc.Notifier.NotifyUser(context.Background(), userID, title, body, data); err != nil {
		utils.GetLogger().Warn("booking notification failed", zap.String("userID", userID), zap.Error(err))
	}
}
