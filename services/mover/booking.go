package mover

import (
	"context"
	"fmt"

	"nyumbani/models"
	"nyumbani/services/authz"
	bookingsvc "nyumbani/services/booking"
	"nyumbani/services/pricing"
	"nyumbani/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// quote computes the service amount: base + distance * per-km rate, floored
// at the minimum charge, plus the flat extra services on top.
func quote(p models.CompanyPricing, distance float64, extras []models.ExtraService) (float64, error) {
	amount, err := pricing.ServiceAmount(p.BaseRate, distance, p.RatePerUnit, p.MinimumCharge)
	if err != nil {
		return 0, err
	}
	for _, extra := range extras {
		if extra.Price < 0 {
			return 0, utils.InvalidArgumentError("extra service prices must not be negative")
		}
		amount += extra.Price
	}
	return pricing.RoundCents(amount), nil
}

// CreateBooking quotes a move from the company rate card, creates the
// booking and its correlated revenue-split payment.
func (svc *DefaultMoverService) CreateBooking(actor authz.Actor, input models.MoverBookingInput) (*models.MoverBooking, *models.Payment, error) {
	if input.CompanyID == "" || input.MovingDate == "" || input.MovingTime == "" {
		return nil, nil, utils.InvalidArgumentError("companyId, movingDate and movingTime are required")
	}
	if input.MoveType != "" {
		if err := validMoveTypes([]string{input.MoveType}); err != nil {
			return nil, nil, err
		}
	}
	if input.Distance < 0 {
		return nil, nil, utils.InvalidArgumentError("distance must not be negative")
	}

	company, err := svc.Companies.GetByID(input.CompanyID)
	if err != nil {
		return nil, nil, err
	}
	if company == nil {
		return nil, nil, utils.NotFoundError("mover company")
	}
	if !company.IsVerified || !company.IsActive {
		return nil, nil, utils.InvalidArgumentError("company is not accepting bookings")
	}

	amount, err := quote(company.Pricing, input.Distance, input.ExtraServices)
	if err != nil {
		return nil, nil, err
	}

	pct := company.PlatformCommissionPercentage
	if pct == 0 {
		snapshot, err := svc.Settings.PricingSnapshot()
		if err != nil {
			return nil, nil, err
		}
		pct = snapshot.DefaultCommissionPercentage
	}
	split, err := pricing.SplitCommission(amount, pct)
	if err != nil {
		return nil, nil, err
	}

	b := &models.MoverBooking{
		ID:                  uuid.New().String(),
		CompanyID:           company.ID,
		CustomerID:          actor.ID,
		MovingDate:          input.MovingDate,
		MovingTime:          input.MovingTime,
		PickupAddress:       input.PickupAddress,
		DeliveryAddress:     input.DeliveryAddress,
		Distance:            input.Distance,
		MoveType:            input.MoveType,
		PropertySize:        input.PropertySize,
		VehicleRequired:     input.VehicleRequired,
		ItemsList:           input.ItemsList,
		ExtraServices:       input.ExtraServices,
		ServiceAmount:       amount,
		Status:              models.ServiceStatusPending,
		PaymentStatus:       models.PaymentStatusPending,
		SpecialInstructions: input.SpecialInstructions,
		Notes:               input.Notes,
	}
	if err := svc.Bookings.Create(b); err != nil {
		return nil, nil, err
	}

	p := &models.Payment{
		ID:             uuid.New().String(),
		PaymentType:    models.PaymentTypeMovingService,
		MoverBookingID: b.ID,
		CompanyID:      company.ID,
		CustomerID:     actor.ID,
		TotalAmount:    amount,
		PlatformCommission: &models.PlatformCommission{
			Percentage: pct,
			Amount:     split.CommissionAmount,
		},
		CompanyEarnings: split.ProviderEarnings,
		PaymentStatus:   models.PaymentStatusPending,
		PaymentMethod:   models.PaymentMethodCard,
	}
	if err := svc.Payments.Create(p); err != nil {
		return nil, nil, fmt.Errorf("mover booking %s created but payment record failed: %w", b.ID, err)
	}

	svc.notify(b.CustomerID, "Move booked",
		fmt.Sprintf("%s will handle your move on %s. Amount due: %.2f", company.CompanyName, b.MovingDate, amount),
		map[string]string{"moverBookingId": b.ID, "paymentId": p.ID})

	return b, p, nil
}

// GetBooking fetches a booking the actor may see.
func (svc *DefaultMoverService) GetBooking(actor authz.Actor, id string) (*models.MoverBooking, error) {
	b, err := svc.Bookings.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, utils.NotFoundError("mover booking")
	}
	res := authz.Resource{OwnerID: b.CustomerID, ProviderID: b.CompanyID}
	if err := authz.Decide(actor, authz.ActionView, res); err != nil {
		return nil, err
	}
	return b, nil
}

// ListBookings returns the bookings visible to the actor's role.
func (svc *DefaultMoverService) ListBookings(actor authz.Actor) ([]models.MoverBooking, error) {
	filter := bson.M{}
	switch actor.Role {
	case models.RoleCustomer:
		filter["customerId"] = actor.ID
	case models.RoleMoverCompany:
		if actor.ProfileID == "" {
			return nil, utils.NotAuthorizedError("account has no company profile")
		}
		filter["companyId"] = actor.ProfileID
	case models.RoleAdmin:
	default:
		return nil, utils.NotAuthorizedError("not authorized")
	}
	return svc.Bookings.List(filter)
}

// SetBookingStatus drives the service status machine.
func (svc *DefaultMoverService) SetBookingStatus(actor authz.Actor, id, newStatus string) (*models.MoverBooking, error) {
	b, err := svc.Bookings.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, utils.NotFoundError("mover booking")
	}

	res := authz.Resource{OwnerID: b.CustomerID, ProviderID: b.CompanyID}
	if actor.Role == models.RoleCustomer {
		if err := authz.Decide(actor, authz.ActionCancel, res); err != nil {
			return nil, err
		}
		if err := bookingsvc.ValidateCustomerTarget(actor.Role, newStatus); err != nil {
			return nil, err
		}
	} else {
		action := authz.ActionAdvance
		if newStatus == models.ServiceStatusCancelled {
			action = authz.ActionCancel
		}
		if err := authz.Decide(actor, action, res); err != nil {
			return nil, err
		}
	}

	if err := bookingsvc.ValidateServiceTransition(b.Status, newStatus); err != nil {
		return nil, err
	}

	if err := svc.Bookings.UpdateSetDocument(b.ID, bson.M{"status": newStatus}); err != nil {
		return nil, err
	}
	b.Status = newStatus

	if newStatus == models.ServiceStatusConfirmed || newStatus == models.ServiceStatusCompleted {
		svc.notify(b.CustomerID, "Move "+newStatus,
			fmt.Sprintf("Your move on %s is now %s.", b.MovingDate, newStatus),
			map[string]string{"moverBookingId": b.ID})
	}
	return b, nil
}

func (svc *DefaultMoverService) notify(userID, title, body string, data map[string]string) {
	if svc.Notifier == nil {
		return
	}
	if err := svc.Notifier.NotifyUser(context.Background(), userID, title, body, data); err != nil {
		utils.GetLogger().Warn("mover notification failed", zap.String("userID", userID), zap.Error(err))
	}
}
