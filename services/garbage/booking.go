package garbage

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

// CreateBooking quotes a collection from the company rate card, creates the
// booking and its correlated revenue-split payment.
func (svc *DefaultGarbageService) CreateBooking(actor authz.Actor, input models.GarbageBookingInput) (*models.GarbageBooking, *models.Payment, error) {
	if input.CompanyID == "" || input.ServiceDate == "" || input.ServiceTime == "" {
		return nil, nil, utils.InvalidArgumentError("companyId, serviceDate and serviceTime are required")
	}
	if err := validWasteTypes([]string{input.WasteType}); err != nil {
		return nil, nil, err
	}
	if input.EstimatedWeight < 0 {
		return nil, nil, utils.InvalidArgumentError("estimatedWeight must not be negative")
	}

	company, err := svc.Companies.GetByID(input.CompanyID)
	if err != nil {
		return nil, nil, err
	}
	if company == nil {
		return nil, nil, utils.NotFoundError("garbage company")
	}
	if !company.IsVerified || !company.IsActive {
		return nil, nil, utils.InvalidArgumentError("company is not accepting bookings")
	}

	amount, err := pricing.ServiceAmount(
		company.Pricing.BaseRate,
		input.EstimatedWeight,
		company.Pricing.RatePerUnit,
		company.Pricing.MinimumCharge,
	)
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

	b := &models.GarbageBooking{
		ID:              uuid.New().String(),
		CompanyID:       company.ID,
		CustomerID:      actor.ID,
		ServiceDate:     input.ServiceDate,
		ServiceTime:     input.ServiceTime,
		ServiceAddress:  input.ServiceAddress,
		WasteType:       input.WasteType,
		EstimatedWeight: input.EstimatedWeight,
		ServiceAmount:   amount,
		Status:          models.ServiceStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
		Notes:           input.Notes,
	}
	if err := svc.Bookings.Create(b); err != nil {
		return nil, nil, err
	}

	p := &models.Payment{
		ID:               uuid.New().String(),
		PaymentType:      models.PaymentTypeGarbage,
		GarbageBookingID: b.ID,
		CompanyID:        company.ID,
		CustomerID:       actor.ID,
		TotalAmount:      amount,
		PlatformCommission: &models.PlatformCommission{
			Percentage: pct,
			Amount:     split.CommissionAmount,
		},
		CompanyEarnings: split.ProviderEarnings,
		PaymentStatus:   models.PaymentStatusPending,
		PaymentMethod:   models.PaymentMethodCard,
	}
	if err := svc.Payments.Create(p); err != nil {
		return nil, nil, fmt.Errorf("garbage booking %s created but payment record failed: %w", b.ID, err)
	}

	svc.notify(b.CustomerID, "Collection booked",
		fmt.Sprintf("%s will collect on %s. Amount due: %.2f", company.CompanyName, b.ServiceDate, amount),
		map[string]string{"garbageBookingId": b.ID, "paymentId": p.ID})

	return b, p, nil
}

// GetBooking fetches a booking the actor may see.
func (svc *DefaultGarbageService) GetBooking(actor authz.Actor, id string) (*models.GarbageBooking, error) {
	b, err := svc.Bookings.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, utils.NotFoundError("garbage booking")
	}
	res := authz.Resource{OwnerID: b.CustomerID, ProviderID: b.CompanyID}
	if err := authz.Decide(actor, authz.ActionView, res); err != nil {
		return nil, err
	}
	return b, nil
}

// ListBookings returns the bookings visible to the actor's role.
func (svc *DefaultGarbageService) ListBookings(actor authz.Actor) ([]models.GarbageBooking, error) {
	filter := bson.M{}
	switch actor.Role {
	case models.RoleCustomer:
		filter["customerId"] = actor.ID
	case models.RoleGarbageCompany:
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

// SetBookingStatus drives the service status machine
// (pending, confirmed, in_progress, completed, cancelled).
func (svc *DefaultGarbageService) SetBookingStatus(actor authz.Actor, id, newStatus string) (*models.GarbageBooking, error) {
	b, err := svc.Bookings.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, utils.NotFoundError("garbage booking")
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
		svc.notify(b.CustomerID, "Collection "+newStatus,
			fmt.Sprintf("Your collection on %s is now %s.", b.ServiceDate, newStatus),
			map[string]string{"garbageBookingId": b.ID})
	}
	return b, nil
}

func (svc *DefaultGarbageService) notify(userID, title, body string, data map[string]string) {
	if svc.Notifier == nil {
		return
	}
	if err := svc.Notifier.NotifyUser(context.Background(), userID, title, body, data); err != nil {
		utils.GetLogger().Warn("garbage notification failed", zap.String("userID", userID), zap.Error(err))
	}
}
