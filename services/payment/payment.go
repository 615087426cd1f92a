package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	paymentRepo "nyumbani/database/repository/payment"
	"nyumbani/models"
	"nyumbani/services/authz"
	"nyumbani/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

var validMethods = map[string]bool{
	models.PaymentMethodCard:         true,
	models.PaymentMethodBankTransfer: true,
	models.PaymentMethodMobileMoney:  true,
	models.PaymentMethodCash:         true,
}

// ProcessPayment charges a pending payment and, in the same write, flips the
// correlated booking forward. Paying twice is rejected; failed and refunded
// payments stay where they are.
func (svc *DefaultPaymentService) ProcessPayment(actor authz.Actor, paymentID string, input models.ProcessPaymentInput) (*models.Payment, error) {
	p, err := svc.Payments.GetByID(paymentID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, utils.NotFoundError("payment")
	}

	if err := authz.Decide(actor, authz.ActionProcessPayment, authz.Resource{OwnerID: p.CustomerID}); err != nil {
		return nil, err
	}

	switch p.PaymentStatus {
	case models.PaymentStatusPending:
	case models.PaymentStatusPaid:
		return nil, utils.NewServiceError(utils.CodeAlreadyPaid, "payment has already been processed")
	default:
		return nil, utils.InvalidTransitionError(fmt.Sprintf("cannot process a %s payment", p.PaymentStatus))
	}

	method := p.PaymentMethod
	if input.PaymentMethod != "" {
		if !validMethods[input.PaymentMethod] {
			return nil, utils.InvalidArgumentError(fmt.Sprintf("unknown payment method %q", input.PaymentMethod))
		}
		method = input.PaymentMethod
	}

	txnID := input.TransactionID
	if txnID == "" && svc.Gateway != nil {
		txnID, err = svc.Gateway.Charge(p.TotalAmount, "kes", method,
			fmt.Sprintf("%s payment %s", p.PaymentType, p.ID))
		if err != nil {
			if ferr := svc.Payments.UpdateSetDocument(p.ID, bson.M{"paymentStatus": models.PaymentStatusFailed}); ferr != nil {
				utils.GetLogger().Error("failed to mark payment failed",
					zap.String("paymentID", p.ID), zap.Error(ferr))
			}
			return nil, fmt.Errorf("charge failed for payment %s: %w", p.ID, err)
		}
	}
	if txnID == "" {
		txnID = "TXN-" + uuid.New().String()
	}

	now := time.Now()
	paymentSet := bson.M{
		"paymentStatus": models.PaymentStatusPaid,
		"paymentMethod": method,
		"transactionId": txnID,
		"paidAt":        now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = svc.Payments.UpdateWithSideEffect(ctx, p.ID, paymentSet, svc.sideWrite(p, txnID))
	if errors.Is(err, paymentRepo.ErrSideEffectLost) {
		utils.GetLogger().Warn("payment recorded but booking update lost; queueing repair",
			zap.String("paymentID", p.ID), zap.Error(err))
		if svc.Reconciler != nil {
			if qerr := svc.Reconciler.EnqueueReconcile(p.ID); qerr != nil {
				utils.GetLogger().Error("failed to queue payment reconciliation",
					zap.String("paymentID", p.ID), zap.Error(qerr))
			}
		}
	} else if err != nil {
		return nil, err
	}

	p.PaymentStatus = models.PaymentStatusPaid
	p.PaymentMethod = method
	p.TransactionID = txnID
	p.PaidAt = &now

	svc.notify(p.CustomerID, "Payment received",
		fmt.Sprintf("We received your payment of %.2f. Reference: %s", p.TotalAmount, txnID),
		map[string]string{"paymentId": p.ID})

	return p, nil
}

// sideWrite builds the booking update paired with marking the payment paid:
// a pending viewing booking becomes confirmed; service bookings additionally
// mirror the payment status and transaction reference.
func (svc *DefaultPaymentService) sideWrite(p *models.Payment, txnID string) *paymentRepo.SideWrite {
	switch p.PaymentType {
	case models.PaymentTypeViewingFee:
		return &paymentRepo.SideWrite{
			Collection: "bookings",
			Filter:     bson.M{"id": p.BookingID, "status": models.BookingStatusPending},
			Update: bson.M{"$set": bson.M{
				"status":    models.BookingStatusConfirmed,
				"updatedAt": time.Now(),
			}},
		}
	case models.PaymentTypeGarbage:
		return &paymentRepo.SideWrite{
			Collection: "garbage_bookings",
			Filter:     bson.M{"id": p.GarbageBookingID},
			Update: bson.M{"$set": bson.M{
				"paymentStatus": models.PaymentStatusPaid,
				"transactionId": txnID,
				"updatedAt":     time.Now(),
			}},
		}
	case models.PaymentTypeMovingService:
		return &paymentRepo.SideWrite{
			Collection: "mover_bookings",
			Filter:     bson.M{"id": p.MoverBookingID},
			Update: bson.M{"$set": bson.M{
				"paymentStatus": models.PaymentStatusPaid,
				"transactionId": txnID,
				"updatedAt":     time.Now(),
			}},
		}
	default:
		return nil
	}
}

// GetPayment fetches a payment the actor may see.
func (svc *DefaultPaymentService) GetPayment(actor authz.Actor, id string) (*models.Payment, error) {
	p, err := svc.Payments.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, utils.NotFoundError("payment")
	}

	res := authz.Resource{OwnerID: p.CustomerID, ProviderID: p.CompanyID}
	if p.PaymentType == models.PaymentTypeViewingFee {
		res.ProviderID = p.PropertyManagerID
	}
	if err := authz.Decide(actor, authz.ActionView, res); err != nil {
		return nil, err
	}
	return p, nil
}

// ListPayments returns the payments visible to the actor's role.
func (svc *DefaultPaymentService) ListPayments(actor authz.Actor) ([]models.Payment, error) {
	filter := bson.M{}
	switch actor.Role {
	case models.RoleCustomer:
		filter["customerId"] = actor.ID
	case models.RolePropertyManager:
		filter["propertyManagerId"] = actor.ID
	case models.RoleGarbageCompany, models.RoleMoverCompany:
		if actor.ProfileID == "" {
			return nil, utils.NotAuthorizedError("account has no company profile")
		}
		filter["companyId"] = actor.ProfileID
	case models.RoleAdmin:
	default:
		return nil, utils.NotAuthorizedError("not authorized")
	}
	return svc.Payments.List(filter)
}

// RefundPayment moves a paid payment to refunded. Admin only; settled
// commissions are not clawed back here.
func (svc *DefaultPaymentService) RefundPayment(actor authz.Actor, id string) (*models.Payment, error) {
	if actor.Role != models.RoleAdmin {
		return nil, utils.NotAuthorizedError("only admins can refund payments")
	}

	p, err := svc.Payments.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, utils.NotFoundError("payment")
	}
	if p.PaymentStatus != models.PaymentStatusPaid {
		return nil, utils.InvalidTransitionError(fmt.Sprintf("cannot refund a %s payment", p.PaymentStatus))
	}
	if p.CommissionPaidToCompany {
		return nil, utils.InvalidTransitionError("cannot refund a payment whose commission is already settled")
	}

	if err := svc.Payments.UpdateSetDocument(p.ID, bson.M{"paymentStatus": models.PaymentStatusRefunded}); err != nil {
		return nil, err
	}
	p.PaymentStatus = models.PaymentStatusRefunded

	svc.notify(p.CustomerID, "Payment refunded",
		fmt.Sprintf("Your payment of %.2f has been refunded.", p.TotalAmount),
		map[string]string{"paymentId": p.ID})

	return p, nil
}

func (svc *DefaultPaymentService) notify(userID, title, body string, data map[string]string) {
	if svc.Notifier == nil {
		return
	}
	if err := svc.Notifier.NotifyUser(context.Background(), userID, title, body, data); err != nil {
		utils.GetLogger().Warn("payment notification failed", zap.String("userID", userID), zap.Error(err))
	}
}
