package payment

import (
	"fmt"
	"time"

	"nyumbani/models"
	"nyumbani/services/authz"
	"nyumbani/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// PayCommission settles the provider's share of a revenue-split payment
// after the service is completed. The settled flag lives on the payment
// record and nowhere else, so settling twice is impossible.
//
// Preconditions, checked in order: the payment exists and is a revenue-split
// type, the customer has paid, the underlying service is completed, and the
// commission has not already been settled.
func (svc *DefaultPaymentService) PayCommission(actor authz.Actor, paymentID string) (*models.Payment, error) {
	if err := authz.Decide(actor, authz.ActionSettleCommission, authz.Resource{}); err != nil {
		return nil, err
	}

	p, err := svc.Payments.GetByID(paymentID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, utils.NotFoundError("payment")
	}

	if p.PaymentType != models.PaymentTypeGarbage && p.PaymentType != models.PaymentTypeMovingService {
		return nil, utils.InvalidArgumentError(fmt.Sprintf("%s payments carry no provider commission", p.PaymentType))
	}

	if p.PaymentStatus != models.PaymentStatusPaid {
		return nil, utils.NewServiceError(utils.CodePrematurePayment,
			"customer payment has not been received")
	}

	completed, err := svc.serviceCompleted(p)
	if err != nil {
		return nil, err
	}
	if !completed {
		return nil, utils.NewServiceError(utils.CodeServiceNotCompleted,
			"service must be completed before settling the commission")
	}

	if p.CommissionPaidToCompany {
		return nil, utils.NewServiceError(utils.CodeAlreadySettled,
			"commission has already been paid to the company")
	}

	now := time.Now()
	if err := svc.Payments.UpdateSetDocument(p.ID, bson.M{
		"commissionPaidToCompany": true,
		"commissionPaidAt":        now,
	}); err != nil {
		return nil, err
	}
	p.CommissionPaidToCompany = true
	p.CommissionPaidAt = &now
	return p, nil
}

func (svc *DefaultPaymentService) serviceCompleted(p *models.Payment) (bool, error) {
	switch p.PaymentType {
	case models.PaymentTypeGarbage:
		b, err := svc.GarbageBookings.GetByID(p.GarbageBookingID)
		if err != nil {
			return false, err
		}
		if b == nil {
			return false, utils.NotFoundError("garbage booking")
		}
		return b.Status == models.ServiceStatusCompleted, nil
	case models.PaymentTypeMovingService:
		b, err := svc.MoverBookings.GetByID(p.MoverBookingID)
		if err != nil {
			return false, err
		}
		if b == nil {
			return false, utils.NotFoundError("mover booking")
		}
		return b.Status == models.ServiceStatusCompleted, nil
	}
	return false, nil
}
