// Package pricing holds the fee and commission math. Everything here is a
// pure computation over an explicit settings snapshot; no I/O, no shared
// state. Callers load settings once per request and pass them in.
package pricing

import (
	"fmt"
	"math"

	"nyumbani/models"
	"nyumbani/utils"
)

// Policy computes fees under one settings snapshot.
type Policy struct {
	settings models.PricingSettings
}

// NewPolicy returns a policy bound to the given settings snapshot.
func NewPolicy(settings models.PricingSettings) Policy {
	return Policy{settings: settings}
}

// RoundCents rounds an amount to the smallest currency unit.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// ViewingFee computes the fee for viewing n properties. The base fee covers
// the first `threshold` properties; extras are charged per the configured
// strategy: per_property (flat fee per extra) or per_block (flat fee per
// started block of `threshold` extras).
func (p Policy) ViewingFee(numberOfProperties int) (float64, error) {
	if numberOfProperties < 1 {
		return 0, utils.InvalidArgumentError("numberOfProperties must be at least 1")
	}

	s := p.settings
	threshold := s.ViewingFeeThreshold
	if threshold < 1 {
		threshold = 1
	}

	if numberOfProperties <= threshold {
		return s.ViewingFeeBase, nil
	}

	additional := numberOfProperties - threshold
	switch s.ViewingFeeStrategy {
	case models.ViewingFeePerProperty:
		return s.ViewingFeeBase + float64(additional)*s.ViewingFeeAdditional, nil
	case models.ViewingFeePerBlock, "":
		blocks := math.Ceil(float64(additional) / float64(threshold))
		return s.ViewingFeeBase + blocks*s.ViewingFeeAdditional, nil
	default:
		return 0, utils.InvalidArgumentError(fmt.Sprintf("unknown viewing fee strategy %q", s.ViewingFeeStrategy))
	}
}

// BookingTotals recomputes a booking's derived fee fields in place. Add-on
// flat fees are accepted input; the viewing fee and total never are.
func (p Policy) BookingTotals(b *models.Booking) error {
	if b.CleaningService.Fee < 0 || b.MovingService.Fee < 0 {
		return utils.InvalidArgumentError("add-on fees must not be negative")
	}

	fee, err := p.ViewingFee(b.NumberOfProperties)
	if err != nil {
		return err
	}

	b.ViewingFee = fee
	b.TotalFee = fee
	if b.CleaningService.Required && b.CleaningService.Fee > 0 {
		b.TotalFee += b.CleaningService.Fee
	}
	if b.MovingService.Required && b.MovingService.Fee > 0 {
		b.TotalFee += b.MovingService.Fee
	}
	return nil
}

// ServiceAmount quotes a service from a company rate card:
// baseRate + quantity*ratePerUnit, floored at minimumCharge when set.
func ServiceAmount(baseRate, quantity, ratePerUnit, minimumCharge float64) (float64, error) {
	if baseRate < 0 || ratePerUnit < 0 || minimumCharge < 0 {
		return 0, utils.InvalidArgumentError("rates must not be negative")
	}
	if quantity < 0 {
		return 0, utils.InvalidArgumentError("quantity must not be negative")
	}

	amount := baseRate + quantity*ratePerUnit
	if minimumCharge > 0 && amount < minimumCharge {
		amount = minimumCharge
	}
	return RoundCents(amount), nil
}

// CommissionSplit is the outcome of dividing a payment between the platform
// and the provider. CommissionAmount + ProviderEarnings always equals the
// total exactly: the commission is rounded to cents and the earnings are the
// remainder.
type CommissionSplit struct {
	CommissionAmount float64
	ProviderEarnings float64
}

// SplitCommission divides totalAmount per the commission percentage.
func SplitCommission(totalAmount, percentage float64) (CommissionSplit, error) {
	if totalAmount < 0 {
		return CommissionSplit{}, utils.InvalidArgumentError("totalAmount must not be negative")
	}
	if percentage < 0 || percentage > 100 {
		return CommissionSplit{}, utils.InvalidArgumentError("percentage must be between 0 and 100")
	}

	commission := RoundCents(totalAmount * percentage / 100)
	return CommissionSplit{
		CommissionAmount: commission,
		ProviderEarnings: RoundCents(totalAmount - commission),
	}, nil
}

// DownPaymentSplit is the upfront/remainder division of a sale payment.
// DownPaymentAmount + RemainingAmount always equals the total exactly.
type DownPaymentSplit struct {
	DownPaymentAmount float64
	RemainingAmount   float64
}

// SplitDownPayment divides totalAmount per the down-payment percentage.
func SplitDownPayment(totalAmount, percentage float64) (DownPaymentSplit, error) {
	if totalAmount < 0 {
		return DownPaymentSplit{}, utils.InvalidArgumentError("totalAmount must not be negative")
	}
	if percentage < 0 || percentage > 100 {
		return DownPaymentSplit{}, utils.InvalidArgumentError("percentage must be between 0 and 100")
	}

	down := RoundCents(totalAmount * percentage / 100)
	return DownPaymentSplit{
		DownPaymentAmount: down,
		RemainingAmount:   RoundCents(totalAmount - down),
	}, nil
}
