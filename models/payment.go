package models

import "time"

// Payment types.
const (
	PaymentTypeViewingFee    string = "viewing_fee"
	PaymentTypeGarbage       string = "garbage_collection"
	PaymentTypeMovingService string = "moving_service"
	PaymentTypePropertySale  string = "property_sale"
)

// Payment statuses. Paid may move to refunded; failed is terminal.
const (
	PaymentStatusPending  string = "pending"
	PaymentStatusPaid     string = "paid"
	PaymentStatusFailed   string = "failed"
	PaymentStatusRefunded string = "refunded"
)

// Payment methods.
const (
	PaymentMethodCard         string = "card"
	PaymentMethodBankTransfer string = "bank_transfer"
	PaymentMethodMobileMoney  string = "mobile_money"
	PaymentMethodCash         string = "cash"
)

// PlatformCommission is the marketplace's share of a revenue-split payment.
// Amount is derived from TotalAmount and Percentage at write time.
type PlatformCommission struct {
	Percentage float64 `bson:"percentage" json:"percentage"`
	Amount     float64 `bson:"amount" json:"amount"`
}

// ManagerCommission is the optional property-manager cut on a sale payment.
type ManagerCommission struct {
	Enabled    bool       `bson:"enabled" json:"enabled"`
	Percentage float64    `bson:"percentage" json:"percentage"`
	Amount     float64    `bson:"amount" json:"amount"`
	Status     string     `bson:"status" json:"status"` // pending, paid, failed
	PaidAt     *time.Time `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
}

// Payment is one monetary obligation correlated 1:1 (per fee type) with a
// booking. Derived fields (commission amount, company earnings, down-payment
// split) are recomputed from TotalAmount and the percentages by the pricing
// policy before every persist. The commission-paid flag lives here and only
// here; booking reads go through the payment record.
type Payment struct {
	ID          string `bson:"id" json:"id"`
	PaymentType string `bson:"paymentType" json:"paymentType"`

	// Correlation references; which ones are set depends on PaymentType.
	BookingID        string `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	GarbageBookingID string `bson:"garbageBookingId,omitempty" json:"garbageBookingId,omitempty"`
	MoverBookingID   string `bson:"moverBookingId,omitempty" json:"moverBookingId,omitempty"`
	PropertyID       string `bson:"propertyId,omitempty" json:"propertyId,omitempty"`
	CompanyID        string `bson:"companyId,omitempty" json:"companyId,omitempty"`

	CustomerID        string `bson:"customerId" json:"customerId"`
	PropertyManagerID string `bson:"propertyManagerId,omitempty" json:"propertyManagerId,omitempty"`

	TotalAmount float64 `bson:"totalAmount" json:"totalAmount"`

	// Revenue-split types (garbage_collection, moving_service).
	PlatformCommission *PlatformCommission `bson:"platformCommission,omitempty" json:"platformCommission,omitempty"`
	CompanyEarnings    float64             `bson:"companyEarnings,omitempty" json:"companyEarnings,omitempty"`

	// Property-sale shape.
	DownPaymentPercentage float64            `bson:"downPaymentPercentage,omitempty" json:"downPaymentPercentage,omitempty"`
	DownPaymentAmount     float64            `bson:"downPaymentAmount,omitempty" json:"downPaymentAmount,omitempty"`
	RemainingAmount       float64            `bson:"remainingAmount,omitempty" json:"remainingAmount,omitempty"`
	ManagerCommission     *ManagerCommission `bson:"managerCommission,omitempty" json:"managerCommission,omitempty"`

	PaymentStatus string     `bson:"paymentStatus" json:"paymentStatus"`
	PaymentMethod string     `bson:"paymentMethod" json:"paymentMethod"`
	TransactionID string     `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	PaidAt        *time.Time `bson:"paidAt,omitempty" json:"paidAt,omitempty"`

	// Settlement (admin-triggered, post-completion).
	CommissionPaidToCompany bool       `bson:"commissionPaidToCompany" json:"commissionPaidToCompany"`
	CommissionPaidAt        *time.Time `bson:"commissionPaidAt,omitempty" json:"commissionPaidAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ProcessPaymentInput is the request body for the process-payment action.
type ProcessPaymentInput struct {
	TransactionID string `json:"transactionId,omitempty"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
}
