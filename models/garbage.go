package models

import "time"

// Service-booking statuses (garbage collection and moves). These add an
// in_progress step between confirmed and completed.
const (
	ServiceStatusPending    string = "pending"
	ServiceStatusConfirmed  string = "confirmed"
	ServiceStatusInProgress string = "in_progress"
	ServiceStatusCompleted  string = "completed"
	ServiceStatusCancelled  string = "cancelled"
)

// Waste types a garbage company may handle.
var WasteTypes = []string{"household", "commercial", "recyclable", "hazardous", "construction"}

// GarbageCompany is a garbage-collection provider profile. Pricing feeds the
// quote for a booking; the profile itself is never mutated by fee math.
type GarbageCompany struct {
	ID                 string          `bson:"id" json:"id"`
	CompanyName        string          `bson:"companyName" json:"companyName"`
	RegistrationNumber string          `bson:"registrationNumber" json:"registrationNumber"`
	Email              string          `bson:"email" json:"email"`
	Phone              string          `bson:"phone" json:"phone"`
	ContactPerson      ContactPerson   `bson:"contactPerson" json:"contactPerson"`
	Address            Address         `bson:"address" json:"address"`
	ServicesOffered    []string        `bson:"servicesOffered" json:"servicesOffered"`
	Pricing            CompanyPricing  `bson:"pricing" json:"pricing"`
	PlatformCommissionPercentage float64 `bson:"platformCommissionPercentage" json:"platformCommissionPercentage"`
	BankDetails        BankDetails     `bson:"bankDetails,omitempty" json:"bankDetails,omitempty"`
	// Cloudinary public IDs for licence / insurance / tax documents.
	Documents  map[string]string `bson:"documents,omitempty" json:"documents,omitempty"`
	Rating     Rating            `bson:"rating" json:"rating"`
	IsVerified bool              `bson:"isVerified" json:"isVerified"`
	IsActive   bool              `bson:"isActive" json:"isActive"`
	CreatedAt  time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// GarbageCompanyUpdate is the profile patch body; absent fields are left
// unchanged. IsActive is a pointer so a patch that omits it cannot silently
// deactivate the company.
type GarbageCompanyUpdate struct {
	CompanyName     string          `json:"companyName,omitempty"`
	Phone           string          `json:"phone,omitempty"`
	ContactPerson   *ContactPerson  `json:"contactPerson,omitempty"`
	Address         *Address        `json:"address,omitempty"`
	ServicesOffered []string        `json:"servicesOffered,omitempty"`
	Pricing         *CompanyPricing `json:"pricing,omitempty"`
	BankDetails     *BankDetails    `json:"bankDetails,omitempty"`
	IsActive        *bool           `json:"isActive,omitempty"`
}

// GarbageBooking is a waste-collection request. ServiceAmount is quoted from
// the company rate card at creation; the revenue split lives on the payment.
type GarbageBooking struct {
	ID         string `bson:"id" json:"id"`
	CompanyID  string `bson:"companyId" json:"companyId"`
	CustomerID string `bson:"customerId" json:"customerId"`

	ServiceDate    string  `bson:"serviceDate" json:"serviceDate"`
	ServiceTime    string  `bson:"serviceTime" json:"serviceTime"`
	ServiceAddress Address `bson:"serviceAddress" json:"serviceAddress"`

	WasteType       string  `bson:"wasteType" json:"wasteType"`
	EstimatedWeight float64 `bson:"estimatedWeight" json:"estimatedWeight"` // kg
	ServiceAmount   float64 `bson:"serviceAmount" json:"serviceAmount"`

	Status        string `bson:"status" json:"status"`
	PaymentStatus string `bson:"paymentStatus" json:"paymentStatus"`
	TransactionID string `bson:"transactionId,omitempty" json:"transactionId,omitempty"`

	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// GarbageBookingInput is the create request body.
type GarbageBookingInput struct {
	CompanyID       string  `json:"companyId"`
	ServiceDate     string  `json:"serviceDate"`
	ServiceTime     string  `json:"serviceTime"`
	ServiceAddress  Address `json:"serviceAddress"`
	WasteType       string  `json:"wasteType"`
	EstimatedWeight float64 `json:"estimatedWeight"`
	Notes           string  `json:"notes,omitempty"`
}
