package models

import "time"

// MoverCompany is a moving-service provider profile.
type MoverCompany struct {
	ID                 string         `bson:"id" json:"id"`
	CompanyName        string         `bson:"companyName" json:"companyName"`
	RegistrationNumber string         `bson:"registrationNumber" json:"registrationNumber"`
	Email              string         `bson:"email" json:"email"`
	Phone              string         `bson:"phone" json:"phone"`
	ContactPerson      ContactPerson  `bson:"contactPerson" json:"contactPerson"`
	Address            Address        `bson:"address" json:"address"`
	// Move types offered: residential, commercial, office, furniture,
	// fragile_items, long_distance, local.
	ServicesOffered []string       `bson:"servicesOffered" json:"servicesOffered"`
	VehicleTypes    []string       `bson:"vehicleTypes,omitempty" json:"vehicleTypes,omitempty"`
	Pricing         CompanyPricing `bson:"pricing" json:"pricing"` // RatePerUnit is per km
	PlatformCommissionPercentage float64 `bson:"platformCommissionPercentage" json:"platformCommissionPercentage"`
	BankDetails     BankDetails    `bson:"bankDetails,omitempty" json:"bankDetails,omitempty"`
	Documents       map[string]string `bson:"documents,omitempty" json:"documents,omitempty"`
	Rating          Rating         `bson:"rating" json:"rating"`
	IsVerified      bool           `bson:"isVerified" json:"isVerified"`
	IsActive        bool           `bson:"isActive" json:"isActive"`
	CreatedAt       time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// MoverCompanyUpdate is the profile patch body; absent fields are left
// unchanged. IsActive is a pointer so a patch that omits it cannot silently
// deactivate the company.
type MoverCompanyUpdate struct {
	CompanyName     string          `json:"companyName,omitempty"`
	Phone           string          `json:"phone,omitempty"`
	ContactPerson   *ContactPerson  `json:"contactPerson,omitempty"`
	Address         *Address        `json:"address,omitempty"`
	ServicesOffered []string        `json:"servicesOffered,omitempty"`
	VehicleTypes    []string        `json:"vehicleTypes,omitempty"`
	Pricing         *CompanyPricing `json:"pricing,omitempty"`
	BankDetails     *BankDetails    `json:"bankDetails,omitempty"`
	IsActive        *bool           `json:"isActive,omitempty"`
}

// MoveItem is one line of the customer's inventory list.
type MoveItem struct {
	ItemName  string `bson:"itemName" json:"itemName"`
	Quantity  int    `bson:"quantity" json:"quantity"`
	IsFragile bool   `bson:"isFragile,omitempty" json:"isFragile,omitempty"`
}

// ExtraService is a priced add-on a mover offers (packing, assembly, ...).
type ExtraService struct {
	Name  string  `bson:"name" json:"name"`
	Price float64 `bson:"price" json:"price"`
}

// MoverBooking is a moving-service request. ServiceAmount is quoted from the
// company rate card (base + distance * rate per km) plus extra services.
type MoverBooking struct {
	ID         string `bson:"id" json:"id"`
	CompanyID  string `bson:"companyId" json:"companyId"`
	CustomerID string `bson:"customerId" json:"customerId"`

	MovingDate string `bson:"movingDate" json:"movingDate"`
	MovingTime string `bson:"movingTime" json:"movingTime"`

	PickupAddress   Address `bson:"pickupAddress" json:"pickupAddress"`
	DeliveryAddress Address `bson:"deliveryAddress" json:"deliveryAddress"`
	Distance        float64 `bson:"distance" json:"distance"` // km

	MoveType        string         `bson:"moveType" json:"moveType"`
	PropertySize    string         `bson:"propertySize" json:"propertySize"`
	VehicleRequired string         `bson:"vehicleRequired" json:"vehicleRequired"`
	ItemsList       []MoveItem     `bson:"itemsList,omitempty" json:"itemsList,omitempty"`
	ExtraServices   []ExtraService `bson:"extraServices,omitempty" json:"extraServices,omitempty"`

	ServiceAmount float64 `bson:"serviceAmount" json:"serviceAmount"`

	Status        string `bson:"status" json:"status"`
	PaymentStatus string `bson:"paymentStatus" json:"paymentStatus"`
	TransactionID string `bson:"transactionId,omitempty" json:"transactionId,omitempty"`

	SpecialInstructions string    `bson:"specialInstructions,omitempty" json:"specialInstructions,omitempty"`
	Notes               string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt           time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time `bson:"updatedAt" json:"updatedAt"`
}

// MoverBookingInput is the create request body.
type MoverBookingInput struct {
	CompanyID           string         `json:"companyId"`
	MovingDate          string         `json:"movingDate"`
	MovingTime          string         `json:"movingTime"`
	PickupAddress       Address        `json:"pickupAddress"`
	DeliveryAddress     Address        `json:"deliveryAddress"`
	Distance            float64        `json:"distance"`
	MoveType            string         `json:"moveType"`
	PropertySize        string         `json:"propertySize"`
	VehicleRequired     string         `json:"vehicleRequired"`
	ItemsList           []MoveItem     `json:"itemsList,omitempty"`
	ExtraServices       []ExtraService `json:"extraServices,omitempty"`
	SpecialInstructions string         `json:"specialInstructions,omitempty"`
	Notes               string         `json:"notes,omitempty"`
}
