package models

// Coordinates is a plain lat/lng pair. Proximity search is handled elsewhere;
// bookings only carry the point for the provider's reference.
type Coordinates struct {
	Latitude  float64 `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`
}

// Address is the shared postal address shape used by companies and bookings.
type Address struct {
	Street      string       `bson:"street,omitempty" json:"street,omitempty"`
	City        string       `bson:"city" json:"city"`
	State       string       `bson:"state,omitempty" json:"state,omitempty"`
	Country     string       `bson:"country" json:"country"`
	ZipCode     string       `bson:"zipCode,omitempty" json:"zipCode,omitempty"`
	Floor       string       `bson:"floor,omitempty" json:"floor,omitempty"`
	HasElevator bool         `bson:"hasElevator,omitempty" json:"hasElevator,omitempty"`
	Coordinates *Coordinates `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
}

// ContactPerson identifies a company's contact.
type ContactPerson struct {
	Name  string `bson:"name" json:"name"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
}

// BankDetails holds a provider's payout account.
type BankDetails struct {
	BankName      string `bson:"bankName,omitempty" json:"bankName,omitempty"`
	AccountNumber string `bson:"accountNumber,omitempty" json:"accountNumber,omitempty"`
	AccountName   string `bson:"accountName,omitempty" json:"accountName,omitempty"`
	SwiftCode     string `bson:"swiftCode,omitempty" json:"swiftCode,omitempty"`
}

// CompanyPricing is the rate card used to quote a service booking.
// RatePerUnit is per kg for garbage collection and per km for moves.
type CompanyPricing struct {
	BaseRate      float64 `bson:"baseRate" json:"baseRate"`
	RatePerUnit   float64 `bson:"ratePerUnit" json:"ratePerUnit"`
	MinimumCharge float64 `bson:"minimumCharge,omitempty" json:"minimumCharge,omitempty"`
}

// Rating is an aggregate review score.
type Rating struct {
	Average float64 `bson:"average" json:"average"`
	Count   int     `bson:"count" json:"count"`
}
