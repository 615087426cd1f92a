package models

import "time"

// Viewing booking statuses. Cancelled and completed are terminal.
const (
	BookingStatusPending   string = "pending"
	BookingStatusConfirmed string = "confirmed"
	BookingStatusCancelled string = "cancelled"
	BookingStatusCompleted string = "completed"
)

// AddOnService is an optional flat-fee extra attached to a viewing booking
// (cleaning after viewing, moving assistance). The flat fee is client input;
// the derived totals never are.
type AddOnService struct {
	Required bool    `bson:"required" json:"required"`
	Fee      float64 `bson:"fee" json:"fee"`
	Notes    string  `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Booking is a property-viewing appointment. ViewingFee and TotalFee are
// derived from NumberOfProperties and the add-on flags by the pricing policy
// immediately before every persist; values supplied by clients are discarded.
type Booking struct {
	ID         string `bson:"id" json:"id"`
	PropertyID string `bson:"propertyId" json:"propertyId"`
	CustomerID string `bson:"customerId" json:"customerId"`

	VisitDate string `bson:"visitDate" json:"visitDate"` // "YYYY-MM-DD"
	VisitTime string `bson:"visitTime" json:"visitTime"` // "HH:MM"

	NumberOfProperties int          `bson:"numberOfProperties" json:"numberOfProperties"`
	ViewingFee         float64      `bson:"viewingFee" json:"viewingFee"`
	CleaningService    AddOnService `bson:"cleaningService" json:"cleaningService"`
	MovingService      AddOnService `bson:"movingService" json:"movingService"`
	TotalFee           float64      `bson:"totalFee" json:"totalFee"`

	Status    string    `bson:"status" json:"status"`
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// BookingInput is the create/update request body for a viewing booking.
type BookingInput struct {
	PropertyID         string        `json:"propertyId"`
	VisitDate          string        `json:"visitDate"`
	VisitTime          string        `json:"visitTime"`
	NumberOfProperties int           `json:"numberOfProperties"`
	CleaningService    *AddOnService `json:"cleaningService,omitempty"`
	MovingService      *AddOnService `json:"movingService,omitempty"`
	Notes              string        `json:"notes,omitempty"`
}
