package models

import "time"

// Property is a listing owned by a property manager. Viewing bookings
// reference a property; the listing itself is plain CRUD data.
type Property struct {
	ID                string   `bson:"id" json:"id"`
	PropertyManagerID string   `bson:"propertyManagerId" json:"propertyManagerId"`
	Title             string   `bson:"title" json:"title"`
	Description       string   `bson:"description,omitempty" json:"description,omitempty"`
	PropertyType      string   `bson:"propertyType" json:"propertyType"` // apartment, house, office, land
	ListingType       string   `bson:"listingType" json:"listingType"`   // rent, sale
	Price             float64  `bson:"price" json:"price"`
	Bedrooms          int      `bson:"bedrooms,omitempty" json:"bedrooms,omitempty"`
	Bathrooms         int      `bson:"bathrooms,omitempty" json:"bathrooms,omitempty"`
	Address           Address  `bson:"address" json:"address"`
	// Cloudinary public IDs for listing photos.
	Images      []string  `bson:"images,omitempty" json:"images,omitempty"`
	IsAvailable bool      `bson:"isAvailable" json:"isAvailable"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PropertyUpdate is the listing patch body; absent fields are left unchanged.
// IsAvailable is a pointer so a patch that omits it cannot silently delist
// the property.
type PropertyUpdate struct {
	Title        string   `json:"title,omitempty"`
	Description  string   `json:"description,omitempty"`
	PropertyType string   `json:"propertyType,omitempty"`
	ListingType  string   `json:"listingType,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	Bedrooms     *int     `json:"bedrooms,omitempty"`
	Bathrooms    *int     `json:"bathrooms,omitempty"`
	Address      *Address `json:"address,omitempty"`
	IsAvailable  *bool    `json:"isAvailable,omitempty"`
}
