package models

import "time"

// User roles. A company role links the user to its provider profile
// through GarbageProfileID / MoverProfileID.
const (
	RoleCustomer        string = "customer"
	RolePropertyManager string = "property_manager"
	RoleGarbageCompany  string = "garbage_collection_company"
	RoleMoverCompany    string = "mover_company"
	RoleAdmin           string = "admin"
)

// User represents a platform account of any role.
type User struct {
	ID           string `bson:"id" json:"id"`
	Name         string `bson:"name" json:"name"`
	Email        string `bson:"email" json:"email"`
	PasswordHash string `bson:"passwordHash" json:"-"`
	Phone        string `bson:"phone,omitempty" json:"phone,omitempty"`
	Role         string `bson:"role" json:"role"`

	// Provider profile links, set when the role is a company role.
	GarbageProfileID string `bson:"garbageProfileId,omitempty" json:"garbageProfileId,omitempty"`
	MoverProfileID   string `bson:"moverProfileId,omitempty" json:"moverProfileId,omitempty"`

	// Session token hash; middleware resolves the bearer token to this.
	TokenHash string `bson:"tokenHash,omitempty" json:"-"`

	// FCM registration token for push notifications.
	FCMToken string `bson:"fcmToken,omitempty" json:"-"`

	IsActive  bool      `bson:"isActive" json:"isActive"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// AuthResponse is returned after a successful sign-up or sign-in.
type AuthResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
}
