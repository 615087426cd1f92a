package models

import "time"

// Contact-message statuses. New messages count toward the admin's unread
// badge; the rest track the support workflow.
const (
	ContactStatusNew      string = "new"
	ContactStatusRead     string = "read"
	ContactStatusReplied  string = "replied"
	ContactStatusResolved string = "resolved"
)

// ContactStatuses lists the valid workflow states.
var ContactStatuses = []string{
	ContactStatusNew,
	ContactStatusRead,
	ContactStatusReplied,
	ContactStatusResolved,
}

// Contact is a message submitted through the public contact form.
type Contact struct {
	ID      string `bson:"id" json:"id"`
	Name    string `bson:"name" json:"name"`
	Email   string `bson:"email" json:"email"`
	Phone   string `bson:"phone" json:"phone"`
	Subject string `bson:"subject" json:"subject"`
	Message string `bson:"message" json:"message"`

	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ContactInput is the public submission body.
type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}
