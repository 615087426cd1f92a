// Package contact handles messages from the public contact form. Submission
// is open to anyone; the triage workflow (read/replied/resolved, unread
// count) is admin-only and gated at the route layer, like settings.
package contact

import (
	"fmt"
	"strings"

	contactRepo "nyumbani/database/repository/contact"
	"nyumbani/models"
	"nyumbani/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	maxNameLen    = 100
	maxSubjectLen = 200
	maxMessageLen = 2000
)

// ContactService manages contact-form messages.
type ContactService interface {
	SubmitMessage(input models.ContactInput) (*models.Contact, error)
	GetMessage(id string) (*models.Contact, error)
	ListMessages(status string) ([]models.Contact, error)
	SetStatus(id, status string) (*models.Contact, error)
	DeleteMessage(id string) error
	UnreadCount() (int64, error)
}

// DefaultContactService is the production implementation.
type DefaultContactService struct {
	Repo contactRepo.ContactRepository
}

func validStatus(status string) bool {
	for _, s := range models.ContactStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// SubmitMessage stores a contact-form submission. New messages start in the
// "new" state and count toward the unread badge.
func (svc *DefaultContactService) SubmitMessage(input models.ContactInput) (*models.Contact, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	phone := strings.TrimSpace(input.Phone)
	subject := strings.TrimSpace(input.Subject)
	message := strings.TrimSpace(input.Message)

	if name == "" || email == "" || phone == "" || subject == "" || message == "" {
		return nil, utils.InvalidArgumentError("name, email, phone, subject and message are required")
	}
	if !strings.Contains(email, "@") {
		return nil, utils.InvalidArgumentError("email is not valid")
	}
	if len(name) > maxNameLen {
		return nil, utils.InvalidArgumentError(fmt.Sprintf("name must be at most %d characters", maxNameLen))
	}
	if len(subject) > maxSubjectLen {
		return nil, utils.InvalidArgumentError(fmt.Sprintf("subject must be at most %d characters", maxSubjectLen))
	}
	if len(message) > maxMessageLen {
		return nil, utils.InvalidArgumentError(fmt.Sprintf("message must be at most %d characters", maxMessageLen))
	}

	c := &models.Contact{
		ID:      uuid.New().String(),
		Name:    name,
		Email:   email,
		Phone:   phone,
		Subject: subject,
		Message: message,
		Status:  models.ContactStatusNew,
	}
	if err := svc.Repo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetMessage fetches one message. Opening a new message marks it read.
func (svc *DefaultContactService) GetMessage(id string) (*models.Contact, error) {
	c, err := svc.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, utils.NotFoundError("contact message")
	}

	if c.Status == models.ContactStatusNew {
		if err := svc.Repo.UpdateSetDocument(c.ID, bson.M{"status": models.ContactStatusRead}); err != nil {
			return nil, err
		}
		c.Status = models.ContactStatusRead
	}
	return c, nil
}

// ListMessages returns messages, optionally filtered by workflow status.
func (svc *DefaultContactService) ListMessages(status string) ([]models.Contact, error) {
	filter := bson.M{}
	if status != "" {
		if !validStatus(status) {
			return nil, utils.InvalidArgumentError(fmt.Sprintf("unknown contact status %q", status))
		}
		filter["status"] = status
	}
	return svc.Repo.List(filter)
}

// SetStatus moves a message through the triage workflow.
func (svc *DefaultContactService) SetStatus(id, status string) (*models.Contact, error) {
	if !validStatus(status) {
		return nil, utils.InvalidArgumentError(fmt.Sprintf("unknown contact status %q", status))
	}

	c, err := svc.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, utils.NotFoundError("contact message")
	}

	if err := svc.Repo.UpdateSetDocument(c.ID, bson.M{"status": status}); err != nil {
		return nil, err
	}
	c.Status = status
	return c, nil
}

// DeleteMessage removes a message.
func (svc *DefaultContactService) DeleteMessage(id string) error {
	c, err := svc.Repo.GetByID(id)
	if err != nil {
		return err
	}
	if c == nil {
		return utils.NotFoundError("contact message")
	}
	return svc.Repo.Delete(id)
}

// UnreadCount returns how many messages are still in the "new" state.
func (svc *DefaultContactService) UnreadCount() (int64, error) {
	return svc.Repo.Count(bson.M{"status": models.ContactStatusNew})
}
