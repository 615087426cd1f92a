package contact

import (
	"strings"
	"testing"

	"nyumbani/models"
	"nyumbani/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeContactRepo struct {
	messages map[string]*models.Contact
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{messages: map[string]*models.Contact{}}
}

func (r *fakeContactRepo) Create(c *models.Contact) error {
	copy := *c
	r.messages[c.ID] = &copy
	return nil
}

func (r *fakeContactRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	if status, ok := updateDoc["status"].(string); ok {
		r.messages[id].Status = status
	}
	return nil
}

func (r *fakeContactRepo) Delete(id string) error {
	delete(r.messages, id)
	return nil
}

func (r *fakeContactRepo) GetByID(id string) (*models.Contact, error) {
	c, ok := r.messages[id]
	if !ok {
		return nil, nil
	}
	copy := *c
	return &copy, nil
}

func (r *fakeContactRepo) List(filter bson.M) ([]models.Contact, error) {
	var out []models.Contact
	for _, c := range r.messages {
		if status, ok := filter["status"].(string); ok && c.Status != status {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeContactRepo) Count(filter bson.M) (int64, error) {
	msgs, err := r.List(filter)
	return int64(len(msgs)), err
}

func validInput() models.ContactInput {
	return models.ContactInput{
		Name:    "Wanjiru K",
		Email:   "Wanjiru@Example.com",
		Phone:   "+254722000001",
		Subject: "Viewing reschedule",
		Message: "Can I move my Saturday viewing to Sunday morning?",
	}
}

func TestSubmitMessage(t *testing.T) {
	repo := newFakeContactRepo()
	svc := &DefaultContactService{Repo: repo}

	msg, err := svc.SubmitMessage(validInput())
	require.NoError(t, err)
	assert.Equal(t, models.ContactStatusNew, msg.Status)
	assert.Equal(t, "wanjiru@example.com", msg.Email)
	assert.Len(t, repo.messages, 1)
}

func TestSubmitMessageValidation(t *testing.T) {
	svc := &DefaultContactService{Repo: newFakeContactRepo()}

	missing := validInput()
	missing.Phone = ""
	_, err := svc.SubmitMessage(missing)
	serr, ok := utils.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeInvalidArgument, serr.Code)

	badEmail := validInput()
	badEmail.Email = "not-an-address"
	_, err = svc.SubmitMessage(badEmail)
	serr, ok = utils.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeInvalidArgument, serr.Code)

	tooLong := validInput()
	tooLong.Message = strings.Repeat("x", 2001)
	_, err = svc.SubmitMessage(tooLong)
	serr, ok = utils.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeInvalidArgument, serr.Code)
}

func TestGetMessageMarksNewAsRead(t *testing.T) {
	repo := newFakeContactRepo()
	svc := &DefaultContactService{Repo: repo}

	msg, err := svc.SubmitMessage(validInput())
	require.NoError(t, err)

	got, err := svc.GetMessage(msg.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ContactStatusRead, got.Status)
	assert.Equal(t, models.ContactStatusRead, repo.messages[msg.ID].Status)

	// A second open leaves the status alone.
	again, err := svc.GetMessage(msg.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ContactStatusRead, again.Status)
}

func TestSetStatusWorkflow(t *testing.T) {
	svc := &DefaultContactService{Repo: newFakeContactRepo()}
	msg, err := svc.SubmitMessage(validInput())
	require.NoError(t, err)

	updated, err := svc.SetStatus(msg.ID, models.ContactStatusReplied)
	require.NoError(t, err)
	assert.Equal(t, models.ContactStatusReplied, updated.Status)

	_, err = svc.SetStatus(msg.ID, "archived")
	serr, ok := utils.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeInvalidArgument, serr.Code)

	_, err = svc.SetStatus("no-such-id", models.ContactStatusResolved)
	serr, ok = utils.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeNotFound, serr.Code)
}

func TestUnreadCountAndStatusFilter(t *testing.T) {
	svc := &DefaultContactService{Repo: newFakeContactRepo()}

	first, err := svc.SubmitMessage(validInput())
	require.NoError(t, err)
	second := validInput()
	second.Subject = "Garbage pickup missed"
	_, err = svc.SubmitMessage(second)
	require.NoError(t, err)

	count, err := svc.UnreadCount()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	_, err = svc.SetStatus(first.ID, models.ContactStatusResolved)
	require.NoError(t, err)

	count, err = svc.UnreadCount()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	resolved, err := svc.ListMessages(models.ContactStatusResolved)
	require.NoError(t, err)
	assert.Len(t, resolved, 1)

	_, err = svc.ListMessages("spam")
	serr, ok := utils.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeInvalidArgument, serr.Code)
}
