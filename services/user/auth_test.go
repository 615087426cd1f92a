package user

import (
	"testing"

	"nyumbani/models"
	"nyumbani/utils"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) Create(u *models.User) error {
	copy := *u
	r.users[u.ID] = &copy
	return nil
}

func (r *fakeUserRepo) Update(u *models.User) error {
	copy := *u
	r.users[u.ID] = &copy
	return nil
}

func (r *fakeUserRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	u := r.users[id]
	if hash, ok := updateDoc["tokenHash"].(string); ok {
		u.TokenHash = hash
	}
	if token, ok := updateDoc["fcmToken"].(string); ok {
		u.FCMToken = token
	}
	if pid, ok := updateDoc["garbageProfileId"].(string); ok {
		u.GarbageProfileID = pid
	}
	if pid, ok := updateDoc["moverProfileId"].(string); ok {
		u.MoverProfileID = pid
	}
	return nil
}

func (r *fakeUserRepo) Delete(id string) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copy := *u
	return &copy, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByTokenHash(tokenHash string) (*models.User, error) {
	if tokenHash == "" {
		return nil, nil
	}
	for _, u := range r.users {
		if u.TokenHash == tokenHash {
			copy := *u
			return &copy, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetAll() ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func TestRegisterAndAuthenticate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := &DefaultUserService{Repo: repo}

	resp, err := svc.Register(RegistrationInput{
		Name:     "Amina",
		Email:    "Amina@Example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.RoleCustomer, resp.Role)
	assert.Equal(t, "amina@example.com", resp.Email)

	// Password is stored hashed, never in the clear.
	stored, _ := repo.GetByID(resp.ID)
	assert.NotEqual(t, "s3cret-pass", stored.PasswordHash)
	assert.NotEmpty(t, stored.TokenHash)

	login, err := svc.Authenticate("amina@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, resp.ID, login.ID)

	_, err = svc.Authenticate("amina@example.com", "wrong")
	serr, ok := utils.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeNotAuthorized, serr.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := &DefaultUserService{Repo: repo}

	_, err := svc.Register(RegistrationInput{Name: "A", Email: "a@example.com", Password: "pw123456"})
	require.NoError(t, err)

	_, err = svc.Register(RegistrationInput{Name: "B", Email: "a@example.com", Password: "pw123456"})
	serr, ok := utils.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeInvalidArgument, serr.Code)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	svc := &DefaultUserService{Repo: newFakeUserRepo()}

	_, err := svc.Register(RegistrationInput{
		Name: "Evil", Email: "evil@example.com", Password: "pw123456",
		Role: models.RoleAdmin,
	})
	serr, ok := utils.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeInvalidArgument, serr.Code)
}

func TestRevokeAuthTokenKillsSession(t *testing.T) {
	repo := newFakeUserRepo()
	svc := &DefaultUserService{Repo: repo}

	resp, err := svc.Register(RegistrationInput{Name: "A", Email: "a@example.com", Password: "pw123456"})
	require.NoError(t, err)

	require.NoError(t, svc.RevokeAuthToken(resp.ID))

	u, err := svc.GetUserByTokenHash(utils.HashToken(resp.Token))
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestSessionLookupSurvivesCacheOutage(t *testing.T) {
	repo := newFakeUserRepo()
	// Unreachable Redis: every cache call errors and lookups fall through
	// to the repository.
	svc := &DefaultUserService{
		Repo:      repo,
		AuthCache: redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}),
	}

	resp, err := svc.Register(RegistrationInput{Name: "A", Email: "a@example.com", Password: "pw123456"})
	require.NoError(t, err)

	u, err := svc.GetUserByTokenHash(utils.HashToken(resp.Token))
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, resp.ID, u.ID)

	require.NoError(t, svc.RevokeAuthToken(resp.ID))
	gone, err := svc.GetUserByTokenHash(utils.HashToken(resp.Token))
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestSeedAdminIsIdempotent(t *testing.T) {
	repo := newFakeUserRepo()
	svc := &DefaultUserService{Repo: repo}

	require.NoError(t, svc.SeedAdmin("admin@nyumbani.app", "admin-pass"))
	require.NoError(t, svc.SeedAdmin("admin@nyumbani.app", "admin-pass"))

	all, err := repo.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, models.RoleAdmin, all[0].Role)
}

func TestLinkProviderProfile(t *testing.T) {
	repo := newFakeUserRepo()
	svc := &DefaultUserService{Repo: repo}

	resp, err := svc.Register(RegistrationInput{
		Name: "CleanCity", Email: "ops@cleancity.co.ke", Password: "pw123456",
		Role: models.RoleGarbageCompany,
	})
	require.NoError(t, err)

	require.NoError(t, svc.LinkProviderProfile(resp.ID, models.RoleGarbageCompany, "co-1"))
	u, err := svc.GetUserByID(resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "co-1", u.GarbageProfileID)
}
