package user

import (
	"context"
	"encoding/json"
	"time"

	"nyumbani/models"
	"nyumbani/utils"

	"go.mongodb.org/mongo-driver/bson"
)

const sessionCacheTTL = 5 * time.Minute

func sessionCacheKey(tokenHash string) string {
	return "auth:session:" + tokenHash
}

// GetUserByID fetches a user or a NotFound error.
func (s *DefaultUserService) GetUserByID(userID string) (*models.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, utils.NotFoundError("user")
	}
	return u, nil
}

// GetUserByEmail fetches a user or a NotFound error.
func (s *DefaultUserService) GetUserByEmail(email string) (*models.User, error) {
	u, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, utils.NotFoundError("user")
	}
	return u, nil
}

// GetUserByTokenHash resolves a session token hash; nil when no session.
// This runs on every authenticated request, so hits are served from the
// auth cache when one is configured.
func (s *DefaultUserService) GetUserByTokenHash(tokenHash string) (*models.User, error) {
	if cached := s.sessionFromCache(tokenHash); cached != nil {
		return cached, nil
	}

	u, err := s.Repo.GetByTokenHash(tokenHash)
	if err != nil || u == nil {
		return u, err
	}
	s.sessionToCache(tokenHash, u)
	return u, nil
}

func (s *DefaultUserService) sessionFromCache(tokenHash string) *models.User {
	if s.AuthCache == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := s.AuthCache.Get(ctx, sessionCacheKey(tokenHash)).Result()
	if err != nil {
		return nil
	}
	var u models.User
	if err := json.Unmarshal([]byte(data), &u); err != nil {
		return nil
	}
	return &u
}

func (s *DefaultUserService) sessionToCache(tokenHash string, u *models.User) {
	if s.AuthCache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := json.Marshal(u)
	if err != nil {
		return
	}
	s.AuthCache.Set(ctx, sessionCacheKey(tokenHash), data, sessionCacheTTL)
}

func (s *DefaultUserService) invalidateSession(tokenHash string) {
	if s.AuthCache == nil || tokenHash == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s.AuthCache.Del(ctx, sessionCacheKey(tokenHash))
}

// UpdateFCMToken stores the device push token.
func (s *DefaultUserService) UpdateFCMToken(userID, token string) error {
	return s.Repo.UpdateSetDocument(userID, bson.M{"fcmToken": token})
}

// LinkProviderProfile attaches a company profile to the user's account.
func (s *DefaultUserService) LinkProviderProfile(userID, role, profileID string) error {
	var field string
	switch role {
	case models.RoleGarbageCompany:
		field = "garbageProfileId"
	case models.RoleMoverCompany:
		field = "moverProfileId"
	default:
		return utils.InvalidArgumentError("role has no provider profile")
	}
	return s.Repo.UpdateSetDocument(userID, bson.M{field: profileID})
}

// GetAllUsers returns every account (admin listing).
func (s *DefaultUserService) GetAllUsers() ([]models.User, error) {
	return s.Repo.GetAll()
}

// DeleteUser removes an account.
func (s *DefaultUserService) DeleteUser(userID string) error {
	return s.Repo.Delete(userID)
}
