package user

import (
	userRepo "nyumbani/database/repository/user"
	"nyumbani/models"

	"github.com/go-redis/redis/v8"
)

// RegistrationInput is the sign-up request body.
type RegistrationInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role,omitempty"`
}

// UserService manages accounts and sessions.
type UserService interface {
	Register(input RegistrationInput) (*models.AuthResponse, error)
	Authenticate(email, password string) (*models.AuthResponse, error)
	RevokeAuthToken(userID string) error

	GetUserByID(userID string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByTokenHash(tokenHash string) (*models.User, error)
	UpdateFCMToken(userID, token string) error
	LinkProviderProfile(userID, role, profileID string) error

	// Admin / utility.
	GetAllUsers() ([]models.User, error)
	DeleteUser(userID string) error
	SeedAdmin(email, password string) error
}

// DefaultUserService is the production implementation. AuthCache is
// optional; when set, session lookups by token hash are cached and
// invalidated whenever a session is issued or revoked.
type DefaultUserService struct {
	Repo      userRepo.UserRepository
	AuthCache *redis.Client
}
