package user

import (
	"fmt"
	"strings"
	"time"

	"nyumbani/models"
	"nyumbani/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 72 * time.Hour

var registrableRoles = map[string]bool{
	models.RoleCustomer:        true,
	models.RolePropertyManager: true,
	models.RoleGarbageCompany:  true,
	models.RoleMoverCompany:    true,
}

// Register creates an account and signs the caller in.
func (s *DefaultUserService) Register(input RegistrationInput) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" || input.Name == "" {
		return nil, utils.InvalidArgumentError("name, email and password are required")
	}
	role := input.Role
	if role == "" {
		role = models.RoleCustomer
	}
	if !registrableRoles[role] {
		return nil, utils.InvalidArgumentError(fmt.Sprintf("role %q cannot be self-registered", role))
	}

	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.InvalidArgumentError("an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &models.User{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        input.Phone,
		Role:         role,
		IsActive:     true,
	}

	token, err := utils.GenerateToken(u.ID, u.Email, u.Role, tokenLifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	u.TokenHash = utils.HashToken(token)

	if err := s.Repo.Create(u); err != nil {
		return nil, err
	}

	return &models.AuthResponse{ID: u.ID, Token: token, Name: u.Name, Email: u.Email, Role: u.Role}, nil
}

// Authenticate verifies credentials and issues a fresh session token.
func (s *DefaultUserService) Authenticate(email, password string) (*models.AuthResponse, error) {
	u, err := s.Repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if u == nil || !u.IsActive {
		return nil, utils.NotAuthorizedError("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, utils.NotAuthorizedError("invalid credentials")
	}

	token, err := utils.GenerateToken(u.ID, u.Email, u.Role, tokenLifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	if err := s.Repo.UpdateSetDocument(u.ID, bson.M{"tokenHash": utils.HashToken(token)}); err != nil {
		return nil, err
	}
	// The previous session token is dead now.
	s.invalidateSession(u.TokenHash)

	return &models.AuthResponse{ID: u.ID, Token: token, Name: u.Name, Email: u.Email, Role: u.Role}, nil
}

// RevokeAuthToken clears the stored session token hash.
func (s *DefaultUserService) RevokeAuthToken(userID string) error {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return err
	}
	if err := s.Repo.UpdateSetDocument(userID, bson.M{"tokenHash": ""}); err != nil {
		return err
	}
	if u != nil {
		s.invalidateSession(u.TokenHash)
	}
	return nil
}

// SeedAdmin ensures an admin account exists for the configured credentials.
func (s *DefaultUserService) SeedAdmin(email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	existing, err := s.Repo.GetByEmail(strings.ToLower(email))
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	admin := &models.User{
		ID:           uuid.New().String(),
		Name:         "Administrator",
		Email:        strings.ToLower(email),
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	return s.Repo.Create(admin)
}
