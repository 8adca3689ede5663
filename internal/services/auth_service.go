package services

import (
	"errors"
	"fmt"
	"strings"

	"pustaka/internal/models"
	"pustaka/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrDuplicateEmail means the email is already registered, compared
	// case-insensitively.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials is returned for both an unknown email and a
	// wrong password, so a caller cannot tell which one failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserNotFound means the id from a valid token no longer resolves
	// to a live account.
	ErrUserNotFound = errors.New("user not found")
)

// AuthService handles registration, login and profile lookup.
type AuthService struct {
	users  repositories.UserRepository
	tokens *TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repositories.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
	}
}

// Register creates an account and returns it with a fresh access token.
// The email is lowercased before storage so duplicates differing only in
// case collide on the unique index.
func (s *AuthService) Register(email, password string, name *string) (*models.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    strings.ToLower(email),
		Password: string(hash),
		Name:     name,
	}
	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, "", ErrDuplicateEmail
		}
		return nil, "", fmt.Errorf("failed to register user: %w", err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

// Login authenticates the credentials and returns the account with a
// fresh access token.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	user, err := s.users.GetByEmail(strings.ToLower(email))
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

// Profile re-reads the current account by id. A valid token whose user
// has since been deleted fails with ErrUserNotFound.
func (s *AuthService) Profile(userID string) (*models.User, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return user, nil
}
