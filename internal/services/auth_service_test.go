package services_test

import (
	"testing"
	"time"

	"pustaka/internal/models"
	"pustaka/internal/repositories"
	"pustaka/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	tokens := testTokenService(time.Hour)
	authService := services.NewAuthService(mockRepo, tokens)

	var created *models.User
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		created = args.Get(0).(*models.User)
		created.ID = "user-123"
	}).Return(nil).Once()

	name := "Alice"
	user, token, err := authService.Register("Alice@Example.COM", "pw123456", &name)
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Email is normalized to lowercase before it hits the store.
	assert.Equal(t, "alice@example.com", created.Email)
	assert.Equal(t, "alice@example.com", user.Email)
	require.NotNil(t, user.Name)
	assert.Equal(t, "Alice", *user.Name)

	// The stored password is a salted hash of the input, never the input.
	assert.NotEqual(t, "pw123456", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("pw123456")))

	// The returned token asserts the new identity.
	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testTokenService(time.Hour))

	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(repositories.ErrDuplicate).Once()

	_, _, err := authService.Register("alice@example.com", "pw123456", nil)
	assert.ErrorIs(t, err, services.ErrDuplicateEmail)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	tokens := testTokenService(time.Hour)
	authService := services.NewAuthService(mockRepo, tokens)

	hash, err := bcrypt.GenerateFromPassword([]byte("pw123456"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := &models.User{ID: "user-123", Email: "alice@example.com", Password: string(hash)}

	// The lookup email is lowercased, matching the stored form.
	mockRepo.On("GetByEmail", "alice@example.com").Return(user, nil).Once()

	got, token, err := authService.Login("Alice@Example.com", "pw123456")
	require.NoError(t, err)
	assert.Equal(t, "user-123", got.ID)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginInvalidCredentials(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testTokenService(time.Hour))

	hash, _ := bcrypt.GenerateFromPassword([]byte("pw123456"), bcrypt.DefaultCost)
	user := &models.User{ID: "user-123", Email: "alice@example.com", Password: string(hash)}

	// Wrong password and unknown email fail with the same undifferentiated
	// error, so a caller cannot probe which one it was.
	mockRepo.On("GetByEmail", "alice@example.com").Return(user, nil).Once()
	_, _, err := authService.Login("alice@example.com", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, repositories.ErrNotFound).Once()
	_, _, err = authService.Login("nobody@example.com", "pw123456")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Profile(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testTokenService(time.Hour))

	user := &models.User{ID: "user-123", Email: "alice@example.com"}
	mockRepo.On("GetByID", "user-123").Return(user, nil).Once()

	got, err := authService.Profile("user-123")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)

	// A valid token whose account has since been deleted.
	mockRepo.On("GetByID", "user-gone").Return(nil, repositories.ErrNotFound).Once()
	_, err = authService.Profile("user-gone")
	assert.ErrorIs(t, err, services.ErrUserNotFound)
	mockRepo.AssertExpectations(t)
}
