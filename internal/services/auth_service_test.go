package services_test

import (
	"strings"
	"testing"

	"zonelink/internal/apperrors"
	"zonelink/internal/models"
	"zonelink/internal/services"
	"zonelink/pkg/sharecode"
	"zonelink/pkg/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByShareCode(code string) (*models.User, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateTimezone(id string, timezone string) error {
	args := m.Called(id, timezone)
	return args.Error(0)
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test_jwt_secret", "UTC")

	mockRepo.On("GetByEmail", "alice@example.com").Return(nil, nil).Once()
	mockRepo.On("GetByShareCode", mock.Anything).Return(nil, nil).Once()

	var created *models.User
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		created = args.Get(0).(*models.User)
	}).Return(nil).Once()

	user, err := service.Register("alice@example.com", "password123", "Alice", "Europe/London")

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, created, user)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "Alice", user.DisplayName)
	assert.Equal(t, "Europe/London", user.Timezone)

	// Share code must be 6 characters from the restricted alphabet.
	assert.Len(t, user.ShareCode, sharecode.Length)
	for _, ch := range user.ShareCode {
		assert.True(t, strings.ContainsRune(sharecode.Alphabet, ch), "unexpected character %q in share code %s", ch, user.ShareCode)
	}

	// The stored password is a bcrypt hash of the input, not the input.
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))

	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterDefaultTimezone(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test_jwt_secret", "Asia/Tokyo")

	mockRepo.On("GetByEmail", "bob@example.com").Return(nil, nil).Once()
	mockRepo.On("GetByShareCode", mock.Anything).Return(nil, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, err := service.Register("bob@example.com", "password123", "", "")

	assert.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", user.Timezone)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test_jwt_secret", "UTC")

	existing := &models.User{ID: "u1", Email: "taken@example.com"}
	mockRepo.On("GetByEmail", "taken@example.com").Return(existing, nil).Once()

	user, err := service.Register("taken@example.com", "password123", "", "UTC")

	assert.ErrorIs(t, err, apperrors.ErrEmailRegistered)
	assert.Nil(t, user)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterInvalidTimezone(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test_jwt_secret", "UTC")

	mockRepo.On("GetByEmail", "carol@example.com").Return(nil, nil).Once()

	user, err := service.Register("carol@example.com", "password123", "", "Mars/Olympus_Mons")

	assert.ErrorIs(t, err, timezone.ErrUnknownTimezone)
	assert.Nil(t, user)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterShareCodeCollision(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test_jwt_secret", "UTC")

	mockRepo.On("GetByEmail", "dave@example.com").Return(nil, nil).Once()
	// First generated code is taken, the retry is free.
	mockRepo.On("GetByShareCode", mock.Anything).Return(&models.User{ID: "other"}, nil).Once()
	mockRepo.On("GetByShareCode", mock.Anything).Return(nil, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, err := service.Register("dave@example.com", "password123", "", "UTC")

	assert.NoError(t, err)
	assert.Len(t, user.ShareCode, sharecode.Length)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginAndValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test_jwt_secret", "UTC")

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	user := &models.User{ID: "u1", Email: "alice@example.com", Password: string(hash)}

	mockRepo.On("GetByEmail", "alice@example.com").Return(user, nil)

	token, err := service.Login("alice@example.com", "correct-horse")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "u1", claims["user_id"])
	assert.Equal(t, "alice@example.com", claims["email"])

	// Wrong password and unknown email both read as invalid credentials.
	_, err = service.Login("alice@example.com", "wrong-horse")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, nil).Once()
	_, err = service.Login("nobody@example.com", "correct-horse")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateTokenRejectsGarbage(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test_jwt_secret", "UTC")

	_, err := service.ValidateToken("not.a.token")
	assert.Error(t, err)
}
