package identity

import (
	"context"
	"testing"
	"time"

	"github.com/eventhub/backend/internal/domain/identity"
	"github.com/eventhub/backend/internal/domain/shared"
	"github.com/eventhub/backend/internal/infrastructure/auth"
	"github.com/eventhub/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ============================================================================
// Mocks
// ============================================================================

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, u *identity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

// ============================================================================
// Helpers
// ============================================================================

func testAuthService(repo identity.Repository) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-that-is-long-enough!",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "eventhub-test",
	})
	return NewAuthService(repo, jwtService, zap.NewNop())
}

func storedUser(t *testing.T, email, password string) *identity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u, err := identity.NewUser(email, "Test User", string(hash))
	require.NoError(t, err)
	return u
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	return domainErr.Code
}

// ============================================================================
// Register
// ============================================================================

func TestAuthService_Register(t *testing.T) {
	repo := new(MockUserRepository)
	service := testAuthService(repo)

	repo.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, shared.ErrNotFound)

	var saved *identity.User
	repo.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*identity.User) }).
		Return(nil)

	resp, err := service.Register(context.Background(), RegisterRequest{
		Email:       "new@example.com",
		DisplayName: "New User",
		Password:    "correct-horse",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	require.NotNil(t, resp.User)
	assert.Equal(t, "new@example.com", resp.User.Email)

	require.NotNil(t, saved)
	assert.NotEqual(t, "correct-horse", saved.PasswordHash, "password must be stored hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("correct-horse")))
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := new(MockUserRepository)
	service := testAuthService(repo)

	existing := storedUser(t, "taken@example.com", "password123")
	repo.On("FindByEmail", mock.Anything, "taken@example.com").Return(existing, nil)

	_, err := service.Register(context.Background(), RegisterRequest{
		Email:       "taken@example.com",
		DisplayName: "Someone",
		Password:    "password123",
	})

	assert.Equal(t, "EMAIL_ALREADY_REGISTERED", domainCode(t, err))
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_Register_InvalidEmail(t *testing.T) {
	repo := new(MockUserRepository)
	service := testAuthService(repo)

	repo.On("FindByEmail", mock.Anything, "not-an-email").Return(nil, shared.ErrNotFound)

	_, err := service.Register(context.Background(), RegisterRequest{
		Email:       "not-an-email",
		DisplayName: "Someone",
		Password:    "password123",
	})

	assert.Equal(t, "INVALID_EMAIL", domainCode(t, err))
}

// ============================================================================
// Login
// ============================================================================

func TestAuthService_Login(t *testing.T) {
	repo := new(MockUserRepository)
	service := testAuthService(repo)

	user := storedUser(t, "user@example.com", "password123")
	repo.On("FindByEmail", mock.Anything, "user@example.com").Return(user, nil)

	resp, err := service.Login(context.Background(), LoginRequest{
		Email:    "user@example.com",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	require.NotNil(t, resp.User)
	assert.Equal(t, user.ID.String(), resp.User.ID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := new(MockUserRepository)
	service := testAuthService(repo)

	user := storedUser(t, "user@example.com", "password123")
	repo.On("FindByEmail", mock.Anything, "user@example.com").Return(user, nil)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "user@example.com",
		Password: "wrong-password",
	})

	assert.Equal(t, "INVALID_CREDENTIALS", domainCode(t, err))
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := new(MockUserRepository)
	service := testAuthService(repo)

	repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, shared.ErrNotFound)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "password123",
	})

	// Unknown email and wrong password must be indistinguishable.
	assert.Equal(t, "INVALID_CREDENTIALS", domainCode(t, err))
}

// ============================================================================
// Refresh
// ============================================================================

func TestAuthService_Refresh(t *testing.T) {
	repo := new(MockUserRepository)
	service := testAuthService(repo)

	user := storedUser(t, "user@example.com", "password123")
	repo.On("FindByEmail", mock.Anything, "user@example.com").Return(user, nil)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	login, err := service.Login(context.Background(), LoginRequest{
		Email:    "user@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	resp, err := service.Refresh(context.Background(), RefreshRequest{
		RefreshToken: login.RefreshToken,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Nil(t, resp.User, "refresh response does not repeat the user payload")
}

func TestAuthService_Refresh_InvalidToken(t *testing.T) {
	repo := new(MockUserRepository)
	service := testAuthService(repo)

	_, err := service.Refresh(context.Background(), RefreshRequest{
		RefreshToken: "garbage.token.value",
	})

	assert.Equal(t, "TOKEN_INVALID", domainCode(t, err))
}

func TestAuthService_Refresh_DeletedUser(t *testing.T) {
	repo := new(MockUserRepository)
	service := testAuthService(repo)

	user := storedUser(t, "user@example.com", "password123")
	repo.On("FindByEmail", mock.Anything, "user@example.com").Return(user, nil)
	repo.On("FindByID", mock.Anything, user.ID).Return(nil, shared.ErrNotFound)

	login, err := service.Login(context.Background(), LoginRequest{
		Email:    "user@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = service.Refresh(context.Background(), RefreshRequest{
		RefreshToken: login.RefreshToken,
	})

	assert.Equal(t, "USER_NOT_FOUND", domainCode(t, err))
}
