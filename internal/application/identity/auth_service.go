package identity

import (
	"context"
	"errors"

	"github.com/eventhub/backend/internal/domain/identity"
	"github.com/eventhub/backend/internal/domain/shared"
	"github.com/eventhub/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login, and token refresh
type AuthService struct {
	users      identity.Repository
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(users identity.Repository, jwtService *auth.JWTService, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      users,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates a new organizer account and returns tokens for it
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, shared.NewDomainError("EMAIL_ALREADY_REGISTERED", "An account with this email already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password cannot be hashed")
	}

	user, err := identity.NewUser(req.Email, req.DisplayName, string(hash))
	if err != nil {
		return nil, err
	}

	if err := s.users.Save(ctx, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("EMAIL_ALREADY_REGISTERED", "An account with this email already exists")
		}
		return nil, err
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		s.logger.Error("failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("TOKEN_ERROR", "Failed to generate authentication tokens")
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return s.authResponse(tokenPair, user), nil
}

// Login verifies credentials and returns tokens
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("login attempt for unknown email", zap.String("email", req.Email))
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		s.logger.Error("failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("TOKEN_ERROR", "Failed to generate authentication tokens")
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID.String()))

	return s.authResponse(tokenPair, user), nil
}

// Refresh validates a refresh token and issues a new token pair
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*AuthResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, mapTokenError(err)
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	// The account must still exist; a deleted user cannot mint new tokens.
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("USER_NOT_FOUND", "User no longer exists")
		}
		return nil, err
	}

	tokenPair, err := s.jwtService.RefreshTokenPair(req.RefreshToken, user.Email)
	if err != nil {
		return nil, mapTokenError(err)
	}

	s.logger.Info("token refreshed", zap.String("user_id", user.ID.String()))

	return s.authResponse(tokenPair, nil), nil
}

func (s *AuthService) authResponse(pair *auth.TokenPair, user *identity.User) *AuthResponse {
	resp := &AuthResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
	}
	if user != nil {
		resp.User = ToUserResponse(user)
	}
	return resp
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrInvalidTokenType),
		errors.Is(err, auth.ErrInvalidClaims),
		errors.Is(err, auth.ErrMissingUserID):
		return shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	default:
		return shared.NewDomainError("TOKEN_ERROR", "Failed to validate refresh token")
	}
}
