package identity

import (
	"net/mail"
	"strings"
	"time"

	"github.com/eventhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// User is an authenticated organizer account
type User struct {
	ID           uuid.UUID
	Email        string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new user. The password hash is produced by the
// application layer; the domain only validates identity fields.
func NewUser(email, displayName, passwordHash string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email address is not valid")
	}
	if strings.TrimSpace(displayName) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Display name cannot be empty")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}

	now := time.Now()
	return &User{
		ID:           uuid.New(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
