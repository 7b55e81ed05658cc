package identity

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for users
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	// FindByEmail returns the user or shared.ErrNotFound
	FindByEmail(ctx context.Context, email string) (*User, error)
	Save(ctx context.Context, u *User) error
}
