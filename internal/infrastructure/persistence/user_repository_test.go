package persistence

import (
	"context"
	"testing"

	"github.com/eventhub/backend/internal/domain/identity"
	"github.com/eventhub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormUserRepository_SaveAndFind(t *testing.T) {
	repo := NewGormUserRepository(setupTestDB(t))
	ctx := context.Background()

	u, err := identity.NewUser("User@Example.com", "Test User", "bcrypt-hash")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, u))

	byID, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", byID.Email)
	assert.Equal(t, "Test User", byID.DisplayName)

	// Lookup is case-insensitive because emails are stored lowercased.
	byEmail, err := repo.FindByEmail(ctx, "USER@example.COM")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)
}

func TestGormUserRepository_NotFound(t *testing.T) {
	repo := NewGormUserRepository(setupTestDB(t))
	ctx := context.Background()

	_, err := repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
