package models

import (
	"time"

	"github.com/eventhub/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// UserModel is the persistence representation of a user
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	Email        string    `gorm:"size:255;not null;uniqueIndex"`
	DisplayName  string    `gorm:"size:100;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name for UserModel
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts UserModel to a domain user
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		ID:           m.ID,
		Email:        m.Email,
		DisplayName:  m.DisplayName,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// UserModelFromDomain converts a domain user to its persistence model
func UserModelFromDomain(u *identity.User) *UserModel {
	return &UserModel{
		ID:           u.ID,
		Email:        u.Email,
		DisplayName:  u.DisplayName,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
