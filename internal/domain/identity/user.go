package identity

import (
	"strings"
	"time"

	"github.com/fieldsales/backend/internal/domain/shared"
)

// UserStatus represents the status of a user account
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// User represents a sales representative account
// Authentication lives outside this service; the user record exists so
// that draft and order ownership always points at a known representative.
type User struct {
	shared.BaseAggregateRoot
	Login  string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	Name   string     `gorm:"type:varchar(200);not null"`
	Status UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user
func NewUser(login, name string) (*User, error) {
	if strings.TrimSpace(login) == "" {
		return nil, shared.NewDomainError("INVALID_LOGIN", "Login cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_USER_NAME", "User name cannot be empty")
	}
	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Login:             strings.ToLower(login),
		Name:              name,
		Status:            UserStatusActive,
	}, nil
}

// Deactivate disables the user account
func (u *User) Deactivate() {
	u.Status = UserStatusInactive
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// IsActive returns true if the account may place orders
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
