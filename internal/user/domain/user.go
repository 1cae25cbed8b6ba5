package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Domain errors distinguishable from generic storage failures
var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrInvalidInput      = errors.New("invalid input")
)

// User represents the user entity (domain model)
type User struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Username  string    `json:"username" gorm:"size:100;uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"` // salted bcrypt hash, never serialized
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// BeforeCreate generates the identifier at write time
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UserRepository defines the contract for user data access
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindAll(ctx context.Context) ([]User, error)
	Count(ctx context.Context) (int64, error)
}
