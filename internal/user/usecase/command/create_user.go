package command

import (
	"context"
	"fmt"
	"time"

	"github.com/tair/favorites-service/internal/user/domain"
	"github.com/tair/favorites-service/pkg/auth"
)

// CreateUserCommand represents the command to create a user
type CreateUserCommand struct {
	Username string
	Password string
}

// CreateUserHandler handles user creation
type CreateUserHandler struct {
	repo domain.UserRepository
}

// NewCreateUserHandler creates a new create user handler
func NewCreateUserHandler(repo domain.UserRepository) *CreateUserHandler {
	return &CreateUserHandler{repo: repo}
}

// Handle executes the create user command. The plaintext password is hashed
// before it reaches the repository and is never stored or returned.
func (h *CreateUserHandler) Handle(ctx context.Context, cmd CreateUserCommand) (*domain.User, error) {
	if cmd.Username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}
	if cmd.Password == "" {
		return nil, fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}
	if len(cmd.Username) > 100 {
		return nil, fmt.Errorf("%w: username must be at most 100 characters", domain.ErrInvalidInput)
	}

	hashedPassword, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:  cmd.Username,
		Password:  hashedPassword,
		CreatedAt: time.Now(),
	}

	if err := h.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
