package query

import (
	"context"
	"fmt"

	"github.com/tair/favorites-service/internal/user/domain"
)

// ListUsersQuery represents the query to list all users
type ListUsersQuery struct{}

// ListUsersHandler handles list users query
type ListUsersHandler struct {
	repo domain.UserRepository
}

// NewListUsersHandler creates a new list users handler
func NewListUsersHandler(repo domain.UserRepository) *ListUsersHandler {
	return &ListUsersHandler{repo: repo}
}

// Handle executes the list users query
func (h *ListUsersHandler) Handle(ctx context.Context, query ListUsersQuery) ([]domain.User, error) {
	users, err := h.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
