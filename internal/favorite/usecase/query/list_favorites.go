package query

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tair/favorites-service/internal/favorite/domain"
)

// ListFavoritesQuery represents the query to list a user's favorites
type ListFavoritesQuery struct {
	UserID uuid.UUID
}

// ListFavoritesHandler handles list favorites query
type ListFavoritesHandler struct {
	repo domain.FavoriteRepository
}

// NewListFavoritesHandler creates a new list favorites handler
func NewListFavoritesHandler(repo domain.FavoriteRepository) *ListFavoritesHandler {
	return &ListFavoritesHandler{repo: repo}
}

// Handle executes the list favorites query. A user without favorites gets
// an empty slice, not an error.
func (h *ListFavoritesHandler) Handle(ctx context.Context, query ListFavoritesQuery) ([]domain.FavoriteWithProduct, error) {
	if query.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: user_id is required", domain.ErrInvalidInput)
	}

	favorites, err := h.repo.FindByUser(ctx, query.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favorites, nil
}
