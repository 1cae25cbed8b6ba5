package command

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tair/favorites-service/internal/favorite/domain"
)

// DeleteFavoriteCommand represents the command to delete a favorite. The
// delete is scoped to the owning user: UserID must match the stored row.
type DeleteFavoriteCommand struct {
	FavoriteID uuid.UUID
	UserID     uuid.UUID
}

// DeleteFavoriteHandler handles favorite deletion
type DeleteFavoriteHandler struct {
	repo domain.FavoriteRepository
}

// NewDeleteFavoriteHandler creates a new delete favorite handler
func NewDeleteFavoriteHandler(repo domain.FavoriteRepository) *DeleteFavoriteHandler {
	return &DeleteFavoriteHandler{repo: repo}
}

// Handle executes the delete favorite command
func (h *DeleteFavoriteHandler) Handle(ctx context.Context, cmd DeleteFavoriteCommand) error {
	if cmd.FavoriteID == uuid.Nil {
		return fmt.Errorf("%w: favorite_id is required", domain.ErrInvalidInput)
	}
	if cmd.UserID == uuid.Nil {
		return fmt.Errorf("%w: user_id is required", domain.ErrInvalidInput)
	}

	return h.repo.DeleteOwned(ctx, cmd.FavoriteID, cmd.UserID)
}
