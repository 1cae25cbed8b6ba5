package command

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tair/favorites-service/internal/favorite/domain"
	"github.com/tair/favorites-service/kafka"
	"github.com/tair/favorites-service/pkg/logger"
)

// EventPublisher publishes favorite lifecycle events. A nil publisher
// disables event emission.
type EventPublisher interface {
	PublishFavoriteAdded(ctx context.Context, event kafka.FavoriteAddedEvent) error
}

// CreateFavoriteCommand represents the command to create a favorite
type CreateFavoriteCommand struct {
	UserID    uuid.UUID
	ProductID uuid.UUID
}

// CreateFavoriteHandler handles favorite creation
type CreateFavoriteHandler struct {
	repo      domain.FavoriteRepository
	publisher EventPublisher
}

// NewCreateFavoriteHandler creates a new create favorite handler
func NewCreateFavoriteHandler(repo domain.FavoriteRepository, publisher EventPublisher) *CreateFavoriteHandler {
	return &CreateFavoriteHandler{repo: repo, publisher: publisher}
}

// Handle executes the create favorite command. The event publish is
// best-effort: a broker failure is logged and never fails the request.
func (h *CreateFavoriteHandler) Handle(ctx context.Context, cmd CreateFavoriteCommand) (*domain.Favorite, error) {
	if cmd.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: user_id is required", domain.ErrInvalidInput)
	}
	if cmd.ProductID == uuid.Nil {
		return nil, fmt.Errorf("%w: product_id is required", domain.ErrInvalidInput)
	}

	favorite := &domain.Favorite{
		UserID:    cmd.UserID,
		ProductID: cmd.ProductID,
		CreatedAt: time.Now(),
	}

	if err := h.repo.Create(ctx, favorite); err != nil {
		return nil, err
	}

	if h.publisher != nil {
		event := kafka.FavoriteAddedEvent{
			FavoriteID: favorite.ID.String(),
			UserID:     favorite.UserID.String(),
			ProductID:  favorite.ProductID.String(),
		}
		if err := h.publisher.PublishFavoriteAdded(ctx, event); err != nil {
			logger.Logger.Warn().
				Err(err).
				Str("favorite_id", favorite.ID.String()).
				Msg("Failed to publish favorite.added event")
		}
	}

	return favorite, nil
}
