package repository

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tair/favorites-service/internal/favorite/domain"
)

var tracer = otel.Tracer("favorite-repository")

// GormFavoriteRepositoryWithTracing wraps GormFavoriteRepository with
// tracing. Spans attach to the incoming request trace carried in ctx.
type GormFavoriteRepositoryWithTracing struct {
	inner *GormFavoriteRepository
}

func NewGormFavoriteRepositoryWithTracing(db *gorm.DB) *GormFavoriteRepositoryWithTracing {
	return &GormFavoriteRepositoryWithTracing{inner: NewGormFavoriteRepository(db)}
}

func (r *GormFavoriteRepositoryWithTracing) Create(ctx context.Context, favorite *domain.Favorite) error {
	ctx, span := tracer.Start(ctx, "favorite.repository.Create",
		trace.WithAttributes(
			attribute.String("user.id", favorite.UserID.String()),
			attribute.String("product.id", favorite.ProductID.String()),
		),
	)
	defer span.End()

	if err := r.inner.Create(ctx, favorite); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.String("favorite.id", favorite.ID.String()))
	return nil
}

func (r *GormFavoriteRepositoryWithTracing) FindByUser(ctx context.Context, userID uuid.UUID) ([]domain.FavoriteWithProduct, error) {
	ctx, span := tracer.Start(ctx, "favorite.repository.FindByUser",
		trace.WithAttributes(attribute.String("user.id", userID.String())),
	)
	defer span.End()

	favorites, err := r.inner.FindByUser(ctx, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(favorites)))
	return favorites, nil
}

func (r *GormFavoriteRepositoryWithTracing) DeleteOwned(ctx context.Context, favoriteID, userID uuid.UUID) error {
	ctx, span := tracer.Start(ctx, "favorite.repository.DeleteOwned",
		trace.WithAttributes(
			attribute.String("favorite.id", favoriteID.String()),
			attribute.String("user.id", userID.String()),
		),
	)
	defer span.End()

	if err := r.inner.DeleteOwned(ctx, favoriteID, userID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
