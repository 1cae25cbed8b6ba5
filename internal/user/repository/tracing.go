package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tair/favorites-service/internal/user/domain"
)

var tracer = otel.Tracer("user-repository")

// GormUserRepositoryWithTracing wraps GormUserRepository with tracing. Spans
// attach to the incoming request trace carried in ctx.
type GormUserRepositoryWithTracing struct {
	inner *GormUserRepository
}

// NewGormUserRepositoryWithTracing creates a new repository with tracing
func NewGormUserRepositoryWithTracing(db *gorm.DB) *GormUserRepositoryWithTracing {
	return &GormUserRepositoryWithTracing{inner: NewGormUserRepository(db)}
}

// Create with tracing
func (r *GormUserRepositoryWithTracing) Create(ctx context.Context, user *domain.User) error {
	ctx, span := tracer.Start(ctx, "user.repository.Create",
		trace.WithAttributes(attribute.String("user.username", user.Username)),
	)
	defer span.End()

	if err := r.inner.Create(ctx, user); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.String("user.id", user.ID.String()))
	return nil
}

// FindAll with tracing
func (r *GormUserRepositoryWithTracing) FindAll(ctx context.Context) ([]domain.User, error) {
	ctx, span := tracer.Start(ctx, "user.repository.FindAll")
	defer span.End()

	users, err := r.inner.FindAll(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(users)))
	return users, nil
}

// Count with tracing
func (r *GormUserRepositoryWithTracing) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "user.repository.Count")
	defer span.End()

	count, err := r.inner.Count(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	return count, nil
}
