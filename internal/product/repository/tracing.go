package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tair/favorites-service/internal/product/domain"
)

var tracer = otel.Tracer("product-repository")

// GormProductRepositoryWithTracing wraps GormProductRepository with tracing.
// Spans attach to the incoming request trace carried in ctx.
type GormProductRepositoryWithTracing struct {
	inner *GormProductRepository
}

func NewGormProductRepositoryWithTracing(db *gorm.DB) *GormProductRepositoryWithTracing {
	return &GormProductRepositoryWithTracing{inner: NewGormProductRepository(db)}
}

func (r *GormProductRepositoryWithTracing) Create(ctx context.Context, product *domain.Product) error {
	ctx, span := tracer.Start(ctx, "product.repository.Create",
		trace.WithAttributes(attribute.String("product.name", product.Name)),
	)
	defer span.End()

	if err := r.inner.Create(ctx, product); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.String("product.id", product.ID.String()))
	return nil
}

func (r *GormProductRepositoryWithTracing) FindAll(ctx context.Context) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "product.repository.FindAll")
	defer span.End()

	products, err := r.inner.FindAll(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(products)))
	return products, nil
}

func (r *GormProductRepositoryWithTracing) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "product.repository.Count")
	defer span.End()

	count, err := r.inner.Count(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}
	return count, nil
}
