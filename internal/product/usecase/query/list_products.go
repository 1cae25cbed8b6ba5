package query

import (
	"context"
	"fmt"

	"github.com/tair/favorites-service/internal/product/domain"
)

// ListProductsQuery represents the query to list all products
type ListProductsQuery struct{}

// ListProductsHandler handles list products query
type ListProductsHandler struct {
	repo domain.ProductRepository
}

func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle executes the list products query
func (h *ListProductsHandler) Handle(ctx context.Context, query ListProductsQuery) ([]domain.Product, error) {
	products, err := h.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}
