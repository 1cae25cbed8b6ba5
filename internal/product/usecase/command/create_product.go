package command

import (
	"context"
	"fmt"
	"time"

	"github.com/tair/favorites-service/internal/product/domain"
)

// CreateProductCommand represents the command to create a product
type CreateProductCommand struct {
	Name string
}

// CreateProductHandler handles product creation
type CreateProductHandler struct {
	repo domain.ProductRepository
}

func NewCreateProductHandler(repo domain.ProductRepository) *CreateProductHandler {
	return &CreateProductHandler{repo: repo}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if len(cmd.Name) > 100 {
		return nil, fmt.Errorf("%w: name must be at most 100 characters", domain.ErrInvalidInput)
	}

	product := &domain.Product{
		Name:      cmd.Name,
		CreatedAt: time.Now(),
	}

	if err := h.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}
