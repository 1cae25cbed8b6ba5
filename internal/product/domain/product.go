package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrDuplicateProduct = errors.New("product name already exists")
	ErrInvalidInput     = errors.New("invalid input")
)

// Product represents the product entity
type Product struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"size:100;uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindAll(ctx context.Context) ([]Product, error)
	Count(ctx context.Context) (int64, error)
}
