//go:build wireinject
// +build wireinject

package product

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/favorites-service/internal/product/delivery/http"
	"github.com/tair/favorites-service/internal/product/domain"
	"github.com/tair/favorites-service/internal/product/repository"
)

// ProvideProductRepository provides the product repository
func ProvideProductRepository(db *gorm.DB) domain.ProductRepository {
	return repository.NewGormProductRepository(db)
}

var RepositorySet = wire.NewSet(
	ProvideProductRepository,
)

// InitializeHTTPHandler initializes the HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*http.ProductHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewProductHandler,
	)
	return nil, nil
}
