//go:build wireinject
// +build wireinject

package favorite

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/favorites-service/internal/favorite/delivery/http"
	"github.com/tair/favorites-service/internal/favorite/domain"
	"github.com/tair/favorites-service/internal/favorite/repository"
	"github.com/tair/favorites-service/internal/favorite/usecase/command"
)

// ProvideFavoriteRepository provides the favorite repository
func ProvideFavoriteRepository(db *gorm.DB) domain.FavoriteRepository {
	return repository.NewGormFavoriteRepository(db)
}

var RepositorySet = wire.NewSet(
	ProvideFavoriteRepository,
)

// InitializeHTTPHandler initializes the HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, publisher command.EventPublisher) (*http.FavoriteHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewFavoriteHandler,
	)
	return nil, nil
}
