//go:build wireinject
// +build wireinject

package user

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/favorites-service/internal/user/delivery/http"
	"github.com/tair/favorites-service/internal/user/domain"
	"github.com/tair/favorites-service/internal/user/repository"
	"github.com/tair/favorites-service/internal/user/usecase/command"
	"github.com/tair/favorites-service/internal/user/usecase/query"
)

// ProvideUserRepository provides the user repository
func ProvideUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewGormUserRepository(db)
}

func ProvideCreateUserHandler(repo domain.UserRepository) *command.CreateUserHandler {
	return command.NewCreateUserHandler(repo)
}

func ProvideListUsersHandler(repo domain.UserRepository) *query.ListUsersHandler {
	return query.NewListUsersHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideUserRepository,
)

var HandlerSet = wire.NewSet(
	ProvideCreateUserHandler,
	ProvideListUsersHandler,
)

// InitializeHTTPHandler initializes the HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*http.UserHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewUserHandler,
	)
	return nil, nil
}
