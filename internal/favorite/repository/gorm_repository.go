package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tair/favorites-service/internal/favorite/domain"
)

// GormFavoriteRepository implements FavoriteRepository using GORM
type GormFavoriteRepository struct {
	db *gorm.DB
}

// NewGormFavoriteRepository creates a new GORM favorite repository
func NewGormFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

// Create inserts a new favorite. A duplicate (user, product) pair surfaces
// as domain.ErrFavoriteExists; referential violations wrap generically.
func (r *GormFavoriteRepository) Create(ctx context.Context, favorite *domain.Favorite) error {
	if err := r.db.WithContext(ctx).Create(favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrFavoriteExists
		}
		return fmt.Errorf("failed to create favorite: %w", err)
	}
	return nil
}

// FindByUser retrieves all favorites for a user joined with the product
// name, newest first. No favorites yields an empty slice, not an error.
func (r *GormFavoriteRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]domain.FavoriteWithProduct, error) {
	favorites := []domain.FavoriteWithProduct{}
	err := r.db.WithContext(ctx).Table("favorites").
		Select("favorites.id, favorites.user_id, favorites.product_id, products.name AS product_name, favorites.created_at").
		Joins("JOIN products ON products.id = favorites.product_id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC").
		Scan(&favorites).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find favorites: %w", err)
	}
	return favorites, nil
}

// DeleteOwned deletes the favorite matching both the favorite id AND the
// owning user id. A miss returns domain.ErrFavoriteNotFound regardless of
// whether the row is missing or owned by someone else.
func (r *GormFavoriteRepository) DeleteOwned(ctx context.Context, favoriteID, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", favoriteID, userID).Delete(&domain.Favorite{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete favorite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrFavoriteNotFound
	}
	return nil
}
