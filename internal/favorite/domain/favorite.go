package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	productdomain "github.com/tair/favorites-service/internal/product/domain"
	userdomain "github.com/tair/favorites-service/internal/user/domain"
)

// Domain errors distinguishable from generic storage failures
var (
	// ErrFavoriteExists signals a duplicate (user, product) pair.
	ErrFavoriteExists = errors.New("favorite already exists")
	// ErrFavoriteNotFound covers both a nonexistent favorite and one owned by
	// another user, so the caller cannot probe for existence.
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrInvalidInput     = errors.New("invalid input")
)

// Favorite associates exactly one user with exactly one product. The
// (user_id, product_id) pair is unique; both foreign keys carry lookup
// indexes and cascade on parent deletion.
type Favorite struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_favorites_user_product"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_favorites_user_product"`
	CreatedAt time.Time `json:"created_at"`

	User    userdomain.User       `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Product productdomain.Product `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name
func (Favorite) TableName() string {
	return "favorites"
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// FavoriteWithProduct is the listing projection: a favorite joined with the
// name of the product it references.
type FavoriteWithProduct struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// FavoriteRepository defines the contract for favorite data access
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *Favorite) error
	FindByUser(ctx context.Context, userID uuid.UUID) ([]FavoriteWithProduct, error)
	// DeleteOwned removes the favorite only if it belongs to the given user.
	DeleteOwned(ctx context.Context, favoriteID, userID uuid.UUID) error
}
