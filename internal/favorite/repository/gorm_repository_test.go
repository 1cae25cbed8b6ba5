package repository

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tair/favorites-service/internal/favorite/domain"
	productdomain "github.com/tair/favorites-service/internal/product/domain"
	userdomain "github.com/tair/favorites-service/internal/user/domain"
)

var testDBCounter int64

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:favoritetest%d?mode=memory&cache=shared&_foreign_keys=on",
		atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&userdomain.User{}, &productdomain.Product{}, &domain.Favorite{}))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *userdomain.User {
	t.Helper()
	user := &userdomain.User{Username: username, Password: "hashed", CreatedAt: time.Now()}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createProduct(t *testing.T, db *gorm.DB, name string) *productdomain.Product {
	t.Helper()
	product := &productdomain.Product{Name: name, CreatedAt: time.Now()}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestCreateFavorite(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormFavoriteRepository(db)
	ctx := context.Background()

	user := createUser(t, db, "bill")
	product := createProduct(t, db, "bats")

	favorite := &domain.Favorite{UserID: user.ID, ProductID: product.ID, CreatedAt: time.Now()}
	require.NoError(t, repo.Create(ctx, favorite))
	assert.NotEqual(t, uuid.Nil, favorite.ID)
}

func TestCreateFavoriteDuplicatePair(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormFavoriteRepository(db)
	ctx := context.Background()

	user := createUser(t, db, "bill")
	product := createProduct(t, db, "bats")

	require.NoError(t, repo.Create(ctx, &domain.Favorite{UserID: user.ID, ProductID: product.ID, CreatedAt: time.Now()}))

	err := repo.Create(ctx, &domain.Favorite{UserID: user.ID, ProductID: product.ID, CreatedAt: time.Now()})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFavoriteExists)

	// Exactly one favorite row exists afterward
	var count int64
	require.NoError(t, db.Model(&domain.Favorite{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateFavoriteUnknownReferences(t *testing.T) {
	repo := NewGormFavoriteRepository(setupTestDB(t))
	ctx := context.Background()

	// Unknown user and product ids violate the foreign keys; this is a
	// generic storage failure, not a duplicate
	err := repo.Create(ctx, &domain.Favorite{UserID: uuid.New(), ProductID: uuid.New(), CreatedAt: time.Now()})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrFavoriteExists)
	assert.NotErrorIs(t, err, domain.ErrFavoriteNotFound)
}

func TestFindByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormFavoriteRepository(db)
	ctx := context.Background()

	bill := createUser(t, db, "bill")
	jane := createUser(t, db, "jane")
	bats := createProduct(t, db, "bats")
	balls := createProduct(t, db, "balls")
	gloves := createProduct(t, db, "gloves")

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, &domain.Favorite{UserID: bill.ID, ProductID: bats.ID, CreatedAt: base}))
	require.NoError(t, repo.Create(ctx, &domain.Favorite{UserID: bill.ID, ProductID: balls.ID, CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, repo.Create(ctx, &domain.Favorite{UserID: jane.ID, ProductID: gloves.ID, CreatedAt: base}))

	favorites, err := repo.FindByUser(ctx, bill.ID)
	require.NoError(t, err)
	require.Len(t, favorites, 2, "only bill's favorites should be returned")

	// Newest first, joined with the product name
	assert.Equal(t, "balls", favorites[0].ProductName)
	assert.Equal(t, "bats", favorites[1].ProductName)
	for _, f := range favorites {
		assert.Equal(t, bill.ID, f.UserID)
	}
}

func TestFindByUserEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormFavoriteRepository(db)

	user := createUser(t, db, "loner")

	favorites, err := repo.FindByUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, favorites, "no favorites should be an empty result, not an error")
}

func TestDeleteOwned(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormFavoriteRepository(db)
	ctx := context.Background()

	user := createUser(t, db, "bill")
	product := createProduct(t, db, "bats")

	favorite := &domain.Favorite{UserID: user.ID, ProductID: product.ID, CreatedAt: time.Now()}
	require.NoError(t, repo.Create(ctx, favorite))

	require.NoError(t, repo.DeleteOwned(ctx, favorite.ID, user.ID))

	favorites, err := repo.FindByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestDeleteOwnedNotOwnerIndistinguishableFromMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormFavoriteRepository(db)
	ctx := context.Background()

	bill := createUser(t, db, "bill")
	jane := createUser(t, db, "jane")
	product := createProduct(t, db, "bats")

	favorite := &domain.Favorite{UserID: bill.ID, ProductID: product.ID, CreatedAt: time.Now()}
	require.NoError(t, repo.Create(ctx, favorite))

	// Someone else's favorite and a nonexistent favorite fail with the
	// same error signal
	errNotOwner := repo.DeleteOwned(ctx, favorite.ID, jane.ID)
	errMissing := repo.DeleteOwned(ctx, uuid.New(), jane.ID)

	assert.ErrorIs(t, errNotOwner, domain.ErrFavoriteNotFound)
	assert.ErrorIs(t, errMissing, domain.ErrFavoriteNotFound)
	assert.Equal(t, errNotOwner, errMissing)

	// The favorite itself is untouched
	favorites, err := repo.FindByUser(ctx, bill.ID)
	require.NoError(t, err)
	assert.Len(t, favorites, 1)
}

func TestDeletingUserCascades(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormFavoriteRepository(db)
	ctx := context.Background()

	user := createUser(t, db, "bill")
	product := createProduct(t, db, "bats")
	require.NoError(t, repo.Create(ctx, &domain.Favorite{UserID: user.ID, ProductID: product.ID, CreatedAt: time.Now()}))

	require.NoError(t, db.Delete(&userdomain.User{}, "id = ?", user.ID).Error)

	var count int64
	require.NoError(t, db.Model(&domain.Favorite{}).Count(&count).Error)
	assert.EqualValues(t, 0, count, "deleting a user should cascade to its favorites")
}

func TestDeletingProductCascades(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormFavoriteRepository(db)
	ctx := context.Background()

	user := createUser(t, db, "bill")
	product := createProduct(t, db, "bats")
	keeper := createProduct(t, db, "gloves")
	require.NoError(t, repo.Create(ctx, &domain.Favorite{UserID: user.ID, ProductID: product.ID, CreatedAt: time.Now()}))
	require.NoError(t, repo.Create(ctx, &domain.Favorite{UserID: user.ID, ProductID: keeper.ID, CreatedAt: time.Now()}))

	require.NoError(t, db.Delete(&productdomain.Product{}, "id = ?", product.ID).Error)

	favorites, err := repo.FindByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, favorites, 1, "only favorites referencing the deleted product should disappear")
	assert.Equal(t, "gloves", favorites[0].ProductName)
}
