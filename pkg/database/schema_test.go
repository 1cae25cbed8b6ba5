package database

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	favoritedomain "github.com/tair/favorites-service/internal/favorite/domain"
	productdomain "github.com/tair/favorites-service/internal/product/domain"
	userdomain "github.com/tair/favorites-service/internal/user/domain"
)

var testDBCounter int64

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:schematest%d?mode=memory&cache=shared&_foreign_keys=on",
		atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	return db
}

func allModels() []interface{} {
	return []interface{}{&userdomain.User{}, &productdomain.Product{}, &favoritedomain.Favorite{}}
}

func TestMigrateCreatesTables(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, Migrate(db, allModels()...))

	for _, table := range []string{"users", "products", "favorites"} {
		assert.True(t, db.Migrator().HasTable(table), "table %s should exist after migrate", table)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, Migrate(db, allModels()...))

	user := &userdomain.User{Username: "bill", Password: "hashed", CreatedAt: time.Now()}
	require.NoError(t, db.Create(user).Error)

	// Running migrations again must not touch existing rows
	require.NoError(t, Migrate(db, allModels()...))

	var count int64
	require.NoError(t, db.Model(&userdomain.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestResetDiscardsData(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, Migrate(db, allModels()...))

	user := &userdomain.User{Username: "bill", Password: "hashed", CreatedAt: time.Now()}
	require.NoError(t, db.Create(user).Error)
	product := &productdomain.Product{Name: "bats", CreatedAt: time.Now()}
	require.NoError(t, db.Create(product).Error)
	favorite := &favoritedomain.Favorite{UserID: user.ID, ProductID: product.ID, CreatedAt: time.Now()}
	require.NoError(t, db.Create(favorite).Error)

	require.NoError(t, Reset(db, allModels()...))

	for _, model := range allModels() {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.EqualValues(t, 0, count)
	}

	// The recreated schema is fully usable, constraints included
	require.NoError(t, db.Create(&userdomain.User{Username: "bill", Password: "hashed", CreatedAt: time.Now()}).Error)
	err := db.Create(&userdomain.User{Username: "bill", Password: "hashed", CreatedAt: time.Now()}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey, "unique index should survive a reset")
}
