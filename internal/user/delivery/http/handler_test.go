package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tair/favorites-service/internal/user/domain"
	"github.com/tair/favorites-service/internal/user/repository"
)

var testDBCounter int64

// setupTestRouter wires a user handler backed by an in-memory SQLite database
func setupTestRouter(t *testing.T) *mux.Router {
	t.Helper()

	dsn := fmt.Sprintf("file:userhttptest%d?mode=memory&cache=shared&_foreign_keys=on",
		atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))

	router := mux.NewRouter()
	NewUserHandler(repository.NewGormUserRepository(db)).RegisterRoutes(router)
	return router
}

func doRequest(t *testing.T, router *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateUserEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	rec := doRequest(t, router, "POST", "/api/users", map[string]string{
		"username": "bill",
		"password": "deepballs",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "bill", response["username"])
	assert.NotEmpty(t, response["id"])
	assert.NotEmpty(t, response["created_at"])

	// Neither the password nor its hash is ever returned
	_, exposed := response["password"]
	assert.False(t, exposed)
	assert.NotContains(t, rec.Body.String(), "deepballs")
}

func TestCreateUserEndpointValidation(t *testing.T) {
	router := setupTestRouter(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{name: "missing username", body: map[string]string{"password": "secret"}},
		{name: "missing password", body: map[string]string{"username": "bill"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, router, "POST", "/api/users", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var response map[string]map[string]interface{}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
			assert.NotEmpty(t, response["error"]["message"])
			assert.EqualValues(t, http.StatusBadRequest, response["error"]["status"])
		})
	}
}

func TestCreateUserEndpointDuplicate(t *testing.T) {
	router := setupTestRouter(t)

	body := map[string]string{"username": "bill", "password": "deepballs"}
	rec := doRequest(t, router, "POST", "/api/users", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, router, "POST", "/api/users", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestListUsersEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	for _, name := range []string{"first", "second"} {
		rec := doRequest(t, router, "POST", "/api/users", map[string]string{
			"username": name,
			"password": "secret",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doRequest(t, router, "GET", "/api/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var users []map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&users))
	require.Len(t, users, 2)
	for _, u := range users {
		_, exposed := u["password"]
		assert.False(t, exposed)
	}
}

func TestRegisteredUsersGaugeSeededAtStartup(t *testing.T) {
	dsn := fmt.Sprintf("file:usergaugetest%d?mode=memory&cache=shared&_foreign_keys=on",
		atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))

	repo := repository.NewGormUserRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &domain.User{Username: "bill", Password: "hash", CreatedAt: time.Now()}))
	require.NoError(t, repo.Create(ctx, &domain.User{Username: "jane", Password: "hash", CreatedAt: time.Now()}))

	// The gauge reflects pre-existing rows before any registration request
	router := mux.NewRouter()
	NewUserHandler(repo).RegisterRoutes(router)
	assert.EqualValues(t, 2, testutil.ToFloat64(registeredUsers))

	rec := doRequest(t, router, "POST", "/api/users", map[string]string{
		"username": "fred",
		"password": "secret",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.EqualValues(t, 3, testutil.ToFloat64(registeredUsers))
}
