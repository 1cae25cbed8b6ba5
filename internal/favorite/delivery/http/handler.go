package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tair/favorites-service/internal/favorite/domain"
	"github.com/tair/favorites-service/internal/favorite/usecase/command"
	"github.com/tair/favorites-service/internal/favorite/usecase/query"
	"github.com/tair/favorites-service/pkg/logger"
)

var (
	requestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "favorite_service_requests_total",
			Help: "Total number of requests to favorite endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "favorite_service_request_duration_seconds",
			Help:    "Duration of favorite endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

// FavoriteHandler handles HTTP requests for favorites
type FavoriteHandler struct {
	createHandler *command.CreateFavoriteHandler
	deleteHandler *command.DeleteFavoriteHandler
	listHandler   *query.ListFavoritesHandler
}

// NewFavoriteHandler creates a new favorite handler. The publisher may be
// nil when event emission is disabled.
func NewFavoriteHandler(repo domain.FavoriteRepository, publisher command.EventPublisher) *FavoriteHandler {
	return &FavoriteHandler{
		createHandler: command.NewCreateFavoriteHandler(repo, publisher),
		deleteHandler: command.NewDeleteFavoriteHandler(repo),
		listHandler:   query.NewListFavoritesHandler(repo),
	}
}

// RegisterRoutes registers favorite routes on the router
func (h *FavoriteHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/users/{id}/favorites",
		h.metricsMiddleware("/api/users/{id}/favorites", h.ListFavorites)).Methods("GET")
	router.HandleFunc("/api/users/{id}/favorites",
		h.metricsMiddleware("/api/users/{id}/favorites", h.CreateFavorite)).Methods("POST")
	router.HandleFunc("/api/users/{id}/favorites/{favorite_id}",
		h.metricsMiddleware("/api/users/{id}/favorites/{favorite_id}", h.DeleteFavorite)).Methods("DELETE")
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (h *FavoriteHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// CreateFavorite handles POST /api/users/{id}/favorites
func (h *FavoriteHandler) CreateFavorite(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req struct {
		ProductID string `json:"product_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "product_id is required")
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	cmd := command.CreateFavoriteCommand{
		UserID:    userID,
		ProductID: productID,
	}

	favorite, err := h.createHandler.Handle(r.Context(), cmd)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrFavoriteExists):
			respondError(w, http.StatusConflict, err.Error())
		default:
			logger.Error(r.Context()).Err(err).Msg("Failed to create favorite")
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondJSON(w, http.StatusCreated, favorite)
}

// ListFavorites handles GET /api/users/{id}/favorites
func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	favorites, err := h.listHandler.Handle(r.Context(), query.ListFavoritesQuery{UserID: userID})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to list favorites")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if len(favorites) == 0 {
		respondError(w, http.StatusNotFound, "No favorites found for user")
		return
	}

	respondJSON(w, http.StatusOK, favorites)
}

// DeleteFavorite handles DELETE /api/users/{id}/favorites/{favorite_id}
func (h *FavoriteHandler) DeleteFavorite(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	userID, err := uuid.Parse(vars["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	favoriteID, err := uuid.Parse(vars["favorite_id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid favorite ID")
		return
	}

	cmd := command.DeleteFavoriteCommand{
		FavoriteID: favoriteID,
		UserID:     userID,
	}

	if err := h.deleteHandler.Handle(r.Context(), cmd); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrFavoriteNotFound):
			respondError(w, http.StatusNotFound, err.Error())
		default:
			logger.Error(r.Context()).Err(err).Msg("Failed to delete favorite")
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]interface{}{
			"message": message,
			"status":  status,
		},
	})
}
