package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tair/favorites-service/internal/user/domain"
	"github.com/tair/favorites-service/internal/user/usecase/command"
	"github.com/tair/favorites-service/internal/user/usecase/query"
	"github.com/tair/favorites-service/pkg/logger"
)

var (
	requestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_service_requests_total",
			Help: "Total number of requests to user endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "user_service_request_duration_seconds",
			Help:    "Duration of user endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	registeredUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "user_service_registered_users",
			Help: "Number of registered users in the system",
		},
	)
)

// UserHandler handles HTTP requests for users
type UserHandler struct {
	createHandler *command.CreateUserHandler
	listHandler   *query.ListUsersHandler
	repo          domain.UserRepository
}

// NewUserHandler creates a new user handler and seeds the registered-users
// gauge so it reflects existing rows before the first registration.
func NewUserHandler(repo domain.UserRepository) *UserHandler {
	h := &UserHandler{
		createHandler: command.NewCreateUserHandler(repo),
		listHandler:   query.NewListUsersHandler(repo),
		repo:          repo,
	}
	h.updateRegisteredUsersMetric(context.Background())
	return h
}

// RegisterRoutes registers user routes on the router
func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/users", h.metricsMiddleware("/api/users", h.ListUsers)).Methods("GET")
	router.HandleFunc("/api/users", h.metricsMiddleware("/api/users", h.CreateUser)).Methods("POST")
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *UserHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// CreateUser handles POST /api/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.CreateUserCommand{
		Username: req.Username,
		Password: req.Password,
	}

	user, err := h.createHandler.Handle(r.Context(), cmd)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrDuplicateUsername):
			respondError(w, http.StatusConflict, err.Error())
		default:
			logger.Error(r.Context()).Err(err).Msg("Failed to create user")
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	h.updateRegisteredUsersMetric(r.Context())
	respondJSON(w, http.StatusCreated, user)
}

// ListUsers handles GET /api/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.listHandler.Handle(r.Context(), query.ListUsersQuery{})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list users")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, users)
}

// updateRegisteredUsersMetric updates the registered users gauge
func (h *UserHandler) updateRegisteredUsersMetric(ctx context.Context) {
	if count, err := h.repo.Count(ctx); err == nil {
		registeredUsers.Set(float64(count))
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends a structured error response
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
