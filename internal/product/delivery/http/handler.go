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

	"github.com/tair/favorites-service/internal/product/domain"
	"github.com/tair/favorites-service/internal/product/usecase/command"
	"github.com/tair/favorites-service/internal/product/usecase/query"
	"github.com/tair/favorites-service/pkg/logger"
)

var (
	requestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "product_service_requests_total",
			Help: "Total number of requests to product endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "product_service_request_duration_seconds",
			Help:    "Duration of product endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	catalogProducts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "product_service_catalog_products",
			Help: "Number of products in the catalog",
		},
	)
)

// ProductHandler handles HTTP requests for products
type ProductHandler struct {
	createHandler *command.CreateProductHandler
	listHandler   *query.ListProductsHandler
	repo          domain.ProductRepository
}

// NewProductHandler creates a new product handler and seeds the catalog
// gauge so it reflects existing rows before the first create.
func NewProductHandler(repo domain.ProductRepository) *ProductHandler {
	h := &ProductHandler{
		createHandler: command.NewCreateProductHandler(repo),
		listHandler:   query.NewListProductsHandler(repo),
		repo:          repo,
	}
	h.updateCatalogProductsMetric(context.Background())
	return h
}

// RegisterRoutes registers product routes on the router
func (h *ProductHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", h.ListProducts)).Methods("GET")
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", h.CreateProduct)).Methods("POST")
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (h *ProductHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// CreateProduct handles POST /api/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.createHandler.Handle(r.Context(), command.CreateProductCommand{Name: req.Name})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrDuplicateProduct):
			respondError(w, http.StatusConflict, err.Error())
		default:
			logger.Error(r.Context()).Err(err).Msg("Failed to create product")
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	h.updateCatalogProductsMetric(r.Context())
	respondJSON(w, http.StatusCreated, product)
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.listHandler.Handle(r.Context(), query.ListProductsQuery{})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list products")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, products)
}

// updateCatalogProductsMetric updates the catalog size gauge
func (h *ProductHandler) updateCatalogProductsMetric(ctx context.Context) {
	if count, err := h.repo.Count(ctx); err == nil {
		catalogProducts.Set(float64(count))
	}
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
