package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "shoplens/internal/errors"
	"shoplens/internal/services"
)

// AnalyticsHandler serves the aggregate endpoints backing the dashboard
// charts. Every endpoint accepts the shared from/to/categories filter.
type AnalyticsHandler struct {
	service      *services.DataService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewAnalyticsHandler creates the analytics handler.
func NewAnalyticsHandler(service *services.DataService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *AnalyticsHandler {
	return &AnalyticsHandler{
		service:      service,
		logger:       logger.With(slog.String("handler", "analytics")),
		errorHandler: errorHandler,
	}
}

// Routes returns the analytics routes.
func (h *AnalyticsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/overview", h.Overview)
	r.Get("/monthly", h.Monthly)
	r.Get("/daily", h.Daily)
	r.Get("/categories", h.Categories)
	r.Get("/rfm", h.RFM)
	r.Get("/delivery", h.Delivery)
	r.Get("/payments", h.Payments)
	r.Get("/reviews", h.Reviews)
	r.Get("/states", h.States)

	return r
}

// Overview handles GET /api/analytics/overview
func (h *AnalyticsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, h.service.Overview(r.Context(), q))
}

// Monthly handles GET /api/analytics/monthly
func (h *AnalyticsHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, h.service.Monthly(r.Context(), q))
}

// Daily handles GET /api/analytics/daily
func (h *AnalyticsHandler) Daily(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, h.service.Daily(r.Context(), q))
}

// Categories handles GET /api/analytics/categories
func (h *AnalyticsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, h.service.Categories(r.Context(), q))
}

// RFM handles GET /api/analytics/rfm
func (h *AnalyticsHandler) RFM(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, h.service.RFM(r.Context(), q))
}

// Delivery handles GET /api/analytics/delivery
func (h *AnalyticsHandler) Delivery(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, h.service.Delivery(r.Context(), q))
}

// Payments handles GET /api/analytics/payments
func (h *AnalyticsHandler) Payments(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, h.service.Payments(r.Context(), q))
}

// Reviews handles GET /api/analytics/reviews
func (h *AnalyticsHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, h.service.Reviews(r.Context(), q))
}

// States handles GET /api/analytics/states
func (h *AnalyticsHandler) States(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, h.service.States(r.Context(), q))
}
