package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "shoplens/internal/errors"
	"shoplens/internal/services"
)

// DataHandler serves the raw record table and the download endpoints.
type DataHandler struct {
	service      *services.DataService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDataHandler creates the data handler.
func NewDataHandler(service *services.DataService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DataHandler {
	return &DataHandler{
		service:      service,
		logger:       logger.With(slog.String("handler", "data")),
		errorHandler: errorHandler,
	}
}

// Routes returns the data routes.
func (h *DataHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.With(render.SetContentType(render.ContentTypeJSON)).Get("/records", h.Records)
	r.With(render.SetContentType(render.ContentTypeJSON)).Get("/meta", h.Meta)
	r.Get("/export/csv", h.ExportCSV)
	r.Get("/export/xlsx", h.ExportExcel)

	return r
}

// Records handles GET /api/data/records with page and per_page parameters.
func (h *DataHandler) Records(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	page, err := parsePositiveInt(r, "page", 1)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	perPage, err := parsePositiveInt(r, "per_page", 0)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, h.service.Records(r.Context(), q, page, perPage))
}

// Meta handles GET /api/data/meta
func (h *DataHandler) Meta(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Meta(r.Context()))
}

// ExportCSV handles GET /api/data/export/csv, streaming the selection as a
// CSV download.
func (h *DataHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	filename := fmt.Sprintf("sales_%s.csv", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if err := h.service.ExportRecords(r.Context(), w, q); err != nil {
		// headers are already written; all we can do is log
		h.logger.ErrorContext(r.Context(), "csv export failed", slog.String("error", err.Error()))
	}
}

// ExportExcel handles GET /api/data/export/xlsx, streaming the full report
// workbook.
func (h *DataHandler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	filename := fmt.Sprintf("report_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if err := h.service.ExportReport(r.Context(), w, q); err != nil {
		h.logger.ErrorContext(r.Context(), "xlsx export failed", slog.String("error", err.Error()))
	}
}
