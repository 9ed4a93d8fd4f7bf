/*
handlers.go - HTTP handlers for the inventory dashboard

PURPOSE:
  Exposes the stock ledger via REST. Handles HTTP request/response,
  JSON serialization, and input validation, and delegates to the
  ledger for mutations and view derivations.

ENDPOINTS:
  GET    /api/products             Product summary cards
  GET    /api/products/{id}/trend  Per-product trend series
  GET    /api/stats                Dashboard KPIs
  GET    /api/events               Filtered history log
  GET    /api/events/export        Filtered history as CSV download
  POST   /api/stock/actions        Apply an inbound/outbound/damaged action

REQUEST FLOW (mutation):
  1. Decode and structurally validate the request (validator tags)
  2. Run the ledger's pre-condition check (clean-stock ceiling)
  3. Apply the event
  4. Return the updated product snapshot + recorded event

ERROR HANDLING:
  - 400: Validation errors, invalid filters
  - 404: Unknown product id
  - 409: Export of an empty filtered view
  - 500: Internal errors
  Persistence failures never reach a response; the ledger logs and
  swallows them.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/warp/inventory-engine/ledger"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Ledger   *ledger.Ledger
	Log      *logrus.Logger
	validate *validator.Validate
}

// NewHandler creates a handler over the given ledger.
func NewHandler(led *ledger.Ledger, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		Ledger:   led,
		Log:      log,
		validate: validator.New(),
	}
}

// =============================================================================
// READ HANDLERS
// =============================================================================

// ListProducts returns summary cards for every catalog product.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products := h.Ledger.Products()
	dtos := make([]ProductDTO, len(products))
	for i, p := range products {
		dtos[i] = toProductDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetStats returns the dashboard KPI summary.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats := ledger.ComputeStats(h.Ledger.Products())
	value, _ := stats.TotalCleanValue.Float64()
	writeJSON(w, http.StatusOK, StatsDTO{
		TotalItems:        stats.TotalItems,
		TotalCleanValue:   value,
		LowStockProducts:  stats.LowStockProducts,
		TotalDamagedItems: stats.TotalDamagedItems,
	})
}

// GetTrend returns the cumulative trend series for one product.
func (h *Handler) GetTrend(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, ok := h.Ledger.Product(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Product not found", nil)
		return
	}

	series := ledger.TrendSeries(product, h.Ledger.Events(), time.Now().UTC())
	writeJSON(w, http.StatusOK, toTrendDTOs(series))
}

// ListEvents returns the filtered history log, most recent first.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	filter, err := historyFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	events := ledger.FilterEvents(h.Ledger.Events(), filter)
	writeJSON(w, http.StatusOK, toEventDTOs(events))
}

// ExportEvents streams the filtered history as a CSV download.
// An empty filtered view is refused with a notice instead of a file.
func (h *Handler) ExportEvents(w http.ResponseWriter, r *http.Request) {
	filter, err := historyFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	blob, err := ledger.ExportCSV(ledger.FilterEvents(h.Ledger.Events(), filter))
	if err != nil {
		if errors.Is(err, ledger.ErrNothingToExport) {
			writeError(w, http.StatusConflict, "No records to export", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to export history", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ledger.ExportFilename))
	w.WriteHeader(http.StatusOK)
	w.Write(blob)
}

// historyFilter parses the history filter dimensions from query params.
func historyFilter(r *http.Request) (ledger.HistoryFilter, error) {
	q := r.URL.Query()
	filter := ledger.HistoryFilter{
		Search:    q.Get("q"),
		ProductID: q.Get("product_id"),
		Date:      q.Get("date"),
	}

	if kind := q.Get("kind"); kind != "" {
		k := ledger.EventKind(kind)
		if !k.Valid() {
			return ledger.HistoryFilter{}, fmt.Errorf("unknown event kind %q", kind)
		}
		filter.Kind = k
	}
	if filter.Date != "" {
		if _, err := time.Parse("2006-01-02", filter.Date); err != nil {
			return ledger.HistoryFilter{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", filter.Date)
		}
	}
	return filter, nil
}

// =============================================================================
// MUTATION HANDLER
// =============================================================================

// ApplyStockAction validates and applies a stock movement.
func (h *Handler) ApplyStockAction(w http.ResponseWriter, r *http.Request) {
	var req StockActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Select a product and enter a valid quantity", err)
		return
	}

	kind := ledger.EventKind(req.Kind)
	if err := h.Ledger.ValidateAction(req.ProductID, req.Quantity, kind); err != nil {
		var short *ledger.InsufficientStockError
		switch {
		case errors.As(err, &short):
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("Quantity exceeds available clean stock (%d)", short.Available), nil)
		case ledger.IsNotFound(err):
			writeError(w, http.StatusNotFound, "Product not found", nil)
		case ledger.IsClientError(err):
			writeError(w, http.StatusBadRequest, err.Error(), nil)
		default:
			writeError(w, http.StatusInternalServerError, "Failed to validate action", err)
		}
		return
	}

	product, event, err := h.Ledger.ApplyEvent(r.Context(), req.ProductID, req.Quantity, kind)
	if err != nil {
		if ledger.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Product not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to apply stock action", err)
		return
	}

	writeJSON(w, http.StatusCreated, StockActionResponse{
		Product: toProductDTO(product),
		Event:   toEventDTO(event),
	})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
