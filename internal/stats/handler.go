package stats

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"posadmin/internal/platform/middleware"
	"posadmin/pkg/platform/httputil"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/api/sales-data", h.handleSalesData)
	r.Get("/api/top-products", h.handleTopProducts)
	r.Get("/api/total-products", h.handleTotalProducts)
	r.Get("/api/total-stock", h.handleTotalStock)
	r.Get("/api/rated-products-count", h.handleRatedProductsCount)
}

func (h *Handler) handleSalesData(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.SalesData(r.Context(), r.URL.Query().Get("timeFrame"))
	if err != nil {
		h.logError(r, "failed to fetch sales data", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, data)
}

func (h *Handler) handleTopProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.TopProducts(r.Context())
	if err != nil {
		h.logError(r, "failed to fetch top products", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, products)
}

func (h *Handler) handleTotalProducts(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.TotalProducts(r.Context())
	if err != nil {
		h.logError(r, "failed to fetch total products", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]int{"totalProducts": n})
}

func (h *Handler) handleTotalStock(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.TotalStock(r.Context())
	if err != nil {
		h.logError(r, "failed to fetch total stock", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]int{"totalStock": n})
}

func (h *Handler) handleRatedProductsCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.RatedProductsCount(r.Context(), r.URL.Query().Get("timeFrame"))
	if err != nil {
		h.logError(r, "failed to fetch rated products count", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]int{"ratedProductsCount": n})
}

func (h *Handler) logError(r *http.Request, msg string, err error) {
	ctx := r.Context()
	h.logger.WarnContext(ctx, msg,
		"error", err,
		"request_id", middleware.GetRequestID(ctx),
	)
}
