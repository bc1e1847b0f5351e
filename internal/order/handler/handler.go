// Package handler exposes the sales report endpoints: order listing, status
// transitions, date edits, and soft removal from the report.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"posadmin/internal/order/models"
	"posadmin/internal/platform/middleware"
	dErrors "posadmin/pkg/domain-errors"
	"posadmin/pkg/platform/httputil"
)

// Service is the order lifecycle surface the handler depends on.
type Service interface {
	List(ctx context.Context, search string) ([]*models.Order, error)
	SetStatus(ctx context.Context, id int64, rawStatus string) error
	Cancel(ctx context.Context, id int64) error
	EditOrderDate(ctx context.Context, id int64, orderDate time.Time) error
	RemoveFromSalesReport(ctx context.Context, id int64) error
}

type Handler struct {
	logger  *slog.Logger
	service Service
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/api/orders", h.handleList)
	r.Put("/api/orders/{id}/status", h.handleSetStatus)
	r.Put("/api/orders/{id}/cancel", h.handleCancel)
	r.Put("/api/orders/{id}", h.handleEditDate)
	r.Delete("/api/orders/{id}/salesreport", h.handleRemoveFromSalesReport)
}

type setStatusRequest struct {
	Status string `json:"status"`
}

type editDateRequest struct {
	OrderDate string `json:"order_date"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.logError(r, "failed to list orders", err)
		httputil.WriteError(w, err)
		return
	}
	if orders == nil {
		orders = []*models.Order{}
	}
	httputil.WriteJSON(w, http.StatusOK, orders)
}

func (h *Handler) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	var req setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if err := h.service.SetStatus(r.Context(), id, req.Status); err != nil {
		h.logError(r, "status transition rejected", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Order status updated successfully",
		"status":  req.Status,
	})
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	if err := h.service.Cancel(r.Context(), id); err != nil {
		h.logError(r, "cancel rejected", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Order cancelled successfully",
	})
}

func (h *Handler) handleEditDate(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	var req editDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	orderDate, err := parseOrderDate(req.OrderDate)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.EditOrderDate(r.Context(), id, orderDate); err != nil {
		h.logError(r, "date edit rejected", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Order date updated successfully",
	})
}

func (h *Handler) handleRemoveFromSalesReport(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	if err := h.service.RemoveFromSalesReport(r.Context(), id); err != nil {
		h.logError(r, "sales report removal rejected", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Order removed from sales report successfully",
	})
}

func orderID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid order id"))
		return 0, false
	}
	return id, true
}

// parseOrderDate accepts RFC 3339 and the datetime-local format the admin
// date picker submits.
func parseOrderDate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, dErrors.New(dErrors.CodeBadRequest, "invalid order_date")
}

func (h *Handler) logError(r *http.Request, msg string, err error) {
	ctx := r.Context()
	h.logger.WarnContext(ctx, msg,
		"error", err,
		"request_id", middleware.GetRequestID(ctx),
	)
}
