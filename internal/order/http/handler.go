package http

import (
	"errors"
	"log/slog"
	"net/http"

	authhttp "github.com/Carole-Bou-Shakra/Quick-Shop/internal/auth/http"
	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/order/app"
	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/order/domain"
	"github.com/Carole-Bou-Shakra/Quick-Shop/pkg/httpx"
)

type Handler struct {
	svc *app.Service
	log *slog.Logger
}

func NewHandler(svc *app.Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	identity, _ := authhttp.FromContext(r.Context())

	o, err := h.svc.Get(r.Context(), r.PathValue("id"), identity.UserID)
	if err != nil {
		h.fail(w, err)
		return
	}

	httpx.OK(w, "Order found successfully!", o)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	identity, _ := authhttp.FromContext(r.Context())

	orders, err := h.svc.ListByUser(r.Context(), identity.UserID)
	if err != nil {
		h.fail(w, err)
		return
	}

	httpx.OK(w, "Orders fetched successfully!", orders)
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus is the sole post-creation mutation; an unknown order id
// is a 404, never an implicit create.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	identity, _ := authhttp.FromContext(r.Context())

	var req statusRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request.", err.Error())
		return
	}

	o, err := h.svc.UpdateStatus(r.Context(), r.PathValue("id"), identity.UserID, domain.Status(req.Status))
	if err != nil {
		h.fail(w, err)
		return
	}

	httpx.OK(w, "Order updated successfully!", o)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, _ := authhttp.FromContext(r.Context())

	if err := h.svc.Delete(r.Context(), r.PathValue("id"), identity.UserID); err != nil {
		h.fail(w, err)
		return
	}

	httpx.OK(w, "Order deleted successfully!", nil)
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrNotFound):
		httpx.Fail(w, http.StatusNotFound, "Order not found!")
	case errors.Is(err, app.ErrForbidden):
		httpx.Fail(w, http.StatusForbidden, "Forbidden!", err.Error())
	case errors.Is(err, app.ErrInvalidStatus), errors.Is(err, app.ErrBadTransition):
		httpx.Fail(w, http.StatusBadRequest, "Invalid request.", err.Error())
	default:
		h.log.Error("order request failed", slog.Any("err", err))
		httpx.Fail(w, http.StatusInternalServerError, "Something went wrong!", err.Error())
	}
}
