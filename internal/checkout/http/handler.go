package http

import (
	"errors"
	"log/slog"
	"net/http"

	authhttp "github.com/Carole-Bou-Shakra/Quick-Shop/internal/auth/http"
	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/checkout/app"
	"github.com/Carole-Bou-Shakra/Quick-Shop/pkg/httpx"
)

type Handler struct {
	svc *app.Service
	log *slog.Logger
}

func NewHandler(svc *app.Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

type checkoutRequest struct {
	Address string `json:"address"`
}

// Checkout converts the authenticated user's cart into an order. The
// user comes from the token, never from the body, so nobody checks out
// on someone else's behalf.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	identity, _ := authhttp.FromContext(r.Context())

	var req checkoutRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request.", err.Error())
		return
	}

	order, err := h.svc.Checkout(r.Context(), identity.UserID, req.Address)
	if err != nil {
		status, message := statusFromCheckoutErr(err)
		if status == http.StatusInternalServerError {
			h.log.Error("checkout failed", slog.String("user_id", identity.UserID), slog.Any("err", err))
		}
		httpx.Fail(w, status, message, err.Error())
		return
	}

	httpx.OK(w, "Order was created successfully!", order)
}

func statusFromCheckoutErr(err error) (int, string) {
	var notFound *app.ProductNotFoundError
	switch {
	case errors.Is(err, app.ErrEmptyCart):
		return http.StatusBadRequest, "Your cart is empty!"
	case errors.Is(err, app.ErrMissingAddress):
		return http.StatusBadRequest, "Delivery address is required!"
	case errors.Is(err, app.ErrInvalidQuantity):
		return http.StatusBadRequest, "Invalid request."
	case errors.As(err, &notFound):
		return http.StatusNotFound, "Product not found!"
	default:
		return http.StatusInternalServerError, "Something went wrong!"
	}
}
