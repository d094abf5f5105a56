package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	authhttp "github.com/Carole-Bou-Shakra/Quick-Shop/internal/auth/http"
	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/cart/app"
	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/cart/domain"
	catalogdomain "github.com/Carole-Bou-Shakra/Quick-Shop/internal/catalog/domain"
	"github.com/Carole-Bou-Shakra/Quick-Shop/pkg/httpx"
)

// ProductFinder joins product display data into the cart view.
type ProductFinder interface {
	FindByIDs(ctx context.Context, ids []string) ([]catalogdomain.Product, error)
}

type Handler struct {
	svc      *app.Service
	products ProductFinder
	log      *slog.Logger
}

func NewHandler(svc *app.Service, products ProductFinder, log *slog.Logger) *Handler {
	return &Handler{svc: svc, products: products, log: log}
}

type cartLine struct {
	Product  *catalogdomain.Product `json:"product"`
	Quantity int64                  `json:"quantity"`
}

// Get returns the authenticated user's cart with product details joined
// in, the shape the cart page renders directly. An absent cart reads as
// empty.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	identity, _ := authhttp.FromContext(r.Context())

	cart, err := h.svc.Get(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, app.ErrNotFound) {
			httpx.OK(w, "Your cart is empty!", []cartLine{})
			return
		}
		h.fail(w, err)
		return
	}
	if len(cart.Items) == 0 {
		httpx.OK(w, "Your cart is empty!", []cartLine{})
		return
	}

	ids := make([]string, 0, len(cart.Items))
	for _, it := range cart.Items {
		ids = append(ids, it.ProductID)
	}

	products, err := h.products.FindByIDs(r.Context(), ids)
	if err != nil {
		h.fail(w, err)
		return
	}
	byID := make(map[string]catalogdomain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := make([]cartLine, 0, len(cart.Items))
	for _, it := range cart.Items {
		line := cartLine{Quantity: it.Quantity}
		if p, ok := byID[it.ProductID]; ok {
			line.Product = &p
		}
		lines = append(lines, line)
	}

	httpx.OK(w, "Cart fetched successfully!", lines)
}

type updateRequest struct {
	// Cart maps product id to a quantity delta; quantities of existing
	// lines are incremented, not replaced.
	Cart map[string]int64 `json:"cart"`
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	identity, _ := authhttp.FromContext(r.Context())

	var req updateRequest
	if err := httpx.Decode(r, &req); err != nil || len(req.Cart) == 0 {
		httpx.Fail(w, http.StatusBadRequest, "Invalid cart format.")
		return
	}

	cart, err := h.svc.ApplyUpdates(r.Context(), identity.UserID, req.Cart)
	if err != nil {
		h.fail(w, err)
		return
	}

	httpx.OK(w, "Cart updated successfully!", cart)
}

type setItemRequest struct {
	ProductID string `json:"product"`
	Quantity  int64  `json:"quantity"`
}

func (h *Handler) SetItem(w http.ResponseWriter, r *http.Request) {
	identity, _ := authhttp.FromContext(r.Context())

	var req setItemRequest
	if err := httpx.Decode(r, &req); err != nil || req.ProductID == "" {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request.")
		return
	}

	cart, err := h.svc.SetItemQuantity(r.Context(), identity.UserID, req.ProductID, req.Quantity)
	if err != nil {
		h.fail(w, err)
		return
	}

	httpx.OK(w, "Cart updated successfully!", cart)
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	identity, _ := authhttp.FromContext(r.Context())

	cart, err := h.svc.RemoveItem(r.Context(), identity.UserID, r.PathValue("productId"))
	if err != nil {
		if errors.Is(err, app.ErrNotFound) {
			httpx.Fail(w, http.StatusNotFound, "Cart not found!")
			return
		}
		h.fail(w, err)
		return
	}

	httpx.OK(w, "Item removed from cart!", cart)
}

func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	identity, _ := authhttp.FromContext(r.Context())

	if err := h.svc.Clear(r.Context(), identity.UserID); err != nil {
		h.fail(w, err)
		return
	}

	httpx.OK(w, "Cart cleared!", domain.Cart{Items: []domain.CartItem{}})
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	h.log.Error("cart request failed", slog.Any("err", err))
	httpx.Fail(w, http.StatusInternalServerError, "Something went wrong!", err.Error())
}
