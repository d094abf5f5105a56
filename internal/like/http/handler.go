package http

import (
	"context"
	"log/slog"
	"net/http"

	authhttp "github.com/Carole-Bou-Shakra/Quick-Shop/internal/auth/http"
	catalogdomain "github.com/Carole-Bou-Shakra/Quick-Shop/internal/catalog/domain"
	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/like/app"
	"github.com/Carole-Bou-Shakra/Quick-Shop/pkg/httpx"
)

// ProductFinder joins product data into the favorites view.
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

type toggleResponse struct {
	ProductID string `json:"product"`
	Liked     bool   `json:"liked"`
}

func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	identity, _ := authhttp.FromContext(r.Context())
	productID := r.PathValue("productId")

	liked, err := h.svc.Toggle(r.Context(), identity.UserID, productID)
	if err != nil {
		h.fail(w, err)
		return
	}

	message := "Like removed!"
	if liked {
		message = "Like created!"
	}
	httpx.OK(w, message, toggleResponse{ProductID: productID, Liked: liked})
}

// Favorites returns the user's liked products with catalog data joined
// in. Likes whose product has since been deleted are dropped from the
// view.
func (h *Handler) Favorites(w http.ResponseWriter, r *http.Request) {
	identity, _ := authhttp.FromContext(r.Context())

	likes, err := h.svc.ListByUser(r.Context(), identity.UserID)
	if err != nil {
		h.fail(w, err)
		return
	}
	if len(likes) == 0 {
		httpx.OK(w, "No likes found for this user.", []catalogdomain.Product{})
		return
	}

	ids := make([]string, 0, len(likes))
	for _, l := range likes {
		ids = append(ids, l.ProductID)
	}

	products, err := h.products.FindByIDs(r.Context(), ids)
	if err != nil {
		h.fail(w, err)
		return
	}

	httpx.OK(w, "Favorites fetched successfully!", products)
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	h.log.Error("like request failed", slog.Any("err", err))
	httpx.Fail(w, http.StatusInternalServerError, "Something went wrong!", err.Error())
}
