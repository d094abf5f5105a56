package http

import (
	"errors"
	"log/slog"
	"net/http"

	authhttp "github.com/Carole-Bou-Shakra/Quick-Shop/internal/auth/http"
	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/review/app"
	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/review/domain"
	"github.com/Carole-Bou-Shakra/Quick-Shop/pkg/httpx"
)

type Handler struct {
	svc *app.Service
	log *slog.Logger
}

func NewHandler(svc *app.Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

type reviewRequest struct {
	ProductID string `json:"product"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	identity, _ := authhttp.FromContext(r.Context())

	var req reviewRequest
	if err := httpx.Decode(r, &req); err != nil || req.ProductID == "" {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request.")
		return
	}

	rv, err := h.svc.Create(r.Context(), domain.Review{
		UserID:    identity.UserID,
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		h.fail(w, err)
		return
	}

	httpx.OK(w, "Review was created successfully!", rv)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	rv, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.OK(w, "Review found successfully!", rv)
}

func (h *Handler) ListByProduct(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.svc.ListByProduct(r.Context(), r.PathValue("productId"))
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.OK(w, "Reviews fetched successfully!", reviews)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	identity, _ := authhttp.FromContext(r.Context())

	var req reviewRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request.", err.Error())
		return
	}

	rv, err := h.svc.Update(r.Context(), r.PathValue("id"), identity.UserID, req.Rating, req.Comment)
	if err != nil {
		h.fail(w, err)
		return
	}

	httpx.OK(w, "Review updated successfully!", rv)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, _ := authhttp.FromContext(r.Context())

	if err := h.svc.Delete(r.Context(), r.PathValue("id"), identity.UserID); err != nil {
		h.fail(w, err)
		return
	}

	httpx.OK(w, "Review deleted successfully!", nil)
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrNotFound):
		httpx.Fail(w, http.StatusNotFound, "Review not found!")
	case errors.Is(err, app.ErrForbidden):
		httpx.Fail(w, http.StatusForbidden, "Forbidden!", err.Error())
	case errors.Is(err, app.ErrInvalidInput):
		httpx.Fail(w, http.StatusBadRequest, "Invalid request.", err.Error())
	default:
		h.log.Error("review request failed", slog.Any("err", err))
		httpx.Fail(w, http.StatusInternalServerError, "Something went wrong!", err.Error())
	}
}
