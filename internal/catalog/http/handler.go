package http

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/catalog/app"
	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/catalog/domain"
	"github.com/Carole-Bou-Shakra/Quick-Shop/pkg/httpx"
)

const (
	maxUploadBytes = 20 << 20
	maxPictures    = 5
)

// PictureSaver stores uploaded product pictures and returns the public
// paths to embed in the product record.
type PictureSaver interface {
	SavePictures(files []*multipart.FileHeader) ([]string, error)
}

type Handler struct {
	svc      *app.Service
	pictures PictureSaver
	log      *slog.Logger
}

func NewHandler(svc *app.Service, pictures PictureSaver, log *slog.Logger) *Handler {
	return &Handler{svc: svc, pictures: pictures, log: log}
}

// Create takes a multipart form: name, description, price, category and
// 1-5 picture files, matching the storefront's product form.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request.", "multipart form expected")
		return
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request.", "price must be a number")
		return
	}

	files := r.MultipartForm.File["pictures"]
	if len(files) == 0 || len(files) > maxPictures {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request.", "between 1 and 5 pictures required")
		return
	}

	paths, err := h.pictures.SavePictures(files)
	if err != nil {
		h.log.Error("picture upload failed", slog.Any("err", err))
		httpx.Fail(w, http.StatusInternalServerError, "Something went wrong!", err.Error())
		return
	}

	p, err := h.svc.CreateProduct(r.Context(), domain.Product{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Price:       price,
		Category:    r.FormValue("category"),
		Pictures:    paths,
	})
	if err != nil {
		h.fail(w, err)
		return
	}

	httpx.OK(w, "Product created!", p)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.OK(w, "Product found successfully!", p)
}

type listResponse struct {
	Products []domain.Product `json:"products"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	products, total, err := h.svc.ListProducts(r.Context(), q.Get("search"), page, limit)
	if err != nil {
		h.fail(w, err)
		return
	}

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	httpx.OK(w, "Products fetched successfully!", listResponse{
		Products: products,
		Total:    total,
		Page:     page,
		Limit:    limit,
	})
}

type updateRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Pictures    []string `json:"pictures"`
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request.", err.Error())
		return
	}

	p, err := h.svc.UpdateProduct(r.Context(), domain.Product{
		ID:          r.PathValue("id"),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Pictures:    req.Pictures,
	})
	if err != nil {
		h.fail(w, err)
		return
	}

	httpx.OK(w, "Product updated successfully!", p)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteProduct(r.Context(), r.PathValue("id")); err != nil {
		h.fail(w, err)
		return
	}
	httpx.OK(w, "Product deleted successfully!", nil)
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrNotFound):
		httpx.Fail(w, http.StatusNotFound, "Product not found!")
	case errors.Is(err, app.ErrInvalidInput):
		httpx.Fail(w, http.StatusBadRequest, "Invalid request.", err.Error())
	default:
		h.log.Error("product request failed", slog.Any("err", err))
		httpx.Fail(w, http.StatusInternalServerError, "Something went wrong!", err.Error())
	}
}
