package main

import (
	"net/http"

	authapp "github.com/Carole-Bou-Shakra/Quick-Shop/internal/auth/app"
	authhttp "github.com/Carole-Bou-Shakra/Quick-Shop/internal/auth/http"
	carthttp "github.com/Carole-Bou-Shakra/Quick-Shop/internal/cart/http"
	cataloghttp "github.com/Carole-Bou-Shakra/Quick-Shop/internal/catalog/http"
	checkouthttp "github.com/Carole-Bou-Shakra/Quick-Shop/internal/checkout/http"
	likehttp "github.com/Carole-Bou-Shakra/Quick-Shop/internal/like/http"
	orderhttp "github.com/Carole-Bou-Shakra/Quick-Shop/internal/order/http"
	reviewhttp "github.com/Carole-Bou-Shakra/Quick-Shop/internal/review/http"
	userhttp "github.com/Carole-Bou-Shakra/Quick-Shop/internal/user/http"
	"github.com/Carole-Bou-Shakra/Quick-Shop/pkg/metrics"
)

type handlers struct {
	tokens   *authapp.Service
	user     *userhttp.Handler
	product  *cataloghttp.Handler
	cart     *carthttp.Handler
	checkout *checkouthttp.Handler
	order    *orderhttp.Handler
	review   *reviewhttp.Handler
	like     *likehttp.Handler
}

func newRouter(h handlers, uploadDir string) *http.ServeMux {
	mux := http.NewServeMux()
	auth := func(next http.HandlerFunc) http.HandlerFunc {
		return authhttp.Require(h.tokens, next)
	}

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.Handle("GET /metrics", metrics.Handler())

	mux.Handle("GET /images/", http.StripPrefix("/images/", http.FileServer(http.Dir(uploadDir))))

	mux.HandleFunc("POST /api/v1/user/create", h.user.Create)
	mux.HandleFunc("POST /api/v1/user/login", h.user.Login)
	mux.HandleFunc("GET /api/v1/user/{id}", auth(h.user.Get))
	mux.HandleFunc("PUT /api/v1/user/update/{id}", auth(h.user.Update))
	mux.HandleFunc("DELETE /api/v1/user/delete/{id}", auth(h.user.Delete))

	mux.HandleFunc("POST /api/v1/product/create", h.product.Create)
	mux.HandleFunc("GET /api/v1/product", h.product.List)
	mux.HandleFunc("GET /api/v1/product/{id}", h.product.Get)
	mux.HandleFunc("PUT /api/v1/product/update/{id}", h.product.Update)
	mux.HandleFunc("DELETE /api/v1/product/delete/{id}", h.product.Delete)

	mux.HandleFunc("GET /api/v1/cart/get", auth(h.cart.Get))
	mux.HandleFunc("PUT /api/v1/cart/update", auth(h.cart.Update))
	mux.HandleFunc("PUT /api/v1/cart/item", auth(h.cart.SetItem))
	mux.HandleFunc("DELETE /api/v1/cart/item/{productId}", auth(h.cart.RemoveItem))
	mux.HandleFunc("DELETE /api/v1/cart/clear", auth(h.cart.Clear))

	mux.HandleFunc("POST /api/v1/order/checkout", auth(h.checkout.Checkout))
	mux.HandleFunc("GET /api/v1/order", auth(h.order.List))
	mux.HandleFunc("GET /api/v1/order/{id}", auth(h.order.Get))
	mux.HandleFunc("PUT /api/v1/order/update/{id}", auth(h.order.UpdateStatus))
	mux.HandleFunc("DELETE /api/v1/order/delete/{id}", auth(h.order.Delete))

	mux.HandleFunc("POST /api/v1/review/create", auth(h.review.Create))
	mux.HandleFunc("GET /api/v1/review/{id}", h.review.Get)
	mux.HandleFunc("GET /api/v1/review/product/{productId}", h.review.ListByProduct)
	mux.HandleFunc("PUT /api/v1/review/update/{id}", auth(h.review.Update))
	mux.HandleFunc("DELETE /api/v1/review/delete/{id}", auth(h.review.Delete))

	mux.HandleFunc("PUT /api/v1/like/{productId}", auth(h.like.Toggle))
	mux.HandleFunc("GET /api/v1/like", auth(h.like.Favorites))

	return mux
}
