package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/auth/app"
	"github.com/Carole-Bou-Shakra/Quick-Shop/pkg/httpx"
)

type ctxKey struct{}

// FromContext returns the identity attached by Require. The second
// return is false on routes that never passed through the middleware.
func FromContext(ctx context.Context) (app.Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(app.Identity)
	return id, ok
}

// Require rejects the request with 401 before the handler runs unless a
// valid bearer token is presented. Fail-closed: no handler code executes
// on any auth error.
func Require(svc *app.Service, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			httpx.Fail(w, http.StatusUnauthorized, "Not authorized!", err.Error())
			return
		}

		id, err := svc.Verify(token)
		if err != nil {
			httpx.Fail(w, http.StatusUnauthorized, "Not authorized!", err.Error())
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	}
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", app.ErrMissingToken
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", app.ErrMalformedToken
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", app.ErrMissingToken
	}

	return token, nil
}
