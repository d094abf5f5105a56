package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/auth/app"
)

func TestRequire(t *testing.T) {
	svc := app.NewService([]byte("middleware-test-secret"), time.Hour)

	want := app.Identity{UserID: "u1", Name: "Carole", Email: "carole@example.com"}
	token, err := svc.Issue(want)
	require.NoError(t, err)

	var called bool
	var got app.Identity
	handler := Require(svc, func(w http.ResponseWriter, r *http.Request) {
		called = true
		got, _ = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{name: "no header", authHeader: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", authHeader: "Token " + token, wantStatus: http.StatusUnauthorized},
		{name: "empty token", authHeader: "Bearer  ", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", authHeader: "Bearer not.a.token", wantStatus: http.StatusUnauthorized},
		{name: "valid token", authHeader: "Bearer " + token, wantStatus: http.StatusOK},
		{name: "case-insensitive scheme", authHeader: "bearer " + token, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called = false
			got = app.Identity{}

			req := httptest.NewRequest(http.MethodGet, "/api/v1/cart/get", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			handler(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.True(t, called, "handler must run behind a valid token")
				assert.Equal(t, want, got)
			} else {
				assert.False(t, called, "handler must not run on an auth failure")
			}
		})
	}
}

func TestFromContextWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := FromContext(req.Context())
	assert.False(t, ok)
}
