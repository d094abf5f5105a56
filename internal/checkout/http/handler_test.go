package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/checkout/app"
)

func TestStatusFromCheckoutErr(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "empty cart",
			err:        app.ErrEmptyCart,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Your cart is empty!",
		},
		{
			name:       "missing address",
			err:        app.ErrMissingAddress,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Delivery address is required!",
		},
		{
			name:       "invalid quantity, wrapped",
			err:        fmt.Errorf("%w: product p1 has quantity 0", app.ErrInvalidQuantity),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Invalid request.",
		},
		{
			name:       "product vanished",
			err:        &app.ProductNotFoundError{ProductID: "p1"},
			wantStatus: http.StatusNotFound,
			wantMsg:    "Product not found!",
		},
		{
			name:       "store failure, wrapped",
			err:        fmt.Errorf("%w: persist order: timeout", app.ErrPersistence),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Something went wrong!",
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Something went wrong!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := statusFromCheckoutErr(tt.err)
			if status != tt.wantStatus {
				t.Errorf("status: got %d, want %d", status, tt.wantStatus)
			}
			if msg != tt.wantMsg {
				t.Errorf("message: got %q, want %q", msg, tt.wantMsg)
			}
		})
	}
}
