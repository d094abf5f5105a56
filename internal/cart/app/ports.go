package app

import (
	"context"
	"time"

	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/cart/domain"
)

type CartRepo interface {
	Get(ctx context.Context, userID string) (domain.Cart, error)
	Create(ctx context.Context, userID string) (domain.Cart, error)
	IncrementItem(ctx context.Context, cartID string, item domain.CartItem) error
	SetItemQuantity(ctx context.Context, cartID string, item domain.CartItem) error
	RemoveItem(ctx context.Context, cartID, productID string) error
	Clear(ctx context.Context, cartID string) error
	// ClearIfUnchanged empties the cart only when it has not been
	// touched since the given timestamp; reports whether it applied.
	ClearIfUnchanged(ctx context.Context, cartID string, since time.Time) (bool, error)
}
