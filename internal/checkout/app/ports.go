package app

import (
	"context"
	"time"

	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/checkout/domain"
	orderdomain "github.com/Carole-Bou-Shakra/Quick-Shop/internal/order/domain"
)

// CartStore is the slice of the cart service checkout consumes. Load on
// an absent cart returns a snapshot with an empty CartID and no items.
type CartStore interface {
	Load(ctx context.Context, userID string) (domain.CartSnapshot, error)
	// ClearIfUnchanged empties the cart only if it has not moved since
	// the snapshot was taken; reports whether the clear applied.
	ClearIfUnchanged(ctx context.Context, cartID string, since time.Time) (bool, error)
}

// CatalogReader resolves the whole id set in one batched lookup; ids
// with no matching product are absent from the result.
type CatalogReader interface {
	FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
}

type OrderWriter interface {
	Create(ctx context.Context, o orderdomain.Order) (orderdomain.Order, error)
}
