package adapter

import (
	"context"
	"errors"
	"time"

	cartapp "github.com/Carole-Bou-Shakra/Quick-Shop/internal/cart/app"
	checkoutdomain "github.com/Carole-Bou-Shakra/Quick-Shop/internal/checkout/domain"
)

type CartServiceStore struct {
	svc *cartapp.Service
}

func NewCartServiceStore(svc *cartapp.Service) *CartServiceStore {
	return &CartServiceStore{svc: svc}
}

// Load maps "no cart yet" to an empty snapshot: checkout treats both
// the same way.
func (a *CartServiceStore) Load(ctx context.Context, userID string) (checkoutdomain.CartSnapshot, error) {
	cart, err := a.svc.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, cartapp.ErrNotFound) {
			return checkoutdomain.CartSnapshot{}, nil
		}
		return checkoutdomain.CartSnapshot{}, err
	}

	items := make([]checkoutdomain.CartItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, checkoutdomain.CartItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}

	return checkoutdomain.CartSnapshot{
		CartID:    cart.ID,
		Items:     items,
		UpdatedAt: cart.UpdatedAt,
	}, nil
}

func (a *CartServiceStore) ClearIfUnchanged(ctx context.Context, cartID string, since time.Time) (bool, error) {
	return a.svc.ClearIfUnchanged(ctx, cartID, since)
}
