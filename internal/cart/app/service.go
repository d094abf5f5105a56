package app

import (
	"context"
	"errors"
	"time"

	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/cart/domain"
)

var ErrNotFound = errors.New("cart not found")

type Service struct {
	repo CartRepo
}

func NewService(repo CartRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, userID string) (domain.Cart, error) {
	return s.repo.Get(ctx, userID)
}

// GetOrCreate returns the user's cart, creating an empty one on first
// touch. A concurrent create is resolved by re-reading.
func (s *Service) GetOrCreate(ctx context.Context, userID string) (domain.Cart, error) {
	cart, err := s.repo.Get(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return domain.Cart{}, err
	}

	cart, err = s.repo.Create(ctx, userID)
	if err == nil {
		return cart, nil
	}

	// Lost the creation race: someone else made the cart, use theirs.
	return s.repo.Get(ctx, userID)
}

// ApplyUpdates merges a productID -> quantity-delta map into the cart.
// Existing lines are incremented, new products are inserted, and a line
// driven to zero or below is removed. This is the increment-on-add
// policy of the cart page's bulk update.
func (s *Service) ApplyUpdates(ctx context.Context, userID string, updates map[string]int64) (domain.Cart, error) {
	if len(updates) == 0 {
		return domain.Cart{}, errors.New("no cart updates supplied")
	}

	cart, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return domain.Cart{}, err
	}

	for productID, delta := range updates {
		current, present := cart.Quantity(productID)
		next := current + delta

		switch {
		case !present && delta <= 0:
			// Removing something that was never there is a no-op.
		case next <= 0:
			if err := s.repo.RemoveItem(ctx, cart.ID, productID); err != nil {
				return domain.Cart{}, err
			}
		case present:
			if err := s.repo.IncrementItem(ctx, cart.ID, domain.CartItem{ProductID: productID, Quantity: delta}); err != nil {
				return domain.Cart{}, err
			}
		default:
			if err := s.repo.SetItemQuantity(ctx, cart.ID, domain.CartItem{ProductID: productID, Quantity: delta}); err != nil {
				return domain.Cart{}, err
			}
		}
	}

	return s.repo.Get(ctx, userID)
}

// SetItemQuantity is the replace-on-explicit-update policy: the given
// quantity overwrites whatever the cart held; zero or less removes the
// line.
func (s *Service) SetItemQuantity(ctx context.Context, userID, productID string, quantity int64) (domain.Cart, error) {
	cart, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return domain.Cart{}, err
	}

	if quantity <= 0 {
		err = s.repo.RemoveItem(ctx, cart.ID, productID)
	} else {
		err = s.repo.SetItemQuantity(ctx, cart.ID, domain.CartItem{ProductID: productID, Quantity: quantity})
	}
	if err != nil {
		return domain.Cart{}, err
	}

	return s.repo.Get(ctx, userID)
}

func (s *Service) RemoveItem(ctx context.Context, userID, productID string) (domain.Cart, error) {
	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		return domain.Cart{}, err
	}

	if err := s.repo.RemoveItem(ctx, cart.ID, productID); err != nil {
		return domain.Cart{}, err
	}

	return s.repo.Get(ctx, userID)
}

// Clear empties the cart but keeps the document, so the user's next add
// lands in the same cart.
func (s *Service) Clear(ctx context.Context, userID string) error {
	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	return s.repo.Clear(ctx, cart.ID)
}

func (s *Service) ClearIfUnchanged(ctx context.Context, cartID string, since time.Time) (bool, error) {
	return s.repo.ClearIfUnchanged(ctx, cartID, since)
}
