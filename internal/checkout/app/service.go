package app

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/checkout/domain"
	orderdomain "github.com/Carole-Bou-Shakra/Quick-Shop/internal/order/domain"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrMissingAddress  = errors.New("delivery address is required")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	// ErrPersistence tags store failures; the caller surfaces them as a
	// retryable server error and the checkout is not complete.
	ErrPersistence = errors.New("store unavailable")
)

// ProductNotFoundError aborts the whole checkout: partial orders are
// never created.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s no longer exists", e.ProductID)
}

const lockStripes = 64

// Service converts a user's cart into an immutable order: load cart,
// batch-validate products, snapshot prices, persist, clear the cart.
type Service struct {
	cart    CartStore
	catalog CatalogReader
	orders  OrderWriter

	log       *slog.Logger
	opTimeout time.Duration

	// Checkouts for the same user are serialized through a striped
	// mutex so two concurrent requests cannot both turn the same
	// non-empty cart into orders.
	locks [lockStripes]sync.Mutex
}

func NewService(cart CartStore, catalog CatalogReader, orders OrderWriter, log *slog.Logger, opTimeout time.Duration) *Service {
	if opTimeout <= 0 {
		opTimeout = 5 * time.Second
	}
	return &Service{
		cart:      cart,
		catalog:   catalog,
		orders:    orders,
		log:       log,
		opTimeout: opTimeout,
	}
}

func (s *Service) userLock(userID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(userID))
	return &s.locks[h.Sum32()%lockStripes]
}

// Checkout runs one checkout attempt end to end. The user identity comes
// from the authenticated context, never from the request body. On any
// failure before the order is persisted there are no side effects; the
// one tolerated inconsistency is a cart-clear failure after the order
// exists, which is logged and the order still returned.
func (s *Service) Checkout(ctx context.Context, userID, address string) (orderdomain.Order, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return orderdomain.Order{}, ErrMissingAddress
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	cart, err := s.loadCart(ctx, userID)
	if err != nil {
		return orderdomain.Order{}, err
	}
	if len(cart.Items) == 0 {
		return orderdomain.Order{}, ErrEmptyCart
	}

	lines, total, err := s.price(ctx, cart.Items)
	if err != nil {
		return orderdomain.Order{}, err
	}

	created, err := s.persist(ctx, orderdomain.Order{
		UserID:     userID,
		Lines:      lines,
		TotalPrice: total,
		Address:    address,
		Status:     orderdomain.StatusPending,
	})
	if err != nil {
		return orderdomain.Order{}, err
	}

	s.clearCart(ctx, userID, created.ID, cart)

	return created, nil
}

func (s *Service) loadCart(ctx context.Context, userID string) (domain.CartSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	cart, err := s.cart.Load(ctx, userID)
	if err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("%w: load cart: %v", ErrPersistence, err)
	}
	return cart, nil
}

// price resolves every cart line against the catalog in one batched
// lookup and captures each product's current price. The captured prices
// are final: later catalog changes never touch this order.
func (s *Service) price(ctx context.Context, items []domain.CartItem) ([]orderdomain.Line, float64, error) {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if it.Quantity <= 0 {
			return nil, 0, fmt.Errorf("%w: product %s has quantity %d", ErrInvalidQuantity, it.ProductID, it.Quantity)
		}
		ids = append(ids, it.ProductID)
	}

	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	products, err := s.catalog.FindByIDs(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: resolve products: %v", ErrPersistence, err)
	}

	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := make([]orderdomain.Line, 0, len(items))
	var total float64
	for _, it := range items {
		p, ok := byID[it.ProductID]
		if !ok {
			return nil, 0, &ProductNotFoundError{ProductID: it.ProductID}
		}

		lineTotal := float64(it.Quantity) * p.Price
		lines = append(lines, orderdomain.Line{
			ProductID:  p.ID,
			Name:       p.Name,
			Picture:    p.Picture,
			Quantity:   it.Quantity,
			PriceOfOne: p.Price,
			LineTotal:  lineTotal,
		})
		total += lineTotal
	}

	return lines, total, nil
}

func (s *Service) persist(ctx context.Context, o orderdomain.Order) (orderdomain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	created, err := s.orders.Create(ctx, o)
	if err != nil {
		return orderdomain.Order{}, fmt.Errorf("%w: persist order: %v", ErrPersistence, err)
	}
	return created, nil
}

// clearCart empties the cart after the order is safely persisted. The
// clear is guarded on the snapshot timestamp; if it cannot be applied
// the order stands and the inconsistency is reported, not hidden.
func (s *Service) clearCart(ctx context.Context, userID, orderID string, cart domain.CartSnapshot) {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	cleared, err := s.cart.ClearIfUnchanged(ctx, cart.CartID, cart.UpdatedAt)
	switch {
	case err != nil:
		s.log.Warn("order created but cart clear failed",
			slog.String("user_id", userID),
			slog.String("order_id", orderID),
			slog.Any("err", err))
	case !cleared:
		s.log.Warn("order created but cart changed before clear",
			slog.String("user_id", userID),
			slog.String("order_id", orderID),
			slog.String("cart_id", cart.CartID))
	}
}
