package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/checkout/domain"
	orderdomain "github.com/Carole-Bou-Shakra/Quick-Shop/internal/order/domain"
)

type fakeCartStore struct {
	mu        sync.Mutex
	cartID    string
	items     []domain.CartItem
	updatedAt time.Time

	loadErr    error
	clearErr   error
	loadCalls  int
	clearCalls int
}

func (f *fakeCartStore) Load(ctx context.Context, userID string) (domain.CartSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loadCalls++
	if f.loadErr != nil {
		return domain.CartSnapshot{}, f.loadErr
	}
	items := make([]domain.CartItem, len(f.items))
	copy(items, f.items)
	return domain.CartSnapshot{CartID: f.cartID, Items: items, UpdatedAt: f.updatedAt}, nil
}

func (f *fakeCartStore) ClearIfUnchanged(ctx context.Context, cartID string, since time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clearCalls++
	if f.clearErr != nil {
		return false, f.clearErr
	}
	if cartID != f.cartID || !since.Equal(f.updatedAt) {
		return false, nil
	}
	f.items = nil
	f.updatedAt = f.updatedAt.Add(time.Second)
	return true, nil
}

type fakeCatalog struct {
	mu       sync.Mutex
	products map[string]domain.Product
	err      error
}

func (f *fakeCatalog) FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalog) setPrice(id string, price float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.products[id]
	p.Price = price
	f.products[id] = p
}

type fakeOrders struct {
	mu      sync.Mutex
	created []orderdomain.Order
	err     error
}

func (f *fakeOrders) Create(ctx context.Context, o orderdomain.Order) (orderdomain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return orderdomain.Order{}, f.err
	}
	o.ID = "order-1"
	o.CreatedAt = time.Now().UTC()
	f.created = append(f.created, o)
	return o, nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(discardWriter{}, nil))
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func fixtures() (*fakeCartStore, *fakeCatalog, *fakeOrders, *Service) {
	cart := &fakeCartStore{
		cartID: "cart-1",
		items: []domain.CartItem{
			{ProductID: "productA", Quantity: 2},
			{ProductID: "productB", Quantity: 1},
		},
		updatedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	catalog := &fakeCatalog{products: map[string]domain.Product{
		"productA": {ID: "productA", Name: "Scarf", Picture: "/images/a.jpg", Price: 10},
		"productB": {ID: "productB", Name: "Hat", Picture: "/images/b.jpg", Price: 25},
	}}
	orders := &fakeOrders{}
	svc := NewService(cart, catalog, orders, discard(), time.Second)
	return cart, catalog, orders, svc
}

func TestCheckout_Success(t *testing.T) {
	cart, _, orders, svc := fixtures()

	order, err := svc.Checkout(context.Background(), "user-1", "1 Main St")
	require.NoError(t, err)

	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, orderdomain.StatusPending, order.Status)
	assert.Equal(t, "1 Main St", order.Address)
	assert.Equal(t, 45.0, order.TotalPrice)

	require.Len(t, order.Lines, 2)
	assert.Equal(t, orderdomain.Line{
		ProductID: "productA", Name: "Scarf", Picture: "/images/a.jpg",
		Quantity: 2, PriceOfOne: 10, LineTotal: 20,
	}, order.Lines[0])
	assert.Equal(t, orderdomain.Line{
		ProductID: "productB", Name: "Hat", Picture: "/images/b.jpg",
		Quantity: 1, PriceOfOne: 25, LineTotal: 25,
	}, order.Lines[1])

	assert.Empty(t, cart.items, "cart must be emptied after checkout")
	require.Len(t, orders.created, 1)
}

func TestCheckout_TotalMatchesLines(t *testing.T) {
	_, _, _, svc := fixtures()

	order, err := svc.Checkout(context.Background(), "user-1", "1 Main St")
	require.NoError(t, err)

	var sum float64
	for _, ln := range order.Lines {
		sum += float64(ln.Quantity) * ln.PriceOfOne
	}
	assert.Equal(t, sum, order.TotalPrice)
}

func TestCheckout_EmptyCart(t *testing.T) {
	cart, _, orders, svc := fixtures()
	cart.items = nil

	_, err := svc.Checkout(context.Background(), "user-1", "1 Main St")
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, orders.created, "no order may be created from an empty cart")
	assert.Zero(t, cart.clearCalls)
}

func TestCheckout_AbsentCart(t *testing.T) {
	cart, _, orders, svc := fixtures()
	cart.cartID = ""
	cart.items = nil

	_, err := svc.Checkout(context.Background(), "user-1", "1 Main St")
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, orders.created)
}

func TestCheckout_MissingAddress(t *testing.T) {
	cart, _, orders, svc := fixtures()

	_, err := svc.Checkout(context.Background(), "user-1", "   ")
	assert.ErrorIs(t, err, ErrMissingAddress)
	assert.Zero(t, cart.loadCalls, "address is validated before any store access")
	assert.Empty(t, orders.created)
}

func TestCheckout_ProductNotFound(t *testing.T) {
	cart, catalog, orders, svc := fixtures()
	delete(catalog.products, "productB")

	_, err := svc.Checkout(context.Background(), "user-1", "1 Main St")

	var notFound *ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "productB", notFound.ProductID)
	assert.Empty(t, orders.created, "a partial order must never be created")
	assert.Len(t, cart.items, 2, "cart is untouched on a failed checkout")
}

func TestCheckout_InvalidQuantity(t *testing.T) {
	cart, _, orders, svc := fixtures()
	cart.items[0].Quantity = 0

	_, err := svc.Checkout(context.Background(), "user-1", "1 Main St")
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Empty(t, orders.created)
}

func TestCheckout_PersistFailure(t *testing.T) {
	cart, _, orders, svc := fixtures()
	orders.err = errors.New("write timeout")

	_, err := svc.Checkout(context.Background(), "user-1", "1 Main St")
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Zero(t, cart.clearCalls, "cart must not be cleared when the order did not persist")
	assert.Len(t, cart.items, 2)
}

func TestCheckout_ClearFailureStillReturnsOrder(t *testing.T) {
	cart, _, orders, svc := fixtures()
	cart.clearErr = errors.New("connection reset")

	order, err := svc.Checkout(context.Background(), "user-1", "1 Main St")
	require.NoError(t, err, "a clear failure after persist must not fail the checkout")
	assert.Equal(t, "order-1", order.ID)
	require.Len(t, orders.created, 1)
}

func TestCheckout_PriceSnapshotSurvivesCatalogChange(t *testing.T) {
	_, catalog, orders, svc := fixtures()

	_, err := svc.Checkout(context.Background(), "user-1", "1 Main St")
	require.NoError(t, err)

	catalog.setPrice("productA", 99)

	stored := orders.created[0]
	assert.Equal(t, 10.0, stored.Lines[0].PriceOfOne, "captured price must not track the catalog")
	assert.Equal(t, 45.0, stored.TotalPrice)
}

func TestCheckout_SecondAttemptSeesEmptyCart(t *testing.T) {
	_, _, orders, svc := fixtures()

	_, err := svc.Checkout(context.Background(), "user-1", "1 Main St")
	require.NoError(t, err)

	_, err = svc.Checkout(context.Background(), "user-1", "1 Main St")
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Len(t, orders.created, 1, "double checkout must not double-charge")
}

func TestCheckout_ConcurrentSingleWinner(t *testing.T) {
	_, _, orders, svc := fixtures()

	const n = 8
	var mu sync.Mutex
	var errs []error

	g := new(errgroup.Group)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			_, err := svc.Checkout(context.Background(), "user-1", "1 Main St")
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
			return nil
		})
	}
	require.NoError(t, g.Wait())

	var wins int
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, ErrEmptyCart)
		}
	}
	assert.Equal(t, 1, wins, "exactly one concurrent checkout may win the cart")
	assert.Len(t, orders.created, 1)
}

type hangingCartStore struct{ fakeCartStore }

func (h *hangingCartStore) Load(ctx context.Context, userID string) (domain.CartSnapshot, error) {
	<-ctx.Done()
	return domain.CartSnapshot{}, ctx.Err()
}

func TestCheckout_SlowStoreFailsInsteadOfHanging(t *testing.T) {
	_, catalog, orders, _ := fixtures()
	svc := NewService(&hangingCartStore{}, catalog, orders, discard(), 20*time.Millisecond)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Checkout(context.Background(), "user-1", "1 Main St")
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrPersistence)
	case <-time.After(2 * time.Second):
		t.Fatal("checkout hung on a slow store")
	}
	assert.Empty(t, orders.created)
}
