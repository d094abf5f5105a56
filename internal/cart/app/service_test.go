package app

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/cart/domain"
)

type fakeCartRepo struct {
	byUser map[string]*domain.Cart
	byID   map[string]*domain.Cart
	nextID int
	clock  time.Time
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{
		byUser: map[string]*domain.Cart{},
		byID:   map[string]*domain.Cart{},
		clock:  time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeCartRepo) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeCartRepo) Get(ctx context.Context, userID string) (domain.Cart, error) {
	c, ok := f.byUser[userID]
	if !ok {
		return domain.Cart{}, ErrNotFound
	}
	return *c, nil
}

func (f *fakeCartRepo) Create(ctx context.Context, userID string) (domain.Cart, error) {
	f.nextID++
	c := &domain.Cart{
		ID:        fmt.Sprintf("cart-%d", f.nextID),
		UserID:    userID,
		CreatedAt: f.tick(),
		UpdatedAt: f.clock,
	}
	f.byUser[userID] = c
	f.byID[c.ID] = c
	return *c, nil
}

func (f *fakeCartRepo) IncrementItem(ctx context.Context, cartID string, item domain.CartItem) error {
	c := f.byID[cartID]
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity += item.Quantity
			c.UpdatedAt = f.tick()
			return nil
		}
	}
	c.Items = append(c.Items, item)
	c.UpdatedAt = f.tick()
	return nil
}

func (f *fakeCartRepo) SetItemQuantity(ctx context.Context, cartID string, item domain.CartItem) error {
	c := f.byID[cartID]
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity = item.Quantity
			c.UpdatedAt = f.tick()
			return nil
		}
	}
	c.Items = append(c.Items, item)
	c.UpdatedAt = f.tick()
	return nil
}

func (f *fakeCartRepo) RemoveItem(ctx context.Context, cartID, productID string) error {
	c := f.byID[cartID]
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			break
		}
	}
	c.UpdatedAt = f.tick()
	return nil
}

func (f *fakeCartRepo) Clear(ctx context.Context, cartID string) error {
	c := f.byID[cartID]
	c.Items = nil
	c.UpdatedAt = f.tick()
	return nil
}

func (f *fakeCartRepo) ClearIfUnchanged(ctx context.Context, cartID string, since time.Time) (bool, error) {
	c, ok := f.byID[cartID]
	if !ok || !c.UpdatedAt.Equal(since) {
		return false, nil
	}
	c.Items = nil
	c.UpdatedAt = f.tick()
	return true, nil
}

func TestGetOrCreate(t *testing.T) {
	repo := newFakeCartRepo()
	svc := NewService(repo)
	ctx := context.Background()

	first, err := svc.GetOrCreate(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, first.Items)

	second, err := svc.GetOrCreate(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "second touch must reuse the same cart")
}

func TestApplyUpdates(t *testing.T) {
	ctx := context.Background()

	t.Run("new product is inserted", func(t *testing.T) {
		svc := NewService(newFakeCartRepo())

		cart, err := svc.ApplyUpdates(ctx, "user-1", map[string]int64{"productA": 2})
		require.NoError(t, err)

		qty, ok := cart.Quantity("productA")
		require.True(t, ok)
		assert.Equal(t, int64(2), qty)
	})

	t.Run("existing line is incremented, not replaced", func(t *testing.T) {
		svc := NewService(newFakeCartRepo())

		_, err := svc.ApplyUpdates(ctx, "user-1", map[string]int64{"productA": 2})
		require.NoError(t, err)
		cart, err := svc.ApplyUpdates(ctx, "user-1", map[string]int64{"productA": 3})
		require.NoError(t, err)

		qty, _ := cart.Quantity("productA")
		assert.Equal(t, int64(5), qty)
	})

	t.Run("delta to zero removes the line", func(t *testing.T) {
		svc := NewService(newFakeCartRepo())

		_, err := svc.ApplyUpdates(ctx, "user-1", map[string]int64{"productA": 2})
		require.NoError(t, err)
		cart, err := svc.ApplyUpdates(ctx, "user-1", map[string]int64{"productA": -2})
		require.NoError(t, err)

		_, ok := cart.Quantity("productA")
		assert.False(t, ok)
		assert.Empty(t, cart.Items)
	})

	t.Run("negative delta on an absent product is a no-op", func(t *testing.T) {
		svc := NewService(newFakeCartRepo())

		cart, err := svc.ApplyUpdates(ctx, "user-1", map[string]int64{"ghost": -3})
		require.NoError(t, err)
		assert.Empty(t, cart.Items)
	})

	t.Run("empty update map is rejected", func(t *testing.T) {
		svc := NewService(newFakeCartRepo())

		_, err := svc.ApplyUpdates(ctx, "user-1", nil)
		assert.Error(t, err)
	})
}

func TestSetItemQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("quantity replaces, never accumulates", func(t *testing.T) {
		svc := NewService(newFakeCartRepo())

		_, err := svc.SetItemQuantity(ctx, "user-1", "productA", 2)
		require.NoError(t, err)
		cart, err := svc.SetItemQuantity(ctx, "user-1", "productA", 3)
		require.NoError(t, err)

		qty, _ := cart.Quantity("productA")
		assert.Equal(t, int64(3), qty)
	})

	t.Run("zero removes the line", func(t *testing.T) {
		svc := NewService(newFakeCartRepo())

		_, err := svc.SetItemQuantity(ctx, "user-1", "productA", 2)
		require.NoError(t, err)
		cart, err := svc.SetItemQuantity(ctx, "user-1", "productA", 0)
		require.NoError(t, err)

		_, ok := cart.Quantity("productA")
		assert.False(t, ok)
	})
}

func TestRemoveItem(t *testing.T) {
	repo := newFakeCartRepo()
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.ApplyUpdates(ctx, "user-1", map[string]int64{"productA": 1, "productB": 2})
	require.NoError(t, err)

	cart, err := svc.RemoveItem(ctx, "user-1", "productA")
	require.NoError(t, err)

	_, ok := cart.Quantity("productA")
	assert.False(t, ok)
	qty, _ := cart.Quantity("productB")
	assert.Equal(t, int64(2), qty)
}

func TestClear(t *testing.T) {
	repo := newFakeCartRepo()
	svc := NewService(repo)
	ctx := context.Background()

	t.Run("clearing a missing cart is a no-op", func(t *testing.T) {
		assert.NoError(t, svc.Clear(ctx, "nobody"))
	})

	t.Run("clear empties but keeps the cart", func(t *testing.T) {
		created, err := svc.ApplyUpdates(ctx, "user-1", map[string]int64{"productA": 1})
		require.NoError(t, err)

		require.NoError(t, svc.Clear(ctx, "user-1"))

		cart, err := svc.Get(ctx, "user-1")
		require.NoError(t, err)
		assert.Empty(t, cart.Items)
		assert.Equal(t, created.ID, cart.ID)
	})
}

func TestClearIfUnchanged(t *testing.T) {
	repo := newFakeCartRepo()
	svc := NewService(repo)
	ctx := context.Background()

	cart, err := svc.ApplyUpdates(ctx, "user-1", map[string]int64{"productA": 1})
	require.NoError(t, err)

	t.Run("applies on an untouched cart", func(t *testing.T) {
		cleared, err := svc.ClearIfUnchanged(ctx, cart.ID, cart.UpdatedAt)
		require.NoError(t, err)
		assert.True(t, cleared)
	})

	t.Run("refuses when the cart moved on", func(t *testing.T) {
		fresh, err := svc.ApplyUpdates(ctx, "user-1", map[string]int64{"productB": 1})
		require.NoError(t, err)

		cleared, err := svc.ClearIfUnchanged(ctx, fresh.ID, fresh.UpdatedAt.Add(-time.Minute))
		require.NoError(t, err)
		assert.False(t, cleared)

		got, err := svc.Get(ctx, "user-1")
		require.NoError(t, err)
		assert.Len(t, got.Items, 1, "a refused clear must leave the cart alone")
	})
}
