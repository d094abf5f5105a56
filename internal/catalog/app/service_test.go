package app

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/catalog/domain"
)

type fakeProductRepo struct {
	products map[string]domain.Product
	nextID   int

	// what the service actually asked List for
	lastSearch string
	lastPage   int
	lastLimit  int
	findCalls  int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]domain.Product{}}
}

func (f *fakeProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	f.nextID++
	p.ID = fmt.Sprintf("product-%d", f.nextID)
	f.products[p.ID] = p
	return p, nil
}

func (f *fakeProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return domain.Product{}, ErrNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	f.findCalls++
	var out []domain.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) List(ctx context.Context, search string, page, limit int) ([]domain.Product, int64, error) {
	f.lastSearch, f.lastPage, f.lastLimit = search, page, limit
	return nil, 0, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, p domain.Product) (domain.Product, error) {
	if _, ok := f.products[p.ID]; !ok {
		return domain.Product{}, ErrNotFound
	}
	f.products[p.ID] = p
	return p, nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.products[id]; !ok {
		return ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) AddReviewStats(ctx context.Context, id string, deltaCount, deltaSum int64) error {
	p, ok := f.products[id]
	if !ok {
		return ErrNotFound
	}
	p.NumReviews += deltaCount
	p.SumRatings += deltaSum
	f.products[id] = p
	return nil
}

func validProduct() domain.Product {
	return domain.Product{
		Name:        "Scarf",
		Description: "Hand crocheted",
		Price:       10,
		Category:    "accessories",
		Pictures:    []string{"/images/a.jpg"},
	}
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("valid product", func(t *testing.T) {
		svc := NewService(newFakeProductRepo())

		p, err := svc.CreateProduct(ctx, validProduct())
		require.NoError(t, err)
		assert.NotEmpty(t, p.ID)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		svc := NewService(newFakeProductRepo())

		bad := []func(*domain.Product){
			func(p *domain.Product) { p.Name = "  " },
			func(p *domain.Product) { p.Description = "" },
			func(p *domain.Product) { p.Category = "" },
			func(p *domain.Product) { p.Pictures = nil },
			func(p *domain.Product) { p.Price = -1 },
		}
		for i, mutate := range bad {
			p := validProduct()
			mutate(&p)
			_, err := svc.CreateProduct(ctx, p)
			assert.ErrorIs(t, err, ErrInvalidInput, "case %d", i)
		}
	})
}

func TestListProductsClampsPaging(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewService(repo)
	ctx := context.Background()

	tests := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, 20},
		{-3, -1, 1, 20},
		{2, 50, 2, 50},
		{1, 500, 1, 100},
	}
	for _, tt := range tests {
		_, _, err := svc.ListProducts(ctx, "  scarf ", tt.page, tt.limit)
		require.NoError(t, err)
		assert.Equal(t, tt.wantPage, repo.lastPage)
		assert.Equal(t, tt.wantLimit, repo.lastLimit)
		assert.Equal(t, "scarf", repo.lastSearch)
	}
}

func TestFindByIDs(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, validProduct())
	require.NoError(t, err)

	t.Run("empty input skips the repo", func(t *testing.T) {
		got, err := svc.FindByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.Zero(t, repo.findCalls)
	})

	t.Run("missing ids are absent, not errors", func(t *testing.T) {
		got, err := svc.FindByIDs(ctx, []string{created.ID, "ghost"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, created.ID, got[0].ID)
	})
}

func TestUpdateProduct(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, validProduct())
	require.NoError(t, err)

	created.Price = 12.5
	updated, err := svc.UpdateProduct(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, 12.5, updated.Price)

	created.ID = ""
	_, err = svc.UpdateProduct(ctx, created)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddReviewStats(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, validProduct())
	require.NoError(t, err)

	require.NoError(t, svc.AddReviewStats(ctx, created.ID, 1, 4))
	require.NoError(t, svc.AddReviewStats(ctx, created.ID, 1, 5))

	p, err := svc.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), p.NumReviews)
	assert.Equal(t, int64(9), p.SumRatings)
}
