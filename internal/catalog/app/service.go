package app

import (
	"context"
	"errors"
	"strings"

	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("product not found")
)

type Service struct {
	repo ProductRepo
}

func NewService(repo ProductRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)

	if p.Name == "" || p.Description == "" || p.Category == "" || len(p.Pictures) == 0 || p.Price < 0 {
		return domain.Product{}, ErrInvalidInput
	}

	return s.repo.Create(ctx, p)
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

// FindByIDs resolves a batch of ids in one lookup. Missing ids are
// simply absent from the result; callers that care compare lengths.
func (s *Service) FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return s.repo.FindByIDs(ctx, ids)
}

func (s *Service) ListProducts(ctx context.Context, search string, page, limit int) ([]domain.Product, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.List(ctx, strings.TrimSpace(search), page, limit)
}

func (s *Service) UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	if strings.TrimSpace(p.ID) == "" || p.Price < 0 {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Update(ctx, p)
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) AddReviewStats(ctx context.Context, id string, deltaCount, deltaSum int64) error {
	return s.repo.AddReviewStats(ctx, id, deltaCount, deltaSum)
}
