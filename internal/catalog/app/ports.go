package app

import (
	"context"

	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/catalog/domain"
)

type ProductRepo interface {
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	List(ctx context.Context, search string, page, limit int) ([]domain.Product, int64, error)
	Update(ctx context.Context, p domain.Product) (domain.Product, error)
	Delete(ctx context.Context, id string) error
	AddReviewStats(ctx context.Context, id string, deltaCount, deltaSum int64) error
}
