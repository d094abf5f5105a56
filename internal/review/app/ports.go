package app

import (
	"context"

	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/review/domain"
)

type ReviewRepo interface {
	Create(ctx context.Context, rv domain.Review) (domain.Review, error)
	Get(ctx context.Context, id string) (domain.Review, error)
	Update(ctx context.Context, rv domain.Review) (domain.Review, error)
	Delete(ctx context.Context, id string) error
	ListByProduct(ctx context.Context, productID string) ([]domain.Review, error)
}

// StatsUpdater keeps the product's aggregate review counters in step
// with review writes.
type StatsUpdater interface {
	AddReviewStats(ctx context.Context, productID string, deltaCount, deltaSum int64) error
}
