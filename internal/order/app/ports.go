package app

import (
	"context"

	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/order/domain"
)

type OrderRepo interface {
	Create(ctx context.Context, o domain.Order) (domain.Order, error)
	Get(ctx context.Context, id string) (domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) (domain.Order, error)
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}
