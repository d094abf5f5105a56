package app

import (
	"context"

	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/like/domain"
)

type LikeRepo interface {
	Create(ctx context.Context, like domain.Like) (domain.Like, error)
	Find(ctx context.Context, userID, productID string) (domain.Like, error)
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]domain.Like, error)
}
