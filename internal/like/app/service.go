package app

import (
	"context"
	"errors"

	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/like/domain"
)

var ErrNotFound = errors.New("like not found")

type Service struct {
	repo LikeRepo
}

func NewService(repo LikeRepo) *Service {
	return &Service{repo: repo}
}

// Toggle flips the favorite state for (user, product) and reports the
// resulting state: true when the product is now liked.
func (s *Service) Toggle(ctx context.Context, userID, productID string) (bool, error) {
	existing, err := s.repo.Find(ctx, userID, productID)
	if err == nil {
		if err := s.repo.Delete(ctx, existing.ID); err != nil {
			return false, err
		}
		return false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return false, err
	}

	if _, err := s.repo.Create(ctx, domain.Like{UserID: userID, ProductID: productID}); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]domain.Like, error) {
	return s.repo.ListByUser(ctx, userID)
}
