package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/review/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("review not found")
	ErrForbidden    = errors.New("review belongs to another user")
)

const minCommentLen = 5

type Service struct {
	repo  ReviewRepo
	stats StatsUpdater
	log   *slog.Logger
}

func NewService(repo ReviewRepo, stats StatsUpdater, log *slog.Logger) *Service {
	return &Service{repo: repo, stats: stats, log: log}
}

// Create stores the review and folds the rating into the product's
// aggregate counters. A failed counter update is logged, not bubbled:
// the review itself is already saved.
func (s *Service) Create(ctx context.Context, rv domain.Review) (domain.Review, error) {
	if rv.Rating < 1 || rv.Rating > 5 || len(strings.TrimSpace(rv.Comment)) < minCommentLen {
		return domain.Review{}, ErrInvalidInput
	}

	created, err := s.repo.Create(ctx, rv)
	if err != nil {
		return domain.Review{}, err
	}

	if err := s.stats.AddReviewStats(ctx, created.ProductID, 1, int64(created.Rating)); err != nil {
		s.log.Warn("review saved but product stats not updated",
			slog.String("review_id", created.ID), slog.Any("err", err))
	}

	return created, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Review, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	return s.repo.ListByProduct(ctx, productID)
}

func (s *Service) Update(ctx context.Context, id, userID string, rating int, comment string) (domain.Review, error) {
	if rating < 1 || rating > 5 || len(strings.TrimSpace(comment)) < minCommentLen {
		return domain.Review{}, ErrInvalidInput
	}

	old, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Review{}, err
	}
	if old.UserID != userID {
		return domain.Review{}, ErrForbidden
	}

	oldRating := old.Rating
	old.Rating = rating
	old.Comment = comment
	updated, err := s.repo.Update(ctx, old)
	if err != nil {
		return domain.Review{}, err
	}

	if delta := int64(rating - oldRating); delta != 0 {
		if err := s.stats.AddReviewStats(ctx, updated.ProductID, 0, delta); err != nil {
			s.log.Warn("review updated but product stats not updated",
				slog.String("review_id", updated.ID), slog.Any("err", err))
		}
	}

	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id, userID string) error {
	rv, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if rv.UserID != userID {
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.stats.AddReviewStats(ctx, rv.ProductID, -1, -int64(rv.Rating)); err != nil {
		s.log.Warn("review deleted but product stats not updated",
			slog.String("review_id", id), slog.Any("err", err))
	}

	return nil
}
