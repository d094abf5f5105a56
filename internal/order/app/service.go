package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/order/domain"
)

var (
	ErrNotFound      = errors.New("order not found")
	ErrForbidden     = errors.New("order belongs to another user")
	ErrInvalidStatus = errors.New("invalid order status")
	ErrBadTransition = errors.New("status transition not allowed")
)

type Service struct {
	repo OrderRepo
}

func NewService(repo OrderRepo) *Service {
	return &Service{repo: repo}
}

// Create persists a checkout-built order. Orders are only ever created
// through checkout; there is no create-from-request-body path.
func (s *Service) Create(ctx context.Context, o domain.Order) (domain.Order, error) {
	o.Status = domain.StatusPending
	return s.repo.Create(ctx, o)
}

func (s *Service) Get(ctx context.Context, id, userID string) (domain.Order, error) {
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	if o.UserID != userID {
		return domain.Order{}, ErrForbidden
	}
	return o, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// UpdateStatus is the only mutation an order admits after creation.
func (s *Service) UpdateStatus(ctx context.Context, id, userID string, status domain.Status) (domain.Order, error) {
	if !status.Valid() {
		return domain.Order{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	o, err := s.Get(ctx, id, userID)
	if err != nil {
		return domain.Order{}, err
	}

	if !o.Status.CanTransition(status) {
		return domain.Order{}, fmt.Errorf("%w: %s -> %s", ErrBadTransition, o.Status, status)
	}

	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *Service) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.Get(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
