package adapter

import (
	"context"

	orderapp "github.com/Carole-Bou-Shakra/Quick-Shop/internal/order/app"
	orderdomain "github.com/Carole-Bou-Shakra/Quick-Shop/internal/order/domain"
)

type OrderServiceWriter struct {
	svc *orderapp.Service
}

func NewOrderServiceWriter(svc *orderapp.Service) *OrderServiceWriter {
	return &OrderServiceWriter{svc: svc}
}

func (a *OrderServiceWriter) Create(ctx context.Context, o orderdomain.Order) (orderdomain.Order, error) {
	return a.svc.Create(ctx, o)
}
