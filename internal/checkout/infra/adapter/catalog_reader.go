package adapter

import (
	"context"

	catalogapp "github.com/Carole-Bou-Shakra/Quick-Shop/internal/catalog/app"
	checkoutdomain "github.com/Carole-Bou-Shakra/Quick-Shop/internal/checkout/domain"
)

type CatalogServiceReader struct {
	svc *catalogapp.Service
}

func NewCatalogServiceReader(svc *catalogapp.Service) *CatalogServiceReader {
	return &CatalogServiceReader{svc: svc}
}

func (a *CatalogServiceReader) FindByIDs(ctx context.Context, ids []string) ([]checkoutdomain.Product, error) {
	products, err := a.svc.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]checkoutdomain.Product, 0, len(products))
	for _, p := range products {
		out = append(out, checkoutdomain.Product{
			ID:      p.ID,
			Name:    p.Name,
			Picture: p.FirstPicture(),
			Price:   p.Price,
		})
	}
	return out, nil
}
