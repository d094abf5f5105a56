package domain

import "time"

type CartItem struct {
	ProductID string `json:"product"`
	Quantity  int64  `json:"quantity"`
}

// Cart is the per-user pre-checkout selection. One document per user,
// created lazily; a product appears at most once and quantities stay
// positive (drop-to-zero removes the line).
type Cart struct {
	ID        string     `json:"_id"`
	UserID    string     `json:"user"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (c Cart) Quantity(productID string) (int64, bool) {
	for _, it := range c.Items {
		if it.ProductID == productID {
			return it.Quantity, true
		}
	}
	return 0, false
}
