package domain

import "time"

// CartSnapshot is what the orchestrator works from: the cart's contents
// plus the timestamp it was observed at, so the post-persist clear can
// detect an intervening mutation.
type CartSnapshot struct {
	CartID    string
	Items     []CartItem
	UpdatedAt time.Time
}

type CartItem struct {
	ProductID string
	Quantity  int64
}

// Product is the slice of catalog data checkout needs: the live price
// and the display fields denormalized onto order lines.
type Product struct {
	ID      string
	Name    string
	Picture string
	Price   float64
}
