package domain

import "time"

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// CanTransition encodes the fulfillment pipeline: pending -> processing
// -> shipped -> delivered, with cancellation allowed from any
// non-terminal state. Delivered and cancelled are terminal.
func (s Status) CanTransition(to Status) bool {
	switch s {
	case StatusPending:
		return to == StatusProcessing || to == StatusCancelled
	case StatusProcessing:
		return to == StatusShipped || to == StatusCancelled
	case StatusShipped:
		return to == StatusDelivered || to == StatusCancelled
	default:
		return false
	}
}

// Line is a frozen copy of a cart line: the price is captured at order
// time and never changes, whatever the catalog does later.
type Line struct {
	ProductID  string  `json:"product"`
	Name       string  `json:"name"`
	Picture    string  `json:"picture"`
	Quantity   int64   `json:"quantity"`
	PriceOfOne float64 `json:"priceOfOne"`
	LineTotal  float64 `json:"line_total"`
}

type Order struct {
	ID         string    `json:"_id"`
	UserID     string    `json:"user"`
	Lines      []Line    `json:"products"`
	TotalPrice float64   `json:"totalPrice"`
	Address    string    `json:"address"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
