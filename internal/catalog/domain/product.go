package domain

import "time"

type Product struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Pictures    []string  `json:"pictures"`
	NumReviews  int64     `json:"number_of_reviews"`
	SumRatings  int64     `json:"sum_of_ratings"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FirstPicture is what order lines and cart rows denormalize for display.
func (p Product) FirstPicture() string {
	if len(p.Pictures) == 0 {
		return ""
	}
	return p.Pictures[0]
}
