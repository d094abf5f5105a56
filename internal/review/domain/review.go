package domain

import "time"

type Review struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"user"`
	ProductID string    `json:"product"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
