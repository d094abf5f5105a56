package domain

import "time"

type Like struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"user"`
	ProductID string    `json:"product"`
	CreatedAt time.Time `json:"created_at"`
}
