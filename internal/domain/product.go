package domain

import "time"

// Product is a catalog item as stored: id and created_at are assigned by the store.
type Product struct {
	ID        int64     `json:"id"`
	Nome      string    `json:"nome"`
	Preco     float64   `json:"preco"`
	Descricao *string   `json:"descricao"`
	CreatedAt time.Time `json:"created_at"`
}

// NewProduct is a validated candidate record ready to be inserted.
type NewProduct struct {
	Nome      string
	Preco     float64
	Descricao *string
}
