package models

import (
	"time"
)

// PendingOrder es un pedido pendiente del storefront externo.
// El matching de líneas contra productos locales lo hace el servidor.
type PendingOrder struct {
	ID        int         `json:"id"`
	Number    string      `json:"number"`
	Customer  string      `json:"customer"`
	Total     float64     `json:"total"`
	CreatedAt time.Time   `json:"created_at"`
	Items     []OrderItem `json:"items"`
}

// OrderItem es una línea de pedido identificada por nombre
type OrderItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}
