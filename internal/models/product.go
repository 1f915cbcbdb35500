package models

import (
	"time"
)

// MainWarehouseID es el id reservado para la bodega central sintética.
// No existe como fila real de sucursal; solo se usa como extremo de traspasos.
const MainWarehouseID = 0

// Product representa un producto del inventario remoto
type Product struct {
	ID             int          `json:"id"`
	Name           string       `json:"name"`
	SKU            *string      `json:"sku"`
	Status         string       `json:"status"` // publish|draft|private|pending
	Price          float64      `json:"price"`
	Category       string       `json:"category"`
	StockBreakdown []StockEntry `json:"stock_breakdown"`
}

// StockEntry es una entrada del desglose de stock por sucursal
type StockEntry struct {
	LocationID   int    `json:"location_id"`
	LocationName string `json:"location_name"`
	Quantity     int    `json:"quantity"`
	Type         string `json:"type"` // normal|virtual|defect
}

// SellableStock suma las cantidades normales del desglose.
// Stock virtual y defectuoso no cuentan como vendible.
func (p *Product) SellableStock() int {
	total := 0
	for _, entry := range p.StockBreakdown {
		if entry.Type == "virtual" || entry.Type == "defect" {
			continue
		}
		total += entry.Quantity
	}
	return total
}

// StockAt retorna la cantidad normal disponible en una sucursal
func (p *Product) StockAt(locationID int) int {
	total := 0
	for _, entry := range p.StockBreakdown {
		if entry.LocationID != locationID {
			continue
		}
		if entry.Type == "virtual" || entry.Type == "defect" {
			continue
		}
		total += entry.Quantity
	}
	return total
}

// Location representa una sucursal
type Location struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Trashed indica si la sucursal está en la papelera
func (l *Location) Trashed() bool {
	return l.DeletedAt != nil
}

// Pagination información de paginación del API remoto
type Pagination struct {
	TotalPages int `json:"total_pages"`
	TotalItems int `json:"total_items"`
}

// ImportRow es una fila normalizada del import CSV de stock.
// BranchID queda en nil cuando la celda no es un entero válido: 0 es la
// bodega central, así que un parse fallido no puede degradar a 0.
type ImportRow struct {
	SKU      string `json:"sku"`
	Qty      int    `json:"qty"`
	BranchID *int   `json:"branch_id"`
}
