package models

import (
	"time"
)

// Estados de un lote de traspaso. Las transiciones son de un solo sentido:
// pending puede pasar a completed, rejected o canceled; los tres estados
// finales no admiten ninguna mutación posterior.
const (
	TransferPending   = "pending"
	TransferCompleted = "completed"
	TransferRejected  = "rejected"
	TransferCanceled  = "canceled"
)

// Severidad de la discrepancia entre enviado y recibido
const (
	DiscrepancyShortage = "shortage" // recibido < enviado, se muestra como error
	DiscrepancyOverage  = "overage"  // recibido > enviado, se muestra como warning
	DiscrepancyExact    = "exact"    // recibido == enviado
)

// TransferBatch representa un lote de traspaso entre sucursales
type TransferBatch struct {
	BatchID          string         `json:"batch_id"`
	FromLocID        int            `json:"from_loc_id"`
	ToLocID          int            `json:"to_loc_id"`
	FromLocation     string         `json:"from_location"`
	ToLocation       string         `json:"to_location"`
	Status           string         `json:"status"`
	CreatedAt        time.Time      `json:"created_at"`
	InitiatedBy      string         `json:"initiated_by"`
	ApprovedBy       *string        `json:"approved_by"`
	ApprovedAt       *time.Time     `json:"approved_at"`
	ItemCount        int            `json:"item_count"`
	TotalQty         int            `json:"total_qty"`
	TotalReceivedQty *int           `json:"total_received_qty"`
	Items            []TransferItem `json:"items,omitempty"`
}

// TransferItem es una línea de un lote de traspaso. Qty queda fija al
// iniciar; ReceivedQty es nil mientras el lote está pendiente.
type TransferItem struct {
	ID          int    `json:"id"`
	ProductID   int    `json:"product_id"`
	ProductName string `json:"product_name"`
	ProductSKU  string `json:"product_sku"`
	Qty         int    `json:"qty"`
	ReceivedQty *int   `json:"received_qty"`
	Note        string `json:"note"`
}

// Resolved indica si el lote alcanzó un estado final
func (b *TransferBatch) Resolved() bool {
	return b.Status == TransferCompleted || b.Status == TransferRejected || b.Status == TransferCanceled
}

// Discrepancy retorna recibido - enviado a nivel de lote.
// Antes de resolverse la discrepancia no está definida, no es cero.
func (b *TransferBatch) Discrepancy() (int, bool) {
	if b.TotalReceivedQty == nil {
		return 0, false
	}
	return *b.TotalReceivedQty - b.TotalQty, true
}

// Discrepancy retorna recibido - enviado a nivel de línea
func (it *TransferItem) Discrepancy() (int, bool) {
	if it.ReceivedQty == nil {
		return 0, false
	}
	return *it.ReceivedQty - it.Qty, true
}

// DiscrepancySeverity clasifica una diferencia para renderizado
func DiscrepancySeverity(diff int) string {
	switch {
	case diff < 0:
		return DiscrepancyShortage
	case diff > 0:
		return DiscrepancyOverage
	default:
		return DiscrepancyExact
	}
}
