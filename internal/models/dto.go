package models

// ===== REQUEST DTOs =====

// TransferItemRequest producto y cantidad dentro de un traspaso.
// Included marca las líneas que el usuario dejó dentro del traspaso masivo;
// el flujo de un solo producto manda una única línea con Included=true.
type TransferItemRequest struct {
	ProductID int  `json:"product_id" validate:"required,gt=0"`
	Qty       int  `json:"qty" validate:"required"`
	Included  bool `json:"included"`
}

// InitiateTransferRequest DTO para iniciar un traspaso.
// Source acepta el id de una sucursal, "0" para la bodega central, o el
// pseudo-origen "wc" (pool del storefront) que se procesa como ajustes
// independientes contra el destino.
type InitiateTransferRequest struct {
	Source        string                `json:"source" validate:"required"`
	DestinationID *int                  `json:"destination_id" validate:"required"`
	Items         []TransferItemRequest `json:"items" validate:"required,dive"`
}

// ReviewItemRequest cantidad recibida de una línea durante la revisión
type ReviewItemRequest struct {
	ID          int    `json:"id" validate:"required"`
	ReceivedQty *int   `json:"received_qty"`
	Note        string `json:"note"`
}

// ReviewTransferRequest DTO para aprobar o rechazar un lote pendiente
type ReviewTransferRequest struct {
	Action string              `json:"action" validate:"required,oneof=approve reject"`
	Items  []ReviewItemRequest `json:"items" validate:"dive"`
}

// CancelTransferRequest DTO para cancelar un lote pendiente desde el origen
type CancelTransferRequest struct {
	Reason string `json:"reason"`
}

// OrderItemRequest línea de pedido a descontar
type OrderItemRequest struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"required"`
}

// ProcessOrderRequest DTO para conciliar un pedido pendiente contra una sucursal
type ProcessOrderRequest struct {
	OrderID    int                `json:"order_id" validate:"required"`
	LocationID *int               `json:"location_id" validate:"required"`
	Items      []OrderItemRequest `json:"items" validate:"required,dive"`
}

// AdjustStockRequest DTO para un ajuste puntual de stock
type AdjustStockRequest struct {
	ProductID  int    `json:"product_id" validate:"required,gt=0"`
	LocationID *int   `json:"location_id" validate:"required"`
	DeltaQty   int    `json:"delta_qty" validate:"required"`
	Reason     string `json:"reason"`
}

// ImportPreviewRequest DTO para previsualizar un CSV de stock
type ImportPreviewRequest struct {
	Content string `json:"content" validate:"required"`
}

// ImportCommitRequest DTO para enviar un import de stock al servidor
type ImportCommitRequest struct {
	Content string `json:"content" validate:"required"`
	Mode    string `json:"mode" validate:"required,oneof=add replace"`
}

// LocationRequest DTO para crear o renombrar una sucursal
type LocationRequest struct {
	Name string `json:"name" validate:"required"`
}

// FilterRequest mutación parcial de los filtros de inventario.
// Los campos en nil no se tocan; Location en "" limpia el filtro de sucursal.
type FilterRequest struct {
	Page      *int    `json:"page"`
	Search    *string `json:"search"`
	Status    *string `json:"status"`
	SortBy    *string `json:"sort_by"`
	SortOrder *string `json:"sort_order"`
	Location  *string `json:"location"`
}

// TransferListQuery filtros de listado de traspasos, delegados al API remoto
type TransferListQuery struct {
	Direction string `json:"direction"` // incoming|outgoing|all
	State     string `json:"state"`     // pending|history|all
	Search    string `json:"search"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Page      int    `json:"page"`
}

// InventoryFilters filtros efectivos de la página de inventario
type InventoryFilters struct {
	Page       int    `json:"page"`
	Search     string `json:"search"`
	Status     string `json:"status"`
	SortBy     string `json:"sort_by"`
	SortOrder  string `json:"sort_order"`
	LocationID *int   `json:"location_id"`
}

// ===== RESPONSE DTOs =====

// InitiateTransferResult resultado de iniciar un traspaso. Para el flujo
// normal trae el batch_id; para el pseudo-origen "wc" trae el resultado
// de los ajustes independientes.
type InitiateTransferResult struct {
	BatchID    string             `json:"batch_id,omitempty"`
	Adjustment *AdjustmentOutcome `json:"adjustment,omitempty"`
}

// AdjustmentOutcome reporte de éxito parcial de ajustes contra el pool externo.
// Un fallo parcial no es un fallo total: se reporta procesados vs intentados.
type AdjustmentOutcome struct {
	Attempted int      `json:"attempted"`
	Succeeded int      `json:"succeeded"`
	Errors    []string `json:"errors,omitempty"`
}

// ImportReport resultado de un import de stock aceptado por el servidor.
// SkippedSKUs lista los SKU que el servidor no encontró; esas filas se
// omiten del lado del servidor sin invalidar el resto del lote.
type ImportReport struct {
	Message     string   `json:"message"`
	Submitted   int      `json:"submitted"`
	SkippedSKUs []string `json:"skipped_skus,omitempty"`
}
