package upstream

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"inventory-gateway/internal/models"
)

// TransferLine producto y cantidad enviada de un traspaso a iniciar
type TransferLine struct {
	ProductID int `json:"product_id"`
	Qty       int `json:"qty"`
}

// ReviewLine cantidad recibida de una línea durante la revisión
type ReviewLine struct {
	ID          int    `json:"id"`
	ReceivedQty int    `json:"received_qty"`
	Note        string `json:"note,omitempty"`
}

// InitiateTransfer crea un lote de traspaso pendiente y retorna su batch_id.
// El servidor descuenta las cantidades enviadas del origen al confirmar.
func (c *Client) InitiateTransfer(ctx context.Context, lines []TransferLine, fromID, toID int) (string, error) {
	body := map[string]interface{}{
		"items":          lines,
		"from_branch_id": fromID,
		"to_branch_id":   toID,
		"user_id":        c.userID,
	}
	env, err := c.post(ctx, "initiate_transfer", body)
	if err != nil {
		return "", err
	}

	var result struct {
		BatchID string `json:"batch_id"`
	}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &result); err != nil {
			return "", &NetworkError{Action: "initiate_transfer", Err: err}
		}
	}
	return result.BatchID, nil
}

// GetTransfers lista resúmenes de lotes; dirección y estado los filtra el servidor
func (c *Client) GetTransfers(ctx context.Context, query models.TransferListQuery) ([]models.TransferBatch, *models.Pagination, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}

	q := url.Values{}
	q.Set("type", query.State)
	q.Set("direction", query.Direction)
	q.Set("page", strconv.Itoa(page))
	q.Set("user_id", strconv.Itoa(c.userID))
	if query.Search != "" {
		q.Set("search", query.Search)
	}
	if query.StartDate != "" {
		q.Set("start_date", query.StartDate)
	}
	if query.EndDate != "" {
		q.Set("end_date", query.EndDate)
	}

	var batches []models.TransferBatch
	pagination, err := c.get(ctx, "get_transfers", q, &batches)
	if err != nil {
		return nil, nil, err
	}
	return batches, pagination, nil
}

// GetTransferDetails obtiene un lote completo con sus líneas. Sirve tanto
// para la revisión (pendiente) como para la vista de solo lectura (resuelto).
func (c *Client) GetTransferDetails(ctx context.Context, batchID string) (*models.TransferBatch, error) {
	q := url.Values{}
	q.Set("batch_id", batchID)

	var batch models.TransferBatch
	if _, err := c.get(ctx, "get_transfer_details", q, &batch); err != nil {
		return nil, err
	}
	return &batch, nil
}

// ApproveTransfer resuelve un lote pendiente; action es "approve" o "reject"
func (c *Client) ApproveTransfer(ctx context.Context, batchID, action string, lines []ReviewLine) error {
	body := map[string]interface{}{
		"batch_id": batchID,
		"action":   action,
		"items":    lines,
		"user_id":  c.userID,
	}
	_, err := c.post(ctx, "approve_transfer", body)
	return err
}

// CancelTransfer cancela un lote pendiente desde el origen.
// El servidor devuelve al origen las cantidades reservadas.
func (c *Client) CancelTransfer(ctx context.Context, batchID, reason string) error {
	body := map[string]interface{}{
		"batch_id": batchID,
		"reason":   reason,
		"user_id":  c.userID,
	}
	_, err := c.post(ctx, "cancel_transfer", body)
	return err
}
