package upstream

import (
	"context"
	"net/url"

	"inventory-gateway/internal/models"
)

// GetPendingOrders obtiene los pedidos pendientes del storefront en el rango dado
func (c *Client) GetPendingOrders(ctx context.Context, startDate, endDate string) ([]models.PendingOrder, error) {
	q := url.Values{}
	if startDate != "" {
		q.Set("start_date", startDate)
	}
	if endDate != "" {
		q.Set("end_date", endDate)
	}

	var orders []models.PendingOrder
	if _, err := c.get(ctx, "get_pending_orders", q, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ProcessOrder descuenta las líneas de un pedido contra una sucursal origen.
// El matching de líneas contra productos locales lo resuelve el servidor.
func (c *Client) ProcessOrder(ctx context.Context, orderID, locationID int, items []models.OrderItemRequest) error {
	body := map[string]interface{}{
		"order_id":    orderID,
		"location_id": locationID,
		"items":       items,
		"user_id":     c.userID,
	}
	_, err := c.post(ctx, "process_order", body)
	return err
}
