package upstream

import (
	"context"
	"net/url"
	"strconv"

	"inventory-gateway/internal/models"
)

// GetInventory obtiene una página de inventario con los filtros dados
func (c *Client) GetInventory(ctx context.Context, f models.InventoryFilters) ([]models.Product, *models.Pagination, error) {
	page := f.Page
	if page < 1 {
		page = 1
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.SortBy != "" {
		q.Set("sort_by", f.SortBy)
	}
	if f.SortOrder != "" {
		q.Set("sort_order", f.SortOrder)
	}
	if f.LocationID != nil {
		q.Set("location_id", strconv.Itoa(*f.LocationID))
	}

	var products []models.Product
	pagination, err := c.get(ctx, "get_inventory", q, &products)
	if err != nil {
		return nil, nil, err
	}
	return products, pagination, nil
}

// AdjustStock aplica un delta de stock a un producto en una sucursal
func (c *Client) AdjustStock(ctx context.Context, productID, locationID, deltaQty int, reason string) error {
	body := map[string]interface{}{
		"product_id":  productID,
		"location_id": locationID,
		"delta_qty":   deltaQty,
		"reason":      reason,
		"user_id":     c.userID,
	}
	_, err := c.post(ctx, "adjust_stock", body)
	return err
}

// ImportStock envía filas de import al servidor. Los SKU que el servidor
// no encuentra vuelven en el reporte como omitidos; no tumban el lote.
func (c *Client) ImportStock(ctx context.Context, rows []models.ImportRow, mode string) (*models.ImportReport, error) {
	body := map[string]interface{}{
		"rows":    rows,
		"mode":    mode,
		"user_id": c.userID,
	}
	env, err := c.post(ctx, "import_stock", body)
	if err != nil {
		return nil, err
	}
	return &models.ImportReport{
		Message:     env.Message,
		Submitted:   len(rows),
		SkippedSKUs: env.Errors,
	}, nil
}
