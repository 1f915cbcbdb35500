package upstream

import (
	"context"
	"encoding/json"

	"inventory-gateway/internal/models"
)

// GetLocations obtiene las sucursales activas
func (c *Client) GetLocations(ctx context.Context) ([]models.Location, error) {
	var locations []models.Location
	if _, err := c.get(ctx, "get_real_locations", nil, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// GetTrashedLocations obtiene las sucursales en la papelera
func (c *Client) GetTrashedLocations(ctx context.Context) ([]models.Location, error) {
	var locations []models.Location
	if _, err := c.get(ctx, "get_trashed_locations", nil, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// AddLocation crea una sucursal nueva
func (c *Client) AddLocation(ctx context.Context, name string) (*models.Location, error) {
	body := map[string]interface{}{
		"name": name,
		"role": c.role,
	}
	env, err := c.post(ctx, "add_location", body)
	if err != nil {
		return nil, err
	}
	var location models.Location
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &location); err != nil {
			return nil, &NetworkError{Action: "add_location", Err: err}
		}
	}
	return &location, nil
}

// UpdateLocation renombra una sucursal existente
func (c *Client) UpdateLocation(ctx context.Context, id int, name string) error {
	body := map[string]interface{}{
		"location_id": id,
		"name":        name,
		"role":        c.role,
	}
	_, err := c.post(ctx, "update_location", body)
	return err
}

// DeleteLocation manda una sucursal a la papelera
func (c *Client) DeleteLocation(ctx context.Context, id int) error {
	body := map[string]interface{}{
		"location_id": id,
		"role":        c.role,
	}
	_, err := c.post(ctx, "delete_location", body)
	return err
}

// RestoreLocation restaura una sucursal desde la papelera
func (c *Client) RestoreLocation(ctx context.Context, id int) error {
	body := map[string]interface{}{
		"location_id": id,
		"role":        c.role,
	}
	_, err := c.post(ctx, "restore_location", body)
	return err
}

// PermanentlyDeleteLocation elimina definitivamente una sucursal.
// El servidor lo rechaza si la sucursal tiene historial de traspasos.
func (c *Client) PermanentlyDeleteLocation(ctx context.Context, id int) error {
	body := map[string]interface{}{
		"location_id": id,
		"role":        c.role,
	}
	_, err := c.post(ctx, "permanently_delete_location", body)
	return err
}
