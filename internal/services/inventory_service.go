package services

import (
	"context"

	"inventory-gateway/internal/cache"
	"inventory-gateway/internal/models"

	"go.uber.org/zap"
)

// inventoryAPI son las operaciones de inventario del API remoto
type inventoryAPI interface {
	GetInventory(ctx context.Context, f models.InventoryFilters) ([]models.Product, *models.Pagination, error)
	AdjustStock(ctx context.Context, productID, locationID, deltaQty int, reason string) error
}

// InventoryService expone el snapshot de inventario, los filtros de la
// vista y la selección de productos de la estación
type InventoryService interface {
	Filters() models.InventoryFilters
	ApplyFilters(req models.FilterRequest) models.InventoryFilters
	List(ctx context.Context) (*cache.InventoryPage, error)
	Select(productID int)
	Deselect(productID int)
	Selection() []int
	ClearSelection()
	Adjust(ctx context.Context, req *models.AdjustStockRequest) error
}

// inventoryService implementa InventoryService
type inventoryService struct {
	api    inventoryAPI
	store  *cache.SnapshotStore
	events Broadcaster
	logger *zap.Logger
}

// NewInventoryService crea una nueva instancia del servicio
func NewInventoryService(api inventoryAPI, store *cache.SnapshotStore, events Broadcaster, logger *zap.Logger) InventoryService {
	return &inventoryService{
		api:    api,
		store:  store,
		events: events,
		logger: logger,
	}
}

// Filters retorna los filtros vigentes de la vista
func (s *inventoryService) Filters() models.InventoryFilters {
	return s.store.Filters()
}

// ApplyFilters aplica una mutación parcial de filtros y retorna el estado
// resultante
func (s *inventoryService) ApplyFilters(req models.FilterRequest) models.InventoryFilters {
	return s.store.ApplyFilters(req)
}

// List retorna la página de inventario para los filtros vigentes, desde el
// caché si sigue válido o del API remoto si no
func (s *inventoryService) List(ctx context.Context) (*cache.InventoryPage, error) {
	return s.store.GetInventory(ctx, func(ctx context.Context, f models.InventoryFilters) (*cache.InventoryPage, error) {
		products, pagination, err := s.api.GetInventory(ctx, f)
		if err != nil {
			return nil, err
		}
		return &cache.InventoryPage{Products: products, Pagination: pagination}, nil
	})
}

// Select agrega un producto a la selección de la estación
func (s *inventoryService) Select(productID int) {
	s.store.Select(productID)
}

// Deselect saca un producto de la selección
func (s *inventoryService) Deselect(productID int) {
	s.store.Deselect(productID)
}

// Selection retorna los ids seleccionados en orden estable
func (s *inventoryService) Selection() []int {
	return s.store.Selection()
}

// ClearSelection vacía la selección
func (s *inventoryService) ClearSelection() {
	s.store.ClearSelection()
}

// Adjust aplica un delta puntual de stock y, si el servidor lo confirma,
// invalida el snapshot
func (s *inventoryService) Adjust(ctx context.Context, req *models.AdjustStockRequest) error {
	if req.LocationID == nil {
		return &ValidationError{Field: "location_id", Message: "branch is required"}
	}
	if req.DeltaQty == 0 {
		return &ValidationError{Field: "delta_qty", Message: "delta quantity cannot be zero"}
	}

	if err := s.api.AdjustStock(ctx, req.ProductID, *req.LocationID, req.DeltaQty, req.Reason); err != nil {
		return err
	}

	s.store.InvalidateInventory(ctx)
	if s.events != nil {
		s.events.Broadcast("inventory_invalidated", nil)
	}

	s.logger.Info("Stock adjusted",
		zap.Int("product_id", req.ProductID),
		zap.Int("location_id", *req.LocationID),
		zap.Int("delta_qty", req.DeltaQty))
	return nil
}
