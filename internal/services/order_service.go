package services

import (
	"context"
	"fmt"

	"inventory-gateway/internal/cache"
	"inventory-gateway/internal/models"

	"go.uber.org/zap"
)

// orderAPI son las operaciones de pedidos del API remoto
type orderAPI interface {
	GetPendingOrders(ctx context.Context, startDate, endDate string) ([]models.PendingOrder, error)
	ProcessOrder(ctx context.Context, orderID, locationID int, items []models.OrderItemRequest) error
}

// OrderService concilia pedidos pendientes del storefront contra el stock
type OrderService interface {
	Pending(ctx context.Context, startDate, endDate string) ([]models.PendingOrder, error)
	Process(ctx context.Context, req *models.ProcessOrderRequest) error
}

// orderService implementa OrderService
type orderService struct {
	api    orderAPI
	store  *cache.SnapshotStore
	events Broadcaster
	logger *zap.Logger
}

// NewOrderService crea una nueva instancia del servicio
func NewOrderService(api orderAPI, store *cache.SnapshotStore, events Broadcaster, logger *zap.Logger) OrderService {
	return &orderService{
		api:    api,
		store:  store,
		events: events,
		logger: logger,
	}
}

// Pending lista los pedidos pendientes en el rango de fechas dado
func (s *orderService) Pending(ctx context.Context, startDate, endDate string) ([]models.PendingOrder, error) {
	return s.api.GetPendingOrders(ctx, startDate, endDate)
}

// Process descuenta las líneas de un pedido contra la sucursal elegida.
// El matching de líneas contra productos lo resuelve el servidor; acá solo
// se valida que haya sucursal origen y cantidades positivas.
func (s *orderService) Process(ctx context.Context, req *models.ProcessOrderRequest) error {
	if req.LocationID == nil {
		return &ValidationError{Field: "location_id", Message: "source branch is required"}
	}
	if len(req.Items) == 0 {
		return &ValidationError{Field: "items", Message: "order has no lines to deduct"}
	}
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return &ValidationError{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: "quantity must be a positive integer",
			}
		}
	}

	if err := s.api.ProcessOrder(ctx, req.OrderID, *req.LocationID, req.Items); err != nil {
		return err
	}

	s.store.InvalidateInventory(ctx)
	if s.events != nil {
		s.events.Broadcast("inventory_invalidated", nil)
	}

	s.logger.Info("Order deducted against branch stock",
		zap.Int("order_id", req.OrderID),
		zap.Int("location_id", *req.LocationID),
		zap.Int("line_count", len(req.Items)))
	return nil
}
