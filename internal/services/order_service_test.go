package services

import (
	"context"
	"testing"
	"time"

	"inventory-gateway/internal/cache"
	"inventory-gateway/internal/models"

	"go.uber.org/zap"
)

type fakeOrderAPI struct {
	orders    []models.PendingOrder
	processed []int
	location  int
}

func (f *fakeOrderAPI) GetPendingOrders(ctx context.Context, startDate, endDate string) ([]models.PendingOrder, error) {
	return f.orders, nil
}

func (f *fakeOrderAPI) ProcessOrder(ctx context.Context, orderID, locationID int, items []models.OrderItemRequest) error {
	f.processed = append(f.processed, orderID)
	f.location = locationID
	return nil
}

func newOrderService(api *fakeOrderAPI) OrderService {
	store := cache.NewSnapshotStore(nil, time.Minute, zap.NewNop())
	return NewOrderService(api, store, nil, zap.NewNop())
}

func TestProcessRequiresSourceBranch(t *testing.T) {
	api := &fakeOrderAPI{}
	svc := newOrderService(api)

	req := &models.ProcessOrderRequest{
		OrderID: 100,
		Items:   []models.OrderItemRequest{{Name: "Camisa", Quantity: 1}},
	}
	if err := svc.Process(context.Background(), req); !IsValidation(err) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if len(api.processed) != 0 {
		t.Error("el pedido se procesó sin sucursal origen")
	}
}

func TestProcessRejectsNonPositiveQuantities(t *testing.T) {
	svc := newOrderService(&fakeOrderAPI{})

	req := &models.ProcessOrderRequest{
		OrderID:    100,
		LocationID: intPtr(1),
		Items:      []models.OrderItemRequest{{Name: "Camisa", Quantity: 0}},
	}
	if err := svc.Process(context.Background(), req); !IsValidation(err) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
}

func TestProcessDeductsAgainstMainWarehouse(t *testing.T) {
	api := &fakeOrderAPI{}
	svc := newOrderService(api)

	// La bodega central (id 0) es un origen válido para descontar
	req := &models.ProcessOrderRequest{
		OrderID:    100,
		LocationID: intPtr(models.MainWarehouseID),
		Items:      []models.OrderItemRequest{{Name: "Camisa", Quantity: 2}},
	}
	if err := svc.Process(context.Background(), req); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(api.processed) != 1 || api.location != models.MainWarehouseID {
		t.Errorf("processed = %v, location = %d", api.processed, api.location)
	}
}
