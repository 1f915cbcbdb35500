package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"inventory-gateway/internal/cache"
	"inventory-gateway/internal/models"
	"inventory-gateway/internal/upstream"

	"go.uber.org/zap"
)

func intPtr(v int) *int { return &v }

// fakeTransferAPI implementa transferAPI registrando las llamadas
type fakeTransferAPI struct {
	batchID    string
	initiated  [][]upstream.TransferLine
	fromID     int
	toID       int
	details    *models.TransferBatch
	detailsErr error
	reviewed   []string
	canceled   []string
	adjusted   []int
	adjustErr  map[int]error
	callErr    error
}

func (f *fakeTransferAPI) InitiateTransfer(ctx context.Context, lines []upstream.TransferLine, fromID, toID int) (string, error) {
	if f.callErr != nil {
		return "", f.callErr
	}
	f.initiated = append(f.initiated, lines)
	f.fromID = fromID
	f.toID = toID
	return f.batchID, nil
}

func (f *fakeTransferAPI) GetTransfers(ctx context.Context, query models.TransferListQuery) ([]models.TransferBatch, *models.Pagination, error) {
	return nil, nil, nil
}

func (f *fakeTransferAPI) GetTransferDetails(ctx context.Context, batchID string) (*models.TransferBatch, error) {
	return f.details, f.detailsErr
}

func (f *fakeTransferAPI) ApproveTransfer(ctx context.Context, batchID, action string, lines []upstream.ReviewLine) error {
	if f.callErr != nil {
		return f.callErr
	}
	f.reviewed = append(f.reviewed, batchID+":"+action)
	return nil
}

func (f *fakeTransferAPI) CancelTransfer(ctx context.Context, batchID, reason string) error {
	if f.callErr != nil {
		return f.callErr
	}
	f.canceled = append(f.canceled, batchID)
	return nil
}

func (f *fakeTransferAPI) AdjustStock(ctx context.Context, productID, locationID, deltaQty int, reason string) error {
	if err := f.adjustErr[productID]; err != nil {
		return err
	}
	f.adjusted = append(f.adjusted, productID)
	return nil
}

func newTransferService(api *fakeTransferAPI) (TransferService, *cache.SnapshotStore) {
	store := cache.NewSnapshotStore(nil, time.Minute, zap.NewNop())
	return NewTransferService(api, store, nil, zap.NewNop()), store
}

func validRequest() *models.InitiateTransferRequest {
	return &models.InitiateTransferRequest{
		Source:        "1",
		DestinationID: intPtr(2),
		Items: []models.TransferItemRequest{
			{ProductID: 7, Qty: 3, Included: true},
		},
	}
}

func TestInitiateRejectsSameEndpoints(t *testing.T) {
	svc, _ := newTransferService(&fakeTransferAPI{})

	req := validRequest()
	req.Source = "2"
	_, err := svc.Initiate(context.Background(), req)

	if !IsValidation(err) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
}

func TestInitiateRejectsNonPositiveQty(t *testing.T) {
	svc, _ := newTransferService(&fakeTransferAPI{})

	for _, qty := range []int{0, -4} {
		req := validRequest()
		req.Items[0].Qty = qty
		if _, err := svc.Initiate(context.Background(), req); !IsValidation(err) {
			t.Errorf("qty=%d: error = %v, want ValidationError", qty, err)
		}
	}
}

func TestInitiateRejectsEmptySelection(t *testing.T) {
	api := &fakeTransferAPI{}
	svc, _ := newTransferService(api)

	req := validRequest()
	req.Items[0].Included = false
	_, err := svc.Initiate(context.Background(), req)

	if !IsValidation(err) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if len(api.initiated) != 0 {
		t.Error("el API remoto fue llamado con un traspaso vacío")
	}
}

func TestInitiateSkipsExcludedItems(t *testing.T) {
	api := &fakeTransferAPI{batchID: "B-1"}
	svc, _ := newTransferService(api)

	req := &models.InitiateTransferRequest{
		Source:        "1",
		DestinationID: intPtr(2),
		Items: []models.TransferItemRequest{
			{ProductID: 7, Qty: 3, Included: true},
			{ProductID: 8, Qty: -99, Included: false}, // excluida: su qty no se valida
			{ProductID: 9, Qty: 1, Included: true},
		},
	}

	result, err := svc.Initiate(context.Background(), req)
	if err != nil {
		t.Fatalf("Initiate() error = %v", err)
	}
	if result.BatchID != "B-1" {
		t.Errorf("BatchID = %q", result.BatchID)
	}
	if len(api.initiated) != 1 || len(api.initiated[0]) != 2 {
		t.Fatalf("lines enviadas = %+v, want 2 líneas", api.initiated)
	}
	if api.fromID != 1 || api.toID != 2 {
		t.Errorf("endpoints = %d -> %d", api.fromID, api.toID)
	}
}

func TestInitiateSingleItemStockCeiling(t *testing.T) {
	api := &fakeTransferAPI{batchID: "B-1"}
	svc, store := newTransferService(api)

	// Cargar el snapshot con stock conocido
	store.GetInventory(context.Background(), func(ctx context.Context, f models.InventoryFilters) (*cache.InventoryPage, error) {
		return &cache.InventoryPage{Products: []models.Product{
			{ID: 7, StockBreakdown: []models.StockEntry{{LocationID: 1, Quantity: 5, Type: "normal"}}},
		}}, nil
	})

	req := validRequest()
	req.Items[0].Qty = 6
	if _, err := svc.Initiate(context.Background(), req); !IsValidation(err) {
		t.Fatalf("qty sobre el stock: error = %v, want ValidationError", err)
	}

	req.Items[0].Qty = 5
	if _, err := svc.Initiate(context.Background(), req); err != nil {
		t.Fatalf("qty igual al stock: error = %v", err)
	}
}

func TestInitiateFailureLeavesSelectionIntact(t *testing.T) {
	api := &fakeTransferAPI{callErr: errors.New("upstream down")}
	svc, store := newTransferService(api)
	store.Select(7)

	if _, err := svc.Initiate(context.Background(), validRequest()); err == nil {
		t.Fatal("Initiate() error = nil, want error")
	}
	if len(store.Selection()) != 1 {
		t.Error("la selección se limpió en un intento fallido")
	}
}

func TestInitiateSuccessClearsSelection(t *testing.T) {
	api := &fakeTransferAPI{batchID: "B-9"}
	svc, store := newTransferService(api)
	store.Select(7)

	if _, err := svc.Initiate(context.Background(), validRequest()); err != nil {
		t.Fatalf("Initiate() error = %v", err)
	}
	if len(store.Selection()) != 0 {
		t.Errorf("Selection = %v, want vacía", store.Selection())
	}
}

func TestInitiateFromPoolPartialFailure(t *testing.T) {
	api := &fakeTransferAPI{
		adjustErr: map[int]error{8: errors.New("sku not found")},
	}
	svc, _ := newTransferService(api)

	req := &models.InitiateTransferRequest{
		Source:        WCPoolSource,
		DestinationID: intPtr(2),
		Items: []models.TransferItemRequest{
			{ProductID: 7, Qty: 1, Included: true},
			{ProductID: 8, Qty: 2, Included: true},
			{ProductID: 9, Qty: 3, Included: true},
		},
	}

	result, err := svc.Initiate(context.Background(), req)
	if err != nil {
		t.Fatalf("Initiate() error = %v, el fallo parcial no es fallo total", err)
	}
	outcome := result.Adjustment
	if outcome == nil {
		t.Fatal("Adjustment = nil")
	}
	if outcome.Attempted != 3 || outcome.Succeeded != 2 {
		t.Errorf("outcome = %+v, want 2 de 3", outcome)
	}
	if len(outcome.Errors) != 1 {
		t.Errorf("Errors = %v", outcome.Errors)
	}
}

func TestReviewRejectsResolvedBatch(t *testing.T) {
	api := &fakeTransferAPI{
		details: &models.TransferBatch{BatchID: "B-1", Status: models.TransferCompleted},
	}
	svc, _ := newTransferService(api)

	req := &models.ReviewTransferRequest{
		Action: "approve",
		Items:  []models.ReviewItemRequest{{ID: 1, ReceivedQty: intPtr(3)}},
	}
	err := svc.Review(context.Background(), "B-1", req)

	if !IsValidation(err) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if len(api.reviewed) != 0 {
		t.Error("se intentó resolver un lote ya resuelto")
	}
}

func TestReviewRejectsNegativeReceivedQty(t *testing.T) {
	api := &fakeTransferAPI{
		details: &models.TransferBatch{BatchID: "B-1", Status: models.TransferPending},
	}
	svc, _ := newTransferService(api)

	req := &models.ReviewTransferRequest{
		Action: "approve",
		Items:  []models.ReviewItemRequest{{ID: 1, ReceivedQty: intPtr(-1)}},
	}
	if err := svc.Review(context.Background(), "B-1", req); !IsValidation(err) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
}

func TestReviewAllowsOverReceipt(t *testing.T) {
	api := &fakeTransferAPI{
		details: &models.TransferBatch{
			BatchID: "B-1",
			Status:  models.TransferPending,
			Items:   []models.TransferItem{{ID: 1, Qty: 5}},
		},
	}
	svc, _ := newTransferService(api)

	// Recibir más de lo enviado es válido: el conteo físico manda
	req := &models.ReviewTransferRequest{
		Action: "approve",
		Items:  []models.ReviewItemRequest{{ID: 1, ReceivedQty: intPtr(8)}},
	}
	if err := svc.Review(context.Background(), "B-1", req); err != nil {
		t.Fatalf("Review() error = %v", err)
	}
	if len(api.reviewed) != 1 || api.reviewed[0] != "B-1:approve" {
		t.Errorf("reviewed = %v", api.reviewed)
	}
}

func TestCancelRejectsResolvedBatch(t *testing.T) {
	api := &fakeTransferAPI{
		details: &models.TransferBatch{BatchID: "B-1", Status: models.TransferRejected},
	}
	svc, _ := newTransferService(api)

	err := svc.Cancel(context.Background(), "B-1", "cambio de planes")
	if !IsValidation(err) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if len(api.canceled) != 0 {
		t.Error("se intentó cancelar un lote ya resuelto")
	}
}

func TestCancelPendingBatch(t *testing.T) {
	api := &fakeTransferAPI{
		details: &models.TransferBatch{BatchID: "B-1", Status: models.TransferPending},
	}
	svc, _ := newTransferService(api)

	if err := svc.Cancel(context.Background(), "B-1", "error de carga"); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if len(api.canceled) != 1 {
		t.Errorf("canceled = %v", api.canceled)
	}
}
