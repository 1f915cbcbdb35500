package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"inventory-gateway/internal/models"

	"go.uber.org/zap"
)

func newTestClient(baseURL string) *Client {
	return NewClient(baseURL, "test-token", 1, "manager", 5*time.Second, zap.NewNop())
}

func TestGetInventoryDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("action"); got != "get_inventory" {
			t.Errorf("action = %q, want get_inventory", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "success",
			"data": []map[string]interface{}{
				{"id": 7, "name": "Camisa", "status": "publish"},
			},
			"pagination": map[string]int{"total_pages": 3, "total_items": 55},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	products, pagination, err := client.GetInventory(context.Background(), models.InventoryFilters{Page: 2})
	if err != nil {
		t.Fatalf("GetInventory() error = %v", err)
	}
	if len(products) != 1 || products[0].ID != 7 {
		t.Errorf("products = %+v", products)
	}
	if pagination == nil || pagination.TotalPages != 3 {
		t.Errorf("pagination = %+v", pagination)
	}
}

func TestApplicationErrorKeepsServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "error",
			"message": "Insufficient stock at source location",
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	err := client.AdjustStock(context.Background(), 7, 1, -5, "test")

	if !IsApplication(err) {
		t.Fatalf("IsApplication(%v) = false", err)
	}
	// El mensaje del servidor se preserva textual para mostrarlo en la UI
	if err.Error() != "Insufficient stock at source location" {
		t.Errorf("Error() = %q", err.Error())
	}
	if IsNetwork(err) {
		t.Error("IsNetwork() = true para error de negocio")
	}
}

func TestMalformedBodyIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>fatal error</html>"))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, _, err := client.GetInventory(context.Background(), models.InventoryFilters{})

	if !IsNetwork(err) {
		t.Fatalf("IsNetwork(%v) = false", err)
	}
}

func TestEmptyBodyIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.GetTransferDetails(context.Background(), "B-1")

	if !IsNetwork(err) {
		t.Fatalf("IsNetwork(%v) = false", err)
	}
}

func TestConnectionRefusedIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.GetLocations(context.Background())

	if !IsNetwork(err) {
		t.Fatalf("IsNetwork(%v) = false", err)
	}
}

func TestInitiateTransferSendsLinesAndReturnsBatchID(t *testing.T) {
	var captured map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("action"); got != "initiate_transfer" {
			t.Errorf("action = %q", got)
		}
		json.NewDecoder(r.Body).Decode(&captured)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "success",
			"data":   map[string]string{"batch_id": "B-42"},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	lines := []TransferLine{{ProductID: 7, Qty: 3}}
	batchID, err := client.InitiateTransfer(context.Background(), lines, 1, 2)
	if err != nil {
		t.Fatalf("InitiateTransfer() error = %v", err)
	}
	if batchID != "B-42" {
		t.Errorf("batchID = %q, want B-42", batchID)
	}
	if captured["from_branch_id"] != float64(1) || captured["to_branch_id"] != float64(2) {
		t.Errorf("body = %+v", captured)
	}
}

func TestImportStockReportsSkippedSKUs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "success",
			"message": "2 of 3 rows applied",
			"errors":  []string{"GHOST-1"},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	branch := 1
	rows := []models.ImportRow{
		{SKU: "A", Qty: 1, BranchID: &branch},
		{SKU: "B", Qty: 2, BranchID: &branch},
		{SKU: "GHOST-1", Qty: 3, BranchID: &branch},
	}

	report, err := client.ImportStock(context.Background(), rows, "add")
	if err != nil {
		t.Fatalf("ImportStock() error = %v", err)
	}
	if report.Submitted != 3 {
		t.Errorf("Submitted = %d, want 3", report.Submitted)
	}
	if len(report.SkippedSKUs) != 1 || report.SkippedSKUs[0] != "GHOST-1" {
		t.Errorf("SkippedSKUs = %v", report.SkippedSKUs)
	}
}
