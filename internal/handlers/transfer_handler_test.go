package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"inventory-gateway/internal/models"
	"inventory-gateway/internal/services"
	"inventory-gateway/internal/upstream"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// stubTransferService responde siempre con el error configurado
type stubTransferService struct {
	err    error
	result *models.InitiateTransferResult
}

func (s *stubTransferService) Initiate(ctx context.Context, req *models.InitiateTransferRequest) (*models.InitiateTransferResult, error) {
	return s.result, s.err
}

func (s *stubTransferService) List(ctx context.Context, query models.TransferListQuery) ([]models.TransferBatch, *models.Pagination, error) {
	return nil, nil, s.err
}

func (s *stubTransferService) Details(ctx context.Context, batchID string) (*models.TransferBatch, error) {
	return nil, s.err
}

func (s *stubTransferService) Review(ctx context.Context, batchID string, req *models.ReviewTransferRequest) error {
	return s.err
}

func (s *stubTransferService) Cancel(ctx context.Context, batchID, reason string) error {
	return s.err
}

func newTransferRouter(svc services.TransferService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewTransferHandler(svc, zap.NewNop())
	router.POST("/transfers", h.Initiate)
	return router
}

func postTransfer(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/transfers", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const validBody = `{"source":"1","destination_id":2,"items":[{"product_id":7,"qty":3,"included":true}]}`

func TestInitiateMapsValidationErrorTo400(t *testing.T) {
	router := newTransferRouter(&stubTransferService{
		err: &services.ValidationError{Field: "source", Message: "source and destination must be different branches"},
	})

	w := postTransfer(t, router, validBody)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestInitiateMapsApplicationErrorTo422(t *testing.T) {
	router := newTransferRouter(&stubTransferService{
		err: &upstream.ApplicationError{Action: "initiate_transfer", Message: "Insufficient stock"},
	})

	w := postTransfer(t, router, validBody)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", w.Code)
	}
	// El mensaje del servidor tiene que llegar textual a la UI
	if !strings.Contains(w.Body.String(), "Insufficient stock") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestInitiateMapsNetworkErrorTo502(t *testing.T) {
	router := newTransferRouter(&stubTransferService{
		err: &upstream.NetworkError{Action: "initiate_transfer", Err: context.DeadlineExceeded},
	})

	w := postTransfer(t, router, validBody)
	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", w.Code)
	}
}

func TestInitiateMalformedJSONIs400(t *testing.T) {
	router := newTransferRouter(&stubTransferService{})

	w := postTransfer(t, router, `{"source":`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestInitiateSuccess(t *testing.T) {
	router := newTransferRouter(&stubTransferService{
		result: &models.InitiateTransferResult{BatchID: "B-7"},
	})

	w := postTransfer(t, router, validBody)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "B-7") {
		t.Errorf("body = %s", w.Body.String())
	}
}
