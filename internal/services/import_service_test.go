package services

import (
	"context"
	"testing"
	"time"

	"inventory-gateway/internal/cache"
	"inventory-gateway/internal/models"

	"go.uber.org/zap"
)

type fakeImportAPI struct {
	report    *models.ImportReport
	committed [][]models.ImportRow
	mode      string
}

func (f *fakeImportAPI) ImportStock(ctx context.Context, rows []models.ImportRow, mode string) (*models.ImportReport, error) {
	f.committed = append(f.committed, rows)
	f.mode = mode
	return f.report, nil
}

func newImportService(api *fakeImportAPI) ImportService {
	store := cache.NewSnapshotStore(nil, time.Minute, zap.NewNop())
	return NewImportService(api, store, nil, zap.NewNop())
}

func TestCommitRejectsRowsWithInvalidBranch(t *testing.T) {
	api := &fakeImportAPI{}
	svc := newImportService(api)

	// "norte" no es un id: la fila queda con branch nil y el lote se rechaza
	_, err := svc.Commit(context.Background(), "sku,qty,branch\nA,1,1\nB,2,norte\n", "add")

	if !IsValidation(err) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if len(api.committed) != 0 {
		t.Error("el lote se envió con una fila inválida")
	}
}

func TestCommitRejectsFileWithNoRows(t *testing.T) {
	svc := newImportService(&fakeImportAPI{})

	// Encabezado válido pero todas las filas descartadas
	_, err := svc.Commit(context.Background(), "sku,qty,branch\n,1,1\n", "add")

	if !IsValidation(err) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
}

func TestCommitSubmitsParsedRows(t *testing.T) {
	api := &fakeImportAPI{
		report: &models.ImportReport{Message: "ok", Submitted: 2, SkippedSKUs: []string{"B"}},
	}
	svc := newImportService(api)

	report, err := svc.Commit(context.Background(), "sku,qty,branch\nA,1,1\nB,2,2\n", "replace")
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if len(api.committed) != 1 || len(api.committed[0]) != 2 {
		t.Fatalf("committed = %+v", api.committed)
	}
	if api.mode != "replace" {
		t.Errorf("mode = %q", api.mode)
	}
	if len(report.SkippedSKUs) != 1 {
		t.Errorf("SkippedSKUs = %v", report.SkippedSKUs)
	}
}

func TestPreviewDoesNotSubmit(t *testing.T) {
	api := &fakeImportAPI{}
	svc := newImportService(api)

	rows, err := svc.Preview("sku,qty,branch\nA,1,1\n")
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("rows = %+v", rows)
	}
	if len(api.committed) != 0 {
		t.Error("Preview() envió filas al servidor")
	}
}
