package services

import (
	"context"
	"fmt"

	"inventory-gateway/internal/cache"
	"inventory-gateway/internal/csvimport"
	"inventory-gateway/internal/models"

	"go.uber.org/zap"
)

// importAPI son las operaciones de import del API remoto
type importAPI interface {
	ImportStock(ctx context.Context, rows []models.ImportRow, mode string) (*models.ImportReport, error)
}

// ImportService maneja el import de stock desde archivos delimitados
type ImportService interface {
	Preview(content string) ([]models.ImportRow, error)
	Commit(ctx context.Context, content, mode string) (*models.ImportReport, error)
}

// importService implementa ImportService
type importService struct {
	api    importAPI
	store  *cache.SnapshotStore
	events Broadcaster
	logger *zap.Logger
}

// NewImportService crea una nueva instancia del servicio
func NewImportService(api importAPI, store *cache.SnapshotStore, events Broadcaster, logger *zap.Logger) ImportService {
	return &importService{
		api:    api,
		store:  store,
		events: events,
		logger: logger,
	}
}

// Preview parsea el contenido sin enviarlo, para que el usuario revise
// las filas resultantes antes de confirmar
func (s *importService) Preview(content string) ([]models.ImportRow, error) {
	return csvimport.Parse(content)
}

// Commit parsea, valida y envía el lote completo al servidor. Un branch id
// que no parseó es un error del lote entero: 0 es la bodega central y no
// sirve como default silencioso.
func (s *importService) Commit(ctx context.Context, content, mode string) (*models.ImportReport, error) {
	rows, err := csvimport.Parse(content)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &ValidationError{Field: "content", Message: "file has no importable rows"}
	}

	for i, row := range rows {
		if row.BranchID == nil {
			return nil, &ValidationError{
				Field:   fmt.Sprintf("rows[%d].branch_id", i),
				Message: fmt.Sprintf("row with sku %q has an invalid branch id", row.SKU),
			}
		}
	}

	report, err := s.api.ImportStock(ctx, rows, mode)
	if err != nil {
		return nil, err
	}

	s.store.InvalidateInventory(ctx)
	if s.events != nil {
		s.events.Broadcast("inventory_invalidated", nil)
	}

	s.logger.Info("Stock import committed",
		zap.String("mode", mode),
		zap.Int("submitted", report.Submitted),
		zap.Int("skipped", len(report.SkippedSKUs)))
	return report, nil
}
