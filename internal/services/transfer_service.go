package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"inventory-gateway/internal/cache"
	"inventory-gateway/internal/models"
	"inventory-gateway/internal/upstream"

	"go.uber.org/zap"
)

// WCPoolSource es el pseudo-origen que representa el pool de stock del
// storefront externo. No es una sucursal: un traspaso desde "wc" se
// procesa como ajustes independientes contra el destino.
const WCPoolSource = "wc"

// transferAPI son las operaciones del API remoto que usa este servicio
type transferAPI interface {
	InitiateTransfer(ctx context.Context, lines []upstream.TransferLine, fromID, toID int) (string, error)
	GetTransfers(ctx context.Context, query models.TransferListQuery) ([]models.TransferBatch, *models.Pagination, error)
	GetTransferDetails(ctx context.Context, batchID string) (*models.TransferBatch, error)
	ApproveTransfer(ctx context.Context, batchID, action string, lines []upstream.ReviewLine) error
	CancelTransfer(ctx context.Context, batchID, reason string) error
	AdjustStock(ctx context.Context, productID, locationID, deltaQty int, reason string) error
}

// TransferService define el ciclo de vida de los traspasos entre sucursales
type TransferService interface {
	Initiate(ctx context.Context, req *models.InitiateTransferRequest) (*models.InitiateTransferResult, error)
	List(ctx context.Context, query models.TransferListQuery) ([]models.TransferBatch, *models.Pagination, error)
	Details(ctx context.Context, batchID string) (*models.TransferBatch, error)
	Review(ctx context.Context, batchID string, req *models.ReviewTransferRequest) error
	Cancel(ctx context.Context, batchID, reason string) error
}

// transferService implementa TransferService
type transferService struct {
	api    transferAPI
	store  *cache.SnapshotStore
	events Broadcaster
	logger *zap.Logger
}

// NewTransferService crea una nueva instancia del servicio
func NewTransferService(api transferAPI, store *cache.SnapshotStore, events Broadcaster, logger *zap.Logger) TransferService {
	return &transferService{
		api:    api,
		store:  store,
		events: events,
		logger: logger,
	}
}

// transferPlan es el resultado validado del armado de un traspaso
type transferPlan struct {
	fromPool bool
	fromID   int
	toID     int
	lines    []upstream.TransferLine
}

// buildTransferPlan valida la petición y la traduce a un plan listo para
// enviar. El flujo de un producto y el masivo comparten este único camino:
// el de un producto manda una sola línea marcada como incluida.
func buildTransferPlan(req *models.InitiateTransferRequest, store *cache.SnapshotStore) (*transferPlan, error) {
	if req.DestinationID == nil {
		return nil, &ValidationError{Field: "destination_id", Message: "destination branch is required"}
	}

	source := strings.TrimSpace(req.Source)
	if source == "" {
		return nil, &ValidationError{Field: "source", Message: "source branch is required"}
	}

	plan := &transferPlan{toID: *req.DestinationID}
	if source == WCPoolSource {
		plan.fromPool = true
	} else {
		fromID, err := strconv.Atoi(source)
		if err != nil {
			return nil, &ValidationError{Field: "source", Message: fmt.Sprintf("invalid source branch %q", source)}
		}
		if fromID == plan.toID {
			return nil, &ValidationError{Field: "source", Message: "source and destination must be different branches"}
		}
		plan.fromID = fromID
	}

	for i, item := range req.Items {
		if !item.Included {
			continue
		}
		if item.Qty <= 0 {
			return nil, &ValidationError{
				Field:   fmt.Sprintf("items[%d].qty", i),
				Message: "quantity must be a positive integer",
			}
		}
		plan.lines = append(plan.lines, upstream.TransferLine{ProductID: item.ProductID, Qty: item.Qty})
	}

	if len(plan.lines) == 0 {
		return nil, &ValidationError{Field: "items", Message: "transfer has no included items"}
	}

	// Techo de stock para el flujo de un solo producto. Es una guía de UX:
	// el servidor sigue siendo la autoridad y puede rechazar igual por una
	// carrera con otro traspaso concurrente.
	if !plan.fromPool && len(plan.lines) == 1 {
		line := plan.lines[0]
		if available, ok := store.ProductStock(line.ProductID, plan.fromID); ok && line.Qty > available {
			return nil, &ValidationError{
				Field:   "items[0].qty",
				Message: fmt.Sprintf("quantity %d exceeds available stock %d at source", line.Qty, available),
			}
		}
	}

	return plan, nil
}

// Initiate valida y crea un traspaso nuevo. Para el pseudo-origen "wc"
// el resultado trae el reporte de ajustes en vez de un batch_id.
func (s *transferService) Initiate(ctx context.Context, req *models.InitiateTransferRequest) (*models.InitiateTransferResult, error) {
	plan, err := buildTransferPlan(req, s.store)
	if err != nil {
		return nil, err
	}

	if plan.fromPool {
		return s.adjustFromPool(ctx, plan)
	}

	logger := s.logger.With(
		zap.String("operation", "initiate_transfer"),
		zap.Int("from_loc_id", plan.fromID),
		zap.Int("to_loc_id", plan.toID),
		zap.Int("item_count", len(plan.lines)),
	)

	batchID, err := s.api.InitiateTransfer(ctx, plan.lines, plan.fromID, plan.toID)
	if err != nil {
		// El caché queda exactamente como estaba antes del intento
		logger.Error("Transfer initiation failed", zap.Error(err))
		return nil, err
	}

	s.store.InvalidateInventory(ctx)
	s.store.ClearSelection()
	s.notify("transfer_created", map[string]interface{}{"batch_id": batchID})

	logger.Info("Transfer initiated", zap.String("batch_id", batchID))
	return &models.InitiateTransferResult{BatchID: batchID}, nil
}

// adjustFromPool procesa cada línea como un ajuste independiente contra el
// destino. El pool externo no participa de lotes: un fallo parcial se
// reporta como procesados vs intentados, no como fallo total.
func (s *transferService) adjustFromPool(ctx context.Context, plan *transferPlan) (*models.InitiateTransferResult, error) {
	outcome := &models.AdjustmentOutcome{Attempted: len(plan.lines)}

	for _, line := range plan.lines {
		err := s.api.AdjustStock(ctx, line.ProductID, plan.toID, line.Qty, "storefront pool adjustment")
		if err != nil {
			outcome.Errors = append(outcome.Errors, fmt.Sprintf("product %d: %v", line.ProductID, err))
			continue
		}
		outcome.Succeeded++
	}

	if outcome.Succeeded > 0 {
		s.store.InvalidateInventory(ctx)
		s.notify("inventory_invalidated", nil)
	}

	s.logger.Info("Storefront pool adjustment finished",
		zap.Int("attempted", outcome.Attempted),
		zap.Int("succeeded", outcome.Succeeded))

	return &models.InitiateTransferResult{Adjustment: outcome}, nil
}

// List delega el filtrado de dirección y estado al API remoto
func (s *transferService) List(ctx context.Context, query models.TransferListQuery) ([]models.TransferBatch, *models.Pagination, error) {
	return s.api.GetTransfers(ctx, query)
}

// Details obtiene un lote completo con sus líneas
func (s *transferService) Details(ctx context.Context, batchID string) (*models.TransferBatch, error) {
	return s.api.GetTransferDetails(ctx, batchID)
}

// Review aprueba o rechaza un lote pendiente. Si el lote ya está resuelto
// se rechaza acá mismo, sin intentar la llamada al servidor.
func (s *transferService) Review(ctx context.Context, batchID string, req *models.ReviewTransferRequest) error {
	batch, err := s.api.GetTransferDetails(ctx, batchID)
	if err != nil {
		return err
	}
	if batch.Resolved() {
		return &ValidationError{
			Field:   "batch_id",
			Message: fmt.Sprintf("batch %s is already %s", batchID, batch.Status),
		}
	}

	var lines []upstream.ReviewLine
	if req.Action == "approve" {
		lines = make([]upstream.ReviewLine, 0, len(req.Items))
		for i, item := range req.Items {
			if item.ReceivedQty == nil {
				return &ValidationError{
					Field:   fmt.Sprintf("items[%d].received_qty", i),
					Message: "received quantity is required",
				}
			}
			// Recibir más de lo enviado está permitido: el conteo real puede
			// superar lo que el origen registró. Solo se rechaza lo negativo.
			if *item.ReceivedQty < 0 {
				return &ValidationError{
					Field:   fmt.Sprintf("items[%d].received_qty", i),
					Message: "received quantity cannot be negative",
				}
			}
			lines = append(lines, upstream.ReviewLine{ID: item.ID, ReceivedQty: *item.ReceivedQty, Note: item.Note})
		}
	}

	if err := s.api.ApproveTransfer(ctx, batchID, req.Action, lines); err != nil {
		return err
	}

	s.store.InvalidateInventory(ctx)
	s.notify("transfer_resolved", map[string]interface{}{"batch_id": batchID, "action": req.Action})

	s.logger.Info("Transfer reviewed",
		zap.String("batch_id", batchID),
		zap.String("action", req.Action))
	return nil
}

// Cancel cancela un lote pendiente desde el origen. El servidor devuelve
// las cantidades reservadas; por eso también invalida el inventario.
func (s *transferService) Cancel(ctx context.Context, batchID, reason string) error {
	batch, err := s.api.GetTransferDetails(ctx, batchID)
	if err != nil {
		return err
	}
	if batch.Resolved() {
		return &ValidationError{
			Field:   "batch_id",
			Message: fmt.Sprintf("batch %s is already %s and cannot be canceled", batchID, batch.Status),
		}
	}

	if err := s.api.CancelTransfer(ctx, batchID, reason); err != nil {
		return err
	}

	s.store.InvalidateInventory(ctx)
	s.notify("transfer_resolved", map[string]interface{}{"batch_id": batchID, "action": "cancel"})

	s.logger.Info("Transfer canceled", zap.String("batch_id", batchID))
	return nil
}

func (s *transferService) notify(eventType string, payload interface{}) {
	if s.events != nil {
		s.events.Broadcast(eventType, payload)
	}
}
