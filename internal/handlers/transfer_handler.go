package handlers

import (
	"net/http"
	"strconv"

	"inventory-gateway/internal/models"
	"inventory-gateway/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// TransferHandler maneja las peticiones HTTP de traspasos
type TransferHandler struct {
	transferService services.TransferService
	validator       *validator.Validate
	logger          *zap.Logger
}

// NewTransferHandler crea una nueva instancia del handler
func NewTransferHandler(transferService services.TransferService, logger *zap.Logger) *TransferHandler {
	return &TransferHandler{
		transferService: transferService,
		validator:       validator.New(),
		logger:          logger,
	}
}

// Initiate crea un traspaso nuevo
func (h *TransferHandler) Initiate(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "initiate_transfer"))

	var req models.InitiateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.transferService.Initiate(c.Request.Context(), &req)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	message := "Traspaso iniciado correctamente"
	if result.Adjustment != nil {
		// Los ajustes contra el pool externo pueden ser parciales; la
		// respuesta sigue siendo 200 con el detalle de procesados.
		message = "Ajustes contra el pool procesados"
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data":    result,
	})
}

// List lista traspasos con filtros de dirección, estado y fechas
func (h *TransferHandler) List(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "list_transfers"))

	page := 1
	if parsed, err := strconv.Atoi(c.Query("page")); err == nil && parsed >= 1 {
		page = parsed
	}

	query := models.TransferListQuery{
		Direction: c.DefaultQuery("direction", "all"),
		State:     c.DefaultQuery("state", "all"),
		Search:    c.Query("search"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		Page:      page,
	}

	batches, pagination, err := h.transferService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Traspasos obtenidos correctamente",
		"data": gin.H{
			"transfers":  batches,
			"pagination": pagination,
		},
	})
}

// Details obtiene un lote completo con sus líneas
func (h *TransferHandler) Details(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "transfer_details"))

	batchID := c.Param("batch_id")
	batch, err := h.transferService.Details(c.Request.Context(), batchID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Detalle de traspaso obtenido",
		"data":    batch,
	})
}

// Review aprueba o rechaza un lote pendiente
func (h *TransferHandler) Review(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "review_transfer"))

	var req models.ReviewTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondBindError(c, err)
		return
	}

	batchID := c.Param("batch_id")
	if err := h.transferService.Review(c.Request.Context(), batchID, &req); err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Traspaso revisado correctamente",
	})
}

// Cancel cancela un lote pendiente desde el origen
func (h *TransferHandler) Cancel(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "cancel_transfer"))

	var req models.CancelTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	batchID := c.Param("batch_id")
	if err := h.transferService.Cancel(c.Request.Context(), batchID, req.Reason); err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Traspaso cancelado correctamente",
	})
}
