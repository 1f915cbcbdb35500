package handlers

import (
	"net/http"

	"inventory-gateway/internal/models"
	"inventory-gateway/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ImportHandler maneja las peticiones HTTP de import de stock
type ImportHandler struct {
	importService services.ImportService
	validator     *validator.Validate
	logger        *zap.Logger
}

// NewImportHandler crea una nueva instancia del handler
func NewImportHandler(importService services.ImportService, logger *zap.Logger) *ImportHandler {
	return &ImportHandler{
		importService: importService,
		validator:     validator.New(),
		logger:        logger,
	}
}

// Preview parsea el archivo y retorna las filas sin enviarlas
func (h *ImportHandler) Preview(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "import_preview"))

	var req models.ImportPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondBindError(c, err)
		return
	}

	rows, err := h.importService.Preview(req.Content)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Archivo parseado correctamente",
		"data": gin.H{
			"rows":  rows,
			"total": len(rows),
		},
	})
}

// Commit parsea, valida y envía el lote al servidor de inventario
func (h *ImportHandler) Commit(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "import_commit"))

	var req models.ImportCommitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondBindError(c, err)
		return
	}

	report, err := h.importService.Commit(c.Request.Context(), req.Content, req.Mode)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Import de stock procesado",
		"data":    report,
	})
}
