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

// InventoryHandler maneja las peticiones HTTP de inventario y filtros
type InventoryHandler struct {
	inventoryService services.InventoryService
	validator        *validator.Validate
	logger           *zap.Logger
}

// NewInventoryHandler crea una nueva instancia del handler
func NewInventoryHandler(inventoryService services.InventoryService, logger *zap.Logger) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
		validator:        validator.New(),
		logger:           logger,
	}
}

// List retorna la página de inventario para los filtros vigentes
func (h *InventoryHandler) List(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "list_inventory"))

	page, err := h.inventoryService.List(c.Request.Context())
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Inventario obtenido correctamente",
		"data": gin.H{
			"products":   page.Products,
			"pagination": page.Pagination,
			"fetched_at": page.FetchedAt,
			"filters":    h.inventoryService.Filters(),
		},
	})
}

// ApplyFilters aplica una mutación parcial de filtros
func (h *InventoryHandler) ApplyFilters(c *gin.Context) {
	var req models.FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	filters := h.inventoryService.ApplyFilters(req)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Filtros aplicados",
		"data":    filters,
	})
}

// Select agrega un producto a la selección de la estación
func (h *InventoryHandler) Select(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("product_id"))
	if err != nil || productID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "ID de producto inválido",
		})
		return
	}

	h.inventoryService.Select(productID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Producto seleccionado",
		"data":    h.inventoryService.Selection(),
	})
}

// Deselect saca un producto de la selección
func (h *InventoryHandler) Deselect(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("product_id"))
	if err != nil || productID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "ID de producto inválido",
		})
		return
	}

	h.inventoryService.Deselect(productID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Producto deseleccionado",
		"data":    h.inventoryService.Selection(),
	})
}

// Selection retorna los productos seleccionados
func (h *InventoryHandler) Selection(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Selección obtenida",
		"data":    h.inventoryService.Selection(),
	})
}

// ClearSelection vacía la selección
func (h *InventoryHandler) ClearSelection(c *gin.Context) {
	h.inventoryService.ClearSelection()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Selección vaciada",
	})
}

// Adjust aplica un delta puntual de stock
func (h *InventoryHandler) Adjust(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "adjust_stock"))

	var req models.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.inventoryService.Adjust(c.Request.Context(), &req); err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Stock ajustado correctamente",
	})
}
