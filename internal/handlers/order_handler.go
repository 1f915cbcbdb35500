package handlers

import (
	"net/http"

	"inventory-gateway/internal/models"
	"inventory-gateway/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// OrderHandler maneja las peticiones HTTP de pedidos pendientes
type OrderHandler struct {
	orderService services.OrderService
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewOrderHandler crea una nueva instancia del handler
func NewOrderHandler(orderService services.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		validator:    validator.New(),
		logger:       logger,
	}
}

// Pending lista los pedidos pendientes del storefront en un rango de fechas
func (h *OrderHandler) Pending(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "pending_orders"))

	orders, err := h.orderService.Pending(c.Request.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Pedidos pendientes obtenidos",
		"data": gin.H{
			"orders": orders,
			"total":  len(orders),
		},
	})
}

// Process descuenta las líneas de un pedido contra la sucursal elegida
func (h *OrderHandler) Process(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "process_order"))

	var req models.ProcessOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.orderService.Process(c.Request.Context(), &req); err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Pedido descontado correctamente",
	})
}
