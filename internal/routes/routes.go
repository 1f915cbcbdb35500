package routes

import (
	"inventory-gateway/internal/handlers"
	"inventory-gateway/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers agrupa los handlers que montan rutas
type Handlers struct {
	Inventory *handlers.InventoryHandler
	Transfer  *handlers.TransferHandler
	Import    *handlers.ImportHandler
	Order     *handlers.OrderHandler
	Location  *handlers.LocationHandler
	Events    *handlers.EventsHandler
}

// SetupRoutes configura todas las rutas de la aplicación
func SetupRoutes(router *gin.Engine, h Handlers, healthChecker *middleware.HealthChecker) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Inventario: snapshot, filtros y selección
		inventory := v1.Group("/inventory")
		{
			inventory.GET("", h.Inventory.List)
			inventory.POST("/filters", h.Inventory.ApplyFilters)
			inventory.POST("/adjust", h.Inventory.Adjust)
			inventory.GET("/selection", h.Inventory.Selection)
			inventory.POST("/selection/:product_id", h.Inventory.Select)
			inventory.DELETE("/selection/:product_id", h.Inventory.Deselect)
			inventory.DELETE("/selection", h.Inventory.ClearSelection)
		}

		// Traspasos entre sucursales
		transfers := v1.Group("/transfers")
		{
			transfers.POST("", h.Transfer.Initiate)
			transfers.GET("", h.Transfer.List)
			transfers.GET("/:batch_id", h.Transfer.Details)
			transfers.POST("/:batch_id/review", h.Transfer.Review)
			transfers.POST("/:batch_id/cancel", h.Transfer.Cancel)
		}

		// Import de stock desde archivos delimitados
		importGroup := v1.Group("/import")
		{
			importGroup.POST("/preview", h.Import.Preview)
			importGroup.POST("/commit", h.Import.Commit)
		}

		// Pedidos pendientes del storefront
		orders := v1.Group("/orders")
		{
			orders.GET("/pending", h.Order.Pending)
			orders.POST("/process", h.Order.Process)
		}

		// Administración de sucursales
		locations := v1.Group("/locations")
		{
			locations.GET("", h.Location.List)
			locations.GET("/trashed", h.Location.Trashed)
			locations.POST("", h.Location.Add)
			locations.PUT("/:id", h.Location.Rename)
			locations.DELETE("/:id", h.Location.Trash)
			locations.POST("/:id/restore", h.Location.Restore)
			locations.DELETE("/:id/permanent", h.Location.PermanentlyDelete)
		}

		// Stream de eventos para las estaciones
		v1.GET("/events/ws", h.Events.Stream)
	}

	// Health check en raíz
	router.GET("/health", healthChecker.HealthCheck)

	// API info en raíz
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Inventory Gateway",
			"version": "1.0.0",
			"status":  "running",
			"endpoints": gin.H{
				"health": "/health",
				"api":    "/api/v1",
				"inventory": gin.H{
					"list":    "GET /api/v1/inventory",
					"filters": "POST /api/v1/inventory/filters",
					"adjust":  "POST /api/v1/inventory/adjust",
				},
				"transfers": gin.H{
					"initiate": "POST /api/v1/transfers",
					"list":     "GET /api/v1/transfers",
					"review":   "POST /api/v1/transfers/:batch_id/review",
					"cancel":   "POST /api/v1/transfers/:batch_id/cancel",
				},
				"import": gin.H{
					"preview": "POST /api/v1/import/preview",
					"commit":  "POST /api/v1/import/commit",
				},
				"orders": gin.H{
					"pending": "GET /api/v1/orders/pending",
					"process": "POST /api/v1/orders/process",
				},
				"locations": "GET /api/v1/locations",
				"events":    "GET /api/v1/events/ws",
			},
		})
	})
}
