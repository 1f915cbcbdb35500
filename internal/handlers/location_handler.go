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

// LocationHandler maneja las peticiones HTTP de administración de sucursales
type LocationHandler struct {
	locationService services.LocationService
	validator       *validator.Validate
	logger          *zap.Logger
}

// NewLocationHandler crea una nueva instancia del handler
func NewLocationHandler(locationService services.LocationService, logger *zap.Logger) *LocationHandler {
	return &LocationHandler{
		locationService: locationService,
		validator:       validator.New(),
		logger:          logger,
	}
}

// List retorna las sucursales activas
func (h *LocationHandler) List(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "list_locations"))

	locations, err := h.locationService.List(c.Request.Context())
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Sucursales obtenidas correctamente",
		"data":    locations,
	})
}

// Trashed retorna las sucursales en papelera
func (h *LocationHandler) Trashed(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "trashed_locations"))

	locations, err := h.locationService.Trashed(c.Request.Context())
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Sucursales en papelera obtenidas",
		"data":    locations,
	})
}

// Add crea una sucursal nueva
func (h *LocationHandler) Add(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "add_location"))

	var req models.LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondBindError(c, err)
		return
	}

	location, err := h.locationService.Add(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Sucursal creada correctamente",
		"data":    location,
	})
}

// Rename cambia el nombre de una sucursal
func (h *LocationHandler) Rename(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "rename_location"))

	id, ok := h.locationID(c)
	if !ok {
		return
	}

	var req models.LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.locationService.Rename(c.Request.Context(), id, req.Name); err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Sucursal renombrada correctamente",
	})
}

// Trash manda una sucursal a la papelera
func (h *LocationHandler) Trash(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "trash_location"))

	id, ok := h.locationID(c)
	if !ok {
		return
	}

	if err := h.locationService.Trash(c.Request.Context(), id); err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Sucursal enviada a la papelera",
	})
}

// Restore recupera una sucursal desde la papelera
func (h *LocationHandler) Restore(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "restore_location"))

	id, ok := h.locationID(c)
	if !ok {
		return
	}

	if err := h.locationService.Restore(c.Request.Context(), id); err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Sucursal restaurada correctamente",
	})
}

// PermanentlyDelete elimina definitivamente una sucursal en papelera
func (h *LocationHandler) PermanentlyDelete(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "permanently_delete_location"))

	id, ok := h.locationID(c)
	if !ok {
		return
	}

	if err := h.locationService.PermanentlyDelete(c.Request.Context(), id); err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Sucursal eliminada definitivamente",
	})
}

// locationID parsea el id de sucursal de la URL; responde 400 si no es numérico
func (h *LocationHandler) locationID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "ID de sucursal inválido",
			"error":   "El ID debe ser un número válido",
		})
		return 0, false
	}
	return id, true
}
