package handlers

import (
	"errors"
	"net/http"

	"inventory-gateway/internal/csvimport"
	"inventory-gateway/internal/services"
	"inventory-gateway/internal/upstream"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError traduce la taxonomía de errores a códigos HTTP:
// validación local 400, rechazo del servidor remoto 422 con su mensaje
// textual, fallo de red o respuesta malformada 502, resto 500.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	if services.IsValidation(err) || isParseError(err) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Datos de entrada inválidos",
			"error":   err.Error(),
		})
		return
	}

	if upstream.IsApplication(err) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "El servidor de inventario rechazó la operación",
			"error":   err.Error(),
		})
		return
	}

	if upstream.IsNetwork(err) {
		logger.Error("Fallo de red contra el servidor de inventario", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"message": "No se pudo contactar al servidor de inventario",
			"error":   err.Error(),
		})
		return
	}

	logger.Error("Error inesperado", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": "Error interno",
		"error":   err.Error(),
	})
}

// isParseError reconoce los fallos del parser de import, que son errores
// del archivo del usuario y no del sistema
func isParseError(err error) bool {
	if errors.Is(err, csvimport.ErrEmptyInput) {
		return true
	}
	var mc *csvimport.MissingColumnsError
	return errors.As(err, &mc)
}

// respondBindError responde un 400 por JSON malformado o binding fallido
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "Error en el formato de datos",
		"error":   err.Error(),
	})
}
