package middleware

import (
	"context"
	"net/http"
	"time"

	"inventory-gateway/internal/database"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UpstreamPinger verifica que el servidor central de inventario responda
type UpstreamPinger interface {
	Ping(ctx context.Context) error
}

type HealthChecker struct {
	upstream UpstreamPinger
	redisDB  *database.RedisDB
	logger   *zap.Logger
}

// NewHealthChecker crea el checker. redisDB puede ser nil cuando la
// estación corre sin L2.
func NewHealthChecker(upstream UpstreamPinger, redisDB *database.RedisDB, logger *zap.Logger) *HealthChecker {
	return &HealthChecker{
		upstream: upstream,
		redisDB:  redisDB,
		logger:   logger,
	}
}

func (h *HealthChecker) HealthCheck(c *gin.Context) {
	status := gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"services":  make(map[string]interface{}),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	// Verificar el servidor central
	upstreamStatus := "healthy"
	if err := h.upstream.Ping(ctx); err != nil {
		upstreamStatus = "unhealthy"
		status["status"] = "unhealthy"
		h.logger.Error("Upstream health check failed", zap.Error(err))
	}
	status["services"].(map[string]interface{})["upstream"] = gin.H{
		"status": upstreamStatus,
	}

	// Verificar Redis si está configurado
	if h.redisDB != nil {
		redisStatus := "healthy"
		if err := h.redisDB.Ping(ctx); err != nil {
			redisStatus = "unhealthy"
			// Sin Redis la estación sigue operando con caché local;
			// se degrada, no se cae
			if status["status"] == "healthy" {
				status["status"] = "degraded"
			}
			h.logger.Error("Redis health check failed", zap.Error(err))
		}
		status["services"].(map[string]interface{})["redis"] = gin.H{
			"status": redisStatus,
		}
	}

	httpStatus := http.StatusOK
	if status["status"] == "unhealthy" {
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, status)
}
