package handlers

import (
	"context"
	"net/http"

	"github.com/Ayash-Bera/goai/backend/internal/deploy"
	"github.com/Ayash-Bera/goai/backend/internal/health"
	"github.com/Ayash-Bera/goai/backend/internal/models"
	"github.com/Ayash-Bera/goai/backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CacheStats is satisfied by database.Cache.
type CacheStats interface {
	GetCacheStats(ctx context.Context) (map[string]interface{}, error)
}

type SystemHandler struct {
	checker *health.HealthChecker
	cache   CacheStats
	logger  *logrus.Logger
}

// NewSystemHandler wires health, deploy and cache routes. cache may be nil.
func NewSystemHandler(checker *health.HealthChecker, cache CacheStats, logger *logrus.Logger) *SystemHandler {
	return &SystemHandler{
		checker: checker,
		cache:   cache,
		logger:  logger,
	}
}

// HandleHealth answers 503 only when a required dependency is down.
func (h *SystemHandler) HandleHealth(c *gin.Context) {
	report := h.checker.CheckAll(c.Request.Context())

	code := http.StatusOK
	if report.Status == health.StatusUnhealthy {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, report)
}

func (h *SystemHandler) HandleDeployConfig(c *gin.Context) {
	platform := c.Query("platform")
	config := deploy.Config(platform)
	if config == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Unsupported platform", nil)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Deploy configuration generated", models.DeployConfigResponse{
		Platform: platform,
		File:     deploy.ConfigFile(platform),
		Config:   config,
	})
}

func (h *SystemHandler) HandleCacheStats(c *gin.Context) {
	if h.cache == nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Generation cache is not configured", nil)
		return
	}

	stats, err := h.cache.GetCacheStats(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to read cache stats")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to read cache stats", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Cache stats retrieved", stats)
}
