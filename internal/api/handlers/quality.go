package handlers

import (
	"net/http"

	"github.com/Ayash-Bera/goai/backend/internal/metrics"
	"github.com/Ayash-Bera/goai/backend/internal/models"
	"github.com/Ayash-Bera/goai/backend/internal/quality"
	"github.com/Ayash-Bera/goai/backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type QualityHandler struct {
	metrics *metrics.Metrics
	logger  *logrus.Logger
}

func NewQualityHandler(m *metrics.Metrics, logger *logrus.Logger) *QualityHandler {
	return &QualityHandler{
		metrics: m,
		logger:  logger,
	}
}

func (h *QualityHandler) HandleAudit(c *gin.Context) {
	var req models.AuditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid audit request", err)
		return
	}

	result := quality.Audit(req.Files)
	h.metrics.AuditOverallScore.Observe(float64(result.Overall))

	h.logger.WithFields(logrus.Fields{
		"files":   len(req.Files),
		"overall": result.Overall,
	}).Info("Quality audit completed")

	utils.SuccessResponse(c, http.StatusOK, "Audit completed", models.AuditResponse{
		Metrics: result,
		Report:  quality.GenerateReport(result),
	})
}
