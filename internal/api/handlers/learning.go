package handlers

import (
	"errors"
	"net/http"

	"github.com/Ayash-Bera/goai/backend/internal/learning"
	"github.com/Ayash-Bera/goai/backend/internal/metrics"
	"github.com/Ayash-Bera/goai/backend/internal/models"
	"github.com/Ayash-Bera/goai/backend/internal/prompt"
	"github.com/Ayash-Bera/goai/backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type LearningHandler struct {
	system  *learning.System
	metrics *metrics.Metrics
	logger  *logrus.Logger
}

func NewLearningHandler(system *learning.System, m *metrics.Metrics, logger *logrus.Logger) *LearningHandler {
	return &LearningHandler{
		system:  system,
		metrics: m,
		logger:  logger,
	}
}

// HandleRecordExample stores a rated example. A persistence failure is
// logged but the example stays recorded in memory.
func (h *LearningHandler) HandleRecordExample(c *gin.Context) {
	var req learning.NewExample
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid example format", err)
		return
	}

	id, err := h.system.RecordExample(c.Request.Context(), req)
	if errors.Is(err, learning.ErrInvalidQuality) {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid example quality", err)
		return
	}
	if err != nil {
		h.logger.WithError(err).WithField("example_id", id).Warn("Example recorded but not persisted")
	}

	h.metrics.ExamplesRecorded.WithLabelValues(string(req.Language)).Inc()
	h.metrics.PatternsTotal.Set(float64(len(h.system.Patterns())))

	utils.SuccessResponse(c, http.StatusCreated, "Example recorded", models.RecordResponse{ID: id})
}

// HandleListExamples lists recorded examples, optionally filtered by ?language=.
func (h *LearningHandler) HandleListExamples(c *gin.Context) {
	examples := h.system.Examples()

	if lang := c.Query("language"); lang != "" {
		filtered := make([]learning.CodeExample, 0, len(examples))
		for _, ex := range examples {
			if string(ex.Language) == lang {
				filtered = append(filtered, ex)
			}
		}
		examples = filtered
	}

	utils.SuccessResponse(c, http.StatusOK, "Examples retrieved", examples)
}

func (h *LearningHandler) HandlePatterns(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Patterns retrieved", h.system.Patterns())
}

func (h *LearningHandler) HandleSimilar(c *gin.Context) {
	var req models.SimilarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid similarity request", err)
		return
	}

	limit := req.Limit
	if limit == 0 {
		limit = learning.DefaultSimilarLimit
	}

	examples := h.system.FindSimilarExamples(req.Prompt, req.Language, limit)

	utils.SuccessResponse(c, http.StatusOK, "Similar examples retrieved", models.SimilarResponse{
		Examples: examples,
		Total:    len(examples),
	})
}

// HandleImprove rewrites a prompt with learned guidance. The language is
// classified from the prompt when omitted.
func (h *LearningHandler) HandleImprove(c *gin.Context) {
	var req models.ImproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid improve request", err)
		return
	}

	lang := req.Language
	if lang == "" {
		lang = prompt.Classify(req.Prompt).Language
	}

	improved := h.system.GenerateImprovedPrompt(req.Prompt, lang)
	if req.Intelligent {
		improved = h.system.GenerateIntelligentPrompt(req.Prompt, lang)
	}

	utils.SuccessResponse(c, http.StatusOK, "Prompt improved", models.ImproveResponse{
		Language: lang,
		Prompt:   improved,
		Patterns: h.system.RelevantPatterns(req.Prompt, lang),
	})
}
