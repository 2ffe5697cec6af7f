package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Ayash-Bera/goai/backend/internal/generator"
	"github.com/Ayash-Bera/goai/backend/internal/models"
	"github.com/Ayash-Bera/goai/backend/internal/prompt"
	"github.com/Ayash-Bera/goai/backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const cliUnavailableMessage = "Go CLI not found. Using the configured generation API as fallback."

type GenerateHandler struct {
	generator *generator.Service
	logger    *logrus.Logger
}

func NewGenerateHandler(gen *generator.Service, logger *logrus.Logger) *GenerateHandler {
	return &GenerateHandler{
		generator: gen,
		logger:    logger,
	}
}

// HandleGenerate turns a prompt into project files. Provider failures are
// absorbed by the fallback project, so only unexpected errors reach the client.
func (h *GenerateHandler) HandleGenerate(c *gin.Context) {
	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		utils.BareError(c, http.StatusBadRequest, generator.ErrEmptyPrompt.Error())
		return
	}

	h.logger.WithField("prompt_length", len(req.Prompt)).Info("Generating project")

	result, err := h.generator.Generate(c.Request.Context(), req.Prompt)
	if err != nil {
		if errors.Is(err, generator.ErrEmptyPrompt) {
			utils.BareError(c, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.WithError(err).Error("Failed to generate project")
		utils.BareError(c, http.StatusInternalServerError, "Failed to generate project")
		return
	}

	h.logger.WithFields(logrus.Fields{
		"method":   result.Method,
		"language": result.Classification.Language,
		"files":    len(result.Files),
		"cached":   result.Cached,
	}).Info("Project generated successfully")

	c.JSON(http.StatusOK, models.GenerateResponse{
		Files:            result.Files,
		Success:          true,
		DetectedLanguage: result.Classification.Language,
		Analysis:         result.Classification.Description,
		Method:           result.Method,
	})
}

// HandleCLIStatus reports the local CLI as unavailable. No external process
// is probed.
func (h *GenerateHandler) HandleCLIStatus(c *gin.Context) {
	c.JSON(http.StatusOK, models.CLIStatusResponse{
		IsAvailable: false,
		Message:     cliUnavailableMessage,
		Features:    []string{},
	})
}

// HandleClassify returns the classification and the prompt that would be
// sent to the provider.
func (h *GenerateHandler) HandleClassify(c *gin.Context) {
	var req models.ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	classification := prompt.Classify(req.Prompt)

	utils.SuccessResponse(c, http.StatusOK, "Prompt classified", models.ClassifyResponse{
		Classification: classification,
		EnhancedPrompt: h.generator.BuildPrompt(req.Prompt, classification),
	})
}
