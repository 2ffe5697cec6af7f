package models

import (
	"github.com/Ayash-Bera/goai/backend/internal/generator"
	"github.com/Ayash-Bera/goai/backend/internal/learning"
	"github.com/Ayash-Bera/goai/backend/internal/prompt"
	"github.com/Ayash-Bera/goai/backend/internal/quality"
)

type GenerateRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// GenerateResponse keeps the flat body the frontend expects from /api/generate.
type GenerateResponse struct {
	Files            []generator.File `json:"files"`
	Success          bool             `json:"success"`
	DetectedLanguage prompt.Language  `json:"detectedLanguage"`
	Analysis         string           `json:"analysis"`
	Method           string           `json:"method"`
}

type CLIStatusResponse struct {
	IsAvailable bool     `json:"isAvailable"`
	Message     string   `json:"message"`
	Features    []string `json:"features"`
}

type ClassifyRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

type ClassifyResponse struct {
	prompt.Classification
	EnhancedPrompt string `json:"enhancedPrompt"`
}

type AuditRequest struct {
	Files []quality.File `json:"files" binding:"required,dive"`
}

type AuditResponse struct {
	Metrics quality.Metrics `json:"metrics"`
	Report  string          `json:"report"`
}

type SimilarRequest struct {
	Prompt   string          `json:"prompt" binding:"required"`
	Language prompt.Language `json:"language" binding:"required"`
	Limit    int             `json:"limit" binding:"omitempty,min=1,max=50"`
}

type SimilarResponse struct {
	Examples []learning.CodeExample `json:"examples"`
	Total    int                    `json:"total"`
}

type ImproveRequest struct {
	Prompt      string          `json:"prompt" binding:"required"`
	Language    prompt.Language `json:"language"`
	Intelligent bool            `json:"intelligent"`
}

type ImproveResponse struct {
	Language prompt.Language        `json:"language"`
	Prompt   string                 `json:"prompt"`
	Patterns []learning.PatternData `json:"patterns"`
}

type RecordResponse struct {
	ID string `json:"id"`
}

type DeployConfigResponse struct {
	Platform string `json:"platform"`
	File     string `json:"file"`
	Config   string `json:"config"`
}
