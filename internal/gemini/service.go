package gemini

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

// MethodName identifies this provider in generation results.
const MethodName = "gemini-api"

var ErrEmptyResponse = errors.New("gemini returned no text")

type Service struct {
	client *Client
	logger *logrus.Logger
}

func NewService(client *Client, logger *logrus.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

func (s *Service) Name() string {
	return MethodName
}

// Generate sends prompt as a single user turn and returns the first candidate's text.
func (s *Service) Generate(ctx context.Context, prompt string) (string, error) {
	req := GenerateContentRequest{
		Contents:         []Content{{Parts: []Part{{Text: prompt}}}},
		GenerationConfig: DefaultGenerationConfig(),
	}

	response, err := s.client.GenerateContentWithRetry(ctx, req)
	if err != nil {
		return "", err
	}

	text := response.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}

	if response.UsageMetadata != nil {
		s.logger.WithFields(logrus.Fields{
			"model":         s.client.Model(),
			"prompt_tokens": response.UsageMetadata.PromptTokenCount,
			"total_tokens":  response.UsageMetadata.TotalTokenCount,
		}).Debug("Gemini usage")
	}

	return text, nil
}
