package generator

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// Provider turns an instruction prompt into raw model text.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

const MethodOpenAI = "openai-api"

var ErrEmptyCompletion = errors.New("openai returned no choices")

// OpenAIProvider sends the prompt as a single chat completion turn.
type OpenAIProvider struct {
	client *openai.Client
	model  string
	logger *logrus.Logger
}

func NewOpenAIProvider(apiKey, baseURL, model string, logger *logrus.Logger) *OpenAIProvider {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  model,
		logger: logger,
	}
}

func (p *OpenAIProvider) Name() string {
	return MethodOpenAI
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
		TopP:        0.95,
		MaxTokens:   8192,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	p.logger.WithFields(logrus.Fields{
		"model":         p.model,
		"prompt_tokens": resp.Usage.PromptTokens,
		"total_tokens":  resp.Usage.TotalTokens,
	}).Debug("OpenAI usage")

	return resp.Choices[0].Message.Content, nil
}
