package rag

import (
	"context"

	"github.com/sanggwon-lab/market-rag/appconfig"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Model is the narrow surface the resolution engine needs from a hosted
// language model. Errors from it propagate to the caller.
type Model interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// OpenAIModel adapts a langchaingo chat model to the Model interface.
type OpenAIModel struct {
	model       llms.Model
	temperature float64
}

func NewOpenAIModel(cfg *appconfig.AppConfig) (*OpenAIModel, error) {
	opts := []openai.Option{
		openai.WithModel(cfg.ChatModel),
	}
	if cfg.OpenAIAPIKey != "" {
		opts = append(opts, openai.WithToken(cfg.OpenAIAPIKey))
	}

	model, err := openai.New(opts...)
	if err != nil {
		return nil, err
	}
	return &OpenAIModel{model: model, temperature: cfg.ChatTemperature}, nil
}

func (m *OpenAIModel) Generate(ctx context.Context, prompt string) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m.model, prompt,
		llms.WithTemperature(m.temperature))
}
