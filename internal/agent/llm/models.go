package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"google.golang.org/genai"

	"github.com/smart-support-core/server/internal/agent/model"
	logx "github.com/smart-support-core/server/pkg/logger"
)

// ChatModelConfig holds the configuration for chat model creation.
type ChatModelConfig struct {
	APIKey           string
	BaseURL          string
	ClassifierConfig *model.ClassifierModelConfig
	GeneratorConfig  *model.GeneratorModelConfig
}

// ChatModels holds the classifier and generator chat models. Both share one
// Gemini client; the classifier runs cold (temperature 0) so label scores stay
// reproducible across identical inputs.
type ChatModels struct {
	Classifier          *gemini.ChatModel
	Generator           *gemini.ChatModel
	ClassifierModelName string
	GeneratorModelName  string
}

// NewChatModels creates both chat models with the given configuration.
func NewChatModels(ctx context.Context, config ChatModelConfig) (*ChatModels, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	classifierModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.ClassifierConfig.Model,
		Temperature: &config.ClassifierConfig.Temperature,
		MaxTokens:   &config.ClassifierConfig.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating classifier model")
		return nil, fmt.Errorf("error creating classifier model: %w", err)
	}

	generatorModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.GeneratorConfig.Model,
		Temperature: &config.GeneratorConfig.Temperature,
		MaxTokens:   &config.GeneratorConfig.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating generator model")
		return nil, fmt.Errorf("error creating generator model: %w", err)
	}

	return &ChatModels{
		Classifier:          classifierModel,
		Generator:           generatorModel,
		ClassifierModelName: config.ClassifierConfig.Model,
		GeneratorModelName:  config.GeneratorConfig.Model,
	}, nil
}
