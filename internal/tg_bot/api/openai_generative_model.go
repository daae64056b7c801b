package api

import (
	"context"
	"errors"
	"fmt"
	"github.com/DenisKhanov/GeminiMenuBot/internal/tg_bot/models"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/sirupsen/logrus"
)

// OpenRouterBaseURL is the OpenAI-compatible endpoint of OpenRouter.
const OpenRouterBaseURL = "https://openrouter.ai/api/v1/"

// OpenAIAPI talks to any OpenAI-compatible chat completions endpoint.
type OpenAIAPI struct {
	client      openai.Client // Клиент для взаимодействия с API
	provider    string        // Имя провайдера для логов и ошибок
	modelName   string        // Версия генеративной модели
	maxTokens   int           // Максимальное количество токенов (опционально)
	temperature float32       // Температура для управления креативностью (опционально)
}

// NewOpenAIAPI creates a chat completions client. An empty baseURL targets api.openai.com.
func NewOpenAIAPI(provider, apiKey, modelName, baseURL string, maxTokens int, temperature float32) (*OpenAIAPI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%s: empty api key", provider)
	}
	if modelName == "" {
		return nil, fmt.Errorf("%s: empty model name", provider)
	}
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIAPI{
		client:      openai.NewClient(opts...),
		provider:    provider,
		modelName:   modelName,
		maxTokens:   maxTokens,
		temperature: temperature,
	}, nil
}

// ModelName returns the configured model.
func (o *OpenAIAPI) ModelName() string {
	return o.modelName
}

// GenerateTextMsg генерирует текст на основе переданного запроса
func (o *OpenAIAPI) GenerateTextMsg(ctx context.Context, text string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.modelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(text),
		},
	}
	if o.maxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(o.maxTokens))
	}
	if o.temperature >= 0 && o.temperature <= 2 {
		params.Temperature = openai.Float(float64(o.temperature))
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		err = o.classifyError(err)
		logrus.WithError(err).Errorf("Error creating %s request", o.modelName)
		return "", err
	}

	// Пустой список choices считаем пустым ответом, а не ошибкой
	if resp == nil || len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAIAPI) classifyError(err error) error {
	genErr := &models.GenerativeError{Provider: o.provider, Kind: models.FailureUnknown, Err: err}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) && apiErr != nil {
		genErr.StatusCode = apiErr.StatusCode
		genErr.Kind = models.FailureKindFromStatus(apiErr.StatusCode)
	}
	return genErr
}
