package api

import (
	"context"
	"errors"
	"fmt"
	"github.com/DenisKhanov/GeminiMenuBot/internal/tg_bot/models"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
	"strings"
)

const geminiProvider = "gemini"

// GeminiAPI представляет структуру для работы с Gemini API
type GeminiAPI struct {
	client    *genai.Client                // Клиент для взаимодействия с API
	modelName string                       // Версия генеративной модели
	config    *genai.GenerateContentConfig // Параметры генерации (опционально)
}

// NewGeminiAPI creates a Gemini client for the given model.
// Arguments:
//   - apiKey: Gemini API key.
//   - modelName: model to call, e.g. "gemini-2.5-flash".
//   - baseURL: optional API base URL override, empty for the default endpoint.
//   - maxTokens: output token limit, 0 for the model default.
//   - temperature: sampling temperature in [0, 2], negative for the model default.
func NewGeminiAPI(apiKey, modelName, baseURL string, maxTokens int, temperature float32) (*GeminiAPI, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: empty api key")
	}
	if modelName == "" {
		return nil, errors.New("gemini: empty model name")
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: baseURL,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	config := &genai.GenerateContentConfig{}
	if maxTokens > 0 {
		config.MaxOutputTokens = int32(maxTokens)
	}
	if temperature >= 0 && temperature <= 2 {
		config.Temperature = &temperature
	}

	return &GeminiAPI{
		client:    client,
		modelName: modelName,
		config:    config,
	}, nil
}

// ModelName returns the configured model.
func (g *GeminiAPI) ModelName() string {
	return g.modelName
}

// GenerateTextMsg sends text as a single prompt and returns the model reply.
// An empty string with a nil error means the model produced no usable text,
// for example because the prompt or the answer was blocked by safety filters.
func (g *GeminiAPI) GenerateTextMsg(ctx context.Context, text string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(text), g.config)
	if err != nil {
		err = classifyGeminiError(err)
		logrus.WithError(err).WithField("model", g.modelName).Error("Error creating Gemini request")
		return "", err
	}
	if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		logrus.WithField("blockReason", resp.PromptFeedback.BlockReason).Warn("Gemini blocked the prompt")
	}
	return extractGeminiText(resp), nil
}

// extractGeminiText joins the text parts of the first candidate, skipping thought parts.
func extractGeminiText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}

// classifyGeminiError wraps an SDK error into a models.GenerativeError using the API status code.
func classifyGeminiError(err error) error {
	genErr := &models.GenerativeError{Provider: geminiProvider, Kind: models.FailureUnknown, Err: err}

	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		genErr.StatusCode = apiErr.Code
	case errors.As(err, &apiErrPtr) && apiErrPtr != nil:
		genErr.StatusCode = apiErrPtr.Code
	}
	if genErr.StatusCode != 0 {
		genErr.Kind = models.FailureKindFromStatus(genErr.StatusCode)
	}
	return genErr
}
