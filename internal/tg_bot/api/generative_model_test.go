package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DenisKhanov/GeminiMenuBot/internal/tg_bot/models"
	"github.com/openai/openai-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestExtractGeminiText(t *testing.T) {
	assert.Equal(t, "", extractGeminiText(nil))
	assert.Equal(t, "", extractGeminiText(&genai.GenerateContentResponse{}))

	blocked := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: nil}},
	}
	assert.Equal(t, "", extractGeminiText(blocked))

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Role: genai.RoleModel,
				Parts: []*genai.Part{
					{Text: "thinking out loud", Thought: true},
					{Text: "Привіт, "},
					nil,
					{Text: "світ"},
				},
			},
		}},
	}
	assert.Equal(t, "Привіт, світ", extractGeminiText(resp))
}

func TestClassifyGeminiError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind models.FailureKind
		wantCode int
	}{
		{"model not found", genai.APIError{Code: 404, Message: "models/x is not found", Status: "NOT_FOUND"}, models.FailureNotFound, 404},
		{"bad key", fmt.Errorf("call: %w", genai.APIError{Code: 403, Status: "PERMISSION_DENIED"}), models.FailureAuth, 403},
		{"quota", genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED"}, models.FailureQuota, 429},
		{"overloaded", genai.APIError{Code: 503, Status: "UNAVAILABLE"}, models.FailureUnavailable, 503},
		{"transport", errors.New("dial tcp: connection refused"), models.FailureUnknown, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyGeminiError(tt.err)
			var genErr *models.GenerativeError
			require.True(t, errors.As(err, &genErr))
			assert.Equal(t, tt.wantKind, genErr.Kind)
			assert.Equal(t, tt.wantCode, genErr.StatusCode)
			assert.Equal(t, "gemini", genErr.Provider)
			assert.Equal(t, tt.err, errors.Unwrap(err))
		})
	}
}

func TestOpenAIClassifyError(t *testing.T) {
	model, err := NewOpenAIAPI("openrouter", "key", "some/model", OpenRouterBaseURL, 0, 1)
	require.NoError(t, err)

	apiErr := &openai.Error{
		StatusCode: http.StatusTooManyRequests,
		Request:    httptest.NewRequest(http.MethodPost, OpenRouterBaseURL+"chat/completions", nil),
		Response:   &http.Response{StatusCode: http.StatusTooManyRequests},
	}
	var genErr *models.GenerativeError
	require.True(t, errors.As(model.classifyError(apiErr), &genErr))
	assert.Equal(t, models.FailureQuota, genErr.Kind)
	assert.Equal(t, http.StatusTooManyRequests, genErr.StatusCode)
	assert.Equal(t, "openrouter", genErr.Provider)

	require.True(t, errors.As(model.classifyError(context.Canceled), &genErr))
	assert.Equal(t, models.FailureUnknown, genErr.Kind)
}

func TestUnavailableModel(t *testing.T) {
	cause := errors.New("gemini: empty api key")
	model := NewUnavailableModel("gemini", "gemini-2.5-flash", cause)

	assert.Equal(t, "gemini-2.5-flash", model.ModelName())
	text, err := model.GenerateTextMsg(context.Background(), "Hello")
	assert.Empty(t, text)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrProviderNotConfigured)
	assert.Contains(t, err.Error(), "empty api key")

	var genErr *models.GenerativeError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, models.FailureConfig, genErr.Kind)
}
