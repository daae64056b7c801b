package api

import (
	"context"
	"fmt"
	"github.com/DenisKhanov/GeminiMenuBot/internal/tg_bot/models"
)

// UnavailableModel stands in for a provider that failed to initialise at startup.
// Every call reports the startup configuration error, so the bot keeps serving
// the menu and AI requests fail with a readable message.
type UnavailableModel struct {
	provider  string
	modelName string
	cause     error
}

// NewUnavailableModel wraps the startup error of the named provider.
func NewUnavailableModel(provider, modelName string, cause error) *UnavailableModel {
	return &UnavailableModel{provider: provider, modelName: modelName, cause: cause}
}

// ModelName returns the model the provider was configured with.
func (u *UnavailableModel) ModelName() string {
	return u.modelName
}

// GenerateTextMsg always fails with models.FailureConfig.
func (u *UnavailableModel) GenerateTextMsg(_ context.Context, _ string) (string, error) {
	return "", &models.GenerativeError{
		Provider: u.provider,
		Kind:     models.FailureConfig,
		Err:      fmt.Errorf("%w: %v", models.ErrProviderNotConfigured, u.cause),
	}
}
