package service

import (
	"context"
	"errors"
	"github.com/DenisKhanov/GeminiMenuBot/internal/tg_bot/constant"
	"github.com/DenisKhanov/GeminiMenuBot/internal/tg_bot/metrics"
	"github.com/DenisKhanov/GeminiMenuBot/internal/tg_bot/models"
	"github.com/sirupsen/logrus"
	"strings"
	"time"
)

// GenerativeModel is a generative-language provider answering a single prompt.
type GenerativeModel interface {
	GenerateTextMsg(ctx context.Context, text string) (string, error)
	ModelName() string
}

// Relay forwards one prompt to the generative model and turns the outcome into a RelayResult.
// Each call is independent: no history, no retries, no caching.
type Relay struct {
	model   GenerativeModel
	timeout time.Duration // 0 disables the per-call timeout
}

// NewRelay creates a Relay bound to the model with the given per-call timeout.
func NewRelay(model GenerativeModel, timeout time.Duration) *Relay {
	return &Relay{model: model, timeout: timeout}
}

// Relay sends text as the sole prompt and classifies the answer.
func (r *Relay) Relay(ctx context.Context, text string) models.RelayResult {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	done := metrics.RelayStarted()
	start := time.Now()
	reply, err := r.model.GenerateTextMsg(ctx, text)
	elapsed := time.Since(start)
	done()

	var result models.RelayResult
	switch {
	case err != nil:
		result = models.RelayResult{Status: models.RelayFailure, Kind: failureKind(ctx, err), Err: err}
	case strings.TrimSpace(reply) == "":
		result = models.RelayResult{Status: models.RelayEmpty}
	default:
		result = models.RelayResult{Status: models.RelaySuccess, Text: reply}
	}

	kind := ""
	if result.Status == models.RelayFailure {
		kind = result.Kind.String()
	}
	metrics.ObserveRelay(r.model.ModelName(), result.Status.String(), kind, elapsed)
	logrus.WithFields(logrus.Fields{
		"model":   r.model.ModelName(),
		"status":  result.Status.String(),
		"kind":    kind,
		"elapsed": elapsed,
	}).Info("Generative relay finished")
	return result
}

// failureKind prefers the provider's structured classification and falls back to the context state.
func failureKind(ctx context.Context, err error) models.FailureKind {
	var genErr *models.GenerativeError
	if errors.As(err, &genErr) && genErr.Kind != models.FailureUnknown {
		return genErr.Kind
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
		return models.FailureTimeout
	case errors.Is(err, context.Canceled), errors.Is(ctx.Err(), context.Canceled):
		return models.FailureCanceled
	}
	return models.FailureUnknown
}

// RelayMessage renders a RelayResult as the text sent back to the user.
// Failure messages always carry the error description.
func RelayMessage(result models.RelayResult) string {
	switch result.Status {
	case models.RelaySuccess:
		return result.Text
	case models.RelayEmpty:
		return constant.MSG_AI_EMPTY
	}

	var prefix string
	switch result.Kind {
	case models.FailureTimeout, models.FailureCanceled:
		prefix = constant.MSG_AI_TIMEOUT
	case models.FailureNotFound:
		prefix = constant.MSG_AI_NOT_FOUND
	case models.FailureAuth:
		prefix = constant.MSG_AI_AUTH
	case models.FailureQuota:
		prefix = constant.MSG_AI_QUOTA
	case models.FailureUnavailable:
		prefix = constant.MSG_AI_UNAVAILABLE
	case models.FailureConfig:
		prefix = constant.MSG_AI_CONFIG
	default:
		prefix = constant.MSG_AI_ERROR
	}
	if result.Err == nil {
		return prefix + "невідома помилка"
	}
	return prefix + result.Err.Error()
}
