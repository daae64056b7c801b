package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DenisKhanov/GeminiMenuBot/internal/tg_bot/constant"
	"github.com/DenisKhanov/GeminiMenuBot/internal/tg_bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubModel is a GenerativeModel returning canned answers.
type stubModel struct {
	reply   string
	err     error
	block   bool // wait for ctx cancellation instead of answering
	prompts chan string
}

func (s *stubModel) ModelName() string { return "stub-model" }

func (s *stubModel) GenerateTextMsg(ctx context.Context, text string) (string, error) {
	if s.prompts != nil {
		s.prompts <- text
	}
	if s.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return s.reply, s.err
}

func TestRelay_Success(t *testing.T) {
	relay := NewRelay(&stubModel{reply: "T"}, time.Second)
	result := relay.Relay(context.Background(), "Hello")

	assert.Equal(t, models.RelayResult{Status: models.RelaySuccess, Text: "T"}, result)
	assert.Equal(t, "T", RelayMessage(result))
}

func TestRelay_PromptIsForwardedVerbatim(t *testing.T) {
	model := &stubModel{reply: "ok", prompts: make(chan string, 1)}
	NewRelay(model, 0).Relay(context.Background(), "  Як справи?\n")
	assert.Equal(t, "  Як справи?\n", <-model.prompts)
}

func TestRelay_Empty(t *testing.T) {
	for _, reply := range []string{"", "  \n"} {
		result := NewRelay(&stubModel{reply: reply}, time.Second).Relay(context.Background(), "Hello")
		assert.Equal(t, models.RelayEmpty, result.Status)
		assert.Empty(t, result.Text)
		assert.Equal(t, constant.MSG_AI_EMPTY, RelayMessage(result))
	}
}

func TestRelay_Failure(t *testing.T) {
	result := NewRelay(&stubModel{err: errors.New("X")}, time.Second).Relay(context.Background(), "Hello")

	require.Equal(t, models.RelayFailure, result.Status)
	assert.Equal(t, models.FailureUnknown, result.Kind)
	msg := RelayMessage(result)
	assert.Contains(t, msg, "X")
	assert.NotEqual(t, constant.MSG_AI_EMPTY, msg)
}

func TestRelay_StructuredFailureKind(t *testing.T) {
	err := &models.GenerativeError{Provider: "gemini", Kind: models.FailureNotFound, StatusCode: 404, Err: errors.New("models/gemini-0 is not found")}
	result := NewRelay(&stubModel{err: err}, time.Second).Relay(context.Background(), "Hello")

	assert.Equal(t, models.FailureNotFound, result.Kind)
	msg := RelayMessage(result)
	assert.Contains(t, msg, constant.MSG_AI_NOT_FOUND)
	assert.Contains(t, msg, "is not found")
}

func TestRelay_Timeout(t *testing.T) {
	relay := NewRelay(&stubModel{block: true}, 20*time.Millisecond)

	start := time.Now()
	result := relay.Relay(context.Background(), "Hello")

	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, models.RelayFailure, result.Status)
	assert.Equal(t, models.FailureTimeout, result.Kind)
	assert.Contains(t, RelayMessage(result), constant.MSG_AI_TIMEOUT)
}

func TestRelay_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result := NewRelay(&stubModel{block: true}, time.Second).Relay(ctx, "Hello")
	assert.Equal(t, models.FailureCanceled, result.Kind)
}

func TestRelayMessage_FailureKinds(t *testing.T) {
	cause := errors.New("boom")
	prefixes := map[models.FailureKind]string{
		models.FailureUnknown:     constant.MSG_AI_ERROR,
		models.FailureTimeout:     constant.MSG_AI_TIMEOUT,
		models.FailureNotFound:    constant.MSG_AI_NOT_FOUND,
		models.FailureAuth:        constant.MSG_AI_AUTH,
		models.FailureQuota:       constant.MSG_AI_QUOTA,
		models.FailureUnavailable: constant.MSG_AI_UNAVAILABLE,
		models.FailureConfig:      constant.MSG_AI_CONFIG,
	}
	for kind, prefix := range prefixes {
		msg := RelayMessage(models.RelayResult{Status: models.RelayFailure, Kind: kind, Err: cause})
		assert.Equal(t, prefix+"boom", msg, kind.String())
	}
}
