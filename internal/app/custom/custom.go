// Package custom contains a context-aware long-polling update source for the Telegram bot.
package custom

import (
	"context"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"time"
)

// UpdatesGetter fetches one batch of updates. *tgbotapi.BotAPI satisfies it.
type UpdatesGetter interface {
	GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error)
}

// BotAPICustom polls Telegram until its context is cancelled.
type BotAPICustom struct {
	UpdatesGetter               // Встраивание оригинального API бота
	Buffer        int           // Size of the updates channel
	RetryDelay    time.Duration // Pause after a failed poll
}

// NewBotAPICustom wraps getter with the default buffer and retry delay.
func NewBotAPICustom(getter UpdatesGetter) *BotAPICustom {
	return &BotAPICustom{UpdatesGetter: getter, Buffer: 100, RetryDelay: 3 * time.Second}
}

// GetUpdatesChan starts polling and returns the channel of updates.
// The channel is closed once ctx is cancelled.
func (cb *BotAPICustom) GetUpdatesChan(ctx context.Context, config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	ch := make(chan tgbotapi.Update, cb.Buffer)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			updates, err := cb.GetUpdates(config)
			if err != nil {
				logrus.WithError(err).Warnf("Failed to get updates, retrying in %v...", cb.RetryDelay)
				select {
				case <-ctx.Done():
					return
				case <-time.After(cb.RetryDelay):
				}
				continue
			}

			for _, update := range updates {
				if update.UpdateID >= config.Offset {
					config.Offset = update.UpdateID + 1
					select {
					case ch <- update:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	return ch
}
