// Package service provides the core logic for a Telegram bot, integrating various services.
// It dispatches menu buttons to fixed replies and relays free text to a generative model.
package service

import (
	"context"
	"github.com/DenisKhanov/GeminiMenuBot/internal/tg_bot/constant"
	"github.com/DenisKhanov/GeminiMenuBot/internal/tg_bot/metrics"
	"github.com/DenisKhanov/GeminiMenuBot/internal/tg_bot/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
	"sync"
	"unicode/utf8"
)

// maxMessageLength is the Telegram limit for one text message, in characters.
const maxMessageLength = 4096

// Sender delivers messages to Telegram. *tgbotapi.BotAPI satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// AIRelay answers a single prompt with the generative model.
type AIRelay interface {
	Relay(ctx context.Context, text string) models.RelayResult
}

// The UsersChatStateRepository defines the interface for user session state.
type UsersChatStateRepository interface {
	GetChatMode(userID int64) bool
	SetChatMode(userID, chatID int64, chatMode bool)
}

// TgBotServices is the main service struct for the Telegram bot, integrating all dependencies.
type TgBotServices struct {
	Relay     AIRelay                  // Generative model relay.
	StateRepo UsersChatStateRepository // User session repository.
	Bot       Sender                   // Telegram Bot API instance.
	slots     *semaphore.Weighted      // Limits concurrent generative calls
	wg        sync.WaitGroup           // Tracks running relays
}

// NewTgBot creates a new TgBotServices instance with the specified dependencies.
// Arguments:
//   - relay: generative model relay.
//   - stateRepository: user session repository.
//   - bot: Telegram sender.
//   - maxConcurrent: how many generative calls may run at once, values below 1 mean 1.
//
// Returns a pointer to a TgBotServices.
func NewTgBot(relay AIRelay, stateRepository UsersChatStateRepository, bot Sender, maxConcurrent int64) *TgBotServices {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &TgBotServices{
		Relay:     relay,
		StateRepo: stateRepository,
		Bot:       bot,
		slots:     semaphore.NewWeighted(maxConcurrent),
	}
}

// sendMessage sends a message to the specified chat with optional reply and markup.
// Arguments:
//   - chatID: the ID of the chat to send the message to.
//   - text: the text content of the message.
//   - replyToID: the ID of the message to reply to (0 if no reply).
//   - markup: an optional keyboard or inline markup (nil if none).
//
// Returns an error if the message fails to send.
func (b *TgBotServices) sendMessage(chatID int64, text string, replyToID int, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if replyToID != 0 {
		msg.ReplyToMessageID = replyToID
	}
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	_, err := b.Bot.Send(msg)
	if err != nil {
		metrics.SendFailed()
		logrus.WithError(err).Errorf("Failed to send message to chat %d: %s", chatID, text)
	}
	return err
}

// sendLongMessage sends text split into Telegram-sized chunks.
func (b *TgBotServices) sendLongMessage(chatID int64, text string) error {
	for _, chunk := range splitMessage(text, maxMessageLength) {
		if err := b.sendMessage(chatID, chunk, 0, nil); err != nil {
			return err
		}
	}
	return nil
}

// splitMessage cuts text into pieces of at most limit characters, preferring line breaks.
func splitMessage(text string, limit int) []string {
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}
	var chunks []string
	runes := []rune(text)
	for len(runes) > limit {
		cut := limit
		for i := limit; i > limit/2; i-- {
			if runes[i-1] == '\n' {
				cut = i
				break
			}
		}
		chunks = append(chunks, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}
	return chunks
}

// mainMenu returns the keyboard with the four menu buttons in two rows.
func mainMenu() tgbotapi.ReplyKeyboardMarkup {
	markup := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(constant.BUTTON_TEXT_STUDENT),
			tgbotapi.NewKeyboardButton(constant.BUTTON_TEXT_IT_TECH),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(constant.BUTTON_TEXT_CONTACTS),
			tgbotapi.NewKeyboardButton(constant.BUTTON_TEXT_AI_CHAT),
		),
	)
	markup.ResizeKeyboard = true // Подгоняет размер клавиатуры под экран
	return markup
}

// backMenu returns the keyboard with the single "Назад" button.
func backMenu() tgbotapi.ReplyKeyboardMarkup {
	markup := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(constant.BUTTON_TEXT_PRINT_MENU),
		),
	)
	markup.ResizeKeyboard = true
	return markup
}

func keyboardMarkup(k Keyboard) interface{} {
	switch k {
	case KeyboardMain:
		return mainMenu()
	case KeyboardBack:
		return backMenu()
	default:
		return nil
	}
}

// relayAsync runs the generative call off the update loop and sends its result to the chat.
// The number of simultaneous calls is bounded by the slots semaphore.
func (b *TgBotServices) relayAsync(ctx context.Context, chatID int64, prompt string) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		if err := b.slots.Acquire(ctx, 1); err != nil {
			logrus.WithError(err).WithField("chatID", chatID).Warn("Generative request dropped")
			return
		}
		defer b.slots.Release(1)

		result := b.Relay.Relay(ctx, prompt)
		if result.Status == models.RelayFailure {
			logrus.WithError(result.Err).
				WithField("chatID", chatID).
				WithField("kind", result.Kind.String()).
				Error("Generative request failed")
		}
		if err := b.sendLongMessage(chatID, RelayMessage(result)); err != nil {
			logrus.WithError(err).Error("Failed to deliver generative answer")
		}
	}()
}

// Wait blocks until all running generative requests have replied.
func (b *TgBotServices) Wait() {
	b.wg.Wait()
}

// UpdateProcessing handles incoming Telegram updates.
// Arguments:
//   - ctx: context bounding generative requests started by this update.
//   - update: the Telegram update to process.
func (b *TgBotServices) UpdateProcessing(ctx context.Context, update *tgbotapi.Update) {
	if update.Message == nil || update.Message.Text == "" || update.Message.Chat == nil {
		return
	}
	msg := update.Message
	chatID := msg.Chat.ID
	userID := chatID
	if msg.From != nil {
		userID = msg.From.ID
	}
	var command string
	if msg.IsCommand() {
		command = msg.Command()
	}

	chatMode := b.StateRepo.GetChatMode(userID)
	action := Dispatch(chatMode, command, msg.Text)
	metrics.UpdateHandled(action.Kind.String())
	if action.ChatMode != chatMode {
		b.StateRepo.SetChatMode(userID, chatID, action.ChatMode)
		logrus.WithFields(logrus.Fields{"userID": userID, "chatMode": action.ChatMode}).Info("Chat mode changed")
	}

	switch action.Kind {
	case ActionIgnore:
		logrus.WithFields(logrus.Fields{"chatID": chatID, "command": command}).Debug("Unsupported command ignored")
	case ActionReply:
		if err := b.sendMessage(chatID, action.Text, 0, keyboardMarkup(action.Keyboard)); err != nil {
			logrus.WithError(err).Error("Failed to send menu reply")
		}
	case ActionRelay:
		if err := b.sendMessage(chatID, constant.MSG_AI_THINKING, 0, nil); err != nil {
			logrus.WithError(err).Error("Failed to send thinking notice")
		}
		b.relayAsync(ctx, chatID, action.Text)
	}
}
