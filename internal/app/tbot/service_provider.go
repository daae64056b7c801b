// Package tbot provides dependency injection and service management for Telegram bot components.
// It initializes and provides access to services, repositories, and handlers required for bot operations.
package tbot

import (
	"fmt"
	"github.com/DenisKhanov/GeminiMenuBot/internal/tg_bot/api"
	botHand "github.com/DenisKhanov/GeminiMenuBot/internal/tg_bot/api/http"
	"github.com/DenisKhanov/GeminiMenuBot/internal/tg_bot/config"
	"github.com/DenisKhanov/GeminiMenuBot/internal/tg_bot/infra/generative"
	"github.com/DenisKhanov/GeminiMenuBot/internal/tg_bot/repository"
	botServ "github.com/DenisKhanov/GeminiMenuBot/internal/tg_bot/service"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"sync"
)

// ServiceProvider manages the dependency injection for Telegram bot components.
type ServiceProvider struct {
	config *config.Config

	generativeService botServ.GenerativeModel
	relay             *botServ.Relay
	usersStateRepo    *repository.UsersState
	opsHandler        *botHand.Handler
	botAPI            *tgbotapi.BotAPI
	botAPIErr         error
	botService        *botServ.TgBotServices

	generativeOnce sync.Once
	relayOnce      sync.Once
	stateRepoOnce  sync.Once
	opsOnce        sync.Once
	botAPIOnce     sync.Once
	botServiceOnce sync.Once
}

// NewServiceProvider creates a new instance of the service provider.
func NewServiceProvider(cfg *config.Config) *ServiceProvider {
	return &ServiceProvider{config: cfg}
}

// GenerativeService returns the configured generative model.
// If the provider cannot be created (unknown name, empty or invalid key) the error is logged
// and a stand-in model is returned that fails every request with the same error.
func (s *ServiceProvider) GenerativeService() botServ.GenerativeModel {
	s.generativeOnce.Do(func() {
		model, err := generative.ModelFactory(
			s.config.EnvGenerativeName,
			s.config.EnvGenerativeApiKey,
			s.config.EnvGenerativeModel,
			s.config.EnvGenerativeURL,
			s.config.EnvGenerativeTokens,
			float32(s.config.EnvGenerativeTemp),
		)
		if err != nil {
			logrus.WithError(err).Error("Failed to initialize Generative service, AI chat mode is unavailable")
			s.generativeService = api.NewUnavailableModel(s.config.EnvGenerativeName, s.config.EnvGenerativeModel, err)
			return
		}
		s.generativeService = model
		logrus.WithField("provider", s.config.EnvGenerativeName).
			WithField("model", model.ModelName()).
			Info("Generative model initialized")
	})
	return s.generativeService
}

// Relay returns the generative relay with the configured timeout.
func (s *ServiceProvider) Relay() *botServ.Relay {
	s.relayOnce.Do(func() {
		s.relay = botServ.NewRelay(s.GenerativeService(), s.config.GenerativeTimeout())
		logrus.Info("Relay initialized")
	})
	return s.relay
}

// The ChatStateRepository returns the usersStateRepo for user session management.
func (s *ServiceProvider) ChatStateRepository() *repository.UsersState {
	s.stateRepoOnce.Do(func() {
		s.usersStateRepo = repository.NewUsersStateMap()
		logrus.Info("ChatStateRepository initialized")
	})
	return s.usersStateRepo
}

// OpsHandler returns the handler of the health and metrics endpoints.
func (s *ServiceProvider) OpsHandler() *botHand.Handler {
	s.opsOnce.Do(func() {
		s.opsHandler = botHand.NewHandler(s.ChatStateRepository(), s.GenerativeService().ModelName())
	})
	return s.opsHandler
}

// BotAPI returns the Telegram Bot API instance.
func (s *ServiceProvider) BotAPI() (*tgbotapi.BotAPI, error) {
	s.botAPIOnce.Do(func() {
		s.botAPI, s.botAPIErr = tgbotapi.NewBotAPI(s.config.EnvBotToken)
		if s.botAPIErr != nil {
			logrus.Errorf("Failed to initialize BotAPI: %v", s.botAPIErr)
			s.botAPI = nil
			return
		}
		s.botAPI.Debug = s.config.EnvBotDebug
		logrus.Infof("Bot API created successfully for %s", s.botAPI.Self.UserName)
	})
	if s.botAPI == nil {
		return nil, fmt.Errorf("bot API not initialized: %w", s.botAPIErr)
	}
	return s.botAPI, nil
}

// BotService returns the main Telegram bot service sending through sender.
func (s *ServiceProvider) BotService(sender botServ.Sender) *botServ.TgBotServices {
	s.botServiceOnce.Do(func() {
		s.botService = botServ.NewTgBot(
			s.Relay(),
			s.ChatStateRepository(),
			sender,
			int64(s.config.EnvMaxConcurrent),
		)
		logrus.Info("BotService initialized")
	})
	return s.botService
}
