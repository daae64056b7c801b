package tbot

import (
	"context"
	"errors"
	"github.com/DenisKhanov/GeminiMenuBot/internal/app/custom"
	"github.com/DenisKhanov/GeminiMenuBot/internal/logcfg"
	"github.com/DenisKhanov/GeminiMenuBot/internal/tg_bot/config"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// shutdownGrace is added to the generative timeout while waiting for running relays on shutdown.
const shutdownGrace = 5 * time.Second

// App represents the application structure responsible for initializing dependencies
// and running the Telegram bot.
type App struct {
	serviceProvider *ServiceProvider // The service provider for dependency injection
	config          *config.Config   // The configuration object for the application
	opsServer       *http.Server     // Health and metrics listener, nil when disabled
}

// NewApp creates a new instance of the application.
func NewApp(ctx context.Context) (*App, error) {
	app := &App{}
	err := app.initDeps(ctx)
	if err != nil {
		return nil, err
	}
	return app, nil
}

// Run starts the application and runs the Telegram bot.
func (a *App) Run() error {
	return a.runTelegramBot()
}

// initDeps initializes all dependencies required by the application.
func (a *App) initDeps(ctx context.Context) error {
	inits := []func(context.Context) error{
		a.initConfig,
		a.initServiceProvider,
		a.initOpsServer,
	}

	for _, f := range inits {
		err := f(ctx)
		if err != nil {
			return err
		}
	}

	return nil
}

// initConfig initializes the application configuration.
func (a *App) initConfig(_ context.Context) error {
	cfg, err := config.NewConfig(config.DefaultEnvFile)
	if err != nil {
		return err
	}
	a.config = cfg
	return logcfg.RunLoggerConfig(a.config.EnvLogsLevel, a.config.EnvLogFileName)
}

// initServiceProvider initializes the service provider for dependency injection.
func (a *App) initServiceProvider(_ context.Context) error {
	a.serviceProvider = NewServiceProvider(a.config)
	return nil
}

// initOpsServer prepares the health and metrics listener if METRICS_ADDR is set.
func (a *App) initOpsServer(_ context.Context) error {
	if a.config.EnvMetricsAddr == "" {
		return nil
	}
	a.opsServer = &http.Server{
		Addr:              a.config.EnvMetricsAddr,
		Handler:           a.serviceProvider.OpsHandler().Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return nil
}

// runOpsServer starts the ops listener in the background.
func (a *App) runOpsServer() {
	if a.opsServer == nil {
		return
	}
	go func() {
		logrus.Infof("Ops server started on: %s", a.opsServer.Addr)
		if err := a.opsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Error("Ops server stopped")
		}
	}()
}

// runTelegramBot starts the Telegram bot with graceful shutdown.
func (a *App) runTelegramBot() error {
	botAPI, err := a.serviceProvider.BotAPI()
	if err != nil {
		return err
	}
	myBot := a.serviceProvider.BotService(botAPI)
	// Warm up the model so a configuration problem is logged at startup
	a.serviceProvider.GenerativeService()
	a.runOpsServer()

	// Setup signal handling for graceful shutdown
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	// Relays outlive the update loop until the shutdown grace period expires
	relayCtx, cancelRelays := context.WithCancel(context.Background())
	defer cancelRelays()

	// Polling stops as soon as a signal arrives
	pollCtx, stopPolling := context.WithCancel(context.Background())
	defer stopPolling()

	// Configure updates channel
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60 // seconds timeout
	updates := custom.NewBotAPICustom(botAPI).GetUpdatesChan(pollCtx, updateConfig)

	// Main loop
	for {
		select {
		case sig := <-signalChan: // Wait for shutdown signal
			logrus.Infof("Received %v signal, shutting down bot...", sig)
			stopPolling()
			a.shutdown(myBot.Wait, cancelRelays)
			logrus.Info("Shutting down main loop...")
			return nil

		case update, ok := <-updates: // Telegram updates
			if !ok {
				logrus.Error("telegram update chan closed")
				a.shutdown(myBot.Wait, cancelRelays)
				return errors.New("telegram update channel closed")
			}
			myBot.UpdateProcessing(relayCtx, &update)
		}
	}
}

// shutdown waits for running relays, cancelling them after the grace period, and stops the ops server.
func (a *App) shutdown(wait func(), cancelRelays context.CancelFunc) {
	done := make(chan struct{})
	go func() {
		wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(a.config.GenerativeTimeout() + shutdownGrace):
		logrus.Warn("Generative requests did not finish in time, cancelling")
		cancelRelays()
		<-done
	}

	if a.opsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := a.opsServer.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Error("Ops server shutdown error")
		}
	}
}
