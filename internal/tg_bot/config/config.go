package config

import (
	"errors"
	"fmt"
	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"os"
	"time"
)

// DefaultEnvFile is the optional file with environment variables loaded at startup.
const DefaultEnvFile = "bot.env"

// Config holds the application configuration parameters.
// Each field corresponds to an expected environment variable.
type Config struct {
	EnvLogsLevel        string  `env:"LOG_LEVEL" envDefault:"info"`                    // Log level for the application (e.g., debug, info)
	EnvLogFileName      string  `env:"LOG_FILE_NAME" envDefault:"tgBot.log"`           // File's name for log (e.g., Bot.log)
	EnvBotToken         string  `env:"TOKEN_BOT"`                                      // Telegram Bot Token for authentication with the Telegram API
	EnvBotDebug         bool    `env:"BOT_DEBUG" envDefault:"false"`                   // Verbose tgbotapi logging
	EnvGenerativeName   string  `env:"GENERATIVE_NAME" envDefault:"gemini"`            // Name of the generative AI provider to use (e.g., "gemini" or "openrouter")
	EnvGenerativeApiKey string  `env:"GENERATIVE_API_KEY"`                             // API Key for the generative AI service
	EnvGenerativeModel  string  `env:"GENERATIVE_MODEL" envDefault:"gemini-2.5-flash"` // Model name for the generative AI
	EnvGenerativeURL    string  `env:"GENERATIVE_BASE_URL"`                            // Optional API base URL override
	EnvGenerativeTemp   float64 `env:"GENERATIVE_TEMPERATURE" envDefault:"1.0"`        // Sampling temperature, negative for the model default
	EnvGenerativeTokens int     `env:"GENERATIVE_MAX_TOKENS" envDefault:"0"`           // Output token limit, 0 for the model default
	EnvTimeoutSec       int     `env:"GENERATIVE_TIMEOUT_SEC" envDefault:"30"`         // Timeout of one generative call in seconds
	EnvMaxConcurrent    int     `env:"GENERATIVE_MAX_CONCURRENT" envDefault:"8"`       // Max generative calls running at once
	EnvMetricsAddr      string  `env:"METRICS_ADDR"`                                   // Address of /healthz and /metrics, empty disables the listener
}

// NewConfig loads envFile if it exists and parses the process environment into a Config.
// It returns an error if the bot token is missing or a numeric value is invalid.
// A missing generative API key is only logged: the bot still serves the menu.
func NewConfig(envFile string) (*Config, error) {
	if err := godotenv.Load(envFile); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("new load %s: %w", envFile, err)
		}
		logrus.Infof("Env file %s not found, using process environment", envFile)
	}

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	if config.EnvGenerativeApiKey == "" {
		logrus.Error("GENERATIVE_API_KEY is empty, AI chat mode will not work")
	}
	return config, nil
}

func (c *Config) validate() error {
	if c.EnvBotToken == "" {
		return errors.New("TOKEN_BOT must be set")
	}
	if c.EnvTimeoutSec < 0 {
		return fmt.Errorf("GENERATIVE_TIMEOUT_SEC must not be negative, got %d", c.EnvTimeoutSec)
	}
	if c.EnvMaxConcurrent < 1 {
		return fmt.Errorf("GENERATIVE_MAX_CONCURRENT must be positive, got %d", c.EnvMaxConcurrent)
	}
	return nil
}

// GenerativeTimeout returns the per-call timeout, 0 means no timeout.
func (c *Config) GenerativeTimeout() time.Duration {
	return time.Duration(c.EnvTimeoutSec) * time.Second
}
