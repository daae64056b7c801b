package generative

import (
	"fmt"
	"github.com/DenisKhanov/GeminiMenuBot/internal/tg_bot/api"
	botServ "github.com/DenisKhanov/GeminiMenuBot/internal/tg_bot/service"
	"sort"
	"strings"
)

// generativeCreator defines a function to create GenerativeModel
type generativeCreator func(apiKey, modelName, baseURL string, maxTokens int, temperature float32) (botServ.GenerativeModel, error)

// generativeRegistry stores registered implementations
var generativeRegistry = map[string]generativeCreator{
	"gemini": func(apiKey, modelName, baseURL string, maxTokens int, temperature float32) (botServ.GenerativeModel, error) {
		return api.NewGeminiAPI(apiKey, modelName, baseURL, maxTokens, temperature)
	},
	"openai": func(apiKey, modelName, baseURL string, maxTokens int, temperature float32) (botServ.GenerativeModel, error) {
		return api.NewOpenAIAPI("openai", apiKey, modelName, baseURL, maxTokens, temperature)
	},
	"openrouter": func(apiKey, modelName, baseURL string, maxTokens int, temperature float32) (botServ.GenerativeModel, error) {
		if baseURL == "" {
			baseURL = api.OpenRouterBaseURL
		}
		return api.NewOpenAIAPI("openrouter", apiKey, modelName, baseURL, maxTokens, temperature)
	},
}

// Providers returns the registered provider names in sorted order.
func Providers() []string {
	names := make([]string, 0, len(generativeRegistry))
	for name := range generativeRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ModelFactory creates a GenerativeModel implementation based on an environment variable
func ModelFactory(generativeName, apiKey, modelName, baseURL string, maxTokens int, temperature float32) (botServ.GenerativeModel, error) {
	creator, exists := generativeRegistry[generativeName]
	if !exists {
		return nil, fmt.Errorf("unsupported GENERATIVE_NAME: %s (expected one of: %s)", generativeName, strings.Join(Providers(), ", "))
	}
	return creator(apiKey, modelName, baseURL, maxTokens, temperature)
}
