package llm

import (
	"fmt"

	"github.com/sant0-9/planea/internal/config"
)

// NewProvider creates a provider from config. An empty model or base URL
// falls back to the provider's catalogue entry.
func NewProvider(cfg *config.Config) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, config.ErrMissingAPIKey
	}

	id := cfg.Provider
	if id == "" {
		id = "openrouter"
	}
	info := config.GetProvider(id)
	if info == nil {
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}

	model := cfg.Model
	if model == "" {
		model = info.DefaultModel
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = info.BaseURL
	}

	switch info.ID {
	case "openrouter":
		p := NewOpenRouterProvider(cfg.APIKey, model, cfg.AppTitle, cfg.Referer)
		p.baseURL = baseURL
		p.WithTimeout(cfg.Timeout)
		return p, nil

	case "openai":
		p := NewOpenAIProvider(cfg.APIKey, model)
		p.baseURL = baseURL
		return p.WithTimeout(cfg.Timeout), nil

	case "custom":
		if baseURL == "" {
			return nil, fmt.Errorf("custom provider requires base_url")
		}
		p := NewCustomProvider(baseURL, cfg.APIKey, model)
		p.WithTimeout(cfg.Timeout)
		return p, nil

	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}
