package config

type ProviderInfo struct {
	ID           string
	Name         string
	Description  string
	BaseURL      string
	SignupURL    string
	Models       []string
	DefaultModel string
}

var Providers = []ProviderInfo{
	{
		ID:           "openrouter",
		Name:         "OpenRouter",
		Description:  "Access all models",
		BaseURL:      "https://openrouter.ai/api/v1",
		SignupURL:    "https://openrouter.ai/keys",
		Models:       []string{"openai/gpt-3.5-turbo", "openai/gpt-4o-mini", "anthropic/claude-3.5-sonnet"},
		DefaultModel: "openai/gpt-3.5-turbo",
	},
	{
		ID:           "openai",
		Name:         "OpenAI",
		Description:  "GPT models directly",
		BaseURL:      "https://api.openai.com/v1",
		SignupURL:    "https://platform.openai.com/api-keys",
		Models:       []string{"gpt-3.5-turbo", "gpt-4o-mini", "gpt-4o"},
		DefaultModel: "gpt-3.5-turbo",
	},
	{
		ID:          "custom",
		Name:        "Custom",
		Description: "Any OpenAI-compatible endpoint",
	},
}

func GetProvider(id string) *ProviderInfo {
	for _, p := range Providers {
		if p.ID == id {
			return &p
		}
	}
	return nil
}
