package llm

import (
	"net/http"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider identifies the application to OpenRouter with the
// X-Title header; referer is optional.
func NewOpenRouterProvider(apiKey, model, appTitle, referer string) *OpenRouterProvider {
	if model == "" {
		model = "openai/gpt-3.5-turbo"
	}
	p := &OpenRouterProvider{
		OpenAIProvider: &OpenAIProvider{
			name:       "openrouter",
			apiKey:     apiKey,
			model:      model,
			baseURL:    openRouterBaseURL,
			httpClient: &http.Client{},
		},
	}
	p.SetHeader("X-Title", appTitle)
	p.SetHeader("HTTP-Referer", referer)
	return p
}
