package llm

import (
	"net/http"
)

type CustomProvider struct {
	*OpenAIProvider
}

// NewCustomProvider targets any OpenAI-compatible base URL (ending in /v1).
func NewCustomProvider(baseURL, apiKey, model string) *CustomProvider {
	return &CustomProvider{
		OpenAIProvider: &OpenAIProvider{
			name:       "custom",
			apiKey:     apiKey,
			model:      model,
			baseURL:    baseURL,
			httpClient: &http.Client{},
		},
	}
}
