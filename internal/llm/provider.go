package llm

import (
	"context"
)

// Provider is the interface all completion backends implement
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends a completion request and returns the full response.
	// Failures are always *CompletionError.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)
}

// CompletionRequest represents a request to the LLM
type CompletionRequest struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

// Message represents a chat message
type Message struct {
	Role    string
	Content string
}

// CompletionResponse represents the full response
type CompletionResponse struct {
	Content      string
	Model        string
	FinishReason string
	Usage        Usage
}

// Usage tracks token usage
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// NewUserRequest creates a single-message completion request. A zero
// maxTokens leaves the limit to the remote service.
func NewUserRequest(model, prompt string, maxTokens int) *CompletionRequest {
	return &CompletionRequest{
		Model: model,
		Messages: []Message{
			{Role: "user", Content: prompt},
		},
		MaxTokens: maxTokens,
	}
}
