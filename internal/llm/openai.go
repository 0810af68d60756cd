package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

type OpenAIProvider struct {
	name       string
	apiKey     string
	model      string
	baseURL    string
	headers    map[string]string
	httpClient *http.Client
}

// NewOpenAIProvider talks to api.openai.com. The HTTP client has no timeout
// unless WithTimeout is used; callers bound requests through ctx.
func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	if model == "" {
		model = "gpt-3.5-turbo"
	}
	return &OpenAIProvider{
		name:       "openai",
		apiKey:     apiKey,
		model:      model,
		baseURL:    "https://api.openai.com/v1",
		httpClient: &http.Client{},
	}
}

func (o *OpenAIProvider) Name() string {
	return o.name
}

// WithTimeout sets an overall deadline on every request. Zero means none.
func (o *OpenAIProvider) WithTimeout(d time.Duration) *OpenAIProvider {
	o.httpClient.Timeout = d
	return o
}

// SetHeader adds a header sent with every completion request.
func (o *OpenAIProvider) SetHeader(key, value string) {
	if value == "" {
		return
	}
	if o.headers == nil {
		o.headers = make(map[string]string)
	}
	o.headers[key] = value
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Temperature float64         `json:"temperature,omitempty"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Pointers distinguish a missing field from an empty one.
type openAIResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message *struct {
			Role    string  `json:"role"`
			Content *string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

func (o *OpenAIProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = o.model
	}

	apiReq := openAIRequest{
		Model:       model,
		Messages:    toOpenAIMessages(req.Messages),
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}

	body, err := json.Marshal(apiReq)
	if err != nil {
		return nil, o.fail(KindTransport, 0, "", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(o.baseURL, "/")+"/chat/completions",
		bytes.NewReader(body))
	if err != nil {
		return nil, o.fail(KindTransport, 0, "", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)
	for k, v := range o.headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return nil, o.fail(KindTransport, 0, "", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, o.fail(KindTransport, resp.StatusCode, "", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, o.fail(KindHTTPStatus, resp.StatusCode, string(raw), nil)
	}

	var apiResp openAIResponse
	if err := json.Unmarshal(raw, &apiResp); err != nil {
		return nil, o.fail(KindTransport, resp.StatusCode, string(raw), err)
	}

	if len(apiResp.Choices) == 0 || apiResp.Choices[0].Message == nil || apiResp.Choices[0].Message.Content == nil {
		return nil, o.fail(KindShape, resp.StatusCode, string(raw), nil)
	}

	choice := apiResp.Choices[0]
	return &CompletionResponse{
		Content:      *choice.Message.Content,
		Model:        model,
		FinishReason: choice.FinishReason,
		Usage: Usage{
			PromptTokens:     apiResp.Usage.PromptTokens,
			CompletionTokens: apiResp.Usage.CompletionTokens,
			TotalTokens:      apiResp.Usage.TotalTokens,
		},
	}, nil
}

func (o *OpenAIProvider) fail(kind ErrorKind, status int, body string, err error) *CompletionError {
	return &CompletionError{
		Kind:       kind,
		Provider:   o.name,
		StatusCode: status,
		Body:       body,
		Err:        err,
	}
}

func toOpenAIMessages(msgs []Message) []openAIMessage {
	result := make([]openAIMessage, len(msgs))
	for i, m := range msgs {
		result[i] = openAIMessage{Role: m.Role, Content: m.Content}
	}
	return result
}
