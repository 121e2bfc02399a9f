package nvidia

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ai-notes-be/internal/pkg/apperror"
	"ai-notes-be/pkg/llm"

	"github.com/sashabaranov/go-openai"
)

const (
	DefaultBaseURL = "https://integrate.api.nvidia.com/v1"
	DefaultModel   = "nvidia/llama-3.1-nemotron-70b-instruct"
	DefaultTimeout = 30 * time.Second
)

// Provider talks to the OpenAI-compatible chat completion API hosted by NVIDIA.
type Provider struct {
	apiKey  string
	model   string
	timeout time.Duration
	client  *openai.Client
}

// Ensure Provider implements LLMProvider
var _ llm.LLMProvider = &Provider{}

type ProviderOption func(*providerSettings)

type providerSettings struct {
	baseURL string
	model   string
	timeout time.Duration
}

// WithBaseURL points the provider at another endpoint. Tests use it with httptest.
func WithBaseURL(baseURL string) ProviderOption {
	return func(s *providerSettings) { s.baseURL = baseURL }
}

func WithDefaultModel(model string) ProviderOption {
	return func(s *providerSettings) {
		if model != "" {
			s.model = model
		}
	}
}

func WithTimeout(d time.Duration) ProviderOption {
	return func(s *providerSettings) { s.timeout = d }
}

func NewProvider(apiKey string, opts ...ProviderOption) *Provider {
	settings := providerSettings{
		baseURL: DefaultBaseURL,
		model:   DefaultModel,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&settings)
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = settings.baseURL
	config.HTTPClient = &http.Client{Timeout: settings.timeout}

	return &Provider{
		apiKey:  apiKey,
		model:   settings.model,
		timeout: settings.timeout,
		client:  openai.NewClientWithConfig(config),
	}
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	// No key, no request.
	if p.apiKey == "" {
		return "", apperror.ErrMissingAPIKey
	}

	options := &llm.Options{Model: p.model}
	for _, opt := range opts {
		opt(options)
	}

	messages := make([]openai.ChatCompletionMessage, len(history))
	for i, msg := range history {
		messages[i] = openai.ChatCompletionMessage{Role: msg.Role, Content: msg.Content}
	}

	req := openai.ChatCompletionRequest{
		Model:       options.Model,
		Messages:    messages,
		Temperature: float32(options.Temperature),
		TopP:        float32(options.TopP),
		MaxTokens:   options.MaxTokens,
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", apperror.New(apperror.KindUpstreamProtocol, "Invalid response from NVIDIA API")
	}

	return resp.Choices[0].Message.Content, nil
}

func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

// classify maps go-openai and transport errors onto the upstream kinds.
// Status errors are checked before decode errors because a RequestError may
// itself carry a JSON error from parsing a non-JSON error body.
func classify(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return apperror.Wrap(apperror.KindUpstreamTimeout, "NVIDIA API timed out", err)
	}

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	if errors.As(err, &apiErr) || errors.As(err, &reqErr) {
		return apperror.Wrap(apperror.KindUpstreamUnavailable, "NVIDIA API error", err)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return apperror.Wrap(apperror.KindUpstreamUnavailable, "NVIDIA API error", err)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) ||
		errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return apperror.Wrap(apperror.KindUpstreamProtocol, "Invalid response from NVIDIA API", err)
	}

	return apperror.Wrap(apperror.KindUpstreamUnavailable, "NVIDIA API error", err)
}
