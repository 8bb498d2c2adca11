package completion

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	berrors "github.com/zhubert/banter/internal/errors"
	"github.com/zhubert/banter/internal/logger"
)

// Client sends single-prompt completion requests to one Provider.
type Client struct {
	api      *openai.Client
	provider Provider
	log      *slog.Logger
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	transport http.RoundTripper
	log       *slog.Logger
}

// WithTransport sets the underlying round tripper (default http.DefaultTransport).
func WithTransport(rt http.RoundTripper) Option {
	return func(o *clientOptions) { o.transport = rt }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *clientOptions) { o.log = l }
}

// NewClient creates a client for p authenticating with token.
func NewClient(p Provider, token string, opts ...Option) *Client {
	o := clientOptions{transport: http.DefaultTransport}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.ComponentLogger("completion")
	}

	cfg := openai.DefaultConfig(token)
	cfg.BaseURL = strings.TrimSuffix(p.Endpoint, "/")
	cfg.HTTPClient = &http.Client{
		Transport: &authTransport{
			base:   o.transport,
			header: p.Authorization(token),
		},
	}

	return &Client{
		api:      openai.NewClientWithConfig(cfg),
		provider: p,
		log:      o.log,
	}
}

// Provider returns the provider this client talks to.
func (c *Client) Provider() Provider {
	return c.provider
}

// Request builds the request body for prompt.
func (c *Client) Request(prompt string) openai.ChatCompletionRequest {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if c.provider.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: c.provider.SystemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})
	return openai.ChatCompletionRequest{
		Model:       c.provider.Model,
		Messages:    messages,
		Temperature: c.provider.Temperature,
	}
}

// Complete sends prompt and returns the first choice's content. A successful
// response without content returns "" and a nil error; callers decide on a
// fallback. Failures are *errors.Error values of kind KindTransport,
// KindProtocol, KindMalformed, KindTimeout or KindCanceled.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	req := c.Request(prompt)
	c.log.Debug("sending completion request",
		"provider", c.provider.Name, "model", req.Model, "messages", len(req.Messages))

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", c.classify(err)
	}

	if len(resp.Choices) == 0 {
		c.log.Debug("completion response had no choices", "provider", c.provider.Name)
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// classify maps go-openai and net/http failures onto the error taxonomy.
func (c *Client) classify(err error) error {
	name := c.provider.Name

	var (
		apiErr    *openai.APIError
		reqErr    *openai.RequestError
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		urlErr    *url.Error
	)
	switch {
	case errors.Is(err, context.Canceled):
		return berrors.CompletionCanceled(name, err)
	case errors.Is(err, context.DeadlineExceeded):
		return berrors.CompletionTimeout(name, err)
	case errors.As(err, &apiErr):
		return berrors.CompletionStatus(name, apiErr.HTTPStatusCode, err)
	case errors.As(err, &reqErr):
		return berrors.CompletionStatus(name, reqErr.HTTPStatusCode, err)
	case errors.As(err, &urlErr):
		return berrors.CompletionTransport(name, err)
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr),
		errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return berrors.CompletionMalformed(name, err)
	default:
		return berrors.CompletionTransport(name, err)
	}
}

// authTransport replaces the Authorization header with the provider's own.
type authTransport struct {
	base   http.RoundTripper
	header string
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request.
	r := req.Clone(req.Context())
	r.Header.Set("Authorization", t.header)
	return t.base.RoundTrip(r)
}
