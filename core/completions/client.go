package completions

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	completionsPath = "/v1/chat/completions"

	chunkPrefix = "data: "
	endMessage  = "[DONE]"

	defaultModel = "google/gemini-2.5-flash"
)

var (
	// ErrRateLimited reports a 429 from the completion endpoint. Retryable
	// later, surfaced to the user as its own condition.
	ErrRateLimited = errors.New("rate limit exceeded, try again later")
	// ErrQuotaExceeded reports a 402 from the completion endpoint.
	ErrQuotaExceeded = errors.New("usage quota exceeded")
)

// Config carries the endpoint material the client needs. Nothing is read
// from the environment here; resolve credentials at the edge and pass them
// in.
type Config struct {
	// BaseURL is the completion endpoint base, without the completions path.
	BaseURL string
	// Credential is sent as a bearer token.
	Credential string
	// Model overrides the default completion model.
	Model string
	// Timeout bounds one whole stream, from request dispatch to the terminal
	// signal. Zero means no application-level timeout.
	Timeout time.Duration
}

// Client talks to an OpenAI-compatible chat-completions endpoint.
type Client struct {
	config     Config
	httpClient *http.Client
}

type ClientOption func(*Client)

// WithHTTPClient replaces the default instrumented HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

func NewClient(config Config, opts ...ClientOption) *Client {
	if config.Model == "" {
		config.Model = defaultModel
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	client := &Client{
		config: config,
		httpClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport,
			otelhttp.WithSpanNameFormatter(func(operationName string, request *http.Request) string {
				return operationName + " " + request.URL.Path
			}),
		)},
	}
	for _, opt := range opts {
		opt(client)
	}

	return client
}

func (c *Client) url() string {
	return c.config.BaseURL + completionsPath
}
