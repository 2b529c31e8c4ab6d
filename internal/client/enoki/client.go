package enoki

import (
	"time"

	httpClient "github.com/galerie-com/app-galerie/internal/client/http"
)

const defaultBaseURL = "https://api.enoki.mystenlabs.com/v1"

// EnokiClient talks to the Enoki sponsorship service. It is the only
// component that holds the sponsor credential; nothing above it ever sees
// the key.
//
// Retries are deliberately disabled: a sponsorship call must create at most
// one sponsored transaction, and executing a digest twice is
// provider-defined behavior. Retry policy, if any, belongs to the caller
// with a freshly built transaction.
type EnokiClient struct {
	apiKey     string
	httpClient *httpClient.HTTPClient
}

// Option configures an EnokiClient.
type Option func(*options)

type options struct {
	baseURL string
	timeout time.Duration
}

// WithBaseURL overrides the Enoki API base URL, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithTimeout bounds each outbound call. A timed-out call is treated as a
// provider failure; success is never inferred.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

// NewEnokiClient creates a client authenticated with the sponsor API key.
func NewEnokiClient(apiKey string, opts ...Option) *EnokiClient {
	o := &options{
		baseURL: defaultBaseURL,
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(o)
	}

	return &EnokiClient{
		apiKey: apiKey,
		httpClient: httpClient.NewHTTPClient(
			httpClient.WithBaseURL(o.baseURL),
			httpClient.WithTimeout(o.timeout),
		),
	}
}
