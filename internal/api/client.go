// Package api provides the HOS_BABEL backend client: reply fetching and health probing.
package api

import (
	"context"
	"fmt"
	"time"

	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"

	"github.com/hosbabel/hosbabel/internal/config"
	"github.com/hosbabel/hosbabel/internal/logger"
	"github.com/hosbabel/hosbabel/internal/models"
)

// ReplyClient is what the screens and commands need from a backend client
type ReplyClient interface {
	BaseURL() string
	Offline() bool
	FetchReply(ctx context.Context, text string) (string, error)
	CheckHealth(ctx context.Context) (HealthStatus, error)
}

// Client talks to the configured backend
type Client struct {
	httpClient    tls_client.HttpClient
	baseURL       string
	endpoints     []string
	healthTimeout time.Duration
	log           *logger.Entry
}

// Ensure Client implements ReplyClient
var _ ReplyClient = (*Client)(nil)

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithHTTPClient replaces the transport (tests inject a mock)
func WithHTTPClient(hc tls_client.HttpClient) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithEndpoints overrides the ordered list of reply paths
func WithEndpoints(paths ...string) ClientOption {
	return func(c *Client) {
		c.endpoints = append([]string(nil), paths...)
	}
}

// WithHealthTimeout overrides the health probe bound
func WithHealthTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.healthTimeout = d
	}
}

// NewClient creates a Client for baseURL. An empty baseURL yields an offline
// client that never touches the network.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	client := &Client{
		baseURL:       config.NormalizeAPIBase(baseURL),
		endpoints:     append([]string(nil), models.ReplyEndpoints...),
		healthTimeout: models.HealthTimeout,
		log:           logger.Named("api"),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		// Reply calls are unbounded; only the health probe carries a deadline.
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(0),
			tls_client.WithClientProfile(profiles.Chrome_120),
			tls_client.WithNotFollowRedirects(),
		}
		hc, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = hc
	}

	return client, nil
}

// BaseURL returns the normalized backend root
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Offline reports whether no backend is configured
func (c *Client) Offline() bool {
	return c.baseURL == ""
}

// Endpoints returns the reply paths in the order they are tried
func (c *Client) Endpoints() []string {
	return append([]string(nil), c.endpoints...)
}

// Close releases idle connections
func (c *Client) Close() {
	if c.httpClient != nil {
		c.httpClient.CloseIdleConnections()
	}
}
