// Package apifootball implements the HTTP client for the API-Football v3
// upstream. The client is endpoint-catalog driven: the caller addresses
// endpoints by catalog name and the client maps parameters onto the path
// template and query string.
package apifootball

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lucide-ai/lucide/pkg/knowledge"
	"github.com/lucide-ai/lucide/pkg/version"
)

// DefaultBaseURL is the production API-Football v3 host.
const DefaultBaseURL = "https://v3.football.api-sports.io"

// ErrUpstream wraps non-2xx responses and API-level errors reported inside a
// 200 envelope.
var ErrUpstream = errors.New("upstream API error")

// Config holds client settings.
type Config struct {
	BaseURL string
	APIKey  string
	// Timeout bounds one HTTP request; the orchestrator's retry budget sits
	// on top of it.
	Timeout time.Duration
}

// Client is a catalog-driven API-Football client, safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	kb      *knowledge.Base
	http    *http.Client
	logger  *slog.Logger
}

// New creates a client. The knowledge base supplies path templates; the API
// key is required.
func New(kb *knowledge.Base, cfg Config) (*Client, error) {
	if kb == nil {
		return nil, fmt.Errorf("knowledge base cannot be nil")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key cannot be empty")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  cfg.APIKey,
		kb:      kb,
		http:    &http.Client{Timeout: timeout},
		logger:  slog.With("component", "apifootball"),
	}, nil
}

// Call issues one GET against the named endpoint. The decoded JSON envelope
// is returned as-is (map with get/parameters/errors/results/response keys);
// an errors object with entries, or a non-2xx status, yields an error.
func (c *Client) Call(ctx context.Context, endpoint string, params map[string]any) (any, error) {
	desc, err := c.kb.Get(endpoint)
	if err != nil {
		return nil, err
	}

	reqURL, err := c.buildURL(desc, params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", endpoint, err)
	}
	req.Header.Set("x-apisports-key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.Full())

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", endpoint, err)
	}

	c.logger.Debug("Upstream call",
		"endpoint", endpoint, "status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrUpstream, endpoint, resp.StatusCode)
	}

	var envelope map[string]any
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
	}

	if msg := apiErrors(envelope); msg != "" {
		return nil, fmt.Errorf("%w: %s: %s", ErrUpstream, endpoint, msg)
	}
	return envelope, nil
}

// buildURL fills the path template holes and moves the remaining parameters
// to the query string.
func (c *Client) buildURL(desc *knowledge.Descriptor, params map[string]any) (string, error) {
	path := desc.PathTemplate
	query := url.Values{}

	for name, value := range params {
		hole := "{" + name + "}"
		rendered := fmt.Sprintf("%v", value)
		if strings.Contains(path, hole) {
			path = strings.ReplaceAll(path, hole, url.PathEscape(rendered))
			continue
		}
		query.Set(name, rendered)
	}
	if strings.Contains(path, "{") {
		return "", fmt.Errorf("unfilled path template for %s: %s", desc.Name, path)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u, nil
}

// apiErrors flattens the envelope's errors field. The upstream reports
// request-level problems as either an array or an object of messages inside
// a 200 response.
func apiErrors(envelope map[string]any) string {
	raw, ok := envelope["errors"]
	if !ok {
		return ""
	}
	switch errs := raw.(type) {
	case []any:
		if len(errs) == 0 {
			return ""
		}
		parts := make([]string, 0, len(errs))
		for _, e := range errs {
			parts = append(parts, fmt.Sprintf("%v", e))
		}
		return strings.Join(parts, "; ")
	case map[string]any:
		if len(errs) == 0 {
			return ""
		}
		parts := make([]string, 0, len(errs))
		for k, v := range errs {
			parts = append(parts, fmt.Sprintf("%s: %v", k, v))
		}
		return strings.Join(parts, "; ")
	default:
		return ""
	}
}
