package sanity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"

	"github.com/dogbodymind/go-site/internal/logging"
	"github.com/dogbodymind/go-site/pkg/interfaces"
)

const (
	apiHost        = "api.sanity.io"
	cdnHost        = "apicdn.sanity.io"
	defaultVersion = "2024-01-01"
	defaultTimeout = 15 * time.Second
)

// Config identifies the hosted dataset the client queries.
type Config struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	// Token authorizes access to private datasets. Authenticated requests
	// always bypass the CDN.
	Token  string
	UseCDN bool
	// BaseURL overrides the derived API endpoint. Intended for tests.
	BaseURL string
}

// Validate checks the minimum fields required to reach a dataset.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ProjectID, validation.Required),
		validation.Field(&c.Dataset, validation.Required),
	)
}

// RequestError describes a non-success response from the query endpoint.
type RequestError struct {
	StatusCode  int
	Description string
}

func (e *RequestError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("sanity: query endpoint returned %d: %s", e.StatusCode, e.Description)
	}
	return fmt.Sprintf("sanity: query endpoint returned %d", e.StatusCode)
}

// Client is an HTTP GROQ query client implementing interfaces.DocumentClient.
type Client struct {
	cfg        Config
	httpClient *http.Client
	cache      interfaces.QueryCache
	logger     interfaces.Logger
}

// Option customizes client construction.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithQueryCache attaches a cache consulted for fetches that opt in via
// FetchOptions.Cache.
func WithQueryCache(cache interfaces.QueryCache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithLogger attaches a structured logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New constructs a query client for the configured dataset.
func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "sanity: invalid config").
			WithTextCode("SANITY_CONFIG_INVALID")
	}
	if strings.TrimSpace(cfg.APIVersion) == "" {
		cfg.APIVersion = defaultVersion
	}

	client := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

var _ interfaces.DocumentClient = (*Client)(nil)

// Fetch runs a GROQ query and returns the raw result payload. A query that
// matches nothing returns the JSON literal null rather than an error.
func (c *Client) Fetch(ctx context.Context, query string, params interfaces.Params, opts interfaces.FetchOptions) (json.RawMessage, error) {
	endpoint, err := c.endpoint()
	if err != nil {
		return nil, err
	}

	values := url.Values{}
	values.Set("query", query)
	for _, key := range sortedKeys(params) {
		encoded, err := json.Marshal(params[key])
		if err != nil {
			return nil, fmt.Errorf("sanity: encode param %q: %w", key, err)
		}
		values.Set("$"+key, string(encoded))
	}
	if tag := strings.TrimSpace(opts.Tag); tag != "" {
		values.Set("tag", tag)
	}

	cacheKey := endpoint + "?" + values.Encode()
	if opts.Cache && c.cache != nil {
		if cached, ok := c.cache.Get(cacheKey); ok {
			c.logger.Debug("query cache hit", "tag", opts.Tag)
			return cached, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cacheKey, nil)
	if err != nil {
		return nil, fmt.Errorf("sanity: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sanity: query request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("sanity: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &RequestError{
			StatusCode:  resp.StatusCode,
			Description: errorDescription(body),
		}
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("sanity: decode response envelope: %w", err)
	}

	result := envelope.Result
	if len(result) == 0 {
		result = json.RawMessage("null")
	}

	c.logger.Debug("query executed",
		"tag", opts.Tag,
		"elapsed_ms", time.Since(started).Milliseconds(),
	)

	if opts.Cache && c.cache != nil {
		c.cache.Set(cacheKey, result)
	}
	return result, nil
}

func (c *Client) endpoint() (string, error) {
	if base := strings.TrimSpace(c.cfg.BaseURL); base != "" {
		return strings.TrimRight(base, "/") + "/data/query/" + c.cfg.Dataset, nil
	}

	host := apiHost
	if c.cfg.UseCDN && c.cfg.Token == "" {
		host = cdnHost
	}
	return fmt.Sprintf("https://%s.%s/v%s/data/query/%s", c.cfg.ProjectID, host, c.cfg.APIVersion, c.cfg.Dataset), nil
}

func sortedKeys(params interfaces.Params) []string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func errorDescription(body []byte) string {
	var payload struct {
		Error struct {
			Description string `json:"description"`
			Type        string `json:"type"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Error.Description != "" {
		return payload.Error.Description
	}
	return payload.Message
}
