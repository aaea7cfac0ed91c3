package sanity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// MaxRetries is the maximum number of retries for transient errors.
	MaxRetries = 3

	// RetryDelay is the initial delay between retries, doubled each attempt.
	RetryDelay = time.Second

	// DefaultAPIVersion is the content API version used when the
	// configuration does not pin one.
	DefaultAPIVersion = "2024-01-01"

	// requestRate throttles the client well under the API quota.
	// The pipeline is sequential and low-volume, so this is generous.
	requestRate = 10 // requests per second
)

// Config carries the connection parameters for the content API.
type Config struct {
	// ProjectID is the project identifier, e.g. "a1b2c3d4".
	ProjectID string

	// Dataset is the dataset name, e.g. "production".
	Dataset string

	// Token is a write-capable API token.
	Token string

	// APIVersion pins the content API version; defaults to
	// DefaultAPIVersion when empty.
	APIVersion string

	// BaseURL overrides the API endpoint. Used by tests; when empty
	// the canonical https://<project>.api.sanity.io is used.
	BaseURL string
}

// Client is a minimal content-API client: query and mutate.
type Client struct {
	http       *http.Client
	baseURL    string
	dataset    string
	limiter    *rate.Limiter
	retryDelay time.Duration
}

// NewClient creates a client authenticated with a static bearer token.
func NewClient(ctx context.Context, cfg Config) *Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: cfg.Token},
	)
	hc := oauth2.NewClient(ctx, ts)
	hc.Timeout = DefaultTimeout

	version := cfg.APIVersion
	if version == "" {
		version = DefaultAPIVersion
	}
	base := cfg.BaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.api.sanity.io", cfg.ProjectID)
	}

	return &Client{
		http:       hc,
		baseURL:    fmt.Sprintf("%s/v%s", base, version),
		dataset:    cfg.Dataset,
		limiter:    rate.NewLimiter(rate.Limit(requestRate), 1),
		retryDelay: RetryDelay,
	}
}

// Query runs a GROQ query and decodes the result envelope into out.
// Params are exposed to the query as $-prefixed variables.
func (c *Client) Query(ctx context.Context, groq string, params map[string]any, out any) error {
	q := url.Values{}
	q.Set("query", groq)
	for name, value := range params {
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode param %s: %w", name, err)
		}
		q.Set("$"+name, string(encoded))
	}

	endpoint := fmt.Sprintf("%s/data/query/%s?%s", c.baseURL, c.dataset, q.Encode())
	body, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("decode query response: %w", err)
	}
	if out == nil || len(envelope.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("decode query result: %w", err)
	}
	return nil
}

// Mutate submits a batch of mutations as one transaction.
func (c *Client) Mutate(ctx context.Context, mutations []mutation) error {
	payload := struct {
		Mutations     []mutation `json:"mutations"`
		TransactionID string     `json:"transactionId"`
	}{
		Mutations:     mutations,
		TransactionID: uuid.NewString(),
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode mutations: %w", err)
	}

	endpoint := fmt.Sprintf("%s/data/mutate/%s?visibility=sync", c.baseURL, c.dataset)
	if _, err := c.do(ctx, http.MethodPost, endpoint, encoded); err != nil {
		return err
	}
	return nil
}

// do performs one HTTP request with rate limiting and bounded retries
// on transient failures (429 and 5xx).
func (c *Client) do(ctx context.Context, method, endpoint string, body []byte) ([]byte, error) {
	var lastErr error

	delay := c.retryDelay
	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
		if err != nil {
			return nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		payload, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			return payload, nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = fmt.Errorf("api status %d: %s", resp.StatusCode, truncateBody(payload))
			continue
		default:
			return nil, fmt.Errorf("api status %d: %s", resp.StatusCode, truncateBody(payload))
		}
	}

	return nil, fmt.Errorf("giving up after %d retries: %w", MaxRetries, lastErr)
}

func truncateBody(body []byte) string {
	const max = 200
	if len(body) > max {
		return string(body[:max]) + "…"
	}
	return string(body)
}
