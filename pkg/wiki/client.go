// Package wiki implements a minimal MediaWiki query client and the
// breadth-first article crawler built on top of it.
package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/semaphore"
)

const (
	DefaultBaseURL         = "https://en.wikipedia.org/w/api.php"
	DefaultUserAgent       = "wikifreq/1.0 (+https://github.com/mmegyeri/wikifreq)"
	DefaultTimeout         = 15 * time.Second
	DefaultConcurrency     = 8
	DefaultMaxLinksPerPage = 100
)

// Client issues MediaWiki API queries through a shared HTTP client and a
// counting gate that bounds concurrent in-flight requests across all crawls.
// Construct one Client at startup and share it between requests.
type Client struct {
	httpClient   *http.Client
	gate         *semaphore.Weighted
	logger       *slog.Logger
	baseURL      string
	userAgent    string
	htmlExtracts bool
}

// Options configures a Client. Zero values fall back to the package defaults.
type Options struct {
	BaseURL     string
	UserAgent   string
	Timeout     time.Duration
	Concurrency int

	// HTMLExtracts requests HTML extracts instead of plain text; the client
	// strips them to text before emitting.
	HTMLExtracts bool

	Logger *slog.Logger
}

func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Client{
		httpClient:   &http.Client{Timeout: opts.Timeout},
		gate:         semaphore.NewWeighted(int64(opts.Concurrency)),
		logger:       opts.Logger,
		baseURL:      opts.BaseURL,
		userAgent:    opts.UserAgent,
		htmlExtracts: opts.HTMLExtracts,
	}
}

// get performs one gated API round trip. The gate slot is held only for the
// duration of the request so a slow consumer cannot starve other crawls.
func (c *Client) get(ctx context.Context, params url.Values) (*apiResponse, error) {
	if err := c.gate.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("acquire request slot: %w", err)
	}
	defer c.gate.Release(1)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build wiki request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wiki request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wiki request failed: unexpected status %d", resp.StatusCode)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode wiki response: %w", err)
	}
	return &payload, nil
}

// forEachChunk runs one logical query, following "continue" pagination until
// the server stops returning a continuation set. Each continuation replaces
// the previous one and is merged over the base parameters. An API error
// payload terminates the sequence immediately. visit may return false to
// stop early without error.
func (c *Client) forEachChunk(ctx context.Context, base url.Values, visit func(chunk *QueryChunk) (bool, error)) error {
	cont := map[string]json.RawMessage{}
	for {
		params := url.Values{}
		for key, vals := range base {
			params[key] = vals
		}
		for key, raw := range cont {
			params.Set(key, continuationValue(raw))
		}

		payload, err := c.get(ctx, params)
		if err != nil {
			return err
		}
		if payload.Error != nil {
			return payload.Error
		}

		if payload.Query != nil {
			keepGoing, err := visit(payload.Query)
			if err != nil {
				return err
			}
			if !keepGoing {
				return nil
			}
		}

		if len(payload.Continue) == 0 {
			return nil
		}
		cont = payload.Continue
	}
}

// continuationValue renders a continuation token as a request parameter.
// Tokens are usually strings but may be numbers; numbers must keep their
// exact textual form.
func continuationValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
