package people

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
	"github.com/rs/zerolog"
)

const (
	userAgent       = "people-go/1.0"
	requestIDHeader = "X-Request-Id"
)

// Client is the core people API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	userAgent  string
	logger     zerolog.Logger

	rateLimiter *rateLimiter

	// People is used for communicating with the people collection.
	People *PeopleService
}

// NewClient creates a new client for the people collection at baseURL.
// The base URL is used verbatim as a prefix, so record identifiers are
// appended directly: it should normally end with a slash.
// token is sent as a bearer credential on write operations.
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		token:      token,
		userAgent:  userAgent,
		logger:     zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.logger = c.logger.With().Str("client", "people").Logger()
	c.People = &PeopleService{client: c}

	return c
}

// String implements fmt.Stringer without exposing the token.
func (c *Client) String() string {
	return fmt.Sprintf("people.Client{baseURL:%s token:<REDACTED>}", c.baseURL)
}

// Format makes every fmt verb go through String so the token never leaks
// into logs, including %+v and %#v.
func (c *Client) Format(f fmt.State, verb rune) {
	_, _ = io.WriteString(f, c.String())
}

// Do executes an HTTP request with context, standard headers and optional
// pacing. It never inspects the status code: each operation owns its own
// success rules. The caller's request is cloned and left untouched.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.Clone(ctx)

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if req.Header.Get("Content-Type") == "" && req.Body != nil && req.Body != http.NoBody {
		req.Header.Set("Content-Type", "application/json")
	}

	requestID := req.Header.Get(requestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
		req.Header.Set(requestIDHeader, requestID)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("local rate limit wait interrupted: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("request aborted by context: %w", ctx.Err())
		}
		return nil, fmt.Errorf("http execute request failed: %w", err)
	}

	c.logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request completed")

	return resp, nil
}

// newRequest builds a request against rawURL. A non-nil body is encoded as
// JSON. When authenticated is set the bearer token is attached.
func (c *Client) newRequest(ctx context.Context, method, rawURL string, body any, authenticated bool) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		r = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, r)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if authenticated {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	return req, nil
}

// collectionURL returns the base URL with q as its query string.
func (c *Client) collectionURL(q url.Values) (*url.URL, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u, nil
}

// recordURL appends id to the base URL.
func (c *Client) recordURL(id string) string {
	return c.baseURL + url.PathEscape(id)
}

func decodeJSON(resp *http.Response, v any) error {
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response from %s: %w", responseURL(resp), err)
	}
	return nil
}

func responseURL(resp *http.Response) string {
	if resp.Request == nil || resp.Request.URL == nil {
		return ""
	}
	return resp.Request.URL.String()
}
