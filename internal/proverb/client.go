package proverb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/klauspost/compress/gzhttp"
)

const (
	// DefaultEndpoint returns a random Russian proverb.
	DefaultEndpoint = "https://jad-russian-proverb-api.onrender.com/proverbs/random"

	// DefaultTimeout bounds a single fetch. The free API host can take a
	// while to wake up.
	DefaultTimeout = 15 * time.Second

	// HeaderRequestID carries a per-fetch id for log correlation.
	HeaderRequestID = "X-Request-ID"

	maxBodySize = 1 << 20
)

// Config configures a Client.
type Config struct {
	// Endpoint is the full URL of the random proverb resource.
	Endpoint string

	// Timeout is the per-request timeout.
	Timeout time.Duration

	// UserAgent is sent with every request.
	UserAgent string

	// Transport overrides the HTTP transport. Mostly useful in tests.
	Transport http.RoundTripper
}

// Client fetches proverbs. Every call is a fresh round trip: there is no
// caching and no retry.
type Client struct {
	http      *http.Client
	endpoint  string
	userAgent string
	logger    *log.Logger
}

// NewClient returns a client for the given configuration.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "proverb"
	}

	req, err := http.NewRequest(http.MethodGet, cfg.Endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", cfg.Endpoint, err)
	}
	if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
		return nil, fmt.Errorf("%s is not a supported protocol", req.URL.Scheme)
	}

	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	return &Client{
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: gzhttp.Transport(transport),
		},
		endpoint:  cfg.Endpoint,
		userAgent: cfg.UserAgent,
		logger:    log.WithPrefix("proverb"),
	}, nil
}

// Endpoint returns the URL the client fetches from.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// FetchProverb performs one GET request and returns the decoded proverb.
//
// Errors are *NetworkError when no response was received, *ServerError for
// non-2xx responses, and *DecodeError when a success body is not a proverb.
func (c *Client) FetchProverb(ctx context.Context) (*Proverb, error) {
	requestID := uuid.NewString()
	logger := c.logger.With("request_id", requestID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(HeaderRequestID, requestID)

	start := time.Now()
	logger.Debug("fetching proverb", "url", c.endpoint)

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Error("proverb request failed", "error", err)
		return nil, &NetworkError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		logger.Error("reading proverb response", "error", err)
		return nil, &NetworkError{Err: err}
	}

	logger.Debug("proverb response",
		"status", resp.StatusCode,
		"size", humanize.Bytes(uint64(len(body))),
		"elapsed", time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serr := newServerError(resp.StatusCode, resp.Status, body)
		logger.Warn("proverb service returned an error", "status", serr.StatusCode, "message", serr.Message)
		return nil, serr
	}

	p, err := decodeProverb(body)
	if err != nil {
		logger.Error("decoding proverb", "error", err)
		return nil, err
	}
	return p, nil
}

// errorResponse is the best-effort shape of an error body.
type errorResponse struct {
	Message string `json:"message"`
}

// newServerError prefers the body's message, then the reason phrase the
// server sent, then the standard text for code.
func newServerError(code int, status string, body []byte) *ServerError {
	msg := strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(code)))
	if msg == "" {
		msg = http.StatusText(code)
	}
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Message != "" {
		msg = er.Message
	}
	if msg == "" {
		msg = "unknown server error"
	}
	return &ServerError{StatusCode: code, Message: msg}
}

func decodeProverb(body []byte) (*Proverb, error) {
	var r proverbResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, &DecodeError{Err: err}
	}
	p := r.toDomain()
	if err := p.Validate(); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return p, nil
}

// IsNetworkError reports whether err is a transport failure.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
