package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/goalquest/internal/platform/logging"
	"github.com/riskibarqy/goalquest/internal/platform/resilience"
)

const (
	DefaultTimeout = 10 * time.Second
	maxBodyBytes   = 6 << 20
)

var (
	// ErrTransient marks failures that count against the circuit breaker:
	// transport errors, timeouts, 429 and 5xx responses.
	ErrTransient = crerr.New("upstream transient failure")
	// ErrInvalidShape marks payloads that decoded but do not match the provider's raw schema.
	ErrInvalidShape = crerr.New("upstream payload has invalid shape")
	// ErrNotConfigured marks providers missing a required credential.
	ErrNotConfigured = crerr.New("upstream provider is not configured")
)

// StatusError carries a non-2xx response. Body is abbreviated and redacted.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("provider status=%d body=%s", e.Code, e.Body)
}

// IsStatus reports whether err wraps a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var statusErr *StatusError
	if !crerr.As(err, &statusErr) {
		return false
	}
	return statusErr.Code == code
}

type Config struct {
	Name       string
	HTTPClient *http.Client
	BaseURL    string
	Timeout    time.Duration
	// Headers are sent on every request, e.g. an API key header.
	Headers map[string]string
	// SecretParams are query parameter names whose values never reach logs or errors.
	SecretParams   []string
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client is the shared JSON GET transport used by every provider adapter.
// It never retries; a failed call is reported once and the caller degrades.
type Client struct {
	name         string
	httpClient   *http.Client
	baseURL      string
	headers      map[string]string
	secretParams []string
	secrets      []string
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
	flight       resilience.Group[[]byte]
}

func NewClient(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.HTTPClient != nil {
		copied := *cfg.HTTPClient
		httpClient = &copied
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = DefaultTimeout
	}

	headers := make(map[string]string, len(cfg.Headers))
	secrets := make([]string, 0, len(cfg.Headers))
	for key, value := range cfg.Headers {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		headers[key] = value
		secrets = append(secrets, value)
	}

	return &Client{
		name:         cfg.Name,
		httpClient:   httpClient,
		baseURL:      strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		headers:      headers,
		secretParams: cfg.SecretParams,
		secrets:      secrets,
		logger:       logger.Named(cfg.Name),
		breaker:      cfg.CircuitBreaker.Build(cfg.Name),
	}
}

func (c *Client) Name() string {
	return c.name
}

// GetJSON fetches path with query and decodes the body into target.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, target any) ([]byte, error) {
	raw, err := c.Get(ctx, path, query)
	if err != nil {
		return nil, err
	}
	if err := Decode(raw, target); err != nil {
		return raw, err
	}
	return raw, nil
}

type fetchResult struct {
	raw []byte
	err error
}

// Get fetches path with query and returns the raw body. Identical concurrent
// calls share one outbound request. The shared request is detached from any
// single caller's cancellation and bounded by the client timeout; a caller
// whose ctx ends stops waiting without affecting the others.
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}
	if err := ctx.Err(); err != nil {
		return nil, crerr.Wrap(err, "upstream call abandoned")
	}

	detached := context.WithoutCancel(ctx)
	done := make(chan fetchResult, 1)
	go func() {
		raw, err, _ := c.flight.Do(fullURL, func() ([]byte, error) {
			return c.fetch(detached, fullURL)
		})
		done <- fetchResult{raw: raw, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, crerr.Wrap(ctx.Err(), "upstream call abandoned")
	case res := <-done:
		if res.err != nil {
			return nil, res.err
		}
		return res.raw, nil
	}
}

func (c *Client) fetch(ctx context.Context, fullURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.httpClient.Timeout)
	defer cancel()

	var body []byte
	run := func() error {
		var reqErr error
		body, reqErr = c.executeRequest(ctx, fullURL)
		return reqErr
	}
	if c.breaker == nil {
		err := run()
		return body, err
	}
	if err := c.breaker.Execute(run, isCircuitFailure); err != nil {
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "circuit breaker rejected request", "state", c.breaker.State())
		}
		return nil, err
	}
	return body, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	started := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	req.Header.Set("accept", "application/json")
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = markTransport(crerr.Newf("send request: %s", c.sanitize(err.Error())), err)
		c.logger.WarnContext(ctx, "upstream request failed", "url", c.redactURL(fullURL), "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, markTransport(crerr.Wrap(err, "read response body"), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := error(&StatusError{Code: resp.StatusCode, Body: c.sanitize(abbreviateBody(raw))})
		if isRetryableStatus(resp.StatusCode) {
			statusErr = crerr.Mark(statusErr, ErrTransient)
		}
		c.logger.WarnContext(ctx, "upstream returned non-2xx",
			"url", c.redactURL(fullURL),
			"status", resp.StatusCode,
			"duration_ms", time.Since(started).Milliseconds(),
		)
		return nil, statusErr
	}

	c.logger.DebugContext(ctx, "upstream request done",
		"url", c.redactURL(fullURL),
		"bytes", len(raw),
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return raw, nil
}

// Decode unmarshals raw into target, marking failures as ErrInvalidShape.
func Decode(raw []byte, target any) error {
	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Mark(crerr.Wrap(err, "decode provider payload"), ErrInvalidShape)
	}
	return nil
}

// InvalidShape builds an ErrInvalidShape error with a formatted reason.
func InvalidShape(format string, args ...any) error {
	return crerr.Mark(crerr.Newf(format, args...), ErrInvalidShape)
}

// NotConfigured builds an ErrNotConfigured error naming the missing setting.
func NotConfigured(provider, setting string) error {
	return crerr.Mark(crerr.Newf("%s: %s is not set", provider, setting), ErrNotConfigured)
}

func (c *Client) sanitize(value string) string {
	value = strings.TrimSpace(value)
	for _, secret := range c.secrets {
		value = strings.ReplaceAll(value, secret, "REDACTED")
	}
	for _, param := range c.secretParams {
		value = redactParam(value, param)
	}
	return value
}

func (c *Client) redactURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return c.sanitize(rawURL)
	}
	query := parsed.Query()
	changed := false
	for _, param := range c.secretParams {
		if query.Has(param) {
			query.Set(param, "REDACTED")
			changed = true
		}
	}
	if changed {
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func redactParam(value, param string) string {
	needle := param + "="
	var b strings.Builder
	for {
		idx := strings.Index(value, needle)
		if idx < 0 {
			b.WriteString(value)
			return b.String()
		}
		b.WriteString(value[:idx+len(needle)])
		b.WriteString("REDACTED")
		rest := value[idx+len(needle):]
		end := strings.IndexAny(rest, "& \t\"'")
		if end < 0 {
			return b.String()
		}
		value = rest[end:]
	}
}

// markTransport tags a transport failure as transient unless it was a
// cancellation, which says nothing about the provider's health.
func markTransport(wrapped, cause error) error {
	if crerr.Is(cause, context.Canceled) {
		return crerr.Mark(wrapped, context.Canceled)
	}
	return crerr.Mark(wrapped, ErrTransient)
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, ErrTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
