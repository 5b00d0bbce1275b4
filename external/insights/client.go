package insights

import (
	"context"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"

	"github.com/riskibarqy/goalquest/internal/domain/prediction"
	"github.com/riskibarqy/goalquest/internal/platform/logging"
	"github.com/riskibarqy/goalquest/internal/platform/resilience"
)

const ProviderName = "insights"

var errInsightsTransient = crerr.New("insights transient failure")

type ClientConfig struct {
	URL            string
	Token          string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client posts prediction requests to the AI gateway. It never retries; the
// caller turns every failure into prediction.ErrFailed.
type Client struct {
	client  *fasthttp.Client
	url     string
	token   string
	timeout time.Duration
	logger  *logging.Logger
	breaker *resilience.CircuitBreaker
}

type requestBody struct {
	Prompt string       `json:"prompt"`
	Input  requestInput `json:"input"`
}

type requestInput struct {
	Team1Name   string `json:"team1Name"`
	Team2Name   string `json:"team2Name"`
	MatchDate   string `json:"matchDate"`
	LeagueName  string `json:"leagueName"`
	PastResults string `json:"pastResults"`
	Team1Stats  string `json:"team1Stats"`
	Team2Stats  string `json:"team2Stats"`
}

func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &Client{
		client: &fasthttp.Client{
			Name:         "goalquest-insights",
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		url:     strings.TrimSpace(cfg.URL),
		token:   strings.TrimSpace(cfg.Token),
		timeout: timeout,
		logger:  logger.Named(ProviderName),
		breaker: cfg.CircuitBreaker.Build(ProviderName),
	}
}

func (c *Client) Predict(ctx context.Context, req prediction.Request) (prediction.Result, error) {
	if c.url == "" {
		return prediction.Result{}, crerr.New("INSIGHTS_URL is not configured")
	}
	if _, err := validateHTTPURL(c.url); err != nil {
		return prediction.Result{}, crerr.Wrap(err, "invalid INSIGHTS_URL")
	}

	body, err := sonic.Marshal(requestBody{
		Prompt: RenderPrompt(req),
		Input: requestInput{
			Team1Name:   req.Team1Name,
			Team2Name:   req.Team2Name,
			MatchDate:   req.MatchDate,
			LeagueName:  req.LeagueName,
			PastResults: req.PastResults,
			Team1Stats:  req.Team1Stats,
			Team2Stats:  req.Team2Stats,
		},
	})
	if err != nil {
		return prediction.Result{}, crerr.Wrap(err, "marshal insights request")
	}

	var raw []byte
	call := func() error {
		raw, err = c.post(ctx, body)
		return err
	}
	if c.breaker != nil {
		err = c.breaker.Execute(call, isCircuitFailure)
	} else {
		err = call()
	}
	if err != nil {
		c.logger.WarnContext(ctx, "insights request failed", "error", err)
		return prediction.Result{}, err
	}

	result, err := ParseResult(raw)
	if err != nil {
		c.logger.WarnContext(ctx, "insights response rejected", "error", err, "body", truncateForLog(string(raw), 512))
		return prediction.Result{}, err
	}
	return result, nil
}

func (c *Client) post(ctx context.Context, body []byte) ([]byte, error) {
	request := fasthttp.AcquireRequest()
	response := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(request)
	defer fasthttp.ReleaseResponse(response)

	request.SetRequestURI(c.url)
	request.Header.SetMethod(fasthttp.MethodPost)
	request.Header.SetContentType("application/json")
	request.Header.Set("Accept", "application/json, text/plain")
	if c.token != "" {
		request.Header.Set("Authorization", "Bearer "+c.token)
	}
	request.SetBodyRaw(body)

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return nil, crerr.Mark(crerr.Wrap(context.DeadlineExceeded, "insights request"), errInsightsTransient)
	}

	c.logger.DebugContext(ctx, "insights request", "url", c.url, "timeout", timeout.String())
	if err := c.client.DoTimeout(request, response, timeout); err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "post insights request"), errInsightsTransient)
	}

	status := response.StatusCode()
	payload := append([]byte(nil), response.Body()...)
	if status/100 != 2 {
		err := crerr.Newf("insights status=%d body=%s", status, truncateForLog(strings.TrimSpace(string(payload)), 256))
		if isRetryableStatus(status) {
			return nil, crerr.Mark(err, errInsightsTransient)
		}
		return nil, err
	}
	return payload, nil
}

func validateHTTPURL(raw string) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", raw)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", raw, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", raw)
	}
	return raw, nil
}

func truncateForLog(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated)"
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errInsightsTransient)
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == fasthttp.StatusRequestTimeout ||
		statusCode == fasthttp.StatusTooManyRequests ||
		statusCode >= fasthttp.StatusInternalServerError
}
