package mediastack

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/goalquest/internal/domain/news"
	"github.com/riskibarqy/goalquest/internal/platform/id"
	"github.com/riskibarqy/goalquest/internal/platform/logging"
	"github.com/riskibarqy/goalquest/internal/platform/resilience"
	"github.com/riskibarqy/goalquest/internal/platform/upstream"
)

const (
	ProviderName   = "mediastack"
	defaultBaseURL = "http://api.mediastack.com/v1"
	accessKeyParam = "access_key"
	newsKeywords   = "football,soccer"
	newsLanguage   = "en"
	newsSort       = "published_desc"
	newsLimit      = 20
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	http   *upstream.Client
	apiKey string
	logger *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		http: upstream.NewClient(upstream.Config{
			Name:           ProviderName,
			HTTPClient:     cfg.HTTPClient,
			BaseURL:        baseURL,
			Timeout:        cfg.Timeout,
			SecretParams:   []string{accessKeyParam},
			Logger:         logger,
			CircuitBreaker: cfg.CircuitBreaker,
		}),
		apiKey: strings.TrimSpace(cfg.APIKey),
		logger: logger.Named(ProviderName),
	}
}

// ListNews returns the newest English football articles.
func (c *Client) ListNews(ctx context.Context) ([]news.Article, error) {
	if c.apiKey == "" {
		c.logger.WarnContext(ctx, "provider disabled", "error", upstream.NotConfigured(ProviderName, "MEDIASTACK_API_KEY"))
		return nil, nil
	}

	query := url.Values{}
	query.Set(accessKeyParam, c.apiKey)
	query.Set("keywords", newsKeywords)
	query.Set("languages", newsLanguage)
	query.Set("sort", newsSort)
	query.Set("limit", strconv.Itoa(newsLimit))

	var envelope newsEnvelope
	if _, err := c.http.GetJSON(ctx, "/news", query, &envelope); err != nil {
		return nil, crerr.Wrap(err, "fetch mediastack news")
	}
	if envelope.Data == nil {
		if envelope.Error != nil {
			return nil, upstream.InvalidShape("mediastack error %s: %s", envelope.Error.Code, envelope.Error.Message)
		}
		return nil, upstream.InvalidShape("mediastack response has no data array")
	}

	out := make([]news.Article, 0, len(*envelope.Data))
	for _, item := range *envelope.Data {
		article, ok := toArticle(item)
		if !ok {
			continue
		}
		out = append(out, article)
	}
	return out, nil
}

func toArticle(item articleRow) (news.Article, bool) {
	title := strings.TrimSpace(item.Title)
	link := strings.TrimSpace(item.URL)
	if title == "" || link == "" {
		return news.Article{}, false
	}

	image := strings.TrimSpace(item.Image)
	if image == "" {
		image = news.PlaceholderImage
	}

	return news.Article{
		ID:       id.FromURL(link),
		Title:    title,
		Source:   strings.TrimSpace(item.Source),
		Date:     strings.TrimSpace(item.PublishedAt),
		ImageURL: image,
		URL:      link,
		Summary:  plainText(item.Description),
	}, true
}

// plainText strips markup some publishers leave in descriptions.
func plainText(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.ContainsAny(raw, "<&") {
		return raw
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return raw
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
