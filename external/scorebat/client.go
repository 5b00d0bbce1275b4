package scorebat

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/goalquest/internal/domain/highlight"
	"github.com/riskibarqy/goalquest/internal/domain/league"
	"github.com/riskibarqy/goalquest/internal/domain/match"
	"github.com/riskibarqy/goalquest/internal/domain/team"
	"github.com/riskibarqy/goalquest/internal/platform/id"
	"github.com/riskibarqy/goalquest/internal/platform/logging"
	"github.com/riskibarqy/goalquest/internal/platform/resilience"
	"github.com/riskibarqy/goalquest/internal/platform/upstream"
)

const (
	ProviderName   = "scorebat"
	defaultBaseURL = "https://www.scorebat.com/video-api/v3"
	feedPath       = "/feed/"
	tokenHeader    = "x-rapidapi-key"
	titleSeparator = " - "
	highlightIDPre = "hl-"
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads the video feed. The feed lists finished matches with their
// highlight clips, so it backs both highlights and recent results.
type Client struct {
	http   *upstream.Client
	token  string
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
	token := strings.TrimSpace(cfg.Token)

	return &Client{
		http: upstream.NewClient(upstream.Config{
			Name:           ProviderName,
			HTTPClient:     cfg.HTTPClient,
			BaseURL:        baseURL,
			Timeout:        cfg.Timeout,
			Headers:        map[string]string{tokenHeader: token},
			SecretParams:   []string{"token"},
			Logger:         logger,
			CircuitBreaker: cfg.CircuitBreaker,
		}),
		token:  token,
		logger: logger.Named(ProviderName),
	}
}

func (c *Client) Name() string {
	return ProviderName
}

func (c *Client) ListHighlights(ctx context.Context) ([]highlight.Highlight, error) {
	items, err := c.fetchFeed(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]highlight.Highlight, 0, len(items))
	for _, item := range items {
		out = append(out, toHighlight(item))
	}
	return out, nil
}

func (c *Client) ListMatches(ctx context.Context) ([]match.Match, error) {
	items, err := c.fetchFeed(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]match.Match, 0, len(items))
	for _, item := range items {
		m, ok := toMatch(item)
		if !ok {
			c.logger.DebugContext(ctx, "skip feed item without teams", "title", item.Title)
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// GetMatch scans the current feed for an exact id.
func (c *Client) GetMatch(ctx context.Context, token string) (match.Match, bool, error) {
	matches, err := c.ListMatches(ctx)
	if err != nil {
		return match.Match{}, false, err
	}

	wanted := match.NewID(token)
	for _, m := range matches {
		if m.ID == wanted {
			return m, true, nil
		}
	}
	return match.Match{}, false, nil
}

// fetchFeed returns feed items whose title names two teams. A missing token
// yields an empty feed.
func (c *Client) fetchFeed(ctx context.Context) ([]feedItem, error) {
	if c.token == "" {
		c.logger.WarnContext(ctx, "provider disabled", "error", upstream.NotConfigured(ProviderName, "SCOREBAT_API_TOKEN"))
		return nil, nil
	}

	var envelope feedEnvelope
	if _, err := c.http.GetJSON(ctx, feedPath, nil, &envelope); err != nil {
		return nil, crerr.Wrap(err, "fetch scorebat feed")
	}
	if envelope.Response == nil {
		if envelope.Error != nil {
			return nil, upstream.InvalidShape("scorebat feed returned error: %v", envelope.Error)
		}
		return nil, upstream.InvalidShape("scorebat feed has no response array")
	}

	items := make([]feedItem, 0, len(*envelope.Response))
	for _, item := range *envelope.Response {
		if !strings.Contains(item.Title, titleSeparator) {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func toMatch(item feedItem) (match.Match, bool) {
	home, away, ok := splitTitle(item.Title)
	if !ok || strings.TrimSpace(item.Competition) == "" {
		return match.Match{}, false
	}

	return match.Match{
		ID:     matchID(item),
		Team1:  newTeam(home),
		Team2:  newTeam(away),
		Status: mapStatus(item.MatchStatus),
		League: league.League{
			ID:   leagueID(item.CompetitionURL),
			Name: strings.TrimSpace(item.Competition),
		},
		Venue:  match.UnknownVenue,
		Date:   strings.TrimSpace(item.Date),
		Embed:  firstEmbed(item.Videos),
		Source: ProviderName,
	}, true
}

func toHighlight(item feedItem) highlight.Highlight {
	videos := make([]highlight.Video, 0, len(item.Videos))
	for _, v := range item.Videos {
		videos = append(videos, highlight.Video{
			ID:       v.ID,
			Title:    v.Title,
			Embed:    v.Embed,
			EmbedURL: embedSource(v.Embed),
		})
	}

	return highlight.Highlight{
		ID:        highlightIDPre + id.Hash(ProviderName, item.Title, item.Date),
		Title:     item.Title,
		Thumbnail: item.Thumbnail,
		League:    item.Competition,
		Date:      item.Date,
		MatchID:   matchID(item),
		Embed:     firstEmbed(item.Videos),
		Videos:    videos,
	}
}

func matchID(item feedItem) string {
	return match.NewID(id.Derived(ProviderName, item.Title, item.Date))
}

func newTeam(name string) team.Team {
	return team.Team{
		ID:      id.Slug(name),
		Name:    name,
		LogoURL: team.PlaceholderLogo(name),
	}
}

func splitTitle(title string) (string, string, bool) {
	parts := strings.Split(title, titleSeparator)
	if len(parts) != 2 {
		return "", "", false
	}
	home := strings.TrimSpace(parts[0])
	away := strings.TrimSpace(parts[1])
	if home == "" || away == "" {
		return "", "", false
	}
	return home, away, true
}

// leagueID takes the competition slug from
// https://www.scorebat.com/live-stream/<slug>/.
func leagueID(competitionURL string) string {
	segments := strings.Split(strings.TrimSpace(competitionURL), "/")
	if len(segments) > 4 && strings.TrimSpace(segments[4]) != "" {
		return strings.TrimSpace(segments[4])
	}
	return league.UnknownID
}

func mapStatus(raw string) match.Status {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "LIVE":
		return match.StatusLive
	case "POSTPONED":
		return match.StatusPostponed
	case "CANCELLED", "CANCELED":
		return match.StatusCancelled
	default:
		return match.StatusCompleted
	}
}

func firstEmbed(videos []feedVideo) string {
	if len(videos) == 0 {
		return ""
	}
	return videos[0].Embed
}

// embedSource pulls the iframe src out of an embed snippet.
func embedSource(embed string) string {
	if !strings.Contains(embed, "<iframe") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(embed))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("iframe").First().Attr("src")
	return strings.TrimSpace(src)
}
