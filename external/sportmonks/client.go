package sportmonks

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/goalquest/internal/domain/league"
	"github.com/riskibarqy/goalquest/internal/domain/match"
	"github.com/riskibarqy/goalquest/internal/domain/standing"
	"github.com/riskibarqy/goalquest/internal/platform/logging"
	"github.com/riskibarqy/goalquest/internal/platform/resilience"
	"github.com/riskibarqy/goalquest/internal/platform/upstream"
)

const (
	ProviderName           = "sportmonks"
	defaultBaseURL         = "https://api.sportmonks.com/v3/football"
	tokenParam             = "api_token"
	defaultIncludeFixture  = "participants;scores;venue;state;league;periods;statistics.type;events.type"
	defaultIncludeLive     = "participants;scores;venue;league;periods"
	defaultIncludeStanding = "participant;details.type"
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	Leagues        *league.Catalog
}

// Client is the secondary live-score and standings provider. Its standings are
// addressable by season through the league catalog.
type Client struct {
	http    *upstream.Client
	token   string
	logger  *logging.Logger
	leagues *league.Catalog
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		http: upstream.NewClient(upstream.Config{
			Name:           ProviderName,
			HTTPClient:     cfg.HTTPClient,
			BaseURL:        baseURL,
			Timeout:        cfg.Timeout,
			SecretParams:   []string{tokenParam},
			Logger:         logger,
			CircuitBreaker: cfg.CircuitBreaker,
		}),
		token:   strings.TrimSpace(cfg.Token),
		logger:  logger.Named(ProviderName),
		leagues: cfg.Leagues,
	}
}

func (c *Client) Name() string {
	return ProviderName
}

// ListMatches returns fixtures currently in play.
func (c *Client) ListMatches(ctx context.Context) ([]match.Match, error) {
	return c.ListLiveMatches(ctx)
}

func (c *Client) ListLiveMatches(ctx context.Context) ([]match.Match, error) {
	if !c.configured(ctx) {
		return nil, nil
	}

	var envelope fixturesEnvelope
	if _, err := c.http.GetJSON(ctx, "/livescores/inplay", c.query(defaultIncludeLive), &envelope); err != nil {
		return nil, crerr.Wrap(err, "fetch inplay livescores")
	}
	if envelope.Data == nil {
		// An empty in-play window answers with a message and no data.
		if envelope.Message != "" {
			c.logger.DebugContext(ctx, "no inplay fixtures", "message", envelope.Message)
			return []match.Match{}, nil
		}
		return nil, upstream.InvalidShape("sportmonks livescores has no data")
	}

	out := make([]match.Match, 0, len(*envelope.Data))
	for _, item := range *envelope.Data {
		m, ok := toMatch(item, c.leagues, false)
		if !ok {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// GetMatch loads one fixture with statistics and events. Only tokens minted by
// this provider are looked up.
func (c *Client) GetMatch(ctx context.Context, token string) (match.Match, bool, error) {
	fixtureID, ok := parseFixtureToken(token)
	if !ok || !c.configured(ctx) {
		return match.Match{}, false, nil
	}

	var envelope fixtureEnvelope
	_, err := c.http.GetJSON(ctx, fmt.Sprintf("/fixtures/%d", fixtureID), c.query(defaultIncludeFixture), &envelope)
	if err != nil {
		if upstream.IsStatus(err, http.StatusNotFound) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, crerr.Wrapf(err, "fetch fixture_id=%d", fixtureID)
	}
	if envelope.Data == nil {
		return match.Match{}, false, nil
	}

	m, ok := toMatch(*envelope.Data, c.leagues, true)
	return m, ok, nil
}

// ListStandings resolves the season through the league catalog and returns
// the overall table.
func (c *Client) ListStandings(ctx context.Context, leagueID, season string) ([]standing.Standing, error) {
	entry, ok := c.leagues.ByID(leagueID)
	if !ok {
		c.logger.WarnContext(ctx, "no sportmonks mapping for league", "league_id", leagueID)
		return []standing.Standing{}, nil
	}
	seasonID, ok := entry.SportMonksSeason(season)
	if !ok {
		c.logger.WarnContext(ctx, "no sportmonks season for league", "league_id", leagueID, "season", season)
		return []standing.Standing{}, nil
	}
	if !c.configured(ctx) {
		return []standing.Standing{}, nil
	}

	var envelope standingsEnvelope
	if _, err := c.http.GetJSON(ctx, fmt.Sprintf("/standings/seasons/%d", seasonID), c.query(defaultIncludeStanding), &envelope); err != nil {
		return nil, crerr.Wrapf(err, "fetch standings season_id=%d", seasonID)
	}
	if envelope.Data == nil {
		if envelope.Message != "" {
			c.logger.DebugContext(ctx, "no standings for season", "season_id", seasonID, "message", envelope.Message)
			return []standing.Standing{}, nil
		}
		return nil, upstream.InvalidShape("sportmonks standings has no data")
	}

	rows := flattenStandings(*envelope.Data)
	out := make([]standing.Standing, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toStanding())
	}
	return out, nil
}

func (c *Client) configured(ctx context.Context) bool {
	if c.token != "" {
		return true
	}
	c.logger.WarnContext(ctx, "provider disabled", "error", upstream.NotConfigured(ProviderName, "SPORTMONKS_TOKEN"))
	return false
}

func (c *Client) query(include string) url.Values {
	query := url.Values{}
	query.Set(tokenParam, c.token)
	if include != "" {
		query.Set("include", include)
	}
	return query
}
