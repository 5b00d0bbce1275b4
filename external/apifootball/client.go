package apifootball

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/goalquest/internal/domain/league"
	"github.com/riskibarqy/goalquest/internal/domain/match"
	"github.com/riskibarqy/goalquest/internal/domain/standing"
	"github.com/riskibarqy/goalquest/internal/domain/team"
	"github.com/riskibarqy/goalquest/internal/platform/logging"
	"github.com/riskibarqy/goalquest/internal/platform/resilience"
	"github.com/riskibarqy/goalquest/internal/platform/upstream"
)

const (
	ProviderName    = "apifootball"
	defaultBaseURL  = "https://apiv3.apifootball.com"
	apiKeyParam     = "APIkey"
	logoFallbackURL = "https://api.sofascore.app/api/v1/team/%s/logo"
	dateLayout      = "2006-01-02"
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	Leagues        *league.Catalog
}

// Client talks to the apifootball v3 "action" API: live events, single-match
// detail, standings and upcoming fixtures.
type Client struct {
	http    *upstream.Client
	apiKey  string
	logger  *logging.Logger
	leagues *league.Catalog
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
			SecretParams:   []string{apiKeyParam},
			Logger:         logger,
			CircuitBreaker: cfg.CircuitBreaker,
		}),
		apiKey:  strings.TrimSpace(cfg.APIKey),
		logger:  logger.Named(ProviderName),
		leagues: cfg.Leagues,
	}
}

func (c *Client) Name() string {
	return ProviderName
}

// ListMatches returns the matches currently in play.
func (c *Client) ListMatches(ctx context.Context) ([]match.Match, error) {
	return c.ListLiveMatches(ctx)
}

func (c *Client) ListLiveMatches(ctx context.Context) ([]match.Match, error) {
	rows, err := c.getEvents(ctx, url.Values{"match_live": {"1"}})
	if err != nil {
		return nil, crerr.Wrap(err, "list live matches")
	}
	return c.toMatches(rows, false), nil
}

// GetMatch fetches one match with statistics and timeline. Tokens that are not
// apifootball ids are a miss without a request.
func (c *Client) GetMatch(ctx context.Context, token string) (match.Match, bool, error) {
	token = strings.TrimSpace(token)
	if _, err := strconv.ParseUint(token, 10, 64); err != nil {
		return match.Match{}, false, nil
	}

	rows, err := c.getEvents(ctx, url.Values{"match_id": {token}})
	if err != nil {
		return match.Match{}, false, crerr.Wrapf(err, "get match %s", token)
	}
	for _, row := range rows {
		if strings.TrimSpace(row.MatchID) != token {
			continue
		}
		m, ok := c.toMatch(row, true)
		return m, ok, nil
	}
	return match.Match{}, false, nil
}

// ListStandings returns the current table for an application league id. The
// API only serves the running season, so season is ignored.
func (c *Client) ListStandings(ctx context.Context, leagueID, season string) ([]standing.Standing, error) {
	entry, ok := c.leagues.ByID(leagueID)
	if !ok || entry.APIFootballID == "" {
		c.logger.WarnContext(ctx, "no apifootball mapping for league", "league_id", leagueID)
		return []standing.Standing{}, nil
	}
	if c.apiKey == "" {
		c.logger.WarnContext(ctx, "provider disabled", "error", upstream.NotConfigured(ProviderName, "APIFOOTBALL_KEY"))
		return []standing.Standing{}, nil
	}

	raw, err := c.http.Get(ctx, "/", c.query("get_standings", url.Values{"league_id": {entry.APIFootballID}}))
	if err != nil {
		return nil, crerr.Wrapf(err, "get standings league_id=%s", leagueID)
	}
	rows, err := decodeList[standingRow](raw)
	if err != nil {
		return nil, crerr.Wrapf(err, "decode standings league_id=%s", leagueID)
	}

	out := make([]standing.Standing, 0, len(rows))
	for _, row := range rows {
		item, ok := toStanding(row)
		if !ok {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

// ListFixtures returns scheduled matches of a league between two YYYY-MM-DD dates.
func (c *Client) ListFixtures(ctx context.Context, leagueID string, from, to string) ([]match.Match, error) {
	entry, ok := c.leagues.ByID(leagueID)
	if !ok || entry.APIFootballID == "" {
		c.logger.WarnContext(ctx, "no apifootball mapping for league", "league_id", leagueID)
		return []match.Match{}, nil
	}
	if _, err := time.Parse(dateLayout, from); err != nil {
		return nil, crerr.Wrapf(err, "invalid from date %q", from)
	}
	if _, err := time.Parse(dateLayout, to); err != nil {
		return nil, crerr.Wrapf(err, "invalid to date %q", to)
	}

	rows, err := c.getEvents(ctx, url.Values{
		"league_id": {entry.APIFootballID},
		"from":      {from},
		"to":        {to},
	})
	if err != nil {
		return nil, crerr.Wrapf(err, "list fixtures league_id=%s", leagueID)
	}
	return c.toMatches(rows, false), nil
}

func (c *Client) getEvents(ctx context.Context, params url.Values) ([]eventRow, error) {
	if c.apiKey == "" {
		c.logger.WarnContext(ctx, "provider disabled", "error", upstream.NotConfigured(ProviderName, "APIFOOTBALL_KEY"))
		return nil, nil
	}

	raw, err := c.http.Get(ctx, "/", c.query("get_events", params))
	if err != nil {
		return nil, err
	}
	return decodeList[eventRow](raw)
}

func (c *Client) query(action string, params url.Values) url.Values {
	query := url.Values{}
	for key, values := range params {
		query[key] = values
	}
	query.Set("action", action)
	query.Set(apiKeyParam, c.apiKey)
	return query
}

func (c *Client) toMatches(rows []eventRow, detailed bool) []match.Match {
	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		m, ok := c.toMatch(row, detailed)
		if !ok {
			c.logger.Debug("skip event without id or teams", "match_id", row.MatchID)
			continue
		}
		out = append(out, m)
	}
	return out
}

func (c *Client) toMatch(row eventRow, detailed bool) (match.Match, bool) {
	matchID := strings.TrimSpace(row.MatchID)
	homeName := strings.TrimSpace(row.HomeTeamName)
	awayName := strings.TrimSpace(row.AwayTeamName)
	if matchID == "" || homeName == "" || awayName == "" {
		return match.Match{}, false
	}

	status := mapStatus(row.MatchStatus, row.MatchLive)
	m := match.Match{
		ID:      match.NewID(matchID),
		Team1:   newTeam(row.HomeTeamID, homeName, row.HomeBadge),
		Team2:   newTeam(row.AwayTeamID, awayName, row.AwayBadge),
		Score1:  parseInt(row.HomeTeamScore),
		Score2:  parseInt(row.AwayTeamScore),
		Status:  status,
		League:  c.toLeague(row),
		Venue:   firstNonEmpty(row.MatchStadium, match.UnknownVenue),
		Date:    joinDateTime(row.MatchDate, row.MatchTime),
		Referee: strings.TrimSpace(row.MatchReferee),
		Source:  ProviderName,
	}
	if status == match.StatusLive {
		m.Minute = strings.TrimSpace(row.MatchStatus)
	}
	if !detailed {
		return m, true
	}

	m.Events = buildTimeline(row)
	home, away := buildStats(row.Statistics)
	home.YellowCards, home.RedCards, away.YellowCards, away.RedCards = match.CountCards(m.Events)
	m.Team1.Stats = &home
	m.Team2.Stats = &away
	return m, true
}

// toLeague maps the provider league back to the application league when the
// catalog knows it, so ids line up with the standings endpoints.
func (c *Client) toLeague(row eventRow) league.League {
	if entry, ok := c.leagues.ByAPIFootballID(row.LeagueID); ok {
		out := entry.League()
		out.Season = firstNonEmpty(row.LeagueYear, out.Season)
		return out
	}
	return league.League{
		ID:      firstNonEmpty(row.LeagueID, league.UnknownID),
		Name:    strings.TrimSpace(row.LeagueName),
		Country: strings.TrimSpace(row.CountryName),
		Logo:    strings.TrimSpace(row.LeagueLogo),
		Season:  strings.TrimSpace(row.LeagueYear),
	}
}

func buildTimeline(row eventRow) []match.Event {
	goalRows := row.Goals
	if len(goalRows) == 0 {
		goalRows = row.LegacyGoals
	}

	goals := make([]match.Event, 0, len(goalRows))
	for _, g := range goalRows {
		side, player, assist := match.SideTeam2, g.AwayScorer, g.AwayAssist
		if strings.TrimSpace(g.HomeScorer) != "" {
			side, player, assist = match.SideTeam1, g.HomeScorer, g.HomeAssist
		}
		player = firstNonEmpty(player, g.Scorer)
		assist = firstNonEmpty(assist, g.Assist)
		goals = append(goals, match.Event{
			Type:           match.EventGoal,
			Minute:         strings.TrimSpace(g.Time),
			Team:           side,
			Player:         strings.TrimSpace(player),
			AdditionalInfo: joinInfo(labelled("Assist", assist), labelled("Score", g.Score), g.Info),
		})
	}

	cards := make([]match.Event, 0, len(row.Cards))
	for _, card := range row.Cards {
		eventType, ok := mapCard(card.Card)
		if !ok {
			continue
		}
		side, player := match.SideTeam2, card.AwayFault.Player
		if card.HomeFault.Set {
			side, player = match.SideTeam1, card.HomeFault.Player
		}
		cards = append(cards, match.Event{
			Type:           eventType,
			Minute:         strings.TrimSpace(card.Time),
			Team:           side,
			Player:         firstNonEmpty(card.Player, player),
			AdditionalInfo: strings.TrimSpace(card.Info),
		})
	}

	subs := make([]match.Event, 0, len(row.Substitutions.Home)+len(row.Substitutions.Away))
	subs = appendSubstitutions(subs, row.Substitutions.Home, match.SideTeam1)
	subs = appendSubstitutions(subs, row.Substitutions.Away, match.SideTeam2)

	return match.MergeTimeline(goals, cards, subs)
}

// appendSubstitutions reads "Player Off | Player On" pairs.
func appendSubstitutions(dst []match.Event, rows []substitutionRow, side match.Side) []match.Event {
	for _, sub := range rows {
		off, on, found := strings.Cut(sub.Substitution, "|")
		player := strings.TrimSpace(off)
		info := ""
		if found {
			player = strings.TrimSpace(on)
			info = labelled("Off", off)
		}
		if player == "" {
			continue
		}
		dst = append(dst, match.Event{
			Type:           match.EventSubstitution,
			Minute:         strings.TrimSpace(sub.Time),
			Team:           side,
			Player:         player,
			AdditionalInfo: info,
		})
	}
	return dst
}

func buildStats(rows []statisticRow) (team.Stats, team.Stats) {
	var home, away team.Stats
	for _, row := range rows {
		var h, a *int
		switch strings.ToLower(strings.TrimSpace(row.Type)) {
		case "possession", "ball possession":
			h, a = &home.Possession, &away.Possession
		case "total shots", "shots total":
			h, a = &home.Shots, &away.Shots
		case "shots on goal", "shots on target":
			h, a = &home.ShotsOnTarget, &away.ShotsOnTarget
		case "corner kicks", "corners":
			h, a = &home.Corners, &away.Corners
		case "fouls":
			h, a = &home.Fouls, &away.Fouls
		default:
			continue
		}
		*h = match.LeadingInt(row.Home)
		*a = match.LeadingInt(row.Away)
	}
	return home, away
}

func toStanding(row standingRow) (standing.Standing, bool) {
	name := strings.TrimSpace(row.TeamName)
	if name == "" {
		return standing.Standing{}, false
	}
	return standing.Standing{
		Rank:           parseInt(row.Position),
		Team:           newTeam(row.TeamID, name, row.TeamBadge),
		Points:         parseInt(row.Points),
		Played:         parseInt(row.Played),
		Win:            parseInt(row.Won),
		Draw:           parseInt(row.Drawn),
		Lose:           parseInt(row.Lost),
		GoalDifference: parseInt(row.GoalsFor) - parseInt(row.GoalsAg),
	}, true
}

// mapStatus gives terminal markers priority over match_live, which the API
// sometimes leaves at "1" after the final whistle.
func mapStatus(rawStatus, live string) match.Status {
	switch strings.ToLower(strings.TrimSpace(rawStatus)) {
	case "finished", "90", "ft", "after et", "after pen.", "after pen":
		return match.StatusCompleted
	case "postponed":
		return match.StatusPostponed
	case "cancelled", "canceled", "abandoned", "awarded":
		return match.StatusCancelled
	}
	if strings.TrimSpace(live) == "1" {
		return match.StatusLive
	}
	return match.StatusScheduled
}

func mapCard(raw string) (match.EventType, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(value, "red"):
		return match.EventRedCard, true
	case strings.Contains(value, "yellow"):
		return match.EventYellowCard, true
	default:
		return "", false
	}
}

func newTeam(teamID, name, badge string) team.Team {
	teamID = strings.TrimSpace(teamID)
	fallback := team.PlaceholderLogo(name)
	if teamID != "" {
		fallback = strings.Replace(logoFallbackURL, "%s", url.PathEscape(teamID), 1)
	}
	return team.Team{
		ID:      firstNonEmpty(teamID, name),
		Name:    name,
		LogoURL: team.LogoOr(badge, fallback),
	}
}

// parseInt reads a base-10 count; anything unparseable or negative is 0.
func parseInt(raw string) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func joinDateTime(date, clock string) string {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" || clock == "" {
		return date
	}
	return date + "T" + clock
}

func labelled(label, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	return label + ": " + value
}

func joinInfo(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return strings.Join(out, "; ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
