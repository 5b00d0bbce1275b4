package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"

	"github.com/riskibarqy/goalquest/internal/domain/highlight"
	"github.com/riskibarqy/goalquest/internal/domain/league"
	"github.com/riskibarqy/goalquest/internal/domain/match"
	"github.com/riskibarqy/goalquest/internal/domain/news"
	"github.com/riskibarqy/goalquest/internal/domain/prediction"
	"github.com/riskibarqy/goalquest/internal/domain/standing"
	"github.com/riskibarqy/goalquest/internal/domain/team"
	"github.com/riskibarqy/goalquest/internal/platform/logging"
	"github.com/riskibarqy/goalquest/internal/usecase"
)

const defaultLivePollInterval = 30 * time.Second

// Services groups the use cases the handlers call.
type Services struct {
	Matches     *usecase.MatchService
	Highlights  *usecase.HighlightService
	Standings   *usecase.StandingService
	News        *usecase.NewsService
	Fixtures    *usecase.FixtureService
	Feed        *usecase.FeedService
	Predictions *usecase.PredictionService
}

type Handler struct {
	services         Services
	livePollInterval time.Duration
	upgrader         websocket.Upgrader
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(services Services, livePollInterval time.Duration, allowedOrigins []string, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if livePollInterval <= 0 {
		livePollInterval = defaultLivePollInterval
	}

	return &Handler{
		services:         services,
		livePollInterval: livePollInterval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger:    logger.Named("httpapi"),
		validator: validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func decodeJSONBody(r *http.Request, target any) error {
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(nil, r.Body, 64<<10))
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// originChecker applies the CORS allow list to websocket upgrades. Requests
// without an Origin header come from non-browser clients and are accepted.
func originChecker(allowedOrigins []string) func(r *http.Request) bool {
	allowAll := false
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			allowAll = true
		}
		if origin != "" {
			allowed[origin] = struct{}{}
		}
	}

	return func(r *http.Request) bool {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin == "" || allowAll {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}
}

type predictionRequest struct {
	Team1Name   string `json:"team1Name" validate:"required,max=100"`
	Team2Name   string `json:"team2Name" validate:"required,max=100"`
	MatchDate   string `json:"matchDate" validate:"required,datetime=2006-01-02"`
	LeagueName  string `json:"leagueName" validate:"required,max=100"`
	PastResults string `json:"pastResults" validate:"required,max=4000"`
	Team1Stats  string `json:"team1Stats" validate:"required,max=4000"`
	Team2Stats  string `json:"team2Stats" validate:"required,max=4000"`
}

func (p predictionRequest) toDomain() prediction.Request {
	return prediction.Request{
		Team1Name:   p.Team1Name,
		Team2Name:   p.Team2Name,
		MatchDate:   p.MatchDate,
		LeagueName:  p.LeagueName,
		PastResults: p.PastResults,
		Team1Stats:  p.Team1Stats,
		Team2Stats:  p.Team2Stats,
	}
}

type teamStatsDTO struct {
	Possession    int `json:"possession"`
	Shots         int `json:"shots"`
	ShotsOnTarget int `json:"shotsOnTarget"`
	Corners       int `json:"corners"`
	Fouls         int `json:"fouls"`
	YellowCards   int `json:"yellowCards"`
	RedCards      int `json:"redCards"`
}

type teamDTO struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	LogoURL string        `json:"logoUrl"`
	Stats   *teamStatsDTO `json:"stats,omitempty"`
}

type leagueDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
	Logo    string `json:"logo,omitempty"`
	Season  string `json:"season,omitempty"`
}

type matchEventDTO struct {
	Type           string `json:"type"`
	Minute         string `json:"minute"`
	Team           string `json:"team"`
	Player         string `json:"player"`
	AdditionalInfo string `json:"additionalInfo,omitempty"`
}

type matchDTO struct {
	ID          string          `json:"id"`
	Team1       teamDTO         `json:"team1"`
	Team2       teamDTO         `json:"team2"`
	Score1      int             `json:"score1"`
	Score2      int             `json:"score2"`
	Status      string          `json:"status"`
	StatusLabel string          `json:"statusLabel"`
	Minute      string          `json:"minute,omitempty"`
	League      leagueDTO       `json:"league"`
	Venue       string          `json:"venue"`
	Date        string          `json:"date"`
	Embed       string          `json:"embed,omitempty"`
	Events      []matchEventDTO `json:"events"`
	Referee     string          `json:"referee,omitempty"`
	Source      string          `json:"source"`
}

type videoDTO struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Embed    string `json:"embed"`
	EmbedURL string `json:"embedUrl,omitempty"`
}

type highlightDTO struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Thumbnail string     `json:"thumbnail"`
	League    string     `json:"league"`
	Date      string     `json:"date"`
	MatchID   string     `json:"matchId"`
	Embed     string     `json:"embed"`
	Videos    []videoDTO `json:"videos"`
}

type standingDTO struct {
	Rank           int     `json:"rank"`
	Team           teamDTO `json:"team"`
	Points         int     `json:"points"`
	Played         int     `json:"played"`
	Win            int     `json:"win"`
	Draw           int     `json:"draw"`
	Lose           int     `json:"lose"`
	GoalDifference int     `json:"goalDifference"`
}

type newsArticleDTO struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Source   string `json:"source"`
	Date     string `json:"date"`
	ImageURL string `json:"imageUrl"`
	URL      string `json:"url"`
	Summary  string `json:"summary"`
}

type predictionDTO struct {
	Prediction   string `json:"prediction"`
	Confidence   int    `json:"confidence"`
	SuggestedBet string `json:"suggestedBet"`
	Reasoning    string `json:"reasoning"`
}

type homeFeedDTO struct {
	Matches []matchDTO       `json:"matches"`
	News    []newsArticleDTO `json:"news"`
}

type liveFrameDTO struct {
	Type    string     `json:"type"`
	At      string     `json:"at"`
	Matches []matchDTO `json:"matches"`
}

func teamToDTO(v team.Team) teamDTO {
	out := teamDTO{ID: v.ID, Name: v.Name, LogoURL: v.LogoURL}
	if v.Stats != nil {
		out.Stats = &teamStatsDTO{
			Possession:    v.Stats.Possession,
			Shots:         v.Stats.Shots,
			ShotsOnTarget: v.Stats.ShotsOnTarget,
			Corners:       v.Stats.Corners,
			Fouls:         v.Stats.Fouls,
			YellowCards:   v.Stats.YellowCards,
			RedCards:      v.Stats.RedCards,
		}
	}
	return out
}

func leagueToDTO(v league.League) leagueDTO {
	return leagueDTO{ID: v.ID, Name: v.Name, Country: v.Country, Logo: v.Logo, Season: v.Season}
}

func matchToDTO(v match.Match) matchDTO {
	events := make([]matchEventDTO, 0, len(v.Events))
	for _, e := range v.Events {
		events = append(events, matchEventDTO{
			Type:           string(e.Type),
			Minute:         e.Minute,
			Team:           string(e.Team),
			Player:         e.Player,
			AdditionalInfo: e.AdditionalInfo,
		})
	}

	return matchDTO{
		ID:          v.ID,
		Team1:       teamToDTO(v.Team1),
		Team2:       teamToDTO(v.Team2),
		Score1:      v.Score1,
		Score2:      v.Score2,
		Status:      string(v.Status),
		StatusLabel: v.Status.Label(),
		Minute:      v.Minute,
		League:      leagueToDTO(v.League),
		Venue:       v.Venue,
		Date:        v.Date,
		Embed:       v.Embed,
		Events:      events,
		Referee:     v.Referee,
		Source:      v.Source,
	}
}

func matchesToDTO(items []match.Match) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, m := range items {
		out = append(out, matchToDTO(m))
	}
	return out
}

func highlightToDTO(v highlight.Highlight) highlightDTO {
	videos := make([]videoDTO, 0, len(v.Videos))
	for _, clip := range v.Videos {
		videos = append(videos, videoDTO{ID: clip.ID, Title: clip.Title, Embed: clip.Embed, EmbedURL: clip.EmbedURL})
	}
	return highlightDTO{
		ID:        v.ID,
		Title:     v.Title,
		Thumbnail: v.Thumbnail,
		League:    v.League,
		Date:      v.Date,
		MatchID:   v.MatchID,
		Embed:     v.Embed,
		Videos:    videos,
	}
}

func standingToDTO(v standing.Standing) standingDTO {
	return standingDTO{
		Rank:           v.Rank,
		Team:           teamToDTO(v.Team),
		Points:         v.Points,
		Played:         v.Played,
		Win:            v.Win,
		Draw:           v.Draw,
		Lose:           v.Lose,
		GoalDifference: v.GoalDifference,
	}
}

func newsToDTO(items []news.Article) []newsArticleDTO {
	out := make([]newsArticleDTO, 0, len(items))
	for _, v := range items {
		out = append(out, newsArticleDTO{
			ID:       v.ID,
			Title:    v.Title,
			Source:   v.Source,
			Date:     v.Date,
			ImageURL: v.ImageURL,
			URL:      v.URL,
			Summary:  v.Summary,
		})
	}
	return out
}
