package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/goalquest/internal/domain/match"
	"github.com/riskibarqy/goalquest/internal/domain/prediction"
	"github.com/riskibarqy/goalquest/internal/domain/team"
	"github.com/riskibarqy/goalquest/internal/platform/logging"
)

const (
	noPastResults = "No recent head-to-head results available."
	noTeamStats   = "No statistics available."
)

// PredictionService forwards insight requests to the predictor. Predictor
// failures are logged and reported as ErrPredictionFailed only.
type PredictionService struct {
	predictor prediction.Predictor
	resolver  *MatchResolver
	validator *validator.Validate
	now       func() time.Time
	logger    *logging.Logger
}

func NewPredictionService(predictor prediction.Predictor, resolver *MatchResolver, logger *logging.Logger) *PredictionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PredictionService{
		predictor: predictor,
		resolver:  resolver,
		validator: validator.New(),
		now:       time.Now,
		logger:    logger.Named("prediction_service"),
	}
}

func (s *PredictionService) Request(ctx context.Context, req prediction.Request) (prediction.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Request")
	defer span.End()

	req = trimRequest(req)
	if err := s.validator.StructCtx(ctx, req); err != nil {
		return prediction.Result{}, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}
	if s.predictor == nil {
		s.logger.WarnContext(ctx, "prediction requested without a predictor")
		return prediction.Result{}, ErrPredictionFailed
	}

	result, err := s.predictor.Predict(ctx, req)
	if err != nil {
		s.logger.ErrorContext(ctx, "prediction failed", "team1", req.Team1Name, "team2", req.Team2Name, "error", err)
		return prediction.Result{}, ErrPredictionFailed
	}
	result.Confidence = prediction.ClampConfidence(result.Confidence)
	return result, nil
}

// Context pre-fills a prediction request from a resolved match.
func (s *PredictionService) Context(ctx context.Context, matchID string) (prediction.Request, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Context")
	defer span.End()

	m, ok, err := s.resolver.Resolve(ctx, matchID)
	if err != nil {
		return prediction.Request{}, err
	}
	if !ok {
		return prediction.Request{}, fmt.Errorf("%w: match=%s", ErrNotFound, match.NewID(match.Token(matchID)))
	}

	return prediction.Request{
		Team1Name:   m.Team1.Name,
		Team2Name:   m.Team2.Name,
		MatchDate:   s.matchDay(m.Date),
		LeagueName:  m.League.Name,
		PastResults: pastResults(m),
		Team1Stats:  statsSummary(m.Team1.Stats),
		Team2Stats:  statsSummary(m.Team2.Stats),
	}, nil
}

// matchDay keeps the calendar day of an ISO timestamp, falling back to today.
func (s *PredictionService) matchDay(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) >= len(fixtureDateLayout) {
		if day, err := time.Parse(fixtureDateLayout, raw[:len(fixtureDateLayout)]); err == nil {
			return day.Format(fixtureDateLayout)
		}
	}
	return s.now().UTC().Format(fixtureDateLayout)
}

func pastResults(m match.Match) string {
	if m.Status != match.StatusCompleted && m.Status != match.StatusLive {
		return noPastResults
	}
	return fmt.Sprintf("%s %d-%d %s (%s)", m.Team1.Name, m.Score1, m.Score2, m.Team2.Name, m.Status.Label())
}

func statsSummary(stats *team.Stats) string {
	if stats == nil || *stats == (team.Stats{}) {
		return noTeamStats
	}
	return fmt.Sprintf(
		"possession %d%%, shots %d (%d on target), corners %d, fouls %d, cards %dY/%dR",
		stats.Possession,
		stats.Shots,
		stats.ShotsOnTarget,
		stats.Corners,
		stats.Fouls,
		stats.YellowCards,
		stats.RedCards,
	)
}

func trimRequest(req prediction.Request) prediction.Request {
	req.Team1Name = strings.TrimSpace(req.Team1Name)
	req.Team2Name = strings.TrimSpace(req.Team2Name)
	req.MatchDate = strings.TrimSpace(req.MatchDate)
	req.LeagueName = strings.TrimSpace(req.LeagueName)
	req.PastResults = strings.TrimSpace(req.PastResults)
	req.Team1Stats = strings.TrimSpace(req.Team1Stats)
	req.Team2Stats = strings.TrimSpace(req.Team2Stats)
	return req
}
