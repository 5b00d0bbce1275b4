package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/goalquest/internal/domain/league"
	"github.com/riskibarqy/goalquest/internal/domain/match"
	"github.com/riskibarqy/goalquest/internal/domain/prediction"
	"github.com/riskibarqy/goalquest/internal/domain/team"
	predictionmock "github.com/riskibarqy/goalquest/internal/mocks/domain/prediction"
	"github.com/riskibarqy/goalquest/internal/platform/logging"
)

func validPredictionRequest() prediction.Request {
	return prediction.Request{
		Team1Name:   "Arsenal",
		Team2Name:   "Chelsea",
		MatchDate:   "2024-11-10",
		LeagueName:  "Premier League",
		PastResults: "Arsenal 2-1 Chelsea",
		Team1Stats:  "possession 58%",
		Team2Stats:  "possession 42%",
	}
}

func TestPredictionService_Request_ClampsConfidence(t *testing.T) {
	t.Parallel()

	predictor := predictionmock.NewPredictor(t)
	predictor.On("Predict", mock.Anything, validPredictionRequest()).
		Return(prediction.Result{Prediction: "Arsenal win", Confidence: 180}, nil).
		Once()

	service := NewPredictionService(predictor, NewMatchResolver(logging.NewNop()), logging.NewNop())
	got, err := service.Request(context.Background(), validPredictionRequest())
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if got.Confidence != 100 {
		t.Fatalf("expected clamped confidence, got %d", got.Confidence)
	}
}

func TestPredictionService_Request_FailureIsGeneric(t *testing.T) {
	t.Parallel()

	predictor := predictionmock.NewPredictor(t)
	predictor.On("Predict", mock.Anything, mock.Anything).
		Return(prediction.Result{}, errors.New("upstream 503: model overloaded")).
		Once()

	service := NewPredictionService(predictor, NewMatchResolver(logging.NewNop()), logging.NewNop())
	_, err := service.Request(context.Background(), validPredictionRequest())
	if !errors.Is(err, ErrPredictionFailed) {
		t.Fatalf("expected ErrPredictionFailed, got %v", err)
	}
	if err.Error() != prediction.FailureMessage {
		t.Fatalf("expected generic message, got %q", err.Error())
	}
}

func TestPredictionService_Request_ValidatesInput(t *testing.T) {
	t.Parallel()

	predictor := predictionmock.NewPredictor(t)
	service := NewPredictionService(predictor, NewMatchResolver(logging.NewNop()), logging.NewNop())

	req := validPredictionRequest()
	req.MatchDate = "10/11/2024"
	if _, err := service.Request(context.Background(), req); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad date, got %v", err)
	}

	req = validPredictionRequest()
	req.Team2Name = "   "
	if _, err := service.Request(context.Background(), req); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank team, got %v", err)
	}
	predictor.AssertNotCalled(t, "Predict", mock.Anything, mock.Anything)
}

func TestPredictionService_Context(t *testing.T) {
	t.Parallel()

	m := sampleMatch("match-55", "Arsenal", "Chelsea", match.StatusCompleted)
	m.Score1, m.Score2 = 2, 1
	m.Date = "2024-11-10T16:30"
	m.League = league.League{Name: "Premier League"}
	m.Team1.Stats = &team.Stats{Possession: 58, Shots: 12, ShotsOnTarget: 5, Corners: 6, Fouls: 9, YellowCards: 2}

	provider := namedProvider(t, "apifootball")
	provider.On("GetMatch", mock.Anything, "55").Return(m, true, nil).Once()

	service := NewPredictionService(nil, NewMatchResolver(logging.NewNop(), provider), logging.NewNop())
	service.now = func() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) }

	got, err := service.Context(context.Background(), "match-55")
	if err != nil {
		t.Fatalf("context: %v", err)
	}
	want := prediction.Request{
		Team1Name:   "Arsenal",
		Team2Name:   "Chelsea",
		MatchDate:   "2024-11-10",
		LeagueName:  "Premier League",
		PastResults: "Arsenal 2-1 Chelsea (FT)",
		Team1Stats:  "possession 58%, shots 12 (5 on target), corners 6, fouls 9, cards 2Y/0R",
		Team2Stats:  noTeamStats,
	}
	if got != want {
		t.Fatalf("got %+v\nwant %+v", got, want)
	}
}

func TestPredictionService_ContextNotFound(t *testing.T) {
	t.Parallel()

	provider := namedProvider(t, "apifootball")
	provider.On("GetMatch", mock.Anything, "1").Return(match.Match{}, false, nil).Once()

	service := NewPredictionService(nil, NewMatchResolver(logging.NewNop(), provider), logging.NewNop())
	if _, err := service.Context(context.Background(), "match-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
