package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/goalquest/internal/domain/match"
	"github.com/riskibarqy/goalquest/internal/domain/team"
	matchmock "github.com/riskibarqy/goalquest/internal/mocks/domain/match"
	"github.com/riskibarqy/goalquest/internal/platform/logging"
)

func namedProvider(t *testing.T, name string) *matchmock.Provider {
	t.Helper()

	provider := matchmock.NewProvider(t)
	provider.On("Name").Return(name).Maybe()
	return provider
}

func sampleMatch(id, home, away string, status match.Status) match.Match {
	return match.Match{
		ID:     id,
		Team1:  team.Team{ID: home, Name: home},
		Team2:  team.Team{ID: away, Name: away},
		Status: status,
		Venue:  match.UnknownVenue,
	}
}

func TestMatchResolver_FallsBackToSecondaryAndKeepsCanonicalID(t *testing.T) {
	t.Parallel()

	primary := namedProvider(t, "scorebat")
	secondary := namedProvider(t, "apifootball")

	primary.On("GetMatch", mock.Anything, "12345").Return(match.Match{}, false, nil).Once()
	secondary.On("GetMatch", mock.Anything, "12345").
		Return(sampleMatch("12345", "Arsenal", "Chelsea", match.StatusLive), true, nil).
		Once()

	resolver := NewMatchResolver(logging.NewNop(), primary, secondary)
	got, ok, err := resolver.Resolve(context.Background(), "match-12345")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got.ID != "match-12345" {
		t.Fatalf("expected canonical id, got %q", got.ID)
	}
	if got.Source != "apifootball" {
		t.Fatalf("expected source of the answering provider, got %q", got.Source)
	}
}

func TestMatchResolver_ProviderErrorIsAMiss(t *testing.T) {
	t.Parallel()

	primary := namedProvider(t, "scorebat")
	secondary := namedProvider(t, "apifootball")

	primary.On("GetMatch", mock.Anything, "777").Return(match.Match{}, false, errors.New("connection reset")).Once()
	secondary.On("GetMatch", mock.Anything, "777").
		Return(sampleMatch("match-777", "Inter", "Milan", match.StatusCompleted), true, nil).
		Once()

	resolver := NewMatchResolver(logging.NewNop(), primary, secondary)
	got, ok, err := resolver.Resolve(context.Background(), "match-777")
	if err != nil || !ok || got.Team1.Name != "Inter" {
		t.Fatalf("unexpected result %+v ok=%v err=%v", got, ok, err)
	}
}

func TestMatchResolver_StopsAtFirstHit(t *testing.T) {
	t.Parallel()

	primary := namedProvider(t, "scorebat")
	secondary := namedProvider(t, "apifootball")

	primary.On("GetMatch", mock.Anything, "arsenal-chelsea-abc").
		Return(sampleMatch("match-arsenal-chelsea-abc", "Arsenal", "Chelsea", match.StatusCompleted), true, nil).
		Once()

	resolver := NewMatchResolver(logging.NewNop(), primary, secondary)
	if _, ok, err := resolver.Resolve(context.Background(), "match-arsenal-chelsea-abc"); err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	secondary.AssertNotCalled(t, "GetMatch", mock.Anything, mock.Anything)
}

func TestMatchResolver_AllMissesIsNotFoundWithoutError(t *testing.T) {
	t.Parallel()

	primary := namedProvider(t, "scorebat")
	secondary := namedProvider(t, "apifootball")

	primary.On("GetMatch", mock.Anything, "404").Return(match.Match{}, false, errors.New("boom")).Once()
	secondary.On("GetMatch", mock.Anything, "404").Return(match.Match{}, false, nil).Once()

	resolver := NewMatchResolver(logging.NewNop(), primary, secondary)
	_, ok, err := resolver.Resolve(context.Background(), "404")
	if err != nil || ok {
		t.Fatalf("expected not found without error, got ok=%v err=%v", ok, err)
	}
}

func TestMatchResolver_EmptyIDIsInvalid(t *testing.T) {
	t.Parallel()

	resolver := NewMatchResolver(logging.NewNop())
	_, _, err := resolver.Resolve(context.Background(), "match-")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
