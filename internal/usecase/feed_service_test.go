package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/goalquest/internal/domain/highlight"
	"github.com/riskibarqy/goalquest/internal/domain/match"
	"github.com/riskibarqy/goalquest/internal/domain/news"
	highlightmock "github.com/riskibarqy/goalquest/internal/mocks/domain/highlight"
	newsmock "github.com/riskibarqy/goalquest/internal/mocks/domain/news"
	"github.com/riskibarqy/goalquest/internal/platform/logging"
)

func TestFeedService_Home_NewsFailureKeepsMatches(t *testing.T) {
	t.Parallel()

	provider := namedProvider(t, "apifootball")
	provider.On("ListMatches", mock.Anything).
		Return([]match.Match{sampleMatch("match-1", "Inter", "Milan", match.StatusLive)}, nil).
		Once()
	source := newsmock.NewSource(t)
	source.On("ListNews", mock.Anything).Return(nil, errors.New("quota exceeded")).Once()

	matches := NewMatchService(NewMatchResolver(logging.NewNop(), provider), logging.NewNop())
	feed, err := NewFeedService(matches, NewNewsService(source, logging.NewNop())).Home(context.Background())
	if err != nil {
		t.Fatalf("home: %v", err)
	}
	if len(feed.Matches) != 1 {
		t.Fatalf("expected matches to survive news failure, got %d", len(feed.Matches))
	}
	if feed.News == nil || len(feed.News) != 0 {
		t.Fatalf("expected empty news, got %v", feed.News)
	}
}

func TestFeedService_Home_MatchFailureKeepsNews(t *testing.T) {
	t.Parallel()

	provider := namedProvider(t, "apifootball")
	provider.On("ListMatches", mock.Anything).Return(nil, errors.New("down")).Once()
	source := newsmock.NewSource(t)
	source.On("ListNews", mock.Anything).Return([]news.Article{{ID: "n1", Title: "Derby day"}}, nil).Once()

	matches := NewMatchService(NewMatchResolver(logging.NewNop(), provider), logging.NewNop())
	feed, _ := NewFeedService(matches, NewNewsService(source, logging.NewNop())).Home(context.Background())
	if len(feed.Matches) != 0 || len(feed.News) != 1 {
		t.Fatalf("unexpected feed %+v", feed)
	}
}

func TestHighlightService_FiltersByLeague(t *testing.T) {
	t.Parallel()

	source := highlightmock.NewSource(t)
	source.On("ListHighlights", mock.Anything).Return([]highlight.Highlight{
		{ID: "hl-1", League: "ENGLAND: Premier League"},
		{ID: "hl-2", League: "ITALY: Serie A"},
	}, nil).Times(2)

	service := NewHighlightService(source, logging.NewNop())

	all, _ := service.List(context.Background(), "")
	if len(all) != 2 {
		t.Fatalf("expected all highlights, got %d", len(all))
	}
	filtered, _ := service.List(context.Background(), "italy: serie a")
	if len(filtered) != 1 || filtered[0].ID != "hl-2" {
		t.Fatalf("unexpected filtered highlights %+v", filtered)
	}
}

func TestHighlightService_SourceErrorIsEmpty(t *testing.T) {
	t.Parallel()

	source := highlightmock.NewSource(t)
	source.On("ListHighlights", mock.Anything).Return(nil, errors.New("bad json")).Once()

	got, err := NewHighlightService(source, logging.NewNop()).List(context.Background(), "")
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("expected empty list, got %v err=%v", got, err)
	}
}
