package scorebat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/goalquest/internal/domain/league"
	"github.com/riskibarqy/goalquest/internal/domain/match"
	"github.com/riskibarqy/goalquest/internal/platform/logging"
	"github.com/riskibarqy/goalquest/internal/platform/upstream"
)

const feedFixture = `{
  "response": [
    {
      "title": "Arsenal - Chelsea",
      "competition": "ENGLAND: Premier League",
      "competitionUrl": "https://www.scorebat.com/live-stream/england-premier-league/",
      "matchviewUrl": "https://www.scorebat.com/embed/matchview/1546090/",
      "thumbnail": "https://www.scorebat.com/og/m/og1546090.jpeg",
      "date": "2024-11-10T16:30:00+0000",
      "videos": [
        {"id": "v1", "title": "Highlights", "embed": "<iframe src='https://www.scorebat.com/embed/v/v1/'></iframe>"},
        {"id": "v2", "title": "Goal 1", "embed": "<iframe src='https://www.scorebat.com/embed/v/v2/'></iframe>"}
      ]
    },
    {
      "title": "Weekly goals compilation",
      "competition": "ENGLAND: Premier League",
      "date": "2024-11-10T20:00:00+0000",
      "videos": []
    },
    {
      "title": "Lazio - Roma",
      "competition": "ITALY: Serie A",
      "competitionUrl": "https://www.scorebat.com/",
      "date": "2024-11-10T19:45:00+0000",
      "matchstatus": "LIVE"
    }
  ]
}`

func newTestClient(t *testing.T, body string, hits *int32) *Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		if r.URL.Path != "/feed/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-rapidapi-key") != "token-1" {
			t.Errorf("missing token header")
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return NewClient(ClientConfig{BaseURL: srv.URL, Token: "token-1", Logger: logging.NewNop()})
}

func TestListMatches_ArsenalChelseaDefaults(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, feedFixture, nil)
	matches, err := client.ListMatches(context.Background())
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches after title filter, got %d", len(matches))
	}

	got := matches[0]
	if got.Team1.Name != "Arsenal" || got.Team2.Name != "Chelsea" {
		t.Fatalf("unexpected teams %q vs %q", got.Team1.Name, got.Team2.Name)
	}
	if got.Score1 != 0 || got.Score2 != 0 {
		t.Fatalf("expected 0-0, got %d-%d", got.Score1, got.Score2)
	}
	if got.Status != match.StatusCompleted {
		t.Fatalf("expected Completed, got %s", got.Status)
	}
	if got.Venue != match.UnknownVenue {
		t.Fatalf("expected unknown venue, got %q", got.Venue)
	}
	if got.League.ID != "england-premier-league" {
		t.Fatalf("unexpected league id %q", got.League.ID)
	}
	if got.Team1.ID != "arsenal" || got.Team1.LogoURL != "https://via.placeholder.com/50?text=A" {
		t.Fatalf("unexpected team1 %+v", got.Team1)
	}
	if err := got.Validate(); err != nil {
		t.Fatalf("expected valid match: %v", err)
	}

	live := matches[1]
	if live.Status != match.StatusLive {
		t.Fatalf("expected matchstatus LIVE to map to Live, got %s", live.Status)
	}
	if live.League.ID != league.UnknownID {
		t.Fatalf("expected unknown league id, got %q", live.League.ID)
	}
	if live.Embed != "" {
		t.Fatalf("expected empty embed without videos")
	}
}

func TestListMatches_IDsAreStableAcrossCalls(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, feedFixture, nil)
	first, err := client.ListMatches(context.Background())
	if err != nil {
		t.Fatalf("first list: %v", err)
	}
	second, err := client.ListMatches(context.Background())
	if err != nil {
		t.Fatalf("second list: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical output for identical input")
	}
}

func TestListMatches_IDsIgnoreMatchviewURL(t *testing.T) {
	t.Parallel()

	moved := strings.Replace(feedFixture, "matchview/1546090/", "matchview/9999999/", 1)
	original, err := newTestClient(t, feedFixture, nil).ListMatches(context.Background())
	if err != nil {
		t.Fatalf("list original feed: %v", err)
	}
	relinked, err := newTestClient(t, moved, nil).ListMatches(context.Background())
	if err != nil {
		t.Fatalf("list relinked feed: %v", err)
	}
	if original[0].ID != relinked[0].ID {
		t.Fatalf("expected id derived from title and date only, got %q and %q", original[0].ID, relinked[0].ID)
	}
	if strings.Contains(original[0].ID, "1546090") {
		t.Fatalf("expected no numeric matchview id in %q", original[0].ID)
	}
}

func TestListHighlights_LinksMatchAndKeepsVideos(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, feedFixture, nil)
	items, err := client.ListHighlights(context.Background())
	if err != nil {
		t.Fatalf("list highlights: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 highlights, got %d", len(items))
	}

	matches, err := client.ListMatches(context.Background())
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if items[0].MatchID != matches[0].ID {
		t.Fatalf("expected highlight to link match %q, got %q", matches[0].ID, items[0].MatchID)
	}
	if len(items[0].Videos) != 2 || items[0].Embed != items[0].Videos[0].Embed {
		t.Fatalf("unexpected videos %+v", items[0].Videos)
	}
	if got := items[0].Videos[1].EmbedURL; got != "https://www.scorebat.com/embed/v/v2/" {
		t.Fatalf("unexpected embed url %q", got)
	}
	if items[0].ID[:3] != "hl-" {
		t.Fatalf("unexpected highlight id %q", items[0].ID)
	}
}

func TestGetMatch_ScansFeedForExactID(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, feedFixture, nil)
	matches, err := client.ListMatches(context.Background())
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}

	got, ok, err := client.GetMatch(context.Background(), match.Token(matches[0].ID))
	if err != nil || !ok {
		t.Fatalf("expected hit, ok=%v err=%v", ok, err)
	}
	if got.Title() != "Arsenal - Chelsea" {
		t.Fatalf("unexpected match %q", got.Title())
	}

	_, ok, err = client.GetMatch(context.Background(), "does-not-exist")
	if err != nil || ok {
		t.Fatalf("expected clean miss, ok=%v err=%v", ok, err)
	}
}

func TestFetchFeed_ErrorEnvelopeIsInvalidShape(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, `{"error":"invalid token"}`, nil)
	_, err := client.ListMatches(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	if !crerr.Is(err, upstream.ErrInvalidShape) {
		t.Fatalf("expected invalid shape marker, got %v", err)
	}
}

func TestFetchFeed_MissingTokenSkipsRequest(t *testing.T) {
	t.Parallel()

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL, Logger: logging.NewNop()})
	items, err := client.ListHighlights(context.Background())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(items) != 0 || atomic.LoadInt32(&hits) != 0 {
		t.Fatalf("expected empty result without request, items=%d hits=%d", len(items), hits)
	}
}

func TestMapStatus(t *testing.T) {
	t.Parallel()

	tests := map[string]match.Status{
		"":          match.StatusCompleted,
		"FT":        match.StatusCompleted,
		"finished":  match.StatusCompleted,
		"live":      match.StatusLive,
		"POSTPONED": match.StatusPostponed,
		"Canceled":  match.StatusCancelled,
		"CANCELLED": match.StatusCancelled,
	}
	for raw, want := range tests {
		if got := mapStatus(raw); got != want {
			t.Fatalf("mapStatus(%q)=%s want=%s", raw, got, want)
		}
	}
}

func TestEmbedSource(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"<div><iframe src=\"https://example.com/v/1\" frameborder=0></iframe></div>": "https://example.com/v/1",
		"<iframe></iframe>":  "",
		"plain text":         "",
		"":                   "",
	}
	for in, want := range cases {
		if got := embedSource(in); got != want {
			t.Fatalf("embedSource(%q) = %q, want %q", in, got, want)
		}
	}
}
