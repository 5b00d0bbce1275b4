package mediastack

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/goalquest/internal/domain/news"
	"github.com/riskibarqy/goalquest/internal/platform/id"
	"github.com/riskibarqy/goalquest/internal/platform/logging"
	"github.com/riskibarqy/goalquest/internal/platform/upstream"
)

func newTestClient(t *testing.T, body string) *Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/news" || q.Get("access_key") != "key-1" {
			t.Errorf("unexpected request %s", r.URL.String())
		}
		if q.Get("keywords") != "football,soccer" || q.Get("languages") != "en" || q.Get("sort") != "published_desc" || q.Get("limit") != "20" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return NewClient(ClientConfig{BaseURL: srv.URL, APIKey: "key-1", Logger: logging.NewNop()})
}

func TestListNews_MapsArticles(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, `{"pagination":{"limit":20,"offset":0,"count":3,"total":3},"data":[
		{"title":"Saka stars again","description":"<p>Arsenal winger <b>shines</b> &amp; scores</p>","url":"https://example.com/a","source":"BBC","image":null,"published_at":"2024-11-10T12:00:00+00:00"},
		{"title":"","description":"no title","url":"https://example.com/b","source":"BBC"},
		{"title":"No link","description":"missing url","url":"","source":"BBC"}
	]}`)

	got, err := client.ListNews(context.Background())
	if err != nil {
		t.Fatalf("list news: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected incomplete articles dropped, got %d", len(got))
	}
	article := got[0]
	if article.ID != id.FromURL("https://example.com/a") {
		t.Fatalf("expected url-derived id, got %q", article.ID)
	}
	if article.ImageURL != news.PlaceholderImage {
		t.Fatalf("expected placeholder image, got %q", article.ImageURL)
	}
	if article.Summary != "Arsenal winger shines & scores" {
		t.Fatalf("expected stripped summary, got %q", article.Summary)
	}
	if article.Source != "BBC" || article.Date != "2024-11-10T12:00:00+00:00" {
		t.Fatalf("unexpected article %+v", article)
	}
}

func TestListNews_ErrorObjectIsInvalidShape(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, `{"error":{"code":"invalid_access_key","message":"You have not supplied a valid API Access Key."}}`)
	_, err := client.ListNews(context.Background())
	if !crerr.Is(err, upstream.ErrInvalidShape) {
		t.Fatalf("expected invalid shape, got %v", err)
	}
}

func TestListNews_MissingKeyIsEmpty(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{BaseURL: "http://127.0.0.1:1", Logger: logging.NewNop()})
	got, err := client.ListNews(context.Background())
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty result, got %v err=%v", got, err)
	}
}

func TestPlainText(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":                              "",
		"plain words":                   "plain words",
		"<div>One<br/>\n  Two</div>":    "OneTwo",
		"Fish &amp; chips":              "Fish & chips",
		"<p>First</p> <p>Second</p>":    "First Second",
	}
	for in, want := range tests {
		if got := plainText(in); got != want {
			t.Fatalf("plainText(%q)=%q want=%q", in, got, want)
		}
	}
}
