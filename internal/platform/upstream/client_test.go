package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/goalquest/internal/platform/resilience"
)

func TestClient_GetJSONDecodesAndSendsHeaders(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-rapidapi-key") != "secret-key" {
			t.Errorf("expected api key header, got %q", r.Header.Get("x-rapidapi-key"))
		}
		if r.URL.Query().Get("action") != "get_events" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := NewClient(Config{
		Name:    "test",
		BaseURL: srv.URL + "/",
		Headers: map[string]string{"x-rapidapi-key": "secret-key"},
	})

	var out struct {
		OK bool `json:"ok"`
	}
	if _, err := client.GetJSON(context.Background(), "/", url.Values{"action": {"get_events"}}, &out); err != nil {
		t.Fatalf("get json: %v", err)
	}
	if !out.OK {
		t.Fatalf("expected decoded payload")
	}
}

func TestClient_StatusErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			http.Error(w, "not here", http.StatusNotFound)
		default:
			http.Error(w, "APIkey=abc123 rejected", http.StatusServiceUnavailable)
		}
	}))
	defer srv.Close()

	client := NewClient(Config{Name: "test", BaseURL: srv.URL, SecretParams: []string{"APIkey"}})

	_, err := client.Get(context.Background(), "/missing", nil)
	if !IsStatus(err, http.StatusNotFound) {
		t.Fatalf("expected 404 status error, got %v", err)
	}
	if crerr.Is(err, ErrTransient) {
		t.Fatalf("expected 404 not to be transient")
	}

	_, err = client.Get(context.Background(), "/down", nil)
	if !crerr.Is(err, ErrTransient) {
		t.Fatalf("expected 503 to be transient, got %v", err)
	}
	if strings.Contains(err.Error(), "abc123") {
		t.Fatalf("expected secret to be redacted, got %v", err)
	}
}

func TestClient_DecodeFailureIsInvalidShape(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer srv.Close()

	client := NewClient(Config{Name: "test", BaseURL: srv.URL})
	var out []map[string]any
	_, err := client.GetJSON(context.Background(), "/", nil, &out)
	if !crerr.Is(err, ErrInvalidShape) {
		t.Fatalf("expected ErrInvalidShape, got %v", err)
	}
}

func TestClient_TimeoutOpensBreaker(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	client := NewClient(Config{
		Name:       "slow",
		BaseURL:    srv.URL,
		HTTPClient: &http.Client{Timeout: 50 * time.Millisecond},
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	if _, err := client.Get(context.Background(), "/", nil); !crerr.Is(err, ErrTransient) {
		t.Fatalf("expected transient timeout, got %v", err)
	}
	if _, err := client.Get(context.Background(), "/", nil); !crerr.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected open circuit, got %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("expected one upstream hit, got %d", got)
	}
}

func TestRedactParam(t *testing.T) {
	t.Parallel()

	got := redactParam(`GET https://x/?access_key=abc&keywords=football "access_key=zzz"`, "access_key")
	if strings.Contains(got, "abc") || strings.Contains(got, "zzz") {
		t.Fatalf("expected values redacted, got %q", got)
	}
	if !strings.Contains(got, "keywords=football") {
		t.Fatalf("expected other params kept, got %q", got)
	}
}

func TestClient_SharedRequestOutlivesCancelledLeader(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		<-release
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := NewClient(Config{Name: "shared", BaseURL: srv.URL, Timeout: 2 * time.Second})

	leaderCtx, cancelLeader := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := client.Get(leaderCtx, "/events", nil)
		leaderErr <- err
	}()
	waitFor(t, func() bool { return hits.Load() == 1 })

	type result struct {
		raw []byte
		err error
	}
	follower := make(chan result, 1)
	go func() {
		raw, err := client.Get(context.Background(), "/events", nil)
		follower <- result{raw: raw, err: err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancelLeader()
	if err := <-leaderErr; !crerr.Is(err, context.Canceled) {
		t.Fatalf("expected leader to see its own cancellation, got %v", err)
	}

	close(release)
	res := <-follower
	if res.err != nil {
		t.Fatalf("expected follower to receive the shared body, got %v", res.err)
	}
	if string(res.raw) != `{"ok":true}` {
		t.Fatalf("unexpected body %q", res.raw)
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("expected one upstream hit, got %d", got)
	}
}

func TestClient_CallerDeadlinesDoNotOpenBreaker(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(150 * time.Millisecond)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := NewClient(Config{
		Name:    "impatient",
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	for i := 0; i < 5; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
		_, err := client.Get(ctx, "/", nil)
		cancel()
		if !crerr.Is(err, context.DeadlineExceeded) {
			t.Fatalf("call %d: expected caller deadline, got %v", i, err)
		}
		if crerr.Is(err, ErrTransient) {
			t.Fatalf("call %d: caller deadline must not be transient", i)
		}
	}

	if _, err := client.Get(context.Background(), "/", nil); err != nil {
		t.Fatalf("expected request to succeed after caller deadlines, got %v", err)
	}
	if state := client.breaker.State(); state != resilience.CircuitStateClosed {
		t.Fatalf("expected closed breaker, got %s", state)
	}
}

func TestMarkTransport_CancellationIsNotTransient(t *testing.T) {
	t.Parallel()

	cancelled := markTransport(crerr.New("send request: canceled"), &url.Error{Op: "Get", URL: "http://x", Err: context.Canceled})
	if crerr.Is(cancelled, ErrTransient) {
		t.Fatalf("expected cancellation not to count against the breaker")
	}
	if !crerr.Is(cancelled, context.Canceled) {
		t.Fatalf("expected cancellation to stay visible, got %v", cancelled)
	}

	refused := markTransport(crerr.New("send request: refused"), crerr.New("connection refused"))
	if !crerr.Is(refused, ErrTransient) {
		t.Fatalf("expected transport failure to be transient")
	}
}

func TestNewClient_CopiesCallerHTTPClient(t *testing.T) {
	t.Parallel()

	shared := &http.Client{}
	client := NewClient(Config{Name: "copy", BaseURL: "http://example.invalid", HTTPClient: shared})

	if shared.Timeout != 0 {
		t.Fatalf("expected caller client untouched, got timeout %s", shared.Timeout)
	}
	if client.httpClient == shared {
		t.Fatalf("expected client to hold its own copy")
	}
	if client.httpClient.Timeout != DefaultTimeout {
		t.Fatalf("expected default timeout on the copy, got %s", client.httpClient.Timeout)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}
