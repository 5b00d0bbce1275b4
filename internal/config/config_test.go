package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/goalquest/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "foo=bar, uptrace-dsn='https://token@api.uptrace.dev/1'")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/1" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("UPSTREAM_TIMEOUT", "")
	t.Setenv("LIVE_POLL_INTERVAL", "")
	t.Setenv("MATCH_PROVIDER_ORDER", "")
	t.Setenv("APP_LOG_LEVEL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UpstreamTimeout != 10*time.Second {
		t.Fatalf("unexpected UpstreamTimeout: %s", cfg.UpstreamTimeout)
	}
	if cfg.LivePollInterval != 30*time.Second {
		t.Fatalf("unexpected LivePollInterval: %s", cfg.LivePollInterval)
	}
	if len(cfg.MatchProviderOrder) != 3 || cfg.MatchProviderOrder[0] != ProviderScorebat {
		t.Fatalf("unexpected MatchProviderOrder: %v", cfg.MatchProviderOrder)
	}
	if !cfg.UpstreamCircuit.Enabled || cfg.UpstreamCircuit.FailureThreshold != 5 {
		t.Fatalf("unexpected UpstreamCircuit: %+v", cfg.UpstreamCircuit)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected LogLevel: %s", cfg.LogLevel)
	}
}

func TestLoad_SwaggerDefaultsByEnv(t *testing.T) {
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("SWAGGER_ENABLED", "")

	t.Setenv("APP_ENV", EnvDev)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load dev config: %v", err)
	}
	if !cfg.SwaggerEnabled {
		t.Fatalf("expected swagger enabled outside prod")
	}

	t.Setenv("APP_ENV", EnvProd)
	cfg, err = Load()
	if err != nil {
		t.Fatalf("load prod config: %v", err)
	}
	if cfg.SwaggerEnabled {
		t.Fatalf("expected swagger disabled in prod")
	}
}

func TestLoad_SportMonksRequiresToken(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("SPORTMONKS_ENABLED", "true")
	t.Setenv("SPORTMONKS_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when SPORTMONKS_ENABLED=true without SPORTMONKS_TOKEN")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"UPSTREAM_TIMEOUT":               "-1s",
		"UPSTREAM_CIRCUIT_FAILURE_COUNT": "0",
		"LIVE_POLL_INTERVAL":             "10ms",
		"FIXTURE_MAX_WORKERS":            "zero",
		"MATCH_PROVIDER_ORDER":           "scorebat,espn",
		"APP_READ_TIMEOUT":               "soon",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv("UPTRACE_ENABLED", "false")
			t.Setenv(key, value)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}
}

func TestParseProviderOrder(t *testing.T) {
	t.Parallel()

	got, err := parseProviderOrder(" APIFootball , scorebat ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 2 || got[0] != ProviderAPIFootball || got[1] != ProviderScorebat {
		t.Fatalf("unexpected order: %v", got)
	}
	if _, err := parseProviderOrder("scorebat,scorebat"); err == nil {
		t.Fatalf("expected duplicate provider error")
	}
}

func TestLoadLeagueCatalog_EmbeddedDefault(t *testing.T) {
	t.Parallel()

	catalog, err := LoadLeagueCatalog("")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	entry, ok := catalog.ByID("39")
	if !ok {
		t.Fatalf("expected premier league in default table")
	}
	if entry.APIFootballID != "152" || entry.SportMonksLeagueID != 8 {
		t.Fatalf("unexpected provider ids: %+v", entry)
	}
	if _, ok := catalog.ByAPIFootballID("302"); !ok {
		t.Fatalf("expected la liga apifootball mapping")
	}
	if len(catalog.Entries()) != 5 {
		t.Fatalf("expected 5 leagues, got %d", len(catalog.Entries()))
	}
}

func TestLoadLeagueCatalog_FromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "leagues.yaml")
	content := `
leagues:
  - id: "999"
    name: Test League
    default_season: "2025"
    apifootball:
      league_id: "1"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	catalog, err := LoadLeagueCatalog(path)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if _, ok := catalog.ByID("999"); !ok {
		t.Fatalf("expected league from file")
	}
}

func TestParseLeagueCatalog_RejectsInvalidRows(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"missing name":   "leagues:\n  - id: \"1\"\n    default_season: \"2025\"\n",
		"empty table":    "leagues: []\n",
		"bad season id":  "leagues:\n  - id: \"1\"\n    name: X\n    default_season: \"2025\"\n    sportmonks:\n      seasons:\n        \"2025\": 0\n",
		"duplicate ids":  "leagues:\n  - id: \"1\"\n    name: X\n    default_season: \"2025\"\n  - id: \"1\"\n    name: Y\n    default_season: \"2025\"\n",
		"not yaml":       "leagues: [",
		"non numeric id": "leagues:\n  - id: \"1\"\n    name: X\n    default_season: \"2025\"\n    apifootball:\n      league_id: abc\n",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if _, err := ParseLeagueCatalog([]byte(raw)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
