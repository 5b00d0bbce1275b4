package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/goalquest/internal/platform/logging"
	"github.com/riskibarqy/goalquest/internal/platform/resilience"
)

// Config stores runtime configuration for the service and the CLI.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	CORSAllowedOrigins         []string
	SwaggerEnabled             bool
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceCaptureRequestBody  bool
	UptraceRequestBodyMaxBytes int
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	UpstreamTimeout            time.Duration
	UpstreamCircuit            resilience.CircuitBreakerConfig
	ScorebatBaseURL            string
	ScorebatAPIToken           string
	APIFootballBaseURL         string
	APIFootballKey             string
	SportMonksEnabled          bool
	SportMonksBaseURL          string
	SportMonksToken            string
	MediastackBaseURL          string
	MediastackAPIKey           string
	InsightsURL                string
	InsightsToken              string
	InsightsTimeout            time.Duration
	LeagueTableFile            string
	LivePollInterval           time.Duration
	FixtureMaxWorkers          int
	MatchProviderOrder         []string
	LogLevel                   logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}
	swaggerEnabled, err := strconv.ParseBool(getEnv("SWAGGER_ENABLED", swaggerDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceCaptureRequestBody, err := strconv.ParseBool(getEnv("UPTRACE_CAPTURE_REQUEST_BODY", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_CAPTURE_REQUEST_BODY: %w", err)
	}
	uptraceRequestBodyMaxBytes, err := getEnvAsInt("UPTRACE_REQUEST_BODY_MAX_BYTES", 8192)
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_REQUEST_BODY_MAX_BYTES: %w", err)
	}
	if uptraceRequestBodyMaxBytes <= 0 {
		return Config{}, fmt.Errorf("UPTRACE_REQUEST_BODY_MAX_BYTES must be > 0")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	upstreamTimeout, err := time.ParseDuration(getEnv("UPSTREAM_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPSTREAM_TIMEOUT: %w", err)
	}
	if upstreamTimeout <= 0 {
		return Config{}, fmt.Errorf("UPSTREAM_TIMEOUT must be > 0")
	}
	upstreamCircuitEnabled, err := strconv.ParseBool(getEnv("UPSTREAM_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPSTREAM_CIRCUIT_ENABLED: %w", err)
	}
	upstreamCircuitFailureCount, err := getEnvAsInt("UPSTREAM_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse UPSTREAM_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if upstreamCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("UPSTREAM_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	upstreamCircuitOpenTimeout, err := time.ParseDuration(getEnv("UPSTREAM_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPSTREAM_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if upstreamCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("UPSTREAM_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	upstreamCircuitHalfOpenMaxReq, err := getEnvAsInt("UPSTREAM_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse UPSTREAM_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if upstreamCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("UPSTREAM_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	sportMonksEnabled, err := strconv.ParseBool(getEnv("SPORTMONKS_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SPORTMONKS_ENABLED: %w", err)
	}
	sportMonksToken := strings.TrimSpace(getEnv("SPORTMONKS_TOKEN", ""))
	if sportMonksEnabled && sportMonksToken == "" {
		return Config{}, fmt.Errorf("SPORTMONKS_TOKEN is required when SPORTMONKS_ENABLED=true")
	}

	insightsTimeout, err := time.ParseDuration(getEnv("INSIGHTS_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse INSIGHTS_TIMEOUT: %w", err)
	}
	if insightsTimeout <= 0 {
		return Config{}, fmt.Errorf("INSIGHTS_TIMEOUT must be > 0")
	}

	livePollInterval, err := time.ParseDuration(getEnv("LIVE_POLL_INTERVAL", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LIVE_POLL_INTERVAL: %w", err)
	}
	if livePollInterval < time.Second {
		return Config{}, fmt.Errorf("LIVE_POLL_INTERVAL must be >= 1s")
	}

	fixtureMaxWorkers, err := getEnvAsInt("FIXTURE_MAX_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse FIXTURE_MAX_WORKERS: %w", err)
	}
	if fixtureMaxWorkers < 1 {
		return Config{}, fmt.Errorf("FIXTURE_MAX_WORKERS must be >= 1")
	}

	providerOrder, err := parseProviderOrder(getEnv("MATCH_PROVIDER_ORDER", "scorebat,apifootball,sportmonks"))
	if err != nil {
		return Config{}, fmt.Errorf("parse MATCH_PROVIDER_ORDER: %w", err)
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "goalquest-api"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("APP_HTTP_ADDR", ":8080"),
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		SwaggerEnabled:             swaggerEnabled,
		ReadTimeout:                readTimeout,
		WriteTimeout:               writeTimeout,
		PprofEnabled:               pprofEnabled,
		PprofAddr:                  pprofAddr,
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		UptraceCaptureRequestBody:  uptraceCaptureRequestBody,
		UptraceRequestBodyMaxBytes: uptraceRequestBodyMaxBytes,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
		UpstreamTimeout:            upstreamTimeout,
		UpstreamCircuit: resilience.CircuitBreakerConfig{
			Enabled:          upstreamCircuitEnabled,
			FailureThreshold: upstreamCircuitFailureCount,
			OpenTimeout:      upstreamCircuitOpenTimeout,
			HalfOpenMaxReq:   upstreamCircuitHalfOpenMaxReq,
		},
		ScorebatBaseURL:    strings.TrimSpace(getEnv("SCOREBAT_BASE_URL", "https://www.scorebat.com/video-api/v3")),
		ScorebatAPIToken:   strings.TrimSpace(getEnv("SCOREBAT_API_TOKEN", "")),
		APIFootballBaseURL: strings.TrimSpace(getEnv("APIFOOTBALL_BASE_URL", "https://apiv3.apifootball.com")),
		APIFootballKey:     strings.TrimSpace(getEnv("APIFOOTBALL_KEY", "")),
		SportMonksEnabled:  sportMonksEnabled,
		SportMonksBaseURL:  strings.TrimSpace(getEnv("SPORTMONKS_BASE_URL", "https://api.sportmonks.com/v3/football")),
		SportMonksToken:    sportMonksToken,
		MediastackBaseURL:  strings.TrimSpace(getEnv("MEDIASTACK_BASE_URL", "http://api.mediastack.com/v1")),
		MediastackAPIKey:   strings.TrimSpace(getEnv("MEDIASTACK_API_KEY", "")),
		InsightsURL:        strings.TrimSpace(getEnv("INSIGHTS_URL", "")),
		InsightsToken:      strings.TrimSpace(getEnv("INSIGHTS_TOKEN", "")),
		InsightsTimeout:    insightsTimeout,
		LeagueTableFile:    strings.TrimSpace(getEnv("LEAGUE_TABLE_FILE", "")),
		LivePollInterval:   livePollInterval,
		FixtureMaxWorkers:  fixtureMaxWorkers,
		MatchProviderOrder: providerOrder,
		LogLevel:           logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

// Provider names accepted in MATCH_PROVIDER_ORDER.
const (
	ProviderScorebat    = "scorebat"
	ProviderAPIFootball = "apifootball"
	ProviderSportMonks  = "sportmonks"
)

func parseProviderOrder(raw string) ([]string, error) {
	items := splitCSV(strings.ToLower(raw))
	if len(items) == 0 {
		return nil, fmt.Errorf("at least one provider is required")
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch item {
		case ProviderScorebat, ProviderAPIFootball, ProviderSportMonks:
		default:
			return nil, fmt.Errorf("unknown provider %q", item)
		}
		if _, ok := seen[item]; ok {
			return nil, fmt.Errorf("duplicate provider %q", item)
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
