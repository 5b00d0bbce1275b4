package app

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/goalquest/external/apifootball"
	"github.com/riskibarqy/goalquest/external/insights"
	"github.com/riskibarqy/goalquest/external/mediastack"
	"github.com/riskibarqy/goalquest/external/scorebat"
	"github.com/riskibarqy/goalquest/external/sportmonks"
	"github.com/riskibarqy/goalquest/internal/config"
	"github.com/riskibarqy/goalquest/internal/domain/league"
	"github.com/riskibarqy/goalquest/internal/domain/match"
	"github.com/riskibarqy/goalquest/internal/domain/standing"
	"github.com/riskibarqy/goalquest/internal/interfaces/httpapi"
	"github.com/riskibarqy/goalquest/internal/platform/logging"
	"github.com/riskibarqy/goalquest/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Container holds the services shared by the HTTP API and the CLI.
type Container struct {
	Leagues     *league.Catalog
	Resolver    *usecase.MatchResolver
	Matches     *usecase.MatchService
	Highlights  *usecase.HighlightService
	Standings   *usecase.StandingService
	News        *usecase.NewsService
	Fixtures    *usecase.FixtureService
	Feed        *usecase.FeedService
	Predictions *usecase.PredictionService
}

// newUpstreamHTTPClient builds the client shared by every provider adapter.
// Outbound calls get client spans under the inbound request's trace.
func newUpstreamHTTPClient(cfg config.Config) *http.Client {
	return &http.Client{
		Timeout: cfg.UpstreamTimeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport,
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return "upstream " + r.Method + " " + r.URL.Host
			}),
		),
	}
}

func NewContainer(cfg config.Config, logger *logging.Logger) (*Container, error) {
	if logger == nil {
		logger = logging.Default()
	}

	catalog, err := config.LoadLeagueCatalog(cfg.LeagueTableFile)
	if err != nil {
		return nil, err
	}

	httpClient := newUpstreamHTTPClient(cfg)

	scorebatClient := scorebat.NewClient(scorebat.ClientConfig{
		HTTPClient:     httpClient,
		BaseURL:        cfg.ScorebatBaseURL,
		Token:          cfg.ScorebatAPIToken,
		Timeout:        cfg.UpstreamTimeout,
		Logger:         logger,
		CircuitBreaker: cfg.UpstreamCircuit,
	})
	apiFootballClient := apifootball.NewClient(apifootball.ClientConfig{
		HTTPClient:     httpClient,
		BaseURL:        cfg.APIFootballBaseURL,
		APIKey:         cfg.APIFootballKey,
		Timeout:        cfg.UpstreamTimeout,
		Logger:         logger,
		CircuitBreaker: cfg.UpstreamCircuit,
		Leagues:        catalog,
	})
	var sportMonksClient *sportmonks.Client
	if cfg.SportMonksEnabled {
		sportMonksClient = sportmonks.NewClient(sportmonks.ClientConfig{
			HTTPClient:     httpClient,
			BaseURL:        cfg.SportMonksBaseURL,
			Token:          cfg.SportMonksToken,
			Timeout:        cfg.UpstreamTimeout,
			Logger:         logger,
			CircuitBreaker: cfg.UpstreamCircuit,
			Leagues:        catalog,
		})
	}
	newsClient := mediastack.NewClient(mediastack.ClientConfig{
		HTTPClient:     httpClient,
		BaseURL:        cfg.MediastackBaseURL,
		APIKey:         cfg.MediastackAPIKey,
		Timeout:        cfg.UpstreamTimeout,
		Logger:         logger,
		CircuitBreaker: cfg.UpstreamCircuit,
	})
	insightsClient := insights.NewClient(insights.ClientConfig{
		URL:            cfg.InsightsURL,
		Token:          cfg.InsightsToken,
		Timeout:        cfg.InsightsTimeout,
		Logger:         logger,
		CircuitBreaker: cfg.UpstreamCircuit,
	})

	providers := orderProviders(cfg.MatchProviderOrder, map[string]match.Provider{
		config.ProviderScorebat:    scorebatClient,
		config.ProviderAPIFootball: apiFootballClient,
		config.ProviderSportMonks:  optionalProvider(sportMonksClient),
	})
	standingProviders := []standing.Provider{apiFootballClient}
	if sportMonksClient != nil {
		standingProviders = append(standingProviders, sportMonksClient)
	}

	resolver := usecase.NewMatchResolver(logger, providers...)
	matchSvc := usecase.NewMatchService(resolver, logger)
	newsSvc := usecase.NewNewsService(newsClient, logger)

	logger.Info("match providers configured", "order", providerNames(providers))

	return &Container{
		Leagues:     catalog,
		Resolver:    resolver,
		Matches:     matchSvc,
		Highlights:  usecase.NewHighlightService(scorebatClient, logger),
		Standings:   usecase.NewStandingService(catalog, logger, standingProviders...),
		News:        newsSvc,
		Fixtures:    usecase.NewFixtureService(catalog, apiFootballClient, cfg.FixtureMaxWorkers, logger),
		Feed:        usecase.NewFeedService(matchSvc, newsSvc),
		Predictions: usecase.NewPredictionService(insightsClient, resolver, logger),
	}, nil
}

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	container, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("build services: %w", err)
	}

	handler := httpapi.NewHandler(httpapi.Services{
		Matches:     container.Matches,
		Highlights:  container.Highlights,
		Standings:   container.Standings,
		News:        container.News,
		Fixtures:    container.Fixtures,
		Feed:        container.Feed,
		Predictions: container.Predictions,
	}, cfg.LivePollInterval, cfg.CORSAllowedOrigins, logger)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterOptions{
		SwaggerEnabled:      cfg.SwaggerEnabled,
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		CaptureRequestBody:  cfg.UptraceEnabled && cfg.UptraceCaptureRequestBody,
		RequestBodyMaxBytes: cfg.UptraceRequestBodyMaxBytes,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

// orderProviders keeps the configured order and skips names without a
// client, such as sportmonks while it is disabled.
func orderProviders(order []string, byName map[string]match.Provider) []match.Provider {
	out := make([]match.Provider, 0, len(order))
	for _, name := range order {
		if provider := byName[name]; provider != nil {
			out = append(out, provider)
		}
	}
	return out
}

// optionalProvider avoids storing a typed nil pointer in the interface.
func optionalProvider(client *sportmonks.Client) match.Provider {
	if client == nil {
		return nil
	}
	return client
}

func providerNames(providers []match.Provider) []string {
	names := make([]string, 0, len(providers))
	for _, p := range providers {
		names = append(names, p.Name())
	}
	return names
}
