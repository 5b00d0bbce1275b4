package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/goalquest/internal/domain/league"
	"github.com/riskibarqy/goalquest/internal/domain/standing"
	"github.com/riskibarqy/goalquest/internal/platform/logging"
)

// StandingService serves league tables from the first provider that returns
// rows for the requested league and season.
type StandingService struct {
	leagues   league.Repository
	providers []standing.Provider
	logger    *logging.Logger
}

func NewStandingService(leagues league.Repository, logger *logging.Logger, providers ...standing.Provider) *StandingService {
	if logger == nil {
		logger = logging.Default()
	}
	kept := make([]standing.Provider, 0, len(providers))
	for _, p := range providers {
		if p != nil {
			kept = append(kept, p)
		}
	}
	return &StandingService{leagues: leagues, providers: kept, logger: logger.Named("standing_service")}
}

func (s *StandingService) ListLeagues(ctx context.Context) ([]league.League, error) {
	entries, err := s.leagues.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	out := make([]league.League, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.League())
	}
	return out, nil
}

// List returns an empty table for leagues missing from the catalog.
func (s *StandingService) List(ctx context.Context, leagueID, season string) ([]standing.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.List")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	_, exists, err := s.leagues.GetByID(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		s.logger.WarnContext(ctx, "unknown league requested", "league_id", leagueID)
		return []standing.Standing{}, nil
	}

	season = strings.TrimSpace(season)
	for _, provider := range s.providers {
		rows, err := provider.ListStandings(ctx, leagueID, season)
		if err != nil {
			s.logger.WarnContext(ctx, "standings provider failed, trying next", "provider", provider.Name(), "league_id", leagueID, "error", err)
			continue
		}
		if len(rows) == 0 {
			continue
		}
		return rows, nil
	}
	return []standing.Standing{}, nil
}
