package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sourcegraph/conc/iter"

	"github.com/riskibarqy/goalquest/internal/domain/league"
	"github.com/riskibarqy/goalquest/internal/domain/match"
	"github.com/riskibarqy/goalquest/internal/platform/logging"
)

// MatchFilter narrows a match list. Empty fields match everything.
type MatchFilter struct {
	League string
	Query  string
}

type MatchService struct {
	resolver *MatchResolver
	logger   *logging.Logger
}

func NewMatchService(resolver *MatchResolver, logger *logging.Logger) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchService{resolver: resolver, logger: logger.Named("match_service")}
}

// ListLiveOrRecent asks every provider concurrently and returns live matches
// first, then everything else in provider order. A failing provider only
// removes its own matches.
func (s *MatchService) ListLiveOrRecent(ctx context.Context, filter MatchFilter) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListLiveOrRecent")
	defer span.End()

	providers := s.resolver.Providers()
	batches := iter.Map(providers, func(p *match.Provider) []match.Match {
		provider := *p
		items, err := provider.ListMatches(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "list matches failed", "provider", provider.Name(), "error", err)
			return nil
		}
		return items
	})

	seen := make(map[string]struct{})
	out := make([]match.Match, 0)
	for _, batch := range batches {
		for _, m := range batch {
			if _, dup := seen[m.ID]; dup {
				continue
			}
			if !filter.matches(m) {
				continue
			}
			seen[m.ID] = struct{}{}
			out = append(out, m)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Status == match.StatusLive && out[j].Status != match.StatusLive
	})
	return out, nil
}

func (s *MatchService) Get(ctx context.Context, matchID string) (match.Match, error) {
	m, ok, err := s.resolver.Resolve(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}
	if !ok {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, match.NewID(match.Token(matchID)))
	}
	return m, nil
}

func (f MatchFilter) matches(m match.Match) bool {
	if name := strings.TrimSpace(f.League); name != "" && !m.League.SameAs(league.League{Name: name}) {
		return false
	}
	query := strings.ToLower(strings.TrimSpace(f.Query))
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(m.Team1.Name), query) ||
		strings.Contains(strings.ToLower(m.Team2.Name), query) ||
		strings.Contains(strings.ToLower(m.League.Name), query)
}
