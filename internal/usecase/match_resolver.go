package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/goalquest/internal/domain/match"
	"github.com/riskibarqy/goalquest/internal/platform/logging"
)

// MatchResolver looks a match id up across providers in priority order.
// Provider failures count as misses; only the first hit is returned.
type MatchResolver struct {
	providers []match.Provider
	logger    *logging.Logger
}

func NewMatchResolver(logger *logging.Logger, providers ...match.Provider) *MatchResolver {
	if logger == nil {
		logger = logging.Default()
	}
	kept := make([]match.Provider, 0, len(providers))
	for _, p := range providers {
		if p != nil {
			kept = append(kept, p)
		}
	}
	return &MatchResolver{providers: kept, logger: logger.Named("match_resolver")}
}

func (r *MatchResolver) Providers() []match.Provider {
	out := make([]match.Provider, len(r.providers))
	copy(out, r.providers)
	return out
}

// Resolve returns ok=false when no provider knows the id. The returned match
// always carries the requested id in canonical form.
func (r *MatchResolver) Resolve(ctx context.Context, matchID string) (match.Match, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchResolver.Resolve")
	defer span.End()

	token := match.Token(matchID)
	if strings.TrimSpace(token) == "" {
		return match.Match{}, false, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	canonical := match.NewID(token)

	for _, provider := range r.providers {
		if err := ctx.Err(); err != nil {
			return match.Match{}, false, nil
		}

		m, ok, err := provider.GetMatch(ctx, token)
		if err != nil {
			r.logger.WarnContext(ctx, "match provider failed, trying next", "provider", provider.Name(), "match_id", canonical, "error", err)
			continue
		}
		if !ok {
			r.logger.DebugContext(ctx, "match provider miss", "provider", provider.Name(), "match_id", canonical)
			continue
		}

		m.ID = canonical
		if m.Source == "" {
			m.Source = provider.Name()
		}
		return m, true, nil
	}

	r.logger.InfoContext(ctx, "match not found", "match_id", canonical, "providers", len(r.providers))
	return match.Match{}, false, nil
}
