package match

import "context"

// Provider is one source of matches. GetMatch takes the provider token (the id
// without IDPrefix) and reports a miss with ok=false rather than an error.
type Provider interface {
	Name() string
	ListMatches(ctx context.Context) ([]Match, error)
	GetMatch(ctx context.Context, token string) (Match, bool, error)
}

// FixtureSource lists upcoming matches for one application league.
type FixtureSource interface {
	ListFixtures(ctx context.Context, leagueID string, from, to string) ([]Match, error)
}
