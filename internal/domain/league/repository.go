package league

import "context"

// Repository exposes the configured league catalog to use cases.
type Repository interface {
	List(ctx context.Context) ([]Entry, error)
	GetByID(ctx context.Context, leagueID string) (Entry, bool, error)
}
