package standing

import (
	"context"

	"github.com/riskibarqy/goalquest/internal/domain/team"
)

// Standing is one row of a league table.
type Standing struct {
	Rank           int
	Team           team.Team
	Points         int
	Played         int
	Win            int
	Draw           int
	Lose           int
	GoalDifference int
}

// Provider returns a league table for an application league id and a season
// label. An empty season means the provider's current season.
type Provider interface {
	Name() string
	ListStandings(ctx context.Context, leagueID, season string) ([]Standing, error)
}
