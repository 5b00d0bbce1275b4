package usecase

import (
	"testing"

	"github.com/riskibarqy/goalquest/internal/domain/league"
)

func testCatalog(t *testing.T) *league.Catalog {
	t.Helper()

	catalog, err := league.NewCatalog([]league.Entry{
		{ID: "39", Name: "Premier League", Country: "England", DefaultSeason: "2024", APIFootballID: "152"},
		{ID: "135", Name: "Serie A", Country: "Italy", DefaultSeason: "2024", APIFootballID: "207"},
	})
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	return catalog
}
