package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/riskibarqy/goalquest/internal/domain/league"
)

//go:embed leagues.yaml
var defaultLeagueTable []byte

type leagueTableFile struct {
	Leagues []leagueRow `yaml:"leagues" validate:"required,min=1,dive"`
}

type leagueRow struct {
	ID            string `yaml:"id" validate:"required"`
	Name          string `yaml:"name" validate:"required"`
	Country       string `yaml:"country"`
	Logo          string `yaml:"logo" validate:"omitempty,url"`
	DefaultSeason string `yaml:"default_season" validate:"required"`
	APIFootball   struct {
		LeagueID string `yaml:"league_id" validate:"omitempty,numeric"`
	} `yaml:"apifootball"`
	SportMonks struct {
		LeagueID int64            `yaml:"league_id" validate:"gte=0"`
		Seasons  map[string]int64 `yaml:"seasons" validate:"dive,keys,required,endkeys,gt=0"`
	} `yaml:"sportmonks"`
}

// LoadLeagueCatalog reads the league table from path, or the embedded default
// when path is empty.
func LoadLeagueCatalog(path string) (*league.Catalog, error) {
	raw := defaultLeagueTable
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read LEAGUE_TABLE_FILE: %w", err)
		}
		raw = data
	}

	return ParseLeagueCatalog(raw)
}

func ParseLeagueCatalog(raw []byte) (*league.Catalog, error) {
	var file leagueTableFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode league table: %w", err)
	}
	if err := validator.New().Struct(file); err != nil {
		return nil, fmt.Errorf("validate league table: %w", err)
	}

	entries := make([]league.Entry, 0, len(file.Leagues))
	for _, row := range file.Leagues {
		entries = append(entries, league.Entry{
			ID:                 row.ID,
			Name:               row.Name,
			Country:            row.Country,
			Logo:               row.Logo,
			DefaultSeason:      row.DefaultSeason,
			APIFootballID:      strings.TrimSpace(row.APIFootball.LeagueID),
			SportMonksLeagueID: row.SportMonks.LeagueID,
			SportMonksSeasons:  row.SportMonks.Seasons,
		})
	}

	catalog, err := league.NewCatalog(entries)
	if err != nil {
		return nil, fmt.Errorf("build league catalog: %w", err)
	}
	return catalog, nil
}
