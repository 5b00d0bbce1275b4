package team

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

const placeholderLogoBase = "https://via.placeholder.com/50"

// Team is one side of a match or a row in a league table.
type Team struct {
	ID      string
	Name    string
	LogoURL string
	Stats   *Stats
}

// Stats holds per-match team figures. Every field defaults to zero when the
// provider omits it.
type Stats struct {
	Possession    int
	Shots         int
	ShotsOnTarget int
	Corners       int
	Fouls         int
	YellowCards   int
	RedCards      int
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("team id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

// PlaceholderLogo renders a generic badge carrying the team's initial.
func PlaceholderLogo(name string) string {
	name = strings.TrimSpace(name)
	initial := "?"
	if r, _ := utf8.DecodeRuneInString(name); r != utf8.RuneError {
		initial = string(r)
	}
	return placeholderLogoBase + "?text=" + url.QueryEscape(initial)
}

// LogoOr returns logo when set, otherwise fallback.
func LogoOr(logo, fallback string) string {
	if strings.TrimSpace(logo) != "" {
		return strings.TrimSpace(logo)
	}
	return fallback
}
