package league

import (
	"fmt"
	"strings"
)

// League is the competition a match or table belongs to.
type League struct {
	ID      string
	Name    string
	Country string
	Logo    string
	Season  string
}

// UnknownID is used when a provider cannot place an item in a competition.
const UnknownID = "league-unknown"

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}

	return nil
}

// SameAs compares leagues by display name only; provider ids never line up.
func (l League) SameAs(other League) bool {
	return strings.EqualFold(strings.TrimSpace(l.Name), strings.TrimSpace(other.Name))
}
