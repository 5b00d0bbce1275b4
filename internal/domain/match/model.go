package match

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/riskibarqy/goalquest/internal/domain/league"
	"github.com/riskibarqy/goalquest/internal/domain/team"
)

// IDPrefix is the only id convention shared by every provider.
const IDPrefix = "match-"

// UnknownVenue is shown when a provider omits the stadium.
const UnknownVenue = "N/A"

type Status string

const (
	StatusLive      Status = "Live"
	StatusCompleted Status = "Completed"
	StatusScheduled Status = "Scheduled"
	StatusPostponed Status = "Postponed"
	StatusCancelled Status = "Cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusLive, StatusCompleted, StatusScheduled, StatusPostponed, StatusCancelled:
		return true
	default:
		return false
	}
}

// Label is the short scoreboard text for a status.
func (s Status) Label() string {
	switch s {
	case StatusLive:
		return "LIVE"
	case StatusCompleted:
		return "FT"
	case StatusPostponed:
		return "Postponed"
	case StatusCancelled:
		return "Cancelled"
	default:
		return "Scheduled"
	}
}

type EventType string

const (
	EventGoal         EventType = "Goal"
	EventYellowCard   EventType = "YellowCard"
	EventRedCard      EventType = "RedCard"
	EventSubstitution EventType = "Substitution"
)

// Side says which team an event belongs to.
type Side string

const (
	SideTeam1 Side = "team1"
	SideTeam2 Side = "team2"
)

type Event struct {
	Type           EventType
	Minute         string
	Team           Side
	Player         string
	AdditionalInfo string
}

// MinuteValue parses the leading digits of Minute, so "45+2" sorts as 45.
// Unparseable minutes sort as 0.
func (e Event) MinuteValue() int {
	return LeadingInt(e.Minute)
}

type Match struct {
	ID      string
	Team1   team.Team
	Team2   team.Team
	Score1  int
	Score2  int
	Status  Status
	Minute  string
	League  league.League
	Venue   string
	Date    string
	Embed   string
	Events  []Event
	Referee string
	Source  string
}

func (m Match) Validate() error {
	if !strings.HasPrefix(m.ID, IDPrefix) {
		return fmt.Errorf("match id %q must start with %q", m.ID, IDPrefix)
	}
	if err := m.Team1.Validate(); err != nil {
		return fmt.Errorf("team1: %w", err)
	}
	if err := m.Team2.Validate(); err != nil {
		return fmt.Errorf("team2: %w", err)
	}
	if m.Score1 < 0 || m.Score2 < 0 {
		return fmt.Errorf("scores must be non-negative")
	}
	if !m.Status.Valid() {
		return fmt.Errorf("unknown status %q", m.Status)
	}
	if m.Minute != "" && m.Status != StatusLive {
		return fmt.Errorf("minute is only set while live")
	}

	return nil
}

// LatestEvent returns the last timeline entry.
func (m Match) LatestEvent() (Event, bool) {
	if len(m.Events) == 0 {
		return Event{}, false
	}
	return m.Events[len(m.Events)-1], true
}

// Title renders "Home - Away".
func (m Match) Title() string {
	return m.Team1.Name + " - " + m.Team2.Name
}

// NewID prefixes a provider token with IDPrefix unless it already carries it.
func NewID(token string) string {
	token = strings.TrimSpace(token)
	if strings.HasPrefix(token, IDPrefix) {
		return token
	}
	return IDPrefix + token
}

// Token strips IDPrefix, leaving the provider-specific part.
func Token(matchID string) string {
	return strings.TrimPrefix(strings.TrimSpace(matchID), IDPrefix)
}

// LeadingInt parses the decimal digits at the start of s. Anything else yields 0.
func LeadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return v
}
