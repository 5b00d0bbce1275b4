package match

import (
	"testing"

	"github.com/riskibarqy/goalquest/internal/domain/team"
)

func TestStatusLabel(t *testing.T) {
	t.Parallel()

	tests := map[Status]string{
		StatusLive:      "LIVE",
		StatusCompleted: "FT",
		StatusScheduled: "Scheduled",
		StatusPostponed: "Postponed",
		StatusCancelled: "Cancelled",
	}
	for status, want := range tests {
		if got := status.Label(); got != want {
			t.Fatalf("%s label=%q want=%q", status, got, want)
		}
	}
}

func TestMergeTimeline_SortsByMinuteKeepingGoalBeforeCard(t *testing.T) {
	t.Parallel()

	goals := []Event{
		{Type: EventGoal, Minute: "35", Team: SideTeam2, Player: "Palmer"},
		{Type: EventGoal, Minute: "12", Team: SideTeam1, Player: "Saka"},
	}
	cards := []Event{
		{Type: EventYellowCard, Minute: "35", Team: SideTeam1, Player: "Rice"},
		{Type: EventRedCard, Minute: "90+3", Team: SideTeam2, Player: "Caicedo"},
		{Type: EventYellowCard, Minute: "", Team: SideTeam2, Player: "Unknown"},
	}

	got := MergeTimeline(goals, cards)
	want := []string{"Unknown", "Saka", "Palmer", "Rice", "Caicedo"}
	if len(got) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(got))
	}
	for i, player := range want {
		if got[i].Player != player {
			t.Fatalf("position %d: got %s want %s", i, got[i].Player, player)
		}
	}
}

func TestCountCards(t *testing.T) {
	t.Parallel()

	y1, r1, y2, r2 := CountCards([]Event{
		{Type: EventYellowCard, Team: SideTeam1},
		{Type: EventYellowCard, Team: SideTeam1},
		{Type: EventRedCard, Team: SideTeam2},
		{Type: EventGoal, Team: SideTeam2},
	})
	if y1 != 2 || r1 != 0 || y2 != 0 || r2 != 1 {
		t.Fatalf("unexpected counts y1=%d r1=%d y2=%d r2=%d", y1, r1, y2, r2)
	}
}

func TestIDHelpers(t *testing.T) {
	t.Parallel()

	if got := NewID("12345"); got != "match-12345" {
		t.Fatalf("unexpected id %q", got)
	}
	if got := NewID("match-12345"); got != "match-12345" {
		t.Fatalf("expected prefix not duplicated, got %q", got)
	}
	if got := Token("match-arsenal-chelsea-1x"); got != "arsenal-chelsea-1x" {
		t.Fatalf("unexpected token %q", got)
	}
}

func TestLeadingInt(t *testing.T) {
	t.Parallel()

	tests := map[string]int{"45+2": 45, "90'": 90, "": 0, "HT": 0, " 7 ": 7}
	for in, want := range tests {
		if got := LeadingInt(in); got != want {
			t.Fatalf("LeadingInt(%q)=%d want=%d", in, got, want)
		}
	}
}

func TestValidate_MinuteOnlyWhileLive(t *testing.T) {
	t.Parallel()

	m := Match{
		ID:     "match-1",
		Team1:  team.Team{ID: "1", Name: "Arsenal"},
		Team2:  team.Team{ID: "2", Name: "Chelsea"},
		Status: StatusCompleted,
		Minute: "90",
	}
	if err := m.Validate(); err == nil {
		t.Fatalf("expected error for minute on completed match")
	}
	m.Status = StatusLive
	if err := m.Validate(); err != nil {
		t.Fatalf("expected live match to validate: %v", err)
	}
}
