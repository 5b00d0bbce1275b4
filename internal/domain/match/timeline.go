package match

import "sort"

// MergeTimeline concatenates the collections in the given order and stable
// sorts by minute. Events on the same minute keep their collection order, so
// passing goals before cards puts a goal ahead of a card booked in that minute.
func MergeTimeline(collections ...[]Event) []Event {
	size := 0
	for _, c := range collections {
		size += len(c)
	}
	out := make([]Event, 0, size)
	for _, c := range collections {
		out = append(out, c...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MinuteValue() < out[j].MinuteValue()
	})
	return out
}

// CountCards tallies yellow and red cards per side from a timeline.
func CountCards(events []Event) (yellow1, red1, yellow2, red2 int) {
	for _, e := range events {
		switch {
		case e.Type == EventYellowCard && e.Team == SideTeam1:
			yellow1++
		case e.Type == EventYellowCard && e.Team == SideTeam2:
			yellow2++
		case e.Type == EventRedCard && e.Team == SideTeam1:
			red1++
		case e.Type == EventRedCard && e.Team == SideTeam2:
			red2++
		}
	}
	return yellow1, red1, yellow2, red2
}
