package sportmonks

import (
	"bytes"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/goalquest/internal/domain/standing"
	"github.com/riskibarqy/goalquest/internal/domain/team"
)

// standingsEnvelope is the response of /standings/seasons/{id}. Data is nil
// when the provider answers with only a message.
type standingsEnvelope struct {
	Data    *standingEntries `json:"data"`
	Message string           `json:"message"`
}

// standingEntry is either a table row or, for grouped seasons, a stage or
// group node carrying its own rows under "standings".
type standingEntry struct {
	ParticipantID int64                    `json:"participant_id"`
	Position      int                      `json:"position"`
	Points        int                      `json:"points"`
	GroupID       int64                    `json:"group_id"`
	Participant   relation[participantRef] `json:"participant"`
	Details       standingDetails          `json:"details"`
	Standings     standingEntries          `json:"standings"`
}

type participantRef struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ImagePath string `json:"image_path"`
}

type standingDetail struct {
	TypeID int64                 `json:"type_id"`
	Value  detailValue           `json:"value"`
	Type   relation[statTypeRef] `json:"type"`
}

// standingEntries and standingDetails accept a bare array or the
// {"data": [...]} include wrapper.
type standingEntries []standingEntry

func (s *standingEntries) UnmarshalJSON(data []byte) error {
	return decodeList(data, (*[]standingEntry)(s))
}

type standingDetails []standingDetail

func (s *standingDetails) UnmarshalJSON(data []byte) error {
	return decodeList(data, (*[]standingDetail)(s))
}

func decodeList[T any](data []byte, out *[]T) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*out = nil
		return nil
	}
	if trimmed[0] == '[' {
		return sonic.Unmarshal(trimmed, out)
	}
	var wrapped struct {
		Data []T `json:"data"`
	}
	if err := sonic.Unmarshal(trimmed, &wrapped); err != nil {
		return err
	}
	*out = wrapped.Data
	return nil
}

// detailValue is a detail figure sent as a number, a numeric string or an
// object with a total.
type detailValue int

func (v *detailValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		*v = 0
	case trimmed[0] == '{':
		var obj struct {
			Total any `json:"total"`
			Value any `json:"value"`
		}
		if err := sonic.Unmarshal(trimmed, &obj); err != nil {
			return err
		}
		if obj.Total != nil {
			*v = detailValue(asFloat64(obj.Total))
		} else {
			*v = detailValue(asFloat64(obj.Value))
		}
	default:
		var raw any
		if err := sonic.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		*v = detailValue(asFloat64(raw))
	}
	return nil
}

type standingMetric int

const (
	metricPlayed standingMetric = iota + 1
	metricWon
	metricDraw
	metricLost
	metricGoalsFor
	metricGoalsAgainst
	metricGoalDifference
	metricPoints
)

// overallMetricsByName only lists overall figures; home and away splits are
// ignored.
var overallMetricsByName = map[string]standingMetric{
	"overall-matches-played":  metricPlayed,
	"overall-won":             metricWon,
	"overall-draw":            metricDraw,
	"overall-lost":            metricLost,
	"overall-goals-for":       metricGoalsFor,
	"overall-scored":          metricGoalsFor,
	"overall-conceded":        metricGoalsAgainst,
	"overall-goals-against":   metricGoalsAgainst,
	"overall-goal-difference": metricGoalDifference,
	"overall-points":          metricPoints,
}

// overallMetricsByTypeID covers details sent without the type include.
var overallMetricsByTypeID = map[int64]standingMetric{
	129: metricPlayed,
	130: metricWon,
	131: metricDraw,
	132: metricLost,
	133: metricGoalsFor,
	134: metricGoalsAgainst,
	179: metricGoalDifference,
	187: metricPoints,
}

func (d standingDetail) metric() (standingMetric, bool) {
	if d.Type.Set {
		for _, name := range []string{d.Type.Data.DeveloperName, d.Type.Data.Code, d.Type.Data.Name} {
			key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
			key = strings.ReplaceAll(key, " ", "-")
			if key == "" {
				continue
			}
			m, ok := overallMetricsByName[key]
			return m, ok
		}
	}
	m, ok := overallMetricsByTypeID[d.TypeID]
	return m, ok
}

// tableRow is one parsed standings row before it becomes a standing.Standing.
type tableRow struct {
	TeamExternalID int64
	TeamName       string
	TeamLogo       string
	Position       int
	Played         int
	Won            int
	Draw           int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
}

func (r tableRow) toStanding() standing.Standing {
	teamID := strconv.FormatInt(r.TeamExternalID, 10)
	name := strings.TrimSpace(r.TeamName)
	if name == "" {
		name = "Team " + teamID
	}
	return standing.Standing{
		Rank: r.Position,
		Team: team.Team{
			ID:      teamID,
			Name:    name,
			LogoURL: team.LogoOr(r.TeamLogo, team.PlaceholderLogo(name)),
		},
		Points:         r.Points,
		Played:         r.Played,
		Win:            r.Won,
		Draw:           r.Draw,
		Lose:           r.Lost,
		GoalDifference: r.GoalDifference,
	}
}

// flattenStandings walks grouped stages in order and keeps the first row
// seen for each participant.
func flattenStandings(entries []standingEntry) []tableRow {
	out := make([]tableRow, 0, len(entries))
	seen := make(map[int64]struct{}, len(entries))

	var walk func([]standingEntry)
	walk = func(nodes []standingEntry) {
		for _, entry := range nodes {
			if len(entry.Standings) > 0 {
				walk(entry.Standings)
				continue
			}
			row, ok := entry.toRow()
			if !ok {
				continue
			}
			if _, dup := seen[row.TeamExternalID]; dup {
				continue
			}
			seen[row.TeamExternalID] = struct{}{}
			out = append(out, row)
		}
	}
	walk(entries)
	return out
}

func (e standingEntry) toRow() (tableRow, bool) {
	participantID := e.ParticipantID
	if participantID <= 0 && e.Participant.Set {
		participantID = e.Participant.Data.ID
	}
	if participantID <= 0 {
		return tableRow{}, false
	}

	row := tableRow{
		TeamExternalID: participantID,
		Position:       e.Position,
		Points:         e.Points,
	}
	if e.Participant.Set {
		row.TeamName = strings.TrimSpace(e.Participant.Data.Name)
		row.TeamLogo = strings.TrimSpace(e.Participant.Data.ImagePath)
	}

	var hasDifference, hasGoals bool
	for _, detail := range e.Details {
		metric, ok := detail.metric()
		if !ok {
			continue
		}
		value := int(detail.Value)
		switch metric {
		case metricPlayed:
			row.Played = value
		case metricWon:
			row.Won = value
		case metricDraw:
			row.Draw = value
		case metricLost:
			row.Lost = value
		case metricGoalsFor:
			row.GoalsFor = value
			hasGoals = true
		case metricGoalsAgainst:
			row.GoalsAgainst = value
			hasGoals = true
		case metricGoalDifference:
			row.GoalDifference = value
			hasDifference = true
		case metricPoints:
			row.Points = value
		}
	}
	if !hasDifference && hasGoals {
		row.GoalDifference = row.GoalsFor - row.GoalsAgainst
	}
	return row, true
}
