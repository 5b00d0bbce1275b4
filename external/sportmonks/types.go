package sportmonks

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
)

// fixtureEnvelope is the single-object response of /fixtures/{id}.
type fixtureEnvelope struct {
	Data    *fixtureDetails `json:"data"`
	Message string          `json:"message"`
}

// fixturesEnvelope is the list response of /livescores/inplay.
type fixturesEnvelope struct {
	Data    *[]fixtureDetails `json:"data"`
	Message string            `json:"message"`
}

type fixtureDetails struct {
	ID           int64                  `json:"id"`
	LeagueID     int64                  `json:"league_id"`
	Name         string                 `json:"name"`
	StartingAt   string                 `json:"starting_at"`
	StateID      int64                  `json:"state_id"`
	ResultInfo   string                 `json:"result_info"`
	Participants []fixtureParticipant   `json:"participants"`
	League       relation[leagueRef]    `json:"league"`
	Venue        relation[venueRef]     `json:"venue"`
	Scores       []fixtureScoreItem     `json:"scores"`
	Events       []fixtureEventItem     `json:"events"`
	Statistics   []fixtureStatisticItem `json:"statistics"`
	Periods      []fixturePeriod        `json:"periods"`
}

type fixtureParticipant struct {
	ID        int64                  `json:"id"`
	Name      string                 `json:"name"`
	ShortCode string                 `json:"short_code"`
	ImagePath string                 `json:"image_path"`
	Meta      fixtureParticipantMeta `json:"meta"`
}

type fixtureParticipantMeta struct {
	Location string `json:"location"`
}

type fixtureScoreItem struct {
	ParticipantID int64          `json:"participant_id"`
	Description   string         `json:"description"`
	Score         map[string]any `json:"score"`
	Data          map[string]any `json:"data"`
	Goals         any            `json:"goals"`
}

func (f fixtureScoreItem) numericScore() (int, bool) {
	for _, candidate := range []any{
		f.Goals,
		lookupMapValue(f.Data, "goals"),
		lookupMapValue(f.Data, "value"),
		lookupMapValue(f.Data, "total"),
		lookupMapValue(f.Score, "goals"),
		lookupMapValue(f.Score, "score"),
		lookupMapValue(f.Score, "value"),
		lookupMapValue(f.Score, "total"),
	} {
		if candidate == nil {
			continue
		}
		score := int(asFloat64(candidate))
		if score >= 0 {
			return score, true
		}
	}
	return 0, false
}

type fixtureEventItem struct {
	ID                int64                 `json:"id"`
	ParticipantID     int64                 `json:"participant_id"`
	TypeID            int64                 `json:"type_id"`
	PlayerName        string                `json:"player_name"`
	RelatedPlayerName string                `json:"related_player_name"`
	Info              string                `json:"info"`
	Addition          string                `json:"addition"`
	Result            string                `json:"result"`
	Minute            *int                  `json:"minute"`
	ExtraMinute       *int                  `json:"extra_minute"`
	SortOrder         int                   `json:"sort_order"`
	Type              relation[statTypeRef] `json:"type"`
}

func (f fixtureEventItem) typeName() string {
	if f.Type.Set {
		if name := strings.TrimSpace(f.Type.Data.DeveloperName); name != "" {
			return name
		}
		if name := strings.TrimSpace(f.Type.Data.Name); name != "" {
			return name
		}
	}
	if f.TypeID > 0 {
		return fmt.Sprintf("type-%d", f.TypeID)
	}
	return ""
}

// minuteText renders 45 + 2 as "45+2".
func (f fixtureEventItem) minuteText() string {
	if f.Minute == nil || *f.Minute < 0 {
		return ""
	}
	text := strconv.Itoa(*f.Minute)
	if f.ExtraMinute != nil && *f.ExtraMinute > 0 {
		text += "+" + strconv.Itoa(*f.ExtraMinute)
	}
	return text
}

type fixtureStatisticItem struct {
	ParticipantID int64                 `json:"participant_id"`
	TypeID        int64                 `json:"type_id"`
	Data          map[string]any        `json:"data"`
	Type          relation[statTypeRef] `json:"type"`
}

func (f fixtureStatisticItem) typeName() string {
	if f.Type.Set {
		if name := strings.TrimSpace(f.Type.Data.DeveloperName); name != "" {
			return name
		}
		if name := strings.TrimSpace(f.Type.Data.Name); name != "" {
			return name
		}
	}
	if f.TypeID > 0 {
		return fmt.Sprintf("type-%d", f.TypeID)
	}
	return ""
}

func (f fixtureStatisticItem) numericValue() float64 {
	if f.Data == nil {
		return 0
	}
	if value, ok := f.Data["value"]; ok {
		return asFloat64(value)
	}
	if value, ok := f.Data["total"]; ok {
		return asFloat64(value)
	}
	return 0
}

type fixturePeriod struct {
	Ticking bool `json:"ticking"`
	Minutes int  `json:"minutes"`
}

type statTypeRef struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Code          string `json:"code"`
	DeveloperName string `json:"developer_name"`
}

type leagueRef struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ImagePath string `json:"image_path"`
}

type venueRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// relation decodes an include that may arrive as {"data": {...}} or inline.
type relation[T any] struct {
	Data T
	Set  bool
}

func (r *relation[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		r.Set = false
		return nil
	}

	var wrapped struct {
		Data *T `json:"data"`
	}
	if err := sonic.Unmarshal(trimmed, &wrapped); err == nil && wrapped.Data != nil {
		r.Data = *wrapped.Data
		r.Set = true
		return nil
	}

	var direct T
	if err := sonic.Unmarshal(trimmed, &direct); err != nil {
		return err
	}
	r.Data = direct
	r.Set = true
	return nil
}

func lookupMapValue(src map[string]any, key string) any {
	if src == nil {
		return nil
	}
	return src[key]
}

func asFloat64(value any) float64 {
	switch typed := value.(type) {
	case float64:
		return typed
	case float32:
		return float64(typed)
	case int:
		return float64(typed)
	case int64:
		return float64(typed)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(typed), "%")), 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
