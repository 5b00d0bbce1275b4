package apifootball

import (
	"bytes"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/goalquest/internal/platform/upstream"
)

// errorEnvelope is what the API sends instead of an array, e.g.
// {"error":404,"message":"No event found (please check your plan)!!"}.
type errorEnvelope struct {
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// decodeList decodes the array-or-error union every action returns. A 404
// error object means "no rows" and yields an empty slice.
func decodeList[T any](raw []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, upstream.InvalidShape("apifootball returned an empty body")
	}

	switch trimmed[0] {
	case '[':
		var out []T
		if err := upstream.Decode(trimmed, &out); err != nil {
			return nil, err
		}
		return out, nil
	case '{':
		var envelope errorEnvelope
		if err := upstream.Decode(trimmed, &envelope); err != nil {
			return nil, err
		}
		if envelope.Error == 404 {
			return []T{}, nil
		}
		return nil, upstream.InvalidShape("apifootball error %d: %s", envelope.Error, envelope.Message)
	default:
		return nil, upstream.InvalidShape("apifootball payload is neither array nor object")
	}
}

type eventRow struct {
	MatchID       string          `json:"match_id"`
	CountryName   string          `json:"country_name"`
	LeagueID      string          `json:"league_id"`
	LeagueName    string          `json:"league_name"`
	LeagueLogo    string          `json:"league_logo"`
	LeagueYear    string          `json:"league_year"`
	MatchDate     string          `json:"match_date"`
	MatchStatus   string          `json:"match_status"`
	MatchTime     string          `json:"match_time"`
	HomeTeamID    string          `json:"match_hometeam_id"`
	HomeTeamName  string          `json:"match_hometeam_name"`
	HomeTeamScore string          `json:"match_hometeam_score"`
	AwayTeamID    string          `json:"match_awayteam_id"`
	AwayTeamName  string          `json:"match_awayteam_name"`
	AwayTeamScore string          `json:"match_awayteam_score"`
	MatchLive     string          `json:"match_live"`
	MatchStadium  string          `json:"match_stadium"`
	MatchReferee  string          `json:"match_referee"`
	HomeBadge     string          `json:"team_home_badge"`
	AwayBadge     string          `json:"team_away_badge"`
	Goals         []goalRow       `json:"goalscorer"`
	Cards         []cardRow       `json:"cards"`
	Substitutions substitutionSet `json:"substitutions"`
	Statistics    []statisticRow  `json:"statistics"`
	LegacyGoals   []goalRow       `json:"goals"`
}

type goalRow struct {
	Time       string `json:"time"`
	HomeScorer string `json:"home_scorer"`
	HomeAssist string `json:"home_assist"`
	AwayScorer string `json:"away_scorer"`
	AwayAssist string `json:"away_assist"`
	Scorer     string `json:"scorer"`
	Assist     string `json:"assist"`
	Score      string `json:"score"`
	Info       string `json:"info"`
}

type cardRow struct {
	Time      string    `json:"time"`
	Card      string    `json:"card"`
	Player    string    `json:"player"`
	HomeFault faultFlag `json:"home_fault"`
	AwayFault faultFlag `json:"away_fault"`
	Info      string    `json:"info"`
}

type substitutionSet struct {
	Home []substitutionRow `json:"home"`
	Away []substitutionRow `json:"away"`
}

// UnmarshalJSON tolerates the empty array sent for matches without changes.
func (s *substitutionSet) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		*s = substitutionSet{}
		return nil
	}
	type plain substitutionSet
	var out plain
	if err := sonic.Unmarshal(trimmed, &out); err != nil {
		return err
	}
	*s = substitutionSet(out)
	return nil
}

type substitutionRow struct {
	Time         string `json:"time"`
	Substitution string `json:"substitution"`
}

type statisticRow struct {
	Type string `json:"type"`
	Home string `json:"home"`
	Away string `json:"away"`
}

type standingRow struct {
	Position  string `json:"overall_league_position"`
	TeamID    string `json:"team_id"`
	TeamName  string `json:"team_name"`
	TeamBadge string `json:"team_badge"`
	Points    string `json:"overall_league_PTS"`
	Played    string `json:"overall_league_payed"`
	Won       string `json:"overall_league_W"`
	Drawn     string `json:"overall_league_D"`
	Lost      string `json:"overall_league_L"`
	GoalsFor  string `json:"overall_league_GF"`
	GoalsAg   string `json:"overall_league_GA"`
}

// faultFlag accepts the player name the API sends, a boolean, or null.
// Set reports whether the card belongs to that side.
type faultFlag struct {
	Set    bool
	Player string
}

func (f *faultFlag) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0, bytes.Equal(trimmed, []byte("null")):
		*f = faultFlag{}
		return nil
	case bytes.Equal(trimmed, []byte("true")):
		*f = faultFlag{Set: true}
		return nil
	case bytes.Equal(trimmed, []byte("false")):
		*f = faultFlag{}
		return nil
	}

	var text string
	if err := sonic.Unmarshal(trimmed, &text); err != nil {
		return upstream.InvalidShape("card fault flag: %s", string(trimmed))
	}
	text = strings.TrimSpace(text)
	*f = faultFlag{Set: text != "" && text != "0" && !strings.EqualFold(text, "false"), Player: text}
	if !f.Set {
		f.Player = ""
	}
	return nil
}
