package sportmonks

import (
	"strconv"
	"strings"

	"github.com/riskibarqy/goalquest/internal/domain/league"
	"github.com/riskibarqy/goalquest/internal/domain/match"
	"github.com/riskibarqy/goalquest/internal/domain/team"
)

// tokenPrefix keeps fixture ids apart from other providers' numeric ids.
const tokenPrefix = "sm-"

func fixtureToken(fixtureID int64) string {
	return tokenPrefix + strconv.FormatInt(fixtureID, 10)
}

// parseFixtureToken accepts only tokens minted by fixtureToken.
func parseFixtureToken(token string) (int64, bool) {
	raw, ok := strings.CutPrefix(strings.TrimSpace(token), tokenPrefix)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func toMatch(item fixtureDetails, leagues *league.Catalog, detailed bool) (match.Match, bool) {
	homeName, awayName, homeID, awayID := resolveFixtureParticipants(item.Participants)
	if item.ID <= 0 || homeName == "" || awayName == "" {
		return match.Match{}, false
	}

	status := mapFixtureStatus(item.StateID, item.ResultInfo)
	home, away := resolveFixtureScores(item.Scores, item.Participants)
	m := match.Match{
		ID:     match.NewID(fixtureToken(item.ID)),
		Team1:  participantTeam(item.Participants, homeID, homeName),
		Team2:  participantTeam(item.Participants, awayID, awayName),
		Score1: home,
		Score2: away,
		Status: status,
		League: fixtureLeague(item, leagues),
		Venue:  match.UnknownVenue,
		Date:   providerDate(item.StartingAt),
		Source: ProviderName,
	}
	if item.Venue.Set && strings.TrimSpace(item.Venue.Data.Name) != "" {
		m.Venue = strings.TrimSpace(item.Venue.Data.Name)
	}
	if status == match.StatusLive {
		m.Minute = liveMinute(item.Periods)
	}
	if !detailed {
		return m, true
	}

	m.Events = buildTimeline(item.Events, homeID, awayID)
	homeStats, awayStats := buildStats(item.Statistics, homeID, awayID)
	homeStats.YellowCards, homeStats.RedCards, awayStats.YellowCards, awayStats.RedCards = match.CountCards(m.Events)
	m.Team1.Stats = &homeStats
	m.Team2.Stats = &awayStats
	return m, true
}

func participantTeam(participants []fixtureParticipant, participantID int64, name string) team.Team {
	logo := ""
	for _, p := range participants {
		if p.ID == participantID {
			logo = p.ImagePath
			break
		}
	}
	return team.Team{
		ID:      strconv.FormatInt(participantID, 10),
		Name:    name,
		LogoURL: team.LogoOr(logo, team.PlaceholderLogo(name)),
	}
}

func fixtureLeague(item fixtureDetails, leagues *league.Catalog) league.League {
	leagueID := item.LeagueID
	if leagueID <= 0 && item.League.Set {
		leagueID = item.League.Data.ID
	}
	if entry, ok := leagues.BySportMonksLeagueID(leagueID); ok {
		return entry.League()
	}

	out := league.League{ID: league.UnknownID}
	if leagueID > 0 {
		out.ID = strconv.FormatInt(leagueID, 10)
	}
	if item.League.Set {
		out.Name = strings.TrimSpace(item.League.Data.Name)
		out.Logo = strings.TrimSpace(item.League.Data.ImagePath)
	}
	return out
}

func liveMinute(periods []fixturePeriod) string {
	for _, p := range periods {
		if p.Ticking && p.Minutes > 0 {
			return strconv.Itoa(p.Minutes)
		}
	}
	return ""
}

func buildTimeline(events []fixtureEventItem, homeID, awayID int64) []match.Event {
	var goals, cards, subs []match.Event
	for _, e := range events {
		side, ok := sideOf(e.ParticipantID, homeID, awayID)
		if !ok {
			continue
		}
		eventType, ok := mapEventType(e)
		if !ok {
			continue
		}

		out := match.Event{
			Type:   eventType,
			Minute: e.minuteText(),
			Team:   side,
			Player: strings.TrimSpace(e.PlayerName),
		}
		switch eventType {
		case match.EventGoal:
			out.AdditionalInfo = joinInfo(labelled("Assist", e.RelatedPlayerName), labelled("Score", e.Result), e.Info)
			goals = append(goals, out)
		case match.EventSubstitution:
			out.AdditionalInfo = labelled("Off", e.RelatedPlayerName)
			subs = append(subs, out)
		default:
			out.AdditionalInfo = strings.TrimSpace(e.Info)
			cards = append(cards, out)
		}
	}
	return match.MergeTimeline(goals, cards, subs)
}

// mapEventType reads the v3 event type ids (14 goal, 15 own goal, 16 penalty,
// 18 substitution, 19 yellow, 20 red, 21 second yellow), falling back to names.
func mapEventType(e fixtureEventItem) (match.EventType, bool) {
	switch e.TypeID {
	case 14, 15, 16:
		return match.EventGoal, true
	case 18:
		return match.EventSubstitution, true
	case 19:
		return match.EventYellowCard, true
	case 20, 21:
		return match.EventRedCard, true
	}

	name := strings.ToUpper(strings.ReplaceAll(e.typeName(), "_", ""))
	switch {
	case name == "GOAL", name == "OWNGOAL", name == "PENALTY":
		return match.EventGoal, true
	case strings.Contains(name, "SUBSTITUTION"):
		return match.EventSubstitution, true
	case strings.Contains(name, "RED"):
		return match.EventRedCard, true
	case strings.Contains(name, "YELLOW"):
		return match.EventYellowCard, true
	default:
		return "", false
	}
}

func buildStats(items []fixtureStatisticItem, homeID, awayID int64) (team.Stats, team.Stats) {
	var home, away team.Stats
	for _, item := range items {
		side, ok := sideOf(item.ParticipantID, homeID, awayID)
		if !ok {
			continue
		}
		dst := &home
		if side == match.SideTeam2 {
			dst = &away
		}
		applyTeamFixtureStat(dst, item)
	}
	return home, away
}

func applyTeamFixtureStat(dst *team.Stats, source fixtureStatisticItem) {
	if dst == nil {
		return
	}

	typeKey := normalizeStatTypeName(source.typeName())
	value := int(source.numericValue())
	switch {
	case strings.Contains(typeKey, "ball possession"):
		dst.Possession = value
	case strings.Contains(typeKey, "shots on target"):
		dst.ShotsOnTarget = value
	case strings.Contains(typeKey, "shots total"), typeKey == "shots":
		dst.Shots = value
	case strings.Contains(typeKey, "corners"):
		dst.Corners = value
	case strings.Contains(typeKey, "fouls"):
		dst.Fouls = value
	}
}

func normalizeStatTypeName(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	raw = strings.ReplaceAll(raw, "_", " ")
	raw = strings.ReplaceAll(raw, "-", " ")
	return strings.Join(strings.Fields(raw), " ")
}

func sideOf(participantID, homeID, awayID int64) (match.Side, bool) {
	switch {
	case participantID > 0 && participantID == homeID:
		return match.SideTeam1, true
	case participantID > 0 && participantID == awayID:
		return match.SideTeam2, true
	default:
		return "", false
	}
}

func resolveFixtureParticipants(participants []fixtureParticipant) (string, string, int64, int64) {
	var homeName, awayName string
	var homeID, awayID int64
	for _, item := range participants {
		switch strings.ToLower(strings.TrimSpace(item.Meta.Location)) {
		case "home":
			homeName = strings.TrimSpace(item.Name)
			homeID = item.ID
		case "away":
			awayName = strings.TrimSpace(item.Name)
			awayID = item.ID
		}
	}
	return homeName, awayName, homeID, awayID
}

// resolveFixtureScores keeps the scores with the most final description
// ("CURRENT" over "2ND_HALF" over "1ST_HALF"). Missing sides are 0.
func resolveFixtureScores(scores []fixtureScoreItem, participants []fixtureParticipant) (int, int) {
	if len(scores) == 0 {
		return 0, 0
	}

	var homeParticipantID int64
	var awayParticipantID int64
	for _, item := range participants {
		switch strings.ToLower(strings.TrimSpace(item.Meta.Location)) {
		case "home":
			homeParticipantID = item.ID
		case "away":
			awayParticipantID = item.ID
		}
	}

	bestWeight := 0
	homeValues := map[int]int{}
	awayValues := map[int]int{}
	for _, score := range scores {
		value, ok := score.numericScore()
		if !ok {
			continue
		}

		weight := scoreDescriptionWeight(score.Description)
		if weight > bestWeight {
			bestWeight = weight
			homeValues = map[int]int{}
			awayValues = map[int]int{}
		}
		if weight < bestWeight {
			continue
		}

		if score.ParticipantID == homeParticipantID && homeParticipantID > 0 {
			homeValues[weight] = value
		}
		if score.ParticipantID == awayParticipantID && awayParticipantID > 0 {
			awayValues[weight] = value
		}
	}

	return homeValues[bestWeight], awayValues[bestWeight]
}

func scoreDescriptionWeight(raw string) int {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case value == "current":
		return 6
	case strings.Contains(value, "normal_time"), strings.Contains(value, "90"):
		return 5
	case strings.Contains(value, "extra_time"):
		return 4
	case strings.Contains(value, "penalt"):
		return 3
	case value == "1st_half", value == "2nd_half":
		return 2
	default:
		return 1
	}
}

func mapFixtureStatus(stateID int64, resultInfo string) match.Status {
	switch stateID {
	case 2, 3, 4, 6, 9, 21, 22, 25:
		return match.StatusLive
	case 5, 7, 8, 14:
		return match.StatusCompleted
	case 10, 16:
		return match.StatusPostponed
	case 12, 15, 17:
		return match.StatusCancelled
	case 1:
		return match.StatusScheduled
	}

	info := strings.ToLower(strings.TrimSpace(resultInfo))
	switch {
	case strings.Contains(info, "postpon"):
		return match.StatusPostponed
	case strings.Contains(info, "cancel"), strings.Contains(info, "abandon"):
		return match.StatusCancelled
	case strings.Contains(info, "live"), strings.Contains(info, "in play"), strings.Contains(info, "half"):
		return match.StatusLive
	case strings.Contains(info, "finish"), strings.Contains(info, "full time"), strings.Contains(info, "aet"), strings.Contains(info, "pen"), strings.Contains(info, "won"):
		return match.StatusCompleted
	default:
		return match.StatusScheduled
	}
}

// providerDate turns "2024-11-10 16:30:00" into ISO-8601.
func providerDate(raw string) string {
	value := strings.TrimSpace(raw)
	if len(value) > 10 && value[10] == ' ' {
		return value[:10] + "T" + value[11:]
	}
	return value
}

func labelled(label, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	return label + ": " + value
}

func joinInfo(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return strings.Join(out, "; ")
}
