package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/riskibarqy/goalquest/internal/domain/highlight"
	"github.com/riskibarqy/goalquest/internal/domain/league"
	"github.com/riskibarqy/goalquest/internal/domain/match"
	"github.com/riskibarqy/goalquest/internal/domain/news"
	"github.com/riskibarqy/goalquest/internal/domain/prediction"
	"github.com/riskibarqy/goalquest/internal/domain/standing"
)

const summaryWidth = 60

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	return t
}

func onlyLive(matches []match.Match) []match.Match {
	out := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		if m.Status == match.StatusLive {
			out = append(out, m)
		}
	}
	return out
}

func renderMatches(out io.Writer, matches []match.Match) {
	t := newTable(out)
	t.AppendHeader(table.Row{"ID", "League", "Home", "Score", "Away", "Status", "Date"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Score", Align: text.AlignCenter},
	})
	for _, m := range matches {
		t.AppendRow(table.Row{
			m.ID,
			m.League.Name,
			m.Team1.Name,
			fmt.Sprintf("%d - %d", m.Score1, m.Score2),
			m.Team2.Name,
			statusText(m),
			m.Date,
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "Total", len(matches)})
	t.Render()
}

func renderMatchDetail(out io.Writer, m match.Match) {
	fmt.Fprintf(out, "%s %d - %d %s\n", m.Team1.Name, m.Score1, m.Score2, m.Team2.Name)
	fmt.Fprintf(out, "%s | %s | %s | venue %s | source %s\n", m.League.Name, statusText(m), m.Date, m.Venue, m.Source)
	if m.Referee != "" {
		fmt.Fprintf(out, "referee %s\n", m.Referee)
	}
	if len(m.Events) == 0 {
		return
	}

	t := newTable(out)
	t.AppendHeader(table.Row{"Minute", "Event", "Team", "Player", "Info"})
	for _, e := range m.Events {
		side := m.Team1.Name
		if e.Team == match.SideTeam2 {
			side = m.Team2.Name
		}
		t.AppendRow(table.Row{e.Minute, string(e.Type), side, e.Player, e.AdditionalInfo})
	}
	t.Render()
}

func renderLeagues(out io.Writer, leagues []league.League) {
	t := newTable(out)
	t.AppendHeader(table.Row{"ID", "Name", "Country", "Season"})
	for _, l := range leagues {
		t.AppendRow(table.Row{l.ID, l.Name, l.Country, l.Season})
	}
	t.Render()
}

func renderStandings(out io.Writer, rows []standing.Standing) {
	t := newTable(out)
	t.AppendHeader(table.Row{"#", "Team", "P", "W", "D", "L", "GD", "Pts"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Pts", Align: text.AlignRight},
	})
	for _, row := range rows {
		t.AppendRow(table.Row{row.Rank, row.Team.Name, row.Played, row.Win, row.Draw, row.Lose, row.GoalDifference, row.Points})
	}
	t.Render()
}

func renderHighlights(out io.Writer, items []highlight.Highlight) {
	t := newTable(out)
	t.AppendHeader(table.Row{"Title", "League", "Date", "Clips", "Watch"})
	for _, item := range items {
		watch := ""
		if len(item.Videos) > 0 {
			watch = item.Videos[0].EmbedURL
		}
		t.AppendRow(table.Row{item.Title, item.League, item.Date, len(item.Videos), watch})
	}
	t.Render()
}

func renderNews(out io.Writer, articles []news.Article) {
	t := newTable(out)
	t.AppendHeader(table.Row{"Date", "Source", "Title", "Summary"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Summary", WidthMax: summaryWidth},
		{Name: "Title", WidthMax: summaryWidth},
	})
	for _, a := range articles {
		t.AppendRow(table.Row{a.Date, a.Source, a.Title, a.Summary})
	}
	t.Render()
}

func renderPrediction(out io.Writer, result prediction.Result) {
	t := newTable(out)
	t.AppendRow(table.Row{"Prediction", result.Prediction})
	t.AppendRow(table.Row{"Confidence", fmt.Sprintf("%d%%", result.Confidence)})
	t.AppendRow(table.Row{"Suggested bet", result.SuggestedBet})
	t.AppendRow(table.Row{"Reasoning", strings.TrimSpace(result.Reasoning)})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: summaryWidth},
	})
	t.Render()
}

func statusText(m match.Match) string {
	if m.Status == match.StatusLive && m.Minute != "" {
		return fmt.Sprintf("%s %s'", m.Status.Label(), m.Minute)
	}
	return m.Status.Label()
}
