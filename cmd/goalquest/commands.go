package main

import (
	"github.com/riskibarqy/goalquest/internal/domain/prediction"
	"github.com/riskibarqy/goalquest/internal/usecase"
)

type matchesCmd struct {
	League string `help:"Only matches of this league name."`
	Query  string `short:"q" help:"Substring of a team or league name."`
	Live   bool   `help:"Only matches in progress."`
}

func (c *matchesCmd) Run(rt *runtime) error {
	matches, err := rt.container.Matches.ListLiveOrRecent(rt.ctx, usecase.MatchFilter{League: c.League, Query: c.Query})
	if err != nil {
		return err
	}
	if c.Live {
		matches = onlyLive(matches)
	}
	renderMatches(rt.out, matches)
	return nil
}

type matchCmd struct {
	ID string `arg:"" help:"Match id, with or without the match- prefix."`
}

func (c *matchCmd) Run(rt *runtime) error {
	m, err := rt.container.Matches.Get(rt.ctx, c.ID)
	if err != nil {
		return err
	}
	renderMatchDetail(rt.out, m)
	return nil
}

type fixturesCmd struct{}

func (c *fixturesCmd) Run(rt *runtime) error {
	fixtures, err := rt.container.Fixtures.ListUpcoming(rt.ctx)
	if err != nil {
		return err
	}
	renderMatches(rt.out, fixtures)
	return nil
}

type leaguesCmd struct{}

func (c *leaguesCmd) Run(rt *runtime) error {
	leagues, err := rt.container.Standings.ListLeagues(rt.ctx)
	if err != nil {
		return err
	}
	renderLeagues(rt.out, leagues)
	return nil
}

type standingsCmd struct {
	League string `arg:"" help:"League id, see the leagues command."`
	Season string `help:"Season label such as 2024 or 2024/2025."`
}

func (c *standingsCmd) Run(rt *runtime) error {
	rows, err := rt.container.Standings.List(rt.ctx, c.League, c.Season)
	if err != nil {
		return err
	}
	renderStandings(rt.out, rows)
	return nil
}

type highlightsCmd struct {
	League string `help:"Only highlights of this competition name."`
}

func (c *highlightsCmd) Run(rt *runtime) error {
	items, err := rt.container.Highlights.List(rt.ctx, c.League)
	if err != nil {
		return err
	}
	renderHighlights(rt.out, items)
	return nil
}

type newsCmd struct{}

func (c *newsCmd) Run(rt *runtime) error {
	articles, err := rt.container.News.List(rt.ctx)
	if err != nil {
		return err
	}
	renderNews(rt.out, articles)
	return nil
}

type predictCmd struct {
	MatchID     string `help:"Build the request from a resolved match." xor:"source"`
	Team1       string `help:"Home team name." xor:"source"`
	Team2       string `help:"Away team name."`
	Date        string `help:"Match day as YYYY-MM-DD."`
	League      string `help:"League name."`
	PastResults string `help:"Recent results summary." default:"No past results available"`
	Team1Stats  string `help:"Home team stats summary." default:"No stats available"`
	Team2Stats  string `help:"Away team stats summary." default:"No stats available"`
}

func (c *predictCmd) Run(rt *runtime) error {
	req := prediction.Request{
		Team1Name:   c.Team1,
		Team2Name:   c.Team2,
		MatchDate:   c.Date,
		LeagueName:  c.League,
		PastResults: c.PastResults,
		Team1Stats:  c.Team1Stats,
		Team2Stats:  c.Team2Stats,
	}
	if c.MatchID != "" {
		built, err := rt.container.Predictions.Context(rt.ctx, c.MatchID)
		if err != nil {
			return err
		}
		req = built
	}

	result, err := rt.container.Predictions.Request(rt.ctx, req)
	if err != nil {
		return err
	}
	renderPrediction(rt.out, result)
	return nil
}
