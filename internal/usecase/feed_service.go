package usecase

import (
	"context"

	"github.com/sourcegraph/conc"

	"github.com/riskibarqy/goalquest/internal/domain/match"
	"github.com/riskibarqy/goalquest/internal/domain/news"
)

// HomeFeed is what the landing page shows.
type HomeFeed struct {
	Matches []match.Match
	News    []news.Article
}

type FeedService struct {
	matches *MatchService
	news    *NewsService
}

func NewFeedService(matches *MatchService, news *NewsService) *FeedService {
	return &FeedService{matches: matches, news: news}
}

// Home fetches matches and news together. Either half degrades to empty on
// its own.
func (s *FeedService) Home(ctx context.Context) (HomeFeed, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeedService.Home")
	defer span.End()

	feed := HomeFeed{Matches: []match.Match{}, News: []news.Article{}}

	var wg conc.WaitGroup
	wg.Go(func() {
		items, err := s.matches.ListLiveOrRecent(ctx, MatchFilter{})
		if err == nil && items != nil {
			feed.Matches = items
		}
	})
	wg.Go(func() {
		items, err := s.news.List(ctx)
		if err == nil && items != nil {
			feed.News = items
		}
	})
	wg.Wait()

	return feed, nil
}
