package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/goalquest/internal/domain/league"
	"github.com/riskibarqy/goalquest/internal/domain/match"
	"github.com/riskibarqy/goalquest/internal/platform/logging"
)

const (
	fixtureWindow         = 7 * 24 * time.Hour
	fixtureDateLayout     = "2006-01-02"
	defaultFixtureWorkers = 4
)

// FixtureService lists upcoming matches for every configured league.
type FixtureService struct {
	leagues league.Repository
	source  match.FixtureSource
	workers int
	newPool func(size int) (*ants.Pool, error)
	now     func() time.Time
	logger  *logging.Logger
}

func NewFixtureService(leagues league.Repository, source match.FixtureSource, workers int, logger *logging.Logger) *FixtureService {
	if workers <= 0 {
		workers = defaultFixtureWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &FixtureService{
		leagues: leagues,
		source:  source,
		workers: workers,
		newPool: func(size int) (*ants.Pool, error) { return ants.NewPool(size) },
		now:     time.Now,
		logger:  logger.Named("fixture_service"),
	}
}

// ListUpcoming fetches the next seven days of fixtures, one pool task per
// league, ordered by kick-off.
func (s *FixtureService) ListUpcoming(ctx context.Context) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.ListUpcoming")
	defer span.End()

	out := make([]match.Match, 0)
	if s.source == nil {
		return out, nil
	}

	entries, err := s.leagues.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}
	if len(entries) == 0 {
		return out, nil
	}

	today := s.now().UTC()
	from := today.Format(fixtureDateLayout)
	to := today.Add(fixtureWindow).Format(fixtureDateLayout)

	pool, err := s.newPool(s.workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu      sync.Mutex
		workers sync.WaitGroup
	)
	for _, entry := range entries {
		entry := entry
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			fixtures, err := s.source.ListFixtures(ctx, entry.ID, from, to)
			if err != nil {
				s.logger.WarnContext(ctx, "list fixtures failed", "league_id", entry.ID, "error", err)
				return
			}
			mu.Lock()
			out = append(out, fixtures...)
			mu.Unlock()
		}); err != nil {
			workers.Done()
			// Tasks already queued still write to out.
			workers.Wait()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
