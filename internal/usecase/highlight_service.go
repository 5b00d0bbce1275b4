package usecase

import (
	"context"
	"strings"

	"github.com/riskibarqy/goalquest/internal/domain/highlight"
	"github.com/riskibarqy/goalquest/internal/platform/logging"
)

type HighlightService struct {
	source highlight.Source
	logger *logging.Logger
}

func NewHighlightService(source highlight.Source, logger *logging.Logger) *HighlightService {
	if logger == nil {
		logger = logging.Default()
	}
	return &HighlightService{source: source, logger: logger.Named("highlight_service")}
}

// List returns highlights, optionally only those of one competition name.
func (s *HighlightService) List(ctx context.Context, leagueName string) ([]highlight.Highlight, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HighlightService.List")
	defer span.End()

	out := make([]highlight.Highlight, 0)
	if s.source == nil {
		return out, nil
	}

	items, err := s.source.ListHighlights(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "list highlights failed", "error", err)
		return out, nil
	}

	leagueName = strings.TrimSpace(leagueName)
	for _, item := range items {
		if leagueName != "" && !strings.EqualFold(strings.TrimSpace(item.League), leagueName) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}
