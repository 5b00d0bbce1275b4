package usecase

import (
	"context"

	"github.com/riskibarqy/goalquest/internal/domain/news"
	"github.com/riskibarqy/goalquest/internal/platform/logging"
)

type NewsService struct {
	source news.Source
	logger *logging.Logger
}

func NewNewsService(source news.Source, logger *logging.Logger) *NewsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &NewsService{source: source, logger: logger.Named("news_service")}
}

func (s *NewsService) List(ctx context.Context) ([]news.Article, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NewsService.List")
	defer span.End()

	if s.source == nil {
		return []news.Article{}, nil
	}
	articles, err := s.source.ListNews(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "list news failed", "error", err)
		return []news.Article{}, nil
	}
	if articles == nil {
		articles = []news.Article{}
	}
	return articles, nil
}
