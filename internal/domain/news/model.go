package news

import "context"

// PlaceholderImage is used for articles without a picture.
const PlaceholderImage = "https://picsum.photos/seed/news-fallback/800/450"

// Article is a football news item.
type Article struct {
	ID       string
	Title    string
	Source   string
	Date     string
	ImageURL string
	URL      string
	Summary  string
}

// Source lists the latest football news.
type Source interface {
	ListNews(ctx context.Context) ([]Article, error)
}
