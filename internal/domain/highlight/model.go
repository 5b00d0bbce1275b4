package highlight

import "context"

// Highlight is a post-match video item.
type Highlight struct {
	ID        string
	Title     string
	Thumbnail string
	League    string
	Date      string
	MatchID   string
	Embed     string
	Videos    []Video
}

// Video is one clip attached to a highlight.
type Video struct {
	ID       string
	Title    string
	Embed    string
	EmbedURL string
}

// Source lists highlight videos.
type Source interface {
	ListHighlights(ctx context.Context) ([]Highlight, error)
}
