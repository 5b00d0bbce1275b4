package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetHomeFeed(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetHomeFeed")
	defer span.End()

	feed, err := h.services.Feed.Home(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "home feed failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, homeFeedDTO{
		Matches: matchesToDTO(feed.Matches),
		News:    newsToDTO(feed.News),
	})
}

func (h *Handler) ListHighlights(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListHighlights")
	defer span.End()

	leagueName := strings.TrimSpace(r.URL.Query().Get("league"))
	items, err := h.services.Highlights.List(ctx, leagueName)
	if err != nil {
		h.logger.ErrorContext(ctx, "list highlights failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]highlightDTO, 0, len(items))
	for _, item := range items {
		out = append(out, highlightToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListNews(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListNews")
	defer span.End()

	items, err := h.services.News.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list news failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, newsToDTO(items))
}
