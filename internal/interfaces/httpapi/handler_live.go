package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/gorilla/websocket"

	"github.com/riskibarqy/goalquest/internal/domain/match"
	"github.com/riskibarqy/goalquest/internal/usecase"
)

const liveWriteTimeout = 10 * time.Second

// LiveStream upgrades to a websocket and pushes the full list of live matches
// once on connect and then on every poll tick. Each connection owns its
// ticker; a tick runs only after the previous push finished.
func (h *Handler) LiveStream(w http.ResponseWriter, r *http.Request) {
	filter := usecase.MatchFilter{
		League: strings.TrimSpace(r.URL.Query().Get("league")),
		Query:  strings.TrimSpace(r.URL.Query().Get("q")),
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WarnContext(r.Context(), "websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					h.logger.DebugContext(ctx, "live stream read failed", "error", err)
				}
				return
			}
		}
	}()

	h.logger.InfoContext(ctx, "live stream opened", "client_ip", resolveClientIP(r), "interval", h.livePollInterval.String())
	defer h.logger.InfoContext(ctx, "live stream closed", "client_ip", resolveClientIP(r))

	ticker := time.NewTicker(h.livePollInterval)
	defer ticker.Stop()

	for {
		if err := h.pushLiveFrame(ctx, conn, filter); err != nil {
			if ctx.Err() == nil {
				h.logger.WarnContext(ctx, "live stream write failed", "error", err)
			}
			return
		}

		select {
		case <-ctx.Done():
			_ = conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second),
			)
			return
		case <-ticker.C:
		}
	}
}

func (h *Handler) pushLiveFrame(ctx context.Context, conn *websocket.Conn, filter usecase.MatchFilter) error {
	items, err := h.services.Matches.ListLiveOrRecent(ctx, filter)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	live := make([]match.Match, 0, len(items))
	for _, m := range items {
		if m.Status == match.StatusLive {
			live = append(live, m)
		}
	}

	payload, err := sonic.Marshal(liveFrameDTO{
		Type:    "live_matches",
		At:      time.Now().UTC().Format(time.RFC3339),
		Matches: matchesToDTO(live),
	})
	if err != nil {
		return err
	}

	if err := conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, payload)
}
