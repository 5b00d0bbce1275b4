package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) RequestPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RequestPrediction")
	defer span.End()

	var req predictionRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.services.Predictions.Request(ctx, req.toDomain())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, predictionDTO{
		Prediction:   result.Prediction,
		Confidence:   result.Confidence,
		SuggestedBet: result.SuggestedBet,
		Reasoning:    result.Reasoning,
	})
}

func (h *Handler) GetPredictionContext(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPredictionContext")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	req, err := h.services.Predictions.Context(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "prediction context failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, predictionRequest{
		Team1Name:   req.Team1Name,
		Team2Name:   req.Team2Name,
		MatchDate:   req.MatchDate,
		LeagueName:  req.LeagueName,
		PastResults: req.PastResults,
		Team1Stats:  req.Team1Stats,
		Team2Stats:  req.Team2Stats,
	})
}
