package prediction

import (
	"context"
	"errors"
)

// FailureMessage is the only text shown to users when insight generation fails.
const FailureMessage = "Failed to generate insights. Please try again."

// ErrFailed is returned for every predictor failure; the cause is only logged.
var ErrFailed = errors.New(FailureMessage)

// Request is the payload sent to the insights collaborator.
type Request struct {
	Team1Name   string `validate:"required,max=100"`
	Team2Name   string `validate:"required,max=100"`
	MatchDate   string `validate:"required,datetime=2006-01-02"`
	LeagueName  string `validate:"required,max=100"`
	PastResults string `validate:"required,max=4000"`
	Team1Stats  string `validate:"required,max=4000"`
	Team2Stats  string `validate:"required,max=4000"`
}

// Result is the collaborator's answer.
type Result struct {
	Prediction   string
	Confidence   int
	SuggestedBet string
	Reasoning    string
}

// Predictor generates a pre-match insight.
type Predictor interface {
	Predict(ctx context.Context, req Request) (Result, error)
}

// ClampConfidence forces a confidence into 0..100.
func ClampConfidence(v int) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
