package usecase

import (
	"errors"

	"github.com/riskibarqy/goalquest/internal/domain/prediction"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("resource not found")
	ErrPredictionFailed = prediction.ErrFailed
)
