package domain

import "errors"

var (
	// ErrEmptySeries means the provider returned no bars for a ticker.
	ErrEmptySeries = errors.New("empty price series")

	// ErrInsufficientHistory means the series is shorter than the
	// longest indicator window and must not be evaluated.
	ErrInsufficientHistory = errors.New("insufficient price history")

	// ErrUndefinedIndicator means a required indicator value is missing
	// or NaN at the point of evaluation.
	ErrUndefinedIndicator = errors.New("undefined indicator value")
)
