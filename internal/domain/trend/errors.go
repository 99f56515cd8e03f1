package trend

import "errors"

// Trend domain errors
var (
	ErrEmptyWindow = errors.New("no classified days in the requested window")
)
