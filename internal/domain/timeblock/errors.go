package timeblock

import "errors"

// Time block domain errors
var (
	ErrTimeBlockNotFound = errors.New("time block not found")
)
