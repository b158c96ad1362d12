package report

import "errors"

// Domain errors for report generation
var (
	// Input shape errors
	ErrNoRecords    = errors.New("input contains no usable records")
	ErrMissingField = errors.New("required field missing from input")

	// Layout invariant violations. These indicate a programming fault in
	// planning or packing, not bad input, and abort the run.
	ErrColumnBounds = errors.New("table column count outside allowed bounds")
	ErrBlockOverlap = errors.New("block rectangles overlap")

	// Persistence errors
	ErrSaveFailed = errors.New("failed to save generated document")
)
