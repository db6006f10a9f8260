package remap

import "errors"

var (
	ErrEmptyInput    = errors.New("remap: empty input")
	ErrEmptyInterval = errors.New("remap: zero-length interval")
	ErrOverflow      = errors.New("remap: integer overflow")
	ErrOverlap       = errors.New("remap: overlapping map entries")
	ErrOddSeeds      = errors.New("remap: seed values do not form pairs")
)
