// Package remap resolves values and whole ranges of values through chains
// of piecewise-linear range maps.
package remap

import (
	"fmt"
	"math/bits"
)

// Interval is the half-open range [Start, Start+Length).
type Interval struct {
	Start, Length uint64
}

// NewInterval returns an Interval after checking that it is non-empty and
// that its end is representable.
func NewInterval(start, length uint64) (Interval, error) {
	iv := Interval{start, length}
	return iv, iv.validate()
}

func (iv Interval) validate() error {
	if iv.Length == 0 {
		return fmt.Errorf("%w: start %v", ErrEmptyInterval, iv.Start)
	}
	if _, carry := bits.Add64(iv.Start, iv.Length, 0); carry != 0 {
		return fmt.Errorf("%w: %v+%v", ErrOverflow, iv.Start, iv.Length)
	}
	return nil
}

// End returns the exclusive upper bound.
func (iv Interval) End() uint64 {
	return iv.Start + iv.Length
}

func (iv Interval) Contains(v uint64) bool {
	return v >= iv.Start && v-iv.Start < iv.Length
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%v,%v)", iv.Start, iv.End())
}

// SeedsFromPairs reads values as (start, length) pairs.
func SeedsFromPairs(values []uint64) ([]Interval, error) {
	if len(values)%2 != 0 {
		return nil, fmt.Errorf("%w: %v values", ErrOddSeeds, len(values))
	}
	seeds := make([]Interval, 0, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		iv, err := NewInterval(values[i], values[i+1])
		if err != nil {
			return nil, err
		}
		seeds = append(seeds, iv)
	}
	return seeds, nil
}

// SeedsFromValues treats every value as a seed of its own.
func SeedsFromValues(values []uint64) ([]Interval, error) {
	seeds := make([]Interval, len(values))
	for i, v := range values {
		iv, err := NewInterval(v, 1)
		if err != nil {
			return nil, err
		}
		seeds[i] = iv
	}
	return seeds, nil
}
