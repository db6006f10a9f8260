package remap

import (
	"sort"
	"strings"

	"github.com/b97tsk/rangeset"
)

// RangeSet is a set of integers stored as sorted, disjoint, non-adjacent
// intervals. The zero value is an empty set. A RangeSet is never modified
// once returned; every pipeline stage builds a fresh one.
type RangeSet struct {
	s rangeset.RangeSet[uint64]
}

// NewRangeSet returns the union of ivs. Overlapping or adjacent intervals
// are merged; empty ones are ignored.
func NewRangeSet(ivs ...Interval) RangeSet {
	var b builder
	for _, iv := range ivs {
		b.Add(iv)
	}
	return b.RangeSet()
}

func (x RangeSet) Len() int {
	return len(x.s)
}

func (x RangeSet) Empty() bool {
	return len(x.s) == 0
}

func (x RangeSet) Intervals() []Interval {
	ivs := make([]Interval, len(x.s))
	for i, r := range x.s {
		ivs[i] = Interval{r.Low, r.High - r.Low}
	}
	return ivs
}

// Min returns the smallest member, or false if x is empty.
func (x RangeSet) Min() (uint64, bool) {
	if len(x.s) == 0 {
		return 0, false
	}
	return x.s[0].Low, true
}

func (x RangeSet) Contains(v uint64) bool {
	i := sort.Search(len(x.s), func(i int) bool { return x.s[i].High > v })
	return i < len(x.s) && x.s[i].Low <= v
}

// Count returns the number of integers in x.
func (x RangeSet) Count() (n uint64) {
	for _, r := range x.s {
		n += r.High - r.Low
	}
	return
}

func (x RangeSet) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, r := range x.s {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(Interval{r.Low, r.High - r.Low}.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

type builder struct {
	s rangeset.RangeSet[uint64]
}

func (b *builder) Add(iv Interval) {
	b.s.AddRange(iv.Start, iv.End())
}

// RangeSet hands the accumulated set over and resets b.
func (b *builder) RangeSet() RangeSet {
	x := RangeSet{b.s}
	b.s = nil
	return x
}
