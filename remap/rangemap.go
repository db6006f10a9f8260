package remap

import (
	"fmt"
	"math/bits"
	"sort"
)

// MapEntry sends Source onto [Dest, Dest+Source.Length).
type MapEntry struct {
	Source Interval
	Dest   uint64
}

func (e MapEntry) validate() error {
	if err := e.Source.validate(); err != nil {
		return err
	}
	if err := (Interval{e.Dest, e.Source.Length}).validate(); err != nil {
		return fmt.Errorf("destination of %v: %w", e.Source, err)
	}
	return nil
}

// translate maps v, which must lie in e.Source.
func (e MapEntry) translate(v uint64) uint64 {
	return e.Dest + (v - e.Source.Start)
}

// RangeMap is one stage of a Pipeline. Values not covered by any entry map
// to themselves. A RangeMap is immutable after NewRangeMap returns.
type RangeMap struct {
	name    string
	entries []MapEntry
}

// NewRangeMap sorts a copy of entries by source start and rejects empty,
// overflowing or overlapping source intervals.
func NewRangeMap(name string, entries []MapEntry) (*RangeMap, error) {
	sorted := make([]MapEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Source.Start < sorted[j].Source.Start
	})

	for i, e := range sorted {
		if err := e.validate(); err != nil {
			return nil, fmt.Errorf("map %v: %w", name, err)
		}
		if i > 0 && sorted[i-1].Source.End() > e.Source.Start {
			return nil, fmt.Errorf("map %v: %w: %v and %v", name, ErrOverlap, sorted[i-1].Source, e.Source)
		}
	}

	return &RangeMap{name: name, entries: sorted}, nil
}

func (m *RangeMap) Name() string {
	return m.name
}

// Entries returns the entries sorted by source start.
func (m *RangeMap) Entries() []MapEntry {
	return append([]MapEntry(nil), m.entries...)
}

// search returns the index of the first entry whose source ends after v.
func (m *RangeMap) search(v uint64) int {
	return sort.Search(len(m.entries), func(i int) bool { return m.entries[i].Source.End() > v })
}

func (m *RangeMap) Map(v uint64) uint64 {
	i := m.search(v)
	if i < len(m.entries) && m.entries[i].Source.Contains(v) {
		return m.entries[i].translate(v)
	}
	return v
}

// Apply splits iv along the entries' source bounds and returns the image of
// every piece in input order. Pieces outside all entries are returned
// unchanged. The pieces partition iv. Apply panics if iv's end does not fit
// in a uint64; intervals from NewInterval or a RangeSet always do.
func (m *RangeMap) Apply(iv Interval) []Interval {
	if _, carry := bits.Add64(iv.Start, iv.Length, 0); carry != 0 {
		panic(fmt.Sprintf("remap: Apply: %v+%v overflows", iv.Start, iv.Length))
	}

	var out []Interval

	cur, end := iv.Start, iv.End()
	for i := m.search(cur); cur < end; i++ {
		if i == len(m.entries) || m.entries[i].Source.Start >= end {
			out = append(out, Interval{cur, end - cur})
			break
		}

		e := m.entries[i]
		if cur < e.Source.Start {
			out = append(out, Interval{cur, e.Source.Start - cur})
			cur = e.Source.Start
		}

		high := min(end, e.Source.End())
		out = append(out, Interval{e.translate(cur), high - cur})
		cur = high
	}

	return out
}

// ApplySet returns the union of Apply over every interval of x.
func (m *RangeMap) ApplySet(x RangeSet) RangeSet {
	var b builder
	for _, iv := range x.Intervals() {
		for _, piece := range m.Apply(iv) {
			b.Add(piece)
		}
	}
	return b.RangeSet()
}
