package remap

import "testing"

// exampleStages is the seven-stage almanac from the puzzle statement,
// written as (dest, source, length) triples.
var exampleStages = []struct {
	name    string
	triples [][3]uint64
}{
	{"seed-to-soil", [][3]uint64{{50, 98, 2}, {52, 50, 48}}},
	{"soil-to-fertilizer", [][3]uint64{{0, 15, 37}, {37, 52, 2}, {39, 0, 15}}},
	{"fertilizer-to-water", [][3]uint64{{49, 53, 8}, {0, 11, 42}, {42, 0, 7}, {57, 7, 4}}},
	{"water-to-light", [][3]uint64{{88, 18, 7}, {18, 25, 70}}},
	{"light-to-temperature", [][3]uint64{{45, 77, 23}, {81, 45, 19}, {68, 64, 13}}},
	{"temperature-to-humidity", [][3]uint64{{0, 69, 1}, {1, 0, 69}}},
	{"humidity-to-location", [][3]uint64{{60, 56, 37}, {56, 93, 4}}},
}

var exampleSeeds = []uint64{79, 14, 55, 13}

func mustRangeMap(t testing.TB, name string, triples [][3]uint64) *RangeMap {
	t.Helper()
	entries := make([]MapEntry, len(triples))
	for i, tr := range triples {
		entries[i] = MapEntry{Source: Interval{tr[1], tr[2]}, Dest: tr[0]}
	}
	m, err := NewRangeMap(name, entries)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func examplePipeline(t testing.TB) *Pipeline {
	t.Helper()
	stages := make([]*RangeMap, len(exampleStages))
	for i, s := range exampleStages {
		stages[i] = mustRangeMap(t, s.name, s.triples)
	}
	p, err := NewPipeline(stages...)
	if err != nil {
		t.Fatal(err)
	}
	return p
}
