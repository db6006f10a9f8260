package remap

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRangeSet(t *testing.T) {
	var s RangeSet

	expect := func(title, expected string) {
		if fmt.Sprint(s) != expected {
			t.Fatalf("%v: got %v, want %v", title, s, expected)
		}
	}

	expect("case 1", "[]")
	s = NewRangeSet(Interval{5, 0})
	expect("case 2", "[]")
	s = NewRangeSet(Interval{1, 1})
	expect("case 3", "[[1,2)]")
	s = NewRangeSet(Interval{1, 1}, Interval{0, 1})
	expect("case 4", "[[0,2)]")
	s = NewRangeSet(Interval{0, 1}, Interval{2, 1}, Interval{1, 1})
	expect("case 5", "[[0,3)]")
	s = NewRangeSet(Interval{0, 3}, Interval{1, 1})
	expect("case 6", "[[0,3)]")
	s = NewRangeSet(Interval{4, 3}, Interval{0, 3})
	expect("case 7", "[[0,3) [4,7)]")
	s = NewRangeSet(Interval{4, 3}, Interval{0, 3}, Interval{2, 3})
	expect("case 8", "[[0,7)]")
	s = NewRangeSet(Interval{79, 14}, Interval{55, 13})
	expect("case 9", "[[55,68) [79,93)]")
}

func TestRangeSetQueries(t *testing.T) {
	s := NewRangeSet(Interval{79, 14}, Interval{55, 13})

	low, ok := s.Min()
	assert.True(t, ok)
	assert.Equal(t, uint64(55), low)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, uint64(27), s.Count())
	assert.Equal(t, []Interval{{55, 13}, {79, 14}}, s.Intervals())

	assert.False(t, s.Contains(54))
	assert.True(t, s.Contains(55))
	assert.True(t, s.Contains(67))
	assert.False(t, s.Contains(68))
	assert.True(t, s.Contains(92))
	assert.False(t, s.Contains(93))

	var empty RangeSet
	_, ok = empty.Min()
	assert.False(t, ok)
	assert.True(t, empty.Empty())
	assert.Zero(t, empty.Count())
}
