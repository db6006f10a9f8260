// Package almanac reads seed almanacs and turns them into remapping
// pipelines.
//
// The text form is
//
//	seeds: 79 14 55 13
//
//	seed-to-soil map:
//	50 98 2
//	52 50 48
//
// with one block per stage. The same data can be stored as YAML, see
// DecodeYAML.
package almanac

import (
	"errors"
	"fmt"

	"github.com/b97tsk/almanac/remap"
)

var ErrBrokenChain = errors.New("almanac: stages do not form a chain")

type Almanac struct {
	Seeds []uint64 `yaml:"seeds,flow"`
	Maps  []Map    `yaml:"maps"`
}

// Map converts values of category From into category To.
type Map struct {
	From    string  `yaml:"from"`
	To      string  `yaml:"to"`
	Entries []Entry `yaml:"entries"`
}

type Entry struct {
	Dest   uint64 `yaml:"dest"`
	Source uint64 `yaml:"source"`
	Length uint64 `yaml:"length"`
}

func (m Map) Name() string {
	return m.From + "-to-" + m.To
}

func (m Map) RangeMap() (*remap.RangeMap, error) {
	entries := make([]remap.MapEntry, len(m.Entries))
	for i, e := range m.Entries {
		entries[i] = remap.MapEntry{
			Source: remap.Interval{Start: e.Source, Length: e.Length},
			Dest:   e.Dest,
		}
	}
	return remap.NewRangeMap(m.Name(), entries)
}

// Pipeline builds one stage per map, in file order. Each map must start
// from the category the previous one ended in.
func (a *Almanac) Pipeline() (*remap.Pipeline, error) {
	stages := make([]*remap.RangeMap, 0, len(a.Maps))
	for i, m := range a.Maps {
		if i > 0 && a.Maps[i-1].To != m.From {
			return nil, fmt.Errorf("%w: %v follows %v", ErrBrokenChain, m.Name(), a.Maps[i-1].Name())
		}
		rm, err := m.RangeMap()
		if err != nil {
			return nil, err
		}
		stages = append(stages, rm)
	}
	return remap.NewPipeline(stages...)
}

// SeedRanges reads the seed line as (start, length) pairs.
func (a *Almanac) SeedRanges() ([]remap.Interval, error) {
	return remap.SeedsFromPairs(a.Seeds)
}

// SeedValues reads the seed line as individual seeds.
func (a *Almanac) SeedValues() ([]remap.Interval, error) {
	return remap.SeedsFromValues(a.Seeds)
}
