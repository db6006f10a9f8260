package remap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPipeline(t *testing.T) {
	_, err := NewPipeline()
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = NewPipeline(nil)
	assert.Error(t, err)

	p := examplePipeline(t)
	assert.Equal(t, 7, p.Len())
	assert.Equal(t, "seed-to-soil", p.Stages()[0].Name())
	assert.Equal(t, "humidity-to-location", p.Stages()[6].Name())
}

func TestPipelineMap(t *testing.T) {
	p := examplePipeline(t)

	for seed, want := range map[uint64]uint64{79: 82, 14: 43, 55: 86, 13: 35} {
		assert.Equal(t, want, p.Map(seed), "seed %v", seed)
	}
}

func TestPipelineComposition(t *testing.T) {
	p := examplePipeline(t)

	for v := uint64(0); v < 120; v++ {
		want := v
		for _, m := range p.Stages() {
			want = m.Map(want)
		}
		got := p.Resolve(NewRangeSet(Interval{v, 1}))
		require.Equal(t, []Interval{{want, 1}}, got.Intervals(), "value %v", v)
	}
}

func TestPipelineTrace(t *testing.T) {
	p := examplePipeline(t)
	seeds := NewRangeSet(Interval{79, 14}, Interval{55, 13})

	trace := p.Trace(seeds)
	require.Len(t, trace, p.Len()+1)
	assert.Equal(t, seeds, trace[0])
	assert.Equal(t, p.Resolve(seeds), trace[len(trace)-1])

	for i, x := range trace {
		assert.Equal(t, uint64(27), x.Count(), "stage %v", i)
	}

	low, ok := trace[len(trace)-1].Min()
	require.True(t, ok)
	assert.Equal(t, uint64(46), low)
}

func TestPipelineStagesAreIndependent(t *testing.T) {
	m := mustRangeMap(t, "shift", [][3]uint64{{10, 0, 10}})
	p, err := NewPipeline(m, m)
	require.NoError(t, err)

	// the second stage sees [10,20), which the map leaves alone
	assert.Equal(t, []Interval{{10, 10}}, p.Resolve(NewRangeSet(Interval{0, 10})).Intervals())
	assert.Equal(t, MapperFunc(func(v uint64) uint64 { return m.Map(m.Map(v)) }).Map(3), p.Map(3))
}
