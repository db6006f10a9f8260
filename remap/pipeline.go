package remap

import "fmt"

// Pipeline applies its stages in order. It holds no state besides the
// stages, so one Pipeline may be resolved from many goroutines.
type Pipeline struct {
	stages []*RangeMap
}

func NewPipeline(stages ...*RangeMap) (*Pipeline, error) {
	if len(stages) == 0 {
		return nil, fmt.Errorf("%w: pipeline has no stages", ErrEmptyInput)
	}
	for i, m := range stages {
		if m == nil {
			return nil, fmt.Errorf("remap: stage %v is nil", i)
		}
	}
	return &Pipeline{stages: append([]*RangeMap(nil), stages...)}, nil
}

func (p *Pipeline) Stages() []*RangeMap {
	return append([]*RangeMap(nil), p.stages...)
}

func (p *Pipeline) Len() int {
	return len(p.stages)
}

// Resolve threads x through every stage and returns the final set.
func (p *Pipeline) Resolve(x RangeSet) RangeSet {
	for _, m := range p.stages {
		x = m.ApplySet(x)
	}
	return x
}

// Trace is like Resolve but keeps every intermediate set. The first element
// is x itself; the last is what Resolve returns.
func (p *Pipeline) Trace(x RangeSet) []RangeSet {
	trace := make([]RangeSet, 0, len(p.stages)+1)
	trace = append(trace, x)
	for _, m := range p.stages {
		x = m.ApplySet(x)
		trace = append(trace, x)
	}
	return trace
}

func (p *Pipeline) Map(v uint64) uint64 {
	for _, m := range p.stages {
		v = m.Map(v)
	}
	return v
}
