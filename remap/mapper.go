package remap

// Mapper maps a single value.
type Mapper interface {
	Map(v uint64) uint64
}

type MapperFunc func(v uint64) uint64

func (f MapperFunc) Map(v uint64) uint64 {
	return f(v)
}

var (
	_ Mapper = (*RangeMap)(nil)
	_ Mapper = (*Pipeline)(nil)
)
