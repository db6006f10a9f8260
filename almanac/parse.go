package almanac

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

type grammar struct {
	Seeds []uint64      `parser:"\"seeds\" \":\" @Int*"`
	Maps  []*mapGrammar `parser:"@@*"`
}

type mapGrammar struct {
	From    string          `parser:"@Ident \"-\" \"to\" \"-\""`
	To      string          `parser:"@Ident \"map\" \":\""`
	Entries []*entryGrammar `parser:"@@*"`
}

type entryGrammar struct {
	Dest   uint64 `parser:"@Int"`
	Source uint64 `parser:"@Int"`
	Length uint64 `parser:"@Int"`
}

var parser = participle.MustBuild[grammar]()

// ParseError reports malformed almanac text.
type ParseError struct {
	Pos lexer.Position
	Err error
}

func (e *ParseError) Error() string {
	if e.Pos.Line == 0 {
		return "almanac: " + e.Err.Error()
	}
	return fmt.Sprintf("almanac: line %v column %v: %v", e.Pos.Line, e.Pos.Column, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func Parse(r io.Reader) (*Almanac, error) {
	g, err := parser.Parse("", r)
	if err != nil {
		perr := &ParseError{Err: err}
		var pe participle.Error
		if errors.As(err, &pe) {
			perr.Pos = pe.Position()
			perr.Err = errors.New(pe.Message())
		}
		return nil, perr
	}

	a := &Almanac{Seeds: g.Seeds, Maps: make([]Map, len(g.Maps))}
	for i, m := range g.Maps {
		entries := make([]Entry, len(m.Entries))
		for j, e := range m.Entries {
			entries[j] = Entry{Dest: e.Dest, Source: e.Source, Length: e.Length}
		}
		a.Maps[i] = Map{From: m.From, To: m.To, Entries: entries}
	}
	return a, nil
}

func ParseString(s string) (*Almanac, error) {
	return Parse(strings.NewReader(s))
}
