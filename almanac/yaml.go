package almanac

import (
	"io"

	"gopkg.in/yaml.v3"
)

// DecodeYAML reads an almanac stored as
//
//	seeds: [79, 14, 55, 13]
//	maps:
//	  - from: seed
//	    to: soil
//	    entries:
//	      - {dest: 50, source: 98, length: 2}
//
// Unknown keys are rejected.
func DecodeYAML(r io.Reader) (*Almanac, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var a Almanac
	if err := dec.Decode(&a); err != nil {
		return nil, &ParseError{Err: err}
	}
	return &a, nil
}

func (a *Almanac) EncodeYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(a); err != nil {
		return err
	}
	return enc.Close()
}
