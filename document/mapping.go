package document

import (
	"bytes"
	"fmt"
)

// Range is a half-open byte interval [Start, End).
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (r Range) Len() int {
	return r.End - r.Start
}

func (r Range) Contains(offset int) bool {
	return r.Start <= offset && offset < r.End
}

// Mapping records that the normalized-text bytes at Normalized were copied
// verbatim from the source-text bytes at Original.
type Mapping struct {
	Original   Range `json:"original"`
	Normalized Range `json:"normalized"`
}

// VerifyMappings checks the provenance invariant: for every mapping,
// text[Normalized] must equal source[Original]. A violation means the
// builder's span arithmetic is broken, not that the document is malformed.
func VerifyMappings(source []byte, text string, mappings []Mapping) error {
	for i, m := range mappings {
		if m.Original.Start < 0 || m.Original.End > len(source) || m.Original.Start > m.Original.End {
			return fmt.Errorf("mapping %d: original range %v out of bounds", i, m.Original)
		}
		if m.Normalized.Start < 0 || m.Normalized.End > len(text) || m.Normalized.Start > m.Normalized.End {
			return fmt.Errorf("mapping %d: normalized range %v out of bounds", i, m.Normalized)
		}
		if m.Original.Len() != m.Normalized.Len() {
			return fmt.Errorf("mapping %d: length mismatch %d != %d", i, m.Original.Len(), m.Normalized.Len())
		}
		org := source[m.Original.Start:m.Original.End]
		norm := text[m.Normalized.Start:m.Normalized.End]
		if !bytes.Equal(org, []byte(norm)) {
			return fmt.Errorf("mapping %d: %q != %q", i, norm, org)
		}
	}
	return nil
}
