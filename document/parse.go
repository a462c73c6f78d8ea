// Package document builds a navigable element tree from a stream of XML
// parse events, together with a normalized text buffer and an exact
// provenance mapping from every normalized range back to the source range
// it came from.
package document

import (
	"github.com/dhamidi/xmltext/scanner"
)

// Result is the outcome of a successful parse. It is read-only after
// Parse returns.
type Result struct {
	Root     *Element
	Text     string
	Mappings []Mapping
	Source   []byte
}

// InterruptedParseError wraps the diagnostic of the underlying scanner
// when a document cannot be parsed to completion.
type InterruptedParseError struct {
	Err error
}

func (e *InterruptedParseError) Error() string {
	return "parse interrupted: " + e.Err.Error()
}

func (e *InterruptedParseError) Unwrap() error {
	return e.Err
}

// Parse scans src and builds the element tree, normalized text and
// provenance table in one pass. On the first scanner error it returns
// only an *InterruptedParseError; no partial tree is exposed.
//
// Each call owns all of its state, so concurrent parses of independent
// inputs need no locking.
func Parse(src []byte, opts ...Option) (*Result, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	var scanOpts []scanner.Option
	if cfg.keepNamespaces {
		scanOpts = append(scanOpts, scanner.KeepNamespaces())
	}

	s := scanner.New(src, scanOpts...)
	b := NewBuilder(src, opts...)
	for {
		ev := s.Next()
		if ev.Kind == scanner.EventEOF {
			break
		}
		b.Apply(ev)
	}
	return b.Finish()
}

// OriginalFor maps a half-open range of the normalized text back to the
// source range it was copied from. It succeeds only when the range falls
// entirely inside a single provenance mapping.
func (r *Result) OriginalFor(normalized Range) (Range, bool) {
	for _, m := range r.Mappings {
		if m.Normalized.Start <= normalized.Start && normalized.End <= m.Normalized.End {
			shift := m.Original.Start - m.Normalized.Start
			return Range{Start: normalized.Start + shift, End: normalized.End + shift}, true
		}
	}
	return Range{}, false
}
