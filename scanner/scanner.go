// Package scanner turns raw XML bytes into a flat stream of structural
// events: element start, character data, CDATA, element end, and parse
// errors. Every event carries the scanner's 1-based (line, column)
// position so consumers can map event boundaries back to source offsets.
package scanner

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"

	"github.com/dhamidi/xmltext/textpos"
)

type EventKind int

const (
	EventEOF EventKind = iota
	EventStartElement
	EventText
	EventCDATA
	EventEndElement
	EventError
)

var eventKindNames = map[EventKind]string{
	EventEOF:          "EOF",
	EventStartElement: "StartElement",
	EventText:         "Text",
	EventCDATA:        "CDATA",
	EventEndElement:   "EndElement",
	EventError:        "Error",
}

func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Event is one scanner callback, reified as a value so the tree builder
// can be driven without a live scanner.
//
// Position conventions: start- and end-element events report the closing
// '>' of their tag; text and CDATA events report the position one past the
// final byte of their content in the source.
type Event struct {
	Kind  EventKind
	Name  string
	Attr  map[string]string
	Text  string // decoded character data for EventText
	Bytes []byte // literal payload for EventCDATA
	Pos   textpos.Position
	Err   error
}

type Option func(*Scanner)

// KeepNamespaces qualifies element and attribute names with their
// namespace as "space:local". The default keeps only the local part.
func KeepNamespaces() Option {
	return func(s *Scanner) {
		s.keepNamespaces = true
	}
}

type Scanner struct {
	src            []byte
	dec            *xml.Decoder
	index          *textpos.Index
	keepNamespaces bool
	done           bool
}

func New(src []byte, opts ...Option) *Scanner {
	s := &Scanner{
		src:   src,
		dec:   xml.NewDecoder(bytes.NewReader(src)),
		index: textpos.NewIndex(src),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Index exposes the line-break index built over the source so consumers
// can share it instead of scanning the text again.
func (s *Scanner) Index() *textpos.Index {
	return s.index
}

var cdataOpen = []byte("<![CDATA[")

// Next returns the next structural event. After an EventError or EventEOF
// the scanner is exhausted and keeps returning EventEOF.
func (s *Scanner) Next() Event {
	for {
		if s.done {
			return Event{Kind: EventEOF, Pos: s.index.Locate(len(s.src))}
		}

		start := s.dec.InputOffset()
		tok, err := s.dec.Token()
		if err != nil {
			s.done = true
			if errors.Is(err, io.EOF) {
				return Event{Kind: EventEOF, Pos: s.index.Locate(len(s.src))}
			}
			return Event{Kind: EventError, Err: err, Pos: s.index.Locate(int(start))}
		}
		end := int(s.dec.InputOffset())

		switch t := tok.(type) {
		case xml.StartElement:
			return Event{
				Kind: EventStartElement,
				Name: s.qualify(t.Name),
				Attr: s.attrMap(t.Attr),
				Pos:  s.index.Locate(end - 1),
			}
		case xml.EndElement:
			return Event{
				Kind: EventEndElement,
				Name: s.qualify(t.Name),
				Pos:  s.index.Locate(end - 1),
			}
		case xml.CharData:
			if bytes.HasPrefix(s.src[start:], cdataOpen) {
				return Event{
					Kind:  EventCDATA,
					Bytes: []byte(t.Copy()),
					Pos:   s.index.Locate(end),
				}
			}
			return Event{
				Kind: EventText,
				Text: string(t),
				Pos:  s.index.Locate(end),
			}
		default:
			// Comments, processing instructions and directives carry no
			// structure or character data; skip them.
		}
	}
}

func (s *Scanner) qualify(name xml.Name) string {
	if s.keepNamespaces && name.Space != "" {
		return name.Space + ":" + name.Local
	}
	return name.Local
}

func (s *Scanner) attrMap(attrs []xml.Attr) map[string]string {
	if len(attrs) == 0 {
		return nil
	}
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[s.qualify(a.Name)] = a.Value
	}
	return m
}
