package document

import (
	"strings"

	"github.com/dhamidi/xmltext/scanner"
	"github.com/dhamidi/xmltext/textpos"
)

// Builder folds scanner events into an element tree and the normalized
// text buffer with its provenance mappings. All state is local to one
// builder, so independent parses never share anything.
//
// Events must be applied in document order; the open-element stack and the
// span arithmetic both depend on it.
type Builder struct {
	cfg      config
	src      []byte
	index    *textpos.Index
	stack    []*Element
	text     strings.Builder
	mappings []Mapping
	err      error

	// start is the boundary after which the next character data begins:
	// the position of the most recent element-open or element-close tag.
	start textpos.Position
}

func NewBuilder(src []byte, opts ...Option) *Builder {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Builder{
		cfg:   cfg,
		src:   src,
		index: textpos.NewIndex(src),
		stack: []*Element{{}},
	}
}

func (b *Builder) top() *Element {
	return b.stack[len(b.stack)-1]
}

// Depth reports how many elements are currently open, excluding the
// synthetic root.
func (b *Builder) Depth() int {
	return len(b.stack) - 1
}

// Apply processes one scanner event.
func (b *Builder) Apply(ev scanner.Event) {
	switch ev.Kind {
	case scanner.EventStartElement:
		b.startElement(ev)
	case scanner.EventText:
		b.characters(ev)
	case scanner.EventCDATA:
		b.top().CDATA = ev.Bytes
	case scanner.EventEndElement:
		b.endElement(ev)
	case scanner.EventError:
		if b.err == nil {
			b.err = &InterruptedParseError{Err: ev.Err}
		}
	}
}

func (b *Builder) startElement(ev scanner.Event) {
	el := &Element{
		Name:      ev.Name,
		Attr:      ev.Attr,
		StartLine: ev.Pos.Line,
	}
	b.top().AddChild(el)
	b.stack = append(b.stack, el)
	b.start = ev.Pos

	if b.cfg.paragraphTags[ev.Name] && b.text.Len() > 0 {
		b.text.WriteByte('\n')
	}
	if b.cfg.breakTags[ev.Name] {
		b.text.WriteByte('\n')
	}
}

func (b *Builder) characters(ev scanner.Event) {
	b.top().RawText += ev.Text
	if strings.TrimSpace(ev.Text) == "" {
		return
	}
	b.record(b.start, ev.Pos)
}

func (b *Builder) endElement(ev scanner.Event) {
	el := b.top()
	el.EndLine = ev.Pos.Line
	if b.cfg.trimCutset != "" {
		el.RawText = strings.Trim(el.RawText, b.cfg.trimCutset)
	}
	if len(b.stack) > 1 {
		b.stack = b.stack[:len(b.stack)-1]
	}
	// Text after this close tag is measured from the close boundary, not
	// from the open boundary of whatever element was just finished.
	b.start = ev.Pos
}

// record resolves the source span between the last tag boundary and the
// scanner's current position, strips boundary layout characters, appends
// the surviving source bytes to the normalized buffer and logs the
// provenance mapping. Resolution failures suppress the mapping silently;
// the raw text has already been retained on the owning element.
func (b *Builder) record(start, end textpos.Position) {
	startOffset, ok := b.index.Resolve(start.Line, start.Column)
	if !ok {
		return
	}
	endOffset, ok := b.index.Resolve(end.Line, end.Column)
	if !ok {
		return
	}

	// Step past the '>' of the preceding tag, then past any layout run.
	startOffset++
	for startOffset < endOffset && isLayout(b.src[startOffset]) {
		startOffset++
	}
	for endOffset > startOffset && isLayout(b.src[endOffset-1]) {
		endOffset--
	}
	if startOffset >= endOffset {
		return
	}

	chunk := b.src[startOffset:endOffset]
	original := Range{Start: startOffset, End: endOffset}
	normalized := Range{Start: b.text.Len(), End: b.text.Len() + len(chunk)}
	b.text.Write(chunk)
	b.mappings = append(b.mappings, Mapping{Original: original, Normalized: normalized})
}

func isLayout(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// Finish returns the completed parse outcome: the captured error if any
// event reported one, otherwise the root with the normalized text and its
// provenance table.
func (b *Builder) Finish() (*Result, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &Result{
		Root:     b.stack[0],
		Text:     b.text.String(),
		Mappings: b.mappings,
		Source:   b.src,
	}, nil
}
