package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/xmltext/document"
)

// TextEncoder writes the normalized text, optionally followed by the
// provenance table mapping each normalized range to its source range.
type TextEncoder struct {
	w       io.Writer
	res     *document.Result
	withMap bool
}

func NewTextEncoder(w io.Writer, withMap bool) *TextEncoder {
	return &TextEncoder{w: w, withMap: withMap}
}

func (e *TextEncoder) Encode(res *document.Result) error {
	e.res = res
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	sb.WriteString(e.res.Text)
	sb.WriteString("\n")

	if e.withMap {
		sb.WriteString("\n")
		for _, m := range e.res.Mappings {
			fmt.Fprintf(&sb, "[%d,%d) <- [%d,%d) %q\n",
				m.Normalized.Start, m.Normalized.End,
				m.Original.Start, m.Original.End,
				e.res.Text[m.Normalized.Start:m.Normalized.End])
		}
	}

	return []byte(sb.String()), nil
}
