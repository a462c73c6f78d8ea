package format

import (
	"io"

	"github.com/dhamidi/xmltext/document"
)

// TreeEncoder writes the element tree as an indented outline, one element
// per line, optionally with line spans.
type TreeEncoder struct {
	w             io.Writer
	res           *document.Result
	withPositions bool
}

func NewTreeEncoder(w io.Writer, withPositions bool) *TreeEncoder {
	return &TreeEncoder{w: w, withPositions: withPositions}
}

func (e *TreeEncoder) Encode(res *document.Result) error {
	e.res = res
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeEncoder) MarshalText() ([]byte, error) {
	if e.withPositions {
		return []byte(e.res.Root.StringWithPositions()), nil
	}
	return []byte(e.res.Root.String()), nil
}
