// Package format renders parse results for the CLI and the web UI.
package format

import (
	"encoding"

	"github.com/dhamidi/xmltext/document"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(res *document.Result) error
}
