package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/xmltext/document"
)

type JSONEncoder struct {
	w   io.Writer
	res *document.Result
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(res *document.Result) error {
	e.res = res
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(e.buildResultData(), "", "  ")
}

type jsonResult struct {
	Root     []*jsonElement     `json:"root"`
	Text     string             `json:"text"`
	Mappings []document.Mapping `json:"mappings,omitempty"`
}

type jsonElement struct {
	Name       string            `json:"name"`
	Attributes map[string]string `json:"attributes,omitempty"`
	RawText    string            `json:"rawText,omitempty"`
	CDATA      string            `json:"cdata,omitempty"`
	Span       jsonSpan          `json:"span"`
	Children   []*jsonElement    `json:"children,omitempty"`
}

type jsonSpan struct {
	StartLine int `json:"startLine"`
	EndLine   int `json:"endLine"`
}

func (e *JSONEncoder) buildResultData() jsonResult {
	data := jsonResult{
		Text:     e.res.Text,
		Mappings: e.res.Mappings,
	}
	for _, child := range e.res.Root.Children {
		data.Root = append(data.Root, elementToJSON(child))
	}
	return data
}

func elementToJSON(el *document.Element) *jsonElement {
	je := &jsonElement{
		Name:       el.Name,
		Attributes: el.Attr,
		RawText:    el.RawText,
		CDATA:      string(el.CDATA),
		Span:       jsonSpan{StartLine: el.StartLine, EndLine: el.EndLine},
	}
	for _, child := range el.Children {
		je.Children = append(je.Children, elementToJSON(child))
	}
	return je
}
