package document

import (
	"sort"
	"strconv"
	"strings"
)

// Element is one node of the parsed tree. The synthetic root returned by
// Parse has an empty Name and exists only to anchor the document's
// top-level elements; it never matches queries.
//
// Elements are mutated only while they sit on the builder's open-element
// stack. Once their end tag has been processed they are final, and a
// completed parse result is safe to share between goroutines.
type Element struct {
	Name      string
	Attr      map[string]string
	Children  []*Element
	Parent    *Element
	RawText   string
	CDATA     []byte
	StartLine int
	EndLine   int
}

func (e *Element) IsRoot() bool {
	return e.Parent == nil
}

func (e *Element) AddChild(child *Element) {
	if child != nil {
		child.Parent = e
		e.Children = append(e.Children, child)
	}
}

// Attribute returns the value of the named attribute, or "".
func (e *Element) Attribute(name string) string {
	return e.Attr[name]
}

func (e *Element) FirstChildNamed(name string) *Element {
	for _, child := range e.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

func (e *Element) ChildrenNamed(name string) []*Element {
	var result []*Element
	for _, child := range e.Children {
		if child.Name == name {
			result = append(result, child)
		}
	}
	return result
}

// Find returns all descendants with the given name, in document order.
// The receiver itself is never included.
func (e *Element) Find(name string) []*Element {
	var result []*Element
	for _, child := range e.Children {
		if child.Name == name {
			result = append(result, child)
		}
		result = append(result, child.Find(name)...)
	}
	return result
}

// AtLine returns the innermost element whose line span contains the given
// 1-based line, or nil if no element covers it.
func (e *Element) AtLine(line int) *Element {
	for _, child := range e.Children {
		if child.StartLine <= line && line <= child.EndLine {
			if inner := child.AtLine(line); inner != nil {
				return inner
			}
			return child
		}
	}
	return nil
}

func (e *Element) String() string {
	return e.stringIndent(0, false)
}

func (e *Element) StringWithPositions() string {
	return e.stringIndent(0, true)
}

func (e *Element) stringIndent(indent int, showPositions bool) string {
	var sb strings.Builder
	for i := 0; i < indent; i++ {
		sb.WriteString("  ")
	}

	name := e.Name
	if e.IsRoot() {
		name = "#document"
	}
	sb.WriteString(name)
	if showPositions && !e.IsRoot() {
		sb.WriteString(" [")
		sb.WriteString(strconv.Itoa(e.StartLine))
		sb.WriteString("-")
		sb.WriteString(strconv.Itoa(e.EndLine))
		sb.WriteString("]")
	}
	keys := make([]string, 0, len(e.Attr))
	for k := range e.Attr {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(" ")
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(e.Attr[k])
	}
	sb.WriteString("\n")

	for _, child := range e.Children {
		sb.WriteString(child.stringIndent(indent+1, showPositions))
	}
	return sb.String()
}
