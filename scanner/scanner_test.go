package scanner

import (
	"bytes"
	"testing"
)

func collect(t *testing.T, input string, opts ...Option) []Event {
	t.Helper()
	s := New([]byte(input), opts...)
	var events []Event
	for {
		ev := s.Next()
		events = append(events, ev)
		if ev.Kind == EventEOF || ev.Kind == EventError {
			return events
		}
	}
}

func kinds(events []Event) []EventKind {
	out := make([]EventKind, len(events))
	for i, ev := range events {
		out[i] = ev.Kind
	}
	return out
}

func TestScannerEventSequence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []EventKind
	}{
		{"empty element", "<a/>", []EventKind{EventStartElement, EventEndElement, EventEOF}},
		{"text", "<a>x</a>", []EventKind{EventStartElement, EventText, EventEndElement, EventEOF}},
		{"nested", "<a><b/></a>", []EventKind{EventStartElement, EventStartElement, EventEndElement, EventEndElement, EventEOF}},
		{"cdata", "<a><![CDATA[x]]></a>", []EventKind{EventStartElement, EventCDATA, EventEndElement, EventEOF}},
		{"comment skipped", "<a><!-- hi --></a>", []EventKind{EventStartElement, EventEndElement, EventEOF}},
		{"prolog skipped", "<?xml version=\"1.0\"?><a/>", []EventKind{EventStartElement, EventEndElement, EventEOF}},
		{"mismatched close", "<root><a></root>", []EventKind{EventStartElement, EventStartElement, EventError}},
		{"unclosed at eof", "<root>", []EventKind{EventStartElement, EventError}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kinds(collect(t, tt.input))
			if len(got) != len(tt.expected) {
				t.Fatalf("got %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("event %d: got %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestScannerAttributes(t *testing.T) {
	events := collect(t, `<item id="7" lang="en"/>`)
	start := events[0]
	if start.Name != "item" {
		t.Errorf("Name = %q, want %q", start.Name, "item")
	}
	if got := start.Attr["id"]; got != "7" {
		t.Errorf("Attr[id] = %q, want %q", got, "7")
	}
	if got := start.Attr["lang"]; got != "en" {
		t.Errorf("Attr[lang] = %q, want %q", got, "en")
	}
	if len(start.Attr) != 2 {
		t.Errorf("len(Attr) = %d, want 2", len(start.Attr))
	}
}

func TestScannerPositions(t *testing.T) {
	// <root> ends at offset 5 ('>'), text "hi" ends at offset 8.
	events := collect(t, "<root>hi</root>")

	start := events[0]
	if start.Pos.Offset != 5 || start.Pos.Line != 1 || start.Pos.Column != 6 {
		t.Errorf("start pos = %+v, want offset 5 line 1 column 6", start.Pos)
	}

	text := events[1]
	if text.Text != "hi" {
		t.Errorf("Text = %q, want %q", text.Text, "hi")
	}
	if text.Pos.Offset != 8 {
		t.Errorf("text pos offset = %d, want 8", text.Pos.Offset)
	}

	end := events[2]
	if end.Pos.Offset != 14 {
		t.Errorf("end pos offset = %d, want 14", end.Pos.Offset)
	}
}

func TestScannerMultilinePositions(t *testing.T) {
	input := "<doc>\n  <p>hi</p>\n</doc>"
	events := collect(t, input)

	// events: start doc, text "\n  ", start p, text "hi", end p, text "\n", end doc, EOF
	p := events[2]
	if p.Kind != EventStartElement || p.Name != "p" {
		t.Fatalf("event 2 = %v %q, want StartElement p", p.Kind, p.Name)
	}
	// <p> closes at offset 10, line 2 column 5.
	if p.Pos.Line != 2 || p.Pos.Column != 5 {
		t.Errorf("p pos = (%d, %d), want (2, 5)", p.Pos.Line, p.Pos.Column)
	}
}

func TestScannerCDATA(t *testing.T) {
	events := collect(t, "<note><![CDATA[raw & unescaped]]></note>")
	cd := events[1]
	if cd.Kind != EventCDATA {
		t.Fatalf("event 1 = %v, want CDATA", cd.Kind)
	}
	if !bytes.Equal(cd.Bytes, []byte("raw & unescaped")) {
		t.Errorf("Bytes = %q, want %q", cd.Bytes, "raw & unescaped")
	}
}

func TestScannerEntityDecoding(t *testing.T) {
	events := collect(t, "<a>x &amp; y</a>")
	if got := events[1].Text; got != "x & y" {
		t.Errorf("Text = %q, want %q", got, "x & y")
	}
}

func TestScannerNamespaces(t *testing.T) {
	input := `<x:a xmlns:x="urn:x"><x:b/></x:a>`

	events := collect(t, input)
	if got := events[0].Name; got != "a" {
		t.Errorf("default Name = %q, want %q", got, "a")
	}

	events = collect(t, input, KeepNamespaces())
	if got := events[0].Name; got != "urn:x:a" {
		t.Errorf("qualified Name = %q, want %q", got, "urn:x:a")
	}
	if got := events[1].Name; got != "urn:x:b" {
		t.Errorf("qualified child Name = %q, want %q", got, "urn:x:b")
	}
}

func TestScannerExhaustedAfterError(t *testing.T) {
	s := New([]byte("<root><a></root>"))
	for {
		ev := s.Next()
		if ev.Kind == EventError {
			break
		}
		if ev.Kind == EventEOF {
			t.Fatal("reached EOF without an error event")
		}
	}
	if ev := s.Next(); ev.Kind != EventEOF {
		t.Errorf("after error: Kind = %v, want EOF", ev.Kind)
	}
}
