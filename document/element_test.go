package document

import (
	"strings"
	"testing"
)

const library = `<library>
  <book id="1"><title>First</title></book>
  <book id="2"><title>Second</title></book>
  <magazine id="3"/>
</library>`

func TestElementNavigation(t *testing.T) {
	res := mustParse(t, library)

	lib := res.Root.FirstChildNamed("library")
	if lib == nil {
		t.Fatal("no library element")
	}

	books := lib.ChildrenNamed("book")
	if len(books) != 2 {
		t.Fatalf("len(books) = %d, want 2", len(books))
	}
	if got := books[1].Attribute("id"); got != "2" {
		t.Errorf("books[1] id = %q, want %q", got, "2")
	}

	titles := res.Root.Find("title")
	if len(titles) != 2 {
		t.Fatalf("len(Find(title)) = %d, want 2", len(titles))
	}
	if titles[0].RawText != "First" || titles[1].RawText != "Second" {
		t.Errorf("titles = %q, %q", titles[0].RawText, titles[1].RawText)
	}

	if lib.FirstChildNamed("missing") != nil {
		t.Error("FirstChildNamed(missing) != nil")
	}
	if res.Root.IsRoot() != true || lib.IsRoot() != false {
		t.Error("IsRoot misreports the synthetic root")
	}
}

func TestElementParentLinks(t *testing.T) {
	res := mustParse(t, library)

	for _, title := range res.Root.Find("title") {
		if title.Parent == nil || title.Parent.Name != "book" {
			t.Errorf("title parent = %+v, want book", title.Parent)
		}
		if title.Parent.Parent.Name != "library" {
			t.Errorf("grandparent = %q, want library", title.Parent.Parent.Name)
		}
	}
}

func TestElementAtLine(t *testing.T) {
	res := mustParse(t, library)

	tests := []struct {
		line int
		want string
	}{
		{1, "library"},
		{2, "book"},
		{3, "book"},
		{4, "magazine"},
		{5, "library"},
	}

	for _, tt := range tests {
		el := res.Root.AtLine(tt.line)
		if el == nil {
			t.Errorf("AtLine(%d) = nil, want %q", tt.line, tt.want)
			continue
		}
		// The innermost element on book lines is the title.
		if tt.want == "book" {
			if el.Name != "title" {
				t.Errorf("AtLine(%d) = %q, want title (innermost)", tt.line, el.Name)
			}
			continue
		}
		if el.Name != tt.want {
			t.Errorf("AtLine(%d) = %q, want %q", tt.line, el.Name, tt.want)
		}
	}

	if el := res.Root.AtLine(42); el != nil {
		t.Errorf("AtLine(42) = %q, want nil", el.Name)
	}
}

func TestElementStringDump(t *testing.T) {
	res := mustParse(t, library)

	dump := res.Root.StringWithPositions()
	for _, want := range []string{
		"#document",
		"library [1-5]",
		"book [2-2] id=1",
		"magazine [4-4] id=3",
		"    title [2-2]",
	} {
		if !strings.Contains(dump, want) {
			t.Errorf("dump missing %q:\n%s", want, dump)
		}
	}
}
