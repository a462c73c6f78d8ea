package workspace

import (
	"encoding/xml"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/xmltext/document"
)

const lsName = "xmltext"

// LSPServer exposes parsed XML documents over the Language Server
// Protocol: element outlines as document symbols, element details on
// hover, and parse failures as diagnostics.
type LSPServer struct {
	workspace *Workspace
	handler   protocol.Handler
	server    *server.Server
	version   string
}

func NewLSPServer(version string) *LSPServer {
	ls := &LSPServer{
		version: version,
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
		TextDocumentHover:          ls.textDocumentHover,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	ls.workspace = New(rootDir)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(int(protocol.TextDocumentSyncKindFull)),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	ls.workspace.ScanAll()
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.workspace.UpdateFile(path, []byte(params.TextDocument.Text))
	ls.publishDiagnostics(ctx, params.TextDocument.URI, path)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.workspace.UpdateFile(path, []byte(textChange.Text))
			ls.publishDiagnostics(ctx, params.TextDocument.URI, path)
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		ls.workspace.UpdateFile(path, []byte(*params.Text))
	} else {
		ls.workspace.ScanFile(path)
	}
	ls.publishDiagnostics(ctx, params.TextDocument.URI, path)
	return nil
}

func (ls *LSPServer) publishDiagnostics(ctx *glsp.Context, uri, path string) {
	doc := ls.workspace.GetDocument(path)
	if doc == nil {
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnosticsFor(doc),
	})
}

// diagnosticsFor converts a captured parse failure into a single
// diagnostic on the line the scanner reported, or the first line when the
// diagnostic carries no position.
func diagnosticsFor(doc *DocumentInfo) []protocol.Diagnostic {
	if doc.ParseErr == nil {
		return []protocol.Diagnostic{}
	}

	line := uint32(0)
	var syntax *xml.SyntaxError
	if errors.As(doc.ParseErr, &syntax) && syntax.Line > 0 {
		line = uint32(syntax.Line - 1)
	}

	severity := protocol.DiagnosticSeverityError
	source := lsName
	return []protocol.Diagnostic{{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: 0},
			End:   protocol.Position{Line: line + 1, Character: 0},
		},
		Severity: &severity,
		Source:   &source,
		Message:  doc.ParseErr.Error(),
	}}
}

func (ls *LSPServer) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc := ls.document(params.TextDocument.URI)
	if doc == nil || doc.Result == nil {
		return nil, nil
	}
	return elementSymbols(doc.Result.Root.Children), nil
}

func elementSymbols(elements []*document.Element) []protocol.DocumentSymbol {
	var symbols []protocol.DocumentSymbol
	for _, el := range elements {
		r := lineRange(el)
		symbols = append(symbols, protocol.DocumentSymbol{
			Name:           el.Name,
			Detail:         symbolDetail(el),
			Kind:           protocol.SymbolKindObject,
			Range:          r,
			SelectionRange: r,
			Children:       elementSymbols(el.Children),
		})
	}
	return symbols
}

func symbolDetail(el *document.Element) *string {
	if len(el.Attr) == 0 {
		return nil
	}
	detail := fmt.Sprintf("%d attributes", len(el.Attr))
	if id := el.Attribute("id"); id != "" {
		detail = "id=" + id
	}
	return &detail
}

func lineRange(el *document.Element) protocol.Range {
	start := uint32(0)
	if el.StartLine > 0 {
		start = uint32(el.StartLine - 1)
	}
	end := start + 1
	if el.EndLine > 0 {
		end = uint32(el.EndLine)
	}
	return protocol.Range{
		Start: protocol.Position{Line: start, Character: 0},
		End:   protocol.Position{Line: end, Character: 0},
	}
}

func (ls *LSPServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := ls.document(params.TextDocument.URI)
	if doc == nil || doc.Result == nil {
		return nil, nil
	}

	line := int(params.Position.Line) + 1
	el := doc.Result.Root.AtLine(line)
	if el == nil {
		return nil, nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s** (lines %d-%d)\n", elementPath(el), el.StartLine, el.EndLine)
	for name, value := range el.Attr {
		fmt.Fprintf(&sb, "\n- %s = %s", name, value)
	}

	r := lineRange(el)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: sb.String(),
		},
		Range: &r,
	}, nil
}

// elementPath renders the ancestry of an element from the document's top
// level down, e.g. "library/book/title".
func elementPath(el *document.Element) string {
	var names []string
	for e := el; e != nil && !e.IsRoot(); e = e.Parent {
		names = append([]string{e.Name}, names...)
	}
	return strings.Join(names, "/")
}

func (ls *LSPServer) document(uri string) *DocumentInfo {
	if ls.workspace == nil {
		return nil
	}
	path, err := uriToPath(uri)
	if err != nil {
		return nil
	}
	return ls.workspace.GetDocument(path)
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(i int) *protocol.TextDocumentSyncKind {
	v := protocol.TextDocumentSyncKind(i)
	return &v
}
