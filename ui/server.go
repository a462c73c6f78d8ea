// Package ui serves a small web inspector: paste an XML document, see the
// element tree, the normalized text and the provenance table.
package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/dhamidi/xmltext/document"
)

//go:embed templates
var embeddedFS embed.FS

type Server struct {
	templates *template.Template
	mux       *http.ServeMux
}

func NewServer() (*Server, error) {
	templateFS, err := fs.Sub(embeddedFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("embedded templates: %w", err)
	}

	tmpl, err := template.New("").ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		templates: tmpl,
		mux:       http.NewServeMux(),
	}

	s.mux.HandleFunc("POST /inspect", s.handleInspect)
	s.mux.HandleFunc("GET /", s.handleIndex)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

type inspectView struct {
	Source         string
	KeepNamespaces bool
	NoTrimming     bool
	Err            string
	Tree           string
	Text           string
	Mappings       []mappingView
}

type mappingView struct {
	Normalized document.Range
	Original   document.Range
	Excerpt    string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, "index.html", inspectView{})
}

func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data: "+err.Error(), http.StatusBadRequest)
		return
	}

	view := inspectView{
		Source:         r.FormValue("source"),
		KeepNamespaces: r.FormValue("namespaces") != "",
		NoTrimming:     r.FormValue("notrim") != "",
	}

	var opts []document.Option
	if view.KeepNamespaces {
		opts = append(opts, document.KeepNamespaces())
	}
	if view.NoTrimming {
		opts = append(opts, document.WithoutTrimming())
	}

	res, err := document.Parse([]byte(view.Source), opts...)
	if err != nil {
		view.Err = err.Error()
		s.render(w, "index.html", view)
		return
	}

	view.Tree = res.Root.StringWithPositions()
	view.Text = res.Text
	for _, m := range res.Mappings {
		view.Mappings = append(view.Mappings, mappingView{
			Normalized: m.Normalized,
			Original:   m.Original,
			Excerpt:    res.Text[m.Normalized.Start:m.Normalized.End],
		})
	}
	s.render(w, "index.html", view)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
	}
}
