// Package workspace tracks a set of parsed XML documents, keyed by path,
// and reparses them as editors report changes. It backs the language
// server and the web inspector.
package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/xmltext/document"
)

var log = commonlog.GetLogger("xmltext.workspace")

type Workspace struct {
	mu      sync.RWMutex
	rootDir string
	opts    []document.Option
	docs    map[string]*DocumentInfo
}

type DocumentInfo struct {
	Path     string
	Content  []byte
	Result   *document.Result
	ParseErr error
}

func New(rootDir string, opts ...document.Option) *Workspace {
	return &Workspace{
		rootDir: rootDir,
		opts:    opts,
		docs:    make(map[string]*DocumentInfo),
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

// ScanAll parses every XML document under the workspace root.
func (w *Workspace) ScanAll() error {
	return filepath.Walk(w.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".xml") {
			w.ScanFile(path)
		}
		return nil
	})
}

func (w *Workspace) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return w.UpdateFile(path, content)
}

// UpdateFile replaces the document at path with a fresh parse of content.
// Earlier results for the path are discarded wholesale; parses never share
// state.
func (w *Workspace) UpdateFile(path string, content []byte) error {
	res, err := document.Parse(content, w.opts...)
	if err != nil {
		log.Debugf("parse failed: %s: %s", path, err.Error())
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.docs[path] = &DocumentInfo{
		Path:     path,
		Content:  content,
		Result:   res,
		ParseErr: err,
	}
	return nil
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.docs, path)
}

func (w *Workspace) GetDocument(path string) *DocumentInfo {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.docs[path]
}

func (w *Workspace) AllDocuments() []*DocumentInfo {
	w.mu.RLock()
	defer w.mu.RUnlock()
	all := make([]*DocumentInfo, 0, len(w.docs))
	for _, doc := range w.docs {
		all = append(all, doc)
	}
	return all
}
