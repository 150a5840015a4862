package lsp

import (
	"strings"
	"sync"

	"go.lsp.dev/protocol"

	"github.com/walteh/eds-lsp/pkg/eds"
)

// normalizeURI strips the file scheme so "file:///a.eds" and "/a.eds" name
// the same document.
func normalizeURI(uri protocol.DocumentURI) string {
	s := strings.TrimPrefix(string(uri), "file://")
	return strings.TrimPrefix(s, "file:")
}

// Document is one open file and the tree parsed from its latest content.
type Document struct {
	URI     protocol.DocumentURI
	Version int32
	Parsed  *eds.Document
}

// DocumentManager holds at most one Document per URI. Entries are replaced
// wholesale, never modified in place.
type DocumentManager struct {
	store *sync.Map // map[string]*Document
}

func NewDocumentManager() *DocumentManager {
	return &DocumentManager{
		store: &sync.Map{},
	}
}

func (m *DocumentManager) Get(uri protocol.DocumentURI) (*Document, bool) {
	v, ok := m.store.Load(normalizeURI(uri))
	if !ok {
		return nil, false
	}
	return v.(*Document), true
}

func (m *DocumentManager) Store(doc *Document) {
	m.store.Store(normalizeURI(doc.URI), doc)
}

func (m *DocumentManager) Delete(uri protocol.DocumentURI) {
	m.store.Delete(normalizeURI(uri))
}

// Len counts the open documents.
func (m *DocumentManager) Len() int {
	n := 0
	m.store.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
