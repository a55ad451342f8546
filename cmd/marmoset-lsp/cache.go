package main

import (
	"fmt"
	"sync"

	"github.com/jdbaldry/go-language-server-protocol/lsp/protocol"
	"github.com/marmoset-lang/marmoset/ast"
)

// document holds one open file together with its most recent parse.
type document struct {
	item                 protocol.TextDocumentItem
	ast                  *ast.Program
	err                  error
	linesChangedSinceAST map[int]bool
}

// cache stores the open documents keyed by URI.
type cache struct {
	mu   sync.RWMutex
	docs map[protocol.DocumentURI]*document
}

func newCache() *cache {
	return &cache{docs: make(map[protocol.DocumentURI]*document)}
}

func (c *cache) put(doc *document) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs[doc.item.URI] = doc
	return nil
}

func (c *cache) get(uri protocol.DocumentURI) (*document, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	doc, ok := c.docs[uri]
	if !ok {
		return nil, fmt.Errorf("document not found: %s", uri)
	}
	return doc, nil
}

func (c *cache) remove(uri protocol.DocumentURI) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.docs, uri)
}
