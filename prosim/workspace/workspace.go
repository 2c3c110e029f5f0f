// Package workspace keeps per-document analysis state for the language
// server. Every content change re-runs the full pipeline: tokenize,
// parse, rebuild the symbol table. Input decks are small enough that
// incremental reuse would buy nothing.
package workspace

import (
	"sync"

	"github.com/mwessel/proin/config"
	"github.com/mwessel/proin/prosim/parser"
	"github.com/mwessel/proin/prosim/symbols"
)

// Document is the analyzed state of one open file.
type Document struct {
	URI      string
	Content  string
	Tokens   []parser.Token
	Comments []parser.Token
	Program  *parser.Node
	Table    *symbols.Table
}

type Workspace struct {
	mu   sync.RWMutex
	cfg  config.Config
	docs map[string]*Document
}

func New(cfg config.Config) *Workspace {
	return &Workspace{
		cfg:  cfg,
		docs: make(map[string]*Document),
	}
}

func (w *Workspace) Config() config.Config {
	return w.cfg
}

// Update replaces the document at uri with content and re-analyzes it.
func (w *Workspace) Update(uri string, content string) *Document {
	doc := analyze(uri, content)

	w.mu.Lock()
	w.docs[uri] = doc
	w.mu.Unlock()

	return doc
}

func (w *Workspace) Get(uri string) *Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.docs[uri]
}

func (w *Workspace) Remove(uri string) {
	w.mu.Lock()
	delete(w.docs, uri)
	w.mu.Unlock()
}

func analyze(uri string, content string) *Document {
	tokens := parser.Tokenize([]byte(content), uri)
	p := parser.NewParser(tokens, parser.WithFile(uri))
	program := p.Parse()

	table := symbols.NewTable()
	table.Build(program, content)

	return &Document{
		URI:      uri,
		Content:  content,
		Tokens:   tokens,
		Comments: p.Comments(),
		Program:  program,
		Table:    table,
	}
}
