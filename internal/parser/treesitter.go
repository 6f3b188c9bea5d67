// Package parser extracts entities and imports from TypeScript sources.
//
// Tree-sitter parsers require CGO_ENABLED=1. A tree-sitter parser is NOT
// thread-safe, so each TreeSitterParser serializes parsing via a mutex;
// the parallel extraction path creates one parser per worker instead of
// sharing one. Every Tree and Parser must be explicitly closed to avoid
// memory leaks.
package parser

import (
	"fmt"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// TreeSitterParser holds a pooled Tree-sitter parser for TypeScript.
// Trees returned from parsing are safe to use concurrently after parsing.
type TreeSitterParser struct {
	mu       sync.Mutex
	tsParser *tree_sitter.Parser
}

// NewTreeSitterParser creates a parser for the TypeScript grammar (not TSX;
// Angular keeps templates in .html files or inline strings, never JSX).
func NewTreeSitterParser() (*TreeSitterParser, error) {
	tsParser := tree_sitter.NewParser()
	tsLang := tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	if err := tsParser.SetLanguage(tsLang); err != nil {
		tsParser.Close()
		return nil, fmt.Errorf("set typescript language: %w", err)
	}
	return &TreeSitterParser{tsParser: tsParser}, nil
}

// Close releases parser resources. Must be called when done.
func (p *TreeSitterParser) Close() {
	if p.tsParser != nil {
		p.tsParser.Close()
	}
}

// ParseFile parses TypeScript source content. Returns a Tree that the
// caller must close. Thread-safe; parsing is serialized internally.
func (p *TreeSitterParser) ParseFile(content []byte) (*tree_sitter.Tree, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tree := p.tsParser.Parse(content, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter parse returned nil")
	}
	return tree, nil
}

// NodeText extracts the text content of a Tree-sitter node.
func NodeText(node *tree_sitter.Node, content []byte) string {
	return string(content[node.StartByte():node.EndByte()])
}
