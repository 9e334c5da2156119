// Package parse is the engine's one entry point onto the external
// JavaScript grammar: it turns source bytes into the root snode.Node every
// other package builds on. Grounded on viant-linager's
// inspector/jsx.Inspector.InspectSource (parser := sitter.NewParser();
// parser.SetLanguage(javascript.GetLanguage()); parser.ParseCtx(...)).
package parse

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/internal/snode"
)

// Source parses src as JavaScript and returns its program root, wrapped for
// the rest of the engine. Each call parses afresh; callers that need the
// same tree again should keep the returned Node/src pair themselves
// (lint.Linter caches diagnostics by source content, not parse trees).
func Source(src []byte) (snode.Node, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return snode.Node{}, fmt.Errorf("parse: %w", err)
	}
	return snode.Wrap(tree.RootNode(), src), nil
}
