package codepath

import (
	"fmt"

	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/internal/snode"
)

// Graphs holds every CodePath built for one file, keyed by the root node of
// its executable scope (a function, the program, a field initializer, or a
// static block).
type Graphs struct {
	ByRoot map[snode.Key]*CodePath
	All    []*CodePath
}

// Analyzer builds code paths for one file. Construction is lazy per spec
// §4.3 ("retrieve::<CodePathAnalyzer>() to lazily build (once per file)")
// but Build itself eagerly walks the whole tree once, matching §2's "both
// cached per file" data flow — callers cache the returned *Graphs.
type Analyzer struct {
	idSeq int
}

func NewAnalyzer() *Analyzer { return &Analyzer{} }

func (a *Analyzer) nextID() string {
	a.idSeq++
	return fmt.Sprintf("path_%d", a.idSeq)
}

// Build constructs the code-path graph for root (a "program" node) and
// every nested function/field-initializer/static-block within it.
func (a *Analyzer) Build(root snode.Node) *Graphs {
	g := &Graphs{ByRoot: make(map[snode.Key]*CodePath)}
	a.buildPath(root, OriginProgram, nil, g)
	return g
}

func (a *Analyzer) buildPath(root snode.Node, origin Origin, parent *CodePath, g *Graphs) *CodePath {
	cp := &CodePath{ID: a.nextID(), Origin: origin, Root: root, Parent: parent}
	initial := cp.newSegmentID()
	cp.segments[initial].Reachable = true
	cp.segments[initial].used = true
	cp.InitialSegment = initial
	cp.state = newState(cp, initial)

	w := &walker{a: a, cp: cp, g: g}
	switch origin {
	case OriginProgram:
		w.statements(root)
	case OriginFunction:
		body := root.Field("body")
		if body.Kind() == "statement_block" {
			w.statements(body)
		} else if !body.IsZero() {
			w.expression(body)
			w.onReturnLike(body)
		}
	case OriginClassFieldInitializer:
		w.expression(root)
	case OriginClassStaticBlock:
		w.statements(root)
	}

	w.finish()

	if parent != nil {
		parent.ChildCodePaths = append(parent.ChildCodePaths, cp)
	}
	g.ByRoot[root.Key()] = cp
	g.All = append(g.All, cp)
	return cp
}
