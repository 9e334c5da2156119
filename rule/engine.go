package rule

import (
	"fmt"

	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/codepath"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/diagnostic"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/directive"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/globals"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/internal/snode"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/lintconfig"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/scope"
)

// Engine owns the registered rule set and runs it, once per file, against a
// parsed tree. Grounded on fillmore-labs-scopeguard's
// analyzer.Analyzer/run.go (a Pass-shaped per-file run struct that owns
// lazily-computed facts).
type Engine struct {
	rules []Rule
}

// NewEngine builds an engine from a rule set.
func NewEngine(rules ...Rule) *Engine {
	return &Engine{rules: rules}
}

// Rules returns the engine's registered rule set.
func (e *Engine) Rules() []Rule { return e.rules }

// fileRun is the per-file-run state: lazily built analyzers, shared by
// every rule's Context for the duration of one Run call.
type fileRun struct {
	root snode.Node
	src  []byte
	opts lintconfig.Options

	sm       *scope.Manager
	smBuilt  bool
	graphs   *codepath.Graphs
	gBuilt   bool
	gtable   map[string]globals.Visibility
	gtBuilt  bool
}

func (r *fileRun) scopeManager() *scope.Manager {
	if !r.smBuilt {
		r.sm = scope.Analyze(r.root, r.opts.ScopeOptions())
		r.smBuilt = true
	}
	return r.sm
}

func (r *fileRun) codePathGraphs() *codepath.Graphs {
	if !r.gBuilt {
		r.graphs = codepath.NewAnalyzer().Build(r.root)
		r.gBuilt = true
	}
	return r.graphs
}

func (r *fileRun) globalsTable() map[string]globals.Visibility {
	if !r.gtBuilt {
		table := globals.Table(r.opts.EcmaVersion, nil)
		for name, val := range r.opts.Globals {
			if vis, ok := globals.ParseVisibility(val); ok {
				table[name] = vis
			}
		}
		comments := snode.Comments(r.root, r.src)
		for name, eg := range directive.CollectEnabledGlobals(comments) {
			table[name] = eg.Value
		}
		r.gtable = table
		r.gtBuilt = true
	}
	return r.gtable
}

// ruleListeners is the per-rule compiled dispatch: for each listener, the
// set of (kind, exit-phase) keys it should fire on, plus the rule's message
// catalog so a later Context can resolve messageIds.
type ruleListeners struct {
	ruleID    string
	messages  map[string]string
	listeners []Listener
}

// Run walks root once in enter/leave order, dispatching every matching
// listener of every registered rule, and returns the collected diagnostics
// plus any `core` diagnostics synthesized for rule crashes (§7).
func (e *Engine) Run(root snode.Node, src []byte, opts lintconfig.Options) []diagnostic.Diagnostic {
	run := &fileRun{root: root, src: src, opts: opts}
	var diagnostics []diagnostic.Diagnostic

	var compiled []ruleListeners
	crashed := map[string]bool{}
	for _, rl := range e.rules {
		if len(opts.Rules) > 0 && !opts.RuleEnabled(rl.Name) {
			continue
		}
		ctx := &Context{Root: root, Src: src, Options: opts, ruleID: rl.Name, messages: rl.Messages, run: run, diagnostics: &diagnostics}
		listeners := e.buildListeners(rl, ctx, &diagnostics)
		if listeners != nil {
			compiled = append(compiled, ruleListeners{ruleID: rl.Name, messages: rl.Messages, listeners: listeners.listeners})
		}
	}

	walk(root, func(n snode.Node, exit bool) {
		for _, rl := range compiled {
			if crashed[rl.ruleID] {
				continue
			}
			for _, l := range rl.listeners {
				if l.Query.Kind != n.Kind() || l.Query.Exit != exit {
					continue
				}
				if !l.Query.Matches(n) {
					continue
				}
				func() {
					defer func() {
						if rec := recover(); rec != nil {
							crashed[rl.ruleID] = true
							diagnostics = append(diagnostics, diagnostic.CoreDiagnostic(n.Range(),
								fmt.Sprintf("rule %q crashed and was disabled for the remainder of this file: %v", rl.ruleID, rec)))
						}
					}()
					l.Callback(&Context{Root: root, Src: src, Options: opts, ruleID: rl.ruleID, messages: rl.messages, run: run, diagnostics: &diagnostics}, n)
				}()
			}
		}
	})

	return applyDisableDirectives(diagnostics, root, src)
}

// buildListeners invokes a rule's Create factory, isolating a crash during
// construction itself (a malformed rule is also a rule crash per §7).
func (e *Engine) buildListeners(rl Rule, ctx *Context, diagnostics *[]diagnostic.Diagnostic) *ruleListeners {
	var out *ruleListeners
	func() {
		defer func() {
			if rec := recover(); rec != nil {
				*diagnostics = append(*diagnostics, diagnostic.CoreDiagnostic(snode.Range{},
					fmt.Sprintf("rule %q failed to initialize: %v", rl.Name, rec)))
			}
		}()
		out = &ruleListeners{ruleID: rl.Name, messages: rl.Messages, listeners: rl.Create(ctx)}
	}()
	return out
}

// walk performs the single enter/leave depth-first traversal over named
// children that every rule listener observes. Code-path graphs are not
// built during this walk: codepath.Analyzer.Build makes its own pass over
// the tree the first time a rule asks for them.
func walk(n snode.Node, visit func(n snode.Node, exit bool)) {
	if n.IsZero() {
		return
	}
	visit(n, false)
	for _, c := range n.Children() {
		walk(c, visit)
	}
	visit(n, true)
}
