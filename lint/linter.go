// Package lint is the top-level facade: a Linter bundles a rule.Engine with
// a per-source-hash cache of each run's diagnostics (the analyzers
// themselves are built lazily inside each engine run), following §2's
// ambient-stack binding of `lint.Linter` to
// viant-linager's analyzer.Option/NewAnalyzer(options ...Option)
// functional-options idiom, plus its inspector/graph/hash.go HighwayHash
// content-hash pattern used here as the cache key.
package lint

import (
	"sync"

	"github.com/minio/highwayhash"

	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/diagnostic"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/internal/snode"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/lintconfig"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/rule"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/rules"
)

// hashKey matches viant-linager's inspector/graph/hash.go key verbatim —
// a fixed 32-byte HighwayHash key, adequate for a cache key (not a security
// boundary).
var hashKey = []byte("0123456789ABCDEF0123456789ABCDEF")

// Linter runs the registered rule set against parsed files, caching the
// diagnostics of each source it has seen: a later Run on byte-identical
// source returns the cached diagnostics without running the rules again.
type Linter struct {
	engine *rule.Engine
	opts   lintconfig.Options

	mu    sync.Mutex
	cache map[uint64]*cachedRun
}

type cachedRun struct {
	diagnostics []diagnostic.Diagnostic
}

// Option configures a Linter at construction time.
type Option func(*Linter)

// WithOptions sets the lintconfig.Options applied to every Run.
func WithOptions(opts lintconfig.Options) Option {
	return func(l *Linter) { l.opts = opts }
}

// WithRules registers additional rules beyond the default set.
func WithRules(rs ...rule.Rule) Option {
	return func(l *Linter) { l.engine = rule.NewEngine(append(l.engine.Rules(), rs...)...) }
}

// New builds a Linter pre-loaded with every rule in the `rules` package
// (the "Supplemented rule set" of SPEC_FULL.md), configurable via options.
func New(opts ...Option) *Linter {
	l := &Linter{
		engine: rule.NewEngine(rules.All()...),
		opts:   lintconfig.Default(),
		cache:  make(map[uint64]*cachedRun),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Result is the outcome of one file run.
type Result struct {
	Diagnostics []diagnostic.Diagnostic
}

// Run lints one file's (tree, source) pair, consulting the content-hash
// cache first.
func (l *Linter) Run(root snode.Node, src []byte) Result {
	key, err := contentHash(src)
	if err == nil {
		l.mu.Lock()
		if cached, ok := l.cache[key]; ok {
			l.mu.Unlock()
			return Result{Diagnostics: cached.diagnostics}
		}
		l.mu.Unlock()
	}

	diagnostics := l.engine.Run(root, src, l.opts)

	if err == nil {
		l.mu.Lock()
		l.cache[key] = &cachedRun{diagnostics: diagnostics}
		l.mu.Unlock()
	}
	return Result{Diagnostics: diagnostics}
}

func contentHash(src []byte) (uint64, error) {
	h, err := highwayhash.New64(hashKey)
	if err != nil {
		return 0, err
	}
	if _, err := h.Write(src); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}
