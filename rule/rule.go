package rule

import "github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/internal/snode"

// Listener is one registered (query, callback) pair for a single rule. The
// callback receives the node that matched the query — the common
// single-capture case described in §6's "Rule surface" ("for the common
// single-capture case, the single captured node").
type Listener struct {
	Query    Query
	Callback func(ctx *Context, n snode.Node)
}

// Rule bundles a unique name, a message catalog, and a factory that builds
// its listeners for one file run, mirroring §4.3's "a rule bundles: a
// unique name... a message catalog (id -> template with {{placeholder}}
// substitution)... a set of listeners keyed by a node-pattern query or
// kind+phase". Most rules still report a literal string via
// Context.Report/ReportNode; Messages only needs populating by rules that
// want callers to key off a stable messageId instead of message text (§6's
// `messageId|message, data`).
type Rule struct {
	Name     string
	Messages map[string]string
	Create   func(ctx *Context) []Listener
}

// Option configures a Rule at registration time, following viant-linager's
// analyzer.Option functional-options idiom.
type Option func(*Rule)

// WithMessages attaches a messageId -> template catalog to a Rule, enabling
// Context.ReportID/ReportNodeID for its listeners.
func WithMessages(messages map[string]string) Option {
	return func(r *Rule) {
		r.Messages = messages
	}
}

// New builds a Rule from its name and listener factory, applying options.
func New(name string, create func(ctx *Context) []Listener, opts ...Option) Rule {
	r := Rule{Name: name, Create: create}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}
