// Package rule is the rule-driven tree walker: compiled structural queries,
// rule registration, a single-pass enter/leave engine, and diagnostic
// collection. Grounded on fillmore-labs-scopeguard's analyzer/{analyzer.go,
// run.go,options.go} (a per-file run struct plus functional-options rule
// configuration) and viant-linager's analyzer.Option/AnalyzerPlugin
// functional-options idiom for rule.Rule registration.
package rule

import (
	"regexp"

	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/internal/snode"
)

// Query is a compiled structural-pattern matcher: it names a node kind plus
// an optional set of field-level predicates, mirroring the `#eq?`/`#match?`
// predicates of the Design Notes' "dynamic query matching". It is compiled
// once at rule-registration time (built by On/OnExit and Eq/Match below),
// not re-parsed per visited node.
type Query struct {
	Kind  string
	Exit  bool
	Field string // non-empty: only match nodes reachable via this field from Parent()

	eqPredicates    []fieldEq
	matchPredicates []fieldMatch
}

type fieldEq struct {
	field string
	want  string
}

type fieldMatch struct {
	field string
	re    *regexp.Regexp
}

// On builds a query for entering nodes of the given kind.
func On(kind string) Query { return Query{Kind: kind} }

// OnExit builds a query for the leaving visit of nodes of the given kind
// (the "kind:exit" form of §4.3).
func OnExit(kind string) Query { return Query{Kind: kind, Exit: true} }

// Eq adds a `#eq?`-style predicate: the named field's text must equal want.
func (q Query) Eq(field, want string) Query {
	q.eqPredicates = append(append([]fieldEq{}, q.eqPredicates...), fieldEq{field, want})
	return q
}

// Match adds a `#match?`-style predicate: the named field's text must match
// the given regular expression.
func (q Query) Match(field string, re *regexp.Regexp) Query {
	q.matchPredicates = append(append([]fieldMatch{}, q.matchPredicates...), fieldMatch{field, re})
	return q
}

// Matches reports whether n satisfies every predicate of q. Kind and
// Exit/enter phase are checked by the engine's dispatch table before this
// is called; Matches only evaluates the field-level predicates.
func (q Query) Matches(n snode.Node) bool {
	if q.Field != "" && n.Parent().Field(q.Field).Key() != n.Key() {
		return false
	}
	for _, p := range q.eqPredicates {
		if n.Field(p.field).Text() != p.want {
			return false
		}
	}
	for _, p := range q.matchPredicates {
		if !p.re.MatchString(n.Field(p.field).Text()) {
			return false
		}
	}
	return true
}
