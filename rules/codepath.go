package rules

import (
	"regexp"

	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/codepath"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/internal/snode"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/rule"
)

// direction is the relation a for-loop's test/update expressions imply
// between the counter and its bound: Up means the counter should increase
// toward the bound, Down means it should decrease.
type direction int

const (
	dirUnknown direction = iota
	dirUp
	dirDown
)

func testDirection(test snode.Node, counter string) direction {
	if test.Kind() != "binary_expression" {
		return dirUnknown
	}
	left, right, op := test.Field("left"), test.Field("right"), test.Field("operator").Text()
	switch {
	case left.Kind() == "identifier" && left.Text() == counter:
		switch op {
		case "<", "<=":
			return dirUp
		case ">", ">=":
			return dirDown
		}
	case right.Kind() == "identifier" && right.Text() == counter:
		switch op {
		case "<", "<=":
			return dirDown
		case ">", ">=":
			return dirUp
		}
	}
	return dirUnknown
}

func updateDirection(update snode.Node, counter string) direction {
	switch update.Kind() {
	case "update_expression":
		arg := update.Field("argument")
		if arg.Kind() != "identifier" || arg.Text() != counter {
			return dirUnknown
		}
		if update.Field("operator").Text() == "++" {
			return dirUp
		}
		return dirDown
	case "augmented_assignment_expression":
		left := update.Field("left")
		if left.Kind() != "identifier" || left.Text() != counter {
			return dirUnknown
		}
		right := update.Field("right")
		negated := false
		if right.Kind() == "unary_expression" && right.Field("operator").Text() == "-" {
			negated = true
		}
		switch update.Field("operator").Text() {
		case "+=":
			if negated {
				return dirDown
			}
			return dirUp
		case "-=":
			if negated {
				return dirUp
			}
			return dirDown
		}
	}
	return dirUnknown
}

// ForDirection flags a `for` loop whose test and update move the counter in
// opposite directions (e.g. `for (i = 0; i < n; i--)`), which never
// terminates. Grounded on original_source's for_direction.rs.
func ForDirection() rule.Rule {
	return rule.New("for-direction", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{{
			Query: rule.On("for_statement"),
			Callback: func(ctx *rule.Context, n snode.Node) {
				test := n.Field("condition")
				update := n.Field("increment")
				if test.IsZero() || update.IsZero() {
					return
				}
				var counter string
				switch {
				case test.Kind() == "binary_expression" && test.Field("left").Kind() == "identifier":
					counter = test.Field("left").Text()
				case test.Kind() == "binary_expression" && test.Field("right").Kind() == "identifier":
					counter = test.Field("right").Text()
				default:
					return
				}
				td, ud := testDirection(test, counter), updateDirection(update, counter)
				if td != dirUnknown && ud != dirUnknown && td != ud {
					ctx.ReportNode(n, "The update clause in this loop moves the variable in the wrong direction.")
				}
			},
		}}
	})
}

// isRethrow reports whether a catch clause's body is exactly one statement
// that rethrows the caught exception unmodified.
func isRethrow(catch snode.Node) bool {
	param := catch.Field("parameter")
	if param.Kind() != "identifier" {
		return false
	}
	body := catch.Field("body")
	if body.NamedChildCount() != 1 {
		return false
	}
	stmt := body.NamedChild(0)
	if stmt.Kind() != "throw_statement" {
		return false
	}
	arg := stmt.Field("argument")
	return arg.Kind() == "identifier" && arg.Text() == param.Text()
}

// NoUselessCatch flags a `catch` clause that does nothing but rethrow the
// exception it caught — the surrounding try/catch adds nothing a bare `try`
// (or no try at all) didn't already have. Reports through the messageId
// catalog (unnecessaryCatchClause/unnecessaryCatch) rather than a literal
// string, matching ESLint's own no-useless-catch message ids.
func NoUselessCatch() rule.Rule {
	return rule.New("no-useless-catch", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{{
			Query: rule.On("try_statement"),
			Callback: func(ctx *rule.Context, n snode.Node) {
				handler := n.Field("handler")
				if handler.IsZero() || !isRethrow(handler) {
					return
				}
				if !n.Field("finalizer").IsZero() {
					ctx.ReportNodeID(handler, "unnecessaryCatchClause", nil)
				} else {
					ctx.ReportNodeID(n, "unnecessaryCatch", nil)
				}
			},
		}}
	}, rule.WithMessages(map[string]string{
		"unnecessaryCatchClause": "Unnecessary catch clause.",
		"unnecessaryCatch":       "Unnecessary try/catch wrapper.",
	}))
}

// constructorMethods returns every method_definition named `constructor`
// under root, in tree order.
func constructorMethods(root snode.Node) []snode.Node {
	var out []snode.Node
	var walk func(n snode.Node)
	walk = func(n snode.Node) {
		if n.IsZero() {
			return
		}
		if n.Kind() == "method_definition" {
			name, _ := n.Field("name").StaticPropertyName()
			if name == "constructor" {
				out = append(out, n)
			}
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(root)
	return out
}

// NoConstructorReturn flags a class constructor that returns a value:
// constructors may only return implicitly or bare (`return;`), since a
// returned object silently replaces `this` for every caller.
func NoConstructorReturn() rule.Rule {
	return rule.New("no-constructor-return", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{{
			Query: rule.On("program"),
			Callback: func(ctx *rule.Context, n snode.Node) {
				graphs := ctx.CodePathGraphs()
				for _, ctor := range constructorMethods(n) {
					cp, ok := graphs.ByRoot[ctor.Key()]
					if !ok {
						continue
					}
					for _, seg := range cp.AllSegments() {
						for _, ev := range seg.Nodes {
							if ev.Kind != codepath.Enter || ev.Node.Kind() != "return_statement" {
								continue
							}
							if !ev.Node.Field("argument").IsZero() {
								ctx.ReportNode(ev.Node, "Unexpected return statement in constructor.")
							}
						}
					}
				}
			},
		}}
	})
}

// caseStatements returns a switch_case/switch_default node's statement
// children, excluding switch_case's leading test-value expression (which
// Children() also returns, since a field accessor doesn't remove a node
// from the positional child list).
func caseStatements(c snode.Node) []snode.Node {
	children := c.Children()
	if c.Kind() != "switch_case" {
		return children
	}
	value := c.Field("value")
	out := make([]snode.Node, 0, len(children))
	for _, ch := range children {
		if ch.Key() == value.Key() {
			continue
		}
		out = append(out, ch)
	}
	return out
}

var noDefaultComment = regexp.MustCompile(`(?i)^\s*no\s*default\b`)

// DefaultCase flags a `switch` with no `default` clause and no trailing
// `// no default` comment documenting the omission as deliberate.
func DefaultCase() rule.Rule {
	return rule.New("default-case", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{{
			Query: rule.On("switch_statement"),
			Callback: func(ctx *rule.Context, n snode.Node) {
				body := n.Field("body")
				var cases []snode.Node
				for _, c := range body.Children() {
					if c.Kind() != "comment" {
						cases = append(cases, c)
					}
				}
				if len(cases) == 0 {
					return
				}
				for _, c := range cases {
					if c.Kind() == "switch_default" {
						return
					}
				}
				last := cases[len(cases)-1]
				for _, c := range snode.Comments(ctx.Root, ctx.Src) {
					if c.StartByte() >= last.EndByte() && c.StartByte() < n.EndByte() {
						if noDefaultComment.MatchString(commentText(c.Node)) {
							return
						}
					}
				}
				ctx.ReportNode(n, "Expected a default case.")
			},
		}}
	})
}

func commentText(c snode.Node) string {
	t := c.Text()
	for _, p := range []string{"//", "/*"} {
		if len(t) >= len(p) && t[:len(p)] == p {
			t = t[len(p):]
		}
	}
	if len(t) >= 2 && t[len(t)-2:] == "*/" {
		t = t[:len(t)-2]
	}
	return t
}

// classifyReturn inspects one of a CodePath's ReturnedSegments, reporting
// whether it represents a real return site at all (skip is true for the
// disconnected placeholder finish() always appends after the last explicit
// return, which is never itself reachable), and if so whether it returned a
// value.
func classifyReturn(cp *codepath.CodePath, segID codepath.SegmentID) (hasArg bool, skip bool) {
	seg := cp.Segment(segID)
	for i := len(seg.Nodes) - 1; i >= 0; i-- {
		ev := seg.Nodes[i]
		if ev.Kind == codepath.Enter && ev.Node.Kind() == "return_statement" {
			return !ev.Node.Field("argument").IsZero(), false
		}
	}
	// No return_statement recorded on this segment: it's either a genuine
	// implicit fall-off-the-end (still reachable) or finish()'s trailing
	// disconnected artifact following the last explicit return (not
	// reachable, and not a real code path).
	return false, !seg.Reachable
}

// ConsistentReturn flags a function with some code paths that return a
// value and others that return bare or fall off the end implicitly.
func ConsistentReturn() rule.Rule {
	return rule.New("consistent-return", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{{
			Query: rule.On("program"),
			Callback: func(ctx *rule.Context, n snode.Node) {
				for _, cp := range ctx.CodePathGraphs().All {
					if cp.Origin != codepath.OriginFunction {
						continue
					}
					sawValue, sawBare := false, false
					for _, segID := range cp.ReturnedSegments {
						hasArg, skip := classifyReturn(cp, segID)
						if skip {
							continue
						}
						if hasArg {
							sawValue = true
						} else {
							sawBare = true
						}
					}
					if sawValue && sawBare {
						ctx.ReportNode(cp.Root, "Expected to return a value at the end of this function.")
					}
				}
			},
		}}
	})
}

// GuardForIn flags a `for...in` loop whose body isn't itself a single `if`
// statement — without a hasOwnProperty-style guard, the loop also visits
// inherited enumerable properties.
func GuardForIn() rule.Rule {
	return rule.New("guard-for-in", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{{
			Query: rule.On("for_in_statement"),
			Callback: func(ctx *rule.Context, n snode.Node) {
				body := n.Field("body")
				if body.Kind() == "if_statement" {
					return
				}
				if body.Kind() == "statement_block" && body.NamedChildCount() == 1 && body.NamedChild(0).Kind() == "if_statement" {
					return
				}
				ctx.ReportNode(n, "The body of a for-in should be wrapped in an if statement to filter unwanted properties from the prototype.")
			},
		}}
	})
}

var generatorKinds = map[string]bool{"generator_function": true, "generator_function_declaration": true}

func hasYield(n snode.Node) bool {
	if n.IsZero() {
		return false
	}
	if n.Kind() == "yield_expression" {
		return true
	}
	if paramsFunctionKinds[n.Kind()] && !generatorKinds[n.Kind()] {
		return false
	}
	for _, c := range n.Children() {
		if hasYield(c) {
			return true
		}
	}
	return false
}

// RequireYield flags a generator function whose body contains no `yield`
// expression, making the `function*` declaration misleading.
func RequireYield() rule.Rule {
	return rule.New("require-yield", func(ctx *rule.Context) []rule.Listener {
		var listeners []rule.Listener
		for kind := range generatorKinds {
			kind := kind
			listeners = append(listeners, rule.Listener{
				Query: rule.On(kind),
				Callback: func(ctx *rule.Context, n snode.Node) {
					if !hasYield(n.Field("body")) {
						ctx.ReportNode(n, "This generator function does not have 'yield'.")
					}
				},
			})
		}
		return listeners
	})
}

var terminators = map[string]bool{
	"break_statement": true, "return_statement": true, "throw_statement": true, "continue_statement": true,
}

// NoFallthrough flags a non-empty `case` whose last statement isn't a
// break/return/throw/continue and isn't the switch's last case, unless a
// `// falls through` comment documents the fallthrough as deliberate.
func NoFallthrough() rule.Rule {
	fallsThrough := regexp.MustCompile(`(?i)falls?\s*through`)
	return rule.New("no-fallthrough", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{{
			Query: rule.On("switch_statement"),
			Callback: func(ctx *rule.Context, n snode.Node) {
				var cases []snode.Node
				for _, c := range n.Field("body").Children() {
					if c.Kind() != "comment" {
						cases = append(cases, c)
					}
				}
				comments := snode.Comments(ctx.Root, ctx.Src)
				for i, c := range cases {
					if i == len(cases)-1 {
						continue
					}
					stmts := caseStatements(c)
					var last snode.Node
					if len(stmts) > 0 {
						last = stmts[len(stmts)-1]
					}
					if last.IsZero() {
						continue // empty case intentionally falls through
					}
					if terminators[last.Kind()] {
						continue
					}
					documented := false
					for _, cm := range comments {
						if cm.StartByte() >= last.EndByte() && cm.StartByte() < cases[i+1].StartByte() && fallsThrough.MatchString(commentText(cm.Node)) {
							documented = true
							break
						}
					}
					if !documented {
						ctx.ReportNode(last, "Expected a 'break' statement before 'case'.")
					}
				}
			},
		}}
	})
}
