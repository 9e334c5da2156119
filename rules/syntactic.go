// Package rules is the supplemented rule set of SPEC_FULL.md: each rule is a
// rule.Rule built via rule.New, registered by rules.All(). Grounded on
// original_source's plugin/src/rules/*.rs for node patterns and message
// text, reworked into rule.Query/rule.Listener form.
package rules

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/internal/snode"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/rule"
)

// NoEqNull flags `== null`/`!= null` comparisons, which coerce `undefined`
// along with `null` — use `===`/`!==` to compare against exactly one.
// Grounded on original_source's no_eq_null.rs.
func NoEqNull() rule.Rule {
	return rule.New("no-eq-null", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{{
			Query: rule.On("binary_expression"),
			Callback: func(ctx *rule.Context, n snode.Node) {
				op := n.Field("operator").Text()
				if op != "==" && op != "!=" {
					return
				}
				if n.Field("left").Kind() == "null" || n.Field("right").Kind() == "null" {
					ctx.ReportNode(n, "Use '===' to compare with null.")
				}
			},
		}}
	})
}

var wrapperConstructors = map[string]bool{"String": true, "Number": true, "Boolean": true}

// NoNewWrappers flags `new String()`/`new Number()`/`new Boolean()`, which
// build a boxed object rather than a primitive.
func NoNewWrappers() rule.Rule {
	return rule.New("no-new-wrappers", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{{
			Query: rule.On("new_expression"),
			Callback: func(ctx *rule.Context, n snode.Node) {
				fn := n.Field("constructor").Text()
				if wrapperConstructors[fn] {
					ctx.ReportNode(n, fmt.Sprintf("Do not use %s as a constructor.", fn))
				}
			},
		}}
	})
}

var nonConstructorGlobals = map[string]bool{"Symbol": true, "BigInt": true}

// NoNewNativeNonconstructor flags `new Symbol()`/`new BigInt()`: both are
// callable factory functions, not constructors, and `new` on them throws.
func NoNewNativeNonconstructor() rule.Rule {
	return rule.New("no-new-native-nonconstructor", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{{
			Query: rule.On("new_expression"),
			Callback: func(ctx *rule.Context, n snode.Node) {
				fn := n.Field("constructor").Text()
				if nonConstructorGlobals[fn] {
					ctx.ReportNode(n, fmt.Sprintf("%s cannot be called as a constructor.", fn))
				}
			},
		}}
	})
}

// NoNew flags a `new` expression used purely for its side effects, with its
// result discarded (`new Foo();` as a whole statement).
func NoNew() rule.Rule {
	return rule.New("no-new", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{{
			Query: rule.On("new_expression"),
			Callback: func(ctx *rule.Context, n snode.Node) {
				if n.Parent().Kind() == "expression_statement" {
					ctx.ReportNode(n, "Do not use 'new' for side effects.")
				}
			},
		}}
	})
}

// NoArrayConstructor flags `Array(...)`/`new Array(...)` except a
// single-argument call (`new Array(n)` or `Array(n)`), which preallocates a
// length.
func NoArrayConstructor() rule.Rule {
	check := func(ctx *rule.Context, n snode.Node, calleeField string) {
		callee := n.Field(calleeField)
		if callee.Text() != "Array" {
			return
		}
		args := n.Field("arguments")
		if args.IsZero() {
			ctx.ReportNode(n, "The array literal notation [] is preferable.")
			return
		}
		if args.NamedChildCount() == 1 {
			return
		}
		ctx.ReportNode(n, "The array literal notation [] is preferable.")
	}
	return rule.New("no-array-constructor", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{
			{Query: rule.On("new_expression"), Callback: func(ctx *rule.Context, n snode.Node) { check(ctx, n, "constructor") }},
			{Query: rule.On("call_expression"), Callback: func(ctx *rule.Context, n snode.Node) { check(ctx, n, "function") }},
		}
	})
}

// NoTernary flags every conditional (ternary) expression.
func NoTernary() rule.Rule {
	return rule.New("no-ternary", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{{
			Query:    rule.On("ternary_expression"),
			Callback: func(ctx *rule.Context, n snode.Node) { ctx.ReportNode(n, "Ternary operator used.") },
		}}
	})
}

// NoNestedTernary flags a ternary nested inside either branch of another.
func NoNestedTernary() rule.Rule {
	return rule.New("no-nested-ternary", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{{
			Query: rule.On("ternary_expression"),
			Callback: func(ctx *rule.Context, n snode.Node) {
				cons, alt := n.Field("consequence"), n.Field("alternative")
				if cons.Kind() == "ternary_expression" || alt.Kind() == "ternary_expression" {
					ctx.ReportNode(n, "Do not nest ternary expressions.")
				}
			},
		}}
	})
}

func isNegated(n snode.Node) bool {
	switch n.Kind() {
	case "unary_expression":
		return n.Field("operator").Text() == "!"
	case "binary_expression":
		op := n.Field("operator").Text()
		return op == "!=" || op == "!=="
	}
	return false
}

// NoNegatedCondition flags an `if`/`else` whose test is negated — the
// branches read more clearly swapped.
func NoNegatedCondition() rule.Rule {
	return rule.New("no-negated-condition", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{{
			Query: rule.On("if_statement"),
			Callback: func(ctx *rule.Context, n snode.Node) {
				if !n.Field("alternative").IsZero() && isNegated(n.Field("condition")) {
					ctx.ReportNode(n, "Unexpected negated condition.")
				}
			},
		}}
	})
}

var legacyOctal = regexp.MustCompile(`^0[0-7]+$`)

// NoOctal flags legacy (non-`0o`-prefixed) octal number literals, which
// strict mode forbids and which read as decimal to anyone unfamiliar with
// the convention.
func NoOctal() rule.Rule {
	return rule.New("no-octal", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{{
			Query: rule.On("number"),
			Callback: func(ctx *rule.Context, n snode.Node) {
				if legacyOctal.MatchString(n.Text()) {
					ctx.ReportNode(n, "Octal literals should not be used.")
				}
			},
		}}
	})
}

func isNegativeZero(n snode.Node) bool {
	if n.Kind() != "unary_expression" || n.Field("operator").Text() != "-" {
		return false
	}
	arg := n.Field("argument")
	return arg.Kind() == "number" && arg.Text() == "0"
}

var compareOps = map[string]bool{"==": true, "===": true, "!=": true, "!==": true, "<": true, ">": true, "<=": true, ">=": true}

// NoCompareNegZero flags `x === -0` and friends: `-0 === 0` is true in JS, so
// the comparison never does what it looks like it does; use Object.is
// instead.
func NoCompareNegZero() rule.Rule {
	return rule.New("no-compare-neg-zero", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{{
			Query: rule.On("binary_expression"),
			Callback: func(ctx *rule.Context, n snode.Node) {
				if !compareOps[n.Field("operator").Text()] {
					return
				}
				if isNegativeZero(n.Field("left")) || isNegativeZero(n.Field("right")) {
					ctx.ReportNode(n, "Do not use the '-0' literal in comparisons.")
				}
			},
		}}
	})
}

var emptyCharClass = regexp.MustCompile(`(^|[^\\])\[\]`)

// NoEmptyCharacterClass flags a regex literal containing an empty character
// class (`[]`), which can never match anything.
func NoEmptyCharacterClass() rule.Rule {
	return rule.New("no-empty-character-class", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{{
			Query: rule.On("regex"),
			Callback: func(ctx *rule.Context, n snode.Node) {
				pattern := n.Field("pattern")
				if pattern.IsZero() {
					return
				}
				if emptyCharClass.MatchString(pattern.Text()) {
					ctx.ReportNode(n, "Empty class.")
				}
			},
		}}
	})
}

// NoMultiStr flags a string literal using a backslash line-continuation to
// span multiple lines — invisible in many editors and easy to break.
func NoMultiStr() rule.Rule {
	return rule.New("no-multi-str", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{{
			Query: rule.On("string"),
			Callback: func(ctx *rule.Context, n snode.Node) {
				if strings.Contains(n.Text(), "\\\n") || strings.Contains(n.Text(), "\\\r\n") {
					ctx.ReportNode(n, "Multiline support is limited to browsers supporting ES5 only.")
				}
			},
		}}
	})
}

// NoScriptURL flags a string literal beginning (ignoring leading
// whitespace) with `javascript:`, a legacy URL scheme equivalent to eval.
func NoScriptURL() rule.Rule {
	return rule.New("no-script-url", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{{
			Query: rule.On("string"),
			Callback: func(ctx *rule.Context, n snode.Node) {
				v := strings.TrimSpace(strings.Trim(n.Text(), `"'`))
				if strings.HasPrefix(strings.ToLower(v), "javascript:") {
					ctx.ReportNode(n, "Script URL is a form of eval.")
				}
			},
		}}
	})
}

// WrapRegex flags a regex literal used as the object of a member expression
// (e.g. `/foo/.test(x)`) when it isn't parenthesized, since an unwrapped
// regex there is easy to misread as a division.
func WrapRegex() rule.Rule {
	return rule.New("wrap-regex", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{{
			Query: rule.On("regex"),
			Callback: func(ctx *rule.Context, n snode.Node) {
				p := n.Parent()
				if p.Kind() == "member_expression" && p.Field("object").Key() == n.Key() {
					ctx.ReportNode(n, "Wrap the regexp literal in parens to disambiguate the slash.")
				}
			},
		}}
	})
}

// SymbolDescription flags `Symbol()` called with no description argument,
// making later debugging harder.
func SymbolDescription() rule.Rule {
	return rule.New("symbol-description", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{{
			Query: rule.On("call_expression").Eq("function", "Symbol"),
			Callback: func(ctx *rule.Context, n snode.Node) {
				args := n.Field("arguments")
				if args.NamedChildCount() == 0 {
					ctx.ReportNode(n, "Expected Symbol to have a description.")
				}
			},
		}}
	})
}

// DefaultCaseLast flags a `default` clause that isn't the last case in its
// switch.
func DefaultCaseLast() rule.Rule {
	return rule.New("default-case-last", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{{
			Query: rule.On("switch_statement"),
			Callback: func(ctx *rule.Context, n snode.Node) {
				var cases []snode.Node
				for _, c := range n.Field("body").Children() {
					if c.Kind() != "comment" {
						cases = append(cases, c)
					}
				}
				for i, c := range cases {
					if c.Kind() == "switch_default" && i != len(cases)-1 {
						ctx.ReportNode(c, "Default clause should be the last clause.")
					}
				}
			},
		}}
	})
}

// DefaultParamLast flags a required parameter following one with a default
// value: defaults should trail so every call can omit only a suffix.
func DefaultParamLast() rule.Rule {
	return rule.New("default-param-last", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{{
			Query: rule.On("formal_parameters"),
			Callback: func(ctx *rule.Context, n snode.Node) {
				seenDefault := false
				for _, p := range n.Children() {
					switch p.Kind() {
					case "assignment_pattern":
						seenDefault = true
					case "rest_pattern":
						// rest is always last and always fine.
					default:
						if seenDefault {
							ctx.ReportNode(p, "Default parameters should be last.")
						}
					}
				}
			},
		}}
	})
}

func intOption(ctx *rule.Context, ruleID, key string, def int) int {
	setting, ok := ctx.Options.Rules[ruleID]
	if !ok || setting.Options == nil {
		return def
	}
	v, ok := setting.Options[key]
	if !ok {
		return def
	}
	switch t := v.(type) {
	case int:
		return t
	case float64:
		return int(t)
	case string:
		if n, err := strconv.Atoi(t); err == nil {
			return n
		}
	}
	return def
}

var paramsFunctionKinds = map[string]bool{
	"function": true, "function_declaration": true, "generator_function": true,
	"generator_function_declaration": true, "arrow_function": true, "method_definition": true,
}

// MaxParams flags a function declared with more than the configured number
// of parameters (default 3).
func MaxParams() rule.Rule {
	return rule.New("max-params", func(ctx *rule.Context) []rule.Listener {
		max := intOption(ctx, "max-params", "max", 3)
		var listeners []rule.Listener
		for kind := range paramsFunctionKinds {
			kind := kind
			listeners = append(listeners, rule.Listener{
				Query: rule.On(kind),
				Callback: func(ctx *rule.Context, n snode.Node) {
					params := n.Field("parameters")
					if params.IsZero() {
						return
					}
					if params.NamedChildCount() > max {
						ctx.ReportNode(n, fmt.Sprintf("This function has too many parameters (%d). Maximum allowed is %d.",
							params.NamedChildCount(), max))
					}
				},
			})
		}
		return listeners
	})
}

// MaxNestedCallbacks flags a function literal passed as a call argument,
// nested more than the configured depth (default 3) inside other such
// callbacks — a proxy for "pyramid of doom" callback nesting.
func MaxNestedCallbacks() rule.Rule {
	return rule.New("max-nested-callbacks", func(ctx *rule.Context) []rule.Listener {
		max := intOption(ctx, "max-nested-callbacks", "max", 3)
		isCallback := func(n snode.Node) bool {
			if !paramsFunctionKinds[n.Kind()] {
				return false
			}
			p := n.Parent()
			return p.Kind() == "arguments"
		}
		return []rule.Listener{{
			Query: rule.On("arrow_function"),
			Callback: func(ctx *rule.Context, n snode.Node) { checkNestedCallback(ctx, n, isCallback, max) },
		}, {
			Query: rule.On("function"),
			Callback: func(ctx *rule.Context, n snode.Node) { checkNestedCallback(ctx, n, isCallback, max) },
		}}
	})
}

func checkNestedCallback(ctx *rule.Context, n snode.Node, isCallback func(snode.Node) bool, max int) {
	if !isCallback(n) {
		return
	}
	depth := 1
	for p := n.Parent(); !p.IsZero(); p = p.Parent() {
		if isCallback(p) {
			depth++
		}
	}
	if depth > max {
		ctx.ReportNode(n, fmt.Sprintf("Too many nested callbacks (%d). Maximum allowed is %d.", depth, max))
	}
}
