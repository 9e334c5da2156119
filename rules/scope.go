package rules

import (
	"fmt"

	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/internal/snode"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/rule"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/scope"
)

// reassignmentListener builds a program-level listener that walks every
// variable in every scope, reporting each write reference (that isn't the
// declaration's own initializer) to a variable whose defining Definition
// matches want.
func reassignmentListener(want scope.DefKind, message func(name string) string) rule.Listener {
	return rule.Listener{
		Query: rule.On("program"),
		Callback: func(ctx *rule.Context, n snode.Node) {
			sm := ctx.ScopeManager()
			for _, s := range sm.AllScopes() {
				for _, vid := range s.Variables {
					v := sm.Variable(vid)
					defined := false
					for _, d := range v.Defs {
						if d.Kind == want {
							defined = true
							break
						}
					}
					if !defined {
						continue
					}
					for _, rid := range v.References {
						r := sm.Reference(rid)
						if r.IsWrite() && !r.Init {
							ctx.ReportNode(r.Identifier, message(v.Name))
						}
					}
				}
			}
		},
	}
}

// NoClassAssign flags reassigning a binding introduced by a class
// declaration's own name.
func NoClassAssign() rule.Rule {
	return rule.New("no-class-assign", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{reassignmentListener(scope.DefClassName, func(name string) string {
			return fmt.Sprintf("'%s' is a class.", name)
		})}
	})
}

// NoFuncAssign flags reassigning a function declaration's own name.
func NoFuncAssign() rule.Rule {
	return rule.New("no-func-assign", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{reassignmentListener(scope.DefFunctionName, func(name string) string {
			return fmt.Sprintf("'%s' is a function.", name)
		})}
	})
}

// NoExAssign flags reassigning the identifier bound by a `catch (e)` clause.
func NoExAssign() rule.Rule {
	return rule.New("no-ex-assign", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{reassignmentListener(scope.DefCatchClause, func(name string) string {
			return fmt.Sprintf("Do not assign to the exception parameter '%s'.", name)
		})}
	})
}

// NoConstAssign flags reassigning a `const` binding.
func NoConstAssign() rule.Rule {
	return rule.New("no-const-assign", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{{
			Query: rule.On("program"),
			Callback: func(ctx *rule.Context, n snode.Node) {
				sm := ctx.ScopeManager()
				for _, s := range sm.AllScopes() {
					for _, vid := range s.Variables {
						v := sm.Variable(vid)
						if !isConstVariable(v) {
							continue
						}
						for _, rid := range v.References {
							r := sm.Reference(rid)
							if r.IsWrite() && !r.Init {
								ctx.ReportNode(r.Identifier, fmt.Sprintf("'%s' is constant.", v.Name))
							}
						}
					}
				}
			},
		}}
	})
}

func isConstVariable(v *scope.Variable) bool {
	for _, d := range v.Defs {
		if d.Kind != scope.DefVariable {
			continue
		}
		decl := d.Parent.Parent()
		if decl.Kind() == "lexical_declaration" && decl.Child(0).Text() == "const" {
			return true
		}
	}
	return false
}

// NoDupeArgs flags a function whose parameter list binds the same name more
// than once (legal only in sloppy-mode non-arrow functions, and a frequent
// source of confusion even there).
func NoDupeArgs() rule.Rule {
	return rule.New("no-dupe-args", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{{
			Query: rule.On("program"),
			Callback: func(ctx *rule.Context, n snode.Node) {
				sm := ctx.ScopeManager()
				for _, s := range sm.AllScopes() {
					if s.Type != scope.Function {
						continue
					}
					for _, vid := range s.Variables {
						v := sm.Variable(vid)
						count := 0
						for _, d := range v.Defs {
							if d.Kind == scope.DefParameter {
								count++
							}
						}
						if count > 1 {
							ctx.ReportNode(s.Block, fmt.Sprintf("Duplicate parameter name '%s' not allowed in this context.", v.Name))
						}
					}
				}
			},
		}}
	})
}

// NoNewSymbol flags `new Symbol()` when `Symbol` still refers to the
// built-in global (not shadowed by a local binding of the same name) — the
// scope-aware counterpart of no-new-native-nonconstructor's syntactic form,
// grounded on eslint-utils' ReferenceTracker idiom via scope.ReferenceTracker.
func NoNewSymbol() rule.Rule {
	return rule.New("no-new-symbol", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{{
			Query: rule.On("new_expression").Eq("constructor", "Symbol"),
			Callback: func(ctx *rule.Context, n snode.Node) {
				rt := scope.NewReferenceTracker(ctx.ScopeManager())
				if _, ok := rt.MemberPath(n.Field("constructor")); !ok {
					return
				}
				ctx.ReportNode(n, "`Symbol` cannot be called as a constructor.")
			},
		}}
	})
}

// NoProto flags access to the deprecated `__proto__` property, whether by a
// plain `.` access or a computed access whose key is statically "__proto__".
func NoProto() rule.Rule {
	return rule.New("no-proto", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{{
			Query: rule.On("member_expression"),
			Callback: func(ctx *rule.Context, n snode.Node) {
				prop := n.Field("property")
				name, ok := prop.StaticPropertyName()
				if !ok {
					if s, sok := scope.GetStringIfConstant(ctx.ScopeManager(), prop); sok {
						name, ok = s, true
					}
				}
				if ok && name == "__proto__" {
					ctx.ReportNode(n, "The '__proto__' property is deprecated.")
				}
			},
		}}
	})
}

// argumentsReads returns every read reference to the synthetic `arguments`
// binding of a (non-arrow) function scope.
func argumentsReads(sm *scope.Manager, fnScope *scope.Scope) []*scope.Reference {
	v, ok := fnScope.Find("arguments")
	if !ok {
		return nil
	}
	variable := sm.Variable(v)
	var out []*scope.Reference
	for _, rid := range variable.References {
		r := sm.Reference(rid)
		if r.IsRead() {
			out = append(out, r)
		}
	}
	return out
}

// PreferRestParams flags a read of the `arguments` object inside a
// non-arrow function, suggesting a rest parameter instead — rest params are
// real arrays and carry their declared names.
func PreferRestParams() rule.Rule {
	return rule.New("prefer-rest-params", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{{
			Query: rule.On("program"),
			Callback: func(ctx *rule.Context, n snode.Node) {
				sm := ctx.ScopeManager()
				for _, s := range sm.AllScopes() {
					if s.Type != scope.Function || s.Block.Kind() == "arrow_function" {
						continue
					}
					for _, r := range argumentsReads(sm, s) {
						ctx.ReportNode(r.Identifier, "Use the rest parameters instead of 'arguments'.")
					}
				}
			},
		}}
	})
}

// PreferSpread flags `fn.apply(thisArg, args)`-style calls, which the
// spread operator (`fn(...args)`) expresses more directly once rest/spread
// are available.
func PreferSpread() rule.Rule {
	return rule.New("prefer-spread", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{{
			Query: rule.On("call_expression"),
			Callback: func(ctx *rule.Context, n snode.Node) {
				callee := n.Field("function")
				if callee.Kind() != "member_expression" {
					return
				}
				prop, ok := callee.Field("property").StaticPropertyName()
				if !ok || prop != "apply" {
					return
				}
				ctx.ReportNode(n, "Use the spread operator instead of 'apply()'.")
			},
		}}
	})
}

// NoUnusedVars flags a declared variable with no read reference anywhere —
// dead bindings that likely indicate a typo or an abandoned edit. Function
// parameters are exempt (a later parameter may need to be named to keep a
// positional slot), matching the common "args after last used one" carve-out
// is out of scope here — simpler: only var/let/const/class/function
// declarations are checked.
func NoUnusedVars() rule.Rule {
	checked := map[scope.DefKind]bool{
		scope.DefVariable: true, scope.DefFunctionName: true, scope.DefClassName: true,
	}
	return rule.New("no-unused-vars", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{{
			Query: rule.On("program"),
			Callback: func(ctx *rule.Context, n snode.Node) {
				sm := ctx.ScopeManager()
				for _, s := range sm.AllScopes() {
					for _, vid := range s.Variables {
						v := sm.Variable(vid)
						relevant := false
						for _, d := range v.Defs {
							if checked[d.Kind] {
								relevant = true
							}
						}
						if !relevant {
							continue
						}
						used := false
						for _, rid := range v.References {
							if sm.Reference(rid).IsRead() {
								used = true
								break
							}
						}
						if !used {
							ctx.ReportNode(v.Identifiers[0], fmt.Sprintf("'%s' is defined but never used.", v.Name))
						}
					}
				}
			},
		}}
	})
}
