package scope

import "github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/internal/snode"

// Analyze builds the full scope tree for one program/module root and
// returns the owning Manager. This fuses the "two passes" of spec §4.1
// (declare, then resolve) into a single recursive descent: declarations and
// references are recorded as the walk descends, and each scope resolves its
// own references when the walk pops back out of it.
func Analyze(root snode.Node, opts Options) *Manager {
	m := NewManager(opts)
	r := &referencer{m: m}
	r.program(root)
	return m
}

type referencer struct {
	m *Manager
}

func (r *referencer) scope() *Scope { return r.m.current() }

func (r *referencer) program(root snode.Node) {
	m := r.m
	global := m.pushScope(Global, root)
	if r.hasUseStrictDirective(root) {
		global.IsStrict = true
	}
	if m.opts.SourceType != Script && m.opts.ImpliedStrict {
		global.IsStrict = true
	}
	if m.opts.ImpliedStrict && m.opts.EcmaVersion >= 5 && m.opts.SourceType == Script {
		global.IsStrict = true
	}

	body := root
	if m.opts.NodejsScope {
		fnScope := m.pushScope(Function, root)
		fnScope.IsStrict = global.IsStrict
		body = root
		defer func() {
			m.popScope()
		}()
		_ = fnScope
	}

	if m.opts.SourceType == ModuleSource {
		modScope := m.pushScope(Module, root)
		modScope.IsStrict = true
		r.hoistDeclarations(body)
		r.walkChildren(body)
		m.popScope()
	} else {
		r.hoistDeclarations(body)
		r.walkChildren(body)
	}

	m.popScope()
}

func (r *referencer) hasUseStrictDirective(block snode.Node) bool {
	for i := 0; i < block.NamedChildCount(); i++ {
		ch := block.NamedChild(i)
		if ch.Kind() != "expression_statement" {
			break
		}
		expr := ch.NamedChild(0)
		if expr.Kind() == "string" {
			text := expr.Text()
			if text == `"use strict"` || text == `'use strict'` {
				return true
			}
			continue
		}
		break
	}
	return false
}

// hoistDeclarations pre-declares the `var` declarations under block (which
// hoist to the nearest variableScope) ahead of the ordinary top-down walk,
// so forward references resolve correctly. Function declarations are
// declared when the walk reaches them, and `arguments` by functionBody.
func (r *referencer) hoistDeclarations(block snode.Node) {
	var walk func(n snode.Node, crossFunctionBoundary bool)
	walk = func(n snode.Node, crossBoundary bool) {
		switch n.Kind() {
		case "function_declaration", "generator_function_declaration", "function", "arrow_function",
			"generator_function", "function_expression", "method_definition":
			return // nested functions hoist their own vars independently
		case "variable_declaration":
			for _, d := range n.Children() {
				if d.Kind() == "variable_declarator" {
					r.bindPattern(d.Field("name"), DefVariable, d)
				}
			}
		}
		for i := 0; i < n.ChildCount(); i++ {
			walk(n.Child(i), crossBoundary)
		}
	}
	walk(block, false)
}

func (r *referencer) walkChildren(n snode.Node) {
	for i := 0; i < n.ChildCount(); i++ {
		r.visit(n.Child(i))
	}
}

// visit dispatches on node kind; unhandled kinds just recurse into
// children, matching the "closed enumeration of kinds" design note.
func (r *referencer) visit(n snode.Node) {
	if n.IsZero() {
		return
	}
	switch n.Kind() {
	case "function_declaration", "generator_function_declaration":
		r.functionDeclaration(n)
	case "function", "generator_function", "function_expression":
		r.functionExpression(n)
	case "arrow_function":
		r.arrowFunction(n)
	case "method_definition":
		r.method(n)
	case "class_declaration", "class":
		r.class(n)
	case "statement_block":
		r.blockStatement(n)
	case "lexical_declaration":
		r.lexicalDeclaration(n)
	case "variable_declaration":
		r.variableDeclaration(n)
	case "catch_clause":
		r.catchClause(n)
	case "with_statement":
		r.withStatement(n)
	case "switch_statement":
		r.switchStatement(n)
	case "for_statement":
		r.forStatement(n)
	case "for_in_statement":
		r.forInStatement(n)
	case "field_definition", "public_field_definition":
		r.fieldDefinition(n)
	case "class_static_block":
		r.classStaticBlock(n)
	case "import_statement":
		r.importStatement(n)
	case "assignment_expression":
		r.assignmentExpression(n)
	case "augmented_assignment_expression":
		r.augmentedAssignment(n)
	case "update_expression":
		r.updateExpression(n)
	case "identifier":
		r.read(n)
	case "call_expression":
		r.callExpression(n)
	default:
		r.walkChildren(n)
	}
}

func (r *referencer) read(n snode.Node) {
	r.reference(n, Read, snode.Node{}, false, false)
}

func (r *referencer) reference(id snode.Node, flag Flag, writeExpr snode.Node, init, partial bool) {
	if id.IsZero() || id.Kind() != "identifier" {
		return
	}
	s := r.scope()
	ref := Reference{
		Identifier: id, From: s.ID, Resolved: noID, Flag: flag,
		WriteExpr: writeExpr, Init: init, Partial: partial,
		maybeImplicitGlobal: flag&Write != 0 && !init,
	}
	r.m.newReference(ref)
}

// --- functions ---

func (r *referencer) functionDeclaration(n snode.Node) {
	name := n.Field("name")
	if !name.IsZero() {
		r.declareInScope(r.scope(), name, DefFunctionName, n)
	}
	r.enterFunction(n, false)
}

func (r *referencer) functionExpression(n snode.Node) {
	m := r.m
	fnScope := m.pushScope(Function, n)
	fnScope.FunctionExpressionScope = true
	name := n.Field("name")
	if !name.IsZero() {
		r.declareInScope(fnScope, name, DefFunctionName, n)
	}
	r.functionBody(n, false)
	m.popScope()
}

func (r *referencer) arrowFunction(n snode.Node) {
	// Arrow functions do not shadow `this`, `arguments`, or `super`; they
	// still get their own scope for parameters/locals.
	r.enterFunction(n, true)
}

func (r *referencer) enterFunction(n snode.Node, isArrow bool) {
	m := r.m
	m.pushScope(Function, n)
	r.functionBody(n, isArrow)
	m.popScope()
}

func (r *referencer) functionBody(n snode.Node, isArrow bool) {
	fnScope := r.scope()
	if !isArrow {
		v := r.m.newVariable("arguments", fnScope)
		_ = v
	}
	params := n.Field("parameters")
	for i := 0; i < params.NamedChildCount(); i++ {
		r.parameter(params.NamedChild(i))
	}
	body := n.Field("body")
	if body.IsZero() {
		return
	}
	if body.Kind() == "statement_block" {
		if r.hasUseStrictDirective(body) {
			fnScope.IsStrict = true
		}
		r.hoistDeclarations(body)
		r.walkChildren(body)
	} else {
		// concise arrow body: a single expression
		r.visit(body)
	}
}

func (r *referencer) parameter(p snode.Node) {
	switch p.Kind() {
	case "identifier":
		r.declareInScope(r.scope(), p, DefParameter, p)
	case "rest_pattern":
		r.parameter(p.NamedChild(0))
	case "assignment_pattern":
		left := p.Field("left")
		right := p.Field("right")
		r.parameter(left)
		if !right.IsZero() {
			r.visit(right)
		}
	case "object_pattern", "array_pattern":
		r.bindPattern(p, DefParameter, p)
	default:
		r.bindPattern(p, DefParameter, p)
	}
}

func (r *referencer) method(n snode.Node) {
	isStatic := false
	for i := 0; i < n.ChildCount(); i++ {
		if n.Child(i).Text() == "static" {
			isStatic = true
		}
	}
	_ = isStatic
	r.enterFunction(n, false)
}

// --- classes ---

func (r *referencer) class(n snode.Node) {
	m := r.m
	name := n.Field("name")
	if n.Kind() == "class_declaration" && !name.IsZero() {
		r.declare(name, DefClassName, n)
	}
	classScope := m.pushScope(Class, n)
	if !name.IsZero() {
		r.declareInScope(classScope, name, DefClassName, n)
	}
	heritage := n.Field("heritage")
	if !heritage.IsZero() {
		r.visit(heritage)
	}
	body := n.Field("body")
	r.walkChildren(body)
	m.popScope()
}

func (r *referencer) fieldDefinition(n snode.Node) {
	value := n.Field("value")
	if value.IsZero() {
		return
	}
	m := r.m
	m.pushScope(ClassFieldInitializer, n)
	r.visit(value)
	m.popScope()
}

func (r *referencer) classStaticBlock(n snode.Node) {
	m := r.m
	s := m.pushScope(ClassStaticBlock, n)
	s.IsStrict = true
	r.hoistDeclarations(n)
	r.walkChildren(n)
	m.popScope()
}

// --- blocks / declarations ---

func (r *referencer) blockStatement(n snode.Node) {
	m := r.m
	m.pushScope(Block, n)
	r.walkChildren(n)
	m.popScope()
}

func (r *referencer) lexicalDeclaration(n snode.Node) {
	for _, d := range n.Children() {
		if d.Kind() != "variable_declarator" {
			continue
		}
		name := d.Field("name")
		value := d.Field("value")
		r.bindPattern(name, DefVariable, d)
		if !value.IsZero() {
			r.visit(value)
			r.initWrite(name, value)
		}
	}
}

func (r *referencer) variableDeclaration(n snode.Node) {
	// `var` bindings were already declared by hoistDeclarations; here we
	// only need to process initializers and any nested references.
	for _, d := range n.Children() {
		if d.Kind() != "variable_declarator" {
			continue
		}
		name := d.Field("name")
		value := d.Field("value")
		if !value.IsZero() {
			r.visit(value)
			r.initWrite(name, value)
		}
	}
}

// initWrite records the WRITE(init=true) references for every identifier
// bound by a (possibly destructuring) declaration target.
func (r *referencer) initWrite(target snode.Node, value snode.Node) {
	for _, id := range leafIdentifiers(target) {
		r.reference(id, Write, value, true, target.Kind() != "identifier")
	}
}

func leafIdentifiers(pattern snode.Node) []snode.Node {
	switch pattern.Kind() {
	case "identifier":
		return []snode.Node{pattern}
	case "assignment_pattern":
		return leafIdentifiers(pattern.Field("left"))
	case "rest_pattern":
		return leafIdentifiers(pattern.NamedChild(0))
	case "object_pattern":
		var out []snode.Node
		for _, ch := range pattern.Children() {
			switch ch.Kind() {
			case "pair_pattern":
				out = append(out, leafIdentifiers(ch.Field("value"))...)
			case "shorthand_property_identifier_pattern":
				out = append(out, ch)
			default:
				out = append(out, leafIdentifiers(ch)...)
			}
		}
		return out
	case "array_pattern":
		var out []snode.Node
		for _, ch := range pattern.Children() {
			out = append(out, leafIdentifiers(ch)...)
		}
		return out
	}
	return nil
}

// bindPattern declares every leaf identifier of a (possibly destructuring)
// binding pattern in the appropriate scope for `kind`.
func (r *referencer) bindPattern(pattern snode.Node, kind DefKind, parent snode.Node) {
	for _, id := range leafIdentifiers(pattern) {
		r.declare(id, kind, parent)
	}
	// defaults inside the pattern still need their RHS visited for reads
	r.visitPatternDefaults(pattern)
}

func (r *referencer) visitPatternDefaults(pattern snode.Node) {
	switch pattern.Kind() {
	case "assignment_pattern":
		r.visit(pattern.Field("right"))
	case "object_pattern", "array_pattern":
		for _, ch := range pattern.Children() {
			r.visitPatternDefaults(ch)
		}
	case "pair_pattern":
		r.visitPatternDefaults(pattern.Field("value"))
	case "rest_pattern":
		r.visitPatternDefaults(pattern.NamedChild(0))
	}
}

// declare binds `var`/function declarations to the nearest variableScope,
// and `let`/`const`/`class`/catch-param/parameter bindings to the current
// scope, per spec §4.1's declaration rules.
func (r *referencer) declare(id snode.Node, kind DefKind, parent snode.Node) {
	target := r.scope()
	if kind == DefVariable && parent.Kind() != "lexical_declaration" && parent.Parent().Kind() != "lexical_declaration" {
		target = r.m.scopes[target.VariableScope]
	}
	r.declareInScope(target, id, kind, parent)
}

func (r *referencer) declareInScope(target *Scope, id snode.Node, kind DefKind, parent snode.Node) {
	name := id.Text()
	var v *Variable
	if vid, ok := target.Find(name); ok {
		v = r.m.variables[vid]
	} else {
		v = r.m.newVariable(name, target)
	}
	v.Defs = append(v.Defs, Definition{Kind: kind, Node: id, Parent: parent})
	v.Identifiers = append(v.Identifiers, id)
}

// --- catch / with / switch / for ---

func (r *referencer) catchClause(n snode.Node) {
	m := r.m
	m.pushScope(Catch, n)
	param := n.Field("parameter")
	if !param.IsZero() {
		r.bindPattern(param, DefCatchClause, n)
	}
	body := n.Field("body")
	r.hoistDeclarations(body)
	r.walkChildren(body)
	m.popScope()
}

func (r *referencer) withStatement(n snode.Node) {
	m := r.m
	object := n.Field("object")
	if !object.IsZero() {
		r.visit(object)
	}
	s := m.pushScope(With, n)
	s.dynamic = true
	body := n.Field("body")
	r.visit(body)
	m.popScope()
}

func (r *referencer) switchStatement(n snode.Node) {
	m := r.m
	m.pushScope(Switch, n)
	body := n.Field("body")
	r.hoistDeclarations(body)
	r.walkChildren(body)
	m.popScope()
}

func (r *referencer) forStatement(n snode.Node) {
	init := n.Field("initializer")
	needsScope := init.Kind() == "lexical_declaration"
	m := r.m
	var s *Scope
	if needsScope {
		s = m.pushScope(For, n)
	}
	if !init.IsZero() {
		r.visit(init)
	}
	if cond := n.Field("condition"); !cond.IsZero() {
		r.visit(cond)
	}
	if upd := n.Field("increment"); !upd.IsZero() {
		r.visit(upd)
	}
	r.visit(n.Field("body"))
	if needsScope {
		m.popScope()
	}
	_ = s
}

func (r *referencer) forInStatement(n snode.Node) {
	left := n.Field("left")
	isLexical := left.Kind() == "identifier" && n.Child(1).Text() != "var" // best effort
	_ = isLexical
	m := r.m
	m.pushScope(For, n)
	r.visit(n.Field("right"))
	if left.Kind() == "identifier" {
		// bare identifier target: a plain assignment, not a declaration
		r.reference(left, Write, snode.Node{}, false, false)
	} else {
		r.bindPattern(left, DefVariable, n)
	}
	r.visit(n.Field("body"))
	m.popScope()
}

// --- modules ---

func (r *referencer) importStatement(n snode.Node) {
	for _, ch := range n.Children() {
		switch ch.Kind() {
		case "import_clause":
			r.importClause(ch)
		}
	}
}

func (r *referencer) importClause(n snode.Node) {
	for _, ch := range n.Children() {
		switch ch.Kind() {
		case "identifier":
			r.declareInScope(r.scope(), ch, DefImportBinding, n)
		case "namespace_import":
			if id := ch.NamedChild(0); !id.IsZero() {
				r.declareInScope(r.scope(), id, DefImportBinding, n)
			}
		case "named_imports":
			for _, spec := range ch.Children() {
				if spec.Kind() != "import_specifier" {
					continue
				}
				local := spec.Field("alias")
				if local.IsZero() {
					local = spec.Field("name")
				}
				r.declareInScope(r.scope(), local, DefImportBinding, spec)
			}
		}
	}
}

// --- assignment / call tracking ---

func (r *referencer) assignmentExpression(n snode.Node) {
	left := n.Field("left")
	right := n.Field("right")
	r.visit(right)
	switch left.Kind() {
	case "identifier":
		r.reference(left, Write, right, false, false)
	case "object_pattern", "array_pattern":
		for _, id := range leafIdentifiers(left) {
			r.reference(id, Write, right, false, true)
		}
	default:
		r.visit(left)
	}
}

func (r *referencer) augmentedAssignment(n snode.Node) {
	left := n.Field("left")
	right := n.Field("right")
	r.visit(right)
	if left.Kind() == "identifier" {
		r.reference(left, Read|Write, right, false, false)
	} else {
		r.visit(left)
	}
}

func (r *referencer) updateExpression(n snode.Node) {
	arg := n.Field("argument")
	if arg.Kind() == "identifier" {
		r.reference(arg, Read|Write, snode.Node{}, false, false)
	} else {
		r.visit(arg)
	}
}

// callExpression watches for a direct `eval(...)` call, which marks the
// enclosing variableScope dynamic unless `optimistic` is set, per spec
// §4.1: "Any scope enclosed by... a direct eval call is marked dynamic".
func (r *referencer) callExpression(n snode.Node) {
	fn := n.Field("function")
	if fn.Kind() == "identifier" && fn.Text() == "eval" {
		r.m.evalScopes[r.scope().VariableScope] = true
		if !r.m.opts.Optimistic {
			r.m.scopes[r.scope().VariableScope].dynamic = true
		}
	}
	r.walkChildren(n)
}
