package codepath

import "github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/internal/snode"

var functionKinds = map[string]bool{
	"function": true, "function_declaration": true, "generator_function": true,
	"generator_function_declaration": true, "arrow_function": true, "method_definition": true,
}

// walker drives one CodePath's construction by dispatching on statement
// kind, per spec §4.2's "statement-level events (the state machine)".
type walker struct {
	a  *Analyzer
	cp *CodePath
	g  *Graphs
}

func (w *walker) s() *state { return w.cp.state }

func (w *walker) statements(block snode.Node) {
	for _, n := range block.Children() {
		w.statement(n)
	}
}

func (w *walker) statement(n snode.Node) {
	if n.IsZero() {
		return
	}
	w.s().recordEvent(Enter, n)
	switch n.Kind() {
	case "if_statement":
		w.ifStatement(n)
	case "while_statement":
		w.whileStatement(n, "")
	case "do_statement":
		w.doStatement(n, "")
	case "for_statement":
		w.forStatement(n, "")
	case "for_in_statement":
		w.forInStatement(n, "")
	case "switch_statement":
		w.switchStatement(n)
	case "try_statement":
		w.tryStatement(n)
	case "return_statement":
		w.returnStatement(n)
	case "throw_statement":
		w.throwStatement(n)
	case "break_statement":
		w.breakStatement(n)
	case "continue_statement":
		w.continueStatement(n)
	case "labeled_statement":
		w.labeledStatement(n)
	case "statement_block":
		w.statements(n)
	case "expression_statement":
		if len(n.Children()) > 0 {
			w.expression(n.NamedChild(0))
		}
	default:
		w.scanNested(n)
	}
	w.s().recordEvent(Exit, n)
}

// scanNested recurses into n looking only for function/class-like
// boundaries that need their own CodePath; it does not alter the current
// path's segments. Used for statement forms whose sub-expressions don't
// need branch-level precision (declarations, call arguments, etc).
func (w *walker) scanNested(n snode.Node) {
	if n.IsZero() {
		return
	}
	if functionKinds[n.Kind()] {
		w.a.buildPath(n, OriginFunction, w.cp, w.g)
		return
	}
	switch n.Kind() {
	case "field_definition", "public_field_definition":
		if v := n.Field("value"); !v.IsZero() {
			w.a.buildPath(n, OriginClassFieldInitializer, w.cp, w.g)
		}
		return
	case "class_static_block":
		w.a.buildPath(n, OriginClassStaticBlock, w.cp, w.g)
		return
	}
	for i := 0; i < n.ChildCount(); i++ {
		w.scanNested(n.Child(i))
	}
}

// expression processes an expression for its control-flow effect: logical
// &&/||/?? and the ternary operator fork the path; everything else is
// scanned only for nested function/class boundaries.
func (w *walker) expression(n snode.Node) {
	if n.IsZero() {
		return
	}
	switch n.Kind() {
	case "binary_expression":
		op := operatorOf(n)
		switch op {
		case "&&", "||", "??":
			w.logical(n)
			return
		}
	case "ternary_expression":
		w.ternary(n)
		return
	case "parenthesized_expression":
		w.expression(n.NamedChild(0))
		return
	}
	w.scanNested(n)
}

func operatorOf(n snode.Node) string {
	op := n.Field("operator")
	if !op.IsZero() {
		return op.Text()
	}
	return ""
}

// logical models the short-circuit fork of `left OP right`: the right
// operand is only entered from the subset of predecessors that didn't
// short-circuit; the rest bypass straight to the join.
func (w *walker) logical(n snode.Node) {
	left := n.Field("left")
	right := n.Field("right")
	w.expression(left)

	s := w.s()
	entryHead := s.currentHead()
	rightEntry := w.cp.makeNext(len(s.fork.heads)-1, len(s.fork.heads))
	s.fork.Push([]SegmentID{rightEntry})
	w.expression(right)
	rightExit := s.currentHead()

	joined := w.cp.newSegment(append(append([]SegmentID{}, rightExit...), entryHead...), false)
	s.fork.Pop()
	s.fork.ReplaceHead([]SegmentID{joined})
}

func (w *walker) ternary(n snode.Node) {
	cond := n.Field("condition")
	cons := n.Field("consequence")
	alt := n.Field("alternative")
	w.expression(cond)

	s := w.s()
	condHead := s.currentHead()
	trueEntry := w.cp.makeNext(len(s.fork.heads)-1, len(s.fork.heads))
	s.fork.Push([]SegmentID{trueEntry})
	w.expression(cons)
	trueExit := s.currentHead()
	s.fork.Pop()

	falseEntry := w.cp.newSegment(condHead, false)
	s.fork.Push([]SegmentID{falseEntry})
	w.expression(alt)
	falseExit := s.currentHead()
	s.fork.Pop()

	joined := w.cp.newSegment(append(append([]SegmentID{}, trueExit...), falseExit...), false)
	s.fork.ReplaceHead([]SegmentID{joined})
}

// --- if/else ---

func (w *walker) ifStatement(n snode.Node) {
	cond := n.Field("condition")
	cons := n.Field("consequence")
	alt := n.Field("alternative")
	w.expression(cond)

	s := w.s()
	condHead := s.currentHead()
	trueEntry := w.cp.makeNext(len(s.fork.heads)-1, len(s.fork.heads))
	s.fork.ReplaceHead([]SegmentID{trueEntry})
	w.statement(cons)
	trueExit := s.currentHead()

	falseEntry := w.cp.newSegment(condHead, false)
	s.fork.ReplaceHead([]SegmentID{falseEntry})
	if !alt.IsZero() {
		w.statement(alt)
	}
	falseExit := s.currentHead()

	joined := w.cp.newSegment(append(append([]SegmentID{}, trueExit...), falseExit...), false)
	s.fork.ReplaceHead([]SegmentID{joined})
}

// --- loops ---

func (w *walker) whileStatement(n snode.Node, label string) {
	cond := n.Field("condition")
	body := n.Field("body")
	w.runLoop(label, loopWhile, func(s *state) {
		w.expression(cond)
	}, func(s *state) {
		w.statement(body)
	})
}

func (w *walker) doStatement(n snode.Node, label string) {
	body := n.Field("body")
	cond := n.Field("condition")
	s := w.s()
	entry := w.cp.makeNext(len(s.fork.heads)-1, len(s.fork.heads))
	s.fork.ReplaceHead([]SegmentID{entry})
	brk := s.pushBreak(label)
	loop := s.pushLoop(loopDoWhile, label)
	loop.continueTarget = entry
	w.statement(body)
	w.expression(cond)
	w.cp.makeLooped(w.exitOf(s), entry)
	s.popLoop()
	s.popBreak()
	w.mergeBreaks(brk)
}

func (w *walker) forStatement(n snode.Node, label string) {
	init := n.Field("initializer")
	cond := n.Field("condition")
	upd := n.Field("increment")
	body := n.Field("body")
	if !init.IsZero() {
		w.scanNested(init)
	}
	w.runLoop(label, loopFor, func(s *state) {
		if !cond.IsZero() {
			w.expression(cond)
		}
	}, func(s *state) {
		w.statement(body)
		if !upd.IsZero() {
			w.scanNested(upd)
		}
	})
}

func (w *walker) forInStatement(n snode.Node, label string) {
	right := n.Field("right")
	body := n.Field("body")
	w.scanNested(right)
	s := w.s()
	entry := w.cp.makeNext(len(s.fork.heads)-1, len(s.fork.heads))
	s.fork.ReplaceHead([]SegmentID{entry})
	brk := s.pushBreak(label)
	loop := s.pushLoop(loopForInOf, label)
	loop.continueTarget = entry
	w.statement(body)
	w.cp.makeLooped(w.exitOf(s), entry)
	s.popLoop()
	s.popBreak()
	w.mergeBreaks(brk)
}

// runLoop models while/for: test, body, back-edge to test.
func (w *walker) runLoop(label string, kind loopKind, test func(*state), body func(*state)) {
	s := w.s()
	testEntry := w.cp.makeNext(len(s.fork.heads)-1, len(s.fork.heads))
	s.fork.ReplaceHead([]SegmentID{testEntry})
	test(s)
	testExit := s.currentHead()

	bodyEntry := w.cp.makeNext(len(s.fork.heads)-1, len(s.fork.heads))
	s.fork.ReplaceHead([]SegmentID{bodyEntry})
	brk := s.pushBreak(label)
	loop := s.pushLoop(kind, label)
	loop.continueTarget = testEntry
	body(s)
	w.cp.makeLooped(w.exitOf(s), testEntry)
	s.popLoop()
	s.popBreak()

	// Normal loop exit: the test's false branch, approximated by the test's
	// exit head. This edge is added for every loop, including `for(;;)` and
	// constant-true tests, so code after such a loop is treated as reachable.
	join := w.cp.newSegment(testExit, false)
	s.fork.ReplaceHead([]SegmentID{join})
	w.mergeBreaks(brk)
}

func (w *walker) exitOf(s *state) SegmentID {
	head := s.currentHead()
	if len(head) == 1 {
		return head[0]
	}
	return w.cp.newSegment(head, false)
}

func (w *walker) mergeBreaks(brk *breakContext) {
	if len(brk.brokenHeads) == 0 {
		return
	}
	s := w.s()
	current := s.currentHead()
	joined := w.cp.newSegment(append(append([]SegmentID{}, current...), brk.brokenHeads...), false)
	s.fork.ReplaceHead([]SegmentID{joined})
}

// --- switch ---

func (w *walker) switchStatement(n snode.Node) {
	s := w.s()
	brk := s.pushBreak("")
	discHead := s.currentHead()

	body := n.Field("body")
	cases := body.Children()
	var caseEntries []SegmentID
	hasDefault := false
	for _, c := range cases {
		if c.Kind() == "switch_default" {
			hasDefault = true
		}
	}

	prevFallthrough := discHead
	for i, c := range cases {
		entry := w.cp.newSegment(append(append([]SegmentID{}, discHead...), prevFallthrough...), false)
		if i == 0 {
			entry = w.cp.newSegment(discHead, false)
		}
		caseEntries = append(caseEntries, entry)
		s.fork.ReplaceHead([]SegmentID{entry})
		for _, stmt := range c.Children() {
			w.statement(stmt)
		}
		prevFallthrough = s.currentHead()
	}
	s.popBreak()

	var joinSources []SegmentID
	joinSources = append(joinSources, brk.brokenHeads...)
	if !hasDefault {
		joinSources = append(joinSources, discHead...)
	}
	joinSources = append(joinSources, prevFallthrough...)
	join := w.cp.newSegment(joinSources, false)
	s.fork.ReplaceHead([]SegmentID{join})
}

// --- try/catch/finally ---

func (w *walker) tryStatement(n snode.Node) {
	body := n.Field("body")
	handler := n.Field("handler")
	finalizer := n.Field("finalizer")
	s := w.s()

	tryCtx := s.pushTry(!finalizer.IsZero())
	w.statement(body)
	normalExit := s.currentHead()
	thrown := tryCtx.thrown
	s.popTry()

	var afterCatch []SegmentID
	afterCatch = append(afterCatch, normalExit...)
	if !handler.IsZero() {
		catchEntry := w.cp.newSegment(thrown, false)
		s.fork.ReplaceHead([]SegmentID{catchEntry})
		w.statement(handler.Field("body"))
		afterCatch = append(afterCatch, s.currentHead()...)
	} else {
		// No catch: thrown segments propagate to the enclosing try (or the
		// path's ThrownSegments) rather than continuing here.
		if outer := s.currentTry(); outer != nil {
			outer.thrown = append(outer.thrown, thrown...)
		} else {
			w.cp.ThrownSegments = append(w.cp.ThrownSegments, thrown...)
		}
	}

	if !finalizer.IsZero() {
		finEntry := w.cp.newSegment(afterCatch, false)
		s.fork.ReplaceHead([]SegmentID{finEntry})
		w.statement(finalizer)
	} else {
		s.fork.ReplaceHead([]SegmentID{w.cp.newSegment(afterCatch, false)})
	}
}

// --- terminal statements ---

func (w *walker) returnStatement(n snode.Node) {
	if arg := n.Field("argument"); !arg.IsZero() {
		w.scanNested(arg)
	}
	s := w.s()
	head := s.currentHead()
	if t := s.currentTry(); t != nil && t.hasFinally {
		t.returned = append(t.returned, head...)
	} else {
		w.cp.ReturnedSegments = append(w.cp.ReturnedSegments, head...)
	}
	s.fork.ReplaceHead([]SegmentID{w.cp.makeDisconnected()})
}

func (w *walker) throwStatement(n snode.Node) {
	if arg := n.Field("argument"); !arg.IsZero() {
		w.scanNested(arg)
	}
	w.s().addThrow()
	w.s().fork.ReplaceHead([]SegmentID{w.cp.makeDisconnected()})
}

func (w *walker) breakStatement(n snode.Node) {
	label := labelOf(n)
	s := w.s()
	if bc := s.findBreakTarget(label); bc != nil {
		bc.brokenHeads = append(bc.brokenHeads, s.currentHead()...)
	}
	s.fork.ReplaceHead([]SegmentID{w.cp.makeDisconnected()})
}

func (w *walker) continueStatement(n snode.Node) {
	label := labelOf(n)
	s := w.s()
	if loop := s.findLoop(label); loop != nil {
		w.cp.makeLooped(w.exitOf(s), loop.continueTarget)
	}
	s.fork.ReplaceHead([]SegmentID{w.cp.makeDisconnected()})
}

func (w *walker) labeledStatement(n snode.Node) {
	label := n.Field("label").Text()
	body := n.Field("body")
	switch body.Kind() {
	case "while_statement":
		w.whileStatement(body, label)
	case "do_statement":
		w.doStatement(body, label)
	case "for_statement":
		w.forStatement(body, label)
	case "for_in_statement":
		w.forInStatement(body, label)
	default:
		s := w.s()
		brk := s.pushBreak(label)
		w.statement(body)
		s.popBreak()
		w.mergeBreaks(brk)
	}
}

func labelOf(n snode.Node) string {
	if lbl := n.Field("label"); !lbl.IsZero() {
		return lbl.Text()
	}
	return ""
}

// finish closes out the path: whatever remains live in the current head
// falls off the end of the function body, which is an implicit `return
// undefined`, so it joins ReturnedSegments; FinalSegments is always the
// union of Returned and Thrown, per the §8 invariant.
func (w *walker) finish() {
	s := w.s()
	w.cp.ReturnedSegments = append(w.cp.ReturnedSegments, s.currentHead()...)
	w.cp.FinalSegments = append(append([]SegmentID{}, w.cp.ReturnedSegments...), w.cp.ThrownSegments...)
}

// onReturnLike is used for concise arrow bodies (`x => expr`), which behave
// like an implicit `return expr;` for code-path purposes.
func (w *walker) onReturnLike(n snode.Node) {
	s := w.s()
	w.cp.ReturnedSegments = append(w.cp.ReturnedSegments, s.currentHead()...)
}
