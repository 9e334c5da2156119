package codepath

import "github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/internal/snode"

// state is the per-code-path transient construction state: the current
// fork context plus five context stacks (choice, switch, try, loop, break);
// there is no optional-chain context. It is discarded once the path
// finishes building.
type state struct {
	cp   *CodePath
	fork *ForkContext

	choices []*choiceContext
	switches []*switchContext
	tries    []*tryContext
	loops    []*loopContext
	breaks   []*breakContext
}

func newState(cp *CodePath, initial SegmentID) *state {
	return &state{cp: cp, fork: NewForkContext([]SegmentID{initial})}
}

func (s *state) currentHead() []SegmentID { return s.fork.Head() }

// --- choice: &&, ||, ??, ?:, and the condition of any branching stmt ---

type choiceKind int

const (
	choiceIf choiceKind = iota
	choiceAnd
	choiceOr
	choiceNullish
	choiceTernary
)

type choiceContext struct {
	kind        choiceKind
	trueHeads   []SegmentID
	falseHeads  []SegmentID
	qqHeads     []SegmentID
	processed   bool
}

func (s *state) pushChoice(kind choiceKind) *choiceContext {
	c := &choiceContext{kind: kind}
	s.choices = append(s.choices, c)
	return c
}

func (s *state) popChoice() *choiceContext {
	c := s.choices[len(s.choices)-1]
	s.choices = s.choices[:len(s.choices)-1]
	return c
}

func (s *state) currentChoice() *choiceContext {
	if len(s.choices) == 0 {
		return nil
	}
	return s.choices[len(s.choices)-1]
}

// --- switch ---

type switchCase struct {
	entry     SegmentID
	isDefault bool
}

type switchContext struct {
	cases       []switchCase
	defaultSeen bool
	brk         *breakContext
}

func (s *state) pushSwitch() *switchContext {
	c := &switchContext{}
	s.switches = append(s.switches, c)
	return c
}

func (s *state) popSwitch() *switchContext {
	c := s.switches[len(s.switches)-1]
	s.switches = s.switches[:len(s.switches)-1]
	return c
}

// --- try/catch/finally ---

type tryContext struct {
	thrown    []SegmentID // segments that may throw inside try
	returned  []SegmentID // return/throw heads that must still flow through finally
	hasFinally bool
}

func (s *state) pushTry(hasFinally bool) *tryContext {
	c := &tryContext{hasFinally: hasFinally}
	s.tries = append(s.tries, c)
	return c
}

func (s *state) popTry() *tryContext {
	c := s.tries[len(s.tries)-1]
	s.tries = s.tries[:len(s.tries)-1]
	return c
}

func (s *state) currentTry() *tryContext {
	if len(s.tries) == 0 {
		return nil
	}
	return s.tries[len(s.tries)-1]
}

// addThrow records the current head as a possible throw-site inside the
// innermost try block, so the catch clause's entry head can include it.
func (s *state) addThrow() {
	if t := s.currentTry(); t != nil {
		t.thrown = append(t.thrown, s.currentHead()...)
	} else {
		s.cp.ThrownSegments = append(s.cp.ThrownSegments, s.currentHead()...)
	}
}

// --- loop ---

type loopKind int

const (
	loopWhile loopKind = iota
	loopDoWhile
	loopFor
	loopForInOf
)

type loopContext struct {
	kind          loopKind
	label         string
	continueTarget SegmentID
	breakCtx      *breakContext
	testHead      []SegmentID
}

func (s *state) pushLoop(kind loopKind, label string) *loopContext {
	c := &loopContext{kind: kind, label: label}
	s.loops = append(s.loops, c)
	return c
}

func (s *state) popLoop() *loopContext {
	c := s.loops[len(s.loops)-1]
	s.loops = s.loops[:len(s.loops)-1]
	return c
}

func (s *state) currentLoop() *loopContext {
	if len(s.loops) == 0 {
		return nil
	}
	return s.loops[len(s.loops)-1]
}

// --- break/continue (label-aware) ---

type breakContext struct {
	label      string
	brokenHeads []SegmentID
}

func (s *state) pushBreak(label string) *breakContext {
	c := &breakContext{label: label}
	s.breaks = append(s.breaks, c)
	return c
}

func (s *state) popBreak() *breakContext {
	c := s.breaks[len(s.breaks)-1]
	s.breaks = s.breaks[:len(s.breaks)-1]
	return c
}

// findBreakTarget returns the break context for `label` (innermost if
// label == ""), walking from the innermost outward.
func (s *state) findBreakTarget(label string) *breakContext {
	for i := len(s.breaks) - 1; i >= 0; i-- {
		if label == "" || s.breaks[i].label == label {
			return s.breaks[i]
		}
	}
	return nil
}

func (s *state) findLoop(label string) *loopContext {
	for i := len(s.loops) - 1; i >= 0; i-- {
		if label == "" || s.loops[i].label == label {
			return s.loops[i]
		}
	}
	return nil
}

// recordEvent attaches a debug node event to every currently-open head
// segment; used for the traversal's Nodes field consumed only by tests.
func (s *state) recordEvent(kind EventKind, n snode.Node) {
	for _, id := range s.currentHead() {
		seg := s.cp.segments[id]
		seg.Nodes = append(seg.Nodes, NodeEvent{Kind: kind, Node: n})
	}
}
