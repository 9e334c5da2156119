package codepath

// ForkContext is a stack frame accumulating parallel "heads" — each head a
// set of segment ids representing one branch's current flow — before a
// later merge. Grounded on fork_context.rs (original_source).
type ForkContext struct {
	heads [][]SegmentID
}

func NewForkContext(initial []SegmentID) *ForkContext {
	return &ForkContext{heads: [][]SegmentID{initial}}
}

func (fc *ForkContext) Head() []SegmentID {
	if len(fc.heads) == 0 {
		return nil
	}
	return fc.heads[len(fc.heads)-1]
}

// Push appends a new head (an n-way split awaiting a later merge).
func (fc *ForkContext) Push(segments []SegmentID) {
	fc.heads = append(fc.heads, segments)
}

// Pop removes the most recent head (used when a nested fork context closes
// and control returns to its enclosing one).
func (fc *ForkContext) Pop() []SegmentID {
	h := fc.Head()
	fc.heads = fc.heads[:len(fc.heads)-1]
	return h
}

// ReplaceHead swaps the current head in place, with no new bookkeeping.
func (fc *ForkContext) ReplaceHead(segments []SegmentID) {
	fc.heads[len(fc.heads)-1] = segments
}

func (cp *CodePath) currentPrevs() []SegmentID {
	return cp.state.fork.Head()
}

// newSegment is the shared constructor behind makeNext/makeUnreachable/
// makeDisconnected: creates and immediately commits one segment from the
// given predecessor list, linking the predecessors' next-pointers. Segments
// are committed eagerly (no deferred "unused" flattening pass) — a
// deliberate simplification over the original's lazy commit.
func (cp *CodePath) newSegment(prevs []SegmentID, forceUnreachable bool) SegmentID {
	id := cp.newSegmentID()
	seg := cp.segments[id]
	seg.AllPrevSegments = append([]SegmentID{}, prevs...)

	reachable := len(prevs) == 0 && !forceUnreachable // initial segment
	if !forceUnreachable {
		for _, p := range prevs {
			if cp.segments[p].Reachable {
				reachable = true
				seg.PrevSegments = append(seg.PrevSegments, p)
			}
		}
	}
	if forceUnreachable {
		reachable = false
	}
	seg.Reachable = reachable
	seg.used = true

	for _, p := range prevs {
		ps := cp.segments[p]
		ps.AllNextSegments = append(ps.AllNextSegments, id)
		if ps.Reachable && reachable {
			ps.NextSegments = append(ps.NextSegments, id)
		}
	}
	return id
}

// makeNext creates a segment reachable iff any predecessor in heads
// [begin:end] is reachable.
func (cp *CodePath) makeNext(begin, end int) SegmentID {
	prevs := cp.headRange(begin, end)
	return cp.newSegment(prevs, false)
}

// makeUnreachable creates a segment that is always unreachable regardless
// of its predecessors' reachability, and marks it used immediately.
func (cp *CodePath) makeUnreachable(begin, end int) SegmentID {
	prevs := cp.headRange(begin, end)
	return cp.newSegment(prevs, true)
}

// makeDisconnected creates a segment with no predecessors linked at all —
// used to begin the dead code that follows throw/return/break/continue.
func (cp *CodePath) makeDisconnected() SegmentID {
	return cp.newSegment(nil, true)
}

// makeLooped records a loop back-edge from "from" to the loop's entry
// segment. The edge participates in Next/Prev bookkeeping like any other,
// but is additionally recorded on LoopedPrevSegments so a traversal can
// recognize it as a cycle-closing edge and not require visiting "from"
// before "entry". Reachability of entry is NOT recomputed from this edge
// (a back-edge never makes an otherwise-unreachable loop body reachable).
func (cp *CodePath) makeLooped(from, entry SegmentID) {
	fromSeg := cp.segments[from]
	entrySeg := cp.segments[entry]
	entrySeg.LoopedPrevSegments = append(entrySeg.LoopedPrevSegments, from)
	entrySeg.AllPrevSegments = append(entrySeg.AllPrevSegments, from)
	fromSeg.AllNextSegments = append(fromSeg.AllNextSegments, entry)
	if fromSeg.Reachable {
		entrySeg.PrevSegments = append(entrySeg.PrevSegments, from)
		fromSeg.NextSegments = append(fromSeg.NextSegments, entry)
	}
}

func (cp *CodePath) headRange(begin, end int) []SegmentID {
	var out []SegmentID
	heads := cp.state.fork.heads
	if end > len(heads) {
		end = len(heads)
	}
	for i := begin; i < end; i++ {
		out = append(out, heads[i]...)
	}
	return out
}
