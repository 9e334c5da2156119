package codepath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/codepath"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/parse"
)

func build(t *testing.T, src string) *codepath.Graphs {
	t.Helper()
	root, err := parse.Source([]byte(src))
	require.NoError(t, err)
	return codepath.NewAnalyzer().Build(root)
}

func TestBuild_ProgramPathExists(t *testing.T) {
	g := build(t, `let x = 1;`)
	require.Len(t, g.All, 1)
	assert.Equal(t, codepath.OriginProgram, g.All[0].Origin)
}

func TestBuild_FunctionGetsItsOwnPath(t *testing.T) {
	g := build(t, `function f(x) {
  if (x) {
    return 1;
  }
  return 2;
}`)

	var fn *codepath.CodePath
	for _, cp := range g.All {
		if cp.Origin == codepath.OriginFunction {
			fn = cp
		}
	}
	require.NotNil(t, fn)
	// Two live return sites plus finish()'s trailing disconnected segment
	// (unreachable, since the last statement already returned).
	require.Len(t, fn.ReturnedSegments, 3)
	live := 0
	for _, segID := range fn.ReturnedSegments {
		if fn.Segment(segID).Reachable {
			live++
		}
	}
	assert.Equal(t, 2, live, "exactly the two explicit return statements are live")
}

func TestBuild_IfWithoutElseJoinsBothBranches(t *testing.T) {
	g := build(t, `function f(x) {
  let y = 0;
  if (x) {
    y = 1;
  }
  return y;
}`)

	var fn *codepath.CodePath
	for _, cp := range g.All {
		if cp.Origin == codepath.OriginFunction {
			fn = cp
		}
	}
	require.NotNil(t, fn)
	// The live return site plus finish()'s trailing disconnected artifact.
	require.Len(t, fn.ReturnedSegments, 2)

	var live *codepath.Segment
	for _, segID := range fn.ReturnedSegments {
		if seg := fn.Segment(segID); seg.Reachable {
			live = seg
		}
	}
	require.NotNil(t, live, "falling out of a taken-or-not if is always reachable")
	assert.GreaterOrEqual(t, len(live.AllPrevSegments), 1)
}

func TestBuild_LoopBackEdgeRecorded(t *testing.T) {
	g := build(t, `function f() {
  while (true) {
    doWork();
  }
}`)

	var fn *codepath.CodePath
	for _, cp := range g.All {
		if cp.Origin == codepath.OriginFunction {
			fn = cp
		}
	}
	require.NotNil(t, fn)

	foundBackEdge := false
	for _, seg := range fn.AllSegments() {
		if len(seg.LoopedPrevSegments) > 0 {
			foundBackEdge = true
		}
	}
	assert.True(t, foundBackEdge, "the loop body's re-entry segment should record a looped predecessor")
}

func TestBuild_TryCatchFunctionHasReturnedSegments(t *testing.T) {
	g := build(t, `function f() {
  try {
    mayThrow();
  } catch (e) {
    return e;
  }
}`)

	var fn *codepath.CodePath
	for _, cp := range g.All {
		if cp.Origin == codepath.OriginFunction {
			fn = cp
		}
	}
	require.NotNil(t, fn)
	assert.NotEmpty(t, fn.ReturnedSegments)
}
