package diagnostic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/diagnostic"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/internal/snode"
)

func rng(start, end uint32) snode.Range {
	return snode.Range{StartByte: start, EndByte: end}
}

func TestFix_Overlaps(t *testing.T) {
	cases := []struct {
		name     string
		a, b     diagnostic.Fix
		overlaps bool
	}{
		{"disjoint", diagnostic.Fix{Range: rng(0, 5)}, diagnostic.Fix{Range: rng(5, 10)}, false},
		{"touching-reversed", diagnostic.Fix{Range: rng(5, 10)}, diagnostic.Fix{Range: rng(0, 5)}, false},
		{"overlapping", diagnostic.Fix{Range: rng(0, 6)}, diagnostic.Fix{Range: rng(5, 10)}, true},
		{"contained", diagnostic.Fix{Range: rng(0, 10)}, diagnostic.Fix{Range: rng(3, 4)}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.overlaps, c.a.Overlaps(c.b))
		})
	}
}

func TestNonOverlapping_DropsConflicts(t *testing.T) {
	fixes := []diagnostic.Fix{
		{Range: rng(10, 15), Replacement: "b"},
		{Range: rng(0, 5), Replacement: "a"},
		{Range: rng(3, 8), Replacement: "conflicts-with-a"},
	}
	kept, dropped := diagnostic.NonOverlapping(fixes)

	require := assert.New(t)
	require.Len(kept, 2)
	require.Equal("a", kept[0].Replacement)
	require.Equal("b", kept[1].Replacement)
	require.Len(dropped, 1)
	require.Equal("conflicts-with-a", dropped[0].Replacement)
}

func TestNonOverlapping_EmptyInput(t *testing.T) {
	kept, dropped := diagnostic.NonOverlapping(nil)
	assert.Empty(t, kept)
	assert.Empty(t, dropped)
}

func TestCoreDiagnostic_IsAttributedToCore(t *testing.T) {
	d := diagnostic.CoreDiagnostic(rng(0, 1), "bad config")
	assert.Equal(t, "core", d.RuleID)
	assert.Equal(t, diagnostic.SeverityError, d.Severity)
	assert.Equal(t, "bad config", d.Message)
}
