package directive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/directive"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/globals"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/internal/snode"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/parse"
)

func comments(t *testing.T, src string) []snode.Comment {
	t.Helper()
	root, err := parse.Source([]byte(src))
	require.NoError(t, err)
	return snode.Comments(root, []byte(src))
}

func TestCollectEnabledGlobals_PlainNameDefaultsReadonly(t *testing.T) {
	g := directive.CollectEnabledGlobals(comments(t, `/* global myGlobal */`))
	require.Contains(t, g, "myGlobal")
	assert.Equal(t, globals.Readonly, g["myGlobal"].Value)
}

func TestCollectEnabledGlobals_ExplicitVisibility(t *testing.T) {
	g := directive.CollectEnabledGlobals(comments(t, `/* global myGlobal:writable, other:readonly */`))
	require.Contains(t, g, "myGlobal")
	require.Contains(t, g, "other")
	assert.Equal(t, globals.Writable, g["myGlobal"].Value)
	assert.Equal(t, globals.Readonly, g["other"].Value)
}

func TestCollectEnabledGlobals_LaterCommentWins(t *testing.T) {
	g := directive.CollectEnabledGlobals(comments(t, `
/* global x:readonly */
/* global x:writable */
`))
	require.Contains(t, g, "x")
	assert.Equal(t, globals.Writable, g["x"].Value)
	assert.Len(t, g["x"].Comments, 2)
}

func TestCollectEnabledGlobals_JustificationStripped(t *testing.T) {
	g := directive.CollectEnabledGlobals(comments(t, `/* global x -- needed for legacy widget */`))
	require.Contains(t, g, "x")
	assert.Equal(t, globals.Readonly, g["x"].Value)
}

func TestCollectEnabledGlobals_IgnoresUnrelatedComments(t *testing.T) {
	g := directive.CollectEnabledGlobals(comments(t, `// just a regular comment`))
	assert.Empty(t, g)
}

func TestCollectDisableRegions_DisableLine(t *testing.T) {
	regions := directive.CollectDisableRegions(comments(t, `let x = 1; // eslint-disable-line no-unused-vars`))
	require.Len(t, regions, 1)
	assert.Equal(t, "disable-line", regions[0].Kind)
	assert.Equal(t, []string{"no-unused-vars"}, regions[0].RuleIDs)
}

func TestCollectDisableRegions_DisableNextLineAllRules(t *testing.T) {
	regions := directive.CollectDisableRegions(comments(t, `
// eslint-disable-next-line
let x = 1;
`))
	require.Len(t, regions, 1)
	assert.Equal(t, "disable-next-line", regions[0].Kind)
	assert.Empty(t, regions[0].RuleIDs)
}

func TestCollectDisableRegions_OpenCloseBlock(t *testing.T) {
	regions := directive.CollectDisableRegions(comments(t, `
/* eslint-disable no-console */
console.log("hi");
/* eslint-enable no-console */
`))
	require.Len(t, regions, 2)
	assert.Equal(t, "disable", regions[0].Kind)
	assert.Equal(t, []string{"no-console"}, regions[0].RuleIDs)
	assert.Equal(t, "enable", regions[1].Kind)
	assert.Equal(t, []string{"no-console"}, regions[1].RuleIDs)
}
