package scope_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/parse"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/scope"
)

func mustParse(t *testing.T, src string) []byte {
	t.Helper()
	return []byte(src)
}

func analyze(t *testing.T, src string) *scope.Manager {
	t.Helper()
	root, err := parse.Source(mustParse(t, src))
	require.NoError(t, err)
	return scope.Analyze(root, scope.DefaultOptions())
}

func TestAnalyze_ResolvesLocalVariable(t *testing.T) {
	m := analyze(t, `function f() {
  let x = 1;
  return x;
}`)

	var fnScope *scope.Scope
	for _, s := range m.AllScopes() {
		if s.Type == scope.Function {
			fnScope = s
		}
	}
	require.NotNil(t, fnScope)

	vid, ok := fnScope.Find("x")
	require.True(t, ok)
	v := m.Variable(vid)
	assert.Equal(t, "x", v.Name)
	assert.Len(t, v.References, 2, "the initializer write plus the return read")
}

func TestAnalyze_UnresolvedGlobalEscalatesThrough(t *testing.T) {
	m := analyze(t, `function f() {
  return unknownGlobal;
}`)

	global := m.GlobalScope()
	_, ok := global.Find("unknownGlobal")
	assert.False(t, ok, "nothing declares it, so it never becomes a variable")

	found := false
	for _, rid := range global.Through {
		if m.Reference(rid).Identifier.Text() == "unknownGlobal" {
			found = true
		}
	}
	assert.True(t, found, "the read should escalate up to the global scope's Through set")
}

func TestAnalyze_SloppyModeImplicitGlobal(t *testing.T) {
	m := analyze(t, `function f() {
  leaked = 1;
}`)

	global := m.GlobalScope()
	vid, ok := global.Find("leaked")
	require.True(t, ok, "an unresolved write in sloppy mode promotes to an implicit global")
	v := m.Variable(vid)
	require.Len(t, v.Defs, 1)
	assert.Equal(t, scope.DefImplicitGlobalVariable, v.Defs[0].Kind)
}

func TestAnalyze_CatchClauseBindsParameter(t *testing.T) {
	m := analyze(t, `try {
  doSomething();
} catch (e) {
  console.log(e);
}`)

	var catchScope *scope.Scope
	for _, s := range m.AllScopes() {
		if s.Type == scope.Catch {
			catchScope = s
		}
	}
	require.NotNil(t, catchScope)
	vid, ok := catchScope.Find("e")
	require.True(t, ok)
	v := m.Variable(vid)
	require.Len(t, v.Defs, 1)
	assert.Equal(t, scope.DefCatchClause, v.Defs[0].Kind)
}

func TestFindVariable_WalksUpAncestorScopes(t *testing.T) {
	root, err := parse.Source([]byte(`let outer = 1;
function f() {
  function g() {
    return outer;
  }
}`))
	require.NoError(t, err)
	m := scope.Analyze(root, scope.DefaultOptions())

	var innerMost *scope.Scope
	for _, s := range m.AllScopes() {
		if s.Type == scope.Function && len(s.Children) == 0 {
			innerMost = s
		}
	}
	require.NotNil(t, innerMost)

	v := scope.FindVariable(m, innerMost, "outer")
	require.NotNil(t, v)
	assert.Equal(t, m.GlobalScope().ID, v.Scope)
}
