package rule_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/parse"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/rule"
)

func TestQuery_Eq_MatchesFieldText(t *testing.T) {
	root, err := parse.Source([]byte(`x == null;`))
	require.NoError(t, err)

	var binary = root.NamedChild(0).NamedChild(0)
	require.Equal(t, "binary_expression", binary.Kind())

	q := rule.On("binary_expression").Eq("operator", "==")
	assert.True(t, q.Matches(binary))

	q2 := rule.On("binary_expression").Eq("operator", "===")
	assert.False(t, q2.Matches(binary))
}

func TestQuery_Match_RegexPredicate(t *testing.T) {
	root, err := parse.Source([]byte(`call();`))
	require.NoError(t, err)

	expr := root.NamedChild(0).NamedChild(0)
	require.Equal(t, "call_expression", expr.Kind())

	q := rule.On("call_expression").Match("function", regexp.MustCompile(`^ca`))
	assert.True(t, q.Matches(expr))

	q2 := rule.On("call_expression").Match("function", regexp.MustCompile(`^zz`))
	assert.False(t, q2.Matches(expr))
}

func TestQuery_OnExit_SetsExitFlag(t *testing.T) {
	enter := rule.On("if_statement")
	exit := rule.OnExit("if_statement")
	assert.False(t, enter.Exit)
	assert.True(t, exit.Exit)
	assert.Equal(t, enter.Kind, exit.Kind)
}
