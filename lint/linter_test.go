package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/internal/snode"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/lint"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/lintconfig"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/parse"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/rule"
)

func TestLinter_New_RunsDefaultRuleSet(t *testing.T) {
	l := lint.New()
	src := []byte(`if (x == null) {}`)
	root, err := parse.Source(src)
	require.NoError(t, err)

	res := l.Run(root, src)
	found := false
	for _, d := range res.Diagnostics {
		if d.RuleID == "no-eq-null" {
			found = true
		}
	}
	assert.True(t, found, "the default rule set should include no-eq-null and flag this source")
}

func TestLinter_Run_CachesBySourceContent(t *testing.T) {
	src := []byte(`let x = 1;`)
	root, err := parse.Source(src)
	require.NoError(t, err)

	l := lint.New()
	first := l.Run(root, src)
	second := l.Run(root, src)
	assert.Equal(t, first.Diagnostics, second.Diagnostics)
}

func TestLinter_WithOptions_OnlyConfiguredRulesRun(t *testing.T) {
	opts := lintconfig.Default()
	opts.Rules["no-eq-null"] = lintconfig.RuleSetting{Severity: lintconfig.RuleWarn}

	l := lint.New(lint.WithOptions(opts))
	src := []byte(`if (x == null) {}`)
	root, err := parse.Source(src)
	require.NoError(t, err)

	res := l.Run(root, src)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "no-eq-null", res.Diagnostics[0].RuleID)

	other := lintconfig.Default()
	other.Rules["no-new-wrappers"] = lintconfig.RuleSetting{Severity: lintconfig.RuleWarn}
	l2 := lint.New(lint.WithOptions(other))
	res2 := l2.Run(root, src)
	assert.Empty(t, res2.Diagnostics, "no-eq-null isn't in this run's configured rule set")
}

func TestLinter_WithRules_AddsCustomRuleAlongsideDefaults(t *testing.T) {
	seen := 0
	custom := rule.New("count-programs", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{{
			Query: rule.On("program"),
			Callback: func(ctx *rule.Context, n snode.Node) {
				seen++
			},
		}}
	})

	l := lint.New(lint.WithRules(custom))
	src := []byte(`let x = 1;`)
	root, err := parse.Source(src)
	require.NoError(t, err)

	l.Run(root, src)
	assert.Equal(t, 1, seen)
}
