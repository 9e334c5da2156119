package rule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/internal/snode"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/lintconfig"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/parse"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/rule"
)

func TestEngine_Run_DispatchesMatchingListener(t *testing.T) {
	src := []byte(`x == null;`)
	root, err := parse.Source(src)
	require.NoError(t, err)

	seen := 0
	r := rule.New("track-binary", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{{
			Query: rule.On("binary_expression"),
			Callback: func(ctx *rule.Context, n snode.Node) {
				seen++
				ctx.ReportNode(n, "saw a binary expression")
			},
		}}
	})

	engine := rule.NewEngine(r)
	diags := engine.Run(root, src, lintconfig.Default())

	assert.Equal(t, 1, seen)
	require.Len(t, diags, 1)
	assert.Equal(t, "track-binary", diags[0].RuleID)
}

func TestEngine_Run_EnterAndExitBothFire(t *testing.T) {
	src := []byte(`if (x) { y(); }`)
	root, err := parse.Source(src)
	require.NoError(t, err)

	var order []string
	r := rule.New("order-tracker", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{
			{Query: rule.On("if_statement"), Callback: func(ctx *rule.Context, n snode.Node) {
				order = append(order, "enter")
			}},
			{Query: rule.OnExit("if_statement"), Callback: func(ctx *rule.Context, n snode.Node) {
				order = append(order, "exit")
			}},
		}
	})

	engine := rule.NewEngine(r)
	engine.Run(root, src, lintconfig.Default())

	assert.Equal(t, []string{"enter", "exit"}, order)
}

func TestEngine_Run_CrashIsolatesOnlyTheFailingRule(t *testing.T) {
	src := []byte(`a(); b();`)
	root, err := parse.Source(src)
	require.NoError(t, err)

	goodSeen := 0
	crashing := rule.New("crasher", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{{
			Query: rule.On("call_expression"),
			Callback: func(ctx *rule.Context, n snode.Node) {
				panic("boom")
			},
		}}
	})
	good := rule.New("good", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{{
			Query: rule.On("call_expression"),
			Callback: func(ctx *rule.Context, n snode.Node) {
				goodSeen++
			},
		}}
	})

	engine := rule.NewEngine(crashing, good)
	diags := engine.Run(root, src, lintconfig.Default())

	// Two call expressions exist; the crashing rule should be disabled after
	// its first panic, but the good rule keeps running for both.
	assert.Equal(t, 2, goodSeen)

	foundCore := false
	for _, d := range diags {
		if d.RuleID == "core" {
			foundCore = true
		}
	}
	assert.True(t, foundCore, "a core diagnostic should report the crash")
}

func TestEngine_Run_DisableLineDirectiveSuppresses(t *testing.T) {
	src := []byte("x == null; // eslint-disable-line eq-checker\ny == null;\n")
	root, err := parse.Source(src)
	require.NoError(t, err)

	r := rule.New("eq-checker", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{{
			Query: rule.On("binary_expression").Eq("operator", "=="),
			Callback: func(ctx *rule.Context, n snode.Node) {
				ctx.ReportNode(n, "use === instead")
			},
		}}
	})

	engine := rule.NewEngine(r)
	diags := engine.Run(root, src, lintconfig.Default())

	require.Len(t, diags, 1, "the first line's diagnostic should be suppressed, the second line's should survive")
	assert.Equal(t, uint32(1), diags[0].Range.StartRow)
}

func TestEngine_Run_DisableDirectiveNeverSuppressesCoreDiagnostics(t *testing.T) {
	src := []byte("a(); // eslint-disable-line crasher\n")
	root, err := parse.Source(src)
	require.NoError(t, err)

	crashing := rule.New("crasher", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{{
			Query: rule.On("call_expression"),
			Callback: func(ctx *rule.Context, n snode.Node) {
				panic("boom")
			},
		}}
	})

	engine := rule.NewEngine(crashing)
	diags := engine.Run(root, src, lintconfig.Default())

	require.Len(t, diags, 1)
	assert.Equal(t, "core", diags[0].RuleID)
}

func TestEngine_Run_ReportIDSubstitutesPlaceholdersFromCatalog(t *testing.T) {
	src := []byte(`x;`)
	root, err := parse.Source(src)
	require.NoError(t, err)

	r := rule.New("catalog-rule", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{{
			Query: rule.On("identifier"),
			Callback: func(ctx *rule.Context, n snode.Node) {
				ctx.ReportNodeID(n, "unexpectedName", map[string]string{"name": n.Text()})
			},
		}}
	}, rule.WithMessages(map[string]string{
		"unexpectedName": "Unexpected identifier '{{name}}'.",
	}))

	engine := rule.NewEngine(r)
	diags := engine.Run(root, src, lintconfig.Default())

	require.Len(t, diags, 1)
	assert.Equal(t, "unexpectedName", diags[0].MessageID)
	assert.Equal(t, "Unexpected identifier 'x'.", diags[0].Message)
}

func TestEngine_Run_RespectsRuleEnabledConfiguration(t *testing.T) {
	src := []byte(`a();`)
	root, err := parse.Source(src)
	require.NoError(t, err)

	calls := 0
	r := rule.New("configurable", func(ctx *rule.Context) []rule.Listener {
		return []rule.Listener{{
			Query: rule.On("call_expression"),
			Callback: func(ctx *rule.Context, n snode.Node) {
				calls++
			},
		}}
	})

	engine := rule.NewEngine(r)
	opts := lintconfig.Default()
	opts.Rules["configurable"] = lintconfig.RuleSetting{Severity: lintconfig.RuleOff}
	engine.Run(root, src, opts)

	assert.Equal(t, 0, calls, "a rule explicitly turned off should not run once opts.Rules is non-empty")
}
