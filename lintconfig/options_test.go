package lintconfig_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/lintconfig"
)

func TestDefault_MatchesScopeDefaults(t *testing.T) {
	d := lintconfig.Default()
	assert.NotZero(t, d.EcmaVersion)
	assert.NotNil(t, d.Globals)
	assert.NotNil(t, d.Rules)
	assert.Empty(t, d.Rules)
}

func TestRuleEnabled_UnconfiguredIsDisabled(t *testing.T) {
	o := lintconfig.Default()
	assert.False(t, o.RuleEnabled("no-eq-null"))
}

func TestRuleEnabled_ConfiguredOffIsDisabled(t *testing.T) {
	o := lintconfig.Default()
	o.Rules["no-eq-null"] = lintconfig.RuleSetting{Severity: lintconfig.RuleOff}
	assert.False(t, o.RuleEnabled("no-eq-null"))
}

func TestRuleEnabled_ConfiguredWarnOrErrorIsEnabled(t *testing.T) {
	o := lintconfig.Default()
	o.Rules["no-eq-null"] = lintconfig.RuleSetting{Severity: lintconfig.RuleWarn}
	assert.True(t, o.RuleEnabled("no-eq-null"))

	o.Rules["no-new-wrappers"] = lintconfig.RuleSetting{Severity: lintconfig.RuleError}
	assert.True(t, o.RuleEnabled("no-new-wrappers"))
}

func TestScopeOptions_NarrowsToScopeSubset(t *testing.T) {
	o := lintconfig.Default()
	o.NodejsScope = true
	o.ImpliedStrict = true
	o.Optimistic = true

	so := o.ScopeOptions()
	assert.Equal(t, o.EcmaVersion, so.EcmaVersion)
	assert.Equal(t, o.SourceType, so.SourceType)
	assert.True(t, so.NodejsScope)
	assert.True(t, so.ImpliedStrict)
	assert.True(t, so.Optimistic)
}
