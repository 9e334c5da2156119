// Package lintconfig holds the typed configuration surface of §6: the
// recognized options for one file run. Loading these from a config file on
// disk is explicitly out of scope (spec.md Non-goals); callers construct an
// Options value directly, grounded on fillmore-labs-scopeguard's
// internal/config.Config (a plain struct of recognized keys, no file IO) and
// mna-nenuphar's scope.Options (SourceType/EcmaVersion shape, generalized
// here from JS to the broader rule-config surface).
package lintconfig

import "github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/scope"

// Severity mirrors the three states a rule's configuration entry may take.
type Severity int

const (
	RuleOff Severity = iota
	RuleWarn
	RuleError
)

// RuleSetting is one entry of the `rules` configuration map.
type RuleSetting struct {
	Severity Severity
	Options  map[string]interface{}
}

// Options is the full configuration object of §6.
type Options struct {
	EcmaVersion   int
	SourceType    scope.SourceType
	ImpliedStrict bool
	NodejsScope   bool
	Optimistic    bool

	// Globals maps a name to one of "readonly" | "writable" | "off" (or
	// another spelling globals.ParseVisibility accepts), supplied by the
	// caller. `/* global */` directive comments are not stored here; the
	// rule engine folds them into its globals table separately.
	Globals map[string]string

	// Rules maps a rule id to its configured severity and options.
	Rules map[string]RuleSetting
}

// Default returns the options a bare invocation should use: ES2022, script
// source type, nothing else enabled — matching scope.DefaultOptions().
func Default() Options {
	d := scope.DefaultOptions()
	return Options{
		EcmaVersion: d.EcmaVersion,
		SourceType:  d.SourceType,
		Globals:     map[string]string{},
		Rules:       map[string]RuleSetting{},
	}
}

// ScopeOptions narrows Options down to the subset scope.Analyze consumes.
func (o Options) ScopeOptions() scope.Options {
	return scope.Options{
		EcmaVersion:   o.EcmaVersion,
		SourceType:    o.SourceType,
		NodejsScope:   o.NodejsScope,
		ImpliedStrict: o.ImpliedStrict,
		Optimistic:    o.Optimistic,
	}
}

// RuleEnabled reports whether a rule id is configured to run at all.
func (o Options) RuleEnabled(ruleID string) bool {
	setting, ok := o.Rules[ruleID]
	if !ok {
		return false
	}
	return setting.Severity != RuleOff
}
