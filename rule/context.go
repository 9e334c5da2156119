package rule

import (
	"strings"

	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/codepath"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/diagnostic"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/globals"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/internal/snode"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/lintconfig"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/scope"
)

// Context is the handle a listener callback receives: access to the node
// under visit, the source text, the lazily-built analyzers (retrieved via
// ScopeManager()/CodePathGraphs() per §4.3's "context.retrieve::<...>() to
// lazily build (once per file)"), and Report/ReportID for emitting
// diagnostics.
type Context struct {
	Root    snode.Node
	Src     []byte
	Options lintconfig.Options

	ruleID   string
	messages map[string]string
	run      *fileRun

	diagnostics *[]diagnostic.Diagnostic
}

// ScopeManager lazily builds (once per file) and returns the scope tree.
func (c *Context) ScopeManager() *scope.Manager {
	return c.run.scopeManager()
}

// CodePathGraphs lazily builds (once per file) and returns the code-path
// graphs for every executable scope in the file.
func (c *Context) CodePathGraphs() *codepath.Graphs {
	return c.run.codePathGraphs()
}

// Globals returns the effective built-in-globals table for this file run,
// merged with any `/* global */` directive comments already folded in by
// the engine.
func (c *Context) Globals() map[string]globals.Visibility {
	return c.run.globalsTable()
}

// Report emits a diagnostic attributed to the currently-executing rule.
func (c *Context) Report(r snode.Range, message string, fixes ...diagnostic.Fix) {
	*c.diagnostics = append(*c.diagnostics, diagnostic.Diagnostic{
		RuleID:   c.ruleID,
		Range:    r,
		Message:  message,
		Severity: diagnostic.SeverityError,
		Fixes:    fixes,
	})
}

// ReportNode is a convenience wrapper reporting at a node's own range.
func (c *Context) ReportNode(n snode.Node, message string, fixes ...diagnostic.Fix) {
	c.Report(n.Range(), message, fixes...)
}

// ReportID emits a diagnostic from the rule's message catalog: messageId
// looks up the rule's Messages template, and each `{{key}}` placeholder in
// that template is substituted with data[key]. Panics if the rule has no
// template registered for messageId: a missing catalog entry is a rule bug,
// which the engine reports like any other rule crash.
func (c *Context) ReportID(r snode.Range, messageId string, data map[string]string, fixes ...diagnostic.Fix) {
	tmpl, ok := c.messages[messageId]
	if !ok {
		panic("rule " + c.ruleID + ": no message registered for messageId " + messageId)
	}
	msg := tmpl
	for key, val := range data {
		msg = strings.ReplaceAll(msg, "{{"+key+"}}", val)
	}
	*c.diagnostics = append(*c.diagnostics, diagnostic.Diagnostic{
		RuleID:    c.ruleID,
		Range:     r,
		Message:   msg,
		MessageID: messageId,
		Severity:  diagnostic.SeverityError,
		Fixes:     fixes,
	})
}

// ReportNodeID is ReportID at a node's own range.
func (c *Context) ReportNodeID(n snode.Node, messageId string, data map[string]string, fixes ...diagnostic.Fix) {
	c.ReportID(n.Range(), messageId, data, fixes...)
}
