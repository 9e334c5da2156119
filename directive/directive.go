// Package directive parses the comment-borne directive grammar of §6:
// `/* global foo:writable */`, `/* eslint-disable rule-name */`, and
// friends. Grounded on original_source's
// plugin/src/{directive_comments.rs,directives.rs,scope/config_comment_parser.rs}.
// The two regexes here are, per the Design Notes, the only string-level
// grammar in the core — everything else operates on the syntax tree.
package directive

import (
	"regexp"
	"strings"

	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/globals"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/internal/snode"
)

// justificationPattern splits a directive's payload from a trailing
// human-readable justification, introduced by an " -- " run of at least two
// dashes (directive_comments.rs's extract_directive_comment).
var justificationPattern = regexp.MustCompile(`\s-{2,}\s`)

// directivesPattern recognizes the directive keyword at the start of a
// comment's payload (directives.rs's directives_pattern).
var directivesPattern = regexp.MustCompile(`^(eslint(?:-env|-enable|-disable(?:(?:-next)?-line)?)?|exported|globals?)(\s|$)`)

// pairSeparator and colonSpacing implement config_comment_parser's two-step
// normalization: collapse whitespace around `:`/`,` to the bare punctuation,
// then split on whitespace or runs of commas.
var colonSpacing = regexp.MustCompile(`\s*([:,])\s*`)
var pairSeparator = regexp.MustCompile(`[\s,]+`)

// NameValue is one parsed `name[:value]` pair from a directive payload.
type NameValue struct {
	Name    string
	Value   string // empty when the directive had no explicit value
	HasValue bool
}

// EnabledGlobal is one name declared by a `global`/`globals` directive
// comment, with the last comment to mention it winning (directive_comments.rs).
type EnabledGlobal struct {
	Name     string
	Value    globals.Visibility
	Comments []snode.Comment
}

// extractDirectiveComment splits a comment's text content into the
// directive payload and the (discarded) justification.
func extractDirectiveComment(value string) (directive, justification string) {
	loc := justificationPattern.FindStringIndex(value)
	if loc == nil {
		return strings.TrimSpace(value), ""
	}
	return strings.TrimSpace(value[:loc[0]]), strings.TrimSpace(value[loc[1]:])
}

// parseStringConfig splits a directive's value portion into name[:value]
// pairs (config_comment_parser.parse_string_config).
func parseStringConfig(s string) []NameValue {
	normalized := colonSpacing.ReplaceAllString(s, "$1")
	var out []NameValue
	for _, part := range pairSeparator.Split(strings.TrimSpace(normalized), -1) {
		if part == "" {
			continue
		}
		if idx := strings.IndexByte(part, ':'); idx >= 0 {
			out = append(out, NameValue{Name: part[:idx], Value: part[idx+1:], HasValue: true})
		} else {
			out = append(out, NameValue{Name: part})
		}
	}
	return out
}

// commentContents strips the leading `//`/`/*` and trailing `*/` from a
// comment node's raw text (ast_helpers::get_comment_contents).
func commentContents(c snode.Comment) string {
	text := c.Text()
	switch {
	case strings.HasPrefix(text, "/*"):
		return strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/")
	case strings.HasPrefix(text, "//"):
		return strings.TrimPrefix(text, "//")
	default:
		return text
	}
}

// visibilityOf implements §6's "Visibility values" mapping, including the
// directive-specific fallback that a bare name (no `:value`) or an empty
// value defaults to readonly.
func visibilityOf(nv NameValue) (globals.Visibility, bool) {
	if !nv.HasValue || nv.Value == "" {
		return globals.Readonly, true
	}
	return globals.ParseVisibility(nv.Value)
}

// CollectEnabledGlobals scans every comment in the file for `global`/
// `globals` directives and returns the resulting name -> visibility table,
// keyed by declared name; a later comment overrides an earlier one for the
// same name, matching directive_comments.rs's `enabled_global.value = ...`
// overwrite-in-place.
func CollectEnabledGlobals(comments []snode.Comment) map[string]*EnabledGlobal {
	out := make(map[string]*EnabledGlobal)
	for _, c := range comments {
		directivePart, _ := extractDirectiveComment(commentContents(c))
		m := directivesPattern.FindStringSubmatchIndex(directivePart)
		if m == nil {
			continue
		}
		keyword := directivePart[m[2]:m[3]]
		if keyword != "global" && keyword != "globals" {
			continue
		}
		valuePart := directivePart[m[1]:]
		for _, nv := range parseStringConfig(valuePart) {
			vis, ok := visibilityOf(nv)
			if !ok {
				continue
			}
			entry, exists := out[nv.Name]
			if !exists {
				entry = &EnabledGlobal{Name: nv.Name}
				out[nv.Name] = entry
			}
			entry.Value = vis
			entry.Comments = append(entry.Comments, c)
		}
	}
	return out
}

// DisableRegion is one `eslint-disable`/`eslint-enable`/`eslint-disable-line`/
// `eslint-disable-next-line` directive, with the rule ids it names (empty
// means "all rules").
type DisableRegion struct {
	Kind    string // "disable" | "enable" | "disable-line" | "disable-next-line"
	RuleIDs []string
	Comment snode.Comment
}

var disableKeyword = regexp.MustCompile(`^eslint-(enable|disable(?:-next-line|-line)?)$`)

// CollectDisableRegions scans every comment for eslint-enable/-disable
// directives, used by the engine to suppress matching diagnostics (§4.4).
func CollectDisableRegions(comments []snode.Comment) []DisableRegion {
	var out []DisableRegion
	for _, c := range comments {
		directivePart, _ := extractDirectiveComment(commentContents(c))
		m := directivesPattern.FindStringSubmatchIndex(directivePart)
		if m == nil {
			continue
		}
		keyword := directivePart[m[2]:m[3]]
		km := disableKeyword.FindStringSubmatch(keyword)
		if km == nil {
			continue
		}
		valuePart := strings.TrimSpace(directivePart[m[1]:])
		var ids []string
		if valuePart != "" {
			for _, part := range pairSeparator.Split(valuePart, -1) {
				if part != "" {
					ids = append(ids, part)
				}
			}
		}
		out = append(out, DisableRegion{Kind: km[1], RuleIDs: ids, Comment: c})
	}
	return out
}
