package rule

import (
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/diagnostic"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/directive"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/internal/snode"
)

// interval is one open `eslint-disable` ... `eslint-enable` span, or a
// single-line `eslint-disable-line`/`eslint-disable-next-line` span.
// ruleID == "" means "every rule".
type interval struct {
	ruleID         string
	fromLine, toLine uint32
}

const eof = ^uint32(0)

// applyDisableDirectives drops every diagnostic whose position falls inside
// a matching `eslint-disable` region, per §6's directive-comment grammar.
func applyDisableDirectives(diagnostics []diagnostic.Diagnostic, root snode.Node, src []byte) []diagnostic.Diagnostic {
	regions := directive.CollectDisableRegions(snode.Comments(root, src))
	if len(regions) == 0 {
		return diagnostics
	}

	var intervals []interval
	openAll := -1
	openRule := map[string]int{}
	for _, r := range regions {
		line := int(r.Comment.Range().StartRow)
		switch r.Kind {
		case "disable-line":
			ids := r.RuleIDs
			if len(ids) == 0 {
				ids = []string{""}
			}
			for _, id := range ids {
				intervals = append(intervals, interval{ruleID: id, fromLine: uint32(line), toLine: uint32(line)})
			}
		case "disable-next-line":
			ids := r.RuleIDs
			if len(ids) == 0 {
				ids = []string{""}
			}
			for _, id := range ids {
				intervals = append(intervals, interval{ruleID: id, fromLine: uint32(line + 1), toLine: uint32(line + 1)})
			}
		case "disable":
			if len(r.RuleIDs) == 0 {
				if openAll < 0 {
					openAll = line
				}
				continue
			}
			for _, id := range r.RuleIDs {
				if _, ok := openRule[id]; !ok {
					openRule[id] = line
				}
			}
		case "enable":
			if len(r.RuleIDs) == 0 {
				if openAll >= 0 {
					intervals = append(intervals, interval{fromLine: uint32(openAll), toLine: uint32(line)})
					openAll = -1
				}
				for id, from := range openRule {
					intervals = append(intervals, interval{ruleID: id, fromLine: uint32(from), toLine: uint32(line)})
				}
				openRule = map[string]int{}
				continue
			}
			for _, id := range r.RuleIDs {
				if from, ok := openRule[id]; ok {
					intervals = append(intervals, interval{ruleID: id, fromLine: uint32(from), toLine: uint32(line)})
					delete(openRule, id)
				}
			}
		}
	}
	if openAll >= 0 {
		intervals = append(intervals, interval{fromLine: uint32(openAll), toLine: eof})
	}
	for id, from := range openRule {
		intervals = append(intervals, interval{ruleID: id, fromLine: uint32(from), toLine: eof})
	}

	out := diagnostics[:0:0]
	for _, d := range diagnostics {
		if d.RuleID == "core" {
			out = append(out, d)
			continue
		}
		line := d.Range.StartRow
		suppressed := false
		for _, iv := range intervals {
			if (iv.ruleID == "" || iv.ruleID == d.RuleID) && line >= iv.fromLine && line <= iv.toLine {
				suppressed = true
				break
			}
		}
		if !suppressed {
			out = append(out, d)
		}
	}
	return out
}
