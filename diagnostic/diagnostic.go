// Package diagnostic holds the value types a rule callback produces: a
// located, message-carrying finding plus an optional list of textual fix
// edits. Grounded on fillmore-labs-scopeguard's internal/report package
// (Diagnostic/Fix shape, overlap detection), adapted from go/token ranges to
// the engine's byte-range snode.Range.
package diagnostic

import "github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/internal/snode"

type Severity int

const (
	SeverityOff Severity = iota
	SeverityWarn
	SeverityError
)

// Fix is a pure textual range replacement.
type Fix struct {
	Range       snode.Range
	Replacement string
}

// Diagnostic is one reported finding. RuleID "core" is reserved for
// configuration errors and rule-crash notices synthesized by the engine
// itself rather than by a registered rule. MessageID is set only when the
// reporting rule went through its message catalog (rule.Context.ReportID/
// ReportNodeID); it is empty for the common literal-string Report/ReportNode
// path.
type Diagnostic struct {
	RuleID    string
	Range     snode.Range
	Message   string
	MessageID string
	Severity  Severity
	Fixes     []Fix
}

// CoreDiagnostic builds a Diagnostic attributed to the engine rather than a
// rule, used for configuration errors and rule-crash isolation per the
// error-handling design.
func CoreDiagnostic(r snode.Range, message string) Diagnostic {
	return Diagnostic{RuleID: "core", Range: r, Message: message, Severity: SeverityError}
}

// Overlaps reports whether two fixes' ranges share any byte.
func (f Fix) Overlaps(other Fix) bool {
	return f.Range.StartByte < other.Range.EndByte && other.Range.StartByte < f.Range.EndByte
}

// NonOverlapping filters fixes down to a conflict-free, start-byte-ordered
// subset, dropping any fix that overlaps one already kept. The fixer is
// allowed to re-run on a later pass for the dropped ones (§7).
func NonOverlapping(fixes []Fix) (kept []Fix, dropped []Fix) {
	sorted := make([]Fix, len(fixes))
	copy(sorted, fixes)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Range.StartByte < sorted[j-1].Range.StartByte; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	for _, f := range sorted {
		conflict := false
		for _, k := range kept {
			if f.Overlaps(k) {
				conflict = true
				break
			}
		}
		if conflict {
			dropped = append(dropped, f)
		} else {
			kept = append(kept, f)
		}
	}
	return kept, dropped
}
