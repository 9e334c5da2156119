package scope

import "github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/internal/snode"

// ReferenceTracker recognizes plain member-access chains rooted at a global
// (e.g. `Object.assign`, `Array.from`) when the root name is not bound by
// any non-global scope; it does not follow local aliases, destructuring or
// re-exports. no-new-symbol is its one caller. Grounded on eslint-utils'
// ReferenceTracker (reference_tracker.rs).
type ReferenceTracker struct {
	m *Manager
}

func NewReferenceTracker(m *Manager) *ReferenceTracker { return &ReferenceTracker{m: m} }

// MemberPath returns the dotted path of a member-expression chain rooted at
// an unresolved (therefore presumptively global) identifier, e.g. for
// `Object.assign` returns ("Object.assign", true). Returns false if any
// non-global scope in the file binds the root name (wherever that scope is,
// so the global may be shadowed) or the expression isn't a plain
// member-access chain of identifiers.
func (rt *ReferenceTracker) MemberPath(node snode.Node) (string, bool) {
	var parts []string
	cur := node
	for {
		switch cur.Kind() {
		case "member_expression":
			prop := cur.Field("property")
			name, ok := prop.StaticPropertyName()
			if !ok {
				return "", false
			}
			parts = append([]string{name}, parts...)
			cur = cur.Field("object")
		case "identifier":
			parts = append([]string{cur.Text()}, parts...)
			if rt.isShadowed(cur) {
				return "", false
			}
			joined := ""
			for i, p := range parts {
				if i > 0 {
					joined += "."
				}
				joined += p
			}
			return joined, true
		default:
			return "", false
		}
	}
}

func (rt *ReferenceTracker) isShadowed(id snode.Node) bool {
	// A conservative check: if any scope's `set` contains this exact
	// name, the global of the same name may be shadowed at this position.
	// Full positional precision would require the reference arena lookup;
	// callers that need exactness should resolve the identifier through
	// the Manager directly instead of this tracker.
	for _, s := range rt.m.scopes {
		if _, ok := s.Find(id.Text()); ok && s.ID != rt.m.globalScope {
			return true
		}
	}
	return false
}
