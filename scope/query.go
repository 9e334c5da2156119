package scope

import "github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/internal/snode"

// FindVariable walks up from startScope looking for a variable named name,
// stopping at the global scope. Grounded on eslint-utils' find-variable.
func FindVariable(m *Manager, startScope *Scope, name string) *Variable {
	for s := startScope; s != nil; {
		if vid, ok := s.Find(name); ok {
			return m.Variable(vid)
		}
		if s.Upper == noID {
			return nil
		}
		s = m.Scope(s.Upper)
	}
	return nil
}

// GetInnermostScope returns the most specific scope whose Block node
// contains node, by walking up node's ancestors until one is recognized as
// a scope-inducing block already present in the manager.
func GetInnermostScope(m *Manager, node snode.Node) *Scope {
	blockByNode := make(map[snode.Key]*Scope, len(m.scopes))
	for _, s := range m.scopes {
		blockByNode[s.Block.Key()] = s
	}
	for n := node; !n.IsZero(); n = n.Parent() {
		if s, ok := blockByNode[n.Key()]; ok {
			return s
		}
	}
	return m.GlobalScope()
}

// VariablesOf returns the declared variables of a scope (not through refs),
// the public surface rules use for "get declared variables of node".
func (m *Manager) VariablesOf(s *Scope) []*Variable {
	out := make([]*Variable, 0, len(s.Variables))
	for _, vid := range s.Variables {
		out = append(out, m.Variable(vid))
	}
	return out
}

// ThroughReferences returns the references of s that escaped unresolved.
func (m *Manager) ThroughReferences(s *Scope) []*Reference {
	out := make([]*Reference, 0, len(s.Through))
	for _, rid := range s.Through {
		out = append(out, m.Reference(rid))
	}
	return out
}
