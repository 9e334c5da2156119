package scope

import "github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/internal/snode"

// SourceType selects program-level scope shape and strictness, per §6.
type SourceType int

const (
	Script SourceType = iota
	ModuleSource
	CommonJS
)

// Options mirrors the recognized configuration keys of spec §4.1/§6 that
// affect scope analysis. Options never trigger file I/O — configuration
// *loading* is a driver concern, out of scope.
type Options struct {
	EcmaVersion   int
	SourceType    SourceType
	NodejsScope   bool
	ImpliedStrict bool
	Optimistic    bool
}

func DefaultOptions() Options {
	return Options{EcmaVersion: 2022, SourceType: Script}
}

// Manager owns the scope/variable/reference arenas for one file run. All
// three arenas are discarded together when the run ends; nothing in Manager
// outlives a single Analyze call's caller-held *Manager.
type Manager struct {
	opts Options

	scopes    []*Scope
	variables []*Variable
	refs      []*Reference

	globalScope ScopeID
	scopeStack  []ScopeID

	// evalScopes records, per variable-scope, whether a direct `eval` call
	// was observed in it. Resolution does not read it: under `optimistic`
	// the eval-containing scope is simply not marked dynamic.
	evalScopes map[ScopeID]bool
}

func NewManager(opts Options) *Manager {
	m := &Manager{opts: opts, evalScopes: make(map[ScopeID]bool)}
	return m
}

func (m *Manager) Scope(id ScopeID) *Scope { return m.scopes[id] }
func (m *Manager) Variable(id VariableID) *Variable {
	if id == noID {
		return nil
	}
	return m.variables[id]
}
func (m *Manager) Reference(id ReferenceID) *Reference { return m.refs[id] }

func (m *Manager) GlobalScope() *Scope { return m.scopes[m.globalScope] }

func (m *Manager) AllScopes() []*Scope { return m.scopes }

func (m *Manager) current() *Scope {
	return m.scopes[m.scopeStack[len(m.scopeStack)-1]]
}

func (m *Manager) pushScope(typ Type, block snode.Node) *Scope {
	id := ScopeID(len(m.scopes))
	var upper ScopeID = noID
	if len(m.scopeStack) > 0 {
		upper = m.scopeStack[len(m.scopeStack)-1]
	}
	s := newScope(id, typ, block, upper)
	if upper != noID {
		parent := m.scopes[upper]
		parent.Children = append(parent.Children, id)
		s.IsStrict = parent.IsStrict
	}
	if typ.isVariableScope() {
		s.VariableScope = id
	} else if upper != noID {
		s.VariableScope = m.scopes[upper].VariableScope
	}
	m.scopes = append(m.scopes, s)
	m.scopeStack = append(m.scopeStack, id)
	if id == 0 {
		m.globalScope = id
	}
	return s
}

// popScope closes the current scope: resolves its pending references
// against the (still open) ancestor chain, adding failures to the Through
// sets of this scope and its ancestors, then pops the scope stack.
func (m *Manager) popScope() *Scope {
	s := m.current()
	m.resolveReferences(s)
	m.scopeStack = m.scopeStack[:len(m.scopeStack)-1]
	return s
}

func (m *Manager) newVariable(name string, owner *Scope) *Variable {
	id := VariableID(len(m.variables))
	v := &Variable{ID: id, Name: name, Scope: owner.ID}
	m.variables = append(m.variables, v)
	owner.Variables = append(owner.Variables, id)
	owner.set[name] = id
	return v
}

func (m *Manager) newReference(r Reference) *Reference {
	r.ID = ReferenceID(len(m.refs))
	m.refs = append(m.refs, &r)
	owner := m.scopes[r.From]
	owner.References = append(owner.References, r.ID)
	return m.refs[len(m.refs)-1]
}

// resolveReferences implements spec §4.1's "On leaving a scope..." pass.
func (m *Manager) resolveReferences(s *Scope) {
	for _, rid := range s.References {
		r := m.refs[rid]
		if r.IsResolved() {
			continue
		}
		if vid, ok := m.lookup(s, r.Identifier.Text()); ok {
			r.Resolved = vid
			v := m.variables[vid]
			v.References = append(v.References, rid)
			continue
		}
		m.escalate(s, rid)
	}
}


// lookup walks s and its ancestors (stopping at a dynamic scope boundary,
// which never resolves statically) searching each scope's `set`.
func (m *Manager) lookup(s *Scope, name string) (VariableID, bool) {
	for cur := s; cur != nil; {
		if vid, ok := cur.Find(name); ok {
			return vid, true
		}
		if cur.dynamic {
			return 0, false
		}
		if cur.Upper == noID {
			return 0, false
		}
		cur = m.scopes[cur.Upper]
	}
	return 0, false
}

// escalate adds an unresolved reference to the Through set of s and of
// every ancestor scope (so through(S) holds S's own unresolved references
// plus its children's), ending at the global scope, where an unresolved
// write may instead be promoted to an implicit global unless a dynamic
// scope was crossed on the way up.
func (m *Manager) escalate(s *Scope, rid ReferenceID) {
	r := m.refs[rid]
	cur := s
	blocked := s.dynamic
	for {
		if cur.Upper == noID {
			// cur is the global scope.
			if !blocked && r.IsWrite() && r.maybeImplicitGlobal && m.canPromoteImplicitGlobal(cur) {
				name := r.Identifier.Text()
				var vid VariableID
				if v, ok := cur.Find(name); ok {
					vid = v
				} else {
					nv := m.newVariable(name, cur)
					nv.Defs = append(nv.Defs, Definition{Kind: DefImplicitGlobalVariable, Node: r.Identifier})
					vid = nv.ID
				}
				r.Resolved = vid
				m.variables[vid].References = append(m.variables[vid].References, rid)
				return
			}
			cur.Through = append(cur.Through, rid)
			return
		}
		cur.Through = append(cur.Through, rid)
		upper := m.scopes[cur.Upper]
		if upper.dynamic {
			blocked = true
		}
		cur = upper
	}
}

// canPromoteImplicitGlobal decides whether an unresolved global write may
// become an implicit global, per the Open Question resolution in
// SPEC_FULL.md. This check itself only refuses promotion in strict mode;
// `with` is handled by escalate, whose blocked flag stops promotion once a
// dynamic scope has been crossed, and `optimistic` extends promotion across
// a direct-eval-containing function scope because such a scope is then not
// marked dynamic.
func (m *Manager) canPromoteImplicitGlobal(global *Scope) bool {
	if global.IsStrict {
		return false
	}
	return true
}
