package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/diagnostic"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/lintconfig"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/parse"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/rule"
	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/rules"
)

func lint(t *testing.T, src string, rs ...rule.Rule) []diagnostic.Diagnostic {
	t.Helper()
	root, err := parse.Source([]byte(src))
	require.NoError(t, err)
	return rule.NewEngine(rs...).Run(root, []byte(src), lintconfig.Default())
}

func TestNoEqNull(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want int
	}{
		{"loose-eq-null", `if (x == null) {}`, 1},
		{"loose-neq-null", `if (x != null) {}`, 1},
		{"strict-eq-null-ok", `if (x === null) {}`, 0},
		{"no-null-ok", `if (x == y) {}`, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			diags := lint(t, c.src, rules.NoEqNull())
			assert.Len(t, diags, c.want)
		})
	}
}

func TestNoNewWrappers(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want int
	}{
		{"new-string", `new String("x");`, 1},
		{"new-number", `new Number(1);`, 1},
		{"new-boolean", `new Boolean(true);`, 1},
		{"new-custom-ok", `new MyClass();`, 0},
		{"call-without-new-ok", `String(1);`, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			diags := lint(t, c.src, rules.NoNewWrappers())
			assert.Len(t, diags, c.want)
		})
	}
}

func TestNoCompareNegZero(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want int
	}{
		{"eq-neg-zero", `if (x === -0) {}`, 1},
		{"neg-zero-on-left", `if (-0 === x) {}`, 1},
		{"eq-zero-ok", `if (x === 0) {}`, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			diags := lint(t, c.src, rules.NoCompareNegZero())
			assert.Len(t, diags, c.want)
		})
	}
}

func TestDefaultCaseLast(t *testing.T) {
	bad := `switch (x) {
  default:
    break;
  case 1:
    break;
}`
	good := `switch (x) {
  case 1:
    break;
  default:
    break;
}`
	assert.Len(t, lint(t, bad, rules.DefaultCaseLast()), 1)
	assert.Len(t, lint(t, good, rules.DefaultCaseLast()), 0)
}

func TestDefaultCase(t *testing.T) {
	missing := `switch (x) {
  case 1:
    break;
}`
	documented := `switch (x) {
  case 1:
    break;
  // no default
}`
	present := `switch (x) {
  case 1:
    break;
  default:
    break;
}`
	assert.Len(t, lint(t, missing, rules.DefaultCase()), 1)
	assert.Len(t, lint(t, documented, rules.DefaultCase()), 0)
	assert.Len(t, lint(t, present, rules.DefaultCase()), 0)
}

func TestForDirection(t *testing.T) {
	bad := `for (let i = 0; i < 10; i--) {}`
	good := `for (let i = 0; i < 10; i++) {}`
	badDiags := lint(t, bad, rules.ForDirection())
	require.Len(t, badDiags, 1)
	assert.Equal(t, "The update clause in this loop moves the variable in the wrong direction.", badDiags[0].Message)
	assert.Len(t, lint(t, good, rules.ForDirection()), 0)
}

func TestNoUselessCatch(t *testing.T) {
	rethrow := `try {
  doSomething();
} catch (e) {
  throw e;
}`
	handled := `try {
  doSomething();
} catch (e) {
  console.log(e);
}`
	rethrowDiags := lint(t, rethrow, rules.NoUselessCatch())
	require.Len(t, rethrowDiags, 1)
	assert.Equal(t, "unnecessaryCatch", rethrowDiags[0].MessageID)
	assert.Equal(t, "Unnecessary try/catch wrapper.", rethrowDiags[0].Message)
	assert.Len(t, lint(t, handled, rules.NoUselessCatch()), 0)

	withFinally := `try {
  doSomething();
} catch (e) {
  throw e;
} finally {
  cleanup();
}`
	finallyDiags := lint(t, withFinally, rules.NoUselessCatch())
	require.Len(t, finallyDiags, 1)
	assert.Equal(t, "unnecessaryCatchClause", finallyDiags[0].MessageID)
	assert.Equal(t, "Unnecessary catch clause.", finallyDiags[0].Message)
}

func TestNoConstructorReturn(t *testing.T) {
	bad := `class C {
  constructor() {
    return {};
  }
}`
	bare := `class C {
  constructor() {
    return;
  }
}`
	assert.Len(t, lint(t, bad, rules.NoConstructorReturn()), 1)
	assert.Len(t, lint(t, bare, rules.NoConstructorReturn()), 0)
}

func TestConsistentReturn(t *testing.T) {
	inconsistent := `function f(x) {
  if (x) {
    return 1;
  }
  return;
}`
	consistent := `function f(x) {
  if (x) {
    return 1;
  }
  return 2;
}`
	assert.Len(t, lint(t, inconsistent, rules.ConsistentReturn()), 1)
	assert.Len(t, lint(t, consistent, rules.ConsistentReturn()), 0)
}

func TestNoFallthrough(t *testing.T) {
	bad := `switch (x) {
  case 1:
    doThing();
  case 2:
    doOther();
    break;
}`
	documented := `switch (x) {
  case 1:
    doThing();
    // falls through
  case 2:
    doOther();
    break;
}`
	assert.Len(t, lint(t, bad, rules.NoFallthrough()), 1)
	assert.Len(t, lint(t, documented, rules.NoFallthrough()), 0)
}

func TestNoClassAssign(t *testing.T) {
	bad := `class C {}
C = 1;`
	ok := `class C {}
let x = C;`
	badDiags := lint(t, bad, rules.NoClassAssign())
	require.Len(t, badDiags, 1)
	assert.Equal(t, "'C' is a class.", badDiags[0].Message)
	assert.Len(t, lint(t, ok, rules.NoClassAssign()), 0)
}

func TestNoConstAssign(t *testing.T) {
	bad := `const x = 1;
x = 2;`
	ok := `let x = 1;
x = 2;`
	badDiags := lint(t, bad, rules.NoConstAssign())
	require.Len(t, badDiags, 1)
	assert.Equal(t, "'x' is constant.", badDiags[0].Message)
	assert.Len(t, lint(t, ok, rules.NoConstAssign()), 0)
}

func TestNoUnusedVars(t *testing.T) {
	bad := `function f() {
  let x = 1;
}
f();`
	ok := `function f() {
  let x = 1;
  return x;
}
f();`
	badDiags := lint(t, bad, rules.NoUnusedVars())
	require.Len(t, badDiags, 1)
	assert.Equal(t, "'x' is defined but never used.", badDiags[0].Message)
	assert.Len(t, lint(t, ok, rules.NoUnusedVars()), 0)
}

func TestNoNewSymbol(t *testing.T) {
	bad := `const s = new Symbol();`
	shadowed := `function f(Symbol) {
  return new Symbol();
}`
	assert.Len(t, lint(t, bad, rules.NoNewSymbol()), 1)
	assert.Len(t, lint(t, shadowed, rules.NoNewSymbol()), 0)
}

func TestPreferRestParams(t *testing.T) {
	bad := `function f() {
  return arguments[0];
}`
	ok := `function f(...args) {
  return args[0];
}`
	assert.Len(t, lint(t, bad, rules.PreferRestParams()), 1)
	assert.Len(t, lint(t, ok, rules.PreferRestParams()), 0)
}

func TestAll_RegistersEveryRuleWithAUniqueName(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range rules.All() {
		require.NotEmpty(t, r.Name)
		assert.False(t, seen[r.Name], "duplicate rule name %q", r.Name)
		seen[r.Name] = true
	}
	assert.GreaterOrEqual(t, len(seen), 25)
}
