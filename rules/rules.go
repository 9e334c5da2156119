package rules

import "github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/rule"

// All returns every rule in the supplemented rule set of SPEC_FULL.md, in
// the order it is documented there: scope-consuming, then
// code-path-consuming, then pure-syntactic.
func All() []rule.Rule {
	return []rule.Rule{
		NoClassAssign(),
		NoConstAssign(),
		NoFuncAssign(),
		NoExAssign(),
		NoDupeArgs(),
		NoNewSymbol(),
		NoUnusedVars(),
		PreferRestParams(),
		PreferSpread(),
		NoProto(),

		ForDirection(),
		NoUselessCatch(),
		NoConstructorReturn(),
		DefaultCase(),
		ConsistentReturn(),
		GuardForIn(),
		RequireYield(),
		NoFallthrough(),

		NoEqNull(),
		NoNewWrappers(),
		NoNew(),
		NoNewNativeNonconstructor(),
		NoArrayConstructor(),
		NoTernary(),
		NoNestedTernary(),
		NoNegatedCondition(),
		NoOctal(),
		NoCompareNegZero(),
		NoEmptyCharacterClass(),
		NoMultiStr(),
		NoScriptURL(),
		WrapRegex(),
		SymbolDescription(),
		DefaultCaseLast(),
		DefaultParamLast(),
		MaxParams(),
		MaxNestedCallbacks(),
	}
}
