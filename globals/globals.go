// Package globals is the static, read-only built-in-globals table keyed by
// ECMAScript version and environment name, transcribed from
// original_source's plugin/src/conf/globals.rs. It is the one process-wide
// mutable-looking state the Design Notes permit ("the only process-wide
// state is the static built-in-globals table, which is pure read-only data
// keyed by ES version") — built once at package init via sync.Once-free
// plain var initializers, since map literals are already safe for
// concurrent reads once constructed.
package globals

// Visibility is how a global name may be used without triggering
// "undefined variable"-style rules.
type Visibility int

const (
	Readonly Visibility = iota
	Writable
	Off
)

// ParseVisibility implements the §6 "Visibility values" mapping: true,
// "true", "writable", "writeable" → writable; false, "false", "readonly",
// "readable" → readonly; "off" → removed; bare name/null handled by the
// caller (directive package), not here.
func ParseVisibility(value string) (Visibility, bool) {
	switch value {
	case "true", "writable", "writeable":
		return Writable, true
	case "false", "readonly", "readable":
		return Readonly, true
	case "off":
		return Off, true
	default:
		return Readonly, false
	}
}

type table map[string]Visibility

func extend(base table, names ...string) table {
	out := make(table, len(base)+len(names))
	for k, v := range base {
		out[k] = v
	}
	for _, n := range names {
		out[n] = Readonly
	}
	return out
}

var commonjs = table{
	"exports": Writable,
	"global":  Readonly,
	"module":  Readonly,
	"require": Readonly,
}

var es3 = table{
	"Array": Readonly, "Boolean": Readonly, "constructor": Readonly,
	"Date": Readonly, "decodeURI": Readonly, "decodeURIComponent": Readonly,
	"encodeURI": Readonly, "encodeURIComponent": Readonly, "Error": Readonly,
	"escape": Readonly, "eval": Readonly, "EvalError": Readonly,
	"Function": Readonly, "hasOwnProperty": Readonly, "Infinity": Readonly,
	"isFinite": Readonly, "isNaN": Readonly, "isPrototypeOf": Readonly,
	"Math": Readonly, "NaN": Readonly, "Number": Readonly, "Object": Readonly,
	"parseFloat": Readonly, "parseInt": Readonly, "propertyIsEnumerable": Readonly,
	"RangeError": Readonly, "ReferenceError": Readonly, "RegExp": Readonly,
	"String": Readonly, "SyntaxError": Readonly, "toLocaleString": Readonly,
	"toString": Readonly, "TypeError": Readonly, "undefined": Readonly,
	"unescape": Readonly, "URIError": Readonly, "valueOf": Readonly,
}

var es5 = extend(es3, "JSON")

var es2015 = extend(es5,
	"ArrayBuffer", "DataView", "Float32Array", "Float64Array", "Int16Array",
	"Int32Array", "Int8Array", "Map", "Promise", "Proxy", "Reflect", "Set",
	"Symbol", "Uint16Array", "Uint32Array", "Uint8Array", "Uint8ClampedArray",
	"WeakMap", "WeakSet",
)

var es2016 = es2015

var es2017 = extend(es2016, "Atomics", "SharedArrayBuffer")

var es2018 = es2017
var es2019 = es2018

var es2020 = extend(es2019, "BigInt", "BigInt64Array", "BigUint64Array", "globalThis")

var es2021 = extend(es2020, "AggregateError", "FinalizationRegistry", "WeakRef")

var es2022 = es2021
var es2023 = es2022
var es2024 = es2023

// byVersion maps an ecmaVersion number (3, 5, 6, 2015..2024 — both the
// "edition number" and "year" spellings are accepted) to its global table.
var byVersion = map[int]table{
	3: es3, 5: es5,
	6: es2015, 2015: es2015,
	2016: es2016, 2017: es2017, 2018: es2018, 2019: es2019,
	2020: es2020, 2021: es2021, 2022: es2022, 2023: es2023, 2024: es2024,
}

// Builtin is the BUILTIN constant of conf/globals.rs: the latest stable set.
var Builtin map[string]Visibility = es2023

var environments = map[string]table{
	"commonjs": commonjs,
	"node":     extend(commonjs, "process", "Buffer", "__dirname", "__filename", "setImmediate"),
	"browser":  table{"window": Readonly, "document": Readonly, "navigator": Readonly, "location": Readonly, "localStorage": Readonly, "sessionStorage": Readonly, "fetch": Readonly},
	"worker":   table{"self": Readonly, "importScripts": Readonly, "postMessage": Readonly},
}

// Table builds the effective globals map for an ecmaVersion plus a set of
// environment names, as consumed by no-undef-style rules.
func Table(ecmaVersion int, envs []string) map[string]Visibility {
	base, ok := byVersion[ecmaVersion]
	if !ok {
		base = Builtin
	}
	out := make(map[string]Visibility, len(base))
	for k, v := range base {
		out[k] = v
	}
	for _, env := range envs {
		for k, v := range environments[env] {
			out[k] = v
		}
	}
	return out
}
