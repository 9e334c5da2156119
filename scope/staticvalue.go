package scope

import (
	"strconv"
	"strings"

	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/internal/snode"
)

// StaticValue is the result of a successful GetStaticValue call: a
// statically-known JS value, represented loosely since the engine never
// needs a true interpreter value (Non-goals: "no JavaScript interpreter").
type StaticValue struct {
	Value interface{} // string, float64, bool, or nil for both `null` and `undefined`
}

// GetStaticValue attempts to fold node to a compile-time constant. This is
// deliberately restricted to the handful of forms that affect whether a
// literal is statically reachable (spec Non-goals), not general constant
// folding: literals, `undefined`, no-substitution template strings,
// parenthesized constants, unary +/-/!/typeof on a constant, and `+` on two
// constants (numeric addition or string concatenation).
func GetStaticValue(m *Manager, node snode.Node) (StaticValue, bool) {
	switch node.Kind() {
	case "number":
		f, err := strconv.ParseFloat(node.Text(), 64)
		if err != nil {
			return StaticValue{}, false
		}
		return StaticValue{Value: f}, true
	case "string":
		return StaticValue{Value: stringLiteralValue(node.Text())}, true
	case "true":
		return StaticValue{Value: true}, true
	case "false":
		return StaticValue{Value: false}, true
	case "null":
		return StaticValue{Value: nil}, true
	case "undefined":
		return StaticValue{Value: nil}, true
	case "template_string":
		if hasSubstitution(node) {
			return StaticValue{}, false
		}
		return StaticValue{Value: templateLiteralText(node)}, true
	case "parenthesized_expression":
		return GetStaticValue(m, node.NamedChild(0))
	case "unary_expression":
		return staticUnary(m, node)
	case "binary_expression":
		return staticBinary(m, node)
	case "identifier":
		return staticIdentifier(m, node)
	}
	return StaticValue{}, false
}

// GetStringIfConstant is GetStaticValue narrowed to strings, used by
// no-proto for computed property keys.
func GetStringIfConstant(m *Manager, node snode.Node) (string, bool) {
	v, ok := GetStaticValue(m, node)
	if !ok {
		return "", false
	}
	s, ok := v.Value.(string)
	return s, ok
}

func staticIdentifier(m *Manager, node snode.Node) (StaticValue, bool) {
	if node.Text() == "undefined" {
		return StaticValue{Value: nil}, true
	}
	return StaticValue{}, false
}

func staticUnary(m *Manager, node snode.Node) (StaticValue, bool) {
	op := operatorText(node)
	arg, ok := GetStaticValue(m, node.Field("argument"))
	if !ok {
		return StaticValue{}, false
	}
	switch op {
	case "-":
		if f, ok := arg.Value.(float64); ok {
			return StaticValue{Value: -f}, true
		}
	case "+":
		if f, ok := arg.Value.(float64); ok {
			return StaticValue{Value: f}, true
		}
	case "!":
		return StaticValue{Value: !truthy(arg.Value)}, true
	case "typeof":
		return StaticValue{Value: jsTypeOf(arg.Value)}, true
	}
	return StaticValue{}, false
}

func staticBinary(m *Manager, node snode.Node) (StaticValue, bool) {
	if operatorText(node) != "+" {
		return StaticValue{}, false
	}
	l, ok := GetStaticValue(m, node.Field("left"))
	if !ok {
		return StaticValue{}, false
	}
	r, ok := GetStaticValue(m, node.Field("right"))
	if !ok {
		return StaticValue{}, false
	}
	ls, lIsStr := l.Value.(string)
	rs, rIsStr := r.Value.(string)
	lf, lIsNum := l.Value.(float64)
	rf, rIsNum := r.Value.(float64)
	switch {
	case lIsNum && rIsNum:
		return StaticValue{Value: lf + rf}, true
	case lIsStr || rIsStr:
		return StaticValue{Value: toStr(l.Value, lIsStr, ls) + toStr(r.Value, rIsStr, rs)}, true
	}
	return StaticValue{}, false
}

func toStr(v interface{}, isStr bool, s string) string {
	if isStr {
		return s
	}
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	if b, ok := v.(bool); ok {
		return strconv.FormatBool(b)
	}
	if v == nil {
		return "null"
	}
	return ""
}

func truthy(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	case nil:
		return false
	}
	return true
}

func jsTypeOf(v interface{}) string {
	switch v.(type) {
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case nil:
		return "object"
	}
	return "undefined"
}

func operatorText(n snode.Node) string {
	op := n.Field("operator")
	if !op.IsZero() {
		return op.Text()
	}
	// some grammars expose the operator as an anonymous first/second child
	for i := 0; i < n.ChildCount(); i++ {
		c := n.Child(i)
		switch c.Text() {
		case "+", "-", "!", "typeof", "~":
			return c.Text()
		}
	}
	return ""
}

func stringLiteralValue(raw string) string {
	if len(raw) >= 2 {
		return raw[1 : len(raw)-1]
	}
	return raw
}

func hasSubstitution(n snode.Node) bool {
	for _, ch := range n.Children() {
		if ch.Kind() == "template_substitution" {
			return true
		}
	}
	return false
}

func templateLiteralText(n snode.Node) string {
	var b strings.Builder
	for _, ch := range n.Children() {
		if ch.Kind() == "string_fragment" {
			b.WriteString(ch.Text())
		}
	}
	return b.String()
}
