package globals_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/globals"
)

func TestParseVisibility(t *testing.T) {
	cases := []struct {
		value string
		want  globals.Visibility
		ok    bool
	}{
		{"true", globals.Writable, true},
		{"writable", globals.Writable, true},
		{"writeable", globals.Writable, true},
		{"false", globals.Readonly, true},
		{"readonly", globals.Readonly, true},
		{"readable", globals.Readonly, true},
		{"off", globals.Off, true},
		{"bogus", globals.Readonly, false},
	}
	for _, c := range cases {
		t.Run(c.value, func(t *testing.T) {
			got, ok := globals.ParseVisibility(c.value)
			assert.Equal(t, c.ok, ok)
			if ok {
				assert.Equal(t, c.want, got)
			}
		})
	}
}

func TestTable_ES3DoesNotHaveJSON(t *testing.T) {
	table := globals.Table(3, nil)
	_, ok := table["JSON"]
	assert.False(t, ok)
	_, ok = table["Object"]
	assert.True(t, ok)
}

func TestTable_ES2015AddsSymbolAndMap(t *testing.T) {
	table := globals.Table(2015, nil)
	assert.Equal(t, globals.Readonly, table["Symbol"])
	assert.Equal(t, globals.Readonly, table["Map"])
}

func TestTable_UnknownVersionFallsBackToBuiltin(t *testing.T) {
	table := globals.Table(99999, nil)
	assert.Equal(t, globals.Builtin, table)
}

func TestTable_NodeEnvironmentExtendsCommonjs(t *testing.T) {
	table := globals.Table(2023, []string{"node"})
	assert.Equal(t, globals.Writable, table["exports"])
	assert.Equal(t, globals.Readonly, table["process"])
	assert.Equal(t, globals.Readonly, table["Buffer"])
}

func TestTable_MultipleEnvironmentsAreMerged(t *testing.T) {
	table := globals.Table(2023, []string{"node", "browser"})
	assert.Equal(t, globals.Readonly, table["window"])
	assert.Equal(t, globals.Readonly, table["process"])
}
