package golang

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Alia5/uniffi-bindgen-go/internal/codegen/ci"
)

func TestLowerFnCall(t *testing.T) {
	o := NewOracle(nil)

	tests := []struct {
		name     string
		arg      ci.Argument
		expected string
	}{
		{name: "primitive", arg: ci.Argument{Name: "width", Type: ci.UInt32{}}, expected: "FfiConverterUint32INSTANCE.Lower(width)"},
		{name: "keyword", arg: ci.Argument{Name: "type", Type: ci.String{}}, expected: "FfiConverterStringINSTANCE.Lower(varType)"},
		{name: "object", arg: ci.Argument{Name: "canvas", Type: ci.Object{Name: "Canvas"}}, expected: "FfiConverterCanvasINSTANCE.Lower(canvas)"},
		{
			name:     "external record",
			arg:      ci.Argument{Name: "color", Type: ci.External{Name: "Color", Namespace: "palette"}},
			expected: "RustBufferFromExternal(palette.FfiConverterTypeColorINSTANCE.Lower(color))",
		},
		{
			name:     "external interface",
			arg:      ci.Argument{Name: "brush", Type: ci.External{Name: "Brush", Namespace: "palette", Kind: ci.ExternalKindInterface}},
			expected: "palette.FfiConverterBrushINSTANCE.Lower(brush)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, o.LowerFnCall(tt.arg))
		})
	}
}

func TestLiftFromCgo(t *testing.T) {
	o := NewOracle(nil)

	assert.Equal(t, "FfiConverterFloat64INSTANCE.Lift(_uniffiRV)", o.LiftFromCgo(ci.Float64{}, "_uniffiRV"))
	assert.Equal(t, "FfiConverterTypePointINSTANCE.Lift(GoRustBuffer{inner: _uniffiRV})", o.LiftFromCgo(ci.Record{Name: "Point"}, "_uniffiRV"))
	assert.Equal(t, "FfiConverterTypeLoggerINSTANCE.Lift(logger)", o.LiftFromCgo(ci.CallbackInterface{Name: "Logger"}, "logger"))

	assert.Equal(t,
		"FfiConverterStringINSTANCE.Lift(GoRustBuffer{inner: msg}), FfiConverterInt32INSTANCE.Lift(varRange)",
		o.LiftArgs([]ci.Argument{{Name: "msg", Type: ci.String{}}, {Name: "range", Type: ci.Int32{}}}),
	)
	assert.Empty(t, o.LiftArgs(nil))
}

func TestDefaultValue(t *testing.T) {
	o := NewOracle(errorNames{"ParseError": true})

	tests := []struct {
		name     string
		typ      ci.Type
		expected string
	}{
		{name: "number", typ: ci.UInt16{}, expected: "0"},
		{name: "duration", typ: ci.Duration{}, expected: "0"},
		{name: "bool", typ: ci.Boolean{}, expected: "false"},
		{name: "string", typ: ci.String{}, expected: `""`},
		{name: "bytes", typ: ci.Bytes{}, expected: "nil"},
		{name: "optional", typ: ci.Optional{Inner: ci.Int8{}}, expected: "nil"},
		{name: "timestamp", typ: ci.Timestamp{}, expected: "time.Time{}"},
		{name: "record", typ: ci.Record{Name: "Point"}, expected: "Point{}"},
		{name: "enum", typ: ci.Enum{Name: "Direction"}, expected: "*new(Direction)"},
		{name: "error enum", typ: ci.Enum{Name: "ParseError"}, expected: "nil"},
		{name: "object", typ: ci.Object{Name: "Canvas"}, expected: "nil"},
		{name: "custom", typ: ci.Custom{Name: "Url", Builtin: ci.String{}}, expected: "*new(Url)"},
		{name: "external record", typ: ci.External{Name: "Color", Namespace: "palette"}, expected: "*new(palette.Color)"},
		{name: "external interface", typ: ci.External{Name: "Brush", Namespace: "palette", Kind: ci.ExternalKindInterface}, expected: "nil"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, o.DefaultValue(tt.typ))
		})
	}
}

func TestFutureChanType(t *testing.T) {
	o := NewOracle(nil)

	assert.Equal(t, "struct { err error }", o.FutureChanType(ci.AsyncResult{}))
	assert.Equal(t, "struct { val []byte; err error }", o.FutureChanType(ci.AsyncResult{ReturnType: ci.Bytes{}}))
}

func TestIntoCustom(t *testing.T) {
	tests := []struct {
		name     string
		conv     string
		expected string
	}{
		{
			name:     "expression",
			conv:     "time.Unix({}, 0)",
			expected: "\treturn time.Unix(builtinValue, 0)",
		},
		{
			name:     "block",
			conv:     "\nu, err := url.Parse({})\nif err != nil {\n\tpanic(err)\n}\nreturn *u\n",
			expected: "\tu, err := url.Parse(builtinValue)\n\tif err != nil {\n\t\tpanic(err)\n\t}\n\treturn *u",
		},
		{
			name:     "blank lines stay blank",
			conv:     "v := {}\n\nreturn v",
			expected: "\tv := builtinValue\n\n\treturn v",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IntoCustom(tt.conv, "builtinValue"))
		})
	}
}
