package golang

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/uniffi-bindgen-go/internal/codegen/ci"
)

type errorNames map[string]bool

func (e errorNames) IsNameUsedAsError(name string) bool { return e[name] }

func TestFindLabels(t *testing.T) {
	o := NewOracle(errorNames{"ParseError": true})

	tests := []struct {
		name      string
		typ       ci.Type
		label     string
		canonical string
		converter string
	}{
		{name: "int8", typ: ci.Int8{}, label: "int8", canonical: "Int8", converter: "FfiConverterInt8"},
		{name: "uint64", typ: ci.UInt64{}, label: "uint64", canonical: "Uint64", converter: "FfiConverterUint64"},
		{name: "float32", typ: ci.Float32{}, label: "float32", canonical: "Float32", converter: "FfiConverterFloat32"},
		{name: "bool", typ: ci.Boolean{}, label: "bool", canonical: "Bool", converter: "FfiConverterBool"},
		{name: "string", typ: ci.String{}, label: "string", canonical: "String", converter: "FfiConverterString"},
		{name: "bytes", typ: ci.Bytes{}, label: "[]byte", canonical: "Bytes", converter: "FfiConverterBytes"},
		{name: "duration", typ: ci.Duration{}, label: "time.Duration", canonical: "Duration", converter: "FfiConverterDuration"},
		{name: "timestamp", typ: ci.Timestamp{}, label: "time.Time", canonical: "Timestamp", converter: "FfiConverterTimestamp"},
		{
			name:      "optional",
			typ:       ci.Optional{Inner: ci.String{}},
			label:     "*string",
			canonical: "OptionalString",
			converter: "FfiConverterOptionalString",
		},
		{
			name:      "nested sequence",
			typ:       ci.Sequence{Inner: ci.Optional{Inner: ci.Int32{}}},
			label:     "[]*int32",
			canonical: "SequenceOptionalInt32",
			converter: "FfiConverterSequenceOptionalInt32",
		},
		{
			name:      "map",
			typ:       ci.Map{Key: ci.String{}, Value: ci.Record{Name: "Point"}},
			label:     "map[string]Point",
			canonical: "MapStringTypePoint",
			converter: "FfiConverterMapStringTypePoint",
		},
		{name: "record", typ: ci.Record{Name: "Point"}, label: "Point", canonical: "TypePoint", converter: "FfiConverterTypePoint"},
		{name: "enum", typ: ci.Enum{Name: "Direction"}, label: "Direction", canonical: "TypeDirection", converter: "FfiConverterTypeDirection"},
		{name: "error enum", typ: ci.Enum{Name: "ParseError"}, label: "*ParseError", canonical: "TypeParseError", converter: "FfiConverterTypeParseError"},
		{name: "object", typ: ci.Object{Name: "Canvas"}, label: "*Canvas", canonical: "Canvas", converter: "FfiConverterCanvas"},
		{
			name:      "callback trait object",
			typ:       ci.Object{Name: "Shape", Imp: ci.ObjectImplCallbackTrait},
			label:     "Shape",
			canonical: "Shape",
			converter: "FfiConverterShape",
		},
		{name: "callback interface", typ: ci.CallbackInterface{Name: "Logger"}, label: "Logger", canonical: "TypeLogger", converter: "FfiConverterTypeLogger"},
		{name: "custom", typ: ci.Custom{Name: "Url", Builtin: ci.String{}}, label: "Url", canonical: "TypeUrl", converter: "FfiConverterTypeUrl"},
		{
			name:      "external record",
			typ:       ci.External{Name: "Color", Namespace: "palette", Kind: ci.ExternalKindDataClass},
			label:     "palette.Color",
			canonical: "TypeColor",
			converter: "palette.FfiConverterTypeColor",
		},
		{
			name:      "external interface",
			typ:       ci.External{Name: "Brush", Namespace: "palette", Kind: ci.ExternalKindInterface},
			label:     "*palette.Brush",
			canonical: "Brush",
			converter: "palette.FfiConverterBrush",
		},
		{name: "executor", typ: ci.Executor{}, label: "UniFfiForeignExecutor", canonical: "ForeignExecutor", converter: "FfiConverterForeignExecutor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := o.Find(tt.typ)
			assert.Equal(t, tt.label, h.TypeLabel())
			assert.Equal(t, tt.canonical, h.CanonicalName())
			assert.Equal(t, tt.converter, h.FfiConverterName())
			assert.Equal(t, tt.converter+"INSTANCE", h.FfiConverterInstance())
		})
	}
}

func TestHandlerDerivedNames(t *testing.T) {
	o := NewOracle(nil)

	h := o.Find(ci.Record{Name: "Point"})
	assert.Equal(t, "FfiDestroyerTypePoint", h.FfiDestroyerName())
	assert.Equal(t, "FfiConverterTypePointINSTANCE.Lower", h.Lower())
	assert.Equal(t, "FfiConverterTypePointINSTANCE.Lift", h.Lift())
	assert.Equal(t, "FfiConverterTypePointINSTANCE.Read", h.Read())
	assert.Equal(t, "FfiConverterTypePointINSTANCE.Write", h.Write())
	assert.Equal(t, "FfiDestroyerTypePoint{}.Destroy", h.Destroy())

	ext := o.Find(ci.External{Name: "Color", Namespace: "palette"})
	assert.Equal(t, "palette.FfiDestroyerTypeColor{}.Destroy", ext.Destroy())
}

func TestInitializationFn(t *testing.T) {
	o := NewOracle(nil)

	tests := []struct {
		name     string
		typ      ci.Type
		expected string
	}{
		{name: "callback interface", typ: ci.CallbackInterface{Name: "Logger"}, expected: "(&FfiConverterTypeLogger{}).register"},
		{name: "callback trait object", typ: ci.Object{Name: "Shape", Imp: ci.ObjectImplCallbackTrait}, expected: "(&FfiConverterShape{}).register"},
		{name: "plain object", typ: ci.Object{Name: "Canvas"}, expected: ""},
		{name: "executor", typ: ci.Executor{}, expected: "uniffiInitForeignExecutor"},
		{name: "record", typ: ci.Record{Name: "Point"}, expected: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, o.Find(tt.typ).InitializationFn())
		})
	}
}

func TestLiteral(t *testing.T) {
	o := NewOracle(nil)

	tests := []struct {
		name     string
		typ      ci.Type
		lit      ci.Literal
		expected string
	}{
		{name: "bool", typ: ci.Boolean{}, lit: ci.LiteralBoolean{Value: true}, expected: "true"},
		{name: "string is quoted", typ: ci.String{}, lit: ci.LiteralString{Value: `say "hi"`}, expected: `"say \"hi\""`},
		{name: "typed uint8", typ: ci.UInt8{}, lit: ci.LiteralUInt{Value: 7}, expected: "uint8(7)"},
		{name: "bare int32", typ: ci.Int32{}, lit: ci.LiteralInt{Value: -5}, expected: "-5"},
		{name: "hex", typ: ci.UInt8{}, lit: ci.LiteralUInt{Value: 31, Radix: ci.RadixHexadecimal}, expected: "uint8(0x1f)"},
		{name: "negative octal", typ: ci.Int64{}, lit: ci.LiteralInt{Value: -8, Radix: ci.RadixOctal}, expected: "int64(-0o10)"},
		{name: "float keeps text", typ: ci.Float64{}, lit: ci.LiteralFloat{Text: "2.50"}, expected: "float64(2.50)"},
		{name: "optional none", typ: ci.Optional{Inner: ci.String{}}, lit: ci.LiteralNone{}, expected: "nil"},
		{name: "optional some", typ: ci.Optional{Inner: ci.UInt16{}}, lit: ci.LiteralSome{Inner: ci.LiteralUInt{Value: 3}}, expected: "uint16(3)"},
		{name: "enum variant", typ: ci.Enum{Name: "direction"}, lit: ci.LiteralEnum{Variant: "north_east"}, expected: "DirectionNorthEast"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, o.Find(tt.typ).Literal(tt.lit))
		})
	}
}

func TestLiteralMismatchPanics(t *testing.T) {
	o := NewOracle(nil)

	assert.Panics(t, func() { o.Find(ci.Boolean{}).Literal(ci.LiteralString{Value: "yes"}) })
	assert.Panics(t, func() { o.Find(ci.String{}).Literal(ci.LiteralUInt{Value: 1}) })
	assert.Panics(t, func() { o.Find(ci.Record{Name: "Point"}).Literal(ci.LiteralNone{}) })
	assert.Panics(t, func() { o.Find(ci.Sequence{Inner: ci.Int8{}}).Literal(ci.LiteralNone{}) })
}

func TestObjectNames(t *testing.T) {
	iface, impl := ObjectNames("canvas", ci.ObjectImplStruct)
	assert.Equal(t, "CanvasInterface", iface)
	assert.Equal(t, "Canvas", impl)

	iface, impl = ObjectNames("shape", ci.ObjectImplCallbackTrait)
	assert.Equal(t, "Shape", iface)
	assert.Equal(t, "ShapeImpl", impl)
}

func TestCheckClassNames(t *testing.T) {
	c := ci.New("demo")
	c.AddRecord(ci.RecordDef{Name: "point"})
	c.AddEnum(ci.EnumDef{Name: "Direction"})
	require.NoError(t, CheckClassNames(c))

	c.AddEnum(ci.EnumDef{Name: "Point"})
	err := CheckClassNames(c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "both render as Point")

	c = ci.New("demo")
	c.AddRecord(ci.RecordDef{Name: "CanvasInterface"})
	c.AddObject(ci.ObjectDef{Name: "Canvas"})
	err = CheckClassNames(c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CanvasInterface")
}

func TestFindIsDeterministic(t *testing.T) {
	o := NewOracle(errorNames{"ParseError": true})
	types := []ci.Type{
		ci.Int8{}, ci.Int16{}, ci.Int32{}, ci.Int64{},
		ci.UInt8{}, ci.UInt16{}, ci.UInt32{}, ci.UInt64{},
		ci.Float32{}, ci.Float64{}, ci.Boolean{}, ci.String{},
		ci.Bytes{}, ci.Duration{}, ci.Timestamp{}, ci.Executor{},
		ci.Optional{Inner: ci.Bytes{}},
		ci.Sequence{Inner: ci.Record{Name: "Point"}},
		ci.Map{Key: ci.String{}, Value: ci.Enum{Name: "ParseError"}},
		ci.Record{Name: "Point"},
		ci.Enum{Name: "Direction"},
		ci.Object{Name: "Canvas"},
		ci.CallbackInterface{Name: "Logger"},
		ci.Custom{Name: "Url", Builtin: ci.String{}},
		ci.External{Name: "Color", Namespace: "palette", Kind: ci.ExternalKindDataClass},
	}
	for _, typ := range types {
		first, second := o.Find(typ), o.Find(typ)
		assert.NotEmpty(t, first.CanonicalName(), "%T", typ)
		assert.Equal(t, first.CanonicalName(), second.CanonicalName(), "%T", typ)
		assert.Equal(t, first.TypeLabel(), second.TypeLabel(), "%T", typ)
		assert.Equal(t, first.FfiConverterName(), second.FfiConverterName(), "%T", typ)
	}
}

func TestIntegerLiteralsParseBack(t *testing.T) {
	o := NewOracle(nil)

	tests := []struct {
		name  string
		typ   ci.Type
		label string
		bits  int
		lit   ci.Literal
		value int64
	}{
		{name: "uint8", typ: ci.UInt8{}, label: "uint8", bits: 8, lit: ci.LiteralUInt{Value: 7}, value: 7},
		{name: "int32", typ: ci.Int32{}, bits: 32, lit: ci.LiteralInt{Value: -5}, value: -5},
		{name: "int16 hex", typ: ci.Int16{}, label: "int16", bits: 16, lit: ci.LiteralInt{Value: -255, Radix: ci.RadixHexadecimal}, value: -255},
		{name: "int64 octal", typ: ci.Int64{}, label: "int64", bits: 64, lit: ci.LiteralInt{Value: 511, Radix: ci.RadixOctal}, value: 511},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := o.Find(tt.typ).Literal(tt.lit)
			if tt.label != "" {
				require.True(t, strings.HasPrefix(text, tt.label+"(") && strings.HasSuffix(text, ")"), text)
				text = strings.TrimSuffix(strings.TrimPrefix(text, tt.label+"("), ")")
			}
			v, err := strconv.ParseInt(text, 0, tt.bits)
			require.NoError(t, err)
			assert.Equal(t, tt.value, v)
		})
	}
}
