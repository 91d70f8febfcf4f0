package ci

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadGeometry(t *testing.T) *ComponentInterface {
	t.Helper()
	ci, err := Load("testdata/geometry.yaml")
	require.NoError(t, err)
	return ci
}

func TestIterTypesIsSortedAndUnique(t *testing.T) {
	ci := loadGeometry(t)

	types := ci.IterTypes()
	keys := make([]string, 0, len(types))
	for _, ty := range types {
		keys = append(keys, TypeKey(ty))
	}

	assert.IsIncreasing(t, keys)
	assert.Contains(t, keys, "Point")
	assert.Contains(t, keys, "sequence<Line>")
	assert.Contains(t, keys, "optional<Point>")
	assert.Contains(t, keys, "map<string, Direction>")
	assert.Contains(t, keys, "Logger")
	assert.Contains(t, keys, "Url")
	assert.Contains(t, keys, "bytes")
	assert.Equal(t, keys, func() []string {
		again := ci.IterTypes()
		out := make([]string, 0, len(again))
		for _, ty := range again {
			out = append(out, TypeKey(ty))
		}
		return out
	}())
}

func TestIsNameUsedAsError(t *testing.T) {
	ci := New("demo")
	ci.AddEnum(EnumDef{Name: "Plain", Variants: []Variant{{Name: "a"}}})
	ci.AddEnum(EnumDef{Name: "Declared", IsError: true})
	ci.AddEnum(EnumDef{Name: "Thrown"})
	ci.AddFunction(Function{Callable: Callable{Name: "f", ThrowsType: Enum{Name: "Thrown"}}})

	assert.False(t, ci.IsNameUsedAsError("Plain"))
	assert.True(t, ci.IsNameUsedAsError("Declared"))
	assert.True(t, ci.IsNameUsedAsError("Thrown"))
	assert.False(t, ci.IsNameUsedAsError("Missing"))
}

func TestFfiFunctionDerivation(t *testing.T) {
	ci := loadGeometry(t)

	canvas := ci.GetObject("Canvas")
	require.NotNil(t, canvas)
	assert.Equal(t, "uniffi_geometry_fn_clone_canvas", canvas.FfiClone.Name)
	assert.Equal(t, "uniffi_geometry_fn_free_canvas", canvas.FfiFree.Name)
	assert.Equal(t, "uniffi_geometry_fn_constructor_canvas_new", canvas.Constructors[0].FfiFunc.Name)
	assert.NotNil(t, canvas.PrimaryConstructor())
	assert.Len(t, canvas.AlternateConstructors(), 1)

	draw := canvas.Methods[0].FfiFunc
	assert.Equal(t, "uniffi_geometry_fn_method_canvas_draw", draw.Name)
	assert.Equal(t, FfiArgument{Name: "ptr", Type: FfiRustArcPtr{Name: "Canvas"}}, draw.Arguments[0])
	assert.Equal(t, FfiArgument{Name: "line", Type: FfiRustBuffer{}}, draw.Arguments[1])
	assert.True(t, draw.HasRustCallStatusArg)
	assert.Nil(t, draw.ReturnType)

	render := canvas.Methods[1].FfiFunc
	assert.True(t, render.IsAsync)
	assert.False(t, render.HasRustCallStatusArg)
	assert.Equal(t, FfiHandle{}, render.ReturnType)

	display := canvas.Display()
	require.NotNil(t, display)
	assert.Equal(t, "uniffi_geometry_fn_method_canvas_uniffi_trait_display", display.FfiFunc.Name)
	assert.Equal(t, String{}, display.ReturnType)

	gradient := ci.Functions()[0].FfiFunc
	assert.Equal(t, "uniffi_geometry_fn_func_gradient", gradient.Name)
	assert.Equal(t, FfiFloat64{}, gradient.ReturnType)
}

func TestVTables(t *testing.T) {
	ci := loadGeometry(t)

	vts := ci.VTables()
	require.Len(t, vts, 2)

	logger := vts[0]
	assert.Equal(t, "Logger", logger.Name)
	assert.Equal(t, "VTableCallbackInterfaceLogger", logger.Struct.Name)
	assert.Equal(t, "uniffi_geometry_fn_init_callback_vtable_logger", logger.Init.Name)
	require.Len(t, logger.Methods, 1)
	assert.Equal(t, "CallbackInterfaceLoggerMethod0", logger.Methods[0].Callback.Name)
	assert.Equal(t, []FfiArgument{
		{Name: "uniffiHandle", Type: FfiUInt64{}},
		{Name: "msg", Type: FfiRustBuffer{}},
		{Name: "uniffiOutReturn", Type: FfiVoidPointer{}},
	}, logger.Methods[0].Callback.Arguments)

	fields := logger.Struct.Fields
	assert.Equal(t, "uniffiFree", fields[len(fields)-1].Name)

	shape := vts[1]
	assert.Equal(t, "Shape", shape.Name)
	assert.Equal(t, FfiArgument{Name: "uniffiOutReturn", Type: FfiReference{Inner: FfiFloat64{}}}, shape.Methods[0].Callback.Arguments[1])
}

func TestAsyncQueries(t *testing.T) {
	ci := loadGeometry(t)
	assert.True(t, ci.HasAsyncFns())
	assert.False(t, ci.HasAsyncCallbackMethods())

	results := ci.IterAsyncResultTypes()
	require.Len(t, results, 1)
	assert.Equal(t, Bytes{}, results[0].ReturnType)
	assert.Nil(t, results[0].ThrowsType)

	plain := New("plain")
	plain.AddFunction(Function{Callable: Callable{Name: "f"}})
	assert.False(t, plain.HasAsyncFns())
}

func TestIterChecksumsSorted(t *testing.T) {
	ci := loadGeometry(t)
	sums := ci.IterChecksums()
	require.Len(t, sums, 2)
	assert.Equal(t, "uniffi_geometry_checksum_func_gradient", sums[0].Name)
	assert.Equal(t, uint16(4021), sums[0].Value)
}

func TestFfiDefinitionsOrder(t *testing.T) {
	ci := loadGeometry(t)

	var names []string
	for _, def := range ci.FfiDefinitions() {
		names = append(names, def.DefinitionName())
	}

	index := func(name string) int {
		for i, n := range names {
			if n == name {
				return i
			}
		}
		t.Fatalf("definition %s not found", name)
		return -1
	}

	assert.Equal(t, ContinuationCallbackName, names[0])
	assert.Less(t, index(ForeignFutureName), index("ForeignFutureStructU8"))
	assert.Less(t, index("ForeignFutureStructVoid"), index("CallbackInterfaceLoggerMethod0"))
	assert.Less(t, index("CallbackInterfaceLoggerMethod0"), index("VTableCallbackInterfaceLogger"))
	assert.Less(t, index("VTableCallbackInterfaceLogger"), index("uniffi_geometry_fn_init_callback_vtable_logger"))
	assert.Less(t, index("uniffi_geometry_fn_func_gradient"), index("ffi_geometry_rustbuffer_alloc"))
	assert.Equal(t, "ffi_geometry_uniffi_contract_version", names[len(names)-1])
	assert.Contains(t, names, "ffi_geometry_rust_future_poll_rust_buffer")
	assert.Contains(t, names, "ffi_geometry_rust_future_complete_void")
	assert.Contains(t, names, "uniffi_geometry_checksum_func_intersection")
}

func TestFfiTypeSuffix(t *testing.T) {
	tests := []struct {
		ty       FfiType
		expected string
	}{
		{ty: nil, expected: "void"},
		{ty: FfiUInt8{}, expected: "u8"},
		{ty: FfiHandle{}, expected: "u64"},
		{ty: FfiRustArcPtr{Name: "X"}, expected: "pointer"},
		{ty: FfiRustBuffer{External: "other"}, expected: "rust_buffer"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FfiTypeSuffix(tt.ty))
	}
	assert.Panics(t, func() { FfiTypeSuffix(FfiForeignBytes{}) })
}

func TestFfiTypeOf(t *testing.T) {
	assert.Equal(t, FfiInt8{}, FfiTypeOf(Boolean{}))
	assert.Equal(t, FfiRustBuffer{}, FfiTypeOf(Map{Key: String{}, Value: Int32{}}))
	assert.Equal(t, FfiUInt64{}, FfiTypeOf(CallbackInterface{Name: "Logger"}))
	assert.Equal(t, FfiUInt32{}, FfiTypeOf(Custom{Name: "Handle", Builtin: UInt32{}}))
	assert.Equal(t, FfiRustBuffer{External: "other"}, FfiTypeOf(External{Name: "Thing", Namespace: "other"}))
	assert.Equal(t, FfiRustArcPtr{Name: "Thing"}, FfiTypeOf(External{Name: "Thing", Namespace: "other", Kind: ExternalKindInterface}))
	assert.Equal(t, FfiHandle{}, FfiTypeOf(Executor{}))
}
