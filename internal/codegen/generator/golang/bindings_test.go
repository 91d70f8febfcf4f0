package golang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/uniffi-bindgen-go/internal/codegen/ci"
	"github.com/Alia5/uniffi-bindgen-go/internal/codegen/common"
	"github.com/Alia5/uniffi-bindgen-go/internal/codegen/config"
)

func loadGeometry(t *testing.T) (*config.Config, *ci.ComponentInterface) {
	t.Helper()
	c, err := ci.Load("../../ci/testdata/geometry.yaml")
	require.NoError(t, err)
	cfg, err := config.Load("../../config/testdata/crate", "")
	require.NoError(t, err)
	cfg.UpdateFromCI(c.Namespace)
	return cfg, c
}

func TestGenerateBindingsWrapper(t *testing.T) {
	cfg, c := loadGeometry(t)

	b, err := GenerateBindings(cfg, c)
	require.NoError(t, err)

	expected := []string{
		"// " + common.GeneratedHeader(),
		"// Planar geometry helpers.\npackage geometry",
		"// #cgo LDFLAGS: -lgeometry_ffi",
		"// #cgo CFLAGS: -I${SRCDIR}",
		"// #include \"geometryFFI.h\"",
		"import \"C\"",
		"\"net/url\"",

		// records and enums
		"type Point struct {",
		"type Line struct {",
		"var FfiConverterTypePointINSTANCE = FfiConverterTypePoint{}",
		"type Direction uint",
		"type GeometryError struct {",
		"var ErrGeometryErrorParallel = fmt.Errorf(\"GeometryErrorParallel\")",

		// objects
		"func NewCanvas(width uint32) *Canvas {",
		"func CanvasWithLines(lines []Line) *Canvas {",
		"func (_self *Canvas) Draw(line Line) error {",
		"func (_self *Canvas) Render() []byte {",
		"func (_self *Canvas) String() string {",
		"type CanvasInterface interface {",
		"type Shape interface {",
		"type ShapeImpl struct {",

		// callback interface
		"type Logger interface {",
		"//export geometry_cgo_dispatchUniffiCallbackInterfaceLoggerMethod0",
		"//export geometry_cgo_dispatchCallbackInterfaceLoggerFree",

		// functions
		"func Gradient(ln Line) float64 {",
		"func Intersection(ln1 Line, ln2 Line) (*Point, error) {",
		"func Tags() map[string]Direction {",

		// custom type
		"type Url = url.URL",
		"u, err := url.Parse(builtinValue)",
		"builtinValue := value.String()",

		// init
		"(&FfiConverterTypeLogger{}).register()",
		"(&FfiConverterShape{}).register()",
		"if checksum != 4021 {",
		"if checksum != 12903 {",
		"bindingsContractVersion := 26",
	}
	for _, s := range expected {
		assert.Contains(t, b.Wrapper, s)
	}
	assert.NotContains(t, b.Wrapper, "#include <geometryFFI.h>")

	assert.Contains(t, b.InitializationFns, "(&FfiConverterTypeLogger{}).register")
	assert.Contains(t, b.InitializationFns, "(&FfiConverterShape{}).register")
	assert.Contains(t, b.Imports, common.ImportRequirement{Path: "net/url"})
}

func TestGenerateBindingsHeader(t *testing.T) {
	cfg, c := loadGeometry(t)

	b, err := GenerateBindings(cfg, c)
	require.NoError(t, err)

	expected := []string{
		"#ifndef UNIFFI_SHARED_H",
		"typedef struct RustBuffer {",
		"#ifndef UNIFFI_FFIDEF_UNIFFI_GEOMETRY_FN_FUNC_GRADIENT",
		"double uniffi_geometry_fn_func_gradient(RustBuffer ln, RustCallStatus* out_status);",
		"void* uniffi_geometry_fn_constructor_canvas_new(uint32_t width, RustCallStatus* out_status);",
		"uint16_t uniffi_geometry_checksum_func_gradient(void);",
		"uint32_t ffi_geometry_uniffi_contract_version(void);",
		"void ffi_geometry_rust_future_poll_rust_buffer(uint64_t handle, UniffiRustFutureContinuationCallback callback, uint64_t callbackData);",
		"typedef struct UniffiVtableCallbackInterfaceLogger {",
		"void uniffi_geometry_fn_init_callback_vtable_logger(UniffiVtableCallbackInterfaceLogger* vtable);",
		"void geometry_cgo_dispatchUniffiCallbackInterfaceLoggerMethod0(uint64_t uniffiHandle, RustBuffer msg, void* uniffiOutReturn, RustCallStatus* callStatus);",
		"void geometry_cgo_dispatchCallbackInterfaceLoggerFree(uint64_t handle);",
		"void geometry_uniffiFutureContinuationCallback(uint64_t data, int8_t pollResult);",
	}
	for _, s := range expected {
		assert.Contains(t, b.Header, s)
	}
	assert.NotContains(t, b.Header, "// Implemented in geometryFFI.c.")
}

func TestGenerateBindingsCFileWithoutAsyncCallbacks(t *testing.T) {
	cfg, c := loadGeometry(t)

	b, err := GenerateBindings(cfg, c)
	require.NoError(t, err)

	assert.Contains(t, b.CFile, "#include \"geometryFFI.h\"")
	assert.NotContains(t, b.CFile, "callback(callbackData, result);")
}

func TestGenerateBindingsAsyncCallbackBridges(t *testing.T) {
	c := ci.New("fetch")
	c.AddCallbackInterface(ci.CallbackInterfaceDef{
		Name: "Fetcher",
		Methods: []ci.Method{{
			Callable: ci.Callable{
				Name:       "fetch",
				Arguments:  []ci.Argument{{Name: "url", Type: ci.String{}}},
				ReturnType: ci.String{},
				Async:      true,
			},
		}},
	})
	cfg := &config.Config{}
	cfg.UpdateFromCI(c.Namespace)

	b, err := GenerateBindings(cfg, c)
	require.NoError(t, err)

	assert.Contains(t, b.Header, "// Implemented in fetchFFI.c.")
	assert.Contains(t, b.Header, "void fetch_callUniffiForeignFutureCompleteRustBuffer(UniffiForeignFutureCompleteRustBuffer callback, uint64_t callbackData, UniffiForeignFutureStructRustBuffer result);")
	assert.Contains(t, b.CFile, "void fetch_callUniffiForeignFutureCompleteRustBuffer(UniffiForeignFutureCompleteRustBuffer callback, uint64_t callbackData, UniffiForeignFutureStructRustBuffer result) {\n\tcallback(callbackData, result);\n}")
	assert.Contains(t, b.CFile, "fetch_callUniffiForeignFutureCompleteVoid")

	assert.Contains(t, b.Wrapper, "// #cgo LDFLAGS: -luniffi_fetch")
	assert.Contains(t, b.Wrapper, "Fetch(url string) string")
	assert.Contains(t, b.Wrapper, "guardHandle := cgo.NewHandle(cancel)")
	assert.Contains(t, b.Wrapper, "C.fetch_callUniffiForeignFutureCompleteRustBuffer(uniffiCallback, callbackData, out)")
}

func TestGenerateBindingsRejectsNameCollisions(t *testing.T) {
	c := ci.New("demo")
	c.AddRecord(ci.RecordDef{Name: "thing"})
	c.AddEnum(ci.EnumDef{Name: "Thing", Variants: []ci.Variant{{Name: "a"}}})

	_, err := GenerateBindings(&config.Config{}, c)
	require.Error(t, err)
}

func TestGenerateBindingsIsDeterministic(t *testing.T) {
	cfg, c := loadGeometry(t)

	first, err := GenerateBindings(cfg, c)
	require.NoError(t, err)
	second, err := GenerateBindings(cfg, c)
	require.NoError(t, err)

	assert.Equal(t, first.Wrapper, second.Wrapper)
	assert.Equal(t, first.Header, second.Header)
	assert.Equal(t, first.CFile, second.CFile)
}

func TestCDeclaration(t *testing.T) {
	tests := []struct {
		name     string
		def      ci.FfiDefinition
		expected string
	}{
		{
			name: "callback",
			def: &ci.FfiCallbackFunction{Name: "CallbackInterfaceFree", Arguments: []ci.FfiArgument{
				{Name: "handle", Type: ci.FfiUInt64{}},
			}},
			expected: "#ifndef UNIFFI_FFIDEF_CALLBACK_INTERFACE_FREE\n#define UNIFFI_FFIDEF_CALLBACK_INTERFACE_FREE\n" +
				"typedef void (*UniffiCallbackInterfaceFree)(uint64_t handle);\n#endif",
		},
		{
			name: "struct",
			def: &ci.FfiStructDef{Name: "ForeignFuture", Fields: []ci.FfiField{
				{Name: "handle", Type: ci.FfiUInt64{}},
				{Name: "free", Type: ci.FfiCallback{Name: "ForeignFutureFree"}},
			}},
			expected: "#ifndef UNIFFI_FFIDEF_FOREIGN_FUTURE\n#define UNIFFI_FFIDEF_FOREIGN_FUTURE\n" +
				"typedef struct UniffiForeignFuture {\n\tuint64_t handle;\n\tUniffiForeignFutureFree free;\n} UniffiForeignFuture;\n#endif",
		},
		{
			name: "function",
			def: &ci.FfiFunction{Name: "ffi_demo_rustbuffer_free", Arguments: []ci.FfiArgument{
				{Name: "buf", Type: ci.FfiRustBuffer{}},
			}, HasRustCallStatusArg: true},
			expected: "#ifndef UNIFFI_FFIDEF_FFI_DEMO_RUSTBUFFER_FREE\n#define UNIFFI_FFIDEF_FFI_DEMO_RUSTBUFFER_FREE\n" +
				"void ffi_demo_rustbuffer_free(RustBuffer buf, RustCallStatus* out_status);\n#endif",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cDeclaration(tt.def))
		})
	}
}
