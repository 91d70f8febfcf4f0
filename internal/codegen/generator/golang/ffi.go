package golang

import (
	"fmt"
	"strings"

	"github.com/Alia5/uniffi-bindgen-go/internal/codegen/ci"
	"github.com/Alia5/uniffi-bindgen-go/internal/codegen/common"
)

// CgoFfiType is the C spelling of t used in the bridging header. A nil type is a
// void return.
func CgoFfiType(t ci.FfiType) string {
	switch t := t.(type) {
	case nil:
		return "void"
	case ci.FfiInt8:
		return "int8_t"
	case ci.FfiInt16:
		return "int16_t"
	case ci.FfiInt32:
		return "int32_t"
	case ci.FfiInt64:
		return "int64_t"
	case ci.FfiUInt8:
		return "uint8_t"
	case ci.FfiUInt16:
		return "uint16_t"
	case ci.FfiUInt32:
		return "uint32_t"
	case ci.FfiUInt64:
		return "uint64_t"
	case ci.FfiFloat32:
		return "float"
	case ci.FfiFloat64:
		return "double"
	case ci.FfiRustArcPtr:
		return "void*"
	case ci.FfiRustBuffer:
		return "RustBuffer"
	case ci.FfiForeignBytes:
		return "ForeignBytes"
	case ci.FfiCallback:
		return FfiCallbackName(t.Name)
	case ci.FfiStruct:
		return FfiStructName(t.Name)
	case ci.FfiHandle:
		return "uint64_t"
	case ci.FfiRustCallStatus:
		return "RustCallStatus"
	case ci.FfiReference:
		return CgoFfiType(t.Inner) + "*"
	case ci.FfiVoidPointer:
		return "void*"
	case ci.FfiFutureCallback:
		return "UniFfiFutureCallback" + CgoFfiCallbackType(t.Return)
	case ci.FfiFutureCallbackData:
		return "void*"
	default:
		panic(fmt.Sprintf("unreachable: unknown ffi type %T", t))
	}
}

// CgoFfiCallbackType names the inner type of a future callback. Pointer shapes
// get a word instead of their C spelling so the composite stays an identifier.
func CgoFfiCallbackType(t ci.FfiType) string {
	switch t.(type) {
	case ci.FfiFutureCallbackData:
		return "FutureCallbackData"
	case ci.FfiRustArcPtr:
		return "RustArcPtr"
	default:
		return CgoFfiType(t)
	}
}

// FfiTypeName is the Go spelling of t on the calling side: arguments passed to
// and values returned from the native library.
func FfiTypeName(t ci.FfiType) string {
	switch t := t.(type) {
	case ci.FfiRustArcPtr:
		return "unsafe.Pointer"
	case ci.FfiRustBuffer:
		if t.External != "" {
			return t.External + ".RustBufferI"
		}
		return "RustBufferI"
	case ci.FfiVoidPointer:
		return "unsafe.Pointer"
	case ci.FfiReference:
		return "*" + FfiTypeNameCgoSafe(t.Inner)
	default:
		return "C." + CgoFfiType(t)
	}
}

// FfiTypeNameCgoSafe is the Go spelling of t in the signature of an exported
// function. Only types cgo can export are used: buffers stay concrete C structs.
func FfiTypeNameCgoSafe(t ci.FfiType) string {
	switch t := t.(type) {
	case ci.FfiRustArcPtr:
		return "unsafe.Pointer"
	case ci.FfiRustBuffer:
		return "C.RustBuffer"
	case ci.FfiVoidPointer:
		return "*C.void"
	case ci.FfiReference:
		return "*" + FfiTypeNameCgoSafe(t.Inner)
	default:
		return "C." + CgoFfiType(t)
	}
}

// CgoExportParams renders the Go parameter list of the export implementing cb.
func CgoExportParams(cb ci.FfiCallbackFunction) string {
	parts := make([]string, 0, len(cb.Arguments)+1)
	for _, a := range cb.Arguments {
		parts = append(parts, common.VarName(a.Name)+" "+FfiTypeNameCgoSafe(a.Type))
	}
	if cb.HasRustCallStatusArg {
		parts = append(parts, "callStatus *C.RustCallStatus")
	}
	return strings.Join(parts, ", ")
}

// FfiCallbackName is the C typedef of a callback definition.
func FfiCallbackName(name string) string {
	return "Uniffi" + common.ToPascalCase(name)
}

// FfiStructName is the C typedef of a struct definition.
func FfiStructName(name string) string {
	return "Uniffi" + common.ToPascalCase(name)
}
