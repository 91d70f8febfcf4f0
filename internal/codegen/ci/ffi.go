package ci

import "fmt"

// FfiType is the C ABI representation of a value crossing the boundary.
type FfiType interface {
	isFfiType()
}

type (
	FfiInt8    struct{}
	FfiInt16   struct{}
	FfiInt32   struct{}
	FfiInt64   struct{}
	FfiUInt8   struct{}
	FfiUInt16  struct{}
	FfiUInt32  struct{}
	FfiUInt64  struct{}
	FfiFloat32 struct{}
	FfiFloat64 struct{}

	// FfiRustArcPtr is an opaque pointer to a native object.
	FfiRustArcPtr struct{ Name string }

	// FfiRustBuffer is a length-prefixed buffer owned by the native side.
	// External is the namespace of the component that owns the buffer type, or
	// empty for the local one.
	FfiRustBuffer struct{ External string }

	FfiForeignBytes struct{}

	// FfiCallback is a function pointer type named by its definition.
	FfiCallback struct{ Name string }

	FfiStruct struct{ Name string }

	FfiHandle         struct{}
	FfiRustCallStatus struct{}

	FfiReference struct{ Inner FfiType }

	FfiVoidPointer struct{}

	// FfiFutureCallback is a continuation that receives a value of Return.
	FfiFutureCallback struct{ Return FfiType }

	FfiFutureCallbackData struct{}
)

func (FfiInt8) isFfiType()               {}
func (FfiInt16) isFfiType()              {}
func (FfiInt32) isFfiType()              {}
func (FfiInt64) isFfiType()              {}
func (FfiUInt8) isFfiType()              {}
func (FfiUInt16) isFfiType()             {}
func (FfiUInt32) isFfiType()             {}
func (FfiUInt64) isFfiType()             {}
func (FfiFloat32) isFfiType()            {}
func (FfiFloat64) isFfiType()            {}
func (FfiRustArcPtr) isFfiType()         {}
func (FfiRustBuffer) isFfiType()         {}
func (FfiForeignBytes) isFfiType()       {}
func (FfiCallback) isFfiType()           {}
func (FfiStruct) isFfiType()             {}
func (FfiHandle) isFfiType()             {}
func (FfiRustCallStatus) isFfiType()     {}
func (FfiReference) isFfiType()          {}
func (FfiVoidPointer) isFfiType()        {}
func (FfiFutureCallback) isFfiType()     {}
func (FfiFutureCallbackData) isFfiType() {}

// FfiTypeOf lowers an interface type to the ABI shape that carries it.
func FfiTypeOf(t Type) FfiType {
	switch t := t.(type) {
	case Int8:
		return FfiInt8{}
	case Int16:
		return FfiInt16{}
	case Int32:
		return FfiInt32{}
	case Int64:
		return FfiInt64{}
	case UInt8:
		return FfiUInt8{}
	case UInt16:
		return FfiUInt16{}
	case UInt32:
		return FfiUInt32{}
	case UInt64:
		return FfiUInt64{}
	case Float32:
		return FfiFloat32{}
	case Float64:
		return FfiFloat64{}
	case Boolean:
		return FfiInt8{}
	case String, Bytes, Duration, Timestamp, Optional, Sequence, Map, Record, Enum:
		return FfiRustBuffer{}
	case Object:
		return FfiRustArcPtr{Name: t.Name}
	case CallbackInterface:
		return FfiUInt64{}
	case Custom:
		return FfiTypeOf(t.Builtin)
	case External:
		if t.Kind == ExternalKindInterface {
			return FfiRustArcPtr{Name: t.Name}
		}
		return FfiRustBuffer{External: t.Namespace}
	case Executor:
		return FfiHandle{}
	default:
		panic(fmt.Sprintf("unreachable: unknown type %T", t))
	}
}

// FfiTypeSuffix names the rust-future helper family used for a return shape.
func FfiTypeSuffix(t FfiType) string {
	switch t.(type) {
	case nil:
		return "void"
	case FfiInt8:
		return "i8"
	case FfiInt16:
		return "i16"
	case FfiInt32:
		return "i32"
	case FfiInt64:
		return "i64"
	case FfiUInt8:
		return "u8"
	case FfiUInt16:
		return "u16"
	case FfiUInt32:
		return "u32"
	case FfiUInt64, FfiHandle:
		return "u64"
	case FfiFloat32:
		return "f32"
	case FfiFloat64:
		return "f64"
	case FfiRustArcPtr, FfiVoidPointer:
		return "pointer"
	case FfiRustBuffer:
		return "rust_buffer"
	default:
		panic(fmt.Sprintf("unreachable: %T has no rust-future helpers", t))
	}
}

// FutureReturnShapes lists one representative of every rust-future helper family,
// in declaration order.
func FutureReturnShapes() []FfiType {
	return []FfiType{
		FfiUInt8{}, FfiInt8{}, FfiUInt16{}, FfiInt16{}, FfiUInt32{}, FfiInt32{},
		FfiUInt64{}, FfiInt64{}, FfiFloat32{}, FfiFloat64{},
		FfiRustArcPtr{}, FfiRustBuffer{}, nil,
	}
}

type FfiArgument struct {
	Name string
	Type FfiType
}

// FfiFunction is a symbol exported by the native library.
type FfiFunction struct {
	Name                 string
	Arguments            []FfiArgument
	ReturnType           FfiType
	HasRustCallStatusArg bool
	IsAsync              bool
}

// FfiCallbackFunction is a function pointer type the native library calls back
// through.
type FfiCallbackFunction struct {
	Name                 string
	Arguments            []FfiArgument
	ReturnType           FfiType
	HasRustCallStatusArg bool
}

type FfiField struct {
	Name string
	Type FfiType
}

type FfiStructDef struct {
	Name   string
	Fields []FfiField
}

// FfiDefinition is one declaration of the bridging header.
type FfiDefinition interface {
	DefinitionName() string
}

func (f *FfiFunction) DefinitionName() string         { return f.Name }
func (f *FfiCallbackFunction) DefinitionName() string { return f.Name }
func (s *FfiStructDef) DefinitionName() string        { return s.Name }
