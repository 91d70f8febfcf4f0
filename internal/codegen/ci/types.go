// Package ci models a parsed component interface: the language-neutral description
// of a native library's exported functions, objects, records, enums, errors and
// callback interfaces that bindings are generated from.
package ci

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Type is one type occurring anywhere in a component interface.
//
// The variant set is closed: every switch over a Type lists all variants below and
// panics on anything else.
type Type interface {
	isType()
}

type (
	Int8      struct{}
	Int16     struct{}
	Int32     struct{}
	Int64     struct{}
	UInt8     struct{}
	UInt16    struct{}
	UInt32    struct{}
	UInt64    struct{}
	Float32   struct{}
	Float64   struct{}
	Boolean   struct{}
	String    struct{}
	Bytes     struct{}
	Duration  struct{}
	Timestamp struct{}

	// Executor is the opaque handle native async code dispatches work through.
	Executor struct{}
)

type Optional struct {
	Inner Type
}

type Sequence struct {
	Inner Type
}

type Map struct {
	Key   Type
	Value Type
}

type Record struct {
	Name       string
	ModulePath string
}

type Enum struct {
	Name       string
	ModulePath string
}

type Object struct {
	Name       string
	ModulePath string
	Imp        ObjectImpl
}

// HasCallbackInterface reports whether foreign code may implement the object.
func (o Object) HasCallbackInterface() bool {
	return o.Imp == ObjectImplCallbackTrait
}

type CallbackInterface struct {
	Name       string
	ModulePath string
}

// Custom is a named type represented on the wire by a builtin type.
type Custom struct {
	Name       string
	ModulePath string
	Builtin    Type
}

// External is a type defined by another component, whose generated package owns
// the converters.
type External struct {
	Name       string
	ModulePath string
	Kind       ExternalKind
	Namespace  string
	Tagged     bool
}

func (Int8) isType()              {}
func (Int16) isType()             {}
func (Int32) isType()             {}
func (Int64) isType()             {}
func (UInt8) isType()             {}
func (UInt16) isType()            {}
func (UInt32) isType()            {}
func (UInt64) isType()            {}
func (Float32) isType()           {}
func (Float64) isType()           {}
func (Boolean) isType()           {}
func (String) isType()            {}
func (Bytes) isType()             {}
func (Duration) isType()          {}
func (Timestamp) isType()         {}
func (Executor) isType()          {}
func (Optional) isType()          {}
func (Sequence) isType()          {}
func (Map) isType()               {}
func (Record) isType()            {}
func (Enum) isType()              {}
func (Object) isType()            {}
func (CallbackInterface) isType() {}
func (Custom) isType()            {}
func (External) isType()          {}

// ObjectImpl says who may implement an object.
type ObjectImpl int

const (
	// ObjectImplStruct objects are only implemented natively.
	ObjectImplStruct ObjectImpl = iota
	// ObjectImplTrait objects are native trait objects.
	ObjectImplTrait
	// ObjectImplCallbackTrait objects may also be implemented by foreign code.
	ObjectImplCallbackTrait
)

func (i ObjectImpl) String() string {
	switch i {
	case ObjectImplStruct:
		return "struct"
	case ObjectImplTrait:
		return "trait"
	case ObjectImplCallbackTrait:
		return "callback_trait"
	default:
		return fmt.Sprintf("ObjectImpl(%d)", int(i))
	}
}

// ParseObjectImpl parses the textual form produced by ObjectImpl.String.
func ParseObjectImpl(s string) (ObjectImpl, error) {
	switch strings.ToLower(s) {
	case "", "struct":
		return ObjectImplStruct, nil
	case "trait":
		return ObjectImplTrait, nil
	case "callback_trait", "callback-trait", "with_foreign":
		return ObjectImplCallbackTrait, nil
	default:
		return 0, errors.Newf("unknown object implementation %q", s)
	}
}

type ExternalKind int

const (
	ExternalKindDataClass ExternalKind = iota
	ExternalKindInterface
)

func (k ExternalKind) String() string {
	switch k {
	case ExternalKindDataClass:
		return "data_class"
	case ExternalKindInterface:
		return "interface"
	default:
		return fmt.Sprintf("ExternalKind(%d)", int(k))
	}
}

func ParseExternalKind(s string) (ExternalKind, error) {
	switch strings.ToLower(s) {
	case "", "data_class", "record", "enum":
		return ExternalKindDataClass, nil
	case "interface", "object":
		return ExternalKindInterface, nil
	default:
		return 0, errors.Newf("unknown external kind %q", s)
	}
}

// TypeKey returns the structural identity of a type. Two types are the same type
// exactly when their keys are equal; the key doubles as the type expression the
// loader parses.
func TypeKey(t Type) string {
	switch t := t.(type) {
	case Int8:
		return "i8"
	case Int16:
		return "i16"
	case Int32:
		return "i32"
	case Int64:
		return "i64"
	case UInt8:
		return "u8"
	case UInt16:
		return "u16"
	case UInt32:
		return "u32"
	case UInt64:
		return "u64"
	case Float32:
		return "f32"
	case Float64:
		return "f64"
	case Boolean:
		return "bool"
	case String:
		return "string"
	case Bytes:
		return "bytes"
	case Duration:
		return "duration"
	case Timestamp:
		return "timestamp"
	case Executor:
		return "executor"
	case Optional:
		return "optional<" + TypeKey(t.Inner) + ">"
	case Sequence:
		return "sequence<" + TypeKey(t.Inner) + ">"
	case Map:
		return "map<" + TypeKey(t.Key) + ", " + TypeKey(t.Value) + ">"
	case Record:
		return t.Name
	case Enum:
		return t.Name
	case Object:
		return t.Name
	case CallbackInterface:
		return t.Name
	case Custom:
		return t.Name
	case External:
		return t.Name
	default:
		panic(fmt.Sprintf("unreachable: unknown type %T", t))
	}
}

// InnerTypes returns the types a composite type is built from.
func InnerTypes(t Type) []Type {
	switch t := t.(type) {
	case Optional:
		return []Type{t.Inner}
	case Sequence:
		return []Type{t.Inner}
	case Map:
		return []Type{t.Key, t.Value}
	case Custom:
		return []Type{t.Builtin}
	case Int8, Int16, Int32, Int64, UInt8, UInt16, UInt32, UInt64, Float32, Float64,
		Boolean, String, Bytes, Duration, Timestamp, Executor,
		Record, Enum, Object, CallbackInterface, External:
		return nil
	default:
		panic(fmt.Sprintf("unreachable: unknown type %T", t))
	}
}
