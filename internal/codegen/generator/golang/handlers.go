package golang

import (
	"fmt"

	"github.com/Alia5/uniffi-bindgen-go/internal/codegen/ci"
	"github.com/Alia5/uniffi-bindgen-go/internal/codegen/common"
)

// codeType is implemented once per kind of interface type.
type codeType interface {
	// TypeLabel is the Go type expression of the type.
	TypeLabel() string
	// CanonicalName is the suffix of every symbol derived from the type.
	CanonicalName() string
	// Literal renders a constant of the type. It panics for types without a
	// literal form.
	Literal(lit ci.Literal) string

	initializationFn(converter string) string
	namespace() string
}

// TypeHandler renders one interface type. Derived symbol names are computed from
// the canonical name so that they agree across generated packages.
type TypeHandler struct {
	codeType
}

func (h TypeHandler) qualify(name string) string {
	if ns := h.namespace(); ns != "" {
		return ns + "." + name
	}
	return name
}

func (h TypeHandler) FfiConverterName() string {
	return h.qualify("FfiConverter" + h.CanonicalName())
}

func (h TypeHandler) FfiConverterInstance() string {
	return h.FfiConverterName() + "INSTANCE"
}

func (h TypeHandler) FfiDestroyerName() string {
	return h.qualify("FfiDestroyer" + h.CanonicalName())
}

func (h TypeHandler) Lower() string   { return h.FfiConverterInstance() + ".Lower" }
func (h TypeHandler) Lift() string    { return h.FfiConverterInstance() + ".Lift" }
func (h TypeHandler) Read() string    { return h.FfiConverterInstance() + ".Read" }
func (h TypeHandler) Write() string   { return h.FfiConverterInstance() + ".Write" }
func (h TypeHandler) Destroy() string { return h.FfiDestroyerName() + "{}.Destroy" }

// InitializationFn names the function init() must call before the type can be
// used, or "" when there is none.
func (h TypeHandler) InitializationFn() string {
	return h.initializationFn(h.FfiConverterName())
}

type primitiveCodeType struct {
	t ci.Type
}

func (p primitiveCodeType) names() (label, canonical string) {
	switch p.t.(type) {
	case ci.Int8:
		return "int8", "Int8"
	case ci.Int16:
		return "int16", "Int16"
	case ci.Int32:
		return "int32", "Int32"
	case ci.Int64:
		return "int64", "Int64"
	case ci.UInt8:
		return "uint8", "Uint8"
	case ci.UInt16:
		return "uint16", "Uint16"
	case ci.UInt32:
		return "uint32", "Uint32"
	case ci.UInt64:
		return "uint64", "Uint64"
	case ci.Float32:
		return "float32", "Float32"
	case ci.Float64:
		return "float64", "Float64"
	case ci.Boolean:
		return "bool", "Bool"
	case ci.String:
		return "string", "String"
	case ci.Bytes:
		return "[]byte", "Bytes"
	case ci.Duration:
		return "time.Duration", "Duration"
	case ci.Timestamp:
		return "time.Time", "Timestamp"
	default:
		panic(fmt.Sprintf("unreachable: %T is not a primitive", p.t))
	}
}

func (p primitiveCodeType) TypeLabel() string {
	label, _ := p.names()
	return label
}

func (p primitiveCodeType) CanonicalName() string {
	_, canonical := p.names()
	return canonical
}

func (p primitiveCodeType) Literal(lit ci.Literal) string {
	return primitiveLiteral(p.t, p.TypeLabel(), lit)
}

func (primitiveCodeType) initializationFn(string) string { return "" }
func (primitiveCodeType) namespace() string              { return "" }

type optionalCodeType struct {
	oracle *Oracle
	inner  ci.Type
}

func (o optionalCodeType) TypeLabel() string {
	return "*" + o.oracle.Find(o.inner).TypeLabel()
}

func (o optionalCodeType) CanonicalName() string {
	return "Optional" + o.oracle.Find(o.inner).CanonicalName()
}

func (o optionalCodeType) Literal(lit ci.Literal) string {
	switch lit := lit.(type) {
	case ci.LiteralNone:
		return "nil"
	case ci.LiteralSome:
		return o.oracle.Find(o.inner).Literal(lit.Inner)
	default:
		return o.oracle.Find(o.inner).Literal(lit)
	}
}

func (optionalCodeType) initializationFn(string) string { return "" }
func (optionalCodeType) namespace() string              { return "" }

type sequenceCodeType struct {
	oracle *Oracle
	inner  ci.Type
}

func (s sequenceCodeType) TypeLabel() string {
	return "[]" + s.oracle.Find(s.inner).TypeLabel()
}

func (s sequenceCodeType) CanonicalName() string {
	return "Sequence" + s.oracle.Find(s.inner).CanonicalName()
}

func (s sequenceCodeType) Literal(ci.Literal) string {
	panic("unreachable: sequences have no literal form")
}

func (sequenceCodeType) initializationFn(string) string { return "" }
func (sequenceCodeType) namespace() string              { return "" }

type mapCodeType struct {
	oracle     *Oracle
	key, value ci.Type
}

func (m mapCodeType) TypeLabel() string {
	return "map[" + m.oracle.Find(m.key).TypeLabel() + "]" + m.oracle.Find(m.value).TypeLabel()
}

func (m mapCodeType) CanonicalName() string {
	return "Map" + m.oracle.Find(m.key).CanonicalName() + m.oracle.Find(m.value).CanonicalName()
}

func (m mapCodeType) Literal(ci.Literal) string {
	panic("unreachable: maps have no literal form")
}

func (mapCodeType) initializationFn(string) string { return "" }
func (mapCodeType) namespace() string              { return "" }

type recordCodeType struct {
	name string
}

func (r recordCodeType) TypeLabel() string     { return common.ClassName(r.name) }
func (r recordCodeType) CanonicalName() string { return "Type" + r.name }

func (r recordCodeType) Literal(ci.Literal) string {
	panic(fmt.Sprintf("unreachable: record %s has no literal form", r.name))
}

func (recordCodeType) initializationFn(string) string { return "" }
func (recordCodeType) namespace() string              { return "" }

// enumCodeType renders error enums by reference: they travel through the error
// interface and their methods have pointer receivers.
type enumCodeType struct {
	name    string
	isError bool
}

func (e enumCodeType) TypeLabel() string {
	if e.isError {
		return "*" + common.ClassName(e.name)
	}
	return common.ClassName(e.name)
}

func (e enumCodeType) CanonicalName() string { return "Type" + e.name }

func (e enumCodeType) Literal(lit ci.Literal) string {
	v, ok := lit.(ci.LiteralEnum)
	if !ok {
		panic(fmt.Sprintf("unreachable: %T is not a literal of enum %s", lit, e.name))
	}
	return common.ClassName(e.name) + common.EnumVariantName(v.Variant)
}

func (enumCodeType) initializationFn(string) string { return "" }
func (enumCodeType) namespace() string              { return "" }

// objectCodeType renders native objects as pointers to their struct. Objects
// foreign code may implement are rendered as their interface instead.
type objectCodeType struct {
	name string
	imp  ci.ObjectImpl
}

func (o objectCodeType) TypeLabel() string {
	if o.imp == ci.ObjectImplCallbackTrait {
		return common.ClassName(o.name)
	}
	return "*" + common.ClassName(o.name)
}

func (o objectCodeType) CanonicalName() string { return o.name }

func (o objectCodeType) Literal(ci.Literal) string {
	panic(fmt.Sprintf("unreachable: object %s has no literal form", o.name))
}

func (o objectCodeType) initializationFn(converter string) string {
	if o.imp == ci.ObjectImplCallbackTrait {
		return "(&" + converter + "{}).register"
	}
	return ""
}

func (objectCodeType) namespace() string { return "" }

type callbackInterfaceCodeType struct {
	name string
}

func (c callbackInterfaceCodeType) TypeLabel() string     { return common.ClassName(c.name) }
func (c callbackInterfaceCodeType) CanonicalName() string { return "Type" + c.name }

func (c callbackInterfaceCodeType) Literal(ci.Literal) string {
	panic(fmt.Sprintf("unreachable: callback interface %s has no literal form", c.name))
}

func (callbackInterfaceCodeType) initializationFn(converter string) string {
	return "(&" + converter + "{}).register"
}

func (callbackInterfaceCodeType) namespace() string { return "" }

type customCodeType struct {
	name    string
	builtin ci.Type
}

func (c customCodeType) TypeLabel() string     { return common.ClassName(c.name) }
func (c customCodeType) CanonicalName() string { return "Type" + c.name }

func (c customCodeType) Literal(ci.Literal) string {
	panic(fmt.Sprintf("unreachable: custom type %s has no literal form", c.name))
}

func (customCodeType) initializationFn(string) string { return "" }
func (customCodeType) namespace() string              { return "" }

// externalCodeType refers to a type whose converters live in the package
// generated for another namespace.
type externalCodeType struct {
	name string
	ns   string
	kind ci.ExternalKind
}

func (e externalCodeType) TypeLabel() string {
	if e.kind == ci.ExternalKindInterface {
		return "*" + e.ns + "." + common.ClassName(e.name)
	}
	return e.ns + "." + common.ClassName(e.name)
}

func (e externalCodeType) CanonicalName() string {
	if e.kind == ci.ExternalKindInterface {
		return e.name
	}
	return "Type" + e.name
}

func (e externalCodeType) Literal(ci.Literal) string {
	panic(fmt.Sprintf("unreachable: external type %s has no literal form", e.name))
}

func (externalCodeType) initializationFn(string) string { return "" }
func (e externalCodeType) namespace() string            { return e.ns }

type executorCodeType struct{}

func (executorCodeType) TypeLabel() string     { return "UniFfiForeignExecutor" }
func (executorCodeType) CanonicalName() string { return "ForeignExecutor" }

func (executorCodeType) Literal(ci.Literal) string {
	panic("unreachable: executors have no literal form")
}

func (executorCodeType) initializationFn(string) string { return "uniffiInitForeignExecutor" }
func (executorCodeType) namespace() string              { return "" }
