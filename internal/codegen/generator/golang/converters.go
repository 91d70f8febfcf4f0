package golang

import (
	"fmt"
	"strings"

	"github.com/Alia5/uniffi-bindgen-go/internal/codegen/ci"
	"github.com/Alia5/uniffi-bindgen-go/internal/codegen/common"
)

// LowerFnCall renders the expression lowering arg for a native call. Buffers of
// external types are re-wrapped since each package has its own C.RustBuffer.
func (o *Oracle) LowerFnCall(arg ci.Argument) string {
	h := o.Find(arg.Type)
	call := h.Lower() + "(" + common.VarName(arg.Name) + ")"
	if ext, ok := arg.Type.(ci.External); ok && ext.Kind == ci.ExternalKindDataClass {
		return "RustBufferFromExternal(" + call + ")"
	}
	return call
}

// LiftFromCgo renders the expression lifting expr, a value received by an
// exported function, into t.
func (o *Oracle) LiftFromCgo(t ci.Type, expr string) string {
	h := o.Find(t)
	if _, ok := ci.FfiTypeOf(t).(ci.FfiRustBuffer); ok {
		return h.Lift() + "(GoRustBuffer{inner: " + expr + "})"
	}
	return h.Lift() + "(" + expr + ")"
}

// LiftArgs renders the lifted arguments of a foreign method invoked by the
// native library. The exported dispatcher names its parameters with VarName.
func (o *Oracle) LiftArgs(args []ci.Argument) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		parts = append(parts, o.LiftFromCgo(a.Type, common.VarName(a.Name)))
	}
	return strings.Join(parts, ", ")
}

// DefaultValue renders the zero value of t, returned next to an error.
func (o *Oracle) DefaultValue(t ci.Type) string {
	switch t := t.(type) {
	case ci.Int8, ci.Int16, ci.Int32, ci.Int64,
		ci.UInt8, ci.UInt16, ci.UInt32, ci.UInt64,
		ci.Float32, ci.Float64, ci.Duration:
		return "0"
	case ci.Boolean:
		return "false"
	case ci.String:
		return `""`
	case ci.Bytes, ci.Optional, ci.Sequence, ci.Map, ci.Object, ci.CallbackInterface:
		return "nil"
	case ci.Timestamp:
		return "time.Time{}"
	case ci.Record:
		return o.Find(t).TypeLabel() + "{}"
	case ci.Enum:
		if o.usedAsError(t.Name) {
			return "nil"
		}
		return "*new(" + o.Find(t).TypeLabel() + ")"
	case ci.External:
		if t.Kind == ci.ExternalKindInterface {
			return "nil"
		}
		return "*new(" + o.Find(t).TypeLabel() + ")"
	case ci.Custom:
		return "*new(" + o.Find(t).TypeLabel() + ")"
	case ci.Executor:
		return "UniFfiForeignExecutor{}"
	default:
		panic(fmt.Sprintf("unreachable: unknown type %T", t))
	}
}

// FutureChanType is the element type of the channel carrying the outcome of a
// foreign async method.
func (o *Oracle) FutureChanType(r ci.AsyncResult) string {
	if r.ReturnType == nil {
		return "struct { err error }"
	}
	return "struct { val " + o.Find(r.ReturnType).TypeLabel() + "; err error }"
}

// IntoCustom renders the body converting builtin, a lifted builtin value, into a
// custom type. conv is either an expression or a statement block that returns.
func IntoCustom(conv, builtin string) string {
	body := strings.ReplaceAll(strings.Trim(conv, "\n"), "{}", builtin)
	isBlock := false
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "return") {
			isBlock = true
			break
		}
	}
	if !isBlock {
		body = "return " + body
	}
	lines := strings.Split(body, "\n")
	for i, l := range lines {
		if strings.TrimSpace(l) != "" {
			lines[i] = "\t" + l
		}
	}
	return strings.Join(lines, "\n")
}
