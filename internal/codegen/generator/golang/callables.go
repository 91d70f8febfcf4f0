package golang

import (
	"fmt"
	"strings"

	"github.com/Alia5/uniffi-bindgen-go/internal/codegen/ci"
	"github.com/Alia5/uniffi-bindgen-go/internal/codegen/common"
)

// ArgsDecl renders a Go parameter list.
func (o *Oracle) ArgsDecl(args []ci.Argument) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		parts = append(parts, common.VarName(a.Name)+" "+o.Find(a.Type).TypeLabel())
	}
	return strings.Join(parts, ", ")
}

// ReturnTypeDecl renders the result list of a callable implemented natively.
// Thrown errors are returned as a plain error.
func (o *Oracle) ReturnTypeDecl(c ci.Callable) string {
	switch {
	case c.ReturnType != nil && c.ThrowsType != nil:
		return "(" + o.Find(c.ReturnType).TypeLabel() + ", error)"
	case c.ReturnType != nil:
		return o.Find(c.ReturnType).TypeLabel()
	case c.ThrowsType != nil:
		return "error"
	default:
		return ""
	}
}

// ReturnTypeDeclCb renders the result list of a callback interface method.
// Implementations return the concrete error so that it can be lowered.
func (o *Oracle) ReturnTypeDeclCb(c ci.Callable) string {
	switch {
	case c.ReturnType != nil && c.ThrowsType != nil:
		return "(" + o.Find(c.ReturnType).TypeLabel() + ", " + o.Find(c.ThrowsType).TypeLabel() + ")"
	case c.ReturnType != nil:
		return o.Find(c.ReturnType).TypeLabel()
	case c.ThrowsType != nil:
		return o.Find(c.ThrowsType).TypeLabel()
	default:
		return ""
	}
}

// ErrorStructName is the struct a thrown type is read into.
func (o *Oracle) ErrorStructName(t ci.Type) string {
	switch t := t.(type) {
	case ci.Enum:
		return common.ClassName(t.Name)
	case ci.Object:
		_, impl := ObjectNames(t.Name, t.Imp)
		return impl
	case ci.External:
		return t.Namespace + "." + common.ClassName(t.Name)
	default:
		panic(fmt.Sprintf("unreachable: %T cannot be thrown", t))
	}
}

// callView is the data of the native call body template.
type callView struct {
	Callable ci.Callable
	Ffi      ci.FfiFunction
	// Call is the native call expression. Synchronous calls pass _uniffiStatus.
	Call   string
	Future ci.RustFuture
	// FutureFfi is the Go type a completed future is read as.
	FutureFfi    string
	FutureBuffer bool
	// Self is the debug name passed to incrementPointer, empty for free
	// functions and constructors.
	Self string
}

func (r *TypeRenderer) callView(c ci.Callable, ffi ci.FfiFunction, self string) callView {
	var args []string
	if self != "" {
		args = append(args, "_pointer")
	}
	for _, a := range c.Arguments {
		args = append(args, r.oracle.LowerFnCall(a))
	}
	if !c.Async {
		args = append(args, "_uniffiStatus")
	}
	v := callView{
		Callable: c,
		Ffi:      ffi,
		Call:     "C." + ffi.Name + "(" + strings.Join(args, ", ") + ")",
		Self:     self,
	}
	if c.Async {
		var ret ci.FfiType
		if c.ReturnType != nil {
			ret = ci.FfiTypeOf(c.ReturnType)
		}
		v.Future = r.ci.RustFutureFns(ret)
		switch ret.(type) {
		case nil:
			v.FutureFfi = "struct{}"
		case ci.FfiRustBuffer:
			v.FutureFfi = "RustBufferI"
			v.FutureBuffer = true
		default:
			v.FutureFfi = FfiTypeName(ret)
		}
	}
	return v
}
