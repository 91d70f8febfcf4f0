package golang

import (
	"github.com/Alia5/uniffi-bindgen-go/internal/codegen/ci"
)

// Exported Go functions share one C symbol table with every other generated
// package linked into the process, so all of them carry a package prefix.

// FutureContinuationName is the export the native library calls when a polled
// future can make progress.
func FutureContinuationName(pkg string) string {
	return pkg + "_uniffiFutureContinuationCallback"
}

// FreeGoroutineName is the export the native library calls to drop a foreign
// future it no longer waits on.
func FreeGoroutineName(pkg string) string {
	return pkg + "_uniffiFreeGorutine"
}

// CgoCallbackFnName is the export dispatching one vtable callback.
func CgoCallbackFnName(callback, modulePath string) string {
	return modulePath + "_cgo_dispatch" + FfiCallbackName(callback)
}

// CgoVTableFreeName is the export releasing a foreign implementation of iface.
func CgoVTableFreeName(iface, modulePath string) string {
	return modulePath + "_cgo_dispatchCallbackInterface" + iface + "Free"
}

// VTableSymbols lists the exports backing vt: one dispatcher per method followed
// by the free function.
func VTableSymbols(modulePath string, vt *ci.VTable) []string {
	out := make([]string, 0, len(vt.Methods)+1)
	for _, m := range vt.Methods {
		out = append(out, CgoCallbackFnName(m.Callback.Name, modulePath))
	}
	return append(out, CgoVTableFreeName(vt.Name, modulePath))
}

// ForeignFutureCompleteBridgeName is the C helper that invokes a completion
// callback pointer, which Go cannot call directly.
func ForeignFutureCompleteBridgeName(pkg string, ret ci.FfiType) string {
	return pkg + "_call" + FfiCallbackName(ci.ForeignFutureCompleteName(ret))
}

// FutureCallbackHandler names the Go function completing a foreign future that
// resolves to r.
func (o *Oracle) FutureCallbackHandler(r ci.AsyncResult) string {
	name := "uniffiFutureCallbackHandler"
	if r.ReturnType != nil {
		name += o.Find(r.ReturnType).CanonicalName()
	} else {
		name += "Void"
	}
	if r.ThrowsType != nil {
		name += o.Find(r.ThrowsType).CanonicalName()
	}
	return name
}
