package ci

import (
	"strconv"
	"strings"
)

// VTableMethod pairs a foreign-implementable method with the callback type the
// native side invokes it through.
type VTableMethod struct {
	Index    int
	Method   Method
	Callback FfiCallbackFunction
}

// VTable describes the table of function pointers registered with the native
// library for one foreign-implementable interface.
type VTable struct {
	Name       string
	ModulePath string
	Struct     FfiStructDef
	Methods    []VTableMethod
	Init       FfiFunction
}

const (
	CallbackInterfaceFreeName = "CallbackInterfaceFree"
	ForeignFutureFreeName     = "ForeignFutureFree"
	ForeignFutureName         = "ForeignFuture"
	ContinuationCallbackName  = "RustFutureContinuationCallback"
)

func newVTable(crate, name, modulePath string, methods []Method) *VTable {
	vt := &VTable{
		Name:       name,
		ModulePath: modulePath,
		Struct:     FfiStructDef{Name: "VTableCallbackInterface" + name},
	}
	for i, m := range methods {
		cb := callbackForMethod(name, i, m)
		vt.Methods = append(vt.Methods, VTableMethod{Index: i, Method: m, Callback: cb})
		vt.Struct.Fields = append(vt.Struct.Fields, FfiField{Name: m.Name, Type: FfiCallback{Name: cb.Name}})
	}
	vt.Struct.Fields = append(vt.Struct.Fields, FfiField{Name: "uniffiFree", Type: FfiCallback{Name: CallbackInterfaceFreeName}})
	vt.Init = FfiFunction{
		Name:      "uniffi_" + crate + "_fn_init_callback_vtable_" + strings.ToLower(name),
		Arguments: []FfiArgument{{Name: "vtable", Type: FfiReference{Inner: FfiStruct{Name: vt.Struct.Name}}}},
	}
	return vt
}

func callbackForMethod(iface string, index int, m Method) FfiCallbackFunction {
	cb := FfiCallbackFunction{
		Name:      "CallbackInterface" + iface + "Method" + strconv.Itoa(index),
		Arguments: []FfiArgument{{Name: "uniffiHandle", Type: FfiUInt64{}}},
	}
	for _, a := range m.Arguments {
		cb.Arguments = append(cb.Arguments, FfiArgument{Name: a.Name, Type: FfiTypeOf(a.Type)})
	}
	var ret FfiType
	if m.ReturnType != nil {
		ret = FfiTypeOf(m.ReturnType)
	}
	if m.Async {
		cb.Arguments = append(cb.Arguments,
			FfiArgument{Name: "uniffiFutureCallback", Type: FfiCallback{Name: ForeignFutureCompleteName(ret)}},
			FfiArgument{Name: "uniffiCallbackData", Type: FfiUInt64{}},
			FfiArgument{Name: "uniffiOutReturn", Type: FfiReference{Inner: FfiStruct{Name: ForeignFutureName}}},
		)
		return cb
	}
	if ret == nil {
		cb.Arguments = append(cb.Arguments, FfiArgument{Name: "uniffiOutReturn", Type: FfiVoidPointer{}})
	} else {
		cb.Arguments = append(cb.Arguments, FfiArgument{Name: "uniffiOutReturn", Type: FfiReference{Inner: ret}})
	}
	cb.HasRustCallStatusArg = true
	return cb
}

var futureSuffixCamel = map[string]string{
	"u8": "U8", "i8": "I8", "u16": "U16", "i16": "I16", "u32": "U32", "i32": "I32",
	"u64": "U64", "i64": "I64", "f32": "F32", "f64": "F64",
	"pointer": "Pointer", "rust_buffer": "RustBuffer", "void": "Void",
}

// ForeignFutureStructName names the result struct a foreign async callback
// completes with.
func ForeignFutureStructName(ret FfiType) string {
	return "ForeignFutureStruct" + futureSuffixCamel[FfiTypeSuffix(ret)]
}

// ForeignFutureCompleteName names the completion callback for a return shape.
func ForeignFutureCompleteName(ret FfiType) string {
	return "ForeignFutureComplete" + futureSuffixCamel[FfiTypeSuffix(ret)]
}
