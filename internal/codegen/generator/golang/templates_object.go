package golang

const objectTmpl = `{{ define "ffiObject" }}
// FfiObject owns one reference to a native object. Calls hold a clone of the
// pointer; the reference is released once the object is destroyed and the last
// call has returned.
type FfiObject struct {
	pointer       unsafe.Pointer
	callCounter   atomic.Int64
	cloneFunction func(unsafe.Pointer, *C.RustCallStatus) unsafe.Pointer
	freeFunction  func(unsafe.Pointer, *C.RustCallStatus)
	destroyed     atomic.Bool
}

func newFfiObject(
	pointer unsafe.Pointer,
	cloneFunction func(unsafe.Pointer, *C.RustCallStatus) unsafe.Pointer,
	freeFunction func(unsafe.Pointer, *C.RustCallStatus),
) FfiObject {
	return FfiObject{
		pointer:       pointer,
		cloneFunction: cloneFunction,
		freeFunction:  freeFunction,
	}
}

func (ffiObject *FfiObject) incrementPointer(debugName string) unsafe.Pointer {
	for {
		counter := ffiObject.callCounter.Load()
		if counter <= -1 {
			panic(fmt.Errorf("%v object has already been destroyed", debugName))
		}
		if counter == math.MaxInt64 {
			panic(fmt.Errorf("%v object call counter would overflow", debugName))
		}
		if ffiObject.callCounter.CompareAndSwap(counter, counter+1) {
			break
		}
	}

	return rustCall(func(status *C.RustCallStatus) unsafe.Pointer {
		return ffiObject.cloneFunction(ffiObject.pointer, status)
	})
}

func (ffiObject *FfiObject) decrementPointer() {
	if ffiObject.callCounter.Add(-1) == -1 {
		ffiObject.freeRustArcPtr()
	}
}

func (ffiObject *FfiObject) destroy() {
	if ffiObject.destroyed.CompareAndSwap(false, true) {
		if ffiObject.callCounter.Add(-1) == -1 {
			ffiObject.freeRustArcPtr()
		}
	}
}

func (ffiObject *FfiObject) freeRustArcPtr() {
	rustCall(func(status *C.RustCallStatus) int32 {
		ffiObject.freeFunction(ffiObject.pointer, status)
		return 0
	})
}
{{ end }}

{{ define "object" }}
{{- addImport "runtime" }}{{ addImport "sync/atomic" -}}
{{- if includeOnce "FfiObject" }}{{ template "ffiObject" }}{{ end }}
{{- $def := .Def }}{{ $t := $def.AsType }}{{ $cn := className $def.Name }}{{ $impl := .Impl }}
{{ docstring $def.Docstring 0 }}type {{ .Iface }} interface {
{{- range $def.Methods }}
{{ docstring .Docstring 1 }}	{{ fnName .Name }}({{ argsDecl .Arguments }}) {{ returnDecl .Callable }}
{{- end }}
}

{{ docstring $def.Docstring 0 }}type {{ $impl }} struct {
	ffiObject FfiObject
}
{{- with $def.PrimaryConstructor }}

{{ docstring .Docstring 0 }}func New{{ $cn }}({{ argsDecl .Arguments }}) {{ returnDecl .Callable }} {
{{- template "callBody" (callView .Callable .FfiFunc "") }}
}
{{- end }}
{{- range $def.AlternateConstructors }}

{{ docstring .Docstring 0 }}func {{ $cn }}{{ fnName .Name }}({{ argsDecl .Arguments }}) {{ returnDecl .Callable }} {
{{- template "callBody" (callView .Callable .FfiFunc "") }}
}
{{- end }}
{{- range $def.Methods }}

{{ docstring .Docstring 0 }}func (_self *{{ $impl }}) {{ fnName .Name }}({{ argsDecl .Arguments }}) {{ returnDecl .Callable }} {
{{- template "callBody" (callView .Callable .FfiFunc (print "*" $impl)) }}
}
{{- end }}
{{- with $def.Display }}

func (_self *{{ $impl }}) String() string {
{{- template "callBody" (callView .Callable .FfiFunc (print "*" $impl)) }}
}
{{- end }}
{{- if .IsError }}

func (err *{{ $impl }}) AsError() error {
	if err == nil {
		return nil
	}
	return err
}

func (err *{{ $impl }}) Error() string {
{{- if $def.Display }}
	return err.String()
{{- else }}
	return "{{ $cn }}"
{{- end }}
}
{{- end }}

func (object *{{ $impl }}) Destroy() {
	runtime.SetFinalizer(object, nil)
	object.ffiObject.destroy()
}

{{- if $def.HasCallbackInterface }}

type {{ converter $t }} struct {
	handleMap *concurrentHandleMap[{{ .Label }}]
}

var {{ instance $t }} = {{ converter $t }}{
	handleMap: newConcurrentHandleMap[{{ .Label }}](),
}
{{- else }}

type {{ converter $t }} struct{}

var {{ instance $t }} = {{ converter $t }}{}
{{- end }}

func (c {{ converter $t }}) Lift(pointer unsafe.Pointer) {{ .Label }} {
	result := &{{ $impl }}{
		newFfiObject(
			pointer,
			func(pointer unsafe.Pointer, status *C.RustCallStatus) unsafe.Pointer {
				return C.{{ $def.FfiClone.Name }}(pointer, status)
			},
			func(pointer unsafe.Pointer, status *C.RustCallStatus) {
				C.{{ $def.FfiFree.Name }}(pointer, status)
			},
		),
	}
	runtime.SetFinalizer(result, (*{{ $impl }}).Destroy)
	return result
}

func (c {{ converter $t }}) Read(reader io.Reader) {{ .Label }} {
	return c.Lift(unsafe.Pointer(uintptr(readUint64(reader))))
}

func (c {{ converter $t }}) Lower(value {{ .Label }}) unsafe.Pointer {
{{- if $def.HasCallbackInterface }}
	if val, ok := value.(*{{ $impl }}); ok {
		pointer := val.ffiObject.incrementPointer("{{ .Label }}")
		defer val.ffiObject.decrementPointer()
		return pointer
	}
	return unsafe.Pointer(uintptr(c.handleMap.insert(value)))
{{- else }}
	pointer := value.ffiObject.incrementPointer("{{ .Label }}")
	defer value.ffiObject.decrementPointer()
	return pointer
{{- end }}
}

func (c {{ converter $t }}) Write(writer io.Writer, value {{ .Label }}) {
	writeUint64(writer, uint64(uintptr(c.Lower(value))))
}

type {{ destroyer $t }} struct{}

func (_ {{ destroyer $t }}) Destroy(value {{ .Label }}) {
{{- if $def.HasCallbackInterface }}
	if val, ok := value.(*{{ $impl }}); ok {
		val.Destroy()
	}
{{- else }}
	value.Destroy()
{{- end }}
}
{{- with $def.VTable }}
{{ template "vtable" (vtableView . $.Label true $t) }}
{{- end }}
{{ end }}`
