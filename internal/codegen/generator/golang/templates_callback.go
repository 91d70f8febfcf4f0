package golang

const callbackTmpl = `{{ define "concurrentHandleMap" }}
{{- addImport "sync" }}
// concurrentHandleMap hands out the handles foreign implementations are known
// by on the native side. Handles are odd so that they never collide with native
// object pointers.
type concurrentHandleMap[T any] struct {
	handles       map[uint64]T
	currentHandle uint64
	lock          sync.RWMutex
}

func newConcurrentHandleMap[T any]() *concurrentHandleMap[T] {
	return &concurrentHandleMap[T]{
		handles:       map[uint64]T{},
		currentHandle: 1,
	}
}

func (cm *concurrentHandleMap[T]) insert(obj T) uint64 {
	cm.lock.Lock()
	defer cm.lock.Unlock()

	handle := cm.currentHandle
	cm.currentHandle = cm.currentHandle + 2
	cm.handles[handle] = obj
	return handle
}

func (cm *concurrentHandleMap[T]) remove(handle uint64) {
	cm.lock.Lock()
	defer cm.lock.Unlock()

	delete(cm.handles, handle)
}

func (cm *concurrentHandleMap[T]) tryGet(handle uint64) (T, bool) {
	cm.lock.RLock()
	defer cm.lock.RUnlock()

	val, ok := cm.handles[handle]
	return val, ok
}
{{ end }}

{{ define "callbackResults" }}
type uniffiCallbackResult C.int8_t

const (
	uniffiCallbackResultSuccess         uniffiCallbackResult = 0
	uniffiCallbackResultError           uniffiCallbackResult = 1
	uniffiCallbackUnexpectedResultError uniffiCallbackResult = 2
)
{{ end }}

{{ define "callbackInterface" }}
{{- $t := .AsType }}{{ $cn := label $t -}}
{{ docstring .Docstring 0 }}type {{ $cn }} interface {
{{- range .Methods }}
{{ docstring .Docstring 1 }}	{{ fnName .Name }}({{ argsDecl .Arguments }}) {{ returnDeclCb .Callable }}
{{- end }}
}

type {{ converter $t }} struct {
	handleMap *concurrentHandleMap[{{ $cn }}]
}

var {{ instance $t }} = {{ converter $t }}{
	handleMap: newConcurrentHandleMap[{{ $cn }}](),
}

func (c {{ converter $t }}) Lift(handle C.uint64_t) {{ $cn }} {
	val, ok := c.handleMap.tryGet(uint64(handle))
	if !ok {
		panic(fmt.Errorf("no callback in handle map: %d", handle))
	}
	return val
}

func (c {{ converter $t }}) Read(reader io.Reader) {{ $cn }} {
	return c.Lift(C.uint64_t(readUint64(reader)))
}

func (c {{ converter $t }}) Lower(value {{ $cn }}) C.uint64_t {
	return C.uint64_t(c.handleMap.insert(value))
}

func (c {{ converter $t }}) Write(writer io.Writer, value {{ $cn }}) {
	writeUint64(writer, uint64(c.Lower(value)))
}

type {{ destroyer $t }} struct{}

func ({{ destroyer $t }}) Destroy(_ {{ $cn }}) {}
{{ template "vtable" (vtableView .VTable $cn false $t) }}
{{ end }}

{{ define "vtable" }}
{{- if includeOnce "concurrentHandleMap" }}{{ template "concurrentHandleMap" }}{{ end }}
{{- if includeOnce "callbackResults" }}{{ template "callbackResults" }}{{ end }}
{{- $vt := .VTable }}{{ $view := . }}
{{- range $vt.Methods }}
{{- $m := .Method }}{{ $cb := .Callback }}{{ $fn := cgoCallbackFn $cb.Name $vt.ModulePath }}
{{- if $m.ThrowsType }}{{ addImport "errors" }}{{ end }}

//export {{ $fn }}
func {{ $fn }}({{ exportParams $cb }}) {
	handle := uint64(uniffiHandle)
	uniffiObj, ok := {{ $view.Instance }}.handleMap.tryGet(handle)
	if !ok {
		panic(fmt.Errorf("no callback in handle map: %d", handle))
	}
{{- if $m.Async }}
{{ template "asyncDispatch" (dict "Method" $m "View" $view) }}
{{- else }}
{{ template "syncDispatch" (dict "Method" $m "View" $view) }}
{{- end }}
}
{{- if and $m.Async (includeOnce (futureHandler (asyncResult $m.Callable))) }}
{{ template "foreignFutureHandler" $m.Callable }}
{{- end }}
{{- end }}

var {{ ffiStructName $vt.Struct.Name }}INSTANCE = C.{{ ffiStructName $vt.Struct.Name }}{
{{- range $vt.Methods }}
	{{ varName .Method.Name }}: (C.{{ ffiCallbackName .Callback.Name }})(C.{{ cgoCallbackFn .Callback.Name $vt.ModulePath }}),
{{- end }}
	uniffiFree: (C.UniffiCallbackInterfaceFree)(C.{{ vtableFree $vt.Name $vt.ModulePath }}),
}

//export {{ vtableFree $vt.Name $vt.ModulePath }}
func {{ vtableFree $vt.Name $vt.ModulePath }}(handle C.uint64_t) {
	{{ .Instance }}.handleMap.remove(uint64(handle))
}

func (c *{{ .Converter }}) register() {
	// The native side keeps the table for the lifetime of the process, so it
	// lives in C memory.
	vtable := (*C.{{ ffiStructName $vt.Struct.Name }})(C.malloc(C.size_t(unsafe.Sizeof(C.{{ ffiStructName $vt.Struct.Name }}{}))))
	*vtable = {{ ffiStructName $vt.Struct.Name }}INSTANCE
	C.{{ $vt.Init.Name }}(vtable)
}
{{ end }}

{{ define "syncDispatch" }}
{{- $m := .Method }}{{ $view := .View }}
	{{ if and $m.ReturnType $m.ThrowsType }}res, err := {{ else if $m.ReturnType }}res := {{ else if $m.ThrowsType }}err := {{ end -}}
	uniffiObj.{{ fnName $m.Name }}({{ liftArgs $m.Arguments }})
{{- if $m.ThrowsType }}

	if err != nil {
		var uniffiErr *{{ errStruct $m.ThrowsType }}
		if errors.As(err, &uniffiErr) {
			*callStatus = C.RustCallStatus{
				code:     C.int8_t(uniffiCallbackResultError),
				errorBuf: {{ lower $m.ThrowsType }}(uniffiErr),
			}
		} else {
			*callStatus = C.RustCallStatus{
				code: C.int8_t(uniffiCallbackUnexpectedResultError),
			}
		}
		return
	}
{{- end }}
{{- if $m.ReturnType }}

	*uniffiOutReturn = {{ lower $m.ReturnType }}(res)
{{- end }}
{{- end }}

{{ define "asyncDispatch" }}
{{- $m := .Method }}{{ $view := .View }}{{ $r := asyncResult $m.Callable }}
	result := make(chan {{ futureChanType $r }}, 1)
	cancel := make(chan struct{}, 1)
	guardHandle := cgo.NewHandle(cancel)
	*uniffiOutReturn = C.UniffiForeignFuture{
		handle: C.uint64_t(guardHandle),
		free:   C.UniffiForeignFutureFree(C.{{ freeGoroutine }}),
	}

	// Wait for completion or cancellation.
	go func() {
		select {
		case <-cancel:
		case res := <-result:
			{{ futureHandler $r }}(uniffiFutureCallback, uniffiCallbackData, res)
		}
	}()

	// Run the method on its own goroutine.
	go func() {
		asyncResult := &{{ futureChanType $r }}{}
{{- if and $m.ReturnType $m.ThrowsType }}
		val, err := uniffiObj.{{ fnName $m.Name }}({{ liftArgs $m.Arguments }})
		asyncResult.val = val
		asyncResult.err = err{{ if not $view.ObjectTrait }}.AsError(){{ end }}
{{- else if $m.ReturnType }}
		asyncResult.val = uniffiObj.{{ fnName $m.Name }}({{ liftArgs $m.Arguments }})
{{- else if $m.ThrowsType }}
		err := uniffiObj.{{ fnName $m.Name }}({{ liftArgs $m.Arguments }})
		asyncResult.err = err{{ if not $view.ObjectTrait }}.AsError(){{ end }}
{{- else }}
		uniffiObj.{{ fnName $m.Name }}({{ liftArgs $m.Arguments }})
{{- end }}
		result <- *asyncResult
	}()
{{- end }}

{{ define "foreignFutureHandler" }}
{{- $r := asyncResult . }}{{ $ret := retFfi . -}}
func {{ futureHandler $r }}(uniffiCallback C.{{ futureComplete $ret }}, callbackData C.uint64_t, result {{ futureChanType $r }}) {
	out := C.{{ futureStruct $ret }}{}
	err := result.err
	if err == nil {
{{- if .ReturnType }}
		out.returnValue = {{ lower .ReturnType }}(result.val)
{{- end }}
		out.callStatus = C.RustCallStatus{}
	} else {
{{- if .ThrowsType }}
		var uniffiErr *{{ errStruct .ThrowsType }}
		if errors.As(err, &uniffiErr) {
			out.callStatus = C.RustCallStatus{
				code:     C.int8_t(uniffiCallbackResultError),
				errorBuf: {{ lower .ThrowsType }}(uniffiErr),
			}
		} else {
			out.callStatus = C.RustCallStatus{
				code: C.int8_t(uniffiCallbackUnexpectedResultError),
			}
		}
{{- else }}
		out.callStatus = C.RustCallStatus{
			code: C.int8_t(uniffiCallbackUnexpectedResultError),
		}
{{- end }}
	}

	C.{{ completeBridge $ret }}(uniffiCallback, callbackData, out)
}
{{ end }}`
