package golang

const callableTmpl = `{{ define "callBody" }}
{{- if .Self }}
	_pointer := _self.ffiObject.incrementPointer("{{ .Self }}")
	defer _self.ffiObject.decrementPointer()
{{- end }}
{{- if .Callable.Async }}{{ template "asyncCallBody" . }}{{ else }}{{ template "syncCallBody" . }}{{ end }}
{{- end }}

{{ define "syncCallBody" }}
{{- $c := .Callable }}{{ $f := .Ffi }}
{{- if $c.ThrowsType }}
{{- if $c.ReturnType }}
	_uniffiRV, _uniffiErr := rustCallWithError[{{ errStruct $c.ThrowsType }}]({{ instance $c.ThrowsType }}, func(_uniffiStatus *C.RustCallStatus) {{ ffiTypeNameCgoSafe $f.ReturnType }} {
		return {{ .Call }}
	})
	if _uniffiErr != nil {
		return {{ defaultValue $c.ReturnType }}, _uniffiErr
	}
	return {{ liftFromCgo $c.ReturnType "_uniffiRV" }}, nil
{{- else }}
	_, _uniffiErr := rustCallWithError[{{ errStruct $c.ThrowsType }}]({{ instance $c.ThrowsType }}, func(_uniffiStatus *C.RustCallStatus) bool {
		{{ .Call }}
		return false
	})
	return _uniffiErr.AsError()
{{- end }}
{{- else if $c.ReturnType }}
	_uniffiRV := rustCall(func(_uniffiStatus *C.RustCallStatus) {{ ffiTypeNameCgoSafe $f.ReturnType }} {
		return {{ .Call }}
	})
	return {{ liftFromCgo $c.ReturnType "_uniffiRV" }}
{{- else }}
	rustCall(func(_uniffiStatus *C.RustCallStatus) bool {
		{{ .Call }}
		return false
	})
{{- end }}
{{- end }}

{{ define "asyncCallBody" }}
{{- $c := .Callable }}{{ $r := .Future }}
	{{ if $c.ReturnType }}res{{ else }}_{{ end }}, {{ if $c.ThrowsType }}err{{ else }}_{{ end }}
	{{- if or $c.ReturnType $c.ThrowsType }} :={{ else }} ={{ end }} uniffiRustCallAsync[{{ if $c.ThrowsType }}{{ errStruct $c.ThrowsType }}{{ else }}error{{ end }}](
		{{ if $c.ThrowsType }}{{ instance $c.ThrowsType }}{{ else }}nil{{ end }},
		// completeFn
		func(handle C.uint64_t, status *C.RustCallStatus) {{ .FutureFfi }} {
{{- if not $c.ReturnType }}
			C.{{ $r.Complete.Name }}(handle, status)
			return struct{}{}
{{- else if .FutureBuffer }}
			return GoRustBuffer{inner: C.{{ $r.Complete.Name }}(handle, status)}
{{- else }}
			return C.{{ $r.Complete.Name }}(handle, status)
{{- end }}
		},
		// liftFn
{{- if $c.ReturnType }}
		func(ffi {{ .FutureFfi }}) {{ label $c.ReturnType }} {
			return {{ lift $c.ReturnType }}(ffi)
		},
{{- else }}
		func(_ struct{}) struct{} { return struct{}{} },
{{- end }}
		{{ .Call }},
		// pollFn
		func(handle C.uint64_t, continuation C.UniffiRustFutureContinuationCallback, data C.uint64_t) {
			C.{{ $r.Poll.Name }}(handle, continuation, data)
		},
		// freeFn
		func(handle C.uint64_t) {
			C.{{ $r.Free.Name }}(handle)
		},
	)
{{- if and $c.ReturnType $c.ThrowsType }}
	return res, err.AsError()
{{- else if $c.ReturnType }}
	return res
{{- else if $c.ThrowsType }}
	return err.AsError()
{{- end }}
{{- end }}

{{ define "topLevelFunction" }}
{{ docstring .Docstring 0 }}func {{ fnName .Name }}({{ argsDecl .Arguments }}) {{ returnDecl .Callable }} {
{{- template "callBody" (callView .Callable .FfiFunc "") }}
}
{{ end }}`
