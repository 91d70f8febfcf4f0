package golang

const primitiveTmpl = `{{ define "numberConverter" }}
{{- $label := label . }}{{ $ctype := cgoType (ffiOf .) -}}
type {{ converter . }} struct{}

var {{ instance . }} = {{ converter . }}{}

func ({{ converter . }}) Lower(value {{ $label }}) C.{{ $ctype }} {
	return C.{{ $ctype }}(value)
}

func ({{ converter . }}) Write(writer io.Writer, value {{ $label }}) {
	write{{ canonical . }}(writer, value)
}

func ({{ converter . }}) Lift(value C.{{ $ctype }}) {{ $label }} {
	return {{ $label }}(value)
}

func ({{ converter . }}) Read(reader io.Reader) {{ $label }} {
	return read{{ canonical . }}(reader)
}

type {{ destroyer . }} struct{}

func ({{ destroyer . }}) Destroy(_ {{ $label }}) {}
{{ end }}

{{ define "boolConverter" -}}
type {{ converter . }} struct{}

var {{ instance . }} = {{ converter . }}{}

func ({{ converter . }}) Lower(value bool) C.int8_t {
	if value {
		return C.int8_t(1)
	}
	return C.int8_t(0)
}

func ({{ converter . }}) Write(writer io.Writer, value bool) {
	if value {
		writeInt8(writer, 1)
	} else {
		writeInt8(writer, 0)
	}
}

func ({{ converter . }}) Lift(value C.int8_t) bool {
	return value != 0
}

func ({{ converter . }}) Read(reader io.Reader) bool {
	return readInt8(reader) != 0
}

type {{ destroyer . }} struct{}

func ({{ destroyer . }}) Destroy(_ bool) {}
{{ end }}

{{ define "stringConverter" -}}
type {{ converter . }} struct{}

var {{ instance . }} = {{ converter . }}{}

func ({{ converter . }}) Lift(rb RustBufferI) string {
	defer rb.Free()
	reader := rb.AsReader()
	b, err := io.ReadAll(reader)
	if err != nil {
		panic(fmt.Errorf("reading reader: %w", err))
	}
	return string(b)
}

func ({{ converter . }}) Read(reader io.Reader) string {
	length := readInt32(reader)
	buffer := make([]byte, length)
	readLength, err := io.ReadFull(reader, buffer)
	if err != nil && err != io.EOF {
		panic(err)
	}
	if readLength != int(length) {
		panic(fmt.Errorf("bad read length when reading string, expected %d, read %d", length, readLength))
	}
	return string(buffer)
}

func ({{ converter . }}) Lower(value string) C.RustBuffer {
	return stringToRustBuffer(value)
}

func ({{ converter . }}) Write(writer io.Writer, value string) {
	if len(value) > math.MaxInt32 {
		panic("String is too large to fit into Int32")
	}

	writeInt32(writer, int32(len(value)))
	writeLength, err := io.WriteString(writer, value)
	if err != nil {
		panic(err)
	}
	if writeLength != len(value) {
		panic(fmt.Errorf("bad write length when writing string, expected %d, written %d", len(value), writeLength))
	}
}

type {{ destroyer . }} struct{}

func ({{ destroyer . }}) Destroy(_ string) {}
{{ end }}

{{ define "bytesConverter" -}}
type {{ converter . }} struct{}

var {{ instance . }} = {{ converter . }}{}

func (c {{ converter . }}) Lower(value []byte) C.RustBuffer {
	return LowerIntoRustBuffer[[]byte](c, value)
}

func (c {{ converter . }}) Write(writer io.Writer, value []byte) {
	if len(value) > math.MaxInt32 {
		panic("[]byte is too large to fit into Int32")
	}

	writeInt32(writer, int32(len(value)))
	writeLength, err := writer.Write(value)
	if err != nil {
		panic(err)
	}
	if writeLength != len(value) {
		panic(fmt.Errorf("bad write length when writing []byte, expected %d, written %d", len(value), writeLength))
	}
}

func (c {{ converter . }}) Lift(rb RustBufferI) []byte {
	return LiftFromRustBuffer[[]byte](c, rb)
}

func (c {{ converter . }}) Read(reader io.Reader) []byte {
	length := readInt32(reader)
	buffer := make([]byte, length)
	readLength, err := io.ReadFull(reader, buffer)
	if err != nil && err != io.EOF {
		panic(err)
	}
	if readLength != int(length) {
		panic(fmt.Errorf("bad read length when reading []byte, expected %d, read %d", length, readLength))
	}
	return buffer
}

type {{ destroyer . }} struct{}

func ({{ destroyer . }}) Destroy(_ []byte) {}
{{ end }}

{{ define "durationConverter" }}
{{- addImport "time" -}}
type {{ converter . }} struct{}

var {{ instance . }} = {{ converter . }}{}

func (c {{ converter . }}) Lift(rb RustBufferI) time.Duration {
	return LiftFromRustBuffer[time.Duration](c, rb)
}

func (c {{ converter . }}) Read(reader io.Reader) time.Duration {
	sec := readUint64(reader)
	nsec := readUint32(reader)
	return time.Duration(sec*1_000_000_000 + uint64(nsec))
}

func (c {{ converter . }}) Lower(value time.Duration) C.RustBuffer {
	return LowerIntoRustBuffer[time.Duration](c, value)
}

func (c {{ converter . }}) Write(writer io.Writer, value time.Duration) {
	if value.Nanoseconds() < 0 {
		// Durations are unsigned on the native side.
		panic("negative duration is not allowed")
	}

	writeUint64(writer, uint64(value)/1_000_000_000)
	writeUint32(writer, uint32(uint64(value)%1_000_000_000))
}

type {{ destroyer . }} struct{}

func ({{ destroyer . }}) Destroy(_ time.Duration) {}
{{ end }}

{{ define "timestampConverter" }}
{{- addImport "time" -}}
type {{ converter . }} struct{}

var {{ instance . }} = {{ converter . }}{}

func (c {{ converter . }}) Lift(rb RustBufferI) time.Time {
	return LiftFromRustBuffer[time.Time](c, rb)
}

func (c {{ converter . }}) Read(reader io.Reader) time.Time {
	sec := readInt64(reader)
	nsec := readUint32(reader)

	var sign int64 = 1
	if sec < 0 {
		sign = -1
	}
	return time.Unix(sec, int64(nsec)*sign)
}

func (c {{ converter . }}) Lower(value time.Time) C.RustBuffer {
	return LowerIntoRustBuffer[time.Time](c, value)
}

func (c {{ converter . }}) Write(writer io.Writer, value time.Time) {
	sec := value.Unix()
	nsec := uint32(value.Nanosecond())
	// Negative timestamps count nanoseconds away from the epoch.
	if sec < 0 && nsec > 0 {
		nsec = 1_000_000_000 - nsec
		sec++
	}

	writeInt64(writer, sec)
	writeUint32(writer, nsec)
}

type {{ destroyer . }} struct{}

func ({{ destroyer . }}) Destroy(_ time.Time) {}
{{ end }}`

const compoundTmpl = `{{ define "optionalConverter" }}
{{- $label := label . -}}
type {{ converter . }} struct{}

var {{ instance . }} = {{ converter . }}{}

func (c {{ converter . }}) Lift(rb RustBufferI) {{ $label }} {
	return LiftFromRustBuffer[{{ $label }}](c, rb)
}

func (_ {{ converter . }}) Read(reader io.Reader) {{ $label }} {
	if readInt8(reader) == 0 {
		return nil
	}
	temp := {{ read .Inner }}(reader)
	return &temp
}

func (c {{ converter . }}) Lower(value {{ $label }}) C.RustBuffer {
	return LowerIntoRustBuffer[{{ $label }}](c, value)
}

func (_ {{ converter . }}) Write(writer io.Writer, value {{ $label }}) {
	if value == nil {
		writeInt8(writer, 0)
	} else {
		writeInt8(writer, 1)
		{{ write .Inner }}(writer, *value)
	}
}

type {{ destroyer . }} struct{}

func (_ {{ destroyer . }}) Destroy(value {{ $label }}) {
	if value != nil {
		{{ destroy .Inner }}(*value)
	}
}
{{ end }}

{{ define "sequenceConverter" }}
{{- $label := label . -}}
type {{ converter . }} struct{}

var {{ instance . }} = {{ converter . }}{}

func (c {{ converter . }}) Lift(rb RustBufferI) {{ $label }} {
	return LiftFromRustBuffer[{{ $label }}](c, rb)
}

func (c {{ converter . }}) Read(reader io.Reader) {{ $label }} {
	length := readInt32(reader)
	if length == 0 {
		return nil
	}
	result := make({{ $label }}, 0, length)
	for i := int32(0); i < length; i++ {
		result = append(result, {{ read .Inner }}(reader))
	}
	return result
}

func (c {{ converter . }}) Lower(value {{ $label }}) C.RustBuffer {
	return LowerIntoRustBuffer[{{ $label }}](c, value)
}

func (c {{ converter . }}) Write(writer io.Writer, value {{ $label }}) {
	if len(value) > math.MaxInt32 {
		panic("{{ $label }} is too large to fit into Int32")
	}

	writeInt32(writer, int32(len(value)))
	for _, item := range value {
		{{ write .Inner }}(writer, item)
	}
}

type {{ destroyer . }} struct{}

func ({{ destroyer . }}) Destroy(sequence {{ $label }}) {
	for _, value := range sequence {
		{{ destroy .Inner }}(value)
	}
}
{{ end }}

{{ define "mapConverter" }}
{{- $label := label . -}}
type {{ converter . }} struct{}

var {{ instance . }} = {{ converter . }}{}

func (c {{ converter . }}) Lift(rb RustBufferI) {{ $label }} {
	return LiftFromRustBuffer[{{ $label }}](c, rb)
}

func (_ {{ converter . }}) Read(reader io.Reader) {{ $label }} {
	result := make({{ $label }})
	length := readInt32(reader)
	for i := int32(0); i < length; i++ {
		key := {{ read .Key }}(reader)
		value := {{ read .Value }}(reader)
		result[key] = value
	}
	return result
}

func (c {{ converter . }}) Lower(value {{ $label }}) C.RustBuffer {
	return LowerIntoRustBuffer[{{ $label }}](c, value)
}

func (_ {{ converter . }}) Write(writer io.Writer, mapValue {{ $label }}) {
	if len(mapValue) > math.MaxInt32 {
		panic("{{ $label }} is too large to fit into Int32")
	}

	writeInt32(writer, int32(len(mapValue)))
	for key, value := range mapValue {
		{{ write .Key }}(writer, key)
		{{ write .Value }}(writer, value)
	}
}

type {{ destroyer . }} struct{}

func (_ {{ destroyer . }}) Destroy(mapValue {{ $label }}) {
	for key, value := range mapValue {
		{{ destroy .Key }}(key)
		{{ destroy .Value }}(value)
	}
}
{{ end }}`

const recordTmpl = `{{ define "record" }}
{{- $t := .AsType }}{{ $cn := label $t -}}
{{ docstring .Docstring 0 }}type {{ $cn }} struct {
{{- range .Fields }}
{{ docstring .Docstring 1 }}
{{- if .Default }}	// Defaults to {{ literal .Type .Default }}.
{{ end }}	{{ fieldName .Name }} {{ label .Type }}
{{- end }}
}

func (r *{{ $cn }}) Destroy() {
{{- range .Fields }}
	{{ destroy .Type }}(r.{{ fieldName .Name }})
{{- end }}
}

type {{ converter $t }} struct{}

var {{ instance $t }} = {{ converter $t }}{}

func (c {{ converter $t }}) Lift(rb RustBufferI) {{ $cn }} {
	return LiftFromRustBuffer[{{ $cn }}](c, rb)
}

func (c {{ converter $t }}) Read(reader io.Reader) {{ $cn }} {
	return {{ $cn }}{
{{- range .Fields }}
		{{ read .Type }}(reader),
{{- end }}
	}
}

func (c {{ converter $t }}) Lower(value {{ $cn }}) C.RustBuffer {
	return LowerIntoRustBuffer[{{ $cn }}](c, value)
}

func (c {{ converter $t }}) Write(writer io.Writer, value {{ $cn }}) {
{{- range .Fields }}
	{{ write .Type }}(writer, value.{{ fieldName .Name }})
{{- end }}
}

type {{ destroyer $t }} struct{}

func (_ {{ destroyer $t }}) Destroy(value {{ $cn }}) {
	value.Destroy()
}
{{ end }}`

const enumTmpl = `{{ define "flatEnum" }}
{{- $t := .AsType }}{{ $cn := label $t -}}
{{ docstring .Docstring 0 }}type {{ $cn }} uint

const (
{{- range $i, $v := .Variants }}
{{ docstring $v.Docstring 1 }}	{{ $cn }}{{ variant $v.Name }} {{ $cn }} = {{ inc $i }}
{{- end }}
)

type {{ converter $t }} struct{}

var {{ instance $t }} = {{ converter $t }}{}

func (c {{ converter $t }}) Lift(rb RustBufferI) {{ $cn }} {
	return LiftFromRustBuffer[{{ $cn }}](c, rb)
}

func (c {{ converter $t }}) Lower(value {{ $cn }}) C.RustBuffer {
	return LowerIntoRustBuffer[{{ $cn }}](c, value)
}

func ({{ converter $t }}) Read(reader io.Reader) {{ $cn }} {
	id := readInt32(reader)
	return {{ $cn }}(id)
}

func ({{ converter $t }}) Write(writer io.Writer, value {{ $cn }}) {
	writeInt32(writer, int32(value))
}

type {{ destroyer $t }} struct{}

func (_ {{ destroyer $t }}) Destroy(_ {{ $cn }}) {}
{{ end }}

{{ define "enum" }}
{{- $t := .AsType }}{{ $cn := label $t -}}
{{ docstring .Docstring 0 }}type {{ $cn }} interface {
	Destroy()
}
{{- range .Variants }}
{{- $vn := print $cn (variant .Name) }}

{{ docstring .Docstring 0 }}type {{ $vn }} struct {
{{- range $i, $f := .Fields }}
	{{ fieldName (orPosField $f.Name $i) }} {{ label $f.Type }}
{{- end }}
}

func (e {{ $vn }}) Destroy() {
{{- range $i, $f := .Fields }}
	{{ destroy $f.Type }}(e.{{ fieldName (orPosField $f.Name $i) }})
{{- end }}
}
{{- end }}

type {{ converter $t }} struct{}

var {{ instance $t }} = {{ converter $t }}{}

func (c {{ converter $t }}) Lift(rb RustBufferI) {{ $cn }} {
	return LiftFromRustBuffer[{{ $cn }}](c, rb)
}

func (c {{ converter $t }}) Lower(value {{ $cn }}) C.RustBuffer {
	return LowerIntoRustBuffer[{{ $cn }}](c, value)
}

func ({{ converter $t }}) Read(reader io.Reader) {{ $cn }} {
	id := readInt32(reader)
	switch id {
{{- range $i, $v := .Variants }}
	case {{ inc $i }}:
		return {{ $cn }}{{ variant $v.Name }}{
{{- range $v.Fields }}
			{{ read .Type }}(reader),
{{- end }}
		}
{{- end }}
	default:
		panic(fmt.Sprintf("invalid enum value %v in {{ converter $t }}.Read()", id))
	}
}

func ({{ converter $t }}) Write(writer io.Writer, value {{ $cn }}) {
	switch variantValue := value.(type) {
{{- range $i, $v := .Variants }}
	case {{ $cn }}{{ variant $v.Name }}:
		writeInt32(writer, {{ inc $i }})
{{- range $j, $f := $v.Fields }}
		{{ write $f.Type }}(writer, variantValue.{{ fieldName (orPosField $f.Name $j) }})
{{- end }}
{{- end }}
	default:
		_ = variantValue
		panic(fmt.Sprintf("invalid enum value %v in {{ converter $t }}.Write", value))
	}
}

type {{ destroyer $t }} struct{}

func (_ {{ destroyer $t }}) Destroy(value {{ $cn }}) {
	value.Destroy()
}
{{ end }}`

const errorTmpl = `{{ define "error" }}
{{- $def := .Def }}{{ $flat := .Flat }}{{ $t := $def.AsType }}{{ $cn := className $def.Name -}}
{{ docstring $def.Docstring 0 }}type {{ $cn }} struct {
	err error
}

// AsError returns nil for a nil *{{ $cn }} instead of a non-nil error.
func (err *{{ $cn }}) AsError() error {
	if err == nil {
		return nil
	}
	return err
}

func (err {{ $cn }}) Error() string {
	return fmt.Sprintf("{{ $cn }}: %s", err.err.Error())
}

func (err {{ $cn }}) Unwrap() error {
	return err.err
}

// Err{{ $cn }}* match variants with errors.Is.
{{- range $def.Variants }}
var Err{{ $cn }}{{ variant .Name }} = fmt.Errorf("{{ $cn }}{{ variant .Name }}")
{{- end }}
{{- range $def.Variants }}
{{- $vn := print $cn (variant .Name) }}

{{ docstring .Docstring 0 }}type {{ $vn }} struct {
{{- if $flat }}
	message string
{{- else }}
{{- range $i, $f := .Fields }}
	{{ errorField (orPosField $f.Name $i) }} {{ label $f.Type }}
{{- end }}
{{- end }}
}

func New{{ $vn }}(
{{- if not $flat }}
{{- range $i, $f := .Fields }}
	{{ varName (orPosVar $f.Name $i) }} {{ label $f.Type }},
{{- end }}
{{- end }}
) *{{ $cn }} {
	return &{{ $cn }}{err: &{{ $vn }}{
{{- if not $flat }}
{{- range $i, $f := .Fields }}
		{{ errorField (orPosField $f.Name $i) }}: {{ varName (orPosVar $f.Name $i) }},
{{- end }}
{{- end }}
	}}
}

func (e {{ $vn }}) destroy() {
{{- if not $flat }}
{{- range $i, $f := .Fields }}
	{{ destroy $f.Type }}(e.{{ errorField (orPosField $f.Name $i) }})
{{- end }}
{{- end }}
}

func (err {{ $vn }}) Error() string {
{{- if $flat }}
	return fmt.Sprintf("{{ variant .Name }}: %s", err.message)
{{- else }}
	return fmt.Sprint("{{ variant .Name }}"
{{- range $i, $f := .Fields }}, {{ if $i }}", ", {{ else }}": ", {{ end }}"{{ errorField (orPosField $f.Name $i) }}=", err.{{ errorField (orPosField $f.Name $i) }}{{ end }})
{{- end }}
}

func (self {{ $vn }}) Is(target error) bool {
	return target == Err{{ $vn }}
}
{{- end }}

type {{ converter $t }} struct{}

var {{ instance $t }} = {{ converter $t }}{}

func (c {{ converter $t }}) Lift(eb RustBufferI) *{{ $cn }} {
	return LiftFromRustBuffer[*{{ $cn }}](c, eb)
}

func (c {{ converter $t }}) Lower(value *{{ $cn }}) C.RustBuffer {
	return LowerIntoRustBuffer[*{{ $cn }}](c, value)
}

func (c {{ converter $t }}) Read(reader io.Reader) *{{ $cn }} {
	errorID := readUint32(reader)
{{- if $flat }}

	message := FfiConverterStringINSTANCE.Read(reader)
{{- end }}
	switch errorID {
{{- range $i, $v := $def.Variants }}
	case {{ inc $i }}:
{{- if $flat }}
		return &{{ $cn }}{&{{ $cn }}{{ variant $v.Name }}{message}}
{{- else }}
		return &{{ $cn }}{&{{ $cn }}{{ variant $v.Name }}{
{{- range $j, $f := $v.Fields }}
			{{ errorField (orPosField $f.Name $j) }}: {{ read $f.Type }}(reader),
{{- end }}
		}}
{{- end }}
{{- end }}
	default:
		panic(fmt.Sprintf("unknown error code %d in {{ converter $t }}.Read()", errorID))
	}
}

func (c {{ converter $t }}) Write(writer io.Writer, value *{{ $cn }}) {
	switch variantValue := value.err.(type) {
{{- range $i, $v := $def.Variants }}
	case *{{ $cn }}{{ variant $v.Name }}:
		writeInt32(writer, {{ inc $i }})
{{- if not $flat }}
{{- range $j, $f := $v.Fields }}
		{{ write $f.Type }}(writer, variantValue.{{ errorField (orPosField $f.Name $j) }})
{{- end }}
{{- end }}
{{- end }}
	default:
		_ = variantValue
		panic(fmt.Sprintf("invalid error value %v in {{ converter $t }}.Write", value))
	}
}

type {{ destroyer $t }} struct{}

func (_ {{ destroyer $t }}) Destroy(value *{{ $cn }}) {
	switch variantValue := value.err.(type) {
{{- range $def.Variants }}
	case *{{ $cn }}{{ variant .Name }}:
		variantValue.destroy()
{{- end }}
	default:
		_ = variantValue
		panic(fmt.Sprintf("invalid error value %v in {{ destroyer $t }}.Destroy", value))
	}
}
{{ end }}`

const customTmpl = `{{ define "customType" }}
{{- $t := .Def.AsType }}{{ $name := className .Def.Name }}{{ $builtin := .Def.Builtin -}}
{{- with .Config }}
{{- range .Imports }}{{ addImport . }}{{ end -}}
type {{ $name }} = {{ if .TypeName }}{{ .TypeName }}{{ else }}{{ label $builtin }}{{ end }}

type {{ converter $t }} struct{}

var {{ instance $t }} = {{ converter $t }}{}

func ({{ converter $t }}) Lift(value {{ ffiTypeName (ffiOf $builtin) }}) {{ $name }} {
	builtinValue := {{ lift $builtin }}(value)
{{ intoCustom .IntoCustom "builtinValue" }}
}

func ({{ converter $t }}) Read(reader io.Reader) {{ $name }} {
	builtinValue := {{ read $builtin }}(reader)
{{ intoCustom .IntoCustom "builtinValue" }}
}

func ({{ converter $t }}) Lower(value {{ $name }}) {{ ffiTypeNameCgoSafe (ffiOf $builtin) }} {
	builtinValue := {{ placeholder .FromCustom "value" }}
	return {{ lower $builtin }}(builtinValue)
}

func ({{ converter $t }}) Write(writer io.Writer, value {{ $name }}) {
	builtinValue := {{ placeholder .FromCustom "value" }}
	{{ write $builtin }}(writer, builtinValue)
}

type {{ destroyer $t }} struct{}

func (_ {{ destroyer $t }}) Destroy(value {{ $name }}) {
	builtinValue := {{ placeholder .FromCustom "value" }}
	{{ destroy $builtin }}(builtinValue)
}
{{- else -}}
type {{ $name }} = {{ label $builtin }}
type {{ converter $t }} = {{ converter $builtin }}
type {{ destroyer $t }} = {{ destroyer $builtin }}

var {{ instance $t }} = {{ converter $builtin }}{}
{{- end }}
{{ end }}

{{ define "externalType" }}
{{- addLocalImport .Namespace -}}
{{ end }}

{{ define "executor" -}}
type UniFfiForeignExecutor struct {
	priority int
}

type {{ converter . }} struct{}

var {{ instance . }} = {{ converter . }}{}

func ({{ converter . }}) Lower(value UniFfiForeignExecutor) C.uint64_t {
	return C.uint64_t(value.priority)
}

func ({{ converter . }}) Write(writer io.Writer, value UniFfiForeignExecutor) {
	writeUint64(writer, uint64(value.priority))
}

func ({{ converter . }}) Lift(value C.uint64_t) UniFfiForeignExecutor {
	return UniFfiForeignExecutor{priority: int(value)}
}

func ({{ converter . }}) Read(reader io.Reader) UniFfiForeignExecutor {
	return UniFfiForeignExecutor{priority: int(readUint64(reader))}
}

type {{ destroyer . }} struct{}

func ({{ destroyer . }}) Destroy(_ UniFfiForeignExecutor) {}

// The native side drives its own executor; nothing to register.
func uniffiInitForeignExecutor() {}
{{ end }}`
