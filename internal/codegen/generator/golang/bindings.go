package golang

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/cockroachdb/errors"

	"github.com/Alia5/uniffi-bindgen-go/internal/codegen/ci"
	"github.com/Alia5/uniffi-bindgen-go/internal/codegen/common"
	"github.com/Alia5/uniffi-bindgen-go/internal/codegen/config"
)

// Bindings is everything generated for one component interface.
type Bindings struct {
	// Wrapper is the cgo package source.
	Wrapper string
	// Header is the bridging header included by the wrapper.
	Header string
	// CFile holds C helpers the wrapper cannot express in Go.
	CFile             string
	Imports           []common.ImportRequirement
	InitializationFns []string
}

const wrapperTmpl = `// {{ .Generated }}

{{ docstring .Docstring 0 }}package {{ .Pkg }}

// #cgo CFLAGS: -I${SRCDIR}
// #cgo LDFLAGS: -l{{ .Cdylib }}
// #include "{{ .Header }}"
import "C"

import (
{{- range .Imports }}
	{{ .Render }}
{{- end }}
)

{{ .Body }}`

const headerTmpl = `/* {{ .Generated }} */

#include <stdbool.h>
#include <stdint.h>
#include <stdlib.h>

// RustBuffer, ForeignBytes and RustCallStatus are shared by every generated
// package linked into one binary, so they are declared exactly once.
#ifndef UNIFFI_SHARED_H
#define UNIFFI_SHARED_H

typedef struct RustBuffer {
	uint64_t capacity;
	uint64_t len;
	unsigned char *data;
} RustBuffer;

typedef struct ForeignBytes {
	int len;
	const unsigned char *data;
} ForeignBytes;

typedef struct RustCallStatus {
	int8_t code;
	RustBuffer errorBuf;
} RustCallStatus;

#endif // UNIFFI_SHARED_H
{{ range .Definitions }}
{{ cDeclaration . }}
{{- end }}
{{- if .Exports }}

// Implemented in Go.
{{- range .Exports }}
{{ . }};
{{- end }}
{{- end }}
{{- if .Bridges }}

// Implemented in {{ .CFile }}.
{{- range .Bridges }}
{{ .Prototype }};
{{- end }}
{{- end }}
`

const cFileTmpl = `/* {{ .Generated }} */

#include "{{ .Header }}"
{{- range .Bridges }}

{{ .Prototype }} {
	callback(callbackData, result);
}
{{- end }}
`

// bridge is a C function calling a function pointer on behalf of Go.
type bridge struct {
	Prototype string
}

type fileView struct {
	Generated   string
	Docstring   string
	Pkg         string
	Cdylib      string
	Header      string
	CFile       string
	Imports     []common.ImportRequirement
	Body        string
	Definitions []ci.FfiDefinition
	Exports     []string
	Bridges     []bridge
}

var fileTemplates = template.Must(template.New("files").Funcs(template.FuncMap{
	"docstring":    common.Docstring,
	"cDeclaration": cDeclaration,
}).Parse(`{{ define "wrapper" }}` + wrapperTmpl + `{{ end }}` +
	`{{ define "header" }}` + headerTmpl + `{{ end }}` +
	`{{ define "cfile" }}` + cFileTmpl + `{{ end }}`))

// GenerateBindings renders the wrapper, header and C file of c. Each call uses a
// fresh TypeRenderer.
func GenerateBindings(cfg *config.Config, c *ci.ComponentInterface) (Bindings, error) {
	if err := CheckClassNames(c); err != nil {
		return Bindings{}, err
	}
	r, err := NewTypeRenderer(cfg, c)
	if err != nil {
		return Bindings{}, err
	}
	body, err := r.Render()
	if err != nil {
		return Bindings{}, err
	}

	view := fileView{
		Generated:   common.GeneratedHeader(),
		Docstring:   c.Docstring,
		Pkg:         cfg.PackageName(),
		Cdylib:      cfg.CdylibName(),
		Header:      cfg.HeaderFilename(),
		CFile:       cfg.CFilename(),
		Imports:     r.Imports(),
		Body:        strings.TrimLeft(body, "\n"),
		Definitions: c.FfiDefinitions(),
		Exports:     exportPrototypes(cfg.PackageName(), c),
	}
	if c.HasAsyncCallbackMethods() {
		view.Bridges = futureBridges(cfg.PackageName())
	}

	var out Bindings
	out.Imports = view.Imports
	out.InitializationFns = r.InitializationFns()
	for name, dst := range map[string]*string{"wrapper": &out.Wrapper, "header": &out.Header, "cfile": &out.CFile} {
		var b bytes.Buffer
		if err := fileTemplates.ExecuteTemplate(&b, name, view); err != nil {
			return Bindings{}, errors.Wrapf(err, "execute template %s", name)
		}
		*dst = b.String()
	}
	return out, nil
}

// cDeclaration renders one header definition inside its include guard.
func cDeclaration(def ci.FfiDefinition) string {
	var decl string
	switch d := def.(type) {
	case *ci.FfiCallbackFunction:
		decl = fmt.Sprintf("typedef %s (*%s)(%s);",
			CgoFfiType(d.ReturnType), FfiCallbackName(d.Name), cParams(d.Arguments, d.HasRustCallStatusArg, "callStatus"))
	case *ci.FfiStructDef:
		var b strings.Builder
		name := FfiStructName(d.Name)
		fmt.Fprintf(&b, "typedef struct %s {\n", name)
		for _, f := range d.Fields {
			fmt.Fprintf(&b, "\t%s %s;\n", CgoFfiType(f.Type), common.VarName(f.Name))
		}
		fmt.Fprintf(&b, "} %s;", name)
		decl = b.String()
	case *ci.FfiFunction:
		decl = fmt.Sprintf("%s %s(%s);",
			CgoFfiType(d.ReturnType), d.Name, cParams(d.Arguments, d.HasRustCallStatusArg, "out_status"))
	default:
		panic(fmt.Sprintf("unreachable: unknown ffi definition %T", def))
	}
	guard := common.IfGuardName(def.DefinitionName())
	return "#ifndef " + guard + "\n#define " + guard + "\n" + decl + "\n#endif"
}

func cParams(args []ci.FfiArgument, withStatus bool, statusName string) string {
	parts := make([]string, 0, len(args)+1)
	for _, a := range args {
		parts = append(parts, CgoFfiType(a.Type)+" "+common.VarName(a.Name))
	}
	if withStatus {
		parts = append(parts, "RustCallStatus* "+statusName)
	}
	if len(parts) == 0 {
		return "void"
	}
	return strings.Join(parts, ", ")
}

// exportPrototypes declares the Go functions the native library calls into.
func exportPrototypes(pkg string, c *ci.ComponentInterface) []string {
	var out []string
	if c.HasAsyncFns() {
		out = append(out,
			"void "+FutureContinuationName(pkg)+"(uint64_t data, int8_t pollResult)",
			"void "+FreeGoroutineName(pkg)+"(uint64_t data)",
		)
	}
	for _, vt := range c.VTables() {
		for _, m := range vt.Methods {
			cb := m.Callback
			out = append(out, "void "+CgoCallbackFnName(cb.Name, vt.ModulePath)+"("+cParams(cb.Arguments, cb.HasRustCallStatusArg, "callStatus")+")")
		}
		out = append(out, "void "+CgoVTableFreeName(vt.Name, vt.ModulePath)+"(uint64_t handle)")
	}
	return out
}

// futureBridges returns one completion trampoline per future return shape.
func futureBridges(pkg string) []bridge {
	shapes := ci.FutureReturnShapes()
	out := make([]bridge, 0, len(shapes))
	for _, ret := range shapes {
		out = append(out, bridge{Prototype: fmt.Sprintf("void %s(%s callback, uint64_t callbackData, %s result)",
			ForeignFutureCompleteBridgeName(pkg, ret),
			FfiCallbackName(ci.ForeignFutureCompleteName(ret)),
			FfiStructName(ci.ForeignFutureStructName(ret)),
		)})
	}
	return out
}
