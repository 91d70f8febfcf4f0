package golang

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/cockroachdb/errors"

	"github.com/Alia5/uniffi-bindgen-go/internal/codegen/ci"
	"github.com/Alia5/uniffi-bindgen-go/internal/codegen/common"
	"github.com/Alia5/uniffi-bindgen-go/internal/codegen/config"
)

// TypeRenderer renders the body of one wrapper file. It owns the import
// accumulator and the include-once set of that file, so a renderer is used for
// exactly one Render call.
type TypeRenderer struct {
	cfg      *config.Config
	ci       *ci.ComponentInterface
	oracle   *Oracle
	imports  *common.Imports
	included map[string]struct{}
	tmpl     *template.Template
	rendered bool
}

func NewTypeRenderer(cfg *config.Config, c *ci.ComponentInterface) (*TypeRenderer, error) {
	r := &TypeRenderer{
		cfg:      cfg,
		ci:       c,
		oracle:   NewOracle(c),
		imports:  common.NewImports(cfg.GoMod),
		included: map[string]struct{}{},
	}
	tmpl := template.New("bindings").Funcs(r.funcMap())
	for _, src := range []string{
		runtimeTmpl, asyncRuntimeTmpl, primitiveTmpl, compoundTmpl, recordTmpl,
		enumTmpl, errorTmpl, objectTmpl, callableTmpl, callbackTmpl, customTmpl,
	} {
		var err error
		if tmpl, err = tmpl.Parse(src); err != nil {
			return nil, errors.Wrap(err, "parse template")
		}
	}
	r.tmpl = tmpl
	return r, nil
}

// IncludeOnce reports whether name is seen for the first time in this render.
func (r *TypeRenderer) IncludeOnce(name string) bool {
	if _, ok := r.included[name]; ok {
		return false
	}
	r.included[name] = struct{}{}
	return true
}

// Imports returns the imports required by everything rendered so far.
func (r *TypeRenderer) Imports() []common.ImportRequirement {
	return r.imports.Flush()
}

// Types returns every type the wrapper defines converters for. The string
// converter is always present since call status handling depends on it.
func (r *TypeRenderer) Types() []ci.Type {
	types := r.ci.IterTypes()
	for _, t := range types {
		if _, ok := t.(ci.String); ok {
			return types
		}
	}
	types = append(types, ci.String{})
	sort.Slice(types, func(i, j int) bool { return ci.TypeKey(types[i]) < ci.TypeKey(types[j]) })
	return types
}

// InitializationFns lists the functions init() calls, in type order.
func (r *TypeRenderer) InitializationFns() []string {
	var out []string
	for _, t := range r.Types() {
		if fn := r.oracle.Find(t).InitializationFn(); fn != "" {
			out = append(out, fn)
		}
	}
	return out
}

// Render returns the wrapper body: everything after the import block. Calling it
// a second time panics.
func (r *TypeRenderer) Render() (out string, err error) {
	if r.rendered {
		panic("golang: TypeRenderer.Render called twice")
	}
	r.rendered = true

	defer func() {
		if p := recover(); p != nil {
			err = errors.Newf("render %s: %v", r.ci.Namespace, p)
		}
	}()

	var b bytes.Buffer
	exec := func(name string, data any) error {
		if err := r.tmpl.ExecuteTemplate(&b, name, data); err != nil {
			return errors.Wrapf(err, "execute template %s", name)
		}
		return nil
	}

	if err := exec("runtime", r.runtimeView()); err != nil {
		return "", err
	}
	for _, t := range r.Types() {
		name, data := r.typeTemplate(t)
		if err := exec(name, data); err != nil {
			return "", err
		}
	}
	if r.ci.HasAsyncFns() {
		if err := exec("asyncRuntime", r.runtimeView()); err != nil {
			return "", err
		}
	}
	for _, f := range r.ci.Functions() {
		if err := exec("topLevelFunction", f); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

type runtimeView struct {
	Pkg                 string
	ContractVersion     int
	ContractVersionFn   string
	RustBufferFree      string
	RustBufferFromBytes string
	Checksums           []ci.Checksum
	InitializationFns   []string
}

func (r *TypeRenderer) runtimeView() runtimeView {
	return runtimeView{
		Pkg:                 r.cfg.PackageName(),
		ContractVersion:     r.ci.ContractVersion,
		ContractVersionFn:   r.ci.FfiContractVersion().Name,
		RustBufferFree:      r.ci.FfiRustBufferFree().Name,
		RustBufferFromBytes: r.ci.FfiRustBufferFromBytes().Name,
		Checksums:           r.ci.IterChecksums(),
		InitializationFns:   r.InitializationFns(),
	}
}

type errorView struct {
	Def *ci.EnumDef
	// Flat errors carry a message instead of fields.
	Flat bool
}

type objectView struct {
	Def     *ci.ObjectDef
	Iface   string
	Impl    string
	Label   string
	IsError bool
}

type customView struct {
	Def    *ci.CustomTypeDef
	Config *config.CustomTypeConfig
}

// vtableView is shared by callback interfaces and objects foreign code may
// implement.
type vtableView struct {
	VTable *ci.VTable
	// Label is the Go interface the handle map stores.
	Label     string
	Converter string
	Instance  string
	// ObjectTrait methods return a plain error.
	ObjectTrait bool
}

func (r *TypeRenderer) typeTemplate(t ci.Type) (string, any) {
	switch t := t.(type) {
	case ci.Int8, ci.Int16, ci.Int32, ci.Int64,
		ci.UInt8, ci.UInt16, ci.UInt32, ci.UInt64,
		ci.Float32, ci.Float64:
		return "numberConverter", t
	case ci.Boolean:
		return "boolConverter", t
	case ci.String:
		return "stringConverter", t
	case ci.Bytes:
		return "bytesConverter", t
	case ci.Duration:
		return "durationConverter", t
	case ci.Timestamp:
		return "timestampConverter", t
	case ci.Optional:
		return "optionalConverter", t
	case ci.Sequence:
		return "sequenceConverter", t
	case ci.Map:
		return "mapConverter", t
	case ci.Record:
		def := r.ci.GetRecord(t.Name)
		if def == nil {
			panic(fmt.Sprintf("record %s is not defined", t.Name))
		}
		return "record", def
	case ci.Enum:
		def := r.ci.GetEnum(t.Name)
		if def == nil {
			panic(fmt.Sprintf("enum %s is not defined", t.Name))
		}
		if def.IsError || r.ci.IsNameUsedAsError(def.Name) {
			return "error", errorView{Def: def, Flat: def.IsError && def.FlatError}
		}
		if def.IsFlat() {
			return "flatEnum", def
		}
		return "enum", def
	case ci.Object:
		def := r.ci.GetObject(t.Name)
		if def == nil {
			panic(fmt.Sprintf("object %s is not defined", t.Name))
		}
		iface, impl := ObjectNames(def.Name, def.Imp)
		return "object", objectView{
			Def:     def,
			Iface:   iface,
			Impl:    impl,
			Label:   r.oracle.Find(t).TypeLabel(),
			IsError: r.ci.IsNameUsedAsError(def.Name),
		}
	case ci.CallbackInterface:
		def := r.ci.GetCallbackInterface(t.Name)
		if def == nil {
			panic(fmt.Sprintf("callback interface %s is not defined", t.Name))
		}
		return "callbackInterface", def
	case ci.Custom:
		def := r.ci.GetCustomType(t.Name)
		if def == nil {
			def = &ci.CustomTypeDef{Name: t.Name, ModulePath: t.ModulePath, Builtin: t.Builtin}
		}
		v := customView{Def: def}
		if cfg, ok := r.cfg.CustomType(t.Name); ok {
			v.Config = &cfg
		}
		return "customType", v
	case ci.External:
		return "externalType", t
	case ci.Executor:
		return "executor", t
	default:
		panic(fmt.Sprintf("unreachable: unknown type %T", t))
	}
}

func (r *TypeRenderer) vtableView(vt *ci.VTable, label string, objectTrait bool, t ci.Type) vtableView {
	h := r.oracle.Find(t)
	return vtableView{
		VTable:      vt,
		Label:       label,
		Converter:   h.FfiConverterName(),
		Instance:    h.FfiConverterInstance(),
		ObjectTrait: objectTrait,
	}
}

func (r *TypeRenderer) funcMap() template.FuncMap {
	o := r.oracle
	return template.FuncMap{
		"label":      func(t ci.Type) string { return o.Find(t).TypeLabel() },
		"canonical":  func(t ci.Type) string { return o.Find(t).CanonicalName() },
		"converter":  func(t ci.Type) string { return o.Find(t).FfiConverterName() },
		"instance":   func(t ci.Type) string { return o.Find(t).FfiConverterInstance() },
		"destroyer":  func(t ci.Type) string { return o.Find(t).FfiDestroyerName() },
		"lower":      func(t ci.Type) string { return o.Find(t).Lower() },
		"lift":       func(t ci.Type) string { return o.Find(t).Lift() },
		"read":       func(t ci.Type) string { return o.Find(t).Read() },
		"write":      func(t ci.Type) string { return o.Find(t).Write() },
		"destroy":    func(t ci.Type) string { return o.Find(t).Destroy() },
		"literal":    func(t ci.Type, lit ci.Literal) string { return o.Find(t).Literal(lit) },
		"ffiOf":      ci.FfiTypeOf,
		"isBuffer":   func(t ci.Type) bool { _, ok := ci.FfiTypeOf(t).(ci.FfiRustBuffer); return ok },
		"isError":    r.ci.IsNameUsedAsError,
		"className":  common.ClassName,
		"fnName":     common.FnName,
		"varName":    common.VarName,
		"fieldName":  common.FieldName,
		"errorField": common.ErrorFieldName,
		"variant":    common.EnumVariantName,
		"orPosVar":   common.OrPosVar,
		"orPosField": common.OrPosField,
		"docstring":  common.Docstring,
		"inc":        func(i int) int { return i + 1 },

		"cgoType":            CgoFfiType,
		"ffiTypeName":        FfiTypeName,
		"ffiTypeNameCgoSafe": FfiTypeNameCgoSafe,
		"ffiCallbackName":    FfiCallbackName,
		"ffiStructName":      FfiStructName,

		"lowerFnCall":    o.LowerFnCall,
		"intoCustom":     IntoCustom,
		"liftArgs":       o.LiftArgs,
		"exportParams":   CgoExportParams,
		"liftFromCgo":    o.LiftFromCgo,
		"defaultValue":   o.DefaultValue,
		"futureChanType": o.FutureChanType,
		"futureHandler":  o.FutureCallbackHandler,
		"asyncResult": func(c ci.Callable) ci.AsyncResult {
			return ci.AsyncResult{ReturnType: c.ReturnType, ThrowsType: c.ThrowsType}
		},
		"completeBridge": func(ret ci.FfiType) string {
			return ForeignFutureCompleteBridgeName(r.cfg.PackageName(), ret)
		},
		"futureStruct":   func(ret ci.FfiType) string { return FfiStructName(ci.ForeignFutureStructName(ret)) },
		"futureComplete": func(ret ci.FfiType) string { return FfiCallbackName(ci.ForeignFutureCompleteName(ret)) },
		"retFfi": func(c ci.Callable) ci.FfiType {
			if c.ReturnType == nil {
				return nil
			}
			return ci.FfiTypeOf(c.ReturnType)
		},

		"cgoCallbackFn": CgoCallbackFnName,
		"vtableFree":    CgoVTableFreeName,
		"continuation":  func() string { return FutureContinuationName(r.cfg.PackageName()) },
		"freeGoroutine": func() string { return FreeGoroutineName(r.cfg.PackageName()) },

		"argsDecl":     o.ArgsDecl,
		"returnDecl":   o.ReturnTypeDecl,
		"returnDeclCb": o.ReturnTypeDeclCb,
		"errStruct":    o.ErrorStructName,
		"callView":     r.callView,
		"vtableView":   r.vtableView,

		"addImport": func(path string) string {
			r.imports.AddModule(path)
			return ""
		},
		"addLocalImport": func(mod string) string {
			r.imports.AddLocal(mod)
			return ""
		},
		"includeOnce": r.IncludeOnce,
		"dict": func(kv ...any) map[string]any {
			m := make(map[string]any, len(kv)/2)
			for i := 0; i+1 < len(kv); i += 2 {
				m[kv[i].(string)] = kv[i+1]
			}
			return m
		},
		"placeholder": func(expr, value string) string {
			return strings.ReplaceAll(expr, "{}", value)
		},
		"indent": func(tabs int, text string) string {
			pad := strings.Repeat("\t", tabs)
			lines := strings.Split(strings.Trim(text, "\n"), "\n")
			for i, l := range lines {
				if strings.TrimSpace(l) != "" {
					lines[i] = pad + l
				}
			}
			return strings.Join(lines, "\n")
		},
	}
}
