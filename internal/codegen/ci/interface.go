package ci

import (
	"sort"
	"strings"
)

// DefaultContractVersion is the scaffolding contract the generated bindings expect
// when the interface description does not name one.
const DefaultContractVersion = 26

// ComponentInterface is the read-only graph bindings are generated from.
//
// Definitions are added through the Add* methods, which also derive the FFI
// symbols of each definition.
type ComponentInterface struct {
	Namespace       string
	CrateName       string
	Docstring       string
	ContractVersion int
	Checksums       map[string]uint16

	records    []*RecordDef
	enums      []*EnumDef
	objects    []*ObjectDef
	callbacks  []*CallbackInterfaceDef
	functions  []*Function
	customs    []*CustomTypeDef
	externals  []*ExternalTypeDef
	errorNames map[string]bool
}

func New(namespace string) *ComponentInterface {
	return &ComponentInterface{
		Namespace:       namespace,
		ContractVersion: DefaultContractVersion,
		Checksums:       map[string]uint16{},
		errorNames:      map[string]bool{},
	}
}

// crate is the lowercase prefix of every native symbol.
func (c *ComponentInterface) crate() string {
	name := c.CrateName
	if name == "" {
		name = c.Namespace
	}
	return strings.ToLower(strings.ReplaceAll(name, "-", "_"))
}

// ModulePath is the module path types declared by this interface carry.
func (c *ComponentInterface) ModulePath() string {
	return c.crate()
}

func (c *ComponentInterface) AddRecord(r RecordDef) *RecordDef {
	if r.ModulePath == "" {
		r.ModulePath = c.ModulePath()
	}
	c.records = append(c.records, &r)
	return &r
}

func (c *ComponentInterface) AddEnum(e EnumDef) *EnumDef {
	if e.ModulePath == "" {
		e.ModulePath = c.ModulePath()
	}
	if e.IsError {
		c.errorNames[e.Name] = true
	}
	c.enums = append(c.enums, &e)
	return &e
}

func (c *ComponentInterface) AddObject(o ObjectDef) *ObjectDef {
	if o.ModulePath == "" {
		o.ModulePath = c.ModulePath()
	}
	lower := strings.ToLower(o.Name)
	self := FfiArgument{Name: "ptr", Type: FfiRustArcPtr{Name: o.Name}}
	o.FfiClone = FfiFunction{
		Name:                 "uniffi_" + c.crate() + "_fn_clone_" + lower,
		Arguments:            []FfiArgument{self},
		ReturnType:           FfiRustArcPtr{Name: o.Name},
		HasRustCallStatusArg: true,
	}
	o.FfiFree = FfiFunction{
		Name:                 "uniffi_" + c.crate() + "_fn_free_" + lower,
		Arguments:            []FfiArgument{self},
		HasRustCallStatusArg: true,
	}
	for i := range o.Constructors {
		cons := &o.Constructors[i]
		cons.ReturnType = o.AsType()
		cons.FfiFunc = c.ffiFunctionFor("uniffi_"+c.crate()+"_fn_constructor_"+lower+"_"+strings.ToLower(cons.Name), nil, &cons.Callable)
	}
	for i := range o.Methods {
		m := &o.Methods[i]
		m.ObjectName = o.Name
		m.FfiFunc = c.ffiFunctionFor("uniffi_"+c.crate()+"_fn_method_"+lower+"_"+strings.ToLower(m.Name), &self, &m.Callable)
	}
	for i := range o.Traits {
		t := &o.Traits[i]
		t.Method.ObjectName = o.Name
		t.Method.ReturnType = String{}
		t.Method.FfiFunc = c.ffiFunctionFor("uniffi_"+c.crate()+"_fn_method_"+lower+"_uniffi_trait_"+t.Kind, &self, &t.Method.Callable)
	}
	if o.HasCallbackInterface() {
		o.vtable = newVTable(c.crate(), o.Name, o.ModulePath, o.Methods)
	}
	c.objects = append(c.objects, &o)
	return &o
}

func (c *ComponentInterface) AddCallbackInterface(cb CallbackInterfaceDef) *CallbackInterfaceDef {
	if cb.ModulePath == "" {
		cb.ModulePath = c.ModulePath()
	}
	for i := range cb.Methods {
		cb.Methods[i].ObjectName = cb.Name
	}
	cb.vtable = newVTable(c.crate(), cb.Name, cb.ModulePath, cb.Methods)
	c.callbacks = append(c.callbacks, &cb)
	return &cb
}

func (c *ComponentInterface) AddFunction(f Function) *Function {
	f.FfiFunc = c.ffiFunctionFor("uniffi_"+c.crate()+"_fn_func_"+strings.ToLower(f.Name), nil, &f.Callable)
	c.functions = append(c.functions, &f)
	return &f
}

func (c *ComponentInterface) AddCustomType(t CustomTypeDef) *CustomTypeDef {
	if t.ModulePath == "" {
		t.ModulePath = c.ModulePath()
	}
	c.customs = append(c.customs, &t)
	return &t
}

func (c *ComponentInterface) AddExternalType(t ExternalTypeDef) *ExternalTypeDef {
	c.externals = append(c.externals, &t)
	return &t
}

func (c *ComponentInterface) ffiFunctionFor(name string, self *FfiArgument, callable *Callable) FfiFunction {
	f := FfiFunction{Name: name, IsAsync: callable.Async}
	if self != nil {
		f.Arguments = append(f.Arguments, *self)
	}
	for _, a := range callable.Arguments {
		f.Arguments = append(f.Arguments, FfiArgument{Name: a.Name, Type: FfiTypeOf(a.Type)})
	}
	if callable.Async {
		f.ReturnType = FfiHandle{}
		return f
	}
	if callable.ReturnType != nil {
		f.ReturnType = FfiTypeOf(callable.ReturnType)
	}
	f.HasRustCallStatusArg = true
	return f
}

func (c *ComponentInterface) Records() []*RecordDef                       { return c.records }
func (c *ComponentInterface) Enums() []*EnumDef                           { return c.enums }
func (c *ComponentInterface) Objects() []*ObjectDef                       { return c.objects }
func (c *ComponentInterface) CallbackInterfaces() []*CallbackInterfaceDef { return c.callbacks }
func (c *ComponentInterface) Functions() []*Function                      { return c.functions }
func (c *ComponentInterface) CustomTypes() []*CustomTypeDef               { return c.customs }
func (c *ComponentInterface) ExternalTypes() []*ExternalTypeDef           { return c.externals }

func (c *ComponentInterface) GetRecord(name string) *RecordDef {
	for _, r := range c.records {
		if r.Name == name {
			return r
		}
	}
	return nil
}

func (c *ComponentInterface) GetEnum(name string) *EnumDef {
	for _, e := range c.enums {
		if e.Name == name {
			return e
		}
	}
	return nil
}

func (c *ComponentInterface) GetObject(name string) *ObjectDef {
	for _, o := range c.objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}

func (c *ComponentInterface) GetCallbackInterface(name string) *CallbackInterfaceDef {
	for _, cb := range c.callbacks {
		if cb.Name == name {
			return cb
		}
	}
	return nil
}

func (c *ComponentInterface) GetCustomType(name string) *CustomTypeDef {
	for _, t := range c.customs {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// IsNameUsedAsError reports whether name is thrown anywhere in the interface.
func (c *ComponentInterface) IsNameUsedAsError(name string) bool {
	if c.errorNames[name] {
		return true
	}
	for _, f := range c.callables() {
		if f.ThrowsType != nil && TypeKey(f.ThrowsType) == name {
			return true
		}
	}
	return false
}

// VTables returns the vtable of every foreign-implementable interface, callback
// interfaces first.
func (c *ComponentInterface) VTables() []*VTable {
	var out []*VTable
	for _, cb := range c.callbacks {
		out = append(out, cb.vtable)
	}
	for _, o := range c.objects {
		if o.vtable != nil {
			out = append(out, o.vtable)
		}
	}
	return out
}

func (c *ComponentInterface) callables() []*Callable {
	var out []*Callable
	for _, f := range c.functions {
		out = append(out, &f.Callable)
	}
	for _, o := range c.objects {
		for i := range o.Constructors {
			out = append(out, &o.Constructors[i].Callable)
		}
		for i := range o.Methods {
			out = append(out, &o.Methods[i].Callable)
		}
		for i := range o.Traits {
			out = append(out, &o.Traits[i].Method.Callable)
		}
	}
	for _, cb := range c.callbacks {
		for i := range cb.Methods {
			out = append(out, &cb.Methods[i].Callable)
		}
	}
	return out
}

func (c *ComponentInterface) HasAsyncFns() bool {
	for _, f := range c.callables() {
		if f.Async {
			return true
		}
	}
	return false
}

// HasAsyncCallbackMethods reports whether foreign code implements async methods.
func (c *ComponentInterface) HasAsyncCallbackMethods() bool {
	for _, vt := range c.VTables() {
		for _, m := range vt.Methods {
			if m.Method.Async {
				return true
			}
		}
	}
	return false
}

// IterTypes returns every type reachable from the interface's definitions,
// deduplicated and ordered by TypeKey.
func (c *ComponentInterface) IterTypes() []Type {
	seen := map[string]Type{}
	var add func(t Type)
	add = func(t Type) {
		if t == nil {
			return
		}
		key := TypeKey(t)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = t
		for _, inner := range InnerTypes(t) {
			add(inner)
		}
	}
	addCallable := func(f *Callable) {
		for _, a := range f.Arguments {
			add(a.Type)
		}
		add(f.ReturnType)
		add(f.ThrowsType)
	}
	addFields := func(fields []Field) {
		for _, f := range fields {
			add(f.Type)
		}
	}

	for _, r := range c.records {
		add(r.AsType())
		addFields(r.Fields)
	}
	for _, e := range c.enums {
		add(e.AsType())
		for _, v := range e.Variants {
			addFields(v.Fields)
		}
		if e.IsError && e.IsFlat() {
			add(String{})
		}
	}
	for _, o := range c.objects {
		add(o.AsType())
	}
	for _, cb := range c.callbacks {
		add(cb.AsType())
	}
	for _, f := range c.callables() {
		addCallable(f)
	}
	for _, t := range c.customs {
		add(t.AsType())
	}
	for _, t := range c.externals {
		add(t.AsType())
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Type, 0, len(keys))
	for _, k := range keys {
		out = append(out, seen[k])
	}
	return out
}

// AsyncResult is the distinct (return, throws) pair of an async callable.
type AsyncResult struct {
	ReturnType Type
	ThrowsType Type
}

func (c *ComponentInterface) IterAsyncResultTypes() []AsyncResult {
	seen := map[string]AsyncResult{}
	for _, f := range c.callables() {
		if !f.Async {
			continue
		}
		key := "void"
		if f.ReturnType != nil {
			key = TypeKey(f.ReturnType)
		}
		key += "|"
		if f.ThrowsType != nil {
			key += TypeKey(f.ThrowsType)
		}
		seen[key] = AsyncResult{ReturnType: f.ReturnType, ThrowsType: f.ThrowsType}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]AsyncResult, 0, len(keys))
	for _, k := range keys {
		out = append(out, seen[k])
	}
	return out
}

type Checksum struct {
	Name  string
	Value uint16
}

// IterChecksums returns the API checksums sorted by symbol name.
func (c *ComponentInterface) IterChecksums() []Checksum {
	out := make([]Checksum, 0, len(c.Checksums))
	for name, v := range c.Checksums {
		out = append(out, Checksum{Name: name, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (c *ComponentInterface) FfiRustBufferAlloc() FfiFunction {
	return FfiFunction{
		Name:                 "ffi_" + c.crate() + "_rustbuffer_alloc",
		Arguments:            []FfiArgument{{Name: "size", Type: FfiUInt64{}}},
		ReturnType:           FfiRustBuffer{},
		HasRustCallStatusArg: true,
	}
}

func (c *ComponentInterface) FfiRustBufferFromBytes() FfiFunction {
	return FfiFunction{
		Name:                 "ffi_" + c.crate() + "_rustbuffer_from_bytes",
		Arguments:            []FfiArgument{{Name: "bytes", Type: FfiForeignBytes{}}},
		ReturnType:           FfiRustBuffer{},
		HasRustCallStatusArg: true,
	}
}

func (c *ComponentInterface) FfiRustBufferFree() FfiFunction {
	return FfiFunction{
		Name:                 "ffi_" + c.crate() + "_rustbuffer_free",
		Arguments:            []FfiArgument{{Name: "buf", Type: FfiRustBuffer{}}},
		HasRustCallStatusArg: true,
	}
}

func (c *ComponentInterface) FfiRustBufferReserve() FfiFunction {
	return FfiFunction{
		Name: "ffi_" + c.crate() + "_rustbuffer_reserve",
		Arguments: []FfiArgument{
			{Name: "buf", Type: FfiRustBuffer{}},
			{Name: "additional", Type: FfiUInt64{}},
		},
		ReturnType:           FfiRustBuffer{},
		HasRustCallStatusArg: true,
	}
}

func (c *ComponentInterface) FfiContractVersion() FfiFunction {
	return FfiFunction{
		Name:       "ffi_" + c.crate() + "_uniffi_contract_version",
		ReturnType: FfiUInt32{},
	}
}

// RustFuture holds the helper symbols for one rust-future return shape.
type RustFuture struct {
	ReturnType FfiType
	Poll       FfiFunction
	Cancel     FfiFunction
	Complete   FfiFunction
	Free       FfiFunction
}

func (c *ComponentInterface) RustFutureFns(ret FfiType) RustFuture {
	prefix := "ffi_" + c.crate() + "_rust_future_"
	suffix := FfiTypeSuffix(ret)
	handle := FfiArgument{Name: "handle", Type: FfiHandle{}}
	return RustFuture{
		ReturnType: ret,
		Poll: FfiFunction{
			Name: prefix + "poll_" + suffix,
			Arguments: []FfiArgument{
				handle,
				{Name: "callback", Type: FfiCallback{Name: ContinuationCallbackName}},
				{Name: "callback_data", Type: FfiHandle{}},
			},
		},
		Cancel:   FfiFunction{Name: prefix + "cancel_" + suffix, Arguments: []FfiArgument{handle}},
		Complete: FfiFunction{Name: prefix + "complete_" + suffix, Arguments: []FfiArgument{handle}, ReturnType: ret, HasRustCallStatusArg: true},
		Free:     FfiFunction{Name: prefix + "free_" + suffix, Arguments: []FfiArgument{handle}},
	}
}

func (c *ComponentInterface) checksumFns() []FfiFunction {
	var out []FfiFunction
	for _, cs := range c.IterChecksums() {
		out = append(out, FfiFunction{Name: cs.Name, ReturnType: FfiUInt16{}})
	}
	return out
}

// FfiDefinitions lists every declaration of the bridging header: callback types
// and structs first so that functions can refer to them.
func (c *ComponentInterface) FfiDefinitions() []FfiDefinition {
	defs := []FfiDefinition{
		&FfiCallbackFunction{Name: ContinuationCallbackName, Arguments: []FfiArgument{
			{Name: "data", Type: FfiUInt64{}},
			{Name: "poll_result", Type: FfiInt8{}},
		}},
		&FfiCallbackFunction{Name: ForeignFutureFreeName, Arguments: []FfiArgument{{Name: "handle", Type: FfiUInt64{}}}},
		&FfiCallbackFunction{Name: CallbackInterfaceFreeName, Arguments: []FfiArgument{{Name: "handle", Type: FfiUInt64{}}}},
		&FfiStructDef{Name: ForeignFutureName, Fields: []FfiField{
			{Name: "handle", Type: FfiUInt64{}},
			{Name: "free", Type: FfiCallback{Name: ForeignFutureFreeName}},
		}},
	}
	for _, ret := range FutureReturnShapes() {
		st := &FfiStructDef{Name: ForeignFutureStructName(ret)}
		if ret != nil {
			st.Fields = append(st.Fields, FfiField{Name: "returnValue", Type: ret})
		}
		st.Fields = append(st.Fields, FfiField{Name: "callStatus", Type: FfiRustCallStatus{}})
		defs = append(defs, st, &FfiCallbackFunction{
			Name: ForeignFutureCompleteName(ret),
			Arguments: []FfiArgument{
				{Name: "callback_data", Type: FfiUInt64{}},
				{Name: "result", Type: FfiStruct{Name: st.Name}},
			},
		})
	}
	for _, vt := range c.VTables() {
		for i := range vt.Methods {
			defs = append(defs, &vt.Methods[i].Callback)
		}
		st := vt.Struct
		defs = append(defs, &st)
	}

	var fns []FfiFunction
	for _, o := range c.objects {
		fns = append(fns, o.FfiClone, o.FfiFree)
		for _, cons := range o.Constructors {
			fns = append(fns, cons.FfiFunc)
		}
		for _, m := range o.Methods {
			fns = append(fns, m.FfiFunc)
		}
		for _, t := range o.Traits {
			fns = append(fns, t.Method.FfiFunc)
		}
	}
	for _, f := range c.functions {
		fns = append(fns, f.FfiFunc)
	}
	for _, vt := range c.VTables() {
		fns = append(fns, vt.Init)
	}
	fns = append(fns, c.FfiRustBufferAlloc(), c.FfiRustBufferFromBytes(), c.FfiRustBufferFree(), c.FfiRustBufferReserve())
	for _, ret := range FutureReturnShapes() {
		rf := c.RustFutureFns(ret)
		fns = append(fns, rf.Poll, rf.Cancel, rf.Free, rf.Complete)
	}
	fns = append(fns, c.checksumFns()...)
	fns = append(fns, c.FfiContractVersion())
	for i := range fns {
		defs = append(defs, &fns[i])
	}
	return defs
}
