package ci

type Argument struct {
	Name    string
	Type    Type
	Default Literal
}

type Field struct {
	Name      string
	Type      Type
	Default   Literal
	Docstring string
}

type RecordDef struct {
	Name       string
	ModulePath string
	Docstring  string
	Fields     []Field
}

func (r *RecordDef) AsType() Type {
	return Record{Name: r.Name, ModulePath: r.ModulePath}
}

type Variant struct {
	Name      string
	Docstring string
	Fields    []Field
}

type EnumDef struct {
	Name       string
	ModulePath string
	Docstring  string
	Variants   []Variant

	// IsError marks enums thrown by functions.
	IsError bool
	// FlatError errors carry only a message on the wire.
	FlatError bool
}

func (e *EnumDef) AsType() Type {
	return Enum{Name: e.Name, ModulePath: e.ModulePath}
}

// IsFlat reports whether the enum's variants carry no data on the Go side.
func (e *EnumDef) IsFlat() bool {
	if e.IsError {
		return e.FlatError
	}
	for _, v := range e.Variants {
		if len(v.Fields) > 0 {
			return false
		}
	}
	return true
}

// Callable is the shared shape of functions, methods and constructors.
type Callable struct {
	Name       string
	Docstring  string
	Arguments  []Argument
	ReturnType Type
	ThrowsType Type
	Async      bool
}

func (c *Callable) IsAsync() bool { return c.Async }

type Function struct {
	Callable
	FfiFunc FfiFunction
}

type Constructor struct {
	Callable
	FfiFunc FfiFunction
}

func (c *Constructor) IsPrimary() bool { return c.Name == "new" }

type Method struct {
	Callable
	ObjectName string
	FfiFunc    FfiFunction
}

// ObjectTrait is a builtin trait an object exposes as a method.
type ObjectTrait struct {
	Kind   string
	Method Method
}

const TraitDisplay = "display"

type ObjectDef struct {
	Name         string
	ModulePath   string
	Docstring    string
	Imp          ObjectImpl
	Constructors []Constructor
	Methods      []Method
	Traits       []ObjectTrait

	FfiClone FfiFunction
	FfiFree  FfiFunction
	vtable   *VTable
}

func (o *ObjectDef) AsType() Type {
	return Object{Name: o.Name, ModulePath: o.ModulePath, Imp: o.Imp}
}

func (o *ObjectDef) HasCallbackInterface() bool {
	return o.Imp == ObjectImplCallbackTrait
}

func (o *ObjectDef) PrimaryConstructor() *Constructor {
	for i := range o.Constructors {
		if o.Constructors[i].IsPrimary() {
			return &o.Constructors[i]
		}
	}
	return nil
}

func (o *ObjectDef) AlternateConstructors() []Constructor {
	var out []Constructor
	for _, c := range o.Constructors {
		if !c.IsPrimary() {
			out = append(out, c)
		}
	}
	return out
}

// Display returns the Display trait method, if the object exposes one.
func (o *ObjectDef) Display() *Method {
	for i := range o.Traits {
		if o.Traits[i].Kind == TraitDisplay {
			return &o.Traits[i].Method
		}
	}
	return nil
}

// VTable is nil unless foreign code may implement the object.
func (o *ObjectDef) VTable() *VTable { return o.vtable }

type CallbackInterfaceDef struct {
	Name       string
	ModulePath string
	Docstring  string
	Methods    []Method

	vtable *VTable
}

func (c *CallbackInterfaceDef) AsType() Type {
	return CallbackInterface{Name: c.Name, ModulePath: c.ModulePath}
}

func (c *CallbackInterfaceDef) VTable() *VTable { return c.vtable }

type CustomTypeDef struct {
	Name       string
	ModulePath string
	Builtin    Type
}

func (c *CustomTypeDef) AsType() Type {
	return Custom{Name: c.Name, ModulePath: c.ModulePath, Builtin: c.Builtin}
}

type ExternalTypeDef struct {
	Name       string
	ModulePath string
	Kind       ExternalKind
	Namespace  string
	Tagged     bool
}

func (e *ExternalTypeDef) AsType() Type {
	return External{Name: e.Name, ModulePath: e.ModulePath, Kind: e.Kind, Namespace: e.Namespace, Tagged: e.Tagged}
}
