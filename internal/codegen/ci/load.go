package ci

import (
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

type fileDescription struct {
	Namespace          string                `yaml:"namespace"`
	CrateName          string                `yaml:"crate_name"`
	Docstring          string                `yaml:"docstring"`
	ContractVersion    int                   `yaml:"contract_version"`
	Checksums          map[string]uint16     `yaml:"checksums"`
	Records            []recordDescription   `yaml:"records"`
	Enums              []enumDescription     `yaml:"enums"`
	Objects            []objectDescription   `yaml:"objects"`
	CallbackInterfaces []objectDescription   `yaml:"callback_interfaces"`
	Functions          []callableDescription `yaml:"functions"`
	CustomTypes        []customDescription   `yaml:"custom_types"`
	ExternalTypes      []externalDescription `yaml:"external_types"`
}

type fieldDescription struct {
	Name      string    `yaml:"name"`
	Type      string    `yaml:"type"`
	Default   yaml.Node `yaml:"default"`
	Docstring string    `yaml:"docstring"`
}

type recordDescription struct {
	Name      string             `yaml:"name"`
	Docstring string             `yaml:"docstring"`
	Fields    []fieldDescription `yaml:"fields"`
}

type variantDescription struct {
	Name      string             `yaml:"name"`
	Docstring string             `yaml:"docstring"`
	Fields    []fieldDescription `yaml:"fields"`
}

type enumDescription struct {
	Name      string               `yaml:"name"`
	Docstring string               `yaml:"docstring"`
	Error     bool                 `yaml:"error"`
	Flat      bool                 `yaml:"flat"`
	Variants  []variantDescription `yaml:"variants"`
}

type callableDescription struct {
	Name      string             `yaml:"name"`
	Docstring string             `yaml:"docstring"`
	Args      []fieldDescription `yaml:"args"`
	Return    string             `yaml:"return"`
	Throws    string             `yaml:"throws"`
	Async     bool               `yaml:"async"`
}

type objectDescription struct {
	Name         string                `yaml:"name"`
	Docstring    string                `yaml:"docstring"`
	Imp          string                `yaml:"imp"`
	Constructors []callableDescription `yaml:"constructors"`
	Methods      []callableDescription `yaml:"methods"`
	Traits       []string              `yaml:"traits"`
}

type customDescription struct {
	Name    string `yaml:"name"`
	Builtin string `yaml:"builtin"`
}

type externalDescription struct {
	Name       string `yaml:"name"`
	ModulePath string `yaml:"module_path"`
	Namespace  string `yaml:"namespace"`
	Kind       string `yaml:"kind"`
	Tagged     bool   `yaml:"tagged"`
}

// Load reads an interface description from a YAML or JSON file.
func Load(path string) (*ComponentInterface, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read interface description %s", path)
	}
	ci, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse interface description %s", path)
	}
	return ci, nil
}

// Parse builds a component interface from its YAML (or JSON) description.
func Parse(data []byte) (*ComponentInterface, error) {
	var desc fileDescription
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, errors.Wrap(err, "decode")
	}
	if desc.Namespace == "" {
		return nil, errors.New("namespace is required")
	}

	ci := New(desc.Namespace)
	ci.CrateName = desc.CrateName
	ci.Docstring = desc.Docstring
	if desc.ContractVersion != 0 {
		ci.ContractVersion = desc.ContractVersion
	}
	for k, v := range desc.Checksums {
		ci.Checksums[k] = v
	}

	r := &resolver{declared: map[string]Type{}, customs: map[string]string{}}
	if err := r.declare(ci, &desc); err != nil {
		return nil, err
	}

	for i, rd := range desc.Records {
		fields, err := r.fields(rd.Fields)
		if err != nil {
			return nil, errors.Wrapf(err, "records[%d] %s", i, rd.Name)
		}
		ci.AddRecord(RecordDef{Name: rd.Name, Docstring: rd.Docstring, Fields: fields})
	}
	for i, ed := range desc.Enums {
		e := EnumDef{Name: ed.Name, Docstring: ed.Docstring, IsError: ed.Error, FlatError: ed.Flat}
		for j, vd := range ed.Variants {
			fields, err := r.fields(vd.Fields)
			if err != nil {
				return nil, errors.Wrapf(err, "enums[%d] %s variants[%d]", i, ed.Name, j)
			}
			e.Variants = append(e.Variants, Variant{Name: vd.Name, Docstring: vd.Docstring, Fields: fields})
		}
		ci.AddEnum(e)
	}
	for i, od := range desc.Objects {
		imp, err := ParseObjectImpl(od.Imp)
		if err != nil {
			return nil, errors.Wrapf(err, "objects[%d] %s", i, od.Name)
		}
		o := ObjectDef{Name: od.Name, Docstring: od.Docstring, Imp: imp}
		for j, cd := range od.Constructors {
			c, err := r.callable(cd)
			if err != nil {
				return nil, errors.Wrapf(err, "objects[%d] %s constructors[%d]", i, od.Name, j)
			}
			o.Constructors = append(o.Constructors, Constructor{Callable: c})
		}
		for j, md := range od.Methods {
			c, err := r.callable(md)
			if err != nil {
				return nil, errors.Wrapf(err, "objects[%d] %s methods[%d]", i, od.Name, j)
			}
			o.Methods = append(o.Methods, Method{Callable: c})
		}
		for _, t := range od.Traits {
			if t != TraitDisplay {
				return nil, errors.Newf("objects[%d] %s: unsupported trait %q", i, od.Name, t)
			}
			o.Traits = append(o.Traits, ObjectTrait{Kind: t, Method: Method{Callable: Callable{Name: "uniffi_trait_" + t}}})
		}
		ci.AddObject(o)
	}
	for i, cd := range desc.CallbackInterfaces {
		cb := CallbackInterfaceDef{Name: cd.Name, Docstring: cd.Docstring}
		for j, md := range cd.Methods {
			c, err := r.callable(md)
			if err != nil {
				return nil, errors.Wrapf(err, "callback_interfaces[%d] %s methods[%d]", i, cd.Name, j)
			}
			cb.Methods = append(cb.Methods, Method{Callable: c})
		}
		ci.AddCallbackInterface(cb)
	}
	for i, fd := range desc.Functions {
		c, err := r.callable(fd)
		if err != nil {
			return nil, errors.Wrapf(err, "functions[%d] %s", i, fd.Name)
		}
		ci.AddFunction(Function{Callable: c})
	}
	for i, cd := range desc.CustomTypes {
		t, err := r.resolve(cd.Name)
		if err != nil {
			return nil, errors.Wrapf(err, "custom_types[%d]", i)
		}
		custom := t.(Custom)
		ci.AddCustomType(CustomTypeDef{Name: custom.Name, ModulePath: custom.ModulePath, Builtin: custom.Builtin})
	}
	for _, ed := range desc.ExternalTypes {
		ext := r.declared[ed.Name].(External)
		ci.AddExternalType(ExternalTypeDef{
			Name:       ext.Name,
			ModulePath: ext.ModulePath,
			Kind:       ext.Kind,
			Namespace:  ext.Namespace,
			Tagged:     ext.Tagged,
		})
	}
	return ci, nil
}

// resolver turns type expressions into types against the declared names.
type resolver struct {
	declared map[string]Type
	// customs holds the builtin expression of custom types not yet resolved.
	customs map[string]string
}

func (r *resolver) add(name string, t Type) error {
	if name == "" {
		return errors.New("declaration without a name")
	}
	if _, ok := r.declared[name]; ok {
		return errors.Newf("%s is declared more than once", name)
	}
	if _, ok := r.customs[name]; ok {
		return errors.Newf("%s is declared more than once", name)
	}
	if _, err := parsePrimitive(name); err == nil {
		return errors.Newf("%s shadows a builtin type", name)
	}
	r.declared[name] = t
	return nil
}

func (r *resolver) declare(ci *ComponentInterface, desc *fileDescription) error {
	mod := ci.ModulePath()
	for _, d := range desc.Records {
		if err := r.add(d.Name, Record{Name: d.Name, ModulePath: mod}); err != nil {
			return err
		}
	}
	for _, d := range desc.Enums {
		if err := r.add(d.Name, Enum{Name: d.Name, ModulePath: mod}); err != nil {
			return err
		}
	}
	for i, d := range desc.Objects {
		imp, err := ParseObjectImpl(d.Imp)
		if err != nil {
			return errors.Wrapf(err, "objects[%d] %s", i, d.Name)
		}
		if err := r.add(d.Name, Object{Name: d.Name, ModulePath: mod, Imp: imp}); err != nil {
			return err
		}
	}
	for _, d := range desc.CallbackInterfaces {
		if err := r.add(d.Name, CallbackInterface{Name: d.Name, ModulePath: mod}); err != nil {
			return err
		}
	}
	for i, d := range desc.ExternalTypes {
		kind, err := ParseExternalKind(d.Kind)
		if err != nil {
			return errors.Wrapf(err, "external_types[%d] %s", i, d.Name)
		}
		ns := d.Namespace
		if ns == "" {
			ns = d.ModulePath
		}
		if ns == "" {
			return errors.Newf("external_types[%d] %s: namespace is required", i, d.Name)
		}
		modulePath := d.ModulePath
		if modulePath == "" {
			modulePath = ns
		}
		ext := External{Name: d.Name, ModulePath: modulePath, Kind: kind, Namespace: ns, Tagged: d.Tagged}
		if err := r.add(d.Name, ext); err != nil {
			return err
		}
	}
	for _, d := range desc.CustomTypes {
		if d.Name == "" {
			return errors.New("declaration without a name")
		}
		if _, ok := r.declared[d.Name]; ok {
			return errors.Newf("%s is declared more than once", d.Name)
		}
		if _, ok := r.customs[d.Name]; ok {
			return errors.Newf("%s is declared more than once", d.Name)
		}
		if _, err := parsePrimitive(d.Name); err == nil {
			return errors.Newf("%s shadows a builtin type", d.Name)
		}
		r.customs[d.Name] = d.Builtin
	}
	for name := range r.customs {
		if _, err := r.resolveCustom(name, mod, map[string]bool{}); err != nil {
			return errors.Wrapf(err, "custom type %s", name)
		}
	}
	return nil
}

func (r *resolver) resolveCustom(name, mod string, visiting map[string]bool) (Type, error) {
	if t, ok := r.declared[name]; ok {
		return t, nil
	}
	if visiting[name] {
		return nil, errors.Newf("custom type %s refers to itself", name)
	}
	visiting[name] = true
	expr := r.customs[name]
	if expr == "" {
		return nil, errors.New("builtin is required")
	}
	builtin, err := r.parse(expr, func(n string) (Type, error) {
		if _, ok := r.customs[n]; ok {
			return r.resolveCustom(n, mod, visiting)
		}
		return nil, errors.Newf("unknown type %q", n)
	})
	if err != nil {
		return nil, err
	}
	t := Custom{Name: name, ModulePath: mod, Builtin: builtin}
	r.declared[name] = t
	return t, nil
}

func (r *resolver) resolve(expr string) (Type, error) {
	return r.parse(expr, func(n string) (Type, error) {
		return nil, errors.Newf("unknown type %q", n)
	})
}

func (r *resolver) parse(expr string, fallback func(string) (Type, error)) (Type, error) {
	p := &typeParser{src: expr, lookup: func(name string) (Type, error) {
		if t, ok := r.declared[name]; ok {
			return t, nil
		}
		return fallback(name)
	}}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, errors.Newf("unexpected %q after type in %q", p.src[p.pos:], expr)
	}
	return t, nil
}

func (r *resolver) fields(descs []fieldDescription) ([]Field, error) {
	var out []Field
	for i, d := range descs {
		t, err := r.resolve(d.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "fields[%d] %s", i, d.Name)
		}
		f := Field{Name: d.Name, Type: t, Docstring: d.Docstring}
		// An absent key leaves the node zero; an explicit null is kept.
		if d.Default.Kind != 0 {
			lit, err := parseLiteral(&d.Default, t)
			if err != nil {
				return nil, errors.Wrapf(err, "fields[%d] %s default", i, d.Name)
			}
			f.Default = lit
		}
		out = append(out, f)
	}
	return out, nil
}

func (r *resolver) callable(d callableDescription) (Callable, error) {
	c := Callable{Name: d.Name, Docstring: d.Docstring, Async: d.Async}
	if d.Name == "" {
		return c, errors.New("callable without a name")
	}
	fields, err := r.fields(d.Args)
	if err != nil {
		return c, err
	}
	for _, f := range fields {
		c.Arguments = append(c.Arguments, Argument{Name: f.Name, Type: f.Type, Default: f.Default})
	}
	if d.Return != "" {
		if c.ReturnType, err = r.resolve(d.Return); err != nil {
			return c, errors.Wrap(err, "return")
		}
	}
	if d.Throws != "" {
		if c.ThrowsType, err = r.resolve(d.Throws); err != nil {
			return c, errors.Wrap(err, "throws")
		}
		if _, ok := c.ThrowsType.(Enum); !ok {
			if _, ok := c.ThrowsType.(Object); !ok {
				return c, errors.Newf("throws: %s is not an enum or object", d.Throws)
			}
		}
	}
	return c, nil
}

func parsePrimitive(name string) (Type, error) {
	switch name {
	case "i8":
		return Int8{}, nil
	case "i16":
		return Int16{}, nil
	case "i32":
		return Int32{}, nil
	case "i64":
		return Int64{}, nil
	case "u8":
		return UInt8{}, nil
	case "u16":
		return UInt16{}, nil
	case "u32":
		return UInt32{}, nil
	case "u64":
		return UInt64{}, nil
	case "f32":
		return Float32{}, nil
	case "f64":
		return Float64{}, nil
	case "bool":
		return Boolean{}, nil
	case "string":
		return String{}, nil
	case "bytes":
		return Bytes{}, nil
	case "duration":
		return Duration{}, nil
	case "timestamp":
		return Timestamp{}, nil
	case "executor":
		return Executor{}, nil
	}
	return nil, errors.Newf("%q is not a builtin type", name)
}

type typeParser struct {
	src    string
	pos    int
	lookup func(string) (Type, error)
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *typeParser) ident() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '<' || c == '>' || c == ',' || c == ' ' {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *typeParser) expect(c byte) error {
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != c {
		return errors.Newf("expected %q at offset %d in %q", c, p.pos, p.src)
	}
	p.pos++
	return nil
}

func (p *typeParser) parseType() (Type, error) {
	name := p.ident()
	if name == "" {
		return nil, errors.Newf("expected a type at offset %d in %q", p.pos, p.src)
	}
	switch name {
	case "optional", "sequence":
		if err := p.expect('<'); err != nil {
			return nil, err
		}
		inner, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if err := p.expect('>'); err != nil {
			return nil, err
		}
		if name == "optional" {
			return Optional{Inner: inner}, nil
		}
		return Sequence{Inner: inner}, nil
	case "map":
		if err := p.expect('<'); err != nil {
			return nil, err
		}
		key, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if err := p.expect(','); err != nil {
			return nil, err
		}
		value, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if err := p.expect('>'); err != nil {
			return nil, err
		}
		return Map{Key: key, Value: value}, nil
	}
	if t, err := parsePrimitive(name); err == nil {
		return t, nil
	}
	return p.lookup(name)
}

// parseLiteral interprets a default value node as a literal of type t.
func parseLiteral(n *yaml.Node, t Type) (Literal, error) {
	if n.Kind != yaml.ScalarNode {
		return nil, errors.New("default must be a scalar")
	}
	if opt, ok := t.(Optional); ok {
		if n.Tag == "!!null" {
			return LiteralNone{}, nil
		}
		inner, err := parseLiteral(n, opt.Inner)
		if err != nil {
			return nil, err
		}
		return LiteralSome{Inner: inner}, nil
	}
	text := strings.TrimSpace(n.Value)
	switch t.(type) {
	case Boolean:
		v, err := strconv.ParseBool(text)
		if err != nil {
			return nil, errors.Wrap(err, "bool")
		}
		return LiteralBoolean{Value: v}, nil
	case String:
		return LiteralString{Value: n.Value}, nil
	case Int8, Int16, Int32, Int64:
		digits, radix := splitRadix(text)
		bits := intBits(t)
		v, err := strconv.ParseInt(digits, radixBase(radix), bits)
		if err != nil {
			return nil, errors.Wrap(err, "int")
		}
		return LiteralInt{Value: v, Radix: radix, Type: t}, nil
	case UInt8, UInt16, UInt32, UInt64:
		digits, radix := splitRadix(text)
		v, err := strconv.ParseUint(digits, radixBase(radix), intBits(t))
		if err != nil {
			return nil, errors.Wrap(err, "uint")
		}
		return LiteralUInt{Value: v, Radix: radix, Type: t}, nil
	case Float32, Float64:
		bits := 64
		if _, ok := t.(Float32); ok {
			bits = 32
		}
		if _, err := strconv.ParseFloat(text, bits); err != nil {
			return nil, errors.Wrap(err, "float")
		}
		return LiteralFloat{Text: text, Type: t}, nil
	case Enum:
		return LiteralEnum{Variant: text, Type: t}, nil
	default:
		return nil, errors.Newf("type %s has no literal form", TypeKey(t))
	}
}

// splitRadix strips a 0x or 0o prefix, keeping a leading minus sign.
func splitRadix(text string) (string, Radix) {
	sign := ""
	if strings.HasPrefix(text, "-") {
		sign, text = "-", text[1:]
	}
	lower := strings.ToLower(text)
	switch {
	case strings.HasPrefix(lower, "0x"):
		return sign + text[2:], RadixHexadecimal
	case strings.HasPrefix(lower, "0o"):
		return sign + text[2:], RadixOctal
	}
	return sign + text, RadixDecimal
}

func radixBase(r Radix) int {
	switch r {
	case RadixOctal:
		return 8
	case RadixHexadecimal:
		return 16
	default:
		return 10
	}
}

func intBits(t Type) int {
	switch t.(type) {
	case Int8, UInt8:
		return 8
	case Int16, UInt16:
		return 16
	case Int32, UInt32:
		return 32
	default:
		return 64
	}
}
