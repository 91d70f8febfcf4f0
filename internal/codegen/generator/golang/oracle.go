// Package golang renders the Go side of a component interface: the cgo wrapper
// package, the bridging header and the bridging C file.
package golang

import (
	"fmt"
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/Alia5/uniffi-bindgen-go/internal/codegen/ci"
	"github.com/Alia5/uniffi-bindgen-go/internal/codegen/common"
)

// InterfaceGraph is the part of the component interface the oracle consults
// while resolving types.
type InterfaceGraph interface {
	IsNameUsedAsError(name string) bool
}

// Oracle resolves interface types to the handlers that render them.
type Oracle struct {
	graph InterfaceGraph
}

// NewOracle returns an oracle backed by graph. A nil graph treats every enum as a
// plain value type.
func NewOracle(graph InterfaceGraph) *Oracle {
	return &Oracle{graph: graph}
}

func (o *Oracle) usedAsError(name string) bool {
	return o.graph != nil && o.graph.IsNameUsedAsError(name)
}

// Find returns the handler for t. Every variant of ci.Type has an arm; an unknown
// variant is a programming error and panics.
func (o *Oracle) Find(t ci.Type) TypeHandler {
	switch t := t.(type) {
	case ci.Int8, ci.Int16, ci.Int32, ci.Int64,
		ci.UInt8, ci.UInt16, ci.UInt32, ci.UInt64,
		ci.Float32, ci.Float64, ci.Boolean, ci.String,
		ci.Bytes, ci.Duration, ci.Timestamp:
		return TypeHandler{codeType: primitiveCodeType{t: t}}
	case ci.Optional:
		return TypeHandler{codeType: optionalCodeType{oracle: o, inner: t.Inner}}
	case ci.Sequence:
		return TypeHandler{codeType: sequenceCodeType{oracle: o, inner: t.Inner}}
	case ci.Map:
		return TypeHandler{codeType: mapCodeType{oracle: o, key: t.Key, value: t.Value}}
	case ci.Record:
		return TypeHandler{codeType: recordCodeType{name: t.Name}}
	case ci.Enum:
		return TypeHandler{codeType: enumCodeType{name: t.Name, isError: o.usedAsError(t.Name)}}
	case ci.Object:
		return TypeHandler{codeType: objectCodeType{name: t.Name, imp: t.Imp}}
	case ci.CallbackInterface:
		return TypeHandler{codeType: callbackInterfaceCodeType{name: t.Name}}
	case ci.Custom:
		return TypeHandler{codeType: customCodeType{name: t.Name, builtin: t.Builtin}}
	case ci.External:
		return TypeHandler{codeType: externalCodeType{name: t.Name, ns: t.Namespace, kind: t.Kind}}
	case ci.Executor:
		return TypeHandler{codeType: executorCodeType{}}
	default:
		panic(fmt.Sprintf("unreachable: unknown type %T", t))
	}
}

// ObjectNames returns the interface and implementation struct names of an
// object. Objects foreign code may implement keep the class name for the
// interface, since that is what their type label refers to.
func ObjectNames(name string, imp ci.ObjectImpl) (iface, impl string) {
	cn := common.ClassName(name)
	if imp == ci.ObjectImplCallbackTrait {
		return cn, cn + "Impl"
	}
	return cn + "Interface", cn
}

// CheckClassNames fails when two declarations of c would render to the same Go
// type name.
func CheckClassNames(c *ci.ComponentInterface) error {
	owners := map[string]string{}
	claim := func(goName, declared string) error {
		if prev, ok := owners[goName]; ok && prev != declared {
			return errors.Newf("type names %q and %q both render as %s", prev, declared, goName)
		}
		owners[goName] = declared
		return nil
	}

	type decl struct{ goName, declared string }
	var decls []decl
	for _, r := range c.Records() {
		decls = append(decls, decl{common.ClassName(r.Name), r.Name})
	}
	for _, e := range c.Enums() {
		decls = append(decls, decl{common.ClassName(e.Name), e.Name})
	}
	for _, ob := range c.Objects() {
		iface, impl := ObjectNames(ob.Name, ob.Imp)
		decls = append(decls, decl{iface, ob.Name}, decl{impl, ob.Name})
	}
	for _, cb := range c.CallbackInterfaces() {
		decls = append(decls, decl{common.ClassName(cb.Name), cb.Name})
	}
	for _, ct := range c.CustomTypes() {
		decls = append(decls, decl{common.ClassName(ct.Name), ct.Name})
	}
	sort.SliceStable(decls, func(i, j int) bool { return decls[i].declared < decls[j].declared })

	for _, d := range decls {
		if err := claim(d.goName, d.declared); err != nil {
			return err
		}
	}
	return nil
}
