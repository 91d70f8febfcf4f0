package common

import (
	"sort"
	"strings"
)

type ImportKind int

const (
	// ImportModule is a plain `import "path"`.
	ImportModule ImportKind = iota
	// ImportDotModule imports every exported name: `import . "path"`.
	ImportDotModule
)

// ImportRequirement is one import line of a generated Go file.
type ImportRequirement struct {
	Kind ImportKind
	Path string
}

// Less orders requirements by kind, then path.
func (r ImportRequirement) Less(o ImportRequirement) bool {
	if r.Kind != o.Kind {
		return r.Kind < o.Kind
	}
	return r.Path < o.Path
}

// Render returns the line as it appears inside an import block.
func (r ImportRequirement) Render() string {
	if r.Kind == ImportDotModule {
		return `. "` + r.Path + `"`
	}
	return `"` + r.Path + `"`
}

// Imports accumulates the imports required while rendering one file.
type Imports struct {
	goMod string
	set   map[ImportRequirement]struct{}
}

// NewImports returns an empty accumulator. goMod is the module root prepended to
// imports of other generated packages; it may be empty.
func NewImports(goMod string) *Imports {
	return &Imports{
		goMod: strings.TrimRight(goMod, "/"),
		set:   map[ImportRequirement]struct{}{},
	}
}

func (i *Imports) Add(req ImportRequirement) {
	i.set[req] = struct{}{}
}

func (i *Imports) AddModule(path string) {
	i.Add(ImportRequirement{Kind: ImportModule, Path: path})
}

func (i *Imports) AddDotModule(path string) {
	i.Add(ImportRequirement{Kind: ImportDotModule, Path: path})
}

// AddLocal imports the package generated for another component namespace, which
// the generator writes to <out>/<mod>/<mod>.
func (i *Imports) AddLocal(mod string) {
	path := mod + "/" + mod
	if i.goMod != "" {
		path = i.goMod + "/" + path
	}
	i.AddModule(path)
}

// Flush returns the deduplicated requirements in a stable order. It does not
// reset the accumulator.
func (i *Imports) Flush() []ImportRequirement {
	out := make([]ImportRequirement, 0, len(i.set))
	for req := range i.set {
		out = append(out, req)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Less(out[b]) })
	return out
}
