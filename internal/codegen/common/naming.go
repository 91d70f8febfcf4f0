package common

import (
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"
)

// goKeywords is the reserved word list from https://go.dev/ref/spec#Keywords.
var goKeywords = map[string]struct{}{
	"break": {}, "case": {}, "chan": {}, "const": {}, "continue": {},
	"default": {}, "defer": {}, "else": {}, "fallthrough": {}, "for": {},
	"func": {}, "go": {}, "goto": {}, "if": {}, "import": {},
	"interface": {}, "map": {}, "package": {}, "range": {}, "return": {},
	"select": {}, "struct": {}, "switch": {}, "type": {}, "var": {},
}

func IsGoKeyword(name string) bool {
	_, ok := goKeywords[name]
	return ok
}

func ToPascalCase(s string) string {
	return strcase.ToCamel(s)
}

func ToCamelCase(s string) string {
	return strcase.ToLowerCamel(s)
}

func ToSnakeCase(s string) string {
	return strcase.ToSnake(s)
}

func ToScreamingSnakeCase(s string) string {
	return strcase.ToScreamingSnake(s)
}

// ClassName renders a type name (records, enums, errors, objects).
func ClassName(name string) string {
	return ToPascalCase(name)
}

func FnName(name string) string {
	return ToPascalCase(name)
}

// VarName renders a local variable or parameter name. Go keywords are prefixed
// with "var_" before folding, so `type` becomes `varType`.
func VarName(name string) string {
	if IsGoKeyword(name) {
		name = "var_" + name
	}
	return ToCamelCase(name)
}

func EnumVariantName(name string) string {
	return ToPascalCase(name)
}

func FieldName(name string) string {
	return ToPascalCase(name)
}

// ErrorFieldName renders a field of an error variant. A field called `error`
// would clash with the Error method, so it becomes `Error_`.
func ErrorFieldName(name string) string {
	if name == "error" {
		return "Error_"
	}
	return ToPascalCase(name)
}

// ImportName derives a module path safe name from a logical module name.
func ImportName(name string) string {
	return ToSnakeCase(name)
}

// OrPosVar names an anonymous value after its position.
func OrPosVar(name string, pos int) string {
	if name == "" {
		return "var" + strconv.Itoa(pos)
	}
	return name
}

// OrPosField names an anonymous field after its position.
func OrPosField(name string, pos int) string {
	if name == "" {
		return "Field" + strconv.Itoa(pos)
	}
	return name
}

// IfGuardName is the include guard of a C declaration.
func IfGuardName(name string) string {
	return "UNIFFI_FFIDEF_" + ToScreamingSnakeCase(name)
}

// Docstring renders text as a Go comment block indented by tabs. Empty text
// renders nothing.
func Docstring(text string, tabs int) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	lines := strings.Split(dedent(strings.Trim(text, "\n")), "\n")
	indent := strings.Repeat("\t", tabs)
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(indent)
		if strings.TrimSpace(line) == "" {
			b.WriteString("//\n")
			continue
		}
		b.WriteString("// ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func dedent(text string) string {
	lines := strings.Split(text, "\n")
	prefix := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if prefix == -1 || n < prefix {
			prefix = n
		}
	}
	if prefix <= 0 {
		return text
	}
	for i, line := range lines {
		if len(line) >= prefix {
			lines[i] = line[prefix:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.Join(lines, "\n")
}
