package golang

import (
	"fmt"
	"strconv"

	"github.com/Alia5/uniffi-bindgen-go/internal/codegen/ci"
)

// primitiveLiteral renders lit as a constant of t. Numbers are wrapped in a
// conversion to label so that they keep their declared width; int32 is left bare
// since untyped integer constants already default to it in argument position.
func primitiveLiteral(t ci.Type, label string, lit ci.Literal) string {
	switch lit := lit.(type) {
	case ci.LiteralBoolean:
		if _, ok := t.(ci.Boolean); !ok {
			break
		}
		return strconv.FormatBool(lit.Value)
	case ci.LiteralString:
		if _, ok := t.(ci.String); !ok {
			break
		}
		return strconv.Quote(lit.Value)
	case ci.LiteralInt:
		if !isNumber(t) {
			break
		}
		neg := lit.Value < 0
		abs := uint64(lit.Value)
		if neg {
			abs = uint64(-lit.Value)
		}
		return typedNumber(t, label, signed(neg, formatRadix(abs, lit.Radix)))
	case ci.LiteralUInt:
		if !isNumber(t) {
			break
		}
		return typedNumber(t, label, formatRadix(lit.Value, lit.Radix))
	case ci.LiteralFloat:
		if !isNumber(t) {
			break
		}
		return typedNumber(t, label, lit.Text)
	}
	panic(fmt.Sprintf("unreachable: %T is not a literal of %s", lit, label))
}

func typedNumber(t ci.Type, label, text string) string {
	if _, ok := t.(ci.Int32); ok {
		return text
	}
	return label + "(" + text + ")"
}

func formatRadix(v uint64, radix ci.Radix) string {
	switch radix {
	case ci.RadixOctal:
		return "0o" + strconv.FormatUint(v, 8)
	case ci.RadixHexadecimal:
		return "0x" + strconv.FormatUint(v, 16)
	default:
		return strconv.FormatUint(v, 10)
	}
}

func signed(neg bool, text string) string {
	if neg {
		return "-" + text
	}
	return text
}

func isNumber(t ci.Type) bool {
	switch t.(type) {
	case ci.Int8, ci.Int16, ci.Int32, ci.Int64,
		ci.UInt8, ci.UInt16, ci.UInt32, ci.UInt64,
		ci.Float32, ci.Float64:
		return true
	default:
		return false
	}
}
