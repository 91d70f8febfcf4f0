package ci

// Literal is a constant value attached to a field or argument default.
type Literal interface {
	isLiteral()
}

type Radix int

const (
	RadixDecimal Radix = iota
	RadixOctal
	RadixHexadecimal
)

type (
	LiteralBoolean struct{ Value bool }
	LiteralString  struct{ Value string }

	// LiteralInt carries the declared type so the literal can be typed on render.
	LiteralInt struct {
		Value int64
		Radix Radix
		Type  Type
	}

	LiteralUInt struct {
		Value uint64
		Radix Radix
		Type  Type
	}

	// LiteralFloat keeps the source text to avoid rounding through float64.
	LiteralFloat struct {
		Text string
		Type Type
	}

	LiteralEnum struct {
		Variant string
		Type    Type
	}

	LiteralNone struct{}

	LiteralSome struct{ Inner Literal }
)

func (LiteralBoolean) isLiteral() {}
func (LiteralString) isLiteral()  {}
func (LiteralInt) isLiteral()     {}
func (LiteralUInt) isLiteral()    {}
func (LiteralFloat) isLiteral()   {}
func (LiteralEnum) isLiteral()    {}
func (LiteralNone) isLiteral()    {}
func (LiteralSome) isLiteral()    {}
