package token

// Precedence levels shared by the builder and the formatter.
const (
	AdditivePrecedence       = 1
	MultiplicativePrecedence = 2
	PowerPrecedence          = 3
	UnaryPrecedence          = 4
)

// Canonical operator spellings.
const (
	Add    = "+"
	Sub    = "-"
	Mul    = "*"
	Div    = "/"
	Mod    = "%"
	Pow    = "^"
	Sqrt   = "√"
	Square = "²"
	Cube   = "³"
)

// Fixity describes where a unary operator sits relative to its operand.
type Fixity int

const (
	Infix Fixity = iota
	Prefix
	Postfix
)

// OperatorSpec describes a canonical operator.
type OperatorSpec struct {
	Canonical  string
	Precedence int
	RightAssoc bool
	// Fixity of the operator when used with one operand. Binary-only
	// operators report Infix.
	Fixity Fixity
	// Binary is true when the glyph can take two operands.
	Binary bool
}

var specs = map[string]OperatorSpec{
	Add:    {Canonical: Add, Precedence: AdditivePrecedence, Fixity: Prefix, Binary: true},
	Sub:    {Canonical: Sub, Precedence: AdditivePrecedence, Fixity: Prefix, Binary: true},
	Mul:    {Canonical: Mul, Precedence: MultiplicativePrecedence, Binary: true},
	Div:    {Canonical: Div, Precedence: MultiplicativePrecedence, Binary: true},
	Mod:    {Canonical: Mod, Precedence: MultiplicativePrecedence, Binary: true},
	Pow:    {Canonical: Pow, Precedence: PowerPrecedence, RightAssoc: true, Binary: true},
	Sqrt:   {Canonical: Sqrt, Precedence: UnaryPrecedence, RightAssoc: true, Fixity: Prefix},
	Square: {Canonical: Square, Precedence: UnaryPrecedence, Fixity: Postfix},
	Cube:   {Canonical: Cube, Precedence: UnaryPrecedence, Fixity: Postfix},
}

var aliases = map[string]string{
	"−":    Sub,
	"–":    Sub,
	"×":    Mul,
	"·":    Mul,
	"∗":    Mul,
	"÷":    Div,
	"∕":    Div,
	"**":   Pow,
	"sqrt": Sqrt,
}

// Canonical maps an operator glyph to its canonical spelling. Unknown
// glyphs are returned unchanged.
func Canonical(op string) string {
	if c, ok := aliases[op]; ok {
		return c
	}
	return op
}

// Lookup returns the spec for an operator glyph or any of its aliases.
func Lookup(op string) (OperatorSpec, bool) {
	spec, ok := specs[Canonical(op)]
	return spec, ok
}

// IsPostfix reports whether op is a postfix unary operator.
func IsPostfix(op string) bool {
	spec, ok := Lookup(op)
	return ok && spec.Fixity == Postfix
}

// UnicodeGlyph returns the display glyph used by the formatter in Unicode
// mode. Operators without a Unicode rendering keep their canonical form.
func UnicodeGlyph(op string) string {
	switch c := Canonical(op); c {
	case Mul:
		return "×"
	case Div:
		return "÷"
	case Sub:
		return "−"
	default:
		return c
	}
}
