// Package token defines the typed tokens consumed by the tree builder and
// the operator glyph table shared by every stage of the engine.
package token

import "fmt"

// Kind classifies a token.
type Kind int

const (
	// Unknown marks text the tokenizer could not classify.
	Unknown Kind = iota

	// Number is a numeric literal.
	Number

	// Variable is an identifier bound at evaluation time.
	Variable

	// Operator is a unary or binary operator.
	Operator

	// Grouping is an opening or closing bracket.
	Grouping
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Variable:
		return "variable"
	case Operator:
		return "operator"
	case Grouping:
		return "grouping"
	default:
		return "unknown"
	}
}

// Token is a single lexical unit. Arity, Precedence and RightAssoc are only
// meaningful for Operator tokens.
type Token struct {
	Kind       Kind
	Text       string
	Arity      int
	Precedence int
	RightAssoc bool
}

// String returns a debug representation of the token.
func (t Token) String() string {
	if t.Kind == Operator {
		return fmt.Sprintf("%s(%q/%d p=%d)", t.Kind, t.Text, t.Arity, t.Precedence)
	}
	return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
}

// Num creates a number token.
func Num(text string) Token {
	return Token{Kind: Number, Text: text}
}

// Var creates a variable token.
func Var(name string) Token {
	return Token{Kind: Variable, Text: name}
}

// Open creates an opening grouping token.
func Open(text string) Token {
	return Token{Kind: Grouping, Text: text}
}

// Close creates a closing grouping token.
func Close(text string) Token {
	return Token{Kind: Grouping, Text: text}
}

// Binary creates a binary operator token using the glyph table for
// precedence and associativity. Unrecognized glyphs get precedence 0.
func Binary(text string) Token {
	t := Token{Kind: Operator, Text: text, Arity: 2}
	if spec, ok := Lookup(text); ok {
		t.Precedence = spec.Precedence
		t.RightAssoc = spec.RightAssoc
	}
	return t
}

// Unary creates a unary operator token.
func Unary(text string) Token {
	return Token{Kind: Operator, Text: text, Arity: 1, Precedence: UnaryPrecedence, RightAssoc: true}
}

// Family identifies a bracket pair.
type Family int

const (
	// NoFamily is returned for non-grouping text.
	NoFamily Family = iota
	Paren
	Bracket
	Brace
)

// IsOpen reports whether t is an opening bracket.
func (t Token) IsOpen() bool {
	if t.Kind != Grouping {
		return false
	}
	switch t.Text {
	case "(", "[", "{":
		return true
	}
	return false
}

// IsClose reports whether t is a closing bracket.
func (t Token) IsClose() bool {
	if t.Kind != Grouping {
		return false
	}
	switch t.Text {
	case ")", "]", "}":
		return true
	}
	return false
}

// Family returns the bracket family of a grouping token.
func (t Token) Family() Family {
	if t.Kind != Grouping {
		return NoFamily
	}
	switch t.Text {
	case "(", ")":
		return Paren
	case "[", "]":
		return Bracket
	case "{", "}":
		return Brace
	}
	return NoFamily
}
