// Package lexer turns expression text into typed tokens and performs the
// lexical validation the tree builder relies on.
//
// Supported syntax:
//
//	numbers      12  3.5  .5  1e-3  2.5E+4
//	variables    x  rate  x_1
//	operators    + - * / % ^ **  and the aliases − – × · ∗ ÷ ∕
//	unary        prefix - + √ sqrt, postfix ² ³
//	grouping     ( ) [ ] { }
//
// A + or - is unary at the start of input, after an open bracket, or after
// another operator other than a postfix one.
package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/randalmurphal/exprengine/pkg/exprengine/errors"
	"github.com/randalmurphal/exprengine/pkg/exprengine/token"
)

// Result is the outcome of tokenizing a string. Errors lists every
// lexical problem found; Tokens still contains Unknown tokens for them.
type Result struct {
	Tokens []token.Token
	Errors []string
}

// Tokenizer is the lexical collaborator used by the engine and the
// equivalence oracle.
type Tokenizer interface {
	// Tokenize splits text into tokens.
	Tokenize(text string) Result

	// Validate checks text for lexical and structural problems that the
	// tokenizer alone does not report.
	Validate(text string) error
}

// Standard is the built-in Tokenizer.
type Standard struct{}

// Compile-time interface check.
var _ Tokenizer = Standard{}

// Default is the Tokenizer used when none is configured.
var Default Tokenizer = Standard{}

// Tokenize splits text into tokens using the default tokenizer.
func Tokenize(text string) Result {
	return Default.Tokenize(text)
}

// Validate checks text using the default tokenizer.
func Validate(text string) error {
	return Default.Validate(text)
}

// Tokenize implements Tokenizer.
func (Standard) Tokenize(text string) Result {
	s := &scanner{src: text, expectOperand: true}
	s.run()
	return Result{Tokens: s.tokens, Errors: s.errs}
}

type scanner struct {
	src    string
	pos    int
	tokens []token.Token
	errs   []string

	// expectOperand is true where a + or - would be a prefix operator.
	expectOperand bool
}

func (s *scanner) run() {
	for s.pos < len(s.src) {
		r, width := utf8.DecodeRuneInString(s.src[s.pos:])
		switch {
		case unicode.IsSpace(r):
			s.pos += width
		case isDigit(r) || (r == '.' && s.pos+1 < len(s.src) && isDigit(rune(s.src[s.pos+1]))):
			s.number()
		case r == '_' || unicode.IsLetter(r) && r < utf8.RuneSelf:
			s.identifier()
		case r == '(' || r == '[' || r == '{':
			s.emit(token.Open(string(r)), true)
			s.pos += width
		case r == ')' || r == ']' || r == '}':
			s.emit(token.Close(string(r)), false)
			s.pos += width
		case strings.HasPrefix(s.src[s.pos:], "**"):
			s.emit(token.Binary("**"), true)
			s.pos += 2
		default:
			s.operator(r, width)
		}
	}
}

func (s *scanner) emit(t token.Token, expectOperand bool) {
	s.tokens = append(s.tokens, t)
	s.expectOperand = expectOperand
}

func (s *scanner) number() {
	start := s.pos
	s.digits()
	if s.pos < len(s.src) && s.src[s.pos] == '.' {
		s.pos++
		s.digits()
	}
	if s.pos < len(s.src) && (s.src[s.pos] == 'e' || s.src[s.pos] == 'E') {
		end := s.pos + 1
		if end < len(s.src) && (s.src[end] == '+' || s.src[end] == '-') {
			end++
		}
		if end < len(s.src) && isDigit(rune(s.src[end])) {
			s.pos = end
			s.digits()
		}
	}
	s.emit(token.Num(s.src[start:s.pos]), false)
}

func (s *scanner) digits() {
	for s.pos < len(s.src) && isDigit(rune(s.src[s.pos])) {
		s.pos++
	}
}

func (s *scanner) identifier() {
	start := s.pos
	for s.pos < len(s.src) {
		c := rune(s.src[s.pos])
		if c != '_' && !isDigit(c) && !(c < utf8.RuneSelf && unicode.IsLetter(c)) {
			break
		}
		s.pos++
	}
	name := s.src[start:s.pos]
	if name == "sqrt" {
		s.emit(token.Unary(name), true)
		return
	}
	s.emit(token.Var(name), false)
}

func (s *scanner) operator(r rune, width int) {
	glyph := string(r)
	spec, ok := token.Lookup(glyph)
	if !ok {
		s.errs = append(s.errs, fmt.Sprintf("Unexpected character '%s' at position %d", glyph, s.pos))
		s.tokens = append(s.tokens, token.Token{Kind: token.Unknown, Text: glyph})
		s.pos += width
		return
	}
	s.pos += width

	switch {
	case spec.Fixity == token.Postfix:
		s.emit(token.Unary(glyph), false)
	case !spec.Binary:
		s.emit(token.Unary(glyph), true)
	case s.expectOperand && spec.Fixity == token.Prefix:
		s.emit(token.Unary(glyph), true)
	default:
		s.emit(token.Binary(glyph), true)
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// Validate implements Tokenizer.
func (t Standard) Validate(text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.ErrEmptyExpression
	}

	res := t.Tokenize(text)
	if len(res.Errors) > 0 {
		return errors.InvalidSyntax(res.Errors[0])
	}

	depth := 0
	// afterOperand is true when the previous token completed an operand.
	afterOperand := false
	var prev token.Token
	for i, tok := range res.Tokens {
		switch tok.Kind {
		case token.Number, token.Variable:
			if afterOperand {
				return errors.InvalidSyntax(fmt.Sprintf("Missing operator between '%s' and '%s'", prev.Text, tok.Text))
			}
			afterOperand = true
		case token.Grouping:
			if tok.IsOpen() {
				if afterOperand {
					return errors.InvalidSyntax(fmt.Sprintf("Missing operator before '%s'", tok.Text))
				}
				depth++
				afterOperand = false
				break
			}
			depth--
			if depth < 0 {
				return errors.ErrMismatchedParentheses
			}
			if !afterOperand {
				if prev.IsOpen() {
					return errors.InvalidSyntax("Empty parentheses")
				}
				return errors.MissingOperand(prev.Text)
			}
		case token.Operator:
			switch {
			case tok.Arity == 2:
				if !afterOperand {
					return errors.MissingOperand(tok.Text)
				}
				afterOperand = false
			case token.IsPostfix(tok.Text):
				if !afterOperand {
					return errors.MissingOperand(tok.Text)
				}
			default:
				if afterOperand {
					return errors.InvalidSyntax(fmt.Sprintf("Missing operator before '%s'", tok.Text))
				}
			}
		}
		if i == len(res.Tokens)-1 && !afterOperand {
			if tok.IsOpen() {
				return errors.ErrMismatchedParentheses
			}
			return errors.MissingOperand(tok.Text)
		}
		prev = tok
	}
	if depth != 0 {
		return errors.ErrMismatchedParentheses
	}
	return nil
}
