// Package format renders expression trees as text with minimal
// parenthesization.
//
// The printer carries the parent's precedence down to each child. A binary
// child is parenthesized when its own precedence is lower than the
// parent's, or when the precedences tie and dropping the parentheses would
// regroup the operands: the right child of a left-associative parent
// (a - (b - c)) or the left child of a right-associative one ((a ^ b) ^ c).
//
// Output produced from a built tree reparses to a structurally equal tree.
package format

import (
	"strconv"
	"strings"

	"github.com/randalmurphal/exprengine/pkg/exprengine/ast"
	"github.com/randalmurphal/exprengine/pkg/exprengine/token"
)

// Options controls rendering.
type Options struct {
	// UseUnicode renders *, / and - as ×, ÷ and −.
	UseUnicode bool

	// Spaces puts a space on both sides of binary operators.
	Spaces bool

	// MinimalParens only parenthesizes where grouping requires it. When
	// false every binary child is parenthesized.
	MinimalParens bool
}

// DefaultOptions returns the default rendering options.
func DefaultOptions() Options {
	return Options{
		UseUnicode:    false,
		Spaces:        true,
		MinimalParens: true,
	}
}

// Option modifies Options.
type Option func(*Options)

// WithUnicode enables Unicode operator glyphs. Default: false
func WithUnicode(enabled bool) Option {
	return func(o *Options) {
		o.UseUnicode = enabled
	}
}

// WithSpaces enables spaces around binary operators. Default: true
func WithSpaces(enabled bool) Option {
	return func(o *Options) {
		o.Spaces = enabled
	}
}

// WithMinimalParens enables minimal parenthesization. Default: true
func WithMinimalParens(enabled bool) Option {
	return func(o *Options) {
		o.MinimalParens = enabled
	}
}

// Format renders n using the default options modified by opts.
func Format(n ast.Node, opts ...Option) string {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return FormatWith(n, o)
}

// FormatWith renders n using o.
func FormatWith(n ast.Node, o Options) string {
	p := printer{opts: o}
	p.node(n, 0, side{})
	return p.sb.String()
}

// side describes the position of a node under a binary parent.
type side struct {
	right       bool
	parentRight bool // parent is right-associative
}

type printer struct {
	opts Options
	sb   strings.Builder
}

func (p *printer) node(n ast.Node, parentPrec int, pos side) {
	switch x := n.(type) {
	case *ast.Number:
		p.number(x.Value, parentPrec)
	case *ast.Variable:
		p.sb.WriteString(x.Name)
	case *ast.Unary:
		p.unary(x)
	case *ast.Binary:
		p.binary(x, parentPrec, pos)
	}
}

func (p *printer) number(v float64, parentPrec int) {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if v < 0 || (v == 0 && strings.HasPrefix(s, "-")) {
		if p.opts.UseUnicode {
			s = "−" + s[1:]
		}
		if parentPrec > 0 {
			s = "(" + s + ")"
		}
	}
	p.sb.WriteString(s)
}

func (p *printer) unary(u *ast.Unary) {
	op := token.Canonical(u.Op)
	if token.IsPostfix(op) {
		_, leaf := u.Operand.(*ast.Variable)
		if num, ok := u.Operand.(*ast.Number); ok && num.Value >= 0 {
			leaf = true
		}
		if leaf {
			p.node(u.Operand, token.UnaryPrecedence, side{})
		} else {
			p.sb.WriteByte('(')
			p.node(u.Operand, 0, side{})
			p.sb.WriteByte(')')
		}
		p.sb.WriteString(op)
		return
	}

	if p.opts.UseUnicode {
		p.sb.WriteString(token.UnicodeGlyph(op))
	} else {
		p.sb.WriteString(op)
	}
	// Binary operands parenthesize themselves at unary precedence.
	p.node(u.Operand, token.UnaryPrecedence, side{})
}

func (p *printer) binary(b *ast.Binary, parentPrec int, pos side) {
	op := token.Canonical(b.Op)
	prec, rightAssoc := token.AdditivePrecedence, false
	if spec, ok := token.Lookup(op); ok && spec.Binary {
		prec, rightAssoc = spec.Precedence, spec.RightAssoc
	}

	wrap := p.needsParens(prec, parentPrec, pos)
	if wrap {
		p.sb.WriteByte('(')
	}

	p.node(b.Left, prec, side{right: false, parentRight: rightAssoc})
	glyph := op
	if p.opts.UseUnicode {
		glyph = token.UnicodeGlyph(op)
	}
	if p.opts.Spaces {
		p.sb.WriteString(" " + glyph + " ")
	} else {
		p.sb.WriteString(glyph)
	}
	p.node(b.Right, prec, side{right: true, parentRight: rightAssoc})

	if wrap {
		p.sb.WriteByte(')')
	}
}

func (p *printer) needsParens(prec, parentPrec int, pos side) bool {
	if parentPrec == 0 {
		return false
	}
	if !p.opts.MinimalParens {
		return true
	}
	if parentPrec > prec {
		return true
	}
	if parentPrec == prec {
		if pos.parentRight {
			return !pos.right
		}
		return pos.right
	}
	return false
}
