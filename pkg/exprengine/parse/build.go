// Package parse builds expression trees from token streams using the
// shunting-yard algorithm.
//
// Two explicit stacks hold the build state: an output stack of completed
// nodes and an operator stack of pending operators and open brackets. Long
// flat inputs such as 1+1+1+... never recurse.
//
// Precedence ties reduce eagerly for left-associative operators and defer
// for right-associative ones, so 8-4-2 builds as (8-4)-2 and 2^3^4 builds
// as 2^(3^4). Unary operators are pushed without reduction and always
// reduce before a following binary operator.
package parse

import (
	stderrors "errors"
	"strconv"

	"github.com/randalmurphal/exprengine/pkg/exprengine/ast"
	"github.com/randalmurphal/exprengine/pkg/exprengine/errors"
	"github.com/randalmurphal/exprengine/pkg/exprengine/token"
)

// DefaultMaxDepth is the default limit on tree depth.
const DefaultMaxDepth = 10000

type buildConfig struct {
	strictBrackets bool
	maxDepth       int
}

func defaultBuildConfig() buildConfig {
	return buildConfig{
		strictBrackets: true,
		maxDepth:       DefaultMaxDepth,
	}
}

// Option configures Build.
type Option func(*buildConfig)

// WithStrictBrackets requires closing brackets to match the family of the
// bracket they close, so "(x]" is rejected. Default: true.
func WithStrictBrackets(strict bool) Option {
	return func(c *buildConfig) {
		c.strictBrackets = strict
	}
}

// WithMaxDepth limits the depth of the built tree. Values <= 0 are ignored.
// Default: 10000
func WithMaxDepth(n int) Option {
	return func(c *buildConfig) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

// entry is an output stack slot: a completed node and its depth.
type entry struct {
	node  ast.Node
	depth int
}

type builder struct {
	cfg    buildConfig
	output []entry
	ops    []token.Token
}

// Build converts tokens into an expression tree.
func Build(tokens []token.Token, opts ...Option) (ast.Node, error) {
	if len(tokens) == 0 {
		return nil, errors.ErrEmptyExpression
	}

	cfg := defaultBuildConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	b := &builder{
		cfg:    cfg,
		output: make([]entry, 0, len(tokens)),
		ops:    make([]token.Token, 0, len(tokens)),
	}

	for _, tok := range tokens {
		if err := b.consume(tok); err != nil {
			return nil, err
		}
	}

	for len(b.ops) > 0 {
		top := b.pop()
		if top.Kind == token.Grouping {
			return nil, errors.ErrMismatchedParentheses
		}
		if err := b.reduce(top); err != nil {
			return nil, err
		}
	}

	if len(b.output) != 1 {
		return nil, errors.ErrInvalidExpressionStructure
	}
	return b.output[0].node, nil
}

func (b *builder) consume(tok token.Token) error {
	switch tok.Kind {
	case token.Number:
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			if stderrors.Is(err, strconv.ErrRange) {
				return errors.NumberOutOfRange(tok.Text)
			}
			return errors.UnknownToken(tok.Text)
		}
		b.output = append(b.output, entry{node: ast.Num(v), depth: 1})
	case token.Variable:
		b.output = append(b.output, entry{node: ast.Var(tok.Text), depth: 1})
	case token.Operator:
		if tok.Arity == 1 {
			b.ops = append(b.ops, tok)
			return nil
		}
		for len(b.ops) > 0 {
			top := b.ops[len(b.ops)-1]
			if top.Kind == token.Grouping || !reducesBefore(top, tok) {
				break
			}
			b.pop()
			if err := b.reduce(top); err != nil {
				return err
			}
		}
		b.ops = append(b.ops, tok)
	case token.Grouping:
		if tok.IsOpen() {
			b.ops = append(b.ops, tok)
			return nil
		}
		return b.closeGroup(tok)
	default:
		return errors.UnknownToken(tok.Text)
	}
	return nil
}

// reducesBefore reports whether the pending operator top must be reduced
// before the incoming binary operator is pushed.
func reducesBefore(top, incoming token.Token) bool {
	if top.Arity == 1 {
		return true
	}
	if top.Precedence > incoming.Precedence {
		return true
	}
	return top.Precedence == incoming.Precedence && !incoming.RightAssoc
}

func (b *builder) closeGroup(closing token.Token) error {
	for len(b.ops) > 0 {
		top := b.pop()
		if top.Kind == token.Grouping {
			if b.cfg.strictBrackets && top.Family() != closing.Family() {
				return errors.ErrMismatchedParentheses
			}
			return nil
		}
		if err := b.reduce(top); err != nil {
			return err
		}
	}
	return errors.ErrMismatchedParentheses
}

func (b *builder) pop() token.Token {
	top := b.ops[len(b.ops)-1]
	b.ops = b.ops[:len(b.ops)-1]
	return top
}

// reduce combines the operands of op from the output stack into a new node.
func (b *builder) reduce(op token.Token) error {
	arity := op.Arity
	if arity != 1 {
		arity = 2
	}
	if len(b.output) < arity {
		return errors.MissingOperand(op.Text)
	}

	var e entry
	if arity == 1 {
		operand := b.output[len(b.output)-1]
		b.output = b.output[:len(b.output)-1]
		e = entry{node: ast.Un(op.Text, operand.node), depth: operand.depth + 1}
	} else {
		left := b.output[len(b.output)-2]
		right := b.output[len(b.output)-1]
		b.output = b.output[:len(b.output)-2]
		e = entry{node: ast.Bin(op.Text, left.node, right.node), depth: max(left.depth, right.depth) + 1}
	}

	if e.depth > b.cfg.maxDepth {
		return errors.TooDeep(b.cfg.maxDepth)
	}
	b.output = append(b.output, e)
	return nil
}
