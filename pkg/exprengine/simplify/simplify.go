// Package simplify rewrites expression trees with constant folding and
// algebraic identities.
//
// Simplify makes a single post-order pass: children are simplified before
// their parent is inspected, so (x+0)*1 reduces to x. A rewrite that only
// becomes applicable after its parent has been processed is not revisited;
// this is not a fixpoint rewrite system.
//
// Folding never produces values the evaluator would reject: division or
// modulo by zero, square roots of negatives, and NaN or infinite results
// are left unfolded.
package simplify

import (
	"math"

	"github.com/randalmurphal/exprengine/pkg/exprengine/ast"
	"github.com/randalmurphal/exprengine/pkg/exprengine/token"
)

// Simplify returns a simplified copy of n. The input tree is not modified.
func Simplify(n ast.Node) ast.Node {
	switch x := n.(type) {
	case *ast.Unary:
		return simplifyUnary(x.Op, Simplify(x.Operand))
	case *ast.Binary:
		return simplifyBinary(x.Op, Simplify(x.Left), Simplify(x.Right))
	default:
		return n
	}
}

func simplifyUnary(op string, operand ast.Node) ast.Node {
	canon := token.Canonical(op)

	if canon == token.Sub {
		if inner, ok := operand.(*ast.Unary); ok && token.Canonical(inner.Op) == token.Sub {
			return inner.Operand
		}
	}

	if num, ok := operand.(*ast.Number); ok {
		if v, ok := foldUnary(canon, num.Value); ok {
			return ast.Num(v)
		}
	}

	if canon == token.Add {
		return operand
	}
	return ast.Un(op, operand)
}

func foldUnary(op string, v float64) (float64, bool) {
	var r float64
	switch op {
	case token.Sub:
		r = -v
	case token.Add:
		r = v
	case token.Sqrt:
		if v < 0 {
			return 0, false
		}
		r = math.Sqrt(v)
	case token.Square:
		r = v * v
	case token.Cube:
		r = v * v * v
	default:
		return 0, false
	}
	return r, finite(r)
}

func simplifyBinary(op string, left, right ast.Node) ast.Node {
	canon := token.Canonical(op)

	ln, lok := left.(*ast.Number)
	rn, rok := right.(*ast.Number)
	if lok && rok {
		if v, ok := foldBinary(canon, ln.Value, rn.Value); ok {
			return ast.Num(v)
		}
	}

	switch canon {
	case token.Add:
		if ast.IsNumber(right, 0) {
			return left
		}
		if ast.IsNumber(left, 0) {
			return right
		}
	case token.Sub:
		if ast.IsNumber(right, 0) {
			return left
		}
		if ast.Equal(left, right) {
			return ast.Num(0)
		}
	case token.Mul:
		if ast.IsNumber(left, 0) || ast.IsNumber(right, 0) {
			return ast.Num(0)
		}
		if ast.IsNumber(right, 1) {
			return left
		}
		if ast.IsNumber(left, 1) {
			return right
		}
	case token.Div:
		// 0/0 stays unfolded so the evaluator still reports it.
		if ast.IsNumber(left, 0) && !ast.IsNumber(right, 0) {
			return ast.Num(0)
		}
		if ast.IsNumber(right, 1) {
			return left
		}
		if ast.Equal(left, right) && !ast.IsNumber(right, 0) {
			return ast.Num(1)
		}
	case token.Pow:
		if ast.IsNumber(right, 0) {
			return ast.Num(1)
		}
		if ast.IsNumber(right, 1) {
			return left
		}
		if ast.IsNumber(left, 1) {
			return ast.Num(1)
		}
		if ast.IsNumber(left, 0) && rok && rn.Value > 0 {
			return ast.Num(0)
		}
	}

	return ast.Bin(op, left, right)
}

func foldBinary(op string, l, r float64) (float64, bool) {
	var v float64
	switch op {
	case token.Add:
		v = l + r
	case token.Sub:
		v = l - r
	case token.Mul:
		v = l * r
	case token.Div:
		if r == 0 {
			return 0, false
		}
		v = l / r
	case token.Mod:
		if r == 0 {
			return 0, false
		}
		v = math.Mod(l, r)
	case token.Pow:
		v = math.Pow(l, r)
	default:
		return 0, false
	}
	return v, finite(v)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
