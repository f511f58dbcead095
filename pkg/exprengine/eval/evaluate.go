// Package eval evaluates expression trees against variable bindings.
package eval

import (
	"math"

	"github.com/randalmurphal/exprengine/pkg/exprengine/ast"
	"github.com/randalmurphal/exprengine/pkg/exprengine/errors"
	"github.com/randalmurphal/exprengine/pkg/exprengine/token"
)

// Bindings maps variable names to values.
type Bindings map[string]float64

// Evaluate computes the value of n. It stops at the first failure and
// returns an *errors.Error describing it; it never panics on expected
// failures such as unbound variables or division by zero.
func Evaluate(n ast.Node, vars Bindings) (float64, error) {
	switch x := n.(type) {
	case *ast.Number:
		return x.Value, nil
	case *ast.Variable:
		v, ok := vars[x.Name]
		if !ok {
			return 0, errors.UnboundVariable(x.Name)
		}
		return v, nil
	case *ast.Unary:
		operand, err := Evaluate(x.Operand, vars)
		if err != nil {
			return 0, err
		}
		return applyUnary(x.Op, operand)
	case *ast.Binary:
		left, err := Evaluate(x.Left, vars)
		if err != nil {
			return 0, err
		}
		right, err := Evaluate(x.Right, vars)
		if err != nil {
			return 0, err
		}
		return applyBinary(x.Op, left, right)
	default:
		return 0, errors.ErrInvalidExpressionStructure
	}
}

func applyUnary(op string, v float64) (float64, error) {
	switch token.Canonical(op) {
	case token.Sub:
		return -v, nil
	case token.Add:
		return v, nil
	case token.Sqrt:
		if v < 0 {
			return 0, errors.ErrNegativeSqrtDomain
		}
		return math.Sqrt(v), nil
	case token.Square:
		return v * v, nil
	case token.Cube:
		return v * v * v, nil
	default:
		return 0, errors.UnknownOperator(op)
	}
}

func applyBinary(op string, l, r float64) (float64, error) {
	switch token.Canonical(op) {
	case token.Add:
		return l + r, nil
	case token.Sub:
		return l - r, nil
	case token.Mul:
		return l * r, nil
	case token.Div:
		if r == 0 {
			return 0, errors.ErrDivisionByZero
		}
		return l / r, nil
	case token.Mod:
		if r == 0 {
			return 0, errors.ErrModuloByZero
		}
		return math.Mod(l, r), nil
	case token.Pow:
		return math.Pow(l, r), nil
	default:
		return 0, errors.UnknownOperator(op)
	}
}
