// Package ast defines the expression tree shared by the builder, simplifier,
// formatter, evaluator and equivalence oracle.
//
// Node is a closed sum type: the only implementations are *Number,
// *Variable, *Unary and *Binary. Consumers switch on the concrete type.
// Nodes are never mutated after construction, so a tree may be shared
// between goroutines and reused as input to independent transforms.
package ast

import (
	"sort"

	"github.com/randalmurphal/exprengine/pkg/exprengine/token"
)

// Node is an expression tree node.
type Node interface {
	node()
}

// Number is a numeric literal leaf.
type Number struct {
	Value float64
}

// Variable is a named leaf resolved at evaluation time.
type Variable struct {
	Name string
}

// Unary applies an operator to one operand.
type Unary struct {
	Op      string
	Operand Node
}

// Binary applies an operator to two ordered operands.
type Binary struct {
	Op    string
	Left  Node
	Right Node
}

func (*Number) node()   {}
func (*Variable) node() {}
func (*Unary) node()    {}
func (*Binary) node()   {}

// Compile-time interface checks.
var (
	_ Node = (*Number)(nil)
	_ Node = (*Variable)(nil)
	_ Node = (*Unary)(nil)
	_ Node = (*Binary)(nil)
)

// Num creates a number node.
func Num(v float64) *Number {
	return &Number{Value: v}
}

// Var creates a variable node.
func Var(name string) *Variable {
	return &Variable{Name: name}
}

// Un creates a unary node.
func Un(op string, operand Node) *Unary {
	return &Unary{Op: op, Operand: operand}
}

// Bin creates a binary node.
func Bin(op string, left, right Node) *Binary {
	return &Binary{Op: op, Left: left, Right: right}
}

// IsNumber reports whether n is a number literal equal to v.
func IsNumber(n Node, v float64) bool {
	num, ok := n.(*Number)
	return ok && num.Value == v
}

// Equal reports whether a and b are structurally equal: same variants, same
// literal values and names, same canonical operators, equal children.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case *Number:
		y, ok := b.(*Number)
		return ok && x.Value == y.Value
	case *Variable:
		y, ok := b.(*Variable)
		return ok && x.Name == y.Name
	case *Unary:
		y, ok := b.(*Unary)
		return ok && token.Canonical(x.Op) == token.Canonical(y.Op) && Equal(x.Operand, y.Operand)
	case *Binary:
		y, ok := b.(*Binary)
		return ok && token.Canonical(x.Op) == token.Canonical(y.Op) &&
			Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	default:
		return a == nil && b == nil
	}
}

// Variables returns the sorted, de-duplicated names of every variable
// referenced by the given trees.
func Variables(nodes ...Node) []string {
	seen := make(map[string]struct{})
	for _, n := range nodes {
		collect(n, seen)
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func collect(n Node, seen map[string]struct{}) {
	switch x := n.(type) {
	case *Variable:
		seen[x.Name] = struct{}{}
	case *Unary:
		collect(x.Operand, seen)
	case *Binary:
		collect(x.Left, seen)
		collect(x.Right, seen)
	}
}

// Depth returns the nesting depth of n. Leaves have depth 1.
func Depth(n Node) int {
	switch x := n.(type) {
	case *Unary:
		return 1 + Depth(x.Operand)
	case *Binary:
		return 1 + max(Depth(x.Left), Depth(x.Right))
	case nil:
		return 0
	default:
		return 1
	}
}

// Size returns the number of nodes in n.
func Size(n Node) int {
	switch x := n.(type) {
	case *Unary:
		return 1 + Size(x.Operand)
	case *Binary:
		return 1 + Size(x.Left) + Size(x.Right)
	case nil:
		return 0
	default:
		return 1
	}
}
