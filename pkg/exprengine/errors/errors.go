// Package errors defines the error taxonomy shared by the engine stages.
//
// Every expected failure is returned as an *Error carrying a Kind:
//   - Lexical: rejected by the tokenizer or validator
//   - Build: the token stream does not form a tree
//   - Evaluation: the tree cannot be evaluated with the given bindings
//
// Errors are never panicked. Callers match kinds with errors.Is against the
// sentinel values declared here.
package errors

import (
	"errors"
	"fmt"
)

// Kind identifies a specific failure.
type Kind int

const (
	// KindUnknown is the zero value and never produced by the engine.
	KindUnknown Kind = iota

	// KindInvalidSyntax is reported by the tokenizer or validator.
	KindInvalidSyntax

	// KindEmptyExpression indicates an empty token stream.
	KindEmptyExpression

	// KindUnknownToken indicates a token of unknown kind.
	KindUnknownToken

	// KindMismatchedParentheses indicates unbalanced or mismatched brackets.
	KindMismatchedParentheses

	// KindMissingOperand indicates an operator without enough operands.
	KindMissingOperand

	// KindInvalidExpressionStructure indicates leftover operands after the build.
	KindInvalidExpressionStructure

	// KindExpressionTooDeep indicates a tree deeper than the configured limit.
	KindExpressionTooDeep

	// KindUnboundVariable indicates a variable with no binding.
	KindUnboundVariable

	// KindDivisionByZero indicates x / 0.
	KindDivisionByZero

	// KindModuloByZero indicates x % 0.
	KindModuloByZero

	// KindNegativeSqrtDomain indicates the square root of a negative number.
	KindNegativeSqrtDomain

	// KindUnknownOperator indicates an operator the evaluator cannot apply.
	KindUnknownOperator

	// KindNumberOutOfRange indicates a literal too large for float64.
	KindNumberOutOfRange
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInvalidSyntax:
		return "InvalidSyntax"
	case KindEmptyExpression:
		return "EmptyExpression"
	case KindUnknownToken:
		return "UnknownToken"
	case KindMismatchedParentheses:
		return "MismatchedParentheses"
	case KindMissingOperand:
		return "MissingOperand"
	case KindInvalidExpressionStructure:
		return "InvalidExpressionStructure"
	case KindExpressionTooDeep:
		return "ExpressionTooDeep"
	case KindUnboundVariable:
		return "UnboundVariable"
	case KindDivisionByZero:
		return "DivisionByZero"
	case KindModuloByZero:
		return "ModuloByZero"
	case KindNegativeSqrtDomain:
		return "NegativeSqrtDomain"
	case KindUnknownOperator:
		return "UnknownOperator"
	case KindNumberOutOfRange:
		return "NumberOutOfRange"
	default:
		return "Unknown"
	}
}

// Stage is the pipeline stage a Kind belongs to.
type Stage int

const (
	StageUnknown Stage = iota
	StageLex
	StageBuild
	StageEval
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageLex:
		return "lex"
	case StageBuild:
		return "build"
	case StageEval:
		return "eval"
	default:
		return "unknown"
	}
}

// Stage returns the pipeline stage that produces k.
func (k Kind) Stage() Stage {
	switch k {
	case KindInvalidSyntax:
		return StageLex
	case KindEmptyExpression, KindUnknownToken, KindMismatchedParentheses,
		KindMissingOperand, KindInvalidExpressionStructure, KindExpressionTooDeep,
		KindNumberOutOfRange:
		return StageBuild
	case KindUnboundVariable, KindDivisionByZero, KindModuloByZero,
		KindNegativeSqrtDomain, KindUnknownOperator:
		return StageEval
	default:
		return StageUnknown
	}
}

// Error is an engine failure with a kind and a human-readable message.
type Error struct {
	Kind    Kind
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error of the same kind, so sentinels compare by kind
// regardless of message detail.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Sentinel errors for errors.Is matching.
var (
	ErrInvalidSyntax              = New(KindInvalidSyntax, "Invalid syntax")
	ErrEmptyExpression            = New(KindEmptyExpression, "Empty expression")
	ErrUnknownToken               = New(KindUnknownToken, "Unknown token")
	ErrMismatchedParentheses      = New(KindMismatchedParentheses, "Mismatched parentheses")
	ErrMissingOperand             = New(KindMissingOperand, "Missing operand(s)")
	ErrInvalidExpressionStructure = New(KindInvalidExpressionStructure, "Invalid expression structure")
	ErrExpressionTooDeep          = New(KindExpressionTooDeep, "Expression too deep")
	ErrUnboundVariable            = New(KindUnboundVariable, "Unbound variable")
	ErrDivisionByZero             = New(KindDivisionByZero, "Division by zero")
	ErrModuloByZero               = New(KindModuloByZero, "Modulo by zero")
	ErrNegativeSqrtDomain         = New(KindNegativeSqrtDomain, "Square root of negative number")
	ErrUnknownOperator            = New(KindUnknownOperator, "Unknown operator")
	ErrNumberOutOfRange           = New(KindNumberOutOfRange, "Number out of range")
)

// InvalidSyntax wraps a tokenizer or validator message.
func InvalidSyntax(message string) *Error {
	return New(KindInvalidSyntax, message)
}

// UnknownToken reports a token the builder cannot classify.
func UnknownToken(text string) *Error {
	return New(KindUnknownToken, fmt.Sprintf("Unknown token: %s", text))
}

// NumberOutOfRange reports a literal whose magnitude overflows float64.
func NumberOutOfRange(text string) *Error {
	return New(KindNumberOutOfRange, fmt.Sprintf("Number out of range: %s", text))
}

// MissingOperand reports an operator that could not collect its operands.
func MissingOperand(op string) *Error {
	return New(KindMissingOperand, fmt.Sprintf("Missing operand(s) for operator %s", op))
}

// TooDeep reports a tree that exceeds the depth limit.
func TooDeep(limit int) *Error {
	return New(KindExpressionTooDeep, fmt.Sprintf("Expression exceeds maximum depth of %d", limit))
}

// UnboundVariable reports a variable missing from the bindings.
func UnboundVariable(name string) *Error {
	return New(KindUnboundVariable, fmt.Sprintf("Unbound variable: %s", name))
}

// UnknownOperator reports an operator the evaluator does not define.
func UnknownOperator(op string) *Error {
	return New(KindUnknownOperator, fmt.Sprintf("Unknown operator: %s", op))
}

// KindOf returns the Kind of err, or KindUnknown if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
