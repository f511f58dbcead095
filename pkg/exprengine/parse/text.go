package parse

import (
	"github.com/randalmurphal/exprengine/pkg/exprengine/ast"
	"github.com/randalmurphal/exprengine/pkg/exprengine/errors"
	"github.com/randalmurphal/exprengine/pkg/exprengine/lexer"
)

// FromText tokenizes, validates and builds text, returning the first error
// from any stage. A nil tokenizer uses lexer.Default.
func FromText(text string, tk lexer.Tokenizer, opts ...Option) (ast.Node, error) {
	if tk == nil {
		tk = lexer.Default
	}

	res := tk.Tokenize(text)
	if len(res.Errors) > 0 {
		return nil, errors.InvalidSyntax(res.Errors[0])
	}
	if err := tk.Validate(text); err != nil {
		return nil, err
	}
	return Build(res.Tokens, opts...)
}
