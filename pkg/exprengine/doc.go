/*
Package exprengine provides a small mathematical-expression engine.

# Overview

exprengine turns expression text into a tree, simplifies it algebraically,
prints it with minimal parentheses, evaluates it against variable bindings,
and checks two expressions for semantic equivalence by sampling.

The pipeline, leaves first:

	lexer     text -> tokens                      (pkg/exprengine/lexer)
	parse     tokens -> tree (shunting-yard)      (pkg/exprengine/parse)
	simplify  tree -> tree (one bottom-up pass)   (pkg/exprengine/simplify)
	format    tree -> text                        (pkg/exprengine/format)
	eval      tree + bindings -> float64          (pkg/exprengine/eval)
	equiv     text x text -> verdict              (pkg/exprengine/equiv)

Every stage is a pure function over immutable trees. The Engine in this
package wires the stages together and adds logging, metrics, tracing and an
optional verdict journal around them.

# Basic Usage

	v, err := exprengine.EvaluateExpression("2 + 3 * 4", nil)  // 14, nil
	_, err = exprengine.EvaluateExpression("10 / 0", nil)      // "Division by zero"

	s, _ := exprengine.Simplify("(x + 0) * 1")                 // "x"
	ok := exprengine.Compare("(a + b)^2", "a^2 + 2*a*b + b^2") // true

# Configured Engine

	engine := exprengine.New(
	    exprengine.WithLogger(logger),
	    exprengine.WithMetrics(observability.NewMetricsRecorder()),
	    exprengine.WithSpanManager(observability.NewSpanManager()),
	    exprengine.WithVerdictStore(store),
	    exprengine.WithSamples(20),
	)
	value, err := engine.EvaluateExpression(ctx, "x^2 - 1", map[string]float64{"x": 3})

Options can also come from a YAML or JSON file:

	cfg, err := config.FromFile("exprengine.yaml")
	engine := exprengine.New(exprengine.OptionsFromConfig(cfg)...)

# Errors

Failures are returned, never panicked. Every error is an
*errors.Error from pkg/exprengine/errors; match kinds with errors.Is:

	_, err := exprengine.EvaluateExpression("x + 1", nil)
	if errors.Is(err, exprerrors.ErrUnboundVariable) {
	    // ...
	}

# Equivalence

Equivalence is decided numerically at the rows of a fixed sample table, so
results are reproducible. Points where either side fails to evaluate are
skipped. A comparison with no evaluable point is not equivalent unless
WithRequireValidSample(false) is set.

# Thread Safety

Engine is safe for concurrent use. Trees are never mutated after they are
built.
*/
package exprengine
