/*
Package config provides type-safe extraction of engine settings from
map[string]any, loaded from YAML or JSON.

# Basic Usage

	cfg := config.New(map[string]any{
	    "samples":   20,
	    "tolerance": 1e-6,
	    "format": map[string]any{"unicode": true},
	})

	samples := cfg.Int("samples", 10)              // 20
	tol := cfg.Float("tolerance", 1e-9)            // 1e-6
	unicode := cfg.Bool("format.unicode", false)   // true
	missing := cfg.String("verdicts.path", "")     // ""

# Dotted Keys

A key is first looked up literally. If absent, it is split on dots and each
segment selects a nested map, so "format.unicode" reads the unicode field of
the format section. Sub returns a nested section as its own Config.

# File Loading

	cfg, err := config.FromFile("exprengine.yaml")
	if err != nil {
	    log.Fatal(err)
	}

Recognized engine keys: samples, tolerance, max_depth, strict_brackets,
require_valid_sample, format.unicode, format.spaces, format.minimal_parens,
verdicts.path.

# Thread Safety

Config is safe for concurrent read access. The underlying map is not
modified after creation.
*/
package config
