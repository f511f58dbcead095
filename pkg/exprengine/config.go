package exprengine

import (
	"github.com/randalmurphal/exprengine/pkg/exprengine/config"
	"github.com/randalmurphal/exprengine/pkg/exprengine/format"
)

// OptionsFromConfig translates configuration keys into engine options.
// Missing keys keep the engine defaults.
//
// Recognized keys:
//
//	samples               int
//	tolerance             float
//	max_depth             int
//	strict_brackets       bool
//	require_valid_sample  bool
//	format.unicode        bool
//	format.spaces         bool
//	format.minimal_parens bool
func OptionsFromConfig(cfg config.Config) []Option {
	def := defaultEngineConfig()

	opts := []Option{
		WithSamples(cfg.Int("samples", def.samples)),
		WithTolerance(cfg.Float("tolerance", def.tolerance)),
		WithMaxDepth(cfg.Int("max_depth", def.maxDepth)),
		WithStrictBrackets(cfg.Bool("strict_brackets", def.strictBrackets)),
		WithRequireValidSample(cfg.Bool("require_valid_sample", def.requireSample)),
		WithFormatOptions(format.Options{
			UseUnicode:    cfg.Bool("format.unicode", def.format.UseUnicode),
			Spaces:        cfg.Bool("format.spaces", def.format.Spaces),
			MinimalParens: cfg.Bool("format.minimal_parens", def.format.MinimalParens),
		}),
	}
	return opts
}
