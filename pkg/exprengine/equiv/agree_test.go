package equiv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAgree(t *testing.T) {
	nan := math.NaN()
	inf := math.Inf(1)

	tests := []struct {
		name string
		a, b float64
		tol  float64
		want bool
	}{
		{"equal", 1, 1, 0, true},
		{"within tolerance", 1, 1 + 1e-10, 1e-9, true},
		{"outside tolerance", 1, 1.1, 1e-9, false},
		{"both NaN", nan, nan, 1e-9, true},
		{"one NaN", nan, 1, 1e-9, false},
		{"same infinity", inf, inf, 1e-9, true},
		{"opposite infinities", inf, -inf, 1e-9, false},
		{"infinity vs finite", inf, 1e300, 1e-9, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, agree(tt.a, tt.b, tt.tol))
		})
	}
}
