package verdict

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/randalmurphal/exprengine/pkg/exprengine/equiv"
)

// Version is the current verdict record format version.
const Version = 1

// Verdict is the journaled outcome of one equivalence check.
type Verdict struct {
	Version   int       `json:"version"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`

	Left       string   `json:"left"`
	Right      string   `json:"right"`
	Equivalent bool     `json:"equivalent"`
	Variables  []string `json:"variables,omitempty"`
	Checked    int      `json:"checked"`
	Skipped    int      `json:"skipped"`

	// Error is the parse error that decided the verdict, if any.
	Error string `json:"error,omitempty"`
}

// New creates a verdict with a fresh ID from a comparison report.
func New(left, right string, report equiv.Report) *Verdict {
	v := &Verdict{
		Version:    Version,
		ID:         uuid.NewString(),
		Timestamp:  time.Now().UTC(),
		Left:       left,
		Right:      right,
		Equivalent: report.Equivalent,
		Variables:  report.Variables,
		Checked:    report.Checked,
		Skipped:    report.Skipped,
	}
	if report.Err != nil {
		v.Error = report.Err.Error()
	}
	return v
}

// Info returns the listing summary of v.
func (v *Verdict) Info() Info {
	return Info{
		ID:         v.ID,
		Left:       v.Left,
		Right:      v.Right,
		Equivalent: v.Equivalent,
		Timestamp:  v.Timestamp,
	}
}

// Marshal serializes a verdict to JSON.
func (v *Verdict) Marshal() ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal deserializes a verdict from JSON.
func Unmarshal(data []byte) (*Verdict, error) {
	var v Verdict
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
