package harness

import "github.com/roach88/ccgdrs/internal/drt"

// Output is the outcome of one sentence.
type Output struct {
	ID        string `json:"id"`
	Sentence  string `json:"sentence,omitempty"`
	DRS       string `json:"drs,omitempty"`
	ErrorKind string `json:"error,omitempty"`

	drs *drt.DRS
	err error
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success: every expectation and assertion held.
	Pass bool `json:"pass"`

	// Outputs holds one entry per sentence in scenario order.
	Outputs []Output `json:"outputs"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:    true,
		Outputs: []Output{},
		Errors:  []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// output returns the output for a sentence ID.
func (r *Result) output(id string) (Output, bool) {
	for _, o := range r.Outputs {
		if o.ID == id {
			return o, true
		}
	}
	return Output{}, false
}
