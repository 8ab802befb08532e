package model

import "fmt"

// Outcome is the terminal result reported for one subject run: the exit code
// of the direct child and, when the child was itself signaled, the signal
// number. A nil Signal means the child exited normally, even if a descendant
// died to a signal (the code still reflects 128+signal in that case).
type Outcome struct {
	Code   int  `yaml:"code" json:"code"`
	Signal *int `yaml:"signal,omitempty" json:"signal"`
}

// Equal reports whether two outcomes match. Signal absence on both sides is
// equality; present-vs-absent is a mismatch regardless of code.
func (o Outcome) Equal(other Outcome) bool {
	if o.Code != other.Code {
		return false
	}

	if (o.Signal == nil) != (other.Signal == nil) {
		return false
	}

	return o.Signal == nil || *o.Signal == *other.Signal
}

func (o Outcome) String() string {
	if o.Signal == nil {
		return fmt.Sprintf("code=%d signal=none", o.Code)
	}

	return fmt.Sprintf("code=%d signal=%d", o.Code, *o.Signal)
}

// Sig is a convenience for building expected outcomes with a present signal.
func Sig(n int) *int {
	return &n
}
