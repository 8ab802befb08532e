package model

import "fmt"

// Path represents a file system path.
type Path string

// TestCase verifies the outcome reported for a shell command run under the
// subject. Command is the body of a /bin/sh script; it may span multiple
// lines. Input lines, if any, are written to the subject's control channel
// after the init event is observed.
type TestCase struct {
	Description    string   `yaml:"description"`
	Command        string   `yaml:"command"`
	ExpectedCode   int      `yaml:"expected_code"`
	ExpectedSignal *int     `yaml:"expected_signal,omitempty"`
	Input          []string `yaml:"input,omitempty"`
}

// Expected returns the outcome this case asserts.
func (c TestCase) Expected() Outcome {
	return Outcome{Code: c.ExpectedCode, Signal: c.ExpectedSignal}
}

// Validate checks the case is well-formed before any process is spawned.
func (c TestCase) Validate() error {
	if c.Description == "" {
		return fmt.Errorf("test case has no description")
	}

	if c.Command == "" {
		return fmt.Errorf("test case %q has no command", c.Description)
	}

	return validateCode(c.Description, c.ExpectedCode)
}

// SignalTestCase verifies termination reporting when a named signal is
// delivered to the subject's direct child once its pid is known. Command
// defaults to a long sleep; SettleMillis delays delivery after init so the
// child can install traps.
type SignalTestCase struct {
	Description    string `yaml:"description"`
	SignalName     string `yaml:"signal"`
	SignalNumber   int    `yaml:"signal_number"`
	ExpectedCode   int    `yaml:"expected_code"`
	ExpectedSignal *int   `yaml:"expected_signal,omitempty"`
	Command        string `yaml:"command,omitempty"`
	SettleMillis   int    `yaml:"settle_ms,omitempty"`
}

// Expected returns the outcome this case asserts.
func (c SignalTestCase) Expected() Outcome {
	return Outcome{Code: c.ExpectedCode, Signal: c.ExpectedSignal}
}

// Validate checks the case is well-formed before any process is spawned.
func (c SignalTestCase) Validate() error {
	if c.Description == "" {
		return fmt.Errorf("signal test case has no description")
	}

	if c.SignalName == "" && c.SignalNumber == 0 {
		return fmt.Errorf("signal test case %q names no signal", c.Description)
	}

	return validateCode(c.Description, c.ExpectedCode)
}

func validateCode(desc string, code int) error {
	if code < 0 || code > 255 {
		return fmt.Errorf("test case %q: expected code %d out of range [0,255]", desc, code)
	}

	return nil
}

// Suite is a named group of cases executed strictly sequentially.
type Suite struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description,omitempty"`
	Cases       []TestCase       `yaml:"cases,omitempty"`
	SignalCases []SignalTestCase `yaml:"signal_cases,omitempty"`
}

// Len returns the total number of cases in the suite.
func (s Suite) Len() int {
	return len(s.Cases) + len(s.SignalCases)
}

// Validate checks every case in the suite.
func (s Suite) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("suite has no name")
	}

	for _, c := range s.Cases {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("suite %q: %w", s.Name, err)
		}
	}

	for _, c := range s.SignalCases {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("suite %q: %w", s.Name, err)
		}
	}

	return nil
}
