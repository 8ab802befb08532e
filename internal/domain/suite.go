package domain

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
	m "htprobe.dev/pkg/htprobe/internal/model"
)

// Built-in suite names.
const (
	SuiteExitCodes = "exit-codes"
	SuiteSignals   = "signals"
	SuiteLifecycle = "lifecycle"
	SuiteSweep     = "sweep"
)

// BuiltinSuites returns the default suite set run when no names are given.
// The sweep suite is excluded: 256 subject launches are opt-in by name.
func BuiltinSuites() []m.Suite {
	return []m.Suite{exitCodesSuite(), signalsSuite(), lifecycleSuite()}
}

func exitCodesSuite() m.Suite {
	return m.Suite{
		Name:        SuiteExitCodes,
		Description: "normal exit code reporting",
		Cases: []m.TestCase{
			{Description: "true exits zero", Command: "true", ExpectedCode: 0},
			{Description: "false exits one", Command: "false", ExpectedCode: 1},
			{Description: "missing command exits 127", Command: "/nonexistent/command", ExpectedCode: 127},
			{Description: "explicit exit 42", Command: "exit 42", ExpectedCode: 42},
			{Description: "explicit exit 255", Command: "exit 255", ExpectedCode: 255},
			{Description: "last command wins", Command: "true\nfalse\nexit 13", ExpectedCode: 13},
		},
	}
}

func signalsSuite() m.Suite {
	return m.Suite{
		Name:        SuiteSignals,
		Description: "signal termination reporting for the direct child",
		SignalCases: []m.SignalTestCase{
			{
				Description:    "SIGHUP while sleeping",
				SignalName:     "HUP",
				SignalNumber:   1,
				ExpectedCode:   129,
				ExpectedSignal: m.Sig(1),
			},
			{
				Description:    "SIGTERM while sleeping",
				SignalName:     "TERM",
				SignalNumber:   15,
				ExpectedCode:   143,
				ExpectedSignal: m.Sig(15),
			},
			{
				Description:    "SIGKILL while sleeping",
				SignalName:     "KILL",
				SignalNumber:   9,
				ExpectedCode:   137,
				ExpectedSignal: m.Sig(9),
			},
			{
				// The trap handler exits deliberately, so the child was
				// never killed by the signal and the signal field is null.
				Description:  "trapped SIGTERM exits normally",
				SignalName:   "TERM",
				SignalNumber: 15,
				ExpectedCode: 0,
				Command:      "trap 'exit 0' TERM\nsleep 10 &\nwait",
				SettleMillis: 200,
			},
		},
	}
}

func lifecycleSuite() m.Suite {
	return m.Suite{
		Name:        SuiteLifecycle,
		Description: "interactive control channel and descendant semantics",
		Cases: []m.TestCase{
			{
				Description:  "interactive exit via control channel",
				Command:      "exec sh",
				Input:        []string{"exit 99\n"},
				ExpectedCode: 99,
			},
			{
				// The grandchild dies to SIGTERM; the shell itself exits
				// normally, so code reflects 128+15 but signal stays null.
				Description:  "signaled grandchild leaves shell unsignaled",
				Command:      "sh -c 'sleep 10' &\npid=$!\nsleep 0.2\nkill -TERM $pid\nwait $pid",
				ExpectedCode: 143,
			},
		},
	}
}

// SweepSuite covers the full exit-code range [0,255].
func SweepSuite() m.Suite {
	cases := make([]m.TestCase, 0, 256)
	for code := 0; code <= 255; code++ {
		cases = append(cases, m.TestCase{
			Description:  fmt.Sprintf("exit %d", code),
			Command:      fmt.Sprintf("exit %d", code),
			ExpectedCode: code,
		})
	}

	return m.Suite{
		Name:        SuiteSweep,
		Description: "exhaustive exit code sweep",
		Cases:       cases,
	}
}

// SelectSuites resolves suite names against the built-ins. With no names it
// returns the default set.
func SelectSuites(names []string) ([]m.Suite, error) {
	if len(names) == 0 {
		return BuiltinSuites(), nil
	}

	byName := map[string]m.Suite{
		SuiteExitCodes: exitCodesSuite(),
		SuiteSignals:   signalsSuite(),
		SuiteLifecycle: lifecycleSuite(),
		SuiteSweep:     SweepSuite(),
	}

	suites := make([]m.Suite, 0, len(names))

	for _, name := range names {
		suite, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown suite %q", name)
		}

		suites = append(suites, suite)
	}

	return suites, nil
}

type suiteFile struct {
	Suites []m.Suite `yaml:"suites"`
}

// LoadSuiteFile reads user-defined suites from a YAML file.
func LoadSuiteFile(path m.Path) ([]m.Suite, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("read suite file: %w", err)
	}

	var file suiteFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode suite file %s: %w", path, err)
	}

	if len(file.Suites) == 0 {
		return nil, fmt.Errorf("suite file %s defines no suites", path)
	}

	for _, suite := range file.Suites {
		if err := suite.Validate(); err != nil {
			return nil, fmt.Errorf("suite file %s: %w", path, err)
		}
	}

	return file.Suites, nil
}

// FilterSuites drops cases whose description matches any exclude pattern.
func FilterSuites(suites []m.Suite, exclude []string) ([]m.Suite, error) {
	if len(exclude) == 0 {
		return suites, nil
	}

	patterns := make([]*regexp.Regexp, 0, len(exclude))

	for _, expr := range exclude {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", expr, err)
		}

		patterns = append(patterns, re)
	}

	excluded := func(desc string) bool {
		for _, re := range patterns {
			if re.MatchString(desc) {
				return true
			}
		}

		return false
	}

	filtered := make([]m.Suite, 0, len(suites))

	for _, suite := range suites {
		kept := suite
		kept.Cases = nil
		kept.SignalCases = nil

		for _, c := range suite.Cases {
			if !excluded(c.Description) {
				kept.Cases = append(kept.Cases, c)
			}
		}

		for _, c := range suite.SignalCases {
			if !excluded(c.Description) {
				kept.SignalCases = append(kept.SignalCases, c)
			}
		}

		if kept.Len() > 0 {
			filtered = append(filtered, kept)
		}
	}

	return filtered, nil
}
