package testing

import (
	"time"

	"github.com/marmoset-lang/marmoset/object"
)

// Status is the outcome of a single test.
type Status int

const (
	StatusPassed Status = iota
	StatusFailed
	StatusSkipped
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "PASS"
	case StatusFailed:
		return "FAIL"
	case StatusSkipped:
		return "SKIP"
	case StatusError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// AssertionError records one failed assertion inside a test.
type AssertionError struct {
	Message string
	File    string
	Line    int
	Got     object.Object
	Want    object.Object
}

// TestResult is the outcome of one test function.
type TestResult struct {
	Name       string
	Status     Status
	Duration   time.Duration
	Error      error
	SkipReason string
	Logs       []string
	Failures   []AssertionError
}

// FileResult groups the results for one test file.
type FileResult struct {
	Filename   string
	CompileErr error
	Tests      []*TestResult
}

// Summary aggregates results across all test files.
type Summary struct {
	Files    []*FileResult
	Duration time.Duration
	Passed   int
	Failed   int
	Skipped  int
	Errors   int
}

// ComputeTotals fills in the aggregate counts from the file results.
// A file that failed to parse counts as one error.
func (s *Summary) ComputeTotals() {
	s.Passed, s.Failed, s.Skipped, s.Errors = 0, 0, 0, 0
	for _, file := range s.Files {
		if file.CompileErr != nil {
			s.Errors++
			continue
		}
		for _, test := range file.Tests {
			switch test.Status {
			case StatusPassed:
				s.Passed++
			case StatusFailed:
				s.Failed++
			case StatusSkipped:
				s.Skipped++
			case StatusError:
				s.Errors++
			}
		}
	}
}

// Success reports whether every test passed or was skipped.
func (s *Summary) Success() bool {
	return s.Failed == 0 && s.Errors == 0
}
