package testing

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// OutputConfig configures output formatting.
type OutputConfig struct {
	// Writer is where output is written.
	Writer io.Writer

	// Verbose shows t.log() output for all tests.
	Verbose bool

	// UseColor enables ANSI color codes.
	UseColor bool
}

// Output handles formatting and printing test results.
type Output struct {
	w        io.Writer
	verbose  bool
	useColor bool

	green  *color.Color
	red    *color.Color
	yellow *color.Color
}

// NewOutput creates a new Output formatter.
func NewOutput(cfg OutputConfig) *Output {
	return &Output{
		w:        cfg.Writer,
		verbose:  cfg.Verbose,
		useColor: cfg.UseColor,
		green:    color.New(color.FgGreen),
		red:      color.New(color.FgRed),
		yellow:   color.New(color.FgYellow),
	}
}

// StartTest prints the "=== RUN" line for a test.
func (o *Output) StartTest(name string) {
	fmt.Fprintf(o.w, "=== RUN   %s\n", name)
}

// EndTest prints the result line for a test (--- PASS, --- FAIL, etc.).
func (o *Output) EndTest(result *TestResult) {
	var statusStr string
	switch result.Status {
	case StatusPassed:
		statusStr = o.colorize(o.green, "--- PASS:")
	case StatusFailed:
		statusStr = o.colorize(o.red, "--- FAIL:")
	case StatusSkipped:
		statusStr = o.colorize(o.yellow, "--- SKIP:")
	case StatusError:
		statusStr = o.colorize(o.red, "--- ERROR:")
	default:
		statusStr = fmt.Sprintf("--- %s:", result.Status)
	}

	fmt.Fprintf(o.w, "%s %s (%.3fs)\n", statusStr, result.Name, result.Duration.Seconds())

	if result.Status == StatusSkipped && result.SkipReason != "" {
		fmt.Fprintf(o.w, "    %s\n", result.SkipReason)
	}

	if result.Status == StatusError && result.Error != nil {
		fmt.Fprintf(o.w, "    %s\n", result.Error.Error())
	}

	for _, failure := range result.Failures {
		o.printFailure(&failure)
	}

	if o.verbose || result.Status == StatusFailed {
		for _, log := range result.Logs {
			fmt.Fprintf(o.w, "    %s\n", log)
		}
	}
}

// printFailure prints details of an assertion failure.
func (o *Output) printFailure(f *AssertionError) {
	loc := ""
	if f.File != "" {
		loc = f.File
		if f.Line > 0 {
			loc = fmt.Sprintf("%s:%d", f.File, f.Line)
		}
		loc += ": "
	}

	fmt.Fprintf(o.w, "    %s%s\n", loc, f.Message)

	if f.Got != nil {
		fmt.Fprintf(o.w, "        %s:  %s\n",
			o.colorize(o.red, "got"), f.Got.Inspect())
	}
	if f.Want != nil {
		fmt.Fprintf(o.w, "        %s: %s\n",
			o.colorize(o.green, "want"), f.Want.Inspect())
	}
}

// ParseError prints a parse error for a test file.
func (o *Output) ParseError(filename string, err error) {
	fmt.Fprintf(o.w, "%s %s\n",
		o.colorize(o.red, "PARSE ERROR:"), filename)
	fmt.Fprintf(o.w, "    %s\n", err.Error())
}

// Summary prints the final summary line.
func (o *Output) Summary(summary *Summary) {
	fmt.Fprintln(o.w)

	if summary.Success() {
		fmt.Fprintln(o.w, o.colorize(o.green, "PASS"))
	} else {
		fmt.Fprintln(o.w, o.colorize(o.red, "FAIL"))
	}

	parts := []string{}
	if summary.Passed > 0 {
		parts = append(parts, o.colorize(o.green, fmt.Sprintf("%d passed", summary.Passed)))
	}
	if summary.Failed > 0 {
		parts = append(parts, o.colorize(o.red, fmt.Sprintf("%d failed", summary.Failed)))
	}
	if summary.Skipped > 0 {
		parts = append(parts, o.colorize(o.yellow, fmt.Sprintf("%d skipped", summary.Skipped)))
	}
	if summary.Errors > 0 {
		parts = append(parts, o.colorize(o.red, fmt.Sprintf("%d errors", summary.Errors)))
	}

	if len(parts) > 0 {
		fmt.Fprintln(o.w, strings.Join(parts, ", "))
	}
}

// colorize applies color if enabled.
func (o *Output) colorize(c *color.Color, s string) string {
	if o.useColor {
		return c.Sprint(s)
	}
	return s
}

// PrintResults prints all results in Go test style.
func (o *Output) PrintResults(summary *Summary) {
	for _, file := range summary.Files {
		if file.CompileErr != nil {
			o.ParseError(file.Filename, file.CompileErr)
		}
	}

	for _, file := range summary.Files {
		for _, test := range file.Tests {
			o.StartTest(test.Name)
			o.EndTest(test)
		}
	}

	o.Summary(summary)
}
