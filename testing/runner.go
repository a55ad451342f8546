package testing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/marmoset-lang/marmoset"
	"github.com/marmoset-lang/marmoset/object"
)

// Config holds configuration for running tests.
type Config struct {
	// Patterns specifies files or directories to search for tests.
	// Default is current directory.
	Patterns []string

	// RunPattern filters tests to run by name regex.
	RunPattern string

	// Verbose enables verbose output (shows t.log() messages).
	Verbose bool
}

// DiscoverTestFiles finds all *_test.marm files matching the given
// patterns. If no patterns are provided, searches the current directory.
func DiscoverTestFiles(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	var files []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		if strings.Contains(pattern, "*") {
			matches, err := filepath.Glob(pattern)
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
			}
			for _, m := range matches {
				if isTestFile(m) && !seen[m] {
					files = append(files, m)
					seen[m] = true
				}
			}
			continue
		}

		// A "..." suffix requests a recursive search
		recursive := false
		searchDir := pattern
		if strings.HasSuffix(pattern, "...") {
			recursive = true
			searchDir = strings.TrimSuffix(strings.TrimSuffix(pattern, "..."), "/")
			if searchDir == "" {
				searchDir = "."
			}
		}

		info, err := os.Stat(searchDir)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("path not found: %s", searchDir)
			}
			return nil, err
		}

		if !info.IsDir() {
			if isTestFile(pattern) && !seen[pattern] {
				files = append(files, pattern)
				seen[pattern] = true
			}
			continue
		}

		if recursive {
			err = filepath.Walk(searchDir, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if !info.IsDir() && isTestFile(path) && !seen[path] {
					files = append(files, path)
					seen[path] = true
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		} else {
			entries, err := os.ReadDir(searchDir)
			if err != nil {
				return nil, err
			}
			for _, e := range entries {
				if !e.IsDir() && isTestFile(e.Name()) {
					path := filepath.Join(searchDir, e.Name())
					if !seen[path] {
						files = append(files, path)
						seen[path] = true
					}
				}
			}
		}
	}

	return files, nil
}

// isTestFile returns true if the filename matches *_test.marm.
func isTestFile(path string) bool {
	return strings.HasSuffix(path, "_test.marm")
}

// Run executes tests according to the given configuration.
func Run(ctx context.Context, cfg *Config) (*Summary, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	files, err := DiscoverTestFiles(cfg.Patterns)
	if err != nil {
		return nil, err
	}

	var runRe *regexp.Regexp
	if cfg.RunPattern != "" {
		runRe, err = regexp.Compile(cfg.RunPattern)
		if err != nil {
			return nil, fmt.Errorf("invalid run pattern: %w", err)
		}
	}

	summary := &Summary{}
	start := time.Now()

	for _, file := range files {
		summary.Files = append(summary.Files, runTestFile(ctx, file, runRe))
	}

	summary.Duration = time.Since(start)
	summary.ComputeTotals()

	return summary, nil
}

// runTestFile executes all tests in a single file. The file is parsed
// once; each test runs it in a fresh interpreter so that tests cannot
// observe each other's mutations.
func runTestFile(ctx context.Context, filename string, runRe *regexp.Regexp) *FileResult {
	result := &FileResult{Filename: filename}

	source, err := os.ReadFile(filename)
	if err != nil {
		result.CompileErr = err
		return result
	}

	program, err := marmoset.Parse(ctx, string(source),
		marmoset.WithFilename(filename))
	if err != nil {
		result.CompileErr = err
		return result
	}

	testNames, err := discoverTests(ctx, program)
	if err != nil {
		result.CompileErr = err
		return result
	}

	for _, name := range testNames {
		if runRe != nil && !runRe.MatchString(name) {
			continue
		}
		result.Tests = append(result.Tests, runSingleTest(ctx, program, filename, name))
	}

	return result
}

// discoverTests runs the program once and returns the names of its
// test_* functions, sorted.
func discoverTests(ctx context.Context, program *marmoset.Program) ([]string, error) {
	interp := marmoset.NewInterpreter(marmoset.WithGlobals(marmoset.Builtins()))
	if _, err := interp.Run(ctx, program); err != nil {
		return nil, err
	}
	var tests []string
	for _, name := range interp.GlobalNames() {
		if !strings.HasPrefix(name, "test_") {
			continue
		}
		obj, err := interp.GetObject(name)
		if err != nil {
			continue
		}
		if _, ok := obj.(*object.Function); ok {
			tests = append(tests, name)
		}
	}
	sort.Strings(tests)
	return tests, nil
}

// runSingleTest executes a single test function.
func runSingleTest(ctx context.Context, program *marmoset.Program, filename, testName string) *TestResult {
	result := &TestResult{Name: testName}
	start := time.Now()

	interp := marmoset.NewInterpreter(marmoset.WithGlobals(marmoset.Builtins()))
	if _, err := interp.Run(ctx, program); err != nil {
		result.Status = StatusError
		result.Error = err
		result.Duration = time.Since(start)
		return result
	}

	testCtx := NewTestContext(testName, filename)
	_, err := interp.Call(ctx, testName, testCtx)
	result.Duration = time.Since(start)

	if err != nil {
		result.Status = StatusError
		result.Error = err
		return result
	}

	result.Logs = testCtx.Logs()
	result.Failures = testCtx.Failures()

	switch {
	case testCtx.Skipped():
		result.Status = StatusSkipped
		result.SkipReason = testCtx.SkipReason()
	case testCtx.Failed():
		result.Status = StatusFailed
	default:
		result.Status = StatusPassed
	}

	return result
}
