package testing

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	stdt "testing"

	"github.com/stretchr/testify/require"

	"github.com/marmoset-lang/marmoset/object"
)

func TestStatusString(t *stdt.T) {
	require.Equal(t, "PASS", StatusPassed.String())
	require.Equal(t, "FAIL", StatusFailed.String())
	require.Equal(t, "SKIP", StatusSkipped.String())
	require.Equal(t, "ERROR", StatusError.String())
}

func callAttr(t *stdt.T, tc *TestContext, name string, args ...object.Object) {
	t.Helper()
	attr, ok := tc.GetAttr(name)
	require.True(t, ok, name)
	_, err := attr.(*object.Builtin).Call(context.Background(), args...)
	require.NoError(t, err)
}

func TestContextName(t *stdt.T) {
	tc := NewTestContext("test_example", "example_test.marm")
	require.Equal(t, "test_example", tc.Name())

	nameAttr, ok := tc.GetAttr("name")
	require.True(t, ok)
	require.Equal(t, "test_example", nameAttr.(*object.String).Value())
}

func TestContextAssert(t *stdt.T) {
	tc := NewTestContext("test_x", "x_test.marm")
	callAttr(t, tc, "assert", object.True)
	require.False(t, tc.Failed())

	callAttr(t, tc, "assert", object.False, object.NewString("should be true"))
	require.True(t, tc.Failed())
	require.Len(t, tc.Failures(), 1)
	require.Equal(t, "should be true", tc.Failures()[0].Message)
}

func TestContextAssertEq(t *stdt.T) {
	tc := NewTestContext("test_x", "x_test.marm")
	callAttr(t, tc, "assert_eq", object.NewInt(1), object.NewInt(1))
	require.False(t, tc.Failed())

	callAttr(t, tc, "assert_eq", object.NewInt(1), object.NewInt(2))
	require.True(t, tc.Failed())
	failure := tc.Failures()[0]
	require.Equal(t, "values are not equal", failure.Message)
	require.Equal(t, "1", failure.Got.Inspect())
	require.Equal(t, "2", failure.Want.Inspect())
}

func TestContextAssertNe(t *stdt.T) {
	tc := NewTestContext("test_x", "x_test.marm")
	callAttr(t, tc, "assert_ne", object.NewInt(1), object.NewInt(2))
	require.False(t, tc.Failed())

	callAttr(t, tc, "assert_ne", object.NewInt(1), object.NewInt(1))
	require.True(t, tc.Failed())
}

func TestContextOptionResultAssertions(t *stdt.T) {
	tc := NewTestContext("test_x", "x_test.marm")
	callAttr(t, tc, "assert_some", object.NewSome(object.NewInt(1)))
	callAttr(t, tc, "assert_none", object.None)
	callAttr(t, tc, "assert_ok", object.NewOk(object.NewInt(1)))
	callAttr(t, tc, "assert_err", object.NewErrResult(object.Errorf("boom")))
	require.False(t, tc.Failed())

	callAttr(t, tc, "assert_some", object.None)
	require.True(t, tc.Failed())
	require.Equal(t, "expected Some", tc.Failures()[0].Message)
}

func TestContextSkipAndLog(t *stdt.T) {
	tc := NewTestContext("test_x", "x_test.marm")
	callAttr(t, tc, "log", object.NewString("starting"), object.NewInt(3))
	callAttr(t, tc, "skip", object.NewString("not today"))

	require.True(t, tc.Skipped())
	require.Equal(t, "not today", tc.SkipReason())
	require.Equal(t, []string{"starting 3"}, tc.Logs())
}

func TestContextReadOnly(t *stdt.T) {
	tc := NewTestContext("test_x", "x_test.marm")
	require.Error(t, tc.SetAttr("name", object.NewString("other")))
}

func TestDiscoverTestFiles(t *stdt.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))

	write := func(path string) {
		require.NoError(t, os.WriteFile(path, []byte("1"), 0o644))
	}
	write(filepath.Join(dir, "a_test.marm"))
	write(filepath.Join(dir, "main.marm"))
	write(filepath.Join(sub, "b_test.marm"))

	files, err := DiscoverTestFiles([]string{dir})
	require.NoError(t, err)
	require.Len(t, files, 1)

	files, err = DiscoverTestFiles([]string{dir + "/..."})
	require.NoError(t, err)
	require.Len(t, files, 2)

	_, err = DiscoverTestFiles([]string{filepath.Join(dir, "missing")})
	require.Error(t, err)
}

const sampleTests = `
func helper(x) { x * 2 }

func test_doubling(t) {
	t.assert_eq(helper(4), 8)
}

func test_comprehension(t) {
	let r = option {
		let a <- Some(1);
		let b <- Some(2);
		a + b
	}
	t.assert_eq(r, Some(3))
}

func test_failing(t) {
	t.log("about to fail")
	t.assert_eq(1, 2, "one is not two")
}

func test_skipped(t) {
	t.skip("later")
}
`

func TestRunEndToEnd(t *stdt.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample_test.marm")
	require.NoError(t, os.WriteFile(path, []byte(sampleTests), 0o644))

	summary, err := Run(context.Background(), &Config{Patterns: []string{dir}})
	require.NoError(t, err)
	require.Equal(t, 2, summary.Passed)
	require.Equal(t, 1, summary.Failed)
	require.Equal(t, 1, summary.Skipped)
	require.False(t, summary.Success())

	var buf bytes.Buffer
	out := NewOutput(OutputConfig{Writer: &buf})
	out.PrintResults(summary)
	text := buf.String()
	require.Contains(t, text, "--- PASS: test_doubling")
	require.Contains(t, text, "--- FAIL: test_failing")
	require.Contains(t, text, "one is not two")
	require.Contains(t, text, "about to fail")
	require.Contains(t, text, "--- SKIP: test_skipped")
	require.Contains(t, text, "FAIL\n")
}

func TestRunPatternFilter(t *stdt.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample_test.marm")
	require.NoError(t, os.WriteFile(path, []byte(sampleTests), 0o644))

	summary, err := Run(context.Background(), &Config{
		Patterns:   []string{dir},
		RunPattern: "doubling",
	})
	require.NoError(t, err)
	require.Equal(t, 1, summary.Passed)
	require.Equal(t, 0, summary.Failed)
	require.True(t, summary.Success())
}

func TestRunParseError(t *stdt.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken_test.marm")
	require.NoError(t, os.WriteFile(path, []byte("func test_x(t) {"), 0o644))

	summary, err := Run(context.Background(), &Config{Patterns: []string{dir}})
	require.NoError(t, err)
	require.Equal(t, 1, summary.Errors)
	require.False(t, summary.Success())
}

func TestSummaryTotals(t *stdt.T) {
	summary := &Summary{
		Files: []*FileResult{
			{Tests: []*TestResult{
				{Status: StatusPassed},
				{Status: StatusPassed},
				{Status: StatusFailed},
			}},
			{CompileErr: os.ErrNotExist},
		},
	}
	summary.ComputeTotals()
	require.Equal(t, 2, summary.Passed)
	require.Equal(t, 1, summary.Failed)
	require.Equal(t, 1, summary.Errors)
}
