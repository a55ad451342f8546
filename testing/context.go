// Package testing runs Marmoset test files: every test_* function in a
// *_test.marm file is called with a test context object that carries
// assertion methods.
package testing

import (
	"context"
	"fmt"
	"strings"

	"github.com/marmoset-lang/marmoset/object"
	"github.com/marmoset-lang/marmoset/op"
)

const TEST_CONTEXT object.Type = "test_context"

var testAttrs = object.NewAttrRegistry[*TestContext]("test_context")

func init() {
	testAttrs.Define("assert").
		Doc("Fail the test unless the condition is truthy").
		Arg("cond").
		OptionalArg("msg").
		Impl(func(t *TestContext, ctx context.Context, args ...object.Object) (object.Object, error) {
			if !args[0].IsTruthy() {
				t.addFailure(messageOr(args[1:], "assertion failed"), args[0], nil)
			}
			return object.Nil, nil
		})

	testAttrs.Define("assert_eq").
		Doc("Fail the test unless got equals want").
		Args("got", "want").
		OptionalArg("msg").
		Impl(func(t *TestContext, ctx context.Context, args ...object.Object) (object.Object, error) {
			got, want := args[0], args[1]
			if !got.Equals(want) {
				t.addFailure(messageOr(args[2:], "values are not equal"), got, want)
			}
			return object.Nil, nil
		})

	testAttrs.Define("assert_ne").
		Doc("Fail the test when got equals want").
		Args("got", "want").
		OptionalArg("msg").
		Impl(func(t *TestContext, ctx context.Context, args ...object.Object) (object.Object, error) {
			got, want := args[0], args[1]
			if got.Equals(want) {
				t.addFailure(messageOr(args[2:], "values should not be equal"), got, want)
			}
			return object.Nil, nil
		})

	testAttrs.Define("assert_some").
		Doc("Fail the test unless the value is a Some option").
		Arg("value").
		OptionalArg("msg").
		Impl(func(t *TestContext, ctx context.Context, args ...object.Object) (object.Object, error) {
			if opt, ok := args[0].(*object.Option); !ok || opt.IsNone() {
				t.addFailure(messageOr(args[1:], "expected Some"), args[0], nil)
			}
			return object.Nil, nil
		})

	testAttrs.Define("assert_none").
		Doc("Fail the test unless the value is None").
		Arg("value").
		OptionalArg("msg").
		Impl(func(t *TestContext, ctx context.Context, args ...object.Object) (object.Object, error) {
			if opt, ok := args[0].(*object.Option); !ok || opt.IsSome() {
				t.addFailure(messageOr(args[1:], "expected None"), args[0], nil)
			}
			return object.Nil, nil
		})

	testAttrs.Define("assert_ok").
		Doc("Fail the test unless the value is an Ok result").
		Arg("value").
		OptionalArg("msg").
		Impl(func(t *TestContext, ctx context.Context, args ...object.Object) (object.Object, error) {
			if res, ok := args[0].(*object.Result); !ok || res.IsErr() {
				t.addFailure(messageOr(args[1:], "expected Ok"), args[0], nil)
			}
			return object.Nil, nil
		})

	testAttrs.Define("assert_err").
		Doc("Fail the test unless the value is an Err result").
		Arg("value").
		OptionalArg("msg").
		Impl(func(t *TestContext, ctx context.Context, args ...object.Object) (object.Object, error) {
			if res, ok := args[0].(*object.Result); !ok || res.IsOk() {
				t.addFailure(messageOr(args[1:], "expected Err"), args[0], nil)
			}
			return object.Nil, nil
		})

	testAttrs.Define("skip").
		Doc("Mark the test as skipped").
		OptionalArg("reason").
		Impl(func(t *TestContext, ctx context.Context, args ...object.Object) (object.Object, error) {
			t.skipped = true
			if len(args) == 1 {
				t.skipReason = asMessage(args[0])
			}
			return object.Nil, nil
		})

	testAttrs.Define("fail").
		Doc("Fail the test unconditionally").
		OptionalArg("msg").
		Impl(func(t *TestContext, ctx context.Context, args ...object.Object) (object.Object, error) {
			t.addFailure(messageOr(args, "test failed"), nil, nil)
			return object.Nil, nil
		})

	testAttrs.Define("log").
		Doc("Record a message, shown for failed tests or with -v").
		Variadic().
		Impl(func(t *TestContext, ctx context.Context, args ...object.Object) (object.Object, error) {
			parts := make([]string, len(args))
			for i, arg := range args {
				parts[i] = asMessage(arg)
			}
			t.logs = append(t.logs, strings.Join(parts, " "))
			return object.Nil, nil
		})
}

// messageOr returns the user-supplied message when present.
func messageOr(args []object.Object, fallback string) string {
	if len(args) == 1 {
		return asMessage(args[0])
	}
	return fallback
}

func asMessage(obj object.Object) string {
	if s, ok := obj.(*object.String); ok {
		return s.Value()
	}
	return obj.Inspect()
}

// TestContext is the "t" object passed to test functions. It records
// assertion failures, skips, and log messages for the runner to report.
type TestContext struct {
	name       string
	filename   string
	failed     bool
	skipped    bool
	skipReason string
	logs       []string
	failures   []AssertionError
}

// NewTestContext creates the context object for one test function.
func NewTestContext(name, filename string) *TestContext {
	return &TestContext{name: name, filename: filename}
}

func (t *TestContext) Type() object.Type {
	return TEST_CONTEXT
}

func (t *TestContext) Inspect() string {
	return fmt.Sprintf("test_context(%s)", t.name)
}

func (t *TestContext) String() string {
	return t.Inspect()
}

func (t *TestContext) Interface() any {
	return t
}

func (t *TestContext) Equals(other object.Object) bool {
	return t == other
}

func (t *TestContext) IsTruthy() bool {
	return true
}

func (t *TestContext) Attrs() []object.AttrSpec {
	return testAttrs.Specs()
}

func (t *TestContext) GetAttr(name string) (object.Object, bool) {
	if name == "name" {
		return object.NewString(t.name), true
	}
	return testAttrs.GetAttr(t, name)
}

func (t *TestContext) SetAttr(name string, value object.Object) error {
	return fmt.Errorf("type error: test context attributes are read-only")
}

func (t *TestContext) RunOperation(opType op.BinaryOpType, right object.Object) (object.Object, error) {
	return nil, fmt.Errorf("type error: unsupported operation for test_context: %v", opType)
}

// Name returns the test name.
func (t *TestContext) Name() string { return t.name }

// Failed reports whether any assertion failed.
func (t *TestContext) Failed() bool { return t.failed }

// Skipped reports whether the test called skip.
func (t *TestContext) Skipped() bool { return t.skipped }

// SkipReason returns the reason passed to skip, if any.
func (t *TestContext) SkipReason() string { return t.skipReason }

// Logs returns the messages recorded with log.
func (t *TestContext) Logs() []string { return t.logs }

// Failures returns the recorded assertion failures.
func (t *TestContext) Failures() []AssertionError { return t.failures }

func (t *TestContext) addFailure(msg string, got, want object.Object) {
	t.failed = true
	t.failures = append(t.failures, AssertionError{
		Message: msg,
		File:    t.filename,
		Got:     got,
		Want:    want,
	})
}
