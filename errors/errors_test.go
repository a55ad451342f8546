package errors

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSourceLocation_String(t *testing.T) {
	tests := []struct {
		name     string
		loc      SourceLocation
		expected string
	}{
		{
			name:     "with filename",
			loc:      SourceLocation{Filename: "main.marm", Line: 10, Column: 5},
			expected: "main.marm:10:5",
		},
		{
			name:     "without filename",
			loc:      SourceLocation{Line: 10, Column: 5},
			expected: "10:5",
		},
		{
			name:     "zero location",
			loc:      SourceLocation{},
			expected: "0:0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.loc.String())
		})
	}
}

func TestSourceLocation_IsZero(t *testing.T) {
	tests := []struct {
		name     string
		loc      SourceLocation
		expected bool
	}{
		{
			name:     "zero location",
			loc:      SourceLocation{},
			expected: true,
		},
		{
			name:     "with line only",
			loc:      SourceLocation{Line: 1},
			expected: false,
		},
		{
			name:     "with column only",
			loc:      SourceLocation{Column: 1},
			expected: false,
		},
		{
			name:     "with both",
			loc:      SourceLocation{Line: 1, Column: 1},
			expected: false,
		},
		{
			name:     "filename doesn't affect IsZero",
			loc:      SourceLocation{Filename: "test.marm"},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.loc.IsZero())
		})
	}
}

func TestStackFrame_String(t *testing.T) {
	tests := []struct {
		name     string
		frame    StackFrame
		expected string
	}{
		{
			name: "with function name",
			frame: StackFrame{
				Function: "calculate",
				Location: SourceLocation{Filename: "math.marm", Line: 25, Column: 10},
			},
			expected: "at calculate (math.marm:25:10)",
		},
		{
			name: "without function name",
			frame: StackFrame{
				Location: SourceLocation{Filename: "main.marm", Line: 5, Column: 1},
			},
			expected: "at main.marm:5:1",
		},
		{
			name: "anonymous function",
			frame: StackFrame{
				Function: "",
				Location: SourceLocation{Line: 10, Column: 5},
			},
			expected: "at 10:5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.frame.String())
		})
	}
}

func TestFormatStackTrace(t *testing.T) {
	tests := []struct {
		name     string
		frames   []StackFrame
		contains []string
	}{
		{
			name:     "empty stack",
			frames:   nil,
			contains: nil,
		},
		{
			name: "single frame",
			frames: []StackFrame{
				{Function: "main", Location: SourceLocation{Filename: "test.marm", Line: 1, Column: 1}},
			},
			contains: []string{"Stack trace:", "at main (test.marm:1:1)"},
		},
		{
			name: "multiple frames",
			frames: []StackFrame{
				{Function: "inner", Location: SourceLocation{Line: 10, Column: 5}},
				{Function: "outer", Location: SourceLocation{Line: 20, Column: 1}},
			},
			contains: []string{"Stack trace:", "at inner (10:5)", "at outer (20:1)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatStackTrace(tt.frames)
			if len(tt.contains) == 0 {
				require.Equal(t, "", result)
			} else {
				for _, s := range tt.contains {
					require.Contains(t, result, s)
				}
			}
		})
	}
}

func TestErrorKind_String(t *testing.T) {
	tests := []struct {
		kind     ErrorKind
		expected string
	}{
		{ErrSyntax, "syntax error"},
		{ErrType, "type error"},
		{ErrName, "name error"},
		{ErrValue, "value error"},
		{ErrRuntime, "runtime error"},
		{ErrImport, "import error"},
		{ErrorKind(999), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.kind.String())
		})
	}
}

func TestStructuredError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name: "with location",
			err: &StructuredError{
				Kind:     ErrType,
				Message:  "cannot add int and string",
				Location: SourceLocation{Line: 5, Column: 10},
			},
			expected: "type error: cannot add int and string (5:10)",
		},
		{
			name: "without location",
			err: &StructuredError{
				Kind:    ErrRuntime,
				Message: "division by zero",
			},
			expected: "runtime error: division by zero",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestStructuredError_FriendlyErrorMessage(t *testing.T) {
	err := &StructuredError{
		Kind:    ErrName,
		Message: "undefined variable \"foo\"",
		Location: SourceLocation{
			Filename: "test.marm",
			Line:     3,
			Column:   5,
			Source:   "let x = foo + 1",
		},
		Stack: []StackFrame{
			{Function: "calculate", Location: SourceLocation{Line: 3, Column: 5}},
			{Function: "main", Location: SourceLocation{Line: 10, Column: 1}},
		},
	}

	result := err.FriendlyErrorMessage()

	// Check all parts are present
	require.Contains(t, result, "name error: undefined variable \"foo\" (3:5)")
	require.Contains(t, result, "let x = foo + 1")
	require.Contains(t, result, "    ^") // caret at column 5
	require.Contains(t, result, "Stack trace:")
	require.Contains(t, result, "at calculate (3:5)")
	require.Contains(t, result, "at main (10:1)")
}

func TestStructuredError_FriendlyErrorMessage_NoSource(t *testing.T) {
	err := &StructuredError{
		Kind:     ErrRuntime,
		Message:  "something went wrong",
		Location: SourceLocation{Line: 5, Column: 10},
	}

	result := err.FriendlyErrorMessage()
	require.Contains(t, result, "runtime error: something went wrong (5:10)")
	// Should not have source snippet or caret
	require.NotContains(t, result, "^")
}

func TestStructuredError_FriendlyErrorMessage_ZeroLocation(t *testing.T) {
	err := &StructuredError{
		Kind:    ErrRuntime,
		Message: "something went wrong",
	}

	result := err.FriendlyErrorMessage()
	require.Contains(t, result, "runtime error: something went wrong")
	// Should not have line:column
	require.NotContains(t, result, "(0:0)")
}

func TestStructuredError_Unwrap(t *testing.T) {
	cause := NewEvalError(EvalErrorf("underlying error"))
	err := &StructuredError{
		Kind:    ErrRuntime,
		Message: "wrapper",
		Cause:   cause,
	}

	require.Equal(t, cause, err.Unwrap())
}

func TestStructuredError_WithCause(t *testing.T) {
	cause := EvalErrorf("the cause")
	err := NewStructuredError(ErrRuntime, "test", SourceLocation{}, nil)
	err.WithCause(cause)

	require.Equal(t, cause, err.Cause)
}

func TestNewStructuredError(t *testing.T) {
	loc := SourceLocation{Filename: "test.marm", Line: 5, Column: 3}
	stack := []StackFrame{{Function: "main", Location: loc}}

	err := NewStructuredError(ErrType, "test message", loc, stack)

	require.Equal(t, ErrType, err.Kind)
	require.Equal(t, "test message", err.Message)
	require.Equal(t, loc, err.Location)
	require.Equal(t, stack, err.Stack)
}

func TestNewStructuredErrorf(t *testing.T) {
	loc := SourceLocation{Line: 10, Column: 1}

	err := NewStructuredErrorf(ErrValue, loc, nil, "invalid value: %d", 42)

	require.Equal(t, ErrValue, err.Kind)
	require.Equal(t, "invalid value: 42", err.Message)
	require.Equal(t, loc, err.Location)
}

func TestEvalError(t *testing.T) {
	err := EvalErrorf("something bad: %s", "details")

	require.Contains(t, err.Error(), "something bad: details")

	// Test Unwrap
	underlying := err.Unwrap()
	require.NotNil(t, underlying)
}

func TestArgsError(t *testing.T) {
	err := ArgsErrorf("expected %d args, got %d", 2, 3)

	require.Contains(t, err.Error(), "expected 2 args, got 3")
}

func TestTypeError(t *testing.T) {
	err := TypeErrorf("cannot compare %s and %s", "int", "string")

	require.Contains(t, err.Error(), "cannot compare int and string")
}

// Tests for codes.go

func TestErrorCode_Description(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected string
	}{
		{E1001, "unexpected token"},
		{E1002, "unterminated string literal"},
		{E2001, "bind outside comprehension"},
		{E2003, "guard in an option or result comprehension"},
		{E2005, "duplicate parameter name"},
		{E3001, "type error"},
		{E3002, "division by zero"},
		{ErrorCode("E9999"), "unknown error"},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			require.Equal(t, tt.expected, tt.code.Description())
		})
	}
}

func TestErrorCode_String(t *testing.T) {
	require.Equal(t, "E1001", E1001.String())
	require.Equal(t, "E2001", E2001.String())
	require.Equal(t, "E3001", E3001.String())
}

func TestErrorCode_Category(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected string
	}{
		{E1001, "parse"},
		{E1010, "parse"},
		{E2001, "expand"},
		{E2010, "expand"},
		{E3001, "runtime"},
		{E3010, "runtime"},
		{ErrorCode("E"), "unknown"},     // Too short
		{ErrorCode("E0001"), "unknown"}, // Invalid category
		{ErrorCode("E4001"), "unknown"}, // Unknown category
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			require.Equal(t, tt.expected, tt.code.Category())
		})
	}
}

// Tests for suggest.go

func TestSuggestSimilar(t *testing.T) {
	candidates := []string{"print", "printf", "println", "sprint", "sprintf"}

	tests := []struct {
		name        string
		target      string
		candidates  []string
		wantAtLeast int // Min number of expected suggestions
		wantFirst   string
	}{
		{
			name:        "close match",
			target:      "prin",
			candidates:  candidates,
			wantAtLeast: 1,
			wantFirst:   "print",
		},
		{
			name:        "exact match excluded",
			target:      "print",
			candidates:  candidates,
			wantAtLeast: 2, // printf and sprint at least
			wantFirst:   "printf",
		},
		{
			name:        "no close matches",
			target:      "xyz",
			candidates:  candidates,
			wantAtLeast: 0,
		},
		{
			name:        "empty target",
			target:      "",
			candidates:  candidates,
			wantAtLeast: 0,
		},
		{
			name:        "empty candidates",
			target:      "print",
			candidates:  []string{},
			wantAtLeast: 0,
		},
		{
			name:        "short word threshold",
			target:      "at",
			candidates:  []string{"as", "is", "it", "an"},
			wantAtLeast: 2, // At least "as" and "an" are 1 edit away
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			suggestions := SuggestSimilar(tt.target, tt.candidates)
			require.GreaterOrEqual(t, len(suggestions), tt.wantAtLeast,
				"expected at least %d suggestions, got %d", tt.wantAtLeast, len(suggestions))
			if tt.wantAtLeast > 0 && tt.wantFirst != "" {
				require.Equal(t, tt.wantFirst, suggestions[0].Value)
			}
		})
	}
}

func TestSuggestSimilar_MaxSuggestions(t *testing.T) {
	// Many similar candidates
	candidates := []string{"foo1", "foo2", "foo3", "foo4", "foo5"}
	suggestions := SuggestSimilar("foo", candidates)

	// Should be limited to MaxSuggestions
	require.LessOrEqual(t, len(suggestions), MaxSuggestions)
}

func TestFormatSuggestions(t *testing.T) {
	tests := []struct {
		name        string
		suggestions []Suggestion
		expected    string
	}{
		{
			name:        "empty",
			suggestions: nil,
			expected:    "",
		},
		{
			name:        "single suggestion",
			suggestions: []Suggestion{{Value: "print", Distance: 1}},
			expected:    "Did you mean 'print'?",
		},
		{
			name: "multiple suggestions",
			suggestions: []Suggestion{
				{Value: "print", Distance: 1},
				{Value: "printf", Distance: 2},
			},
			expected: "Did you mean one of: 'print', 'printf'?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatSuggestions(tt.suggestions)
			require.Equal(t, tt.expected, result)
		})
	}
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"abc", "abd", 1},
		{"abc", "adc", 1},
		{"abc", "abcd", 1},
		{"kitten", "sitting", 3},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			result := levenshteinDistance(tt.a, tt.b)
			require.Equal(t, tt.expected, result)
		})
	}
}

// Tests for format.go

func TestNewFormatter(t *testing.T) {
	f := NewFormatter(true)
	require.True(t, f.UseColor)

	f = NewFormatter(false)
	require.False(t, f.UseColor)
}

func TestFormatter_Format(t *testing.T) {
	f := NewFormatter(false) // No color for easier testing

	err := &FormattedError{
		Code:     E2001,
		Kind:     "expand error",
		Message:  "bind expression used outside of a comprehension",
		Filename: "test.marm",
		Line:     10,
		Column:   5,
		SourceLines: []SourceLineEntry{
			{Number: 10, Text: "let x <- find_user(id)", IsMain: true},
		},
	}

	result := f.Format(err)

	// Check key parts are present
	require.Contains(t, result, "expand error")
	require.Contains(t, result, "[E2001]")
	require.Contains(t, result, "bind expression used outside of a comprehension")
	require.Contains(t, result, "test.marm:10:5")
	require.Contains(t, result, "let x <- find_user(id)")
	require.Contains(t, result, "^") // Caret
}

func TestFormatter_FormatWithHint(t *testing.T) {
	f := NewFormatter(false)

	err := &FormattedError{
		Kind:    "error",
		Message: "undefined variable 'prnt'",
		Line:    5,
		Column:  1,
		Hint:    "Did you mean 'print'?",
	}

	result := f.Format(err)
	require.Contains(t, result, "hint: Did you mean 'print'?")
}

func TestFormatter_FormatWithNote(t *testing.T) {
	f := NewFormatter(false)

	err := &FormattedError{
		Kind:    "error",
		Message: "guard is only valid in an iter comprehension",
		Line:    5,
		Column:  1,
		Note:    "option and result comprehensions cannot filter",
	}

	result := f.Format(err)
	require.Contains(t, result, "note: option and result comprehensions cannot filter")
}

func TestFormatter_FormatWithStack(t *testing.T) {
	f := NewFormatter(false)

	err := &FormattedError{
		Kind:    "runtime error",
		Message: "division by zero",
		Line:    10,
		Column:  5,
		Stack: []StackFrame{
			{Function: "divide", Location: SourceLocation{Line: 10, Column: 5}},
			{Function: "main", Location: SourceLocation{Line: 20, Column: 1}},
		},
	}

	result := f.Format(err)
	require.Contains(t, result, "stack trace:")
	require.Contains(t, result, "at divide (10:5)")
	require.Contains(t, result, "at main (20:1)")
}

func TestFormatter_FormatNoLocation(t *testing.T) {
	f := NewFormatter(false)

	err := &FormattedError{
		Kind:    "error",
		Message: "something went wrong",
	}

	result := f.Format(err)
	require.Contains(t, result, "something went wrong")
	// Should not have location arrow
	require.NotContains(t, result, "-->")
}

func TestFormatter_FormatMultiple(t *testing.T) {
	f := NewFormatter(false)

	// Empty
	result := f.FormatMultiple(nil)
	require.Equal(t, "", result)

	// Single error - no numbering
	single := []*FormattedError{{Kind: "error", Message: "test"}}
	result = f.FormatMultiple(single)
	require.NotContains(t, result, "[1/1]")

	// Multiple errors - with numbering
	multiple := []*FormattedError{
		{Kind: "error", Message: "first error"},
		{Kind: "error", Message: "second error"},
	}
	result = f.FormatMultiple(multiple)
	require.Contains(t, result, "[1/2]")
	require.Contains(t, result, "[2/2]")
	require.Contains(t, result, "found 2 errors")
}

func TestFormatter_FormatWithColor(t *testing.T) {
	f := NewFormatter(true) // With color

	err := &FormattedError{
		Code:    E2001,
		Kind:    "error",
		Message: "test error",
		Line:    1,
		Column:  1,
	}

	result := f.Format(err)
	// Just verify it doesn't panic and produces output
	require.NotEmpty(t, result)
}

func TestFormatter_FormatMultiCharUnderline(t *testing.T) {
	f := NewFormatter(false)

	err := &FormattedError{
		Kind:      "error",
		Message:   "undefined identifier",
		Line:      5,
		Column:    5,
		EndColumn: 10, // Multi-char underline
		SourceLines: []SourceLineEntry{
			{Number: 5, Text: "let hello = undefined", IsMain: true},
		},
	}

	result := f.Format(err)
	// Should have multiple carets
	require.Contains(t, result, "^^^^^")
}

func TestFormatter_FormatLargeLineNumber(t *testing.T) {
	f := NewFormatter(false)

	err := &FormattedError{
		Kind:     "error",
		Message:  "test",
		Filename: "test.marm",
		Line:     1000,
		Column:   5,
		SourceLines: []SourceLineEntry{
			{Number: 1000, Text: "some code", IsMain: true},
		},
	}

	result := f.Format(err)
	require.Contains(t, result, "1000")
}

// Tests for NewEvalError and NewArgsError

func TestNewEvalError(t *testing.T) {
	cause := TypeErrorf("underlying cause")
	err := NewEvalError(cause)

	require.Contains(t, err.Error(), "underlying cause")
	require.Equal(t, cause, err.Unwrap())
}

func TestNewArgsError(t *testing.T) {
	cause := TypeErrorf("bad args")
	err := NewArgsError(cause)

	require.Contains(t, err.Error(), "bad args")
	require.Equal(t, cause, err.Unwrap())
}

func TestNewTypeError(t *testing.T) {
	err := NewTypeError(EvalErrorf("test"))
	require.Contains(t, err.Error(), "test")
	require.Equal(t, "test", err.Unwrap().Error())
}

// Tests for expand.go

func TestExpandError_Error(t *testing.T) {
	err := &ExpandError{
		Code:     E2003,
		Message:  "guard is only valid in an iter comprehension",
		Filename: "pipeline.marm",
		Line:     7,
		Column:   3,
	}

	msg := err.Error()
	require.Contains(t, msg, "expand error: guard is only valid in an iter comprehension")
	require.Contains(t, msg, "pipeline.marm:7:3")
	require.Contains(t, msg, "(line 7, column 3)")
}

func TestExpandError_ErrorNoLocation(t *testing.T) {
	err := &ExpandError{
		Code:    E2009,
		Message: "maximum expansion depth exceeded",
	}

	require.Equal(t, "expand error: maximum expansion depth exceeded", err.Error())
}

func TestExpandError_FriendlyErrorMessage(t *testing.T) {
	err := &ExpandError{
		Code:       E2002,
		Message:    "guard used outside of a comprehension",
		Filename:   "test.marm",
		Line:       4,
		Column:     1,
		SourceLine: "if (x > 2);",
		Note:       "guards are only meaningful inside iter { ... }",
	}

	result := err.FriendlyErrorMessage()
	require.Contains(t, result, "[E2002]")
	require.Contains(t, result, "guard used outside of a comprehension")
	require.Contains(t, result, "test.marm:4:1")
	require.Contains(t, result, "if (x > 2);")
	require.Contains(t, result, "note: guards are only meaningful inside iter { ... }")
}

func TestExpandErrors(t *testing.T) {
	errs := &ExpandErrors{}
	require.False(t, errs.HasErrors())
	require.Equal(t, 0, errs.Count())
	require.Nil(t, errs.ToError())
	require.Equal(t, "", errs.Error())

	errs.Add(&ExpandError{Code: E2001, Message: "bind used outside of a comprehension"})
	require.True(t, errs.HasErrors())
	require.Equal(t, 1, errs.Count())
	require.Equal(t, error(errs.Errors[0]), errs.ToError())

	errs.Add(&ExpandError{Code: E2002, Message: "guard used outside of a comprehension"})
	require.Equal(t, 2, errs.Count())
	require.Contains(t, errs.Error(), "(and 1 more errors)")
	require.Equal(t, error(errs), errs.ToError())

	friendly := errs.FriendlyErrorMessage()
	require.Contains(t, friendly, "[1/2]")
	require.Contains(t, friendly, "[2/2]")
	require.Contains(t, friendly, "found 2 errors")
}
