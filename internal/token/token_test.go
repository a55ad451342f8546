package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Test looking up values succeeds, then fails
func TestLookup(t *testing.T) {
	for key, val := range keywords {

		// Obviously this will pass.
		if LookupIdentifier(string(key)) != val {
			t.Errorf("Lookup of %s failed", key)
		}

		// Once the keywords are uppercase they'll no longer
		// match - so we find them as identifiers.
		if LookupIdentifier(strings.ToUpper(string(key))) != IDENT {
			t.Errorf("Lookup of %s failed", key)
		}
	}
}

func TestPosition(t *testing.T) {
	tok := Token{
		Type:    IDENT,
		Literal: "foo",
		StartPosition: Position{
			Line:   2,
			Column: 0,
		},
	}
	// Switches to 1-indexed
	require.Equal(t, 3, tok.StartPosition.LineNumber())
	require.Equal(t, 1, tok.StartPosition.ColumnNumber())
}

func TestPositionAdvance(t *testing.T) {
	pos := Position{Char: 10, LineStart: 4, Line: 1, Column: 6, File: "main.mar"}
	end := pos.Advance(3)
	require.Equal(t, 13, end.Char)
	require.Equal(t, 9, end.Column)
	require.Equal(t, 1, end.Line)
	require.Equal(t, "main.mar", end.File)
	require.True(t, end.IsValid())
	require.False(t, NoPos.IsValid())
}
