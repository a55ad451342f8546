package main

import (
	"context"
	"testing"

	"github.com/jdbaldry/go-language-server-protocol/lsp/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLanguageServerIntegration exercises the server against a complete
// Marmoset file, simulating real editor interactions.
func TestLanguageServerIntegration(t *testing.T) {
	code := `let config = {
    "host": "localhost",
    "port": 8080,
    "debug": true
}

func process_user(user_id, name) {
    if (user_id <= 0) {
        "invalid"
    } else {
        let user = { "id": user_id, "name": name, "status": "active" }
        user
    }
}

let users = list(iter {
    let i <- [1, 2, 3, 4];
    process_user(i, "user")
})

let active_users = users.filter(func(u) { u["status"] == "active" })

println(len(active_users))`

	server := &Server{
		name:    "test-marmoset-lsp",
		version: "1.0.0-test",
		cache:   newCache(),
	}

	uri := protocol.DocumentURI("file:///example.marm")

	t.Run("DocumentParsing", func(t *testing.T) {
		require.NoError(t, setTestDocument(server.cache, uri, code))

		doc, err := server.cache.get(uri)
		require.NoError(t, err)
		require.NoError(t, doc.err)
		require.NotNil(t, doc.ast)
		assert.NotEmpty(t, doc.ast.Stmts)
	})

	t.Run("Completion", func(t *testing.T) {
		params := &protocol.CompletionParams{
			TextDocumentPositionParams: protocol.TextDocumentPositionParams{
				TextDocument: protocol.TextDocumentIdentifier{URI: uri},
				Position:     protocol.Position{Line: 19, Character: 20},
			},
		}

		result, err := server.Completion(context.Background(), params)
		require.NoError(t, err)
		require.NotNil(t, result)
		require.NotEmpty(t, result.Items)

		var hasUsers, hasKeywords, hasBuiltins, hasFunction bool
		for _, item := range result.Items {
			switch item.Label {
			case "users":
				hasUsers = true
			case "let", "option", "iter":
				hasKeywords = true
			case "len", "println", "Some":
				hasBuiltins = true
			case "process_user":
				hasFunction = true
			}
		}
		assert.True(t, hasUsers, "expected 'users' variable in completion")
		assert.True(t, hasKeywords, "expected keywords in completion")
		assert.True(t, hasBuiltins, "expected builtins in completion")
		assert.True(t, hasFunction, "expected 'process_user' in completion")
	})

	t.Run("DocumentSymbols", func(t *testing.T) {
		params := &protocol.DocumentSymbolParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		}

		result, err := server.DocumentSymbol(context.Background(), params)
		require.NoError(t, err)
		require.NotEmpty(t, result)

		var names []string
		for _, entry := range result {
			if symbol, ok := entry.(protocol.DocumentSymbol); ok {
				names = append(names, symbol.Name)
			}
		}
		for _, expected := range []string{"config", "process_user", "users", "active_users"} {
			assert.Contains(t, names, expected)
		}
	})

	t.Run("Definition", func(t *testing.T) {
		// The process_user call inside the comprehension body.
		params := &protocol.DefinitionParams{
			TextDocumentPositionParams: protocol.TextDocumentPositionParams{
				TextDocument: protocol.TextDocumentIdentifier{URI: uri},
				Position:     protocol.Position{Line: 17, Character: 8},
			},
		}

		result, err := server.Definition(context.Background(), params)
		require.NoError(t, err)
		require.NotEmpty(t, result)
		assert.Equal(t, uri, result[0].URI)
		assert.Equal(t, uint32(6), result[0].Range.Start.Line)
	})

	t.Run("Hover", func(t *testing.T) {
		params := &protocol.HoverParams{
			TextDocumentPositionParams: protocol.TextDocumentPositionParams{
				TextDocument: protocol.TextDocumentIdentifier{URI: uri},
				Position:     protocol.Position{Line: 17, Character: 8},
			},
		}

		result, err := server.Hover(context.Background(), params)
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Contains(t, result.Contents.Value, "process_user")
	})
}

// TestLanguageServerWithErrors checks behavior on files with syntax errors.
func TestLanguageServerWithErrors(t *testing.T) {
	server := &Server{
		name:    "test-marmoset-lsp",
		version: "1.0.0-test",
		cache:   newCache(),
	}

	invalidCode := `let x = 42
func incomplete(
let y = "missing paren"`

	uri := protocol.DocumentURI("file:///invalid.marm")
	require.NoError(t, setTestDocument(server.cache, uri, invalidCode))

	doc, err := server.cache.get(uri)
	require.NoError(t, err)
	require.Error(t, doc.err)

	// Completion still provides keywords and builtins.
	params := &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     protocol.Position{Line: 0, Character: 10},
		},
	}
	result, err := server.Completion(context.Background(), params)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.Items)
}

// TestCodeExamples runs the document pipeline over assorted language
// patterns.
func TestCodeExamples(t *testing.T) {
	examples := map[string]string{
		"variables": `let name = "Marmoset"
let age = 25
let mut count = 0`,

		"functions": `func add(a, b) { a + b }
let greet = func(name) {
    "Hello, " + name + "!"
}`,

		"comprehensions": `let pairs = iter {
    let x <- [1, 2, 3];
    let y <- [10, 20];
    if x > 1;
    (x, y)
}
let result = pairs.to_list()`,

		"structs": `struct Point{x, y}
let p = Point{x: 3, y: 4}
let Point{x, y} = p`,
	}

	server := &Server{
		name:    "test-marmoset-lsp",
		version: "1.0.0-test",
		cache:   newCache(),
	}

	for name, code := range examples {
		t.Run(name, func(t *testing.T) {
			uri := protocol.DocumentURI("file:///" + name + ".marm")
			require.NoError(t, setTestDocument(server.cache, uri, code))

			doc, err := server.cache.get(uri)
			require.NoError(t, err)
			require.NoError(t, doc.err, "parse error in %s", name)
			require.NotNil(t, doc.ast)
			assert.NotEmpty(t, doc.ast.Stmts)

			result, err := server.Completion(context.Background(), &protocol.CompletionParams{
				TextDocumentPositionParams: protocol.TextDocumentPositionParams{
					TextDocument: protocol.TextDocumentIdentifier{URI: uri},
					Position:     protocol.Position{Line: 0, Character: 0},
				},
			})
			require.NoError(t, err)
			assert.NotEmpty(t, result.Items)
		})
	}
}
