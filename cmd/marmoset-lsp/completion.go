package main

import (
	"context"

	"github.com/jdbaldry/go-language-server-protocol/lsp/protocol"
	"github.com/marmoset-lang/marmoset/ast"
	"github.com/rs/zerolog/log"
)

// Language keywords for completion.
var marmosetKeywords = []string{
	"else", "false", "func", "if", "iter", "let", "mut", "nil",
	"option", "result", "return", "struct", "true",
}

// Built-in functions available in the global scope.
var marmosetBuiltins = []string{
	"Some", "None", "Ok", "Err", "all", "any", "assert", "bool", "call",
	"error", "float", "getattr", "int", "iter", "keys", "len", "list",
	"print", "println", "reversed", "sorted", "sprintf", "string", "type",
}

// Modules in the standard global environment.
var marmosetModules = []string{
	"filepath", "fmt", "math", "rand", "regexp", "strings", "time",
}

// Short hover docs for a few common builtins.
var builtinDocs = map[string]string{
	"Some":    "Wrap a value in an option.",
	"None":    "The empty option value.",
	"Ok":      "Wrap a value in a successful result.",
	"Err":     "Wrap an error in a failed result.",
	"len":     "Return the number of items in a container.",
	"print":   "Print arguments separated by spaces.",
	"println": "Print arguments followed by a newline.",
	"sprintf": "Format a string with fmt-style verbs.",
	"type":    "Return the type name of a value.",
}

func (s *Server) Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	doc, err := s.cache.get(params.TextDocument.URI)
	if err != nil {
		log.Error().Err(err).Str("call", "Completion").Msg("failed to get document")
		return &protocol.CompletionList{IsIncomplete: false, Items: nil}, nil
	}

	var items []protocol.CompletionItem

	for _, keyword := range marmosetKeywords {
		items = append(items, protocol.CompletionItem{
			Label:  keyword,
			Kind:   14, // Keyword
			Detail: "Marmoset keyword",
		})
	}

	for _, builtin := range marmosetBuiltins {
		items = append(items, protocol.CompletionItem{
			Label:      builtin,
			Kind:       3, // Function
			Detail:     "Built-in function",
			InsertText: builtin + "()",
		})
	}

	for _, module := range marmosetModules {
		items = append(items, protocol.CompletionItem{
			Label:  module,
			Kind:   9, // Module
			Detail: "Marmoset module",
		})
	}

	// Add symbols declared in the current document.
	if doc.ast != nil && doc.err == nil {
		for _, variable := range extractVariables(doc.ast) {
			items = append(items, protocol.CompletionItem{
				Label:  variable,
				Kind:   6, // Variable
				Detail: "Variable",
			})
		}
		for _, function := range extractFunctions(doc.ast) {
			items = append(items, protocol.CompletionItem{
				Label:      function,
				Kind:       3, // Function
				Detail:     "User-defined function",
				InsertText: function + "()",
			})
		}
	}

	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        items,
	}, nil
}

// extractVariables finds the names declared by top level let statements,
// including names bound through tuple and struct patterns.
func extractVariables(program *ast.Program) []string {
	var variables []string
	seen := make(map[string]bool)
	add := func(name string) {
		if name != "" && !seen[name] {
			variables = append(variables, name)
			seen[name] = true
		}
	}

	for _, stmt := range program.Stmts {
		switch s := stmt.(type) {
		case *ast.Var:
			if _, isFunc := s.Value.(*ast.Func); isFunc {
				continue
			}
			for _, name := range s.Pattern.Names() {
				add(name)
			}
		case *ast.Assign:
			if s.Name != nil {
				add(s.Name.Name)
			}
		}
	}
	return variables
}

// extractFunctions finds the names of top level functions, whether declared
// with a named func statement or assigned to a variable.
func extractFunctions(program *ast.Program) []string {
	var functions []string
	seen := make(map[string]bool)
	add := func(name string) {
		if name != "" && !seen[name] {
			functions = append(functions, name)
			seen[name] = true
		}
	}

	for _, stmt := range program.Stmts {
		switch s := stmt.(type) {
		case *ast.Func:
			if s.Name != nil {
				add(s.Name.Name)
			}
		case *ast.Var:
			if _, ok := s.Value.(*ast.Func); ok {
				for _, name := range s.Pattern.Names() {
					add(name)
				}
			}
		case *ast.Assign:
			if s.Name != nil {
				if _, ok := s.Value.(*ast.Func); ok {
					add(s.Name.Name)
				}
			}
		}
	}
	return functions
}
