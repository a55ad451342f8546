package main

import (
	"context"

	"github.com/jdbaldry/go-language-server-protocol/lsp/protocol"
	"github.com/marmoset-lang/marmoset/ast"
	"github.com/marmoset-lang/marmoset/errors"
	"github.com/marmoset-lang/marmoset/expand"
	"github.com/marmoset-lang/marmoset/parser"
	"github.com/marmoset-lang/marmoset/syntax"
	"github.com/rs/zerolog/log"
)

// Server answers LSP requests for Marmoset source files. Methods that are
// not implemented fall through to the embedded interface.
type Server struct {
	protocol.Server
	name    string
	version string
	client  protocol.ClientCloser
	cache   *cache
}

func newServer(client protocol.ClientCloser) *Server {
	return &Server{
		name:    serverName,
		version: version,
		client:  client,
		cache:   newCache(),
	}
}

func (s *Server) Initialize(ctx context.Context, params *protocol.ParamInitialize) (*protocol.InitializeResult, error) {
	log.Info().Msg("initialize")
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			CompletionProvider:     protocol.CompletionOptions{TriggerCharacters: []string{"."}},
			HoverProvider:          true,
			DefinitionProvider:     true,
			DocumentSymbolProvider: true,
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				Change:    protocol.Full,
				OpenClose: true,
				Save:      protocol.SaveOptions{IncludeText: true},
			},
		},
	}, nil
}

func (s *Server) Initialized(ctx context.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return nil
}

func (s *Server) Exit(ctx context.Context) error {
	return nil
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := &document{
		item:                 params.TextDocument,
		linesChangedSinceAST: map[int]bool{},
	}
	doc.ast, doc.err = parser.Parse(ctx, doc.item.Text)
	if err := s.cache.put(doc); err != nil {
		return err
	}
	s.queueDiagnostics(params.TextDocument.URI)
	return nil
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	doc, err := s.cache.get(params.TextDocument.URI)
	if err != nil {
		return err
	}
	// Full sync: the last change event carries the whole document.
	for _, change := range params.ContentChanges {
		doc.item.Text = change.Text
	}
	doc.item.Version = params.TextDocument.Version
	doc.ast, doc.err = parser.Parse(ctx, doc.item.Text)
	doc.linesChangedSinceAST = map[int]bool{}
	if err := s.cache.put(doc); err != nil {
		return err
	}
	s.queueDiagnostics(params.TextDocument.URI)
	return nil
}

func (s *Server) DidSave(ctx context.Context, params *protocol.DidSaveTextDocumentParams) error {
	s.queueDiagnostics(params.TextDocument.URI)
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.cache.remove(params.TextDocument.URI)
	if s.client != nil {
		return s.client.PublishDiagnostics(ctx, &protocol.PublishDiagnosticsParams{
			URI:         params.TextDocument.URI,
			Diagnostics: []protocol.Diagnostic{},
		})
	}
	return nil
}

// queueDiagnostics recomputes and publishes diagnostics for a document.
func (s *Server) queueDiagnostics(uri protocol.DocumentURI) {
	doc, err := s.cache.get(uri)
	if err != nil {
		log.Error().Err(err).Str("call", "queueDiagnostics").Msg("failed to get document")
		return
	}
	diags := diagnosticsForDocument(doc)
	if s.client == nil {
		return
	}
	go func() {
		err := s.client.PublishDiagnostics(context.Background(), &protocol.PublishDiagnosticsParams{
			URI:         uri,
			Diagnostics: diags,
		})
		if err != nil {
			log.Error().Err(err).Msg("failed to publish diagnostics")
		}
	}()
}

func diagnosticsForDocument(doc *document) []protocol.Diagnostic {
	diags := []protocol.Diagnostic{}

	if doc.err != nil {
		if parseErrs, ok := doc.err.(*parser.Errors); ok {
			for _, e := range parseErrs.Errors() {
				diags = append(diags, protocol.Diagnostic{
					Range:    rangeFromPositions(e.StartPosition().Line, e.StartPosition().Column, e.EndPosition().Line, e.EndPosition().Column+1),
					Severity: protocol.SeverityError,
					Source:   "marmoset",
					Message:  e.Message(),
				})
			}
			return diags
		}
		diags = append(diags, protocol.Diagnostic{
			Range:    rangeFromPositions(0, 0, 0, 1),
			Severity: protocol.SeverityError,
			Source:   "marmoset",
			Message:  doc.err.Error(),
		})
		return diags
	}

	for _, e := range syntax.NewSyntaxValidator().Validate(doc.ast) {
		diags = append(diags, protocol.Diagnostic{
			Range:    rangeFromPositions(e.Position.Line, e.Position.Column, e.Position.Line, e.Position.Column+1),
			Severity: protocol.SeverityError,
			Source:   "marmoset",
			Message:  e.Message,
		})
	}
	if len(diags) > 0 {
		return diags
	}

	// Expansion can reject comprehensions the validator accepts, such as a
	// guard in an option comprehension. Expand a fresh parse so the cached
	// tree is left alone.
	program, err := parser.Parse(context.Background(), doc.item.Text)
	if err != nil {
		return diags
	}
	if _, err := expand.Expand(program, expand.WithSource(doc.item.Text)); err != nil {
		diags = append(diags, expandDiagnostics(err)...)
	}
	return diags
}

func expandDiagnostics(err error) []protocol.Diagnostic {
	var out []protocol.Diagnostic
	add := func(e *errors.ExpandError) {
		line := e.Line - 1
		if line < 0 {
			line = 0
		}
		col := e.Column - 1
		if col < 0 {
			col = 0
		}
		endCol := e.EndColumn
		if endCol <= col {
			endCol = col + 1
		}
		out = append(out, protocol.Diagnostic{
			Range:    rangeFromPositions(line, col, line, endCol),
			Severity: protocol.SeverityError,
			Source:   "marmoset",
			Message:  e.Message,
		})
	}
	switch e := err.(type) {
	case *errors.ExpandErrors:
		for _, sub := range e.Errors {
			add(sub)
		}
	case *errors.ExpandError:
		add(e)
	default:
		out = append(out, protocol.Diagnostic{
			Range:    rangeFromPositions(0, 0, 0, 1),
			Severity: protocol.SeverityError,
			Source:   "marmoset",
			Message:  err.Error(),
		})
	}
	return out
}

func rangeFromPositions(startLine, startCol, endLine, endCol int) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: uint32(startLine), Character: uint32(startCol)},
		End:   protocol.Position{Line: uint32(endLine), Character: uint32(endCol)},
	}
}

func rangeFromNode(n ast.Node) protocol.Range {
	return rangeFromPositions(n.Pos().Line, n.Pos().Column, n.End().Line, n.End().Column)
}

func (s *Server) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc, err := s.cache.get(params.TextDocument.URI)
	if err != nil {
		log.Error().Err(err).Str("call", "Hover").Msg("failed to get document")
		return nil, nil
	}
	if doc.ast == nil {
		return nil, nil
	}

	line := int(params.Position.Line) + 1
	column := int(params.Position.Character) + 1
	symbol := findSymbolAtPosition(doc.ast, line, column)
	if symbol == "" {
		return nil, nil
	}

	if decl := findDeclaration(doc.ast, symbol); decl != nil {
		return &protocol.Hover{
			Contents: protocol.MarkupContent{
				Kind:  protocol.Markdown,
				Value: "```marmoset\n" + declSummary(decl) + "\n```",
			},
		}, nil
	}

	if doc := builtinDocs[symbol]; doc != "" {
		return &protocol.Hover{
			Contents: protocol.MarkupContent{
				Kind:  protocol.Markdown,
				Value: "**" + symbol + "**\n\n" + doc,
			},
		}, nil
	}
	return nil, nil
}

func (s *Server) DocumentSymbol(ctx context.Context, params *protocol.DocumentSymbolParams) ([]interface{}, error) {
	doc, err := s.cache.get(params.TextDocument.URI)
	if err != nil {
		log.Error().Err(err).Str("call", "DocumentSymbol").Msg("failed to get document")
		return nil, nil
	}
	if doc.ast == nil || doc.err != nil {
		return nil, nil
	}

	var symbols []interface{}
	addSymbol := func(name string, kind protocol.SymbolKind, node ast.Node) {
		symbols = append(symbols, protocol.DocumentSymbol{
			Name:           name,
			Kind:           kind,
			Range:          rangeFromNode(node),
			SelectionRange: rangeFromNode(node),
		})
	}

	for _, stmt := range doc.ast.Stmts {
		switch n := stmt.(type) {
		case *ast.Var:
			kind := protocol.Variable
			if _, isFunc := n.Value.(*ast.Func); isFunc {
				kind = protocol.Function
			}
			for _, name := range n.Pattern.Names() {
				addSymbol(name, kind, n)
			}
		case *ast.Func:
			if n.Name != nil {
				addSymbol(n.Name.Name, protocol.Function, n)
			}
		case *ast.StructDecl:
			addSymbol(n.Name.Name, protocol.Struct, n)
		}
	}
	return symbols, nil
}

func (s *Server) Definition(ctx context.Context, params *protocol.DefinitionParams) (protocol.Definition, error) {
	doc, err := s.cache.get(params.TextDocument.URI)
	if err != nil {
		log.Error().Err(err).Str("call", "Definition").Msg("failed to get document")
		return nil, nil
	}
	if doc.ast == nil {
		return nil, nil
	}

	line := int(params.Position.Line) + 1
	column := int(params.Position.Character) + 1
	symbol := findSymbolAtPosition(doc.ast, line, column)
	if symbol == "" {
		return nil, nil
	}
	decl := findDeclaration(doc.ast, symbol)
	if decl == nil {
		return nil, nil
	}
	return protocol.Definition{
		{URI: params.TextDocument.URI, Range: rangeFromNode(decl)},
	}, nil
}

// findSymbolAtPosition returns the identifier covering the given 1-based
// line and column, or an empty string.
func findSymbolAtPosition(program *ast.Program, line, column int) string {
	var found string
	ast.Inspect(program, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.Ident:
			if coversPosition(node, line, column) {
				found = node.Name
			}
		case *ast.IdentPattern:
			if coversPosition(node, line, column) {
				found = node.Name
			}
		}
		return true
	})
	return found
}

func coversPosition(n ast.Node, line, column int) bool {
	return n.Pos().LineNumber() == line &&
		column >= n.Pos().ColumnNumber() &&
		column <= n.End().ColumnNumber()
}

// findDeclaration returns the top level statement that declares name.
func findDeclaration(program *ast.Program, name string) ast.Node {
	for _, stmt := range program.Stmts {
		switch n := stmt.(type) {
		case *ast.Var:
			for _, declared := range n.Pattern.Names() {
				if declared == name {
					return n
				}
			}
		case *ast.Func:
			if n.Name != nil && n.Name.Name == name {
				return n
			}
		case *ast.StructDecl:
			if n.Name.Name == name {
				return n
			}
		}
	}
	return nil
}

// declSummary renders a declaration for hover display, trimmed to its
// first line so large initializers stay readable.
func declSummary(decl ast.Node) string {
	s := decl.String()
	if len(s) > 120 {
		s = s[:117] + "..."
	}
	return s
}
