// Package marmoset evaluates Marmoset source code.
//
// The pipeline has three stages: parse, expand, and evaluate. Parsing
// produces an AST; expansion rewrites every option, result, and iter
// comprehension into ordinary method calls; evaluation walks the
// expanded program. Parse captures the first two stages in a reusable
// Program, and Run executes one. Eval is the one-shot convenience that
// does all three:
//
//	result, err := marmoset.Eval(ctx, "let x = 2; x * 3")
package marmoset

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/marmoset-lang/marmoset/builtins"
	"github.com/marmoset-lang/marmoset/eval"
	"github.com/marmoset-lang/marmoset/expand"
	modFilepath "github.com/marmoset-lang/marmoset/modules/filepath"
	modFmt "github.com/marmoset-lang/marmoset/modules/fmt"
	modMath "github.com/marmoset-lang/marmoset/modules/math"
	modRand "github.com/marmoset-lang/marmoset/modules/rand"
	modRegexp "github.com/marmoset-lang/marmoset/modules/regexp"
	modStrings "github.com/marmoset-lang/marmoset/modules/strings"
	modTime "github.com/marmoset-lang/marmoset/modules/time"
	"github.com/marmoset-lang/marmoset/object"
	"github.com/marmoset-lang/marmoset/parser"
	"github.com/marmoset-lang/marmoset/syntax"
)

// Option configures a Marmoset evaluation.
type Option func(*config)

type config struct {
	globals      map[string]object.Object
	denylist     map[string]bool
	filename     string
	logger       zerolog.Logger
	maxCallDepth int
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		globals:      map[string]object.Object{},
		denylist:     map[string]bool{},
		logger:       zerolog.Nop(),
		maxCallDepth: eval.DefaultMaxCallDepth,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

func (cfg *config) evaluator(source string) *eval.Evaluator {
	globals := map[string]object.Object{}
	for name, value := range cfg.globals {
		if !cfg.denylist[name] {
			globals[name] = value
		}
	}
	return eval.New(
		eval.WithGlobals(globals),
		eval.WithFilename(cfg.filename),
		eval.WithSource(source),
		eval.WithLogger(cfg.logger),
		eval.WithMaxCallDepth(cfg.maxCallDepth),
	)
}

// WithGlobals provides named values that are made available to evaluated
// programs. This option is additive, so multiple WithGlobals options may
// be supplied. If the same key is supplied multiple times, the last
// value wins.
//
// By default, the environment is empty. Use Builtins() to get the
// standard library:
//
//	result, _ := marmoset.Eval(ctx, source, marmoset.WithGlobals(marmoset.Builtins()))
func WithGlobals(globals map[string]object.Object) Option {
	return func(cfg *config) {
		for name, value := range globals {
			cfg.globals[name] = value
		}
	}
}

// WithGlobal supplies a single named global value.
func WithGlobal(name string, value object.Object) Option {
	return func(cfg *config) {
		cfg.globals[name] = value
	}
}

// WithoutGlobal opts out of a given global builtin or module. If the
// name is not present, this is a no-op.
func WithoutGlobal(name string) Option {
	return func(cfg *config) {
		cfg.denylist[name] = true
	}
}

// WithoutGlobals removes multiple global builtins or modules.
func WithoutGlobals(names ...string) Option {
	return func(cfg *config) {
		for _, name := range names {
			cfg.denylist[name] = true
		}
	}
}

// WithFilename sets the filename for the source code being evaluated.
// This is used in error messages.
func WithFilename(filename string) Option {
	return func(cfg *config) {
		cfg.filename = filename
	}
}

// WithLogger sets the logger used to trace expansion and evaluation.
// By default nothing is logged.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithMaxCallDepth overrides the limit on nested function calls.
func WithMaxCallDepth(depth int) Option {
	return func(cfg *config) {
		cfg.maxCallDepth = depth
	}
}

// Builtins returns the standard library: the builtin functions plus the
// default modules. Only modules that pull in no optional Go dependencies
// are included; see cmd/marmoset for the full set.
//
// To customize the environment, modify the returned map:
//
//	env := marmoset.Builtins()
//	env["answer"] = object.NewInt(42)
//	result, _ := marmoset.Eval(ctx, source, marmoset.WithGlobals(env))
func Builtins() map[string]object.Object {
	env := map[string]object.Object{}
	for name, value := range builtins.Builtins() {
		env[name] = value
	}
	for name, value := range DefaultModules() {
		env[name] = value
	}
	return env
}

// DefaultModules returns the modules included in Builtins.
func DefaultModules() map[string]object.Object {
	return map[string]object.Object{
		"filepath": modFilepath.Module(),
		"fmt":      modFmt.Module(),
		"math":     modMath.Module(),
		"rand":     modRand.Module(),
		"regexp":   modRegexp.Module(),
		"strings":  modStrings.Module(),
		"time":     modTime.Module(),
	}
}

// Parse parses, validates, and expands source code into a Program.
// The returned Program is immutable and safe for concurrent use.
func Parse(ctx context.Context, source string, opts ...Option) (*Program, error) {
	cfg := newConfig(opts...)

	var parserOpts []parser.Option
	if cfg.filename != "" {
		parserOpts = append(parserOpts, parser.WithFilename(cfg.filename))
	}
	program, err := parser.Parse(ctx, source, parserOpts...)
	if err != nil {
		return nil, err
	}

	if violations := syntax.NewSyntaxValidator().Validate(program); len(violations) > 0 {
		return nil, syntax.NewValidationErrors(violations)
	}

	expanded, err := expand.Expand(program,
		expand.WithFilename(cfg.filename),
		expand.WithSource(source),
		expand.WithLogger(cfg.logger))
	if err != nil {
		return nil, err
	}

	return &Program{
		program:  expanded,
		source:   source,
		filename: cfg.filename,
	}, nil
}

// Run evaluates a parsed Program and returns the result as a native Go
// value. Each call creates fresh runtime state.
func Run(ctx context.Context, program *Program, opts ...Option) (any, error) {
	cfg := newConfig(opts...)
	if cfg.filename == "" {
		cfg.filename = program.filename
	}
	result, err := cfg.evaluator(program.source).Eval(ctx, program.program)
	if err != nil {
		return nil, err
	}
	return goValue(result), nil
}

// Eval parses and evaluates source code. It is equivalent to Parse
// followed by Run and returns the result as a native Go value.
func Eval(ctx context.Context, source string, opts ...Option) (any, error) {
	program, err := Parse(ctx, source, opts...)
	if err != nil {
		return nil, err
	}
	return Run(ctx, program, opts...)
}

// ExpandString parses and expands source code and returns the expanded
// program rendered back as source. It is the programmatic form of the
// REPL's :expand command.
func ExpandString(ctx context.Context, source string, opts ...Option) (string, error) {
	program, err := Parse(ctx, source, opts...)
	if err != nil {
		return "", err
	}
	return program.program.String(), nil
}

// goValue converts a result object to a native Go value. Objects without
// a Go equivalent (modules, closures) are returned as their string
// representation.
func goValue(result object.Object) any {
	value := result.Interface()
	if value == nil {
		if _, isNil := result.(*object.NilType); !isNil {
			return result.Inspect()
		}
	}
	return value
}
