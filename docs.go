package marmoset

import (
	"encoding/json"
	"sort"

	"github.com/marmoset-lang/marmoset/builtins"
	modFilepath "github.com/marmoset-lang/marmoset/modules/filepath"
	modFmt "github.com/marmoset-lang/marmoset/modules/fmt"
	modMath "github.com/marmoset-lang/marmoset/modules/math"
	modRand "github.com/marmoset-lang/marmoset/modules/rand"
	modRegexp "github.com/marmoset-lang/marmoset/modules/regexp"
	modStrings "github.com/marmoset-lang/marmoset/modules/strings"
	modTime "github.com/marmoset-lang/marmoset/modules/time"
	"github.com/marmoset-lang/marmoset/object"
)

// Version is the current Marmoset version.
const Version = "0.3.0"

// DocsOption configures documentation retrieval.
type DocsOption func(*docsOptions)

type docsOptions struct {
	category string
	topic    string
	quick    bool
	all      bool
}

// DocsCategory filters documentation to a specific category.
// Valid categories: "builtins", "types", "modules", "syntax", "errors"
func DocsCategory(cat string) DocsOption {
	return func(o *docsOptions) {
		o.category = cat
	}
}

// DocsTopic retrieves documentation for a specific topic.
// Examples: "len", "option", "math.sqrt"
func DocsTopic(topic string) DocsOption {
	return func(o *docsOptions) {
		o.topic = topic
	}
}

// DocsQuick returns a concise quick reference.
func DocsQuick() DocsOption {
	return func(o *docsOptions) {
		o.quick = true
	}
}

// DocsAll returns complete documentation (may be large).
func DocsAll() DocsOption {
	return func(o *docsOptions) {
		o.all = true
	}
}

// Documentation provides structured access to Marmoset documentation.
type Documentation struct {
	data any
}

// JSON returns the documentation as a JSON string.
func (d *Documentation) JSON() string {
	b, _ := json.MarshalIndent(d.data, "", "  ")
	return string(b)
}

// Data returns the raw documentation data.
func (d *Documentation) Data() any {
	return d.data
}

// docsLanguageInfo provides basic language information.
type docsLanguageInfo struct {
	Version        string `json:"version"`
	Description    string `json:"description"`
	ExecutionModel string `json:"execution_model"`
}

// docsSyntaxPattern describes a syntax pattern.
type docsSyntaxPattern struct {
	Pattern     string `json:"pattern"`
	Description string `json:"description"`
}

// docsQuickReference is the quick reference structure.
type docsQuickReference struct {
	Marmoset       docsLanguageInfo    `json:"marmoset"`
	SyntaxQuickRef []docsSyntaxPattern `json:"syntax_quick_ref"`
	Topics         map[string]string   `json:"topics"`
	Next           []string            `json:"next"`
}

// docsTypeInfo summarizes a type.
type docsTypeInfo struct {
	Name        string   `json:"name"`
	Doc         string   `json:"doc"`
	MethodCount int      `json:"method_count,omitempty"`
	Methods     []string `json:"methods,omitempty"`
}

// docsModuleInfo summarizes a module.
type docsModuleInfo struct {
	Name      string   `json:"name"`
	Doc       string   `json:"doc"`
	FuncCount int      `json:"function_count"`
	Functions []string `json:"functions,omitempty"`
}

// docsSyntaxSection groups related syntax items.
type docsSyntaxSection struct {
	Name  string           `json:"name"`
	Items []docsSyntaxItem `json:"items"`
}

// docsSyntaxItem describes a single syntax construct.
type docsSyntaxItem struct {
	Syntax string `json:"syntax"`
	Type   string `json:"type,omitempty"`
	Notes  string `json:"notes"`
}

// docsErrorPattern describes a common error pattern.
type docsErrorPattern struct {
	Type           string             `json:"type"`
	MessagePattern string             `json:"message_pattern"`
	Causes         []string           `json:"causes"`
	Examples       []docsErrorExample `json:"examples"`
}

// docsErrorExample shows a specific error case.
type docsErrorExample struct {
	Error       string `json:"error"`
	BadCode     string `json:"bad_code"`
	Fix         string `json:"fix"`
	Explanation string `json:"explanation"`
}

// docsFullDocumentation contains all documentation.
type docsFullDocumentation struct {
	Marmoset docsLanguageInfo           `json:"marmoset"`
	Builtins []object.FuncSpec          `json:"builtins"`
	Modules  map[string]docsModuleInfo  `json:"modules"`
	Types    map[string]docsTypeInfo    `json:"types"`
	Syntax   []docsSyntaxSection        `json:"syntax"`
	Errors   []docsErrorPattern         `json:"errors"`
}

// Docs returns structured documentation about Marmoset.
// Useful for tooling, editor integrations, and LLM agents.
//
// Example:
//
//	// Quick reference
//	docs := marmoset.Docs(marmoset.DocsQuick())
//	fmt.Println(docs.JSON())
//
//	// Full documentation
//	docs := marmoset.Docs(marmoset.DocsAll())
//
//	// Specific category
//	docs := marmoset.Docs(marmoset.DocsCategory("builtins"))
func Docs(opts ...DocsOption) *Documentation {
	o := &docsOptions{}
	for _, opt := range opts {
		opt(o)
	}

	if o.quick {
		return &Documentation{data: buildQuickReference()}
	}

	if o.all {
		return &Documentation{data: buildFullDocumentation()}
	}

	if o.category != "" {
		return &Documentation{data: buildCategoryDocs(o.category)}
	}

	if o.topic != "" {
		return &Documentation{data: buildTopicDocs(o.topic)}
	}

	// Default: return quick reference
	return &Documentation{data: buildQuickReference()}
}

func languageInfo() docsLanguageInfo {
	return docsLanguageInfo{
		Version:        Version,
		Description:    "Small language with option, result, and iter comprehensions",
		ExecutionModel: "source → lexer → parser → expand → eval",
	}
}

func buildQuickReference() docsQuickReference {
	return docsQuickReference{
		Marmoset:       languageInfo(),
		SyntaxQuickRef: docsSyntaxQuickRef,
		Topics: map[string]string{
			"builtins": "Built-in functions (len, print, list, Some, Ok, ...)",
			"types":    "Types (string, list, option, result, seq, ...)",
			"modules":  "Modules (fmt, math, rand, regexp, strings, time, filepath)",
			"syntax":   "Complete syntax reference",
			"errors":   "Common errors and debugging",
		},
		Next: []string{
			"marmoset.Docs(marmoset.DocsCategory(\"builtins\"))",
			"marmoset.Docs(marmoset.DocsCategory(\"syntax\"))",
			"marmoset.Docs(marmoset.DocsAll())",
		},
	}
}

func buildFullDocumentation() docsFullDocumentation {
	full := docsFullDocumentation{
		Marmoset: languageInfo(),
		Builtins: builtins.Docs(),
		Modules:  make(map[string]docsModuleInfo),
		Types:    make(map[string]docsTypeInfo),
		Syntax:   docsSyntaxSections,
		Errors:   docsErrorPatterns,
	}

	for name, mod := range docsModuleDocs {
		funcNames := make([]string, len(mod.Funcs))
		for i, fn := range mod.Funcs {
			funcNames[i] = fn.Name
		}
		full.Modules[name] = docsModuleInfo{
			Name:      name,
			Doc:       mod.Doc,
			FuncCount: len(mod.Funcs),
			Functions: funcNames,
		}
	}

	for name, t := range object.TypeDocsMap() {
		methods := make([]string, len(t.Attrs))
		for i, attr := range t.Attrs {
			methods[i] = attr.Name
		}
		full.Types[name] = docsTypeInfo{
			Name:        name,
			Doc:         t.Doc,
			MethodCount: len(t.Attrs),
			Methods:     methods,
		}
	}

	return full
}

func buildCategoryDocs(category string) any {
	switch category {
	case "builtins":
		return map[string]any{
			"category":    "builtins",
			"description": "Built-in functions available in the global scope",
			"count":       len(builtins.Docs()),
			"functions":   builtins.Docs(),
		}
	case "types":
		typeDocs := object.TypeDocsMap()
		types := make([]docsTypeInfo, 0, len(typeDocs))
		var typeNames []string
		for name := range typeDocs {
			typeNames = append(typeNames, name)
		}
		sort.Strings(typeNames)
		for _, name := range typeNames {
			t := typeDocs[name]
			types = append(types, docsTypeInfo{
				Name:        name,
				Doc:         t.Doc,
				MethodCount: len(t.Attrs),
			})
		}
		return map[string]any{
			"category":    "types",
			"description": "Marmoset types and their methods",
			"count":       len(typeDocs),
			"types":       types,
		}
	case "modules":
		modules := make([]docsModuleInfo, 0, len(docsModuleDocs))
		var moduleNames []string
		for name := range docsModuleDocs {
			moduleNames = append(moduleNames, name)
		}
		sort.Strings(moduleNames)
		for _, name := range moduleNames {
			mod := docsModuleDocs[name]
			modules = append(modules, docsModuleInfo{
				Name:      name,
				Doc:       mod.Doc,
				FuncCount: len(mod.Funcs),
			})
		}
		return map[string]any{
			"category":    "modules",
			"description": "Available modules",
			"count":       len(docsModuleDocs),
			"modules":     modules,
		}
	case "syntax":
		return map[string]any{
			"category":    "syntax",
			"description": "Complete syntax reference",
			"sections":    docsSyntaxSections,
		}
	case "errors":
		return map[string]any{
			"category":    "errors",
			"description": "Common error patterns and fixes",
			"patterns":    docsErrorPatterns,
		}
	default:
		return map[string]any{
			"error": "unknown category: " + category,
		}
	}
}

func buildTopicDocs(topic string) any {
	// Check types
	if t, ok := object.TypeDoc(object.Type(topic)); ok {
		return map[string]any{
			"type":    "type",
			"name":    t.Name,
			"doc":     t.Doc,
			"methods": t.Attrs,
		}
	}

	// Check modules
	if mod, ok := docsModuleDocs[topic]; ok {
		return map[string]any{
			"type":      "module",
			"name":      topic,
			"doc":       mod.Doc,
			"functions": mod.Funcs,
		}
	}

	// Check builtins
	for _, fn := range builtins.Docs() {
		if fn.Name == topic {
			return map[string]any{
				"type":     "builtin",
				"function": fn,
			}
		}
	}

	return map[string]any{
		"error": "unknown topic: " + topic,
	}
}

// Module documentation, sourced from each module package.
var docsModuleDocs = map[string]struct {
	Doc   string
	Funcs []object.FuncSpec
}{
	"filepath": {Doc: modFilepath.ModuleDoc(), Funcs: modFilepath.Docs()},
	"fmt":      {Doc: modFmt.ModuleDoc(), Funcs: modFmt.Docs()},
	"math":     {Doc: modMath.ModuleDoc(), Funcs: modMath.Docs()},
	"rand":     {Doc: modRand.ModuleDoc(), Funcs: modRand.Docs()},
	"regexp":   {Doc: modRegexp.ModuleDoc(), Funcs: modRegexp.Docs()},
	"strings":  {Doc: modStrings.ModuleDoc(), Funcs: modStrings.Docs()},
	"time":     {Doc: modTime.ModuleDoc(), Funcs: modTime.Docs()},
}

// Syntax quick reference
var docsSyntaxQuickRef = []docsSyntaxPattern{
	{Pattern: "let x = 1", Description: "Immutable binding"},
	{Pattern: "let mut n = 0", Description: "Mutable binding"},
	{Pattern: "func add(a, b) { a + b }", Description: "Named function"},
	{Pattern: "[1, 2, 3]", Description: "List literal"},
	{Pattern: "(1, \"a\")", Description: "Tuple literal"},
	{Pattern: "option { let x <- find(k); x + 1 }", Description: "Option comprehension"},
	{Pattern: "result { let x <- parse(s); x * 2 }", Description: "Result comprehension"},
	{Pattern: "iter { let x <- xs; if x > 0; x }", Description: "Iter comprehension with guard"},
	{Pattern: "let (a, b) = pair", Description: "Tuple destructuring"},
	{Pattern: "list.map(f).filter(g)", Description: "Method chaining"},
}

// Syntax sections
var docsSyntaxSections = []docsSyntaxSection{
	{
		Name: "literals",
		Items: []docsSyntaxItem{
			{Syntax: "42", Type: "int", Notes: "Integer literal"},
			{Syntax: "3.14", Type: "float", Notes: "Float literal"},
			{Syntax: `"hello"`, Type: "string", Notes: "String literal with escapes"},
			{Syntax: "true, false", Type: "bool", Notes: "Boolean literals"},
			{Syntax: "nil", Type: "nil", Notes: "Null value"},
			{Syntax: "()", Type: "tuple", Notes: "Unit (empty tuple)"},
		},
	},
	{
		Name: "collections",
		Items: []docsSyntaxItem{
			{Syntax: "[a, b, c]", Type: "list", Notes: "List literal"},
			{Syntax: "{k: v}", Type: "map", Notes: "Map literal"},
			{Syntax: "(a, b)", Type: "tuple", Notes: "Tuple literal"},
			{Syntax: "(a,)", Type: "tuple", Notes: "Single-element tuple (note the comma)"},
			{Syntax: "0..10", Type: "range", Notes: "Integer range, end exclusive"},
		},
	},
	{
		Name: "variables",
		Items: []docsSyntaxItem{
			{Syntax: "let x = value", Notes: "Immutable binding"},
			{Syntax: "let mut x = value", Notes: "Mutable binding"},
			{Syntax: "let (a, b) = pair", Notes: "Tuple destructuring"},
			{Syntax: "let Point{x, y} = p", Notes: "Struct destructuring"},
			{Syntax: "let _ = value", Notes: "Discard a value"},
		},
	},
	{
		Name: "functions",
		Items: []docsSyntaxItem{
			{Syntax: "func name(a, b) { body }", Notes: "Named function; last expression is the result"},
			{Syntax: "let f = func(a) { body }", Notes: "Anonymous function"},
			{Syntax: "return value", Notes: "Early return"},
		},
	},
	{
		Name: "comprehensions",
		Items: []docsSyntaxItem{
			{Syntax: "option { let x <- expr; x }", Type: "option", Notes: "Binds unwrap Some or short-circuit on None"},
			{Syntax: "result { let x <- expr; x }", Type: "result", Notes: "Binds unwrap Ok or short-circuit on the first Err"},
			{Syntax: "iter { let x <- xs; x * 2 }", Type: "seq", Notes: "Lazy; each bind iterates its source"},
			{Syntax: "if cond;", Notes: "Guard; iter comprehensions only"},
			{Syntax: "let Point{x, y} <- expr;", Notes: "Binds accept any pattern"},
		},
	},
	{
		Name: "control_flow",
		Items: []docsSyntaxItem{
			{Syntax: "if cond { } else { }", Notes: "Conditional (is an expression)"},
			{Syntax: "for x in xs { }", Notes: "Iteration"},
			{Syntax: "return value", Notes: "Return from function"},
		},
	},
	{
		Name: "operators",
		Items: []docsSyntaxItem{
			{Syntax: "+ - * / %", Notes: "Arithmetic"},
			{Syntax: "== != < > <= >=", Notes: "Comparison"},
			{Syntax: "&& || !", Notes: "Logical; && and || short-circuit"},
			{Syntax: "+= -= *= /=", Notes: "Compound assignment (mutable bindings)"},
		},
	},
}

// Error patterns
var docsErrorPatterns = []docsErrorPattern{
	{
		Type:           "type_error",
		MessagePattern: "type error: ...",
		Causes: []string{
			"Passing the wrong type to a function",
			"Method called on an incompatible type",
		},
		Examples: []docsErrorExample{
			{
				Error:       "type error: unsupported operation",
				BadCode:     `1 + "a"`,
				Fix:         `1 + 2`,
				Explanation: "Ints and strings cannot be added",
			},
		},
	},
	{
		Type:           "name_error",
		MessagePattern: `undefined variable "x"`,
		Causes: []string{
			"Typo in a variable or function name",
			"Variable used before declaration",
		},
		Examples: []docsErrorExample{
			{
				Error:       `undefined variable "maths" (did you mean "math"?)`,
				BadCode:     `maths.sqrt(4)`,
				Fix:         `math.sqrt(4)`,
				Explanation: "The module is named math",
			},
		},
	},
	{
		Type:           "immutability_error",
		MessagePattern: "cannot assign to immutable variable",
		Causes: []string{
			"Assigning to a binding declared with let instead of let mut",
		},
		Examples: []docsErrorExample{
			{
				Error:       `cannot assign to immutable variable "x" (declare it with "let mut")`,
				BadCode:     "let x = 1; x = 2",
				Fix:         "let mut x = 1; x = 2",
				Explanation: "Only mut bindings may be reassigned",
			},
		},
	},
	{
		Type:           "comprehension_error",
		MessagePattern: "guard is not allowed in ... comprehension",
		Causes: []string{
			"Using an if-guard in an option or result comprehension",
		},
		Examples: []docsErrorExample{
			{
				Error:       "guard is not allowed in an option comprehension",
				BadCode:     "option { let x <- v; if x > 0; x }",
				Fix:         "iter { let x <- v; if x > 0; x }",
				Explanation: "Guards filter streams; only iter comprehensions have them",
			},
		},
	},
	{
		Type:           "syntax_error",
		MessagePattern: "parse error: ...",
		Causes: []string{
			"Missing closing bracket or brace",
			"Bind or guard outside a comprehension",
		},
		Examples: []docsErrorExample{
			{
				Error:       "parse error: unexpected end of input",
				BadCode:     `if x { print(x)`,
				Fix:         `if x { print(x) }`,
				Explanation: "Block must be closed with '}'",
			},
		},
	},
}
