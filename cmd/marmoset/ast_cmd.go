package main

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"

	"github.com/fatih/color"
	"github.com/marmoset-lang/marmoset"
	"github.com/marmoset-lang/marmoset/ast"
	"github.com/marmoset-lang/marmoset/parser"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var astCmd = &cobra.Command{
	Use:   "ast [file]",
	Short: "Print the syntax tree for a program",
	Long: `Ast parses a program and prints its syntax tree. By default the raw
tree is shown as parsed; with --expanded the tree is shown after
comprehension expansion, which is what the evaluator sees.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		processGlobalFlags()
		code, err := getCode(cmd, args)
		if err != nil {
			return err
		}

		expanded, _ := cmd.Flags().GetBool("expanded")
		var program *ast.Program
		if expanded {
			var opts []marmoset.Option
			if len(args) > 0 {
				opts = append(opts, marmoset.WithFilename(args[0]))
			}
			parsed, err := marmoset.Parse(cmd.Context(), code, opts...)
			if err != nil {
				return formatError(err)
			}
			program = parsed.AST()
		} else {
			var parserOpts []parser.Option
			if len(args) > 0 {
				parserOpts = append(parserOpts, parser.WithFilename(args[0]))
			}
			program, err = parser.Parse(cmd.Context(), code, parserOpts...)
			if err != nil {
				return formatError(err)
			}
		}

		if viper.GetString("output") == "json" {
			return printASTJSON(program)
		}
		printAST(program)
		return nil
	},
}

func init() {
	astCmd.Flags().Bool("expanded", false, "Show the tree after comprehension expansion")
}

// ASTNode is a node in the JSON syntax tree output.
type ASTNode struct {
	Type     string     `json:"type"`
	Value    any        `json:"value,omitempty"`
	Children []*ASTNode `json:"children,omitempty"`
}

func printASTJSON(program *ast.Program) error {
	root := nodeToJSON(program)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(root)
}

func nodeToJSON(node ast.Node) *ASTNode {
	if node == nil {
		return nil
	}

	typeName := reflect.TypeOf(node).Elem().Name()
	result := &ASTNode{Type: typeName}
	addChild := func(n ast.Node) {
		if child := nodeToJSON(n); child != nil {
			result.Children = append(result.Children, child)
		}
	}

	switch n := node.(type) {
	case *ast.Program:
		for _, stmt := range n.Stmts {
			addChild(stmt)
		}

	case *ast.Block:
		for _, stmt := range n.Stmts {
			addChild(stmt)
		}

	case *ast.Ident:
		result.Value = n.Name

	case *ast.Int:
		result.Value = n.Value

	case *ast.Float:
		result.Value = n.Value

	case *ast.Bool:
		result.Value = n.Value

	case *ast.String:
		result.Value = n.Value

	case *ast.Nil:
		result.Value = nil

	case *ast.Var:
		result.Value = n.Pattern.String()
		if n.Value != nil {
			addChild(n.Value)
		}

	case *ast.Bind:
		result.Value = n.Pattern.String()
		addChild(n.Value)

	case *ast.Guard:
		addChild(n.Cond)

	case *ast.Return:
		if n.Value != nil {
			addChild(n.Value)
		}

	case *ast.ExprStmt:
		addChild(n.X)

	case *ast.Assign:
		result.Value = n.Op
		if n.Index != nil {
			addChild(n.Index)
		} else if n.Name != nil {
			addChild(n.Name)
		}
		addChild(n.Value)

	case *ast.SetAttr:
		result.Value = n.Op
		addChild(n.X)
		addChild(n.Attr)
		addChild(n.Value)

	case *ast.StructDecl:
		result.Value = n.String()

	case *ast.Func:
		if n.Name != nil {
			result.Value = n.Name.Name
		}
		for _, p := range n.Params {
			result.Children = append(result.Children, &ASTNode{
				Type:  "Param",
				Value: p.String(),
			})
		}
		addChild(n.Body)

	case *ast.Prefix:
		result.Value = n.Op
		addChild(n.X)

	case *ast.Infix:
		result.Value = n.Op
		addChild(n.X)
		addChild(n.Y)

	case *ast.If:
		addChild(n.Cond)
		addChild(n.Consequence)
		if n.Alternative != nil {
			addChild(n.Alternative)
		}

	case *ast.Call:
		addChild(n.Fun)
		for _, arg := range n.Args {
			addChild(arg)
		}

	case *ast.GetAttr:
		result.Value = n.Attr.Name
		addChild(n.X)

	case *ast.ObjectCall:
		addChild(n.X)
		addChild(n.Call)

	case *ast.Index:
		addChild(n.X)
		addChild(n.Index)

	case *ast.Tuple:
		for _, el := range n.Elems {
			addChild(el)
		}

	case *ast.Range:
		addChild(n.Low)
		addChild(n.High)

	case *ast.Comprehension:
		result.Value = n.Keyword
		addChild(n.Body)

	case *ast.List:
		for _, item := range n.Items {
			addChild(item)
		}

	case *ast.Map:
		for _, item := range n.Items {
			pair := &ASTNode{Type: "MapItem"}
			if k := nodeToJSON(item.Key); k != nil {
				pair.Children = append(pair.Children, k)
			}
			if v := nodeToJSON(item.Value); v != nil {
				pair.Children = append(pair.Children, v)
			}
			result.Children = append(result.Children, pair)
		}

	case *ast.StructLit:
		result.Value = n.Name.Name
		for _, f := range n.Fields {
			field := &ASTNode{Type: "FieldInit", Value: f.Name.Name}
			if f.Value != nil {
				if v := nodeToJSON(f.Value); v != nil {
					field.Children = append(field.Children, v)
				}
			}
			result.Children = append(result.Children, field)
		}

	default:
		// Unhandled node types still render with their type name and
		// source form.
		result.Value = fmt.Sprintf("%v", node)
	}

	return result
}

// Color styles for the tree display.
var (
	astNodeColor  = color.New(color.FgCyan, color.Bold)
	astValueColor = color.New(color.FgYellow)
	astMutedColor = color.New(color.FgHiBlack)
)

func printAST(program *ast.Program) {
	astNodeColor.Println("Program")
	root := nodeToJSON(program)
	for i, child := range root.Children {
		printTree(child, "  ", i == len(root.Children)-1)
	}
}

func printTree(node *ASTNode, indent string, isLast bool) {
	if node == nil {
		return
	}
	connector := "├─ "
	childIndent := indent + "│  "
	if isLast {
		connector = "└─ "
		childIndent = indent + "   "
	}

	line := astMutedColor.Sprint(indent+connector) + astNodeColor.Sprint(node.Type)
	if node.Value != nil {
		switch v := node.Value.(type) {
		case string:
			line += astValueColor.Sprintf(" %q", truncate(v, 30))
		default:
			line += astValueColor.Sprintf(" %v", v)
		}
	}
	fmt.Println(line)

	for i, child := range node.Children {
		printTree(child, childIndent, i == len(node.Children)-1)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
