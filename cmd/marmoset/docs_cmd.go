package main

import (
	"fmt"

	"github.com/marmoset-lang/marmoset"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var docsCategories = []string{"builtins", "types", "modules", "syntax", "errors"}

var docsCmd = &cobra.Command{
	Use:   "docs [topic]",
	Short: "Print language documentation as JSON",
	Long: `Docs prints structured documentation about the language. With no
arguments a quick reference is printed. A topic may name a type (such as
"list" or "option"), a module ("strings"), or a builtin ("len").
Use --category for a whole section or --all for everything.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		processGlobalFlags()

		all, _ := cmd.Flags().GetBool("all")
		category, _ := cmd.Flags().GetString("category")

		var opts []marmoset.DocsOption
		switch {
		case all:
			opts = append(opts, marmoset.DocsAll())
		case category != "":
			opts = append(opts, marmoset.DocsCategory(category))
		case len(args) > 0:
			opts = append(opts, marmoset.DocsTopic(args[0]))
		default:
			opts = append(opts, marmoset.DocsQuick())
		}

		docs := marmoset.Docs(opts...)
		if viper.GetBool("no-color") {
			fmt.Println(docs.JSON())
			return nil
		}
		output, err := getOutputJSON(docs.Data())
		if err != nil {
			return err
		}
		fmt.Println(string(output))
		return nil
	},
}

func init() {
	docsCmd.Flags().Bool("all", false, "Print full documentation")
	docsCmd.Flags().String("category", "", "Print one category (builtins, types, modules, syntax, errors)")
	docsCmd.RegisterFlagCompletionFunc("category",
		func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return docsCategories, cobra.ShellCompDirectiveNoFileComp
		})
}
