package main

import (
	"fmt"

	"github.com/marmoset-lang/marmoset"
	"github.com/spf13/cobra"
)

var expandCmd = &cobra.Command{
	Use:   "expand [file]",
	Short: "Print a program with its comprehensions expanded",
	Long: `Expand parses a program, rewrites every option, result, and iter
comprehension into the equivalent chained callback calls, and prints the
resulting source. This is the program the evaluator actually runs.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		processGlobalFlags()
		code, err := getCode(cmd, args)
		if err != nil {
			return err
		}
		var opts []marmoset.Option
		if len(args) > 0 {
			opts = append(opts, marmoset.WithFilename(args[0]))
		}
		expanded, err := marmoset.ExpandString(cmd.Context(), code, opts...)
		if err != nil {
			return formatError(err)
		}
		fmt.Println(expanded)
		return nil
	},
}
