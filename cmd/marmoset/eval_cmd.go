package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/marmoset-lang/marmoset"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var evalCmd = &cobra.Command{
	Use:   "eval [expression]",
	Short: "Evaluate an expression and print the result",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		processGlobalFlags()
		expr, err := getEvalExpr(cmd, args)
		if err != nil {
			return err
		}

		outputFormat := viper.GetString("output")
		quiet, _ := cmd.Flags().GetBool("quiet")

		result, err := marmoset.Eval(cmd.Context(), expr, getOptions()...)
		if err != nil {
			if outputFormat == "json" {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{"error": err.Error()})
			}
			return formatError(err)
		}

		if quiet {
			return nil
		}

		if outputFormat == "json" {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"value": result,
				"type":  fmt.Sprintf("%T", result),
			})
		}

		if result != nil {
			fmt.Println(result)
		}
		return nil
	},
}

func init() {
	evalCmd.Flags().BoolP("quiet", "q", false, "Suppress result output")
}

// getEvalExpr resolves the expression from -c, --stdin, or the positional
// argument, rejecting conflicting sources.
func getEvalExpr(cmd *cobra.Command, args []string) (string, error) {
	codeSet := false
	if f := cmd.Flags().Lookup("code"); f != nil && f.Changed {
		codeSet = true
	}
	stdinSet := false
	if f := cmd.Flags().Lookup("stdin"); f != nil && f.Changed {
		stdinSet = true
	}
	exprProvided := len(args) > 0 && args[0] != ""

	count := 0
	if codeSet {
		count++
	}
	if stdinSet {
		count++
	}
	if exprProvided {
		count++
	}
	if count > 1 {
		return "", errors.New("multiple input sources specified")
	}
	if count == 0 {
		return "", errors.New("no expression provided")
	}

	if stdinSet {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	if exprProvided {
		return args[0], nil
	}
	return viper.GetString("code"), nil
}
