package main

import (
	"fmt"
	"time"

	"github.com/marmoset-lang/marmoset"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// runCode executes a script and prints the result of the final expression.
func runCode(cmd *cobra.Command, code, filename string) error {
	opts := getOptions()
	if filename != "" {
		opts = append(opts, marmoset.WithFilename(filename))
	}

	start := time.Now()
	result, err := marmoset.Eval(cmd.Context(), code, opts...)
	if err != nil {
		return formatError(err)
	}
	dt := time.Since(start)

	output, err := getOutput(result, viper.GetString("output"))
	if err != nil {
		return err
	}
	if output != "" {
		fmt.Println(output)
	}

	if viper.GetBool("timing") {
		fmt.Printf("%v\n", dt)
	}
	return nil
}
