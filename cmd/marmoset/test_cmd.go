package main

import (
	"os"

	"github.com/marmoset-lang/marmoset/testing"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var testCmd = &cobra.Command{
	Use:   "test [path ...]",
	Short: "Run tests in *_test.marm files",
	Long: `Test discovers *_test.marm files under the given paths and runs each
function whose name starts with "test_". With no paths the current
directory is searched. A path of the form dir/... searches recursively.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		processGlobalFlags()

		verbose, _ := cmd.Flags().GetBool("verbose")
		runPattern, _ := cmd.Flags().GetString("run")

		cfg := &testing.Config{
			Patterns:   args,
			RunPattern: runPattern,
			Verbose:    verbose,
		}
		summary, err := testing.Run(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		output := testing.NewOutput(testing.OutputConfig{
			Writer:   os.Stdout,
			Verbose:  verbose,
			UseColor: !viper.GetBool("no-color") && isTerminalIO(),
		})
		output.PrintResults(summary)

		if !summary.Success() {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	testCmd.Flags().BoolP("verbose", "v", false, "Print each test as it runs")
	testCmd.Flags().String("run", "", "Run only tests matching this substring")
}
