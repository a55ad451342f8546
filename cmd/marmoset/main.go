package main

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "marmoset [file]",
	Short: "Small language with option, result, and iter comprehensions",
	Long: `Marmoset is a small embeddable language whose comprehensions expand
into chained and_then, flat_map, and filter calls. Run a script by path,
evaluate code with -c, or start the REPL by running with no arguments.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		processGlobalFlags()
		if shouldRunRepl(cmd, args) {
			return runRepl(cmd.Context())
		}
		code, err := getCode(cmd, args)
		if err != nil {
			return err
		}
		var filename string
		if len(args) > 0 {
			filename = args[0]
		}
		return runCode(cmd, code, filename)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetString("output") == "json" {
			info, err := json.MarshalIndent(map[string]any{
				"version": version,
				"commit":  commit,
				"date":    date,
			}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(info))
			return nil
		}
		fmt.Println(version)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringP("code", "c", "", "Code to evaluate")
	pf.Bool("stdin", false, "Read code from stdin")
	pf.Bool("no-color", false, "Disable colored output")
	pf.Bool("no-default-globals", false, "Disable the standard library")
	pf.StringP("output", "o", "", "Output format (json or text)")
	pf.String("log-level", "", "Log level (trace, debug, info, warn, error)")
	viper.BindPFlag("code", pf.Lookup("code"))
	viper.BindPFlag("stdin", pf.Lookup("stdin"))
	viper.BindPFlag("no-color", pf.Lookup("no-color"))
	viper.BindPFlag("no-default-globals", pf.Lookup("no-default-globals"))
	viper.BindPFlag("output", pf.Lookup("output"))
	viper.BindPFlag("log-level", pf.Lookup("log-level"))
	rootCmd.RegisterFlagCompletionFunc("output",
		func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return outputFormatsCompletion, cobra.ShellCompDirectiveNoFileComp
		})

	f := rootCmd.Flags()
	f.Bool("timing", false, "Show execution time")
	f.Bool("no-repl", false, "Disable the REPL")
	viper.BindPFlag("timing", f.Lookup("timing"))
	viper.BindPFlag("no-repl", f.Lookup("no-repl"))

	rootCmd.AddCommand(
		versionCmd,
		evalCmd,
		expandCmd,
		astCmd,
		testCmd,
		docsCmd,
		replCmd,
	)
}

func initConfig() {
	if home, err := homedir.Dir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".marmoset")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("marmoset")
	viper.AutomaticEnv()
	// A missing config file is fine; flags and env cover everything.
	_ = viper.ReadInConfig()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fatal(err)
	}
}
