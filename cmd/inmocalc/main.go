package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/inmocalc/internal/calculation"
	"github.com/rgehrsitz/inmocalc/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "inmocalc %s (commit %s, built %s)\n", version, commit, date)
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				if info := buildInfo(); info != "" {
					fmt.Fprintln(cmd.OutOrStdout(), info)
				}
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "inmocalc",
		Short: "Spanish real estate calculator CLI",
		Long: "Mortgage amortization, purchase costs, debt capacity and capital gains\n" +
			"calculations for residential property in Spain.",
		SilenceUsage: true,
	}
	root.PersistentFlags().Bool("debug", false, "Log calculation details to stderr")
	root.PersistentFlags().String("tables", "", "Tax tables override file (YAML)")

	verCmd := versionCmd()
	verCmd.Flags().BoolP("verbose", "v", false, "Include Go build information")

	root.AddCommand(
		calculateCmd(),
		validateCmd(),
		tablesCmd(),
		mortgageCmd(),
		costsCmd(),
		capacityCmd(),
		gainsCmd(),
		compareCmd(),
		regionsCmd(),
		serveCmd(),
		tuiCmd(),
		verCmd,
	)
	return root
}

// engineFor builds the engine from the --tables and --debug flags. The
// returned cleanup flushes the debug logger.
func engineFor(cmd *cobra.Command) (*calculation.Engine, func(), error) {
	tablesFile, _ := cmd.Flags().GetString("tables")
	tables, err := config.LoadTaxTables(tablesFile)
	if err != nil {
		return nil, nil, err
	}
	engine, err := calculation.NewEngineWithTables(tables)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {}
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		logger, err := config.NewLogger(config.LoggingConfig{Format: "console"}, "debug")
		if err != nil {
			return nil, nil, err
		}
		engine.SetLogger(logger.Sugar())
		cleanup = func() { _ = logger.Sync() }
	}
	return engine, cleanup, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
