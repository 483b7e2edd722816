// =============================================================================
// PyPSA to H2RES Export Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (pypsa2h2res)
//   ├── runCmd      (pypsa2h2res run)
//   ├── convertCmd  (pypsa2h2res convert <name>)
//   └── versionCmd  (pypsa2h2res version)
//
// The root command owns the global flags (--config, --verbose) and loads a
// local .env file, if present, before any command runs. Environment
// variables always win over the config file.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables verbose output when set to true.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "pypsa2h2res",
	Short: "Convert PyPSA-Eur resource files to H2RES XML inputs",
	Long: `pypsa2h2res is a CLI tool that converts PyPSA-Eur resource files (CSV,
SpreadsheetML, NetCDF) into the simplified XML documents consumed by the
H2RES energy model.

Each converter is a one-shot file-to-file transform. The 'run' command
executes every converter against the configured resource and export paths;
'convert' runs a single converter with explicit --input/--output flags.

Example Usage:
  pypsa2h2res run                              # Convert everything
  pypsa2h2res run --config ./paths.yaml        # Use a custom configuration
  pypsa2h2res convert demand \
      --input electricity_demand.csv \
      --output demand_2020_2050.xml            # Run one converter`,

	// If no subcommand is provided, print the help message.
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	// A local .env can carry DRIVE_PREFIX, CLUSTERS_SUFFIX and
	// H2RES_EXPORT_FOLDER; a missing file is fine.
	godotenv.Load() //nolint:errcheck

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// init sets up the global flags.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file (optional)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output",
	)
}
