// =============================================================================
// PyPSA to H2RES Export Converter - Convert Command
// =============================================================================
//
// This file defines the 'convert' command tree: one subcommand per
// converter, each taking explicit input/output flags. Converters with a
// single source use --input/--output; flex-tech takes
// --input-2030/--input-2050 and ncre-availability takes one flag per wind
// technology.
//
// All subcommands share --pad-day, which completes a trailing partial day
// the way the orchestrator does. It is off by default so a standalone
// conversion writes exactly one row per input record.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SebastianGajardo98/pypsa-scripts/internal/converter"
)

// padDay completes a trailing partial day by duplicating the last row.
var padDay bool

// convertCmd is the parent of the per-converter subcommands.
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Run a single converter with explicit input/output paths",
	Long: `The convert command exposes each converter individually. Every subcommand
reads its source file(s) fully into memory, builds the XML document and
writes it to the output path, creating parent directories if absent.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// simpleConverter is a converter with a single input file.
type simpleConverter func(inputPath, outputPath string, opts converter.Options) (int, error)

// newSimpleConvertCmd builds a subcommand with --input/--output flags
// around a single-input converter.
func newSimpleConvertCmd(name, short string, fn simpleConverter) *cobra.Command {
	var inputPath, outputPath string

	cmd := &cobra.Command{
		Use:   name,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := fn(inputPath, outputPath, converter.Options{PadDay: padDay})
			if err != nil {
				return err
			}
			fmt.Printf("%s: wrote %d rows to %s\n", name, rows, outputPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "Path to the input file")
	cmd.Flags().StringVar(&outputPath, "output", "", "Path to the output XML file")
	cmd.MarkFlagRequired("input")  //nolint:errcheck
	cmd.MarkFlagRequired("output") //nolint:errcheck
	return cmd
}

// newFlexTechCmd builds the two-input flex-tech subcommand.
func newFlexTechCmd() *cobra.Command {
	var input2030, input2050, outputPath string

	cmd := &cobra.Command{
		Use:   "flex-tech",
		Short: "Convert the 2030/2050 heat pump COP profiles (NetCDF)",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := converter.FlexTech(input2030, input2050, outputPath, converter.Options{PadDay: padDay})
			if err != nil {
				return err
			}
			fmt.Printf("flex-tech: wrote %d rows to %s\n", rows, outputPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&input2030, "input-2030", "", "Path to the 2030 COP profile NetCDF file")
	cmd.Flags().StringVar(&input2050, "input-2050", "", "Path to the 2050 COP profile NetCDF file")
	cmd.Flags().StringVar(&outputPath, "output", "", "Path to the output XML file")
	cmd.MarkFlagRequired("input-2030") //nolint:errcheck
	cmd.MarkFlagRequired("input-2050") //nolint:errcheck
	cmd.MarkFlagRequired("output")     //nolint:errcheck
	return cmd
}

// newNCRECmd builds the four-input ncre-availability subcommand.
func newNCRECmd() *cobra.Command {
	var inputs converter.NCREInputs
	var outputPath string

	cmd := &cobra.Command{
		Use:   "ncre-availability",
		Short: "Convert the wind availability matrices (NetCDF)",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := converter.NCREAvailability(inputs, outputPath, converter.Options{PadDay: padDay})
			if err != nil {
				return err
			}
			fmt.Printf("ncre-availability: wrote %d rows to %s\n", rows, outputPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&inputs.OffwindAC, "offwind-ac", "", "Path to the offwind-ac availability matrix")
	cmd.Flags().StringVar(&inputs.OffwindDC, "offwind-dc", "", "Path to the offwind-dc availability matrix")
	cmd.Flags().StringVar(&inputs.OffwindFloat, "offwind-float", "", "Path to the offwind-float availability matrix")
	cmd.Flags().StringVar(&inputs.Onwind, "onwind", "", "Path to the onwind availability matrix")
	cmd.Flags().StringVar(&outputPath, "output", "", "Path to the output XML file")
	cmd.MarkFlagRequired("offwind-ac")    //nolint:errcheck
	cmd.MarkFlagRequired("offwind-dc")    //nolint:errcheck
	cmd.MarkFlagRequired("offwind-float") //nolint:errcheck
	cmd.MarkFlagRequired("onwind")        //nolint:errcheck
	cmd.MarkFlagRequired("output")        //nolint:errcheck
	return cmd
}

// init assembles the convert command tree.
func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.PersistentFlags().BoolVar(
		&padDay,
		"pad-day",
		false,
		"Duplicate the trailing row until the last day has 24 periods",
	)

	convertCmd.AddCommand(
		newSimpleConvertCmd("demand", "Convert the electricity demand CSV", converter.Demand),
		newSimpleConvertCmd("heat-demand", "Convert the hourly heat demand (NetCDF)", converter.HeatDemand),
		newSimpleConvertCmd("scaled-inflows", "Convert the hydro inflow profile (NetCDF)", converter.ScaledInflows),
		newSimpleConvertCmd("cooling-demand", "Convert the cooling demand spreadsheet", converter.CoolingDemand),
		newSimpleConvertCmd("demand-h2", "Convert the hydrogen demand spreadsheet", converter.DemandH2),
		newSimpleConvertCmd("driving-cycles", "Convert the driving cycles spreadsheet", converter.DrivingCycles),
		newSimpleConvertCmd("ev-transport-load", "Convert the EV transport load spreadsheet", converter.EVTransportLoad),
		newSimpleConvertCmd("fuel-cost", "Convert the fuel cost spreadsheet", converter.FuelCost),
		newSimpleConvertCmd("import-export", "Convert the import/export capacity spreadsheet", converter.ImportExport),
		newFlexTechCmd(),
		newNCRECmd(),
	)
}
