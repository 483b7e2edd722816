// =============================================================================
// PyPSA to H2RES Export Converter - Run Command
// =============================================================================
//
// This file defines the 'run' command, the orchestrator that converts the
// complete H2RES input set in one pass.
//
// COMMAND USAGE:
//   pypsa2h2res run [--config paths.yaml]
//
// PIPELINE:
//   1. Load the configuration (defaults, optional YAML, environment)
//   2. Create the export directory if missing
//   3. Run every converter in sequence against the derived paths
//   4. Print a summary table of converter, output file, rows, duration
//
// The run takes no positional arguments; all paths come from the
// configuration. Converters are independent of each other, but the run
// aborts on the first error: there are no retries and no cleanup of
// already-written outputs.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/SebastianGajardo98/pypsa-scripts/internal/config"
	"github.com/SebastianGajardo98/pypsa-scripts/internal/converter"
	"github.com/SebastianGajardo98/pypsa-scripts/pkg/fileutil"
)

// step is one orchestrated conversion: a name, an output file, and the
// invocation bound to the configured paths.
type step struct {
	name   string
	output string
	fn     func(outputPath string, opts converter.Options) (int, error)
}

// runCmd represents the 'run' command.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every converter against the configured paths",
	Long: `The run command executes the full conversion pipeline: every converter is
invoked in sequence with the input paths derived from the configuration and
outputs written to the export directory. Trailing partial days are padded
to full 24-period days, matching what the H2RES model expects.

Paths are resolved from built-in defaults, the optional config file, and
the DRIVE_PREFIX, CLUSTERS_SUFFIX and H2RES_EXPORT_FOLDER environment
variables, in that order of precedence.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAll()
	},
}

// init registers the run command with the root command.
func init() {
	rootCmd.AddCommand(runCmd)
}

// runAll executes the full pipeline.
func runAll() error {
	startTime := time.Now()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	fmt.Println("=== PyPSA to H2RES Export Converter ===")
	if verbose {
		fmt.Printf("Resource prefix:  %s\n", cfg.DrivePrefix)
		fmt.Printf("Clusters suffix:  %s\n", cfg.ClustersSuffix)
		fmt.Printf("Data directory:   %s\n", cfg.DataDir)
		fmt.Printf("Export directory: %s\n", cfg.ExportDir)
	}

	if err := fileutil.EnsureDir(cfg.ExportDir); err != nil {
		return err
	}

	opts := converter.Options{PadDay: true}
	steps := pipelineSteps(cfg)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Converter", "Output", "Rows", "Duration"})

	for _, s := range steps {
		if verbose {
			fmt.Printf("Converting %s...\n", s.name)
		}
		stepStart := time.Now()
		rows, err := s.fn(s.output, opts)
		if err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
		table.Append([]string{
			s.name,
			filepath.Base(s.output),
			fmt.Sprintf("%d", rows),
			time.Since(stepStart).Round(time.Millisecond).String(),
		})
	}

	table.Render()
	fmt.Printf("Completed %d conversions in %s\n", len(steps), time.Since(startTime).Round(time.Millisecond))
	return nil
}

// pipelineSteps binds every converter to the paths derived from the
// configuration. PyPSA-Eur resources come from the drive prefix; the
// remaining spreadsheets come from the local data directory.
func pipelineSteps(cfg *config.Config) []step {
	return []step{
		{
			name:   "demand",
			output: cfg.ExportFile("demand_2020_2050.xml"),
			fn: func(out string, opts converter.Options) (int, error) {
				return converter.Demand(cfg.Resource("electricity_demand.csv"), out, opts)
			},
		},
		{
			name:   "flex-tech",
			output: cfg.ExportFile("flex_tech_2020_2050_explicit.xml"),
			fn: func(out string, opts converter.Options) (int, error) {
				return converter.FlexTech(
					cfg.ClusteredResource("cop_profiles_base_s_%s_2030.nc"),
					cfg.ClusteredResource("cop_profiles_base_s_%s_2050.nc"),
					out, opts)
			},
		},
		{
			name:   "heat-demand",
			output: cfg.ExportFile("heat_demand_2020_2050.xml"),
			fn: func(out string, opts converter.Options) (int, error) {
				return converter.HeatDemand(
					cfg.ClusteredResource("hourly_heat_demand_total_base_s_%s.nc"), out, opts)
			},
		},
		{
			name:   "ncre-availability",
			output: cfg.ExportFile("ncre_aval_factor_2020_2050.xml"),
			fn: func(out string, opts converter.Options) (int, error) {
				return converter.NCREAvailability(converter.NCREInputs{
					OffwindAC:    cfg.ClusteredResource("availability_matrix_%s_offwind-ac.nc"),
					OffwindDC:    cfg.ClusteredResource("availability_matrix_%s_offwind-dc.nc"),
					OffwindFloat: cfg.ClusteredResource("availability_matrix_%s_offwind-float.nc"),
					Onwind:       cfg.ClusteredResource("availability_matrix_%s_onwind.nc"),
				}, out, opts)
			},
		},
		{
			name:   "scaled-inflows",
			output: cfg.ExportFile("scaled_inflows_2020_2050.xml"),
			fn: func(out string, opts converter.Options) (int, error) {
				return converter.ScaledInflows(cfg.Resource("profile_hydro.nc"), out, opts)
			},
		},
		{
			name:   "cooling-demand",
			output: cfg.ExportFile("cooling_demand_2020_2050.xml"),
			fn: func(out string, opts converter.Options) (int, error) {
				return converter.CoolingDemand(cfg.DataFile("cooling_demand_2020_2050.xml"), out, opts)
			},
		},
		{
			name:   "demand-h2",
			output: cfg.ExportFile("demand_H2_2020_2050.xml"),
			fn: func(out string, opts converter.Options) (int, error) {
				return converter.DemandH2(cfg.DataFile("demand_H2_2020_2050.xml"), out, opts)
			},
		},
		{
			name:   "driving-cycles",
			output: cfg.ExportFile("driving_cycles_scaled_1MWh.xml"),
			fn: func(out string, opts converter.Options) (int, error) {
				return converter.DrivingCycles(cfg.DataFile("driving_cycles_scaled_1MWh.xml"), out, opts)
			},
		},
		{
			name:   "ev-transport-load",
			output: cfg.ExportFile("ev_transp_load.xml"),
			fn: func(out string, opts converter.Options) (int, error) {
				return converter.EVTransportLoad(cfg.DataFile("ev_transp_load.xml"), out, opts)
			},
		},
		{
			name:   "fuel-cost",
			output: cfg.ExportFile("fuel_cost_2020_2050.xml"),
			fn: func(out string, opts converter.Options) (int, error) {
				return converter.FuelCost(cfg.DataFile("fuel_cost_2020_2050.xml"), out, opts)
			},
		},
		{
			name:   "import-export",
			output: cfg.ExportFile("import_export_2020_2050.xml"),
			fn: func(out string, opts converter.Options) (int, error) {
				return converter.ImportExport(cfg.DataFile("import_export_2020_2050.xml"), out, opts)
			},
		},
	}
}
