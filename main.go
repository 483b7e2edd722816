// =============================================================================
// PyPSA to H2RES Export Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the pypsa2h2res CLI application. It
// initializes the Cobra CLI framework and delegates command execution to the
// cmd package.
//
// USAGE:
//   pypsa2h2res run                  - Run every converter with configured paths
//   pypsa2h2res convert <name>       - Run a single converter
//   pypsa2h2res version              - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core conversion logic (not for external import)
//   - pkg/           : Shared utilities
//
// =============================================================================

package main

import (
	"github.com/SebastianGajardo98/pypsa-scripts/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
