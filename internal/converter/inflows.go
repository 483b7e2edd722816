// =============================================================================
// PyPSA to H2RES Export Converter - Scaled Inflows Converter
// =============================================================================
//
// Converts the hydro inflow profile NetCDF file into the H2RES inflow
// document: one <row> per time step with <year>, a 1-based <period>, and
// one value element per country/generator column.
//
// =============================================================================

package converter

import (
	"fmt"
	"strconv"
	"time"

	"github.com/SebastianGajardo98/pypsa-scripts/internal/ncdf"
	"github.com/SebastianGajardo98/pypsa-scripts/internal/xmltree"
)

// ScaledInflows converts the hydro inflow NetCDF file at inputPath into an
// XML document at outputPath. It returns the number of rows written.
func ScaledInflows(inputPath, outputPath string, opts Options) (int, error) {
	ds, err := ncdf.Open(inputPath)
	if err != nil {
		return 0, err
	}
	defer ds.Close()

	arr, err := ds.Array(xarrayDefaultVariable)
	if err != nil {
		return 0, err
	}
	if arr.HasDim("time") && arr.HasDim("countries") && arr.Dims[0] != "time" {
		arr, err = arr.Transpose("time", "countries")
		if err != nil {
			return 0, err
		}
	}

	times, err := ds.Times("time")
	if err != nil {
		return 0, err
	}
	generators, err := ds.Strings("countries")
	if err != nil {
		return 0, err
	}

	if len(arr.Shape) != 2 || arr.Shape[0] != len(times) {
		return 0, fmt.Errorf("time axis length mismatch between coordinates and data in %s", inputPath)
	}

	root := buildInflowsDocument(times, generators, arr, opts.PadDay)
	if err := root.WriteFile(outputPath); err != nil {
		return 0, err
	}
	return len(root.Children), nil
}

// buildInflowsDocument emits one row per time step, optionally repeating
// the last row to complete the trailing day.
func buildInflowsDocument(times []time.Time, generators []string, values *ncdf.Array, padDay bool) *xmltree.Element {
	steps := values.Shape[0]
	total := steps
	if padDay {
		total = paddedLen(steps)
	}
	times = extendHourly(times, total)

	root := xmltree.New("root")
	for t := 0; t < total; t++ {
		src := clampIndex(t, steps)

		rowEl := root.Child("row")
		rowEl.ChildText("year", strconv.Itoa(times[t].Year()))
		rowEl.ChildText("period", strconv.Itoa(t+1))
		for g, gen := range generators {
			rowEl.ChildText(gen, formatFloat(values.At(src, g)))
		}
	}
	return root
}
