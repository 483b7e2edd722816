// =============================================================================
// PyPSA to H2RES Export Converter - Heat Demand Converter
// =============================================================================
//
// Converts the PyPSA-Eur hourly heat demand NetCDF file into the H2RES heat
// demand document. The four demand components (residential/services ×
// water/space) are summed into a single general demand per (snapshot, node)
// and emitted one row per snapshot:
//
//   <row>
//     <year>2013</year>
//     <period>1</period>
//     <general_demand>
//       <DE0>1234.5</DE0>
//       ...
//     </general_demand>
//   </row>
//
// Node names are uppercased with spaces stripped, preserving the generator
// naming used elsewhere in the model.
//
// =============================================================================

package converter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SebastianGajardo98/pypsa-scripts/internal/ncdf"
	"github.com/SebastianGajardo98/pypsa-scripts/internal/xmltree"
)

// heatDemandComponents are the data variables summed into general demand.
var heatDemandComponents = []string{
	"residential water",
	"residential space",
	"services water",
	"services space",
}

// HeatDemand converts the hourly heat demand NetCDF file at inputPath into
// an XML document at outputPath. It returns the number of rows written.
func HeatDemand(inputPath, outputPath string, opts Options) (int, error) {
	ds, err := ncdf.Open(inputPath)
	if err != nil {
		return 0, err
	}
	defer ds.Close()

	times, err := ds.Times("snapshots")
	if err != nil {
		return 0, err
	}
	nodes, err := ds.Strings("node")
	if err != nil {
		return 0, err
	}

	summed := make([][]float64, len(times))
	for t := range summed {
		summed[t] = make([]float64, len(nodes))
	}
	for _, name := range heatDemandComponents {
		arr, err := ds.Array(name)
		if err != nil {
			return 0, err
		}
		if arr.HasDim("snapshots") && arr.HasDim("node") && arr.Dims[0] != "snapshots" {
			arr, err = arr.Transpose("snapshots", "node")
			if err != nil {
				return 0, err
			}
		}
		if len(arr.Shape) != 2 || arr.Shape[0] != len(times) || arr.Shape[1] != len(nodes) {
			return 0, fmt.Errorf("variable %q in %s has shape %v, want [%d %d]",
				name, inputPath, arr.Shape, len(times), len(nodes))
		}
		for t := range summed {
			for n := range nodes {
				summed[t][n] += arr.At(t, n)
			}
		}
	}

	root := buildHeatDemandDocument(times, nodes, summed, opts.PadDay)
	if err := root.WriteFile(outputPath); err != nil {
		return 0, err
	}
	return len(root.Children), nil
}

// buildHeatDemandDocument emits one row per snapshot, optionally padding
// the trailing partial day by repeating the last demand row.
func buildHeatDemandDocument(times []time.Time, nodes []string, demand [][]float64, padDay bool) *xmltree.Element {
	total := len(demand)
	if padDay {
		total = paddedLen(total)
	}
	times = extendHourly(times, total)

	root := xmltree.New("data")
	for t := 0; t < total; t++ {
		src := clampIndex(t, len(demand))
		ts := times[t]

		rowEl := root.Child("row")
		rowEl.ChildText("year", strconv.Itoa(ts.Year()))
		rowEl.ChildText("period", strconv.Itoa(periodNumber(ts)))

		demandEl := rowEl.Child("general_demand")
		for n, node := range nodes {
			tag := strings.ToUpper(strings.ReplaceAll(node, " ", ""))
			demandEl.ChildText(tag, formatFloat(demand[src][n]))
		}
	}
	return root
}
