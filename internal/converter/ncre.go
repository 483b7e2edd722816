// =============================================================================
// PyPSA to H2RES Export Converter - NCRE Availability Converter
// =============================================================================
//
// Converts the per-technology wind availability matrices into a single
// document: one <time> element per step with <year> and <period> children,
// then one value element per valid (bus, technology) pair, tagged
// {bus}_profile_{tech}.
//
// A bus is dropped for a technology when its availability series contains
// any NaN; the technologies do not share bus sets, so the output columns
// vary per technology but not per row.
//
// =============================================================================

package converter

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/SebastianGajardo98/pypsa-scripts/internal/ncdf"
	"github.com/SebastianGajardo98/pypsa-scripts/internal/xmltree"
)

// NCREInputs names the availability matrix file per technology.
type NCREInputs struct {
	OffwindAC    string
	OffwindDC    string
	OffwindFloat string
	Onwind       string
}

// availabilityMatrix is one technology's availability data, oriented to
// (bus, time).
type availabilityMatrix struct {
	tech  string
	data  *ncdf.Array
	buses []string
	times []time.Time // nil when the file carries no time coordinate
}

// timeLen returns the length of the matrix's time axis.
func (m *availabilityMatrix) timeLen() int {
	return m.data.Shape[len(m.data.Shape)-1]
}

// coordinateNames are dimension variables that never hold availability
// data.
var coordinateNames = map[string]bool{
	"bus":  true,
	"time": true,
	"year": true,
	"bin":  true,
}

// loadAvailabilityMatrix reads one availability NetCDF file and orients it
// to (bus, time). Optional year/bin dimensions are reduced to their first
// index.
func loadAvailabilityMatrix(tech, path string) (*availabilityMatrix, error) {
	ds, err := ncdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer ds.Close()

	name, err := pickProfileVariable(ds)
	if err != nil {
		return nil, err
	}
	arr, err := ds.Array(name)
	if err != nil {
		return nil, err
	}

	arr = arr.SelectFirst("year")
	arr = arr.SelectFirst("bin")

	if arr.HasDim("bus") && arr.HasDim("time") {
		arr, err = arr.Transpose("bus", "time")
		if err != nil {
			return nil, fmt.Errorf("availability matrix %s: %w", path, err)
		}
	}

	var buses []string
	if ds.HasVariable("bus") {
		buses, err = ds.Strings("bus")
		if err != nil {
			return nil, err
		}
	}

	var times []time.Time
	if ds.HasVariable("time") {
		times, err = ds.Times("time")
		if err != nil {
			return nil, err
		}
	}

	return &availabilityMatrix{tech: tech, data: arr, buses: buses, times: times}, nil
}

// pickProfileVariable selects the data variable of an availability file:
// "profile" if present, then the xarray default name, then the first
// non-coordinate variable.
func pickProfileVariable(ds *ncdf.Dataset) (string, error) {
	if ds.HasVariable("profile") {
		return "profile", nil
	}
	if ds.HasVariable(xarrayDefaultVariable) {
		return xarrayDefaultVariable, nil
	}
	for _, name := range ds.Variables() {
		if !coordinateNames[name] {
			return name, nil
		}
	}
	return "", fmt.Errorf("no data variable found in %s", ds.Path())
}

// NCREAvailability converts the four wind availability matrices into an
// XML document at outputPath. It returns the number of time rows written.
func NCREAvailability(inputs NCREInputs, outputPath string, opts Options) (int, error) {
	files := []struct {
		tech string
		path string
	}{
		{"offwind-ac", inputs.OffwindAC},
		{"offwind-dc", inputs.OffwindDC},
		{"offwind-float", inputs.OffwindFloat},
		{"onwind", inputs.Onwind},
	}

	matrices := make([]*availabilityMatrix, 0, len(files))
	for _, f := range files {
		m, err := loadAvailabilityMatrix(f.tech, f.path)
		if err != nil {
			return 0, err
		}
		matrices = append(matrices, m)
	}

	root := buildNCREDocument(matrices, opts.PadDay)
	if err := root.WriteFile(outputPath); err != nil {
		return 0, err
	}
	return len(root.Children), nil
}

// buildNCREDocument merges the technology matrices over the union of their
// buses and the longest time axis.
func buildNCREDocument(matrices []*availabilityMatrix, padDay bool) *xmltree.Element {
	// Per technology: buses whose series is free of NaN, plus bus -> row
	// index.
	validBuses := make([]map[string]bool, len(matrices))
	busIndex := make([]map[string]int, len(matrices))
	busSet := make(map[string]bool)
	timeSteps := 0
	var timeAxis []time.Time

	for i, m := range matrices {
		validBuses[i] = make(map[string]bool, len(m.buses))
		busIndex[i] = make(map[string]int, len(m.buses))
		for idx, bus := range m.buses {
			busIndex[i][bus] = idx
			busSet[bus] = true
			clean := true
			for t := 0; t < m.timeLen(); t++ {
				if math.IsNaN(m.data.At(idx, t)) {
					clean = false
					break
				}
			}
			validBuses[i][bus] = clean
		}
		if m.timeLen() > timeSteps {
			timeSteps = m.timeLen()
		}
		if timeAxis == nil && m.times != nil {
			timeAxis = m.times
		}
	}
	if padDay {
		timeSteps = paddedLen(timeSteps)
	}
	timeAxis = extendHourly(timeAxis, timeSteps)

	allBuses := make([]string, 0, len(busSet))
	for bus := range busSet {
		allBuses = append(allBuses, bus)
	}
	sort.Strings(allBuses)

	root := xmltree.New("data")
	for t := 0; t < timeSteps; t++ {
		timeEl := root.Child("time")
		if timeAxis != nil {
			ts := timeAxis[t]
			timeEl.ChildText("year", strconv.Itoa(ts.Year()))
			timeEl.ChildText("period", strconv.Itoa(periodNumber(ts)))
		} else {
			timeEl.ChildText("year", "0")
			timeEl.ChildText("period", strconv.Itoa(t+1))
		}

		for _, bus := range allBuses {
			busTag := strings.ReplaceAll(bus, " ", "_")
			for i, m := range matrices {
				if !validBuses[i][bus] {
					continue
				}
				src := clampIndex(t, m.timeLen())
				value := m.data.At(busIndex[i][bus], src)
				timeEl.ChildText(busTag+"_profile_"+m.tech, formatFloat(value))
			}
		}
	}
	return root
}
