// =============================================================================
// PyPSA to H2RES Export Converter - Flexible Technology COP Converter
// =============================================================================
//
// Converts the 2030 and 2050 heat pump COP profile NetCDF files into a
// single explicit document: one <time> element per snapshot, one child per
// bus, one <entry> per heat source × heat system combination carrying both
// planning-year COP values.
//
// The two datasets must agree on their bus and heat source/system lists;
// time axes may differ in length and are aligned to the longer one, with
// the shorter dataset repeating its last hour.
//
// =============================================================================

package converter

import (
	"fmt"
	"strings"
	"time"

	"github.com/SebastianGajardo98/pypsa-scripts/internal/ncdf"
	"github.com/SebastianGajardo98/pypsa-scripts/internal/xmltree"
)

// xarrayDefaultVariable is the name xarray assigns to an unnamed DataArray
// when writing it to NetCDF.
const xarrayDefaultVariable = "__xarray_dataarray_variable__"

// copProfile is one planning year's COP dataset, oriented to
// (heat_system, heat_source, time, name).
type copProfile struct {
	data        *ncdf.Array
	times       []time.Time
	names       []string
	heatSources []string
	heatSystems []string
}

// timeLen returns the length of the profile's time axis.
func (p *copProfile) timeLen() int {
	n, _ := p.data.Len("time")
	return n
}

// loadCOPProfile reads one COP profile NetCDF file.
func loadCOPProfile(path string) (*copProfile, error) {
	ds, err := ncdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer ds.Close()

	arr, err := ds.Array(xarrayDefaultVariable)
	if err != nil {
		return nil, err
	}
	arr, err = arr.Transpose("heat_system", "heat_source", "time", "name")
	if err != nil {
		return nil, fmt.Errorf("COP profile %s: %w", path, err)
	}

	times, err := ds.Times("time")
	if err != nil {
		return nil, err
	}
	names, err := ds.Strings("name")
	if err != nil {
		return nil, err
	}
	heatSources, err := ds.Strings("heat_source")
	if err != nil {
		return nil, err
	}
	heatSystems, err := ds.Strings("heat_system")
	if err != nil {
		return nil, err
	}

	return &copProfile{
		data:        arr,
		times:       times,
		names:       names,
		heatSources: heatSources,
		heatSystems: heatSystems,
	}, nil
}

// FlexTech converts the 2030 and 2050 COP profiles into an XML document at
// outputPath. It returns the number of time rows written.
func FlexTech(input2030, input2050, outputPath string, opts Options) (int, error) {
	p2030, err := loadCOPProfile(input2030)
	if err != nil {
		return 0, err
	}
	p2050, err := loadCOPProfile(input2050)
	if err != nil {
		return 0, err
	}

	if !equalStrings(p2030.names, p2050.names) {
		return 0, fmt.Errorf("bus/name lists differ between 2030 and 2050 datasets")
	}
	if !equalStrings(p2030.heatSources, p2050.heatSources) ||
		!equalStrings(p2030.heatSystems, p2050.heatSystems) {
		return 0, fmt.Errorf("heat source/system lists differ between datasets")
	}

	root := buildFlexTechDocument(p2030, p2050, opts.PadDay)
	if err := root.WriteFile(outputPath); err != nil {
		return 0, err
	}
	return len(root.Children), nil
}

// buildFlexTechDocument aligns the two time axes and emits the explicit
// per-bus, per-source, per-system COP entries.
func buildFlexTechDocument(p2030, p2050 *copProfile, padDay bool) *xmltree.Element {
	len2030 := p2030.timeLen()
	len2050 := p2050.timeLen()
	total := max(len2030, len2050)
	if padDay {
		total = paddedLen(total)
	}

	// Use the longer time axis, extended hourly if padding pushed past it.
	timeAxis := p2030.times
	if len2050 > len2030 {
		timeAxis = p2050.times
	}
	timeAxis = extendHourly(timeAxis, total)

	root := xmltree.New("data")
	for t := 0; t < total; t++ {
		timeEl := root.Child("time")
		timeEl.Text = timeAxis[t].Format(timestampLayout)

		t30 := clampIndex(t, len2030)
		t50 := clampIndex(t, len2050)

		for nIdx, name := range p2030.names {
			busEl := timeEl.Child(strings.ToLower(strings.ReplaceAll(name, " ", "_")))
			for hsIdx, source := range p2030.heatSources {
				for sysIdx, system := range p2030.heatSystems {
					entry := busEl.Child("entry")
					entry.ChildText("heat_source", source)
					entry.ChildText("heat_system", system)
					entry.ChildText("cop_2030", formatFloat(p2030.data.At(sysIdx, hsIdx, t30, nIdx)))
					entry.ChildText("cop_2050", formatFloat(p2050.data.At(sysIdx, hsIdx, t50, nIdx)))
				}
			}
		}
	}
	return root
}
