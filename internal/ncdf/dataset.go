// =============================================================================
// PyPSA to H2RES Export Converter - NetCDF Dataset Module
// =============================================================================
//
// Thin wrapper over the pure-Go NetCDF reader. A Dataset exposes exactly
// what the converters consume:
//
//   - numeric data variables as Array (flat buffer + named dimensions)
//   - string coordinate axes (bus names, country codes, heat sources)
//   - time coordinate axes decoded through their CF "units" attribute,
//     e.g. "hours since 2013-01-01 00:00:00"
//
// Input files come straight out of a PyPSA-Eur workflow (xarray-written
// NetCDF). Errors from the underlying reader propagate with the variable
// name attached and nothing else.
//
// =============================================================================

package ncdf

import (
	"fmt"
	"strings"
	"time"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
)

// Dataset is an open NetCDF file.
type Dataset struct {
	path  string
	group api.Group
}

// Open opens the NetCDF file at path.
func Open(path string) (*Dataset, error) {
	group, err := netcdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open NetCDF file %s: %w", path, err)
	}
	return &Dataset{path: path, group: group}, nil
}

// Close releases the underlying file handle.
func (d *Dataset) Close() {
	d.group.Close()
}

// Path returns the file path the dataset was opened from.
func (d *Dataset) Path() string {
	return d.path
}

// Variables lists the variable names in the dataset.
func (d *Dataset) Variables() []string {
	return d.group.ListVariables()
}

// HasVariable reports whether the dataset contains the named variable.
func (d *Dataset) HasVariable(name string) bool {
	for _, v := range d.group.ListVariables() {
		if v == name {
			return true
		}
	}
	return false
}

// Array reads the named variable as a numeric multi-dimensional array.
func (d *Dataset) Array(name string) (*Array, error) {
	vr, err := d.group.GetVariable(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read variable %q from %s: %w", name, d.path, err)
	}

	data, shape, err := flatten(vr.Values)
	if err != nil {
		return nil, fmt.Errorf("variable %q in %s: %w", name, d.path, err)
	}

	dims := append([]string(nil), vr.Dimensions...)
	arr, err := NewArray(data, dims, shape)
	if err != nil {
		return nil, fmt.Errorf("variable %q in %s: %w", name, d.path, err)
	}
	return arr, nil
}

// Strings reads the named variable as a string coordinate axis. The reader
// yields either []string directly or, for char-typed classic variables,
// nested byte slices that are joined and NUL-trimmed here.
func (d *Dataset) Strings(name string) ([]string, error) {
	vr, err := d.group.GetVariable(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read variable %q from %s: %w", name, d.path, err)
	}

	switch values := vr.Values.(type) {
	case []string:
		return append([]string(nil), values...), nil
	case string:
		return []string{values}, nil
	case [][]byte:
		out := make([]string, len(values))
		for i, b := range values {
			out[i] = strings.TrimRight(string(b), "\x00")
		}
		return out, nil
	default:
		return nil, fmt.Errorf("variable %q in %s is not string-typed (%T)", name, d.path, vr.Values)
	}
}

// Times reads the named variable as a time coordinate axis, decoding the
// numeric offsets through the variable's CF "units" attribute.
func (d *Dataset) Times(name string) ([]time.Time, error) {
	vr, err := d.group.GetVariable(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read variable %q from %s: %w", name, d.path, err)
	}

	units := ""
	if vr.Attributes != nil {
		if raw, has := vr.Attributes.Get("units"); has {
			if s, ok := raw.(string); ok {
				units = s
			}
		}
	}
	if units == "" {
		return nil, fmt.Errorf("time variable %q in %s has no units attribute", name, d.path)
	}

	step, epoch, err := parseCFUnits(units)
	if err != nil {
		return nil, fmt.Errorf("time variable %q in %s: %w", name, d.path, err)
	}

	offsets, shape, err := flatten(vr.Values)
	if err != nil {
		return nil, fmt.Errorf("time variable %q in %s: %w", name, d.path, err)
	}
	if len(shape) != 1 {
		return nil, fmt.Errorf("time variable %q in %s is not one-dimensional (shape %v)", name, d.path, shape)
	}

	times := make([]time.Time, len(offsets))
	for i, off := range offsets {
		times[i] = epoch.Add(time.Duration(off * float64(step)))
	}
	return times, nil
}

// parseCFUnits decodes a CF time unit string of the form
// "<unit> since <epoch>" into the unit duration and the epoch.
func parseCFUnits(units string) (time.Duration, time.Time, error) {
	parts := strings.SplitN(units, " since ", 2)
	if len(parts) != 2 {
		return 0, time.Time{}, fmt.Errorf("unsupported time units %q", units)
	}

	var step time.Duration
	switch strings.ToLower(strings.TrimSpace(parts[0])) {
	case "seconds", "second", "s":
		step = time.Second
	case "minutes", "minute", "min":
		step = time.Minute
	case "hours", "hour", "h":
		step = time.Hour
	case "days", "day", "d":
		step = 24 * time.Hour
	default:
		return 0, time.Time{}, fmt.Errorf("unsupported time unit %q", parts[0])
	}

	epochStr := strings.TrimSpace(strings.ReplaceAll(parts[1], "T", " "))
	layouts := []string{
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if epoch, err := time.Parse(layout, epochStr); err == nil {
			return step, epoch.UTC(), nil
		}
	}
	return 0, time.Time{}, fmt.Errorf("unsupported epoch %q in time units", parts[1])
}
