// =============================================================================
// PyPSA to H2RES Export Converter - Converter Package
// =============================================================================
//
// One converter per H2RES input file. Each converter reads its source fully
// into memory, builds the XML document, and writes it to the output path.
// There is no shared state between converters and no error recovery: a
// failed read or parse propagates with path context attached and aborts
// the run.
//
// H2RES models full days. Time series whose hour count is not a multiple
// of 24 can optionally be completed by duplicating the trailing row with
// incremented timestamps/periods (Options.PadDay). The orchestrator enables
// this; standalone invocations leave row counts untouched unless asked.
//
// =============================================================================

package converter

import (
	"strconv"
	"time"
)

// hoursPerDay is the period granularity of the H2RES model.
const hoursPerDay = 24

// timestampLayout is the timestamp format written into output documents.
const timestampLayout = "2006-01-02 15:04:05"

// Options control behavior shared by every converter.
type Options struct {
	// PadDay completes a trailing partial day by duplicating the last row
	// until the row count is a multiple of 24.
	PadDay bool
}

// paddedLen returns n rounded up to the next multiple of 24.
// Zero stays zero.
func paddedLen(n int) int {
	if rem := n % hoursPerDay; rem != 0 {
		return n + hoursPerDay - rem
	}
	return n
}

// periodNumber maps a timestamp to its 1-based hourly period within the
// year: (dayOfYear-1)*24 + hour + 1.
func periodNumber(t time.Time) int {
	return (t.YearDay()-1)*hoursPerDay + t.Hour() + 1
}

// extendHourly extends a time axis to total entries by appending hourly
// increments of the last timestamp. Axes already long enough are returned
// unchanged.
func extendHourly(times []time.Time, total int) []time.Time {
	if len(times) == 0 || len(times) >= total {
		return times
	}
	out := append([]time.Time(nil), times...)
	last := times[len(times)-1]
	for i := 1; len(out) < total; i++ {
		out = append(out, last.Add(time.Duration(i)*time.Hour))
	}
	return out
}

// formatFloat renders a data value as text content.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// equalStrings reports whether two string slices are elementwise equal.
func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// clampIndex limits a padded row index to the last real row.
func clampIndex(i, n int) int {
	if i >= n {
		return n - 1
	}
	return i
}
