// =============================================================================
// PyPSA to H2RES Export Converter - Spreadsheet Converters
// =============================================================================
//
// Shared engine for the six converters whose input is a spreadsheet
// (SpreadsheetML or XLSX): cooling demand, H2 demand, driving cycles, EV
// transport load, fuel cost, and import/export capacities. The transform is
// uniform: detect the header row, normalize header case, emit one <row>
// per data row with one child element per named column, and write the
// result under a converter-specific root tag.
//
// Blank header columns are skipped, blank data rows are dropped, and rows
// are aligned to the header width before emission.
//
// =============================================================================

package converter

import (
	"strconv"
	"strings"

	"github.com/SebastianGajardo98/pypsa-scripts/internal/spreadml"
	"github.com/SebastianGajardo98/pypsa-scripts/internal/xmltree"
)

// HeaderCase selects the header normalization of a spreadsheet converter.
type HeaderCase int

const (
	// CasePreserve keeps headers as found.
	CasePreserve HeaderCase = iota
	// CaseLower lowercases headers.
	CaseLower
	// CaseUpper uppercases headers.
	CaseUpper
)

// Apply normalizes a header name. The transform is idempotent.
func (hc HeaderCase) Apply(s string) string {
	switch hc {
	case CaseLower:
		return strings.ToLower(s)
	case CaseUpper:
		return strings.ToUpper(s)
	default:
		return s
	}
}

// convertSheet reads the spreadsheet at inputPath and writes it as a flat
// row document under rootTag. It returns the number of rows written.
func convertSheet(inputPath, outputPath, rootTag string, hc HeaderCase, opts Options) (int, error) {
	sheet, err := spreadml.Read(inputPath)
	if err != nil {
		return 0, err
	}

	headers := make([]string, len(sheet.Headers))
	for i, h := range sheet.Headers {
		headers[i] = strings.TrimSpace(hc.Apply(h))
	}

	root := xmltree.New(rootTag)
	for _, row := range sheet.Rows {
		rowEl := root.Child("row")
		for i, name := range headers {
			if name == "" {
				continue
			}
			rowEl.ChildText(name, row[i])
		}
	}

	if opts.PadDay {
		padPeriodRows(root)
	}

	if err := root.WriteFile(outputPath); err != nil {
		return 0, err
	}
	return len(root.Children), nil
}

// padPeriodRows completes a trailing partial day for row documents that
// carry a numeric period column: the last row is duplicated with
// incremented period numbers until the period count reaches a multiple of
// 24. Documents without a parseable period column are left alone.
func padPeriodRows(root *xmltree.Element) {
	rows := root.FindAll("row")
	if len(rows) == 0 {
		return
	}

	last := rows[len(rows)-1]
	periodEl := last.Find("period")
	if periodEl == nil {
		return
	}
	lastPeriod, err := strconv.Atoi(periodEl.Text)
	if err != nil {
		return
	}

	missing := paddedLen(lastPeriod) - lastPeriod
	for i := 1; i <= missing; i++ {
		rowEl := root.Child("row")
		for _, child := range last.Children {
			if child.Tag == "period" {
				rowEl.ChildText("period", strconv.Itoa(lastPeriod+i))
				continue
			}
			rowEl.ChildText(child.Tag, child.Text)
		}
	}
}

// =============================================================================
// DOMAIN CONVERTERS
// =============================================================================

// CoolingDemand converts the cooling demand spreadsheet.
func CoolingDemand(inputPath, outputPath string, opts Options) (int, error) {
	return convertSheet(inputPath, outputPath, "data", CasePreserve, opts)
}

// DemandH2 converts the hydrogen demand spreadsheet.
func DemandH2(inputPath, outputPath string, opts Options) (int, error) {
	return convertSheet(inputPath, outputPath, "data", CasePreserve, opts)
}

// DrivingCycles converts the scaled driving cycles spreadsheet.
func DrivingCycles(inputPath, outputPath string, opts Options) (int, error) {
	return convertSheet(inputPath, outputPath, "data", CaseLower, opts)
}

// EVTransportLoad converts the EV transport load spreadsheet.
func EVTransportLoad(inputPath, outputPath string, opts Options) (int, error) {
	return convertSheet(inputPath, outputPath, "data", CaseLower, opts)
}

// FuelCost converts the fuel cost spreadsheet.
func FuelCost(inputPath, outputPath string, opts Options) (int, error) {
	return convertSheet(inputPath, outputPath, "root", CaseLower, opts)
}

// ImportExport converts the import/export capacity spreadsheet. Headers
// are country codes and stay uppercase.
func ImportExport(inputPath, outputPath string, opts Options) (int, error) {
	return convertSheet(inputPath, outputPath, "root", CaseUpper, opts)
}
