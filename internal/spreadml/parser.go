// =============================================================================
// PyPSA to H2RES Export Converter - Spreadsheet Reader Module
// =============================================================================
//
// This module reads semi-structured tabular spreadsheet files and yields the
// header row plus the data rows, aligned to the header width. Two physical
// formats are supported, selected by file extension:
//
//   - SpreadsheetML (.xml): the XML-based interchange format exported by
//     Excel 2003. Namespaces are stripped, cells may carry ss:Index
//     attributes that skip columns, and the header row is detected as the
//     string-typed row with the most cells.
//   - XLSX (.xlsx): read through excelize; the first sheet is used and the
//     header row is the non-numeric row with the most cells.
//
// The reader performs no validation beyond what the underlying format
// parser enforces; malformed input surfaces as the parser's own error.
//
// =============================================================================

package spreadml

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/SebastianGajardo98/pypsa-scripts/internal/xmltree"
)

// Sheet is the parsed content of one spreadsheet: a header row and the data
// rows below it. Every data row has exactly len(Headers) cells; short rows
// are padded with empty strings and long rows are truncated.
type Sheet struct {
	// Headers contains the column names from the detected header row.
	Headers []string

	// Rows contains the data rows, aligned to Headers.
	Rows [][]string

	// SourceFile is the path the sheet was read from.
	SourceFile string
}

// Read parses the spreadsheet at path. Files ending in .xlsx are read with
// excelize; anything else is treated as SpreadsheetML.
func Read(path string) (*Sheet, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readXLSX(path)
	}
	return readSpreadsheetML(path)
}

// =============================================================================
// SPREADSHEETML
// =============================================================================

// readSpreadsheetML parses an Excel 2003 XML workbook.
func readSpreadsheetML(path string) (*Sheet, error) {
	doc, err := xmltree.ParseFile(path)
	if err != nil {
		return nil, err
	}

	// Collect every Worksheet/Table/Row in document order.
	var rows []*xmltree.Element
	for _, ws := range doc.Descendants("Worksheet") {
		for _, table := range ws.FindAll("Table") {
			rows = append(rows, table.FindAll("Row")...)
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows found in %s", path)
	}

	// Pick the header: the string-only row with the most cells wins.
	headerIdx := 0
	bestString, bestLen := -1, -1
	for idx, row := range rows {
		isString, n := stringRowLength(row)
		if isString > bestString || (isString == bestString && n > bestLen) {
			headerIdx, bestString, bestLen = idx, isString, n
		}
	}
	headers := parseRow(rows[headerIdx])

	sheet := &Sheet{Headers: headers, SourceFile: path}
	for _, row := range rows[headerIdx+1:] {
		values := parseRow(row)
		if allEmpty(values) {
			continue
		}
		sheet.Rows = append(sheet.Rows, alignRow(values, len(headers)))
	}
	return sheet, nil
}

// parseRow extracts ordered cell values from a SpreadsheetML Row element,
// honoring the optional ss:Index attribute that skips columns.
func parseRow(row *xmltree.Element) []string {
	var cells []string
	colIdx := 1
	for _, cell := range row.FindAll("Cell") {
		if indexAttr := findIndexAttr(cell); indexAttr != "" {
			if target, err := strconv.Atoi(indexAttr); err == nil {
				for colIdx < target {
					cells = append(cells, "")
					colIdx++
				}
			}
		}
		cells = append(cells, cellText(cell))
		colIdx++
	}
	return cells
}

// findIndexAttr returns the value of the first attribute whose local name
// ends in "Index". Namespaces are already stripped by the tree parser, but
// some exporters write the raw prefixed form.
func findIndexAttr(cell *xmltree.Element) string {
	for _, a := range cell.Attrs {
		if strings.HasSuffix(a.Name, "Index") {
			return a.Value
		}
	}
	return ""
}

// cellText returns the text of the Cell's Data child, or "".
func cellText(cell *xmltree.Element) string {
	data := cell.Find("Data")
	if data == nil {
		return ""
	}
	return data.Text
}

// stringRowLength returns (1, cellCount) when every cell in the row carries
// string-typed data, (0, cellCount) otherwise. Used to rank header
// candidates.
func stringRowLength(row *xmltree.Element) (int, int) {
	cells := row.FindAll("Cell")
	if len(cells) == 0 {
		return 0, 0
	}
	for _, cell := range cells {
		data := cell.Find("Data")
		if data == nil {
			return 0, len(cells)
		}
		typ := data.Attr("Type")
		if typ == "" {
			typ = data.Attr("type")
		}
		if typ != "String" {
			return 0, len(cells)
		}
	}
	return 1, len(cells)
}

// =============================================================================
// XLSX
// =============================================================================

// readXLSX parses the first sheet of an xlsx workbook.
func readXLSX(path string) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in %s", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows found in %s", path)
	}

	// Header detection mirrors the SpreadsheetML rule: xlsx cells carry no
	// type marker here, so "string-typed" means "not parseable as a number".
	headerIdx := 0
	bestString, bestLen := -1, -1
	for idx, row := range rows {
		isString, n := textRowLength(row)
		if isString > bestString || (isString == bestString && n > bestLen) {
			headerIdx, bestString, bestLen = idx, isString, n
		}
	}
	headers := rows[headerIdx]

	sheet := &Sheet{Headers: headers, SourceFile: path}
	for _, row := range rows[headerIdx+1:] {
		if allEmpty(row) {
			continue
		}
		sheet.Rows = append(sheet.Rows, alignRow(row, len(headers)))
	}
	return sheet, nil
}

// textRowLength returns (1, cellCount) when the row is non-empty and none
// of its cells parse as a number.
func textRowLength(row []string) (int, int) {
	if len(row) == 0 {
		return 0, 0
	}
	for _, cell := range row {
		if cell == "" {
			continue
		}
		if _, err := strconv.ParseFloat(cell, 64); err == nil {
			return 0, len(row)
		}
	}
	return 1, len(row)
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

func allEmpty(values []string) bool {
	for _, v := range values {
		if v != "" {
			return false
		}
	}
	return true
}

// alignRow pads or truncates values to exactly width cells.
func alignRow(values []string, width int) []string {
	out := make([]string, width)
	copy(out, values)
	return out
}
