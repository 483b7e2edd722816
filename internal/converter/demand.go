// =============================================================================
// PyPSA to H2RES Export Converter - Electricity Demand Converter
// =============================================================================
//
// Converts the PyPSA-Eur electricity demand CSV into the H2RES demand
// document. The CSV header is `time,CC1,CC2,...` with one country-code
// column per zone; each data row becomes
//
//   <period timestamp="2013-01-01 00:00:00">
//     <DE>54321.0</DE>
//     <FR>43210.0</FR>
//   </period>
//
// Input timestamps use the US form MM/DD/YYYY HH:MM.
//
// =============================================================================

package converter

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/SebastianGajardo98/pypsa-scripts/internal/xmltree"
)

// demandInputLayout is the timestamp format of the demand CSV.
const demandInputLayout = "01/02/2006 15:04"

// Demand converts the electricity demand CSV at inputPath into an XML
// document at outputPath. It returns the number of period rows written.
func Demand(inputPath, outputPath string, opts Options) (int, error) {
	f, err := os.Open(inputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(bufio.NewReader(f))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read CSV header from %s: %w", inputPath, err)
	}
	if len(header) < 2 {
		return 0, fmt.Errorf("CSV header missing or malformed in %s", inputPath)
	}
	countryCodes := header[1:]

	root := xmltree.New("root")
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read CSV row from %s: %w", inputPath, err)
		}
		if len(record) < 2 {
			continue
		}

		ts, err := time.Parse(demandInputLayout, record[0])
		if err != nil {
			return 0, fmt.Errorf("failed to parse timestamp %q in %s: %w", record[0], inputPath, err)
		}

		periodEl := root.Child("period").SetAttr("timestamp", ts.Format(timestampLayout))
		values := record[1:]
		for i, code := range countryCodes {
			if i >= len(values) {
				break
			}
			periodEl.ChildText(code, values[i])
		}
	}

	if opts.PadDay {
		padDemandRows(root)
	}

	if err := root.WriteFile(outputPath); err != nil {
		return 0, err
	}
	return len(root.Children), nil
}

// padDemandRows completes a trailing partial day by duplicating the last
// period with hourly-incremented timestamps. Rows whose timestamp cannot
// be parsed back are left alone.
func padDemandRows(root *xmltree.Element) {
	periods := root.FindAll("period")
	if len(periods) == 0 {
		return
	}
	missing := paddedLen(len(periods)) - len(periods)
	if missing == 0 {
		return
	}

	last := periods[len(periods)-1]
	lastTs, err := time.Parse(timestampLayout, last.Attr("timestamp"))
	if err != nil {
		return
	}

	for i := 1; i <= missing; i++ {
		ts := lastTs.Add(time.Duration(i) * time.Hour)
		periodEl := root.Child("period").SetAttr("timestamp", ts.Format(timestampLayout))
		for _, child := range last.Children {
			periodEl.ChildText(child.Tag, child.Text)
		}
	}
}
