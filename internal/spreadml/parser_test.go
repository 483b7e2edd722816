package spreadml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// spreadsheetMLFixture has a title row above the header, a skipped column
// via ss:Index, and a blank row that must be dropped.
const spreadsheetMLFixture = `<?xml version="1.0"?>
<Workbook xmlns="urn:schemas-microsoft-com:office:spreadsheet"
          xmlns:ss="urn:schemas-microsoft-com:office:spreadsheet">
  <Worksheet ss:Name="Sheet1">
    <Table>
      <Row>
        <Cell><Data ss:Type="String">Fuel cost report 2020-2050</Data></Cell>
      </Row>
      <Row>
        <Cell><Data ss:Type="String">year</Data></Cell>
        <Cell><Data ss:Type="String">period</Data></Cell>
        <Cell><Data ss:Type="String">Coal</Data></Cell>
        <Cell><Data ss:Type="String">Gas</Data></Cell>
      </Row>
      <Row>
        <Cell><Data ss:Type="Number">2020</Data></Cell>
        <Cell><Data ss:Type="Number">1</Data></Cell>
        <Cell ss:Index="4"><Data ss:Type="Number">23.4</Data></Cell>
      </Row>
      <Row>
        <Cell><Data ss:Type="Number">2020</Data></Cell>
        <Cell><Data ss:Type="Number">2</Data></Cell>
        <Cell><Data ss:Type="Number">11.1</Data></Cell>
        <Cell><Data ss:Type="Number">22.2</Data></Cell>
      </Row>
      <Row>
        <Cell><Data ss:Type="String"></Data></Cell>
      </Row>
    </Table>
  </Worksheet>
</Workbook>`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadSpreadsheetML(t *testing.T) {
	path := writeFixture(t, "fuel_cost.xml", spreadsheetMLFixture)

	sheet, err := Read(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"year", "period", "Coal", "Gas"}, sheet.Headers)
	require.Len(t, sheet.Rows, 2)

	// ss:Index="4" skips the Coal column.
	assert.Equal(t, []string{"2020", "1", "", "23.4"}, sheet.Rows[0])
	assert.Equal(t, []string{"2020", "2", "11.1", "22.2"}, sheet.Rows[1])
}

func TestReadSpreadsheetMLHeaderDetection(t *testing.T) {
	// The header is the string-only row with the most cells, not the first
	// row.
	path := writeFixture(t, "input.xml", spreadsheetMLFixture)
	sheet, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "year", sheet.Headers[0])
}

func TestReadSpreadsheetMLNoRows(t *testing.T) {
	path := writeFixture(t, "empty.xml", `<Workbook><Worksheet><Table/></Worksheet></Workbook>`)
	_, err := Read(path)
	assert.Error(t, err)
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "absent.xml"))
	assert.Error(t, err)
}

func TestReadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"time", "DE", "FR"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"1", 10.5, 20.5}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"2", 11.5, 21.5}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	sheet, err := Read(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"time", "DE", "FR"}, sheet.Headers)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "10.5", sheet.Rows[0][1])
	assert.Equal(t, "21.5", sheet.Rows[1][2])
}

func TestAlignRow(t *testing.T) {
	assert.Equal(t, []string{"a", "", ""}, alignRow([]string{"a"}, 3))
	assert.Equal(t, []string{"a", "b"}, alignRow([]string{"a", "b", "c"}, 2))
}
