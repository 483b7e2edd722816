package converter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SebastianGajardo98/pypsa-scripts/internal/xmltree"
)

const demandCSV = `time,DE,FR
01/01/2013 00:00,100.5,200.5
01/01/2013 01:00,101.5,201.5
01/01/2013 02:00,102.5,202.5
`

func writeDemandCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "electricity_demand.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDemand(t *testing.T) {
	input := writeDemandCSV(t, demandCSV)
	output := filepath.Join(t.TempDir(), "demand.xml")

	rows, err := Demand(input, output, Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, rows)

	doc, err := xmltree.ParseFile(output)
	require.NoError(t, err)
	assert.Equal(t, "root", doc.Tag)

	periods := doc.FindAll("period")
	require.Len(t, periods, 3)

	first := periods[0]
	assert.Equal(t, "2013-01-01 00:00:00", first.Attr("timestamp"))
	require.NotNil(t, first.Find("DE"))
	require.NotNil(t, first.Find("FR"))
	assert.Equal(t, "100.5", first.Find("DE").Text)
	assert.Equal(t, "202.5", periods[2].Find("FR").Text)
}

func TestDemandPadDay(t *testing.T) {
	input := writeDemandCSV(t, demandCSV)
	output := filepath.Join(t.TempDir(), "demand.xml")

	rows, err := Demand(input, output, Options{PadDay: true})
	require.NoError(t, err)
	assert.Equal(t, 24, rows)

	doc, err := xmltree.ParseFile(output)
	require.NoError(t, err)
	periods := doc.FindAll("period")
	require.Len(t, periods, 24)

	// Padded rows duplicate the last values with incremented timestamps.
	assert.Equal(t, "2013-01-01 03:00:00", periods[3].Attr("timestamp"))
	assert.Equal(t, "2013-01-01 23:00:00", periods[23].Attr("timestamp"))
	assert.Equal(t, "102.5", periods[23].Find("DE").Text)
}

func TestDemandFullDayNotPadded(t *testing.T) {
	content := "time,DE\n"
	ts := []string{
		"01/01/2013 00:00", "01/01/2013 01:00", "01/01/2013 02:00", "01/01/2013 03:00",
		"01/01/2013 04:00", "01/01/2013 05:00", "01/01/2013 06:00", "01/01/2013 07:00",
		"01/01/2013 08:00", "01/01/2013 09:00", "01/01/2013 10:00", "01/01/2013 11:00",
		"01/01/2013 12:00", "01/01/2013 13:00", "01/01/2013 14:00", "01/01/2013 15:00",
		"01/01/2013 16:00", "01/01/2013 17:00", "01/01/2013 18:00", "01/01/2013 19:00",
		"01/01/2013 20:00", "01/01/2013 21:00", "01/01/2013 22:00", "01/01/2013 23:00",
	}
	for _, s := range ts {
		content += s + ",1.0\n"
	}
	input := writeDemandCSV(t, content)
	output := filepath.Join(t.TempDir(), "demand.xml")

	rows, err := Demand(input, output, Options{PadDay: true})
	require.NoError(t, err)
	assert.Equal(t, 24, rows)
}

func TestDemandErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Demand(filepath.Join(t.TempDir(), "absent.csv"), filepath.Join(t.TempDir(), "out.xml"), Options{})
		assert.Error(t, err)
	})

	t.Run("malformed header", func(t *testing.T) {
		input := writeDemandCSV(t, "time\n")
		_, err := Demand(input, filepath.Join(t.TempDir(), "out.xml"), Options{})
		assert.Error(t, err)
	})

	t.Run("bad timestamp", func(t *testing.T) {
		input := writeDemandCSV(t, "time,DE\n2013-01-01,1.0\n")
		_, err := Demand(input, filepath.Join(t.TempDir(), "out.xml"), Options{})
		assert.Error(t, err)
	})
}
