package xmltree

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	root := New("root")
	row := root.Child("row")
	row.ChildText("period", "1")
	row.ChildText("DE", "42.5")
	root.Child("empty")

	got := string(root.Encode())

	want := `<?xml version='1.0' encoding='utf-8'?>
<root>
  <row>
    <period>1</period>
    <DE>42.5</DE>
  </row>
  <empty />
</root>
`
	assert.Equal(t, want, got)
}

func TestEncodeEscapesSpecialCharacters(t *testing.T) {
	root := New("data")
	root.ChildText("name", `a<b&"c"`)
	root.Child("row").SetAttr("label", "x<y")

	got := string(root.Encode())
	assert.Contains(t, got, "a&lt;b&amp;")
	assert.Contains(t, got, "label=\"x&lt;y\"")
	assert.NotContains(t, got, "a<b")
}

func TestRoundTrip(t *testing.T) {
	root := New("root")
	for i := 0; i < 3; i++ {
		row := root.Child("row")
		row.ChildText("period", "1")
		row.ChildText("DE", "1.5")
		row.ChildText("FR", "2.5")
	}

	parsed, err := Parse(strings.NewReader(string(root.Encode())))
	require.NoError(t, err)

	assert.Equal(t, "root", parsed.Tag)
	rows := parsed.FindAll("row")
	require.Len(t, rows, 3)
	for _, row := range rows {
		require.Len(t, row.Children, 3)
		assert.Equal(t, "period", row.Children[0].Tag)
		assert.Equal(t, "DE", row.Children[1].Tag)
		assert.Equal(t, "2.5", row.Find("FR").Text)
	}
}

func TestParseStripsNamespaces(t *testing.T) {
	doc := `<?xml version="1.0"?>
<ss:Workbook xmlns:ss="urn:schemas-microsoft-com:office:spreadsheet">
  <ss:Worksheet ss:Name="Sheet1">
    <ss:Table>
      <ss:Row><ss:Cell ss:Index="2"><ss:Data ss:Type="String">x</ss:Data></ss:Cell></ss:Row>
    </ss:Table>
  </ss:Worksheet>
</ss:Workbook>`

	root, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, "Workbook", root.Tag)
	rows := root.Descendants("Row")
	require.Len(t, rows, 1)
	cell := rows[0].Find("Cell")
	require.NotNil(t, cell)
	assert.Equal(t, "2", cell.Attr("Index"))
	assert.Equal(t, "x", cell.Find("Data").Text)
	assert.Equal(t, "String", cell.Find("Data").Attr("Type"))
}

func TestParseTextWithChildren(t *testing.T) {
	doc := `<data><time>2013-01-01 00:00:00<bus>1.0</bus></time></data>`
	root, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)

	timeEl := root.Find("time")
	require.NotNil(t, timeEl)
	assert.Equal(t, "2013-01-01 00:00:00", timeEl.Text)
	assert.Equal(t, "1.0", timeEl.Find("bus").Text)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "empty document", doc: ""},
		{name: "unclosed element", doc: "<root><row>"},
		{name: "garbage", doc: "not xml at all <"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestWriteFileCreatesParentDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "out.xml")

	root := New("root")
	root.Child("row").ChildText("period", "1")
	require.NoError(t, root.WriteFile(path))

	parsed, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "root", parsed.Tag)
	assert.Len(t, parsed.FindAll("row"), 1)
}

func TestSetAttrReplaces(t *testing.T) {
	el := New("period")
	el.SetAttr("timestamp", "a")
	el.SetAttr("timestamp", "b")
	assert.Len(t, el.Attrs, 1)
	assert.Equal(t, "b", el.Attr("timestamp"))
	assert.Equal(t, "", el.Attr("missing"))
}
