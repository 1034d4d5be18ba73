package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/models"
	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/parser"
	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/sizeorder"
)

func testChart() models.ChartData {
	return models.ChartData{
		Measurements: models.Table{Rows: []models.Row{
			{Key: "chest", Cells: []models.Cell{
				{Column: "XL", Value: models.Number(110)},
				{Column: "S", Value: models.Number(90)},
				{Column: "M", Value: models.Text("")},
			}},
		}},
		GradingRules: models.Table{Form: models.FormScalar, Rows: []models.Row{
			{Key: "chest", Value: models.Text("2cm")},
		}},
		ChartMetadata: models.ChartMetadata{Name: "Basic Tee", Market: "EU", Unit: "cm"},
	}
}

func TestSpreadsheet(t *testing.T) {
	data, err := Spreadsheet(testChart(), sizeorder.New(nil))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Equal(t, []string{"Chart", "Measurements", "Grading Rules", "Tolerance", "Size Conversion"}, sheets)

	header, err := f.GetRows("Measurements")
	require.NoError(t, err)
	assert.Equal(t, []string{"Measurement Point", "S", "M", "XL"}, header[0])
	assert.Equal(t, []string{"chest", "90", "", "110"}, header[1])

	grading, err := f.GetRows("Grading Rules")
	require.NoError(t, err)
	assert.Equal(t, []string{"Grading Rule", "Value"}, grading[0])
	assert.Equal(t, []string{"chest", "2cm"}, grading[1])

	ranges := parser.ExtractTableRanges(f)
	require.Len(t, ranges, len(models.Shapes))
	assert.Equal(t, models.CellRange{Sheet: "Measurements", R1: 1, C1: 1, R2: 2, C2: 4}, ranges[models.ShapeMeasurements])
	assert.Equal(t, models.CellRange{Sheet: "Tolerance", R1: 1, C1: 1, R2: 1, C2: 2}, ranges[models.ShapeTolerance])

	meta, err := parser.ReadMetadata(f)
	require.NoError(t, err)
	assert.Equal(t, testChart().ChartMetadata, meta)
}

func TestDocument(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 200))
	for x := 0; x < 400; x++ {
		img.Set(x, 100, color.Black)
	}

	opts := DefaultDocumentOptions()
	data, err := Document(testChart(), []image.Image{img}, opts)
	require.NoError(t, err)

	page, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	b := page.Bounds()
	assert.Equal(t, MMToPixels(opts.PageWidthMM), b.Dx())
	assert.Greater(t, b.Dy(), 200)
}

func TestDocument_WideTableGrowsPage(t *testing.T) {
	chart := models.ChartData{}
	row := models.Row{Key: "chest"}
	for i := 0; i < 60; i++ {
		row.Cells = append(row.Cells, models.Cell{Column: string(rune('A'+i%26)) + string(rune('a'+i/26)), Value: models.Number(float64(i))})
	}
	chart.Measurements = models.Table{Rows: []models.Row{row}}

	opts := DefaultDocumentOptions()
	data, err := Document(chart, nil, opts)
	require.NoError(t, err)

	page, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Greater(t, page.Bounds().Dx(), MMToPixels(opts.PageWidthMM))
}

func TestUnits(t *testing.T) {
	assert.Equal(t, 96, MMToPixels(25.4))
	assert.Equal(t, 793, MMToPixels(210))

	assert.InDelta(t, 8.0, ColumnWidth("S"), 0)
	assert.InDelta(t, 19.0, ColumnWidth("Measurement Point", "chest"), 0)
}
