package sizegrid

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/export"
	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/models"
)

func TestImport_RoundTrip(t *testing.T) {
	gw := newMemGateway()
	gw.charts["c1"] = sampleChart()

	s := NewSession(gw, DefaultOptions())
	require.NoError(t, s.Load(context.Background(), "c1"))

	data, err := export.Spreadsheet(s.DisplayTables(), s.opts.Comparator())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "chart.xlsx")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	chart, err := Import(path, DefaultImportOptions())
	require.NoError(t, err)

	assert.Equal(t, "Tee", chart.Name)
	assert.Equal(t, "cm", chart.Unit)
	assert.Equal(t, []string{"S", "M"}, chart.Measurements.Columns())
	assert.Equal(t, models.FormScalar, chart.GradingRules.Form)
	assert.Equal(t, models.Text("1.5"), chart.GradingRules.Rows[0].Value)

	// importing into a fresh session reproduces the display tables
	s2 := NewSession(gw, DefaultOptions())
	_, err = s2.ApplyLoad(LoadResult{Request: s2.BeginLoad(""), Data: chart})
	require.NoError(t, err)
	assert.Equal(t, s.DisplayTables(), s2.DisplayTables())
}

func TestImport_DetectsUnnamedTables(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet("Size Conversion")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Size Conversion", "C3", &[]interface{}{"Size System", "S", "M"}))
	require.NoError(t, f.SetSheetRow("Size Conversion", "C4", &[]interface{}{"EU", 36, 38}))
	require.NoError(t, f.SetSheetRow("Size Conversion", "C5", &[]interface{}{"US", 4, 6}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	chart, err := ImportReader(bytes.NewReader(buf.Bytes()), DefaultImportOptions())
	require.NoError(t, err)

	conv := chart.SizeConversion
	require.Equal(t, 2, conv.Len())
	assert.Equal(t, "eu", conv.Rows[0].Key)
	v, ok := conv.Rows[1].Lookup("M")
	require.True(t, ok)
	assert.Equal(t, models.Number(6), v)
	assert.Equal(t, 0, chart.Measurements.Len())
}

func TestImport_FileNotFound(t *testing.T) {
	_, err := Import(filepath.Join(t.TempDir(), "missing.xlsx"), DefaultImportOptions())
	require.ErrorIs(t, err, ErrFileNotFound)
}
