// Package export renders size charts into spreadsheet and document bytes.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/grid"
	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/models"
	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/parser"
	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/sizeorder"
)

// displayTable brings t into display form with columns in size order,
// regardless of the form it arrived in.
func displayTable(shape models.TableShape, t models.Table, cmp sizeorder.Comparator) models.Table {
	return grid.FromTable(shape, t, grid.WithComparator(cmp)).Denormalize()
}

// Spreadsheet renders chart as an xlsx workbook: a metadata sheet plus one
// sheet per table. Each table's range is recorded as a workbook defined
// name so the workbook can be imported again.
func Spreadsheet(chart models.ChartData, cmp sizeorder.Comparator) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", parser.MetadataSheet); err != nil {
		return nil, err
	}
	if err := writeMetadata(f, chart.ChartMetadata); err != nil {
		return nil, fmt.Errorf("write metadata: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E7E6E6"}},
	})
	if err != nil {
		return nil, err
	}

	for _, shape := range models.Shapes {
		if err := writeTable(f, shape, displayTable(shape, chart.Table(shape), cmp), header); err != nil {
			return nil, fmt.Errorf("write %s: %w", shape, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeMetadata(f *excelize.File, meta models.ChartMetadata) error {
	rows := [][]interface{}{
		{"Name", meta.Name},
		{"Market", meta.Market},
		{"Unit", meta.Unit},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(parser.MetadataSheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SetColWidth(parser.MetadataSheet, "A", "B", ColumnWidth(meta.Name, meta.Market, "Market"))
}

func writeTable(f *excelize.File, shape models.TableShape, t models.Table, headerStyle int) error {
	cfg := shape.Config()
	sheet := cfg.Title
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	columns := t.Columns()
	if cfg.IsScalar {
		columns = []string{models.ValueColumn}
	}

	header := []interface{}{cfg.RowLabel}
	labels := []string{cfg.RowLabel}
	for _, col := range columns {
		header = append(header, col)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, r := range t.Rows {
		row := []interface{}{r.Key}
		labels = append(labels, r.Key)
		for _, col := range columns {
			v, _ := r.Lookup(col)
			row = append(row, v.Interface())
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	rng := models.CellRange{Sheet: sheet, R1: 1, C1: 1, R2: len(t.Rows) + 1, C2: len(columns) + 1}
	end, err := excelize.CoordinatesToCellName(rng.C2, 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", end, headerStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "A", ColumnWidth(labels...)); err != nil {
		return err
	}

	ref, err := parser.RangeReference(rng)
	if err != nil {
		return err
	}
	return f.SetDefinedName(&excelize.DefinedName{
		Name:     parser.DefinedName(shape),
		RefersTo: ref,
	})
}
