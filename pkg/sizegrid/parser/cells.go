// Package parser reads size chart tables from Excel workbooks.
package parser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/grid"
	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/models"
)

// MetadataSheet is the sheet holding name, market and unit.
const MetadataSheet = "Chart"

// ReadTable reads the table inside rng. The first row holds the row label
// header followed by the column labels; each following row starts with the
// row label. Row labels are normalized into row keys and blank labels are
// skipped. Scalar shapes read the first value column as the row value.
func ReadTable(f *excelize.File, rng models.CellRange, shape models.TableShape) (models.Table, error) {
	rows, err := f.GetRows(rng.Sheet)
	if err != nil {
		return models.Table{}, err
	}
	if rng.R1 < 1 || rng.C1 < 1 || rng.R2 < rng.R1 || rng.C2 < rng.C1 {
		return models.Table{}, fmt.Errorf("invalid range %+v", rng)
	}

	header := cellsInRange(rows, rng.R1, rng.C1, rng.C2)
	var columns []string
	for _, label := range header[1:] {
		columns = append(columns, strings.TrimSpace(label))
	}

	scalar := shape.Config().IsScalar
	tbl := models.Table{}
	if scalar {
		tbl.Form = models.FormScalar
	}

	for r := rng.R1 + 1; r <= rng.R2; r++ {
		cells := cellsInRange(rows, r, rng.C1, rng.C2)
		label := strings.TrimSpace(cells[0])
		if label == "" {
			continue
		}

		row := models.Row{Key: grid.RowKey(label)}
		if scalar {
			if len(cells) > 1 {
				row.Value = cellValue(f, rng.Sheet, rng.C1+1, r, cells[1])
			}
			tbl.Rows = append(tbl.Rows, row)
			continue
		}

		for i, col := range columns {
			if col == "" {
				continue
			}
			v := cellValue(f, rng.Sheet, rng.C1+i+1, r, cells[i+1])
			row.Cells = append(row.Cells, models.Cell{Column: col, Value: v})
		}
		tbl.Rows = append(tbl.Rows, row)
	}

	return tbl, nil
}

// cellsInRange returns the cells of 1-based row r between columns c1 and c2,
// padding short rows with empty strings.
func cellsInRange(rows [][]string, r, c1, c2 int) []string {
	out := make([]string, c2-c1+1)
	if r-1 >= len(rows) {
		return out
	}
	row := rows[r-1]
	for c := c1; c <= c2; c++ {
		if c-1 < len(row) {
			out[c-c1] = row[c-1]
		}
	}
	return out
}

// ReadMetadata reads name, market and unit from the metadata sheet.
// A workbook without that sheet yields empty metadata.
func ReadMetadata(f *excelize.File) (models.ChartMetadata, error) {
	var meta models.ChartMetadata
	if idx, err := f.GetSheetIndex(MetadataSheet); err != nil || idx < 0 {
		return meta, nil
	}

	rows, err := f.GetRows(MetadataSheet)
	if err != nil {
		return meta, err
	}
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		value := strings.TrimSpace(row[1])
		switch strings.ToLower(strings.TrimSpace(row[0])) {
		case "name":
			meta.Name = value
		case "market":
			meta.Market = value
		case "unit":
			meta.Unit = value
		}
	}
	return meta, nil
}

// cellValue converts a cell into a Value. Cells stored as strings stay
// text even when they look numeric; everything else is parsed.
func cellValue(f *excelize.File, sheet string, col, row int, raw string) models.Value {
	if raw == "" {
		return models.Value{}
	}
	if name, err := excelize.CoordinatesToCellName(col, row); err == nil {
		typ, err := f.GetCellType(sheet, name)
		if err == nil && (typ == excelize.CellTypeSharedString || typ == excelize.CellTypeInlineString) {
			return models.Text(raw)
		}
	}
	return parseValue(raw)
}

// parseValue converts a cell string into a Value, numbers when possible.
func parseValue(s string) models.Value {
	return models.ParseValue(strings.TrimSpace(s))
}
