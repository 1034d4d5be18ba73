package parser

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/models"
)

// TableDetectionParams holds parameters for table detection.
type TableDetectionParams struct {
	DensityMin       float64
	MinNonemptyCells int
}

// DefaultTableParams returns default table detection parameters.
func DefaultTableParams() TableDetectionParams {
	return TableDetectionParams{
		DensityMin:       0.04,
		MinNonemptyCells: 2,
	}
}

// DetectTable finds the size chart table on a sheet without a recorded
// range: the box around every non-blank cell, whose first row is the header
// and whose first column holds the row labels. Returns nil when the sheet
// holds too little data or only a header with no labelled row beneath it.
func DetectTable(f *excelize.File, sheetName string, params TableDetectionParams) (*models.CellRange, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	b, filled, ok := scanSheet(rows)
	if !ok || filled < params.MinNonemptyCells {
		return nil, nil
	}
	if float64(filled)/float64(b.cells()) < params.DensityMin {
		return nil, nil
	}
	if labelledRows(rows, b) == 0 {
		return nil, nil
	}

	return &models.CellRange{
		Sheet: sheetName,
		R1:    b.r1 + 1,
		C1:    b.c1 + 1,
		R2:    b.r2 + 1,
		C2:    b.c2 + 1,
	}, nil
}

// box is an inclusive, 0-based region of GetRows output.
type box struct {
	r1, r2, c1, c2 int
}

func (b box) cells() int {
	return (b.r2 - b.r1 + 1) * (b.c2 - b.c1 + 1)
}

// scanSheet returns the box around the non-blank cells of rows and how many
// there are. Whitespace-only cells count as blank, as they do for row
// labels. ok is false for a blank sheet.
func scanSheet(rows [][]string) (b box, filled int, ok bool) {
	for r, row := range rows {
		for c, cell := range row {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			if !ok {
				b, ok = box{r1: r, r2: r, c1: c, c2: c}, true
			}
			b.r1, b.r2 = min(b.r1, r), max(b.r2, r)
			b.c1, b.c2 = min(b.c1, c), max(b.c2, c)
			filled++
		}
	}
	return b, filled, ok
}

// labelledRows counts the rows below the header row of b that carry a row
// label in b's first column. ReadTable skips the others.
func labelledRows(rows [][]string, b box) int {
	n := 0
	for r := b.r1 + 1; r <= b.r2 && r < len(rows); r++ {
		if b.c1 < len(rows[r]) && strings.TrimSpace(rows[r][b.c1]) != "" {
			n++
		}
	}
	return n
}
