package sizegrid

import (
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/models"
	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/parser"
)

// ImportOptions configures workbook import.
type ImportOptions struct {
	// Detect finds tables on sheets that carry no recorded range.
	Detect parser.TableDetectionParams
}

// DefaultImportOptions returns default import options.
func DefaultImportOptions() ImportOptions {
	return ImportOptions{Detect: parser.DefaultTableParams()}
}

// Import reads a size chart from an xlsx workbook.
func Import(path string, opts ImportOptions) (models.ChartData, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return models.ChartData{}, ErrFileNotFound
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return models.ChartData{}, err
	}
	defer f.Close()

	return importFile(f, opts)
}

// ImportReader reads a size chart from xlsx bytes.
func ImportReader(r io.Reader, opts ImportOptions) (models.ChartData, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return models.ChartData{}, err
	}
	defer f.Close()

	return importFile(f, opts)
}

func importFile(f *excelize.File, opts ImportOptions) (models.ChartData, error) {
	var chart models.ChartData

	meta, err := parser.ReadMetadata(f)
	if err != nil {
		return chart, NewImportError(parser.MetadataSheet, "", err)
	}
	chart.ChartMetadata = meta

	// Recorded ranges win; otherwise look for a sheet named after the table.
	ranges := parser.ExtractTableRanges(f)
	for _, shape := range models.Shapes {
		rng, ok := ranges[shape]
		if !ok {
			sheet := shape.Config().Title
			if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
				continue
			}
			detected, err := parser.DetectTable(f, sheet, opts.Detect)
			if err != nil {
				return chart, NewImportError(sheet, shape, err)
			}
			if detected == nil {
				continue
			}
			rng = *detected
		}

		tbl, err := parser.ReadTable(f, rng, shape)
		if err != nil {
			return chart, NewImportError(rng.Sheet, shape, err)
		}
		chart.SetTable(shape, tbl)
	}

	return chart, nil
}
