package parser

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/models"
)

// DefinedNamePrefix prefixes the workbook defined names that record where
// each chart table lives, e.g. "sizegrid_measurements".
const DefinedNamePrefix = "sizegrid_"

// DefinedName returns the defined name used for shape.
func DefinedName(shape models.TableShape) string {
	return DefinedNamePrefix + string(shape)
}

// ExtractTableRanges reads the table ranges recorded as defined names.
// Returns a map of table shape to its range.
func ExtractTableRanges(f *excelize.File) map[models.TableShape]models.CellRange {
	result := make(map[models.TableShape]models.CellRange)

	for _, dn := range f.GetDefinedName() {
		name := strings.ToLower(dn.Name)
		if !strings.HasPrefix(name, DefinedNamePrefix) {
			continue
		}
		shape, err := models.ParseTableShape(strings.TrimPrefix(name, DefinedNamePrefix))
		if err != nil {
			continue
		}
		if rng := parseRangeReference(dn.RefersTo); rng != nil {
			result[shape] = *rng
		}
	}

	return result
}

// RangeReference formats rng as an absolute reference: 'Sheet'!$A$1:$D$10.
func RangeReference(rng models.CellRange) (string, error) {
	start, err := excelize.CoordinatesToCellName(rng.C1, rng.R1, true)
	if err != nil {
		return "", err
	}
	end, err := excelize.CoordinatesToCellName(rng.C2, rng.R2, true)
	if err != nil {
		return "", err
	}
	sheet := "'" + strings.ReplaceAll(rng.Sheet, "'", "''") + "'"
	return sheet + "!" + start + ":" + end, nil
}

// parseRangeReference parses a reference string.
// Format: 'SheetName'!$A$1:$D$10 or SheetName!$A$1:$D$10
func parseRangeReference(ref string) *models.CellRange {
	ref = strings.TrimSpace(strings.TrimPrefix(ref, "="))

	idx := strings.LastIndex(ref, "!")
	if idx < 0 {
		return nil
	}
	sheet := ref[:idx]
	if strings.HasPrefix(sheet, "'") && strings.HasSuffix(sheet, "'") && len(sheet) >= 2 {
		sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
	}

	rng := parseRangeToArea(ref[idx+1:])
	if rng == nil {
		return nil
	}
	rng.Sheet = sheet
	return rng
}

// parseRangeToArea parses a range string like $A$1:$D$10.
func parseRangeToArea(rangeStr string) *models.CellRange {
	// Remove $ signs
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) != 2 {
		return nil
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return nil
	}

	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return nil
	}

	return &models.CellRange{
		R1: startRow,
		C1: startCol,
		R2: endRow,
		C2: endCol,
	}
}
