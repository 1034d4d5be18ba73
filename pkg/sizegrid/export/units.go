package export

import "unicode/utf8"

// PixelsPerInch is the rendering resolution of document exports.
const PixelsPerInch = 96

// MMPerInch is the number of millimetres per inch.
const MMPerInch = 25.4

// MMToPixels converts millimetres to pixels at 96 DPI.
func MMToPixels(mm float64) int {
	return int(mm / MMPerInch * PixelsPerInch)
}

// minColumnWidth is the narrowest spreadsheet column, in characters.
const minColumnWidth = 8

// ColumnWidth returns a spreadsheet column width (in characters) wide
// enough for the longest of labels.
func ColumnWidth(labels ...string) float64 {
	longest := 0
	for _, l := range labels {
		if n := utf8.RuneCountInString(l); n > longest {
			longest = n
		}
	}
	return float64(max(longest+2, minColumnWidth))
}
