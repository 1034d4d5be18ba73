package export

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/models"
	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/sizeorder"
)

// DocumentOptions controls the page layout of Document.
type DocumentOptions struct {
	// PageWidthMM is the minimum page width; wide tables grow the page.
	PageWidthMM float64
	// MarginMM is the page margin on every side.
	MarginMM float64
	// MaxImageHeight caps the rendered height of each reference image, in pixels.
	MaxImageHeight int
	// Comparator orders matrix columns.
	Comparator sizeorder.Comparator
}

// DefaultDocumentOptions returns an A4-wide layout.
func DefaultDocumentOptions() DocumentOptions {
	return DocumentOptions{
		PageWidthMM:    210,
		MarginMM:       12,
		MaxImageHeight: 320,
		Comparator:     sizeorder.New(nil),
	}
}

const (
	lineHeight  = 20.0
	cellPadding = 10.0
	titleGap    = 12.0
	sectionGap  = 24.0
)

// layout is a table prepared for drawing.
type layout struct {
	title  string
	header []string
	rows   [][]string
	widths []float64
}

func (l layout) width() float64 {
	total := 0.0
	for _, w := range l.widths {
		total += w
	}
	return total
}

func (l layout) height() float64 {
	return lineHeight + titleGap + float64(len(l.rows)+1)*lineHeight
}

// Document renders chart and its reference images onto a single PNG page.
func Document(chart models.ChartData, images []image.Image, opts DocumentOptions) ([]byte, error) {
	if opts.PageWidthMM <= 0 {
		opts.PageWidthMM = DefaultDocumentOptions().PageWidthMM
	}
	if opts.MaxImageHeight <= 0 {
		opts.MaxImageHeight = DefaultDocumentOptions().MaxImageHeight
	}

	face := basicfont.Face7x13
	measure := func(s string) float64 {
		return float64(len([]rune(s))*face.Advance) + 2*cellPadding
	}

	var tables []layout
	for _, shape := range models.Shapes {
		tables = append(tables, tableLayout(shape, displayTable(shape, chart.Table(shape), opts.Comparator), measure))
	}

	margin := float64(MMToPixels(opts.MarginMM))
	width := float64(MMToPixels(opts.PageWidthMM))
	for _, t := range tables {
		width = max(width, t.width()+2*margin)
	}
	contentWidth := width - 2*margin

	height := margin + 3*lineHeight + sectionGap
	for _, t := range tables {
		height += t.height() + sectionGap
	}
	scales := make([]float64, len(images))
	for i, img := range images {
		b := img.Bounds()
		if b.Dx() == 0 || b.Dy() == 0 {
			continue
		}
		scales[i] = min(contentWidth/float64(b.Dx()), float64(opts.MaxImageHeight)/float64(b.Dy()), 1)
		height += float64(b.Dy())*scales[i] + sectionGap
	}
	height += margin

	dc := gg.NewContext(int(width), int(height))
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(face)
	dc.SetLineWidth(1)

	y := margin
	dc.SetRGB(0, 0, 0)
	title := chart.Name
	if title == "" {
		title = "Size Chart"
	}
	dc.DrawString(title, margin, y+lineHeight*0.7)
	y += lineHeight
	dc.SetRGB(0.35, 0.35, 0.35)
	dc.DrawString(fmt.Sprintf("Market: %s", dash(chart.Market)), margin, y+lineHeight*0.7)
	y += lineHeight
	dc.DrawString(fmt.Sprintf("Unit: %s", dash(chart.Unit)), margin, y+lineHeight*0.7)
	y += lineHeight + sectionGap

	for _, t := range tables {
		y = drawTable(dc, t, margin, y) + sectionGap
	}

	for i, img := range images {
		s := scales[i]
		if s == 0 {
			continue
		}
		dc.Push()
		dc.Scale(s, s)
		dc.DrawImage(img, int(margin/s), int(y/s))
		dc.Pop()
		y += float64(img.Bounds().Dy())*s + sectionGap
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return buf.Bytes(), nil
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func tableLayout(shape models.TableShape, t models.Table, measure func(string) float64) layout {
	cfg := shape.Config()
	columns := t.Columns()
	if cfg.IsScalar {
		columns = []string{models.ValueColumn}
	}

	l := layout{
		title:  cfg.Title,
		header: append([]string{cfg.RowLabel}, columns...),
	}
	for _, r := range t.Rows {
		row := []string{r.Key}
		for _, col := range columns {
			v, _ := r.Lookup(col)
			row = append(row, dash(v.String()))
		}
		l.rows = append(l.rows, row)
	}

	l.widths = make([]float64, len(l.header))
	for i, h := range l.header {
		l.widths[i] = measure(h)
	}
	for _, row := range l.rows {
		for i, cell := range row {
			l.widths[i] = max(l.widths[i], measure(cell))
		}
	}
	return l
}

// drawTable draws l with its top-left corner at (x, y) and returns the y
// coordinate below it.
func drawTable(dc *gg.Context, l layout, x, y float64) float64 {
	dc.SetRGB(0, 0, 0)
	dc.DrawString(l.title, x, y+lineHeight*0.7)
	y += lineHeight + titleGap

	if len(l.rows) == 0 {
		dc.SetRGB(0.5, 0.5, 0.5)
		dc.DrawString(fmt.Sprintf("No %s available.", strings.ToLower(l.title)), x, y+lineHeight*0.7)
		return y + lineHeight
	}

	width := l.width()
	dc.SetRGB(0.9, 0.9, 0.9)
	dc.DrawRectangle(x, y, width, lineHeight)
	dc.Fill()

	lines := append([][]string{l.header}, l.rows...)
	for _, line := range lines {
		cx := x
		dc.SetRGB(0, 0, 0)
		for i, cell := range line {
			dc.DrawString(cell, cx+cellPadding, y+lineHeight*0.7)
			cx += l.widths[i]
		}
		dc.SetRGB(0.75, 0.75, 0.75)
		dc.DrawLine(x, y+lineHeight, x+width, y+lineHeight)
		dc.Stroke()
		y += lineHeight
	}
	return y
}
