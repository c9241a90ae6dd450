package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/signintech/gopdf"
)

const (
	fontRegular = "regular"
	fontBold    = "bold"

	regularFile = "arial.ttf"
	boldFile    = "arialbd.ttf"

	// A4 in points.
	pageWidth  = 595.28
	pageHeight = 841.89
	margin     = 30.0
)

// Color is an RGB triple for text and fills.
type Color struct {
	R, G, B uint8
}

var (
	ColorBlack = Color{0, 0, 0}
	ColorRed   = Color{192, 32, 32}
	ColorBlue  = Color{32, 64, 192}
	ColorGray  = Color{224, 224, 224}
)

// TextOpts controls a DrawText call.
type TextOpts struct {
	Size     float64
	Bold     bool
	Color    Color
	MaxWidth float64
}

// CellOpts controls a bordered table cell.
type CellOpts struct {
	Size  float64
	Bold  bool
	Color Color
}

// TextRun is one styled segment of cell text. Each run renders on its own
// line so a cell can mix colors without a second drawing pass.
type TextRun struct {
	Text  string
	Color Color
	Bold  bool
}

// Doc wraps a gopdf document with the fixed page geometry and font handling
// the two report templates share.
type Doc struct {
	pdf      *gopdf.GoPdf
	hasBold  bool
	pageNum  int
	fontSize float64
}

// NewDoc starts an A4 document and loads TTF fonts from fontDir. Both a
// regular and a bold face are expected; the bold face silently falls back to
// the regular one when missing.
func NewDoc(fontDir string) (*Doc, error) {
	pdf := new(gopdf.GoPdf)
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})

	regularPath := filepath.Join(fontDir, regularFile)
	if _, err := os.Stat(regularPath); err != nil {
		return nil, fmt.Errorf("font %s not found in %s", regularFile, fontDir)
	}
	if err := pdf.AddTTFFont(fontRegular, regularPath); err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}

	d := &Doc{pdf: pdf}
	boldPath := filepath.Join(fontDir, boldFile)
	if _, err := os.Stat(boldPath); err == nil {
		if err := pdf.AddTTFFont(fontBold, boldPath); err == nil {
			d.hasBold = true
		}
	}

	d.NewPage()
	return d, nil
}

// NewPage starts a fresh page and returns the top-of-page cursor position.
func (d *Doc) NewPage() float64 {
	d.pdf.AddPage()
	d.pageNum++
	return margin
}

// PageNum is the 1-based current page number.
func (d *Doc) PageNum() int { return d.pageNum }

// ContentWidth is the printable width between margins.
func (d *Doc) ContentWidth() float64 { return pageWidth - 2*margin }

// BottomY is the lowest usable y coordinate before a page break is due.
func (d *Doc) BottomY() float64 { return pageHeight - margin }

// Bytes renders the document.
func (d *Doc) Bytes() []byte { return d.pdf.GetBytesPdf() }

func (d *Doc) setFont(bold bool, size float64) error {
	name := fontRegular
	if bold && d.hasBold {
		name = fontBold
	}
	d.fontSize = size
	return d.pdf.SetFont(name, "", size)
}

func (d *Doc) lineHeight() float64 { return d.fontSize * 1.35 }

// wrap splits text into lines no wider than maxWidth at word boundaries.
// Words wider than the limit are kept whole on their own line.
func (d *Doc) wrap(text string, maxWidth float64) []string {
	if maxWidth <= 0 {
		return []string{text}
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			candidate := line + " " + word
			w, err := d.pdf.MeasureTextWidth(candidate)
			if err == nil && w > maxWidth {
				lines = append(lines, line)
				line = word
				continue
			}
			line = candidate
		}
		lines = append(lines, line)
	}
	return lines
}

// DrawText writes wrapped text at (x, y) and returns the number of lines it
// consumed, so callers can advance their vertical cursor.
func (d *Doc) DrawText(text string, x, y float64, opts TextOpts) (int, error) {
	if opts.Size == 0 {
		opts.Size = 10
	}
	if err := d.setFont(opts.Bold, opts.Size); err != nil {
		return 0, err
	}
	d.pdf.SetTextColor(opts.Color.R, opts.Color.G, opts.Color.B)

	lines := d.wrap(text, opts.MaxWidth)
	for i, line := range lines {
		d.pdf.SetX(x)
		d.pdf.SetY(y + float64(i)*d.lineHeight())
		if err := d.pdf.Cell(nil, line); err != nil {
			return i, err
		}
	}
	return len(lines), nil
}

// DrawRect draws a rectangle, filled or outlined.
func (d *Doc) DrawRect(x, y, w, h float64, color Color, filled bool) {
	style := "D"
	if filled {
		style = "F"
		d.pdf.SetFillColor(color.R, color.G, color.B)
	} else {
		d.pdf.SetStrokeColor(color.R, color.G, color.B)
	}
	d.pdf.SetLineWidth(0.5)
	_ = d.pdf.Rectangle(x, y, x+w, y+h, style, 0, 0)
}

// DrawTableCell draws a bordered cell with its wrapped text vertically
// centered.
func (d *Doc) DrawTableCell(text string, x, y, w, h float64, opts CellOpts) error {
	d.pdf.SetStrokeColor(0, 0, 0)
	d.pdf.SetLineWidth(0.5)
	if err := d.pdf.Rectangle(x, y, x+w, y+h, "D", 0, 0); err != nil {
		return err
	}
	if text == "" {
		return nil
	}
	if opts.Size == 0 {
		opts.Size = 9
	}
	if err := d.setFont(opts.Bold, opts.Size); err != nil {
		return err
	}
	d.pdf.SetTextColor(opts.Color.R, opts.Color.G, opts.Color.B)

	pad := 3.0
	lines := d.wrap(text, w-2*pad)
	block := float64(len(lines)) * d.lineHeight()
	top := y + (h-block)/2
	if top < y+pad {
		top = y + pad
	}
	for i, line := range lines {
		d.pdf.SetX(x + pad)
		d.pdf.SetY(top + float64(i)*d.lineHeight())
		if err := d.pdf.Cell(nil, line); err != nil {
			return err
		}
	}
	return nil
}

// DrawStyledCell draws a bordered cell whose lines carry their own color and
// weight. One run per line, vertically centered as a block.
func (d *Doc) DrawStyledCell(runs []TextRun, x, y, w, h float64, opts CellOpts) error {
	d.pdf.SetStrokeColor(0, 0, 0)
	d.pdf.SetLineWidth(0.5)
	if err := d.pdf.Rectangle(x, y, x+w, y+h, "D", 0, 0); err != nil {
		return err
	}
	if len(runs) == 0 {
		return nil
	}
	if opts.Size == 0 {
		opts.Size = 9
	}

	pad := 3.0
	type placed struct {
		run  TextRun
		text string
	}
	var lines []placed
	for _, run := range runs {
		if err := d.setFont(run.Bold, opts.Size); err != nil {
			return err
		}
		for _, text := range d.wrap(run.Text, w-2*pad) {
			lines = append(lines, placed{run: run, text: text})
		}
	}

	block := float64(len(lines)) * d.lineHeight()
	top := y + (h-block)/2
	if top < y+pad {
		top = y + pad
	}
	for i, line := range lines {
		if err := d.setFont(line.run.Bold, opts.Size); err != nil {
			return err
		}
		d.pdf.SetTextColor(line.run.Color.R, line.run.Color.G, line.run.Color.B)
		d.pdf.SetX(x + pad)
		d.pdf.SetY(top + float64(i)*d.lineHeight())
		if err := d.pdf.Cell(nil, line.text); err != nil {
			return err
		}
	}
	return nil
}

// AddLink overlays a clickable region pointing at url.
func (d *Doc) AddLink(url string, x, y, w, h float64) {
	d.pdf.AddExternalLink(url, x, y, w, h)
}
