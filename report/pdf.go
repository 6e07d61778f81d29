// Package report exports a pet's progress as a printable document.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"xpquest/templates"
)

// WritePDF renders s as a one-page A4 report.
func WritePDF(w io.Writer, title string, s templates.Status) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, tr(title), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	label := templates.ProgressStatus(s.XP, s.Threshold)
	rows := [][2]string{
		{"Level", strconv.Itoa(s.Level)},
		{"XP", fmt.Sprintf("%d / %d %s", s.XP, s.Threshold, templates.ProgressBar(s.XP, s.Threshold, 20))},
		{"Stage", label.Description},
		{"Lifetime XP", strconv.Itoa(s.TotalXP)},
		{"Turns", strconv.Itoa(s.Turns)},
	}
	pdf.SetFillColor(hexRGB(label.Color))
	for _, row := range rows {
		pdf.CellFormat(40, 8, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(0, 8, tr(row[1]), "1", 1, "L", row[0] == "Stage", 0, "")
	}

	if len(s.Recent) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 10, "Recent conversation", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		for _, turn := range s.Recent {
			pdf.MultiCell(0, 6, tr(fmt.Sprintf("%s: %s", turn.Role, turn.Content)), "", "L", false)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// hexRGB parses a "#rrggbb" colour; anything else is white.
func hexRGB(color string) (int, int, int) {
	var r, g, b int
	if _, err := fmt.Sscanf(color, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return 255, 255, 255
	}
	return r, g, b
}
