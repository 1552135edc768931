package app

import (
	"bufio"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// writeReportPDF renders the combined Markdown report as a minimal PDF:
// headings get a larger bold face, everything else flows as wrapped
// paragraphs. Full Markdown layout is out of scope.
func writeReportPDF(markdown, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()
	// Core fonts are Latin-1 only; map what they cannot carry.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	scanner := bufio.NewScanner(strings.NewReader(markdown))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			pdf.Ln(4)
			continue
		}
		if strings.HasPrefix(line, "#") {
			depth := 0
			for depth < len(line) && line[depth] == '#' {
				depth++
			}
			text := strings.TrimSpace(line[depth:])
			if text == "" {
				continue
			}
			size := 14.0
			if depth >= 2 {
				size = 12.0
			}
			pdf.SetFont("Helvetica", "B", size)
			pdf.CellFormat(0, 8, tr(text), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 11)
			continue
		}
		pdf.MultiCell(0, 5, tr(line), "", "L", false)
	}
	return pdf.OutputFileAndClose(outPath)
}
