package converter

import (
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// Layout constants for the generated PDF: Helvetica on Letter pages, with a
// small spacer after each paragraph.
const (
	fontFamily     = "Helvetica"
	fontSizePt     = 10
	lineHeightPt   = 14
	paragraphGapPt = 6
)

// writePDF lays text out as a page-flowing PDF at pdfPath. Paragraphs are
// the double-newline splits of text; internal single newlines are reflowed
// to spaces so each wrapped source line joins its paragraph. Blank
// paragraphs are dropped rather than rendered as empty space.
func writePDF(text, pdfPath string) error {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetFont(fontFamily, "", fontSizePt)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(strings.ReplaceAll(para, "\n", " "))
		if para == "" {
			continue
		}
		pdf.MultiCell(0, lineHeightPt, tr(para), "", "L", false)
		pdf.Ln(paragraphGapPt)
	}

	return pdf.OutputFileAndClose(pdfPath)
}
