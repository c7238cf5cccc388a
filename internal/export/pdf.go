package export

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// DejaVu covers Latin Extended and Vietnamese, so every field is written as
// UTF-8 without a code page translation.
var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	fontRegular []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	fontBold []byte
	//go:embed fonts/DejaVuSansCondensed-Oblique.ttf
	fontItalic []byte
)

const fontFamily = "DejaVu"

// PDFRenderer produces a paginated A4 document.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

func (r *PDFRenderer) Render(doc Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddUTF8FontFromBytes(fontFamily, "", fontRegular)
	pdf.AddUTF8FontFromBytes(fontFamily, "B", fontBold)
	pdf.AddUTF8FontFromBytes(fontFamily, "I", fontItalic)
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	pdf.SetTitle(doc.Title, true)
	if doc.Author != "" {
		pdf.SetAuthor(doc.Author, true)
	}
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 5, fmt.Sprintf("%d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	// Title block.
	pdf.SetFont(fontFamily, "B", 20)
	pdf.SetTextColor(49, 46, 129)
	pdf.MultiCell(0, 10, doc.Title, "", "L", false)
	pdf.SetTextColor(90, 90, 90)
	pdf.SetFont(fontFamily, "", 10)
	if doc.Author != "" {
		pdf.MultiCell(0, 5, "Pengajar: "+doc.Author, "", "L", false)
	}
	if doc.Duration != "" {
		pdf.MultiCell(0, 5, "Estimasi durasi: "+doc.Duration, "", "L", false)
	}
	pdf.MultiCell(0, 5, fmt.Sprintf("Jumlah scene: %d", len(doc.Sections)), "", "L", false)
	pdf.Ln(6)

	for _, s := range doc.Sections {
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont(fontFamily, "B", 14)
		pdf.MultiCell(0, 7, fmt.Sprintf("Scene %d: %s", s.Number, s.Scene), "", "L", false)
		pdf.Ln(2)

		pdf.SetFont(fontFamily, "B", 10)
		pdf.MultiCell(0, 5, "Narasi", "", "L", false)
		pdf.SetFont(fontFamily, "", 10)
		pdf.MultiCell(0, 5, s.Narration, "", "L", false)
		pdf.Ln(2)

		pdf.SetFont(fontFamily, "B", 10)
		pdf.MultiCell(0, 5, "Kalimat Kunci", "", "L", false)
		pdf.SetFont(fontFamily, "", 10)
		pdf.SetFillColor(254, 243, 199)
		for _, k := range s.KeySentences {
			pdf.MultiCell(0, 6, "• "+k, "", "L", true)
			pdf.Ln(1)
		}
		pdf.Ln(1)

		pdf.SetFont(fontFamily, "I", 9)
		pdf.SetTextColor(80, 80, 80)
		pdf.MultiCell(0, 5, "Visual: "+s.VisualPrompt, "", "L", false)
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
