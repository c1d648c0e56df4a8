package formatter

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// pdfFontName is the family the embedded DejaVu faces are registered under
	pdfFontName = "DejaVuSans"
)

var (
	//go:embed ttf/DejaVuSans.ttf
	dejaVuSansRegular []byte

	//go:embed ttf/DejaVuSans-Bold.ttf
	dejaVuSansBold []byte
)

type PDFFormatter struct {
	compress bool
}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{compress: true}
}

func (mf *PDFFormatter) Format(report *Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(mf.compress)

	// Core fonts only cover WinAnsi, answers may be in any script.
	pdf.AddUTF8FontFromBytes(pdfFontName, "", dejaVuSansRegular)
	pdf.AddUTF8FontFromBytes(pdfFontName, "B", dejaVuSansBold)
	pdf.AddPage()

	pdf.SetFont(pdfFontName, "B", 18)
	pdf.MultiCell(0, 9, report.Title, "", "", false)
	pdf.Ln(2)

	pdf.SetFont(pdfFontName, "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Form ID: %s", report.FormID))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Created: %s", report.CreatedAt.UTC().Format(reportTimeLayout)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Responses: %d", len(report.Rows)))
	pdf.Ln(10)

	for i, row := range report.Rows {
		pdf.SetFont(pdfFontName, "B", 12)
		pdf.Cell(0, 7, fmt.Sprintf("Response %d (%s)", i+1, row.SubmittedAt.UTC().Format(reportTimeLayout)))
		pdf.Ln(8)

		pdf.SetFont(pdfFontName, "", 11)
		_, lineHeight := pdf.GetFontSize()
		for j, field := range report.Fields {
			pdf.MultiCell(0, lineHeight*1.5, fmt.Sprintf("%s: %s", field, row.Values[j]), "", "", false)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (mf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (mf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
