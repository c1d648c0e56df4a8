package formatter

import (
	"bytes"
	"fmt"

	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (mf *DOCXFormatter) Format(report *Report) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	titlePar := doc.AddParagraph()
	titlePar.SetStyle("Heading1")
	titlePar.AddRun().AddText(report.Title)

	doc.AddParagraph().AddRun().AddText(fmt.Sprintf("Form ID: %s", report.FormID))
	doc.AddParagraph().AddRun().AddText(fmt.Sprintf("Created: %s", report.CreatedAt.UTC().Format(reportTimeLayout)))
	doc.AddParagraph().AddRun().AddText(fmt.Sprintf("Responses: %d", len(report.Rows)))

	for i, row := range report.Rows {
		heading := doc.AddParagraph()
		heading.SetStyle("Heading2")
		heading.AddRun().AddText(fmt.Sprintf("Response %d (%s)", i+1, row.SubmittedAt.UTC().Format(reportTimeLayout)))

		table := doc.AddTable()
		table.Properties().SetWidthPercent(100)
		for j, field := range report.Fields {
			tr := table.AddRow()

			nameRun := tr.AddCell().AddParagraph().AddRun()
			nameRun.Properties().SetBold(true)
			nameRun.AddText(field)

			tr.AddCell().AddParagraph().AddRun().AddText(row.Values[j])
		}
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (mf *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (mf *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
