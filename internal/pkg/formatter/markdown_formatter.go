package formatter

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

var markdownCellEscaper = strings.NewReplacer("|", `\|`, "\r\n", "<br>", "\n", "<br>")

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", report.Title)
	fmt.Fprintf(&buf, "- Form ID: `%s`\n", report.FormID)
	fmt.Fprintf(&buf, "- Created: %s\n", report.CreatedAt.UTC().Format(reportTimeLayout))
	fmt.Fprintf(&buf, "- Responses: %d\n\n", len(report.Rows))

	if len(report.Rows) == 0 {
		buf.WriteString("_No responses yet._\n")
		return buf.Bytes(), nil
	}

	header := append([]string{"#", "Submitted"}, report.Fields...)
	writeMarkdownRow(&buf, header)

	divider := make([]string, len(header))
	for i := range divider {
		divider[i] = "---"
	}
	writeMarkdownRow(&buf, divider)

	for i, row := range report.Rows {
		cells := append([]string{fmt.Sprint(i + 1), row.SubmittedAt.UTC().Format(reportTimeLayout)}, row.Values...)
		writeMarkdownRow(&buf, cells)
	}

	return buf.Bytes(), nil
}

func writeMarkdownRow(buf *bytes.Buffer, cells []string) {
	buf.WriteString("|")
	for _, cell := range cells {
		buf.WriteString(" ")
		buf.WriteString(markdownCellEscaper.Replace(cell))
		buf.WriteString(" |")
	}
	buf.WriteString("\n")
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
