package formatter

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/futig/form-builder/internal/entity"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contactForm() *entity.Form {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return &entity.Form{
		ID:        "3b5f2a8e-8c1d-4b0e-9f3a-2c7d6e1f0a9b",
		Title:     "Contact form with name and email",
		Schema:    json.RawMessage(`{"type":"object","properties":{"name":{"type":"string"},"email":{"type":"string","format":"email"}},"required":["name","email"]}`),
		UISchema:  json.RawMessage(`{}`),
		CreatedAt: created,
		Responses: []*entity.Response{
			{ID: "r1", Data: json.RawMessage(`{"name":"Ann | Lee","email":"ann@example.com"}`), CreatedAt: created.Add(time.Minute)},
			{ID: "r2", Data: json.RawMessage(`{"name":"Bob","tags":["a","b"],"age":42}`), CreatedAt: created.Add(2 * time.Minute)},
		},
	}
}

func TestNewReport(t *testing.T) {
	report := NewReport(contactForm())

	if diff := cmp.Diff([]string{"email", "name", "tags", "age"}, report.Fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, report.Rows, 2)

	if diff := cmp.Diff([]string{"ann@example.com", "Ann | Lee", "", ""}, report.Rows[0].Values); diff != "" {
		t.Errorf("first row mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"", "Bob", "a, b", "42"}, report.Rows[1].Values); diff != "" {
		t.Errorf("second row mismatch (-want +got):\n%s", diff)
	}
}

func TestMarkdownFormatter(t *testing.T) {
	out, err := NewMarkdownFormatter().Format(NewReport(contactForm()))
	require.NoError(t, err)

	text := string(out)
	assert.True(t, strings.HasPrefix(text, "# Contact form with name and email\n"))
	assert.Contains(t, text, "- Responses: 2")
	assert.Contains(t, text, "| # | Submitted | email | name | tags | age |")
	assert.Contains(t, text, `Ann \| Lee`)
	assert.Contains(t, text, "| 2 | 2025-03-01 10:02:00 UTC |  | Bob | a, b | 42 |")
}

func TestMarkdownFormatter_NoResponses(t *testing.T) {
	form := contactForm()
	form.Responses = nil

	out, err := NewMarkdownFormatter().Format(NewReport(form))
	require.NoError(t, err)
	assert.Contains(t, string(out), "_No responses yet._")
}

func TestPDFFormatter(t *testing.T) {
	out, err := NewPDFFormatter().Format(NewReport(contactForm()))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF-"))
}

func TestPDFFormatter_EncodesNonLatinAnswers(t *testing.T) {
	form := contactForm()
	form.Responses = []*entity.Response{
		{ID: "r1", Data: json.RawMessage(`{"name":"Иван","email":"josé@example.com"}`), CreatedAt: form.CreatedAt},
	}

	out, err := (&PDFFormatter{}).Format(NewReport(form))
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "/Identity-H")
	assert.NotContains(t, text, "Иван")
	assert.NotContains(t, text, "josé")
}

func TestFactory(t *testing.T) {
	factory := NewFactory()

	for format, ext := range map[entity.ExportFormat]string{
		entity.ExportMarkdown: ".md",
		entity.ExportDOCX:     ".docx",
		entity.ExportPDF:      ".pdf",
	} {
		f, err := factory.Create(format)
		require.NoError(t, err)
		assert.Equal(t, ext, f.FileExtension())
	}

	_, err := factory.Create("xlsx")
	assert.ErrorIs(t, err, entity.ErrUnsupportedFormat)
}
