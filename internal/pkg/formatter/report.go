package formatter

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/futig/form-builder/internal/entity"
)

// Report is a tabular view of a form: one column per schema property,
// one row per response in submission order.
type Report struct {
	Title     string
	FormID    string
	CreatedAt time.Time
	Fields    []string
	Rows      []ReportRow
}

type ReportRow struct {
	ResponseID  string
	SubmittedAt time.Time
	Values      []string
}

// NewReport flattens form responses into rows. Answers for keys the schema
// does not declare are appended as extra columns in order of appearance.
func NewReport(form *entity.Form) *Report {
	report := &Report{
		Title:     strings.TrimSpace(form.Title),
		FormID:    form.ID,
		CreatedAt: form.CreatedAt,
		Fields:    entity.PropertyNames(form.Schema),
	}

	known := make(map[string]bool, len(report.Fields))
	for _, name := range report.Fields {
		known[name] = true
	}

	answers := make([]map[string]json.RawMessage, len(form.Responses))
	for i, resp := range form.Responses {
		var data map[string]json.RawMessage
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			data = map[string]json.RawMessage{}
		}
		answers[i] = data

		for _, key := range objectKeys(resp.Data) {
			if !known[key] {
				known[key] = true
				report.Fields = append(report.Fields, key)
			}
		}
	}

	for i, resp := range form.Responses {
		row := ReportRow{
			ResponseID:  resp.ID,
			SubmittedAt: resp.CreatedAt,
			Values:      make([]string, len(report.Fields)),
		}
		for j, field := range report.Fields {
			row.Values[j] = displayValue(answers[i][field])
		}
		report.Rows = append(report.Rows, row)
	}

	return report
}

// objectKeys returns the keys of a JSON object in document order
func objectKeys(raw json.RawMessage) []string {
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return keys
		}
		key, ok := tok.(string)
		if !ok {
			return keys
		}
		keys = append(keys, key)

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return keys
		}
	}
	return keys
}

func displayValue(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var list []any
	if err := json.Unmarshal(raw, &list); err == nil {
		parts := make([]string, 0, len(list))
		for _, item := range list {
			b, _ := json.Marshal(item)
			parts = append(parts, displayValue(b))
		}
		return strings.Join(parts, ", ")
	}

	return string(raw)
}
