package entity

import "encoding/json"

type ExportFormat string

const (
	ExportMarkdown ExportFormat = "markdown"
	ExportDOCX     ExportFormat = "docx"
	ExportPDF      ExportFormat = "pdf"
)

func (f ExportFormat) IsValid() bool {
	switch f {
	case ExportMarkdown, ExportDOCX, ExportPDF:
		return true
	default:
		return false
	}
}

type GenerateSchemaRequest struct {
	Description string `json:"description"`
}

type GenerateSchemaResponse struct {
	ID       string          `json:"id,omitempty"`
	Schema   json.RawMessage `json:"schema"`
	UISchema json.RawMessage `json:"uiSchema"`
}

type SaveResponseRequest struct {
	FormID    string          `json:"formId"`
	FormData  json.RawMessage `json:"formData"`
	FormTitle string          `json:"formTitle,omitempty"`
}

type SaveResponseResponse struct {
	Message    string `json:"message"`
	ResponseID string `json:"responseId,omitempty"`
}

// FormDetailResponse is the body of GET /api/forms/{id}. Responses is never nil
// so that a form without submissions serializes as an empty array.
type FormDetailResponse struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Schema    json.RawMessage `json:"schema"`
	UISchema  json.RawMessage `json:"uiSchema"`
	CreatedAt string          `json:"createdAt"`
	Responses []*ResponseItem `json:"responses"`
}

type ResponseItem struct {
	ID        string          `json:"id"`
	FormID    string          `json:"formId"`
	Data      json.RawMessage `json:"data"`
	CreatedAt string          `json:"createdAt"`
}
