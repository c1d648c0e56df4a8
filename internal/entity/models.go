package entity

import (
	"encoding/json"
	"time"
)

// Form is a generated form definition. Schema and UISchema hold JSON objects
// exactly as produced by the completion provider.
type Form struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Schema    json.RawMessage `json:"schema"`
	UISchema  json.RawMessage `json:"uiSchema"`
	CreatedAt time.Time       `json:"createdAt"`
	Responses []*Response     `json:"responses,omitempty"`
}

// Response is one submission of a form.
type Response struct {
	ID        string          `json:"id"`
	FormID    string          `json:"formId"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"createdAt"`
}
