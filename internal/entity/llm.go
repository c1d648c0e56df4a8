package entity

import "encoding/json"

// LLMCompletionRequest is a provider-neutral chat completion with a system and
// a user message. JSONObject asks the provider to constrain output to one JSON object.
type LLMCompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	JSONObject   bool
}

// GeneratedForm is the envelope the completion provider must return.
type GeneratedForm struct {
	Schema   json.RawMessage `json:"schema" jsonschema:"type=object,description=JSON Schema (draft 7) describing the form fields"`
	UISchema json.RawMessage `json:"uiSchema" jsonschema:"type=object,description=react-jsonschema-form uiSchema with placeholders and widget hints"`
}
