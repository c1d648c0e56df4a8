package form

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/futig/form-builder/internal/entity"
	"github.com/futig/form-builder/internal/pkg/validator"
)

var errEmptyCompletion = errors.New("completion is empty")

// parseGeneratedForm extracts the schema and uiSchema objects from a completion.
// A surrounding markdown code fence is tolerated; extra top-level keys are dropped.
func parseGeneratedForm(content string) (*entity.GeneratedForm, error) {
	text := stripCodeFence(strings.TrimSpace(content))
	if text == "" {
		return nil, errEmptyCompletion
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &envelope); err != nil {
		return nil, fmt.Errorf("decode completion: %w", err)
	}

	schema, err := objectField(envelope, "schema")
	if err != nil {
		return nil, err
	}
	uiSchema, err := objectField(envelope, "uiSchema")
	if err != nil {
		return nil, err
	}

	return &entity.GeneratedForm{Schema: schema, UISchema: uiSchema}, nil
}

func objectField(envelope map[string]json.RawMessage, key string) (json.RawMessage, error) {
	raw, ok := envelope[key]
	if !ok {
		return nil, fmt.Errorf("completion has no %q key", key)
	}
	if !validator.IsJSONObject(raw) {
		return nil, fmt.Errorf("completion %q is not a JSON object", key)
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, fmt.Errorf("compact %q: %w", key, err)
	}
	return buf.Bytes(), nil
}

func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}

	// drop the opening fence line, it may carry a language tag
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[i+1:]
	} else {
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSpace(text)

	return strings.TrimSpace(strings.TrimSuffix(text, "```"))
}
