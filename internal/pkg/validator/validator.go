package validator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/futig/form-builder/internal/config"
	"github.com/futig/form-builder/internal/entity"
)

// Validator checks incoming form and response requests
type Validator struct {
	cfg config.FormConfig
}

func NewValidator(cfg config.FormConfig) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateGenerateSchema requires a description with visible characters
func (v *Validator) ValidateGenerateSchema(req *entity.GenerateSchemaRequest) error {
	if req == nil || strings.TrimSpace(req.Description) == "" {
		return fmt.Errorf("%w: description", entity.ErrInvalidInput)
	}

	if v.cfg.MaxDescriptionLength > 0 {
		if n := utf8.RuneCountInString(req.Description); n > v.cfg.MaxDescriptionLength {
			return fmt.Errorf("%w: description is %d characters (max %d)", entity.ErrInvalidInput, n, v.cfg.MaxDescriptionLength)
		}
	}

	return nil
}

// ValidateSaveResponse requires a form id and a JSON object of answers
func (v *Validator) ValidateSaveResponse(req *entity.SaveResponseRequest) error {
	if req == nil || strings.TrimSpace(req.FormID) == "" {
		return fmt.Errorf("%w: formId", entity.ErrInvalidInput)
	}

	if !IsJSONObject(req.FormData) {
		return fmt.Errorf("%w: formData", entity.ErrInvalidInput)
	}

	return nil
}

// IsJSONObject reports whether raw holds a single valid JSON object
func IsJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return false
	}
	return json.Valid(trimmed)
}
