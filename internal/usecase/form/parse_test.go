package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGeneratedForm(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		wantSchema   string
		wantUISchema string
		wantErr      bool
	}{
		{
			name:         "plain object",
			content:      `{"schema":{"type":"object"},"uiSchema":{}}`,
			wantSchema:   `{"type":"object"}`,
			wantUISchema: `{}`,
		},
		{
			name:         "surrounding whitespace",
			content:      "\n  {\"schema\": {\"type\": \"object\"}, \"uiSchema\": {\"a\": {}}}  \n",
			wantSchema:   `{"type":"object"}`,
			wantUISchema: `{"a":{}}`,
		},
		{
			name:         "json code fence",
			content:      "```json\n{\"schema\":{\"type\":\"object\"},\"uiSchema\":{}}\n```",
			wantSchema:   `{"type":"object"}`,
			wantUISchema: `{}`,
		},
		{
			name:         "bare code fence",
			content:      "```\n{\"schema\":{},\"uiSchema\":{}}\n```",
			wantSchema:   `{}`,
			wantUISchema: `{}`,
		},
		{
			name:         "extra keys are dropped",
			content:      `{"schema":{},"uiSchema":{},"notes":"ignored"}`,
			wantSchema:   `{}`,
			wantUISchema: `{}`,
		},
		{name: "empty", content: "   ", wantErr: true},
		{name: "prose", content: "Sure! Here is your form.", wantErr: true},
		{name: "array root", content: `[{"schema":{}}]`, wantErr: true},
		{name: "missing uiSchema", content: `{"schema":{}}`, wantErr: true},
		{name: "missing schema", content: `{"uiSchema":{}}`, wantErr: true},
		{name: "schema is a string", content: `{"schema":"object","uiSchema":{}}`, wantErr: true},
		{name: "uiSchema is null", content: `{"schema":{},"uiSchema":null}`, wantErr: true},
		{name: "truncated", content: `{"schema":{"type":"obj`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseGeneratedForm(tt.content)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.JSONEq(t, tt.wantSchema, string(got.Schema))
			assert.JSONEq(t, tt.wantUISchema, string(got.UISchema))
		})
	}
}

func TestBuildUserPrompt(t *testing.T) {
	assert.Equal(t,
		`Generate schema for this form: "Contact form with name and email"`,
		buildUserPrompt("Contact form with name and email"),
	)
}
