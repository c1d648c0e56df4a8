package form

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/futig/form-builder/internal/config"
	"github.com/futig/form-builder/internal/entity"
	"github.com/futig/form-builder/internal/integration/llm"
	"github.com/futig/form-builder/internal/pkg/validator"
	"github.com/futig/form-builder/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConnector struct {
	completion string
	err        error
	calls      []*entity.LLMCompletionRequest
}

func (f *fakeConnector) Complete(_ context.Context, req *entity.LLMCompletionRequest) (string, error) {
	f.calls = append(f.calls, req)
	return f.completion, f.err
}

type failingFormRepo struct {
	repository.FormRepository
}

func (failingFormRepo) Create(context.Context, entity.Form) (*entity.Form, error) {
	return nil, errors.New("connection refused")
}

func newTestUsecase(conn LLMConnector, repo repository.FormRepository) *FormUsecase {
	return NewUsecase(repo, validator.NewValidator(config.FormConfig{}), conn)
}

func TestGenerateForm_ContactForm(t *testing.T) {
	ctx := context.Background()
	db := repository.NewMemoryDB()
	repo := repository.NewFormMemory(db)
	conn := &fakeConnector{completion: llm.MockGeneratedForm}
	uc := newTestUsecase(conn, repo)

	description := "Contact form with name and email"
	form, err := uc.GenerateForm(ctx, &entity.GenerateSchemaRequest{Description: description})
	require.NoError(t, err)

	require.Len(t, conn.calls, 1)
	assert.Equal(t, systemPrompt, conn.calls[0].SystemPrompt)
	assert.Equal(t, `Generate schema for this form: "Contact form with name and email"`, conn.calls[0].UserPrompt)
	assert.True(t, conn.calls[0].JSONObject)

	assert.NotEmpty(t, form.ID)
	assert.Equal(t, description, form.Title)

	var schema struct {
		Properties map[string]struct {
			Type   string `json:"type"`
			Format string `json:"format"`
		} `json:"properties"`
		Required []string `json:"required"`
	}
	require.NoError(t, json.Unmarshal(form.Schema, &schema))
	assert.Equal(t, "email", schema.Properties["email"].Format)
	assert.ElementsMatch(t, []string{"name", "email"}, schema.Required)

	stored, err := uc.GetForm(ctx, form.ID)
	require.NoError(t, err)
	assert.Equal(t, description, stored.Title)
	assert.JSONEq(t, string(form.Schema), string(stored.Schema))
	assert.NotNil(t, stored.Responses)
	assert.Empty(t, stored.Responses)
}

func TestGenerateForm_StoresUntrimmedDescription(t *testing.T) {
	repo := repository.NewFormMemory(repository.NewMemoryDB())
	uc := newTestUsecase(&fakeConnector{completion: `{"schema":{},"uiSchema":{}}`}, repo)

	form, err := uc.GenerateForm(context.Background(), &entity.GenerateSchemaRequest{Description: "  Survey  "})
	require.NoError(t, err)
	assert.Equal(t, "  Survey  ", form.Title)
}

func TestGenerateForm_BlankDescriptionSkipsProvider(t *testing.T) {
	conn := &fakeConnector{completion: llm.MockGeneratedForm}
	uc := newTestUsecase(conn, repository.NewFormMemory(repository.NewMemoryDB()))

	_, err := uc.GenerateForm(context.Background(), &entity.GenerateSchemaRequest{Description: " \n "})
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
	assert.Empty(t, conn.calls)
}

func TestGenerateForm_Failures(t *testing.T) {
	tests := []struct {
		name string
		conn *fakeConnector
		repo repository.FormRepository
	}{
		{
			name: "provider error",
			conn: &fakeConnector{err: errors.New("status code: 503")},
			repo: repository.NewFormMemory(repository.NewMemoryDB()),
		},
		{
			name: "non JSON completion",
			conn: &fakeConnector{completion: "I cannot help with that."},
			repo: repository.NewFormMemory(repository.NewMemoryDB()),
		},
		{
			name: "completion without uiSchema",
			conn: &fakeConnector{completion: `{"schema":{"type":"object"}}`},
			repo: repository.NewFormMemory(repository.NewMemoryDB()),
		},
		{
			name: "store failure",
			conn: &fakeConnector{completion: llm.MockGeneratedForm},
			repo: failingFormRepo{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUsecase(tt.conn, tt.repo)

			form, err := uc.GenerateForm(context.Background(), &entity.GenerateSchemaRequest{Description: "Survey"})
			assert.Nil(t, form)
			assert.ErrorIs(t, err, entity.ErrGenerationFailed)
		})
	}
}

func TestGetForm_NotFound(t *testing.T) {
	uc := newTestUsecase(&fakeConnector{}, repository.NewFormMemory(repository.NewMemoryDB()))

	_, err := uc.GetForm(context.Background(), "6f1c0a52-4f7e-4b5e-9d55-9b8f4a0b2c11")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}
