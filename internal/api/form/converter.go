package form

import (
	"time"

	"github.com/futig/form-builder/internal/entity"
)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

func toGenerateSchemaResponse(form *entity.Form) *entity.GenerateSchemaResponse {
	return &entity.GenerateSchemaResponse{
		ID:       form.ID,
		Schema:   form.Schema,
		UISchema: form.UISchema,
	}
}

func toFormDetail(form *entity.Form) *entity.FormDetailResponse {
	responses := make([]*entity.ResponseItem, 0, len(form.Responses))
	for _, resp := range form.Responses {
		responses = append(responses, &entity.ResponseItem{
			ID:        resp.ID,
			FormID:    resp.FormID,
			Data:      resp.Data,
			CreatedAt: formatTimestamp(resp.CreatedAt),
		})
	}

	return &entity.FormDetailResponse{
		ID:        form.ID,
		Title:     form.Title,
		Schema:    form.Schema,
		UISchema:  form.UISchema,
		CreatedAt: formatTimestamp(form.CreatedAt),
		Responses: responses,
	}
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
