package form

import (
	"context"

	"github.com/futig/form-builder/internal/entity"
)

type FormUsecase interface {
	GenerateForm(ctx context.Context, req *entity.GenerateSchemaRequest) (*entity.Form, error)
	GetForm(ctx context.Context, id string) (*entity.Form, error)
}
