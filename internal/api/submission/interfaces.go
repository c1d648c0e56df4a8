package submission

import (
	"context"

	"github.com/futig/form-builder/internal/entity"
)

type SubmissionUsecase interface {
	SaveResponse(ctx context.Context, req *entity.SaveResponseRequest) (*entity.Response, error)
}
