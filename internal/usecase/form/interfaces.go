package form

import (
	"context"

	"github.com/futig/form-builder/internal/entity"
)

type LLMConnector interface {
	Complete(ctx context.Context, req *entity.LLMCompletionRequest) (string, error)
}
