package submission

import (
	"context"
	"fmt"
	"time"

	"github.com/futig/form-builder/internal/entity"
	"github.com/futig/form-builder/internal/pkg/validator"
	"github.com/futig/form-builder/internal/repository"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// SubmissionUsecase stores answers submitted for generated forms
type SubmissionUsecase struct {
	formRepo            repository.FormRepository
	responseRepo        repository.ResponseRepository
	validator           *validator.Validator
	strictFormReference bool
}

// NewUsecase creates a new submission use case. With strictFormReference set,
// responses for forms that do not exist are rejected before reaching the store.
func NewUsecase(
	formRepo repository.FormRepository,
	responseRepo repository.ResponseRepository,
	validator *validator.Validator,
	strictFormReference bool,
) *SubmissionUsecase {
	return &SubmissionUsecase{
		formRepo:            formRepo,
		responseRepo:        responseRepo,
		validator:           validator,
		strictFormReference: strictFormReference,
	}
}

// SaveResponse stores formData as a new response of the referenced form.
// The data is not checked against the form's schema.
func (uc *SubmissionUsecase) SaveResponse(ctx context.Context, req *entity.SaveResponseRequest) (*entity.Response, error) {
	if err := uc.validator.ValidateSaveResponse(req); err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "saving form response",
		zap.String("form_id", req.FormID),
		zap.String("form_title", req.FormTitle),
	)

	if uc.strictFormReference {
		exists, err := uc.formRepo.Exists(ctx, req.FormID)
		if err != nil {
			return nil, fmt.Errorf("check form exists: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: form %s", entity.ErrReferenceViolation, req.FormID)
		}
	}

	response, err := uc.responseRepo.Create(ctx, entity.Response{
		ID:        uuid.NewString(),
		FormID:    req.FormID,
		Data:      req.FormData,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("save response: %w", err)
	}

	ctxzap.Info(ctx, "form response saved", zap.String("response_id", response.ID))

	return response, nil
}
