package form

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

// FormUsecase generates forms through the completion provider and reads them back
type FormUsecase struct {
	formRepo     repository.FormRepository
	validator    *validator.Validator
	llmConnector LLMConnector
}

// NewUsecase creates a new form use case
func NewUsecase(
	formRepo repository.FormRepository,
	validator *validator.Validator,
	llmConnector LLMConnector,
) *FormUsecase {
	return &FormUsecase{
		formRepo:     formRepo,
		validator:    validator,
		llmConnector: llmConnector,
	}
}

// GenerateForm asks the provider for a schema and uiSchema matching the
// description and stores the result as a new form titled with the description.
func (uc *FormUsecase) GenerateForm(ctx context.Context, req *entity.GenerateSchemaRequest) (*entity.Form, error) {
	if err := uc.validator.ValidateGenerateSchema(req); err != nil {
		return nil, err
	}

	completion, err := uc.llmConnector.Complete(ctx, &entity.LLMCompletionRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   buildUserPrompt(req.Description),
		JSONObject:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: request completion: %w", entity.ErrGenerationFailed, err)
	}

	generated, err := parseGeneratedForm(completion)
	if err != nil {
		ctxzap.Debug(ctx, "unparseable completion", zap.String("completion", completion))
		return nil, fmt.Errorf("%w: parse completion: %w", entity.ErrGenerationFailed, err)
	}

	if missing, err := entity.MissingRequiredProperties(generated.Schema); err != nil {
		ctxzap.Warn(ctx, "generated schema could not be inspected", zap.Error(err))
	} else if len(missing) > 0 {
		ctxzap.Warn(ctx, "generated schema requires undeclared properties", zap.Strings("missing", missing))
	}

	form, err := uc.formRepo.Create(ctx, entity.Form{
		ID:        uuid.NewString(),
		Title:     req.Description,
		Schema:    generated.Schema,
		UISchema:  generated.UISchema,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: save form: %w", entity.ErrGenerationFailed, err)
	}

	ctxzap.Info(ctx, "form generated",
		zap.String("form_id", form.ID),
		zap.Strings("fields", entity.PropertyNames(form.Schema)),
	)

	return form, nil
}

// GetForm returns the form with its responses in submission order
func (uc *FormUsecase) GetForm(ctx context.Context, id string) (*entity.Form, error) {
	form, err := uc.formRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get form: %w", err)
	}

	if form.Responses == nil {
		form.Responses = make([]*entity.Response, 0)
	}

	return form, nil
}
