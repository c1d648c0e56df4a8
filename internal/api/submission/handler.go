package submission

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/futig/form-builder/internal/entity"
	"github.com/futig/form-builder/internal/pkg/logger"
	"github.com/futig/form-builder/internal/pkg/response"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	msgFieldsRequired    = "formId and formData are required"
	msgFormNotFound      = "Form not found for response"
	msgSaveFailed        = "Failed to save response."
	msgSavedSuccessfully = "Response saved successfully!"

	maxRequestBodySize = 1 << 20
)

type Handler struct {
	usecase SubmissionUsecase
}

func NewHandler(usecase SubmissionUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// SaveResponse handles POST /api/save-response
func (h *Handler) SaveResponse(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SaveResponse")

	var req entity.SaveResponseRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodySize)).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, msgFieldsRequired, err)
		return
	}

	ctx = logger.AddFields(ctx, zap.String("form_id", req.FormID))

	saved, err := h.usecase.SaveResponse(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "response saved successfully", zap.String("response_id", saved.ID))
	response.Success(w, &entity.SaveResponseResponse{
		Message:    msgSavedSuccessfully,
		ResponseID: saved.ID,
	})
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrInvalidInput):
		h.respondError(ctx, w, http.StatusBadRequest, msgFieldsRequired, err)
	case errors.Is(err, entity.ErrReferenceViolation):
		h.respondError(ctx, w, http.StatusBadRequest, msgFormNotFound, err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, msgSaveFailed, err)
	}
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	if status >= http.StatusInternalServerError {
		ctxzap.Error(ctx, message, zap.Error(err))
	} else {
		ctxzap.Warn(ctx, message, zap.Error(err))
	}
	response.Error(w, status, message)
}
