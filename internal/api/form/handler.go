package form

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/futig/form-builder/internal/entity"
	"github.com/futig/form-builder/internal/pkg/formatter"
	"github.com/futig/form-builder/internal/pkg/logger"
	"github.com/futig/form-builder/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	msgDescriptionRequired = "Description is required"
	msgGenerateFailed      = "Failed to generate form schema."
	msgFormNotFound        = "Form not found"
	msgFetchFailed         = "Failed to fetch form."

	maxRequestBodySize = 1 << 20
)

type Handler struct {
	usecase   FormUsecase
	formatter *formatter.Factory
}

func NewHandler(usecase FormUsecase, formatterFactory *formatter.Factory) *Handler {
	return &Handler{
		usecase:   usecase,
		formatter: formatterFactory,
	}
}

// GenerateSchema handles POST /api/generate-schema
func (h *Handler) GenerateSchema(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GenerateSchema")

	var req entity.GenerateSchemaRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodySize)).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, msgDescriptionRequired, err)
		return
	}

	ctxzap.Info(ctx, "generating form schema", zap.Int("description_length", len(req.Description)))

	form, err := h.usecase.GenerateForm(ctx, &req)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidInput) {
			h.respondError(ctx, w, http.StatusBadRequest, msgDescriptionRequired, err)
			return
		}
		h.respondError(ctx, w, http.StatusInternalServerError, msgGenerateFailed, err)
		return
	}

	ctxzap.Info(ctx, "form schema generated successfully", zap.String("form_id", form.ID))
	response.Success(w, toGenerateSchemaResponse(form))
}

// GetForm handles GET /api/forms/{form_id}
func (h *Handler) GetForm(w http.ResponseWriter, r *http.Request) {
	formID := chi.URLParam(r, "form_id")
	ctx := logger.AddFields(r.Context(),
		zap.String("form_id", formID),
		zap.String("action", "GetForm"),
	)

	ctxzap.Debug(ctx, "fetching form")

	form, err := h.usecase.GetForm(ctx, formID)
	if err != nil {
		h.handleGetError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "form fetched successfully", zap.Int("response_count", len(form.Responses)))
	response.Success(w, toFormDetail(form))
}

// ExportForm handles GET /api/forms/{form_id}/export
func (h *Handler) ExportForm(w http.ResponseWriter, r *http.Request) {
	formID := chi.URLParam(r, "form_id")
	ctx := logger.AddFields(r.Context(),
		zap.String("form_id", formID),
		zap.String("action", "ExportForm"),
	)

	formatParam := r.URL.Query().Get("format")
	if formatParam == "" {
		formatParam = string(entity.ExportMarkdown)
	}

	format := entity.ExportFormat(formatParam)
	if !format.IsValid() {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid format parameter",
			fmt.Errorf("%w: format must be one of: markdown, docx, pdf", entity.ErrUnsupportedFormat))
		return
	}

	ctx = logger.AddFields(ctx, zap.String("format", string(format)))

	form, err := h.usecase.GetForm(ctx, formID)
	if err != nil {
		h.handleGetError(ctx, w, err)
		return
	}

	fmtr, err := h.formatter.Create(format)
	if err != nil {
		h.respondError(ctx, w, http.StatusNotImplemented, "format not implemented", err)
		return
	}

	document, err := fmtr.Format(formatter.NewReport(form))
	if err != nil {
		h.respondError(ctx, w, http.StatusInternalServerError, "failed to format form", err)
		return
	}

	ctxzap.Info(ctx, "form exported successfully", zap.Int("size", len(document)))
	w.Header().Set("Content-Type", fmtr.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"form-%s%s\"", form.ID, fmtr.FileExtension()))
	w.WriteHeader(http.StatusOK)
	w.Write(document)
}

func (h *Handler) handleGetError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, entity.ErrNotFound) {
		ctxzap.Warn(ctx, msgFormNotFound, zap.Error(err))
		response.Error(w, http.StatusNotFound, msgFormNotFound)
		return
	}
	h.respondError(ctx, w, http.StatusInternalServerError, msgFetchFailed, err)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		ctxzap.Error(ctx, message, zap.Error(err))
	} else {
		ctxzap.Error(ctx, message)
	}
	response.Error(w, status, message)
}
