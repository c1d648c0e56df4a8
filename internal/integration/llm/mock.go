package llm

import (
	"context"

	"github.com/futig/form-builder/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockGeneratedForm is what MockConnector returns for every prompt.
const MockGeneratedForm = `{"schema":{"type":"object","properties":{"name":{"type":"string"},"email":{"type":"string","format":"email"}},"required":["name","email"]},"uiSchema":{"email":{"ui:placeholder":"you@example.com"}}}`

// MockConnector answers every completion with a fixed contact form, for local runs without a provider key.
type MockConnector struct{}

func NewMockConnector() *MockConnector {
	return &MockConnector{}
}

func (m *MockConnector) Complete(ctx context.Context, req *entity.LLMCompletionRequest) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating form schema", zap.Int("prompt_length", len(req.UserPrompt)))
	return MockGeneratedForm, nil
}
