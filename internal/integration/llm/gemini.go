package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avast/retry-go/v4"
	"github.com/futig/form-builder/internal/config"
	"github.com/futig/form-builder/internal/entity"
	"github.com/futig/form-builder/internal/integration/common"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiConnector completes prompts with the Gemini API.
type GeminiConnector struct {
	config config.LLMConnectorConfig
	client *genai.Client
}

func NewGeminiConnector(ctx context.Context, cfg config.LLMConnectorConfig) (*GeminiConnector, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.Gemini.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: common.NewBaseClient(cfg.HTTPClientConfig, nil),
	}
	if cfg.Gemini.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.Gemini.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiConnector{
		config: cfg,
		client: client,
	}, nil
}

func (c *GeminiConnector) Complete(ctx context.Context, req *entity.LLMCompletionRequest) (string, error) {
	model := c.config.Gemini.Model
	ctxzap.Info(ctx, "requesting gemini completion", zap.String("model", model))

	temperature := c.config.Temperature
	genCfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemPrompt}},
		},
		Temperature: &temperature,
	}
	if req.JSONObject {
		genCfg.ResponseMIMEType = "application/json"
		genCfg.ResponseJsonSchema = generatedFormSchema()
	}

	contents := []*genai.Content{{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: req.UserPrompt}},
	}}

	var text string
	opts := append(c.config.Retry.ToRetryOptions(ctx),
		retry.RetryIf(isRetryableGemini),
		retry.OnRetry(func(n uint, err error) {
			ctxzap.Warn(ctx, "retrying gemini completion", zap.Uint("attempt", n+1), zap.Error(err))
		}),
	)

	err := retry.Do(func() error {
		result, err := c.client.Models.GenerateContent(ctx, model, contents, genCfg)
		if err != nil {
			return err
		}

		text = result.Text()
		if strings.TrimSpace(text) == "" {
			return retry.Unrecoverable(errEmptyCompletion)
		}
		if result.UsageMetadata != nil {
			ctxzap.Info(ctx, "gemini completion received",
				zap.Int32("total_tokens", result.UsageMetadata.TotalTokenCount),
			)
		}
		return nil
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	return text, nil
}

func isRetryableGemini(err error) bool {
	if errors.Is(err, errEmptyCompletion) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return retryableStatus(apiErr.Code)
	}

	return true
}
