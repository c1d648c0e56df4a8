package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/avast/retry-go/v4"
	"github.com/futig/form-builder/internal/config"
	"github.com/futig/form-builder/internal/entity"
	"github.com/futig/form-builder/internal/integration/common"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

var errEmptyCompletion = errors.New("completion has no content")

// Connector talks to an OpenAI-compatible chat completion API (OpenRouter by default).
type Connector struct {
	config config.LLMConnectorConfig
	client *openai.Client
}

func NewConnector(cfg config.LLMConnectorConfig) *Connector {
	httpClient := common.NewBaseClient(cfg.HTTPClientConfig, map[string]string{
		"HTTP-Referer": cfg.Referer,
		"X-Title":      cfg.AppTitle,
	})

	clientCfg := openai.DefaultConfig(cfg.Token)
	clientCfg.BaseURL = strings.TrimRight(cfg.Url, "/")
	clientCfg.HTTPClient = httpClient

	return &Connector{
		config: cfg,
		client: openai.NewClientWithConfig(clientCfg),
	}
}

// Complete sends one system+user chat completion and returns the first choice's content.
func (c *Connector) Complete(ctx context.Context, req *entity.LLMCompletionRequest) (string, error) {
	ctxzap.Info(ctx, "requesting chat completion",
		zap.String("model", c.config.Model),
		zap.Float32("temperature", c.config.Temperature),
	)

	chatReq := openai.ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.UserPrompt},
		},
		Temperature: c.config.Temperature,
	}
	if req.JSONObject {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	var content string
	opts := append(c.config.Retry.ToRetryOptions(ctx),
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			ctxzap.Warn(ctx, "retrying chat completion", zap.Uint("attempt", n+1), zap.Error(err))
		}),
	)

	err := retry.Do(func() error {
		resp, err := c.client.CreateChatCompletion(ctx, chatReq)
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
			return retry.Unrecoverable(errEmptyCompletion)
		}

		content = resp.Choices[0].Message.Content
		ctxzap.Info(ctx, "chat completion received",
			zap.String("finish_reason", string(resp.Choices[0].FinishReason)),
			zap.Int("total_tokens", resp.Usage.TotalTokens),
		)
		return nil
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	return content, nil
}

// isRetryable reports whether a provider error is worth another attempt:
// transport failures, rate limiting and 5xx responses.
func isRetryable(err error) bool {
	if errors.Is(err, errEmptyCompletion) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return retryableStatus(apiErr.HTTPStatusCode)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return retryableStatus(reqErr.HTTPStatusCode)
	}

	return true
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
