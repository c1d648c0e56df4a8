package builder

import (
	"context"
	"fmt"
	"net/http"

	"github.com/futig/form-builder/internal/api"
	formapi "github.com/futig/form-builder/internal/api/form"
	submissionapi "github.com/futig/form-builder/internal/api/submission"
	"github.com/futig/form-builder/internal/config"
	"github.com/futig/form-builder/internal/integration/llm"
	"github.com/futig/form-builder/internal/pkg/formatter"
	"github.com/futig/form-builder/internal/pkg/validator"
	"github.com/futig/form-builder/internal/usecase/form"
	"github.com/futig/form-builder/internal/usecase/submission"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	return buildApp(context.Background(), cfg, logger)
}

func buildApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.Addr()),
		zap.String("form_store", cfg.StoreCfg.Kind),
		zap.String("llm_provider", cfg.LLMConnectorCfg.Provider),
	)

	st, err := setupStores(ctx, cfg.StoreCfg, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("Repositories initialized")

	llmConnector, err := setupLLMConnector(ctx, cfg.LLMConnectorCfg, logger)
	if err != nil {
		st.close()
		return nil, fmt.Errorf("setup llm connector: %w", err)
	}

	formValidator := validator.NewValidator(cfg.FormCfg)

	formUC := form.NewUsecase(st.forms, formValidator, llmConnector)
	submissionUC := submission.NewUsecase(st.forms, st.responses, formValidator, cfg.ResponseCfg.StrictFormReference)
	logger.Info("Use cases initialized",
		zap.Bool("strict_form_reference", cfg.ResponseCfg.StrictFormReference),
	)

	formHandler := formapi.NewHandler(formUC, formatter.NewFactory())
	submissionHandler := submissionapi.NewHandler(submissionUC)

	router := api.SetupRouter(formHandler, submissionHandler, api.RouterConfig{
		RequestTimeout:     cfg.HTTPCfg.RequestTimeout,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}, logger)
	logger.Info("HTTP router configured")

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.HTTPCfg.ReadTimeout,
		WriteTimeout: cfg.HTTPCfg.WriteTimeout,
		IdleTimeout:  cfg.HTTPCfg.IdleTimeout,
	}

	logger.Info("Application built successfully")

	return &App{
		server:          server,
		closeStores:     st.close,
		logger:          logger,
		shutdownTimeout: cfg.HTTPCfg.ShutdownTimeout,
	}, nil
}

func setupLLMConnector(ctx context.Context, cfg config.LLMConnectorConfig, logger *zap.Logger) (form.LLMConnector, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		logger.Info("Using OpenAI-compatible completion provider",
			zap.String("base_url", cfg.Url),
			zap.String("model", cfg.Model),
		)
		return llm.NewConnector(cfg), nil
	case config.ProviderGemini:
		logger.Info("Using Gemini completion provider", zap.String("model", cfg.Gemini.Model))
		conn, err := llm.NewGeminiConnector(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return conn, nil
	case config.ProviderMock:
		logger.Warn("Using mock completion provider")
		return llm.NewMockConnector(), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
