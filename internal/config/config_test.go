package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig_Defaults(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "mock")

	cfg, err := parseConfig("local")
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Environment)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, StoreMemory, cfg.StoreCfg.Kind)
	assert.Equal(t, time.Hour, cfg.StoreCfg.MemoryOrphanTTL)
	assert.True(t, cfg.ResponseCfg.StrictFormReference)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, time.Duration(0), cfg.HTTPCfg.RequestTimeout)
	assert.Equal(t, time.Duration(0), cfg.HTTPCfg.WriteTimeout)

	llm := cfg.LLMConnectorCfg
	assert.Equal(t, "mistralai/mistral-7b-instruct:free", llm.Model)
	assert.InDelta(t, 0.1, llm.Temperature, 1e-6)
	assert.Equal(t, "https://openrouter.ai/api/v1", llm.Url)
	assert.Equal(t, time.Duration(0), llm.RequestTimeout)
	assert.EqualValues(t, 1, llm.Retry.Attempts)
}

func TestParseConfig_ServerAddrOverridesPort(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "mock")
	t.Setenv("PORT", "8080")

	cfg, err := parseConfig("local")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr())

	t.Setenv("SERVER_ADDR", "127.0.0.1:9000")
	cfg, err = parseConfig("local")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr())
}

func TestParseConfig_PostgresRequiresDatabaseURL(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "mock")
	t.Setenv("FORM_STORE", "Postgres")

	_, err := parseConfig("local")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL is required")
}

func TestParseConfig_OpenAIRequiresAPIKey(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "openai")

	_, err := parseConfig("local")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM_API_KEY is required")

	t.Setenv("LLM_API_KEY", "sk-test")
	_, err = parseConfig("local")
	assert.NoError(t, err)
}

func TestValidateConfig_ReportsAllErrors(t *testing.T) {
	cfg := &Config{
		StoreCfg: StoreConfig{Kind: "redis"},
		LLMConnectorCfg: LLMConnectorConfig{
			Provider:    "anthropic",
			Temperature: 3,
		},
	}

	err := validateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FORM_STORE must be one of")
	assert.Contains(t, err.Error(), "LLM_PROVIDER must be one of")
	assert.Contains(t, err.Error(), "LLM_TEMPERATURE must be between")
	assert.Contains(t, err.Error(), "LLM_RETRY_ATTEMPTS must be between")
}

func TestGetEnvFile(t *testing.T) {
	assert.Equal(t, ".env.prod", getEnvFile("production"))
	assert.Equal(t, ".env.local", getEnvFile("dev"))
	assert.Equal(t, ".env.staging", getEnvFile("staging"))
}
