package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	formapi "github.com/futig/form-builder/internal/api/form"
	submissionapi "github.com/futig/form-builder/internal/api/submission"
	"github.com/futig/form-builder/internal/config"
	"github.com/futig/form-builder/internal/entity"
	"github.com/futig/form-builder/internal/integration/llm"
	"github.com/futig/form-builder/internal/pkg/formatter"
	"github.com/futig/form-builder/internal/pkg/validator"
	"github.com/futig/form-builder/internal/repository"
	formuc "github.com/futig/form-builder/internal/usecase/form"
	submissionuc "github.com/futig/form-builder/internal/usecase/submission"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	return newTestServerWith(t, llm.NewMockConnector(), RouterConfig{RequestTimeout: 5 * time.Second, CORSAllowedOrigins: []string{"*"}})
}

func newTestServerWith(t *testing.T, conn formuc.LLMConnector, cfg RouterConfig) *httptest.Server {
	t.Helper()

	logger := zap.NewNop()
	db := repository.NewMemoryDB()
	formRepo := repository.NewFormMemory(db)
	responseRepo := repository.NewResponseMemory(db)
	v := validator.NewValidator(config.FormConfig{})

	router := SetupRouter(
		formapi.NewHandler(formuc.NewUsecase(formRepo, v, conn), formatter.NewFactory()),
		submissionapi.NewHandler(submissionuc.NewUsecase(formRepo, responseRepo, v, true)),
		cfg,
		logger,
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

// slowConnector answers with the mock form after delay unless the context ends first
type slowConnector struct {
	delay time.Duration
}

func (c slowConnector) Complete(ctx context.Context, _ *entity.LLMCompletionRequest) (string, error) {
	select {
	case <-time.After(c.delay):
		return llm.MockGeneratedForm, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func postJSON(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()

	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func getJSON(t *testing.T, url string) (*http.Response, map[string]any) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestContactFormLifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp, generated := postJSON(t, srv.URL+"/api/generate-schema", `{"description":"Contact form with name and email"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	formID, _ := generated["id"].(string)
	_, err := uuid.Parse(formID)
	require.NoError(t, err)

	schema := generated["schema"].(map[string]any)
	properties := schema["properties"].(map[string]any)
	assert.Equal(t, "email", properties["email"].(map[string]any)["format"])
	assert.ElementsMatch(t, []any{"name", "email"}, schema["required"])
	assert.Contains(t, generated, "uiSchema")

	resp, form := getJSON(t, srv.URL+"/api/forms/"+formID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Contact form with name and email", form["title"])
	assert.Equal(t, []any{}, form["responses"])

	resp, saved := postJSON(t, srv.URL+"/api/save-response",
		`{"formId":"`+formID+`","formData":{"name":"Ann","email":"ann@example.com"},"formTitle":"Contact form with name and email"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Response saved successfully!", saved["message"])
	responseID, _ := saved["responseId"].(string)
	assert.NotEmpty(t, responseID)

	resp, form = getJSON(t, srv.URL+"/api/forms/"+formID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	responses := form["responses"].([]any)
	require.Len(t, responses, 1)
	first := responses[0].(map[string]any)
	assert.Equal(t, responseID, first["id"])
	assert.Equal(t, formID, first["formId"])
	assert.Equal(t, map[string]any{"name": "Ann", "email": "ann@example.com"}, first["data"])

	exportResp, err := http.Get(srv.URL + "/api/forms/" + formID + "/export?format=markdown")
	require.NoError(t, err)
	defer exportResp.Body.Close()
	require.Equal(t, http.StatusOK, exportResp.StatusCode)
	assert.Equal(t, `attachment; filename="form-`+formID+`.md"`, exportResp.Header.Get("Content-Disposition"))

	var doc bytes.Buffer
	_, err = doc.ReadFrom(exportResp.Body)
	require.NoError(t, err)
	assert.Contains(t, doc.String(), "ann@example.com")
}

func TestErrorResponses(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantError  string
	}{
		{
			name: "blank description", method: http.MethodPost, path: "/api/generate-schema",
			body: `{"description":"   "}`, wantStatus: http.StatusBadRequest, wantError: "Description is required",
		},
		{
			name: "missing description", method: http.MethodPost, path: "/api/generate-schema",
			body: `{}`, wantStatus: http.StatusBadRequest, wantError: "Description is required",
		},
		{
			name: "malformed generate body", method: http.MethodPost, path: "/api/generate-schema",
			body: `{"description":`, wantStatus: http.StatusBadRequest, wantError: "Description is required",
		},
		{
			name: "missing form data", method: http.MethodPost, path: "/api/save-response",
			body: `{"formId":"` + uuid.NewString() + `"}`, wantStatus: http.StatusBadRequest, wantError: "formId and formData are required",
		},
		{
			name: "missing form id", method: http.MethodPost, path: "/api/save-response",
			body: `{"formData":{"a":1}}`, wantStatus: http.StatusBadRequest, wantError: "formId and formData are required",
		},
		{
			name: "response for unknown form", method: http.MethodPost, path: "/api/save-response",
			body: `{"formId":"` + uuid.NewString() + `","formData":{"a":1}}`, wantStatus: http.StatusBadRequest, wantError: "Form not found for response",
		},
		{
			name: "unknown form", method: http.MethodGet, path: "/api/forms/" + uuid.NewString(),
			wantStatus: http.StatusNotFound, wantError: "Form not found",
		},
		{
			name: "malformed form id", method: http.MethodGet, path: "/api/forms/not-a-uuid",
			wantStatus: http.StatusNotFound, wantError: "Form not found",
		},
		{
			name: "unsupported export format", method: http.MethodGet, path: "/api/forms/" + uuid.NewString() + "/export?format=xlsx",
			wantStatus: http.StatusBadRequest, wantError: "invalid format parameter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, srv.URL+tt.path, strings.NewReader(tt.body))
			require.NoError(t, err)
			req.Header.Set("Content-Type", "application/json")

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, map[string]string{"error": tt.wantError}, body)
		})
	}
}

func TestHealthAndDocs(t *testing.T) {
	srv := newTestServer(t)

	resp, body := getJSON(t, srv.URL+"/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body["status"])
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	yamlResp, err := http.Get(srv.URL + "/docs/swagger.yaml")
	require.NoError(t, err)
	defer yamlResp.Body.Close()
	assert.Equal(t, http.StatusOK, yamlResp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/generate-schema", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestGenerateSchema_SlowProviderCompletesWithoutRequestTimeout(t *testing.T) {
	srv := newTestServerWith(t, slowConnector{delay: 300 * time.Millisecond}, RouterConfig{CORSAllowedOrigins: []string{"*"}})

	resp, body := postJSON(t, srv.URL+"/api/generate-schema", `{"description":"Contact form with name and email"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["id"])
	assert.Contains(t, body, "schema")
}

func TestGenerateSchema_ConfiguredRequestTimeoutBoundsProvider(t *testing.T) {
	srv := newTestServerWith(t, slowConnector{delay: time.Second}, RouterConfig{
		RequestTimeout:     50 * time.Millisecond,
		CORSAllowedOrigins: []string{"*"},
	})

	resp, body := postJSON(t, srv.URL+"/api/generate-schema", `{"description":"Survey"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Failed to generate form schema.", body["error"])
}
