package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedauth "resume-analyzer/internal/shared/auth"
	"resume-analyzer/internal/shared/config"
)

const sampleResume = `Jane Doe
Senior software engineer with 8 years of experience. I led a team of five engineers.
Developed microservices in Go and Python on AWS with Docker and Kubernetes.
Implemented CI/CD pipelines and improved deployment speed by 40%.
github.com/janedoe`

func devConfig(t *testing.T) config.Config {
	return config.Config{
		Env:              "dev",
		ObjectStoreType:  "local",
		LocalStoreDir:    t.TempDir(),
		LLMProvider:      "none",
		SkillMatchMode:   "substring",
		UIRedirectURL:    "http://localhost:3000/auth/callback",
		AnalyzeRateLimit: 1,
		AnalyzeBurst:     5,
	}
}

func do(t *testing.T, app *App, req *http.Request, token string) *httptest.ResponseRecorder {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	return resp
}

func uploadRequest(t *testing.T, name, content string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestBuildInMemoryUploadAndAnalyze(t *testing.T) {
	app, err := Build(context.Background(), devConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	assert.Nil(t, app.DB)
	assert.Nil(t, app.Redis)

	token, err := app.Signer.Sign(sharedauth.Claims{Sub: "google:1"})
	require.NoError(t, err)

	resp := do(t, app, uploadRequest(t, "resume.txt", sampleResume), token)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var doc map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &doc))
	docID, _ := doc["documentId"].(string)
	require.NotEmpty(t, docID)

	resp = do(t, app, httptest.NewRequest(http.MethodPost, "/api/v1/documents/"+docID+"/analyze", nil), token)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var analysis map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &analysis))
	assert.NotEmpty(t, analysis["id"])
	assert.Contains(t, analysis, "overallScore")
	assert.Contains(t, analysis["skillsFound"], "Python")

	resp = do(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/analyses", nil), token)
	require.Equal(t, http.StatusOK, resp.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	// Another user cannot see the analysis.
	other, err := app.Signer.Sign(sharedauth.Claims{Sub: "github:2"})
	require.NoError(t, err)
	resp = do(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/analyses/"+analysis["id"].(string), nil), other)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	fileURL, _ := analysis["fileUrl"].(string)
	require.True(t, strings.HasPrefix(fileURL, "/files/"), fileURL)
	resp = do(t, app, httptest.NewRequest(http.MethodGet, fileURL, nil), "")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, sampleResume, resp.Body.String())
}

func TestBuildHealth(t *testing.T) {
	app, err := Build(context.Background(), devConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	resp := do(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil), "")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"database":"memory"`)
}

func TestBuildRequiresDatabaseOutsideDev(t *testing.T) {
	cfg := devConfig(t)
	cfg.Env = "production"
	cfg.JWTSecret = "prod-secret"

	_, err := Build(context.Background(), cfg)
	require.Error(t, err)
}

func TestBuildSuggesterSelection(t *testing.T) {
	ctx := context.Background()

	s, err := buildSuggester(ctx, config.Config{LLMProvider: "none"})
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = buildSuggester(ctx, config.Config{LLMProvider: "openai"})
	require.NoError(t, err)
	assert.Nil(t, s, "missing key disables enrichment")

	s, err = buildSuggester(ctx, config.Config{LLMProvider: "huggingface", HuggingFaceAPIKey: "hf"})
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestBuildWiresEnrichmentCache(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cfg := devConfig(t)
	cfg.LLMProvider = "openai"
	cfg.OpenAIAPIKey = "sk-test"
	cfg.RedisAddr = mr.Addr()

	app, err := Build(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	assert.NotNil(t, app.Redis)

	cfg.RedisAddr = "127.0.0.1:1"
	app2, err := Build(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app2.Close() })
	assert.Nil(t, app2.Redis)
}

func TestS3StoreRequiresBucket(t *testing.T) {
	cfg := devConfig(t)
	cfg.ObjectStoreType = "s3"

	_, err := Build(context.Background(), cfg)
	require.Error(t, err)
}
