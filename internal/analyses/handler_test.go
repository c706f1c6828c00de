package analyses

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-analyzer/internal/shared/auth"
	"resume-analyzer/internal/shared/server/middleware"
)

func newTestRouter(t *testing.T) (*gin.Engine, fixture, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	signer, err := auth.NewSigner("test-secret", "dev")
	require.NoError(t, err)
	token, err := signer.Sign(auth.Claims{Sub: "github:7"})
	require.NoError(t, err)

	f := newFixture(t)
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Auth(signer))
	NewHandler(f.svc).RegisterRoutes(r.Group("/api/v1"))
	return r, f, token
}

func do(r http.Handler, method, path, token string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestAnalyzeDocumentEndpoint(t *testing.T) {
	router, f, token := newTestRouter(t)
	doc := f.upload(t, "github:7", "resume.txt", sampleResume)

	resp := do(router, http.MethodPost, "/api/v1/documents/"+doc.ID+"/analyze", token, nil)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var payload map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &payload))
	for _, key := range []string{"id", "overallScore", "atsScore", "readabilityScore", "skillsFound", "missingSkills", "suggestions", "grammarIssues", "keywords", "analyzedAt", "fileName", "fileUrl"} {
		assert.Contains(t, payload, key)
	}
	suggestions, ok := payload["suggestions"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, suggestions, "critical")

	id := payload["id"].(string)
	got := do(router, http.MethodGet, "/api/v1/analyses/"+id, token, nil)
	require.Equal(t, http.StatusOK, got.Code)

	var fetched Response
	require.NoError(t, json.Unmarshal(got.Body.Bytes(), &fetched))
	assert.Equal(t, id, fetched.ID)
	assert.Equal(t, doc.ID, fetched.DocumentID)

	list := do(router, http.MethodGet, "/api/v1/analyses?limit=100", token, nil)
	require.Equal(t, http.StatusOK, list.Code)
	var items []Response
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, id, items[0].ID)
}

func TestCreateAnalysisEndpoint(t *testing.T) {
	router, f, token := newTestRouter(t)
	doc := f.upload(t, "github:7", "resume.txt", sampleResume)

	resp := do(router, http.MethodPost, "/api/v1/analyses", token, []byte(`{"documentId":"`+doc.ID+`"}`))
	assert.Equal(t, http.StatusCreated, resp.Code)

	missing := do(router, http.MethodPost, "/api/v1/analyses", token, []byte(`{}`))
	assert.Equal(t, http.StatusBadRequest, missing.Code)
}

func TestAnalyzeEndpointErrors(t *testing.T) {
	router, f, token := newTestRouter(t)
	short := f.upload(t, "github:7", "short.txt", "too short")
	foreign := f.upload(t, "google:1", "resume.txt", sampleResume)

	tests := []struct {
		name   string
		path   string
		status int
		code   string
		msg    string
	}{
		{name: "too short", path: "/api/v1/documents/" + short.ID + "/analyze", status: http.StatusBadRequest, code: "text_too_short", msg: "Resume text is too short. Please upload a complete resume."},
		{name: "foreign", path: "/api/v1/documents/" + foreign.ID + "/analyze", status: http.StatusNotFound, code: "not_found"},
		{name: "unknown", path: "/api/v1/documents/abc/analyze", status: http.StatusNotFound, code: "not_found"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			resp := do(router, http.MethodPost, tt.path, token, nil)
			require.Equal(t, tt.status, resp.Code)
			var payload struct {
				Error struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &payload))
			assert.Equal(t, tt.code, payload.Error.Code)
			if tt.msg != "" {
				assert.Equal(t, tt.msg, payload.Error.Message)
			}
		})
	}
}

func TestAnalysesRequireAuth(t *testing.T) {
	router, _, _ := newTestRouter(t)
	resp := do(router, http.MethodGet, "/api/v1/analyses", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestGuardRunsOnlyOnScoringRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := newFixture(t)
	calls := 0
	guard := func(c *gin.Context) {
		calls++
		c.AbortWithStatus(http.StatusTooManyRequests)
	}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", "u")
		c.Next()
	})
	NewHandler(f.svc).RegisterRoutes(r.Group("/api/v1"), guard)

	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodPost, "/api/v1/documents/x/analyze", "", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodPost, "/api/v1/analyses", "", []byte(`{}`)).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/v1/analyses", "", nil).Code)
	assert.Equal(t, 2, calls)
}

func TestRequestIDPropagates(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", requestIDFromContext(ctx))
	assert.Equal(t, "", requestIDFromContext(context.Background()))
}
