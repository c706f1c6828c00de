package users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-analyzer/internal/shared/auth"
	"resume-analyzer/internal/shared/server/middleware"
)

func TestMeReturnsStoredProfile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := NewService(NewMemoryRepo())
	if _, err := svc.EnsureUser(context.Background(), User{ID: "github:5", Email: "dev@example.com", Name: "Dev"}); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	signer, _ := auth.NewSigner("s", "dev")
	known, _ := signer.Sign(auth.Claims{Sub: "github:5"})
	unknown, _ := signer.Sign(auth.Claims{Sub: "github:6", Name: "Token Name"})

	r := gin.New()
	r.Use(middleware.Auth(signer))
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+known)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["email"] != "dev@example.com" || body["provider"] != "github" {
		t.Fatalf("unexpected body %v", body)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+unknown)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body = map[string]string{}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["id"] != "github:6" || body["name"] != "Token Name" || body["provider"] != "github" {
		t.Fatalf("expected claims fallback, got %v", body)
	}
}
