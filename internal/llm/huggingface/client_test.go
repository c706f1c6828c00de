package huggingface

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"resume-analyzer/internal/llm"
)

func TestSuggestPostsGenerationRequest(t *testing.T) {
	var req generationRequest
	var path, auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&req)
		_, _ = w.Write([]byte(`[{"generated_text":"Add measurable outcomes to each role.\nok"}]`))
	}))
	defer server.Close()

	client, err := NewClient("hf-key", "", server.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	out, err := client.Suggest(context.Background(), "Resume excerpt")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if out != "Add measurable outcomes to each role.\nok" {
		t.Fatalf("unexpected output %q", out)
	}
	if path != "/microsoft/DialoGPT-medium" {
		t.Fatalf("unexpected path %q", path)
	}
	if auth != "Bearer hf-key" {
		t.Fatalf("unexpected auth %q", auth)
	}
	if req.Inputs != "Resume excerpt" || req.Parameters.MaxNewTokens != 100 || req.Parameters.Temperature != 0.7 || req.Parameters.ReturnFullText {
		t.Fatalf("unexpected request %+v", req)
	}
}

func TestSuggestAcceptsObjectResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"generated_text":"single"}`))
	}))
	defer server.Close()

	client, _ := NewClient("k", "gpt2", server.URL, time.Second)
	out, err := client.Suggest(context.Background(), "p")
	if err != nil || out != "single" {
		t.Fatalf("unexpected result %q %v", out, err)
	}
}

func TestSuggestErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
		empty  bool
	}{
		{name: "loading", status: http.StatusServiceUnavailable, body: `{"error":"Model is currently loading"}`, want: "huggingface http status 503: Model is currently loading"},
		{name: "raw", status: http.StatusUnauthorized, body: `unauthorized`, want: "huggingface http status 401: unauthorized"},
		{name: "empty list", status: http.StatusOK, body: `[]`, empty: true},
		{name: "blank text", status: http.StatusOK, body: `[{"generated_text":"  "}]`, empty: true},
		{name: "bad json", status: http.StatusOK, body: `[{`, want: "response parse"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client, _ := NewClient("k", "m", server.URL, time.Second)
			_, err := client.Suggest(context.Background(), "p")
			if tt.empty {
				if !errors.Is(err, llm.ErrEmptyResponse) {
					t.Fatalf("expected ErrEmptyResponse, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient("", "m", "", 0); err == nil {
		t.Fatal("expected error for missing key")
	}
}
