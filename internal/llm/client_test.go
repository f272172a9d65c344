package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestOllamaClientGenerate(t *testing.T) {
	var gotReq generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":"{\"mood_score\":0.5}","done":true}`))
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "llama3.2:1b", zap.NewNop())
	out, err := c.Generate(context.Background(), "how was my day")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if out != `{"mood_score":0.5}` {
		t.Fatalf("unexpected completion: %q", out)
	}
	if gotReq.Model != "llama3.2:1b" {
		t.Errorf("model not forwarded, got %q", gotReq.Model)
	}
	if gotReq.Stream {
		t.Error("expected non-streaming request")
	}
	if gotReq.Prompt != "how was my day" {
		t.Errorf("prompt not forwarded, got %q", gotReq.Prompt)
	}
}

func TestOllamaClientGenerateHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "missing", zap.NewNop())
	if _, err := c.Generate(context.Background(), "x"); err == nil {
		t.Fatal("expected error for HTTP 404")
	} else if !strings.Contains(err.Error(), "status=404") {
		t.Fatalf("expected status in error, got: %v", err)
	}
}

func TestOllamaClientGenerateAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"out of memory"}`))
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "llama3.2:1b", zap.NewNop())
	if _, err := c.Generate(context.Background(), "x"); err == nil {
		t.Fatal("expected error for api error body")
	}
}

func TestOllamaClientGenerateBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>gateway</html>"))
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "llama3.2:1b", zap.NewNop())
	if _, err := c.Generate(context.Background(), "x"); err == nil {
		t.Fatal("expected error for non-JSON body")
	}
}
