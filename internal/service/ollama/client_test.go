package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"chatfolio/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestListModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("path = %s, want /api/tags", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"models":[{"name":"llama3:8b","size":4661224676},{"name":"mistral:latest","size":4109865159}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, testLogger())
	models, err := client.ListModels(context.Background())
	if err != nil {
		t.Fatalf("list models: %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("model count = %d, want 2", len(models))
	}
	if models[0].Name != "llama3:8b" {
		t.Errorf("first model = %s, want llama3:8b", models[0].Name)
	}
}

func TestGenerate_ForcesStreamOff(t *testing.T) {
	var sawStream *bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		sawStream = &req.Stream
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"model":"llama3:8b","response":"hello","done":true}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, testLogger())
	resp, err := client.Generate(context.Background(), &GenerateRequest{
		Model:  "llama3:8b",
		Prompt: "say hello",
		Stream: true,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if resp.Response != "hello" {
		t.Errorf("response = %q, want %q", resp.Response, "hello")
	}
	if sawStream == nil || *sawStream {
		t.Error("stream flag reached the daemon as true, want forced false")
	}
}

func TestUpstreamErrorsMapToUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, testLogger())
	if _, err := client.ListModels(context.Background()); !errors.Is(err, domain.ErrUnavailable) {
		t.Errorf("upstream 500: error = %v, want ErrUnavailable", err)
	}
}

func TestUnreachableDaemonMapsToUnavailable(t *testing.T) {
	// Port 0 is never listening
	client := NewClient("http://127.0.0.1:0", testLogger())
	if _, err := client.ListModels(context.Background()); !errors.Is(err, domain.ErrUnavailable) {
		t.Errorf("unreachable daemon: error = %v, want ErrUnavailable", err)
	}
}
