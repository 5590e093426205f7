package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func embeddingServer(t *testing.T, vectors [][]float32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/embeddings" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		data := make([]map[string]interface{}, len(vectors))
		for i, v := range vectors {
			data[i] = map[string]interface{}{"object": "embedding", "index": i, "embedding": v}
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"object": "list",
			"data":   data,
		})
	}))
}

func TestOpenAIAdapter_Embed(t *testing.T) {
	server := embeddingServer(t, [][]float32{{0.1, 0.2, 0.3}})
	defer server.Close()

	adapter := NewOpenAIAdapter("test-key", server.URL+"/v1", "test-model", 5*time.Second)
	vec, err := adapter.Embed(context.Background(), "theft")

	if err != nil {
		t.Fatalf("embed failed: %v", err)
	}
	if len(vec) != 3 || vec[0] != 0.1 {
		t.Errorf("unexpected embedding: %v", vec)
	}
}

func TestOpenAIAdapter_EmbedBatch(t *testing.T) {
	server := embeddingServer(t, [][]float32{{1, 0}, {0, 1}})
	defer server.Close()

	adapter := NewOpenAIAdapter("test-key", server.URL+"/v1", "test-model", 5*time.Second)
	vectors, err := adapter.EmbedBatch(context.Background(), []string{"a", "b"})

	if err != nil {
		t.Fatalf("embed batch failed: %v", err)
	}
	if len(vectors) != 2 {
		t.Fatalf("expected 2 vectors, got %d", len(vectors))
	}
}

func TestOpenAIAdapter_CountMismatch(t *testing.T) {
	server := embeddingServer(t, [][]float32{{1, 0}})
	defer server.Close()

	adapter := NewOpenAIAdapter("test-key", server.URL+"/v1", "test-model", 5*time.Second)
	_, err := adapter.EmbedBatch(context.Background(), []string{"a", "b"})

	if err == nil {
		t.Error("expected error when response count does not match input count")
	}
}
