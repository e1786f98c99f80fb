package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Setenv("TEST_EMBED_KEY", "sk-test")

	c, err := NewClient(Config{BaseURL: srv.URL, APIKeyEnv: "TEST_EMBED_KEY", Model: "test-embed"})
	require.NoError(t, err)
	return c
}

func writeEmbedding(w http.ResponseWriter, vec []float32) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"object": "list",
		"model":  "test-embed",
		"data": []map[string]any{
			{"object": "embedding", "index": 0, "embedding": vec},
		},
	})
}

func TestNewClient_MissingKey(t *testing.T) {
	t.Setenv("MISSING_EMBED_KEY", "")
	_, err := NewClient(Config{APIKeyEnv: "MISSING_EMBED_KEY"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MISSING_EMBED_KEY")
}

func TestClient_Embed(t *testing.T) {
	var gotAuth, gotPath string
	var gotBody struct {
		Model string   `json:"model"`
		Input []string `json:"input"`
	}
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		writeEmbedding(w, []float32{0.1, 0.2, 0.3})
	})

	vec, err := c.Embed(context.Background(), "sốt đau họng")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
	assert.Equal(t, 3, c.Dimension())
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "/embeddings", gotPath)
	assert.Equal(t, "test-embed", gotBody.Model)
	assert.Equal(t, []string{"sốt đau họng"}, gotBody.Input)
}

func TestClient_EmbedEmptyText(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	_, err := c.Embed(context.Background(), "")
	require.Error(t, err)
}

func TestClient_EmbedServerError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"boom","type":"server_error"}}`, http.StatusInternalServerError)
	})
	_, err := c.Embed(context.Background(), "ho")
	require.Error(t, err)
}

func TestClient_EmbedDimensionChange(t *testing.T) {
	calls := 0
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			writeEmbedding(w, []float32{1, 0})
			return
		}
		writeEmbedding(w, []float32{1, 0, 0})
	})
	_, err := c.Embed(context.Background(), "a")
	require.NoError(t, err)
	_, err = c.Embed(context.Background(), "b")
	require.Error(t, err)
}
