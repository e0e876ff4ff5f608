package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTEIEncoder_Encode(t *testing.T) {
	var gotReq teiRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embed_all", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[[[1,2],[3,4]],[[5,6]]]`))
	}))
	defer server.Close()

	enc, err := NewTEIEncoder(server.URL+"/", "secret", time.Second)
	require.NoError(t, err)

	states, err := enc.Encode(context.Background(), []string{"first", "second"})
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, gotReq.Inputs)
	assert.True(t, gotReq.Truncate)
	require.Len(t, states, 2)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, states[0].Vectors)
	assert.Equal(t, [][]float64{{5, 6}}, states[1].Vectors)
}

func TestTEIEncoder_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	enc, err := NewTEIEncoder(server.URL, "", time.Second)
	require.NoError(t, err)

	_, err = enc.Encode(context.Background(), []string{"text"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestTEIEncoder_BadPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error":"nope"}`))
	}))
	defer server.Close()

	enc, err := NewTEIEncoder(server.URL, "", time.Second)
	require.NoError(t, err)

	_, err = enc.Encode(context.Background(), []string{"text"})
	assert.Error(t, err)
}

func TestNewTEIEncoder_InvalidEndpoint(t *testing.T) {
	_, err := NewTEIEncoder("not a url", "", 0)
	assert.Error(t, err)
}

func TestEngineWithTEI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[[[1,0],[1,0]],[[0,1]]]`))
	}))
	defer server.Close()

	enc, err := NewEncoder(context.Background(), &Config{Backend: BackendTEI, Endpoint: server.URL})
	require.NoError(t, err)

	got := NewEngine(enc).Compare(context.Background(), FacetSkills, "go", "rust")
	require.True(t, got.Usable)
	assert.InDelta(t, 0.0, got.Score, 1e-9)
}

func TestNewEncoder_UnknownBackend(t *testing.T) {
	_, err := NewEncoder(context.Background(), &Config{Backend: "onnx"})
	assert.Error(t, err)
}

func TestNewEncoder_GeminiRequiresKey(t *testing.T) {
	_, err := NewEncoder(context.Background(), &Config{Backend: BackendGemini})
	assert.Error(t, err)
}
