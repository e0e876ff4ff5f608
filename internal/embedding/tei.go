package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTEITimeout = 30 * time.Second
	maxErrorBody      = 512
)

// TEIEncoder calls the /embed_all route of a text-embeddings-inference server,
// which tokenizes with the model's own tokenizer, truncates to the model's
// input limit and returns unpooled token embeddings.
type TEIEncoder struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

type teiRequest struct {
	Inputs   []string `json:"inputs"`
	Truncate bool     `json:"truncate"`
}

// NewTEIEncoder creates an encoder for the server at endpoint.
func NewTEIEncoder(endpoint, apiKey string, timeout time.Duration) (*TEIEncoder, error) {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	parsed, err := url.Parse(endpoint)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid TEI endpoint %q", endpoint)
	}
	if timeout <= 0 {
		timeout = defaultTEITimeout
	}

	return &TEIEncoder{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

// Encode returns the token embeddings of each text.
func (t *TEIEncoder) Encode(ctx context.Context, texts []string) ([]TokenStates, error) {
	body, err := json.Marshal(teiRequest{Inputs: texts, Truncate: true})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint+"/embed_all", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if t.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+t.apiKey)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embed request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("embed request returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var batch [][][]float64
	if err := json.NewDecoder(resp.Body).Decode(&batch); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	states := make([]TokenStates, len(batch))
	for i, seq := range batch {
		states[i] = TokenStates{Vectors: seq}
	}
	return states, nil
}
