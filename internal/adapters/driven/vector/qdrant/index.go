// Package qdrant provides a vector index adapter using the Qdrant REST API.
//
// Record IDs must be UUIDs; Qdrant rejects other string forms.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/citewise-labs/citewise-cli/internal/core/domain"
	"github.com/citewise-labs/citewise-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Default configuration values.
const (
	DefaultURL     = "http://localhost:6333"
	DefaultTimeout = 60 * time.Second
)

// Config holds configuration for the Qdrant vector index.
type Config struct {
	// URL is the Qdrant REST API base URL (default: http://localhost:6333).
	URL string

	// APIKey authenticates requests when the server requires it.
	APIKey string

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration
}

// Index is a Qdrant-backed implementation of driven.VectorIndex.
type Index struct {
	client *http.Client
	url    string
	apiKey string
}

// createCollectionRequest is the PUT /collections/{name} request format.
type createCollectionRequest struct {
	Vectors vectorParams `json:"vectors"`
}

// vectorParams describes a collection's vector configuration.
type vectorParams struct {
	Size     int    `json:"size"`
	Distance string `json:"distance"`
}

// getCollectionResponse is the GET /collections/{name} response format.
type getCollectionResponse struct {
	Result struct {
		Config struct {
			Params struct {
				Vectors vectorParams `json:"vectors"`
			} `json:"params"`
		} `json:"config"`
	} `json:"result"`
	Status any `json:"status"`
}

// upsertPointsRequest is the PUT /collections/{name}/points request format.
type upsertPointsRequest struct {
	Points []point `json:"points"`
}

// point is a single Qdrant point.
type point struct {
	ID      string       `json:"id"`
	Vector  []float32    `json:"vector"`
	Payload pointPayload `json:"payload"`
}

// pointPayload carries chunk provenance alongside the vector.
type pointPayload struct {
	Text        string `json:"text"`
	FileName    string `json:"file_name"`
	ChunkIndex  int    `json:"chunk_index"`
	SectionPath string `json:"section_path"`
}

// searchRequest is the POST /collections/{name}/points/search request format.
type searchRequest struct {
	Vector      []float32 `json:"vector"`
	Limit       int       `json:"limit"`
	WithPayload bool      `json:"with_payload"`
}

// searchResponse is the POST /collections/{name}/points/search response format.
type searchResponse struct {
	Result []struct {
		ID      any          `json:"id"`
		Score   float64      `json:"score"`
		Payload pointPayload `json:"payload"`
	} `json:"result"`
}

// NewIndex creates a new Qdrant vector index client.
func NewIndex(cfg Config) *Index {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Index{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		url:    cfg.URL,
		apiKey: cfg.APIKey,
	}
}

// EnsureCollection creates the collection with cosine distance if it does
// not exist. An existing collection with a different dimension is a
// configuration error, never silently recreated.
func (x *Index) EnsureCollection(ctx context.Context, name string, dims int) error {
	if dims <= 0 {
		return fmt.Errorf("qdrant: collection %s: dimensions must be positive, got %d", name, dims)
	}

	status, body, err := x.do(ctx, http.MethodGet, "/collections/"+name, nil)
	if err != nil {
		return err
	}

	switch status {
	case http.StatusOK:
		var got getCollectionResponse
		if err := json.Unmarshal(body, &got); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		if got.Result.Config.Params.Vectors.Size != dims {
			return fmt.Errorf("qdrant: collection %s has dimension %d, want %d: %w",
				name, got.Result.Config.Params.Vectors.Size, dims, domain.ErrDimensionMismatch)
		}
		return nil
	case http.StatusNotFound:
		reqBody := createCollectionRequest{
			Vectors: vectorParams{Size: dims, Distance: "Cosine"},
		}
		status, body, err = x.do(ctx, http.MethodPut, "/collections/"+name, reqBody)
		if err != nil {
			return err
		}
		if status != http.StatusOK {
			return fmt.Errorf("qdrant error (status %d): %s", status, string(body))
		}
		return nil
	default:
		return fmt.Errorf("qdrant error (status %d): %s", status, string(body))
	}
}

// Upsert writes records to the collection in one call, waiting for the
// write to be applied.
func (x *Index) Upsert(ctx context.Context, name string, records []domain.IndexRecord) error {
	if len(records) == 0 {
		return nil
	}

	points := make([]point, len(records))
	for i, record := range records {
		points[i] = point{
			ID:     record.ID,
			Vector: record.Vector,
			Payload: pointPayload{
				Text:        record.Text,
				FileName:    record.FileName,
				ChunkIndex:  record.ChunkIndex,
				SectionPath: record.SectionPath,
			},
		}
	}

	status, body, err := x.do(ctx, http.MethodPut, "/collections/"+name+"/points?wait=true",
		upsertPointsRequest{Points: points})
	if err != nil {
		return err
	}
	if status == http.StatusNotFound {
		return fmt.Errorf("qdrant: %w: %s", domain.ErrCollectionNotFound, name)
	}
	if status != http.StatusOK {
		return fmt.Errorf("qdrant error (status %d): %s", status, string(body))
	}
	return nil
}

// Search returns the k most similar records with their payloads. Scores
// are cosine similarity in descending order; tie order follows Qdrant's
// internal ordering. A missing collection yields no records.
func (x *Index) Search(ctx context.Context, name string, vector []float32, k int) ([]domain.ScoredRecord, error) {
	if k <= 0 {
		return nil, nil
	}

	status, body, err := x.do(ctx, http.MethodPost, "/collections/"+name+"/points/search",
		searchRequest{Vector: vector, Limit: k, WithPayload: true})
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("qdrant error (status %d): %s", status, string(body))
	}

	var searchResp searchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	results := make([]domain.ScoredRecord, 0, len(searchResp.Result))
	for _, r := range searchResp.Result {
		id, ok := r.ID.(string)
		if !ok {
			id = fmt.Sprintf("%v", r.ID)
		}
		results = append(results, domain.ScoredRecord{
			Record: domain.IndexRecord{
				ID:          id,
				Text:        r.Payload.Text,
				FileName:    r.Payload.FileName,
				ChunkIndex:  r.Payload.ChunkIndex,
				SectionPath: r.Payload.SectionPath,
			},
			Score: r.Score,
		})
	}
	return results, nil
}

// DeleteCollection removes the collection and all its points. Deleting a
// missing collection is not an error.
func (x *Index) DeleteCollection(ctx context.Context, name string) error {
	status, body, err := x.do(ctx, http.MethodDelete, "/collections/"+name, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusNotFound {
		return fmt.Errorf("qdrant error (status %d): %s", status, string(body))
	}
	return nil
}

// Ping validates the server is reachable by listing collections.
func (x *Index) Ping(ctx context.Context) error {
	status, body, err := x.do(ctx, http.MethodGet, "/collections", nil)
	if err != nil {
		return fmt.Errorf("qdrant: ping failed: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("qdrant: API returned status %d: %s", status, string(body))
	}
	return nil
}

// Close releases resources.
func (x *Index) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}

// do sends a JSON request and returns the status code and raw body.
func (x *Index) do(ctx context.Context, method, path string, reqBody any) (int, []byte, error) {
	var payload io.Reader
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal request: %w", err)
		}
		payload = bytes.NewReader(data)
	} else {
		payload = http.NoBody
	}

	req, err := http.NewRequestWithContext(ctx, method, x.url+path, payload)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if x.apiKey != "" {
		req.Header.Set("api-key", x.apiKey)
	}

	resp, err := x.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, body, nil
}
