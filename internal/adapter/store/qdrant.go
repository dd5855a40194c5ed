package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/aryamansethi1503/summarizationWithAI/internal/domain"
)

// QdrantStore is a minimal REST client to a Qdrant collection. It assumes
// cosine distance and keeps a payload index on the filename field so that
// per-file fetches and cascade deletes filter server-side.
type QdrantStore struct {
	url        string
	apiKey     string
	collection string
	dimension  int
	client     *http.Client

	mu    sync.RWMutex
	epoch uint64
}

// QdrantOptions configures a QdrantStore.
type QdrantOptions struct {
	URL        string
	APIKey     string
	Collection string
	Dimension  int
	Timeout    time.Duration
}

// NewQdrantStore creates a Qdrant-backed chunk store and ensures the
// collection exists with the expected schema.
func NewQdrantStore(ctx context.Context, opts QdrantOptions) (*QdrantStore, error) {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	s := &QdrantStore{
		url:        opts.URL,
		apiKey:     opts.APIKey,
		collection: opts.Collection,
		dimension:  opts.Dimension,
		client:     &http.Client{Timeout: timeout},
	}
	if err := s.ensureCollection(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *QdrantStore) ensureCollection(ctx context.Context) error {
	exists, err := s.collectionExists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		body := map[string]any{
			"vectors": map[string]any{
				"size":     s.dimension,
				"distance": "Cosine",
			},
		}
		if err := s.putJSON(ctx, fmt.Sprintf("%s/collections/%s", s.url, s.collection), body); err != nil {
			return err
		}
	}
	// Keyword index on filename so filtered scroll/delete stay cheap.
	index := map[string]any{
		"field_name":   "filename",
		"field_schema": "keyword",
	}
	return s.putJSON(ctx, fmt.Sprintf("%s/collections/%s/index", s.url, s.collection), index)
}

func (s *QdrantStore) collectionExists(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/collections/%s", s.url, s.collection), nil)
	if err != nil {
		return false, err
	}
	s.setHeaders(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusOK:
		return true, nil
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("qdrant GET collection failed: %s", resp.Status)
	}
}

func (s *QdrantStore) Insert(ctx context.Context, epoch uint64, chunk domain.Chunk) error {
	s.mu.RLock()
	current := s.epoch
	s.mu.RUnlock()
	if epoch != current {
		return domain.ErrStaleEpoch
	}

	body := map[string]any{
		"points": []map[string]any{{
			"id":     chunk.ID,
			"vector": chunk.Vector,
			"payload": map[string]any{
				"filename": chunk.Filename,
				"ordinal":  chunk.Ordinal,
				"text":     chunk.Text,
			},
		}},
	}
	return s.putJSON(ctx, fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, s.collection), body)
}

type qdrantPoint struct {
	ID      string         `json:"id"`
	Score   float64        `json:"score"`
	Payload map[string]any `json:"payload"`
}

func (s *QdrantStore) Search(ctx context.Context, vector []float32, k int) ([]domain.ScoredChunk, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", domain.ErrInvalidArgument, k)
	}

	req := map[string]any{
		"vector":       vector,
		"limit":        k,
		"with_payload": true,
	}
	var out struct {
		Result []qdrantPoint `json:"result"`
	}
	if err := s.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/search", s.url, s.collection), req, &out); err != nil {
		return nil, err
	}

	results := make([]domain.ScoredChunk, 0, len(out.Result))
	for _, p := range out.Result {
		results = append(results, domain.ScoredChunk{
			Chunk: pointToChunk(p),
			Score: p.Score,
		})
	}
	return results, nil
}

func (s *QdrantStore) ChunksByFile(ctx context.Context, filename string) ([]domain.Chunk, error) {
	var chunks []domain.Chunk
	var offset any
	for {
		req := map[string]any{
			"filter":       filenameFilter(filename),
			"with_payload": true,
			"limit":        256,
		}
		if offset != nil {
			req["offset"] = offset
		}
		var out struct {
			Result struct {
				Points         []qdrantPoint `json:"points"`
				NextPageOffset any           `json:"next_page_offset"`
			} `json:"result"`
		}
		if err := s.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/scroll", s.url, s.collection), req, &out); err != nil {
			return nil, err
		}
		for _, p := range out.Result.Points {
			chunks = append(chunks, pointToChunk(p))
		}
		if out.Result.NextPageOffset == nil {
			return chunks, nil
		}
		offset = out.Result.NextPageOffset
	}
}

func (s *QdrantStore) Filenames(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	var names []string
	var offset any
	for {
		req := map[string]any{
			"with_payload": []string{"filename"},
			"limit":        256,
		}
		if offset != nil {
			req["offset"] = offset
		}
		var out struct {
			Result struct {
				Points         []qdrantPoint `json:"points"`
				NextPageOffset any           `json:"next_page_offset"`
			} `json:"result"`
		}
		if err := s.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/scroll", s.url, s.collection), req, &out); err != nil {
			return nil, err
		}
		for _, p := range out.Result.Points {
			name, _ := p.Payload["filename"].(string)
			if name == "" {
				continue
			}
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				names = append(names, name)
			}
		}
		if out.Result.NextPageOffset == nil {
			break
		}
		offset = out.Result.NextPageOffset
	}
	sort.Strings(names)
	return names, nil
}

func (s *QdrantStore) DeleteFile(ctx context.Context, filename string) (int, error) {
	count, err := s.countFiltered(ctx, filenameFilter(filename))
	if err != nil {
		return 0, err
	}
	req := map[string]any{"filter": filenameFilter(filename)}
	if err := s.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/delete?wait=true", s.url, s.collection), req, nil); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *QdrantStore) Reset(ctx context.Context) (uint64, error) {
	// Drop and recreate the collection, matching the original session wipe.
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, fmt.Sprintf("%s/collections/%s", s.url, s.collection), nil)
	if err != nil {
		return 0, err
	}
	s.setHeaders(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()

	if err := s.ensureCollection(ctx); err != nil {
		return 0, err
	}

	s.mu.Lock()
	s.epoch++
	epoch := s.epoch
	s.mu.Unlock()
	return epoch, nil
}

func (s *QdrantStore) Epoch() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

func (s *QdrantStore) Count(ctx context.Context) (int, error) {
	return s.countFiltered(ctx, nil)
}

func (s *QdrantStore) Close() error {
	return nil
}

func (s *QdrantStore) countFiltered(ctx context.Context, filter map[string]any) (int, error) {
	req := map[string]any{"exact": true}
	if filter != nil {
		req["filter"] = filter
	}
	var out struct {
		Result struct {
			Count int `json:"count"`
		} `json:"result"`
	}
	if err := s.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/count", s.url, s.collection), req, &out); err != nil {
		return 0, err
	}
	return out.Result.Count, nil
}

func filenameFilter(filename string) map[string]any {
	return map[string]any{
		"must": []map[string]any{
			{"key": "filename", "match": map[string]any{"value": filename}},
		},
	}
}

func pointToChunk(p qdrantPoint) domain.Chunk {
	text, _ := p.Payload["text"].(string)
	filename, _ := p.Payload["filename"].(string)
	ordinal, _ := p.Payload["ordinal"].(float64)
	return domain.Chunk{
		ID:       p.ID,
		Filename: filename,
		Ordinal:  int(ordinal),
		Text:     text,
	}
}

func (s *QdrantStore) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
}

func (s *QdrantStore) putJSON(ctx context.Context, url string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	s.setHeaders(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant PUT %s failed: %s", url, resp.Status)
	}
	return nil
}

func (s *QdrantStore) postJSON(ctx context.Context, url string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	s.setHeaders(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant POST %s failed: %s", url, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
