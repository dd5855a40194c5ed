package store

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"go.etcd.io/bbolt"

	"github.com/aryamansethi1503/summarizationWithAI/internal/domain"
)

var (
	bucketChunks = []byte("chunks")
	bucketBlobs  = []byte("blobs")
	bucketFiles  = []byte("files")
	bucketMeta   = []byte("meta")
	keyEpoch     = []byte("epoch")
)

// BoltStore is a bbolt-backed chunk store. Vectors are mirrored in memory so
// search stays a brute-force cosine scan without touching disk; chunk text is
// read back only for the top-k survivors.
type BoltStore struct {
	db        *bbolt.DB
	dimension int

	mu      sync.RWMutex
	epoch   uint64
	vectors map[string][]float32
}

type chunkMeta struct {
	Filename string    `json:"f"`
	Ordinal  int       `json:"o"`
	Vector   []float32 `json:"v"`
}

// NewBoltStore opens (or creates) a bolt-backed chunk store at path.
func NewBoltStore(path string, dimension int) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	s := &BoltStore{
		db:        db,
		dimension: dimension,
		vectors:   make(map[string][]float32),
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketChunks, bucketBlobs, bucketFiles, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		if data := tx.Bucket(bucketMeta).Get(keyEpoch); len(data) == 8 {
			s.epoch = binary.BigEndian.Uint64(data)
		}
		return tx.Bucket(bucketChunks).ForEach(func(k, v []byte) error {
			var meta chunkMeta
			if err := json.Unmarshal(v, &meta); err != nil {
				return nil // Skip corrupted entries
			}
			s.vectors[string(k)] = meta.Vector
			return nil
		})
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *BoltStore) Insert(ctx context.Context, epoch uint64, chunk domain.Chunk) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.dimension > 0 && len(chunk.Vector) != s.dimension {
		return fmt.Errorf("vector dimension mismatch: expected %d, got %d", s.dimension, len(chunk.Vector))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch {
		return domain.ErrStaleEpoch
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		meta := chunkMeta{
			Filename: chunk.Filename,
			Ordinal:  chunk.Ordinal,
			Vector:   chunk.Vector,
		}
		data, err := json.Marshal(meta)
		if err != nil {
			return err
		}
		if err := tx.Bucket(bucketChunks).Put([]byte(chunk.ID), data); err != nil {
			return err
		}
		if err := tx.Bucket(bucketBlobs).Put([]byte(chunk.ID), []byte(chunk.Text)); err != nil {
			return err
		}

		files := tx.Bucket(bucketFiles)
		var chunkIDs []string
		if existing := files.Get([]byte(chunk.Filename)); existing != nil {
			json.Unmarshal(existing, &chunkIDs)
		}
		chunkIDs = append(chunkIDs, chunk.ID)
		chunkIDsData, _ := json.Marshal(chunkIDs)
		return files.Put([]byte(chunk.Filename), chunkIDsData)
	})
	if err != nil {
		return err
	}

	s.vectors[chunk.ID] = chunk.Vector
	return nil
}

func (s *BoltStore) Search(ctx context.Context, vector []float32, k int) ([]domain.ScoredChunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", domain.ErrInvalidArgument, k)
	}

	s.mu.RLock()
	type scored struct {
		id    string
		score float64
	}
	scores := make([]scored, 0, len(s.vectors))
	for id, v := range s.vectors {
		scores = append(scores, scored{id: id, score: Cosine(vector, v)})
	}
	s.mu.RUnlock()

	if len(scores) == 0 {
		return nil, nil
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].score != scores[j].score {
			return scores[i].score > scores[j].score
		}
		return scores[i].id < scores[j].id
	})
	if k > len(scores) {
		k = len(scores)
	}

	results := make([]domain.ScoredChunk, 0, k)
	err := s.db.View(func(tx *bbolt.Tx) error {
		for _, sc := range scores[:k] {
			chunk, ok := readChunk(tx, sc.id)
			if !ok {
				continue
			}
			results = append(results, domain.ScoredChunk{Chunk: chunk, Score: sc.score})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (s *BoltStore) ChunksByFile(ctx context.Context, filename string) ([]domain.Chunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var chunks []domain.Chunk
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketFiles).Get([]byte(filename))
		if data == nil {
			return nil
		}
		var chunkIDs []string
		if err := json.Unmarshal(data, &chunkIDs); err != nil {
			return err
		}
		for _, id := range chunkIDs {
			if chunk, ok := readChunk(tx, id); ok {
				chunks = append(chunks, chunk)
			}
		}
		return nil
	})
	return chunks, err
}

func (s *BoltStore) Filenames(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var names []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketFiles).ForEach(func(k, v []byte) error {
			var chunkIDs []string
			if err := json.Unmarshal(v, &chunkIDs); err != nil {
				return nil
			}
			if len(chunkIDs) > 0 {
				names = append(names, string(k))
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

func (s *BoltStore) DeleteFile(ctx context.Context, filename string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	err := s.db.Update(func(tx *bbolt.Tx) error {
		files := tx.Bucket(bucketFiles)
		data := files.Get([]byte(filename))
		if data == nil {
			return nil
		}
		var chunkIDs []string
		if err := json.Unmarshal(data, &chunkIDs); err != nil {
			return err
		}
		chunks := tx.Bucket(bucketChunks)
		blobs := tx.Bucket(bucketBlobs)
		for _, id := range chunkIDs {
			chunks.Delete([]byte(id))
			blobs.Delete([]byte(id))
			delete(s.vectors, id)
			deleted++
		}
		return files.Delete([]byte(filename))
	})
	return deleted, err
}

func (s *BoltStore) Reset(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	newEpoch := s.epoch + 1
	err := s.db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketChunks, bucketBlobs, bucketFiles} {
			if err := tx.DeleteBucket(b); err != nil {
				return err
			}
			if _, err := tx.CreateBucket(b); err != nil {
				return err
			}
		}
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], newEpoch)
		return tx.Bucket(bucketMeta).Put(keyEpoch, buf[:])
	})
	if err != nil {
		return 0, err
	}

	s.epoch = newEpoch
	s.vectors = make(map[string][]float32)
	return newEpoch, nil
}

func (s *BoltStore) Epoch() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

func (s *BoltStore) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vectors), nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

// readChunk reassembles a chunk from its meta and blob buckets.
func readChunk(tx *bbolt.Tx, id string) (domain.Chunk, bool) {
	data := tx.Bucket(bucketChunks).Get([]byte(id))
	if data == nil {
		return domain.Chunk{}, false
	}
	var meta chunkMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return domain.Chunk{}, false
	}
	text := tx.Bucket(bucketBlobs).Get([]byte(id))
	return domain.Chunk{
		ID:       id,
		Filename: meta.Filename,
		Ordinal:  meta.Ordinal,
		Text:     string(text),
		Vector:   meta.Vector,
	}, true
}
