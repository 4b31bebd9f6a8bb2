// Package vectorstore owns the persistent per-playlist vector
// collections: embedding upsert and similarity search over transcript
// chunks.
package vectorstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/philippgille/chromem-go"

	"github.com/Lalith1612/Youtube-LLM/internal/types"
)

// collectionName matches the single logical collection each playlist
// database holds.
const collectionName = "youtube_transcripts_google"

// ErrNotProcessed signals that no vector collection exists for a
// playlist: it has not been processed yet. Distinct from a processed
// collection with no matches.
var ErrNotProcessed = errors.New("no processed data found for playlist")

// errExternalEmbeddings guards against accidental use of the store's
// internal embedding hook; all embeddings are computed by the caller.
var errExternalEmbeddings = errors.New("embeddings are provided by the caller")

// Match is one similarity-search hit, best matches first.
type Match struct {
	Document   string
	Source     string
	StartTime  float64
	Similarity float32
}

// Store manages one disk-resident vector database per playlist under
// {dataDir}/{playlistID}/vectordb. Databases open lazily and are cached
// for the life of the store.
type Store struct {
	dataDir string

	mu  sync.Mutex
	dbs map[string]*chromem.DB
}

// New creates a store rooted at dataDir
func New(dataDir string) *Store {
	return &Store{dataDir: dataDir, dbs: make(map[string]*chromem.DB)}
}

// DBPath returns the on-disk location of a playlist's vector database
func (s *Store) DBPath(playlistID string) string {
	return filepath.Join(s.dataDir, playlistID, "vectordb")
}

// Open returns the collection for playlistID, creating the underlying
// database on first access.
func (s *Store) Open(playlistID string) (*Collection, error) {
	return s.open(playlistID, true)
}

// OpenExisting returns the collection for playlistID, or ErrNotProcessed
// if no database exists on disk yet.
func (s *Store) OpenExisting(playlistID string) (*Collection, error) {
	return s.open(playlistID, false)
}

func (s *Store) open(playlistID string, create bool) (*Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, ok := s.dbs[playlistID]
	if !ok {
		path := s.DBPath(playlistID)
		if !create {
			if _, err := os.Stat(path); os.IsNotExist(err) {
				return nil, ErrNotProcessed
			}
		}
		var err error
		db, err = chromem.NewPersistentDB(path, false)
		if err != nil {
			return nil, fmt.Errorf("failed to open vector database at %s: %w", path, err)
		}
		s.dbs[playlistID] = db
	}

	col, err := db.GetOrCreateCollection(collectionName, nil, rejectEmbedding)
	if err != nil {
		return nil, fmt.Errorf("failed to access collection %s: %w", collectionName, err)
	}
	return &Collection{col: col}, nil
}

func rejectEmbedding(context.Context, string) ([]float32, error) {
	return nil, errExternalEmbeddings
}

// Collection is one playlist's chunk collection
type Collection struct {
	col *chromem.Collection
}

// Upsert stores a chunk. Writes are idempotent by chunk ID: re-ingesting
// the same (source, start) segment overwrites the stored document
// instead of duplicating it.
func (c *Collection) Upsert(ctx context.Context, chunk types.Chunk) error {
	doc := chromem.Document{
		ID:        chunk.ID,
		Content:   chunk.Text,
		Embedding: chunk.Embedding,
		Metadata:  chunk.Metadata(),
	}
	if err := c.col.AddDocument(ctx, doc); err != nil {
		return fmt.Errorf("failed to store chunk %s: %w", chunk.ID, err)
	}
	return nil
}

// Query returns up to k nearest chunks by vector similarity, best match
// first. k is clamped to the collection size; an empty collection
// returns no matches without error.
func (c *Collection) Query(ctx context.Context, embedding []float32, k int) ([]Match, error) {
	count := c.col.Count()
	if count == 0 {
		return nil, nil
	}
	if k <= 0 || k > count {
		k = count
	}

	results, err := c.col.QueryEmbedding(ctx, embedding, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection: %w", err)
	}

	matches := make([]Match, 0, len(results))
	for _, res := range results {
		matches = append(matches, Match{
			Document:   res.Content,
			Source:     res.Metadata["source"],
			StartTime:  types.ParseStart(res.Metadata["start_time"]),
			Similarity: res.Similarity,
		})
	}
	return matches, nil
}

// Count returns the number of stored chunks
func (c *Collection) Count() int {
	return c.col.Count()
}
