// Package query turns a free-text question into a grounded answer with
// cited sources, using the per-playlist vector collections.
package query

import (
	"context"
	"fmt"

	"github.com/Lalith1612/Youtube-LLM/internal/llm"
	"github.com/Lalith1612/Youtube-LLM/internal/vectorstore"
)

// DefaultTopK is the number of chunks retrieved per question when not
// configured otherwise.
const DefaultTopK = 5

// RetrievedChunk is one chunk of grounding context for the answerer
type RetrievedChunk struct {
	Document  string
	Source    string
	StartTime float64
}

// Retriever finds the chunks most relevant to a question. It is
// stateless; every call reads the store fresh.
type Retriever struct {
	store    *vectorstore.Store
	embedder llm.Embedder
	topK     int
}

// NewRetriever creates a retriever over the given store and embedder.
// topK <= 0 uses DefaultTopK.
func NewRetriever(store *vectorstore.Store, embedder llm.Embedder, topK int) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{store: store, embedder: embedder, topK: topK}
}

// Retrieve embeds the question and returns its nearest chunks, best
// match first. A playlist with no collection yields
// vectorstore.ErrNotProcessed; a processed playlist with no matches
// yields an empty result without error.
func (r *Retriever) Retrieve(ctx context.Context, question, playlistID string) ([]RetrievedChunk, error) {
	col, err := r.store.OpenExisting(playlistID)
	if err != nil {
		return nil, err
	}

	// Query-mode embedding pairs with the document-mode embeddings
	// written at ingestion time.
	embedding, err := r.embedder.EmbedText(ctx, question, llm.EmbedModeQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}

	matches, err := col.Query(ctx, embedding, r.topK)
	if err != nil {
		return nil, fmt.Errorf("failed to query vector store: %w", err)
	}

	chunks := make([]RetrievedChunk, 0, len(matches))
	for _, m := range matches {
		chunks = append(chunks, RetrievedChunk{
			Document:  m.Document,
			Source:    m.Source,
			StartTime: m.StartTime,
		})
	}
	return chunks, nil
}
