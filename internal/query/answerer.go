package query

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Lalith1612/Youtube-LLM/internal/llm"
	"github.com/Lalith1612/Youtube-LLM/internal/prompts"
)

// NoAnswerMessage is returned when retrieval produced no grounding
// context; the generative model is not consulted in that case.
const NoAnswerMessage = "I could not find any relevant information in the playlist to answer your question."

// contextSeparator joins retrieved documents into one context block
const contextSeparator = "\n---\n"

// Answerer builds a grounded prompt from retrieved chunks and invokes
// the generative capability. It is stateless.
type Answerer struct {
	generator llm.Generator
}

// NewAnswerer creates an answerer over the given generator
func NewAnswerer(generator llm.Generator) *Answerer {
	return &Answerer{generator: generator}
}

// Answer produces an answer grounded only in the given chunks, plus a
// deduplicated, sorted source list. Failures of the generative call are
// converted into an error-text answer with empty sources; no error
// escapes to the caller.
func (a *Answerer) Answer(ctx context.Context, question string, chunks []RetrievedChunk) (string, []string) {
	if len(chunks) == 0 {
		return NoAnswerMessage, nil
	}

	documents := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		documents = append(documents, chunk.Document)
	}

	prompt := prompts.Format(prompts.MustGet("rag.json", "grounded-answer"), map[string]string{
		"Context":  strings.Join(documents, contextSeparator),
		"Question": question,
	})

	answer, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return fmt.Sprintf("Error generating answer from the model: %v", err), nil
	}

	return answer, Sources(chunks)
}

// Sources derives the citation list from retrieved chunks: one entry
// per distinct (source, offset) pair, sorted lexicographically.
func Sources(chunks []RetrievedChunk) []string {
	seen := make(map[string]struct{}, len(chunks))
	var sources []string
	for _, chunk := range chunks {
		citation := fmt.Sprintf("%s (at %ds)", chunk.Source, int(chunk.StartTime))
		if _, ok := seen[citation]; ok {
			continue
		}
		seen[citation] = struct{}{}
		sources = append(sources, citation)
	}
	sort.Strings(sources)
	return sources
}
