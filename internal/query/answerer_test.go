package query

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	answer  string
	err     error
	calls   int
	prompts []string
}

func (f *fakeGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func TestAnswer_EmptyChunksShortCircuits(t *testing.T) {
	gen := &fakeGenerator{answer: "should not be used"}
	answerer := NewAnswerer(gen)

	answer, sources := answerer.Answer(context.Background(), "why is the sky blue?", nil)

	assert.Equal(t, NoAnswerMessage, answer)
	assert.Empty(t, sources)
	// The generative capability is never consulted without context
	assert.Equal(t, 0, gen.calls)
}

func TestAnswer_BuildsGroundedPrompt(t *testing.T) {
	gen := &fakeGenerator{answer: "The sky is blue."}
	answerer := NewAnswerer(gen)

	chunks := []RetrievedChunk{
		{Document: "the sky is blue", Source: "vid1", StartTime: 3.0},
		{Document: "clouds are white", Source: "vid1", StartTime: 9.0},
	}
	answer, sources := answerer.Answer(context.Background(), "why is the sky blue?", chunks)

	assert.Equal(t, "The sky is blue.", answer)
	assert.Equal(t, []string{"vid1 (at 3s)", "vid1 (at 9s)"}, sources)

	require.Len(t, gen.prompts, 1)
	prompt := gen.prompts[0]
	assert.Contains(t, prompt, "the sky is blue\n---\nclouds are white")
	assert.Contains(t, prompt, "why is the sky blue?")
	assert.Contains(t, prompt, "based *only* on the information given in the context")
	assert.Contains(t, prompt, "cannot find the answer")
}

func TestAnswer_GeneratorErrorBecomesErrorText(t *testing.T) {
	gen := &fakeGenerator{err: fmt.Errorf("quota exceeded")}
	answerer := NewAnswerer(gen)

	chunks := []RetrievedChunk{{Document: "the sky is blue", Source: "vid1", StartTime: 3.0}}
	answer, sources := answerer.Answer(context.Background(), "why?", chunks)

	assert.Contains(t, answer, "Error generating answer from the model")
	assert.Contains(t, answer, "quota exceeded")
	assert.Empty(t, sources)
}

func TestSources_DeduplicatesAndSorts(t *testing.T) {
	chunks := []RetrievedChunk{
		{Document: "x", Source: "A", StartTime: 12.0},
		{Document: "y", Source: "A", StartTime: 12.0},
		{Document: "z", Source: "B", StartTime: 5.0},
	}

	assert.Equal(t, []string{"A (at 12s)", "B (at 5s)"}, Sources(chunks))
}

func TestSources_TruncatesOffsets(t *testing.T) {
	chunks := []RetrievedChunk{
		{Document: "x", Source: "vid1", StartTime: 3.7},
	}

	assert.Equal(t, []string{"vid1 (at 3s)"}, Sources(chunks))
}

func TestSources_Empty(t *testing.T) {
	assert.Empty(t, Sources(nil))
}
