package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_GroundedAnswerPrompt(t *testing.T) {
	prompt, err := Get("rag.json", "grounded-answer")
	require.NoError(t, err)
	assert.Contains(t, prompt, "based *only* on the information given in the context")
	assert.Contains(t, prompt, "{{.Context}}")
	assert.Contains(t, prompt, "{{.Question}}")
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("rag.json", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGet_UnknownFile(t *testing.T) {
	_, err := Get("missing.json", "grounded-answer")
	require.Error(t, err)
}

func TestMustGet_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("missing.json", "grounded-answer")
	})
}

func TestFormat(t *testing.T) {
	out := Format("Q: {{.Question}} C: {{.Context}}", map[string]string{
		"Question": "why is the sky blue?",
		"Context":  "the sky is blue",
	})
	assert.Equal(t, "Q: why is the sky blue? C: the sky is blue", out)
}
