package types

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// chunkNamespace scopes deterministic chunk IDs so they cannot collide
// with IDs minted by anything else in the same store.
var chunkNamespace = uuid.MustParse("7a3c92e4-5b1d-4f08-9c6a-2d84e0b7f315")

// TranscriptSegment is one spoken-text span from a transcript file.
// Extra fields in the transcript JSON are ignored on decode.
type TranscriptSegment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
}

// Chunk is the unit stored in the vector index: one transcript segment
// with its embedding and citation metadata.
type Chunk struct {
	ID        string
	Text      string
	Embedding []float32
	Source    string
	StartTime float64
}

// NewChunk builds a chunk for a segment of the given source video.
func NewChunk(source string, seg TranscriptSegment, embedding []float32) Chunk {
	return Chunk{
		ID:        ChunkID(source, seg.Start),
		Text:      seg.Text,
		Embedding: embedding,
		Source:    source,
		StartTime: seg.Start,
	}
}

// ChunkID derives a stable identifier from (source, start). Re-ingesting
// the same segment produces the same ID, which makes upserts idempotent.
func ChunkID(source string, start float64) string {
	name := fmt.Sprintf("%s_%s", source, FormatStart(start))
	return uuid.NewSHA1(chunkNamespace, []byte(name)).String()
}

// FormatStart renders a segment offset without trailing zeros, so the
// same offset always serializes identically.
func FormatStart(start float64) string {
	return strconv.FormatFloat(start, 'f', -1, 64)
}

// ParseStart is the inverse of FormatStart. Unparseable input yields 0.
func ParseStart(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// Metadata returns the citation metadata stored alongside the chunk.
func (c Chunk) Metadata() map[string]string {
	return map[string]string{
		"source":     c.Source,
		"start_time": FormatStart(c.StartTime),
	}
}
