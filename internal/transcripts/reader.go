// Package transcripts discovers and decodes the transcript JSON files
// produced by the transcription stage. Files are validated against a
// schema before decoding so a malformed transcript is reported with
// field-level detail instead of a partial decode.
package transcripts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/Lalith1612/Youtube-LLM/internal/types"
)

// transcriptSchema describes the consumed transcript shape: an object
// with a segments array whose entries carry text and a numeric start
// offset. Other fields pass through unchecked.
const transcriptSchema = `{
	"type": "object",
	"required": ["segments"],
	"properties": {
		"segments": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["text", "start"],
				"properties": {
					"text": {"type": "string"},
					"start": {"type": "number"}
				}
			}
		}
	}
}`

// Transcript is one decoded transcript file
type Transcript struct {
	// Source is the origin video title, derived from the filename
	Source   string
	Segments []types.TranscriptSegment
}

type transcriptFile struct {
	Segments []types.TranscriptSegment `json:"segments"`
}

// List returns the transcript JSON files in dir, sorted by name.
// An unreadable directory is an error; an empty one returns no files.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// Load reads, validates, and decodes one transcript file. The source
// video title is the filename without its extension.
func Load(path string) (*Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript %s: %w", path, err)
	}

	if err := validate(data); err != nil {
		return nil, fmt.Errorf("invalid transcript %s: %w", path, err)
	}

	var file transcriptFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode transcript %s: %w", path, err)
	}

	name := filepath.Base(path)
	source := strings.TrimSuffix(name, filepath.Ext(name))

	return &Transcript{Source: source, Segments: file.Segments}, nil
}

// validate checks raw transcript JSON against the schema
func validate(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(transcriptSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("schema violations:")
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		sb.WriteString(fmt.Sprintf(" %s: %s;", field, desc.Description()))
	}
	return fmt.Errorf("%s", strings.TrimSuffix(sb.String(), ";"))
}
