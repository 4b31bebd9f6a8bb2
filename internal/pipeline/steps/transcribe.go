package steps

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/Lalith1612/Youtube-LLM/internal/types"
)

// audioExtensions are the file types the transcriber picks up
var audioExtensions = map[string]bool{
	".mp3": true,
	".mp4": true,
	".m4a": true,
	".wav": true,
}

// WhisperTranscriber transcribes audio files by shelling out to the
// whisper CLI, which writes one JSON transcript per audio file.
type WhisperTranscriber struct {
	// Binary is the whisper executable; defaults to "whisper" on PATH
	Binary string
	// Model is the whisper model size; defaults to "base"
	Model string
}

// NewWhisperTranscriber creates a transcriber using binary and model,
// with defaults for empty values.
func NewWhisperTranscriber(binary, model string) *WhisperTranscriber {
	if binary == "" {
		binary = "whisper"
	}
	if model == "" {
		model = "base"
	}
	return &WhisperTranscriber{Binary: binary, Model: model}
}

// Transcribe converts every audio file in audioDir into a JSON
// transcript in destDir. An unreadable or empty audio directory is
// fatal; per-file failures are collected and processing continues.
func (t *WhisperTranscriber) Transcribe(ctx context.Context, audioDir, destDir string) (*types.StageReport, error) {
	files, err := listAudioFiles(audioDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no audio files found in %s", audioDir)
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create transcript directory %s: %w", destDir, err)
	}

	report := &types.StageReport{}
	for _, file := range files {
		if err := t.transcribeOne(ctx, file, destDir); err != nil {
			log.Printf("transcription failed for %s: %v", file, err)
			report.Fail(file, err.Error())
			continue
		}
		report.Completed++
	}

	if report.Completed == 0 {
		return nil, fmt.Errorf("failed to transcribe any of %d audio files: %s", len(files), report.Failures[0].Reason)
	}
	return report, nil
}

func (t *WhisperTranscriber) transcribeOne(ctx context.Context, audioPath, destDir string) error {
	cmd := exec.CommandContext(ctx, t.Binary,
		audioPath,
		"--model", t.Model,
		"--output_format", "json",
		"--output_dir", destDir,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("whisper failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// listAudioFiles returns the audio files in dir, sorted by ReadDir order
func listAudioFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if audioExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}
