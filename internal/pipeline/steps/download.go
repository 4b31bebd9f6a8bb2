// Package steps provides the exec-backed implementations of the
// pipeline's external stages: audio acquisition via yt-dlp and
// transcription via whisper.
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

// YTDLPDownloader downloads playlist audio by shelling out to yt-dlp,
// one invocation per video so a single broken video does not abort the
// whole playlist.
type YTDLPDownloader struct {
	// Binary is the yt-dlp executable; defaults to "yt-dlp" on PATH
	Binary string
}

// NewYTDLPDownloader creates a downloader using binary, or "yt-dlp"
// when empty.
func NewYTDLPDownloader(binary string) *YTDLPDownloader {
	if binary == "" {
		binary = "yt-dlp"
	}
	return &YTDLPDownloader{Binary: binary}
}

// Download fetches audio for every video in the playlist into destDir.
// Enumeration failure or an empty playlist is fatal; per-video download
// failures are collected in the report and processing continues.
func (d *YTDLPDownloader) Download(ctx context.Context, playlistURL, destDir string) (*types.StageReport, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create audio directory %s: %w", destDir, err)
	}

	urls, err := d.enumerate(ctx, playlistURL)
	if err != nil {
		return nil, err
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("no videos found in playlist %s", playlistURL)
	}

	report := &types.StageReport{}
	for _, videoURL := range urls {
		if err := d.downloadOne(ctx, videoURL, destDir); err != nil {
			log.Printf("download failed for %s: %v", videoURL, err)
			report.Fail(videoURL, err.Error())
			continue
		}
		report.Completed++
	}

	if report.Completed == 0 {
		return nil, fmt.Errorf("failed to download any of %d videos: %s", len(urls), report.Failures[0].Reason)
	}
	return report, nil
}

// enumerate lists the video URLs in the playlist without downloading
func (d *YTDLPDownloader) enumerate(ctx context.Context, playlistURL string) ([]string, error) {
	cmd := exec.CommandContext(ctx, d.Binary,
		"--flat-playlist",
		"--print", "%(url)s",
		playlistURL,
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("could not fetch playlist %s: %w: %s", playlistURL, err, strings.TrimSpace(stderr.String()))
	}

	var urls []string
	for _, line := range strings.Split(stdout.String(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			urls = append(urls, line)
		}
	}
	return urls, nil
}

func (d *YTDLPDownloader) downloadOne(ctx context.Context, videoURL, destDir string) error {
	cmd := exec.CommandContext(ctx, d.Binary,
		"--extract-audio",
		"--audio-format", "mp3",
		"--output", filepath.Join(destDir, "%(title)s.%(ext)s"),
		"--quiet",
		videoURL,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("yt-dlp failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
