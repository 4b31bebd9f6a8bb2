package steps

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScript writes an executable shell script standing in for an
// external tool.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub scripts require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "tool.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestDownload_CollectsPerVideoFailures(t *testing.T) {
	// Enumerates two videos; the download of "bad" exits non-zero.
	script := writeScript(t, `
if [ "$1" = "--flat-playlist" ]; then
  printf 'good\nbad\n'
  exit 0
fi
for arg in "$@"; do last="$arg"; done
if [ "$last" = "bad" ]; then
  echo "download error" >&2
  exit 1
fi
exit 0
`)
	downloader := NewYTDLPDownloader(script)

	report, err := downloader.Download(context.Background(), "https://example.com/playlist?list=PL123", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Completed)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "bad", report.Failures[0].Item)
	assert.Contains(t, report.Failures[0].Reason, "download error")
}

func TestDownload_EnumerationFailureIsFatal(t *testing.T) {
	script := writeScript(t, `echo "private playlist" >&2; exit 1`)
	downloader := NewYTDLPDownloader(script)

	_, err := downloader.Download(context.Background(), "https://example.com/playlist", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not fetch playlist")
}

func TestDownload_EmptyPlaylistIsFatal(t *testing.T) {
	script := writeScript(t, `exit 0`)
	downloader := NewYTDLPDownloader(script)

	_, err := downloader.Download(context.Background(), "https://example.com/playlist", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no videos found")
}

func TestDownload_AllVideosFailedIsFatal(t *testing.T) {
	script := writeScript(t, `
if [ "$1" = "--flat-playlist" ]; then
  printf 'v1\nv2\n'
  exit 0
fi
exit 1
`)
	downloader := NewYTDLPDownloader(script)

	_, err := downloader.Download(context.Background(), "https://example.com/playlist", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to download any")
}

func TestTranscribe_WritesTranscripts(t *testing.T) {
	audioDir := t.TempDir()
	destDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(audioDir, "vid1.mp3"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(audioDir, "skip.txt"), []byte("x"), 0o644))

	// Stub whisper: writes an empty transcript named after the input.
	script := writeScript(t, `
in="$1"
out=""
while [ $# -gt 0 ]; do
  if [ "$1" = "--output_dir" ]; then out="$2"; fi
  shift
done
base=$(basename "$in")
echo '{"segments":[]}' > "$out/${base%.*}.json"
`)
	transcriber := NewWhisperTranscriber(script, "base")

	report, err := transcriber.Transcribe(context.Background(), audioDir, destDir)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Completed)
	assert.Empty(t, report.Failures)
	assert.FileExists(t, filepath.Join(destDir, "vid1.json"))
}

func TestTranscribe_NoAudioFilesIsFatal(t *testing.T) {
	transcriber := NewWhisperTranscriber(writeScript(t, `exit 0`), "")

	_, err := transcriber.Transcribe(context.Background(), t.TempDir(), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no audio files found")
}

func TestTranscribe_MissingAudioDirIsFatal(t *testing.T) {
	transcriber := NewWhisperTranscriber(writeScript(t, `exit 0`), "")

	_, err := transcriber.Transcribe(context.Background(), filepath.Join(t.TempDir(), "absent"), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "audio directory")
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, "yt-dlp", NewYTDLPDownloader("").Binary)

	transcriber := NewWhisperTranscriber("", "")
	assert.Equal(t, "whisper", transcriber.Binary)
	assert.Equal(t, "base", transcriber.Model)
}
