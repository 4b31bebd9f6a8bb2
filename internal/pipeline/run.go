// Package pipeline provides the orchestrator that drives a playlist
// through the processing stages: acquire audio, transcribe, chunk and
// embed into the vector store. Job state lives behind the jobs.Store
// abstraction; stage failures become terminal job status, never panics.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/Lalith1612/Youtube-LLM/internal/jobs"
	"github.com/Lalith1612/Youtube-LLM/internal/llm"
	"github.com/Lalith1612/Youtube-LLM/internal/types"
	"github.com/Lalith1612/Youtube-LLM/internal/vectorstore"
)

// ErrAlreadyProcessing rejects a re-submission while a run is in flight
var ErrAlreadyProcessing = errors.New("this playlist is already being processed")

// ErrJobNotFound signals a status query for an unknown playlist ID
var ErrJobNotFound = errors.New("playlist ID not found")

// defaultEmbedConcurrency bounds concurrent embedding requests per run
const defaultEmbedConcurrency = 4

// Progress messages observed by concurrent status readers. They update
// monotonically through the stages.
const (
	msgQueued     = "Playlist accepted and queued for processing."
	msgDownload   = "Step 1/3: Downloading audio from playlist. This can take a while..."
	msgTranscribe = "Step 2/3: Transcribing audio files..."
	msgEmbed      = "Step 3/3: Creating embeddings and storing in database..."
	msgComplete   = "Processing complete! You can now ask questions."
)

// Downloader acquires playlist audio into a directory
type Downloader interface {
	Download(ctx context.Context, playlistURL, destDir string) (*types.StageReport, error)
}

// Transcriber converts downloaded audio into transcript JSON files
type Transcriber interface {
	Transcribe(ctx context.Context, audioDir, destDir string) (*types.StageReport, error)
}

// Options configures an Orchestrator
type Options struct {
	// DataDir is the root under which per-playlist artifacts live
	DataDir string
	// Jobs is the job-status store
	Jobs jobs.Store
	// Vectors is the per-playlist vector store
	Vectors *vectorstore.Store
	// Embedder computes document embeddings during ingestion
	Embedder llm.Embedder
	// Downloader and Transcriber run the external stages
	Downloader  Downloader
	Transcriber Transcriber
	// EmbedConcurrency bounds concurrent embedding requests; <= 0 uses
	// the default
	EmbedConcurrency int
}

// Orchestrator owns the playlist job lifecycle. It is the sole writer
// of a job's status during a run.
type Orchestrator struct {
	dataDir          string
	jobs             jobs.Store
	vectors          *vectorstore.Store
	embedder         llm.Embedder
	downloader       Downloader
	transcriber      Transcriber
	embedConcurrency int
}

// New creates an orchestrator from options
func New(opts Options) *Orchestrator {
	concurrency := opts.EmbedConcurrency
	if concurrency <= 0 {
		concurrency = defaultEmbedConcurrency
	}
	return &Orchestrator{
		dataDir:          opts.DataDir,
		jobs:             opts.Jobs,
		vectors:          opts.Vectors,
		embedder:         opts.Embedder,
		downloader:       opts.Downloader,
		transcriber:      opts.Transcriber,
		embedConcurrency: concurrency,
	}
}

// Submit accepts a playlist URL, records the job as queued, and starts
// the pipeline out-of-band. It returns the derived playlist ID
// immediately. A playlist whose job is currently processing is
// rejected with ErrAlreadyProcessing and no state change.
func (o *Orchestrator) Submit(ctx context.Context, playlistURL string) (string, error) {
	playlistID, err := o.accept(ctx, playlistURL)
	if err != nil {
		return "", err
	}

	// Fire-and-forget: the handle is discarded and there is no
	// cancellation of an in-flight run.
	go func() {
		if err := o.Run(context.Background(), playlistID, playlistURL); err != nil {
			log.Printf("[%s] pipeline run failed: %v", playlistID, err)
		}
	}()

	return playlistID, nil
}

// ProcessSync accepts a playlist URL and runs the pipeline to
// completion before returning. Used by the CLI.
func (o *Orchestrator) ProcessSync(ctx context.Context, playlistURL string) (string, error) {
	playlistID, err := o.accept(ctx, playlistURL)
	if err != nil {
		return "", err
	}
	return playlistID, o.Run(ctx, playlistID, playlistURL)
}

// accept derives the playlist ID and atomically claims the queued slot
func (o *Orchestrator) accept(ctx context.Context, playlistURL string) (string, error) {
	playlistID := ExtractPlaylistID(playlistURL)

	current, err := o.jobs.Get(ctx, playlistID)
	if err != nil {
		return "", fmt.Errorf("failed to read job state: %w", err)
	}
	if current != nil && current.Status == types.StatusProcessing {
		return "", ErrAlreadyProcessing
	}

	expect := types.JobStatus("")
	if current != nil {
		expect = current.Status
	}
	queued := types.PlaylistJob{PlaylistID: playlistID, Status: types.StatusQueued, Message: msgQueued}
	swapped, err := o.jobs.CompareAndSwap(ctx, playlistID, expect, queued)
	if err != nil {
		return "", fmt.Errorf("failed to queue job: %w", err)
	}
	if !swapped {
		// Lost the race to a concurrent submission
		return "", ErrAlreadyProcessing
	}
	return playlistID, nil
}

// Status returns a snapshot of the job for playlistID, or
// ErrJobNotFound for an unknown ID.
func (o *Orchestrator) Status(ctx context.Context, playlistID string) (*types.PlaylistJob, error) {
	job, err := o.jobs.Get(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to read job state: %w", err)
	}
	if job == nil {
		return nil, ErrJobNotFound
	}
	return job, nil
}

// Run executes the three pipeline stages in order. Each stage writes to
// its own directory under {dataDir}/{playlistID}, so a failed run
// leaves inspectable intermediate artifacts. Any stage error is
// recorded as terminal job status and halts the pipeline.
func (o *Orchestrator) Run(ctx context.Context, playlistID, playlistURL string) error {
	audioDir := filepath.Join(o.dataDir, playlistID, "audio")
	transcriptDir := filepath.Join(o.dataDir, playlistID, "transcripts")

	log.Printf("[%s] downloading audio...", playlistID)
	o.setStatus(ctx, playlistID, types.StatusProcessing, msgDownload)
	report, err := o.downloader.Download(ctx, playlistURL, audioDir)
	if err != nil {
		return o.fail(ctx, playlistID, err)
	}
	o.logReport(playlistID, "download", report)

	log.Printf("[%s] transcribing audio...", playlistID)
	o.setStatus(ctx, playlistID, types.StatusProcessing, msgTranscribe)
	report, err = o.transcriber.Transcribe(ctx, audioDir, transcriptDir)
	if err != nil {
		return o.fail(ctx, playlistID, err)
	}
	o.logReport(playlistID, "transcription", report)

	log.Printf("[%s] processing transcripts and storing in DB...", playlistID)
	o.setStatus(ctx, playlistID, types.StatusProcessing, msgEmbed)
	report, err = o.ingest(ctx, playlistID, transcriptDir)
	if err != nil {
		return o.fail(ctx, playlistID, err)
	}
	o.logReport(playlistID, "ingestion", report)

	o.setStatus(ctx, playlistID, types.StatusComplete, msgComplete)
	log.Printf("[%s] processing complete", playlistID)
	return nil
}

func (o *Orchestrator) setStatus(ctx context.Context, playlistID string, status types.JobStatus, message string) {
	job := types.PlaylistJob{PlaylistID: playlistID, Status: status, Message: message}
	if err := o.jobs.Set(ctx, playlistID, job); err != nil {
		log.Printf("[%s] failed to record status %s: %v", playlistID, status, err)
	}
}

func (o *Orchestrator) fail(ctx context.Context, playlistID string, cause error) error {
	log.Printf("[%s] error processing: %v", playlistID, cause)
	o.setStatus(ctx, playlistID, types.StatusError, fmt.Sprintf("An error occurred: %v", cause))
	return cause
}

func (o *Orchestrator) logReport(playlistID, stage string, report *types.StageReport) {
	if len(report.Failures) == 0 {
		log.Printf("[%s] %s: %d items completed", playlistID, stage, report.Completed)
		return
	}
	log.Printf("[%s] %s: %d items completed, %d failed", playlistID, stage, report.Completed, len(report.Failures))
	for _, failure := range report.Failures {
		log.Printf("[%s] %s failure: %s: %s", playlistID, stage, failure.Item, failure.Reason)
	}
}
