package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Lalith1612/Youtube-LLM/internal/llm"
	"github.com/Lalith1612/Youtube-LLM/internal/transcripts"
	"github.com/Lalith1612/Youtube-LLM/internal/types"
)

// ingest is the chunk+embed stage: it reads every transcript under
// transcriptDir, embeds each segment, and upserts the chunks into the
// playlist's vector collection. Per-segment embedding failures are
// recorded and skipped; an unusable store, an unreadable directory, or
// an empty directory is fatal for the stage.
func (o *Orchestrator) ingest(ctx context.Context, playlistID, transcriptDir string) (*types.StageReport, error) {
	col, err := o.vectors.Open(playlistID)
	if err != nil {
		return nil, fmt.Errorf("error initializing vector store: %w", err)
	}

	files, err := transcripts.List(transcriptDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no transcript files found in %s", transcriptDir)
	}

	report := &types.StageReport{}
	var mu sync.Mutex

	for _, file := range files {
		transcript, err := transcripts.Load(file)
		if err != nil {
			log.Printf("[%s] skipping transcript: %v", playlistID, err)
			report.Fail(file, err.Error())
			continue
		}

		var g errgroup.Group
		g.SetLimit(o.embedConcurrency)
		for _, seg := range transcript.Segments {
			g.Go(func() error {
				embedding, err := o.embedder.EmbedText(ctx, seg.Text, llm.EmbedModeDocument)
				if err != nil {
					mu.Lock()
					report.Fail(types.ChunkID(transcript.Source, seg.Start), err.Error())
					mu.Unlock()
					return nil
				}

				chunk := types.NewChunk(transcript.Source, seg, embedding)
				if err := col.Upsert(ctx, chunk); err != nil {
					mu.Lock()
					report.Fail(chunk.ID, err.Error())
					mu.Unlock()
					return nil
				}

				mu.Lock()
				report.Completed++
				mu.Unlock()
				return nil
			})
		}
		// Tasks never return errors; failures accumulate in the report
		_ = g.Wait()

		log.Printf("[%s] stored %d segments from %s", playlistID, len(transcript.Segments), transcript.Source)
	}

	if report.Completed == 0 && len(report.Failures) > 0 {
		return nil, fmt.Errorf("failed to store any chunks: %s", report.Failures[0].Reason)
	}

	log.Printf("[%s] total documents in collection: %d", playlistID, col.Count())
	return report, nil
}
