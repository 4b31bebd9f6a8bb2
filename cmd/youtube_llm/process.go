package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Lalith1612/Youtube-LLM/internal/observability"
)

var processVerbose bool

var processCmd = &cobra.Command{
	Use:   "process <playlist-url>",
	Short: "Run the full pipeline for a playlist and wait for completion",
	Long:  `Download the playlist's audio, transcribe it, and store embedded transcript chunks in the playlist's vector collection. Runs synchronously.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runProcess,
}

func init() {
	processCmd.Flags().BoolVar(&processVerbose, "verbose", false, "Print a formatted job summary")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	application, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = application.Close() }()

	playlistID, err := application.orchestrator.ProcessSync(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("processing failed: %w", err)
	}

	if processVerbose {
		job, statusErr := application.orchestrator.Status(cmd.Context(), playlistID)
		if statusErr == nil {
			observability.NewPrinter(os.Stdout).PrintJobStatus(job)
		}
	}

	fmt.Printf("Playlist %s processed. You can now ask questions.\n", playlistID)
	return nil
}
