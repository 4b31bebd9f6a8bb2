package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Lalith1612/Youtube-LLM/internal/observability"
	"github.com/Lalith1612/Youtube-LLM/internal/vectorstore"
)

var askPlaylistID string

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question against a processed playlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askPlaylistID, "playlist", "", "Playlist ID to query (required)")
	_ = askCmd.MarkFlagRequired("playlist")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	application, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = application.Close() }()

	question := args[0]
	chunks, err := application.retriever.Retrieve(cmd.Context(), question, askPlaylistID)
	if err != nil {
		if errors.Is(err, vectorstore.ErrNotProcessed) {
			return fmt.Errorf("playlist %s has not been processed yet; run 'youtube_llm process' first", askPlaylistID)
		}
		return err
	}

	answer, sources := application.answerer.Answer(cmd.Context(), question, chunks)
	observability.NewPrinter(os.Stdout).PrintAnswer(answer, sources)
	return nil
}
