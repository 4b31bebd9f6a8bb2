// Package main provides the entry point for the playlist RAG service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "youtube_llm",
	Short: "Playlist question-answering service",
	Long:  "youtube_llm turns a YouTube playlist into a question-answerable knowledge base: it downloads audio, transcribes it, embeds the transcript chunks into a vector store, and answers questions grounded in the retrieved chunks.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
