package main

import (
	"github.com/spf13/cobra"

	"github.com/Lalith1612/Youtube-LLM/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for processing playlists and asking questions against processed ones.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT / config file)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	application, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = application.Close() }()

	port := application.cfg.Port
	if servePort != 0 {
		port = servePort
	}

	srv := server.New(server.Config{
		Port:         port,
		Orchestrator: application.orchestrator,
		Retriever:    application.retriever,
		Answerer:     application.answerer,
	})

	return srv.Start()
}
