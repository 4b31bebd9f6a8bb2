// Package server provides the HTTP REST API for the playlist RAG
// service.
package server

import (
	"errors"
	"net/http"

	"github.com/Lalith1612/Youtube-LLM/internal/pipeline"
	"github.com/Lalith1612/Youtube-LLM/internal/vectorstore"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, pipeline.ErrAlreadyProcessing):
		return http.StatusBadRequest
	case errors.Is(err, pipeline.ErrJobNotFound):
		return http.StatusNotFound
	case errors.Is(err, vectorstore.ErrNotProcessed):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
