package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Lalith1612/Youtube-LLM/internal/vectorstore"
)

// PlaylistRequest represents the request body for /process-playlist
type PlaylistRequest struct {
	PlaylistURL string `json:"playlist_url" validate:"required,url"`
}

// ProcessResponse represents the response for /process-playlist
type ProcessResponse struct {
	Message    string `json:"message"`
	PlaylistID string `json:"playlist_id"`
}

// StatusResponse represents the response for /status/{playlist_id}
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// AskRequest represents the request body for /ask
type AskRequest struct {
	Question   string `json:"question" validate:"required"`
	PlaylistID string `json:"playlist_id" validate:"required"`
}

// AskResponse represents the response for /ask
type AskResponse struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

// handleProcessPlaylist accepts a playlist URL and starts the pipeline
// in the background.
func (s *Server) handleProcessPlaylist(w http.ResponseWriter, r *http.Request) {
	var req PlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "playlist_url must be a valid URL")
		return
	}

	playlistID, err := s.orchestrator.Submit(r.Context(), req.PlaylistURL)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusAccepted, ProcessResponse{
		Message:    "Playlist processing started in the background.",
		PlaylistID: playlistID,
	})
}

// handleStatus returns the status of a processing job
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	playlistID := r.PathValue("playlist_id")
	if playlistID == "" {
		s.errorResponse(w, http.StatusBadRequest, "Playlist ID is required")
		return
	}

	job, err := s.orchestrator.Status(r.Context(), playlistID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, StatusResponse{
		Status:  string(job.Status),
		Message: job.Message,
	})
}

// handleAsk answers a question against a processed playlist
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "question and playlist_id are required")
		return
	}

	chunks, err := s.retriever.Retrieve(r.Context(), req.Question, req.PlaylistID)
	if err != nil {
		if errors.Is(err, vectorstore.ErrNotProcessed) {
			s.errorResponse(w, http.StatusNotFound, "Processed data for this playlist not found. Please process it first.")
			return
		}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	answer, sources := s.answerer.Answer(r.Context(), req.Question, chunks)
	if sources == nil {
		sources = []string{}
	}

	s.jsonResponse(w, http.StatusOK, AskResponse{
		Answer:  answer,
		Sources: sources,
	})
}
