package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lalith1612/Youtube-LLM/internal/jobs"
	"github.com/Lalith1612/Youtube-LLM/internal/llm"
	"github.com/Lalith1612/Youtube-LLM/internal/pipeline"
	"github.com/Lalith1612/Youtube-LLM/internal/query"
	"github.com/Lalith1612/Youtube-LLM/internal/types"
	"github.com/Lalith1612/Youtube-LLM/internal/vectorstore"
)

// stubDownloader drops a single audio file into place
type stubDownloader struct{}

func (stubDownloader) Download(_ context.Context, _, destDir string) (*types.StageReport, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(destDir, "vid1.mp3"), []byte("audio"), 0o644); err != nil {
		return nil, err
	}
	return &types.StageReport{Completed: 1}, nil
}

// stubTranscriber writes the transcript the end-to-end scenario expects
type stubTranscriber struct{}

func (stubTranscriber) Transcribe(_ context.Context, _, destDir string) (*types.StageReport, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, err
	}
	transcript := `{"segments":[{"text":"the sky is blue","start":3.0}]}`
	if err := os.WriteFile(filepath.Join(destDir, "vid1.json"), []byte(transcript), 0o644); err != nil {
		return nil, err
	}
	return &types.StageReport{Completed: 1}, nil
}

// stubLLM returns a fixed embedding and a canned grounded answer
type stubLLM struct{}

func (stubLLM) EmbedText(_ context.Context, _ string, _ llm.EmbedMode) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

func (stubLLM) GenerateContent(_ context.Context, _ string) (string, error) {
	return "According to the videos, the sky is blue.", nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dataDir := t.TempDir()
	vectors := vectorstore.New(dataDir)
	capability := stubLLM{}

	orch := pipeline.New(pipeline.Options{
		DataDir:     dataDir,
		Jobs:        jobs.NewMemoryStore(),
		Vectors:     vectors,
		Embedder:    capability,
		Downloader:  stubDownloader{},
		Transcriber: stubTranscriber{},
	})

	return New(Config{
		Port:         0,
		Orchestrator: orch,
		Retriever:    query.NewRetriever(vectors, capability, 0),
		Answerer:     query.NewAnswerer(capability),
	})
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func waitForStatus(t *testing.T, handler http.Handler, playlistID string, want types.JobStatus) StatusResponse {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		rec := doJSON(t, handler, http.MethodGet, "/status/"+playlistID, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		status := decode[StatusResponse](t, rec)
		if status.Status == string(want) {
			return status
		}
		if types.JobStatus(status.Status).Terminal() {
			t.Fatalf("job reached terminal status %q waiting for %q (%s)", status.Status, want, status.Message)
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("job %s never reached status %q", playlistID, want)
	return StatusResponse{}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv.Handler(), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProcessPlaylist_Accepted(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/process-playlist",
		PlaylistRequest{PlaylistURL: "https://www.youtube.com/playlist?list=PL123"})

	require.Equal(t, http.StatusAccepted, rec.Code)
	resp := decode[ProcessResponse](t, rec)
	assert.Equal(t, "PL123", resp.PlaylistID)
	assert.Contains(t, resp.Message, "started in the background")

	waitForStatus(t, srv.Handler(), "PL123", types.StatusComplete)
}

func TestProcessPlaylist_InvalidBody(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/process-playlist", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProcessPlaylist_MissingURL(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/process-playlist", PlaylistRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatus_Unknown(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/status/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAsk_UnprocessedPlaylist(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/ask",
		AskRequest{Question: "why is the sky blue?", PlaylistID: "PL999"})

	require.Equal(t, http.StatusNotFound, rec.Code)
	resp := decode[map[string]string](t, rec)
	assert.Contains(t, resp["error"], "not found")
}

func TestAsk_MissingFields(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/ask", AskRequest{Question: "why?"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEndToEnd_ProcessThenAsk(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.Handler()

	// Submit
	rec := doJSON(t, handler, http.MethodPost, "/process-playlist",
		PlaylistRequest{PlaylistURL: "https://www.youtube.com/playlist?list=PL123"})
	require.Equal(t, http.StatusAccepted, rec.Code)

	// Poll until complete
	status := waitForStatus(t, handler, "PL123", types.StatusComplete)
	assert.Contains(t, status.Message, "Processing complete")

	// Ask
	rec = doJSON(t, handler, http.MethodPost, "/ask",
		AskRequest{Question: "what color is the sky?", PlaylistID: "PL123"})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[AskResponse](t, rec)
	assert.Contains(t, resp.Answer, "the sky is blue")
	assert.Equal(t, []string{"vid1 (at 3s)"}, resp.Sources)
}

func TestResubmissionWhileProcessing(t *testing.T) {
	dataDir := t.TempDir()
	vectors := vectorstore.New(dataDir)
	store := jobs.NewMemoryStore()
	capability := stubLLM{}

	orch := pipeline.New(pipeline.Options{
		DataDir:     dataDir,
		Jobs:        store,
		Vectors:     vectors,
		Embedder:    capability,
		Downloader:  stubDownloader{},
		Transcriber: stubTranscriber{},
	})
	srv := New(Config{
		Orchestrator: orch,
		Retriever:    query.NewRetriever(vectors, capability, 0),
		Answerer:     query.NewAnswerer(capability),
	})

	// Pin the job in processing without a live run
	require.NoError(t, store.Set(context.Background(), "PL123", types.PlaylistJob{
		PlaylistID: "PL123",
		Status:     types.StatusProcessing,
		Message:    "Step 1/3: Downloading audio from playlist. This can take a while...",
	}))

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/process-playlist",
		PlaylistRequest{PlaylistURL: "https://www.youtube.com/playlist?list=PL123"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[map[string]string](t, rec)
	assert.Contains(t, resp["error"], "already being processed")
}
