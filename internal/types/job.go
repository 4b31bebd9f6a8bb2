// Package types defines the shared data model for the playlist
// processing pipeline and the query engine.
package types

// JobStatus represents the lifecycle state of a playlist processing job
type JobStatus string

// Job lifecycle states. A job moves queued -> processing -> complete
// or error; terminal states only change through re-submission.
const (
	StatusQueued     JobStatus = "queued"
	StatusProcessing JobStatus = "processing"
	StatusComplete   JobStatus = "complete"
	StatusError      JobStatus = "error"
)

// Terminal reports whether the status is an end state
func (s JobStatus) Terminal() bool {
	return s == StatusComplete || s == StatusError
}

// PlaylistJob tracks the progress of one playlist through the pipeline.
// The orchestrator replaces the whole record on every update, so a
// concurrent reader always observes a consistent snapshot.
type PlaylistJob struct {
	PlaylistID string    `json:"playlist_id"`
	Status     JobStatus `json:"status"`
	Message    string    `json:"message"`
}
