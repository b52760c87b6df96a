package entities

// Video job states reported by the generation provider. Completed and
// failed are terminal; anything else keeps the poll loop running.
const (
	VideoJobStatusQueued     = "queued"
	VideoJobStatusProcessing = "processing"
	VideoJobStatusCompleted  = "completed"
	VideoJobStatusFailed     = "failed"
)

// VideoJob mirrors the provider's view of a generation job. It is mutated
// only through polling responses, never by the orchestrator directly.
type VideoJob struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	ResultURL    string `json:"video_url,omitempty"`
	DownloadURL  string `json:"download_url,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Terminal reports whether no further polling should occur.
func (j *VideoJob) Terminal() bool {
	return j.Status == VideoJobStatusCompleted || j.Status == VideoJobStatusFailed
}

// VideoJobResult is the normalized outcome of a finished job: either a
// fetchable URL or a locally materialized temporary file, depending on the
// provider's result shape. The storage uploader accepts both.
type VideoJobResult struct {
	JobID        string
	URL          string
	LocalPath    string
	ThumbnailURL string
}

// Source returns the reference the storage uploader should persist.
func (r *VideoJobResult) Source() string {
	if r.LocalPath != "" {
		return r.LocalPath
	}
	return r.URL
}
