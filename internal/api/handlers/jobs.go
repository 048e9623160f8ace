package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nikhilbhutani/phonemizer/internal/queue"
)

// JobQueue runs phonemization in the background worker.
type JobQueue interface {
	EnqueuePhonemize(ctx context.Context, text string) (string, error)
	Job(ctx context.Context, id string) (*queue.Job, error)
}

type JobHandler struct {
	jobs JobQueue
}

// NewJobHandler returns a handler for the async routes. A nil queue makes
// every route answer 503.
func NewJobHandler(jobs JobQueue) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// Create enqueues a phonemization job.
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.jobs == nil {
		writeError(w, http.StatusServiceUnavailable, "job queue is not enabled")
		return
	}

	text, ok := decodeText(w, r)
	if !ok {
		return
	}

	id, err := h.jobs.EnqueuePhonemize(r.Context(), text)
	if err != nil {
		slog.Error("failed to enqueue phonemization", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to enqueue job")
		return
	}

	writeJSON(w, http.StatusAccepted, queue.Job{ID: id, Status: queue.StatusPending})
}

// Get reports the state of a job and, once finished, its result or error.
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.jobs == nil {
		writeError(w, http.StatusServiceUnavailable, "job queue is not enabled")
		return
	}

	id := chi.URLParam(r, "id")
	job, err := h.jobs.Job(r.Context(), id)
	if err != nil {
		if errors.Is(err, queue.ErrJobNotFound) {
			writeError(w, http.StatusNotFound, "job not found")
			return
		}
		slog.Error("failed to load job", "job_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load job")
		return
	}

	writeJSON(w, http.StatusOK, job)
}
