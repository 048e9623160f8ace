package queue

import "errors"

const (
	TypePhonemize = "phonemize:text"

	// QueueDefault is the asynq queue phonemization jobs are placed on.
	QueueDefault = "default"
)

type PhonemizePayload struct {
	Text string `json:"text"`
}

// PhonemizeResult is stored as the task result once the worker succeeds.
type PhonemizeResult struct {
	PhonemizedText string `json:"phonemized_text"`
}

type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusActive    JobStatus = "active"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

// Job is the client-facing view of an enqueued phonemization.
type Job struct {
	ID             string    `json:"job_id"`
	Status         JobStatus `json:"status"`
	PhonemizedText string    `json:"phonemized_text,omitempty"`
	Detail         string    `json:"detail,omitempty"`
}

var ErrJobNotFound = errors.New("job not found")
