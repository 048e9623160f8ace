package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/nikhilbhutani/phonemizer/internal/phonemizer"
	"github.com/nikhilbhutani/phonemizer/internal/queue"
)

// Phonemizer converts text to an IPA transcription.
type Phonemizer interface {
	Phonemize(ctx context.Context, text string) (string, error)
}

type PhonemizeWorker struct {
	phonemizer Phonemizer
}

func NewPhonemizeWorker(p Phonemizer) *PhonemizeWorker {
	return &PhonemizeWorker{phonemizer: p}
}

// ProcessTask handles queue.TypePhonemize. The returned error text becomes
// the job's failure detail, so it carries the same message the synchronous
// endpoint would send.
func (w *PhonemizeWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	res, err := w.Run(ctx, t.Payload())
	if err != nil {
		return err
	}

	rw := t.ResultWriter()
	if rw == nil {
		return errors.New("task has no result writer")
	}
	if _, err := rw.Write(res); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

// Run phonemizes a raw task payload and returns the encoded result.
func (w *PhonemizeWorker) Run(ctx context.Context, payload []byte) ([]byte, error) {
	var p queue.PhonemizePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}

	out, err := w.phonemizer.Phonemize(ctx, p.Text)
	if err != nil {
		return nil, errors.New(phonemizer.DetailOf(err))
	}

	return json.Marshal(queue.PhonemizeResult{PhonemizedText: out})
}
