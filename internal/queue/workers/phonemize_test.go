package workers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/nikhilbhutani/phonemizer/internal/phonemizer"
	"github.com/nikhilbhutani/phonemizer/internal/queue"
)

type fakePhonemizer struct {
	out string
	err error
	got string
}

func (f *fakePhonemizer) Phonemize(ctx context.Context, text string) (string, error) {
	f.got = text
	return f.out, f.err
}

func TestRunSuccess(t *testing.T) {
	fake := &fakePhonemizer{out: "h_E_l_oU"}
	w := NewPhonemizeWorker(fake)

	res, err := w.Run(context.Background(), []byte(`{"text":"hello"}`))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if fake.got != "hello" {
		t.Errorf("phonemizer got %q, want hello", fake.got)
	}

	var decoded queue.PhonemizeResult
	if err := json.Unmarshal(res, &decoded); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}
	if decoded.PhonemizedText != "h_E_l_oU" {
		t.Errorf("PhonemizedText = %q", decoded.PhonemizedText)
	}
}

func TestRunFailureUsesDetail(t *testing.T) {
	fake := &fakePhonemizer{err: &phonemizer.Error{
		Kind:   phonemizer.KindProcessFailed,
		Detail: "Phonemization failed: bad voice",
	}}
	w := NewPhonemizeWorker(fake)

	_, err := w.Run(context.Background(), []byte(`{"text":"hello"}`))
	if err == nil {
		t.Fatal("Run() should fail")
	}
	if err.Error() != "Phonemization failed: bad voice" {
		t.Errorf("Run() error = %q", err.Error())
	}
}

func TestRunBadPayload(t *testing.T) {
	w := NewPhonemizeWorker(&fakePhonemizer{out: "x"})
	if _, err := w.Run(context.Background(), []byte("{")); err == nil {
		t.Error("Run() with a broken payload should fail")
	}
}
