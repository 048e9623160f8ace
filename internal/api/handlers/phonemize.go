package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/nikhilbhutani/phonemizer/internal/phonemizer"
)

// Phonemizer converts text to an IPA transcription.
type Phonemizer interface {
	Phonemize(ctx context.Context, text string) (string, error)
}

// PhonemizeRequest is the body of POST /phonemize/. Text is a pointer so a
// missing field can be told apart from an empty string.
type PhonemizeRequest struct {
	Text *string `json:"text"`
}

type PhonemizeResponse struct {
	PhonemizedText string `json:"phonemized_text"`
}

type PhonemizeHandler struct {
	phonemizer Phonemizer
}

func NewPhonemizeHandler(p Phonemizer) *PhonemizeHandler {
	return &PhonemizeHandler{phonemizer: p}
}

// Phonemize runs the phonemizer synchronously for the request text.
func (h *PhonemizeHandler) Phonemize(w http.ResponseWriter, r *http.Request) {
	text, ok := decodeText(w, r)
	if !ok {
		return
	}

	out, err := h.phonemizer.Phonemize(r.Context(), text)
	if err != nil {
		slog.Error("phonemization failed",
			"kind", phonemizer.KindOf(err),
			"error", err,
			"request_id", middleware.GetReqID(r.Context()),
		)
		writeError(w, StatusFor(phonemizer.KindOf(err)), phonemizer.DetailOf(err))
		return
	}

	writeJSON(w, http.StatusOK, PhonemizeResponse{PhonemizedText: out})
}

// StatusFor maps a phonemization failure to its HTTP status. Clients have
// always received 500 for every kind, including empty output, so the kind
// only changes the detail message.
func StatusFor(phonemizer.Kind) int {
	return http.StatusInternalServerError
}

// decodeText reads a PhonemizeRequest and writes a 422 when the body is
// malformed or lacks the text field.
func decodeText(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req PhonemizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return "", false
	}
	if req.Text == nil {
		writeError(w, http.StatusUnprocessableEntity, "field required: text")
		return "", false
	}
	return *req.Text, true
}
