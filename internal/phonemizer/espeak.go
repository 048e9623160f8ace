package phonemizer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
	"time"
)

// Config holds configuration for the espeak phonemizer backend.
type Config struct {
	BinPath string        // default: "espeak"
	Voice   string        // optional, passed as -v
	Timeout time.Duration // 0 means no deadline beyond the caller's context
}

// ESpeak converts text to IPA by running the espeak binary once per call.
// It holds no mutable state and is safe for concurrent use.
type ESpeak struct {
	cfg Config
}

// New creates an ESpeak backed by the configured binary. The binary is not
// required to exist yet; a missing binary surfaces per call as
// KindNotInstalled.
func New(cfg Config) *ESpeak {
	if cfg.BinPath == "" {
		cfg.BinPath = "espeak"
	}
	return &ESpeak{cfg: cfg}
}

func (e *ESpeak) Name() string { return e.cfg.BinPath }

// Available reports whether the binary can be resolved.
func (e *ESpeak) Available() error {
	if _, err := exec.LookPath(e.cfg.BinPath); err != nil {
		return e.notInstalled(err)
	}
	return nil
}

// Args returns the argument list passed to the binary for text.
func (e *ESpeak) Args(text string) []string {
	args := make([]string, 0, 4)
	if e.cfg.Voice != "" {
		args = append(args, "-v", e.cfg.Voice)
	}
	return append(args, "--ipa", text)
}

// Phonemize runs the binary with --ipa and returns its stdout with newlines
// collapsed to spaces and surrounding whitespace trimmed. Every failure is
// an *Error.
func (e *ESpeak) Phonemize(ctx context.Context, text string) (string, error) {
	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, e.cfg.BinPath, e.Args(text)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", e.classify(ctx, err, stderr.String())
	}

	out := strings.TrimSpace(strings.ReplaceAll(stdout.String(), "\n", " "))
	if out == "" {
		return "", &Error{Kind: KindEmptyOutput, Detail: "Phonemization returned empty output."}
	}
	return out, nil
}

func (e *ESpeak) classify(ctx context.Context, err error, stderr string) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return unexpected(fmt.Errorf("%s: %w", e.cfg.BinPath, ctxErr))
	}

	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return e.notInstalled(err)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		msg := strings.TrimSpace(stderr)
		if msg == "" {
			msg = "Unknown error."
		}
		return &Error{
			Kind:   KindProcessFailed,
			Detail: "Phonemization failed: " + msg,
			Err:    err,
		}
	}

	return unexpected(err)
}

func (e *ESpeak) notInstalled(err error) *Error {
	return &Error{
		Kind:   KindNotInstalled,
		Detail: fmt.Sprintf("%s is not installed or not found in PATH.", e.cfg.BinPath),
		Err:    err,
	}
}

func unexpected(err error) *Error {
	return &Error{
		Kind:   KindUnexpected,
		Detail: fmt.Sprintf("Unexpected error: %v", err),
		Err:    err,
	}
}
