package phonemizer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// fakeBinary writes an executable shell script standing in for espeak.
func fakeBinary(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fakes need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "espeak")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("write fake binary: %v", err)
	}
	return path
}

func TestPhonemizeSuccess(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "trailing newline stripped",
			body: `printf 'h_E_l_oU\n'`,
			want: "h_E_l_oU",
		},
		{
			name: "inner newlines collapsed",
			body: `printf ' həlˈəʊ\n wˈɜːld\n'`,
			want: "həlˈəʊ  wˈɜːld",
		},
		{
			name: "stderr ignored on success",
			body: `printf 'ok' ; printf 'warning' >&2`,
			want: "ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(Config{BinPath: fakeBinary(t, tt.body)})
			got, err := e.Phonemize(context.Background(), "hello")
			if err != nil {
				t.Fatalf("Phonemize() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Phonemize() = %q, want %q", got, tt.want)
			}
			if strings.Contains(got, "\n") {
				t.Errorf("result contains a newline: %q", got)
			}
		})
	}
}

func TestPhonemizePassesTextAsSingleArgument(t *testing.T) {
	// Echo the argument count and every argument on its own line.
	bin := fakeBinary(t, `printf '%s\n' "$#" "$@"`)
	e := New(Config{BinPath: bin})

	got, err := e.Phonemize(context.Background(), "hello; rm -rf / $(id)")
	if err != nil {
		t.Fatalf("Phonemize() error = %v", err)
	}
	want := "2 --ipa hello; rm -rf / $(id)"
	if got != want {
		t.Errorf("Phonemize() = %q, want %q", got, want)
	}
}

func TestArgs(t *testing.T) {
	plain := New(Config{}).Args("hi")
	if strings.Join(plain, " ") != "--ipa hi" {
		t.Errorf("Args() = %v, want [--ipa hi]", plain)
	}

	voiced := New(Config{Voice: "en-us"}).Args("hi")
	if strings.Join(voiced, " ") != "-v en-us --ipa hi" {
		t.Errorf("Args() = %v, want [-v en-us --ipa hi]", voiced)
	}
}

func TestPhonemizeFailures(t *testing.T) {
	tests := []struct {
		name       string
		bin        func(t *testing.T) string
		wantKind   Kind
		wantDetail string
	}{
		{
			name:       "binary missing at path",
			bin:        func(t *testing.T) string { return filepath.Join(t.TempDir(), "espeak") },
			wantKind:   KindNotInstalled,
			wantDetail: "is not installed or not found in PATH.",
		},
		{
			name:       "binary missing from PATH",
			bin:        func(t *testing.T) string { return "phonemizer-binary-that-does-not-exist" },
			wantKind:   KindNotInstalled,
			wantDetail: "phonemizer-binary-that-does-not-exist is not installed or not found in PATH.",
		},
		{
			name:       "non-zero exit with stderr",
			bin:        func(t *testing.T) string { return fakeBinary(t, `echo "bad voice" >&2; exit 1`) },
			wantKind:   KindProcessFailed,
			wantDetail: "Phonemization failed: bad voice",
		},
		{
			name:       "non-zero exit without stderr",
			bin:        func(t *testing.T) string { return fakeBinary(t, `exit 3`) },
			wantKind:   KindProcessFailed,
			wantDetail: "Phonemization failed: Unknown error.",
		},
		{
			name:       "whitespace only output",
			bin:        func(t *testing.T) string { return fakeBinary(t, `printf '\n \n\t\n'`) },
			wantKind:   KindEmptyOutput,
			wantDetail: "Phonemization returned empty output.",
		},
		{
			name:       "no output",
			bin:        func(t *testing.T) string { return fakeBinary(t, `exit 0`) },
			wantKind:   KindEmptyOutput,
			wantDetail: "Phonemization returned empty output.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(Config{BinPath: tt.bin(t)})
			got, err := e.Phonemize(context.Background(), "hello")
			if err == nil {
				t.Fatalf("Phonemize() = %q, want error", got)
			}
			if k := KindOf(err); k != tt.wantKind {
				t.Errorf("KindOf() = %q, want %q (err: %v)", k, tt.wantKind, err)
			}
			if d := DetailOf(err); !strings.HasSuffix(d, tt.wantDetail) {
				t.Errorf("DetailOf() = %q, want suffix %q", d, tt.wantDetail)
			}
		})
	}
}

func TestPhonemizeTimeout(t *testing.T) {
	bin := fakeBinary(t, `exec sleep 5`)
	e := New(Config{BinPath: bin, Timeout: 50 * time.Millisecond})

	_, err := e.Phonemize(context.Background(), "hello")
	if KindOf(err) != KindUnexpected {
		t.Fatalf("KindOf() = %q, want %q (err: %v)", KindOf(err), KindUnexpected, err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error should wrap context.DeadlineExceeded, got %v", err)
	}
	if !strings.HasPrefix(DetailOf(err), "Unexpected error: ") {
		t.Errorf("DetailOf() = %q", DetailOf(err))
	}
}

func TestPhonemizeCanceledContext(t *testing.T) {
	bin := fakeBinary(t, `printf 'x'`)
	e := New(Config{BinPath: bin})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := e.Phonemize(ctx, "hello"); !errors.Is(err, context.Canceled) {
		t.Errorf("Phonemize() error = %v, want context.Canceled", err)
	}
}

func TestPhonemizeIsRepeatable(t *testing.T) {
	e := New(Config{BinPath: fakeBinary(t, `printf 'h_E_l_oU\n'`)})

	first, err := e.Phonemize(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Phonemize() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		got, err := e.Phonemize(context.Background(), "hello")
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if got != first {
			t.Errorf("call %d = %q, want %q", i, got, first)
		}
	}
}

func TestAvailable(t *testing.T) {
	if err := New(Config{BinPath: fakeBinary(t, `exit 0`)}).Available(); err != nil {
		t.Errorf("Available() = %v, want nil", err)
	}

	err := New(Config{BinPath: "phonemizer-binary-that-does-not-exist"}).Available()
	if KindOf(err) != KindNotInstalled {
		t.Errorf("KindOf(Available()) = %q, want %q", KindOf(err), KindNotInstalled)
	}
}

func TestDetailOfForeignError(t *testing.T) {
	err := errors.New("boom")
	if KindOf(err) != KindUnexpected {
		t.Errorf("KindOf() = %q", KindOf(err))
	}
	if got := DetailOf(err); got != "Unexpected error: boom" {
		t.Errorf("DetailOf() = %q", got)
	}
}
