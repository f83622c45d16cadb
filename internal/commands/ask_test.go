package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hosbabel/hosbabel/internal/api"
	apierrors "github.com/hosbabel/hosbabel/internal/errors"
)

func TestAskPrintsReply(t *testing.T) {
	client := &api.MockClient{Base: "http://backend.test", ReplyVal: "  the tower answers  "}
	deps, _, _ := newTestDeps(client)

	out, _, err := execute(t, NewAskCmd(deps), "hello", "tower")
	if err != nil {
		t.Fatalf("ask failed: %v", err)
	}
	if out != "  the tower answers  \n" {
		t.Errorf("stdout = %q", out)
	}
	if len(client.Prompts) != 1 || client.Prompts[0] != "hello tower" {
		t.Errorf("prompts = %v", client.Prompts)
	}
}

func TestAskKeepsTrailingNewline(t *testing.T) {
	client := &api.MockClient{Base: "http://backend.test", ReplyVal: "line\n"}
	deps, _, _ := newTestDeps(client)

	out, _, err := execute(t, NewAskCmd(deps), "--raw", "hi")
	if err != nil {
		t.Fatalf("ask failed: %v", err)
	}
	if out != "line\n" {
		t.Errorf("stdout = %q", out)
	}
}

func TestAskErrors(t *testing.T) {
	tests := []struct {
		name    string
		client  *api.MockClient
		args    []string
		wantIs  error
		wantMsg string
	}{
		{
			name:    "no reply",
			client:  &api.MockClient{Base: "http://backend.test", ReplyErr: apierrors.ErrNoReply},
			args:    []string{"hi"},
			wantIs:  apierrors.ErrNoReply,
			wantMsg: "no reply from http://backend.test",
		},
		{
			name:   "offline",
			client: &api.MockClient{ReplyErr: apierrors.ErrOffline},
			args:   []string{"hi"},
			wantIs: apierrors.ErrOffline,
		},
		{
			name:    "blank message",
			client:  &api.MockClient{Base: "http://backend.test"},
			args:    []string{"   "},
			wantMsg: "message cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps, _, _ := newTestDeps(tt.client)
			out, _, err := execute(t, NewAskCmd(deps), tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("error %v is not %v", err, tt.wantIs)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q missing %q", err, tt.wantMsg)
			}
			if out != "" {
				t.Errorf("nothing should reach stdout, got %q", out)
			}
		})
	}
}

func TestAskBlankMessageSkipsClient(t *testing.T) {
	client := &api.MockClient{Base: "http://backend.test"}
	deps, _, _ := newTestDeps(client)

	_ = runAsk(context.Background(), deps, &bytes.Buffer{}, &bytes.Buffer{}, "\n\t", false)
	if client.PromptCount() != 0 {
		t.Errorf("blank message should not be sent, got %d calls", client.PromptCount())
	}
}

func TestReadPrompt(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "prompt.md")
	if err := os.WriteFile(file, []byte("from file"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		stdin string
		args  []string
		file  string
		want  string
	}{
		{name: "args joined", args: []string{"a", "b"}, want: "a b"},
		{name: "file wins over args", args: []string{"a"}, file: file, want: "from file"},
		{name: "piped stdin", stdin: "piped text", want: "piped text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readPrompt(strings.NewReader(tt.stdin), tt.args, tt.file)
			if err != nil {
				t.Fatalf("readPrompt: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := readPrompt(strings.NewReader(""), nil, filepath.Join(dir, "missing.md")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestSpinnerLifecycle(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "Asking")
	s.start()
	time.Sleep(100 * time.Millisecond)
	s.stopWithSuccess("done")

	// A second stop must not panic on the closed channel
	s.stopWithError()

	out := buf.String()
	if !strings.Contains(out, "Asking") {
		t.Errorf("spinner never rendered its message: %q", out)
	}
	if !strings.Contains(out, "✓") || !strings.Contains(out, "done") {
		t.Errorf("missing success line: %q", out)
	}
	if !strings.HasPrefix(out, "\033[?25l") {
		t.Errorf("cursor should be hidden first: %q", out)
	}
}

func TestIsTerminalOnBuffer(t *testing.T) {
	if isTerminal(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}
	if w := terminalWidth(&bytes.Buffer{}); w != 80 {
		t.Errorf("terminalWidth = %d, want 80", w)
	}
}
