package logger

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestPlainFormatter(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	cases := []struct {
		name    string
		data    logrus.Fields
		message string
		want    string
	}{
		{
			name: "with component and fields",
			data: logrus.Fields{
				"component": "api",
				"endpoint":  "/chat",
				"status":    404,
			},
			message: "endpoint failed",
			want:    "[2025-01-02T03:04:05Z] [INFO] [api] endpoint failed endpoint=/chat status=404\n",
		},
		{
			name:    "bare",
			data:    logrus.Fields{},
			message: "hello",
			want:    "[2025-01-02T03:04:05Z] [INFO] hello\n",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			entry := &logrus.Entry{
				Logger:  logrus.New(),
				Time:    ts,
				Level:   logrus.InfoLevel,
				Message: tc.message,
				Data:    tc.data,
			}
			out, err := (PlainFormatter{}).Format(entry)
			if err != nil {
				t.Fatalf("Format() error: %v", err)
			}
			if string(out) != tc.want {
				t.Fatalf("unexpected format:\nwant: %q\ngot:  %q", tc.want, string(out))
			}
		})
	}
}

func TestNamedWritesComponent(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(&bytes.Buffer{}) })

	Named("console").WithField("state", "babel").Info("transition")

	got := buf.String()
	if !strings.Contains(got, "[console] transition state=babel") {
		t.Errorf("log line = %q", got)
	}
}

func TestSetVerbose(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(&bytes.Buffer{})
	})

	Named("x").Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug line written at info level: %q", buf.String())
	}

	SetVerbose(true)
	Named("x").Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("debug line missing at debug level: %q", buf.String())
	}
}

func TestSetupRequiresPath(t *testing.T) {
	if _, err := Setup(Options{}); err == nil {
		t.Error("Setup with empty path should fail")
	}
}

func TestSetupWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "test.log")
	closer, err := Setup(Options{Path: path})
	if err != nil {
		t.Fatalf("Setup() error: %v", err)
	}
	t.Cleanup(func() {
		_ = closer.Close()
		SetOutput(&bytes.Buffer{})
	})

	Named("test").Info("written")
}

func TestPathIn(t *testing.T) {
	got := PathIn("/tmp/hb")
	if got != filepath.Join("/tmp/hb", "logs", DefaultFileName) {
		t.Errorf("PathIn() = %q", got)
	}
}
