// Package logger wires structured logging for hosbabel.
// The terminal belongs to the TUI, so output goes to a rotating file.
package logger

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Entry and Fields alias the logrus types so callers don't import logrus directly.
type Entry = logrus.Entry
type Fields = logrus.Fields

// DefaultFileName is the log file created inside the config directory
const DefaultFileName = "hosbabel.log"

var root = newRoot()

func newRoot() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(PlainFormatter{})
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Options configures the file sink
type Options struct {
	Path       string
	Verbose    bool
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Setup points the root logger at a rotating file and returns its closer.
func Setup(opts Options) (io.Closer, error) {
	if opts.Path == "" {
		return nil, fmt.Errorf("log path is empty")
	}
	if opts.MaxSizeMB <= 0 {
		opts.MaxSizeMB = 10
	}
	if opts.MaxBackups <= 0 {
		opts.MaxBackups = 3
	}
	if opts.MaxAgeDays <= 0 {
		opts.MaxAgeDays = 14
	}

	sink := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
	}
	root.SetOutput(sink)
	if opts.Verbose {
		root.SetLevel(logrus.DebugLevel)
	} else {
		root.SetLevel(logrus.InfoLevel)
	}
	return sink, nil
}

// SetOutput redirects the root logger (tests use a buffer).
func SetOutput(w io.Writer) {
	root.SetOutput(w)
}

// SetVerbose toggles debug output
func SetVerbose(verbose bool) {
	if verbose {
		root.SetLevel(logrus.DebugLevel)
		return
	}
	root.SetLevel(logrus.InfoLevel)
}

// Named returns an entry tagged with a component field.
func Named(component string) *Entry {
	entry := logrus.NewEntry(root)
	if component != "" {
		entry = entry.WithField("component", component)
	}
	return entry
}

// PlainFormatter writes: [timestamp] [LEVEL] [component] message key=value...
type PlainFormatter struct{}

// Format implements logrus.Formatter.
func (PlainFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	if entry == nil {
		return []byte{}, nil
	}
	parts := make([]string, 0, 5)
	parts = append(parts, fmt.Sprintf("[%s]", entry.Time.UTC().Format(time.RFC3339Nano)))
	parts = append(parts, fmt.Sprintf("[%s]", strings.ToUpper(entry.Level.String())))
	if component, ok := entry.Data["component"].(string); ok && component != "" {
		parts = append(parts, fmt.Sprintf("[%s]", component))
	}
	parts = append(parts, entry.Message)
	if fields := formatFields(entry.Data); fields != "" {
		parts = append(parts, fields)
	}
	return []byte(strings.Join(parts, " ") + "\n"), nil
}

func formatFields(fields logrus.Fields) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k == "component" {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	return strings.Join(parts, " ")
}

// PathIn returns the default log path inside dir
func PathIn(dir string) string {
	return filepath.Join(dir, "logs", DefaultFileName)
}
