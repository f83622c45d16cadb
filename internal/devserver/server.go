// Package devserver is a small local backend speaking the reply protocol, so
// the front-end can be exercised without the real service.
package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hosbabel/hosbabel/internal/logger"
	"github.com/hosbabel/hosbabel/internal/models"
)

// ReplyShape selects how the reply is encoded
type ReplyShape string

const (
	// ShapeReply answers {"reply": ...}
	ShapeReply ReplyShape = "reply"
	// ShapeData answers {"data": {"message": ...}}
	ShapeData ReplyShape = "data"
	// ShapeText answers with a text/plain body
	ShapeText ReplyShape = "text"
)

// ParseShape parses a reply shape name
func ParseShape(s string) (ReplyShape, error) {
	switch ReplyShape(strings.ToLower(s)) {
	case ShapeReply, "":
		return ShapeReply, nil
	case ShapeData:
		return ShapeData, nil
	case ShapeText:
		return ShapeText, nil
	default:
		return "", fmt.Errorf("unknown reply shape: %s (valid: reply, data, text)", s)
	}
}

// Options configures the dev backend
type Options struct {
	// Endpoint is the only reply path that answers; the others return an
	// empty 404 so clients move on to the next path. Empty serves every
	// reply path.
	Endpoint string
	Shape    ReplyShape
	// Latency delays every reply.
	Latency time.Duration
}

type chatRequest struct {
	Text string `json:"text"`
}

// NewRouter builds the dev backend's routes
func NewRouter(opts Options) http.Handler {
	log := logger.Named("devserver")

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: log, NoColor: true}))
	r.Use(middleware.Recoverer)

	r.Get(models.HealthPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, path := range models.ReplyEndpoints {
		if opts.Endpoint != "" && path != opts.Endpoint {
			continue
		}
		r.Post(path, replyHandler(opts))
	}

	return r
}

func replyHandler(opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if opts.Latency > 0 {
			select {
			case <-time.After(opts.Latency):
			case <-r.Context().Done():
				return
			}
		}

		reply := Reply(req.Text)
		switch opts.Shape {
		case ShapeText:
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = w.Write([]byte(reply))
		case ShapeData:
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]string{"message": reply}})
		default:
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{"reply": reply})
		}
	}
}

// Reply is the canned answer to text
func Reply(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return "BABEL hears silence."
	}
	return "BABEL echo: " + text
}

// Run serves the dev backend on addr until ctx is cancelled
func Run(ctx context.Context, addr string, opts Options) error {
	log := logger.Named("devserver")
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("dev backend listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("dev backend failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("dev backend shutdown: %w", err)
	}
	log.Info("dev backend stopped")
	return nil
}
