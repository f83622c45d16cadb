package api

import (
	"context"
	"errors"
	"strings"
	"testing"

	apierrors "github.com/hosbabel/hosbabel/internal/errors"
	"github.com/hosbabel/hosbabel/internal/models"
)

func TestFetchReply_OfflineMakesNoCall(t *testing.T) {
	mock := NewMockHttpClient(map[string]mockRoute{"/chat": jsonRoute(`{"reply":"hi"}`)})
	client, err := NewClient("   ", WithHTTPClient(mock))
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}

	for _, text := range []string{"hello", "", "another"} {
		reply, err := client.FetchReply(context.Background(), text)
		if !errors.Is(err, apierrors.ErrOffline) {
			t.Errorf("FetchReply(%q) error = %v, want ErrOffline", text, err)
		}
		if reply != "" {
			t.Errorf("FetchReply(%q) = %q, want empty", text, reply)
		}
	}
	if n := len(mock.Requests()); n != 0 {
		t.Errorf("offline client issued %d requests", n)
	}
}

func TestFetchReply_RequestShape(t *testing.T) {
	client, mock := newTestClient(map[string]mockRoute{"/chat": jsonRoute(`{"reply":"ok"}`)})

	if _, err := client.FetchReply(context.Background(), `say "hi"`); err != nil {
		t.Fatalf("FetchReply() error: %v", err)
	}
	reqs := mock.Requests()
	if len(reqs) != 1 {
		t.Fatalf("expected 1 request, got %d", len(reqs))
	}
	if reqs[0].Method != "POST" {
		t.Errorf("method = %s, want POST", reqs[0].Method)
	}
	if reqs[0].ContentType != "application/json" {
		t.Errorf("content type = %q", reqs[0].ContentType)
	}
	if reqs[0].Body != `{"text":"say \"hi\""}` {
		t.Errorf("body = %s", reqs[0].Body)
	}
}

func TestFetchReply_ReplyFields(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"reply top level", `{"reply":"from reply"}`, "from reply"},
		{"message top level", `{"message":"from message"}`, "from message"},
		{"text top level", `{"text":"from text"}`, "from text"},
		{"output top level", `{"output":"from output"}`, "from output"},
		{"content top level", `{"content":"from content"}`, "from content"},
		{"answer top level", `{"answer":"from answer"}`, "from answer"},
		{"reply under data", `{"data":{"reply":"nested"}}`, "nested"},
		{"message under data", `{"status":"ok","data":{"message":"nested msg"}}`, "nested msg"},
		{"priority order", `{"answer":"a","reply":"r","message":"m"}`, "r"},
		{"blank reply skipped", `{"reply":"   ","message":"m"}`, "m"},
		{"non-string skipped", `{"reply":42,"text":"t"}`, "t"},
		{"top level beats data", `{"data":{"reply":"inner"},"answer":"outer"}`, "outer"},
		{"untrimmed value kept", `{"reply":"  padded  "}`, "  padded  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(map[string]mockRoute{"/chat": jsonRoute(tt.body)})
			got, err := client.FetchReply(context.Background(), "q")
			if err != nil {
				t.Fatalf("FetchReply() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("FetchReply() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFetchReply_MissingFieldDiagnostic(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"object without fields", `{ "status" : "ok", "count": 2 }`, `{"status":"ok","count":2}`},
		{"array", `[1, 2, 3]`, `[1,2,3]`},
		{"data not object", `{"data": "reply"}`, `{"data":"reply"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(map[string]mockRoute{"/chat": jsonRoute(tt.body)})
			got, err := client.FetchReply(context.Background(), "q")
			if err != nil {
				t.Fatalf("FetchReply() error: %v", err)
			}
			if !strings.HasPrefix(got, models.MissingFieldPrefix) {
				t.Fatalf("FetchReply() = %q, want diagnostic prefix", got)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("diagnostic %q does not contain serialized JSON %q", got, tt.want)
			}
		})
	}
}

func TestFetchReply_PlainText(t *testing.T) {
	client, _ := newTestClient(map[string]mockRoute{"/chat": textRoute("  plain answer\n")})
	got, err := client.FetchReply(context.Background(), "q")
	if err != nil {
		t.Fatalf("FetchReply() error: %v", err)
	}
	if got != "  plain answer\n" {
		t.Errorf("FetchReply() = %q, want raw body", got)
	}
}

func TestFetchReply_FirstSuccessWins(t *testing.T) {
	tests := []struct {
		name      string
		routes    map[string]mockRoute
		want      string
		wantPaths string
	}{
		{
			name:      "first endpoint",
			routes:    map[string]mockRoute{"/chat": jsonRoute(`{"reply":"one"}`), "/api/chat": jsonRoute(`{"reply":"two"}`)},
			want:      "one",
			wantPaths: "/chat",
		},
		{
			name:      "second after network error",
			routes:    map[string]mockRoute{"/chat": {err: errors.New("connection refused")}, "/api/chat": jsonRoute(`{"reply":"two"}`)},
			want:      "two",
			wantPaths: "/chat,/api/chat",
		},
		{
			name: "third after empty bodies",
			routes: map[string]mockRoute{
				"/chat":     {status: 404, contentType: "text/plain"},
				"/api/chat": textRoute("   "),
				"/rag":      jsonRoute(`{"answer":"three"}`),
			},
			want:      "three",
			wantPaths: "/chat,/api/chat,/rag",
		},
		{
			name: "fourth after invalid json",
			routes: map[string]mockRoute{
				"/chat":     {status: 502, contentType: "text/html", body: "\n\t"},
				"/api/chat": {status: 200, contentType: "application/json", body: "{broken"},
				"/rag":      {err: errors.New("reset")},
				"/api/rag":  textRoute("four"),
			},
			want:      "four",
			wantPaths: "/chat,/api/chat,/rag,/api/rag",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, mock := newTestClient(tt.routes)
			got, err := client.FetchReply(context.Background(), "q")
			if err != nil {
				t.Fatalf("FetchReply() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("FetchReply() = %q, want %q", got, tt.want)
			}
			if paths := joinPaths(mock.Paths()); paths != tt.wantPaths {
				t.Errorf("attempted %s, want %s", paths, tt.wantPaths)
			}
		})
	}
}

func TestFetchReply_StatusDoesNotSkip(t *testing.T) {
	tests := []struct {
		name  string
		route mockRoute
		want  string
	}{
		{
			name:  "404 json without reply field",
			route: mockRoute{status: 404, contentType: "application/json", body: `{"detail":"Not Found"}`},
			want:  models.MissingFieldPrefix + `{"detail":"Not Found"}`,
		},
		{
			name:  "404 json with reply field",
			route: mockRoute{status: 404, contentType: "application/json", body: `{"message":"gone"}`},
			want:  "gone",
		},
		{
			name:  "500 text body",
			route: mockRoute{status: 500, contentType: "text/plain", body: "Internal Server Error"},
			want:  "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, mock := newTestClient(map[string]mockRoute{
				"/chat":     tt.route,
				"/api/chat": jsonRoute(`{"reply":"two"}`),
			})
			got, err := client.FetchReply(context.Background(), "q")
			if err != nil {
				t.Fatalf("FetchReply() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("FetchReply() = %q, want %q", got, tt.want)
			}
			if paths := joinPaths(mock.Paths()); paths != "/chat" {
				t.Errorf("attempted %s, want only /chat", paths)
			}
		})
	}
}

func TestFetchReply_AllFail(t *testing.T) {
	client, mock := newTestClient(map[string]mockRoute{
		"/chat": {status: 404},
	})

	got, err := client.FetchReply(context.Background(), "q")
	if !errors.Is(err, apierrors.ErrNoReply) {
		t.Fatalf("FetchReply() error = %v, want ErrNoReply", err)
	}
	if got != "" {
		t.Errorf("FetchReply() = %q, want empty", got)
	}
	if paths := joinPaths(mock.Paths()); paths != "/chat,/api/chat,/rag,/api/rag" {
		t.Errorf("attempted %s, want all four endpoints in order", paths)
	}
}

func TestFetchReply_CustomEndpoints(t *testing.T) {
	client, mock := newTestClient(
		map[string]mockRoute{"/v2/ask": jsonRoute(`{"reply":"custom"}`)},
		WithEndpoints("/v1/ask", "/v2/ask"),
	)

	got, err := client.FetchReply(context.Background(), "q")
	if err != nil || got != "custom" {
		t.Fatalf("FetchReply() = %q, %v", got, err)
	}
	if paths := joinPaths(mock.Paths()); paths != "/v1/ask,/v2/ask" {
		t.Errorf("attempted %s", paths)
	}
}

func TestFetchReply_CancelledContextStops(t *testing.T) {
	client, mock := newTestClient(map[string]mockRoute{"/chat": {block: true}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchReply(ctx, "q")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("FetchReply() error = %v, want context.Canceled", err)
	}
	if n := len(mock.Requests()); n != 1 {
		t.Errorf("expected the loop to stop after 1 attempt, got %d", n)
	}
}

func TestExtractReply(t *testing.T) {
	tests := []struct {
		payload string
		want    string
		ok      bool
	}{
		{`{"reply":"x"}`, "x", true},
		{`{"data":{"content":"y"}}`, "y", true},
		{`{"data":{"other":"y"}}`, "", false},
		{`"just a string"`, "", false},
		{`{}`, "", false},
	}

	for _, tt := range tests {
		got, ok := ExtractReply(tt.payload)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ExtractReply(%s) = %q, %v; want %q, %v", tt.payload, got, ok, tt.want, tt.ok)
		}
	}
}

func TestIsJSONContentType(t *testing.T) {
	tests := map[string]bool{
		"application/json":                true,
		"application/json; charset=utf-8": true,
		"Application/JSON":                true,
		"text/plain":                      false,
		"":                                false,
	}
	for ct, want := range tests {
		if got := isJSONContentType(ct); got != want {
			t.Errorf("isJSONContentType(%q) = %v, want %v", ct, got, want)
		}
	}
}
