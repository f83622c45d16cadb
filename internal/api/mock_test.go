package api

import (
	"io"
	"net/url"
	"strings"
	"sync"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/bogdanfinn/tls-client/bandwidth"
)

// MockResponseBody is a ReadCloser that simulates reading response data
type MockResponseBody struct {
	data   []byte
	pos    int
	closed bool
}

// NewMockResponseBody creates a new MockResponseBody with the given data
func NewMockResponseBody(data []byte) *MockResponseBody {
	return &MockResponseBody{data: data, pos: 0}
}

// Read implements the io.Reader interface
func (m *MockResponseBody) Read(p []byte) (n int, err error) {
	if m.pos >= len(m.data) {
		return 0, io.EOF
	}
	n = copy(p, m.data[m.pos:])
	m.pos += n
	return n, nil
}

// Close implements the io.Closer interface
func (m *MockResponseBody) Close() error {
	m.closed = true
	return nil
}

// mockRoute describes how one path answers
type mockRoute struct {
	status      int
	contentType string
	body        string
	err         error
	// block waits for the request context to end before failing
	block bool
}

// recordedRequest captures what the client sent
type recordedRequest struct {
	Method      string
	Path        string
	ContentType string
	Body        string
}

// MockHttpClient is a routing, recording implementation of tls_client.HttpClient
type MockHttpClient struct {
	mu       sync.Mutex
	routes   map[string]mockRoute
	requests []recordedRequest
}

// NewMockHttpClient creates a mock answering the given routes by URL path.
// Unknown paths fail like a refused connection.
func NewMockHttpClient(routes map[string]mockRoute) *MockHttpClient {
	return &MockHttpClient{routes: routes}
}

// Requests returns the recorded requests in order
func (m *MockHttpClient) Requests() []recordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]recordedRequest(nil), m.requests...)
}

// Paths returns the recorded request paths in order
func (m *MockHttpClient) Paths() []string {
	var paths []string
	for _, r := range m.Requests() {
		paths = append(paths, r.Path)
	}
	return paths
}

// Do implements the tls_client.HttpClient interface
func (m *MockHttpClient) Do(req *fhttp.Request) (*fhttp.Response, error) {
	rec := recordedRequest{
		Method:      req.Method,
		Path:        req.URL.Path,
		ContentType: req.Header.Get("Content-Type"),
	}
	if req.Body != nil {
		data, _ := io.ReadAll(req.Body)
		rec.Body = string(data)
	}

	m.mu.Lock()
	m.requests = append(m.requests, rec)
	route, ok := m.routes[req.URL.Path]
	m.mu.Unlock()

	if !ok {
		return nil, &url.Error{Op: req.Method, URL: req.URL.String(), Err: io.ErrUnexpectedEOF}
	}
	if route.block {
		<-req.Context().Done()
		return nil, req.Context().Err()
	}
	if route.err != nil {
		return nil, route.err
	}

	header := make(fhttp.Header)
	if route.contentType != "" {
		header.Set("Content-Type", route.contentType)
	}
	status := route.status
	if status == 0 {
		status = 200
	}
	return &fhttp.Response{
		StatusCode: status,
		Body:       NewMockResponseBody([]byte(route.body)),
		Header:     header,
	}, nil
}

// GetCookies implements the tls_client.HttpClient interface
func (m *MockHttpClient) GetCookies(u *url.URL) []*fhttp.Cookie {
	return nil
}

// SetCookies implements the tls_client.HttpClient interface
func (m *MockHttpClient) SetCookies(u *url.URL, cookies []*fhttp.Cookie) {}

// SetCookieJar implements the tls_client.HttpClient interface
func (m *MockHttpClient) SetCookieJar(jar fhttp.CookieJar) {}

// GetCookieJar implements the tls_client.HttpClient interface
func (m *MockHttpClient) GetCookieJar() fhttp.CookieJar {
	return nil
}

// SetProxy implements the tls_client.HttpClient interface
func (m *MockHttpClient) SetProxy(proxyUrl string) error {
	return nil
}

// GetProxy implements the tls_client.HttpClient interface
func (m *MockHttpClient) GetProxy() string {
	return ""
}

// SetFollowRedirect implements the tls_client.HttpClient interface
func (m *MockHttpClient) SetFollowRedirect(followRedirect bool) {}

// GetFollowRedirect implements the tls_client.HttpClient interface
func (m *MockHttpClient) GetFollowRedirect() bool {
	return false
}

// CloseIdleConnections implements the tls_client.HttpClient interface
func (m *MockHttpClient) CloseIdleConnections() {}

// Get implements the tls_client.HttpClient interface
func (m *MockHttpClient) Get(u string) (*fhttp.Response, error) {
	req, err := fhttp.NewRequest(fhttp.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	return m.Do(req)
}

// Head implements the tls_client.HttpClient interface
func (m *MockHttpClient) Head(u string) (*fhttp.Response, error) {
	req, err := fhttp.NewRequest(fhttp.MethodHead, u, nil)
	if err != nil {
		return nil, err
	}
	return m.Do(req)
}

// Post implements the tls_client.HttpClient interface
func (m *MockHttpClient) Post(u, contentType string, body io.Reader) (*fhttp.Response, error) {
	req, err := fhttp.NewRequest(fhttp.MethodPost, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	return m.Do(req)
}

// GetBandwidthTracker implements the tls_client.HttpClient interface
func (m *MockHttpClient) GetBandwidthTracker() bandwidth.BandwidthTracker {
	return nil
}

func jsonRoute(body string) mockRoute {
	return mockRoute{status: 200, contentType: "application/json; charset=utf-8", body: body}
}

func textRoute(body string) mockRoute {
	return mockRoute{status: 200, contentType: "text/plain", body: body}
}

func newTestClient(routes map[string]mockRoute, opts ...ClientOption) (*Client, *MockHttpClient) {
	mock := NewMockHttpClient(routes)
	opts = append([]ClientOption{WithHTTPClient(mock)}, opts...)
	client, err := NewClient("http://backend.test", opts...)
	if err != nil {
		panic(err)
	}
	return client, mock
}

func joinPaths(paths []string) string {
	return strings.Join(paths, ",")
}
