package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/hosbabel/hosbabel/internal/errors"
	"github.com/hosbabel/hosbabel/internal/models"
)

type replyRequest struct {
	Text string `json:"text"`
}

// FetchReply posts text to each endpoint in order and returns the first usable
// reply. It returns ErrOffline without any network call when no base URL is
// configured, and ErrNoReply once every endpoint has failed.
func (c *Client) FetchReply(ctx context.Context, text string) (string, error) {
	if c.Offline() {
		return "", apierrors.ErrOffline
	}

	body, err := json.Marshal(replyRequest{Text: text})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	var lastErr error
	for i, path := range c.endpoints {
		reply, err := c.tryEndpoint(ctx, path, body)
		if err == nil {
			c.log.WithField("endpoint", path).WithField("attempt", i+1).Debug("reply received")
			return reply, nil
		}
		lastErr = err
		c.log.WithField("endpoint", path).WithField("error", err).Debug("endpoint failed, trying next")
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}

	c.log.WithField("error", lastErr).Warn("no endpoint produced a reply")
	return "", fmt.Errorf("%w: %v", apierrors.ErrNoReply, lastErr)
}

// tryEndpoint performs one attempt against a single path
func (c *Client) tryEndpoint(ctx context.Context, path string, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apierrors.NewNetworkError(path, err)
	}
	if resp == nil {
		return "", apierrors.NewNetworkError(path, apierrors.ErrInvalidResponse)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apierrors.NewNetworkError(path, err)
	}
	c.log.WithField("endpoint", path).WithField("status", resp.StatusCode).Debug("response received")

	if isJSONContentType(resp.Header.Get("Content-Type")) {
		payload := string(raw)
		if !gjson.Valid(payload) {
			return "", apierrors.NewParseError("invalid JSON body", path)
		}
		if reply, ok := ExtractReply(payload); ok {
			return reply, nil
		}
		return models.MissingFieldPrefix + compactJSON(payload), nil
	}

	if strings.TrimSpace(string(raw)) == "" {
		return "", apierrors.ErrEmptyBody
	}
	return string(raw), nil
}

// ExtractReply searches the reply field candidates at the top level of a JSON
// object, then inside its "data" object, and returns the first string value
// that is not blank.
func ExtractReply(payload string) (string, bool) {
	parsed := gjson.Parse(payload)
	if !parsed.IsObject() {
		return "", false
	}

	if reply, ok := firstReplyField(parsed); ok {
		return reply, true
	}

	data := parsed.Get(models.DataField)
	if data.IsObject() {
		return firstReplyField(data)
	}
	return "", false
}

func firstReplyField(obj gjson.Result) (string, bool) {
	for _, key := range models.ReplyFields {
		v := obj.Get(key)
		if v.Type == gjson.String && strings.TrimSpace(v.Str) != "" {
			return v.Str, true
		}
	}
	return "", false
}

// compactJSON re-serializes a JSON document without whitespace, falling back
// to the raw text when that is not possible.
func compactJSON(payload string) string {
	if ugly := gjson.Get(payload, "@ugly"); ugly.Exists() && ugly.Raw != "" {
		return ugly.Raw
	}
	return payload
}

func isJSONContentType(ct string) bool {
	return strings.Contains(strings.ToLower(ct), "application/json")
}
