package api

import (
	"context"

	http "github.com/bogdanfinn/fhttp"

	apierrors "github.com/hosbabel/hosbabel/internal/errors"
	"github.com/hosbabel/hosbabel/internal/models"
)

// HealthStatus is the connectivity state shown in the chat header
type HealthStatus int

const (
	StatusUnknown HealthStatus = iota
	StatusOK
	StatusError
)

// String returns the status name
func (s HealthStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// CheckHealth issues a single GET to the health path, bounded by the health
// timeout. Any HTTP response counts as reachable. Offline clients report
// StatusUnknown without a network call. If ctx is cancelled by the caller the
// result is StatusUnknown with ctx's error, and should be discarded.
func (c *Client) CheckHealth(ctx context.Context) (HealthStatus, error) {
	if c.Offline() {
		return StatusUnknown, nil
	}

	probeCtx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, c.baseURL+models.HealthPath, nil)
	if err != nil {
		return StatusError, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return StatusUnknown, ctx.Err()
		}
		if probeCtx.Err() != nil {
			err = apierrors.NewTimeoutError("health check exceeded " + c.healthTimeout.String())
		}
		c.log.WithField("error", err).Warn("health check failed")
		return StatusError, apierrors.NewNetworkError(models.HealthPath, err)
	}
	if resp == nil {
		return StatusError, apierrors.NewNetworkError(models.HealthPath, apierrors.ErrInvalidResponse)
	}
	if resp.Body != nil {
		_ = resp.Body.Close()
	}

	c.log.WithField("status", resp.StatusCode).Debug("health check answered")
	return StatusOK, nil
}
