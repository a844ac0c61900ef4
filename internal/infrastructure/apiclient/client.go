// Package apiclient talks to the remote task-management REST API.
//
// Every call is authorised with the access token carried on the context
// (ports.WithAccessToken). Failures are classified into the domain sentinels:
//
//	404          → domain.ErrNotFound
//	400/409/422  → *domain.ValidationError (errors.Is ErrValidation)
//	401/403      → domain.ErrUnauthorized
//	other ≥ 400  → domain.ErrServer
//	transport    → domain.ErrNetwork
//
// A cancelled context surfaces as context.Canceled so callers can tell an
// abandoned request from a failed one.
package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/taskmanagement/console/internal/api/metrics"
	"github.com/taskmanagement/console/internal/core/domain"
	"github.com/taskmanagement/console/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Config holds the remote API settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client implements the remote API ports on top of resty.
type Client struct {
	http *resty.Client
	log  zerolog.Logger
}

var (
	_ ports.AuthGateway = (*Client)(nil)
	_ ports.TaskAPI     = (*Client)(nil)
	_ ports.UserAPI     = (*Client)(nil)
	_ ports.RoleAPI     = (*Client)(nil)
)

func New(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetLogger(restyLogger{log: log})
	return &Client{http: rc, log: log}
}

// apiError is the error body of the remote API. message is either a string
// or a list of strings.
type apiError struct {
	Message json.RawMessage   `json:"message"`
	Errors  map[string]string `json:"errors"`
}

func (e apiError) text() string {
	if len(e.Message) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(e.Message, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(e.Message, &list); err == nil {
		return strings.Join(list, "; ")
	}
	return ""
}

// do executes one request. The returned body is empty when the API answered
// without content.
func (c *Client) do(ctx context.Context, method, resource, path string, body any) ([]byte, error) {
	req := c.http.R().SetContext(ctx)
	if tok := ports.AccessToken(ctx); tok != "" {
		req.SetAuthToken(tok)
	}
	if body != nil {
		req.SetBody(body)
	}

	start := time.Now()
	resp, err := req.Execute(method, path)
	metrics.APIRequestDuration.WithLabelValues(resource, method).Observe(time.Since(start).Seconds())

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			metrics.APIRequestsTotal.WithLabelValues(resource, "canceled").Inc()
			return nil, fmt.Errorf("%s %s: %w", method, path, ctxErr)
		}
		metrics.APIRequestsTotal.WithLabelValues(resource, "network").Inc()
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("remote API unreachable")
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrNetwork, method, path, err)
	}

	if resp.IsError() {
		cerr := classify(resp.StatusCode(), resp.Body())
		metrics.APIRequestsTotal.WithLabelValues(resource, outcomeLabel(cerr)).Inc()
		c.log.Debug().Err(cerr).Int("status", resp.StatusCode()).Str("method", method).Str("path", path).Msg("remote API error")
		return nil, cerr
	}

	metrics.APIRequestsTotal.WithLabelValues(resource, "ok").Inc()
	return resp.Body(), nil
}

// decode unmarshals body into out. It reports false for an empty body.
func decode(body []byte, out any) (bool, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return false, fmt.Errorf("%w: decode response: %v", domain.ErrServer, err)
	}
	return true, nil
}

func classify(status int, body []byte) error {
	var payload apiError
	_ = json.Unmarshal(body, &payload)
	msg := payload.text()
	if msg == "" {
		msg = http.StatusText(status)
	}

	switch status {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, msg)
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return &domain.ValidationError{Message: msg, Fields: payload.Errors}
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", domain.ErrUnauthorized, msg)
	default:
		return fmt.Errorf("%w: status %d: %s", domain.ErrServer, status, msg)
	}
}

func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	default:
		return "server"
	}
}

// restyLogger routes resty's internal messages through zerolog.
type restyLogger struct {
	log zerolog.Logger
}

func (l restyLogger) Errorf(format string, v ...any) { l.log.Error().Msgf(format, v...) }
func (l restyLogger) Warnf(format string, v ...any)  { l.log.Warn().Msgf(format, v...) }
func (l restyLogger) Debugf(format string, v ...any) { l.log.Debug().Msgf(format, v...) }
