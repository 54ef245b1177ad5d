// Package client implements the gateway's collaborators, and the gateway
// itself, as HTTP clients of the tetris services.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/vovakirdan/tetris-net/internal/platform/server"
	"github.com/vovakirdan/tetris-net/internal/wire"
)

// DefaultTimeout bounds a single request when no timeout is configured.
const DefaultTimeout = 2 * time.Second

// StatusError is returned for any non-2xx reply.
type StatusError struct {
	Status int
	Motivo string
}

func (e *StatusError) Error() string {
	if e.Motivo == "" {
		return fmt.Sprintf("status %d", e.Status)
	}
	return fmt.Sprintf("status %d: %s", e.Status, e.Motivo)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == code
}

// Option configures a client.
type Option func(*base)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(b *base) { b.http = hc }
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(b *base) {
		if d > 0 {
			b.timeout = d
		}
	}
}

type base struct {
	url     string
	http    *http.Client
	timeout time.Duration
}

func newBase(url string, opts []Option) base {
	b := base{
		url:     strings.TrimRight(url, "/"),
		http:    http.DefaultClient,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// do sends in as JSON (when non-nil) and decodes the reply into out.
func (b base) do(ctx context.Context, method, path string, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("client: encode %s: %w", path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.url+path, body)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if id := server.RequestIDFrom(ctx); id != "" {
		req.Header.Set(server.RequestIDHeader, id)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := b.http.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, server.MaxBodyBytes))
	if err != nil {
		return fmt.Errorf("client: read %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var f wire.Failure
		//nolint:errcheck // Non-JSON error bodies leave Motivo empty.
		json.Unmarshal(data, &f)
		return &StatusError{Status: resp.StatusCode, Motivo: f.Motivo}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("client: decode %s: %w", path, err)
	}
	return nil
}
