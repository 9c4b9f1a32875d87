// Package httpprobe issues single timed HTTP requests and classifies transport failures.
package httpprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"
)

// maxBodyBytes bounds how much of a response body is retained.
const maxBodyBytes = 1 << 20

// Response is the outcome of a completed request.
type Response struct {
	StatusCode int
	Body       []byte
	Duration   time.Duration
}

// Client wraps an http.Client with a fixed per-request timeout.
type Client struct {
	httpClient *http.Client
}

// New creates a client whose requests time out after timeout.
func New(timeout time.Duration) *Client {
	return &Client{httpClient: &http.Client{Timeout: timeout}}
}

// Get issues a GET with optional headers.
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{}, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.do(req)
}

// PostJSON issues a POST with payload encoded as JSON.
func (c *Client) PostJSON(ctx context.Context, url string, payload any) (Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Response{}, fmt.Errorf("encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("content-type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) (Response, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{Duration: time.Since(start)}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Response{StatusCode: resp.StatusCode, Duration: time.Since(start)}, fmt.Errorf("read body: %w", err)
	}
	return Response{
		StatusCode: resp.StatusCode,
		Body:       body,
		Duration:   time.Since(start),
	}, nil
}

// Failure classifies a transport error.
type Failure int

const (
	FailureOther Failure = iota
	FailureTimeout
	FailureConnection
)

// Classify maps a request error onto a Failure.
func Classify(err error) Failure {
	if err == nil {
		return FailureOther
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FailureTimeout
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return FailureConnection
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return FailureConnection
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return FailureConnection
	}
	return FailureOther
}
